package report

import (
	"context"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/lakshaymaurya-felt/nmsweep/internal/project"
)

// Run shows the live view on w until the event stream closes. It returns
// ErrInterrupted if the user quit first; the summary then covers only what
// was seen. Extra options are applied after the defaults, e.g. to replace
// the terminal input.
func Run(ctx context.Context, w io.Writer, cacheDir string, projects []project.Project, events <-chan project.Event, opts ...tea.ProgramOption) (Summary, error) {
	m := NewModel(cacheDir, projects, events)

	opts = append([]tea.ProgramOption{tea.WithOutput(w), tea.WithContext(ctx)}, opts...)
	p := tea.NewProgram(m, opts...)
	final, err := p.Run()
	if err != nil {
		return m.Summary(), fmt.Errorf("render progress: %w", err)
	}

	fm, ok := final.(Model)
	if !ok {
		return m.Summary(), fmt.Errorf("render progress: unexpected model %T", final)
	}
	if fm.Interrupted() {
		return fm.Summary(), ErrInterrupted
	}
	return fm.Summary(), nil
}
