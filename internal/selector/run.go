package selector

import (
	"errors"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/lakshaymaurya-felt/nmsweep/internal/core"
	"github.com/lakshaymaurya-felt/nmsweep/internal/project"
)

var (
	// ErrAborted is returned when the user cancels the picker.
	ErrAborted = errors.New("selection aborted")

	// ErrNoTerminal is returned when there is no terminal to prompt on.
	ErrNoTerminal = errors.New("interactive mode requires a terminal")
)

// Run shows the picker on out, reading keys from in, and returns the chosen
// projects. An empty, confirmed selection is not an error.
func Run(in io.Reader, out io.Writer, title string, projects []project.Project) ([]project.Project, error) {
	p := tea.NewProgram(NewModel(title, projects), tea.WithInput(in), tea.WithOutput(out))
	final, err := p.Run()
	if err != nil {
		if errors.Is(err, tea.ErrInterrupted) {
			return nil, ErrAborted
		}
		return nil, fmt.Errorf("project selection: %w", err)
	}

	m, ok := final.(Model)
	if !ok {
		return nil, fmt.Errorf("project selection: unexpected model %T", final)
	}
	if m.Canceled() || !m.Confirmed() {
		return nil, ErrAborted
	}
	return m.Selected(), nil
}

// RunTerminal runs the picker on the process terminal.
func RunTerminal(title string, projects []project.Project) ([]project.Project, error) {
	if !core.IsTerminal(os.Stdin) || !core.IsTerminal(os.Stdout) {
		return nil, ErrNoTerminal
	}
	return Run(os.Stdin, os.Stdout, title, projects)
}
