package report

import (
	"fmt"
	"io"

	"github.com/lakshaymaurya-felt/nmsweep/internal/project"
	"github.com/lakshaymaurya-felt/nmsweep/internal/ui"
)

// Print renders progress as plain lines, for output that is not a terminal
// or when logs share the screen. It writes one finalized line per project as
// soon as that project reaches a terminal state, from this goroutine only.
func Print(w io.Writer, projects []project.Project, events <-chan project.Event) Summary {
	t := newTracker(projects)
	for ev := range events {
		row, ok := t.apply(ev)
		if !ok {
			continue
		}
		switch row.Status {
		case project.StatusDone:
			fmt.Fprintln(w, ui.SuccessStyle().Render(ui.IconCheck+" "+row.DisplayPath()))
		case project.StatusFailed:
			fmt.Fprintln(w, ui.ErrorStyle().Render(ui.IconCross+" "+row.DisplayPath()))
		}
	}
	return t.summary
}
