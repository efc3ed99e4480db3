package report

import (
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/lakshaymaurya-felt/nmsweep/internal/project"
	"github.com/lakshaymaurya-felt/nmsweep/internal/ui"
)

// ErrInterrupted is returned when the user stops the live view before every
// project reached a terminal state.
var ErrInterrupted = errors.New("interrupted")

// ─── Messages ────────────────────────────────────────────────────────────────

type eventMsg project.Event

type streamClosedMsg struct{}

// waitForEvent blocks on the next event. Only one is outstanding at a time,
// so events are applied strictly in arrival order inside Update.
func waitForEvent(events <-chan project.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return streamClosedMsg{}
		}
		return eventMsg(ev)
	}
}

// ─── Model ───────────────────────────────────────────────────────────────────

// Model is the bubbletea model for the live progress view: one line per
// project, each updated independently as its events arrive.
type Model struct {
	cacheDir    string
	tracker     *tracker
	events      <-chan project.Event
	spinner     spinner.Model
	width       int
	done        bool
	interrupted bool
}

// NewModel creates a view of projects fed by events. Every line starts in
// the waiting state.
func NewModel(cacheDir string, projects []project.Project, events <-chan project.Event) Model {
	s := spinner.New()
	s.Spinner = spinner.Spinner{
		Frames: ui.SpinnerFrames,
		FPS:    100 * time.Millisecond,
	}

	return Model{
		cacheDir: cacheDir,
		tracker:  newTracker(projects),
		events:   events,
		spinner:  s,
		width:    80,
	}
}

// Summary returns the outcome counts seen so far.
func (m Model) Summary() Summary {
	return m.tracker.summary
}

// Projects returns a snapshot of every project with its current status.
func (m Model) Projects() []project.Project {
	return append([]project.Project(nil), m.tracker.rows...)
}

// Done reports whether the event stream has been exhausted.
func (m Model) Done() bool {
	return m.done
}

// Interrupted reports whether the user quit before the stream closed.
func (m Model) Interrupted() bool {
	return m.interrupted
}

// ─── tea.Model interface ─────────────────────────────────────────────────────

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, waitForEvent(m.events))
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.interrupted = true
			return m, tea.Quit
		}
		return m, nil

	case spinner.TickMsg:
		if m.done {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case eventMsg:
		m.tracker.apply(project.Event(msg))
		return m, waitForEvent(m.events)

	case streamClosedMsg:
		m.done = true
		return m, tea.Quit
	}

	return m, nil
}

func (m Model) View() string {
	return m.renderView()
}
