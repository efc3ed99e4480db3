package report

import (
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lakshaymaurya-felt/nmsweep/internal/project"
	"github.com/lakshaymaurya-felt/nmsweep/internal/ui"
)

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	require.True(t, ok)
	return nm, cmd
}

func linesContaining(view, needle string) []string {
	var out []string
	for _, l := range strings.Split(view, "\n") {
		if strings.Contains(l, needle) {
			out = append(out, l)
		}
	}
	return out
}

func TestModel_StartsWaiting(t *testing.T) {
	m := NewModel("node_modules", []project.Project{project.New("a"), project.New("b")}, nil)

	view := m.View()
	assert.Contains(t, view, "Removing node_modules")
	assert.Contains(t, view, "0/2")
	assert.Len(t, linesContaining(view, "waiting"), 2)
	for _, p := range m.Projects() {
		assert.Equal(t, project.StatusWaiting, p.Status)
	}
}

func TestModel_SuccessLine(t *testing.T) {
	events := make(chan project.Event, 2)
	m := NewModel("node_modules", []project.Project{project.New("a")}, events)

	m, cmd := update(t, m, eventMsg{Path: "a", Status: project.StatusDeleting})
	require.NotNil(t, cmd, "model must keep listening")
	assert.Empty(t, linesContaining(m.View(), "waiting"))

	m, _ = update(t, m, eventMsg{Path: "a", Status: project.StatusDone})
	view := m.View()
	assert.Len(t, linesContaining(view, ui.IconCheck+" a"), 1)
	assert.Empty(t, linesContaining(view, ui.IconCross))
	assert.Equal(t, Summary{Total: 1, Done: 1}, m.Summary())
}

func TestModel_FailureLine(t *testing.T) {
	m := NewModel("node_modules", []project.Project{project.New("a"), project.New("b")}, nil)

	m, _ = update(t, m, eventMsg{Path: "b", Status: project.StatusDeleting})
	m, _ = update(t, m, eventMsg{Path: "b", Status: project.StatusFailed})

	view := m.View()
	assert.Len(t, linesContaining(view, ui.IconCross+" b"), 1)
	assert.Len(t, linesContaining(view, "waiting"), 1, "a is untouched")
	assert.Equal(t, Summary{Total: 2, Failed: 1}, m.Summary())
}

func TestModel_UnknownPathIgnored(t *testing.T) {
	m := NewModel("node_modules", []project.Project{project.New("a")}, nil)

	m, _ = update(t, m, eventMsg{Path: "b", Status: project.StatusDone})

	assert.Empty(t, linesContaining(m.View(), " b"))
	assert.Equal(t, Summary{Total: 1}, m.Summary())
}

func TestModel_TerminalLinesStopUpdating(t *testing.T) {
	m := NewModel("node_modules", []project.Project{project.New("a")}, nil)

	m, _ = update(t, m, eventMsg{Path: "a", Status: project.StatusDeleting})
	m, _ = update(t, m, eventMsg{Path: "a", Status: project.StatusDone})
	m, _ = update(t, m, eventMsg{Path: "a", Status: project.StatusFailed})
	m, _ = update(t, m, eventMsg{Path: "a", Status: project.StatusDeleting})

	assert.Equal(t, project.StatusDone, m.Projects()[0].Status)
	assert.Equal(t, Summary{Total: 1, Done: 1}, m.Summary())
	assert.Len(t, linesContaining(m.View(), ui.IconCheck+" a"), 1)
}

func TestModel_StreamClosedQuits(t *testing.T) {
	m := NewModel("node_modules", []project.Project{project.New("a")}, nil)

	m, cmd := update(t, m, streamClosedMsg{})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.True(t, m.Done())
	assert.False(t, m.Interrupted())
	assert.NotContains(t, m.View(), "ctrl+c")
}

func TestModel_CtrlCInterrupts(t *testing.T) {
	m := NewModel("node_modules", []project.Project{project.New("a")}, nil)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	assert.False(t, m.Interrupted(), "only ctrl+c stops the view")

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.True(t, m.Interrupted())
}

func TestModel_SpinnerStopsWhenDone(t *testing.T) {
	m := NewModel("node_modules", []project.Project{project.New("a")}, nil)
	m, _ = update(t, m, streamClosedMsg{})

	_, cmd := update(t, m, spinner.TickMsg{})
	assert.Nil(t, cmd)
}

func TestWaitForEvent(t *testing.T) {
	events := make(chan project.Event, 1)
	events <- project.Event{Path: "a", Status: project.StatusDeleting}
	close(events)

	cmd := waitForEvent(events)
	assert.Equal(t, eventMsg{Path: "a", Status: project.StatusDeleting}, cmd())
	assert.Equal(t, streamClosedMsg{}, cmd())
}

func TestTruncatePath(t *testing.T) {
	assert.Equal(t, "short", truncatePath("short", 40))

	long := strings.Repeat("ä", 50)
	got := truncatePath(long, 30)
	assert.Equal(t, 30, len([]rune(got)))
	assert.True(t, strings.HasPrefix(got, "…"))
}
