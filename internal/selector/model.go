// Package selector lets the user pick which discovered projects to clean.
package selector

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/lakshaymaurya-felt/nmsweep/internal/project"
)

// ─── Key bindings ────────────────────────────────────────────────────────────

// KeyMap defines the selector keybindings.
type KeyMap struct {
	Up        key.Binding
	Down      key.Binding
	Toggle    key.Binding
	ToggleAll key.Binding
	Confirm   key.Binding
	Cancel    key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Toggle:    key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle")),
		ToggleAll: key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "all")),
		Confirm:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "confirm")),
		Cancel:    key.NewBinding(key.WithKeys("esc", "q", "ctrl+c"), key.WithHelp("esc", "abort")),
	}
}

// ─── Model ───────────────────────────────────────────────────────────────────

type item struct {
	project  project.Project
	selected bool
}

// Model is the bubbletea model for the multi-select project picker.
// Nothing is preselected.
type Model struct {
	title     string
	items     []item
	keys      KeyMap
	cursor    int
	offset    int // viewport scroll offset
	width     int
	height    int
	confirmed bool
	canceled  bool
}

// NewModel creates a picker over projects.
func NewModel(title string, projects []project.Project) Model {
	items := make([]item, 0, len(projects))
	for _, p := range projects {
		items = append(items, item{project: p})
	}
	return Model{
		title:  title,
		items:  items,
		keys:   DefaultKeyMap(),
		width:  80,
		height: 24,
	}
}

// Confirmed reports whether the user accepted the selection.
func (m Model) Confirmed() bool { return m.confirmed }

// Canceled reports whether the user aborted.
func (m Model) Canceled() bool { return m.canceled }

// Selected returns the chosen projects in their original order.
func (m Model) Selected() []project.Project {
	var out []project.Project
	for _, it := range m.items {
		if it.selected {
			out = append(out, it.project)
		}
	}
	return out
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ensureVisible()
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Cancel):
			m.canceled = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Confirm):
			m.confirmed = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
				m.ensureVisible()
			}
		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(m.items)-1 {
				m.cursor++
				m.ensureVisible()
			}
		case key.Matches(msg, m.keys.Toggle):
			if m.cursor >= 0 && m.cursor < len(m.items) {
				m.items[m.cursor].selected = !m.items[m.cursor].selected
			}
		case key.Matches(msg, m.keys.ToggleAll):
			m.toggleAll()
		}
		return m, nil
	}

	return m, nil
}

func (m Model) View() string {
	return m.renderView()
}

// ─── Helpers ─────────────────────────────────────────────────────────────────

// toggleAll selects everything unless everything is already selected.
func (m *Model) toggleAll() {
	all := true
	for _, it := range m.items {
		if !it.selected {
			all = false
			break
		}
	}
	for i := range m.items {
		m.items[i].selected = !all
	}
}

func (m *Model) ensureVisible() {
	vh := m.viewportHeight()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+vh {
		m.offset = m.cursor - vh + 1
	}
}

func (m Model) viewportHeight() int {
	h := m.height - 5 // title (2) + footer (2) + padding
	if h < 1 {
		h = 1
	}
	return h
}

func (m Model) selectedCount() int {
	n := 0
	for _, it := range m.items {
		if it.selected {
			n++
		}
	}
	return n
}
