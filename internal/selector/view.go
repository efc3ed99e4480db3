package selector

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/lakshaymaurya-felt/nmsweep/internal/ui"
)

func (m Model) renderView() string {
	// Leave nothing behind once the choice is made.
	if m.confirmed || m.canceled {
		return ""
	}

	var s strings.Builder
	s.WriteString(m.renderHeader())
	s.WriteString("\n")
	s.WriteString(m.renderBody())
	s.WriteString("\n")
	s.WriteString(m.renderFooter())
	return s.String()
}

func (m Model) renderHeader() string {
	title := ui.TitleStyle().Render("  " + ui.IconDiamond + " " + m.title)
	count := ui.MutedStyle().Render(fmt.Sprintf("  %d/%d selected", m.selectedCount(), len(m.items)))
	return title + count
}

func (m Model) renderBody() string {
	vh := m.viewportHeight()
	var lines []string

	for i := m.offset; i < len(m.items) && i < m.offset+vh; i++ {
		it := m.items[i]

		box := ui.MutedStyle().Render(ui.IconBoxEmpty)
		if it.selected {
			box = lipgloss.NewStyle().Foreground(ui.ColorSuccess).Render(ui.IconBoxSelected)
		}

		name := lipgloss.NewStyle().Foreground(ui.ColorText).Render(it.project.DisplayPath())
		line := fmt.Sprintf("  %s %s", box, name)

		if i == m.cursor {
			cursor := lipgloss.NewStyle().Foreground(ui.ColorPrimary).Bold(true).Render(ui.IconBlock)
			line = " " + cursor + line[2:]
		}
		lines = append(lines, line)
	}

	// Scroll hint.
	if len(m.items) > vh {
		lines = append(lines, ui.HintBarStyle().Render(
			fmt.Sprintf("  ── %d/%d ──", min(m.offset+vh, len(m.items)), len(m.items))))
	}

	return strings.Join(lines, "\n")
}

func (m Model) renderFooter() string {
	hints := []string{
		"↑↓ move",
		"space toggle",
		"a all",
		"enter confirm",
		"esc abort",
	}
	return ui.HintBarStyle().Render("  " + strings.Join(hints, " "+ui.IconPipe+" "))
}
