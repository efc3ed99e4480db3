package report

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"

	"github.com/lakshaymaurya-felt/nmsweep/internal/project"
	"github.com/lakshaymaurya-felt/nmsweep/internal/ui"
)

// ─── Top-level renderer ─────────────────────────────────────────────────────

func (m Model) renderView() string {
	w := m.width
	if w < 40 {
		w = 40
	}

	var s strings.Builder
	s.WriteString(m.renderHeader(w))
	s.WriteString("\n")

	for _, p := range m.tracker.rows {
		s.WriteString(m.renderLine(p, w))
		s.WriteString("\n")
	}

	if !m.done && !m.interrupted {
		s.WriteString(ui.HintBarStyle().Render("  ctrl+c quit"))
		s.WriteString("\n")
	}
	return s.String()
}

// ─── Header ──────────────────────────────────────────────────────────────────

func (m Model) renderHeader(w int) string {
	sum := m.tracker.summary
	finished := sum.Done + sum.Failed

	title := ui.TitleStyle().Render(fmt.Sprintf("  %s Removing %s", ui.IconDiamond, m.cacheDir))

	pct := 100.0
	if sum.Total > 0 {
		pct = float64(finished) / float64(sum.Total) * 100
	}
	barWidth := 20
	if w > 100 {
		barWidth = 30
	}
	count := ui.MutedStyle().Render(fmt.Sprintf("%d/%d", finished, sum.Total))

	return fmt.Sprintf("%s  %s %s", title, progressBar(pct, barWidth, sum.Failed > 0), count)
}

// ─── Project lines ───────────────────────────────────────────────────────────

// renderLine draws one project. Terminal lines carry a fixed marker and no
// longer change; the others share the animated spinner.
func (m Model) renderLine(p project.Project, w int) string {
	path := truncatePath(p.DisplayPath(), w-6)

	switch p.Status {
	case project.StatusDone:
		return ui.SuccessStyle().Render("  " + ui.IconCheck + " " + path)
	case project.StatusFailed:
		return ui.ErrorStyle().Render("  " + ui.IconCross + " " + path)
	case project.StatusDeleting:
		spin := lipgloss.NewStyle().Foreground(ui.ColorPrimary).Render(m.spinnerFrame())
		return "  " + spin + " " + lipgloss.NewStyle().Foreground(ui.ColorText).Render(path)
	default:
		spin := ui.MutedStyle().Render(m.spinnerFrame())
		tag := ui.MutedStyle().Italic(true).Render("waiting")
		return "  " + spin + " " + lipgloss.NewStyle().Foreground(ui.ColorTextDim).Render(path) + "  " + tag
	}
}

// spinnerFrame returns the bare frame so each line can colour it by state.
func (m Model) spinnerFrame() string {
	if m.done || m.interrupted {
		return ui.IconBullet
	}
	return m.spinner.View()
}

// ─── Drawing primitives ─────────────────────────────────────────────────────

// progressBar renders a ████░░░░ bar, red once anything failed.
func progressBar(pct float64, width int, failed bool) string {
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	filled := int(pct / 100 * float64(width))
	if filled > width {
		filled = width
	}

	barColor := ui.ColorSuccess
	if failed {
		barColor = ui.ColorError
	}

	fStr := lipgloss.NewStyle().Foreground(barColor).Render(strings.Repeat("█", filled))
	eStr := lipgloss.NewStyle().Foreground(ui.ColorMuted).Render(strings.Repeat("░", width-filled))
	return fStr + eStr
}

// truncatePath keeps the tail of long paths, rune-safe.
func truncatePath(path string, maxLen int) string {
	if maxLen < 20 {
		maxLen = 20
	}
	n := utf8.RuneCountInString(path)
	if n <= maxLen {
		return path
	}
	runes := []rune(path)
	return "…" + string(runes[n-maxLen+1:])
}
