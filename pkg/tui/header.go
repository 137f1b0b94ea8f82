package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
)

// renderHeader draws the one-line title bar: title on the left, subtitle
// (the server URL) right-aligned.
func renderHeader(width int, title, subtitle string) string {
	titleStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("205")).
		Bold(true)

	subtitleStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorDim))

	headerPadding := lipgloss.NewStyle().
		PaddingLeft(1).
		PaddingRight(1).
		Width(width)

	titleRendered := titleStyle.Render(title)
	contentWidth := width - 2
	room := contentWidth - lipgloss.Width(titleRendered) - 1
	if room < 1 || subtitle == "" {
		return headerPadding.Render(titleRendered)
	}

	subtitleRendered := subtitleStyle.Render(truncate.StringWithTail(subtitle, uint(room), "…"))
	gap := contentWidth - lipgloss.Width(titleRendered) - lipgloss.Width(subtitleRendered)
	if gap < 1 {
		gap = 1
	}

	headerContent := lipgloss.JoinHorizontal(
		lipgloss.Top,
		titleRendered,
		lipgloss.NewStyle().Width(gap).Render(""),
		subtitleRendered,
	)
	return headerPadding.Render(headerContent)
}
