package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const logo = `▄▖▖ ▖▖▄▖▄▖▖▖
▙▌▌ ▌▌▌▌▌▌▌▌
▌ ▙▖▙▌█▌█▌▐
convert ▘ ▘▘`

// renderHeader draws the title on the left, aligned with the last logo row,
// and the logo on the right
func renderHeader(width int, title string) string {
	logoStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorLogo)).
		Bold(true)

	headerPadding := lipgloss.NewStyle().
		PaddingLeft(1).
		PaddingRight(1).
		Width(width)

	logoRendered := logoStyle.Render(logo)
	logoLines := strings.Split(logo, "\n")
	contentWidth := width - 2

	if title == "" {
		rightAlign := lipgloss.NewStyle().
			Width(contentWidth).
			Align(lipgloss.Right)
		return headerPadding.Render(rightAlign.Render(logoRendered))
	}

	titleRendered := logoStyle.Render(strings.Repeat("\n", len(logoLines)-1) + title)

	gap := contentWidth - lipgloss.Width(title) - lipgloss.Width(logoLines[0])
	if gap < 1 {
		gap = 1
	}

	return headerPadding.Render(lipgloss.JoinHorizontal(
		lipgloss.Top,
		titleRendered,
		lipgloss.NewStyle().Width(gap).Render(""),
		logoRendered,
	))
}
