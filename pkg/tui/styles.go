package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/pluqqy/pluqqy-convert/pkg/feedback"
	"github.com/pluqqy/pluqqy-convert/pkg/utils"
)

// Color constants
const (
	ColorActive   = "170" // Purple/magenta for active elements
	ColorInactive = "240" // Gray for inactive elements
	ColorNormal   = "245"
	ColorDim      = "241"
	ColorWarning  = "214" // Orange/yellow for warnings
	ColorSuccess  = "28"  // Green for success
	ColorError    = "196"
	ColorWhite    = "255"
	ColorDark     = "235"
	ColorPrimary  = "33" // Blue for informational text
	ColorLogo     = "205"
)

var (
	ActiveBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color(ColorActive))

	InactiveBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color(ColorInactive))

	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(ColorWarning))

	ColonStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorInactive))

	HeaderPaddingStyle = lipgloss.NewStyle().
				PaddingLeft(1).
				PaddingRight(1)

	ContentPaddingStyle = lipgloss.NewStyle().
				PaddingLeft(1).
				PaddingRight(1)

	LanguageStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorWhite)).
			Background(lipgloss.Color(ColorActive)).
			Padding(0, 1).
			Bold(true)

	DescriptionStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color(ColorDim))

	PlaceholderStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color(ColorDim)).
				Italic(true)

	SpinnerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorActive))

	HelpBorderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(ColorInactive))

	HelpKeyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorNormal)).
			Bold(true)

	HelpDisabledStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color(ColorInactive)).
				Strikethrough(true)
)

// GetTokenBadgeStyle colors the token badge by how full the nearest context size is
func GetTokenBadgeStyle(status utils.TokenStatus) lipgloss.Style {
	switch status {
	case utils.TokenStatusWarning:
		return lipgloss.NewStyle().
			Background(lipgloss.Color(ColorWarning)).
			Foreground(lipgloss.Color(ColorDark)).
			Padding(0, 1).
			Bold(true)
	case utils.TokenStatusDanger:
		return lipgloss.NewStyle().
			Background(lipgloss.Color(ColorError)).
			Foreground(lipgloss.Color(ColorWhite)).
			Padding(0, 1).
			Bold(true)
	default:
		return lipgloss.NewStyle().
			Background(lipgloss.Color(ColorSuccess)).
			Foreground(lipgloss.Color(ColorWhite)).
			Padding(0, 1).
			Bold(true)
	}
}

// GetFeedbackStyle colors the status line by severity
func GetFeedbackStyle(severity feedback.Severity) lipgloss.Style {
	color := ColorPrimary
	switch severity {
	case feedback.SeveritySuccess:
		color = ColorSuccess
	case feedback.SeverityWarning:
		color = ColorWarning
	case feedback.SeverityError:
		color = ColorError
	}
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(color)).
		Bold(severity != feedback.SeverityInfo)
}

func GetActiveBorderStyle(isActive bool) lipgloss.Style {
	if isActive {
		return ActiveBorderStyle
	}
	return InactiveBorderStyle
}
