package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/pluqqy/pluqqy-convert/pkg/convert"
	"github.com/pluqqy/pluqqy-convert/pkg/feedback"
	"github.com/pluqqy/pluqqy-convert/pkg/utils"
)

const (
	minPaneWidth  = 20
	minPaneHeight = 5
	// title, pane headings, status line and help pane
	reservedHeight = 14
)

func (a *App) View() string {
	if a.width == 0 {
		return "Loading..."
	}

	state := a.controller.Snapshot()

	var s strings.Builder
	s.WriteString(renderHeader(a.width, "AI CODE CONVERTER"))
	s.WriteString("\n\n")

	paneWidth, paneHeight := a.paneSize()
	left := a.renderInputPane(state, paneWidth, paneHeight)
	right := a.renderOutputPane(state, paneWidth, paneHeight)
	columns := lipgloss.JoinHorizontal(lipgloss.Top, left, " ", right)
	s.WriteString(ContentPaddingStyle.Render(columns))
	s.WriteString("\n")

	s.WriteString(ContentPaddingStyle.Render(a.renderStatus(state)))
	s.WriteString("\n")
	s.WriteString(ContentPaddingStyle.Render(a.renderHelp(state)))

	return s.String()
}

// paneSize splits the window into two equal columns
func (a *App) paneSize() (int, int) {
	width := (a.width - 7) / 2
	if width < minPaneWidth {
		width = minPaneWidth
	}
	height := a.height - reservedHeight
	if height < minPaneHeight {
		height = minPaneHeight
	}
	return width, height
}

func (a *App) updateViewportSizes() {
	width, height := a.paneSize()
	// Leave room for the inner padding and the heading lines
	a.input.SetWidth(width - 2)
	a.input.SetHeight(height - 2)
	a.output.Width = width - 2
	a.output.Height = height - 2
	a.code.setWidth(a.output.Width)
	a.refreshOutput()
}

func (a *App) refreshOutput() {
	a.output.SetContent(a.code.Render(a.controller.Result(), a.resultLang))
}

func (a *App) renderInputPane(state convert.State, width, height int) string {
	var content strings.Builder

	badge := ""
	if a.settings.UI.ShowTokenEstimate {
		tokens := utils.EstimateTokens(state.Source)
		_, status := utils.TokenLimitStatus(tokens)
		badge = GetTokenBadgeStyle(status).Render(utils.FormatTokenCount(tokens))
	}
	content.WriteString(paneHeading("SOURCE", badge, width))
	content.WriteString("\n\n")
	content.WriteString(HeaderPaddingStyle.Render(a.input.View()))

	return GetActiveBorderStyle(a.activePane == inputPane).
		Width(width).
		Height(height).
		Render(content.String())
}

func (a *App) renderOutputPane(state convert.State, width, height int) string {
	var content strings.Builder

	// A shown or pending result keeps the language it was converted to
	lang := state.Target
	if state.Phase == convert.PhaseConverting || state.Result != "" {
		lang = a.resultLang
	}
	badge := LanguageStyle.Render(lang.String())
	content.WriteString(paneHeading("CONVERTED", badge, width))
	content.WriteString("\n\n")

	switch {
	case state.Phase == convert.PhaseConverting:
		content.WriteString(HeaderPaddingStyle.Render(
			fmt.Sprintf("%s Converting to %s...", a.spinner.View(), lang)))
	case state.Result == "":
		content.WriteString(HeaderPaddingStyle.Render(PlaceholderStyle.Render("Converted code will appear here")))
	default:
		content.WriteString(HeaderPaddingStyle.Render(a.output.View()))
	}

	return GetActiveBorderStyle(a.activePane == outputPane).
		Width(width).
		Height(height).
		Render(content.String())
}

// paneHeading renders "HEADING ::::::: badge" spanning the pane width
func paneHeading(heading, badge string, width int) string {
	colonSpace := width - len(heading) - lipgloss.Width(badge) - 6
	if colonSpace < 3 {
		colonSpace = 3
	}
	line := HeaderStyle.Render(heading) + " " + ColonStyle.Render(strings.Repeat(":", colonSpace))
	if badge != "" {
		line += " " + badge
	}
	return HeaderPaddingStyle.Render(line)
}

// renderStatus shows the feedback line, or the initialization hint while the
// backend has not been detected yet
func (a *App) renderStatus(state convert.State) string {
	msg := state.Feedback
	if msg.IsZero() && !state.Ready {
		msg = feedback.Initializing
	}
	if msg.IsZero() {
		return ""
	}
	width := a.width - 4
	if width < minPaneWidth {
		width = minPaneWidth
	}
	return GetFeedbackStyle(msg.Severity).Render(wordwrap.String(msg.Text, width))
}

type helpItem struct {
	keys    string
	label   string
	enabled bool
}

func (a *App) renderHelp(state convert.State) string {
	idle := state.Phase == convert.PhaseIdle
	items := []helpItem{
		{"ctrl+r", "convert", idle && state.Ready},
		{"ctrl+t/ctrl+g", "language", true},
		{"ctrl+y", "copy", state.Result != ""},
		{"ctrl+x", "reset", idle},
		{"tab", "switch pane", true},
		{"ctrl+c", "quit", true},
	}

	return HelpBorderStyle.
		Width(a.width - 4).
		Padding(0, 1).
		Render(formatHelpText(items))
}

func formatHelpText(items []helpItem) string {
	parts := make([]string, 0, len(items))
	for _, item := range items {
		text := item.keys + " " + item.label
		if !item.enabled {
			parts = append(parts, HelpDisabledStyle.Render(text))
			continue
		}
		parts = append(parts, HelpKeyStyle.Render(item.keys)+" "+DescriptionStyle.Render(item.label))
	}
	return strings.Join(parts, "  •  ")
}
