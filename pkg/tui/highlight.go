package tui

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/muesli/reflow/wordwrap"

	"github.com/pluqqy/pluqqy-convert/pkg/models"
)

// codeRenderer syntax highlights converted code for the output pane. The
// glamour renderer is rebuilt whenever the pane width changes.
type codeRenderer struct {
	enabled  bool
	width    int
	renderer *glamour.TermRenderer
}

func newCodeRenderer(enabled bool) *codeRenderer {
	return &codeRenderer{enabled: enabled}
}

func (r *codeRenderer) setWidth(width int) {
	if width == r.width && r.renderer != nil {
		return
	}
	r.width = width
	r.renderer = nil
	if !r.enabled {
		return
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(width),
	)
	if err == nil {
		r.renderer = renderer
	}
}

// Render returns code highlighted for lang, or plain wrapped text when
// highlighting is off or fails
func (r *codeRenderer) Render(code string, lang models.Language) string {
	if code == "" {
		return ""
	}
	if r.renderer != nil {
		fenced := "```" + lang.Extension() + "\n" + code + "\n```\n"
		if out, err := r.renderer.Render(fenced); err == nil {
			return strings.Trim(out, "\n")
		}
	}
	return wordwrap.String(code, r.width)
}
