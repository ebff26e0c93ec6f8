package tui

import (
	"testing"

	"github.com/muesli/reflow/wordwrap"
	"github.com/stretchr/testify/assert"

	"github.com/pluqqy/pluqqy-convert/pkg/models"
)

func TestCodeRendererPlain(t *testing.T) {
	r := newCodeRenderer(false)
	r.setWidth(20)

	code := "def hello_world():\n    print(\"Hello, world!\")"
	assert.Equal(t, wordwrap.String(code, 20), r.Render(code, models.Python))
	assert.Empty(t, r.Render("", models.Python))
}

func TestCodeRendererHighlight(t *testing.T) {
	r := newCodeRenderer(true)
	r.setWidth(60)

	out := r.Render("fn main() {}", models.Rust)
	assert.NotEmpty(t, out)
	assert.Contains(t, out, "main")
}

func TestCodeRendererRebuildsOnWidthChange(t *testing.T) {
	r := newCodeRenderer(true)
	r.setWidth(40)
	first := r.renderer

	r.setWidth(40)
	assert.Same(t, first, r.renderer)

	r.setWidth(80)
	assert.Equal(t, 80, r.width)
	assert.NotNil(t, r.renderer)
}
