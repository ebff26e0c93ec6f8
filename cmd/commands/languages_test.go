package commands

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/pluqqy/pluqqy-convert/pkg/models"
)

func TestLanguagesText(t *testing.T) {
	path := writeTestSettings(t, func(s *models.Settings) {
		s.Conversion.DefaultLanguage = models.Rust
	})

	cmd := NewLanguagesCommand(&GlobalFlags{ConfigPath: path})
	out, _, err := runCommand(cmd)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2+len(models.Languages()))
	assert.Contains(t, lines[0], "LANGUAGE")
	assert.Contains(t, out, ".cpp")

	for _, line := range lines[2:] {
		if strings.HasPrefix(line, "Rust") {
			assert.True(t, strings.HasSuffix(strings.TrimSpace(line), "*"), "default language is marked")
		} else {
			assert.False(t, strings.HasSuffix(strings.TrimSpace(line), "*"), line)
		}
	}
}

func TestLanguagesYAML(t *testing.T) {
	path := writeTestSettings(t, func(s *models.Settings) {})

	cmd := NewLanguagesCommand(&GlobalFlags{ConfigPath: path})
	out, _, err := runCommand(cmd, "-o", "yaml")
	require.NoError(t, err)

	var langs []languageInfo
	require.NoError(t, yaml.Unmarshal([]byte(out), &langs))
	require.Len(t, langs, len(models.Languages()))
	assert.Equal(t, languageInfo{Name: "Python", Extension: "py", Default: true}, langs[0])
	assert.Equal(t, languageInfo{Name: "C++", Extension: "cpp"}, langs[2])
}
