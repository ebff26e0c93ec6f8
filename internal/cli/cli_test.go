package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pluqqy/pluqqy-convert/pkg/files"
	"github.com/pluqqy/pluqqy-convert/pkg/models"
)

// captureOutput swaps the package streams for buffers
func captureOutput(t *testing.T, input string) (*bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	oldOut, oldErr, oldIn := stdout, stderr, stdin
	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
	stdout, stderr, stdin = out, errOut, strings.NewReader(input)
	t.Cleanup(func() {
		stdout, stderr, stdin = oldOut, oldErr, oldIn
		SetGlobalFlags(false, false, false)
	})
	return out, errOut
}

func TestPrintHelpers(t *testing.T) {
	tests := []struct {
		name    string
		quiet   bool
		noColor bool
		wantOut string
		wantErr string
	}{
		{
			name:    "symbols",
			wantOut: "✓ done\nℹ note\n",
			wantErr: "⚠ careful\n✗ broken\n",
		},
		{
			name:    "no color",
			noColor: true,
			wantOut: "OK: done\nINFO: note\n",
			wantErr: "WARNING: careful\nERROR: broken\n",
		},
		{
			name:    "quiet keeps warnings and errors",
			quiet:   true,
			wantOut: "",
			wantErr: "⚠ careful\n✗ broken\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, errOut := captureOutput(t, "")
			SetGlobalFlags(tt.quiet, tt.noColor, false)

			PrintSuccess("done")
			PrintInfo("note")
			PrintWarning("careful")
			PrintError("broken")

			assert.Equal(t, tt.wantOut, out.String())
			assert.Equal(t, tt.wantErr, errOut.String())
			assert.Equal(t, tt.quiet, Quiet())
		})
	}
}

func TestConfirm(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		defaultYes bool
		skip       bool
		want       bool
	}{
		{name: "yes", input: "y\n", want: true},
		{name: "full yes", input: "YES\n", want: true},
		{name: "no", input: "n\n", defaultYes: true, want: false},
		{name: "empty uses default yes", input: "\n", defaultYes: true, want: true},
		{name: "empty uses default no", input: "\n", want: false},
		{name: "eof uses default", input: "", want: false},
		{name: "skip confirm", input: "n\n", skip: true, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, errOut := captureOutput(t, tt.input)
			SetGlobalFlags(false, false, tt.skip)

			got, err := Confirm("Overwrite out.go?", tt.defaultYes)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			if !tt.skip {
				assert.Contains(t, errOut.String(), "Overwrite out.go?")
			}
		})
	}
}

func TestValidateLanguage(t *testing.T) {
	lang, err := ValidateLanguage("cpp")
	require.NoError(t, err)
	assert.Equal(t, models.CPlusPlus, lang)

	_, err = ValidateLanguage("fortran")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Python, Java, C++, Go, Rust, TypeScript")
}

func TestValidatePaths(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "in.js")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0644))

	assert.NoError(t, ValidateSourcePath("-"))
	assert.NoError(t, ValidateSourcePath(file))
	assert.Error(t, ValidateSourcePath(filepath.Join(dir, "missing.js")))
	assert.Error(t, ValidateFilePath(dir))

	assert.NoError(t, ValidateOutputDir(""))
	assert.NoError(t, ValidateOutputDir(dir))
	assert.NoError(t, ValidateOutputDir(filepath.Join(dir, "new")))
	assert.Error(t, ValidateOutputDir(file))
}

func TestValidateOutputFormatAndJobs(t *testing.T) {
	for _, f := range []string{"text", "json", "yaml"} {
		assert.NoError(t, ValidateOutputFormat(f))
	}
	assert.Error(t, ValidateOutputFormat("xml"))

	assert.NoError(t, ValidateJobs(1))
	assert.Error(t, ValidateJobs(0))
}

func TestOutputResults(t *testing.T) {
	data := []map[string]string{{"name": "Go"}}

	var buf bytes.Buffer
	require.NoError(t, OutputResults(&buf, "json", data))
	assert.JSONEq(t, `[{"name":"Go"}]`, buf.String())

	buf.Reset()
	require.NoError(t, OutputResults(&buf, "yaml", data))
	assert.Equal(t, "- name: Go\n", buf.String())

	assert.Error(t, OutputResults(&buf, "xml", data))
}

func TestTableFormatter(t *testing.T) {
	var buf bytes.Buffer
	table := NewTableFormatter(&buf)
	table.Header("LANGUAGE", "EXTENSION")
	table.Row("Go", ".go")
	table.Flush()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "LANGUAGE  EXTENSION"))
	assert.True(t, strings.HasPrefix(lines[2], "Go        .go"))
}

func TestStringHelpers(t *testing.T) {
	assert.Equal(t, "hello", TruncateString("hello", 10))
	assert.Equal(t, "he...", TruncateString("hello world", 5))
	assert.Equal(t, "hé", TruncateString("héllo", 2))

	assert.Equal(t, "first", FirstLine("\n  first\nsecond"))
	assert.Equal(t, "", FirstLine("  \n"))
}

func TestCommandContextSettings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	settings := models.DefaultSettings()
	settings.AI.Provider = "ollama"
	settings.Conversion.DefaultLanguage = models.Go
	settings.Conversion.DefaultSnippet = "x = 1"
	settings.Logging.Enabled = false
	require.NoError(t, files.WriteSettingsTo(path, settings))

	cc := NewCommandContext(path, false)
	defer cc.Close()

	loaded, err := cc.LoadSettings()
	require.NoError(t, err)
	assert.Equal(t, "ollama", loaded.AI.Provider)

	c := cc.NewController(nil)
	assert.Equal(t, models.Go, c.Target())
	assert.Equal(t, "x = 1", c.Source())
}

func TestCommandContextDefaultsOnBadSettings(t *testing.T) {
	_, _ = captureOutput(t, "")
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte("ai: [broken"), 0644))

	cc := NewCommandContext(path, false)
	_, err := cc.LoadSettings()
	require.Error(t, err)

	settings := cc.LoadSettingsWithDefault()
	assert.Equal(t, models.DefaultSettings().AI.Provider, settings.AI.Provider)
}

func TestCommandContextMonitor(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	settings := models.DefaultSettings()
	settings.AI = models.AISettings{Provider: "ollama", Model: "llama3", Timeout: time.Second}
	settings.Readiness.PollInterval = 10 * time.Millisecond
	settings.Logging.Enabled = false
	require.NoError(t, files.WriteSettingsTo(path, settings))

	cc := NewCommandContext(path, true)
	defer cc.Close()

	monitor, err := cc.Monitor(t.Context())
	require.NoError(t, err)

	select {
	case <-monitor.Ready():
	case <-time.After(2 * time.Second):
		t.Fatal("monitor never became ready")
	}

	again, err := cc.Monitor(t.Context())
	require.NoError(t, err)
	assert.Same(t, monitor, again)
}

func TestCommandContextUnsupportedProvider(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	settings := models.DefaultSettings()
	settings.AI.Provider = "carrier-pigeon"
	settings.Logging.Enabled = false
	require.NoError(t, files.WriteSettingsTo(path, settings))

	cc := NewCommandContext(path, false)
	defer cc.Close()

	_, err := cc.Monitor(t.Context())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported AI provider")
}

func TestReadStdin(t *testing.T) {
	_, _ = captureOutput(t, "print('hi')\n")

	content, err := ReadStdin()
	require.NoError(t, err)
	assert.Equal(t, "print('hi')\n", content)
}
