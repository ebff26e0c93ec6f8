package providers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pluqqy/pluqqy-convert/pkg/ai/gemini"
	"github.com/pluqqy/pluqqy-convert/pkg/ai/ollama"
	"github.com/pluqqy/pluqqy-convert/pkg/ai/openai"
	"github.com/pluqqy/pluqqy-convert/pkg/models"
)

func withEnv(t *testing.T, env map[string]string) {
	t.Helper()
	original := lookupEnv
	lookupEnv = func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
	t.Cleanup(func() { lookupEnv = original })
}

func TestNewProbeKeyProviders(t *testing.T) {
	tests := []struct {
		name     string
		cfg      models.AISettings
		env      map[string]string
		wantOK   bool
		wantType any
	}{
		{
			name:   "gemini without key",
			cfg:    models.AISettings{Provider: "gemini"},
			env:    map[string]string{},
			wantOK: false,
		},
		{
			name:   "gemini with blank key",
			cfg:    models.AISettings{Provider: "gemini"},
			env:    map[string]string{"GEMINI_API_KEY": "  "},
			wantOK: false,
		},
		{
			name:     "gemini with default key env",
			cfg:      models.AISettings{Provider: "Gemini", Timeout: time.Second},
			env:      map[string]string{"GEMINI_API_KEY": "k"},
			wantOK:   true,
			wantType: &gemini.Client{},
		},
		{
			name:     "openai with custom key env",
			cfg:      models.AISettings{Provider: "openai", APIKeyEnv: "MY_KEY", Model: "gpt-4o-mini"},
			env:      map[string]string{"MY_KEY": "sk-test"},
			wantOK:   true,
			wantType: &openai.Client{},
		},
		{
			name:   "openai ignores other variables",
			cfg:    models.AISettings{Provider: "openai", APIKeyEnv: "MY_KEY"},
			env:    map[string]string{"OPENAI_API_KEY": "sk-test"},
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withEnv(t, tt.env)
			probe, err := NewProbe(tt.cfg, nil)
			require.NoError(t, err)

			handle, ok := probe()
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.IsType(t, tt.wantType, handle)
			}
		})
	}
}

func TestNewProbeOllama(t *testing.T) {
	probe, err := NewProbe(models.AISettings{Provider: "ollama"}, nil)
	require.NoError(t, err)
	_, ok := probe()
	assert.False(t, ok, "ollama needs a model")

	probe, err = NewProbe(models.AISettings{Provider: "ollama", Model: "llama3"}, nil)
	require.NoError(t, err)
	handle, ok := probe()
	require.True(t, ok)
	assert.IsType(t, &ollama.Client{}, handle)
}

func TestNewProbeUnknownProvider(t *testing.T) {
	_, err := NewProbe(models.AISettings{Provider: "bard"}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported AI provider")
}

func TestProbeCachesHandle(t *testing.T) {
	env := map[string]string{"OPENAI_API_KEY": "sk-test"}
	withEnv(t, env)

	probe, err := NewProbe(models.AISettings{Provider: "openai"}, nil)
	require.NoError(t, err)

	first, ok := probe()
	require.True(t, ok)

	// Once found, the handle survives the key going away
	delete(env, "OPENAI_API_KEY")
	second, ok := probe()
	require.True(t, ok)
	assert.Same(t, first, second)
}

func TestNewProbeSwitchedProviderUsesItsOwnKey(t *testing.T) {
	settings := &models.Settings{AI: models.AISettings{Provider: "openai"}}
	settings.ApplyDefaults()

	withEnv(t, map[string]string{"GEMINI_API_KEY": "g-key"})
	probe, err := NewProbe(settings.AI, nil)
	require.NoError(t, err)
	_, ok := probe()
	assert.False(t, ok, "a gemini key must not make openai ready")

	withEnv(t, map[string]string{"OPENAI_API_KEY": "sk-test"})
	probe, err = NewProbe(settings.AI, nil)
	require.NoError(t, err)
	handle, ok := probe()
	require.True(t, ok)
	assert.IsType(t, &openai.Client{}, handle)
}
