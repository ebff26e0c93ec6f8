package models

import (
	"strings"
	"time"
)

// DefaultSnippet is the source shown on first launch and restored on reset
const DefaultSnippet = "function helloWorld(){\n  console.log(\"Hello, world!\");\n}"

// Settings represents the application configuration
type Settings struct {
	AI         AISettings         `yaml:"ai"`
	Readiness  ReadinessSettings  `yaml:"readiness"`
	Conversion ConversionSettings `yaml:"conversion"`
	UI         UISettings         `yaml:"ui"`
	Logging    LogSettings        `yaml:"logging"`
}

// AISettings selects and configures the chat backend
type AISettings struct {
	Provider  string        `yaml:"provider"` // "gemini", "openai" or "ollama"
	Model     string        `yaml:"model"`
	BaseURL   string        `yaml:"base_url"`
	APIKeyEnv string        `yaml:"api_key_env"`
	Timeout   time.Duration `yaml:"timeout"`
}

// ReadinessSettings controls how often the backend is probed before it is ready
type ReadinessSettings struct {
	PollInterval time.Duration `yaml:"poll_interval"`
	MaxInterval  time.Duration `yaml:"max_interval"`
	Multiplier   float64       `yaml:"multiplier"`
}

// ConversionSettings holds defaults for the conversion controller
type ConversionSettings struct {
	DefaultLanguage Language `yaml:"default_language"`
	DefaultSnippet  string   `yaml:"default_snippet"`
}

// UISettings controls UI preferences
type UISettings struct {
	ShowTokenEstimate bool `yaml:"show_token_estimate"`
	Highlight         bool `yaml:"highlight"` // syntax highlight converted code
}

// LogSettings controls the diagnostic log file
type LogSettings struct {
	Enabled bool   `yaml:"enabled"`
	Level   string `yaml:"level"` // "debug", "info", "warn" or "error"
	File    string `yaml:"file"`
}

// ProviderDefaults holds the model and key variable used when a settings
// file names a provider without them
type ProviderDefaults struct {
	Model     string
	APIKeyEnv string
}

var providerDefaults = map[string]ProviderDefaults{
	"gemini": {Model: "gemini-2.5-flash", APIKeyEnv: "GEMINI_API_KEY"},
	"openai": {Model: "gpt-4o-mini", APIKeyEnv: "OPENAI_API_KEY"},
	"ollama": {Model: "llama3.2"},
}

// DefaultsFor returns the defaults for provider. Unknown providers get none.
func DefaultsFor(provider string) ProviderDefaults {
	return providerDefaults[strings.ToLower(strings.TrimSpace(provider))]
}

// DefaultSettings returns the default configuration
func DefaultSettings() *Settings {
	gemini := DefaultsFor("gemini")
	return &Settings{
		AI: AISettings{
			Provider:  "gemini",
			Model:     gemini.Model,
			APIKeyEnv: gemini.APIKeyEnv,
			Timeout:   2 * time.Minute,
		},
		Readiness: ReadinessSettings{
			PollInterval: 300 * time.Millisecond,
			MaxInterval:  300 * time.Millisecond,
			Multiplier:   1.0,
		},
		Conversion: ConversionSettings{
			DefaultLanguage: Python,
			DefaultSnippet:  DefaultSnippet,
		},
		UI: UISettings{
			ShowTokenEstimate: true,
			Highlight:         true,
		},
		Logging: LogSettings{
			Enabled: true,
			Level:   "info",
			File:    ".pluqqy/logs/convert.log",
		},
	}
}

// ApplyDefaults fills zero values left by a partial settings file. Model and
// key variable follow the configured provider.
func (s *Settings) ApplyDefaults() {
	d := DefaultSettings()
	if s.AI.Provider == "" {
		s.AI.Provider = d.AI.Provider
	}
	pd := DefaultsFor(s.AI.Provider)
	if s.AI.Model == "" {
		s.AI.Model = pd.Model
	}
	if s.AI.APIKeyEnv == "" {
		s.AI.APIKeyEnv = pd.APIKeyEnv
	}
	if s.AI.Timeout <= 0 {
		s.AI.Timeout = d.AI.Timeout
	}
	if s.Readiness.PollInterval <= 0 {
		s.Readiness.PollInterval = d.Readiness.PollInterval
	}
	if s.Readiness.MaxInterval < s.Readiness.PollInterval {
		s.Readiness.MaxInterval = s.Readiness.PollInterval
	}
	if s.Readiness.Multiplier < 1 {
		s.Readiness.Multiplier = d.Readiness.Multiplier
	}
	if !s.Conversion.DefaultLanguage.Valid() {
		s.Conversion.DefaultLanguage = d.Conversion.DefaultLanguage
	}
	if s.Conversion.DefaultSnippet == "" {
		s.Conversion.DefaultSnippet = d.Conversion.DefaultSnippet
	}
	if s.Logging.Level == "" {
		s.Logging.Level = d.Logging.Level
	}
	if s.Logging.File == "" {
		s.Logging.File = d.Logging.File
	}
}
