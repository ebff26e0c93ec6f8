// Package providers builds the capability probe for the configured backend.
package providers

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/pluqqy/pluqqy-convert/pkg/ai"
	"github.com/pluqqy/pluqqy-convert/pkg/ai/gemini"
	"github.com/pluqqy/pluqqy-convert/pkg/ai/ollama"
	"github.com/pluqqy/pluqqy-convert/pkg/ai/openai"
	"github.com/pluqqy/pluqqy-convert/pkg/capability"
	"github.com/pluqqy/pluqqy-convert/pkg/models"
)

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
	ProviderOllama = "ollama"
)

// Names lists the supported provider identifiers
func Names() []string {
	return []string{ProviderGemini, ProviderOpenAI, ProviderOllama}
}

// lookupEnv is swapped in tests
var lookupEnv = os.LookupEnv

// NewProbe returns a presence probe for the configured provider.
//
// The probe never sends a request. For key-based providers it checks that the
// key variable is set; for Ollama it only needs a model name. The backend
// client is built once, the first time the probe succeeds.
func NewProbe(cfg models.AISettings, logger *zap.Logger) (capability.Probe, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	provider := strings.ToLower(strings.TrimSpace(cfg.Provider))

	switch provider {
	case ProviderGemini, ProviderOpenAI:
		keyEnv := cfg.APIKeyEnv
		if keyEnv == "" {
			keyEnv = models.DefaultsFor(provider).APIKeyEnv
		}
		return cached(func() (ai.Chatter, bool) {
			key, ok := lookupEnv(keyEnv)
			if !ok || strings.TrimSpace(key) == "" {
				return nil, false
			}
			chatter, err := build(provider, cfg, strings.TrimSpace(key))
			if err != nil {
				logger.Warn("failed to build AI client",
					zap.String("provider", provider),
					zap.Error(err))
				return nil, false
			}
			return chatter, true
		}), nil

	case ProviderOllama:
		return cached(func() (ai.Chatter, bool) {
			if strings.TrimSpace(cfg.Model) == "" {
				return nil, false
			}
			return ollama.NewClient(cfg.BaseURL, cfg.Model, cfg.Timeout), true
		}), nil
	}

	return nil, fmt.Errorf("unsupported AI provider: %s (must be one of: %s)", cfg.Provider, strings.Join(Names(), ", "))
}

func build(provider string, cfg models.AISettings, key string) (ai.Chatter, error) {
	switch provider {
	case ProviderGemini:
		return gemini.NewClient(context.Background(), key, cfg.Model, cfg.Timeout)
	case ProviderOpenAI:
		return openai.NewClient(cfg.BaseURL, key, cfg.Model, cfg.Timeout), nil
	}
	return nil, fmt.Errorf("unsupported AI provider: %s", provider)
}

// cached remembers the first successful probe result
func cached(probe capability.Probe) capability.Probe {
	var (
		mu     sync.Mutex
		handle ai.Chatter
	)
	return func() (ai.Chatter, bool) {
		mu.Lock()
		defer mu.Unlock()
		if handle != nil {
			return handle, true
		}
		h, ok := probe()
		if ok {
			handle = h
		}
		return h, ok
	}
}
