// Package logging builds the diagnostic logger. The terminal belongs to the
// UI, so log lines go to a file as JSON.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/pluqqy/pluqqy-convert/pkg/models"
)

// New returns a logger for the given settings. Disabled logging yields a no-op
// logger. verbose forces the debug level.
//
// A relative log path is only used when its top directory already exists, so
// the default .pluqqy/logs/convert.log is written inside initialized projects
// and nowhere else.
func New(cfg models.LogSettings, verbose bool) (*zap.Logger, error) {
	if !cfg.Enabled || cfg.File == "" {
		return zap.NewNop(), nil
	}
	if root := topDir(cfg.File); root != "" {
		if info, err := os.Stat(root); err != nil || !info.IsDir() {
			return zap.NewNop(), nil
		}
	}

	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	if verbose {
		level = zapcore.DebugLevel
	}

	if err := os.MkdirAll(filepath.Dir(cfg.File), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(level)
	config.OutputPaths = []string{cfg.File}
	config.ErrorOutputPaths = []string{cfg.File}
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.Sampling = nil

	logger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}

// ParseLevel accepts the level names used in settings.yaml; empty means info
func ParseLevel(s string) (zapcore.Level, error) {
	if strings.TrimSpace(s) == "" {
		return zapcore.InfoLevel, nil
	}
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(strings.ToLower(strings.TrimSpace(s)))); err != nil {
		return zapcore.InfoLevel, fmt.Errorf("invalid log level %q: %w", s, err)
	}
	return level, nil
}

// topDir returns the first element of a relative path that has a directory
// part, or "" otherwise
func topDir(path string) string {
	if filepath.IsAbs(path) {
		return ""
	}
	parts := strings.SplitN(filepath.ToSlash(filepath.Clean(path)), "/", 2)
	if len(parts) < 2 {
		return ""
	}
	return parts[0]
}
