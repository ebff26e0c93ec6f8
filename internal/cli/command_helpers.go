package cli

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/pluqqy/pluqqy-convert/pkg/ai/providers"
	"github.com/pluqqy/pluqqy-convert/pkg/capability"
	"github.com/pluqqy/pluqqy-convert/pkg/convert"
	"github.com/pluqqy/pluqqy-convert/pkg/files"
	"github.com/pluqqy/pluqqy-convert/pkg/logging"
	"github.com/pluqqy/pluqqy-convert/pkg/models"
)

// CommandContext carries what every command needs: settings, the log sink
// and the AI capability monitor
type CommandContext struct {
	SettingsPath string
	Verbose      bool
	Settings     *models.Settings

	logger  *zap.Logger
	monitor *capability.Monitor
}

// NewCommandContext creates a command context. An empty settingsPath uses
// the project default.
func NewCommandContext(settingsPath string, verbose bool) *CommandContext {
	if settingsPath == "" {
		settingsPath = files.SettingsPath
	}
	return &CommandContext{
		SettingsPath: settingsPath,
		Verbose:      verbose,
	}
}

// LoadSettings reads the settings file. A missing file yields the defaults.
func (c *CommandContext) LoadSettings() (*models.Settings, error) {
	if c.Settings != nil {
		return c.Settings, nil
	}
	settings, err := files.ReadSettingsFrom(c.SettingsPath)
	if err != nil {
		return nil, err
	}
	c.Settings = settings
	return settings, nil
}

// LoadSettingsWithDefault loads settings or returns the defaults on error
func (c *CommandContext) LoadSettingsWithDefault() *models.Settings {
	settings, err := c.LoadSettings()
	if err != nil {
		PrintWarning("Using default settings: %v", err)
		settings = models.DefaultSettings()
		c.Settings = settings
	}
	return settings
}

// Logger builds the file logger on first use. If the log file cannot be
// opened, logging is disabled rather than failing the command.
func (c *CommandContext) Logger() *zap.Logger {
	if c.logger != nil {
		return c.logger
	}
	settings := c.LoadSettingsWithDefault()
	logger, err := logging.New(settings.Logging, c.Verbose)
	if err != nil {
		PrintWarning("Logging disabled: %v", err)
		logger = zap.NewNop()
	}
	c.logger = logger
	return logger
}

// Monitor builds the capability monitor for the configured provider and
// starts polling. Stop it with Close.
func (c *CommandContext) Monitor(ctx context.Context) (*capability.Monitor, error) {
	if c.monitor != nil {
		return c.monitor, nil
	}
	settings := c.LoadSettingsWithDefault()
	logger := c.Logger()

	probe, err := providers.NewProbe(settings.AI, logger)
	if err != nil {
		return nil, err
	}

	monitor := capability.NewMonitor(probe, settings.Readiness, logger)
	monitor.Start(ctx)
	c.monitor = monitor
	return monitor, nil
}

// NewController returns a controller using the configured default language
// and snippet
func (c *CommandContext) NewController(capab convert.Capability) *convert.Controller {
	settings := c.LoadSettingsWithDefault()
	return convert.NewController(capab,
		convert.WithLogger(c.Logger()),
		convert.WithDefaultSnippet(settings.Conversion.DefaultSnippet),
		convert.WithLanguage(settings.Conversion.DefaultLanguage),
	)
}

// Close stops the monitor and flushes the logger
func (c *CommandContext) Close() {
	if c.monitor != nil {
		c.monitor.Stop()
	}
	if c.logger != nil {
		_ = c.logger.Sync()
	}
}

// ReadStdin reads all of standard input
func ReadStdin() (string, error) {
	content, err := io.ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("failed to read standard input: %w", err)
	}
	return string(content), nil
}
