package files

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pluqqy/pluqqy-convert/pkg/models"
	"gopkg.in/yaml.v3"
)

const (
	PluqqyDir    = ".pluqqy"
	LogsDir      = "logs"
	SettingsFile = "settings.yaml"
)

// SettingsPath is where ReadSettings looks by default
var SettingsPath = filepath.Join(PluqqyDir, SettingsFile)

func InitProjectStructure() error {
	dirs := []string{
		PluqqyDir,
		filepath.Join(PluqqyDir, LogsDir),
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	if _, err := os.Stat(SettingsPath); os.IsNotExist(err) {
		return WriteSettings(models.DefaultSettings())
	}
	return nil
}

// ReadSettings reads the project settings file
func ReadSettings() (*models.Settings, error) {
	return ReadSettingsFrom(SettingsPath)
}

// ReadSettingsFrom reads settings from path. A missing file yields the
// defaults; missing keys in an existing file are filled with defaults.
func ReadSettingsFrom(path string) (*models.Settings, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return models.DefaultSettings(), nil
		}
		return nil, fmt.Errorf("failed to read settings %s: %w", path, err)
	}

	// AI fields start empty so a file that only switches the provider picks
	// up that provider's model and key variable
	settings := models.DefaultSettings()
	settings.AI = models.AISettings{}
	if err := yaml.Unmarshal(content, settings); err != nil {
		return nil, fmt.Errorf("failed to parse settings YAML %s: %w", path, err)
	}
	settings.ApplyDefaults()

	return settings, nil
}

func WriteSettings(settings *models.Settings) error {
	return WriteSettingsTo(SettingsPath, settings)
}

func WriteSettingsTo(path string, settings *models.Settings) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory for settings: %w", err)
	}

	content, err := yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings to YAML: %w", err)
	}

	if err := os.WriteFile(path, content, 0644); err != nil {
		return fmt.Errorf("failed to write settings %s: %w", path, err)
	}

	return nil
}

// ReadSource reads a source file to convert
func ReadSource(path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read source %s: %w", path, err)
	}
	return string(content), nil
}

// OutputPath names the converted file for source inside dir, e.g.
// "src/hello.js" converted to Go becomes "<dir>/hello.go". Standard input ("-")
// is written as "converted.<ext>".
func OutputPath(dir, source string, target models.Language) string {
	base := filepath.Base(source)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	if base == "" || base == "." || base == "-" || base == string(filepath.Separator) {
		base = "converted"
	}
	return filepath.Join(dir, base+"."+target.Extension())
}

// WriteFile writes content to a file, creating its directory
func WriteFile(path string, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write file %s: %w", path, err)
	}
	return nil
}
