package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pluqqy/pluqqy-convert/pkg/models"
)

// ValidateLanguage parses a target language flag
func ValidateLanguage(s string) (models.Language, error) {
	lang, err := models.ParseLanguage(s)
	if err != nil {
		names := make([]string, 0, len(models.Languages()))
		for _, l := range models.Languages() {
			names = append(names, l.String())
		}
		return "", fmt.Errorf("invalid target language: %s (must be one of: %s)", s, strings.Join(names, ", "))
	}
	return lang, nil
}

// ValidateSourcePath accepts "-" for standard input or an existing file
func ValidateSourcePath(path string) error {
	if path == "-" {
		return nil
	}
	return ValidateFilePath(path)
}

// ValidateFilePath validates that a file path exists and is a file
func ValidateFilePath(path string) error {
	if !filepath.IsAbs(path) {
		path, _ = filepath.Abs(path)
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("path does not exist: %s", path)
		}
		return fmt.Errorf("error accessing path: %w", err)
	}

	if info.IsDir() {
		return fmt.Errorf("path is a directory, expected file: %s", path)
	}

	return nil
}

// ValidateOutputDir accepts a missing directory, since it is created on
// write, but rejects a path that exists as a file
func ValidateOutputDir(path string) error {
	if path == "" {
		return nil
	}
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("error accessing directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("path is not a directory: %s", path)
	}
	return nil
}

// ValidateOutputFormat validates the output format flag
func ValidateOutputFormat(format string) error {
	switch OutputFormat(format) {
	case FormatText, FormatJSON, FormatYAML:
		return nil
	}
	return fmt.Errorf("invalid output format: %s (must be: text, json, or yaml)", format)
}

// ValidateJobs bounds the number of concurrent conversions
func ValidateJobs(n int) error {
	if n < 1 {
		return fmt.Errorf("jobs must be at least 1, got %d", n)
	}
	return nil
}
