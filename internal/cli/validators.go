package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

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

// ValidateOutputFormat validates the output format flag against the
// formats a command supports
func ValidateOutputFormat(format string, allowed ...OutputFormat) error {
	if len(allowed) == 0 {
		allowed = []OutputFormat{FormatText, FormatJSON, FormatYAML}
	}
	names := make([]string, 0, len(allowed))
	for _, valid := range allowed {
		if OutputFormat(format) == valid {
			return nil
		}
		names = append(names, string(valid))
	}
	return fmt.Errorf("invalid output format: %s (must be: %s)", format, strings.Join(names, ", "))
}

// ValidateBackupName validates a backup filename passed on the command line
func ValidateBackupName(name string) error {
	if name == "" {
		return fmt.Errorf("backup name cannot be empty")
	}

	// Check for invalid characters
	invalidChars := []string{"/", "\\", "..", "~", "$", "`"}
	for _, char := range invalidChars {
		if strings.Contains(name, char) {
			return fmt.Errorf("backup name contains invalid character: %s", char)
		}
	}

	return nil
}
