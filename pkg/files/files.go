package files

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pluqqy/confedit/pkg/models"
	"gopkg.in/yaml.v3"
)

const (
	AppDir       = "confedit"
	SettingsFile = "settings.yaml"
)

// ErrSettingsExist is returned by InitSettings when a settings file is
// already present and force was not requested.
var ErrSettingsExist = errors.New("settings file already exists")

// DefaultSettingsPath returns $XDG_CONFIG_HOME/confedit/settings.yaml (or the
// platform equivalent).
func DefaultSettingsPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate user config directory: %w", err)
	}
	return filepath.Join(dir, AppDir, SettingsFile), nil
}

// ReadSettings loads settings from path. Fields missing from the file keep
// their defaults; a missing file yields the defaults.
func ReadSettings(path string) (*models.Settings, error) {
	settings := models.DefaultSettings()

	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return settings, nil
		}
		return nil, fmt.Errorf("failed to read settings %s: %w", path, err)
	}

	if err := yaml.Unmarshal(content, settings); err != nil {
		return nil, fmt.Errorf("failed to parse settings %s: %w", path, err)
	}
	return settings, nil
}

// WriteSettings writes settings to path, creating parent directories.
func WriteSettings(path string, settings *models.Settings) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create settings directory: %w", err)
	}

	content, err := yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	if err := os.WriteFile(path, content, 0644); err != nil {
		return fmt.Errorf("failed to write settings %s: %w", path, err)
	}
	return nil
}

// InitSettings writes a default settings file pointing at serverURL.
func InitSettings(path, serverURL string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%w: %s", ErrSettingsExist, path)
	}

	settings := models.DefaultSettings()
	if serverURL != "" {
		settings.Server.URL = serverURL
	}
	return WriteSettings(path, settings)
}

// ReadDocument reads a local JSON document as raw text.
func ReadDocument(path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return string(content), nil
}

// WriteDocument writes raw document text to path.
func WriteDocument(path string, content string) error {
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write file %s: %w", path, err)
	}
	return nil
}
