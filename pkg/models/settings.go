package models

import "time"

// Settings represents the application configuration
type Settings struct {
	Server  ServerSettings  `yaml:"server"`
	UI      UISettings      `yaml:"ui"`
	Editor  EditorSettings  `yaml:"editor"`
	Logging LoggingSettings `yaml:"logging"`
}

// ServerSettings controls how the config API is reached
type ServerSettings struct {
	URL     string        `yaml:"url"`
	Timeout time.Duration `yaml:"timeout"` // 0 disables the per-request timeout
}

// UISettings controls TUI preferences
type UISettings struct {
	SuccessBanner   time.Duration `yaml:"success_banner"`
	ErrorBanner     time.Duration `yaml:"error_banner"`
	ShowLineNumbers bool          `yaml:"show_line_numbers"`
	ShowBackups     bool          `yaml:"show_backups"`
}

// EditorSettings controls the external editor used by `confedit edit`
type EditorSettings struct {
	Command string `yaml:"command"`
}

// LoggingSettings controls diagnostic output
type LoggingSettings struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// DefaultSettings returns the default configuration
func DefaultSettings() *Settings {
	return &Settings{
		Server: ServerSettings{
			URL: "http://localhost:5000",
		},
		UI: UISettings{
			SuccessBanner:   3 * time.Second,
			ErrorBanner:     5 * time.Second,
			ShowLineNumbers: true,
			ShowBackups:     true,
		},
		Logging: LoggingSettings{
			Level: "warn",
		},
	}
}
