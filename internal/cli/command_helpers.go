package cli

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/pluqqy/confedit/pkg/api"
	"github.com/pluqqy/confedit/pkg/editor"
	"github.com/pluqqy/confedit/pkg/files"
	"github.com/pluqqy/confedit/pkg/logging"
	"github.com/pluqqy/confedit/pkg/models"
)

// ServerEnvVar overrides the server URL from the settings file
const ServerEnvVar = "CONFEDIT_SERVER"

// GlobalOptions holds the persistent flags shared by every command
type GlobalOptions struct {
	ConfigPath string
	Server     string
	Timeout    time.Duration
	LogLevel   string
	LogFile    string
	Quiet      bool
	NoColor    bool
	Yes        bool
}

// CommandContext resolves settings and builds the objects commands need
type CommandContext struct {
	Options  *GlobalOptions
	Settings *models.Settings

	logFile io.Closer
}

// NewCommandContext loads settings and applies environment and flag
// overrides, in that order
func NewCommandContext(opts *GlobalOptions) (*CommandContext, error) {
	if opts == nil {
		opts = &GlobalOptions{}
	}

	path := opts.ConfigPath
	if path == "" {
		var err error
		path, err = files.DefaultSettingsPath()
		if err != nil {
			logging.Warn("CLI", "Using default settings: %v", err)
		}
	}

	settings := models.DefaultSettings()
	if path != "" {
		loaded, err := files.ReadSettings(path)
		if err != nil {
			return nil, err
		}
		settings = loaded
	}

	if env := strings.TrimSpace(os.Getenv(ServerEnvVar)); env != "" {
		settings.Server.URL = env
	}
	if opts.Server != "" {
		settings.Server.URL = opts.Server
	}
	if opts.Timeout > 0 {
		settings.Server.Timeout = opts.Timeout
	}
	if opts.LogLevel != "" {
		settings.Logging.Level = opts.LogLevel
	}
	if opts.LogFile != "" {
		settings.Logging.File = opts.LogFile
	}

	SetGlobalFlags(opts.Quiet, opts.NoColor, opts.Yes)

	return &CommandContext{Options: opts, Settings: settings}, nil
}

// SetupLogging initializes the logger from settings. Without a log file,
// messages go to fallback; a nil fallback discards them.
func (c *CommandContext) SetupLogging(fallback io.Writer) error {
	level, err := logging.ParseLevel(c.Settings.Logging.Level)
	if err != nil {
		return err
	}

	w := fallback
	if c.Settings.Logging.File != "" {
		f, err := os.OpenFile(c.Settings.Logging.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		c.logFile = f
		w = f
	}

	logging.Init(level, w)
	return nil
}

// Close releases the log file, if any
func (c *CommandContext) Close() error {
	if c.logFile == nil {
		return nil
	}
	err := c.logFile.Close()
	c.logFile = nil
	return err
}

// Client builds an API client for the configured server
func (c *CommandContext) Client() (*api.Client, error) {
	client, err := api.NewClient(c.Settings.Server.URL, api.WithTimeout(c.Settings.Server.Timeout))
	if err != nil {
		return nil, err
	}
	return client, nil
}

// Controller builds an editor controller talking to the configured server
func (c *CommandContext) Controller(surface editor.Surface, confirm editor.Confirmer) (*editor.Controller, error) {
	client, err := c.Client()
	if err != nil {
		return nil, err
	}
	return editor.New(client, surface, confirm), nil
}

// EditorLauncher handles all editor-related operations
type EditorLauncher struct {
	DefaultEditor string
}

// NewEditorLauncher creates a new editor launcher. command wins over
// $EDITOR when set.
func NewEditorLauncher(command string) *EditorLauncher {
	editor := command
	if editor == "" {
		editor = os.Getenv("EDITOR")
	}
	if editor == "" {
		editor = "vi"
	}
	return &EditorLauncher{
		DefaultEditor: editor,
	}
}

// OpenFile opens a file in the configured editor
func (e *EditorLauncher) OpenFile(filepath string) error {
	parts := strings.Fields(e.DefaultEditor)
	if len(parts) == 0 {
		return fmt.Errorf("no editor configured")
	}

	editorCmd := exec.Command(parts[0], append(parts[1:], filepath)...)
	editorCmd.Stdin = os.Stdin
	editorCmd.Stdout = os.Stdout
	editorCmd.Stderr = os.Stderr

	if err := editorCmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}

	return nil
}

// OpenTempFile creates a temp file with content, opens it and returns the
// edited content. The temp file is removed afterwards.
func (e *EditorLauncher) OpenTempFile(pattern, content string) (string, error) {
	tmpFile, err := os.CreateTemp("", pattern)
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	name := tmpFile.Name()
	defer os.Remove(name)

	if _, err := tmpFile.WriteString(content); err != nil {
		tmpFile.Close()
		return "", fmt.Errorf("failed to write to temp file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return "", fmt.Errorf("failed to write to temp file: %w", err)
	}

	if err := e.OpenFile(name); err != nil {
		return "", err
	}

	edited, err := os.ReadFile(name)
	if err != nil {
		return "", fmt.Errorf("failed to read edited file: %w", err)
	}
	return string(edited), nil
}
