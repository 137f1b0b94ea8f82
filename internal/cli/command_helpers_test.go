package cli

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pluqqy/confedit/pkg/logging"
	"github.com/pluqqy/confedit/pkg/models"
)

func writeSettings(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "settings.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write settings: %v", err)
	}
	return path
}

func TestNewCommandContextPrecedence(t *testing.T) {
	t.Cleanup(func() { SetGlobalFlags(false, false, false) })
	path := writeSettings(t, "server:\n  url: http://from-file:5000\n  timeout: 2s\nlogging:\n  level: error\n")

	tests := []struct {
		name        string
		env         string
		opts        GlobalOptions
		wantURL     string
		wantTimeout time.Duration
		wantLevel   string
	}{
		{
			name:        "file only",
			wantURL:     "http://from-file:5000",
			wantTimeout: 2 * time.Second,
			wantLevel:   "error",
		},
		{
			name:        "env beats file",
			env:         "http://from-env:5000",
			wantURL:     "http://from-env:5000",
			wantTimeout: 2 * time.Second,
			wantLevel:   "error",
		},
		{
			name:        "flags beat env",
			env:         "http://from-env:5000",
			opts:        GlobalOptions{Server: "http://from-flag:5000", Timeout: time.Second, LogLevel: "debug"},
			wantURL:     "http://from-flag:5000",
			wantTimeout: time.Second,
			wantLevel:   "debug",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(ServerEnvVar, tt.env)
			opts := tt.opts
			opts.ConfigPath = path

			ctx, err := NewCommandContext(&opts)
			if err != nil {
				t.Fatalf("NewCommandContext failed: %v", err)
			}
			if ctx.Settings.Server.URL != tt.wantURL {
				t.Errorf("URL = %q, want %q", ctx.Settings.Server.URL, tt.wantURL)
			}
			if ctx.Settings.Server.Timeout != tt.wantTimeout {
				t.Errorf("Timeout = %v, want %v", ctx.Settings.Server.Timeout, tt.wantTimeout)
			}
			if ctx.Settings.Logging.Level != tt.wantLevel {
				t.Errorf("Level = %q, want %q", ctx.Settings.Logging.Level, tt.wantLevel)
			}
		})
	}
}

func TestNewCommandContextBadSettings(t *testing.T) {
	path := writeSettings(t, "server: [")
	if _, err := NewCommandContext(&GlobalOptions{ConfigPath: path}); err == nil {
		t.Error("expected invalid settings to fail")
	}
}

func TestCommandContextClient(t *testing.T) {
	ctx := &CommandContext{Options: &GlobalOptions{}, Settings: models.DefaultSettings()}
	client, err := ctx.Client()
	if err != nil {
		t.Fatalf("Client failed: %v", err)
	}
	if client.BaseURL() != "http://localhost:5000" {
		t.Errorf("unexpected base URL %q", client.BaseURL())
	}

	ctx.Settings.Server.URL = "not a url"
	if _, err := ctx.Controller(nil, nil); err == nil {
		t.Error("expected invalid server URL to fail")
	}
}

func TestSetupLoggingToFile(t *testing.T) {
	settings := models.DefaultSettings()
	settings.Logging.File = filepath.Join(t.TempDir(), "confedit.log")
	ctx := &CommandContext{Options: &GlobalOptions{}, Settings: settings}
	t.Cleanup(func() { logging.Init(logging.LevelWarn, nil) })

	if err := ctx.SetupLogging(nil); err != nil {
		t.Fatalf("SetupLogging failed: %v", err)
	}
	if err := ctx.Close(); err != nil {
		t.Errorf("Close failed: %v", err)
	}
	if _, err := os.Stat(settings.Logging.File); err != nil {
		t.Errorf("expected log file to be created: %v", err)
	}

	settings.Logging.Level = "loud"
	if err := ctx.SetupLogging(nil); err == nil {
		t.Error("expected unknown level to fail")
	}
}

func TestEditorLauncherCommand(t *testing.T) {
	t.Setenv("EDITOR", "nano")
	if got := NewEditorLauncher("").DefaultEditor; got != "nano" {
		t.Errorf("expected $EDITOR, got %q", got)
	}
	if got := NewEditorLauncher("code --wait").DefaultEditor; got != "code --wait" {
		t.Errorf("expected explicit command, got %q", got)
	}
}

func TestConsoleSurfaceRecordsState(t *testing.T) {
	out, _ := withStreams(t, "")
	SetGlobalFlags(true, true, false)

	s := NewConsoleSurface("Loading config...")
	s.SetLoading(true)
	s.SetLoading(false)
	s.SetText("{}", 1)
	s.SetFileInfo(models.FileInfo{SizeBytes: 2})
	s.SetBackups([]models.Backup{{Filename: "config_backup_a.json"}})
	s.ShowSuccess("done")

	if s.Text() != "{}" || s.FileInfo().SizeBytes != 2 || len(s.Backups()) != 1 {
		t.Error("surface did not record controller updates")
	}
	if out.Len() != 0 {
		t.Errorf("quiet surface printed %q", out.String())
	}
}
