package cli

import (
	"sync"
	"time"

	"github.com/briandowns/spinner"

	"github.com/pluqqy/confedit/pkg/models"
)

// ConsoleSurface shows controller feedback on the terminal: banners become
// printed lines and the loading state drives a spinner on stderr. Text,
// file info and backups are kept for the command to inspect.
type ConsoleSurface struct {
	// Message is shown next to the spinner.
	Message string
	// SuppressSuccess keeps success banners off stdout when the command
	// writes a document there.
	SuppressSuccess bool

	mu      sync.Mutex
	spinner *spinner.Spinner
	text    string
	info    models.FileInfo
	backups []models.Backup
}

// NewConsoleSurface creates a surface whose spinner shows message
func NewConsoleSurface(message string) *ConsoleSurface {
	return &ConsoleSurface{Message: message}
}

func (s *ConsoleSurface) SetText(text string, _ uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.text = text
}

func (s *ConsoleSurface) SetFileInfo(info models.FileInfo) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.info = info
}

func (s *ConsoleSurface) SetLoading(loading bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if quiet {
		return
	}
	if loading {
		if s.spinner != nil {
			return
		}
		s.spinner = spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(stderr))
		s.spinner.Suffix = " " + s.Message
		s.spinner.Start()
		return
	}
	if s.spinner != nil {
		s.spinner.Stop()
		s.spinner = nil
	}
}

func (s *ConsoleSurface) ShowSuccess(msg string) {
	if s.SuppressSuccess {
		return
	}
	PrintSuccess("%s", msg)
}

func (s *ConsoleSurface) ShowError(msg string) {
	PrintError("%s", msg)
}

func (s *ConsoleSurface) SetBackups(backups []models.Backup) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.backups = backups
}

// Text returns the last editor text pushed by the controller
func (s *ConsoleSurface) Text() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.text
}

// FileInfo returns the last file summary pushed by the controller
func (s *ConsoleSurface) FileInfo() models.FileInfo {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.info
}

// Backups returns the last backup list pushed by the controller
func (s *ConsoleSurface) Backups() []models.Backup {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.backups
}
