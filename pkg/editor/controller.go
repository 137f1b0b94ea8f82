// Package editor holds the config editing state machine shared by the TUI
// and the CLI commands.
//
// A Controller keeps two snapshots of the remote document: original, the
// last one loaded or saved, and working, an independent copy of it. The
// raw editor text lives next to them and is only parsed on save, format
// and validate. Edits never touch either snapshot; they only raise the
// dirty flag, which stays up until the next successful load, save or
// reset.
package editor

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/pluqqy/confedit/pkg/api"
	"github.com/pluqqy/confedit/pkg/jsondoc"
	"github.com/pluqqy/confedit/pkg/logging"
	"github.com/pluqqy/confedit/pkg/models"
)

// User-facing messages.
const (
	MsgSaved       = "Config saved successfully! Backup created: %s"
	MsgFormatted   = "JSON formatted successfully!"
	MsgValid       = "JSON is valid!"
	MsgReset       = "Changes reset successfully!"
	MsgRestored    = "Backup restored successfully!"
	MsgInvalidSave = "Invalid JSON syntax. Please fix errors before saving."
	MsgCannotFmt   = "Invalid JSON - cannot format"

	PromptReset   = "Are you sure you want to discard all changes?"
	PromptRestore = "Are you sure you want to restore from backup %q? This will overwrite the current config."
)

var (
	// ErrCancelled is returned when the user declines a confirmation.
	ErrCancelled = errors.New("cancelled by user")

	// ErrNotLoaded is returned by operations that need a loaded document.
	ErrNotLoaded = errors.New("no config loaded")
)

// Controller mediates between a Backend and a Surface. It is safe for
// concurrent use; network calls happen outside the lock.
type Controller struct {
	backend Backend
	surface Surface
	confirm Confirmer
	now     func() time.Time

	mu       sync.Mutex
	original jsondoc.Value
	working  jsondoc.Value
	loaded   bool
	text     string
	revision uint64 // bumped on every change to text
	dirty    bool
	loadedAt time.Time

	// issued numbers every state-replacing operation; applied is the
	// number of the newest one whose result has been applied.
	issued  uint64
	applied uint64
}

// New creates an empty controller. A nil surface discards updates and a
// nil confirmer declines every question.
func New(backend Backend, surface Surface, confirm Confirmer) *Controller {
	if surface == nil {
		surface = NopSurface{}
	}
	if confirm == nil {
		confirm = AutoConfirm(false)
	}
	return &Controller{
		backend: backend,
		surface: surface,
		confirm: confirm,
		now:     time.Now,
	}
}

// Load fetches the document from the backend and replaces both snapshots
// and the editor text with it.
func (c *Controller) Load(ctx context.Context) error {
	seq := c.begin()

	c.surface.SetLoading(true)
	doc, err := c.backend.GetConfig(ctx)
	c.surface.SetLoading(false)

	if err != nil {
		logging.Error("Editor", err, "Failed to load config")
		c.surface.ShowError(failure(err, "Failed to load config: ", "Network error: "))
		return err
	}

	c.mu.Lock()
	if seq < c.applied {
		c.mu.Unlock()
		logging.Debug("Editor", "Discarding stale load response %d (applied %d)", seq, c.applied)
		return nil
	}
	c.applied = seq
	c.replace(doc)
	rev := c.setTextLocked(jsondoc.Format(c.working))
	text, info := c.text, c.fileInfoLocked()
	c.mu.Unlock()

	logging.Info("Editor", "Loaded config (%d bytes)", info.SizeBytes)
	c.surface.SetText(text, rev)
	c.surface.SetFileInfo(info)
	return nil
}

// Save parses the editor text and submits it. Invalid text fails locally
// with a *jsondoc.SyntaxError and sends nothing.
func (c *Controller) Save(ctx context.Context) error {
	c.mu.Lock()
	text := c.text
	c.mu.Unlock()

	doc, err := jsondoc.Parse(text)
	if err != nil {
		c.surface.ShowError(MsgInvalidSave)
		return err
	}

	seq := c.begin()

	c.surface.SetLoading(true)
	backup, err := c.backend.SaveConfig(ctx, doc)
	c.surface.SetLoading(false)

	if err != nil {
		logging.Error("Editor", err, "Failed to save config")
		c.surface.ShowError(failure(err, "Failed to save: ", "Save failed: "))
		return err
	}

	c.mu.Lock()
	if seq > c.applied {
		c.applied = seq
	}
	c.replace(doc)
	info := c.fileInfoLocked()
	c.mu.Unlock()

	logging.Info("Editor", "Saved config, backup %s", backup)
	c.surface.SetFileInfo(info)
	c.surface.ShowSuccess(fmt.Sprintf(MsgSaved, backup))

	// The backup list is best effort; its failure is already logged.
	_ = c.ListBackups(ctx)
	return nil
}

// FormatText rewrites the editor text in canonical form. A rewrite that
// changes the text counts as an edit.
func (c *Controller) FormatText() error {
	c.mu.Lock()
	text := c.text
	c.mu.Unlock()

	formatted, err := jsondoc.FormatText(text)
	if err != nil {
		c.surface.ShowError(MsgCannotFmt)
		return err
	}

	c.mu.Lock()
	changed := formatted != c.text
	var rev uint64
	if changed {
		rev = c.setTextLocked(formatted)
		c.dirty = true
	}
	info := c.fileInfoLocked()
	c.mu.Unlock()

	if changed {
		c.surface.SetText(formatted, rev)
		c.surface.SetFileInfo(info)
	}
	c.surface.ShowSuccess(MsgFormatted)
	return nil
}

// ValidateText reports whether the editor text parses. It changes nothing.
func (c *Controller) ValidateText() error {
	c.mu.Lock()
	text := c.text
	c.mu.Unlock()

	if _, err := jsondoc.Parse(text); err != nil {
		c.surface.ShowError("JSON validation failed: " + err.Error())
		return err
	}
	c.surface.ShowSuccess(MsgValid)
	return nil
}

// ResetChanges discards edits after confirmation. It does nothing when
// there is nothing to discard and returns ErrCancelled when declined.
func (c *Controller) ResetChanges(ctx context.Context) error {
	c.mu.Lock()
	dirty, loaded := c.dirty, c.loaded
	c.mu.Unlock()

	if !dirty {
		return nil
	}
	if !loaded {
		return ErrNotLoaded
	}
	if !c.confirm.Confirm(ctx, PromptReset) {
		return ErrCancelled
	}

	c.mu.Lock()
	c.issued++
	c.applied = c.issued
	c.replace(c.original)
	rev := c.setTextLocked(jsondoc.Format(c.working))
	text, info := c.text, c.fileInfoLocked()
	c.mu.Unlock()

	c.surface.SetText(text, rev)
	c.surface.SetFileInfo(info)
	c.surface.ShowSuccess(MsgReset)
	return nil
}

// OnTextEdited records new editor text. Any edit marks the document
// dirty, even one that restores the original text.
func (c *Controller) OnTextEdited(text string) {
	c.mu.Lock()
	c.setTextLocked(text)
	c.dirty = true
	info := c.fileInfoLocked()
	c.mu.Unlock()

	c.surface.SetFileInfo(info)
}

// ListBackups fetches the backup index and hands it to the surface.
// Failures are logged, never shown.
func (c *Controller) ListBackups(ctx context.Context) error {
	backups, err := c.backend.ListBackups(ctx)
	if err != nil {
		logging.Warn("Editor", "Failed to load backups: %v", err)
		return err
	}
	c.surface.SetBackups(backups)
	return nil
}

// RestoreBackup asks for confirmation, restores filename on the server and
// reloads. It returns ErrCancelled when declined.
func (c *Controller) RestoreBackup(ctx context.Context, filename string) error {
	if !c.confirm.Confirm(ctx, fmt.Sprintf(PromptRestore, filename)) {
		return ErrCancelled
	}

	c.surface.SetLoading(true)
	err := c.backend.RestoreBackup(ctx, filename)
	c.surface.SetLoading(false)

	if err != nil {
		logging.Error("Editor", err, "Failed to restore backup %s", filename)
		c.surface.ShowError(failure(err, "Failed to restore: ", "Restore failed: "))
		return err
	}

	logging.Info("Editor", "Restored backup %s", filename)
	c.surface.ShowSuccess(MsgRestored)
	return c.Load(ctx)
}

// TextRevision returns the revision of the current editor text. Surfaces
// compare it with the revision passed to SetText to drop stale pushes.
func (c *Controller) TextRevision() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.revision
}

func (c *Controller) setTextLocked(text string) uint64 {
	c.text = text
	c.revision++
	return c.revision
}

// Text returns the current editor text.
func (c *Controller) Text() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.text
}

// Dirty reports whether there are unsaved edits.
func (c *Controller) Dirty() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dirty
}

// Loaded reports whether a document has been loaded or saved.
func (c *Controller) Loaded() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loaded
}

// Original returns a copy of the last loaded or saved document.
func (c *Controller) Original() (jsondoc.Value, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return jsondoc.Clone(c.original), c.loaded
}

// Working returns a copy of the working document.
func (c *Controller) Working() (jsondoc.Value, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return jsondoc.Clone(c.working), c.loaded
}

// FileInfo returns the summary shown in the status line.
func (c *Controller) FileInfo() models.FileInfo {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fileInfoLocked()
}

// Diff compares the canonical form of the original document with the
// editor text, line by line.
func (c *Controller) Diff() []DiffLine {
	c.mu.Lock()
	var base string
	if c.loaded {
		base = jsondoc.Format(c.original)
	}
	text := c.text
	c.mu.Unlock()

	return LineDiff(base, text)
}

func (c *Controller) begin() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.issued++
	return c.issued
}

// replace must be called with c.mu held.
func (c *Controller) replace(doc jsondoc.Value) {
	c.original = jsondoc.Clone(doc)
	c.working = jsondoc.Clone(doc)
	c.loaded = true
	c.dirty = false
	c.loadedAt = c.now()
}

// fileInfoLocked must be called with c.mu held.
func (c *Controller) fileInfoLocked() models.FileInfo {
	info := models.FileInfo{Dirty: c.dirty, LoadedAt: c.loadedAt}
	if c.loaded {
		info.SizeBytes = int64(len(jsondoc.Compact(c.working)))
	}
	return info
}

// failure builds the banner text for a backend error: server-reported
// messages get apiPrefix, everything else networkPrefix.
func failure(err error, apiPrefix, networkPrefix string) string {
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		return apiPrefix + apiErr.Message
	}
	var transportErr *api.TransportError
	if errors.As(err, &transportErr) {
		return networkPrefix + transportErr.Err.Error()
	}
	return networkPrefix + err.Error()
}
