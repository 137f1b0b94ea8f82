package editor

import (
	"context"

	"github.com/pluqqy/confedit/pkg/jsondoc"
	"github.com/pluqqy/confedit/pkg/models"
)

// Backend is the remote config store. *api.Client satisfies it.
type Backend interface {
	GetConfig(ctx context.Context) (jsondoc.Value, error)
	SaveConfig(ctx context.Context, doc jsondoc.Value) (string, error)
	ListBackups(ctx context.Context) ([]models.Backup, error)
	RestoreBackup(ctx context.Context, filename string) error
}

// Surface receives everything the controller wants shown. Implementations
// must not call back into the Controller synchronously from these methods.
//
// SetText carries the controller's text revision. A surface that applies
// pushes asynchronously should drop one whose revision is no longer
// current, since the user has edited since.
type Surface interface {
	SetText(text string, revision uint64)
	SetFileInfo(info models.FileInfo)
	SetLoading(loading bool)
	ShowSuccess(msg string)
	ShowError(msg string)
	SetBackups(backups []models.Backup)
}

// Confirmer asks the user a yes/no question. It blocks until answered or
// ctx is done; a cancelled question counts as no.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) bool
}

// ConfirmFunc adapts a function to the Confirmer interface.
type ConfirmFunc func(ctx context.Context, prompt string) bool

func (f ConfirmFunc) Confirm(ctx context.Context, prompt string) bool {
	return f(ctx, prompt)
}

// AutoConfirm answers every question with answer.
func AutoConfirm(answer bool) Confirmer {
	return ConfirmFunc(func(context.Context, string) bool { return answer })
}

// NopSurface discards all updates.
type NopSurface struct{}

func (NopSurface) SetText(string, uint64)      {}
func (NopSurface) SetFileInfo(models.FileInfo) {}
func (NopSurface) SetLoading(bool)             {}
func (NopSurface) ShowSuccess(string)          {}
func (NopSurface) ShowError(string)            {}
func (NopSurface) SetBackups([]models.Backup)  {}
