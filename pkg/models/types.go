package models

import (
	"strings"
	"time"
)

const (
	// BackupPrefix and BackupSuffix frame the timestamp in backup filenames
	// such as config_backup_20240101_120000.json.
	BackupPrefix = "config_backup_"
	BackupSuffix = ".json"
)

// Backup describes one server-held snapshot of a previously saved config.
// Backups are produced by the API client only and never modified.
type Backup struct {
	Filename   string    `json:"filename" yaml:"filename"`
	ModifiedAt time.Time `json:"modified" yaml:"modified"`
	SizeBytes  int64     `json:"size" yaml:"size"`
}

// DisplayName strips the backup prefix and extension, leaving the timestamp.
func (b Backup) DisplayName() string {
	name := strings.TrimPrefix(b.Filename, BackupPrefix)
	return strings.TrimSuffix(name, BackupSuffix)
}

// FileInfo summarizes the document currently held by the editor.
type FileInfo struct {
	SizeBytes int64
	Dirty     bool
	LoadedAt  time.Time
}

// Status returns the label shown next to the file size.
func (f FileInfo) Status() string {
	if f.Dirty {
		return "Modified"
	}
	return "Saved"
}
