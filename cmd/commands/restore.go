package commands

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pluqqy/confedit/internal/cli"
	"github.com/pluqqy/confedit/pkg/editor"
	"github.com/pluqqy/confedit/pkg/models"
)

// NewRestoreCommand creates the restore command
func NewRestoreCommand(opts *cli.GlobalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "restore <backup>",
		Short: "Restore the config from a backup",
		Long: `Make a server backup the current config.

The backup can be given by filename or by the timestamp shown in
'confedit backups'. The config being replaced is itself backed up.

Examples:
  # Restore by filename
  confedit restore config_backup_20240101_120000.json

  # Restore by timestamp
  confedit restore 20240101_120000

  # Restore without confirmation
  confedit restore 20240101_120000 -y`,
		Args: cobra.ExactArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return cli.ValidateBackupName(args[0])
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			filename := backupFilename(args[0])

			cc, err := setup(cmd, opts)
			if err != nil {
				return err
			}
			defer cc.Close()

			ctrl, _, err := controller(cc, "Restoring backup...")
			if err != nil {
				return err
			}

			err = ctrl.RestoreBackup(cmd.Context(), filename)
			if errors.Is(err, editor.ErrCancelled) {
				cli.PrintInfo("Restore cancelled")
				return nil
			}
			return cli.Reported(err)
		},
	}

	return cmd
}

// backupFilename expands a bare timestamp to a backup filename.
func backupFilename(name string) string {
	if strings.HasSuffix(name, models.BackupSuffix) {
		return name
	}
	return models.BackupPrefix + strings.TrimPrefix(name, models.BackupPrefix) + models.BackupSuffix
}
