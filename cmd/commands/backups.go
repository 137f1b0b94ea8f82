package commands

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/pluqqy/confedit/internal/cli"
)

// NewBackupsCommand creates the backups command
func NewBackupsCommand(opts *cli.GlobalOptions) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:     "backups",
		Aliases: []string{"ls"},
		Short:   "List the server's config backups",
		Long: `List the backups the server made on each save, newest first.

Examples:
  confedit backups
  confedit backups -o json`,
		Args: cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return cli.ValidateOutputFormat(output, cli.FormatTable, cli.FormatJSON, cli.FormatYAML)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cc, err := setup(cmd, opts)
			if err != nil {
				return err
			}
			defer cc.Close()

			ctrl, surface, err := controller(cc, "Loading backups...")
			if err != nil {
				return err
			}
			if err := ctrl.ListBackups(cmd.Context()); err != nil {
				cli.PrintError("Failed to load backups: %v", err)
				return cli.Reported(err)
			}

			backups := surface.Backups()
			if cli.OutputFormat(output) == cli.FormatTable {
				cli.RenderBackupsTable(cmd.OutOrStdout(), backups, time.Now())
				return nil
			}
			return cli.OutputResults(cmd.OutOrStdout(), output, cli.BackupRecords(backups))
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "table", "Output format (table, json, yaml)")

	return cmd
}
