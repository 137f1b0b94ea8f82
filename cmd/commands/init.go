package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pluqqy/confedit/internal/cli"
	"github.com/pluqqy/confedit/pkg/files"
)

// NewInitCommand creates the init command
func NewInitCommand(opts *cli.GlobalOptions) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default settings file",
		Long: `Create the settings file with default values. The --server flag, if
given, is stored as the server URL.

Examples:
  confedit init --server http://config.internal:5000
  confedit init --force`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cli.SetStreams(cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr())
			cli.SetGlobalFlags(opts.Quiet, opts.NoColor, opts.Yes)

			path := opts.ConfigPath
			if path == "" {
				var err error
				path, err = files.DefaultSettingsPath()
				if err != nil {
					return err
				}
			}

			err := files.InitSettings(path, opts.Server, force)
			if errors.Is(err, files.ErrSettingsExist) {
				return fmt.Errorf("%w (use --force to overwrite)", err)
			}
			if err != nil {
				return err
			}

			cli.PrintSuccess("Created %s", path)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing settings file")

	return cmd
}
