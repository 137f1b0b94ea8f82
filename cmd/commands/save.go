package commands

import (
	"github.com/spf13/cobra"

	"github.com/pluqqy/confedit/internal/cli"
)

// NewSaveCommand creates the save command
func NewSaveCommand(opts *cli.GlobalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "save <file>",
		Short: "Upload a local JSON file as the new config",
		Long: `Replace the server's config with the contents of a local file.

The file must be valid JSON; nothing is sent otherwise. The server keeps
a backup of the config being replaced.

Examples:
  confedit save ./config.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			content, err := readDocumentArg(args[0])
			if err != nil {
				return err
			}

			cc, err := setup(cmd, opts)
			if err != nil {
				return err
			}
			defer cc.Close()

			ctrl, _, err := controller(cc, "Saving config...")
			if err != nil {
				return err
			}

			ctrl.OnTextEdited(content)
			return cli.Reported(ctrl.Save(cmd.Context()))
		},
	}

	return cmd
}
