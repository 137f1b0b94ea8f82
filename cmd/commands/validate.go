package commands

import (
	"github.com/spf13/cobra"

	"github.com/pluqqy/confedit/internal/cli"
	"github.com/pluqqy/confedit/pkg/editor"
)

// NewValidateCommand creates the validate command
func NewValidateCommand(opts *cli.GlobalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <file>",
		Short: "Check that a local file is valid JSON",
		Long: `Check that a local file parses as JSON. Nothing is sent to the server.

Examples:
  confedit validate ./config.json`,
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

			// Validation is local; the controller never reaches a backend.
			ctrl := editor.New(nil, cli.NewConsoleSurface(""), nil)
			ctrl.OnTextEdited(content)
			return cli.Reported(ctrl.ValidateText())
		},
	}

	return cmd
}
