package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pluqqy/confedit/internal/cli"
	"github.com/pluqqy/confedit/pkg/editor"
	"github.com/pluqqy/confedit/pkg/files"
)

// NewFormatCommand creates the format command
func NewFormatCommand(opts *cli.GlobalOptions) *cobra.Command {
	var write bool

	cmd := &cobra.Command{
		Use:   "format <file>",
		Short: "Pretty-print a local JSON file",
		Long: `Pretty-print a local JSON file with two-space indentation, keeping
key order. The result is printed unless --write is given.

Examples:
  # Print the formatted document
  confedit format ./config.json

  # Rewrite the file in place
  confedit format ./config.json --write`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			content, err := readDocumentArg(path)
			if err != nil {
				return err
			}

			cc, err := setup(cmd, opts)
			if err != nil {
				return err
			}
			defer cc.Close()

			surface := cli.NewConsoleSurface("")
			surface.SuppressSuccess = !write
			ctrl := editor.New(nil, surface, nil)
			ctrl.OnTextEdited(content)
			if err := ctrl.FormatText(); err != nil {
				return cli.Reported(err)
			}

			if !write {
				fmt.Fprintln(cmd.OutOrStdout(), ctrl.Text())
				return nil
			}
			return files.WriteDocument(path, ctrl.Text()+"\n")
		},
	}

	cmd.Flags().BoolVarP(&write, "write", "w", false, "Write the result back to the file")

	return cmd
}
