package commands

import (
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/pluqqy/confedit/internal/cli"
	"github.com/pluqqy/confedit/pkg/jsondoc"
)

// clipboardWrite is swapped by tests.
var clipboardWrite = clipboard.WriteAll

// NewGetCommand creates the get command
func NewGetCommand(opts *cli.GlobalOptions) *cobra.Command {
	var (
		output      string
		toClipboard bool
	)

	cmd := &cobra.Command{
		Use:   "get",
		Short: "Print the current config",
		Long: `Fetch the config document from the server and print it.

Examples:
  # Pretty-printed JSON
  confedit get

  # Compact JSON for piping
  confedit get -o json | jq .

  # As YAML, also copied to the clipboard
  confedit get -o yaml --copy`,
		Args: cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return cli.ValidateOutputFormat(output)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cc, err := setup(cmd, opts)
			if err != nil {
				return err
			}
			defer cc.Close()

			ctrl, _, err := controller(cc, "Loading config...")
			if err != nil {
				return err
			}
			if err := ctrl.Load(cmd.Context()); err != nil {
				return cli.Reported(err)
			}

			doc, _ := ctrl.Working()
			var rendered string
			switch cli.OutputFormat(output) {
			case cli.FormatJSON:
				rendered = jsondoc.Compact(doc)
			case cli.FormatYAML:
				rendered, err = cli.DocumentYAML(doc)
				if err != nil {
					return err
				}
			default:
				rendered = ctrl.Text()
			}

			fmt.Fprintln(cmd.OutOrStdout(), trimNewline(rendered))

			if toClipboard {
				if err := clipboardWrite(rendered); err != nil {
					cli.PrintWarning("Could not copy to clipboard: %v", err)
				} else {
					cli.PrintInfo("Copied to clipboard")
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "text", "Output format (text, json, yaml)")
	cmd.Flags().BoolVar(&toClipboard, "copy", false, "Also copy the output to the clipboard")

	return cmd
}

func trimNewline(s string) string {
	if len(s) > 0 && s[len(s)-1] == '\n' {
		return s[:len(s)-1]
	}
	return s
}
