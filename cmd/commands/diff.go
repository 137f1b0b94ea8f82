package commands

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"github.com/pluqqy/confedit/internal/cli"
	"github.com/pluqqy/confedit/pkg/editor"
)

// NewDiffCommand creates the diff command
func NewDiffCommand(opts *cli.GlobalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "diff <file>",
		Short: "Compare a local file with the server's config",
		Long: `Show line differences between the server's config (pretty-printed)
and a local file. Exits non-zero when they differ.

Examples:
  confedit diff ./config.json`,
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

			ctrl, _, err := controller(cc, "Loading config...")
			if err != nil {
				return err
			}
			if err := ctrl.Load(cmd.Context()); err != nil {
				return cli.Reported(err)
			}

			ctrl.OnTextEdited(content)
			lines := ctrl.Diff()
			if !editor.HasChanges(lines) {
				cli.PrintSuccess("No differences")
				return nil
			}

			out := cmd.OutOrStdout()
			for _, line := range lines {
				fmt.Fprintln(out, colorize(line))
			}
			added, removed := editor.Stats(lines)
			cli.PrintInfo("%d added, %d removed", added, removed)
			return cli.Reported(fmt.Errorf("%s differs from the server config", args[0]))
		},
	}

	return cmd
}

func colorize(line editor.DiffLine) string {
	if cli.NoColor() {
		return line.String()
	}
	switch line.Op {
	case editor.DiffInsert:
		return text.FgGreen.Sprint(line.String())
	case editor.DiffDelete:
		return text.FgRed.Sprint(line.String())
	default:
		return line.String()
	}
}
