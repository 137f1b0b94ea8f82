package commands

import (
	"github.com/spf13/cobra"

	"github.com/pluqqy/confedit/internal/cli"
)

// NewEditCommand creates the edit command
func NewEditCommand(opts *cli.GlobalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit",
		Short: "Edit the config in your $EDITOR",
		Long: `Open the current config in an external editor and save it when the
editor exits with changes.

The editor is taken from editor.command in the settings file, then
$EDITOR, falling back to vi.

Examples:
  confedit edit
  EDITOR="code --wait" confedit edit`,
		Args: cobra.NoArgs,
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

			original := ctrl.Text()
			launcher := cli.NewEditorLauncher(cc.Settings.Editor.Command)
			edited, err := launcher.OpenTempFile("confedit-*.json", original+"\n")
			if err != nil {
				return err
			}

			if trimNewline(edited) == original {
				cli.PrintInfo("No changes")
				return nil
			}
			ctrl.OnTextEdited(edited)
			return cli.Reported(ctrl.Save(cmd.Context()))
		},
	}

	return cmd
}
