package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/pluqqy/confedit/cmd/commands"
	"github.com/pluqqy/confedit/internal/cli"
	"github.com/pluqqy/confedit/pkg/editor"
	"github.com/pluqqy/confedit/pkg/tui"
)

// version is set during build with -ldflags
var version = "dev"

func newRootCommand() *cobra.Command {
	opts := &cli.GlobalOptions{}

	rootCmd := &cobra.Command{
		Use:   "confedit",
		Short: "Edit a remote JSON config from the terminal",
		Long: `confedit edits the JSON document held by a config server. Run it
without arguments for the interactive editor, or use a subcommand for
scripting.

Every save and restore makes the server keep a backup of the document it
replaces.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEditor(cmd, opts)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.ConfigPath, "config", "", "Settings file (default $XDG_CONFIG_HOME/confedit/settings.yaml)")
	flags.StringVar(&opts.Server, "server", "", "Config server URL (env "+cli.ServerEnvVar+")")
	flags.DurationVar(&opts.Timeout, "timeout", 0, "Per-request timeout, 0 for none")
	flags.StringVar(&opts.LogLevel, "log-level", "", "Log level: debug, info, warn, error")
	flags.StringVar(&opts.LogFile, "log-file", "", "Write logs to this file")
	flags.BoolVarP(&opts.Quiet, "quiet", "q", false, "Suppress informational output")
	flags.BoolVar(&opts.NoColor, "no-color", false, "Disable colored output")
	flags.BoolVarP(&opts.Yes, "yes", "y", false, "Answer yes to confirmation prompts")

	rootCmd.AddCommand(
		commands.NewGetCommand(opts),
		commands.NewSaveCommand(opts),
		commands.NewValidateCommand(opts),
		commands.NewFormatCommand(opts),
		commands.NewBackupsCommand(opts),
		commands.NewRestoreCommand(opts),
		commands.NewDiffCommand(opts),
		commands.NewWatchCommand(opts),
		commands.NewEditCommand(opts),
		commands.NewInitCommand(opts),
		newVersionCommand(),
	)

	return rootCmd
}

// runEditor launches the TUI. Logs go to --log-file or nowhere, since the
// terminal belongs to the editor.
func runEditor(cmd *cobra.Command, opts *cli.GlobalOptions) error {
	cc, err := cli.NewCommandContext(opts)
	if err != nil {
		return err
	}
	if err := cc.SetupLogging(nil); err != nil {
		return err
	}
	defer cc.Close()

	client, err := cc.Client()
	if err != nil {
		return err
	}

	bridge := tui.NewBridge()
	var confirm editor.Confirmer = bridge
	if opts.Yes {
		confirm = editor.AutoConfirm(true)
	}
	ctrl := editor.New(client, bridge, confirm)

	if err := tui.Run(cmd.Context(), ctrl, bridge, cc.Settings); err != nil {
		return fmt.Errorf("%w\nThis could be due to terminal compatibility issues. Try running in a different terminal.", err)
	}
	return nil
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of confedit",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "confedit version %s\n", version)
		},
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := newRootCommand().ExecuteContext(ctx)
	if err == nil {
		return
	}

	// Already shown to the user by the command
	var reported *cli.ReportedError
	if !errors.As(err, &reported) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	stop()
	os.Exit(1)
}
