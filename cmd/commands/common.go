package commands

import (
	"github.com/spf13/cobra"

	"github.com/pluqqy/confedit/internal/cli"
	"github.com/pluqqy/confedit/pkg/editor"
	"github.com/pluqqy/confedit/pkg/files"
)

// setup resolves settings for a non-interactive command, points terminal
// output at the command's streams and starts logging to stderr.
func setup(cmd *cobra.Command, opts *cli.GlobalOptions) (*cli.CommandContext, error) {
	cli.SetStreams(cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr())

	ctx, err := cli.NewCommandContext(opts)
	if err != nil {
		return nil, err
	}
	if err := ctx.SetupLogging(cmd.ErrOrStderr()); err != nil {
		return nil, err
	}
	return ctx, nil
}

// controller builds a controller reporting through a console surface.
func controller(cc *cli.CommandContext, message string) (*editor.Controller, *cli.ConsoleSurface, error) {
	surface := cli.NewConsoleSurface(message)
	ctrl, err := cc.Controller(surface, cli.PromptConfirmer{})
	if err != nil {
		return nil, nil, err
	}
	return ctrl, surface, nil
}

// readDocumentArg reads the local document named by a command argument.
func readDocumentArg(path string) (string, error) {
	if err := cli.ValidateFilePath(path); err != nil {
		return "", err
	}
	return files.ReadDocument(path)
}
