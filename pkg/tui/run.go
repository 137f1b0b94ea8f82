package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/pluqqy/confedit/pkg/editor"
	"github.com/pluqqy/confedit/pkg/logging"
	"github.com/pluqqy/confedit/pkg/models"
)

// Run starts the editor TUI on ctrl and blocks until the user quits or ctx
// is done. bridge must be the Surface and Confirmer ctrl was built with.
func Run(ctx context.Context, ctrl *editor.Controller, bridge *Bridge, settings *models.Settings) error {
	app := NewApp(ctx, ctrl, settings)

	p := tea.NewProgram(app,
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)

	bridge.Start(p.Send)
	defer bridge.Stop()

	logging.Info("TUI", "starting editor")
	if _, err := p.Run(); err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("error running TUI: %w", err)
	}
	return nil
}
