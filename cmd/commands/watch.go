package commands

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/pluqqy/confedit/internal/cli"
	"github.com/pluqqy/confedit/pkg/jsondoc"
	"github.com/pluqqy/confedit/pkg/logging"
)

const watchDebounce = 250 * time.Millisecond

// NewWatchCommand creates the watch command
func NewWatchCommand(opts *cli.GlobalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch <file>",
		Short: "Save a local file to the server whenever it changes",
		Long: `Watch a local JSON file and save it to the server each time it is
written. Invalid JSON is reported and skipped. Stop with Ctrl+C.

Examples:
  confedit watch ./config.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := filepath.Abs(args[0])
			if err != nil {
				return err
			}
			if err := cli.ValidateFilePath(path); err != nil {
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

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			cli.PrintInfo("Watching %s (Ctrl+C to stop)", args[0])
			last := ""
			return watchFile(ctx, path, watchDebounce, func() {
				content, err := readDocumentArg(path)
				if err != nil {
					cli.PrintWarning("%v", err)
					return
				}
				if content == last {
					return
				}
				if !jsondoc.Valid(content) {
					cli.PrintWarning("%s is not valid JSON, skipping", args[0])
					return
				}
				ctrl.OnTextEdited(content)
				if err := ctrl.Save(ctx); err == nil {
					last = content
				}
			})
		},
	}

	return cmd
}

// watchFile calls onChange, at most once per debounce interval, after path
// is created or written. The parent directory is watched so editors that
// replace the file by renaming are followed. It returns when ctx is done.
func watchFile(ctx context.Context, path string, debounce time.Duration, onChange func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create fsnotify watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(path), err)
	}

	target := filepath.Clean(path)
	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Op&(fsnotify.Create|fsnotify.Write) != 0 {
				logging.Debug("Watch", "%s: %s", event.Op, event.Name)
				if timer == nil {
					timer = time.NewTimer(debounce)
				} else {
					timer.Reset(debounce)
				}
				fire = timer.C
			}
		case <-fire:
			fire = nil
			onChange()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logging.Warn("Watch", "watcher error: %v", err)
		}
	}
}
