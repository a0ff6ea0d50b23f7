package cmd

import (
	"context"
	"log/slog"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"guardscope.dev/pkg/guardscope/internal/controller"
	m "guardscope.dev/pkg/guardscope/internal/model"
)

// watchDebounce coalesces editor save bursts into a single re-inspection.
const watchDebounce = 500 * time.Millisecond

var watchFlag bool

func newViewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "view <file>",
		Short: "Show the resolved permission timeline for one file",
		Long: `Scan a file for @guard tags, resolve their scopes and render the
per-line, per-actor permission timeline.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := m.Path(args[0])
			out := selectUI(cmd)

			if err := out.Start(cmd.Context(), controller.WithViewMode()); err != nil {
				return err
			}
			defer out.Close(cmd.Context())

			if watchFlag {
				return watchFile(cmd.Context(), out, path)
			}

			report, err := workflow.Inspect(cmd.Context(), path)
			if err := out.DisplayReport(cmd.Context(), report, err); err != nil {
				return err
			}

			out.Wait(cmd.Context())

			return nil
		},
	}

	cmd.Flags().BoolVarP(&watchFlag, "watch", "w", false, "re-render whenever the file changes")

	return cmd
}

// watchFile re-runs the inspection on every change to path until the user
// interrupts. Render errors are logged rather than aborting the watch.
func watchFile(parent context.Context, out controller.UI, path m.Path) error {
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(string(path)); err != nil {
		return err
	}

	render := func() {
		report, inspectErr := workflow.Inspect(ctx, path)
		if displayErr := out.DisplayReport(ctx, report, inspectErr); displayErr != nil {
			slog.Warn("failed to render report", "path", path, "error", displayErr)
		}
	}

	render()

	var mu sync.Mutex
	var pending *time.Timer

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}

			mu.Lock()
			if pending != nil {
				pending.Stop()
			}
			pending = time.AfterFunc(watchDebounce, render)
			mu.Unlock()
		case watchErr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}

			slog.Warn("file watch error", "path", path, "error", watchErr)
		}
	}
}

func init() {
	rootCmd.AddCommand(newViewCmd())
}
