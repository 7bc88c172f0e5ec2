package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/zjrosen/modelctl/internal/lifecycle"
	"github.com/zjrosen/modelctl/internal/log"
	"github.com/zjrosen/modelctl/internal/presentation"
	"github.com/zjrosen/modelctl/internal/watcher"
)

var (
	watchStatus   string
	watchDebounce time.Duration
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Reprint the model list whenever the registry file changes",
	Long: `Print the model list, then print it again every time the registry file
is saved, until interrupted. A registry that fails to load is reported and
watching continues.

Examples:
  modelctl watch
  modelctl watch --status deprecated`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func runWatch(cmd *cobra.Command, args []string) error {
	var status *lifecycle.Status
	if watchStatus != "" {
		s, err := lifecycle.ParseStatus(watchStatus)
		if err != nil {
			return fmt.Errorf("invalid status %q: must be active, deprecated or retired", watchStatus)
		}
		status = &s
	}

	w, err := watcher.New(watcher.Config{Path: env.store.Path(), DebounceDur: watchDebounce})
	if err != nil {
		return err
	}
	defer func() { _ = w.Stop() }()

	changes, err := w.Start()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	out := cmd.OutOrStdout()
	render := func() error {
		r, err := loadRegistry(ctx)
		if err != nil {
			return err
		}
		at := time.Now().UTC()
		models := r.List()
		if status != nil {
			models = r.ListByStatus(*status, at)
		}
		return presentation.NewFormatter(out).FormatModelsText(presentation.FromModels(models, at))
	}

	log.Debug(log.CatCLI, "Watching registry", "path", env.store.Path())
	return watchLoop(ctx, cmd.ErrOrStderr(), changes, render)
}

// watchLoop renders once, then again on every signal from changes, until ctx
// is done. Render errors are reported on errOut and do not stop the loop.
func watchLoop(ctx context.Context, errOut io.Writer, changes <-chan struct{}, render func() error) error {
	report := func() {
		if err := render(); err != nil {
			log.ErrorErr(log.CatCLI, "Render failed", err)
			fmt.Fprintf(errOut, "✗ Error: %v\n", err)
		}
	}

	report()
	for {
		select {
		case <-ctx.Done():
			return nil
		case _, ok := <-changes:
			if !ok {
				return nil
			}
			report()
		}
	}
}

func init() {
	watchCmd.Flags().StringVarP(&watchStatus, "status", "s", "", "only show models with this status")
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", 250*time.Millisecond, "wait this long after a change before reprinting")
	rootCmd.AddCommand(watchCmd)
}
