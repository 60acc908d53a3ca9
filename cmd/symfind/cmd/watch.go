package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"github.com/corey/symfind/internal/adapters/fsnotify"
	"github.com/corey/symfind/internal/ports"
)

// newWatcher is swapped in tests.
var newWatcher = func() (ports.Watcher, error) {
	return fsnotify.NewWatcher()
}

// runWatch re-runs run each time file changes, until ctx is cancelled or the
// process receives SIGINT/SIGTERM. Failed re-runs are logged, not fatal.
// Runs happen on the calling goroutine, never concurrently. w is stopped
// before runWatch returns.
func runWatch(ctx context.Context, w ports.Watcher, file string, run func() error) error {
	defer w.Stop()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	changed := make(chan struct{}, 1)
	err := w.Watch(file, func(string) {
		select {
		case changed <- struct{}{}:
		default:
		}
	})
	if err != nil {
		return exitError{code: exitParseError, err: err}
	}
	log.Info().Str("file", file).Msg("watch: waiting for changes")

	for {
		select {
		case <-ctx.Done():
			log.Debug().Str("file", file).Msg("watch: stopped")
			return nil
		case <-changed:
			log.Debug().Str("file", file).Msg("watch: file changed, re-running")
			if err := run(); err != nil {
				log.Warn().Err(err).Str("file", file).Msg("watch: run failed")
			}
		}
	}
}
