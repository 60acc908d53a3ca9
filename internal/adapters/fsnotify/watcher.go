// Package fsnotify implements the ports.Watcher interface using github.com/fsnotify/fsnotify.
// It watches the directory holding a single source file and debounces rapid
// events (editors often trigger multiple writes per save).
package fsnotify

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"

	"github.com/corey/symfind/internal/ports"
)

var _ ports.Watcher = (*Watcher)(nil)

// DebounceInterval is how long the file must stay quiet before a callback.
const DebounceInterval = 50 * time.Millisecond

// ErrNotAFile is returned when asked to watch a directory.
var ErrNotAFile = errors.New("watch target is not a regular file")

// Watcher implements ports.Watcher using fsnotify.
type Watcher struct {
	fw      *fsnotify.Watcher
	done    chan struct{}
	wg      sync.WaitGroup
	stopped bool
	mu      sync.Mutex
}

// NewWatcher creates a new file system watcher.
func NewWatcher() (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{
		fw:   fw,
		done: make(chan struct{}),
	}, nil
}

// Watch starts monitoring filePath. onChange is called with the absolute path
// of the file after each write, or when the file is recreated by an editor
// that saves through a temporary file.
func (w *Watcher) Watch(filePath string, onChange func(filePath string)) error {
	target, err := filepath.Abs(filePath)
	if err != nil {
		return err
	}
	info, err := os.Stat(target)
	if err != nil {
		return err
	}
	if info.IsDir() {
		return ErrNotAFile
	}
	if err := w.fw.Add(filepath.Dir(target)); err != nil {
		return err
	}

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		// Trailing-edge debounce: fire once the file has been quiet for
		// DebounceInterval, so a save never triggers a read of a half
		// written file.
		timer := time.NewTimer(DebounceInterval)
		if !timer.Stop() {
			<-timer.C
		}
		defer timer.Stop()
		for {
			select {
			case event, ok := <-w.fw.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != target {
					continue
				}
				if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
					timer.Reset(DebounceInterval)
				}

			case <-timer.C:
				select {
				case <-w.done:
					return
				default:
				}
				onChange(target)

			case err, ok := <-w.fw.Errors:
				if !ok {
					return
				}
				// fsnotify recovers on its own.
				log.Debug().Err(err).Str("file", target).Msg("fsnotify: watch error")

			case <-w.done:
				return
			}
		}
	}()

	return nil
}

// Stop ends monitoring and releases all resources. No callback fires after
// Stop returns. Safe to call multiple times.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	if w.stopped {
		w.mu.Unlock()
		return nil
	}
	w.stopped = true
	close(w.done)
	w.mu.Unlock()

	err := w.fw.Close()
	w.wg.Wait()
	return err
}
