// Package watch signals when the event log or tombstone store changes on disk.
package watch

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watcher reports changes to a fixed set of files inside one directory.
// Bursts of filesystem events collapse into a single pending signal.
type Watcher struct {
	watcher *fsnotify.Watcher
	names   map[string]struct{}
	changes chan struct{}
	logger  *slog.Logger
}

// New watches dir for writes, creations and removals of the named files.
// The directory is created if it does not exist yet.
func New(dir string, names []string, logger *slog.Logger) (*Watcher, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("creating %s: %w", dir, err)
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("starting file watcher: %w", err)
	}
	if err := fw.Add(dir); err != nil {
		_ = fw.Close()
		return nil, fmt.Errorf("watching %s: %w", dir, err)
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	w := &Watcher{
		watcher: fw,
		names:   make(map[string]struct{}, len(names)),
		changes: make(chan struct{}, 1),
		logger:  logger.With("component", "watch"),
	}
	for _, n := range names {
		w.names[n] = struct{}{}
	}

	go w.processEvents()
	return w, nil
}

func (w *Watcher) processEvents() {
	defer close(w.changes)
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if _, tracked := w.names[filepath.Base(event.Name)]; !tracked {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
				!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
				continue
			}
			select {
			case w.changes <- struct{}{}:
			default:
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			// Log error but continue running
			w.logger.Warn("file watch error", "err", err)
		}
	}
}

// Changes receives a value after one or more watched files changed. It is
// closed once the watcher is closed.
func (w *Watcher) Changes() <-chan struct{} {
	return w.changes
}

// Close stops watching.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}
