// Package watch reruns article generation whenever the input file changes.
//
// The directory containing the input file is watched rather than the file
// itself, since editors commonly replace files on save.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"git.home.luguber.info/inful/articlegen/internal/logfields"
)

// DefaultDebounce coalesces rapid editor write bursts into one rebuild.
const DefaultDebounce = 500 * time.Millisecond

// Watcher triggers a rebuild callback when the watched input file changes.
type Watcher struct {
	inputPath string
	rebuild   func() error
	debounce  time.Duration
	watcher   *fsnotify.Watcher
	logger    *slog.Logger
}

// New creates a Watcher for inputPath. A debounce of zero falls back to
// DefaultDebounce; a nil logger falls back to the process default.
func New(inputPath string, debounce time.Duration, logger *slog.Logger, rebuild func() error) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create file watcher: %w", err)
	}

	absPath, err := filepath.Abs(inputPath)
	if err != nil {
		_ = fsw.Close()
		return nil, fmt.Errorf("resolve input path: %w", err)
	}

	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Watcher{
		inputPath: absPath,
		rebuild:   rebuild,
		debounce:  debounce,
		watcher:   fsw,
		logger:    logger,
	}, nil
}

// Run performs an initial rebuild, then blocks regenerating on changes until
// the context is cancelled. Rebuild failures are logged, not returned; a
// broken intermediate save must not end the watch session.
func (w *Watcher) Run(ctx context.Context) error {
	defer func() {
		_ = w.watcher.Close()
	}()

	if err := w.watcher.Add(filepath.Dir(w.inputPath)); err != nil {
		return fmt.Errorf("watch input directory: %w", err)
	}

	w.logger.Info("watching for changes", logfields.Path(w.inputPath))
	w.runRebuild()

	inputFile := filepath.Base(w.inputPath)
	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Base(event.Name) != inputFile {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			w.logger.Debug("input change detected", logfields.Path(event.Name))
			timer.Reset(w.debounce)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("watcher error", logfields.Error(err))

		case <-timer.C:
			w.runRebuild()
		}
	}
}

func (w *Watcher) runRebuild() {
	if err := w.rebuild(); err != nil {
		w.logger.Error("rebuild failed", logfields.Error(err))
	}
}
