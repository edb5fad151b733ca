package main

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// settle is how long the watcher waits after a change before rebuilding,
// so a burst of writes from one save triggers one build.
const settle = 100 * time.Millisecond

// watch runs build once, then again every time path changes, until ctx is
// done. Build errors are logged and do not stop the watch.
//
// The directory is watched rather than the file so editors that save by
// renaming a temp file over the original keep triggering events.
func watch(ctx context.Context, path string, build func() error, log *slog.Logger) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	defer w.Close()

	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watch: %w", err)
	}

	rebuild := func() {
		if err := build(); err != nil {
			log.Error("build failed", "err", err)
		}
	}
	rebuild()

	var timer *time.Timer
	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != abs {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			log.Debug("input changed", "op", event.Op.String())
			if timer == nil {
				timer = time.NewTimer(settle)
			} else {
				timer.Reset(settle)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			rebuild()

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Warn("watch error", "err", err)
		}
	}
}
