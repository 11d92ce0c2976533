package config

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher reloads the configuration when its file changes on disk, so
// Lightning Lane table tweaks take effect without a restart.
type Watcher struct {
	path     string
	onReload func(*Config)
}

// NewWatcher creates a watcher for the config file at path. onReload is
// called with the freshly loaded config after each change.
func NewWatcher(path string, onReload func(*Config)) *Watcher {
	return &Watcher{path: path, onReload: onReload}
}

// Run watches until the context is cancelled. Editors often replace the
// file rather than write it in place, so a debounce ticker backs up the
// file events.
func (w *Watcher) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	if err := watcher.Add(w.path); err != nil {
		return fmt.Errorf("failed to watch config file: %w", err)
	}

	var pending bool
	debounce := time.NewTicker(500 * time.Millisecond)
	defer debounce.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event := <-watcher.Events:
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
				pending = true
				// Re-add after rename/replace so future events arrive.
				_ = watcher.Add(w.path)
			}
		case err := <-watcher.Errors:
			log.Printf("[WARN] Config watcher error: %v", err)
		case <-debounce.C:
			if !pending {
				continue
			}
			pending = false
			cfg, err := LoadFrom(w.path)
			if err != nil {
				log.Printf("[WARN] Config reload failed: %v", err)
				continue
			}
			w.onReload(cfg)
		}
	}
}
