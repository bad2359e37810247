package prompts

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

const reloadDebounce = 100 * time.Millisecond

// Watch reloads path into store whenever the file is written or recreated.
// A file that fails to load is logged and the previous templates stay active.
// Watch blocks until ctx is done.
func Watch(ctx context.Context, path string, store *Store, logger *slog.Logger) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to resolve prompts path: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	// Editors often replace files instead of writing them, so watch the directory.
	if err := watcher.Add(filepath.Dir(absPath)); err != nil {
		return fmt.Errorf("failed to watch directory: %w", err)
	}

	var debounce <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != absPath {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				debounce = time.After(reloadDebounce)
			}
		case <-debounce:
			debounce = nil
			t, err := Load(absPath)
			if err != nil {
				logger.Warn("Prompt reload failed, keeping previous templates", "path", absPath, "err", err)
				continue
			}
			store.Swap(t)
			logger.Info("Prompts reloaded", "path", absPath)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Prompt watcher error", "err", err)
		}
	}
}
