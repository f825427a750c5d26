package resource

import (
	"context"
	"fmt"

	"github.com/fsnotify/fsnotify"
)

// Watch blocks, reloading the store whenever a file in its directory is
// written, created, renamed, or removed. It returns when ctx is canceled.
// Run it in its own goroutine:
//
//	go func() { _ = store.Watch(ctx) }()
func (s *Store) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create resource watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	if err = watcher.Add(s.dir); err != nil {
		return fmt.Errorf("failed to watch resource directory: %w", err)
	}

	s.logger.Info("Watching resource directory", "dir", s.dir)

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			if err := s.Reload(); err != nil {
				// Keep the previous tables; a partial edit may land shortly.
				s.logger.Error("Failed to reload resource bundles", "trigger", event.Name, "error", err)
				continue
			}
			s.logger.Debug("Reloaded resource bundles", "trigger", event.Name)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.logger.Error("Resource watcher error", "error", err)
		}
	}
}
