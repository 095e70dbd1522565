package registry

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch observes the directory loaded by LoadDir and re-registers trees as
// their files change, emitting the project type of each reloaded tree.
// The channel is closed when ctx is done. Returns an error when the registry
// was not loaded from a directory.
func (r *Registry) Watch(ctx context.Context) (<-chan string, error) {
	r.mu.RLock()
	dir := r.dir
	r.mu.RUnlock()

	if dir == "" {
		return nil, fmt.Errorf("registry was not loaded from a directory")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	changes := make(chan string, 1)

	go func() {
		defer watcher.Close()
		defer close(changes)

		for {
			select {
			case <-ctx.Done():
				return

			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
					continue
				}
				if !isTreeFile(filepath.Base(event.Name)) {
					continue
				}

				// Reload failures are swallowed here: editors produce
				// partial writes, and the previous tree stays registered.
				tree, err := r.loadFile(event.Name)
				if err != nil {
					continue
				}

				select {
				case changes <- tree.ProjectType:
				case <-ctx.Done():
					return
				}

			case _, ok := <-watcher.Errors:
				if !ok {
					return
				}
			}
		}
	}()

	return changes, nil
}
