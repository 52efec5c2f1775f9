package ollama

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// WatchConfigFile builds a Client from the config file at path and hands it
// to onChange, then does the same after every write to the file until ctx
// is done. Load or validation failures are reported through onChange with a
// nil client; watching continues. opts are applied to every client built.
//
// Clients are never reconfigured in place. Callers swap the client they use
// when onChange fires.
func WatchConfigFile(ctx context.Context, path string, onChange func(*Client, error), opts ...Option) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the directory; editors often replace the file instead of writing it.
	dir := filepath.Dir(path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	baseName := filepath.Base(path)

	onChange(clientFromFile(path, opts...))

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Base(event.Name) != baseName {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			onChange(clientFromFile(path, opts...))

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			onChange(nil, fmt.Errorf("watch %s: %w", path, err))
		}
	}
}

func clientFromFile(path string, opts ...Option) (*Client, error) {
	cfg, err := LoadConfigFile(path)
	if err != nil {
		return nil, err
	}
	return NewWithConfig(cfg, opts...)
}
