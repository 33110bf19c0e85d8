package simulation

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// reloadDelay coalesces the burst of events an editor save produces.
const reloadDelay = 150 * time.Millisecond

// Watch calls reload after path is written or replaced, until ctx is done.
// Reload errors are logged and watching continues.
func Watch(ctx context.Context, path string, reload func() error) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch %s: %w", path, err)
	}
	defer w.Close()

	// Watch the directory: editors often replace the file rather than write it.
	target := filepath.Clean(path)
	if err := w.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("watch %s: %w", path, err)
	}

	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target {
				continue
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename) {
				pending = time.After(reloadDelay)
			}
		case <-pending:
			pending = nil
			if err := reload(); err != nil {
				log.Printf("reload %s: %v", path, err)
				continue
			}
			log.Printf("reloaded %s", path)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Printf("watch %s: %v", path, err)
		}
	}
}
