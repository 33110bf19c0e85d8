package simulation

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatchReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scene.json")
	if err := os.WriteFile(path, []byte("{}"), 0o644); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reloaded := make(chan struct{}, 8)
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, path, func() error {
			reloaded <- struct{}{}
			return errors.New("still broken")
		})
	}()

	// Give the watcher time to register before writing.
	deadline := time.After(5 * time.Second)
	tick := time.NewTicker(200 * time.Millisecond)
	defer tick.Stop()
	for seen := false; !seen; {
		select {
		case <-tick.C:
			if err := os.WriteFile(path, []byte(`{"name": "x"}`), 0o644); err != nil {
				t.Fatal(err)
			}
		case <-reloaded:
			seen = true
		case <-deadline:
			t.Fatal("reload was never called")
		}
	}

	// Unrelated files in the same directory are ignored.
	for len(reloaded) > 0 {
		<-reloaded
	}
	time.Sleep(2 * reloadDelay)
	for len(reloaded) > 0 {
		<-reloaded
	}
	if err := os.WriteFile(filepath.Join(dir, "other.json"), []byte("{}"), 0o644); err != nil {
		t.Fatal(err)
	}
	select {
	case <-reloaded:
		t.Fatal("reload fired for another file")
	case <-time.After(3 * reloadDelay):
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Watch: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Watch did not stop")
	}
}
