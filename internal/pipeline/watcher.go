package pipeline

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// watchDebounce collapses the burst of events an appending writer
// generates into a single trigger.
const watchDebounce = 500 * time.Millisecond

// Watch watches the log tree and invokes trigger (debounced) whenever
// anything under it changes. It is purely an earlier wake-up for the
// poller: the change detector still decides whether a rescan happens, so
// missed events cost latency, never correctness. Blocks until ctx is done.
func Watch(ctx context.Context, root string, trigger func()) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer func() { _ = w.Close() }()

	addTree(w, root)

	var timer *time.Timer
	fire := make(chan struct{}, 1)

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			// New directories must be watched; fsnotify is not recursive.
			if ev.Has(fsnotify.Create) {
				if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
					addTree(w, ev.Name)
				}
			}
			if timer == nil {
				timer = time.AfterFunc(watchDebounce, func() {
					select {
					case fire <- struct{}{}:
					default:
					}
				})
			} else {
				timer.Reset(watchDebounce)
			}
		case <-fire:
			timer = nil
			trigger()
		case _, ok := <-w.Errors:
			if !ok {
				return nil
			}
			// Watch errors degrade to polling-only updates.
		}
	}
}

func addTree(w *fsnotify.Watcher, root string) {
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil //nolint:nilerr // unwatchable subtrees degrade to polling
		}
		if d.IsDir() {
			_ = w.Add(path)
		}
		return nil
	})
}
