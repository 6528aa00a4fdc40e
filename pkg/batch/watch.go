package batch

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// WatchDebounce is how long Watch waits for writes to settle before rerunning.
const WatchDebounce = 100 * time.Millisecond

// Watch calls run once for every path, then again whenever one of the files
// is written or recreated, until ctx is done. Bursts of events for the same
// file are coalesced into one call.
func Watch(ctx context.Context, paths []string, run func(path string)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating file watcher: %w", err)
	}
	defer watcher.Close()

	// Directories are watched rather than files so that editors which
	// replace the file on save keep triggering events.
	watched := make(map[string]string)
	dirs := make(map[string]bool)
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return err
		}
		watched[abs] = p
		dirs[filepath.Dir(abs)] = true
	}
	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("watching %s: %w", dir, err)
		}
	}

	for _, p := range paths {
		run(p)
	}

	pending := make(map[string]bool)
	timer := time.NewTimer(WatchDebounce)
	timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			p, ok := watched[event.Name]
			if !ok {
				continue
			}
			pending[p] = true
			timer.Reset(WatchDebounce)
		case <-timer.C:
			for _, p := range paths {
				if pending[p] {
					run(p)
				}
			}
			pending = make(map[string]bool)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Printf("file watcher error: %v", err)
		}
	}
}
