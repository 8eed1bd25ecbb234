package watcher

import (
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// NotifySupported reports whether fsnotify delivers events on the filesystem
// holding dir. The masters directory is read-only input, so the test file is
// created and removed in its parent, and the function waits up to timeout
// for the matching Create event. Network and container mounts often fail this.
func NotifySupported(dir string, timeout time.Duration) bool {
	if fi, err := os.Stat(dir); err != nil || !fi.IsDir() {
		return false
	}
	parent := filepath.Dir(filepath.Clean(dir))

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return false
	}
	defer w.Close() //nolint:errcheck

	if err := w.Add(parent); err != nil {
		return false
	}

	f, err := os.CreateTemp(parent, ".phantom_watch_*")
	if err != nil {
		return false
	}
	name := f.Name()
	f.Close()             //nolint:errcheck
	defer os.Remove(name) //nolint:errcheck

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	for {
		select {
		case ev, ok := <-w.Events:
			if !ok {
				return false
			}
			if ev.Has(fsnotify.Create) && filepath.Base(ev.Name) == filepath.Base(name) {
				return true
			}
		case <-w.Errors:
			return false
		case <-timer.C:
			return false
		}
	}
}
