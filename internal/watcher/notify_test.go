package watcher

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestNotifySupported_LeavesMastersUntouched(t *testing.T) {
	parent := t.TempDir()
	dir := filepath.Join(parent, "masters")
	if err := os.Mkdir(dir, 0o755); err != nil {
		t.Fatal(err)
	}

	supported := NotifySupported(dir, 2*time.Second)

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("masters directory gained %d entries, want 0", len(entries))
	}
	entries, err = os.ReadDir(parent)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Name() != "masters" {
		t.Errorf("parent entries = %v, want only masters", entries)
	}
	if !supported {
		t.Skip("fsnotify not delivering events on this filesystem")
	}
}

func TestNotifySupported_MissingDir(t *testing.T) {
	if NotifySupported(filepath.Join(t.TempDir(), "absent"), 100*time.Millisecond) {
		t.Error("missing directory reported as supported")
	}
}
