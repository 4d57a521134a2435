package glshaders_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/soypat/glshaders"
)

func waitDirty(t *testing.T, sw *glshaders.SourceWatcher) bool {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if sw.TakeDirty() {
			return true
		}
		time.Sleep(10 * time.Millisecond)
	}
	return false
}

func TestSourceWatcher(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "nodes"), 0o755); err != nil {
		t.Fatal(err)
	}

	sw, err := glshaders.WatchSources(dir)
	if err != nil {
		t.Fatal(err)
	}
	defer sw.Close()

	if sw.TakeDirty() {
		t.Error("fresh watcher already dirty")
	}

	err = os.WriteFile(filepath.Join(dir, "nodes", glshaders.StageVertex), []byte("void main(){}"), 0o644)
	if err != nil {
		t.Fatal(err)
	}
	if !waitDirty(t, sw) {
		t.Fatal("write under watched subdirectory not flagged")
	}
	if sw.TakeDirty() {
		t.Error("dirty flag not cleared by TakeDirty")
	}
}

func TestSourceWatcherMissingDir(t *testing.T) {
	if _, err := glshaders.WatchSources(filepath.Join(t.TempDir(), "absent")); err == nil {
		t.Error("watching a missing directory did not error")
	}
}
