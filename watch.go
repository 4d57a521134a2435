package glshaders

import (
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
)

// SourceWatcher raises a dirty flag whenever files change under a shader
// source directory. It never calls into the registry itself: rebuilds must
// run on the designated goroutine, so that goroutine polls [TakeDirty] and
// pairs a true result with [Registry.RebuildAll].
type SourceWatcher struct {
	w     *fsnotify.Watcher
	dirty atomic.Bool
}

// WatchSources watches dir and its immediate per-shader subdirectories.
func WatchSources(dir string) (*SourceWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(dir); err != nil {
		w.Close()
		return nil, err
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		w.Close()
		return nil, err
	}
	for _, e := range entries {
		if e.IsDir() {
			if err := w.Add(filepath.Join(dir, e.Name())); err != nil {
				w.Close()
				return nil, err
			}
		}
	}
	sw := &SourceWatcher{w: w}
	go sw.loop()
	return sw, nil
}

func (sw *SourceWatcher) loop() {
	for {
		select {
		case ev, ok := <-sw.w.Events:
			if !ok {
				return
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) != 0 {
				// New shader directories start being watched as they appear.
				if ev.Op&fsnotify.Create != 0 {
					if fi, err := os.Stat(ev.Name); err == nil && fi.IsDir() {
						sw.w.Add(ev.Name)
					}
				}
				sw.dirty.Store(true)
			}
		case err, ok := <-sw.w.Errors:
			if !ok {
				return
			}
			Logger().Warn("shader source watch error", "err", err)
		}
	}
}

// TakeDirty reports whether watched sources changed since the last call and
// clears the flag.
func (sw *SourceWatcher) TakeDirty() bool { return sw.dirty.Swap(false) }

// Close stops watching. TakeDirty keeps returning the last flag state.
func (sw *SourceWatcher) Close() error { return sw.w.Close() }
