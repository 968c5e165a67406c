// Package storage persists the whole note snapshot as a single JSON
// document. Every completed mutation rewrites the entire file; there is
// no partial or delta persistence.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"

	"notelink/store"
)

const tmpPrefix = "notelink-tmp-"

// File loads and saves the snapshot at a fixed path. An optional
// fsnotify watcher marks the gateway stale when the file changes on
// disk, so callers holding a cached snapshot know to reload.
type File struct {
	path    string
	stale   atomic.Bool
	watcher *fsnotify.Watcher
}

// New creates a gateway for the document at path.
func New(path string) *File {
	return &File{path: path}
}

// Load reads and decodes the snapshot. A missing file yields an empty
// initialized snapshot rather than an error.
func (f *File) Load() (*store.Store, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		f.stale.Store(false)
		return store.New(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}

	s := store.New()
	if err := json.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("decode snapshot %s: %w", f.path, err)
	}
	s.Normalize()
	f.stale.Store(false)
	return s, nil
}

// Save encodes the snapshot and writes it atomically: the document is
// written to a temp file in the same directory and renamed over the
// target, so a crash mid-write never leaves a truncated store.
func (f *File) Save(s *store.Store) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	if err := writeFileAtomic(f.path, data, 0o644); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	f.stale.Store(false)
	return nil
}

// Stale reports whether the file changed on disk since the last
// Load/Save. Always false when Watch was never started.
func (f *File) Stale() bool {
	return f.stale.Load()
}

// Watch starts an fsnotify watcher on the snapshot's directory (the
// file itself is replaced by rename on every save, so watching the
// directory is required). External writes flip the stale flag; the
// service reloads before its next operation.
func (f *File) Watch() error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("start watcher: %w", err)
	}
	if err := w.Add(filepath.Dir(f.path)); err != nil {
		w.Close()
		return fmt.Errorf("watch %s: %w", filepath.Dir(f.path), err)
	}
	f.watcher = w

	go func() {
		for {
			select {
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) == filepath.Clean(f.path) {
					f.stale.Store(true)
				}
			case _, ok := <-w.Errors:
				if !ok {
					return
				}
			}
		}
	}()
	return nil
}

// Close stops the watcher if one was started.
func (f *File) Close() error {
	if f.watcher == nil {
		return nil
	}
	return f.watcher.Close()
}

// writeFileAtomic writes data to a temp file in the target's directory,
// syncs it, and renames it into place.
func writeFileAtomic(filename string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(filename)

	tmp, err := os.CreateTemp(dir, tmpPrefix+"*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmp.Name(), perm); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), filename); err != nil {
		return fmt.Errorf("rename temp file to %s: %w", filename, err)
	}
	return nil
}
