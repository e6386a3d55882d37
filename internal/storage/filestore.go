// Package storage provides the flat-file JSON array store backing the default
// storage driver. Each collection is one file holding a JSON array, lazily
// created as "[]" on first access. A per-store mutex serializes the
// read-modify-write cycle so concurrent requests cannot drop each other's
// appends.
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// File is a mutex-guarded JSON array file.
type File struct {
	mu   sync.Mutex
	path string
}

// NewFile returns a store for the JSON array at path. The file is not touched
// until first read or write.
func NewFile(path string) *File {
	return &File{path: path}
}

// Path returns the backing file path.
func (f *File) Path() string { return f.path }

// ensure creates the parent directory and an empty array file if missing.
// Caller must hold f.mu.
func (f *File) ensure() error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	if _, err := os.Stat(f.path); os.IsNotExist(err) {
		if err := os.WriteFile(f.path, []byte("[]"), 0o644); err != nil {
			return fmt.Errorf("create %s: %w", f.path, err)
		}
	} else if err != nil {
		return err
	}
	return nil
}

// read unmarshals the whole array into out. Caller must hold f.mu.
func (f *File) read(out any) error {
	if err := f.ensure(); err != nil {
		return err
	}
	data, err := os.ReadFile(f.path)
	if err != nil {
		return fmt.Errorf("read %s: %w", f.path, err)
	}
	if len(data) == 0 {
		data = []byte("[]")
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("parse %s: %w", f.path, err)
	}
	return nil
}

// write marshals v and replaces the file contents. Caller must hold f.mu.
func (f *File) write(v any) error {
	if err := f.ensure(); err != nil {
		return err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", f.path, err)
	}
	if err := os.WriteFile(f.path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", f.path, err)
	}
	return nil
}

// Load reads the array into out under the store lock.
func (f *File) Load(out any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.read(out)
}

// Update runs fn over the decoded array and writes back whatever fn returns,
// all under the store lock. fn receives the raw elements; returning an error
// aborts without writing.
func (f *File) Update(fn func(items []json.RawMessage) ([]any, error)) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	var items []json.RawMessage
	if err := f.read(&items); err != nil {
		return err
	}
	next, err := fn(items)
	if err != nil {
		return err
	}
	return f.write(next)
}

// Append decodes the array, appends item, and writes it back atomically with
// respect to other calls on this store.
func (f *File) Append(item any) error {
	return f.Update(func(items []json.RawMessage) ([]any, error) {
		out := make([]any, 0, len(items)+1)
		for _, it := range items {
			out = append(out, it)
		}
		return append(out, item), nil
	})
}
