package kv

import (
	"fmt"
	"os"
	"path/filepath"
)

// Dir is a Backend storing each key in its own "<key>.json" file.
type Dir struct {
	path string
}

// NewDir returns a Dir store in path, creating the folder if needed.
func NewDir(path string) (*Dir, error) {
	if err := os.MkdirAll(path, 0755); err != nil {
		return nil, fmt.Errorf("could not create store directory %q: %w", path, err)
	}
	return &Dir{path: path}, nil
}

// Path returns the store folder.
func (d *Dir) Path() string { return d.path }

func (d *Dir) file(key string) string { return filepath.Join(d.path, key+".json") }

// Get reads the key file. A missing file returns an error wrapping fs.ErrNotExist.
func (d *Dir) Get(key string) ([]byte, error) {
	data, err := os.ReadFile(d.file(key))
	if err != nil {
		return nil, fmt.Errorf("could not read %q: %w", key, err)
	}
	return data, nil
}

// Put writes the key file through a temporary file renamed in place, so that a
// reader never sees a half written collection.
func (d *Dir) Put(key string, value []byte) error {
	tmp, err := os.CreateTemp(d.path, key+".*.tmp")
	if err != nil {
		return fmt.Errorf("error opening %q for writing: %w", key, err)
	}
	defer os.Remove(tmp.Name()) // no-op once renamed

	if _, err := tmp.Write(value); err != nil {
		tmp.Close()
		return fmt.Errorf("error writing %q: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("error writing %q: %w", key, err)
	}
	if err := os.Rename(tmp.Name(), d.file(key)); err != nil {
		return fmt.Errorf("error saving %q: %w", key, err)
	}
	return nil
}

func (d *Dir) Close() error { return nil }
