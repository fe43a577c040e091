// Package kv provides the durable key-value stores the financial state is saved in.
//
// Every store maps a collection name (e.g. "accounts") to the serialized collection.
// Get returns an error wrapping fs.ErrNotExist for a key that was never written.
package kv

import (
	"fmt"
	"strings"
)

// Backend is a durable key-value store.
type Backend interface {
	Get(key string) ([]byte, error)
	Put(key string, value []byte) error
	Close() error
}

// Open returns the Backend described by uri:
//
//	mem:              in memory, lost on exit
//	dir:<path>        one <key>.json file per key in the folder <path>
//	sqlite:<file>     a single SQLite database file
//
// A uri without scheme is a folder.
func Open(uri string) (Backend, error) {
	scheme, path, found := strings.Cut(uri, ":")
	if !found {
		scheme, path = "dir", uri
	}
	switch scheme {
	case "mem":
		return NewMemory(), nil
	case "dir":
		if path == "" {
			return nil, fmt.Errorf("store %q: missing folder", uri)
		}
		return NewDir(path)
	case "sqlite":
		if path == "" {
			return nil, fmt.Errorf("store %q: missing database file", uri)
		}
		return OpenSQLite(path)
	default:
		return nil, fmt.Errorf("store %q: unknown scheme %q, want mem, dir or sqlite", uri, scheme)
	}
}
