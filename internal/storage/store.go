// Package storage mirrors the task list to durable storage.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/starford/taskline/internal/models"
)

// Backends.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// Store is the persistence adapter for the task list.
type Store interface {
	// LoadAll returns every stored task in list order. It is called once
	// at startup.
	LoadAll() ([]models.Task, error)
	// SaveAll replaces the stored list with tasks. A failed save leaves the
	// previous contents in place.
	SaveAll(tasks []models.Task) error
	// Close releases any resources held by the store.
	Close() error
}

// Open returns the store for backend at path. Timestamps are read back in loc.
func Open(backend, path string, loc *time.Location) (Store, error) {
	switch backend {
	case BackendFile, "":
		return NewFile(path, loc), nil
	case BackendSQLite:
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("storage: mkdir: %w", err)
		}
		return OpenSQLite(path, loc)
	default:
		return nil, fmt.Errorf("storage: unknown backend %q", backend)
	}
}
