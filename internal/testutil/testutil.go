// Package testutil provides shared test helpers for stores and sessions.
package testutil

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/starford/taskline/internal/models"
	"github.com/starford/taskline/internal/storage"
)

// TestFile returns a file store under a temporary directory. Timestamps
// are read back in UTC.
func TestFile(t *testing.T) *storage.File {
	t.Helper()
	return storage.NewFile(filepath.Join(t.TempDir(), "data", "tasks.txt"), time.UTC)
}

// MemStore is an in-memory storage.Store. Setting Err makes every save fail.
type MemStore struct {
	Tasks []models.Task
	Saves int
	Err   error
}

// LoadAll returns a copy of the stored tasks.
func (m *MemStore) LoadAll() ([]models.Task, error) {
	return append([]models.Task(nil), m.Tasks...), nil
}

// SaveAll records tasks unless Err is set.
func (m *MemStore) SaveAll(tasks []models.Task) error {
	m.Saves++
	if m.Err != nil {
		return m.Err
	}
	m.Tasks = append([]models.Task(nil), tasks...)
	return nil
}

// Close is a no-op.
func (m *MemStore) Close() error { return nil }
