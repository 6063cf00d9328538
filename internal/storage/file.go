package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/starford/taskline/internal/checksum"
	"github.com/starford/taskline/internal/models"
)

// File implements Store as a plain text file, one task per line. Every
// save rewrites the whole file.
type File struct {
	path string
	loc  *time.Location

	io  sync.Mutex // serializes saves with external-change checks
	mu  sync.Mutex
	sum string // checksum of the content last read or written
}

// NewFile returns a File store at path. The file and its directory are
// created on the first save.
func NewFile(path string, loc *time.Location) *File {
	if loc == nil {
		loc = time.Local
	}
	return &File{path: path, loc: loc}
}

// Path returns the data file path.
func (f *File) Path() string {
	return f.path
}

// LoadAll reads every task from the file. A missing file is an empty list.
func (f *File) LoadAll() ([]models.Task, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			f.setChecksum(checksum.Sum(nil))
			return nil, nil
		}
		return nil, fmt.Errorf("storage: read %s: %w", f.path, err)
	}
	tasks, err := Decode(data, f.loc)
	if err != nil {
		return nil, fmt.Errorf("storage: decode %s: %w", f.path, err)
	}
	f.setChecksum(checksum.Sum(data))
	return tasks, nil
}

// SaveAll atomically replaces the file: tmp file → fsync → rename.
func (f *File) SaveAll(tasks []models.Task) error {
	content := Encode(tasks, f.loc)

	f.io.Lock()
	defer f.io.Unlock()
	if err := writeAtomic(f.path, content); err != nil {
		return err
	}
	f.setChecksum(checksum.Sum(content))
	return nil
}

// unchanged reports whether the file on disk still holds the content this
// store last read or wrote. It never observes a save half done.
func (f *File) unchanged() (bool, error) {
	f.io.Lock()
	defer f.io.Unlock()
	data, err := os.ReadFile(f.path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return false, err
	}
	return checksum.Sum(data) == f.Checksum(), nil
}

// Close is a no-op; the file is not held open between saves.
func (f *File) Close() error {
	return nil
}

// Checksum returns the digest of the content this store last read or wrote.
func (f *File) Checksum() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.sum
}

func (f *File) setChecksum(sum string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sum = sum
}

func writeAtomic(path string, content []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("storage: mkdir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".taskline-tmp-*")
	if err != nil {
		return fmt.Errorf("storage: create temp: %w", err)
	}
	tmpName := tmp.Name()

	// Clean up on any failure path.
	success := false
	defer func() {
		if !success {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(content); err != nil {
		return fmt.Errorf("storage: write temp: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("storage: fsync: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("storage: close temp: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("storage: rename: %w", err)
	}
	success = true
	return nil
}
