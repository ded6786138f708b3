package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/data-castle/daybook/pkg/models"
)

const (
	// DefaultFileName is the backing file name used when a journal has no explicit path
	DefaultFileName = "journal.json"

	dirPerm  = 0700
	filePerm = 0600
)

// File handles reading and rewriting a journal's backing JSON file
type File struct {
	path string
}

// NewFile creates a file handle for the given path. Nothing is touched on disk.
func NewFile(path string) *File {
	return &File{path: path}
}

// GetPath returns the path of the backing file
func (f *File) GetPath() string {
	return f.path
}

// Exists reports whether the backing file is present
func (f *File) Exists() bool {
	_, err := os.Stat(f.path)
	return err == nil
}

// ReadEntries loads every record from the backing file.
// A missing or zero-length file yields no entries and no error.
func (f *File) ReadEntries() ([]models.Entry, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, &models.StorageError{Op: "read", Path: f.path, Err: err}
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}

	var entries []models.Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, &models.StorageError{Op: "parse", Path: f.path, Err: err}
	}

	return entries, nil
}

// WriteEntries replaces the backing file with the given entries.
// The data goes to a temporary file in the same directory first and is
// renamed into place, so readers never observe a half-written journal.
func (f *File) WriteEntries(entries []models.Entry) error {
	if entries == nil {
		entries = []models.Entry{}
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return &models.StorageError{Op: "encode", Path: f.path, Err: err}
	}
	data = append(data, '\n')

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return &models.StorageError{Op: "create directory for", Path: f.path, Err: err}
	}

	if err := writeFileAtomic(dir, f.path, data); err != nil {
		return &models.StorageError{Op: "write", Path: f.path, Err: err}
	}

	return nil
}

func writeFileAtomic(dir, path string, data []byte) (err error) {
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	defer func() {
		if err != nil {
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err = tmp.Chmod(filePerm); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to set permissions: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err = os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to replace file: %w", err)
	}

	return nil
}
