package storage

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/data-castle/daybook/pkg/models"
)

func setupTestFile(t *testing.T) (*File, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nested", DefaultFileName)
	return NewFile(path), path
}

func mustEntry(t *testing.T, date, mood, goal, notes string) models.Entry {
	t.Helper()
	entry, err := models.NewEntryAt(time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC), date, mood, goal, notes)
	if err != nil {
		t.Fatalf("failed to build entry: %v", err)
	}
	return *entry
}

func TestReadEntries_MissingFile(t *testing.T) {
	file, _ := setupTestFile(t)

	entries, err := file.ReadEntries()
	if err != nil {
		t.Fatalf("ReadEntries on missing file should not fail: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("expected no entries, got %d", len(entries))
	}
	if file.Exists() {
		t.Error("reading must not create the file")
	}
}

func TestReadEntries_EmptyFile(t *testing.T) {
	file, path := setupTestFile(t)
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		t.Fatalf("failed to create dir: %v", err)
	}
	if err := os.WriteFile(path, []byte("  \n"), 0600); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	entries, err := file.ReadEntries()
	if err != nil {
		t.Fatalf("ReadEntries on empty file should not fail: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("expected no entries, got %d", len(entries))
	}
}

func TestReadEntries_Malformed(t *testing.T) {
	file, path := setupTestFile(t)
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		t.Fatalf("failed to create dir: %v", err)
	}
	if err := os.WriteFile(path, []byte(`[{"date": "2024-01-01",`), 0600); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	_, err := file.ReadEntries()
	if err == nil {
		t.Fatal("expected error for malformed file")
	}

	var sErr *models.StorageError
	if !errors.As(err, &sErr) {
		t.Fatalf("expected *models.StorageError, got %T", err)
	}
	if sErr.Op != "parse" || sErr.Path != path {
		t.Errorf("unexpected error details: %+v", sErr)
	}
}

func TestReadEntries_WrongShape(t *testing.T) {
	file, path := setupTestFile(t)
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		t.Fatalf("failed to create dir: %v", err)
	}
	if err := os.WriteFile(path, []byte(`{"date": "2024-01-01"}`), 0600); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	if _, err := file.ReadEntries(); !errors.Is(err, models.ErrStorage) {
		t.Errorf("expected storage error for non-array content, got %v", err)
	}
}

func TestWriteAndReadEntries(t *testing.T) {
	file, path := setupTestFile(t)

	want := []models.Entry{
		mustEntry(t, "2024-01-01", "happy", "rest", "New year"),
		mustEntry(t, "2024-01-02", "tired", "", "Back to work"),
	}

	if err := file.WriteEntries(want); err != nil {
		t.Fatalf("WriteEntries failed: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("file should exist after write: %v", err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("expected mode 0600, got %v", info.Mode().Perm())
	}

	got, err := file.ReadEntries()
	if err != nil {
		t.Fatalf("ReadEntries failed: %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d entries, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("entry %d mismatch:\nwant %+v\ngot  %+v", i, want[i], got[i])
		}
	}
}

func TestWriteEntries_HumanReadable(t *testing.T) {
	file, path := setupTestFile(t)

	if err := file.WriteEntries([]models.Entry{mustEntry(t, "2024-01-01", "ok", "", "")}); err != nil {
		t.Fatalf("WriteEntries failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read file: %v", err)
	}
	content := string(data)

	if !strings.HasPrefix(content, "[\n  {\n") {
		t.Errorf("expected indented JSON array, got:\n%s", content)
	}
	for _, field := range []string{`"date"`, `"mood"`, `"goal"`, `"notes"`} {
		if !strings.Contains(content, field) {
			t.Errorf("expected field %s in file", field)
		}
	}
	if !strings.HasSuffix(content, "]\n") {
		t.Error("expected trailing newline")
	}
}

func TestWriteEntries_EmptyCollection(t *testing.T) {
	file, path := setupTestFile(t)

	if err := file.WriteEntries(nil); err != nil {
		t.Fatalf("WriteEntries failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read file: %v", err)
	}
	if string(data) != "[]\n" {
		t.Errorf("expected empty array, got %q", string(data))
	}
}

func TestWriteEntries_NoTempFilesLeft(t *testing.T) {
	file, path := setupTestFile(t)

	for i := 0; i < 3; i++ {
		if err := file.WriteEntries([]models.Entry{mustEntry(t, "2024-01-01", "ok", "", "")}); err != nil {
			t.Fatalf("WriteEntries failed: %v", err)
		}
	}

	files, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatalf("failed to read dir: %v", err)
	}
	if len(files) != 1 || files[0].Name() != DefaultFileName {
		var names []string
		for _, f := range files {
			names = append(names, f.Name())
		}
		t.Errorf("expected only %s, got %v", DefaultFileName, names)
	}
}
