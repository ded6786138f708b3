// Package journal holds a journal's entries in memory, keyed by date, and
// keeps the backing file in step with every mutation.
package journal

import (
	"fmt"
	"iter"
	"log/slog"
	"maps"
	"slices"
	"time"

	"github.com/data-castle/daybook/internal/storage"
	"github.com/data-castle/daybook/pkg/models"
	"github.com/google/uuid"
)

// Option is a functional option for configuring a Store.
type Option func(*Store)

// WithLogger sets the logger used for load/save diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// Store is the in-memory collection of entries plus its backing file
type Store struct {
	file    *storage.File
	entries map[string]models.Entry // date -> entry
	logger  *slog.Logger
}

// Open loads the journal at path. A missing file gives an empty journal;
// unreadable or malformed content fails with a *models.StorageError.
func Open(path string, opts ...Option) (*Store, error) {
	s := &Store{
		file:    storage.NewFile(path),
		entries: make(map[string]models.Entry),
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}

	if err := s.load(); err != nil {
		return nil, err
	}

	return s, nil
}

// Path returns the backing file path
func (s *Store) Path() string {
	return s.file.GetPath()
}

// Len returns the number of entries
func (s *Store) Len() int {
	return len(s.entries)
}

// Add inserts the entry, replacing any entry already recorded for its date,
// and rewrites the backing file. It reports whether an entry was replaced.
func (s *Store) Add(entry models.Entry) (bool, error) {
	if err := entry.Validate(); err != nil {
		return false, err
	}
	date, err := models.NormalizeDate(entry.Date)
	if err != nil {
		return false, err
	}
	entry.Date = date
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}

	prev, replaced := s.entries[date]
	s.entries[date] = entry

	if err := s.save(); err != nil {
		if replaced {
			s.entries[date] = prev
		} else {
			delete(s.entries, date)
		}
		return false, fmt.Errorf("failed to save entry: %w", err)
	}

	s.logger.Debug("entry saved",
		slog.String("date", date),
		slog.Bool("replaced", replaced),
		slog.String("path", s.Path()))

	return replaced, nil
}

// FindByDate returns the entry recorded for date, if any
func (s *Store) FindByDate(date time.Time) (models.Entry, bool) {
	entry, ok := s.entries[dateKey(date)]
	return entry, ok
}

// ListAll yields every entry in ascending date order. The sequence reads the
// current collection each time it is ranged over.
func (s *Store) ListAll() iter.Seq[models.Entry] {
	return func(yield func(models.Entry) bool) {
		for _, date := range slices.Sorted(maps.Keys(s.entries)) {
			if !yield(s.entries[date]) {
				return
			}
		}
	}
}

// Delete removes the entry for date and rewrites the backing file.
// Deleting a date with no entry is a no-op and reports false.
func (s *Store) Delete(date time.Time) (bool, error) {
	key := dateKey(date)
	prev, exists := s.entries[key]
	if !exists {
		return false, nil
	}

	delete(s.entries, key)

	if err := s.save(); err != nil {
		s.entries[key] = prev
		return false, fmt.Errorf("failed to delete entry: %w", err)
	}

	s.logger.Debug("entry deleted", slog.String("date", key), slog.String("path", s.Path()))
	return true, nil
}

func (s *Store) load() error {
	records, err := s.file.ReadEntries()
	if err != nil {
		return err
	}

	for i, entry := range records {
		if err := entry.Validate(); err != nil {
			return &models.StorageError{
				Op:   "load",
				Path: s.Path(),
				Err:  fmt.Errorf("record %d: %w", i+1, err),
			}
		}
		if entry.ID == "" {
			entry.ID = uuid.NewString()
		}

		if _, dup := s.entries[entry.Date]; dup {
			s.logger.Warn("multiple entries for one date, keeping the last",
				slog.String("date", entry.Date),
				slog.String("path", s.Path()))
		}
		s.entries[entry.Date] = entry
	}

	s.logger.Debug("journal loaded", slog.String("path", s.Path()), slog.Int("entries", len(s.entries)))
	return nil
}

func (s *Store) save() error {
	return s.file.WriteEntries(slices.Collect(s.ListAll()))
}

func dateKey(date time.Time) string {
	return date.Format(models.DateLayout)
}
