package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// DateLayout is the canonical form of an entry date
const DateLayout = "2006-01-02"

// timestamp layouts accepted for created_at, newest format first
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
}

// Entry is one journal record. Date is the unique key within a journal.
type Entry struct {
	ID        string    `json:"id" yaml:"id"`
	Date      string    `json:"date" yaml:"date"`
	Mood      string    `json:"mood" yaml:"mood"`
	Goal      string    `json:"goal" yaml:"goal"`
	Notes     string    `json:"notes" yaml:"notes"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}

// NewEntry builds a validated entry stamped with a fresh ID and the current time
func NewEntry(date, mood, goal, notes string) (*Entry, error) {
	return NewEntryAt(time.Now(), date, mood, goal, notes)
}

// NewEntryAt is NewEntry with an explicit creation time
func NewEntryAt(now time.Time, date, mood, goal, notes string) (*Entry, error) {
	entry := &Entry{
		ID:        uuid.NewString(),
		Date:      strings.TrimSpace(date),
		Mood:      strings.TrimSpace(mood),
		Goal:      strings.TrimSpace(goal),
		Notes:     strings.TrimSpace(notes),
		CreatedAt: now.UTC().Truncate(time.Second),
	}

	if err := entry.Validate(); err != nil {
		return nil, err
	}

	// Validate guarantees the date parses
	d, _ := time.Parse(DateLayout, entry.Date)
	entry.Date = d.Format(DateLayout)

	return entry, nil
}

// Validate checks the date and that the entry carries some content
func (e *Entry) Validate() error {
	err := validation.ValidateStruct(e,
		validation.Field(&e.Date,
			validation.Required.Error("is required"),
			validation.Date(DateLayout).Error("must be a valid calendar date (YYYY-MM-DD)"),
		),
	)
	if err != nil {
		return fromValidation(err)
	}

	if e.Mood == "" && e.Goal == "" && e.Notes == "" {
		return &ValidationError{Reason: "mood, goal and notes cannot all be empty"}
	}

	return nil
}

// GetDate returns the entry date as midnight UTC
func (e *Entry) GetDate() time.Time {
	d, _ := time.Parse(DateLayout, e.Date)
	return d
}

// ToYaml renders the entry as YAML
func (e *Entry) ToYaml() ([]byte, error) {
	return yaml.Marshal(e)
}

// UnmarshalJSON also accepts the older "text" key for notes and
// timestamps written without a zone offset.
func (e *Entry) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID        string  `json:"id"`
		Date      string  `json:"date"`
		Mood      string  `json:"mood"`
		Goal      string  `json:"goal"`
		Notes     string  `json:"notes"`
		Text      *string `json:"text"`
		CreatedAt string  `json:"created_at"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	notes := raw.Notes
	if notes == "" && raw.Text != nil {
		notes = *raw.Text
	}

	var createdAt time.Time
	if raw.CreatedAt != "" {
		t, err := parseTimestamp(raw.CreatedAt)
		if err != nil {
			return err
		}
		createdAt = t
	}

	*e = Entry{
		ID:        raw.ID,
		Date:      raw.Date,
		Mood:      raw.Mood,
		Goal:      raw.Goal,
		Notes:     notes,
		CreatedAt: createdAt,
	}
	return nil
}

// ParseDate parses a YYYY-MM-DD calendar date
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, &ValidationError{Field: "date", Reason: "is required"}
	}
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, &ValidationError{Field: "date", Reason: fmt.Sprintf("%q is not a valid calendar date (YYYY-MM-DD)", s)}
	}
	return d, nil
}

// NormalizeDate parses s and returns it in canonical form
func NormalizeDate(s string) (string, error) {
	d, err := ParseDate(s)
	if err != nil {
		return "", err
	}
	return d.Format(DateLayout), nil
}

func parseTimestamp(s string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid created_at timestamp %q", s)
}

// fromValidation turns ozzo-validation output into a *ValidationError
// naming the first failing field.
func fromValidation(err error) error {
	var errs validation.Errors
	if !errors.As(err, &errs) || len(errs) == 0 {
		return &ValidationError{Reason: err.Error()}
	}

	fields := make([]string, 0, len(errs))
	for field := range errs {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	return &ValidationError{Field: fields[0], Reason: errs[fields[0]].Error()}
}
