package wallet

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/etnz/wallet/date"
	"github.com/shopspring/decimal"
)

// ErrNoRecord is returned when a record index is out of range.
var ErrNoRecord = errors.New("no such record")

// Store is the ordered list of records, mirrored to a storage file.
//
// After every successful mutation the file holds exactly the records in
// memory. When writing fails, the mutation is undone and the error returned.
// A Store is not safe for concurrent use, and assumes it is the only writer of
// its file.
type Store struct {
	path    string
	records []Record
}

// Entry is a record with its position in the store.
type Entry struct {
	Index  int // 0-based
	Record Record
}

// Open loads the store from the file at path. A missing file is created empty.
func Open(path string) (*Store, error) {
	if path == "" {
		return nil, errors.New("storage path is empty")
	}
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		if err := os.WriteFile(path, nil, 0644); err != nil {
			return nil, fmt.Errorf("could not create storage file %q: %w", path, err)
		}
		slog.Info("created storage file", "path", path)
		return &Store{path: path}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("could not open storage file %q: %w", path, err)
	}
	defer f.Close()

	records, err := DecodeRecords(f)
	if err != nil {
		return nil, fmt.Errorf("could not decode storage file %q: %w", path, err)
	}
	slog.Debug("loaded records", "path", path, "count", len(records))
	return &Store{path: path, records: records}, nil
}

// Path returns the storage file path.
func (s *Store) Path() string { return s.path }

// Len returns the number of records.
func (s *Store) Len() int { return len(s.records) }

// Records returns a copy of all records in store order.
func (s *Store) Records() []Record { return slices.Clone(s.records) }

// Record returns the record at index i.
func (s *Store) Record(i int) (Record, error) {
	if i < 0 || i >= len(s.records) {
		return Record{}, fmt.Errorf("record #%d: %w", i+1, ErrNoRecord)
	}
	return s.records[i], nil
}

// Entries returns all records with their index.
func (s *Store) Entries() []Entry {
	return s.Select(func(Record) bool { return true })
}

// Select returns the entries whose record satisfies keep, in store order.
func (s *Store) Select(keep func(Record) bool) []Entry {
	var entries []Entry
	for i, r := range s.records {
		if keep(r) {
			entries = append(entries, Entry{Index: i, Record: r})
		}
	}
	return entries
}

// Search returns the entries matching f.
func (s *Store) Search(f Filter) []Entry { return s.Select(f.Match) }

// Finances sums the incomes and expenses of the whole store.
func (s *Store) Finances() Finances { return Summarize(s.records) }

// Add appends r and persists the store.
func (s *Store) Add(r Record) error {
	if err := r.Validate(); err != nil {
		return fmt.Errorf("invalid record: %w", err)
	}
	next := append(slices.Clone(s.records), r)
	return s.commit(next, "add")
}

// Edit replaces the record at index i and persists the store.
func (s *Store) Edit(i int, r Record) error {
	if _, err := s.Record(i); err != nil {
		return err
	}
	if err := r.Validate(); err != nil {
		return fmt.Errorf("invalid record: %w", err)
	}
	next := slices.Clone(s.records)
	next[i] = r
	return s.commit(next, "edit")
}

// Delete removes the record at index i and persists the store.
func (s *Store) Delete(i int) error {
	if _, err := s.Record(i); err != nil {
		return err
	}
	next := slices.Delete(slices.Clone(s.records), i, i+1)
	return s.commit(next, "delete")
}

// Sort reorders records by date and persists the store.
// The sort is stable, records on the same day keep their relative order.
func (s *Store) Sort() error {
	next := slices.Clone(s.records)
	slices.SortStableFunc(next, func(a, b Record) int { return a.Date.Compare(b.Date) })
	return s.commit(next, "sort")
}

// Save rewrites the storage file from memory in canonical form.
func (s *Store) Save() error { return s.commit(slices.Clone(s.records), "save") }

// commit writes next to the storage file, and only then makes it the store content.
func (s *Store) commit(next []Record, op string) error {
	if err := writeFile(s.path, next); err != nil {
		return err
	}
	s.records = next
	slog.Debug("saved records", "op", op, "path", s.path, "count", len(next))
	return nil
}

// writeFile replaces the file at path with records. The content is written
// to a temporary file in the same directory, then renamed over path.
func writeFile(path string, records []Record) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("could not write storage file %q: %w", path, err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if err = EncodeRecords(tmp, records); err != nil {
		return fmt.Errorf("could not write storage file %q: %w", path, err)
	}
	if err = tmp.Chmod(0644); err != nil {
		return fmt.Errorf("could not write storage file %q: %w", path, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("could not write storage file %q: %w", path, err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("could not replace storage file %q: %w", path, err)
	}
	return nil
}

// Filter selects records. Zero fields match everything.
type Filter struct {
	Category string // case-insensitive
	Date     date.Date
	Amount   decimal.NullDecimal
}

// Match reports whether r satisfies every criteria set in f.
func (f Filter) Match(r Record) bool {
	if f.Category != "" && !strings.EqualFold(strings.TrimSpace(f.Category), strings.TrimSpace(r.Category)) {
		return false
	}
	if !f.Date.IsZero() && f.Date != r.Date {
		return false
	}
	if f.Amount.Valid && !f.Amount.Decimal.Equal(r.Amount) {
		return false
	}
	return true
}
