// Package sqlite persists drafts in a single SQLite table so in-progress
// values survive process restarts. Values are JSON-encoded at this boundary;
// the form core hands them over untransformed.
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/goccy/go-json"
	_ "github.com/mattn/go-sqlite3"

	"github.com/goliatone/go-formstate/pkg/draft"
)

const schema = `
CREATE TABLE IF NOT EXISTS drafts (
	form_id     TEXT NOT NULL,
	field_id    TEXT NOT NULL,
	value       TEXT NOT NULL,
	updated_at  TEXT NOT NULL DEFAULT (datetime('now')),
	PRIMARY KEY (form_id, field_id)
);
`

// Store implements draft.Store on top of a SQLite database.
type Store struct {
	db *sql.DB
}

var _ draft.Store = (*Store)(nil)

// Open opens (creating if needed) the database at path and ensures the draft
// schema exists.
func Open(path string) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("draft sqlite: path is required")
	}
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("draft sqlite: open %s: %w", path, err)
	}
	store, err := NewWithDB(db)
	if err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

// NewWithDB wraps an existing database handle, ensuring the schema exists.
// The caller keeps ownership of the handle unless it came from Open.
func NewWithDB(db *sql.DB) (*Store, error) {
	if db == nil {
		return nil, fmt.Errorf("draft sqlite: db handle is required")
	}
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("draft sqlite: ensure schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Get implements draft.Store.
func (s *Store) Get(formID, fieldID string) (any, bool, error) {
	var raw string
	err := s.db.QueryRow(
		`SELECT value FROM drafts WHERE form_id = ? AND field_id = ?`,
		formID, fieldID,
	).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("draft sqlite: get %s/%s: %w", formID, fieldID, err)
	}

	var value any
	if err := json.Unmarshal([]byte(raw), &value); err != nil {
		return nil, false, fmt.Errorf("draft sqlite: decode %s/%s: %w", formID, fieldID, err)
	}
	return value, true, nil
}

// Set implements draft.Store.
func (s *Store) Set(formID, fieldID string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("draft sqlite: encode %s/%s: %w", formID, fieldID, err)
	}
	_, err = s.db.Exec(
		`INSERT INTO drafts (form_id, field_id, value, updated_at)
		 VALUES (?, ?, ?, datetime('now'))
		 ON CONFLICT (form_id, field_id) DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at`,
		formID, fieldID, string(raw),
	)
	if err != nil {
		return fmt.Errorf("draft sqlite: set %s/%s: %w", formID, fieldID, err)
	}
	return nil
}

// ClearForm implements draft.Store.
func (s *Store) ClearForm(formID string) error {
	if _, err := s.db.Exec(`DELETE FROM drafts WHERE form_id = ?`, formID); err != nil {
		return fmt.Errorf("draft sqlite: clear form %s: %w", formID, err)
	}
	return nil
}

// ClearAll implements draft.Store.
func (s *Store) ClearAll() error {
	if _, err := s.db.Exec(`DELETE FROM drafts`); err != nil {
		return fmt.Errorf("draft sqlite: clear all: %w", err)
	}
	return nil
}
