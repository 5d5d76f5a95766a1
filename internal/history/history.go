// Package history persists alert resolutions in SQLite.
package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cristianoliveira/tmux-alert/internal/alert"
	_ "modernc.org/sqlite"
)

// FileName is the database file created under the state directory.
const FileName = "history.db"

const timeLayout = "2006-01-02T15:04:05.000Z"

const schemaSQL = `
CREATE TABLE IF NOT EXISTS resolutions (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	session_id TEXT NOT NULL UNIQUE,
	title TEXT NOT NULL,
	message TEXT NOT NULL,
	button_index INTEGER NOT NULL,
	button TEXT NOT NULL,
	source TEXT NOT NULL CHECK (source IN ('tap', 'timeout')),
	resolved_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_resolutions_resolved_at ON resolutions(resolved_at);
`

// ErrInvalidLimit is returned for negative list limits or prune counts.
var ErrInvalidLimit = errors.New("limit must be >= 0")

// Entry is a stored resolution.
type Entry struct {
	ID int64
	alert.Resolution
}

// Store records resolutions.
type Store struct {
	db *sql.DB
}

// Open opens or creates the history database at path.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("history: db path cannot be empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("history: create db directory: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("history: open db: %w", err)
	}
	s := &Store{db: db}
	if err := s.init(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) init() error {
	if _, err := s.db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		return fmt.Errorf("history: set busy timeout: %w", err)
	}
	if _, err := s.db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("history: create schema: %w", err)
	}
	return nil
}

// Close closes the database.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Record stores res. Recording the same session twice keeps the first row.
func (s *Store) Record(ctx context.Context, res alert.Resolution) error {
	if res.SessionID == "" {
		return fmt.Errorf("history: resolution has no session id")
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO resolutions (session_id, title, message, button_index, button, source, resolved_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		res.SessionID, res.Title, res.Message, res.Index, res.Button, string(res.Source),
		res.At.UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("history: record resolution: %w", err)
	}
	return nil
}

// List returns up to limit entries, newest first. A zero limit returns all.
func (s *Store) List(ctx context.Context, limit int) ([]Entry, error) {
	if limit < 0 {
		return nil, fmt.Errorf("history: list: %w", ErrInvalidLimit)
	}
	query := `SELECT id, session_id, title, message, button_index, button, source, resolved_at
		FROM resolutions ORDER BY id DESC`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("history: list: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			e      Entry
			source string
			at     string
		)
		if err := rows.Scan(&e.ID, &e.SessionID, &e.Title, &e.Message, &e.Index, &e.Button, &source, &at); err != nil {
			return nil, fmt.Errorf("history: scan: %w", err)
		}
		e.Source = alert.Source(source)
		e.At, err = time.Parse(timeLayout, at)
		if err != nil {
			return nil, fmt.Errorf("history: parse time %q: %w", at, err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("history: list: %w", err)
	}
	return entries, nil
}

// Prune deletes all but the newest keep entries and returns how many were removed.
func (s *Store) Prune(ctx context.Context, keep int) (int64, error) {
	if keep < 0 {
		return 0, fmt.Errorf("history: prune: %w", ErrInvalidLimit)
	}
	result, err := s.db.ExecContext(ctx,
		`DELETE FROM resolutions WHERE id NOT IN (SELECT id FROM resolutions ORDER BY id DESC LIMIT ?)`, keep)
	if err != nil {
		return 0, fmt.Errorf("history: prune: %w", err)
	}
	return result.RowsAffected()
}
