// Package history keeps a local log of the pastes pastelink rewrote.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

type Entry struct {
	ID        string
	CreatedAt time.Time
	// Source is where the payload came from, e.g. "clipboard" or a fixture path.
	Source   string
	Path     string
	Plain    string
	Markdown string
}

type Store struct {
	db *sql.DB
}

func Open(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create history directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &Store{db: db}
	if err := s.init(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return s, nil
}

func (s *Store) init() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS rewrites (
			id TEXT PRIMARY KEY,
			created_at DATETIME NOT NULL,
			source TEXT NOT NULL,
			path TEXT NOT NULL,
			plain TEXT NOT NULL,
			markdown TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_rewrites_created_at ON rewrites(created_at)`,
	}

	for _, query := range queries {
		if _, err := s.db.Exec(query); err != nil {
			return fmt.Errorf("failed to create table: %w", err)
		}
	}

	return nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Add records e, filling in ID and CreatedAt when unset.
func (s *Store) Add(e Entry) (Entry, error) {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}
	e.CreatedAt = e.CreatedAt.UTC()

	_, err := s.db.Exec(
		`INSERT INTO rewrites (id, created_at, source, path, plain, markdown) VALUES (?, ?, ?, ?, ?, ?)`,
		e.ID, e.CreatedAt, e.Source, e.Path, e.Plain, e.Markdown,
	)
	if err != nil {
		return Entry{}, fmt.Errorf("failed to insert rewrite: %w", err)
	}
	return e, nil
}

// List returns entries newest first. limit <= 0 means no limit.
func (s *Store) List(limit int) ([]Entry, error) {
	query := `SELECT id, created_at, source, path, plain, markdown FROM rewrites ORDER BY created_at DESC, rowid DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query rewrites: %w", err)
	}
	defer rows.Close()

	entries := []Entry{}
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.CreatedAt, &e.Source, &e.Path, &e.Plain, &e.Markdown); err != nil {
			return nil, fmt.Errorf("failed to scan rewrite: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Clear deletes every entry and returns how many were removed.
func (s *Store) Clear() (int64, error) {
	res, err := s.db.Exec(`DELETE FROM rewrites`)
	if err != nil {
		return 0, fmt.Errorf("failed to clear rewrites: %w", err)
	}
	return res.RowsAffected()
}
