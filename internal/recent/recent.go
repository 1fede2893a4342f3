// Package recent keeps the list of recently opened books in SQLite.
package recent

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// MaxBooks bounds the table; older rows are dropped on Touch.
const MaxBooks = 10

const schema = `
CREATE TABLE IF NOT EXISTS recent_books (
    path TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    cover_path TEXT NOT NULL DEFAULT '',
    opened_at INTEGER NOT NULL -- UnixNano
);

CREATE INDEX IF NOT EXISTS idx_recent_opened ON recent_books(opened_at);
`

// Book is one recently opened book.
type Book struct {
	Path      string    `json:"path"`
	Title     string    `json:"title"`
	CoverPath string    `json:"coverPath,omitempty"`
	OpenedAt  time.Time `json:"openedAt"`
}

type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens or creates the database at path. ":memory:" works for tests.
func Open(path string) (*Store, error) {
	dsn := ":memory:"
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create directory: %w", err)
		}
		dsn = path + "?_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// One connection keeps ":memory:" a single database.
	db.SetMaxOpenConns(1)
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connect database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Store{db: db, now: time.Now}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// Touch records that the book at path was opened now.
func (s *Store) Touch(ctx context.Context, book Book) error {
	opened := book.OpenedAt
	if opened.IsZero() {
		opened = s.now()
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, `
INSERT INTO recent_books(path, title, cover_path, opened_at) VALUES (?, ?, ?, ?)
ON CONFLICT(path) DO UPDATE SET title = excluded.title, cover_path = excluded.cover_path, opened_at = excluded.opened_at`,
		book.Path, book.Title, book.CoverPath, opened.UnixNano())
	if err != nil {
		return fmt.Errorf("upsert %s: %w", book.Path, err)
	}
	_, err = tx.ExecContext(ctx, `
DELETE FROM recent_books WHERE path NOT IN (
    SELECT path FROM recent_books ORDER BY opened_at DESC LIMIT ?
)`, MaxBooks)
	if err != nil {
		return fmt.Errorf("trim: %w", err)
	}
	return tx.Commit()
}

// List returns up to limit books, newest first. limit <= 0 means all.
func (s *Store) List(ctx context.Context, limit int) ([]Book, error) {
	if limit <= 0 {
		limit = MaxBooks
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT path, title, cover_path, opened_at FROM recent_books ORDER BY opened_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	var books []Book
	for rows.Next() {
		var b Book
		var opened int64
		if err := rows.Scan(&b.Path, &b.Title, &b.CoverPath, &opened); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		b.OpenedAt = time.Unix(0, opened)
		books = append(books, b)
	}
	return books, rows.Err()
}

func (s *Store) Remove(ctx context.Context, path string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM recent_books WHERE path = ?`, path); err != nil {
		return fmt.Errorf("remove %s: %w", path, err)
	}
	return nil
}

func (s *Store) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM recent_books`); err != nil {
		return fmt.Errorf("clear: %w", err)
	}
	return nil
}
