// Package store persists known words in SQLite.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS known_words (
	id       INTEGER PRIMARY KEY AUTOINCREMENT,
	word     TEXT NOT NULL UNIQUE,
	added_at TEXT NOT NULL
)`

// Store is the known-words table.
type Store struct {
	db *sql.DB
}

// Open opens or creates the database at path. The special path ":memory:"
// keeps everything in memory.
func Open(ctx context.Context, path string) (*Store, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("creating database dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	// one connection keeps :memory: databases shared and serializes writers
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Normalize is the stored form of a word.
func Normalize(word string) string {
	return strings.ToLower(strings.TrimSpace(word))
}

// Add inserts words. Blank words are ignored; words already present,
// including repeats within the same call, count as skipped.
func (s *Store) Add(ctx context.Context, words []string) (added, skipped int, err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `INSERT OR IGNORE INTO known_words (word, added_at) VALUES (?, ?)`)
	if err != nil {
		return 0, 0, fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC().Format(time.RFC3339)
	for _, w := range words {
		w = Normalize(w)
		if w == "" {
			continue
		}

		res, err := stmt.ExecContext(ctx, w, now)
		if err != nil {
			return 0, 0, fmt.Errorf("inserting %q: %w", w, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return 0, 0, fmt.Errorf("reading rows affected: %w", err)
		}
		if n == 0 {
			skipped++
		} else {
			added++
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, 0, fmt.Errorf("committing: %w", err)
	}
	return added, skipped, nil
}

// Contains reports whether word is stored.
func (s *Store) Contains(ctx context.Context, word string) (bool, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM known_words WHERE word = ?`, Normalize(word)).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("querying word: %w", err)
	}
	return n > 0, nil
}

// Remove deletes word and reports whether it was present.
func (s *Store) Remove(ctx context.Context, word string) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM known_words WHERE word = ?`, Normalize(word))
	if err != nil {
		return false, fmt.Errorf("deleting word: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("reading rows affected: %w", err)
	}
	return n > 0, nil
}

// All returns every stored word in alphabetical order.
func (s *Store) All(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT word FROM known_words ORDER BY word`)
	if err != nil {
		return nil, fmt.Errorf("querying words: %w", err)
	}
	defer rows.Close()

	words := []string{}
	for rows.Next() {
		var w string
		if err := rows.Scan(&w); err != nil {
			return nil, fmt.Errorf("scanning word: %w", err)
		}
		words = append(words, w)
	}
	return words, rows.Err()
}

// Count returns the number of stored words.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM known_words`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting words: %w", err)
	}
	return n, nil
}
