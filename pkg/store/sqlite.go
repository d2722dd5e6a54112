package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteStore keeps the disabled list in a sqlite database.
type SQLiteStore struct {
	db   *sql.DB
	path string
}

// NewSQLiteStore opens or creates the database at path.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create state dir: %w", err)
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	s := &SQLiteStore{db: db, path: path}
	if err := s.init(); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize store: %w", err)
	}
	return s, nil
}

// init creates the database schema
func (s *SQLiteStore) init() error {
	schema := `
	CREATE TABLE IF NOT EXISTS disabled_actions (
		id TEXT PRIMARY KEY,
		position INTEGER NOT NULL,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_disabled_actions_position ON disabled_actions(position);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Get returns the disabled ids in the order they were stored.
func (s *SQLiteStore) Get() ([]string, error) {
	rows, err := s.db.Query(`SELECT id FROM disabled_actions ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("query disabled actions: %w", err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// Set replaces the stored list in one transaction.
func (s *SQLiteStore) Set(ids []string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM disabled_actions`); err != nil {
		return fmt.Errorf("clear disabled actions: %w", err)
	}

	stmt, err := tx.Prepare(`INSERT INTO disabled_actions (id, position, updated_at) VALUES (?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	now := time.Now()
	for i, id := range dedupe(ids) {
		if _, err := stmt.Exec(id, i, now); err != nil {
			return fmt.Errorf("insert %s: %w", id, err)
		}
	}
	return tx.Commit()
}

// Path returns the database file.
func (s *SQLiteStore) Path() string { return s.path }

// Close closes the store database
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
