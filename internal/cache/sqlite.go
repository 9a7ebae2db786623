package cache

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// SQLiteStore persists cache entries across runs. The contract only requires
// run-lifetime caching; this store is the opt-in upgrade selected by setting
// cache.path in the configuration.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (creating if needed) the cache database at path.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache database: %w", err)
	}
	// database/sql serializes access per connection; a single connection
	// avoids SQLITE_BUSY under concurrent writers.
	db.SetMaxOpenConns(1)

	store := &SQLiteStore{db: db}
	if err := store.initialize(); err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

func (s *SQLiteStore) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS responses (
		fingerprint TEXT PRIMARY KEY,
		response    TEXT NOT NULL,
		created_at  DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create cache schema: %w", err)
	}
	return nil
}

// Get returns the cached response for a fingerprint, if any.
func (s *SQLiteStore) Get(fingerprint string) (string, bool, error) {
	var response string
	err := s.db.QueryRow(
		`SELECT response FROM responses WHERE fingerprint = ?`, fingerprint,
	).Scan(&response)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("cache read: %w", err)
	}
	return response, true, nil
}

// Put stores a response under its fingerprint, replacing any prior entry.
func (s *SQLiteStore) Put(fingerprint, response string) error {
	_, err := s.db.Exec(
		`INSERT INTO responses (fingerprint, response) VALUES (?, ?)
		 ON CONFLICT(fingerprint) DO UPDATE SET response = excluded.response`,
		fingerprint, response,
	)
	if err != nil {
		return fmt.Errorf("cache write: %w", err)
	}
	return nil
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
