// Package sqlite persists resolver cache entries in a local SQLite file,
// so opening values survive restarts without a network round trip.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// FileName is the database file created inside the cache directory
const FileName = "djia.sqlite"

// Store implements cache.Store on top of SQLite.
type Store struct {
	sqlDB *sql.DB
	now   func() time.Time
}

// Open creates dir if needed and opens (or creates) the cache database in it.
// The directory must be writable.
func Open(dir string) (*Store, error) {
	if dir == "" {
		return nil, errors.New("cache directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}

	path := filepath.Join(dir, FileName)
	dsn := "file:" + path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"

	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite cache: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	store := &Store{sqlDB: sqlDB, now: time.Now}
	if err := store.migrate(context.Background()); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}

	return store, nil
}

func (s *Store) migrate(ctx context.Context) error {
	_, err := s.sqlDB.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS market_values (
			key        TEXT PRIMARY KEY,
			value      TEXT NOT NULL,
			fetched_at INTEGER NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("migrate sqlite cache: %w", err)
	}
	return nil
}

// Get implements cache.Store
func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.sqlDB.QueryRowContext(ctx, `SELECT value FROM market_values WHERE key = ?`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("sqlite cache get %s: %w", key, err)
	}
	return value, true, nil
}

// Set implements cache.Store
func (s *Store) Set(ctx context.Context, key string, value string) error {
	_, err := s.sqlDB.ExecContext(ctx, `
		INSERT INTO market_values (key, value, fetched_at)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, fetched_at = excluded.fetched_at
	`, key, value, s.now().Unix())
	if err != nil {
		return fmt.Errorf("sqlite cache set %s: %w", key, err)
	}
	return nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}
