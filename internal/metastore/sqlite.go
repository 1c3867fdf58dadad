package metastore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3" // SQLite3 driver

	"timelapse-deflicker/internal/logging"
)

// Default timeout for database operations
const defaultTimeout = 5 * time.Second

// SQLiteStore keeps every luminance record in a single database file. It
// trades the sidecar store's per-frame files for one queryable cache,
// which suits sequences kept on read-only source media where sidecars
// cannot be written next to the frames.
type SQLiteStore struct {
	db *sql.DB
	mu sync.RWMutex
}

// NewSQLite opens (or creates) the luminance database at dbPath.
func NewSQLite(ctx context.Context, dbPath string) (*SQLiteStore, error) {
	// WAL mode and a busy timeout keep concurrent worker writes from
	// tripping over "database is locked" errors.
	connStr := fmt.Sprintf("%s?_journal_mode=WAL&_synchronous=NORMAL&_busy_timeout=5000", dbPath)

	db, err := sql.Open("sqlite3", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open luminance database: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			logging.Error("failed to close database after ping failure: %v", closeErr)
		}
		return nil, fmt.Errorf("failed to connect to luminance database: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.initialize(ctx); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			logging.Error("failed to close database after initialization failure: %v", closeErr)
		}
		return nil, fmt.Errorf("failed to initialize luminance schema: %w", err)
	}

	logging.Debug("Luminance database ready at %s", dbPath)
	return s, nil
}

func (s *SQLiteStore) initialize(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS luminance (
		path TEXT PRIMARY KEY,
		value REAL NOT NULL,
		updated_at INTEGER NOT NULL DEFAULT (strftime('%s', 'now'))
	);
	`

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := s.db.ExecContext(ctx, schema)
	return err
}

// Get retrieves the cached original luminance for a frame path. Absent
// rows and non-finite values are cache misses.
func (s *SQLiteStore) Get(ctx context.Context, path string) (float64, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var value float64
	err := s.db.QueryRowContext(ctx, "SELECT value FROM luminance WHERE path = ?", path).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("failed to query luminance for %s: %w", path, err)
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		logging.Debug("Ignoring non-finite cached value for %s", path)
		return 0, false, nil
	}
	return value, true, nil
}

// Set stores the original luminance for a frame path, creating the row or
// updating it in place.
func (s *SQLiteStore) Set(ctx context.Context, path string, value float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO luminance (path, value, updated_at) VALUES (?, ?, strftime('%s', 'now'))
		ON CONFLICT(path) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, path, value)
	if err != nil {
		return fmt.Errorf("failed to store luminance for %s: %w", path, err)
	}
	return nil
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
