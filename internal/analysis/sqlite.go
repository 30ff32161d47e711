package analysis

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // Pure-Go SQLite driver.
)

const cacheSchema = `
CREATE TABLE IF NOT EXISTS analysis_cache (
    cache_key  TEXT PRIMARY KEY,
    created_at INTEGER NOT NULL,
    value      BLOB NOT NULL
);
`

// SQLiteStore persists cache entries in a local SQLite database in WAL mode.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLiteStore opens (or creates) the database at dbPath and ensures the
// schema exists.
func OpenSQLiteStore(ctx context.Context, dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("analysis: open cache database: %w", err)
	}

	// One connection: SQLite has a single writer and each pooled connection
	// would need its own PRAGMA setup.
	db.SetMaxOpenConns(1)

	for _, pragma := range []string{"PRAGMA journal_mode=WAL", "PRAGMA busy_timeout=5000"} {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("analysis: %s: %w", pragma, err)
		}
	}
	if _, err := db.ExecContext(ctx, cacheSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("analysis: create cache schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// Get loads the entry for key.
func (s *SQLiteStore) Get(ctx context.Context, key string) (Entry, bool, error) {
	var (
		created int64
		value   []byte
	)
	err := s.db.QueryRowContext(ctx,
		"SELECT created_at, value FROM analysis_cache WHERE cache_key = ?", key,
	).Scan(&created, &value)
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, false, nil
	}
	if err != nil {
		return Entry{}, false, fmt.Errorf("analysis: read cache entry: %w", err)
	}
	return Entry{Key: key, CreatedAt: time.Unix(0, created), Value: value}, true, nil
}

// Put upserts e.
func (s *SQLiteStore) Put(ctx context.Context, e Entry) error {
	const q = `
		INSERT INTO analysis_cache (cache_key, created_at, value)
		VALUES (?, ?, ?)
		ON CONFLICT(cache_key) DO UPDATE SET created_at = excluded.created_at, value = excluded.value`
	if _, err := s.db.ExecContext(ctx, q, e.Key, e.CreatedAt.UnixNano(), e.Value); err != nil {
		return fmt.Errorf("analysis: write cache entry: %w", err)
	}
	return nil
}

// Delete removes the entry for key, if any.
func (s *SQLiteStore) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM analysis_cache WHERE cache_key = ?", key); err != nil {
		return fmt.Errorf("analysis: delete cache entry: %w", err)
	}
	return nil
}

// Prune removes entries created before cutoff and returns how many went.
func (s *SQLiteStore) Prune(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM analysis_cache WHERE created_at < ?", cutoff.UnixNano())
	if err != nil {
		return 0, fmt.Errorf("analysis: prune cache: %w", err)
	}
	return res.RowsAffected()
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
