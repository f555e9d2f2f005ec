package statuscache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// Cache persists TMDB status strings keyed by TVDB id.
type Cache struct {
	db   *sql.DB
	path string
	ttl  time.Duration
	now  func() time.Time
}

// Option configures a Cache.
type Option func(*Cache)

// WithClock overrides the time source used for freshness checks.
func WithClock(now func() time.Time) Option {
	return func(c *Cache) {
		if now != nil {
			c.now = now
		}
	}
}

// Open creates or opens the cache database at path. A non-positive ttl means
// entries never expire.
func Open(path string, ttl time.Duration, opts ...Option) (*Cache, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("status cache path required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create cache directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	cache := &Cache{db: db, path: path, ttl: ttl, now: time.Now}
	for _, opt := range opts {
		opt(cache)
	}
	if err := cache.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return cache, nil
}

// Path returns the database location.
func (c *Cache) Path() string {
	if c == nil {
		return ""
	}
	return c.path
}

// Close closes the underlying database connection.
func (c *Cache) Close() error {
	if c == nil || c.db == nil {
		return nil
	}
	return c.db.Close()
}

// Get returns a fresh cached status. Expired rows are reported as misses.
func (c *Cache) Get(ctx context.Context, tvdbID int64) (string, bool, error) {
	var status, fetched string
	err := c.db.QueryRowContext(ctx,
		"SELECT status, fetched_at FROM series_status WHERE tvdb_id = ?", tvdbID,
	).Scan(&status, &fetched)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get status: %w", err)
	}
	fetchedAt, err := time.Parse(time.RFC3339Nano, fetched)
	if err != nil {
		return "", false, nil
	}
	if c.expired(fetchedAt) {
		return "", false, nil
	}
	return status, true, nil
}

// Put stores or replaces the status for a TVDB id.
func (c *Cache) Put(ctx context.Context, tvdbID int64, status string) error {
	_, err := c.db.ExecContext(ctx,
		`INSERT INTO series_status (tvdb_id, status, fetched_at) VALUES (?, ?, ?)
         ON CONFLICT(tvdb_id) DO UPDATE SET status = excluded.status, fetched_at = excluded.fetched_at`,
		tvdbID, status, c.now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("put status: %w", err)
	}
	return nil
}

// Prune removes expired rows and returns how many were deleted.
func (c *Cache) Prune(ctx context.Context) (int64, error) {
	if c.ttl <= 0 {
		return 0, nil
	}
	cutoff := c.now().Add(-c.ttl).UTC().Format(time.RFC3339Nano)
	res, err := c.db.ExecContext(ctx, "DELETE FROM series_status WHERE fetched_at < ?", cutoff)
	if err != nil {
		return 0, fmt.Errorf("prune statuses: %w", err)
	}
	removed, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return removed, nil
}

// Clear removes every row.
func (c *Cache) Clear(ctx context.Context) error {
	if _, err := c.db.ExecContext(ctx, "DELETE FROM series_status"); err != nil {
		return fmt.Errorf("clear statuses: %w", err)
	}
	return nil
}

// Count returns the number of stored rows, fresh or not.
func (c *Cache) Count(ctx context.Context) (int, error) {
	var count int
	if err := c.db.QueryRowContext(ctx, "SELECT COUNT(1) FROM series_status").Scan(&count); err != nil {
		return 0, fmt.Errorf("count statuses: %w", err)
	}
	return count, nil
}

func (c *Cache) expired(fetchedAt time.Time) bool {
	if c.ttl <= 0 {
		return false
	}
	return c.now().Sub(fetchedAt) > c.ttl
}
