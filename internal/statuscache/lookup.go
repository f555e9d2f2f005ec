package statuscache

import (
	"context"
	"log/slog"
	"sync/atomic"

	"tssk/internal/logging"
)

// Lookup resolves a status string for a TVDB id.
type Lookup interface {
	LookupStatus(ctx context.Context, tvdbID int64) (string, error)
}

// CachedLookup answers from the cache and falls through to an upstream
// Lookup on a miss. Only successful answers are stored.
type CachedLookup struct {
	cache    *Cache
	upstream Lookup
	logger   *slog.Logger

	hits   atomic.Int64
	misses atomic.Int64
}

// Wrap returns a caching Lookup in front of upstream.
func (c *Cache) Wrap(upstream Lookup, logger *slog.Logger) *CachedLookup {
	return &CachedLookup{
		cache:    c,
		upstream: upstream,
		logger:   logging.NewComponentLogger(logger, "statuscache"),
	}
}

// LookupStatus implements Lookup.
func (l *CachedLookup) LookupStatus(ctx context.Context, tvdbID int64) (string, error) {
	if l.cache != nil {
		status, ok, err := l.cache.Get(ctx, tvdbID)
		if err != nil {
			logging.WarnWithContext(l.logger, "status cache read failed", "status_cache_read_failed",
				logging.TVDB(tvdbID),
				logging.Error(err),
				logging.String(logging.FieldImpact, "status fetched from TMDB instead"),
			)
		} else if ok {
			l.hits.Add(1)
			return status, nil
		}
	}
	l.misses.Add(1)

	status, err := l.upstream.LookupStatus(ctx, tvdbID)
	if err != nil {
		return "", err
	}
	if l.cache != nil {
		if err := l.cache.Put(ctx, tvdbID, status); err != nil {
			logging.WarnWithContext(l.logger, "status cache write failed", "status_cache_write_failed",
				logging.TVDB(tvdbID),
				logging.Error(err),
				logging.String(logging.FieldErrorHint, "check permissions on "+l.cache.Path()),
			)
		}
	}
	return status, nil
}

// Stats returns cache hit and miss counts since Wrap.
func (l *CachedLookup) Stats() (hits, misses int64) {
	return l.hits.Load(), l.misses.Load()
}
