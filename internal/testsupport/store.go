package testsupport

import (
	"testing"
	"time"

	"tssk/internal/config"
	"tssk/internal/statuscache"
)

// MustOpenStatusCache opens the status cache configured in cfg and registers cleanup.
func MustOpenStatusCache(t testing.TB, cfg *config.Config) *statuscache.Cache {
	t.Helper()

	ttl := time.Duration(cfg.StatusCache.TTLHours) * time.Hour
	cache, err := statuscache.Open(cfg.StatusCache.Path, ttl)
	if err != nil {
		t.Fatalf("statuscache.Open: %v", err)
	}
	t.Cleanup(func() {
		cache.Close()
	})
	return cache
}
