package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/sourcegraph/conc/pool"

	"tssk/internal/catalog"
	"tssk/internal/logging"
)

// Backend is the series/episode source. Errors are expected to carry
// services.ErrConnectivity when the backend cannot be reached.
type Backend interface {
	ListSeries(ctx context.Context) ([]catalog.Series, error)
	ListEpisodes(ctx context.Context, seriesID int64) ([]catalog.Episode, error)
}

// Fetch builds a complete snapshot. Episode requests run with at most
// concurrency in flight; the first error cancels the rest and is returned
// unchanged so no partial snapshot escapes.
func Fetch(ctx context.Context, backend Backend, concurrency int, logger *slog.Logger) (*catalog.Snapshot, error) {
	logger = logging.NewComponentLogger(logger, "fetch")
	if concurrency <= 0 {
		concurrency = 1
	}
	started := time.Now()

	series, err := backend.ListSeries(ctx)
	if err != nil {
		return nil, err
	}

	episodes := make([][]catalog.Episode, len(series))
	p := pool.New().
		WithMaxGoroutines(concurrency).
		WithContext(ctx).
		WithCancelOnError().
		WithFirstError()
	for i, s := range series {
		p.Go(func(ctx context.Context) error {
			eps, err := backend.ListEpisodes(ctx, s.ID)
			if err != nil {
				return err
			}
			episodes[i] = eps
			return nil
		})
	}
	if err := p.Wait(); err != nil {
		return nil, err
	}

	snap := catalog.NewSnapshot()
	snap.Series = series
	for i, s := range series {
		snap.Episodes[s.ID] = episodes[i]
	}

	logger.Info("snapshot fetched",
		logging.Int("series", len(series)),
		logging.Int("episodes", snap.EpisodeCount()),
		logging.Int("concurrency", concurrency),
		logging.Duration("elapsed", time.Since(started).Round(time.Millisecond)),
	)
	return snap, nil
}
