package classify

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"tssk/internal/catalog"
	"tssk/internal/logging"
	"tssk/internal/services"
)

// StatusLookup resolves the production status of a series by TVDB id.
type StatusLookup interface {
	LookupStatus(ctx context.Context, tvdbID int64) (string, error)
}

// StatusLookupFunc adapts a function to StatusLookup.
type StatusLookupFunc func(ctx context.Context, tvdbID int64) (string, error)

// LookupStatus calls f.
func (f StatusLookupFunc) LookupStatus(ctx context.Context, tvdbID int64) (string, error) {
	return f(ctx, tvdbID)
}

// EndedResult splits ended series by the external status lookup.
type EndedResult struct {
	Ended     []catalog.ShowMatch
	Cancelled []catalog.ShowMatch
}

// EndedOrCancelled matches ended series with no regular episode scheduled
// after now. The comparison uses raw UTC instants. A status containing
// "cancel" marks the series cancelled; a missing TVDB id, a nil lookup or a
// failed lookup leaves it ended. Lookup failures are logged, never returned.
func EndedOrCancelled(ctx context.Context, snap *catalog.Snapshot, w Window, lookup StatusLookup, logger *slog.Logger) EndedResult {
	var result EndedResult
	if snap == nil {
		return result
	}
	logger = logging.NewComponentLogger(logger, "classify")
	now := w.Frame.Now
	for _, series := range snap.Series {
		if series.Status != catalog.StatusEnded {
			continue
		}
		if hasFutureRegularEpisode(snap.EpisodesFor(series.ID), now) {
			continue
		}
		m := catalog.NewShowMatch(series)
		if isCancelled(ctx, series, lookup, logger) {
			result.Cancelled = append(result.Cancelled, m)
			continue
		}
		result.Ended = append(result.Ended, m)
	}
	return result
}

func hasFutureRegularEpisode(episodes []catalog.Episode, nowUTC time.Time) bool {
	for _, ep := range episodes {
		if ep.IsSpecial() || !ep.HasAirDate() {
			continue
		}
		if ep.AirDateUTC.UTC().After(nowUTC) {
			return true
		}
	}
	return false
}

func isCancelled(ctx context.Context, series catalog.Series, lookup StatusLookup, logger *slog.Logger) bool {
	if lookup == nil || series.TVDBID == 0 {
		return false
	}
	status, err := lookup.LookupStatus(ctx, series.TVDBID)
	if err == nil {
		return strings.Contains(strings.ToLower(status), "cancel")
	}
	attrs := []logging.Attr{
		logging.Series(series.ID, series.TVDBID, series.Title),
		logging.Error(err),
	}
	if errors.Is(err, services.ErrNotFound) {
		logger.Debug("status lookup found nothing", logging.Args(attrs...)...)
		return false
	}
	attrs = append(attrs,
		logging.String(logging.FieldErrorHint, "check tmdb.api_key and network access"),
		logging.String(logging.FieldImpact, "series reported as ended"),
	)
	logging.WarnWithContext(logging.WithContext(ctx, logger), "status lookup failed", "status_lookup_failed", attrs...)
	return false
}

// Returning matches continuing series not present in claimed.
func Returning(snap *catalog.Snapshot, claimed func(seriesID int64) bool) Outcome {
	var out Outcome
	if snap == nil {
		return out
	}
	for _, series := range snap.Series {
		if series.Status != catalog.StatusContinuing {
			continue
		}
		if claimed != nil && claimed(series.ID) {
			continue
		}
		out.Matched = append(out.Matched, catalog.NewShowMatch(series))
	}
	return out
}
