package pipeline

import (
	"context"
	"log/slog"
	"time"

	"tssk/internal/catalog"
	"tssk/internal/classify"
	"tssk/internal/config"
	"tssk/internal/logging"
	"tssk/internal/services"
)

// Spans holds the day span of every windowed category.
type Spans struct {
	SeasonFinale     int
	FinalEpisode     int
	NewSeason        int
	NewSeasonStarted int
	UpcomingEpisode  int
	UpcomingFinale   int
}

// Settings parameterizes one classification run.
type Settings struct {
	Now             time.Time
	OffsetHours     float64
	SkipUnmonitored bool
	Spans           Spans
}

// SettingsFromConfig resolves the configured windows against now.
func SettingsFromConfig(cfg *config.Config, now time.Time) Settings {
	newSeason, upcomingEpisode, upcomingFinale := cfg.ForwardDays()
	return Settings{
		Now:             now,
		OffsetHours:     cfg.Windows.UTCOffset,
		SkipUnmonitored: cfg.Windows.SkipUnmonitored,
		Spans: Spans{
			SeasonFinale:     cfg.Windows.RecentDaysSeasonFinale,
			FinalEpisode:     cfg.Windows.RecentDaysFinalEpisode,
			NewSeason:        newSeason,
			NewSeasonStarted: cfg.Windows.RecentDaysNewSeasonStarted,
			UpcomingEpisode:  upcomingEpisode,
			UpcomingFinale:   upcomingFinale,
		},
	}
}

// Days returns the span configured for category, or zero.
func (s Spans) Days(category catalog.Category) int {
	switch category {
	case catalog.CategorySeasonFinale:
		return s.SeasonFinale
	case catalog.CategoryFinalEpisode:
		return s.FinalEpisode
	case catalog.CategoryNewSeason:
		return s.NewSeason
	case catalog.CategoryNewSeasonStarted:
		return s.NewSeasonStarted
	case catalog.CategoryUpcomingEpisode:
		return s.UpcomingEpisode
	case catalog.CategoryUpcomingFinale:
		return s.UpcomingFinale
	default:
		return 0
	}
}

// Result is the final per-category output of a run.
type Result struct {
	Matches     map[catalog.Category][]catalog.ShowMatch
	Skipped     map[catalog.Category][]catalog.ShowMatch
	SeriesTotal int
}

func newResult(total int) *Result {
	return &Result{
		Matches:     make(map[catalog.Category][]catalog.ShowMatch),
		Skipped:     make(map[catalog.Category][]catalog.ShowMatch),
		SeriesTotal: total,
	}
}

// For returns the matches recorded for category.
func (r *Result) For(category catalog.Category) []catalog.ShowMatch {
	return r.Matches[category]
}

// SkippedFor returns the demoted candidates recorded for category.
func (r *Result) SkippedFor(category catalog.Category) []catalog.ShowMatch {
	return r.Skipped[category]
}

// Orchestrator runs the classifiers in priority order.
type Orchestrator struct {
	lookup classify.StatusLookup
	logger *slog.Logger
}

// NewOrchestrator constructs an orchestrator. lookup may be nil, in which
// case every ended series is reported as ended.
func NewOrchestrator(lookup classify.StatusLookup, logger *slog.Logger) *Orchestrator {
	return &Orchestrator{lookup: lookup, logger: logging.NewComponentLogger(logger, "classify")}
}

type stage struct {
	category catalog.Category
	include  bool
	run      func(snap *catalog.Snapshot, w classify.Window) classify.Outcome
}

var stages = []stage{
	{category: catalog.CategorySeasonFinale, run: classify.RecentSeasonFinale},
	{category: catalog.CategoryFinalEpisode, run: classify.RecentFinalEpisode},
	{category: catalog.CategoryNewSeason, include: true, run: func(snap *catalog.Snapshot, w classify.Window) classify.Outcome {
		return classify.UpcomingNewSeason(snap, w).Merge(classify.UpcomingNewShow(snap, w))
	}},
	{category: catalog.CategoryNewSeasonStarted, run: classify.NewSeasonStarted},
	{category: catalog.CategoryUpcomingEpisode, include: true, run: classify.UpcomingRegularEpisode},
	{category: catalog.CategoryUpcomingFinale, include: true, run: classify.UpcomingFinale},
}

// Classify runs every category against snap. The same snapshot and
// settings always produce the same result.
func (o *Orchestrator) Classify(ctx context.Context, snap *catalog.Snapshot, settings Settings) *Result {
	total := 0
	if snap != nil {
		total = len(snap.Series)
	}
	result := newResult(total)
	claims := NewClaims()

	base := classify.NewWindow(settings.Now, settings.OffsetHours, 0, settings.SkipUnmonitored)
	for _, st := range stages {
		outcome := st.run(snap, base.WithDays(settings.Spans.Days(st.category)))
		o.record(ctx, result, claims, st.category, outcome.Matched, st.include)
		if len(outcome.Skipped) > 0 {
			result.Skipped[st.category] = outcome.Skipped
		}
	}

	ended := classify.EndedOrCancelled(ctx, snap, base, o.lookup, o.logger)
	o.record(ctx, result, claims, catalog.CategoryEnded, ended.Ended, true)
	o.record(ctx, result, claims, catalog.CategoryCancelled, ended.Cancelled, true)

	returning := classify.Returning(snap, claims.IsIncluded)
	o.record(ctx, result, claims, catalog.CategoryReturning, returning.Matched, false)

	return result
}

func (o *Orchestrator) record(ctx context.Context, result *Result, claims *Claims, category catalog.Category, matches []catalog.ShowMatch, include bool) {
	kept := claims.Filter(matches)
	claims.Exclude(kept)
	if include {
		claims.Include(kept)
	}
	result.Matches[category] = kept

	if len(matches) > 0 {
		logger := logging.WithContext(services.WithCategory(ctx, category.String()), o.logger)
		logger.Debug("category classified",
			logging.Int("matched", len(kept)),
			logging.Int("already_claimed", len(matches)-len(kept)),
		)
	}
}
