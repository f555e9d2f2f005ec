package classify

import "tssk/internal/catalog"

// UpcomingNewSeason matches series whose next episode premieres a later
// season within the forward window.
func UpcomingNewSeason(snap *catalog.Snapshot, w Window) Outcome {
	return Collect(upcomingNewSeasonRule.run(snap, w))
}

// UpcomingNewShow reports first-season premieres. They are never matched;
// every candidate lands in Skipped with catalog.NewShowReason.
func UpcomingNewShow(snap *catalog.Snapshot, w Window) Outcome {
	return Collect(upcomingNewShowRule.run(snap, w))
}

// UpcomingRegularEpisode matches series whose next episode is neither a
// premiere nor the last episode of its season.
func UpcomingRegularEpisode(snap *catalog.Snapshot, w Window) Outcome {
	return Collect(upcomingRegularRule.run(snap, w))
}

// UpcomingFinale matches series whose next episode closes a multi-episode season.
func UpcomingFinale(snap *catalog.Snapshot, w Window) Outcome {
	return Collect(upcomingFinaleRule.run(snap, w))
}

// RecentSeasonFinale matches continuing or upcoming series with a downloaded
// season finale that aired recently or was downloaded ahead of airing.
func RecentSeasonFinale(snap *catalog.Snapshot, w Window) Outcome {
	return Collect(recentSeasonFinaleRule.run(snap, w))
}

// RecentFinalEpisode matches ended series whose last downloaded episode aired
// recently, as long as nothing undownloaded is still scheduled.
func RecentFinalEpisode(snap *catalog.Snapshot, w Window) Outcome {
	return Collect(recentFinalEpisodeRule.run(snap, w))
}

// NewSeasonStarted matches series whose latest downloaded season began airing
// recently and that already had an earlier season downloaded.
func NewSeasonStarted(snap *catalog.Snapshot, w Window) Outcome {
	return Collect(newSeasonStartedRule.run(snap, w))
}

// Verdicts exposes the tagged per-series results of the episode-driven
// classifier for category. The new-show rule is folded into new_season.
func Verdicts(category catalog.Category, snap *catalog.Snapshot, w Window) []Verdict {
	switch category {
	case catalog.CategoryNewSeason:
		return append(upcomingNewSeasonRule.run(snap, w), upcomingNewShowRule.run(snap, w)...)
	case catalog.CategoryUpcomingEpisode:
		return upcomingRegularRule.run(snap, w)
	case catalog.CategoryUpcomingFinale:
		return upcomingFinaleRule.run(snap, w)
	case catalog.CategorySeasonFinale:
		return recentSeasonFinaleRule.run(snap, w)
	case catalog.CategoryFinalEpisode:
		return recentFinalEpisodeRule.run(snap, w)
	case catalog.CategoryNewSeasonStarted:
		return newSeasonStartedRule.run(snap, w)
	default:
		return nil
	}
}
