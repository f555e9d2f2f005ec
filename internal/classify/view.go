package classify

import (
	"slices"
	"time"

	"tssk/internal/catalog"
)

// seriesView groups a series' regular (non-special) episodes by season.
type seriesView struct {
	series     catalog.Series
	regular    []catalog.Episode
	maxEpisode map[int]int
	count      map[int]int
	downloaded map[int][]catalog.Episode
}

func newSeriesView(series catalog.Series, episodes []catalog.Episode) *seriesView {
	v := &seriesView{
		series:     series,
		maxEpisode: make(map[int]int),
		count:      make(map[int]int),
		downloaded: make(map[int][]catalog.Episode),
	}
	for _, ep := range episodes {
		if ep.IsSpecial() {
			continue
		}
		v.regular = append(v.regular, ep)
		v.count[ep.SeasonNumber]++
		if ep.EpisodeNumber > v.maxEpisode[ep.SeasonNumber] {
			v.maxEpisode[ep.SeasonNumber] = ep.EpisodeNumber
		}
		if ep.HasFile {
			v.downloaded[ep.SeasonNumber] = append(v.downloaded[ep.SeasonNumber], ep)
		}
	}
	return v
}

// isFinale reports whether ep is the last episode of a multi-episode season.
func (v *seriesView) isFinale(ep catalog.Episode) bool {
	return v.count[ep.SeasonNumber] > 1 && ep.EpisodeNumber == v.maxEpisode[ep.SeasonNumber]
}

// isSeasonMax ignores season size; a single-episode season's only episode counts.
func (v *seriesView) isSeasonMax(ep catalog.Episode) bool {
	return ep.EpisodeNumber == v.maxEpisode[ep.SeasonNumber]
}

type datedEpisode struct {
	episode catalog.Episode
	local   time.Time
}

// futureUndownloaded returns dated, undownloaded episodes strictly after
// local now, sorted by air date. Ties keep backend order.
func (v *seriesView) futureUndownloaded(w Window) []datedEpisode {
	now := w.nowLocal()
	var out []datedEpisode
	for _, ep := range v.regular {
		if !ep.HasAirDate() || ep.HasFile {
			continue
		}
		local := w.Frame.Local(ep.AirDateUTC)
		if local.After(now) {
			out = append(out, datedEpisode{episode: ep, local: local})
		}
	}
	slices.SortStableFunc(out, func(a, b datedEpisode) int {
		return a.local.Compare(b.local)
	})
	return out
}

func (v *seriesView) downloadedSeasons() []int {
	seasons := make([]int, 0, len(v.downloaded))
	for season := range v.downloaded {
		seasons = append(seasons, season)
	}
	slices.Sort(seasons)
	return seasons
}

// episodeMonitored applies the episode and season monitored flags.
func (v *seriesView) episodeMonitored(ep catalog.Episode) bool {
	return ep.Monitored && v.series.SeasonMonitored(ep.SeasonNumber)
}
