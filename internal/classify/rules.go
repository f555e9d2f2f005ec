package classify

import (
	"slices"
	"time"

	"tssk/internal/catalog"
	"tssk/internal/timewindow"
)

// selection is the episode a rule settled on and the local date to report.
type selection struct {
	episode catalog.Episode
	report  time.Time
}

// rule is one row of the episode-driven classifier table.
type rule struct {
	// statuses restricts the rule to these series statuses; nil accepts all.
	statuses []catalog.Status
	// gateSeries drops unmonitored series up front when skipping is enabled.
	gateSeries bool
	// seasonOnly reports the season without an episode number.
	seasonOnly bool
	// demote sends every candidate to the skipped list with this reason.
	demote SkipReason
	reason string
	pick   func(v *seriesView, w Window) (selection, bool)
}

var (
	upcomingNewSeasonRule = rule{
		seasonOnly: true,
		pick: forward(func(_ *seriesView, ep catalog.Episode) bool {
			return ep.EpisodeNumber == 1 && ep.SeasonNumber > 1
		}),
	}
	upcomingNewShowRule = rule{
		seasonOnly: true,
		demote:     SkipNewShow,
		reason:     catalog.NewShowReason,
		pick: forward(func(_ *seriesView, ep catalog.Episode) bool {
			return ep.EpisodeNumber == 1 && ep.SeasonNumber == 1
		}),
	}
	upcomingRegularRule = rule{
		pick: forward(func(v *seriesView, ep catalog.Episode) bool {
			return ep.EpisodeNumber != 1 && !v.isSeasonMax(ep)
		}),
	}
	upcomingFinaleRule = rule{
		pick: forward(func(v *seriesView, ep catalog.Episode) bool {
			return ep.EpisodeNumber > 1 && v.isFinale(ep)
		}),
	}
	recentSeasonFinaleRule = rule{
		statuses:   []catalog.Status{catalog.StatusContinuing, catalog.StatusUpcoming},
		gateSeries: true,
		pick:       pickRecentSeasonFinale,
	}
	recentFinalEpisodeRule = rule{
		statuses:   []catalog.Status{catalog.StatusEnded},
		gateSeries: true,
		pick:       pickRecentFinalEpisode,
	}
	newSeasonStartedRule = rule{
		gateSeries: true,
		pick:       pickNewSeasonStarted,
	}
)

// forward selects the earliest undownloaded future episode and accepts it
// when it lies inside the window and satisfies accept. Later episodes are
// never considered, so only the nearest episode can be reported.
func forward(accept func(v *seriesView, ep catalog.Episode) bool) func(*seriesView, Window) (selection, bool) {
	return func(v *seriesView, w Window) (selection, bool) {
		future := v.futureUndownloaded(w)
		if len(future) == 0 {
			return selection{}, false
		}
		next := future[0]
		if !timewindow.InForward(next.local, w.nowLocal(), w.forwardCutoff()) {
			return selection{}, false
		}
		if !accept(v, next.episode) {
			return selection{}, false
		}
		return selection{episode: next.episode, report: next.local}, true
	}
}

// recentOrAhead accepts a downloaded episode that aired inside the backward
// window, or one already downloaded ahead of its air date. The latter is
// reported with today's date.
func recentOrAhead(ep catalog.Episode, w Window) (time.Time, bool) {
	if !ep.HasAirDate() {
		return time.Time{}, false
	}
	local := w.Frame.Local(ep.AirDateUTC)
	now := w.nowLocal()
	if local.After(now) {
		return now, ep.HasFile
	}
	return local, timewindow.InBackward(local, now, w.backwardCutoff())
}

func pickRecentSeasonFinale(v *seriesView, w Window) (selection, bool) {
	seasons := v.downloadedSeasons()
	for i := len(seasons) - 1; i >= 0; i-- {
		season := seasons[i]
		if v.count[season] < 2 {
			continue
		}
		for _, ep := range v.downloaded[season] {
			if ep.EpisodeNumber != v.maxEpisode[season] {
				continue
			}
			if report, ok := recentOrAhead(ep, w); ok {
				return selection{episode: ep, report: report}, true
			}
			break
		}
	}
	return selection{}, false
}

func pickRecentFinalEpisode(v *seriesView, w Window) (selection, bool) {
	seasons := v.downloadedSeasons()
	if len(seasons) == 0 {
		return selection{}, false
	}
	if len(v.futureUndownloaded(w)) > 0 {
		return selection{}, false
	}
	last := seasons[len(seasons)-1]
	final := slices.MaxFunc(v.downloaded[last], func(a, b catalog.Episode) int {
		return a.EpisodeNumber - b.EpisodeNumber
	})
	report, ok := recentOrAhead(final, w)
	if !ok {
		return selection{}, false
	}
	return selection{episode: final, report: report}, true
}

func pickNewSeasonStarted(v *seriesView, w Window) (selection, bool) {
	if len(v.count) < 2 {
		return selection{}, false
	}
	seasons := v.downloadedSeasons()
	if len(seasons) < 2 {
		return selection{}, false
	}
	latest := seasons[len(seasons)-1]
	if latest <= 1 {
		return selection{}, false
	}
	first := slices.MinFunc(v.downloaded[latest], func(a, b catalog.Episode) int {
		return a.EpisodeNumber - b.EpisodeNumber
	})
	if !first.HasAirDate() {
		return selection{}, false
	}
	local := w.Frame.Local(first.AirDateUTC)
	if !timewindow.InBackward(local, w.nowLocal(), w.backwardCutoff()) {
		return selection{}, false
	}
	return selection{episode: first, report: local}, true
}

func (r rule) accepts(status catalog.Status) bool {
	return r.statuses == nil || slices.Contains(r.statuses, status)
}

// evaluate produces the verdict for one series. The monitored demotion runs
// last so only real candidates are demoted.
func (r rule) evaluate(series catalog.Series, episodes []catalog.Episode, w Window) Verdict {
	if !r.accepts(series.Status) {
		return Verdict{}
	}
	if r.gateSeries && w.SkipUnmonitored && !series.Monitored {
		return Verdict{}
	}
	v := newSeriesView(series, episodes)
	sel, ok := r.pick(v, w)
	if !ok {
		return Verdict{}
	}

	m := catalog.NewShowMatch(series).WithEpisode(sel.episode, sel.report)
	if r.seasonOnly {
		m.EpisodeNumber = 0
	}
	if r.demote != "" {
		m.Reason = r.reason
		return skipped(m, r.demote)
	}
	if w.SkipUnmonitored && !v.episodeMonitored(sel.episode) {
		return skipped(m, SkipUnmonitored)
	}
	return matched(m)
}

func (r rule) run(snap *catalog.Snapshot, w Window) []Verdict {
	if snap == nil {
		return nil
	}
	var verdicts []Verdict
	for _, series := range snap.Series {
		if v := r.evaluate(series, snap.EpisodesFor(series.ID), w); v.Kind != KindNone {
			verdicts = append(verdicts, v)
		}
	}
	return verdicts
}
