package testsupport

import (
	"time"

	"tssk/internal/catalog"
)

// Day is a convenience span for relative air dates.
const Day = 24 * time.Hour

// SnapshotBuilder assembles catalog snapshots with air dates relative to a
// fixed reference instant.
type SnapshotBuilder struct {
	now  time.Time
	snap *catalog.Snapshot
}

// NewSnapshot starts a builder anchored at now.
func NewSnapshot(now time.Time) *SnapshotBuilder {
	return &SnapshotBuilder{now: now.UTC(), snap: catalog.NewSnapshot()}
}

// Build returns the assembled snapshot.
func (b *SnapshotBuilder) Build() *catalog.Snapshot {
	return b.snap
}

// Series appends a monitored series whose TVDB id is id*100.
func (b *SnapshotBuilder) Series(id int64, title string, status catalog.Status) *SeriesBuilder {
	b.snap.Series = append(b.snap.Series, catalog.Series{
		ID:        id,
		TVDBID:    id * 100,
		Title:     title,
		Status:    status,
		Monitored: true,
	})
	return &SeriesBuilder{parent: b, index: len(b.snap.Series) - 1}
}

// SeriesBuilder adds episodes and flags to one series.
type SeriesBuilder struct {
	parent *SnapshotBuilder
	index  int
}

func (s *SeriesBuilder) series() *catalog.Series {
	return &s.parent.snap.Series[s.index]
}

// Episode adds a monitored episode airing at now+offset.
func (s *SeriesBuilder) Episode(season, episode int, offset time.Duration, hasFile bool) *SeriesBuilder {
	return s.add(catalog.Episode{
		SeasonNumber:  season,
		EpisodeNumber: episode,
		AirDateUTC:    s.parent.now.Add(offset),
		HasFile:       hasFile,
		Monitored:     true,
	})
}

// Undated adds a monitored episode without an air date.
func (s *SeriesBuilder) Undated(season, episode int, hasFile bool) *SeriesBuilder {
	return s.add(catalog.Episode{
		SeasonNumber:  season,
		EpisodeNumber: episode,
		HasFile:       hasFile,
		Monitored:     true,
	})
}

// UnmonitoredLast clears the monitored flag on the most recently added episode.
func (s *SeriesBuilder) UnmonitoredLast() *SeriesBuilder {
	id := s.series().ID
	eps := s.parent.snap.Episodes[id]
	if len(eps) > 0 {
		eps[len(eps)-1].Monitored = false
	}
	return s
}

// Unmonitored clears the series monitored flag.
func (s *SeriesBuilder) Unmonitored() *SeriesBuilder {
	s.series().Monitored = false
	return s
}

// Season records an explicit season monitored flag.
func (s *SeriesBuilder) Season(number int, monitored bool) *SeriesBuilder {
	ser := s.series()
	ser.Seasons = append(ser.Seasons, catalog.Season{Number: number, Monitored: monitored})
	return s
}

// TVDB overrides the TVDB id; zero means the series has none.
func (s *SeriesBuilder) TVDB(id int64) *SeriesBuilder {
	s.series().TVDBID = id
	return s
}

func (s *SeriesBuilder) add(ep catalog.Episode) *SeriesBuilder {
	id := s.series().ID
	ep.SeriesID = id
	s.parent.snap.Episodes[id] = append(s.parent.snap.Episodes[id], ep)
	return s
}
