package catalog

import (
	"strconv"
	"time"
)

// Status is the backend lifecycle state of a series.
type Status string

const (
	StatusContinuing Status = "continuing"
	StatusUpcoming   Status = "upcoming"
	StatusEnded      Status = "ended"
)

// Season is the per-season monitoring state reported by the backend.
type Season struct {
	Number    int
	Monitored bool
}

// Series describes one show tracked by the backend.
type Series struct {
	ID        int64
	TVDBID    int64
	Title     string
	Status    Status
	Monitored bool
	Seasons   []Season
}

// SeasonMonitored reports the monitored flag of the given season. Seasons the
// backend did not report are treated as monitored.
func (s Series) SeasonMonitored(number int) bool {
	for _, season := range s.Seasons {
		if season.Number == number {
			return season.Monitored
		}
	}
	return true
}

// Episode is a single episode of a series. A zero AirDateUTC means the backend
// has no air date for it.
type Episode struct {
	SeriesID      int64
	SeasonNumber  int
	EpisodeNumber int
	AirDateUTC    time.Time
	HasFile       bool
	Monitored     bool
}

// IsSpecial reports whether the episode belongs to season 0.
func (e Episode) IsSpecial() bool {
	return e.SeasonNumber == 0
}

// HasAirDate reports whether the backend supplied an air date.
func (e Episode) HasAirDate() bool {
	return !e.AirDateUTC.IsZero()
}

// Label renders the episode as S01E02.
func (e Episode) Label() string {
	return episodeLabel(e.SeasonNumber, e.EpisodeNumber)
}

func episodeLabel(season, episode int) string {
	return "S" + pad2(season) + "E" + pad2(episode)
}

func pad2(v int) string {
	if v >= 0 && v < 10 {
		return "0" + strconv.Itoa(v)
	}
	return strconv.Itoa(v)
}
