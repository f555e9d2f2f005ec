package catalog

import (
	"fmt"
	"time"
)

// AirDateLayout is the day/month/year layout used for ShowMatch.AirDate.
const AirDateLayout = "02/01/2006"

// NewShowReason is attached to first-season premieres reported as skipped.
const NewShowReason = "New show (Season 1)"

// ShowMatch is one classified series. SeasonNumber and EpisodeNumber are zero
// when the category does not select an episode; AirDate is empty when the
// category is not dated. AirDate is always a local calendar date.
type ShowMatch struct {
	SeriesID      int64
	TVDBID        int64
	Title         string
	SeasonNumber  int
	EpisodeNumber int
	AirDate       string
	Reason        string
}

// NewShowMatch seeds a match with the series identity fields.
func NewShowMatch(series Series) ShowMatch {
	return ShowMatch{
		SeriesID: series.ID,
		TVDBID:   series.TVDBID,
		Title:    series.Title,
	}
}

// WithEpisode returns a copy carrying the episode position and local air date.
func (m ShowMatch) WithEpisode(ep Episode, localAir time.Time) ShowMatch {
	m.SeasonNumber = ep.SeasonNumber
	m.EpisodeNumber = ep.EpisodeNumber
	m.AirDate = FormatAirDate(localAir)
	return m
}

// HasEpisode reports whether the match points at a specific episode.
func (m ShowMatch) HasEpisode() bool {
	return m.SeasonNumber > 0 && m.EpisodeNumber > 0
}

// Position renders S01E02, S01, or an empty string.
func (m ShowMatch) Position() string {
	switch {
	case m.HasEpisode():
		return episodeLabel(m.SeasonNumber, m.EpisodeNumber)
	case m.SeasonNumber > 0:
		return "S" + pad2(m.SeasonNumber)
	default:
		return ""
	}
}

func (m ShowMatch) String() string {
	if pos := m.Position(); pos != "" {
		return fmt.Sprintf("%s (%s)", m.Title, pos)
	}
	return m.Title
}

// FormatAirDate renders the calendar date of an offset-applied instant.
func FormatAirDate(local time.Time) string {
	return local.Format(AirDateLayout)
}

// ParseAirDate parses a ShowMatch.AirDate value.
func ParseAirDate(value string) (time.Time, error) {
	return time.Parse(AirDateLayout, value)
}
