package sonarr

import (
	"strings"
	"time"

	"tssk/internal/catalog"
)

type seasonResource struct {
	SeasonNumber int  `json:"seasonNumber"`
	Monitored    bool `json:"monitored"`
}

type seriesResource struct {
	ID        int64            `json:"id"`
	Title     string           `json:"title"`
	Status    string           `json:"status"`
	TvdbID    int64            `json:"tvdbId"`
	Monitored *bool            `json:"monitored"`
	Seasons   []seasonResource `json:"seasons"`
}

type episodeResource struct {
	ID            int64  `json:"id"`
	SeriesID      int64  `json:"seriesId"`
	SeasonNumber  int    `json:"seasonNumber"`
	EpisodeNumber int    `json:"episodeNumber"`
	AirDateUTC    string `json:"airDateUtc"`
	HasFile       bool   `json:"hasFile"`
	Monitored     *bool  `json:"monitored"`
}

func boolOr(value *bool, fallback bool) bool {
	if value == nil {
		return fallback
	}
	return *value
}

func (r seriesResource) toCatalog() catalog.Series {
	seasons := make([]catalog.Season, 0, len(r.Seasons))
	for _, s := range r.Seasons {
		seasons = append(seasons, catalog.Season{Number: s.SeasonNumber, Monitored: s.Monitored})
	}
	return catalog.Series{
		ID:        r.ID,
		TVDBID:    r.TvdbID,
		Title:     r.Title,
		Status:    catalog.Status(strings.ToLower(strings.TrimSpace(r.Status))),
		Monitored: boolOr(r.Monitored, true),
		Seasons:   seasons,
	}
}

// toCatalog converts the wire episode. An unparsable air date is treated as
// missing so the episode simply stays out of dated windows.
func (r episodeResource) toCatalog(seriesID int64) catalog.Episode {
	ep := catalog.Episode{
		SeriesID:      seriesID,
		SeasonNumber:  r.SeasonNumber,
		EpisodeNumber: r.EpisodeNumber,
		HasFile:       r.HasFile,
		Monitored:     boolOr(r.Monitored, true),
	}
	if raw := strings.TrimSpace(r.AirDateUTC); raw != "" {
		if parsed, err := time.Parse(time.RFC3339, raw); err == nil {
			ep.AirDateUTC = parsed.UTC()
		}
	}
	return ep
}
