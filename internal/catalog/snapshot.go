package catalog

// Snapshot is the complete series and episode data for one run. Series keeps
// backend order; Episodes is keyed by Series.ID.
type Snapshot struct {
	Series   []Series
	Episodes map[int64][]Episode
}

// NewSnapshot builds an empty snapshot ready for population.
func NewSnapshot() *Snapshot {
	return &Snapshot{Episodes: make(map[int64][]Episode)}
}

// EpisodesFor returns the episodes recorded for a series, or nil.
func (s *Snapshot) EpisodesFor(seriesID int64) []Episode {
	if s == nil || s.Episodes == nil {
		return nil
	}
	return s.Episodes[seriesID]
}

// EpisodeCount returns the number of episodes across all series.
func (s *Snapshot) EpisodeCount() int {
	if s == nil {
		return 0
	}
	total := 0
	for _, eps := range s.Episodes {
		total += len(eps)
	}
	return total
}
