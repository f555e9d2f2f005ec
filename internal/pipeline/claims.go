package pipeline

import "tssk/internal/catalog"

// Claims tracks which series have been reported during one run.
//
// Excluded holds every series placed in any category so far. Included holds
// series reported as upcoming, ended or cancelled and is what keeps a
// continuing series out of the returning category.
type Claims struct {
	excluded map[int64]struct{}
	included map[int64]struct{}
}

// NewClaims returns empty accumulators.
func NewClaims() *Claims {
	return &Claims{
		excluded: make(map[int64]struct{}),
		included: make(map[int64]struct{}),
	}
}

// Filter drops matches for series that are already excluded.
func (c *Claims) Filter(matches []catalog.ShowMatch) []catalog.ShowMatch {
	out := make([]catalog.ShowMatch, 0, len(matches))
	for _, m := range matches {
		if _, taken := c.excluded[m.SeriesID]; taken {
			continue
		}
		out = append(out, m)
	}
	return out
}

// Exclude records matches as claimed.
func (c *Claims) Exclude(matches []catalog.ShowMatch) {
	for _, m := range matches {
		c.excluded[m.SeriesID] = struct{}{}
	}
}

// Include records matches in the included set.
func (c *Claims) Include(matches []catalog.ShowMatch) {
	for _, m := range matches {
		c.included[m.SeriesID] = struct{}{}
	}
}

// IsExcluded reports whether seriesID has been claimed.
func (c *Claims) IsExcluded(seriesID int64) bool {
	_, ok := c.excluded[seriesID]
	return ok
}

// IsIncluded reports whether seriesID is in the included set.
func (c *Claims) IsIncluded(seriesID int64) bool {
	_, ok := c.included[seriesID]
	return ok
}

// Len returns the number of excluded series.
func (c *Claims) Len() int {
	return len(c.excluded)
}
