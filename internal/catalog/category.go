package catalog

// Category is a lifecycle bucket a series can be reported in.
type Category string

const (
	CategorySeasonFinale     Category = "season_finale"
	CategoryFinalEpisode     Category = "final_episode"
	CategoryNewSeason        Category = "new_season"
	CategoryNewSeasonStarted Category = "new_season_started"
	CategoryUpcomingEpisode  Category = "upcoming_episode"
	CategoryUpcomingFinale   Category = "upcoming_finale"
	CategoryEnded            Category = "ended"
	CategoryCancelled        Category = "cancelled"
	CategoryReturning        Category = "returning"
)

var orderedCategories = []Category{
	CategorySeasonFinale,
	CategoryFinalEpisode,
	CategoryNewSeason,
	CategoryNewSeasonStarted,
	CategoryUpcomingEpisode,
	CategoryUpcomingFinale,
	CategoryEnded,
	CategoryCancelled,
	CategoryReturning,
}

// Categories lists every category in claim priority order.
func Categories() []Category {
	out := make([]Category, len(orderedCategories))
	copy(out, orderedCategories)
	return out
}

// Exclusive reports whether a series reported here may not appear in another
// exclusive category.
func (c Category) Exclusive() bool {
	switch c {
	case CategoryEnded, CategoryCancelled, CategoryReturning:
		return false
	default:
		return c.Valid()
	}
}

// Dated reports whether matches in this category carry an air date worth
// grouping by.
func (c Category) Dated() bool {
	switch c {
	case CategoryNewSeason, CategoryUpcomingEpisode, CategoryUpcomingFinale:
		return true
	default:
		return false
	}
}

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	for _, known := range orderedCategories {
		if c == known {
			return true
		}
	}
	return false
}

func (c Category) String() string {
	return string(c)
}
