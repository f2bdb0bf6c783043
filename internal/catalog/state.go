package catalog

// State is a point-in-time copy of a controller, ready for rendering
type State struct {
	Games    []Game
	Filtered []Game
	Featured []Game
	Query    string
	Category Category
	View     View
	Loading  bool
}

// ShowFeatured reports whether the featured section belongs on the page:
// only on the unfiltered catalog, and only when something is featured.
func (s State) ShowFeatured() bool {
	return s.Category == CategoryAll && s.Query == "" && len(s.Featured) > 0
}

// Heading is the title above the catalog grid
func (s State) Heading() string {
	if s.Query != "" {
		return `Results for "` + s.Query + `"`
	}
	return s.Category.String() + " Games"
}
