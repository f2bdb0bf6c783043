package catalog

import (
	"iter"
	"slices"
	"strings"

	"golang.org/x/text/cases"
)

// FilterSeq yields, in their original order, the games whose title or
// description contains query (caseless) and whose category passes category.
// An empty query matches every game.
func FilterSeq(games []Game, query string, category Category) iter.Seq[Game] {
	return func(yield func(Game) bool) {
		// A Caser may be stateful, so each sequence gets its own
		fold := cases.Fold()
		needle := fold.String(query)
		for _, g := range games {
			if !category.Matches(g.Category) {
				continue
			}
			if needle != "" &&
				!strings.Contains(fold.String(g.Title), needle) &&
				!strings.Contains(fold.String(g.Description), needle) {
				continue
			}
			if !yield(g) {
				return
			}
		}
	}
}

// Filter collects FilterSeq into a slice. The result is never nil.
func Filter(games []Game, query string, category Category) []Game {
	return slices.AppendSeq([]Game{}, FilterSeq(games, query, category))
}

// FeaturedSeq yields the featured games in their original order
func FeaturedSeq(games []Game) iter.Seq[Game] {
	return func(yield func(Game) bool) {
		for _, g := range games {
			if g.Featured && !yield(g) {
				return
			}
		}
	}
}

// Featured collects FeaturedSeq into a slice. The result is never nil.
func Featured(games []Game) []Game {
	return slices.AppendSeq([]Game{}, FeaturedSeq(games))
}
