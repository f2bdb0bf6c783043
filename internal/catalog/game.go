package catalog

import (
	"fmt"
)

// Game represents a single playable entry in the catalog
type Game struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Thumbnail   string   `json:"thumbnail"`
	IframeURL   string   `json:"iframeUrl"` // Opaque, handed to the player frame as-is
	Category    Category `json:"category"`
	Featured    bool     `json:"isFeatured,omitempty"`
}

// Category is one of the fixed catalog categories
type Category int

const (
	// CategoryAll is the wildcard used by the filter; never set on a Game
	CategoryAll Category = iota
	CategoryAction
	CategoryStrategy
	CategoryPuzzle
	CategorySports
	CategoryRetro
	CategoryMultiplayer
)

var categoryNames = [...]string{
	CategoryAll:         "All",
	CategoryAction:      "Action",
	CategoryStrategy:    "Strategy",
	CategoryPuzzle:      "Puzzle",
	CategorySports:      "Sports",
	CategoryRetro:       "Retro",
	CategoryMultiplayer: "Multiplayer",
}

// Categories returns every category in display order, All first
func Categories() []Category {
	return []Category{
		CategoryAll,
		CategoryAction,
		CategoryStrategy,
		CategoryPuzzle,
		CategorySports,
		CategoryRetro,
		CategoryMultiplayer,
	}
}

// String returns the display name of the category
func (c Category) String() string {
	if c < 0 || int(c) >= len(categoryNames) {
		return fmt.Sprintf("Category(%d)", int(c))
	}
	return categoryNames[c]
}

// ParseCategory maps a display name to its category. Matching is exact.
func ParseCategory(name string) (Category, error) {
	for i, n := range categoryNames {
		if n == name {
			return Category(i), nil
		}
	}
	return CategoryAll, fmt.Errorf("unknown category %q", name)
}

// Matches reports whether a game in category g passes a filter set to c
func (c Category) Matches(g Category) bool {
	switch c {
	case CategoryAll:
		return true
	case CategoryAction, CategoryStrategy, CategoryPuzzle, CategorySports, CategoryRetro, CategoryMultiplayer:
		return c == g
	default:
		return false
	}
}

// MarshalText encodes the category as its display name
func (c Category) MarshalText() ([]byte, error) {
	if c < 0 || int(c) >= len(categoryNames) {
		return nil, fmt.Errorf("invalid category %d", int(c))
	}
	return []byte(categoryNames[c]), nil
}

// UnmarshalText decodes a display name. "All" is rejected because it is
// not a real category value on a game record.
func (c *Category) UnmarshalText(text []byte) error {
	parsed, err := ParseCategory(string(text))
	if err != nil {
		return err
	}
	if parsed == CategoryAll {
		return fmt.Errorf("category %q is not valid on a game", text)
	}
	*c = parsed
	return nil
}
