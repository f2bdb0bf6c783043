package render

import (
	htmlpkg "html"
	"net/url"
	"strings"

	"github.com/aaronzipp/nova-arcade/internal/catalog"
	"github.com/aaronzipp/nova-arcade/internal/game"
)

// Main generates the HTML for the browsing view below the header:
// the featured section (when it applies) and the catalog section
func Main(state catalog.State) string {
	var b strings.Builder
	if state.Loading {
		// Swapped out, and its event stream closed, once catalog-ready arrives
		b.WriteString(`<div id="catalog-loader" hx-ext="sse" sse-connect="/events" sse-swap="catalog-ready" hx-target="#main" hx-swap="innerHTML">`)
		b.WriteString(CatalogSection(state))
		b.WriteString(`</div>`)
		return b.String()
	}
	if state.ShowFeatured() {
		b.WriteString(FeaturedSection(state.Featured))
	}
	b.WriteString(CatalogSection(state))
	return b.String()
}

// FeaturedSection generates HTML for the featured games banner grid
func FeaturedSection(games []catalog.Game) string {
	var b strings.Builder
	b.WriteString(`<section class="featured"><h2 class="section-title">Featured Games</h2><div class="featured-grid">`)
	for _, g := range games {
		b.WriteString(`<div class="featured-card" hx-post="`)
		b.WriteString(htmlpkg.EscapeString(PlayPath(g.ID)))
		b.WriteString(`" hx-trigger="click"><img src="`)
		b.WriteString(htmlpkg.EscapeString(g.Thumbnail))
		b.WriteString(`" alt="`)
		b.WriteString(htmlpkg.EscapeString(g.Title))
		b.WriteString(`"><div class="featured-body"><span class="badge">Featured</span><h3>`)
		b.WriteString(htmlpkg.EscapeString(g.Title))
		b.WriteString(`</h3><p>`)
		b.WriteString(htmlpkg.EscapeString(g.Description))
		b.WriteString(`</p></div></div>`)
	}
	b.WriteString(`</div></section>`)
	return b.String()
}

// CatalogSection generates HTML for the heading, category bar and grid
func CatalogSection(state catalog.State) string {
	var b strings.Builder
	b.WriteString(`<section class="catalog"><div class="catalog-head"><h2 class="section-title">`)
	b.WriteString(htmlpkg.EscapeString(state.Heading()))
	b.WriteString(`</h2>`)
	b.WriteString(CategoryBar(state.Category))
	b.WriteString(`</div>`)
	switch {
	case state.Loading:
		b.WriteString(LoadingSkeleton(game.SkeletonCards))
	case len(state.Filtered) > 0:
		b.WriteString(GameGrid(state.Filtered))
	default:
		b.WriteString(EmptyState())
	}
	b.WriteString(`</section>`)
	return b.String()
}

// CategoryBar generates HTML for the category buttons
func CategoryBar(selected catalog.Category) string {
	var b strings.Builder
	b.WriteString(`<div class="category-bar">`)
	for _, c := range catalog.Categories() {
		b.WriteString(`<button class="category`)
		if c == selected {
			b.WriteString(` selected`)
		}
		b.WriteString(`" hx-post="/category/`)
		b.WriteString(url.PathEscape(c.String()))
		b.WriteString(`" hx-target="#main">`)
		b.WriteString(htmlpkg.EscapeString(c.String()))
		b.WriteString(`</button>`)
	}
	b.WriteString(`</div>`)
	return b.String()
}

// GameGrid generates HTML for a grid of game cards
func GameGrid(games []catalog.Game) string {
	var b strings.Builder
	b.WriteString(`<div class="game-grid">`)
	for _, g := range games {
		b.WriteString(GameCard(g))
	}
	b.WriteString(`</div>`)
	return b.String()
}

// GameCard generates HTML for a single catalog tile
func GameCard(g catalog.Game) string {
	var b strings.Builder
	b.WriteString(`<div class="game-card" id="game-`)
	b.WriteString(htmlpkg.EscapeString(g.ID))
	b.WriteString(`" hx-post="`)
	b.WriteString(htmlpkg.EscapeString(PlayPath(g.ID)))
	b.WriteString(`" hx-trigger="click"><div class="thumb"><img src="`)
	b.WriteString(htmlpkg.EscapeString(g.Thumbnail))
	b.WriteString(`" alt="`)
	b.WriteString(htmlpkg.EscapeString(g.Title))
	b.WriteString(`" loading="lazy"><span class="category-tag">`)
	b.WriteString(htmlpkg.EscapeString(g.Category.String()))
	b.WriteString(`</span></div><div class="card-body"><h3>`)
	b.WriteString(htmlpkg.EscapeString(g.Title))
	b.WriteString(`</h3><p>`)
	b.WriteString(htmlpkg.EscapeString(g.Description))
	b.WriteString(`</p></div></div>`)
	return b.String()
}

// LoadingSkeleton generates HTML for n placeholder cards
func LoadingSkeleton(n int) string {
	var b strings.Builder
	b.WriteString(`<div class="game-grid loading" aria-busy="true">`)
	for range n {
		b.WriteString(`<div class="skeleton"><div class="skeleton-thumb"></div><div class="skeleton-line"></div><div class="skeleton-line short"></div></div>`)
	}
	b.WriteString(`</div>`)
	return b.String()
}

// EmptyState generates HTML shown when no game passes the filters.
// It is also what a failed load looks like.
func EmptyState() string {
	return `<div class="empty-state">
		<h3>No games found</h3>
		<p class="text-muted">Try adjusting your filters or search terms.</p>
		<button class="link-button" hx-post="/home">Reset Dashboard</button>
	</div>`
}

// RedirectSnippet returns an HTMX snippet that triggers a client-side redirect
func RedirectSnippet(to string) string {
	var b strings.Builder
	b.WriteString(`<div hx-get="/redirect?to=`)
	b.WriteString(url.QueryEscape(to))
	b.WriteString(`" hx-trigger="load" hx-swap="none"></div>`)
	return b.String()
}

// PlayPath returns the action path that starts a game
func PlayPath(id string) string {
	return "/play/" + url.PathEscape(id)
}
