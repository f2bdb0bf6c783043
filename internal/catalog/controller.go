package catalog

import (
	"context"
	"log"
	"os"
	"sync"
	"time"
)

// DefaultLoadDelay is the minimum time the loading state stays visible
const DefaultLoadDelay = 500 * time.Millisecond

// Controller owns one catalog session: the loaded games, the filter inputs
// and the Browsing/Playing view. It is safe for concurrent use.
type Controller struct {
	mu       sync.RWMutex
	games    []Game
	query    string
	category Category
	view     View
	loading  bool

	loadStarted bool
	disposed    bool

	loadDelay time.Duration
	onLoaded  func()
	logger    *log.Logger
}

// Option configures a Controller
type Option func(*Controller)

// WithLoadDelay sets the minimum loading time. Zero disables it.
func WithLoadDelay(d time.Duration) Option {
	return func(c *Controller) {
		c.loadDelay = d
	}
}

// WithOnLoaded registers a callback run once loading has finished
func WithOnLoaded(fn func()) Option {
	return func(c *Controller) {
		c.onLoaded = fn
	}
}

// WithLogger sets the logger used for load diagnostics
func WithLogger(l *log.Logger) Option {
	return func(c *Controller) {
		c.logger = l
	}
}

// NewController creates a controller in its initial state: no games,
// empty query, category All, Browsing, loading.
func NewController(opts ...Option) *Controller {
	c := &Controller{
		games:     []Game{},
		category:  CategoryAll,
		view:      Browsing{},
		loading:   true,
		loadDelay: DefaultLoadDelay,
		logger:    log.New(os.Stderr, "", log.LstdFlags),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Load fetches the game list once. A failed fetch leaves the catalog empty
// and is only logged. Loading ends after the fetch, but no earlier than the
// configured delay. If ctx ends or the controller is disposed before the
// result is applied, the result is dropped and nothing changes.
// Calls after the first are no-ops.
func (c *Controller) Load(ctx context.Context, src Source) {
	c.mu.Lock()
	if c.loadStarted || c.disposed {
		c.mu.Unlock()
		return
	}
	c.loadStarted = true
	c.mu.Unlock()

	start := time.Now()
	games, err := src.Fetch(ctx)
	if err != nil {
		c.logger.Printf("Load: error loading games: %v", err)
		games = []Game{}
	}

	if remaining := c.loadDelay - time.Since(start); remaining > 0 {
		timer := time.NewTimer(remaining)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
		}
	}

	c.mu.Lock()
	if c.disposed || ctx.Err() != nil {
		c.mu.Unlock()
		c.logger.Printf("Load: discarding result, controller torn down")
		return
	}
	c.games = games
	c.loading = false
	onLoaded := c.onLoaded
	c.mu.Unlock()

	c.logger.Printf("Load: loaded %d games", len(games))
	if onLoaded != nil {
		onLoaded()
	}
}

// Dispose tears the controller down. Any pending load result is dropped.
func (c *Controller) Dispose() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.disposed = true
}

// Disposed reports whether Dispose has been called
func (c *Controller) Disposed() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.disposed
}

// Loading reports whether the initial load is still pending
func (c *Controller) Loading() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loading
}

// Games returns the loaded games in source order
func (c *Controller) Games() []Game {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]Game{}, c.games...)
}

// GameByID finds a loaded game by its id
func (c *Controller) GameByID(id string) (Game, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, g := range c.games {
		if g.ID == id {
			return g, true
		}
	}
	return Game{}, false
}

// FilteredGames returns the games matching the current query and category
func (c *Controller) FilteredGames() []Game {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return Filter(c.games, c.query, c.category)
}

// FeaturedGames returns the featured games
func (c *Controller) FeaturedGames() []Game {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return Featured(c.games)
}

// SearchQuery returns the current search text
func (c *Controller) SearchQuery() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.query
}

// SetSearchQuery replaces the search text
func (c *Controller) SetSearchQuery(q string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.query = q
}

// SelectedCategory returns the current category filter
func (c *Controller) SelectedCategory() Category {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.category
}

// SetCategory replaces the category filter
func (c *Controller) SetCategory(cat Category) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.category = cat
}

// View returns the current top-level view
func (c *Controller) View() View {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.view
}

// SelectGame switches from Browsing to Playing the given game. The game is
// expected to come from this controller's own views. Returns false, with no
// change, when a game is already being played.
func (c *Controller) SelectGame(g Game) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch c.view.(type) {
	case Browsing:
		c.view = Playing{Game: g}
		return true
	case Playing:
		return false
	default:
		return false
	}
}

// CloseGame returns to Browsing. Search and category are kept.
func (c *Controller) CloseGame() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.view = Browsing{}
}

// Reset returns to the default browsing view: no active game, empty query
// and category All, applied together.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.view = Browsing{}
	c.query = ""
	c.category = CategoryAll
}

// Snapshot captures the state and its derived views under one lock
func (c *Controller) Snapshot() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return State{
		Games:    append([]Game{}, c.games...),
		Filtered: Filter(c.games, c.query, c.category),
		Featured: Featured(c.games),
		Query:    c.query,
		Category: c.category,
		View:     c.view,
		Loading:  c.loading,
	}
}
