package catalog

// Mode names the two top-level UI modes
type Mode string

const (
	ModeBrowsing Mode = "browsing"
	ModePlaying  Mode = "playing"
)

// View is the active top-level screen. It is either Browsing or Playing;
// the unexported method keeps the set closed to this package.
type View interface {
	Mode() Mode
	view()
}

// Browsing shows the catalog with its search and category filters
type Browsing struct{}

// Playing shows a single game's embedded content with the catalog hidden
type Playing struct {
	Game Game
}

func (Browsing) Mode() Mode { return ModeBrowsing }
func (Playing) Mode() Mode  { return ModePlaying }

func (Browsing) view() {}
func (Playing) view()  {}

// ActiveGame returns the game being played, if any
func ActiveGame(v View) (Game, bool) {
	if p, ok := v.(Playing); ok {
		return p.Game, true
	}
	return Game{}, false
}
