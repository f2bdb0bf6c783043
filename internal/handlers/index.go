package handlers

import (
	"context"
	"html/template"
	"io/fs"
	"log"
	"net/http"
	"time"

	"github.com/aaronzipp/nova-arcade/internal/catalog"
	"github.com/aaronzipp/nova-arcade/internal/render"
	"github.com/aaronzipp/nova-arcade/internal/store"
)

// Context holds shared application dependencies
type Context struct {
	Sessions  *store.SessionStore
	Templates *template.Template
	Source    catalog.Source
	Static    fs.FS

	LoadDelay time.Duration
	GamesFile string // Served at /games.json when set
	PublicURL string // Base for relative playable URLs in share codes

	// BaseContext bounds every background load; cancel it on shutdown
	BaseContext context.Context
}

type catalogPage struct {
	Title string
	Query string
	Main  template.HTML
	Year  int
}

type playerPage struct {
	Title string
	Game  catalog.Game
}

// HandleIndex serves the catalog, or the player when a game is active
func (ctx *Context) HandleIndex(w http.ResponseWriter, r *http.Request) {
	session := ctx.ensureSession(w, r)
	state := session.Controller.Snapshot()

	switch v := state.View.(type) {
	case catalog.Playing:
		ctx.renderPage(w, "player.html", playerPage{
			Title: v.Game.Title + " - NovaArcade",
			Game:  v.Game,
		})
	case catalog.Browsing:
		ctx.renderPage(w, "index.html", catalogPage{
			Title: "NovaArcade",
			Query: state.Query,
			Main:  template.HTML(render.Main(state)),
			Year:  time.Now().Year(),
		})
	}
}

func (ctx *Context) renderPage(w http.ResponseWriter, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := ctx.Templates.ExecuteTemplate(w, name, data); err != nil {
		log.Printf("renderPage: template=%s error=%v", name, err)
	}
}
