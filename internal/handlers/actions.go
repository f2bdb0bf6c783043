package handlers

import (
	"log"
	"net/http"
	"strings"

	"github.com/aaronzipp/nova-arcade/internal/catalog"
	"github.com/aaronzipp/nova-arcade/internal/render"
	"github.com/go-chi/chi/v5"
)

// HandleSearch updates the search text and returns the refreshed catalog
func (ctx *Context) HandleSearch(w http.ResponseWriter, r *http.Request) {
	session, ok := ctx.requireSession(w, r)
	if !ok {
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}
	query := r.FormValue("q")
	session.Controller.SetSearchQuery(query)

	if debug {
		log.Printf("HandleSearch: session=%s q=%q", session.ID, query)
	}
	writeFragment(w, render.Main(session.Controller.Snapshot()))
}

// HandleCategory switches the category filter and returns the refreshed catalog
func (ctx *Context) HandleCategory(w http.ResponseWriter, r *http.Request) {
	session, ok := ctx.requireSession(w, r)
	if !ok {
		return
	}

	category, err := catalog.ParseCategory(chi.URLParam(r, "name"))
	if err != nil {
		http.Error(w, "Unknown category", http.StatusBadRequest)
		return
	}
	session.Controller.SetCategory(category)

	if debug {
		log.Printf("HandleCategory: session=%s category=%s", session.ID, category)
	}
	writeFragment(w, render.Main(session.Controller.Snapshot()))
}

// HandlePlay starts the game with the given id
func (ctx *Context) HandlePlay(w http.ResponseWriter, r *http.Request) {
	session, ok := ctx.requireSession(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, "id")
	g, found := session.Controller.GameByID(id)
	if !found {
		http.Error(w, "Game not found", http.StatusNotFound)
		return
	}

	if !session.Controller.SelectGame(g) {
		log.Printf("HandlePlay: session=%s already playing, ignoring game=%s", session.ID, id)
	} else {
		log.Printf("HandlePlay: session=%s game=%s", session.ID, id)
	}
	redirectHome(w, r)
}

// HandleClose leaves the player and keeps the current filters
func (ctx *Context) HandleClose(w http.ResponseWriter, r *http.Request) {
	session, ok := ctx.requireSession(w, r)
	if !ok {
		return
	}
	session.Controller.CloseGame()
	redirectHome(w, r)
}

// HandleHome resets to the default browsing view
func (ctx *Context) HandleHome(w http.ResponseWriter, r *http.Request) {
	session, ok := ctx.requireSession(w, r)
	if !ok {
		return
	}
	session.Controller.Reset()
	redirectHome(w, r)
}

// HandleRedirect is the target of RedirectSnippet; it tells HTMX where to go
func (ctx *Context) HandleRedirect(w http.ResponseWriter, r *http.Request) {
	to := r.URL.Query().Get("to")
	// Only same-site paths
	if !strings.HasPrefix(to, "/") || strings.HasPrefix(to, "//") {
		to = "/"
	}
	w.Header().Set("HX-Location", to)
	w.WriteHeader(http.StatusOK)
}

// HandleHealth reports liveness
func (ctx *Context) HandleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}
