package handlers

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/aaronzipp/nova-arcade/internal/game"
	"github.com/aaronzipp/nova-arcade/internal/models"
)

var debug bool

func init() {
	debug = os.Getenv("DEBUG") != ""
}

// getSession resolves the session from the session cookie
func (ctx *Context) getSession(r *http.Request) (*models.Session, error) {
	cookie, err := r.Cookie(game.SessionCookieName)
	if err != nil {
		return nil, fmt.Errorf("no session")
	}
	session, exists := ctx.Sessions.Get(cookie.Value)
	if !exists {
		return nil, fmt.Errorf("session not found")
	}
	session.Touch()
	return session, nil
}

// requireSession resolves the session for an action. Without one the
// client is sent home, which starts a fresh session.
func (ctx *Context) requireSession(w http.ResponseWriter, r *http.Request) (*models.Session, bool) {
	session, err := ctx.getSession(r)
	if err != nil {
		if debug {
			log.Printf("requireSession: %s %s: %v", r.Method, r.URL.Path, err)
		}
		redirectHome(w, r)
		return nil, false
	}
	return session, true
}

// redirectHome sends the client to "/", via HX-Redirect for HTMX requests
func redirectHome(w http.ResponseWriter, r *http.Request) {
	if isHTMXRequest(r) {
		w.Header().Set("HX-Redirect", "/")
		w.WriteHeader(http.StatusOK)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func isHTMXRequest(r *http.Request) bool {
	return strings.EqualFold(r.Header.Get("HX-Request"), "true")
}

func writeFragment(w http.ResponseWriter, html string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(html))
}
