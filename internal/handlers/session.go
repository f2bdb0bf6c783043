package handlers

import (
	"context"
	"log"
	"net/http"

	"github.com/aaronzipp/nova-arcade/internal/catalog"
	"github.com/aaronzipp/nova-arcade/internal/game"
	"github.com/aaronzipp/nova-arcade/internal/models"
	"github.com/aaronzipp/nova-arcade/internal/render"
	"github.com/aaronzipp/nova-arcade/internal/sse"
	"github.com/google/uuid"
)

// ensureSession returns the caller's session, starting a new one (and its
// catalog load) when the cookie is missing or no longer known
func (ctx *Context) ensureSession(w http.ResponseWriter, r *http.Request) *models.Session {
	if session, err := ctx.getSession(r); err == nil {
		return session
	}

	session := ctx.newSession()
	log.Printf("Created session: id=%s", session.ID)

	// Set cookie for session ID
	http.SetCookie(w, game.SessionCookie(session.ID))
	return session
}

// newSession registers a session and loads its catalog in the background.
// When the load finishes, connected event streams receive the catalog.
func (ctx *Context) newSession() *models.Session {
	var session *models.Session
	controller := catalog.NewController(
		catalog.WithLoadDelay(ctx.LoadDelay),
		catalog.WithOnLoaded(func() {
			sse.Broadcast(session, sse.EventCatalogReady, render.Main(session.Controller.Snapshot()))
		}),
	)
	session = models.NewSession(uuid.New().String(), controller)
	ctx.Sessions.Set(session.ID, session)

	go controller.Load(ctx.loadContext(), ctx.Source)
	return session
}

func (ctx *Context) loadContext() context.Context {
	if ctx.BaseContext != nil {
		return ctx.BaseContext
	}
	return context.Background()
}
