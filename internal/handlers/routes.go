package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Routes builds the HTTP router
func (ctx *Context) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", ctx.HandleHealth)
	if ctx.Static != nil {
		r.Handle("/static/*", http.StripPrefix("/static/", http.FileServerFS(ctx.Static)))
	}
	r.Get("/games.json", ctx.HandleGamesJSON)
	r.Get("/games/{id}/qr.png", ctx.HandleQRCode)

	r.Get("/", ctx.HandleIndex)
	r.Get("/events", ctx.HandleSSE)
	r.Get("/redirect", ctx.HandleRedirect)

	r.Post("/search", ctx.HandleSearch)
	r.Post("/category/{name}", ctx.HandleCategory)
	r.Post("/play/{id}", ctx.HandlePlay)
	r.Post("/close", ctx.HandleClose)
	r.Post("/home", ctx.HandleHome)

	return r
}
