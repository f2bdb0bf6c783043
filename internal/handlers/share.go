package handlers

import (
	"log"
	"net/http"

	"github.com/aaronzipp/nova-arcade/internal/game"
	"github.com/go-chi/chi/v5"
	qrcode "github.com/skip2/go-qrcode"
)

// HandleQRCode serves a PNG QR code pointing at a game's playable content,
// so it can be opened on another device
func (ctx *Context) HandleQRCode(w http.ResponseWriter, r *http.Request) {
	session, err := ctx.getSession(r)
	if err != nil {
		http.Error(w, "Game not found", http.StatusNotFound)
		return
	}

	id := chi.URLParam(r, "id")
	g, found := session.Controller.GameByID(id)
	if !found {
		http.Error(w, "Game not found", http.StatusNotFound)
		return
	}

	target, err := game.AbsoluteURL(ctx.publicBase(r), g.IframeURL)
	if err != nil {
		log.Printf("HandleQRCode: game=%s: %v", id, err)
		http.Error(w, "Game has no shareable url", http.StatusUnprocessableEntity)
		return
	}

	png, err := qrcode.Encode(target, qrcode.Medium, game.QRCodeSize)
	if err != nil {
		log.Printf("HandleQRCode: game=%s encode: %v", id, err)
		http.Error(w, "Could not encode QR code", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "private, max-age=3600")
	w.Write(png)
}

// HandleGamesJSON serves the local games file as the raw data source
func (ctx *Context) HandleGamesJSON(w http.ResponseWriter, r *http.Request) {
	if ctx.GamesFile == "" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	http.ServeFile(w, r, ctx.GamesFile)
}

// publicBase is the configured public URL, or the URL the request came in on
func (ctx *Context) publicBase(r *http.Request) string {
	if ctx.PublicURL != "" {
		return ctx.PublicURL
	}
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	return scheme + "://" + r.Host + "/"
}
