package handlers

import (
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/aaronzipp/nova-arcade/internal/game"
	"github.com/aaronzipp/nova-arcade/internal/models"
	"github.com/aaronzipp/nova-arcade/internal/render"
	"github.com/aaronzipp/nova-arcade/internal/sse"
)

// HandleSSE streams the catalog to a page that rendered while loading.
// It sends catalog-ready once, as soon as the load has finished, and ends.
func (ctx *Context) HandleSSE(w http.ResponseWriter, r *http.Request) {
	// Set headers for SSE
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no") // Disable buffering in nginx/proxies

	session, err := ctx.getSession(r)
	if err != nil {
		if debug {
			log.Printf("handleSSE: %v, sending nav-redirect to home", err)
		}
		writeEvent(w, sse.EventNavRedirect, render.RedirectSnippet("/"))
		return
	}

	// Immediately flush headers to establish SSE connection
	if flusher, ok := w.(http.Flusher); ok {
		flusher.Flush()
	}

	// Register before checking the state so a load finishing in between
	// is seen either here or through the channel
	clientChan := make(chan models.SSEMessage, game.SSEBufferSize)
	sse.AddClient(session, clientChan)
	defer sse.RemoveClient(session, clientChan)

	if !session.Controller.Loading() {
		if debug {
			log.Printf("handleSSE: session %s already loaded, sending catalog", session.ID)
		}
		writeEvent(w, sse.EventCatalogReady, render.Main(session.Controller.Snapshot()))
		return
	}

	// Listen for updates
	reqCtx := r.Context()
	for {
		select {
		case <-reqCtx.Done():
			if debug {
				log.Printf("handleSSE: session %s disconnected", session.ID)
			}
			return
		case msg := <-clientChan:
			writeEvent(w, msg.Event, msg.Data)
			if msg.Event == sse.EventCatalogReady {
				return
			}
		}
	}
}

// writeEvent writes one SSE event, splitting multi-line data into
// separate data fields, and flushes it
func writeEvent(w http.ResponseWriter, event, data string) {
	fmt.Fprintf(w, "event: %s\n", event)
	for _, line := range strings.Split(data, "\n") {
		fmt.Fprintf(w, "data: %s\n", line)
	}
	fmt.Fprint(w, "\n")
	if flusher, ok := w.(http.Flusher); ok {
		flusher.Flush()
	}
}
