package sse

import (
	"log"
	"os"
	"time"

	"github.com/aaronzipp/nova-arcade/internal/game"
	"github.com/aaronzipp/nova-arcade/internal/models"
)

var debug bool

func init() {
	debug = os.Getenv("DEBUG") != ""
}

// AddClient adds a new SSE client to the session
func AddClient(session *models.Session, client chan models.SSEMessage) {
	session.Lock()
	defer session.Unlock()

	// Warn if the same browser has several SSE connections (e.g. many tabs)
	if n := session.SSEClientCount(); n > 0 {
		log.Printf("WARN: session %s opened an additional SSE connection (%d already open)", session.ID, n)
	}
	session.AddSSEClient(client)
}

// RemoveClient removes an SSE client from the session
func RemoveClient(session *models.Session, client chan models.SSEMessage) {
	session.Lock()
	defer session.Unlock()
	session.RemoveSSEClient(client)
	if debug {
		log.Printf("removeSSEClient: client removed, session %s now has %d clients", session.ID, session.SSEClientCount())
	}
}

// Broadcast sends a message to all connected SSE clients of the session.
// It returns the number of clients that received it.
func Broadcast(session *models.Session, event, data string) int {
	session.RLock()
	// Collect all client channels while holding the lock
	clients := session.GetSSEClients()
	session.RUnlock()

	if debug {
		log.Printf("broadcastSSE: event=%s to %d clients", event, len(clients))
	}

	// Send messages WITHOUT holding the lock
	msg := models.SSEMessage{Event: event, Data: data}
	successCount := 0
	for _, client := range clients {
		select {
		case client <- msg:
			successCount++
		case <-time.After(game.SSETimeout):
			if debug {
				log.Printf("broadcastSSE: timeout sending to client")
			}
		}
	}
	if debug {
		log.Printf("broadcastSSE: sent to %d/%d clients successfully", successCount, len(clients))
	}
	return successCount
}
