package models

import (
	"sync"
	"time"

	"github.com/aaronzipp/nova-arcade/internal/catalog"
)

// Session represents one browser's catalog session (ephemeral)
type Session struct {
	ID         string
	Controller *catalog.Controller
	lastSeen   time.Time
	mu         sync.RWMutex
	sseClients map[chan SSEMessage]struct{}
}

// SSEMessage represents a message sent via Server-Sent Events
type SSEMessage struct {
	Event string // Event type (e.g., "catalog-ready", "nav-redirect")
	Data  string // HTML content or data to send
}

// NewSession creates a session around a controller
func NewSession(id string, controller *catalog.Controller) *Session {
	return &Session{
		ID:         id,
		Controller: controller,
		lastSeen:   time.Now(),
	}
}

// Lock acquires the session's write lock
func (s *Session) Lock() {
	s.mu.Lock()
}

// Unlock releases the session's write lock
func (s *Session) Unlock() {
	s.mu.Unlock()
}

// RLock acquires the session's read lock
func (s *Session) RLock() {
	s.mu.RLock()
}

// RUnlock releases the session's read lock
func (s *Session) RUnlock() {
	s.mu.RUnlock()
}

// Touch marks the session as used now
func (s *Session) Touch() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSeen = time.Now()
}

// LastSeen returns when the session was last used
func (s *Session) LastSeen() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastSeen
}

// GetSSEClients returns a copy of the SSE client set (must be called with lock held)
func (s *Session) GetSSEClients() []chan SSEMessage {
	clients := make([]chan SSEMessage, 0, len(s.sseClients))
	for c := range s.sseClients {
		clients = append(clients, c)
	}
	return clients
}

// AddSSEClient adds a new SSE client to the session (must be called with lock held)
func (s *Session) AddSSEClient(client chan SSEMessage) {
	if s.sseClients == nil {
		s.sseClients = make(map[chan SSEMessage]struct{})
	}
	s.sseClients[client] = struct{}{}
}

// RemoveSSEClient removes an SSE client from the session (must be called with lock held)
func (s *Session) RemoveSSEClient(client chan SSEMessage) {
	delete(s.sseClients, client)
}

// SSEClientCount returns the number of connected SSE clients (must be called with lock held)
func (s *Session) SSEClientCount() int {
	return len(s.sseClients)
}
