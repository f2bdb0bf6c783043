package store

import (
	"sync"
	"time"

	"github.com/aaronzipp/nova-arcade/internal/models"
)

// SessionStore manages session storage
type SessionStore struct {
	sessions map[string]*models.Session
	mu       sync.RWMutex
}

// NewSessionStore creates a new session store
func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[string]*models.Session),
	}
}

// Get retrieves a session by id
func (s *SessionStore) Get(id string) (*models.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, exists := s.sessions[id]
	return session, exists
}

// Set stores a session
func (s *SessionStore) Set(id string, session *models.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[id] = session
}

// Delete removes a session and disposes its controller
func (s *SessionStore) Delete(id string) {
	s.mu.Lock()
	session, exists := s.sessions[id]
	delete(s.sessions, id)
	s.mu.Unlock()
	if exists {
		session.Controller.Dispose()
	}
}

// Exists checks if a session id exists
func (s *SessionStore) Exists(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, exists := s.sessions[id]
	return exists
}

// Len returns the number of stored sessions
func (s *SessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Sweep removes sessions not used within idle and disposes their
// controllers. Returns how many were removed.
func (s *SessionStore) Sweep(idle time.Duration) int {
	cutoff := time.Now().Add(-idle)

	s.mu.Lock()
	var expired []*models.Session
	for id, session := range s.sessions {
		if session.LastSeen().Before(cutoff) {
			expired = append(expired, session)
			delete(s.sessions, id)
		}
	}
	s.mu.Unlock()

	for _, session := range expired {
		session.Controller.Dispose()
	}
	return len(expired)
}
