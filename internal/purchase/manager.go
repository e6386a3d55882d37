package purchase

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ErrSessionNotFound is returned when a session ID is unknown or expired.
var ErrSessionNotFound = errors.New("SESSION_NOT_FOUND")

// session pairs a flow with its last-touched time for expiry.
type session struct {
	flow     *Flow
	lastSeen time.Time
}

// Manager owns the per-session purchase flows. Each browser session gets its
// own flow keyed by an opaque ID; flows are UI-local state and are never
// persisted.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*session
	ttl      time.Duration
}

// NewManager creates a Manager whose sessions expire after ttl of inactivity.
func NewManager(ttl time.Duration) *Manager {
	return &Manager{
		sessions: make(map[string]*session),
		ttl:      ttl,
	}
}

// NewSession creates a fresh closed flow and returns its session ID.
func (m *Manager) NewSession() string {
	id := uuid.New().String()
	m.mu.Lock()
	m.sessions[id] = &session{flow: NewFlow(), lastSeen: time.Now()}
	m.mu.Unlock()
	return id
}

// With runs fn against the session's flow while holding the manager lock,
// so handler read-modify sequences are atomic per session.
func (m *Manager) With(id string, fn func(*Flow) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return ErrSessionNotFound
	}
	s.lastSeen = time.Now()
	return fn(s.flow)
}

// Drop removes a session outright (explicit cancel).
func (m *Manager) Drop(id string) {
	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()
}

// Sweep removes sessions idle past the TTL and returns how many were removed.
func (m *Manager) Sweep() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	cutoff := time.Now().Add(-m.ttl)
	removed := 0
	for id, s := range m.sessions {
		if s.lastSeen.Before(cutoff) {
			delete(m.sessions, id)
			removed++
		}
	}
	return removed
}

// Len returns the number of live sessions.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}
