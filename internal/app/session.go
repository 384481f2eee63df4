package app

import (
	"sync"

	"github.com/google/uuid"

	"github.com/yourusername/mediascraper-go/internal/domain"
)

// SessionState is one visitor's page state: the active section and the
// status line with its loading indicator.
type SessionState struct {
	id            string
	mu            sync.RWMutex
	activeSection string
	statusText    string
	statusColor   string
	loading       bool
	loadingColor  string
}

// ID returns the session identifier
func (s *SessionState) ID() string {
	return s.id
}

// ActiveSection returns the id of the visible section
func (s *SessionState) ActiveSection() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.activeSection
}

// Snapshot copies the current state
func (s *SessionState) Snapshot() domain.SessionSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return domain.SessionSnapshot{
		SessionID:     s.id,
		ActiveSection: s.activeSection,
		StatusText:    s.statusText,
		StatusColor:   s.statusColor,
		Loading:       s.loading,
		LoadingColor:  s.loadingColor,
	}
}

func (s *SessionState) setActiveSection(section string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activeSection = section
}

// startLoading shows the indicator with text in color
func (s *SessionState) startLoading(text, color string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.statusText = text
	s.statusColor = color
	s.loading = true
	s.loadingColor = color
}

// finish hides the indicator and sets the status line
func (s *SessionState) finish(text, color string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	s.statusText = text
	if color != "" {
		s.statusColor = color
	}
}

// SessionStore holds every visitor's state for the lifetime of the process
type SessionStore struct {
	mu             sync.RWMutex
	sessions       map[string]*SessionState
	defaultSection string
}

// NewSessionStore creates a store whose new sessions open on defaultSection
func NewSessionStore(defaultSection string) *SessionStore {
	return &SessionStore{
		sessions:       make(map[string]*SessionState),
		defaultSection: defaultSection,
	}
}

// NewSessionID returns a fresh session identifier
func NewSessionID() string {
	return uuid.New().String()
}

// Lookup returns the session for id without creating it
func (s *SessionStore) Lookup(id string) (*SessionState, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	state, ok := s.sessions[id]
	return state, ok
}

// Snapshot copies the session's state. An unknown id yields the state a
// new session would start with, and nothing is stored for it.
func (s *SessionStore) Snapshot(id string) domain.SessionSnapshot {
	if state, ok := s.Lookup(id); ok {
		return state.Snapshot()
	}
	return domain.SessionSnapshot{
		SessionID:     id,
		ActiveSection: s.defaultSection,
		StatusColor:   domain.ColorIdle,
		LoadingColor:  domain.ColorIdle,
	}
}

// Get returns the session for id, creating it on first use. Only writers
// call it: submissions and downloads.
func (s *SessionStore) Get(id string) *SessionState {
	s.mu.RLock()
	state, ok := s.sessions[id]
	s.mu.RUnlock()
	if ok {
		return state
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if state, ok := s.sessions[id]; ok {
		return state
	}
	state = &SessionState{
		id:            id,
		activeSection: s.defaultSection,
		statusColor:   domain.ColorIdle,
		loadingColor:  domain.ColorIdle,
	}
	s.sessions[id] = state
	return state
}

// Len returns the number of known sessions
func (s *SessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
