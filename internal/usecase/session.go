package usecase

import (
	"sync"

	"github.com/pricefinder/backend/internal/domain"
)

// SessionManager implements the per-platform pagination state machine:
// Idle -> Loading -> Idle(with appended results) | Exhausted. One search
// session is active at a time; outcomes carrying a superseded query token
// are discarded instead of corrupting the new session.
type SessionManager struct {
	mu     sync.Mutex
	query  string
	states map[string]*domain.SearchState
}

// NewSessionManager creates an empty session manager
func NewSessionManager() *SessionManager {
	return &SessionManager{
		states: make(map[string]*domain.SearchState),
	}
}

// Reset starts a new search session for the query, clearing prior results
// for every platform
func (m *SessionManager) Reset(query string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.query = query
	m.states = map[string]*domain.SearchState{
		domain.PlatformDigikala: {Query: query, Page: 1, HasMore: true},
		domain.PlatformTorob:    {Query: query, Page: 1, HasMore: true},
	}
}

// Begin marks a load-more fetch in flight for the platform and returns the
// page to request. It refuses (ok=false) when the session belongs to a
// different query, a fetch is already outstanding, or the platform is
// exhausted. The loading flag is checked and set under the same lock.
func (m *SessionManager) Begin(query, platform string) (int, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if query != m.query {
		return 0, false
	}
	state, exists := m.states[platform]
	if !exists || state.Loading || !state.HasMore {
		return 0, false
	}

	state.Loading = true
	return state.Page + 1, true
}

// Complete records a load-more outcome. The loading flag clears regardless
// of success; stale outcomes (query token mismatch) are dropped. A short or
// failed page marks the platform exhausted, and a zero-item page does not
// advance the page counter.
func (m *SessionManager) Complete(query, platform string, page int, offers []domain.Offer, pageCap int, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if query != m.query {
		return
	}
	state, exists := m.states[platform]
	if !exists {
		return
	}

	state.Loading = false
	if err != nil {
		state.HasMore = false
		return
	}
	if len(offers) == 0 {
		state.HasMore = false
		return
	}

	state.Results = append(state.Results, offers...)
	state.Page = page
	if len(offers) < pageCap {
		state.HasMore = false
	}
}

// State returns a snapshot of the platform's state for the active session
func (m *SessionManager) State(platform string) (domain.SearchState, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	state, exists := m.states[platform]
	if !exists {
		return domain.SearchState{}, false
	}

	snapshot := *state
	snapshot.Results = append([]domain.Offer(nil), state.Results...)
	return snapshot, true
}
