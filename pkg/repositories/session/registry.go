package session

import (
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/fadedpez/youvibe/pkg/entities"
	"github.com/google/uuid"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrBattleNotFound  = errors.New("battle not found")
)

// Registry tracks active live sessions and battle pairings. All session
// state is volatile; an ended session is gone for good.
type Registry struct {
	sessions map[string]*entities.LiveSession
	battles  map[string]*entities.Battle
	order    []string // session ids in start order
	mu       sync.RWMutex
}

// NewRegistry creates a new session registry
func NewRegistry() *Registry {
	return &Registry{
		sessions: make(map[string]*entities.LiveSession),
		battles:  make(map[string]*entities.Battle),
		order:    make([]string, 0),
	}
}

// CreateSession registers a new live session for a host. It always
// succeeds; a host may run several sessions at once.
func (r *Registry) CreateSession(hostID, title string) *entities.LiveSession {
	r.mu.Lock()
	defer r.mu.Unlock()

	session := &entities.LiveSession{
		ID:        uuid.New().String(),
		HostID:    hostID,
		Title:     title,
		StartedAt: time.Now(),
	}

	r.sessions[session.ID] = session
	r.order = append(r.order, session.ID)

	sessionCopy := *session
	return &sessionCopy
}

// GetSession retrieves an active session by id
func (r *Registry) GetSession(sessionID string) (*entities.LiveSession, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	session, exists := r.sessions[sessionID]
	if !exists {
		return nil, ErrSessionNotFound
	}

	sessionCopy := *session
	return &sessionCopy, nil
}

// EndSession removes a session from the active set and returns its final
// state, or ErrSessionNotFound if the id is unknown or already ended.
func (r *Registry) EndSession(sessionID string) (*entities.LiveSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.endSessionLocked(sessionID)
}

func (r *Registry) endSessionLocked(sessionID string) (*entities.LiveSession, error) {
	session, exists := r.sessions[sessionID]
	if !exists {
		return nil, ErrSessionNotFound
	}

	delete(r.sessions, sessionID)
	for i, id := range r.order {
		if id == sessionID {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}

	sessionCopy := *session
	return &sessionCopy, nil
}

// CreateBattle starts a battle and its underlying session in one step.
// The battle owns the session for its lifetime.
func (r *Registry) CreateBattle(hostID, title string) (*entities.Battle, *entities.LiveSession) {
	session := r.CreateSession(hostID, title+" (battle)")

	r.mu.Lock()
	defer r.mu.Unlock()

	battle := &entities.Battle{
		ID:        uuid.New().String(),
		HostID:    hostID,
		SessionID: session.ID,
		Title:     title,
		StartedAt: session.StartedAt,
	}
	r.battles[battle.ID] = battle

	battleCopy := *battle
	return &battleCopy, session
}

// EndBattle removes a battle and ends its underlying session. The final
// session state is returned so callers can announce the end of the stream.
func (r *Registry) EndBattle(battleID string) (*entities.LiveSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	battle, exists := r.battles[battleID]
	if !exists {
		return nil, ErrBattleNotFound
	}

	delete(r.battles, battleID)

	session, err := r.endSessionLocked(battle.SessionID)
	if err != nil {
		// The session was already ended separately; the battle itself is
		// still gone.
		return nil, nil
	}

	return session, nil
}

// UpdateViewerCount applies a delta to a session's viewer count, clamped
// so the result never goes below zero, and returns the new count.
func (r *Registry) UpdateViewerCount(sessionID string, delta int64) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	session, exists := r.sessions[sessionID]
	if !exists {
		return 0, ErrSessionNotFound
	}

	session.ViewerCount += delta
	if session.ViewerCount < 0 {
		session.ViewerCount = 0
	}

	return session.ViewerCount, nil
}

// ListActive returns all active sessions, most recently started first
func (r *Registry) ListActive() []*entities.LiveSession {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*entities.LiveSession, 0, len(r.order))
	for i := len(r.order) - 1; i >= 0; i-- {
		if session, exists := r.sessions[r.order[i]]; exists {
			sessionCopy := *session
			result = append(result, &sessionCopy)
		}
	}
	return result
}

// ListActiveBattles returns all active battles, most recently started first
func (r *Registry) ListActiveBattles() []*entities.Battle {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*entities.Battle, 0, len(r.battles))
	for _, battle := range r.battles {
		battleCopy := *battle
		result = append(result, &battleCopy)
	}

	// Newest first
	sort.Slice(result, func(i, j int) bool {
		return result[i].StartedAt.After(result[j].StartedAt)
	})
	return result
}

// WithSession runs fn while holding the registry lock on the given
// session. A concurrent EndSession cannot interleave between the
// existence check and whatever mutation fn performs, which is what makes
// a donation's validate-then-commit atomic.
func (r *Registry) WithSession(sessionID string, fn func(*entities.LiveSession) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	session, exists := r.sessions[sessionID]
	if !exists {
		return ErrSessionNotFound
	}

	sessionCopy := *session
	return fn(&sessionCopy)
}
