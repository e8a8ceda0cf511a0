package live

import (
	"context"
	"errors"
	"log"

	"github.com/fadedpez/youvibe/internal/types"
	"github.com/fadedpez/youvibe/pkg/broadcast"
	"github.com/fadedpez/youvibe/pkg/entities"
	sessionRepo "github.com/fadedpez/youvibe/pkg/repositories/session"
)

// Service handles live session and battle lifecycle. Every state change
// is announced on the broadcast hub; announcements are best-effort and
// never fail the operation.
type Service struct {
	registry *sessionRepo.Registry
	hub      *broadcast.Hub
}

// NewService creates a new live session service
func NewService(registry *sessionRepo.Registry, hub *broadcast.Hub) *Service {
	return &Service{
		registry: registry,
		hub:      hub,
	}
}

// StartSession registers a new live session and announces it
func (s *Service) StartSession(ctx context.Context, hostID, title string) (*entities.LiveSession, error) {
	session := s.registry.CreateSession(hostID, title)

	log.Printf("[LIVE] Session %s started by host %s: %q", session.ID, hostID, title)
	s.hub.Publish(entities.NewLiveStartEvent(session))

	return session, nil
}

// EndSession removes a session from the active set and announces the end.
// An unknown session id is reported without any broadcast.
func (s *Service) EndSession(ctx context.Context, sessionID string) error {
	session, err := s.registry.EndSession(sessionID)
	if err != nil {
		if errors.Is(err, sessionRepo.ErrSessionNotFound) {
			return types.NewStreamError(types.ErrSessionNotFound, "session not found")
		}
		return types.WrapError(types.ErrInternalError, "failed to end session", err)
	}

	log.Printf("[LIVE] Session %s ended", sessionID)
	s.hub.Publish(entities.NewLiveEndEvent(session))

	return nil
}

// StartBattle starts a battle and its underlying session, announcing the
// session going live.
func (s *Service) StartBattle(ctx context.Context, hostID, title string) (*entities.Battle, *entities.LiveSession, error) {
	battle, session := s.registry.CreateBattle(hostID, title)

	log.Printf("[LIVE] Battle %s started by host %s on session %s", battle.ID, hostID, session.ID)
	s.hub.Publish(entities.NewLiveStartEvent(session))

	return battle, session, nil
}

// EndBattle ends a battle together with its underlying session
func (s *Service) EndBattle(ctx context.Context, battleID string) error {
	session, err := s.registry.EndBattle(battleID)
	if err != nil {
		if errors.Is(err, sessionRepo.ErrBattleNotFound) {
			return types.NewStreamError(types.ErrBattleNotFound, "battle not found")
		}
		return types.WrapError(types.ErrInternalError, "failed to end battle", err)
	}

	log.Printf("[LIVE] Battle %s ended", battleID)
	if session != nil {
		s.hub.Publish(entities.NewLiveEndEvent(session))
	}

	return nil
}

// Feed returns all active sessions, most recently started first
func (s *Service) Feed(ctx context.Context) []*entities.LiveSession {
	return s.registry.ListActive()
}

// ActiveBattles returns all active battles, most recently started first
func (s *Service) ActiveBattles(ctx context.Context) []*entities.Battle {
	return s.registry.ListActiveBattles()
}
