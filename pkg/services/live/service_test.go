package live

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/fadedpez/youvibe/internal/types"
	"github.com/fadedpez/youvibe/pkg/broadcast"
	"github.com/fadedpez/youvibe/pkg/entities"
	sessionRepo "github.com/fadedpez/youvibe/pkg/repositories/session"
)

type LiveServiceTestSuite struct {
	suite.Suite
	ctx      context.Context
	registry *sessionRepo.Registry
	hub      *broadcast.Hub
	service  *Service
}

func TestLiveServiceSuite(t *testing.T) {
	suite.Run(t, new(LiveServiceTestSuite))
}

func (s *LiveServiceTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.registry = sessionRepo.NewRegistry()
	s.hub = broadcast.NewHub()
	s.service = NewService(s.registry, s.hub)
}

func (s *LiveServiceTestSuite) TestStartSessionBroadcasts() {
	// Setup
	viewer := s.hub.Subscribe()

	// Execute
	session, err := s.service.StartSession(s.ctx, "host-1", "Demo")

	// Assert
	s.NoError(err)
	s.NotEmpty(session.ID)

	event := <-viewer.Events
	s.Equal(entities.EventLiveStart, event.Type)
	s.Equal(session.ID, event.Live.SessionID)
	s.Equal("host-1", event.Live.HostID)
	s.Equal("Demo", event.Live.Title)
}

func (s *LiveServiceTestSuite) TestEndSessionBroadcasts() {
	// Setup
	session, err := s.service.StartSession(s.ctx, "host-1", "Demo")
	s.NoError(err)
	viewer := s.hub.Subscribe()

	// Execute
	err = s.service.EndSession(s.ctx, session.ID)

	// Assert
	s.NoError(err)

	event := <-viewer.Events
	s.Equal(entities.EventLiveEnd, event.Type)
	s.Equal(session.ID, event.Live.SessionID)

	s.Empty(s.service.Feed(s.ctx))
}

func (s *LiveServiceTestSuite) TestEndSessionUnknownNoBroadcast() {
	// Setup
	viewer := s.hub.Subscribe()

	// Execute
	err := s.service.EndSession(s.ctx, "no-such-session")

	// Assert
	s.True(types.IsStreamError(err, types.ErrSessionNotFound))
	s.Empty(viewer.Events, "No broadcast should be emitted for an unknown session")
}

func (s *LiveServiceTestSuite) TestStartBattleBroadcastsSession() {
	// Setup
	viewer := s.hub.Subscribe()

	// Execute
	battle, session, err := s.service.StartBattle(s.ctx, "host-1", "Face-off")

	// Assert
	s.NoError(err)
	s.Equal(session.ID, battle.SessionID)

	event := <-viewer.Events
	s.Equal(entities.EventLiveStart, event.Type)
	s.Equal(session.ID, event.Live.SessionID)

	s.Len(s.service.ActiveBattles(s.ctx), 1)
}

func (s *LiveServiceTestSuite) TestEndBattleEndsSessionAndBroadcasts() {
	// Setup
	battle, session, err := s.service.StartBattle(s.ctx, "host-1", "Face-off")
	s.NoError(err)
	viewer := s.hub.Subscribe()

	// Execute
	err = s.service.EndBattle(s.ctx, battle.ID)

	// Assert
	s.NoError(err)

	event := <-viewer.Events
	s.Equal(entities.EventLiveEnd, event.Type)
	s.Equal(session.ID, event.Live.SessionID)

	s.Empty(s.service.ActiveBattles(s.ctx))
	s.Empty(s.service.Feed(s.ctx))
}

func (s *LiveServiceTestSuite) TestEndBattleUnknown() {
	// Execute
	err := s.service.EndBattle(s.ctx, "no-such-battle")

	// Assert
	s.True(types.IsStreamError(err, types.ErrBattleNotFound))
}

func (s *LiveServiceTestSuite) TestFeedNewestFirst() {
	// Setup
	first, err := s.service.StartSession(s.ctx, "host-1", "First")
	s.NoError(err)
	second, err := s.service.StartSession(s.ctx, "host-2", "Second")
	s.NoError(err)

	// Execute
	feed := s.service.Feed(s.ctx)

	// Assert
	s.Len(feed, 2)
	s.Equal(second.ID, feed[0].ID)
	s.Equal(first.ID, feed[1].ID)
}
