package session

import (
	"testing"

	"github.com/fadedpez/youvibe/pkg/entities"
	"github.com/stretchr/testify/suite"
)

type RegistryTestSuite struct {
	suite.Suite
	registry *Registry
}

func TestRegistrySuite(t *testing.T) {
	suite.Run(t, new(RegistryTestSuite))
}

func (s *RegistryTestSuite) SetupTest() {
	s.registry = NewRegistry()
}

func (s *RegistryTestSuite) TestCreateSession() {
	// Execute
	session := s.registry.CreateSession("host-1", "Demo")

	// Assert
	s.NotEmpty(session.ID)
	s.Equal("host-1", session.HostID)
	s.Equal("Demo", session.Title)
	s.Equal(int64(0), session.ViewerCount, "New session should have zero viewers")
	s.False(session.StartedAt.IsZero())
}

func (s *RegistryTestSuite) TestHostMayRunMultipleSessions() {
	// Execute
	first := s.registry.CreateSession("host-1", "Morning show")
	second := s.registry.CreateSession("host-1", "Evening show")

	// Assert
	s.NotEqual(first.ID, second.ID)
	s.Len(s.registry.ListActive(), 2)
}

func (s *RegistryTestSuite) TestEndSession() {
	// Setup
	session := s.registry.CreateSession("host-1", "Demo")

	// Execute
	ended, err := s.registry.EndSession(session.ID)

	// Assert
	s.NoError(err)
	s.Equal(session.ID, ended.ID)
	s.Empty(s.registry.ListActive())

	_, err = s.registry.GetSession(session.ID)
	s.ErrorIs(err, ErrSessionNotFound)
}

func (s *RegistryTestSuite) TestEndSessionUnknown() {
	// Execute
	_, err := s.registry.EndSession("no-such-session")

	// Assert
	s.ErrorIs(err, ErrSessionNotFound)
}

func (s *RegistryTestSuite) TestListActiveNewestFirst() {
	// Setup
	first := s.registry.CreateSession("host-1", "First")
	second := s.registry.CreateSession("host-2", "Second")
	third := s.registry.CreateSession("host-3", "Third")

	// Execute
	active := s.registry.ListActive()

	// Assert
	s.Len(active, 3)
	s.Equal(third.ID, active[0].ID, "Most recently started session should come first")
	s.Equal(second.ID, active[1].ID)
	s.Equal(first.ID, active[2].ID)
}

func (s *RegistryTestSuite) TestUpdateViewerCountClampsAtZero() {
	// Setup
	session := s.registry.CreateSession("host-1", "Demo")
	_, err := s.registry.UpdateViewerCount(session.ID, 3)
	s.NoError(err)

	// Execute
	count, err := s.registry.UpdateViewerCount(session.ID, -100)

	// Assert
	s.NoError(err)
	s.Equal(int64(0), count, "Viewer count should clamp at zero, never go negative")
}

func (s *RegistryTestSuite) TestUpdateViewerCountSequence() {
	// Setup
	session := s.registry.CreateSession("host-1", "Demo")

	testCases := []struct {
		delta    int64
		expected int64
	}{
		{5, 5},
		{-2, 3},
		{-10, 0},
		{2, 2},
	}

	for _, tc := range testCases {
		// Execute
		count, err := s.registry.UpdateViewerCount(session.ID, tc.delta)

		// Assert
		s.NoError(err)
		s.Equal(tc.expected, count)
	}
}

func (s *RegistryTestSuite) TestUpdateViewerCountUnknownSession() {
	// Execute
	_, err := s.registry.UpdateViewerCount("no-such-session", 1)

	// Assert
	s.ErrorIs(err, ErrSessionNotFound)
}

func (s *RegistryTestSuite) TestCreateBattle() {
	// Execute
	battle, session := s.registry.CreateBattle("host-1", "Friday face-off")

	// Assert
	s.NotEmpty(battle.ID)
	s.Equal(session.ID, battle.SessionID, "Battle should own its underlying session")
	s.Equal("Friday face-off", battle.Title)
	s.Equal("Friday face-off (battle)", session.Title)

	s.Len(s.registry.ListActiveBattles(), 1)
	s.Len(s.registry.ListActive(), 1)
}

func (s *RegistryTestSuite) TestEndBattleEndsSession() {
	// Setup
	battle, session := s.registry.CreateBattle("host-1", "Friday face-off")

	// Execute
	ended, err := s.registry.EndBattle(battle.ID)

	// Assert
	s.NoError(err)
	s.Equal(session.ID, ended.ID, "Ending a battle should end its underlying session")
	s.Empty(s.registry.ListActiveBattles())
	s.Empty(s.registry.ListActive())
}

func (s *RegistryTestSuite) TestEndBattleUnknown() {
	// Execute
	_, err := s.registry.EndBattle("no-such-battle")

	// Assert
	s.ErrorIs(err, ErrBattleNotFound)
}

func (s *RegistryTestSuite) TestEndBattleSessionAlreadyEnded() {
	// Setup
	battle, session := s.registry.CreateBattle("host-1", "Friday face-off")
	_, err := s.registry.EndSession(session.ID)
	s.NoError(err)

	// Execute
	ended, err := s.registry.EndBattle(battle.ID)

	// Assert
	s.NoError(err)
	s.Nil(ended, "No session to announce when it was ended separately")
	s.Empty(s.registry.ListActiveBattles())
}

func (s *RegistryTestSuite) TestWithSessionUnknown() {
	// Execute
	err := s.registry.WithSession("no-such-session", func(sess *entities.LiveSession) error {
		s.Fail("fn should not run for an unknown session")
		return nil
	})

	// Assert
	s.ErrorIs(err, ErrSessionNotFound)
}

func (s *RegistryTestSuite) TestWithSessionHoldsEntry() {
	// Setup
	session := s.registry.CreateSession("host-1", "Demo")

	var seen *entities.LiveSession

	// Execute
	err := s.registry.WithSession(session.ID, func(sess *entities.LiveSession) error {
		seen = sess
		return nil
	})

	// Assert
	s.NoError(err)
	s.Equal(session.ID, seen.ID)
	s.Equal("host-1", seen.HostID)
}
