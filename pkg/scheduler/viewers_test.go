package scheduler

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/fadedpez/youvibe/pkg/broadcast"
	"github.com/fadedpez/youvibe/pkg/entities"
	sessionRepo "github.com/fadedpez/youvibe/pkg/repositories/session"
)

type ViewerSimulatorTestSuite struct {
	suite.Suite
	registry *sessionRepo.Registry
	hub      *broadcast.Hub
	sim      *ViewerSimulator
}

func TestViewerSimulatorSuite(t *testing.T) {
	suite.Run(t, new(ViewerSimulatorTestSuite))
}

func (s *ViewerSimulatorTestSuite) SetupTest() {
	s.registry = sessionRepo.NewRegistry()
	s.hub = broadcast.NewHub()
	s.sim = NewViewerSimulator(s.registry, s.hub, DefaultViewerSimInterval)
}

func (s *ViewerSimulatorTestSuite) TestTickPublishesPerSession() {
	// Setup
	first := s.registry.CreateSession("host-1", "First")
	second := s.registry.CreateSession("host-2", "Second")
	viewer := s.hub.Subscribe()

	// Execute
	err := s.sim.Tick(context.Background())

	// Assert
	s.NoError(err)

	seen := make(map[string]bool)
	for i := 0; i < 2; i++ {
		event := <-viewer.Events
		s.Equal(entities.EventViewersUpdate, event.Type)
		s.GreaterOrEqual(event.Viewers.ViewerCount, int64(0), "Viewer count must never go negative")
		seen[event.Viewers.SessionID] = true
	}
	s.True(seen[first.ID])
	s.True(seen[second.ID])
}

func (s *ViewerSimulatorTestSuite) TestTickNeverDrivesCountNegative() {
	// Setup
	session := s.registry.CreateSession("host-1", "Demo")

	// Execute many rounds from zero; the perturbation is signed, so
	// without clamping this would go negative quickly
	for i := 0; i < 50; i++ {
		s.NoError(s.sim.Tick(context.Background()))

		current, err := s.registry.GetSession(session.ID)
		s.NoError(err)
		s.GreaterOrEqual(current.ViewerCount, int64(0))
	}
}

func (s *ViewerSimulatorTestSuite) TestTickWithNoSessions() {
	// Execute
	err := s.sim.Tick(context.Background())

	// Assert
	s.NoError(err)
}
