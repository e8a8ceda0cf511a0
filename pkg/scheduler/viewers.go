package scheduler

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"github.com/fadedpez/youvibe/pkg/broadcast"
	"github.com/fadedpez/youvibe/pkg/entities"
	sessionRepo "github.com/fadedpez/youvibe/pkg/repositories/session"
)

// DefaultViewerSimInterval matches the cadence of the original viewer
// ticker.
const DefaultViewerSimInterval = 4 * time.Second

// ViewerSimulator perturbs each active session's viewer count on a fixed
// interval and republishes the result. It is a stand-in for real presence
// tracking; a production deployment should derive viewer counts from
// actual open connections per session instead of a random walk.
type ViewerSimulator struct {
	scheduler *Scheduler
	registry  *sessionRepo.Registry
	hub       *broadcast.Hub
	interval  time.Duration
}

// NewViewerSimulator creates a new viewer-count simulator
func NewViewerSimulator(registry *sessionRepo.Registry, hub *broadcast.Hub, interval time.Duration) *ViewerSimulator {
	if interval <= 0 {
		interval = DefaultViewerSimInterval
	}

	sim := &ViewerSimulator{
		scheduler: NewScheduler(),
		registry:  registry,
		hub:       hub,
		interval:  interval,
	}
	sim.scheduler.AddTask("viewer_simulation", interval, sim.Tick)
	return sim
}

// Start begins the periodic simulation
func (v *ViewerSimulator) Start(ctx context.Context) {
	v.scheduler.Start(ctx)
}

// Stop cancels the simulation
func (v *ViewerSimulator) Stop() {
	v.scheduler.Stop()
}

// Tick applies one perturbation round to every active session and
// publishes the resulting counts. A session ending mid-round is skipped.
func (v *ViewerSimulator) Tick(ctx context.Context) error {
	for _, session := range v.registry.ListActive() {
		delta := rand.Int63n(5) - 2 // [-2, +2]

		count, err := v.registry.UpdateViewerCount(session.ID, delta)
		if err != nil {
			if errors.Is(err, sessionRepo.ErrSessionNotFound) {
				continue
			}
			return err
		}

		v.hub.Publish(entities.NewViewersUpdateEvent(session.ID, count))
	}
	return nil
}
