package entities

import (
	"time"
)

// LiveSession is an active live-streaming broadcast owned by a host.
// A host may run several sessions at once.
type LiveSession struct {
	ID          string    // Unique identifier
	HostID      string    // User hosting the stream
	Title       string    // Display title
	StartedAt   time.Time // When the session went live
	ViewerCount int64     // Current viewer count, never negative
}

// Battle is a paired-session format layered over a normal live session.
// A battle owns exactly one underlying session for its lifetime.
type Battle struct {
	ID        string    // Unique identifier
	HostID    string    // User hosting the battle
	SessionID string    // Underlying live session
	Title     string    // Display title
	StartedAt time.Time // When the battle started
}
