package httpapi

import (
	"net/http"
)

// handleWS upgrades the connection and streams every broadcast event to
// the client until it disconnects. All clients receive all events; there
// is no per-session subscription filtering.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("Failed to upgrade websocket: %v", err)
		return
	}

	sub := s.hub.Subscribe()
	s.logger.Info("Realtime client connected (%d active)", s.hub.SubscriberCount())

	// Writer: drain the subscription onto the wire. A write failure means
	// the client is gone; nobody else is affected.
	go func() {
		defer conn.Close()
		for event := range sub.Events {
			if err := conn.WriteJSON(event); err != nil {
				s.hub.Unsubscribe(sub)
				return
			}
		}
	}()

	// Reader: the client sends nothing meaningful, but reading is how we
	// notice it hanging up.
	go func() {
		defer func() {
			s.hub.Unsubscribe(sub)
			conn.Close()
			s.logger.Info("Realtime client disconnected (%d active)", s.hub.SubscriberCount())
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
