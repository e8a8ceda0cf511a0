package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"

	"github.com/fadedpez/youvibe/internal/logging"
	"github.com/fadedpez/youvibe/pkg/broadcast"
	walletRepo "github.com/fadedpez/youvibe/pkg/repositories/wallet"
	"github.com/fadedpez/youvibe/pkg/services/donation"
	"github.com/fadedpez/youvibe/pkg/services/identity"
	"github.com/fadedpez/youvibe/pkg/services/live"
	notificationService "github.com/fadedpez/youvibe/pkg/services/notification"
)

// Server exposes the live/donation engine over HTTP and WebSocket
type Server struct {
	live          *live.Service
	donations     *donation.Service
	wallets       walletRepo.Repository
	notifications *notificationService.Service
	identity      identity.Service
	hub           *broadcast.Hub
	logger        *logging.Logger
	upgrader      websocket.Upgrader

	httpSrv *http.Server
}

// NewServer creates a new API server
func NewServer(
	liveSvc *live.Service,
	donations *donation.Service,
	wallets walletRepo.Repository,
	notifications *notificationService.Service,
	identitySvc identity.Service,
	hub *broadcast.Hub,
	logger *logging.Logger,
) *Server {
	return &Server{
		live:          liveSvc,
		donations:     donations,
		wallets:       wallets,
		notifications: notifications,
		identity:      identitySvc,
		hub:           hub,
		logger:        logger,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true // Overlay widgets connect from arbitrary origins
			},
		},
	}
}

// Router builds the chi router with all routes registered
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Post("/live/start", s.startSession)
	r.Post("/live/end", s.endSession)
	r.Post("/live/donate", s.donate)
	r.Get("/live/feed", s.feed)

	r.Post("/battles/start", s.startBattle)
	r.Post("/battles/end", s.endBattle)
	r.Get("/battles/active", s.activeBattles)

	r.Get("/wallet/balance", s.walletBalance)
	r.Get("/notifications", s.listNotifications)

	r.Get("/ws", s.handleWS)

	return r
}

// Start begins serving and blocks until the server stops
func (s *Server) Start(addr string) error {
	s.httpSrv = &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	s.logger.Info("API server listening on %s", addr)
	return s.httpSrv.ListenAndServe()
}

// Shutdown gracefully stops the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpSrv == nil {
		return nil
	}
	return s.httpSrv.Shutdown(ctx)
}
