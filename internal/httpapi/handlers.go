package httpapi

import (
	"encoding/json"
	"math"
	"net/http"
	"strings"

	"github.com/fadedpez/youvibe/internal/types"
	"github.com/fadedpez/youvibe/pkg/entities"
)

type startSessionRequest struct {
	HostID string `json:"hostId"`
	Title  string `json:"title"`
}

type endSessionRequest struct {
	SessionID string `json:"sessionId"`
}

type donateRequest struct {
	SessionID  string  `json:"sessionId"`
	DonorID    string  `json:"donorId,omitempty"`
	GrossCoins float64 `json:"grossCoins"`
	Source     string  `json:"source,omitempty"`
}

type startBattleRequest struct {
	HostID string `json:"hostId"`
	Title  string `json:"title"`
}

type endBattleRequest struct {
	BattleID string `json:"battleId"`
}

func (s *Server) startSession(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var req startSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, types.NewStreamError(types.ErrInvalidArgument, "invalid request body"))
		return
	}
	if req.HostID == "" || req.Title == "" {
		s.writeError(w, types.NewStreamError(types.ErrInvalidArgument, "hostId and title are required"))
		return
	}

	session, err := s.live.StartSession(r.Context(), req.HostID, req.Title)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusCreated, map[string]string{"sessionId": session.ID})
}

func (s *Server) endSession(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var req endSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, types.NewStreamError(types.ErrInvalidArgument, "invalid request body"))
		return
	}

	if err := s.live.EndSession(r.Context(), req.SessionID); err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (s *Server) donate(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var req donateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, types.NewStreamError(types.ErrInvalidArgument, "invalid request body"))
		return
	}

	// A fractional coin amount is a caller error, rejected before any
	// mutation.
	if req.GrossCoins != math.Trunc(req.GrossCoins) {
		s.writeError(w, types.NewStreamError(types.ErrInvalidAmount, "donation amount must be a whole number of coins"))
		return
	}

	// A bearer credential, when present, identifies the donor
	// authoritatively; otherwise the body's donorId (or nothing, for an
	// anonymous donation) is used.
	donorID := req.DonorID
	if token := bearerToken(r); token != "" {
		verified, err := s.identity.VerifyToken(r.Context(), token)
		if err != nil {
			s.writeError(w, err)
			return
		}
		donorID = verified
	}

	source := entities.DonationSource(req.Source)
	if source == "" {
		source = entities.DonationSourceLive
	}

	receipt, err := s.donations.Process(r.Context(), req.SessionID, donorID, int64(req.GrossCoins), source)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]int64{
		"netCoins":         receipt.NetCoins,
		"platformFeeCoins": receipt.PlatformFeeCoins,
	})
}

func (s *Server) feed(w http.ResponseWriter, r *http.Request) {
	sessions := s.live.Feed(r.Context())

	summaries := make([]map[string]interface{}, 0, len(sessions))
	for _, session := range sessions {
		summaries = append(summaries, map[string]interface{}{
			"sessionId":   session.ID,
			"hostId":      session.HostID,
			"title":       session.Title,
			"startedAt":   session.StartedAt,
			"viewerCount": session.ViewerCount,
		})
	}

	s.writeJSON(w, http.StatusOK, summaries)
}

func (s *Server) startBattle(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var req startBattleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, types.NewStreamError(types.ErrInvalidArgument, "invalid request body"))
		return
	}
	if req.HostID == "" || req.Title == "" {
		s.writeError(w, types.NewStreamError(types.ErrInvalidArgument, "hostId and title are required"))
		return
	}

	battle, session, err := s.live.StartBattle(r.Context(), req.HostID, req.Title)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusCreated, map[string]string{
		"battleId":  battle.ID,
		"sessionId": session.ID,
	})
}

func (s *Server) endBattle(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var req endBattleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, types.NewStreamError(types.ErrInvalidArgument, "invalid request body"))
		return
	}

	if err := s.live.EndBattle(r.Context(), req.BattleID); err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (s *Server) activeBattles(w http.ResponseWriter, r *http.Request) {
	battles := s.live.ActiveBattles(r.Context())

	summaries := make([]map[string]interface{}, 0, len(battles))
	for _, battle := range battles {
		summaries = append(summaries, map[string]interface{}{
			"battleId":  battle.ID,
			"hostId":    battle.HostID,
			"sessionId": battle.SessionID,
			"title":     battle.Title,
			"startedAt": battle.StartedAt,
		})
	}

	s.writeJSON(w, http.StatusOK, summaries)
}

func (s *Server) walletBalance(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		s.writeError(w, types.NewStreamError(types.ErrInvalidArgument, "userId is required"))
		return
	}

	wallet, err := s.wallets.GetWallet(r.Context(), userID)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"coinBalance": wallet.CoinBalance,
		"cashBalance": wallet.CashBalance,
	})
}

func (s *Server) listNotifications(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		s.writeError(w, types.NewStreamError(types.ErrInvalidArgument, "userId is required"))
		return
	}

	notifications, err := s.notifications.List(r.Context(), userID)
	if err != nil {
		s.writeError(w, err)
		return
	}

	items := make([]map[string]interface{}, 0, len(notifications))
	for _, n := range notifications {
		items = append(items, map[string]interface{}{
			"notificationId": n.ID,
			"text":           n.Text,
			"createdAt":      n.CreatedAt,
		})
	}

	s.writeJSON(w, http.StatusOK, items)
}

// bearerToken extracts a bearer credential from the Authorization header
func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.Error("Failed to encode response: %v", err)
	}
}

// writeError maps a StreamError to its HTTP status. Unexpected faults are
// logged in full and reported with a generic message.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	code := types.ErrInternalError
	message := "internal server error"

	var streamErr *types.StreamError
	if types.As(err, &streamErr) {
		code = streamErr.Code
		message = streamErr.Message
	}

	status := http.StatusInternalServerError
	switch code {
	case types.ErrInvalidAmount, types.ErrInvalidArgument:
		status = http.StatusBadRequest
	case types.ErrSessionNotFound, types.ErrBattleNotFound, types.ErrUserNotFound:
		status = http.StatusNotFound
	case types.ErrUnauthorized, types.ErrInvalidCredential:
		status = http.StatusUnauthorized
	}

	if status == http.StatusInternalServerError {
		s.logger.LogError(err)
		message = "internal server error"
	}

	s.writeJSON(w, status, map[string]interface{}{
		"error": map[string]string{
			"code":    string(code),
			"message": message,
		},
	})
}
