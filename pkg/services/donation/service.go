package donation

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"

	"github.com/fadedpez/youvibe/internal/types"
	"github.com/fadedpez/youvibe/pkg/broadcast"
	"github.com/fadedpez/youvibe/pkg/entities"
	sessionRepo "github.com/fadedpez/youvibe/pkg/repositories/session"
	walletRepo "github.com/fadedpez/youvibe/pkg/repositories/wallet"
	"github.com/fadedpez/youvibe/pkg/services/identity"
	notificationService "github.com/fadedpez/youvibe/pkg/services/notification"
	"github.com/fadedpez/youvibe/pkg/services/payment"
)

// FeeRate is the platform's cut of every donation. The fee is floored,
// so the host's net can be one coin more favorable than an exact split.
const FeeRate = 0.25

// AnonymousLabel is shown to viewers when a donation has no donor
const AnonymousLabel = "Anonymous"

// Receipt is returned to the donor. The fee split is visible here and
// nowhere else; broadcasts only carry the gross amount.
type Receipt struct {
	NetCoins         int64
	PlatformFeeCoins int64
}

// Service orchestrates a single donation: validation, the atomic ledger
// credit, the host notification, and the viewer broadcast.
type Service struct {
	registry      *sessionRepo.Registry
	wallets       walletRepo.Repository
	notifications *notificationService.Service
	hub           *broadcast.Hub
	identity      identity.Service
	payments      payment.Provider
}

// NewService creates a new donation processor
func NewService(
	registry *sessionRepo.Registry,
	wallets walletRepo.Repository,
	notifications *notificationService.Service,
	hub *broadcast.Hub,
	identitySvc identity.Service,
	payments payment.Provider,
) *Service {
	return &Service{
		registry:      registry,
		wallets:       wallets,
		notifications: notifications,
		hub:           hub,
		identity:      identitySvc,
		payments:      payments,
	}
}

// SplitFee computes the platform fee and host net for a gross amount
func SplitFee(grossCoins int64) (fee, net int64) {
	fee = int64(math.Floor(float64(grossCoins) * FeeRate))
	net = grossCoins - fee
	return fee, net
}

// Process runs a donation end to end. donorID may be empty for an
// anonymous donation. The session-existence check and the ledger credit
// happen under the registry's session lock, so a racing end-session can
// never strand a credit on a dead session or drop a donation whose
// session was alive at submission.
func (s *Service) Process(ctx context.Context, sessionID, donorID string, grossCoins int64, source entities.DonationSource) (*Receipt, error) {
	if grossCoins <= 0 {
		return nil, types.NewStreamError(types.ErrInvalidAmount, "donation amount must be a positive number of coins")
	}

	fee, net := SplitFee(grossCoins)
	donation := &entities.Donation{
		SessionID:        sessionID,
		FromUserID:       donorID,
		GrossCoins:       grossCoins,
		PlatformFeeCoins: fee,
		NetCoins:         net,
		Source:           source,
	}

	err := s.registry.WithSession(sessionID, func(session *entities.LiveSession) error {
		donation.ToUserID = session.HostID

		newBalance, err := s.wallets.CreditCoins(ctx, session.HostID, net)
		if err != nil {
			return types.WrapError(types.ErrDatabaseError, "failed to credit host wallet", err)
		}
		log.Printf("[DONATION] Credited %d coins to host %s (balance now %d)", net, session.HostID, newBalance)

		if err := s.wallets.AddDonation(ctx, donation); err != nil {
			// The credit is already committed; the missing record is
			// logged, not rolled back.
			log.Printf("[DONATION] Failed to record donation for session %s: %v", sessionID, err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, sessionRepo.ErrSessionNotFound) {
			return nil, types.NewStreamError(types.ErrSessionNotFound, "session not found or already ended")
		}
		return nil, err
	}

	// Everything past the commit is best-effort.
	s.settle(ctx, donation)

	return &Receipt{NetCoins: net, PlatformFeeCoins: fee}, nil
}

// settle runs the post-commit steps: payment acknowledgement, host
// notification, and the viewer broadcast. Failures are logged and
// swallowed; the money has already moved.
func (s *Service) settle(ctx context.Context, donation *entities.Donation) {
	if err := s.payments.Acknowledge(ctx, donation.ID); err != nil {
		log.Printf("[DONATION] Payment acknowledgement failed for %s: %v", donation.ID, err)
	}

	donorName := s.donorName(ctx, donation)

	text := fmt.Sprintf("%s donated %d coins to your stream", donorName, donation.GrossCoins)
	if err := s.notifications.Notify(ctx, donation.ToUserID, text); err != nil {
		log.Printf("[DONATION] Failed to notify host %s: %v", donation.ToUserID, err)
	}

	s.hub.Publish(entities.NewDonationEvent(donation.SessionID, donorName, donation.GrossCoins))
}

// donorName resolves the public display name for the broadcast. An
// anonymous donation or a failed lookup degrades to a label; name
// resolution never fails a donation.
func (s *Service) donorName(ctx context.Context, donation *entities.Donation) string {
	if donation.Anonymous() {
		return AnonymousLabel
	}

	name, err := s.identity.DisplayName(ctx, donation.FromUserID)
	if err != nil {
		log.Printf("[DONATION] Failed to resolve display name for %s: %v", donation.FromUserID, err)
		return AnonymousLabel
	}
	return name
}
