package wallet

import (
	"context"

	"github.com/fadedpez/youvibe/pkg/entities"
)

//go:generate mockgen -source=$GOFILE -destination=mock/mock.go -package=mock_wallet

// Repository defines the interface for wallet data operations
type Repository interface {
	// GetWallet retrieves a wallet by owner ID. A wallet that has never
	// been touched is returned with zero balances rather than an error.
	GetWallet(ctx context.Context, ownerID string) (*entities.Wallet, error)

	// CreditCoins atomically adds coins to a wallet, creating it if it
	// does not exist, and returns the new coin balance. Coins must be
	// non-negative; validation of donation amounts happens upstream.
	CreditCoins(ctx context.Context, ownerID string, coins int64) (int64, error)

	// AddDonation records an immutable donation entry
	AddDonation(ctx context.Context, donation *entities.Donation) error

	// GetDonations retrieves recent donations credited to a host,
	// most recent first
	GetDonations(ctx context.Context, hostID string, limit int) ([]*entities.Donation, error)

	// ListUnarchived retrieves donation records not yet shipped to the
	// archive, oldest first
	ListUnarchived(ctx context.Context, limit int) ([]*entities.Donation, error)

	// MarkArchived flags donation records as shipped to the archive
	MarkArchived(ctx context.Context, donationIDs []string) error
}
