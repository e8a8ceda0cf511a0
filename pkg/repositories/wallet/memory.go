package wallet

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/fadedpez/youvibe/pkg/entities"
	"github.com/google/uuid"
)

var (
	ErrNegativeCoins    = errors.New("coin amount cannot be negative")
	ErrDonationNotFound = errors.New("donation not found")
)

// MemoryRepository implements Repository using in-memory storage
type MemoryRepository struct {
	wallets   map[string]*entities.Wallet
	donations []*entities.Donation
	mu        sync.RWMutex
}

// NewMemoryRepository creates a new in-memory wallet repository
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		wallets:   make(map[string]*entities.Wallet),
		donations: make([]*entities.Donation, 0),
	}
}

// GetWallet retrieves a wallet by owner ID, defaulting to zero balances
func (r *MemoryRepository) GetWallet(ctx context.Context, ownerID string) (*entities.Wallet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	wallet, exists := r.wallets[ownerID]
	if !exists {
		return &entities.Wallet{OwnerID: ownerID}, nil
	}

	// Return a copy to prevent concurrent modification
	walletCopy := *wallet
	return &walletCopy, nil
}

// CreditCoins atomically adds coins to a wallet, creating it lazily
func (r *MemoryRepository) CreditCoins(ctx context.Context, ownerID string, coins int64) (int64, error) {
	if coins < 0 {
		return 0, ErrNegativeCoins
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	wallet, exists := r.wallets[ownerID]
	if !exists {
		wallet = &entities.Wallet{OwnerID: ownerID}
		r.wallets[ownerID] = wallet
	}

	wallet.CoinBalance += coins
	wallet.LastUpdated = time.Now()

	return wallet.CoinBalance, nil
}

// AddDonation records an immutable donation entry
func (r *MemoryRepository) AddDonation(ctx context.Context, donation *entities.Donation) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Generate a UUID if not provided
	if donation.ID == "" {
		donation.ID = uuid.New().String()
	}

	// Set timestamp if not provided
	if donation.Timestamp.IsZero() {
		donation.Timestamp = time.Now()
	}

	// Make a copy to prevent concurrent modification
	donationCopy := *donation
	r.donations = append(r.donations, &donationCopy)

	return nil
}

// GetDonations retrieves recent donations credited to a host, newest first
func (r *MemoryRepository) GetDonations(ctx context.Context, hostID string, limit int) ([]*entities.Donation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*entities.Donation, 0, limit)
	for i := len(r.donations) - 1; i >= 0 && len(result) < limit; i-- {
		if r.donations[i].ToUserID == hostID {
			donationCopy := *r.donations[i]
			result = append(result, &donationCopy)
		}
	}

	return result, nil
}

// ListUnarchived retrieves donation records not yet archived, oldest first
func (r *MemoryRepository) ListUnarchived(ctx context.Context, limit int) ([]*entities.Donation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*entities.Donation, 0, limit)
	for _, d := range r.donations {
		if len(result) >= limit {
			break
		}
		if !d.Archived {
			donationCopy := *d
			result = append(result, &donationCopy)
		}
	}

	return result, nil
}

// MarkArchived flags donation records as shipped to the archive
func (r *MemoryRepository) MarkArchived(ctx context.Context, donationIDs []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	ids := make(map[string]bool, len(donationIDs))
	for _, id := range donationIDs {
		ids[id] = true
	}

	for _, d := range r.donations {
		if ids[d.ID] {
			d.Archived = true
		}
	}

	return nil
}
