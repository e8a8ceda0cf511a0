package entities

import (
	"time"
)

// Wallet represents a user's currency inventory
type Wallet struct {
	OwnerID     string    // User that owns the wallet
	CoinBalance int64     // Current coin balance, never negative
	CashBalance float64   // Withdrawable cash balance, never negative
	LastUpdated time.Time // When the wallet was last updated
}

// DonationSource identifies where a donation was initiated from
type DonationSource string

const (
	DonationSourceLive   DonationSource = "LIVE"
	DonationSourceBattle DonationSource = "BATTLE"
	DonationSourceWeb    DonationSource = "WEB"
)

// Donation is an immutable record of a single coin transfer to a host.
// Records are append-only and are never mutated or deleted.
type Donation struct {
	ID               string         // Unique identifier
	SessionID        string         // Session the donation was made to
	FromUserID       string         // Donor, empty for anonymous donations
	ToUserID         string         // Session host
	GrossCoins       int64          // Amount the donor paid
	PlatformFeeCoins int64          // Platform's cut, floored
	NetCoins         int64          // Amount credited to the host
	Source           DonationSource // Where the donation came from
	Timestamp        time.Time      // When the donation was processed
	Archived         bool           // Whether the record has been shipped to the archive
}

// Anonymous reports whether the donation has no attributable donor.
func (d *Donation) Anonymous() bool {
	return d.FromUserID == ""
}
