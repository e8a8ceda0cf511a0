package payment

import (
	"context"
	"log"
)

// Provider is the external payment collaborator. Donations are settled in
// platform coins, so the provider only acknowledges that a donation
// happened; actual money movement lives outside this system.
type Provider interface {
	Acknowledge(ctx context.Context, donationID string) error
}

// StubProvider acknowledges every donation without doing anything
type StubProvider struct{}

// NewStubProvider creates a new stub payment provider
func NewStubProvider() *StubProvider {
	return &StubProvider{}
}

// Acknowledge logs the donation and reports success
func (p *StubProvider) Acknowledge(ctx context.Context, donationID string) error {
	log.Printf("[PAYMENT] Acknowledged donation %s", donationID)
	return nil
}
