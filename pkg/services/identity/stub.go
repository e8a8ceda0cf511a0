package identity

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/fadedpez/youvibe/internal/types"
)

const tokenPrefix = "token-"

// StubService is a development stand-in for the real identity service.
// A bearer credential of the form "token-<userID>" verifies as <userID>;
// display names can be registered explicitly and fall back to a derived
// label otherwise.
type StubService struct {
	names map[string]string
	mu    sync.RWMutex
}

// NewStubService creates a new stub identity service
func NewStubService() *StubService {
	return &StubService{
		names: make(map[string]string),
	}
}

// VerifyToken resolves a bearer credential to a user id
func (s *StubService) VerifyToken(ctx context.Context, token string) (string, error) {
	if !strings.HasPrefix(token, tokenPrefix) || len(token) == len(tokenPrefix) {
		return "", types.NewStreamError(types.ErrInvalidCredential, "credential not recognized")
	}
	return strings.TrimPrefix(token, tokenPrefix), nil
}

// DisplayName resolves a user id to a public display name
func (s *StubService) DisplayName(ctx context.Context, userID string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if name, exists := s.names[userID]; exists {
		return name, nil
	}
	return fmt.Sprintf("user-%s", userID), nil
}

// SetDisplayName registers an explicit display name for a user
func (s *StubService) SetDisplayName(userID, name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.names[userID] = name
}
