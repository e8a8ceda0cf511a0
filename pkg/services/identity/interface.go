package identity

import (
	"context"
)

//go:generate mockgen -source=$GOFILE -destination=mock/mock.go -package=mock_identity

// Service is the external identity collaborator. It owns registration,
// login and profiles; this system only verifies credentials and resolves
// public display names.
type Service interface {
	// VerifyToken resolves a bearer credential to a user id
	VerifyToken(ctx context.Context, token string) (string, error)

	// DisplayName resolves a user id to a public display name
	DisplayName(ctx context.Context, userID string) (string, error)
}
