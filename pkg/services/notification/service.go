package notification

import (
	"context"
	"fmt"

	"github.com/fadedpez/youvibe/pkg/entities"
	notificationRepo "github.com/fadedpez/youvibe/pkg/repositories/notification"
)

// Service handles notification business logic
type Service struct {
	repo *notificationRepo.MemoryRepository
}

// NewService creates a new notification service
func NewService(repo *notificationRepo.MemoryRepository) *Service {
	return &Service{
		repo: repo,
	}
}

// Notify appends a notification to a user's inbox
func (s *Service) Notify(ctx context.Context, userID, text string) error {
	n := &entities.Notification{
		RecipientID: userID,
		Text:        text,
	}

	if err := s.repo.Add(ctx, n); err != nil {
		return fmt.Errorf("error adding notification: %w", err)
	}
	return nil
}

// List returns a user's inbox, most recent first
func (s *Service) List(ctx context.Context, userID string) ([]*entities.Notification, error) {
	return s.repo.List(ctx, userID)
}
