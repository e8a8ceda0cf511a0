package notification

import (
	"context"
	"sync"
	"time"

	"github.com/fadedpez/youvibe/pkg/entities"
	"github.com/google/uuid"
)

// MemoryRepository holds per-user notification inboxes in memory.
// New entries are prepended so each inbox reads most-recent-first.
type MemoryRepository struct {
	inboxes map[string][]*entities.Notification
	mu      sync.RWMutex
}

// NewMemoryRepository creates a new in-memory notification repository
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		inboxes: make(map[string][]*entities.Notification),
	}
}

// Add prepends a notification to the recipient's inbox
func (r *MemoryRepository) Add(ctx context.Context, notification *entities.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if notification.ID == "" {
		notification.ID = uuid.New().String()
	}
	if notification.CreatedAt.IsZero() {
		notification.CreatedAt = time.Now()
	}

	notificationCopy := *notification
	inbox := r.inboxes[notification.RecipientID]
	r.inboxes[notification.RecipientID] = append([]*entities.Notification{&notificationCopy}, inbox...)

	return nil
}

// List returns a user's inbox, most recent first
func (r *MemoryRepository) List(ctx context.Context, userID string) ([]*entities.Notification, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	inbox, exists := r.inboxes[userID]
	if !exists {
		return make([]*entities.Notification, 0), nil
	}

	result := make([]*entities.Notification, 0, len(inbox))
	for _, n := range inbox {
		notificationCopy := *n
		result = append(result, &notificationCopy)
	}

	return result, nil
}
