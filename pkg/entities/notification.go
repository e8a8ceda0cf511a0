package entities

import (
	"time"
)

// Notification is a single entry in a user's inbox
type Notification struct {
	ID          string    // Unique identifier
	RecipientID string    // User the notification is for
	Text        string    // Human-readable message
	CreatedAt   time.Time // When the notification was generated
}
