package entities

import (
	"time"
)

// EventType tags a broadcast event
type EventType string

const (
	EventLiveStart     EventType = "LIVE_START"
	EventLiveEnd       EventType = "LIVE_END"
	EventDonation      EventType = "DONATION"
	EventViewersUpdate EventType = "VIEWERS_UPDATE"
)

// BroadcastEvent is a tagged event pushed to every connected real-time
// client. Events are fire-and-forget and never persisted; exactly one of
// the payload fields is set, matching the Type tag.
type BroadcastEvent struct {
	Type     EventType             `json:"type"`
	Live     *LivePayload          `json:"live,omitempty"`
	Donation *DonationPayload      `json:"donation,omitempty"`
	Viewers  *ViewersUpdatePayload `json:"viewers,omitempty"`
}

// LivePayload accompanies LIVE_START and LIVE_END events
type LivePayload struct {
	SessionID string    `json:"sessionId"`
	HostID    string    `json:"hostId"`
	Title     string    `json:"title,omitempty"`
	StartedAt time.Time `json:"startedAt,omitempty"`
}

// DonationPayload accompanies DONATION events. Only the gross amount is
// broadcast; the fee split is returned to the donor alone.
type DonationPayload struct {
	SessionID   string `json:"sessionId"`
	DonorName   string `json:"donorName"`
	AmountCoins int64  `json:"amountCoins"`
}

// ViewersUpdatePayload accompanies VIEWERS_UPDATE events
type ViewersUpdatePayload struct {
	SessionID   string `json:"sessionId"`
	ViewerCount int64  `json:"viewerCount"`
}

// NewLiveStartEvent builds the event announcing a session going live.
func NewLiveStartEvent(s *LiveSession) BroadcastEvent {
	return BroadcastEvent{
		Type: EventLiveStart,
		Live: &LivePayload{
			SessionID: s.ID,
			HostID:    s.HostID,
			Title:     s.Title,
			StartedAt: s.StartedAt,
		},
	}
}

// NewLiveEndEvent builds the event announcing a session ending.
func NewLiveEndEvent(s *LiveSession) BroadcastEvent {
	return BroadcastEvent{
		Type: EventLiveEnd,
		Live: &LivePayload{
			SessionID: s.ID,
			HostID:    s.HostID,
		},
	}
}

// NewDonationEvent builds the event announcing a donation to viewers.
func NewDonationEvent(sessionID, donorName string, grossCoins int64) BroadcastEvent {
	return BroadcastEvent{
		Type: EventDonation,
		Donation: &DonationPayload{
			SessionID:   sessionID,
			DonorName:   donorName,
			AmountCoins: grossCoins,
		},
	}
}

// NewViewersUpdateEvent builds the event carrying a fresh viewer count.
func NewViewersUpdateEvent(sessionID string, count int64) BroadcastEvent {
	return BroadcastEvent{
		Type: EventViewersUpdate,
		Viewers: &ViewersUpdatePayload{
			SessionID:   sessionID,
			ViewerCount: count,
		},
	}
}
