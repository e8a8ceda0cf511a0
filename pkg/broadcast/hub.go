package broadcast

import (
	"log"
	"sync"

	"github.com/fadedpez/youvibe/pkg/entities"
)

const defaultBufferSize = 128

// Subscriber is a handle to one connected real-time client. Events arrive
// on Events in publish order until the subscriber is removed.
type Subscriber struct {
	id     int
	Events chan entities.BroadcastEvent
}

// Hub fans broadcast events out to every subscribed client. Delivery is
// at-most-once and best-effort: a full or gone client drops that delivery
// without affecting other clients or the publisher.
type Hub struct {
	mu         sync.Mutex
	subs       map[int]*Subscriber
	nextSubID  int
	dropCounts uint64
	closed     bool
}

// NewHub creates a new broadcast hub
func NewHub() *Hub {
	return &Hub{
		subs: make(map[int]*Subscriber),
	}
}

// Subscribe registers a new client and returns its handle
func (h *Hub) Subscribe() *Subscriber {
	h.mu.Lock()
	defer h.mu.Unlock()

	sub := &Subscriber{
		id:     h.nextSubID,
		Events: make(chan entities.BroadcastEvent, defaultBufferSize),
	}
	h.nextSubID++

	if h.closed {
		close(sub.Events)
		return sub
	}

	h.subs[sub.id] = sub
	return sub
}

// Unsubscribe removes a client. Its Events channel is closed; pending
// events are still readable until drained.
func (h *Hub) Unsubscribe(sub *Subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, exists := h.subs[sub.id]; !exists {
		return
	}
	delete(h.subs, sub.id)
	close(sub.Events)
}

// Publish delivers an event to every current subscriber. Publishes are
// serialized, so every subscriber observes events in the same total order.
func (h *Hub) Publish(event entities.BroadcastEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return
	}

	for _, sub := range h.subs {
		select {
		case sub.Events <- event:
		default:
			h.recordDrop()
		}
	}
}

// SubscriberCount returns the number of currently connected clients
func (h *Hub) SubscriberCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

// Close shuts the hub down and disconnects all subscribers
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return
	}
	h.closed = true

	for id, sub := range h.subs {
		delete(h.subs, id)
		close(sub.Events)
	}
}

func (h *Hub) recordDrop() {
	h.dropCounts++
	if h.dropCounts%100 == 1 {
		log.Printf("[BROADCAST] dropping events for slow subscriber (total drops: %d)", h.dropCounts)
	}
}
