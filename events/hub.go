package events

import (
	"sync"
)

type EventType string

const (
	EventBinChanged         EventType = "bin.changed"
	EventAdjustmentResolved EventType = "adjustment.resolved"
	EventLowStock           EventType = "stock.low"
)

// Event carries a ledger change to subscribers. Payload depends on Type:
// bin and low stock events carry item/location info, adjustment events
// carry the resolved request id and outcome.
type Event struct {
	Type     EventType
	ItemID   uint
	ItemName string
	SKU      string
	Location string
	Quantity int
	Message  string
	EntityID uint
}

// Hub is an in-process broadcast of ledger changes. Components observe
// state instead of polling: the notification writer, the dashboard feed
// and tests all subscribe here.
type Hub struct {
	mu   sync.RWMutex
	subs map[int]chan Event
	next int
}

func NewHub() *Hub {
	return &Hub{subs: make(map[int]chan Event)}
}

// Subscribe registers a buffered channel and returns it with an
// unsubscribe function. The caller owns draining the channel.
func (h *Hub) Subscribe() (<-chan Event, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	id := h.next
	h.next++
	ch := make(chan Event, 32)
	h.subs[id] = ch

	return ch, func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if sub, ok := h.subs[id]; ok {
			delete(h.subs, id)
			close(sub)
		}
	}
}

// Publish delivers the event to every subscriber without blocking.
// A subscriber that has fallen behind loses the event rather than
// stalling the publisher; the ledger itself is the source of truth.
func (h *Hub) Publish(ev Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, ch := range h.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}
