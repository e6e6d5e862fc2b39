package stream

import (
	"sync"

	"github.com/swiftex-io/quilex/internal/domain"
	"github.com/swiftex-io/quilex/internal/port"
)

// Event is one message on the stream.
type Event struct {
	Type string      `json:"type"` // "tick" | "trade" | "notification"
	Data interface{} `json:"data"`
}

type subscription struct {
	ch chan Event
}

// C returns the subscriber's event channel.
func (s *subscription) C() <-chan Event { return s.ch }

// Hub fans events out to websocket subscribers. Slow subscribers drop
// events rather than block the producer.
type Hub struct {
	mu   sync.RWMutex
	subs map[*subscription]struct{}
}

var _ port.NotificationSink = (*Hub)(nil)

func NewHub() *Hub {
	return &Hub{subs: make(map[*subscription]struct{})}
}

func (h *Hub) Subscribe(buffer int) *subscription {
	sub := &subscription{ch: make(chan Event, buffer)}
	h.mu.Lock()
	h.subs[sub] = struct{}{}
	h.mu.Unlock()
	return sub
}

func (h *Hub) Unsubscribe(sub *subscription) {
	h.mu.Lock()
	delete(h.subs, sub)
	h.mu.Unlock()
	close(sub.ch)
}

func (h *Hub) Broadcast(ev Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for sub := range h.subs {
		select {
		case sub.ch <- ev:
		default:
		}
	}
}

// BroadcastTicks publishes a price batch.
func (h *Hub) BroadcastTicks(ticks map[string]float64) {
	h.Broadcast(Event{Type: "tick", Data: ticks})
}

// Push lets the hub double as a notification sink so lifecycle events
// reach stream subscribers too.
func (h *Hub) Push(title, message string, level domain.NotifyLevel) {
	h.Broadcast(Event{Type: "notification", Data: map[string]interface{}{
		"title":   title,
		"message": message,
		"level":   level,
	}})
}
