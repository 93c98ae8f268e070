// Package events provides a small typed in-process event bus.
// It replaces ad-hoc cross-component notifications (auth state changes,
// session expiry, history refreshes) with an explicit subscription API so
// listeners can be asserted on in tests.
package events

import (
	"log/slog"
	"sync"
)

// Type identifies a category of event.
type Type string

const (
	// AuthChanged fires after login, logout, or account deletion.
	AuthChanged Type = "auth.changed"
	// Unauthorized fires once per request rejected with HTTP 401.
	Unauthorized Type = "auth.unauthorized"
	// HistoryUpdated fires after a new entry is appended to the local history.
	HistoryUpdated Type = "history.updated"
)

// Event is delivered to every subscriber registered for its type.
type Event struct {
	Type    Type
	Payload any // optional structured data, nil for pure signals
}

// Bus fans events out to currently registered subscribers.
// Delivery is best-effort: a subscriber whose channel buffer is full is
// skipped rather than blocking the publisher.
type Bus struct {
	mu   sync.RWMutex
	subs map[Type][]chan Event
}

// NewBus returns an empty Bus.
func NewBus() *Bus {
	return &Bus{subs: make(map[Type][]chan Event)}
}

// Subscribe registers interest in events of type t and returns the delivery
// channel. The channel is buffered; events published while the buffer is
// full are dropped for that subscriber.
func (b *Bus) Subscribe(t Type) <-chan Event {
	ch := make(chan Event, 16)
	b.mu.Lock()
	b.subs[t] = append(b.subs[t], ch)
	b.mu.Unlock()
	return ch
}

// Publish delivers evt to all subscribers registered for evt.Type.
func (b *Bus) Publish(evt Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, ch := range b.subs[evt.Type] {
		select {
		case ch <- evt:
		default:
			slog.Warn("events: dropping event for slow subscriber", "type", evt.Type)
		}
	}
}
