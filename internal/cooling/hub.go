package cooling

import (
	"errors"
	"sync"
	"sync/atomic"
	"time"
)

// EventKind identifies the kind of a broadcast event.
type EventKind int

const (
	// EventThrottling is published once per distinct cooling level transition.
	EventThrottling EventKind = iota
)

// Event is the payload delivered to every hub listener.
type Event struct {
	Kind   EventKind `json:"kind"`
	Device string    `json:"device"`
	Level  uint      `json:"level"`
	Fps    uint      `json:"fps"`
	Time   time.Time `json:"time"`
}

// Listener receives broadcast events. Listeners are invoked synchronously on
// the broadcasting goroutine and MUST NOT block, a slow listener stalls the
// control path that triggered the broadcast. Listeners handle their own
// errors and must not panic through the broadcast path.
type Listener func(event Event)

// Hub is an ordered, append-only set of listeners. It is process wide state
// owned by the composition root and outlives individual cooling devices.
type Hub struct {
	mu        sync.Mutex
	listeners []Listener
	broadcast atomic.Uint64
}

func NewHub() *Hub {
	return &Hub{}
}

// Register appends a listener. Listeners cannot be removed.
func (h *Hub) Register(listener Listener) error {
	if listener == nil {
		return errors.New("listener must not be nil")
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.listeners = append(h.listeners, listener)

	return nil
}

// Broadcast delivers the event to all listeners in registration order.
func (h *Hub) Broadcast(event Event) {
	h.mu.Lock()
	listeners := make([]Listener, len(h.listeners))
	copy(listeners, h.listeners)
	h.mu.Unlock()

	h.broadcast.Add(1)

	for _, listener := range listeners {
		listener(event)
	}
}

// BroadcastCount returns the number of broadcasts since hub creation.
func (h *Hub) BroadcastCount() uint64 {
	return h.broadcast.Load()
}
