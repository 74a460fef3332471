// Package hub fans state-change notifications out to attached observers.
// Observers are transport-agnostic: the dashboard websocket adapter is one
// implementation, tests attach plain structs. A failing observer is
// detached without affecting the others.
package hub

import (
	"sync"

	"smarthome_gateway/internal/logger"
)

// Event is a named delta with its payload.
type Event struct {
	Name    string
	Payload any
}

// Observer receives broadcast events. A non-nil error from Notify detaches
// the observer and closes it.
type Observer interface {
	Notify(event string, payload any) error
	Close()
}

// Hub tracks the attached observer set.
type Hub struct {
	mu        sync.RWMutex
	observers map[Observer]struct{}
	snapshot  func() []Event
	log       *logger.Logger
}

// NewHub builds an empty hub.
func NewHub(log *logger.Logger) *Hub {
	return &Hub{
		observers: make(map[Observer]struct{}),
		log:       log,
	}
}

// SetSnapshotFunc installs the full-state snapshot pushed to every newly
// attached observer, so new observers reach consistency without polling.
func (h *Hub) SetSnapshotFunc(fn func() []Event) {
	h.mu.Lock()
	h.snapshot = fn
	h.mu.Unlock()
}

// Attach registers an observer and immediately pushes the current snapshot.
func (h *Hub) Attach(o Observer) {
	h.mu.Lock()
	h.observers[o] = struct{}{}
	fn := h.snapshot
	count := len(h.observers)
	h.mu.Unlock()

	h.log.Infow("observer attached", "observers", count)

	if fn == nil {
		return
	}
	for _, ev := range fn() {
		if err := o.Notify(ev.Name, ev.Payload); err != nil {
			h.drop(o, err)
			return
		}
	}
}

// Detach removes an observer without closing it.
func (h *Hub) Detach(o Observer) {
	h.mu.Lock()
	delete(h.observers, o)
	count := len(h.observers)
	h.mu.Unlock()

	h.log.Infow("observer detached", "observers", count)
}

// Broadcast pushes one delta to every attached observer. The observer set
// is snapshotted first so a slow or failing observer cannot block Attach
// or Detach, and a failed push never stops delivery to the rest.
func (h *Hub) Broadcast(event string, payload any) {
	h.mu.RLock()
	observers := make([]Observer, 0, len(h.observers))
	for o := range h.observers {
		observers = append(observers, o)
	}
	h.mu.RUnlock()

	for _, o := range observers {
		if err := o.Notify(event, payload); err != nil {
			h.drop(o, err)
		}
	}
}

// Count returns the number of attached observers.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.observers)
}

func (h *Hub) drop(o Observer, err error) {
	h.mu.Lock()
	_, attached := h.observers[o]
	delete(h.observers, o)
	h.mu.Unlock()

	if attached {
		h.log.Infow("observer dropped", "err", err)
		o.Close()
	}
}
