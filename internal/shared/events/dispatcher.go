package events

import (
	"sync"

	"github.com/google/uuid"
)

// Dispatcher fans realtime frames out to handlers registered per event name.
type Dispatcher struct {
	mu       sync.RWMutex
	handlers map[string]map[string]func(Realtime)
}

func NewDispatcher() *Dispatcher {
	return &Dispatcher{handlers: make(map[string]map[string]func(Realtime))}
}

// Subscribe registers handler for event. The returned function is idempotent.
func (d *Dispatcher) Subscribe(event string, handler func(Realtime)) func() {
	id := uuid.NewString()
	d.mu.Lock()
	if d.handlers[event] == nil {
		d.handlers[event] = make(map[string]func(Realtime))
	}
	d.handlers[event][id] = handler
	d.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			d.mu.Lock()
			defer d.mu.Unlock()
			delete(d.handlers[event], id)
			if len(d.handlers[event]) == 0 {
				delete(d.handlers, event)
			}
		})
	}
}

func (d *Dispatcher) Dispatch(evt Realtime) int {
	d.mu.RLock()
	targets := make([]func(Realtime), 0, len(d.handlers[evt.Event]))
	for _, handler := range d.handlers[evt.Event] {
		targets = append(targets, handler)
	}
	d.mu.RUnlock()

	for _, handler := range targets {
		handler(evt)
	}
	return len(targets)
}

// Count reports how many handlers are registered across all events.
func (d *Dispatcher) Count() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	total := 0
	for _, items := range d.handlers {
		total += len(items)
	}
	return total
}
