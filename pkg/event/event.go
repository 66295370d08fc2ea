// Package event is an in-process dispatcher. Repositories fire events after a
// write succeeds; listeners such as the live-refresh hub react to them.
package event

import (
	"sync"

	"github.com/shashiranjanraj/paladar/pkg/logger"
)

// RecordsChanged fires after any successful add, update or remove.
const RecordsChanged = "records.changed"

// Change is the payload of RecordsChanged.
type Change struct {
	Collection string `json:"collection"`
	Op         string `json:"op"` // add | update | remove
	ID         uint   `json:"id"`
}

// Handler receives an event payload.
type Handler func(payload any)

// Dispatcher routes events to listeners. The zero value is ready to use and
// a nil *Dispatcher drops every event.
type Dispatcher struct {
	mu       sync.RWMutex
	handlers map[string][]Handler
}

func New() *Dispatcher {
	return &Dispatcher{handlers: map[string][]Handler{}}
}

// Listen registers a handler for the given event name.
func (d *Dispatcher) Listen(event string, handler Handler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.handlers == nil {
		d.handlers = map[string][]Handler{}
	}
	d.handlers[event] = append(d.handlers[event], handler)
}

func (d *Dispatcher) listeners(event string) []Handler {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return append([]Handler(nil), d.handlers[event]...)
}

// Fire dispatches an event synchronously to all registered listeners. A
// panicking listener is logged and does not stop the others.
func (d *Dispatcher) Fire(event string, payload any) {
	if d == nil {
		return
	}
	for _, h := range d.listeners(event) {
		call(event, h, payload)
	}
}

func call(event string, h Handler, payload any) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("event: listener panicked", "event", event, "panic", r)
		}
	}()
	h(payload)
}
