// Package event provides a small synchronous event dispatcher.
//
//	d := event.New()
//	d.Listen(event.SaleRecorded, func(e event.Event) {
//	    sale := e.Payload.(event.Sale)
//	    fmt.Println("sold", sale.Quantity)
//	})
//	d.Fire(event.SaleRecorded, event.Sale{ProductID: 1, Quantity: 2, Remaining: 18})
package event

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Event names fired by the inventory service.
const (
	ProductAdded   = "product.added"
	ProductUpdated = "product.updated"
	ProductRemoved = "product.removed"
	SaleRecorded   = "sale.recorded"
)

// Event is the envelope handed to listeners.
type Event struct {
	ID      uuid.UUID
	Name    string
	At      time.Time
	Payload interface{}
}

// Sale is the payload of SaleRecorded.
type Sale struct {
	ProductID uint
	Name      string
	Quantity  int
	Remaining int
}

// Removed is the payload of ProductRemoved.
type Removed struct {
	ProductID uint
}

// Handler is a function that receives an event.
type Handler func(Event)

// Dispatcher routes fired events to the listeners registered for their name.
// The zero value is not usable; call New.
type Dispatcher struct {
	mu       sync.RWMutex
	handlers map[string][]Handler
	now      func() time.Time
}

// New returns an empty dispatcher.
func New() *Dispatcher {
	return &Dispatcher{handlers: map[string][]Handler{}, now: time.Now}
}

// Listen registers a handler for the given event name.
func (d *Dispatcher) Listen(name string, h Handler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.handlers[name] = append(d.handlers[name], h)
}

// Fire dispatches synchronously to every listener in registration order and
// returns the envelope it built.
func (d *Dispatcher) Fire(name string, payload interface{}) Event {
	e := Event{ID: uuid.New(), Name: name, At: d.now(), Payload: payload}

	d.mu.RLock()
	hs := make([]Handler, len(d.handlers[name]))
	copy(hs, d.handlers[name])
	d.mu.RUnlock()

	for _, h := range hs {
		h(e)
	}
	return e
}

// Flush removes all listeners (useful in tests).
func (d *Dispatcher) Flush() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.handlers = map[string][]Handler{}
}
