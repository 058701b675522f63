package event_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/stockroom/pkg/event"
)

func TestFireReachesListenersInOrder(t *testing.T) {
	d := event.New()

	var order []string
	d.Listen(event.SaleRecorded, func(event.Event) { order = append(order, "first") })
	d.Listen(event.SaleRecorded, func(event.Event) { order = append(order, "second") })
	d.Listen(event.ProductAdded, func(event.Event) { order = append(order, "other") })

	e := d.Fire(event.SaleRecorded, event.Sale{ProductID: 1, Quantity: 2, Remaining: 23})

	assert.Equal(t, []string{"first", "second"}, order)
	assert.Equal(t, event.SaleRecorded, e.Name)
	assert.NotEqual(t, uuid.Nil, e.ID)
	assert.False(t, e.At.IsZero())
}

func TestPayloadIsDelivered(t *testing.T) {
	d := event.New()

	var got event.Sale
	d.Listen(event.SaleRecorded, func(e event.Event) {
		s, ok := e.Payload.(event.Sale)
		require.True(t, ok)
		got = s
	})
	d.Fire(event.SaleRecorded, event.Sale{ProductID: 3, Name: "Laptop", Quantity: 2, Remaining: 23})

	assert.Equal(t, event.Sale{ProductID: 3, Name: "Laptop", Quantity: 2, Remaining: 23}, got)
}

func TestFireWithoutListeners(t *testing.T) {
	d := event.New()
	assert.NotPanics(t, func() { d.Fire(event.ProductRemoved, event.Removed{ProductID: 9}) })
}

func TestFlush(t *testing.T) {
	d := event.New()
	calls := 0
	d.Listen(event.ProductAdded, func(event.Event) { calls++ })
	d.Flush()
	d.Fire(event.ProductAdded, nil)
	assert.Zero(t, calls)
}

func TestEventIDsAreUnique(t *testing.T) {
	d := event.New()
	a := d.Fire(event.ProductUpdated, nil)
	b := d.Fire(event.ProductUpdated, nil)
	assert.NotEqual(t, a.ID, b.ID)
}
