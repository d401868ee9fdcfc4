package event

import (
	"testing"

	"github.com/retail-inventory/backend/internal/domain/inventory"
	"github.com/stretchr/testify/assert"
)

func TestHandlerRegistry(t *testing.T) {
	registry := NewHandlerRegistry()
	a := newRecordingHandler()
	b := newRecordingHandler()
	wildcard := newRecordingHandler()

	registry.Register(a, inventory.EventTypeStockIn, inventory.EventTypeStockOut)
	registry.Register(a, inventory.EventTypeStockIn)
	registry.Register(b, inventory.EventTypeStockOut)
	registry.Register(wildcard)

	assert.Len(t, registry.GetHandlers(inventory.EventTypeStockIn), 2, "duplicate registration ignored")
	assert.Len(t, registry.GetHandlers(inventory.EventTypeStockOut), 3)
	assert.Len(t, registry.GetHandlers("Unknown"), 1)
	assert.Equal(t, 3, registry.Count())

	handlers := registry.GetHandlers(inventory.EventTypeStockOut)
	assert.Same(t, wildcard, handlers[len(handlers)-1], "wildcard handlers run last")

	registry.Unregister(a)
	assert.Len(t, registry.GetHandlers(inventory.EventTypeStockIn), 1)
	assert.Len(t, registry.GetHandlers(inventory.EventTypeStockOut), 2)

	registry.Unregister(wildcard)
	assert.Empty(t, registry.GetHandlers(inventory.EventTypeStockIn))
	assert.Equal(t, 1, registry.Count())
}
