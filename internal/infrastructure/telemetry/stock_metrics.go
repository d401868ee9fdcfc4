package telemetry

import (
	"context"

	"github.com/retail-inventory/backend/internal/domain/inventory"
	"github.com/retail-inventory/backend/internal/domain/shared"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// StockMetrics counts stock operations and the units they touched, fed from
// the stock events on the event bus
type StockMetrics struct {
	operations *Counter
	units      *Counter
}

// NewStockMetrics creates the stock counters on meter
func NewStockMetrics(meter metric.Meter) (*StockMetrics, error) {
	operations, err := NewCounter(meter, "stock_operations_total", "Completed stock operations", "{operation}")
	if err != nil {
		return nil, err
	}
	units, err := NewCounter(meter, "stock_quantity_total", "Units received, shipped, moved or adjusted", "{unit}")
	if err != nil {
		return nil, err
	}
	return &StockMetrics{operations: operations, units: units}, nil
}

// EventTypes returns the stock event types
func (m *StockMetrics) EventTypes() []string {
	return inventory.StockEventTypes
}

// Handle records one operation and its quantity
func (m *StockMetrics) Handle(ctx context.Context, event shared.DomainEvent) error {
	var quantity int
	switch e := event.(type) {
	case *inventory.StockInEvent:
		quantity = e.Quantity
	case *inventory.StockOutEvent:
		quantity = e.Quantity
	case *inventory.StockMovedEvent:
		quantity = e.Quantity
	case *inventory.InventoryAdjustedEvent:
		quantity = e.Quantity
	}

	attrs := []attribute.KeyValue{
		AttrStockOperation.String(event.EventType()),
		AttrTenantID.String(event.TenantID().String()),
	}
	m.operations.Inc(ctx, attrs...)
	if quantity > 0 {
		m.units.Add(ctx, int64(quantity), attrs...)
	}
	return nil
}
