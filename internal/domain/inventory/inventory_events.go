package inventory

import (
	"github.com/google/uuid"
	"github.com/retail-inventory/backend/internal/domain/shared"
)

// Aggregate type and event type constants
const (
	AggregateTypeInventoryRecord = "InventoryRecord"

	EventTypeStockIn    = "StockIn"
	EventTypeStockOut   = "StockOut"
	EventTypeStockMoved = "StockMoved"
	EventTypeAdjusted   = "InventoryAdjusted"
)

// StockEventTypes lists every event that changes held quantities
var StockEventTypes = []string{EventTypeStockIn, EventTypeStockOut, EventTypeStockMoved, EventTypeAdjusted}

// StockInEvent is raised after units were received at a location
type StockInEvent struct {
	shared.BaseDomainEvent
	ProductID  uuid.UUID `json:"product_id"`
	LocationID uuid.UUID `json:"location_id"`
	Quantity   int       `json:"quantity"`
	Balance    int       `json:"balance"`
}

// NewStockInEvent creates a StockInEvent
func NewStockInEvent(record *InventoryRecord, quantity int) *StockInEvent {
	return &StockInEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStockIn, AggregateTypeInventoryRecord, record.ID, record.TenantID),
		ProductID:       record.ProductID,
		LocationID:      record.LocationID,
		Quantity:        quantity,
		Balance:         record.Quantity,
	}
}

// StockOutEvent is raised after units left a location
type StockOutEvent struct {
	shared.BaseDomainEvent
	ProductID  uuid.UUID `json:"product_id"`
	LocationID uuid.UUID `json:"location_id"`
	Quantity   int       `json:"quantity"`
	Balance    int       `json:"balance"`
}

// NewStockOutEvent creates a StockOutEvent
func NewStockOutEvent(record *InventoryRecord, quantity int) *StockOutEvent {
	return &StockOutEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStockOut, AggregateTypeInventoryRecord, record.ID, record.TenantID),
		ProductID:       record.ProductID,
		LocationID:      record.LocationID,
		Quantity:        quantity,
		Balance:         record.Quantity,
	}
}

// StockMovedEvent is raised after units were transferred between locations
type StockMovedEvent struct {
	shared.BaseDomainEvent
	ProductID      uuid.UUID `json:"product_id"`
	FromLocationID uuid.UUID `json:"from_location_id"`
	ToLocationID   uuid.UUID `json:"to_location_id"`
	Quantity       int       `json:"quantity"`
	SourceDeleted  bool      `json:"source_deleted"`
}

// NewStockMovedEvent creates a StockMovedEvent
func NewStockMovedEvent(source *InventoryRecord, from, to uuid.UUID, quantity int, sourceDeleted bool) *StockMovedEvent {
	return &StockMovedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStockMoved, AggregateTypeInventoryRecord, source.ID, source.TenantID),
		ProductID:       source.ProductID,
		FromLocationID:  from,
		ToLocationID:    to,
		Quantity:        quantity,
		SourceDeleted:   sourceDeleted,
	}
}

// InventoryAdjustedEvent is raised when a record is edited or deleted directly
type InventoryAdjustedEvent struct {
	shared.BaseDomainEvent
	ProductID  uuid.UUID `json:"product_id"`
	LocationID uuid.UUID `json:"location_id"`
	Quantity   int       `json:"quantity"`
	Deleted    bool      `json:"deleted"`
}

// NewInventoryAdjustedEvent creates an InventoryAdjustedEvent
func NewInventoryAdjustedEvent(record *InventoryRecord, deleted bool) *InventoryAdjustedEvent {
	return &InventoryAdjustedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeAdjusted, AggregateTypeInventoryRecord, record.ID, record.TenantID),
		ProductID:       record.ProductID,
		LocationID:      record.LocationID,
		Quantity:        record.Quantity,
		Deleted:         deleted,
	}
}
