package inventory

import (
	"github.com/google/uuid"
	"github.com/retail-inventory/backend/internal/domain/shared"
)

// StockLedger applies stock operations to loaded aggregates. It validates
// everything that can fail before mutating anything, so a returned error
// always leaves the record and location untouched. Persisting the result is
// the caller's job and must happen in one transaction.
type StockLedger struct{}

// NewStockLedger creates a StockLedger
func NewStockLedger() *StockLedger {
	return &StockLedger{}
}

// StockIn receives quantity units of a product with the given per-unit volume
// into record, which must live at location.
func (l *StockLedger) StockIn(record *InventoryRecord, location *Location, unitVolume, quantity int) (*Movement, error) {
	if quantity < 1 {
		return nil, invalidQuantity("Quantity must be at least 1")
	}
	if err := checkPlacement(record, location); err != nil {
		return nil, err
	}

	movement, err := NewMovement(record.TenantID, record.ProductID, MovementTypeIn, nil, ptr(location.ID), quantity)
	if err != nil {
		return nil, err
	}
	if err := location.Occupy(unitVolume * quantity); err != nil {
		return nil, err
	}
	if err := record.IncreaseStock(quantity); err != nil {
		return nil, err
	}

	record.AddDomainEvent(NewStockInEvent(record, quantity))
	return movement, nil
}

// StockOut ships quantity units out of record. Requests larger than the held
// quantity are rejected with INSUFFICIENT_STOCK.
func (l *StockLedger) StockOut(record *InventoryRecord, location *Location, unitVolume, quantity int) (*Movement, error) {
	if quantity < 1 {
		return nil, invalidQuantity("Quantity must be at least 1")
	}
	if err := checkPlacement(record, location); err != nil {
		return nil, err
	}
	if quantity > record.Quantity {
		return nil, shared.ErrInsufficientStock
	}

	movement, err := NewMovement(record.TenantID, record.ProductID, MovementTypeOut, ptr(location.ID), nil, quantity)
	if err != nil {
		return nil, err
	}
	if err := record.DecreaseStock(quantity); err != nil {
		return nil, err
	}
	_ = location.Release(unitVolume * quantity)

	record.AddDomainEvent(NewStockOutEvent(record, quantity))
	return movement, nil
}

// MoveRequest describes a transfer between two locations
type MoveRequest struct {
	Source         *InventoryRecord
	SourceLocation *Location
	// Destination is the record already holding the product at
	// DestinationLocation, or nil when one has to be created.
	Destination         *InventoryRecord
	DestinationLocation *Location
	UnitVolume          int
	Quantity            int
}

// MoveResult is what the caller has to persist after a move
type MoveResult struct {
	Movement             *Movement
	Destination          *InventoryRecord
	DestinationCreated   bool
	SourceDeleted        bool
	DestinationRemaining int
}

// MoveStock transfers units from one record to another location.
// The destination must have room for the full footprint; otherwise
// CAPACITY_EXCEEDED is returned and nothing changes. A source that reaches
// zero is marked for deletion.
func (l *StockLedger) MoveStock(req MoveRequest) (*MoveResult, error) {
	src, srcLoc, dstLoc := req.Source, req.SourceLocation, req.DestinationLocation
	if src == nil || srcLoc == nil || dstLoc == nil {
		return nil, shared.NewValidationError("Source record and both locations are required")
	}
	if req.Quantity < 1 {
		return nil, invalidQuantity("Quantity must be at least 1")
	}
	if req.Quantity > src.Quantity {
		return nil, shared.NewValidationError("Quantity to move exceeds the available stock")
	}
	if err := checkPlacement(src, srcLoc); err != nil {
		return nil, err
	}
	if dstLoc.TenantID != src.TenantID {
		return nil, shared.NewValidationError("Destination location not found")
	}
	if dstLoc.ID == srcLoc.ID {
		return nil, shared.NewValidationError("Destination must differ from the source location")
	}

	dst := req.Destination
	created := false
	if dst != nil {
		if dst.ProductID != src.ProductID || dst.TenantID != src.TenantID {
			return nil, shared.NewValidationError("Destination record holds a different product")
		}
		if err := checkPlacement(dst, dstLoc); err != nil {
			return nil, err
		}
	} else {
		var err error
		dst, err = NewInventoryRecord(src.TenantID, src.ProductID, dstLoc.ID, src.SupplierID, 0)
		if err != nil {
			return nil, err
		}
		created = true
	}

	footprint := req.UnitVolume * req.Quantity
	remaining := dstLoc.RemainingVolume - footprint
	if remaining < 0 {
		return nil, shared.ErrCapacityExceeded
	}

	movement, err := NewMovement(src.TenantID, src.ProductID, MovementTypeMove, ptr(srcLoc.ID), ptr(dstLoc.ID), req.Quantity)
	if err != nil {
		return nil, err
	}

	// Nothing below can fail once the checks above passed.
	_ = dstLoc.Occupy(footprint)
	_ = dst.IncreaseStock(req.Quantity)
	_ = src.DecreaseStock(req.Quantity)
	_ = srcLoc.Release(footprint)

	src.AddDomainEvent(NewStockMovedEvent(src, srcLoc.ID, dstLoc.ID, req.Quantity, src.IsEmpty()))

	return &MoveResult{
		Movement:             movement,
		Destination:          dst,
		DestinationCreated:   created,
		SourceDeleted:        src.IsEmpty(),
		DestinationRemaining: dstLoc.RemainingVolume,
	}, nil
}

func checkPlacement(record *InventoryRecord, location *Location) error {
	if location == nil || location.TenantID != record.TenantID {
		return shared.NewValidationError("Location not found")
	}
	if record.LocationID != location.ID {
		return shared.NewValidationError("Record is not stored at the given location")
	}
	return nil
}

func ptr(id uuid.UUID) *uuid.UUID {
	return &id
}
