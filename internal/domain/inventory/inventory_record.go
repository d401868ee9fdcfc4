package inventory

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/retail-inventory/backend/internal/domain/shared"
)

// InventoryRecord is the quantity of one product held at one location.
// At most one record exists per (tenant, product, location).
type InventoryRecord struct {
	shared.TenantAggregateRoot
	ProductID  uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_record_product_location,priority:1"`
	LocationID uuid.UUID  `gorm:"type:uuid;not null;index;uniqueIndex:idx_record_product_location,priority:2"`
	SupplierID *uuid.UUID `gorm:"type:uuid;index"`
	Quantity   int        `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (InventoryRecord) TableName() string {
	return "inventory_records"
}

// NewInventoryRecord creates a record holding quantity units of a product at a location
func NewInventoryRecord(tenantID, productID, locationID uuid.UUID, supplierID *uuid.UUID, quantity int) (*InventoryRecord, error) {
	if productID == uuid.Nil {
		return nil, shared.NewValidationError("Product ID cannot be empty")
	}
	if locationID == uuid.Nil {
		return nil, shared.NewValidationError("Location ID cannot be empty")
	}
	if quantity < 0 {
		return nil, invalidQuantity("Quantity cannot be negative")
	}
	if quantity > shared.MaxStoredInt {
		return nil, quantityTooLarge()
	}
	if supplierID != nil && *supplierID == uuid.Nil {
		supplierID = nil
	}

	return &InventoryRecord{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		ProductID:           productID,
		LocationID:          locationID,
		SupplierID:          supplierID,
		Quantity:            quantity,
	}, nil
}

// IncreaseStock adds quantity units
func (r *InventoryRecord) IncreaseStock(quantity int) error {
	if quantity < 1 {
		return invalidQuantity("Quantity must be at least 1")
	}
	if quantity > shared.MaxStoredInt-r.Quantity {
		return quantityTooLarge()
	}
	r.Quantity += quantity
	r.Touch()
	return nil
}

// DecreaseStock removes quantity units. Taking more than is held is rejected
// rather than driving the record negative.
func (r *InventoryRecord) DecreaseStock(quantity int) error {
	if quantity < 1 {
		return invalidQuantity("Quantity must be at least 1")
	}
	if quantity > r.Quantity {
		return shared.ErrInsufficientStock
	}
	r.Quantity -= quantity
	r.Touch()
	return nil
}

// SetQuantity overwrites the held quantity (direct correction)
func (r *InventoryRecord) SetQuantity(quantity int) error {
	if quantity < 0 {
		return invalidQuantity("Quantity cannot be negative")
	}
	if quantity > shared.MaxStoredInt {
		return quantityTooLarge()
	}
	r.Quantity = quantity
	r.Touch()
	return nil
}

// Relocate points the record at another location
func (r *InventoryRecord) Relocate(locationID uuid.UUID) error {
	if locationID == uuid.Nil {
		return shared.NewValidationError("Location ID cannot be empty")
	}
	r.LocationID = locationID
	r.Touch()
	return nil
}

// IsEmpty reports whether no units are held
func (r *InventoryRecord) IsEmpty() bool {
	return r.Quantity == 0
}

func invalidQuantity(msg string) *shared.DomainError {
	return shared.NewDomainError("INVALID_QUANTITY", msg)
}

func quantityTooLarge() *shared.DomainError {
	return invalidQuantity(fmt.Sprintf("Quantity cannot exceed %d", shared.MaxStoredInt))
}
