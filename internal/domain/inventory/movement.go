package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/retail-inventory/backend/internal/domain/shared"
)

// MovementType is the kind of stock change a movement records
type MovementType string

const (
	MovementTypeIn   MovementType = "in"
	MovementTypeOut  MovementType = "out"
	MovementTypeMove MovementType = "move"
)

// IsValid returns true if the movement type is known
func (t MovementType) IsValid() bool {
	switch t {
	case MovementTypeIn, MovementTypeOut, MovementTypeMove:
		return true
	}
	return false
}

// Movement is an immutable audit entry for one stock change.
// Rows are only ever inserted; there is no update or delete path.
type Movement struct {
	ID             uuid.UUID    `gorm:"type:uuid;primaryKey"`
	TenantID       uuid.UUID    `gorm:"type:uuid;not null;index:idx_movement_tenant_time,priority:1"`
	ProductID      uuid.UUID    `gorm:"type:uuid;not null;index"`
	FromLocationID *uuid.UUID   `gorm:"type:uuid;index"`
	ToLocationID   *uuid.UUID   `gorm:"type:uuid;index"`
	Quantity       int          `gorm:"not null"`
	Type           MovementType `gorm:"type:varchar(10);not null;index"`
	CreatedBy      *uuid.UUID   `gorm:"type:uuid"`
	CreatedAt      time.Time    `gorm:"not null;index:idx_movement_tenant_time,priority:2"`
}

// TableName returns the table name for GORM
func (Movement) TableName() string {
	return "movements"
}

// NewMovement creates a movement entry. In movements need a destination,
// out movements a source and move movements both.
func NewMovement(tenantID, productID uuid.UUID, movementType MovementType, from, to *uuid.UUID, quantity int) (*Movement, error) {
	if tenantID == uuid.Nil {
		return nil, shared.NewValidationError("Tenant ID cannot be empty")
	}
	if productID == uuid.Nil {
		return nil, shared.NewValidationError("Product ID cannot be empty")
	}
	if !movementType.IsValid() {
		return nil, shared.NewValidationError("Invalid movement type")
	}
	if quantity < 1 {
		return nil, invalidQuantity("Movement quantity must be positive")
	}

	switch movementType {
	case MovementTypeIn:
		if to == nil || from != nil {
			return nil, shared.NewValidationError("Stock-in movement requires only a destination location")
		}
	case MovementTypeOut:
		if from == nil || to != nil {
			return nil, shared.NewValidationError("Stock-out movement requires only a source location")
		}
	case MovementTypeMove:
		if from == nil || to == nil {
			return nil, shared.NewValidationError("Move requires source and destination locations")
		}
	}

	return &Movement{
		ID:             uuid.New(),
		TenantID:       tenantID,
		ProductID:      productID,
		FromLocationID: from,
		ToLocationID:   to,
		Quantity:       quantity,
		Type:           movementType,
		CreatedAt:      time.Now(),
	}, nil
}

// WithActor records the user that triggered the movement
func (m *Movement) WithActor(userID uuid.UUID) *Movement {
	if userID != uuid.Nil {
		m.CreatedBy = &userID
	}
	return m
}

// MovementFilter narrows movement log queries
type MovementFilter struct {
	shared.Filter
	Type       MovementType
	ProductID  *uuid.UUID
	LocationID *uuid.UUID // matches either side of the movement
	From       *time.Time
	To         *time.Time
}
