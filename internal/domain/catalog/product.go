package catalog

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/retail-inventory/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Product represents a stock keeping unit in a tenant's catalog.
// Volume is the space one unit occupies in a location.
type Product struct {
	shared.TenantAggregateRoot
	Code        string          `gorm:"type:varchar(50);not null;index"`
	Name        string          `gorm:"type:varchar(200);not null"`
	Description string          `gorm:"type:text"`
	Price       decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Volume      int             `gorm:"not null;default:0"`
	CategoryID  *uuid.UUID      `gorm:"type:uuid;index"`
	BrandID     *uuid.UUID      `gorm:"type:uuid;index"`
	TypeID      *uuid.UUID      `gorm:"type:uuid;index"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new product
func NewProduct(tenantID uuid.UUID, code, name string, price decimal.Decimal, volume int) (*Product, error) {
	if err := validateProductCode(code); err != nil {
		return nil, err
	}
	if err := validateProductName(name); err != nil {
		return nil, err
	}
	if err := validatePrice(price); err != nil {
		return nil, err
	}
	if err := validateVolume(volume); err != nil {
		return nil, err
	}

	return &Product{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Code:                strings.ToUpper(code),
		Name:                strings.TrimSpace(name),
		Price:               price,
		Volume:              volume,
	}, nil
}

// Update updates name, description and price
func (p *Product) Update(name, description string, price decimal.Decimal) error {
	if err := validateProductName(name); err != nil {
		return err
	}
	if err := validatePrice(price); err != nil {
		return err
	}
	p.Name = strings.TrimSpace(name)
	p.Description = description
	p.Price = price
	p.Touch()
	p.IncrementVersion()
	return nil
}

// UpdateCode changes the product code
func (p *Product) UpdateCode(code string) error {
	if err := validateProductCode(code); err != nil {
		return err
	}
	p.Code = strings.ToUpper(code)
	p.Touch()
	p.IncrementVersion()
	return nil
}

// SetVolume changes the per-unit volume. Callers must make sure no stock of
// the product is held anywhere, otherwise location ledgers would drift.
func (p *Product) SetVolume(volume int) error {
	if err := validateVolume(volume); err != nil {
		return err
	}
	p.Volume = volume
	p.Touch()
	p.IncrementVersion()
	return nil
}

// Classify assigns the category, brand and type references
func (p *Product) Classify(categoryID, brandID, typeID *uuid.UUID) {
	p.CategoryID = nonNil(categoryID)
	p.BrandID = nonNil(brandID)
	p.TypeID = nonNil(typeID)
	p.Touch()
}

// Footprint returns the volume occupied by quantity units of the product
func (p *Product) Footprint(quantity int) int {
	return p.Volume * quantity
}

func nonNil(id *uuid.UUID) *uuid.UUID {
	if id == nil || *id == uuid.Nil {
		return nil
	}
	return id
}

func validateProductCode(code string) error {
	if code == "" {
		return shared.NewDomainError("INVALID_CODE", "Product code cannot be empty")
	}
	if len(code) > 50 {
		return shared.NewDomainError("INVALID_CODE", "Product code cannot exceed 50 characters")
	}
	for _, r := range code {
		if !((r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_' || r == '-') {
			return shared.NewDomainError("INVALID_CODE", "Product code can only contain letters, numbers, underscores, and hyphens")
		}
	}
	return nil
}

func validateProductName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot exceed 200 characters")
	}
	return nil
}

func validatePrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}
	return nil
}

func validateVolume(volume int) error {
	if volume < 0 {
		return shared.NewDomainError("INVALID_VOLUME", "Volume cannot be negative")
	}
	if volume > shared.MaxStoredInt {
		return shared.NewDomainError("INVALID_VOLUME", fmt.Sprintf("Volume cannot exceed %d", shared.MaxStoredInt))
	}
	return nil
}
