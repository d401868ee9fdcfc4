package catalog

import (
	"github.com/google/uuid"
	"github.com/retail-inventory/backend/internal/domain/shared"
)

// ClassificationKind distinguishes the three product groupings a tenant maintains
type ClassificationKind string

const (
	KindBrand    ClassificationKind = "brand"
	KindCategory ClassificationKind = "category"
	KindType     ClassificationKind = "type"
)

// IsValid returns true if the kind is one of the known groupings
func (k ClassificationKind) IsValid() bool {
	switch k {
	case KindBrand, KindCategory, KindType:
		return true
	}
	return false
}

// Label returns a human readable label used in error messages
func (k ClassificationKind) Label() string {
	switch k {
	case KindBrand:
		return "Brand"
	case KindCategory:
		return "Category"
	case KindType:
		return "Type"
	}
	return "Classification"
}

// Classification is a brand, category or product type owned by a tenant.
// Names are unique per tenant and kind, compared case-insensitively.
type Classification struct {
	shared.TenantAggregateRoot
	Kind        ClassificationKind `gorm:"type:varchar(20);not null;index"`
	Name        string             `gorm:"type:varchar(100);not null"`
	NameKey     string             `gorm:"type:varchar(100);not null;index"`
	Description string             `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Classification) TableName() string {
	return "classifications"
}

// NewClassification creates a new classification of the given kind
func NewClassification(tenantID uuid.UUID, kind ClassificationKind, name, description string) (*Classification, error) {
	if !kind.IsValid() {
		return nil, shared.NewValidationError("Unknown classification kind")
	}
	c := &Classification{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Kind:                kind,
	}
	if err := c.Update(name, description); err != nil {
		return nil, err
	}
	c.Version = 1
	return c, nil
}

// Update changes the name and description
func (c *Classification) Update(name, description string) error {
	name = shared.NormalizeName(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", c.Kind.Label()+" name cannot be empty")
	}
	if len(name) > 100 {
		return shared.NewDomainError("INVALID_NAME", c.Kind.Label()+" name cannot exceed 100 characters")
	}
	c.Name = name
	c.NameKey = shared.NameKey(name)
	c.Description = description
	c.Touch()
	c.IncrementVersion()
	return nil
}
