package persistence

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/retail-inventory/backend/internal/domain/catalog"
	"github.com/retail-inventory/backend/internal/domain/inventory"
	"github.com/retail-inventory/backend/internal/domain/partner"
	"github.com/retail-inventory/backend/internal/domain/retail"
	"github.com/retail-inventory/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormTenantPurger deletes a retail together with all of its tenant data.
// Children go first so foreign keys never block the delete.
type GormTenantPurger struct {
	db *gorm.DB
}

// NewGormTenantPurger creates a new GormTenantPurger
func NewGormTenantPurger(db *gorm.DB) *GormTenantPurger {
	return &GormTenantPurger{db: db}
}

// Purge removes every row owned by the retail, then the retail
func (p *GormTenantPurger) Purge(ctx context.Context, retailID uuid.UUID) error {
	db := p.db.WithContext(ctx)

	steps := []struct {
		name  string
		model interface{}
		cond  string
	}{
		{"movements", &inventory.Movement{}, "tenant_id = ?"},
		{"inventory_records", &inventory.InventoryRecord{}, "tenant_id = ?"},
		{"products", &catalog.Product{}, "tenant_id = ?"},
		{"classifications", &catalog.Classification{}, "tenant_id = ?"},
		{"suppliers", &partner.Supplier{}, "tenant_id = ?"},
		{"locations", &inventory.Location{}, "tenant_id = ?"},
		{"users", &retail.User{}, "tenant_id = ?"},
		{"subscriptions", &retail.Subscription{}, "retail_id = ?"},
	}
	for _, step := range steps {
		if err := db.Where(step.cond, retailID).Delete(step.model).Error; err != nil {
			return fmt.Errorf("purge %s: %w", step.name, err)
		}
	}

	result := db.Where("id = ?", retailID).Delete(&retail.Retail{})
	if result.Error != nil {
		return fmt.Errorf("purge retails: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

var _ retail.TenantPurger = (*GormTenantPurger)(nil)
