package partner

import (
	"context"

	"github.com/google/uuid"
	"github.com/retail-inventory/backend/internal/domain/shared"
)

// SupplierRepository defines persistence operations for suppliers
type SupplierRepository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Supplier, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Supplier, error)
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)
	ExistsByCode(ctx context.Context, tenantID uuid.UUID, code string, excludeID uuid.UUID) (bool, error)
	Save(ctx context.Context, supplier *Supplier) error
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
}
