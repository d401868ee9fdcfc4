package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/retail-inventory/backend/internal/domain/shared"
)

// ProductRepository defines persistence operations for products
type ProductRepository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Product, error)
	FindByIDs(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]Product, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Product, error)
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)
	// ExistsByCode checks code uniqueness, ignoring excludeID when it is not uuid.Nil
	ExistsByCode(ctx context.Context, tenantID uuid.UUID, code string, excludeID uuid.UUID) (bool, error)
	// CountByClassification counts products referencing a brand, category or type
	CountByClassification(ctx context.Context, tenantID uuid.UUID, kind ClassificationKind, id uuid.UUID) (int64, error)
	Save(ctx context.Context, product *Product) error
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
}

// ClassificationRepository defines persistence operations for brands, categories and types
type ClassificationRepository interface {
	FindByIDForTenant(ctx context.Context, tenantID uuid.UUID, kind ClassificationKind, id uuid.UUID) (*Classification, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, kind ClassificationKind, filter shared.Filter) ([]Classification, error)
	CountForTenant(ctx context.Context, tenantID uuid.UUID, kind ClassificationKind, filter shared.Filter) (int64, error)
	ExistsByName(ctx context.Context, tenantID uuid.UUID, kind ClassificationKind, nameKey string, excludeID uuid.UUID) (bool, error)
	Save(ctx context.Context, c *Classification) error
	Delete(ctx context.Context, tenantID uuid.UUID, kind ClassificationKind, id uuid.UUID) error
}
