package inventory

import (
	"context"

	"github.com/google/uuid"
	"github.com/retail-inventory/backend/internal/domain/shared"
)

// RecordFilter narrows inventory record listings
type RecordFilter struct {
	shared.Filter
	LocationID *uuid.UUID
	CategoryID *uuid.UUID
	ProductID  *uuid.UUID
}

// InventoryRecordRepository defines persistence operations for inventory records
type InventoryRecordRepository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*InventoryRecord, error)
	// FindByProductAndLocation returns shared.ErrNotFound when no record exists
	FindByProductAndLocation(ctx context.Context, tenantID, productID, locationID uuid.UUID) (*InventoryRecord, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter RecordFilter) ([]InventoryRecord, error)
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter RecordFilter) (int64, error)
	// CountByProduct, CountByLocation and CountBySupplier guard deletes of referenced rows
	CountByProduct(ctx context.Context, tenantID, productID uuid.UUID) (int64, error)
	CountByLocation(ctx context.Context, tenantID, locationID uuid.UUID) (int64, error)
	CountBySupplier(ctx context.Context, tenantID, supplierID uuid.UUID) (int64, error)
	// UsedVolume sums product volume times quantity over the records at a location
	UsedVolume(ctx context.Context, tenantID, locationID uuid.UUID) (int, error)
	Create(ctx context.Context, record *InventoryRecord) error
	// SaveWithLock updates the record only if its stored version still
	// matches record.Version, then bumps the version. A mismatch returns
	// shared.ErrOptimisticLock.
	SaveWithLock(ctx context.Context, record *InventoryRecord) error
	// DeleteWithLock removes the record under the same version check
	DeleteWithLock(ctx context.Context, record *InventoryRecord) error
}

// LocationRepository defines persistence operations for locations
type LocationRepository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Location, error)
	FindByIDs(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]Location, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Location, error)
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)
	ExistsByName(ctx context.Context, tenantID uuid.UUID, nameKey string, excludeID uuid.UUID) (bool, error)
	Create(ctx context.Context, location *Location) error
	// SaveWithLock follows the same contract as InventoryRecordRepository.SaveWithLock
	SaveWithLock(ctx context.Context, location *Location) error
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
}

// MovementRepository is append-only
type MovementRepository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Movement, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter MovementFilter) ([]Movement, error)
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter MovementFilter) (int64, error)
	Create(ctx context.Context, movement *Movement) error
}
