package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/retail-inventory/backend/internal/domain/catalog"
	"github.com/retail-inventory/backend/internal/domain/inventory"
	"github.com/retail-inventory/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormInventoryRecordRepository implements InventoryRecordRepository using GORM
type GormInventoryRecordRepository struct {
	db *gorm.DB
}

// NewGormInventoryRecordRepository creates a new GormInventoryRecordRepository
func NewGormInventoryRecordRepository(db *gorm.DB) *GormInventoryRecordRepository {
	return &GormInventoryRecordRepository{db: db}
}

// FindByIDForTenant finds an inventory record by ID within a tenant
func (r *GormInventoryRecordRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*inventory.InventoryRecord, error) {
	var record inventory.InventoryRecord
	if err := r.db.WithContext(ctx).Scopes(tenantScope(tenantID)).
		Where("id = ?", id).
		First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &record, nil
}

// FindByProductAndLocation finds the record for a product at a location
func (r *GormInventoryRecordRepository) FindByProductAndLocation(ctx context.Context, tenantID, productID, locationID uuid.UUID) (*inventory.InventoryRecord, error) {
	var record inventory.InventoryRecord
	if err := r.db.WithContext(ctx).Scopes(tenantScope(tenantID)).
		Where("product_id = ? AND location_id = ?", productID, locationID).
		First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &record, nil
}

// FindAllForTenant lists inventory records
func (r *GormInventoryRecordRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter inventory.RecordFilter) ([]inventory.InventoryRecord, error) {
	var records []inventory.InventoryRecord
	query := applyPaging(r.filtered(ctx, tenantID, filter), filter.Filter, InventorySortFields, "updated_at")
	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// CountForTenant counts inventory records matching the filter
func (r *GormInventoryRecordRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter inventory.RecordFilter) (int64, error) {
	var count int64
	if err := r.filtered(ctx, tenantID, filter).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormInventoryRecordRepository) filtered(ctx context.Context, tenantID uuid.UUID, filter inventory.RecordFilter) *gorm.DB {
	db := r.db.WithContext(ctx)
	query := db.Model(&inventory.InventoryRecord{}).Scopes(tenantScope(tenantID))
	if filter.LocationID != nil {
		query = query.Where("location_id = ?", *filter.LocationID)
	}
	if filter.ProductID != nil {
		query = query.Where("product_id = ?", *filter.ProductID)
	}
	if filter.CategoryID != nil {
		products := db.Model(&catalog.Product{}).Select("id").
			Where("tenant_id = ? AND category_id = ?", tenantID, *filter.CategoryID)
		query = query.Where("product_id IN (?)", products)
	}
	if filter.Search != "" {
		pattern := likePattern(filter.Search)
		products := db.Model(&catalog.Product{}).Select("id").
			Where("tenant_id = ? AND (LOWER(name) LIKE ? OR LOWER(code) LIKE ?)", tenantID, pattern, pattern)
		query = query.Where("product_id IN (?)", products)
	}
	return query
}

// CountByProduct counts records holding a product
func (r *GormInventoryRecordRepository) CountByProduct(ctx context.Context, tenantID, productID uuid.UUID) (int64, error) {
	return r.countWhere(ctx, tenantID, "product_id = ?", productID)
}

// CountByLocation counts records stored at a location
func (r *GormInventoryRecordRepository) CountByLocation(ctx context.Context, tenantID, locationID uuid.UUID) (int64, error) {
	return r.countWhere(ctx, tenantID, "location_id = ?", locationID)
}

// CountBySupplier counts records supplied by a supplier
func (r *GormInventoryRecordRepository) CountBySupplier(ctx context.Context, tenantID, supplierID uuid.UUID) (int64, error) {
	return r.countWhere(ctx, tenantID, "supplier_id = ?", supplierID)
}

func (r *GormInventoryRecordRepository) countWhere(ctx context.Context, tenantID uuid.UUID, cond string, arg uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&inventory.InventoryRecord{}).
		Scopes(tenantScope(tenantID)).
		Where(cond, arg).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// UsedVolume sums product volume times quantity over the records at a location
func (r *GormInventoryRecordRepository) UsedVolume(ctx context.Context, tenantID, locationID uuid.UUID) (int, error) {
	var used int64
	err := r.db.WithContext(ctx).Raw(`
		SELECT COALESCE(SUM(p.volume * r.quantity), 0)
		FROM inventory_records r
		JOIN products p ON p.id = r.product_id
		WHERE r.tenant_id = ? AND r.location_id = ?`, tenantID, locationID).
		Scan(&used).Error
	if err != nil {
		return 0, err
	}
	return int(used), nil
}

// Create inserts a new inventory record
func (r *GormInventoryRecordRepository) Create(ctx context.Context, record *inventory.InventoryRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

// SaveWithLock updates the record if its version is unchanged and bumps the version
func (r *GormInventoryRecordRepository) SaveWithLock(ctx context.Context, record *inventory.InventoryRecord) error {
	result := r.db.WithContext(ctx).
		Model(&inventory.InventoryRecord{}).
		Where("id = ? AND tenant_id = ? AND version = ?", record.ID, record.TenantID, record.Version).
		Updates(map[string]interface{}{
			"location_id": record.LocationID,
			"supplier_id": record.SupplierID,
			"quantity":    record.Quantity,
			"version":     record.Version + 1,
			"updated_at":  record.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrOptimisticLock
	}
	record.Version++
	return nil
}

// DeleteWithLock removes the record if its version is unchanged
func (r *GormInventoryRecordRepository) DeleteWithLock(ctx context.Context, record *inventory.InventoryRecord) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND tenant_id = ? AND version = ?", record.ID, record.TenantID, record.Version).
		Delete(&inventory.InventoryRecord{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrOptimisticLock
	}
	return nil
}

// Ensure GormInventoryRecordRepository implements InventoryRecordRepository
var _ inventory.InventoryRecordRepository = (*GormInventoryRecordRepository)(nil)
