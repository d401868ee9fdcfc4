package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/retail-inventory/backend/internal/domain/inventory"
	"github.com/retail-inventory/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormLocationRepository implements LocationRepository using GORM
type GormLocationRepository struct {
	db *gorm.DB
}

// NewGormLocationRepository creates a new GormLocationRepository
func NewGormLocationRepository(db *gorm.DB) *GormLocationRepository {
	return &GormLocationRepository{db: db}
}

// FindByIDForTenant finds a location by ID within a tenant
func (r *GormLocationRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*inventory.Location, error) {
	var location inventory.Location
	if err := r.db.WithContext(ctx).Scopes(tenantScope(tenantID)).
		Where("id = ?", id).
		First(&location).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &location, nil
}

// FindByIDs finds multiple locations by their IDs
func (r *GormLocationRepository) FindByIDs(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]inventory.Location, error) {
	if len(ids) == 0 {
		return []inventory.Location{}, nil
	}
	var locations []inventory.Location
	if err := r.db.WithContext(ctx).Scopes(tenantScope(tenantID)).
		Where("id IN ?", ids).
		Find(&locations).Error; err != nil {
		return nil, err
	}
	return locations, nil
}

// FindAllForTenant lists locations
func (r *GormLocationRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]inventory.Location, error) {
	var locations []inventory.Location
	query := applyPaging(r.filtered(ctx, tenantID, filter), filter, LocationSortFields, "name")
	if err := query.Find(&locations).Error; err != nil {
		return nil, err
	}
	return locations, nil
}

// CountForTenant counts locations matching the filter
func (r *GormLocationRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	if err := r.filtered(ctx, tenantID, filter).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormLocationRepository) filtered(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&inventory.Location{}).Scopes(tenantScope(tenantID))
	if filter.Search != "" {
		query = query.Where("name_key LIKE ?", likePattern(filter.Search))
	}
	return query
}

// ExistsByName checks name uniqueness within a tenant
func (r *GormLocationRepository) ExistsByName(ctx context.Context, tenantID uuid.UUID, nameKey string, excludeID uuid.UUID) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&inventory.Location{}).Scopes(tenantScope(tenantID)).
		Where("name_key = ?", nameKey)
	if excludeID != uuid.Nil {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Create inserts a new location
func (r *GormLocationRepository) Create(ctx context.Context, location *inventory.Location) error {
	return r.db.WithContext(ctx).Create(location).Error
}

// SaveWithLock updates the location if its version is unchanged and bumps the version
func (r *GormLocationRepository) SaveWithLock(ctx context.Context, location *inventory.Location) error {
	result := r.db.WithContext(ctx).
		Model(&inventory.Location{}).
		Where("id = ? AND tenant_id = ? AND version = ?", location.ID, location.TenantID, location.Version).
		Updates(map[string]interface{}{
			"name":             location.Name,
			"name_key":         location.NameKey,
			"description":      location.Description,
			"volume":           location.Volume,
			"remaining_volume": location.RemainingVolume,
			"version":          location.Version + 1,
			"updated_at":       location.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrOptimisticLock
	}
	location.Version++
	return nil
}

// Delete deletes a location within a tenant
func (r *GormLocationRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Scopes(tenantScope(tenantID)).Delete(&inventory.Location{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormLocationRepository implements LocationRepository
var _ inventory.LocationRepository = (*GormLocationRepository)(nil)
