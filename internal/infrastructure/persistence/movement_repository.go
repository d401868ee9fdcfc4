package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/retail-inventory/backend/internal/domain/inventory"
	"github.com/retail-inventory/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormMovementRepository implements the append-only MovementRepository
type GormMovementRepository struct {
	db *gorm.DB
}

// NewGormMovementRepository creates a new GormMovementRepository
func NewGormMovementRepository(db *gorm.DB) *GormMovementRepository {
	return &GormMovementRepository{db: db}
}

// FindByIDForTenant finds a movement by ID within a tenant
func (r *GormMovementRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*inventory.Movement, error) {
	var m inventory.Movement
	if err := r.db.WithContext(ctx).Scopes(tenantScope(tenantID)).
		Where("id = ?", id).
		First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &m, nil
}

// FindAllForTenant lists movements
func (r *GormMovementRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter inventory.MovementFilter) ([]inventory.Movement, error) {
	var movements []inventory.Movement
	query := applyPaging(r.filtered(ctx, tenantID, filter), filter.Filter, MovementSortFields, "created_at")
	if err := query.Find(&movements).Error; err != nil {
		return nil, err
	}
	return movements, nil
}

// CountForTenant counts movements matching the filter
func (r *GormMovementRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter inventory.MovementFilter) (int64, error) {
	var count int64
	if err := r.filtered(ctx, tenantID, filter).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// filtered applies the movement filter. To is a calendar day and is inclusive.
func (r *GormMovementRepository) filtered(ctx context.Context, tenantID uuid.UUID, filter inventory.MovementFilter) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&inventory.Movement{}).Scopes(tenantScope(tenantID))
	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}
	if filter.ProductID != nil {
		query = query.Where("product_id = ?", *filter.ProductID)
	}
	if filter.LocationID != nil {
		query = query.Where("from_location_id = ? OR to_location_id = ?", *filter.LocationID, *filter.LocationID)
	}
	if filter.From != nil {
		query = query.Where("created_at >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("created_at < ?", filter.To.Add(24*time.Hour))
	}
	return query
}

// Create appends a movement
func (r *GormMovementRepository) Create(ctx context.Context, movement *inventory.Movement) error {
	return r.db.WithContext(ctx).Create(movement).Error
}

// Ensure GormMovementRepository implements MovementRepository
var _ inventory.MovementRepository = (*GormMovementRepository)(nil)
