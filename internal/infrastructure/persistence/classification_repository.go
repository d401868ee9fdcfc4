package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/retail-inventory/backend/internal/domain/catalog"
	"github.com/retail-inventory/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormClassificationRepository stores brands, categories and types in one table
type GormClassificationRepository struct {
	db *gorm.DB
}

// NewGormClassificationRepository creates a new GormClassificationRepository
func NewGormClassificationRepository(db *gorm.DB) *GormClassificationRepository {
	return &GormClassificationRepository{db: db}
}

func (r *GormClassificationRepository) scoped(ctx context.Context, tenantID uuid.UUID, kind catalog.ClassificationKind) *gorm.DB {
	return r.db.WithContext(ctx).Model(&catalog.Classification{}).
		Scopes(tenantScope(tenantID)).
		Where("kind = ?", kind)
}

// FindByIDForTenant finds a classification of the given kind
func (r *GormClassificationRepository) FindByIDForTenant(ctx context.Context, tenantID uuid.UUID, kind catalog.ClassificationKind, id uuid.UUID) (*catalog.Classification, error) {
	var c catalog.Classification
	if err := r.scoped(ctx, tenantID, kind).Where("id = ?", id).First(&c).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

// FindAllForTenant lists classifications of one kind
func (r *GormClassificationRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, kind catalog.ClassificationKind, filter shared.Filter) ([]catalog.Classification, error) {
	var items []catalog.Classification
	query := applyPaging(r.filtered(ctx, tenantID, kind, filter), filter, ClassificationSortFields, "name")
	if err := query.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// CountForTenant counts classifications of one kind
func (r *GormClassificationRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, kind catalog.ClassificationKind, filter shared.Filter) (int64, error) {
	var count int64
	if err := r.filtered(ctx, tenantID, kind, filter).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormClassificationRepository) filtered(ctx context.Context, tenantID uuid.UUID, kind catalog.ClassificationKind, filter shared.Filter) *gorm.DB {
	query := r.scoped(ctx, tenantID, kind)
	if filter.Search != "" {
		query = query.Where("name_key LIKE ?", likePattern(filter.Search))
	}
	return query
}

// ExistsByName checks name uniqueness per tenant and kind
func (r *GormClassificationRepository) ExistsByName(ctx context.Context, tenantID uuid.UUID, kind catalog.ClassificationKind, nameKey string, excludeID uuid.UUID) (bool, error) {
	var count int64
	query := r.scoped(ctx, tenantID, kind).Where("name_key = ?", nameKey)
	if excludeID != uuid.Nil {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates or updates a classification
func (r *GormClassificationRepository) Save(ctx context.Context, c *catalog.Classification) error {
	return r.db.WithContext(ctx).Save(c).Error
}

// Delete deletes a classification of the given kind
func (r *GormClassificationRepository) Delete(ctx context.Context, tenantID uuid.UUID, kind catalog.ClassificationKind, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Scopes(tenantScope(tenantID)).
		Where("kind = ? AND id = ?", kind, id).
		Delete(&catalog.Classification{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormClassificationRepository implements ClassificationRepository
var _ catalog.ClassificationRepository = (*GormClassificationRepository)(nil)
