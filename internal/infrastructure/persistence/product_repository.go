package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/retail-inventory/backend/internal/domain/catalog"
	"github.com/retail-inventory/backend/internal/domain/shared"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormProductRepository implements ProductRepository using GORM
type GormProductRepository struct {
	db *gorm.DB
	// lock is the row lock strength taken by FindByIDForTenant, if any
	lock string
}

// NewGormProductRepository creates a new GormProductRepository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// withLock returns a copy whose single-product reads lock the row until the
// surrounding transaction ends. SQLite ignores the clause.
func (r *GormProductRepository) withLock(strength string) *GormProductRepository {
	return &GormProductRepository{db: r.db, lock: strength}
}

// FindByIDForTenant finds a product by ID within a tenant
func (r *GormProductRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*catalog.Product, error) {
	var product catalog.Product
	query := r.db.WithContext(ctx).Scopes(tenantScope(tenantID)).Where("id = ?", id)
	if r.lock != "" {
		query = query.Clauses(clause.Locking{Strength: r.lock})
	}
	if err := query.First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &product, nil
}

// FindByIDs finds multiple products by their IDs
func (r *GormProductRepository) FindByIDs(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]catalog.Product, error) {
	if len(ids) == 0 {
		return []catalog.Product{}, nil
	}
	var products []catalog.Product
	if err := r.db.WithContext(ctx).Scopes(tenantScope(tenantID)).
		Where("id IN ?", ids).
		Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// FindAllForTenant lists products with search, classification filters and paging
func (r *GormProductRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]catalog.Product, error) {
	var products []catalog.Product
	query := applyPaging(r.filtered(ctx, tenantID, filter), filter, ProductSortFields, "created_at")
	if err := query.Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// CountForTenant counts products matching the filter
func (r *GormProductRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	if err := r.filtered(ctx, tenantID, filter).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormProductRepository) filtered(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&catalog.Product{}).Scopes(tenantScope(tenantID))
	if filter.Search != "" {
		pattern := likePattern(filter.Search)
		query = query.Where("LOWER(name) LIKE ? OR LOWER(code) LIKE ?", pattern, pattern)
	}
	for _, column := range []string{"category_id", "brand_id", "type_id"} {
		if v, ok := filter.Filters[column]; ok {
			query = query.Where(column+" = ?", v)
		}
	}
	return query
}

// ExistsByCode checks code uniqueness within a tenant
func (r *GormProductRepository) ExistsByCode(ctx context.Context, tenantID uuid.UUID, code string, excludeID uuid.UUID) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&catalog.Product{}).Scopes(tenantScope(tenantID)).
		Where("code = ?", code)
	if excludeID != uuid.Nil {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// CountByClassification counts products referencing a brand, category or type
func (r *GormProductRepository) CountByClassification(ctx context.Context, tenantID uuid.UUID, kind catalog.ClassificationKind, id uuid.UUID) (int64, error) {
	column, err := classificationColumn(kind)
	if err != nil {
		return 0, err
	}
	var count int64
	if err := r.db.WithContext(ctx).Model(&catalog.Product{}).Scopes(tenantScope(tenantID)).
		Where(column+" = ?", id).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a product
func (r *GormProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	return r.db.WithContext(ctx).Save(product).Error
}

// Delete deletes a product within a tenant
func (r *GormProductRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Scopes(tenantScope(tenantID)).Delete(&catalog.Product{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func classificationColumn(kind catalog.ClassificationKind) (string, error) {
	switch kind {
	case catalog.KindBrand:
		return "brand_id", nil
	case catalog.KindCategory:
		return "category_id", nil
	case catalog.KindType:
		return "type_id", nil
	}
	return "", shared.NewValidationError("Unknown classification kind")
}

// Ensure GormProductRepository implements ProductRepository
var _ catalog.ProductRepository = (*GormProductRepository)(nil)
