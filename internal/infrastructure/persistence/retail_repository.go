package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/retail-inventory/backend/internal/domain/retail"
	"github.com/retail-inventory/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormRetailRepository implements RetailRepository using GORM.
// Retails are the tenants themselves, so queries are not tenant scoped.
type GormRetailRepository struct {
	db *gorm.DB
}

// NewGormRetailRepository creates a new GormRetailRepository
func NewGormRetailRepository(db *gorm.DB) *GormRetailRepository {
	return &GormRetailRepository{db: db}
}

// FindByID finds a retail by ID
func (r *GormRetailRepository) FindByID(ctx context.Context, id uuid.UUID) (*retail.Retail, error) {
	var rt retail.Retail
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&rt).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &rt, nil
}

// FindAll lists retails with optional status filter and search
func (r *GormRetailRepository) FindAll(ctx context.Context, filter shared.Filter) ([]retail.Retail, error) {
	var retails []retail.Retail
	query := applyPaging(r.filtered(ctx, filter), filter, RetailSortFields, "created_at")
	if err := query.Find(&retails).Error; err != nil {
		return nil, err
	}
	return retails, nil
}

// Count counts retails matching the filter
func (r *GormRetailRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	if err := r.filtered(ctx, filter).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormRetailRepository) filtered(ctx context.Context, filter shared.Filter) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&retail.Retail{})
	if filter.Search != "" {
		pattern := likePattern(filter.Search)
		query = query.Where("LOWER(name) LIKE ? OR LOWER(code) LIKE ?", pattern, pattern)
	}
	if status, ok := filter.Filters["status"]; ok && status != "" {
		query = query.Where("status = ?", status)
	}
	return query
}

// FindAllIDs returns the ID of every retail
func (r *GormRetailRepository) FindAllIDs(ctx context.Context) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	if err := r.db.WithContext(ctx).Model(&retail.Retail{}).
		Order("created_at ASC").
		Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

// ExistsByCode checks whether a retail code is taken
func (r *GormRetailRepository) ExistsByCode(ctx context.Context, code string, excludeID uuid.UUID) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&retail.Retail{}).Where("code = ?", code)
	if excludeID != uuid.Nil {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates or updates a retail
func (r *GormRetailRepository) Save(ctx context.Context, rt *retail.Retail) error {
	return r.db.WithContext(ctx).Save(rt).Error
}

// GormSubscriptionRepository implements SubscriptionRepository using GORM
type GormSubscriptionRepository struct {
	db *gorm.DB
}

// NewGormSubscriptionRepository creates a new GormSubscriptionRepository
func NewGormSubscriptionRepository(db *gorm.DB) *GormSubscriptionRepository {
	return &GormSubscriptionRepository{db: db}
}

// FindByRetailID finds the subscription of a retail
func (r *GormSubscriptionRepository) FindByRetailID(ctx context.Context, retailID uuid.UUID) (*retail.Subscription, error) {
	var sub retail.Subscription
	if err := r.db.WithContext(ctx).Where("retail_id = ?", retailID).First(&sub).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &sub, nil
}

// FindByRetailIDs loads the subscriptions of several retails in one query
func (r *GormSubscriptionRepository) FindByRetailIDs(ctx context.Context, retailIDs []uuid.UUID) ([]retail.Subscription, error) {
	if len(retailIDs) == 0 {
		return []retail.Subscription{}, nil
	}
	var subs []retail.Subscription
	if err := r.db.WithContext(ctx).Where("retail_id IN ?", retailIDs).Find(&subs).Error; err != nil {
		return nil, err
	}
	return subs, nil
}

// Save creates or updates a subscription
func (r *GormSubscriptionRepository) Save(ctx context.Context, sub *retail.Subscription) error {
	return r.db.WithContext(ctx).Save(sub).Error
}

// GormUserRepository implements UserRepository using GORM
type GormUserRepository struct {
	db *gorm.DB
}

// NewGormUserRepository creates a new GormUserRepository
func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

// FindByUsername finds a user by its normalized username
func (r *GormUserRepository) FindByUsername(ctx context.Context, username string) (*retail.User, error) {
	var user retail.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// ExistsByUsername checks whether a username is taken
func (r *GormUserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&retail.User{}).
		Where("username = ?", username).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates or updates a user
func (r *GormUserRepository) Save(ctx context.Context, user *retail.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

var (
	_ retail.RetailRepository       = (*GormRetailRepository)(nil)
	_ retail.SubscriptionRepository = (*GormSubscriptionRepository)(nil)
	_ retail.UserRepository         = (*GormUserRepository)(nil)
)
