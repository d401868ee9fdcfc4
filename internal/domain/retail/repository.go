package retail

import (
	"context"

	"github.com/google/uuid"
	"github.com/retail-inventory/backend/internal/domain/shared"
)

// RetailRepository defines persistence operations for retails
type RetailRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Retail, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Retail, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	// FindAllIDs returns every retail ID, used by the status refresh sweep
	FindAllIDs(ctx context.Context) ([]uuid.UUID, error)
	ExistsByCode(ctx context.Context, code string, excludeID uuid.UUID) (bool, error)
	Save(ctx context.Context, retail *Retail) error
}

// SubscriptionRepository defines persistence operations for subscriptions
type SubscriptionRepository interface {
	FindByRetailID(ctx context.Context, retailID uuid.UUID) (*Subscription, error)
	FindByRetailIDs(ctx context.Context, retailIDs []uuid.UUID) ([]Subscription, error)
	Save(ctx context.Context, sub *Subscription) error
}

// UserRepository defines persistence operations for users
type UserRepository interface {
	FindByUsername(ctx context.Context, username string) (*User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	Save(ctx context.Context, user *User) error
}

// TenantPurger removes a retail and every row scoped to it
type TenantPurger interface {
	// Purge deletes movements, inventory records, products, classifications,
	// suppliers, locations, users, subscriptions and finally the retail
	// itself. It must run inside the caller's transaction.
	Purge(ctx context.Context, retailID uuid.UUID) error
}
