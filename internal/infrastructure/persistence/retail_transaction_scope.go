package persistence

import (
	"context"

	appretail "github.com/retail-inventory/backend/internal/application/retail"
	"github.com/retail-inventory/backend/internal/domain/retail"
	"gorm.io/gorm"
)

// GormRetailTransactionScope runs tenant lifecycle writes in a GORM transaction
type GormRetailTransactionScope struct {
	db *gorm.DB
}

// NewGormRetailTransactionScope creates a new GormRetailTransactionScope
func NewGormRetailTransactionScope(db *gorm.DB) *GormRetailTransactionScope {
	return &GormRetailTransactionScope{db: db}
}

// Execute runs fn within a database transaction
func (s *GormRetailTransactionScope) Execute(ctx context.Context, fn func(repos appretail.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&retailTxRepositories{tx: tx})
	})
}

type retailTxRepositories struct {
	tx *gorm.DB
}

func (r *retailTxRepositories) RetailRepo() retail.RetailRepository {
	return NewGormRetailRepository(r.tx)
}

func (r *retailTxRepositories) SubscriptionRepo() retail.SubscriptionRepository {
	return NewGormSubscriptionRepository(r.tx)
}

func (r *retailTxRepositories) UserRepo() retail.UserRepository {
	return NewGormUserRepository(r.tx)
}

func (r *retailTxRepositories) Purger() retail.TenantPurger {
	return NewGormTenantPurger(r.tx)
}

var _ appretail.TransactionScope = (*GormRetailTransactionScope)(nil)
