package persistence

import (
	"context"

	appcatalog "github.com/retail-inventory/backend/internal/application/catalog"
	"github.com/retail-inventory/backend/internal/domain/catalog"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormCatalogTransactionScope implements the catalog TransactionScope using
// GORM transactions.
type GormCatalogTransactionScope struct {
	db *gorm.DB
}

// NewGormCatalogTransactionScope creates a new GormCatalogTransactionScope.
func NewGormCatalogTransactionScope(db *gorm.DB) *GormCatalogTransactionScope {
	return &GormCatalogTransactionScope{db: db}
}

// Execute runs fn within a database transaction.
func (s *GormCatalogTransactionScope) Execute(ctx context.Context, fn func(repos appcatalog.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&catalogTxRepositories{tx: tx})
	})
}

type catalogTxRepositories struct {
	tx *gorm.DB
}

// ProductRepo loads products FOR UPDATE, serializing against stock
// operations that hold the row FOR SHARE
func (r *catalogTxRepositories) ProductRepo() catalog.ProductRepository {
	return NewGormProductRepository(r.tx).withLock(clause.LockingStrengthUpdate)
}

func (r *catalogTxRepositories) StockCounter() appcatalog.StockCounter {
	return NewGormInventoryRecordRepository(r.tx)
}

var _ appcatalog.TransactionScope = (*GormCatalogTransactionScope)(nil)

var _ appcatalog.TransactionalRepositories = (*catalogTxRepositories)(nil)
