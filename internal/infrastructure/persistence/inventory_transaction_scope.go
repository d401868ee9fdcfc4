package persistence

import (
	"context"

	appinv "github.com/retail-inventory/backend/internal/application/inventory"
	"github.com/retail-inventory/backend/internal/domain/catalog"
	"github.com/retail-inventory/backend/internal/domain/inventory"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormInventoryTransactionScope implements the stock TransactionScope using
// GORM transactions.
type GormInventoryTransactionScope struct {
	db *gorm.DB
}

// NewGormInventoryTransactionScope creates a new GormInventoryTransactionScope.
func NewGormInventoryTransactionScope(db *gorm.DB) *GormInventoryTransactionScope {
	return &GormInventoryTransactionScope{db: db}
}

// Execute runs fn within a database transaction.
// If fn returns an error, the transaction is rolled back.
func (s *GormInventoryTransactionScope) Execute(ctx context.Context, fn func(repos appinv.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&inventoryTxRepositories{tx: tx})
	})
}

type inventoryTxRepositories struct {
	tx *gorm.DB
}

func (r *inventoryTxRepositories) RecordRepo() inventory.InventoryRecordRepository {
	return NewGormInventoryRecordRepository(r.tx)
}

func (r *inventoryTxRepositories) LocationRepo() inventory.LocationRepository {
	return NewGormLocationRepository(r.tx)
}

func (r *inventoryTxRepositories) MovementRepo() inventory.MovementRepository {
	return NewGormMovementRepository(r.tx)
}

// ProductRepo reads products under a shared lock so a concurrent volume
// change waits for the stock operation to commit
func (r *inventoryTxRepositories) ProductRepo() catalog.ProductRepository {
	return NewGormProductRepository(r.tx).withLock(clause.LockingStrengthShare)
}

// Ensure GormInventoryTransactionScope implements TransactionScope
var _ appinv.TransactionScope = (*GormInventoryTransactionScope)(nil)

var _ appinv.TransactionalRepositories = (*inventoryTxRepositories)(nil)
