package inventory

import (
	"context"

	"github.com/retail-inventory/backend/internal/domain/catalog"
	"github.com/retail-inventory/backend/internal/domain/inventory"
)

// TransactionScope runs stock operations atomically. If fn returns an error
// every write made through repos is rolled back.
type TransactionScope interface {
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories exposes the repositories a stock operation
// touches, all bound to the same database transaction.
type TransactionalRepositories interface {
	RecordRepo() inventory.InventoryRecordRepository
	LocationRepo() inventory.LocationRepository
	MovementRepo() inventory.MovementRepository
	ProductRepo() catalog.ProductRepository
}

// NoOpTransactionScope runs fn against plain repositories without a
// transaction. Used by unit tests.
type NoOpTransactionScope struct {
	recordRepo   inventory.InventoryRecordRepository
	locationRepo inventory.LocationRepository
	movementRepo inventory.MovementRepository
	productRepo  catalog.ProductRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories.
func NewNoOpTransactionScope(
	recordRepo inventory.InventoryRecordRepository,
	locationRepo inventory.LocationRepository,
	movementRepo inventory.MovementRepository,
	productRepo catalog.ProductRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		recordRepo:   recordRepo,
		locationRepo: locationRepo,
		movementRepo: movementRepo,
		productRepo:  productRepo,
	}
}

// Execute runs the function without a real transaction.
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

func (s *NoOpTransactionScope) RecordRepo() inventory.InventoryRecordRepository { return s.recordRepo }
func (s *NoOpTransactionScope) LocationRepo() inventory.LocationRepository      { return s.locationRepo }
func (s *NoOpTransactionScope) MovementRepo() inventory.MovementRepository      { return s.movementRepo }
func (s *NoOpTransactionScope) ProductRepo() catalog.ProductRepository          { return s.productRepo }

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
