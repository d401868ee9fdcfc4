package catalog

import (
	"context"

	"github.com/retail-inventory/backend/internal/domain/catalog"
)

// TransactionScope runs product changes that depend on stock atomically
type TransactionScope interface {
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories are bound to one transaction. ProductRepo locks
// the product it loads, so stock cannot be booked against it until commit.
type TransactionalRepositories interface {
	ProductRepo() catalog.ProductRepository
	StockCounter() StockCounter
}

// NoOpTransactionScope runs fn against plain repositories. Used by unit tests.
type NoOpTransactionScope struct {
	productRepo catalog.ProductRepository
	stock       StockCounter
}

// NewNoOpTransactionScope creates a NoOpTransactionScope
func NewNoOpTransactionScope(productRepo catalog.ProductRepository, stock StockCounter) *NoOpTransactionScope {
	return &NoOpTransactionScope{productRepo: productRepo, stock: stock}
}

func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

func (s *NoOpTransactionScope) ProductRepo() catalog.ProductRepository { return s.productRepo }
func (s *NoOpTransactionScope) StockCounter() StockCounter             { return s.stock }

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
