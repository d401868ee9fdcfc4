package retail

import (
	"context"

	"github.com/retail-inventory/backend/internal/domain/retail"
)

// TransactionScope runs tenant lifecycle writes atomically
type TransactionScope interface {
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories exposes the tenant repositories bound to one transaction
type TransactionalRepositories interface {
	RetailRepo() retail.RetailRepository
	SubscriptionRepo() retail.SubscriptionRepository
	UserRepo() retail.UserRepository
	Purger() retail.TenantPurger
}

// NoOpTransactionScope runs fn against plain repositories. Used by unit tests.
type NoOpTransactionScope struct {
	retailRepo       retail.RetailRepository
	subscriptionRepo retail.SubscriptionRepository
	userRepo         retail.UserRepository
	purger           retail.TenantPurger
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories.
func NewNoOpTransactionScope(
	retailRepo retail.RetailRepository,
	subscriptionRepo retail.SubscriptionRepository,
	userRepo retail.UserRepository,
	purger retail.TenantPurger,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		retailRepo:       retailRepo,
		subscriptionRepo: subscriptionRepo,
		userRepo:         userRepo,
		purger:           purger,
	}
}

// Execute runs the function without a real transaction.
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

func (s *NoOpTransactionScope) RetailRepo() retail.RetailRepository { return s.retailRepo }
func (s *NoOpTransactionScope) SubscriptionRepo() retail.SubscriptionRepository {
	return s.subscriptionRepo
}
func (s *NoOpTransactionScope) UserRepo() retail.UserRepository { return s.userRepo }
func (s *NoOpTransactionScope) Purger() retail.TenantPurger     { return s.purger }

var _ TransactionScope = (*NoOpTransactionScope)(nil)
