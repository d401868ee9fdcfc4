package retail

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/retail-inventory/backend/internal/domain/retail"
	"github.com/retail-inventory/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// RetailService manages retail tenants and their subscriptions
type RetailService struct {
	txScope          TransactionScope
	retailRepo       retail.RetailRepository
	subscriptionRepo retail.SubscriptionRepository
	logger           *zap.Logger
	today            func() retail.Date
}

// NewRetailService creates a new RetailService
func NewRetailService(
	txScope TransactionScope,
	retailRepo retail.RetailRepository,
	subscriptionRepo retail.SubscriptionRepository,
	logger *zap.Logger,
) *RetailService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RetailService{
		txScope:          txScope,
		retailRepo:       retailRepo,
		subscriptionRepo: subscriptionRepo,
		logger:           logger,
		today:            retail.Today,
	}
}

// Create registers a retail with its owner account and subscription in one transaction
func (s *RetailService) Create(ctx context.Context, req CreateRetailRequest) (*RetailResponse, error) {
	s.logger.Info("Creating retail", zap.String("code", req.Code), zap.String("name", req.Name))

	start, err := retail.ParseDate(req.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := retail.ParseDate(req.EndDate)
	if err != nil {
		return nil, err
	}

	r, err := retail.NewRetail(req.Code, req.Name)
	if err != nil {
		return nil, err
	}
	if err := r.Update(req.Name, req.Email, req.Phone, req.Address); err != nil {
		return nil, err
	}
	sub, err := retail.NewSubscription(r.ID, start, end)
	if err != nil {
		return nil, err
	}
	owner, err := retail.NewOwner(r.ID, req.OwnerUsername, req.OwnerEmail, req.OwnerPassword)
	if err != nil {
		return nil, err
	}
	r.SyncStatus(sub, s.today())

	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		exists, err := repos.RetailRepo().ExistsByCode(ctx, r.Code, uuid.Nil)
		if err != nil {
			return err
		}
		if exists {
			return shared.NewDomainError(shared.CodeAlreadyExists, "Retail code already exists")
		}
		exists, err = repos.UserRepo().ExistsByUsername(ctx, owner.Username)
		if err != nil {
			return err
		}
		if exists {
			return shared.NewDomainError(shared.CodeAlreadyExists, "Username already exists")
		}

		if err := repos.RetailRepo().Save(ctx, r); err != nil {
			return err
		}
		if err := repos.SubscriptionRepo().Save(ctx, sub); err != nil {
			return err
		}
		return repos.UserRepo().Save(ctx, owner)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Retail created",
		zap.String("retail_id", r.ID.String()),
		zap.String("owner", owner.Username),
		zap.String("status", string(r.Status)))

	resp := ToRetailResponse(r, sub)
	return &resp, nil
}

// GetByID retrieves a retail with its subscription
func (s *RetailService) GetByID(ctx context.Context, id uuid.UUID) (*RetailResponse, error) {
	r, err := s.retailRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	sub, err := s.findSubscription(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToRetailResponse(r, sub)
	return &resp, nil
}

// List retrieves retails with search, status filter and pagination
func (s *RetailService) List(ctx context.Context, filter RetailListFilter) ([]RetailResponse, int64, error) {
	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Search:   filter.Search,
	}
	domainFilter.Normalize()
	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}

	retails, err := s.retailRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.retailRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	ids := make([]uuid.UUID, len(retails))
	for i := range retails {
		ids[i] = retails[i].ID
	}
	subs, err := s.subscriptionsByRetail(ctx, ids)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]RetailResponse, len(retails))
	for i := range retails {
		responses[i] = ToRetailResponse(&retails[i], subs[retails[i].ID])
	}
	return responses, total, nil
}

// Update changes a retail's profile and re-derives its status
func (s *RetailService) Update(ctx context.Context, id uuid.UUID, req UpdateRetailRequest) (*RetailResponse, error) {
	r, err := s.retailRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	sub, err := s.findSubscription(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := r.Update(
		pick(req.Name, r.Name),
		pick(req.Email, r.Email),
		pick(req.Phone, r.Phone),
		pick(req.Address, r.Address),
	); err != nil {
		return nil, err
	}
	r.SyncStatus(sub, s.today())

	if err := s.retailRepo.Save(ctx, r); err != nil {
		return nil, err
	}
	resp := ToRetailResponse(r, sub)
	return &resp, nil
}

// Extend moves the subscription end date and re-derives the status
func (s *RetailService) Extend(ctx context.Context, id uuid.UUID, req ExtendSubscriptionRequest) (*RetailResponse, error) {
	end, err := retail.ParseDate(req.EndDate)
	if err != nil {
		return nil, err
	}

	var (
		r   *retail.Retail
		sub *retail.Subscription
	)
	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		r, err = repos.RetailRepo().FindByID(ctx, id)
		if err != nil {
			return err
		}
		sub, err = repos.SubscriptionRepo().FindByRetailID(ctx, id)
		if err != nil {
			return err
		}
		if err := sub.Extend(end); err != nil {
			return err
		}
		if err := repos.SubscriptionRepo().Save(ctx, sub); err != nil {
			return err
		}
		if r.SyncStatus(sub, s.today()) {
			return repos.RetailRepo().Save(ctx, r)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Subscription extended",
		zap.String("retail_id", id.String()),
		zap.String("end_date", end.String()),
		zap.String("status", string(r.Status)))

	resp := ToRetailResponse(r, sub)
	return &resp, nil
}

// Delete removes a retail and all of its data. Any failure rolls the whole
// purge back and surfaces as TRANSACTION_FAILED.
func (s *RetailService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.retailRepo.FindByID(ctx, id); err != nil {
		return err
	}

	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		return repos.Purger().Purge(ctx, id)
	})
	if err != nil {
		s.logger.Error("Failed to delete retail", zap.String("retail_id", id.String()), zap.Error(err))
		return shared.NewDomainError(shared.CodeTransactionFailed, "Failed to delete retail, no data was removed")
	}

	s.logger.Info("Retail deleted", zap.String("retail_id", id.String()))
	return nil
}

// RefreshStatuses re-derives the status of every retail from today's date
func (s *RetailService) RefreshStatuses(ctx context.Context) (*RefreshStatusResponse, error) {
	ids, err := s.retailRepo.FindAllIDs(ctx)
	if err != nil {
		return nil, err
	}
	subs, err := s.subscriptionsByRetail(ctx, ids)
	if err != nil {
		return nil, err
	}

	today := s.today()
	result := &RefreshStatusResponse{Checked: len(ids)}
	for _, id := range ids {
		r, err := s.retailRepo.FindByID(ctx, id)
		if err != nil {
			if shared.IsNotFound(err) {
				continue
			}
			return nil, err
		}
		if !r.SyncStatus(subs[id], today) {
			continue
		}
		if err := s.retailRepo.Save(ctx, r); err != nil {
			return nil, err
		}
		if r.IsActive() {
			result.Activated++
		} else {
			result.Deactivated++
		}
	}

	if result.Activated > 0 || result.Deactivated > 0 {
		s.logger.Info("Retail statuses refreshed",
			zap.Int("checked", result.Checked),
			zap.Int("activated", result.Activated),
			zap.Int("deactivated", result.Deactivated))
	}
	return result, nil
}

func (s *RetailService) findSubscription(ctx context.Context, retailID uuid.UUID) (*retail.Subscription, error) {
	sub, err := s.subscriptionRepo.FindByRetailID(ctx, retailID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return sub, nil
}

func (s *RetailService) subscriptionsByRetail(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*retail.Subscription, error) {
	out := make(map[uuid.UUID]*retail.Subscription, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	subs, err := s.subscriptionRepo.FindByRetailIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range subs {
		out[subs[i].RetailID] = &subs[i]
	}
	return out, nil
}

func pick(v *string, fallback string) string {
	if v != nil {
		return *v
	}
	return fallback
}
