package report

import (
	"context"

	"github.com/retail-inventory/backend/internal/domain/inventory"
	"github.com/retail-inventory/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// DashboardCacheInvalidator drops a tenant's cached dashboard whenever its
// stock changes
type DashboardCacheInvalidator struct {
	cache  StatsCache
	logger *zap.Logger
}

// NewDashboardCacheInvalidator creates a new DashboardCacheInvalidator
func NewDashboardCacheInvalidator(cache StatsCache, logger *zap.Logger) *DashboardCacheInvalidator {
	return &DashboardCacheInvalidator{cache: cache, logger: logger}
}

// EventTypes returns the event types this handler is interested in
func (h *DashboardCacheInvalidator) EventTypes() []string {
	return inventory.StockEventTypes
}

// Handle invalidates the tenant's cache entry
func (h *DashboardCacheInvalidator) Handle(ctx context.Context, event shared.DomainEvent) error {
	if err := h.cache.Invalidate(ctx, event.TenantID()); err != nil {
		h.logger.Warn("Failed to invalidate dashboard cache",
			zap.String("tenant_id", event.TenantID().String()),
			zap.String("event_type", event.EventType()),
			zap.Error(err))
		return err
	}
	return nil
}
