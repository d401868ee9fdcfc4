package report

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/retail-inventory/backend/internal/domain/report"
	"go.uber.org/zap"
)

// StatsCache stores computed dashboard stats per tenant
type StatsCache interface {
	// Get returns (nil, nil) on a miss
	Get(ctx context.Context, tenantID uuid.UUID) (*report.DashboardStats, error)
	Set(ctx context.Context, tenantID uuid.UUID, stats *report.DashboardStats, ttl time.Duration) error
	Invalidate(ctx context.Context, tenantID uuid.UUID) error
}

// DashboardOptions tunes the dashboard computation
type DashboardOptions struct {
	Months            int
	LowStockThreshold int
	CacheTTL          time.Duration
}

// DefaultDashboardOptions returns six months, low stock below 5 and a five minute cache
func DefaultDashboardOptions() DashboardOptions {
	return DashboardOptions{Months: 6, LowStockThreshold: 5, CacheTTL: 5 * time.Minute}
}

// DashboardService computes the tenant dashboard
type DashboardService struct {
	reader report.DashboardReader
	cache  StatsCache
	opts   DashboardOptions
	logger *zap.Logger
	now    func() time.Time
}

// NewDashboardService creates a new DashboardService. cache may be nil.
func NewDashboardService(reader report.DashboardReader, cache StatsCache, opts DashboardOptions, logger *zap.Logger) *DashboardService {
	if opts.Months < 1 {
		opts.Months = 6
	}
	if opts.LowStockThreshold < 1 {
		opts.LowStockThreshold = 5
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardService{
		reader: reader,
		cache:  cache,
		opts:   opts,
		logger: logger,
		now:    time.Now,
	}
}

// GetStats returns the dashboard stats, served from cache when possible.
// Cache failures degrade to a direct computation.
func (s *DashboardService) GetStats(ctx context.Context, tenantID uuid.UUID) (*report.DashboardStats, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, tenantID)
		if err != nil {
			s.logger.Warn("Dashboard cache read failed", zap.String("tenant_id", tenantID.String()), zap.Error(err))
		} else if cached != nil {
			return cached, nil
		}
	}

	stats, err := s.Compute(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, tenantID, stats, s.opts.CacheTTL); err != nil {
			s.logger.Warn("Dashboard cache write failed", zap.String("tenant_id", tenantID.String()), zap.Error(err))
		}
	}
	return stats, nil
}

// Compute builds the stats straight from the database
func (s *DashboardService) Compute(ctx context.Context, tenantID uuid.UUID) (*report.DashboardStats, error) {
	counts, err := s.reader.CountRecords(ctx, tenantID, s.opts.LowStockThreshold)
	if err != nil {
		return nil, err
	}

	now := s.now()
	points, err := s.reader.MovementsSince(ctx, tenantID, report.MonthWindowStart(now, s.opts.Months))
	if err != nil {
		return nil, err
	}

	return &report.DashboardStats{
		TotalInventory: counts.Total,
		TotalQuantity:  counts.TotalQuantity,
		LowStock:       counts.LowStock,
		OutOfStock:     counts.OutOfStock,
		Monthly:        report.BuildMonthlySeries(now, s.opts.Months, points),
	}, nil
}
