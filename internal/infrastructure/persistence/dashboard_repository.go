package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/retail-inventory/backend/internal/domain/inventory"
	"github.com/retail-inventory/backend/internal/domain/report"
	"gorm.io/gorm"
)

// GormDashboardReader runs the dashboard aggregates
type GormDashboardReader struct {
	db *gorm.DB
}

// NewGormDashboardReader creates a new GormDashboardReader
func NewGormDashboardReader(db *gorm.DB) *GormDashboardReader {
	return &GormDashboardReader{db: db}
}

type recordCountsRow struct {
	Total         int64
	TotalQuantity int64
	LowStock      int64
	OutOfStock    int64
}

// CountRecords aggregates the tenant's inventory records in one pass
func (r *GormDashboardReader) CountRecords(ctx context.Context, tenantID uuid.UUID, lowStockBelow int) (report.RecordCounts, error) {
	var row recordCountsRow
	err := r.db.WithContext(ctx).Model(&inventory.InventoryRecord{}).
		Select(`COUNT(*) AS total,
			COALESCE(SUM(quantity), 0) AS total_quantity,
			COALESCE(SUM(CASE WHEN quantity > 0 AND quantity < ? THEN 1 ELSE 0 END), 0) AS low_stock,
			COALESCE(SUM(CASE WHEN quantity = 0 THEN 1 ELSE 0 END), 0) AS out_of_stock`, lowStockBelow).
		Scopes(tenantScope(tenantID)).
		Scan(&row).Error
	if err != nil {
		return report.RecordCounts{}, err
	}
	return report.RecordCounts(row), nil
}

// MovementsSince loads in and out movements from since onwards
func (r *GormDashboardReader) MovementsSince(ctx context.Context, tenantID uuid.UUID, since time.Time) ([]report.MovementPoint, error) {
	var points []report.MovementPoint
	err := r.db.WithContext(ctx).Model(&inventory.Movement{}).
		Select("type, quantity, created_at").
		Scopes(tenantScope(tenantID)).
		Where("type IN ?", []inventory.MovementType{inventory.MovementTypeIn, inventory.MovementTypeOut}).
		Where("created_at >= ?", since).
		Order("created_at ASC").
		Scan(&points).Error
	if err != nil {
		return nil, err
	}
	return points, nil
}

var _ report.DashboardReader = (*GormDashboardReader)(nil)
