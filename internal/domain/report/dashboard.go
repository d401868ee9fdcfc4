package report

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// DashboardStats is the per-tenant overview shown on the dashboard
type DashboardStats struct {
	TotalInventory int64             `json:"total_inventory"`
	TotalQuantity  int64             `json:"total_quantity"`
	LowStock       int64             `json:"low_stock"`
	OutOfStock     int64             `json:"out_of_stock"`
	Monthly        []MonthlyMovement `json:"monthly"`
}

// MonthlyMovement sums stock-in and stock-out quantities of one calendar month
type MonthlyMovement struct {
	Year     int    `json:"year"`
	Month    int    `json:"month"`
	Label    string `json:"label"`
	StockIn  int64  `json:"stock_in"`
	StockOut int64  `json:"stock_out"`
}

// RecordCounts are the record-level dashboard figures
type RecordCounts struct {
	Total         int64
	TotalQuantity int64
	LowStock      int64
	OutOfStock    int64
}

// MovementPoint is one movement row reduced to what the monthly series needs
type MovementPoint struct {
	Type      string
	Quantity  int64
	CreatedAt time.Time
}

// DashboardReader runs the read-only queries behind the dashboard
type DashboardReader interface {
	// CountRecords counts records, records with 0 < quantity < lowStockBelow
	// and records with quantity == 0
	CountRecords(ctx context.Context, tenantID uuid.UUID, lowStockBelow int) (RecordCounts, error)
	// MovementsSince returns in and out movements created at or after since
	MovementsSince(ctx context.Context, tenantID uuid.UUID, since time.Time) ([]MovementPoint, error)
}

// MonthWindowStart returns the first instant of the oldest month in a window
// of months calendar months ending with the month of now.
func MonthWindowStart(now time.Time, months int) time.Time {
	if months < 1 {
		months = 1
	}
	y, m, _ := now.Date()
	return time.Date(y, m-time.Month(months-1), 1, 0, 0, 0, 0, now.Location())
}

// BuildMonthlySeries buckets movements into months calendar months ending with
// the month of now, oldest first. Months without movements are zero-filled and
// move movements are ignored.
func BuildMonthlySeries(now time.Time, months int, points []MovementPoint) []MonthlyMovement {
	start := MonthWindowStart(now, months)
	if months < 1 {
		months = 1
	}

	series := make([]MonthlyMovement, months)
	index := make(map[string]int, months)
	for i := range series {
		t := start.AddDate(0, i, 0)
		key := monthKey(t)
		series[i] = MonthlyMovement{Year: t.Year(), Month: int(t.Month()), Label: key}
		index[key] = i
	}

	for _, p := range points {
		i, ok := index[monthKey(p.CreatedAt.In(now.Location()))]
		if !ok {
			continue
		}
		switch p.Type {
		case "in":
			series[i].StockIn += p.Quantity
		case "out":
			series[i].StockOut += p.Quantity
		}
	}
	return series
}

func monthKey(t time.Time) string {
	return fmt.Sprintf("%04d-%02d", t.Year(), int(t.Month()))
}
