package persistence

import (
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/retail-inventory/backend/internal/domain/catalog"
	"github.com/retail-inventory/backend/internal/domain/inventory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// newTestDB opens an in-memory sqlite database with the full schema
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// every connection to :memory: is a separate database
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(Models()...))
	return db
}

// newMockDB opens a gorm handle backed by sqlmock with the postgres dialect
func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})
	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return gormDB, mock, mockDB
}

func seedProduct(t *testing.T, db *gorm.DB, tenantID uuid.UUID, code string, volume int) *catalog.Product {
	t.Helper()
	p, err := catalog.NewProduct(tenantID, code, "Product "+code, decimal.NewFromInt(10), volume)
	require.NoError(t, err)
	require.NoError(t, db.Create(p).Error)
	return p
}

func seedLocation(t *testing.T, db *gorm.DB, tenantID uuid.UUID, name string, volume int) *inventory.Location {
	t.Helper()
	l, err := inventory.NewLocation(tenantID, name, "", volume)
	require.NoError(t, err)
	require.NoError(t, db.Create(l).Error)
	return l
}

func seedRecord(t *testing.T, db *gorm.DB, tenantID, productID, locationID uuid.UUID, qty int) *inventory.InventoryRecord {
	t.Helper()
	r, err := inventory.NewInventoryRecord(tenantID, productID, locationID, nil, qty)
	require.NoError(t, err)
	require.NoError(t, db.Create(r).Error)
	return r
}
