package inventory

import (
	"testing"

	"github.com/google/uuid"
	"github.com/retail-inventory/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type ledgerFixture struct {
	tenant  uuid.UUID
	product uuid.UUID
	src     *Location
	dst     *Location
	record  *InventoryRecord
}

// newLedgerFixture builds a source location holding qty units of volume
// unitVolume and an empty destination with the given capacity and remaining volume.
func newLedgerFixture(t *testing.T, unitVolume, qty, dstVolume, dstRemaining int) *ledgerFixture {
	t.Helper()
	tenant := uuid.New()
	product := uuid.New()

	src, err := NewLocation(tenant, "Warehouse", "", 1000)
	require.NoError(t, err)
	require.NoError(t, src.Occupy(unitVolume*qty))

	dst, err := NewLocation(tenant, "Store", "", dstVolume)
	require.NoError(t, err)
	dst.RemainingVolume = dstRemaining

	rec, err := NewInventoryRecord(tenant, product, src.ID, nil, qty)
	require.NoError(t, err)

	return &ledgerFixture{tenant: tenant, product: product, src: src, dst: dst, record: rec}
}

func TestStockLedger_MoveStock(t *testing.T) {
	ledger := NewStockLedger()

	t.Run("moves into free space", func(t *testing.T) {
		f := newLedgerFixture(t, 5, 10, 100, 40)

		res, err := ledger.MoveStock(MoveRequest{
			Source: f.record, SourceLocation: f.src,
			DestinationLocation: f.dst,
			UnitVolume:          5, Quantity: 5,
		})
		require.NoError(t, err)

		assert.Equal(t, 15, f.dst.RemainingVolume)
		assert.Equal(t, 15, res.DestinationRemaining)
		assert.Equal(t, 5, f.record.Quantity)
		assert.True(t, res.DestinationCreated)
		assert.Equal(t, 5, res.Destination.Quantity)
		assert.Equal(t, f.dst.ID, res.Destination.LocationID)
		assert.Equal(t, 1000-25, f.src.RemainingVolume)
		assert.Equal(t, MovementTypeMove, res.Movement.Type)
		assert.Equal(t, f.src.ID, *res.Movement.FromLocationID)
		assert.Equal(t, f.dst.ID, *res.Movement.ToLocationID)
		assert.Len(t, f.record.GetDomainEvents(), 1)
	})

	t.Run("rejects when destination lacks room and changes nothing", func(t *testing.T) {
		f := newLedgerFixture(t, 5, 10, 100, 40)
		srcRemaining := f.src.RemainingVolume

		res, err := ledger.MoveStock(MoveRequest{
			Source: f.record, SourceLocation: f.src,
			DestinationLocation: f.dst,
			UnitVolume:          5, Quantity: 10,
		})
		require.Error(t, err)
		assert.Nil(t, res)
		assert.ErrorIs(t, err, shared.ErrCapacityExceeded)
		assert.Equal(t, "Not enough space in the destination location.", err.Error())

		assert.Equal(t, 40, f.dst.RemainingVolume)
		assert.Equal(t, srcRemaining, f.src.RemainingVolume)
		assert.Equal(t, 10, f.record.Quantity)
		assert.Empty(t, f.record.GetDomainEvents())
	})

	t.Run("moving everything empties the source", func(t *testing.T) {
		f := newLedgerFixture(t, 2, 10, 100, 100)
		existing, err := NewInventoryRecord(f.tenant, f.product, f.dst.ID, nil, 3)
		require.NoError(t, err)
		require.NoError(t, f.dst.Occupy(6))

		res, err := ledger.MoveStock(MoveRequest{
			Source: f.record, SourceLocation: f.src,
			Destination: existing, DestinationLocation: f.dst,
			UnitVolume: 2, Quantity: 10,
		})
		require.NoError(t, err)

		assert.True(t, res.SourceDeleted)
		assert.False(t, res.DestinationCreated)
		assert.Same(t, existing, res.Destination)
		assert.Equal(t, 13, existing.Quantity)
		assert.Equal(t, 0, f.record.Quantity)
		assert.Equal(t, 100-26, f.dst.RemainingVolume)
		assert.Equal(t, 1000, f.src.RemainingVolume)
	})

	t.Run("new destination inherits supplier", func(t *testing.T) {
		f := newLedgerFixture(t, 1, 4, 10, 10)
		supplier := uuid.New()
		f.record.SupplierID = &supplier

		res, err := ledger.MoveStock(MoveRequest{
			Source: f.record, SourceLocation: f.src,
			DestinationLocation: f.dst,
			UnitVolume:          1, Quantity: 1,
		})
		require.NoError(t, err)
		require.NotNil(t, res.Destination.SupplierID)
		assert.Equal(t, supplier, *res.Destination.SupplierID)
	})

	t.Run("zero volume products always fit", func(t *testing.T) {
		f := newLedgerFixture(t, 0, 4, 0, 0)

		_, err := ledger.MoveStock(MoveRequest{
			Source: f.record, SourceLocation: f.src,
			DestinationLocation: f.dst,
			UnitVolume:          0, Quantity: 4,
		})
		require.NoError(t, err)
		assert.Equal(t, 0, f.dst.RemainingVolume)
	})

	invalid := []struct {
		name   string
		mutate func(f *ledgerFixture, req *MoveRequest)
	}{
		{"zero quantity", func(_ *ledgerFixture, req *MoveRequest) { req.Quantity = 0 }},
		{"more than available", func(_ *ledgerFixture, req *MoveRequest) { req.Quantity = 11 }},
		{"same location", func(f *ledgerFixture, req *MoveRequest) { req.DestinationLocation = f.src }},
		{"foreign destination", func(f *ledgerFixture, req *MoveRequest) { f.dst.TenantID = uuid.New() }},
		{"wrong source location", func(f *ledgerFixture, req *MoveRequest) { req.SourceLocation = f.dst }},
		{"destination of other product", func(f *ledgerFixture, req *MoveRequest) {
			other, _ := NewInventoryRecord(f.tenant, uuid.New(), f.dst.ID, nil, 1)
			req.Destination = other
		}},
	}
	for _, tt := range invalid {
		t.Run(tt.name, func(t *testing.T) {
			f := newLedgerFixture(t, 1, 10, 100, 100)
			req := MoveRequest{
				Source: f.record, SourceLocation: f.src,
				DestinationLocation: f.dst,
				UnitVolume:          1, Quantity: 5,
			}
			tt.mutate(f, &req)

			_, err := ledger.MoveStock(req)
			require.Error(t, err)
			assert.Equal(t, 10, f.record.Quantity)
			assert.Equal(t, 100, f.dst.RemainingVolume)
		})
	}
}

func TestStockLedger_StockIn(t *testing.T) {
	ledger := NewStockLedger()
	tenant := uuid.New()
	loc, err := NewLocation(tenant, "Store", "", 100)
	require.NoError(t, err)

	t.Run("first receipt on an empty record", func(t *testing.T) {
		rec, err := NewInventoryRecord(tenant, uuid.New(), loc.ID, nil, 0)
		require.NoError(t, err)

		m, err := ledger.StockIn(rec, loc, 2, 20)
		require.NoError(t, err)

		assert.Equal(t, 20, rec.Quantity)
		assert.Equal(t, MovementTypeIn, m.Type)
		assert.Equal(t, 20, m.Quantity)
		assert.Nil(t, m.FromLocationID)
		assert.Equal(t, loc.ID, *m.ToLocationID)
		assert.Equal(t, 60, loc.RemainingVolume)
	})

	t.Run("rejects what does not fit", func(t *testing.T) {
		rec, err := NewInventoryRecord(tenant, uuid.New(), loc.ID, nil, 1)
		require.NoError(t, err)

		_, err = ledger.StockIn(rec, loc, 10, 7)
		assert.ErrorIs(t, err, shared.ErrCapacityExceeded)
		assert.Equal(t, 1, rec.Quantity)
		assert.Equal(t, 60, loc.RemainingVolume)
	})

	t.Run("rejects invalid quantity and foreign location", func(t *testing.T) {
		rec, err := NewInventoryRecord(tenant, uuid.New(), loc.ID, nil, 1)
		require.NoError(t, err)

		_, err = ledger.StockIn(rec, loc, 1, 0)
		assert.Error(t, err)

		other, err := NewLocation(tenant, "Other", "", 100)
		require.NoError(t, err)
		_, err = ledger.StockIn(rec, other, 1, 1)
		assert.ErrorContains(t, err, "not stored")
		assert.Equal(t, 1, rec.Quantity)
	})
}

func TestStockLedger_StockOut(t *testing.T) {
	ledger := NewStockLedger()
	tenant := uuid.New()
	loc, err := NewLocation(tenant, "Store", "", 100)
	require.NoError(t, err)
	require.NoError(t, loc.Occupy(30))
	rec, err := NewInventoryRecord(tenant, uuid.New(), loc.ID, nil, 10)
	require.NoError(t, err)

	t.Run("rejects taking more than held", func(t *testing.T) {
		_, err := ledger.StockOut(rec, loc, 3, 15)
		assert.ErrorIs(t, err, shared.ErrInsufficientStock)
		assert.Equal(t, 10, rec.Quantity)
		assert.Equal(t, 70, loc.RemainingVolume)
	})

	t.Run("ships and releases volume", func(t *testing.T) {
		m, err := ledger.StockOut(rec, loc, 3, 10)
		require.NoError(t, err)

		assert.Equal(t, 0, rec.Quantity)
		assert.Equal(t, 100, loc.RemainingVolume)
		assert.Equal(t, MovementTypeOut, m.Type)
		assert.Equal(t, loc.ID, *m.FromLocationID)
		assert.Nil(t, m.ToLocationID)
	})
}
