package inventory

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/retail-inventory/backend/internal/domain/catalog"
	"github.com/retail-inventory/backend/internal/domain/inventory"
	"github.com/retail-inventory/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type serviceFixture struct {
	tenantID  uuid.UUID
	records   *MockRecordRepository
	locations *MockLocationRepository
	movements *MockMovementRepository
	products  *MockProductRepository
	suppliers *MockSupplierRepository
	events    *MockEventPublisher
	service   *InventoryService
}

func newServiceFixture() *serviceFixture {
	f := &serviceFixture{
		tenantID:  uuid.New(),
		records:   new(MockRecordRepository),
		locations: new(MockLocationRepository),
		movements: new(MockMovementRepository),
		products:  new(MockProductRepository),
		suppliers: new(MockSupplierRepository),
		events:    &MockEventPublisher{},
	}
	scope := NewNoOpTransactionScope(f.records, f.locations, f.movements, f.products)
	f.service = NewInventoryService(scope, f.records, f.locations, f.movements, f.products, f.suppliers)
	f.service.SetEventPublisher(f.events)
	return f
}

func (f *serviceFixture) product(volume int) *catalog.Product {
	p, err := catalog.NewProduct(f.tenantID, "SKU-1", "Widget", decimal.NewFromInt(10), volume)
	if err != nil {
		panic(err)
	}
	f.products.On("FindByIDForTenant", mock.Anything, f.tenantID, p.ID).Return(p, nil)
	return p
}

func (f *serviceFixture) location(name string, volume, remaining int) *inventory.Location {
	l, err := inventory.NewLocation(f.tenantID, name, "", volume)
	if err != nil {
		panic(err)
	}
	l.RemainingVolume = remaining
	f.locations.On("FindByIDForTenant", mock.Anything, f.tenantID, l.ID).Return(l, nil)
	return l
}

// record builds a record the service can load by ID
func (f *serviceFixture) record(productID, locationID uuid.UUID, qty int) *inventory.InventoryRecord {
	r := f.newRecord(productID, locationID, qty)
	f.records.On("FindByIDForTenant", mock.Anything, f.tenantID, r.ID).Return(r, nil)
	return r
}

// newRecord builds a record that is only reached through its product and location
func (f *serviceFixture) newRecord(productID, locationID uuid.UUID, qty int) *inventory.InventoryRecord {
	r, err := inventory.NewInventoryRecord(f.tenantID, productID, locationID, nil, qty)
	if err != nil {
		panic(err)
	}
	return r
}

func TestInventoryService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a new record with one stock-in movement", func(t *testing.T) {
		f := newServiceFixture()
		p := f.product(2)
		l := f.location("Store", 100, 100)
		operator := uuid.New()

		f.records.On("FindByProductAndLocation", ctx, f.tenantID, p.ID, l.ID).Return(nil, shared.ErrNotFound)
		f.records.On("Create", ctx, mock.AnythingOfType("*inventory.InventoryRecord")).Return(nil)
		f.locations.On("SaveWithLock", ctx, l).Return(nil)
		f.movements.On("Create", ctx, mock.MatchedBy(func(m *inventory.Movement) bool {
			return m.Type == inventory.MovementTypeIn && m.Quantity == 20 &&
				m.ToLocationID != nil && *m.ToLocationID == l.ID && m.FromLocationID == nil &&
				m.CreatedBy != nil && *m.CreatedBy == operator
		})).Return(nil).Once()

		resp, err := f.service.Create(ctx, f.tenantID, CreateRecordRequest{
			ProductID: p.ID, LocationID: l.ID, Quantity: 20, OperatorID: operator,
		})
		require.NoError(t, err)

		assert.Equal(t, 20, resp.Quantity)
		assert.Equal(t, "Widget", resp.ProductName)
		assert.Equal(t, 40, resp.Volume)
		assert.Equal(t, 60, l.RemainingVolume)
		f.records.AssertNotCalled(t, "SaveWithLock", mock.Anything, mock.Anything)
		f.movements.AssertExpectations(t)
		assert.Len(t, f.events.GetEventsByType(inventory.EventTypeStockIn), 1)
	})

	t.Run("merges into the existing record", func(t *testing.T) {
		f := newServiceFixture()
		p := f.product(1)
		l := f.location("Store", 100, 95)
		existing := f.newRecord(p.ID, l.ID, 5)

		f.records.On("FindByProductAndLocation", ctx, f.tenantID, p.ID, l.ID).Return(existing, nil)
		f.records.On("SaveWithLock", ctx, existing).Return(nil)
		f.locations.On("SaveWithLock", ctx, l).Return(nil)
		f.movements.On("Create", ctx, mock.Anything).Return(nil).Once()

		resp, err := f.service.Create(ctx, f.tenantID, CreateRecordRequest{
			ProductID: p.ID, LocationID: l.ID, Quantity: 3,
		})
		require.NoError(t, err)
		assert.Equal(t, existing.ID, resp.ID)
		assert.Equal(t, 8, existing.Quantity)
		f.records.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("unknown location is a validation error", func(t *testing.T) {
		f := newServiceFixture()
		p := f.product(1)
		missing := uuid.New()
		f.locations.On("FindByIDForTenant", ctx, f.tenantID, missing).Return(nil, shared.ErrNotFound)

		_, err := f.service.Create(ctx, f.tenantID, CreateRecordRequest{
			ProductID: p.ID, LocationID: missing, Quantity: 1,
		})
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, shared.CodeValidation, domainErr.Code)
		f.movements.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("rejects stock that does not fit", func(t *testing.T) {
		f := newServiceFixture()
		p := f.product(10)
		l := f.location("Store", 100, 30)
		f.records.On("FindByProductAndLocation", ctx, f.tenantID, p.ID, l.ID).Return(nil, shared.ErrNotFound)

		_, err := f.service.Create(ctx, f.tenantID, CreateRecordRequest{
			ProductID: p.ID, LocationID: l.ID, Quantity: 4,
		})
		assert.ErrorIs(t, err, shared.ErrCapacityExceeded)
		assert.Equal(t, 30, l.RemainingVolume)
		f.records.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		f.movements.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestInventoryService_StockIn(t *testing.T) {
	ctx := context.Background()

	t.Run("increases the record and never decreases it", func(t *testing.T) {
		f := newServiceFixture()
		p := f.product(1)
		l := f.location("Store", 100, 90)
		r := f.record(p.ID, l.ID, 10)

		f.records.On("SaveWithLock", ctx, r).Return(nil)
		f.locations.On("SaveWithLock", ctx, l).Return(nil)
		f.movements.On("Create", ctx, mock.Anything).Return(nil).Once()

		resp, err := f.service.StockIn(ctx, f.tenantID, r.ID, StockInRequest{Quantity: 5})
		require.NoError(t, err)
		assert.Equal(t, 15, resp.Quantity)
		assert.Equal(t, 85, l.RemainingVolume)
	})

	t.Run("optimistic lock conflict surfaces", func(t *testing.T) {
		f := newServiceFixture()
		p := f.product(1)
		l := f.location("Store", 100, 90)
		r := f.record(p.ID, l.ID, 10)

		f.records.On("SaveWithLock", ctx, r).Return(shared.ErrOptimisticLock)

		_, err := f.service.StockIn(ctx, f.tenantID, r.ID, StockInRequest{Quantity: 5})
		assert.ErrorIs(t, err, shared.ErrOptimisticLock)
		f.movements.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		assert.Empty(t, f.events.GetEventsByType(inventory.EventTypeStockIn))
	})

	t.Run("books onto another location", func(t *testing.T) {
		f := newServiceFixture()
		p := f.product(1)
		home := f.location("Store", 100, 90)
		other := f.location("Backroom", 50, 50)
		r := f.record(p.ID, home.ID, 10)

		f.records.On("FindByProductAndLocation", ctx, f.tenantID, p.ID, other.ID).Return(nil, shared.ErrNotFound)
		f.records.On("Create", ctx, mock.MatchedBy(func(rec *inventory.InventoryRecord) bool {
			return rec.LocationID == other.ID && rec.Quantity == 4
		})).Return(nil)
		f.locations.On("SaveWithLock", ctx, other).Return(nil)
		f.movements.On("Create", ctx, mock.Anything).Return(nil)

		resp, err := f.service.StockIn(ctx, f.tenantID, r.ID, StockInRequest{LocationID: &other.ID, Quantity: 4})
		require.NoError(t, err)
		assert.Equal(t, other.ID, resp.LocationID)
		assert.Equal(t, 10, r.Quantity)
		assert.Equal(t, 46, other.RemainingVolume)
	})
}

func TestInventoryService_StockOut(t *testing.T) {
	ctx := context.Background()

	t.Run("rejects more than available and writes nothing", func(t *testing.T) {
		f := newServiceFixture()
		p := f.product(1)
		l := f.location("Store", 100, 90)
		r := f.record(p.ID, l.ID, 10)

		_, err := f.service.StockOut(ctx, f.tenantID, r.ID, StockOutRequest{Quantity: 15})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, shared.CodeInsufficientStock, domainErr.Code)
		assert.Equal(t, 10, r.Quantity)
		f.records.AssertNotCalled(t, "SaveWithLock", mock.Anything, mock.Anything)
		f.movements.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("keeps an emptied record at zero", func(t *testing.T) {
		f := newServiceFixture()
		p := f.product(2)
		l := f.location("Store", 100, 80)
		r := f.record(p.ID, l.ID, 10)

		f.records.On("SaveWithLock", ctx, r).Return(nil)
		f.locations.On("SaveWithLock", ctx, l).Return(nil)
		f.movements.On("Create", ctx, mock.MatchedBy(func(m *inventory.Movement) bool {
			return m.Type == inventory.MovementTypeOut && *m.FromLocationID == l.ID
		})).Return(nil)

		resp, err := f.service.StockOut(ctx, f.tenantID, r.ID, StockOutRequest{Quantity: 10})
		require.NoError(t, err)
		assert.Equal(t, 0, resp.Quantity)
		assert.Equal(t, 100, l.RemainingVolume)
		f.records.AssertNotCalled(t, "DeleteWithLock", mock.Anything, mock.Anything)
	})
}

func TestInventoryService_MoveStock(t *testing.T) {
	ctx := context.Background()

	t.Run("partial move into free space", func(t *testing.T) {
		f := newServiceFixture()
		p := f.product(5)
		src := f.location("Warehouse", 500, 450)
		dst := f.location("Store", 100, 40)
		r := f.record(p.ID, src.ID, 10)

		f.records.On("FindByProductAndLocation", ctx, f.tenantID, p.ID, dst.ID).Return(nil, shared.ErrNotFound)
		f.movements.On("Create", ctx, mock.Anything).Return(nil).Once()
		f.records.On("Create", ctx, mock.Anything).Return(nil).Once()
		f.records.On("SaveWithLock", ctx, r).Return(nil).Once()
		f.locations.On("SaveWithLock", ctx, dst).Return(nil).Once()
		f.locations.On("SaveWithLock", ctx, src).Return(nil).Once()

		resp, err := f.service.MoveStock(ctx, f.tenantID, r.ID, MoveStockRequest{LocationID: dst.ID, Quantity: 5})
		require.NoError(t, err)

		assert.Equal(t, 15, dst.RemainingVolume)
		assert.Equal(t, 475, src.RemainingVolume)
		assert.False(t, resp.SourceDeleted)
		require.NotNil(t, resp.Source)
		assert.Equal(t, 5, resp.Source.Quantity)
		assert.Equal(t, 5, resp.Destination.Quantity)
		assert.Equal(t, "move", resp.Movement.Type)
		f.records.AssertExpectations(t)
		f.locations.AssertExpectations(t)
		assert.Len(t, f.events.GetEventsByType(inventory.EventTypeStockMoved), 1)
	})

	t.Run("capacity failure writes nothing", func(t *testing.T) {
		f := newServiceFixture()
		p := f.product(5)
		src := f.location("Warehouse", 500, 450)
		dst := f.location("Store", 100, 40)
		r := f.record(p.ID, src.ID, 10)

		f.records.On("FindByProductAndLocation", ctx, f.tenantID, p.ID, dst.ID).Return(nil, shared.ErrNotFound)

		_, err := f.service.MoveStock(ctx, f.tenantID, r.ID, MoveStockRequest{LocationID: dst.ID, Quantity: 10})
		require.Error(t, err)
		assert.Equal(t, "Not enough space in the destination location.", err.Error())

		assert.Equal(t, 40, dst.RemainingVolume)
		assert.Equal(t, 10, r.Quantity)
		f.movements.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		f.records.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		f.records.AssertNotCalled(t, "SaveWithLock", mock.Anything, mock.Anything)
		f.locations.AssertNotCalled(t, "SaveWithLock", mock.Anything, mock.Anything)
	})

	t.Run("moving everything deletes the source and increments the destination", func(t *testing.T) {
		f := newServiceFixture()
		p := f.product(1)
		src := f.location("Warehouse", 500, 490)
		dst := f.location("Store", 100, 98)
		r := f.record(p.ID, src.ID, 10)
		existing := f.newRecord(p.ID, dst.ID, 2)

		f.records.On("FindByProductAndLocation", ctx, f.tenantID, p.ID, dst.ID).Return(existing, nil)
		f.movements.On("Create", ctx, mock.Anything).Return(nil)
		f.records.On("SaveWithLock", ctx, existing).Return(nil).Once()
		f.records.On("DeleteWithLock", ctx, r).Return(nil).Once()
		f.locations.On("SaveWithLock", ctx, mock.Anything).Return(nil).Twice()

		resp, err := f.service.MoveStock(ctx, f.tenantID, r.ID, MoveStockRequest{LocationID: dst.ID, Quantity: 10})
		require.NoError(t, err)

		assert.True(t, resp.SourceDeleted)
		assert.Nil(t, resp.Source)
		assert.Equal(t, 12, existing.Quantity)
		assert.Equal(t, 88, dst.RemainingVolume)
		assert.Equal(t, 500, src.RemainingVolume)
		f.records.AssertExpectations(t)
	})

	t.Run("unknown destination is a validation error", func(t *testing.T) {
		f := newServiceFixture()
		p := f.product(1)
		src := f.location("Warehouse", 500, 490)
		r := f.record(p.ID, src.ID, 10)
		missing := uuid.New()
		f.locations.On("FindByIDForTenant", ctx, f.tenantID, missing).Return(nil, shared.ErrNotFound)

		_, err := f.service.MoveStock(ctx, f.tenantID, r.ID, MoveStockRequest{LocationID: missing, Quantity: 1})
		assert.ErrorContains(t, err, "Destination location not found")
	})
}

func TestInventoryService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("relocating adjusts both ledgers", func(t *testing.T) {
		f := newServiceFixture()
		p := f.product(2)
		oldLoc := f.location("Warehouse", 100, 80)
		newLoc := f.location("Store", 100, 100)
		r := f.record(p.ID, oldLoc.ID, 10)

		f.records.On("FindByProductAndLocation", ctx, f.tenantID, p.ID, newLoc.ID).Return(nil, shared.ErrNotFound)
		f.records.On("SaveWithLock", ctx, r).Return(nil)
		f.locations.On("SaveWithLock", ctx, oldLoc).Return(nil).Once()
		f.locations.On("SaveWithLock", ctx, newLoc).Return(nil).Once()

		qty := 15
		resp, err := f.service.Update(ctx, f.tenantID, r.ID, UpdateRecordRequest{Quantity: &qty, LocationID: &newLoc.ID})
		require.NoError(t, err)

		assert.Equal(t, 15, resp.Quantity)
		assert.Equal(t, newLoc.ID, resp.LocationID)
		assert.Equal(t, 100, oldLoc.RemainingVolume)
		assert.Equal(t, 70, newLoc.RemainingVolume)
		f.locations.AssertExpectations(t)
	})

	t.Run("duplicate product at target location", func(t *testing.T) {
		f := newServiceFixture()
		p := f.product(1)
		oldLoc := f.location("Warehouse", 100, 90)
		newLoc := f.location("Store", 100, 100)
		r := f.record(p.ID, oldLoc.ID, 10)
		other := f.newRecord(p.ID, newLoc.ID, 1)

		f.records.On("FindByProductAndLocation", ctx, f.tenantID, p.ID, newLoc.ID).Return(other, nil)

		_, err := f.service.Update(ctx, f.tenantID, r.ID, UpdateRecordRequest{LocationID: &newLoc.ID})
		assert.ErrorIs(t, err, shared.ErrAlreadyExists)
	})

	t.Run("growing past capacity is rejected", func(t *testing.T) {
		f := newServiceFixture()
		p := f.product(10)
		l := f.location("Store", 100, 0)
		r := f.record(p.ID, l.ID, 10)

		qty := 11
		_, err := f.service.Update(ctx, f.tenantID, r.ID, UpdateRecordRequest{Quantity: &qty})
		assert.ErrorIs(t, err, shared.ErrCapacityExceeded)
		f.records.AssertNotCalled(t, "SaveWithLock", mock.Anything, mock.Anything)
	})
}

func TestInventoryService_Delete(t *testing.T) {
	ctx := context.Background()
	f := newServiceFixture()
	p := f.product(3)
	l := f.location("Store", 100, 70)
	r := f.record(p.ID, l.ID, 10)

	f.locations.On("SaveWithLock", ctx, l).Return(nil)
	f.records.On("DeleteWithLock", ctx, r).Return(nil)

	require.NoError(t, f.service.Delete(ctx, f.tenantID, r.ID))
	assert.Equal(t, 100, l.RemainingVolume)
	assert.Len(t, f.events.GetEventsByType(inventory.EventTypeAdjusted), 1)
}

func TestInventoryService_ListMovements(t *testing.T) {
	ctx := context.Background()
	f := newServiceFixture()

	_, _, err := f.service.ListMovements(ctx, f.tenantID, MovementListFilter{Type: "transfer"})
	assert.Error(t, err)

	m, err := inventory.NewMovement(f.tenantID, uuid.New(), inventory.MovementTypeIn, nil, &f.tenantID, 3)
	require.NoError(t, err)

	f.movements.On("FindAllForTenant", ctx, f.tenantID, mock.MatchedBy(func(filter inventory.MovementFilter) bool {
		return filter.Type == inventory.MovementTypeIn && filter.PageSize == shared.DefaultPageSize && filter.OrderDir == "desc"
	})).Return([]inventory.Movement{*m}, nil)
	f.movements.On("CountForTenant", ctx, f.tenantID, mock.Anything).Return(int64(1), nil)

	items, total, err := f.service.ListMovements(ctx, f.tenantID, MovementListFilter{Type: "in"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, items, 1)
	assert.Equal(t, 3, items[0].Quantity)
}
