package inventory

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/retail-inventory/backend/internal/domain/inventory"
	"github.com/retail-inventory/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newLocationService() (*LocationService, *MockLocationRepository, *MockRecordRepository) {
	locations := new(MockLocationRepository)
	records := new(MockRecordRepository)
	scope := NewNoOpTransactionScope(records, locations, new(MockMovementRepository), new(MockProductRepository))
	return NewLocationService(scope, locations, records), locations, records
}

func TestLocationService_Create(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()

	t.Run("creates an empty location", func(t *testing.T) {
		svc, locations, _ := newLocationService()
		locations.On("ExistsByName", ctx, tenantID, "back room", uuid.Nil).Return(false, nil)
		locations.On("Create", ctx, mock.AnythingOfType("*inventory.Location")).Return(nil)

		resp, err := svc.Create(ctx, tenantID, CreateLocationRequest{Name: "Back  Room", Volume: 250})
		require.NoError(t, err)
		assert.Equal(t, "Back Room", resp.Name)
		assert.Equal(t, 250, resp.RemainingVolume)
		assert.Equal(t, 0, resp.UsedVolume)
	})

	t.Run("rejects duplicate names case-insensitively", func(t *testing.T) {
		svc, locations, _ := newLocationService()
		locations.On("ExistsByName", ctx, tenantID, "back room", uuid.Nil).Return(true, nil)

		_, err := svc.Create(ctx, tenantID, CreateLocationRequest{Name: "BACK ROOM", Volume: 1})
		assert.ErrorIs(t, err, shared.ErrAlreadyExists)
		locations.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestLocationService_Update(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	svc, locations, _ := newLocationService()

	loc, err := inventory.NewLocation(tenantID, "Store", "", 100)
	require.NoError(t, err)
	require.NoError(t, loc.Occupy(60))
	locations.On("FindByIDForTenant", ctx, tenantID, loc.ID).Return(loc, nil)

	small := 50
	_, err = svc.Update(ctx, tenantID, loc.ID, UpdateLocationRequest{Volume: &small})
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, shared.CodeCapacityExceeded, domainErr.Code)

	locations.On("SaveWithLock", ctx, loc).Return(nil)
	big := 150
	resp, err := svc.Update(ctx, tenantID, loc.ID, UpdateLocationRequest{Volume: &big})
	require.NoError(t, err)
	assert.Equal(t, 90, resp.RemainingVolume)
}

func TestLocationService_Delete(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	svc, locations, records := newLocationService()

	loc, err := inventory.NewLocation(tenantID, "Store", "", 100)
	require.NoError(t, err)
	locations.On("FindByIDForTenant", ctx, tenantID, loc.ID).Return(loc, nil)
	records.On("CountByLocation", ctx, tenantID, loc.ID).Return(int64(2), nil).Once()

	err = svc.Delete(ctx, tenantID, loc.ID)
	assert.ErrorIs(t, err, shared.ErrInvalidState)

	records.On("CountByLocation", ctx, tenantID, loc.ID).Return(int64(0), nil).Once()
	locations.On("Delete", ctx, tenantID, loc.ID).Return(nil)
	require.NoError(t, svc.Delete(ctx, tenantID, loc.ID))
}

func TestLocationService_Recalculate(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	svc, locations, records := newLocationService()

	loc, err := inventory.NewLocation(tenantID, "Store", "", 100)
	require.NoError(t, err)
	loc.RemainingVolume = 12
	locations.On("FindByIDForTenant", ctx, tenantID, loc.ID).Return(loc, nil)
	locations.On("SaveWithLock", ctx, loc).Return(nil)
	records.On("UsedVolume", ctx, tenantID, loc.ID).Return(30, nil).Once()

	resp, err := svc.Recalculate(ctx, tenantID, loc.ID)
	require.NoError(t, err)
	assert.Equal(t, 12, resp.PreviousRemain)
	assert.Equal(t, 70, resp.Location.RemainingVolume)
	assert.False(t, resp.Overcommitted)

	records.On("UsedVolume", ctx, tenantID, loc.ID).Return(130, nil).Once()
	resp, err = svc.Recalculate(ctx, tenantID, loc.ID)
	require.NoError(t, err)
	assert.True(t, resp.Overcommitted)
	assert.Equal(t, 0, resp.Location.RemainingVolume)
}
