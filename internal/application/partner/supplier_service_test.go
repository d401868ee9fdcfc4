package partner

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/retail-inventory/backend/internal/domain/partner"
	"github.com/retail-inventory/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockSupplierRepository struct {
	mock.Mock
}

func (m *MockSupplierRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*partner.Supplier, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Supplier), args.Error(1)
}

func (m *MockSupplierRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]partner.Supplier, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]partner.Supplier), args.Error(1)
}

func (m *MockSupplierRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSupplierRepository) ExistsByCode(ctx context.Context, tenantID uuid.UUID, code string, excludeID uuid.UUID) (bool, error) {
	args := m.Called(ctx, tenantID, code, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockSupplierRepository) Save(ctx context.Context, supplier *partner.Supplier) error {
	return m.Called(ctx, supplier).Error(0)
}

func (m *MockSupplierRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	return m.Called(ctx, tenantID, id).Error(0)
}

type MockSupplierUsage struct {
	mock.Mock
}

func (m *MockSupplierUsage) CountBySupplier(ctx context.Context, tenantID, supplierID uuid.UUID) (int64, error) {
	args := m.Called(ctx, tenantID, supplierID)
	return args.Get(0).(int64), args.Error(1)
}

func TestSupplierService_Create(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()

	repo, usage := new(MockSupplierRepository), new(MockSupplierUsage)
	svc := NewSupplierService(repo, usage)

	repo.On("ExistsByCode", ctx, tenantID, "SUP-1", uuid.Nil).Return(false, nil).Once()
	repo.On("Save", ctx, mock.AnythingOfType("*partner.Supplier")).Return(nil).Once()

	resp, err := svc.Create(ctx, tenantID, CreateSupplierRequest{
		Code: "sup-1", Name: "Fresh Farms", ContactName: "Ana", Email: "ana@farms.test",
	})
	require.NoError(t, err)
	assert.Equal(t, "SUP-1", resp.Code)
	assert.Equal(t, "Ana", resp.ContactName)

	repo.On("ExistsByCode", ctx, tenantID, "SUP-1", uuid.Nil).Return(true, nil).Once()
	_, err = svc.Create(ctx, tenantID, CreateSupplierRequest{Code: "SUP-1", Name: "Other"})
	assert.ErrorIs(t, err, shared.ErrAlreadyExists)
}

func TestSupplierService_Update(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	repo, usage := new(MockSupplierRepository), new(MockSupplierUsage)
	svc := NewSupplierService(repo, usage)

	supplier, err := partner.NewSupplier(tenantID, "SUP-1", "Fresh Farms")
	require.NoError(t, err)
	require.NoError(t, supplier.SetContact("Ana", "555", "ana@farms.test", "Road 1"))
	repo.On("FindByIDForTenant", ctx, tenantID, supplier.ID).Return(supplier, nil)
	repo.On("Save", ctx, supplier).Return(nil)

	phone := "556"
	resp, err := svc.Update(ctx, tenantID, supplier.ID, UpdateSupplierRequest{Phone: &phone})
	require.NoError(t, err)
	assert.Equal(t, "556", resp.Phone)
	assert.Equal(t, "Ana", resp.ContactName)
	assert.Equal(t, "Road 1", resp.Address)
}

func TestSupplierService_Delete(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	repo, usage := new(MockSupplierRepository), new(MockSupplierUsage)
	svc := NewSupplierService(repo, usage)

	id := uuid.New()
	repo.On("FindByIDForTenant", ctx, tenantID, id).Return(&partner.Supplier{}, nil)
	usage.On("CountBySupplier", ctx, tenantID, id).Return(int64(1), nil).Once()
	assert.ErrorIs(t, svc.Delete(ctx, tenantID, id), shared.ErrInvalidState)

	usage.On("CountBySupplier", ctx, tenantID, id).Return(int64(0), nil).Once()
	repo.On("Delete", ctx, tenantID, id).Return(nil)
	require.NoError(t, svc.Delete(ctx, tenantID, id))

	missing := uuid.New()
	repo.On("FindByIDForTenant", ctx, tenantID, missing).Return(nil, shared.ErrNotFound)
	assert.True(t, shared.IsNotFound(svc.Delete(ctx, tenantID, missing)))
}
