package handler

import (
	"context"
	"time"

	"github.com/google/uuid"
	catalogapp "github.com/retail-inventory/backend/internal/application/catalog"
	"github.com/retail-inventory/backend/internal/application/identity"
	inventoryapp "github.com/retail-inventory/backend/internal/application/inventory"
	retailapp "github.com/retail-inventory/backend/internal/application/retail"
	"github.com/retail-inventory/backend/internal/domain/catalog"
	"github.com/stretchr/testify/mock"
)

type MockInventoryService struct {
	mock.Mock
}

func (m *MockInventoryService) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*inventoryapp.RecordResponse, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventoryapp.RecordResponse), args.Error(1)
}

func (m *MockInventoryService) List(ctx context.Context, tenantID uuid.UUID, filter inventoryapp.RecordListFilter) ([]inventoryapp.RecordResponse, int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]inventoryapp.RecordResponse), args.Get(1).(int64), args.Error(2)
}

func (m *MockInventoryService) Create(ctx context.Context, tenantID uuid.UUID, req inventoryapp.CreateRecordRequest) (*inventoryapp.RecordResponse, error) {
	args := m.Called(ctx, tenantID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventoryapp.RecordResponse), args.Error(1)
}

func (m *MockInventoryService) StockIn(ctx context.Context, tenantID, recordID uuid.UUID, req inventoryapp.StockInRequest) (*inventoryapp.RecordResponse, error) {
	args := m.Called(ctx, tenantID, recordID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventoryapp.RecordResponse), args.Error(1)
}

func (m *MockInventoryService) StockOut(ctx context.Context, tenantID, recordID uuid.UUID, req inventoryapp.StockOutRequest) (*inventoryapp.RecordResponse, error) {
	args := m.Called(ctx, tenantID, recordID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventoryapp.RecordResponse), args.Error(1)
}

func (m *MockInventoryService) MoveStock(ctx context.Context, tenantID, recordID uuid.UUID, req inventoryapp.MoveStockRequest) (*inventoryapp.MoveStockResponse, error) {
	args := m.Called(ctx, tenantID, recordID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventoryapp.MoveStockResponse), args.Error(1)
}

func (m *MockInventoryService) Update(ctx context.Context, tenantID, recordID uuid.UUID, req inventoryapp.UpdateRecordRequest) (*inventoryapp.RecordResponse, error) {
	args := m.Called(ctx, tenantID, recordID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventoryapp.RecordResponse), args.Error(1)
}

func (m *MockInventoryService) Delete(ctx context.Context, tenantID, recordID uuid.UUID) error {
	return m.Called(ctx, tenantID, recordID).Error(0)
}

func (m *MockInventoryService) GetMovement(ctx context.Context, tenantID, id uuid.UUID) (*inventoryapp.MovementResponse, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventoryapp.MovementResponse), args.Error(1)
}

func (m *MockInventoryService) ListMovements(ctx context.Context, tenantID uuid.UUID, filter inventoryapp.MovementListFilter) ([]inventoryapp.MovementResponse, int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]inventoryapp.MovementResponse), args.Get(1).(int64), args.Error(2)
}

type MockClassificationService struct {
	mock.Mock
}

func (m *MockClassificationService) Create(ctx context.Context, tenantID uuid.UUID, kind catalog.ClassificationKind, req catalogapp.ClassificationRequest) (*catalogapp.ClassificationResponse, error) {
	args := m.Called(ctx, tenantID, kind, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalogapp.ClassificationResponse), args.Error(1)
}

func (m *MockClassificationService) GetByID(ctx context.Context, tenantID uuid.UUID, kind catalog.ClassificationKind, id uuid.UUID) (*catalogapp.ClassificationResponse, error) {
	args := m.Called(ctx, tenantID, kind, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalogapp.ClassificationResponse), args.Error(1)
}

func (m *MockClassificationService) List(ctx context.Context, tenantID uuid.UUID, kind catalog.ClassificationKind, filter catalogapp.ClassificationListFilter) ([]catalogapp.ClassificationResponse, int64, error) {
	args := m.Called(ctx, tenantID, kind, filter)
	return args.Get(0).([]catalogapp.ClassificationResponse), args.Get(1).(int64), args.Error(2)
}

func (m *MockClassificationService) Update(ctx context.Context, tenantID uuid.UUID, kind catalog.ClassificationKind, id uuid.UUID, req catalogapp.ClassificationRequest) (*catalogapp.ClassificationResponse, error) {
	args := m.Called(ctx, tenantID, kind, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalogapp.ClassificationResponse), args.Error(1)
}

func (m *MockClassificationService) Delete(ctx context.Context, tenantID uuid.UUID, kind catalog.ClassificationKind, id uuid.UUID) error {
	return m.Called(ctx, tenantID, kind, id).Error(0)
}

type MockRetailService struct {
	mock.Mock
}

func (m *MockRetailService) Create(ctx context.Context, req retailapp.CreateRetailRequest) (*retailapp.RetailResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*retailapp.RetailResponse), args.Error(1)
}

func (m *MockRetailService) GetByID(ctx context.Context, id uuid.UUID) (*retailapp.RetailResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*retailapp.RetailResponse), args.Error(1)
}

func (m *MockRetailService) List(ctx context.Context, filter retailapp.RetailListFilter) ([]retailapp.RetailResponse, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]retailapp.RetailResponse), args.Get(1).(int64), args.Error(2)
}

func (m *MockRetailService) Update(ctx context.Context, id uuid.UUID, req retailapp.UpdateRetailRequest) (*retailapp.RetailResponse, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*retailapp.RetailResponse), args.Error(1)
}

func (m *MockRetailService) Extend(ctx context.Context, id uuid.UUID, req retailapp.ExtendSubscriptionRequest) (*retailapp.RetailResponse, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*retailapp.RetailResponse), args.Error(1)
}

func (m *MockRetailService) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockRetailService) RefreshStatuses(ctx context.Context) (*retailapp.RefreshStatusResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*retailapp.RefreshStatusResponse), args.Error(1)
}

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Login(ctx context.Context, req identity.LoginRequest) (*identity.LoginResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.LoginResponse), args.Error(1)
}

func (m *MockAuthService) Logout(ctx context.Context, jti string, remaining time.Duration) error {
	return m.Called(ctx, jti, remaining).Error(0)
}
