package inventory

import (
	"testing"

	"github.com/google/uuid"
	"github.com/retail-inventory/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewInventoryRecord(t *testing.T) {
	nilSupplier := uuid.Nil
	rec, err := NewInventoryRecord(uuid.New(), uuid.New(), uuid.New(), &nilSupplier, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, rec.Quantity)
	assert.Nil(t, rec.SupplierID)

	_, err = NewInventoryRecord(uuid.New(), uuid.Nil, uuid.New(), nil, 0)
	assert.Error(t, err)
	_, err = NewInventoryRecord(uuid.New(), uuid.New(), uuid.Nil, nil, 0)
	assert.Error(t, err)
	_, err = NewInventoryRecord(uuid.New(), uuid.New(), uuid.New(), nil, -1)
	assert.ErrorContains(t, err, "negative")
}

func TestInventoryRecord_StockChanges(t *testing.T) {
	rec, err := NewInventoryRecord(uuid.New(), uuid.New(), uuid.New(), nil, 10)
	require.NoError(t, err)

	require.NoError(t, rec.IncreaseStock(5))
	assert.Equal(t, 15, rec.Quantity)

	assert.Error(t, rec.IncreaseStock(0))
	assert.Error(t, rec.DecreaseStock(0))

	err = rec.DecreaseStock(16)
	assert.ErrorIs(t, err, shared.ErrInsufficientStock)
	assert.Equal(t, 15, rec.Quantity)

	require.NoError(t, rec.DecreaseStock(15))
	assert.True(t, rec.IsEmpty())

	require.NoError(t, rec.SetQuantity(7))
	assert.Equal(t, 7, rec.Quantity)
	assert.Error(t, rec.SetQuantity(-1))

	loc := uuid.New()
	require.NoError(t, rec.Relocate(loc))
	assert.Equal(t, loc, rec.LocationID)
	assert.Error(t, rec.Relocate(uuid.Nil))
}

func TestInventoryRecord_QuantityUpperBound(t *testing.T) {
	_, err := NewInventoryRecord(uuid.New(), uuid.New(), uuid.New(), nil, shared.MaxStoredInt+1)
	assert.ErrorContains(t, err, "cannot exceed")

	rec, err := NewInventoryRecord(uuid.New(), uuid.New(), uuid.New(), nil, shared.MaxStoredInt-1)
	require.NoError(t, err)

	err = rec.IncreaseStock(2)
	assert.ErrorContains(t, err, "cannot exceed")
	assert.Equal(t, shared.MaxStoredInt-1, rec.Quantity)

	require.NoError(t, rec.IncreaseStock(1))
	assert.Equal(t, shared.MaxStoredInt, rec.Quantity)

	assert.Error(t, rec.SetQuantity(shared.MaxStoredInt+1))
}

func TestNewMovement(t *testing.T) {
	tenant, product := uuid.New(), uuid.New()
	a, b := uuid.New(), uuid.New()

	tests := []struct {
		name    string
		typ     MovementType
		from    *uuid.UUID
		to      *uuid.UUID
		qty     int
		wantErr bool
	}{
		{"stock in", MovementTypeIn, nil, &b, 1, false},
		{"stock out", MovementTypeOut, &a, nil, 1, false},
		{"move", MovementTypeMove, &a, &b, 1, false},
		{"in with source", MovementTypeIn, &a, &b, 1, true},
		{"out without source", MovementTypeOut, nil, nil, 1, true},
		{"move without destination", MovementTypeMove, &a, nil, 1, true},
		{"zero quantity", MovementTypeIn, nil, &b, 0, true},
		{"unknown type", MovementType("adjust"), nil, &b, 1, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := NewMovement(tenant, product, tt.typ, tt.from, tt.to, tt.qty)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.typ, m.Type)
			assert.NotEqual(t, uuid.Nil, m.ID)
			assert.False(t, m.CreatedAt.IsZero())
		})
	}

	m, err := NewMovement(tenant, product, MovementTypeIn, nil, &b, 2)
	require.NoError(t, err)
	actor := uuid.New()
	assert.Equal(t, &actor, m.WithActor(actor).CreatedBy)
}
