package persistence

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	appretail "github.com/retail-inventory/backend/internal/application/retail"
	"github.com/retail-inventory/backend/internal/domain/catalog"
	"github.com/retail-inventory/backend/internal/domain/inventory"
	"github.com/retail-inventory/backend/internal/domain/partner"
	"github.com/retail-inventory/backend/internal/domain/retail"
	"github.com/retail-inventory/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedRetail(t *testing.T, db *gorm.DB, code string, status retail.Status) *retail.Retail {
	t.Helper()
	r, err := retail.NewRetail(code, "Shop "+code)
	require.NoError(t, err)
	r.Status = status
	require.NoError(t, db.Create(r).Error)
	return r
}

func TestGormRetailRepository(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewGormRetailRepository(db)

	north := seedRetail(t, db, "NORTH", retail.StatusActive)
	seedRetail(t, db, "SOUTH", retail.StatusInactive)

	t.Run("filters by status", func(t *testing.T) {
		filter := shared.Filter{Filters: map[string]interface{}{"status": "active"}}
		filter.Normalize()
		retails, err := repo.FindAll(ctx, filter)
		require.NoError(t, err)
		require.Len(t, retails, 1)
		assert.Equal(t, north.ID, retails[0].ID)
	})

	t.Run("searches name and code", func(t *testing.T) {
		filter := shared.Filter{Search: "sou"}
		filter.Normalize()
		count, err := repo.Count(ctx, filter)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})

	t.Run("checks code uniqueness", func(t *testing.T) {
		exists, err := repo.ExistsByCode(ctx, "NORTH", uuid.Nil)
		require.NoError(t, err)
		assert.True(t, exists)

		exists, err = repo.ExistsByCode(ctx, "NORTH", north.ID)
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("lists all ids", func(t *testing.T) {
		ids, err := repo.FindAllIDs(ctx)
		require.NoError(t, err)
		assert.Len(t, ids, 2)
	})

	t.Run("unknown retail is not found", func(t *testing.T) {
		_, err := repo.FindByID(ctx, uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGormSubscriptionAndUserRepositories(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	shop := seedRetail(t, db, "SHOP", retail.StatusInactive)

	start := retail.NewDate(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	end := retail.NewDate(time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC))
	sub, err := retail.NewSubscription(shop.ID, start, end)
	require.NoError(t, err)

	subs := NewGormSubscriptionRepository(db)
	require.NoError(t, subs.Save(ctx, sub))

	found, err := subs.FindByRetailID(ctx, shop.ID)
	require.NoError(t, err)
	assert.Equal(t, "2024-12-31", retail.NewDate(found.EndDate).String())

	many, err := subs.FindByRetailIDs(ctx, []uuid.UUID{shop.ID, uuid.New()})
	require.NoError(t, err)
	assert.Len(t, many, 1)

	_, err = subs.FindByRetailID(ctx, uuid.New())
	assert.ErrorIs(t, err, shared.ErrNotFound)

	owner, err := retail.NewOwner(shop.ID, "Shop.Owner", "owner@shop.test", "password123")
	require.NoError(t, err)
	users := NewGormUserRepository(db)
	require.NoError(t, users.Save(ctx, owner))

	exists, err := users.ExistsByUsername(ctx, "shop.owner")
	require.NoError(t, err)
	assert.True(t, exists)

	loaded, err := users.FindByUsername(ctx, "shop.owner")
	require.NoError(t, err)
	assert.True(t, loaded.VerifyPassword("password123"))
	require.NotNil(t, loaded.TenantID)
	assert.Equal(t, shop.ID, *loaded.TenantID)
}

func TestGormTenantPurger(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	doomed := seedRetail(t, db, "DOOMED", retail.StatusActive)
	kept := seedRetail(t, db, "KEPT", retail.StatusActive)

	seedTenant := func(tenantID uuid.UUID, username string) {
		p := seedProduct(t, db, tenantID, "P-1", 1)
		l := seedLocation(t, db, tenantID, "Shelf", 10)
		seedRecord(t, db, tenantID, p.ID, l.ID, 2)
		m, err := inventory.NewMovement(tenantID, p.ID, inventory.MovementTypeIn, nil, &l.ID, 2)
		require.NoError(t, err)
		require.NoError(t, db.Create(m).Error)
		c, err := catalog.NewClassification(tenantID, catalog.KindBrand, "Acme", "")
		require.NoError(t, err)
		require.NoError(t, db.Create(c).Error)
		s, err := partner.NewSupplier(tenantID, "SUP-1", "Supplier")
		require.NoError(t, err)
		require.NoError(t, db.Create(s).Error)
		u, err := retail.NewOwner(tenantID, username, "", "password123")
		require.NoError(t, err)
		require.NoError(t, db.Create(u).Error)
		sub, err := retail.NewSubscription(tenantID,
			retail.NewDate(time.Now().AddDate(0, -1, 0)), retail.NewDate(time.Now().AddDate(0, 1, 0)))
		require.NoError(t, err)
		require.NoError(t, db.Create(sub).Error)
	}
	seedTenant(doomed.ID, "doomed")
	seedTenant(kept.ID, "kept")

	require.NoError(t, NewGormTenantPurger(db).Purge(ctx, doomed.ID))

	for _, model := range Models() {
		var doomedRows, keptRows int64
		column := "tenant_id"
		switch model.(type) {
		case *retail.Retail:
			column = "id"
		case *retail.Subscription:
			column = "retail_id"
		}
		require.NoError(t, db.Model(model).Where(column+" = ?", doomed.ID).Count(&doomedRows).Error)
		require.NoError(t, db.Model(model).Where(column+" = ?", kept.ID).Count(&keptRows).Error)
		assert.Zero(t, doomedRows, "%T rows left for purged tenant", model)
		assert.Equal(t, int64(1), keptRows, "%T rows of other tenant", model)
	}

	assert.ErrorIs(t, NewGormTenantPurger(db).Purge(ctx, uuid.New()), shared.ErrNotFound)
}

func TestGormRetailTransactionScope_RollsBack(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	errBoom := errors.New("boom")

	err := NewGormRetailTransactionScope(db).Execute(ctx, func(repos appretail.TransactionalRepositories) error {
		r, err := retail.NewRetail("TEMP", "Temp shop")
		require.NoError(t, err)
		if err := repos.RetailRepo().Save(ctx, r); err != nil {
			return err
		}
		return errBoom
	})
	assert.ErrorIs(t, err, errBoom)

	filter := shared.Filter{}
	filter.Normalize()
	count, err := NewGormRetailRepository(db).Count(ctx, filter)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestGormDashboardReader(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	tenantID := uuid.New()
	reader := NewGormDashboardReader(db)

	p := seedProduct(t, db, tenantID, "P-1", 1)
	for i, qty := range []int{0, 3, 4, 10} {
		l := seedLocation(t, db, tenantID, "Loc "+string(rune('A'+i)), 100)
		seedRecord(t, db, tenantID, p.ID, l.ID, qty)
	}
	seedRecord(t, db, uuid.New(), p.ID, uuid.New(), 1)

	counts, err := reader.CountRecords(ctx, tenantID, 5)
	require.NoError(t, err)
	assert.Equal(t, int64(4), counts.Total)
	assert.Equal(t, int64(17), counts.TotalQuantity)
	assert.Equal(t, int64(2), counts.LowStock)
	assert.Equal(t, int64(1), counts.OutOfStock)

	loc, other := uuid.New(), uuid.New()
	since := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	add := func(typ inventory.MovementType, from, to *uuid.UUID, qty int, at time.Time) {
		m, err := inventory.NewMovement(tenantID, p.ID, typ, from, to, qty)
		require.NoError(t, err)
		m.CreatedAt = at
		require.NoError(t, db.Create(m).Error)
	}
	add(inventory.MovementTypeIn, nil, &loc, 5, since.AddDate(0, 0, 3))
	add(inventory.MovementTypeOut, &loc, nil, 2, since.AddDate(0, 1, 3))
	add(inventory.MovementTypeMove, &loc, &other, 1, since.AddDate(0, 1, 4))
	add(inventory.MovementTypeIn, nil, &loc, 9, since.AddDate(0, 0, -3))

	points, err := reader.MovementsSince(ctx, tenantID, since)
	require.NoError(t, err)
	require.Len(t, points, 2)
	assert.Equal(t, "in", points[0].Type)
	assert.Equal(t, int64(5), points[0].Quantity)
	assert.Equal(t, "out", points[1].Type)
}
