package retail

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDate(t *testing.T, s string) Date {
	t.Helper()
	d, err := ParseDate(s)
	require.NoError(t, err)
	return d
}

func TestNewRetail(t *testing.T) {
	r, err := NewRetail(" shop-1 ", "Corner Shop")
	require.NoError(t, err)
	assert.Equal(t, "SHOP-1", r.Code)
	assert.Equal(t, StatusInactive, r.Status)

	_, err = NewRetail("", "Corner Shop")
	assert.ErrorContains(t, err, "code cannot be empty")
	_, err = NewRetail("shop 1", "Corner Shop")
	assert.Error(t, err)
	_, err = NewRetail("shop1", " ")
	assert.ErrorContains(t, err, "name cannot be empty")
}

func TestRetail_Update(t *testing.T) {
	r, err := NewRetail("shop1", "Corner Shop")
	require.NoError(t, err)

	require.NoError(t, r.Update("Main Street Shop", "Owner@Example.com", "555-0101", "1 Main St"))
	assert.Equal(t, "Main Street Shop", r.Name)
	assert.Equal(t, "owner@example.com", r.Email)
	assert.Equal(t, 2, r.Version)

	assert.Error(t, r.Update("Shop", "not-an-email", "", ""))
}

func TestRetail_SyncStatus(t *testing.T) {
	r, err := NewRetail("shop1", "Corner Shop")
	require.NoError(t, err)
	sub, err := NewSubscription(r.ID, mustDate(t, "2024-01-01"), mustDate(t, "2024-12-31"))
	require.NoError(t, err)

	tests := []struct {
		day  string
		want Status
	}{
		{"2023-12-31", StatusInactive},
		{"2024-01-01", StatusActive},
		{"2024-06-15", StatusActive},
		{"2024-12-31", StatusActive},
		{"2025-01-01", StatusInactive},
	}
	for _, tt := range tests {
		t.Run(tt.day, func(t *testing.T) {
			r.SyncStatus(sub, mustDate(t, tt.day))
			assert.Equal(t, tt.want, r.Status)
		})
	}

	r.Status = StatusActive
	assert.True(t, r.SyncStatus(nil, Today()))
	assert.Equal(t, StatusInactive, r.Status)
	assert.False(t, r.SyncStatus(nil, Today()))
}

func TestSubscription_Extend(t *testing.T) {
	sub, err := NewSubscription(uuid.New(), mustDate(t, "2024-01-01"), mustDate(t, "2024-03-01"))
	require.NoError(t, err)

	require.NoError(t, sub.Extend(mustDate(t, "2025-01-01")))
	assert.Equal(t, "2025-01-01", NewDate(sub.EndDate).String())

	assert.ErrorContains(t, sub.Extend(mustDate(t, "2024-01-01")), "after the start date")
	assert.ErrorContains(t, sub.Extend(mustDate(t, "2023-06-01")), "after the start date")
	assert.Equal(t, "2025-01-01", NewDate(sub.EndDate).String())

	_, err = NewSubscription(uuid.New(), mustDate(t, "2024-02-01"), mustDate(t, "2024-01-01"))
	assert.Error(t, err)
}

func TestNewDate(t *testing.T) {
	loc := time.FixedZone("UTC+9", 9*3600)
	d := NewDate(time.Date(2024, 5, 6, 23, 30, 0, 0, loc))
	assert.Equal(t, "2024-05-06", d.String())

	_, err := ParseDate("06/05/2024")
	assert.Error(t, err)
}

func TestUser(t *testing.T) {
	retailID := uuid.New()
	u, err := NewOwner(retailID, "Owner.One", "owner@example.com", "s3cretpass")
	require.NoError(t, err)

	assert.Equal(t, "owner.one", u.Username)
	assert.Equal(t, RoleRetail, u.Role)
	assert.Equal(t, retailID, *u.TenantID)
	assert.NotEqual(t, "s3cretpass", u.PasswordHash)
	assert.True(t, u.VerifyPassword("s3cretpass"))
	assert.False(t, u.VerifyPassword("wrong"))
	assert.False(t, u.IsAdmin())

	admin, err := NewAdmin("root", "", "adminpass1")
	require.NoError(t, err)
	assert.True(t, admin.IsAdmin())
	assert.Nil(t, admin.TenantID)

	_, err = NewOwner(retailID, "ab", "", "s3cretpass")
	assert.ErrorContains(t, err, "at least 3")
	_, err = NewOwner(retailID, "owner", "", "short")
	assert.ErrorContains(t, err, "at least 8")
	_, err = NewOwner(uuid.Nil, "owner", "", "s3cretpass")
	assert.Error(t, err)
}
