package identity

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/retail-inventory/backend/internal/domain/retail"
	"github.com/retail-inventory/backend/internal/domain/shared"
	"github.com/retail-inventory/backend/internal/infrastructure/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*retail.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*retail.User), args.Error(1)
}

func (m *MockUserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	args := m.Called(ctx, username)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) Save(ctx context.Context, user *retail.User) error {
	return m.Called(ctx, user).Error(0)
}

type MockRetailLookup struct {
	mock.Mock
}

func (m *MockRetailLookup) FindByID(ctx context.Context, id uuid.UUID) (*retail.Retail, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*retail.Retail), args.Error(1)
}

type stubTokens struct {
	last auth.GenerateTokenInput
}

func (s *stubTokens) GenerateToken(input auth.GenerateTokenInput) (*auth.Token, error) {
	s.last = input
	return &auth.Token{AccessToken: "signed", TokenType: "Bearer", ExpiresAt: time.Now().Add(time.Hour)}, nil
}

func newOwner(t *testing.T, active bool) (*retail.User, *retail.Retail) {
	t.Helper()
	r, err := retail.NewRetail("shop1", "Corner Shop")
	require.NoError(t, err)
	if active {
		r.Status = retail.StatusActive
	}
	u, err := retail.NewOwner(r.ID, "owner1", "", "s3cretpass")
	require.NoError(t, err)
	return u, r
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("owner of active retail", func(t *testing.T) {
		users, retails, tokens := new(MockUserRepository), new(MockRetailLookup), &stubTokens{}
		u, r := newOwner(t, true)
		users.On("FindByUsername", ctx, "owner1").Return(u, nil)
		retails.On("FindByID", ctx, r.ID).Return(r, nil)

		svc := NewAuthService(users, retails, tokens, nil, zap.NewNop())
		resp, err := svc.Login(ctx, LoginRequest{Username: "owner1", Password: "s3cretpass"})
		require.NoError(t, err)
		assert.Equal(t, "signed", resp.AccessToken)
		assert.Equal(t, "retail", resp.User.Role)
		assert.Equal(t, r.ID, *tokens.last.TenantID)
	})

	t.Run("wrong password", func(t *testing.T) {
		users := new(MockUserRepository)
		u, _ := newOwner(t, true)
		users.On("FindByUsername", ctx, "owner1").Return(u, nil)

		svc := NewAuthService(users, new(MockRetailLookup), &stubTokens{}, nil, zap.NewNop())
		_, err := svc.Login(ctx, LoginRequest{Username: "owner1", Password: "nope-nope"})
		assert.Equal(t, errInvalidCredentials, err)
	})

	t.Run("unknown user", func(t *testing.T) {
		users := new(MockUserRepository)
		users.On("FindByUsername", ctx, "ghost").Return(nil, shared.ErrNotFound)

		svc := NewAuthService(users, new(MockRetailLookup), &stubTokens{}, nil, zap.NewNop())
		_, err := svc.Login(ctx, LoginRequest{Username: "ghost", Password: "whatever1"})
		assert.Equal(t, errInvalidCredentials, err)
	})

	t.Run("inactive retail", func(t *testing.T) {
		users, retails := new(MockUserRepository), new(MockRetailLookup)
		u, r := newOwner(t, false)
		users.On("FindByUsername", ctx, "owner1").Return(u, nil)
		retails.On("FindByID", ctx, r.ID).Return(r, nil)

		svc := NewAuthService(users, retails, &stubTokens{}, nil, zap.NewNop())
		_, err := svc.Login(ctx, LoginRequest{Username: "owner1", Password: "s3cretpass"})
		assert.ErrorContains(t, err, "not active")
	})

	t.Run("admin skips retail check", func(t *testing.T) {
		users, retails, tokens := new(MockUserRepository), new(MockRetailLookup), &stubTokens{}
		admin, err := retail.NewAdmin("root", "", "adminpass1")
		require.NoError(t, err)
		users.On("FindByUsername", ctx, "root").Return(admin, nil)

		svc := NewAuthService(users, retails, tokens, nil, zap.NewNop())
		resp, err := svc.Login(ctx, LoginRequest{Username: "root", Password: "adminpass1"})
		require.NoError(t, err)
		assert.Equal(t, "admin", resp.User.Role)
		assert.Nil(t, tokens.last.TenantID)
		retails.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	})
}

func TestAuthService_Logout(t *testing.T) {
	ctx := context.Background()
	store := auth.NewInMemoryRevocationStore(0)
	svc := NewAuthService(new(MockUserRepository), new(MockRetailLookup), &stubTokens{}, store, zap.NewNop())

	require.NoError(t, svc.Logout(ctx, "jti-1", time.Minute))
	revoked, err := store.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)
}

func TestAuthService_BootstrapAdmin(t *testing.T) {
	ctx := context.Background()

	t.Run("creates when missing", func(t *testing.T) {
		users := new(MockUserRepository)
		users.On("ExistsByUsername", ctx, "root").Return(false, nil)
		users.On("Save", ctx, mock.MatchedBy(func(u *retail.User) bool { return u.IsAdmin() })).Return(nil)

		svc := NewAuthService(users, new(MockRetailLookup), &stubTokens{}, nil, zap.NewNop())
		created, err := svc.BootstrapAdmin(ctx, "root", "", "adminpass1")
		require.NoError(t, err)
		assert.True(t, created)
	})

	t.Run("keeps existing", func(t *testing.T) {
		users := new(MockUserRepository)
		users.On("ExistsByUsername", ctx, "root").Return(true, nil)

		svc := NewAuthService(users, new(MockRetailLookup), &stubTokens{}, nil, zap.NewNop())
		created, err := svc.BootstrapAdmin(ctx, "root", "", "adminpass1")
		require.NoError(t, err)
		assert.False(t, created)
		users.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}
