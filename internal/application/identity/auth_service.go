package identity

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/retail-inventory/backend/internal/domain/retail"
	"github.com/retail-inventory/backend/internal/domain/shared"
	"github.com/retail-inventory/backend/internal/infrastructure/auth"
	"go.uber.org/zap"
)

// TokenGenerator issues access tokens
type TokenGenerator interface {
	GenerateToken(input auth.GenerateTokenInput) (*auth.Token, error)
}

// RetailLookup resolves a tenant for the login status check
type RetailLookup interface {
	FindByID(ctx context.Context, id uuid.UUID) (*retail.Retail, error)
}

var errInvalidCredentials = shared.NewDomainError("INVALID_CREDENTIALS", "Invalid username or password")

// AuthService handles authentication operations
type AuthService struct {
	userRepo   retail.UserRepository
	retailRepo RetailLookup
	tokens     TokenGenerator
	revocation auth.RevocationStore
	logger     *zap.Logger
}

// NewAuthService creates a new authentication service. revocation may be nil,
// in which case Logout is a no-op.
func NewAuthService(
	userRepo retail.UserRepository,
	retailRepo RetailLookup,
	tokens TokenGenerator,
	revocation auth.RevocationStore,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		retailRepo: retailRepo,
		tokens:     tokens,
		revocation: revocation,
		logger:     logger,
	}
}

// Login verifies the credentials and returns an access token. Owners of an
// inactive retail cannot log in.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	user, err := s.userRepo.FindByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			s.logger.Warn("User not found during login", zap.String("username", req.Username))
			return nil, errInvalidCredentials
		}
		return nil, err
	}
	if !user.VerifyPassword(req.Password) {
		s.logger.Warn("Invalid password attempt", zap.String("username", req.Username))
		return nil, errInvalidCredentials
	}

	if !user.IsAdmin() {
		if user.TenantID == nil {
			return nil, errInvalidCredentials
		}
		r, err := s.retailRepo.FindByID(ctx, *user.TenantID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, errInvalidCredentials
			}
			return nil, err
		}
		if !r.IsActive() {
			s.logger.Warn("Login attempt for inactive retail",
				zap.String("username", req.Username),
				zap.String("retail_id", r.ID.String()))
			return nil, shared.NewDomainError("RETAIL_INACTIVE", "The retail subscription is not active")
		}
	}

	token, err := s.tokens.GenerateToken(auth.GenerateTokenInput{
		TenantID: user.TenantID,
		UserID:   user.ID,
		Username: user.Username,
		Role:     string(user.Role),
	})
	if err != nil {
		s.logger.Error("Failed to generate token", zap.Error(err))
		return nil, err
	}

	s.logger.Info("User logged in",
		zap.String("username", user.Username),
		zap.String("user_id", user.ID.String()))

	return &LoginResponse{
		AccessToken: token.AccessToken,
		TokenType:   token.TokenType,
		ExpiresAt:   token.ExpiresAt,
		User: UserInfo{
			ID:       user.ID,
			TenantID: user.TenantID,
			Username: user.Username,
			Email:    user.Email,
			Role:     string(user.Role),
		},
	}, nil
}

// Logout revokes the token identified by jti for its remaining lifetime
func (s *AuthService) Logout(ctx context.Context, jti string, remaining time.Duration) error {
	if s.revocation == nil || jti == "" {
		return nil
	}
	return s.revocation.Revoke(ctx, jti, remaining)
}

// BootstrapAdmin creates the platform admin unless the username is taken.
// It reports whether an account was created.
func (s *AuthService) BootstrapAdmin(ctx context.Context, username, email, password string) (bool, error) {
	admin, err := retail.NewAdmin(username, email, password)
	if err != nil {
		return false, err
	}
	exists, err := s.userRepo.ExistsByUsername(ctx, admin.Username)
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}
	if err := s.userRepo.Save(ctx, admin); err != nil {
		return false, err
	}
	s.logger.Info("Bootstrap admin created", zap.String("username", admin.Username))
	return true, nil
}
