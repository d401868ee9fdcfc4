package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/retail-inventory/backend/internal/infrastructure/auth"
	"github.com/retail-inventory/backend/internal/infrastructure/logger"
	"github.com/retail-inventory/backend/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

// JWT context keys
const (
	JWTClaimsKey   = "jwt_claims"
	JWTUserIDKey   = "jwt_user_id"
	JWTTenantIDKey = "jwt_tenant_id"
	JWTRoleKey     = "jwt_role"
	AuthHeaderKey  = "Authorization"
	BearerPrefix   = "Bearer "
)

// TokenValidator validates access tokens
type TokenValidator interface {
	ValidateToken(tokenString string) (*auth.Claims, error)
}

// JWTConfig holds configuration for the JWT middleware
type JWTConfig struct {
	Validator TokenValidator
	// Revocation is optional; without it logged out tokens stay valid until expiry
	Revocation auth.RevocationStore
	Logger     *zap.Logger
}

// JWTAuth requires a valid, unrevoked bearer token
func JWTAuth(cfg JWTConfig) gin.HandlerFunc {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	return func(c *gin.Context) {
		header := c.GetHeader(AuthHeaderKey)
		if !strings.HasPrefix(header, BearerPrefix) || strings.TrimPrefix(header, BearerPrefix) == "" {
			abortWithError(c, dto.ErrCodeUnauthorized, "Missing or malformed authorization header")
			return
		}

		claims, err := cfg.Validator.ValidateToken(strings.TrimPrefix(header, BearerPrefix))
		if err != nil {
			log.Debug("JWT authentication failed", zap.Error(err), zap.String("path", c.Request.URL.Path))
			if errors.Is(err, auth.ErrExpiredToken) {
				abortWithError(c, dto.ErrCodeTokenExpired, "Token has expired")
				return
			}
			abortWithError(c, dto.ErrCodeInvalidToken, "Invalid token")
			return
		}

		if cfg.Revocation != nil && claims.ID != "" {
			revoked, err := cfg.Revocation.IsRevoked(c.Request.Context(), claims.ID)
			switch {
			case err != nil:
				// fail open
				log.Error("Failed to check token revocation", zap.String("jti", claims.ID), zap.Error(err))
			case revoked:
				abortWithError(c, dto.ErrCodeTokenRevoked, "Token has been revoked")
				return
			}
		}

		c.Set(JWTClaimsKey, claims)
		c.Set(JWTUserIDKey, claims.UserID)
		c.Set(JWTTenantIDKey, claims.TenantID)
		c.Set(JWTRoleKey, claims.Role)

		ctx := c.Request.Context()
		ctx, _ = logger.WithUserID(ctx, logger.FromContext(ctx), claims.UserID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// GetJWTClaims retrieves JWT claims from gin.Context
func GetJWTClaims(c *gin.Context) *auth.Claims {
	if v, ok := c.Get(JWTClaimsKey); ok {
		if claims, ok := v.(*auth.Claims); ok {
			return claims
		}
	}
	return nil
}

// GetJWTUserID retrieves the user ID from JWT claims in context
func GetJWTUserID(c *gin.Context) string {
	return c.GetString(JWTUserIDKey)
}

// AdminOnly rejects tokens without the admin role
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetJWTClaims(c)
		if claims == nil || !claims.IsAdmin() {
			abortWithError(c, "FORBIDDEN", "Administrator access required")
			return
		}
		c.Next()
	}
}
