package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/retail-inventory/backend/internal/infrastructure/logger"
	"github.com/retail-inventory/backend/internal/interfaces/http/dto"
)

// Tenant context keys
const (
	TenantIDKey     = "tenant_id"
	TenantUUIDKey   = "tenant_uuid"
	TenantHeaderKey = "X-Tenant-ID"
)

// TenantConfig holds configuration for the tenant middleware
type TenantConfig struct {
	// AllowHeader lets tokens without a tenant claim select one with X-Tenant-ID
	AllowHeader bool
}

// Tenant resolves the tenant every tenant-scoped route works on. It must run
// after JWTAuth. The token's tenant claim always wins over the header.
func Tenant(cfg TenantConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetString(JWTTenantIDKey)
		if raw == "" && cfg.AllowHeader {
			raw = c.GetHeader(TenantHeaderKey)
		}
		if raw == "" {
			abortWithError(c, dto.ErrCodeTenantRequired, "Tenant context is required")
			return
		}

		tenantID, err := uuid.Parse(raw)
		if err != nil || tenantID == uuid.Nil {
			abortWithError(c, dto.ErrCodeBadRequest, "Invalid tenant ID format")
			return
		}

		c.Set(TenantIDKey, tenantID.String())
		c.Set(TenantUUIDKey, tenantID)

		ctx := c.Request.Context()
		ctx, _ = logger.WithTenantID(ctx, logger.FromContext(ctx), tenantID.String())
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// GetTenantID returns the tenant resolved by Tenant
func GetTenantID(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(TenantUUIDKey)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}
