package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/retail-inventory/backend/internal/application/identity"
	"github.com/retail-inventory/backend/internal/domain/shared"
	"github.com/retail-inventory/backend/internal/infrastructure/auth"
	"github.com/retail-inventory/backend/internal/interfaces/http/dto"
	"github.com/retail-inventory/backend/internal/interfaces/http/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
	middleware.SetupValidator()
}

// authenticated simulates the JWT and tenant middleware for a retail owner
func authenticated(tenantID, userID uuid.UUID) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.RequestIDKey, "test-request")
		c.Set(middleware.JWTUserIDKey, userID.String())
		c.Set(middleware.JWTClaimsKey, &auth.Claims{
			TenantID: tenantID.String(),
			UserID:   userID.String(),
			Username: "owner",
			Role:     auth.RoleRetail,
		})
		c.Set(middleware.TenantUUIDKey, tenantID)
		c.Next()
	}
}

func doJSON(r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) dto.Response {
	t.Helper()
	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestHandleDomainError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"not found", shared.ErrNotFound, http.StatusNotFound, shared.CodeNotFound},
		{"wrapped capacity", errors.Join(errors.New("ctx"), shared.ErrCapacityExceeded), http.StatusUnprocessableEntity, shared.CodeCapacityExceeded},
		{"insufficient stock", shared.ErrInsufficientStock, http.StatusUnprocessableEntity, shared.CodeInsufficientStock},
		{"field code", shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive"), http.StatusBadRequest, "INVALID_QUANTITY"},
		{"optimistic lock", shared.ErrOptimisticLock, http.StatusConflict, shared.CodeOptimisticLock},
		{"transaction failed", shared.NewDomainError(shared.CodeTransactionFailed, "Delete failed"), http.StatusInternalServerError, shared.CodeTransactionFailed},
		{"plain error", errors.New("connection refused"), http.StatusInternalServerError, dto.ErrCodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
			c.Set(middleware.RequestIDKey, "req-1")

			h := &BaseHandler{}
			h.HandleDomainError(c, tt.err)

			assert.Equal(t, tt.wantStatus, w.Code)
			resp := decodeResponse(t, w)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.wantCode, resp.Error.Code)
			assert.Equal(t, "req-1", resp.Error.RequestID)
			assert.NotContains(t, w.Body.String(), "connection refused")
		})
	}
}

func TestSuccessWithMeta_Defaults(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	h := &BaseHandler{}
	h.SuccessWithMeta(c, []string{"a"}, 25, 0, 0)

	resp := decodeResponse(t, w)
	require.NotNil(t, resp.Meta)
	assert.Equal(t, 1, resp.Meta.Page)
	assert.Equal(t, shared.DefaultPageSize, resp.Meta.PageSize)
	assert.Equal(t, 3, resp.Meta.TotalPages)
}

func TestAuthHandler_Login(t *testing.T) {
	svc := new(MockAuthService)
	h := NewAuthHandler(svc)
	r := gin.New()
	r.POST("/auth/login", h.Login)

	t.Run("success", func(t *testing.T) {
		req := identity.LoginRequest{Username: "owner", Password: "secret123"}
		svc.On("Login", mock.Anything, req).Return(&identity.LoginResponse{
			AccessToken: "token",
			TokenType:   "Bearer",
			User:        identity.UserInfo{Username: "owner", Role: auth.RoleRetail},
		}, nil).Once()

		w := doJSON(r, http.MethodPost, "/auth/login", req)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"access_token":"token"`)
	})

	t.Run("bad credentials", func(t *testing.T) {
		req := identity.LoginRequest{Username: "owner", Password: "wrong"}
		svc.On("Login", mock.Anything, req).
			Return(nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid username or password")).Once()

		w := doJSON(r, http.MethodPost, "/auth/login", req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("inactive retail", func(t *testing.T) {
		req := identity.LoginRequest{Username: "expired", Password: "secret123"}
		svc.On("Login", mock.Anything, req).
			Return(nil, shared.NewDomainError("RETAIL_INACTIVE", "Subscription is not active")).Once()

		w := doJSON(r, http.MethodPost, "/auth/login", req)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("missing fields", func(t *testing.T) {
		w := doJSON(r, http.MethodPost, "/auth/login", map[string]string{"username": "owner"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		resp := decodeResponse(t, w)
		require.NotNil(t, resp.Error)
		assert.Equal(t, shared.CodeValidation, resp.Error.Code)
		require.Len(t, resp.Error.Details, 1)
		assert.Equal(t, "password", resp.Error.Details[0].Field)
	})

	svc.AssertExpectations(t)
}

func TestAuthHandler_Logout(t *testing.T) {
	svc := new(MockAuthService)
	h := NewAuthHandler(svc)

	r := gin.New()
	r.POST("/auth/logout", func(c *gin.Context) {
		claims := &auth.Claims{UserID: uuid.NewString()}
		claims.ID = "jti-1"
		c.Set(middleware.JWTClaimsKey, claims)
		c.Next()
	}, h.Logout)

	svc.On("Logout", mock.Anything, "jti-1", time.Duration(0)).Return(nil).Once()

	w := doJSON(r, http.MethodPost, "/auth/logout", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	svc.AssertExpectations(t)
}

func TestAuthHandler_CurrentUser(t *testing.T) {
	tenantID, userID := uuid.New(), uuid.New()
	h := NewAuthHandler(new(MockAuthService))

	r := gin.New()
	r.Use(authenticated(tenantID, userID))
	r.GET("/auth/me", h.CurrentUser)

	w := doJSON(r, http.MethodGet, "/auth/me", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), tenantID.String())
	assert.Contains(t, w.Body.String(), userID.String())
}

func TestSystemHandler_Health(t *testing.T) {
	t.Run("healthy", func(t *testing.T) {
		h := NewSystemHandler("1.0.0", map[string]HealthChecker{
			"database": HealthCheckFunc(func(context.Context) error { return nil }),
		})
		r := gin.New()
		r.GET("/health", h.Health)

		w := doJSON(r, http.MethodGet, "/health", nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"database":"healthy"`)
	})

	t.Run("dependency down", func(t *testing.T) {
		h := NewSystemHandler("1.0.0", map[string]HealthChecker{
			"database": HealthCheckFunc(func(context.Context) error { return errors.New("no route") }),
		})
		r := gin.New()
		r.GET("/health", h.Health)

		w := doJSON(r, http.MethodGet, "/health", nil)
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Contains(t, w.Body.String(), `"status":"unhealthy"`)
	})
}

func TestSystemHandler_Ping(t *testing.T) {
	r := gin.New()
	r.GET("/ping", NewSystemHandler("1.0.0", nil).Ping)

	w := doJSON(r, http.MethodGet, "/ping", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "pong")
}
