package handler

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/retail-inventory/backend/internal/application/identity"
	"github.com/retail-inventory/backend/internal/interfaces/http/dto"
	"github.com/retail-inventory/backend/internal/interfaces/http/middleware"
)

// AuthService is the identity use case surface the auth endpoints need
type AuthService interface {
	Login(ctx context.Context, req identity.LoginRequest) (*identity.LoginResponse, error)
	Logout(ctx context.Context, jti string, remaining time.Duration) error
}

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	BaseHandler
	authService AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login godoc
// @Summary      User login
// @Description  Authenticate an admin or retail owner with username and password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body identity.LoginRequest true "Login credentials"
// @Success      200 {object} dto.Response{data=identity.LoginResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      429 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req identity.LoginRequest
	if !h.bindJSON(c, &req) {
		return
	}

	result, err := h.authService.Login(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}

// Logout godoc
// @Summary      User logout
// @Description  Revoke the current access token
// @Tags         auth
// @Produce      json
// @Success      204
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	claims := middleware.GetJWTClaims(c)
	if claims == nil {
		h.NoContent(c)
		return
	}

	if err := h.authService.Logout(c.Request.Context(), claims.ID, claims.GetRemainingTTL()); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// CurrentUser godoc
// @Summary      Current user
// @Description  Return the identity carried by the access token
// @Tags         auth
// @Produce      json
// @Success      200 {object} dto.Response{data=identity.UserInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /auth/me [get]
func (h *AuthHandler) CurrentUser(c *gin.Context) {
	claims := middleware.GetJWTClaims(c)
	if claims == nil {
		h.ErrorWithCode(c, dto.ErrCodeUnauthorized, "Authentication required")
		return
	}

	info := identity.UserInfo{
		ID:       getUserID(c),
		Username: claims.Username,
		Role:     claims.Role,
	}
	if tenantID, err := claims.GetTenantUUID(); err == nil && tenantID != uuid.Nil {
		info.TenantID = &tenantID
	}
	h.Success(c, info)
}
