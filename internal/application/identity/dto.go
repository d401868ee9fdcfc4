package identity

import (
	"time"

	"github.com/google/uuid"
)

// LoginRequest carries login credentials
type LoginRequest struct {
	Username string `json:"username" binding:"required,max=100"`
	Password string `json:"password" binding:"required,max=72"`
}

// LoginResponse holds the issued access token and the user it belongs to
type LoginResponse struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
	User        UserInfo  `json:"user"`
}

// UserInfo describes the logged-in user
type UserInfo struct {
	ID       uuid.UUID  `json:"id"`
	TenantID *uuid.UUID `json:"tenant_id,omitempty"`
	Username string     `json:"username"`
	Email    string     `json:"email,omitempty"`
	Role     string     `json:"role"`
}
