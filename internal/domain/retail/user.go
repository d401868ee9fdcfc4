package retail

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/retail-inventory/backend/internal/domain/shared"
	"golang.org/x/crypto/bcrypt"
)

// Role is the permission level of a user
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleRetail Role = "retail"
)

const bcryptCost = 12

// User is a login account. Retail owners carry their retail's ID as TenantID;
// the platform admin has no tenant.
type User struct {
	shared.BaseAggregateRoot
	TenantID     *uuid.UUID `gorm:"type:uuid;index"`
	Username     string     `gorm:"type:varchar(100);not null;uniqueIndex"`
	Email        string     `gorm:"type:varchar(200)"`
	PasswordHash string     `gorm:"type:varchar(200);not null"`
	Role         Role       `gorm:"type:varchar(20);not null"`
}

// TableName returns the table name for GORM
func (User) TableName() string {
	return "users"
}

// NewOwner creates the retail-role user that owns a tenant
func NewOwner(retailID uuid.UUID, username, email, password string) (*User, error) {
	if retailID == uuid.Nil {
		return nil, shared.NewValidationError("Retail ID cannot be empty")
	}
	u, err := newUser(username, email, password, RoleRetail)
	if err != nil {
		return nil, err
	}
	u.TenantID = &retailID
	return u, nil
}

// NewAdmin creates a platform administrator
func NewAdmin(username, email, password string) (*User, error) {
	return newUser(username, email, password, RoleAdmin)
}

func newUser(username, email, password string, role Role) (*User, error) {
	if err := validateUsername(username); err != nil {
		return nil, err
	}
	if email != "" {
		if err := validateEmail(email); err != nil {
			return nil, err
		}
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}
	return &User{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Username:          strings.ToLower(strings.TrimSpace(username)),
		Email:             strings.ToLower(strings.TrimSpace(email)),
		PasswordHash:      string(hash),
		Role:              role,
	}, nil
}

// VerifyPassword verifies if the provided password matches
func (u *User) VerifyPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// IsAdmin reports whether the user manages retails
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_\-.]+$`)

func validateUsername(username string) error {
	username = strings.TrimSpace(username)
	if len(username) < 3 {
		return shared.NewDomainError("INVALID_USERNAME", "Username must be at least 3 characters")
	}
	if len(username) > 100 {
		return shared.NewDomainError("INVALID_USERNAME", "Username cannot exceed 100 characters")
	}
	if !usernamePattern.MatchString(username) {
		return shared.NewDomainError("INVALID_USERNAME", "Username can only contain letters, numbers, underscores, hyphens, and dots")
	}
	return nil
}

func validatePassword(password string) error {
	if len(password) < 8 {
		return shared.NewDomainError("INVALID_PASSWORD", "Password must be at least 8 characters")
	}
	if len(password) > 72 {
		return shared.NewDomainError("INVALID_PASSWORD", "Password cannot exceed 72 characters")
	}
	return nil
}
