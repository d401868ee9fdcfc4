package retail

import (
	"regexp"
	"strings"

	"github.com/retail-inventory/backend/internal/domain/shared"
)

// Status is the derived activity state of a retail tenant
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// IsValid returns true if the status is known
func (s Status) IsValid() bool {
	return s == StatusActive || s == StatusInactive
}

// Retail is a tenant of the system. Its ID is the tenant_id carried by every
// tenant-scoped row.
type Retail struct {
	shared.BaseAggregateRoot
	Code    string `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name    string `gorm:"type:varchar(200);not null"`
	Email   string `gorm:"type:varchar(200)"`
	Phone   string `gorm:"type:varchar(50)"`
	Address string `gorm:"type:text"`
	Status  Status `gorm:"type:varchar(20);not null;default:'inactive'"`
}

// TableName returns the table name for GORM
func (Retail) TableName() string {
	return "retails"
}

// NewRetail creates a retail tenant. Status starts inactive until a
// subscription is attached and SyncStatus runs.
func NewRetail(code, name string) (*Retail, error) {
	if err := validateCode(code); err != nil {
		return nil, err
	}
	if err := validateName(name); err != nil {
		return nil, err
	}
	return &Retail{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Code:              strings.ToUpper(strings.TrimSpace(code)),
		Name:              strings.TrimSpace(name),
		Status:            StatusInactive,
	}, nil
}

// Update changes the profile fields
func (r *Retail) Update(name, email, phone, address string) error {
	if err := validateName(name); err != nil {
		return err
	}
	if email != "" {
		if err := validateEmail(email); err != nil {
			return err
		}
	}
	if len(phone) > 50 {
		return shared.NewDomainError("INVALID_PHONE", "Phone cannot exceed 50 characters")
	}
	r.Name = strings.TrimSpace(name)
	r.Email = strings.ToLower(strings.TrimSpace(email))
	r.Phone = strings.TrimSpace(phone)
	r.Address = strings.TrimSpace(address)
	r.Touch()
	r.IncrementVersion()
	return nil
}

// SyncStatus derives the status from the subscription; a retail without a
// subscription is inactive. It reports whether the status changed.
func (r *Retail) SyncStatus(sub *Subscription, today Date) bool {
	next := StatusInactive
	if sub != nil && sub.Covers(today) {
		next = StatusActive
	}
	if next == r.Status {
		return false
	}
	r.Status = next
	r.Touch()
	r.IncrementVersion()
	return true
}

// IsActive reports whether the retail currently holds a valid subscription
func (r *Retail) IsActive() bool {
	return r.Status == StatusActive
}

var (
	codePattern  = regexp.MustCompile(`^[a-zA-Z0-9_\-]+$`)
	emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
)

func validateCode(code string) error {
	code = strings.TrimSpace(code)
	if code == "" {
		return shared.NewDomainError("INVALID_CODE", "Retail code cannot be empty")
	}
	if len(code) > 50 {
		return shared.NewDomainError("INVALID_CODE", "Retail code cannot exceed 50 characters")
	}
	if !codePattern.MatchString(code) {
		return shared.NewDomainError("INVALID_CODE", "Retail code can only contain letters, numbers, underscores, and hyphens")
	}
	return nil
}

func validateName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Retail name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Retail name cannot exceed 200 characters")
	}
	return nil
}

func validateEmail(email string) error {
	if len(email) > 200 {
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot exceed 200 characters")
	}
	if !emailPattern.MatchString(strings.TrimSpace(email)) {
		return shared.NewDomainError("INVALID_EMAIL", "Invalid email format")
	}
	return nil
}
