package partner

import (
	"strings"

	"github.com/google/uuid"
	"github.com/retail-inventory/backend/internal/domain/shared"
)

// Supplier is a vendor stock is received from
type Supplier struct {
	shared.TenantAggregateRoot
	Code        string `gorm:"type:varchar(50);not null;index"`
	Name        string `gorm:"type:varchar(200);not null"`
	ContactName string `gorm:"type:varchar(100)"`
	Phone       string `gorm:"type:varchar(50)"`
	Email       string `gorm:"type:varchar(200)"`
	Address     string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Supplier) TableName() string {
	return "suppliers"
}

// NewSupplier creates a new supplier
func NewSupplier(tenantID uuid.UUID, code, name string) (*Supplier, error) {
	if err := validateSupplierCode(code); err != nil {
		return nil, err
	}
	if err := validateSupplierName(name); err != nil {
		return nil, err
	}

	return &Supplier{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Code:                strings.ToUpper(code),
		Name:                shared.NormalizeName(name),
	}, nil
}

// Update updates the supplier's name
func (s *Supplier) Update(name string) error {
	if err := validateSupplierName(name); err != nil {
		return err
	}
	s.Name = shared.NormalizeName(name)
	s.Touch()
	s.IncrementVersion()
	return nil
}

// UpdateCode changes the supplier code
func (s *Supplier) UpdateCode(code string) error {
	if err := validateSupplierCode(code); err != nil {
		return err
	}
	s.Code = strings.ToUpper(code)
	s.Touch()
	s.IncrementVersion()
	return nil
}

// SetContact sets the supplier's contact information
func (s *Supplier) SetContact(contactName, phone, email, address string) error {
	if len(contactName) > 100 {
		return shared.NewDomainError("INVALID_CONTACT_NAME", "Contact name cannot exceed 100 characters")
	}
	if len(phone) > 50 {
		return shared.NewDomainError("INVALID_PHONE", "Phone cannot exceed 50 characters")
	}
	if len(email) > 200 {
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot exceed 200 characters")
	}
	s.ContactName = strings.TrimSpace(contactName)
	s.Phone = strings.TrimSpace(phone)
	s.Email = strings.TrimSpace(email)
	s.Address = address
	s.Touch()
	return nil
}

func validateSupplierCode(code string) error {
	if code == "" {
		return shared.NewDomainError("INVALID_CODE", "Supplier code cannot be empty")
	}
	if len(code) > 50 {
		return shared.NewDomainError("INVALID_CODE", "Supplier code cannot exceed 50 characters")
	}
	return nil
}

func validateSupplierName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Supplier name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Supplier name cannot exceed 200 characters")
	}
	return nil
}
