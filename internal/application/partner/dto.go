package partner

import (
	"time"

	"github.com/google/uuid"
	"github.com/retail-inventory/backend/internal/domain/partner"
)

// CreateSupplierRequest represents a request to create a supplier
type CreateSupplierRequest struct {
	Code        string    `json:"code" binding:"required,min=1,max=50"`
	Name        string    `json:"name" binding:"required,min=1,max=200"`
	ContactName string    `json:"contact_name" binding:"max=100"`
	Phone       string    `json:"phone" binding:"max=50"`
	Email       string    `json:"email" binding:"omitempty,email,max=200"`
	Address     string    `json:"address" binding:"max=500"`
	OperatorID  uuid.UUID `json:"-"`
}

// UpdateSupplierRequest represents a request to update a supplier.
// Nil fields are left unchanged.
type UpdateSupplierRequest struct {
	Code        *string `json:"code" binding:"omitempty,min=1,max=50"`
	Name        *string `json:"name" binding:"omitempty,min=1,max=200"`
	ContactName *string `json:"contact_name" binding:"omitempty,max=100"`
	Phone       *string `json:"phone" binding:"omitempty,max=50"`
	Email       *string `json:"email" binding:"omitempty,email,max=200"`
	Address     *string `json:"address" binding:"omitempty,max=500"`
}

// SupplierResponse represents a supplier in API responses
type SupplierResponse struct {
	ID          uuid.UUID `json:"id"`
	Code        string    `json:"code"`
	Name        string    `json:"name"`
	ContactName string    `json:"contact_name"`
	Phone       string    `json:"phone"`
	Email       string    `json:"email"`
	Address     string    `json:"address"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// SupplierListFilter represents filter options for the supplier list
type SupplierListFilter struct {
	Search   string `form:"search"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ToSupplierResponse converts a domain Supplier to SupplierResponse
func ToSupplierResponse(s *partner.Supplier) SupplierResponse {
	return SupplierResponse{
		ID:          s.ID,
		Code:        s.Code,
		Name:        s.Name,
		ContactName: s.ContactName,
		Phone:       s.Phone,
		Email:       s.Email,
		Address:     s.Address,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}
