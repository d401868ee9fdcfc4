package retail

import (
	"time"

	"github.com/google/uuid"
	"github.com/retail-inventory/backend/internal/domain/retail"
)

// CreateRetailRequest creates a tenant together with its owner account and subscription
type CreateRetailRequest struct {
	Code          string `json:"code" binding:"required,min=1,max=50"`
	Name          string `json:"name" binding:"required,min=1,max=200"`
	Email         string `json:"email" binding:"omitempty,email,max=200"`
	Phone         string `json:"phone" binding:"omitempty,max=50"`
	Address       string `json:"address" binding:"omitempty,max=500"`
	OwnerUsername string `json:"owner_username" binding:"required,min=3,max=100"`
	OwnerEmail    string `json:"owner_email" binding:"omitempty,email,max=200"`
	OwnerPassword string `json:"owner_password" binding:"required,min=8,max=72"`
	StartDate     string `json:"start_date" binding:"required" example:"2024-01-01"`
	EndDate       string `json:"end_date" binding:"required" example:"2024-12-31"`
}

// UpdateRetailRequest changes a tenant's profile. Nil fields are left as is.
type UpdateRetailRequest struct {
	Name    *string `json:"name" binding:"omitempty,min=1,max=200"`
	Email   *string `json:"email" binding:"omitempty,max=200"`
	Phone   *string `json:"phone" binding:"omitempty,max=50"`
	Address *string `json:"address" binding:"omitempty,max=500"`
}

// ExtendSubscriptionRequest moves a subscription's end date
type ExtendSubscriptionRequest struct {
	EndDate string `json:"end_date" binding:"required" example:"2025-12-31"`
}

// RetailListFilter holds list query parameters
type RetailListFilter struct {
	Search   string `form:"search"`
	Status   string `form:"status" binding:"omitempty,oneof=active inactive"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// RetailResponse is a tenant with its subscription period
type RetailResponse struct {
	ID        uuid.UUID `json:"id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Address   string    `json:"address,omitempty"`
	Status    string    `json:"status"`
	StartDate string    `json:"start_date,omitempty"`
	EndDate   string    `json:"end_date,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// RefreshStatusResponse summarizes a status sweep
type RefreshStatusResponse struct {
	Checked     int `json:"checked"`
	Activated   int `json:"activated"`
	Deactivated int `json:"deactivated"`
}

// ToRetailResponse converts a retail and its (optional) subscription
func ToRetailResponse(r *retail.Retail, sub *retail.Subscription) RetailResponse {
	resp := RetailResponse{
		ID:        r.ID,
		Code:      r.Code,
		Name:      r.Name,
		Email:     r.Email,
		Phone:     r.Phone,
		Address:   r.Address,
		Status:    string(r.Status),
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
	if sub != nil {
		resp.StartDate = retail.NewDate(sub.StartDate).String()
		resp.EndDate = retail.NewDate(sub.EndDate).String()
	}
	return resp
}
