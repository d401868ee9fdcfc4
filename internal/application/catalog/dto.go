package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/retail-inventory/backend/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

// CreateProductRequest represents a request to create a new product
type CreateProductRequest struct {
	Code        string          `json:"code" binding:"required,min=1,max=50"`
	Name        string          `json:"name" binding:"required,min=1,max=200"`
	Description string          `json:"description" binding:"max=2000"`
	Price       decimal.Decimal `json:"price"`
	Volume      int             `json:"volume" binding:"min=0,max=2147483647"`
	CategoryID  *uuid.UUID      `json:"category_id"`
	BrandID     *uuid.UUID      `json:"brand_id"`
	TypeID      *uuid.UUID      `json:"type_id"`
	OperatorID  uuid.UUID       `json:"-"`
}

// UpdateProductRequest represents a request to update a product.
// Nil fields are left unchanged.
type UpdateProductRequest struct {
	Code        *string          `json:"code" binding:"omitempty,min=1,max=50"`
	Name        *string          `json:"name" binding:"omitempty,min=1,max=200"`
	Description *string          `json:"description" binding:"omitempty,max=2000"`
	Price       *decimal.Decimal `json:"price"`
	Volume      *int             `json:"volume" binding:"omitempty,min=0,max=2147483647"`
	CategoryID  *uuid.UUID       `json:"category_id"`
	BrandID     *uuid.UUID       `json:"brand_id"`
	TypeID      *uuid.UUID       `json:"type_id"`
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID          uuid.UUID       `json:"id"`
	Code        string          `json:"code"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Volume      int             `json:"volume"`
	CategoryID  *uuid.UUID      `json:"category_id,omitempty"`
	BrandID     *uuid.UUID      `json:"brand_id,omitempty"`
	TypeID      *uuid.UUID      `json:"type_id,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	Version     int             `json:"version"`
}

// ProductListFilter represents filter options for the product list
type ProductListFilter struct {
	Search     string     `form:"search"`
	CategoryID *uuid.UUID `form:"-"`
	BrandID    *uuid.UUID `form:"-"`
	TypeID     *uuid.UUID `form:"-"`
	Page       int        `form:"page" binding:"omitempty,min=1"`
	PageSize   int        `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy    string     `form:"order_by"`
	OrderDir   string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ClassificationRequest creates or updates a brand, category or type
type ClassificationRequest struct {
	Name        string    `json:"name" binding:"required,min=1,max=100"`
	Description string    `json:"description" binding:"max=2000"`
	OperatorID  uuid.UUID `json:"-"`
}

// ClassificationResponse represents a brand, category or type in API responses
type ClassificationResponse struct {
	ID          uuid.UUID `json:"id"`
	Kind        string    `json:"kind"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ClassificationListFilter represents filter options for classification lists
type ClassificationListFilter struct {
	Search   string `form:"search"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ToProductResponse converts a domain Product to ProductResponse
func ToProductResponse(p *catalog.Product) ProductResponse {
	return ProductResponse{
		ID:          p.ID,
		Code:        p.Code,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Volume:      p.Volume,
		CategoryID:  p.CategoryID,
		BrandID:     p.BrandID,
		TypeID:      p.TypeID,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
		Version:     p.Version,
	}
}

// ToClassificationResponse converts a domain Classification
func ToClassificationResponse(c *catalog.Classification) ClassificationResponse {
	return ClassificationResponse{
		ID:          c.ID,
		Kind:        string(c.Kind),
		Name:        c.Name,
		Description: c.Description,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}
