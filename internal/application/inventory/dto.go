package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/retail-inventory/backend/internal/domain/catalog"
	"github.com/retail-inventory/backend/internal/domain/inventory"
)

// RecordResponse represents an inventory record in API responses
type RecordResponse struct {
	ID           uuid.UUID  `json:"id"`
	ProductID    uuid.UUID  `json:"product_id"`
	ProductCode  string     `json:"product_code,omitempty"`
	ProductName  string     `json:"product_name,omitempty"`
	LocationID   uuid.UUID  `json:"location_id"`
	LocationName string     `json:"location_name,omitempty"`
	SupplierID   *uuid.UUID `json:"supplier_id,omitempty"`
	Quantity     int        `json:"quantity"`
	Volume       int        `json:"volume"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	Version      int        `json:"version"`
}

// RecordListFilter represents filter options for the inventory list
type RecordListFilter struct {
	Search     string     `form:"search"`
	CategoryID *uuid.UUID `form:"-"`
	LocationID *uuid.UUID `form:"-"`
	ProductID  *uuid.UUID `form:"-"`
	Page       int        `form:"page" binding:"omitempty,min=1"`
	PageSize   int        `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy    string     `form:"order_by"`
	OrderDir   string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// CreateRecordRequest creates a record or merges into the existing one for
// the same product and location
type CreateRecordRequest struct {
	ProductID  uuid.UUID  `json:"product_id" binding:"required"`
	LocationID uuid.UUID  `json:"location_id" binding:"required"`
	SupplierID *uuid.UUID `json:"supplier_id"`
	Quantity   int        `json:"quantity" binding:"required,min=1,max=2147483647"`
	OperatorID uuid.UUID  `json:"-"`
}

// UpdateRecordRequest directly corrects quantity and/or location
type UpdateRecordRequest struct {
	Quantity   *int       `json:"quantity" binding:"omitempty,min=0,max=2147483647"`
	LocationID *uuid.UUID `json:"location_id"`
	SupplierID *uuid.UUID `json:"supplier_id"`
	OperatorID uuid.UUID  `json:"-"`
}

// StockInRequest receives stock. LocationID defaults to the record's location;
// a different location books the units on the product's record there.
type StockInRequest struct {
	LocationID *uuid.UUID `json:"location_id"`
	Quantity   int        `json:"quantity" binding:"required,min=1,max=2147483647"`
	OperatorID uuid.UUID  `json:"-"`
}

// StockOutRequest ships stock out of a record
type StockOutRequest struct {
	Quantity   int       `json:"quantity" binding:"required,min=1,max=2147483647"`
	OperatorID uuid.UUID `json:"-"`
}

// MoveStockRequest transfers stock to another location
type MoveStockRequest struct {
	LocationID uuid.UUID `json:"location_id" binding:"required"`
	Quantity   int       `json:"quantity" binding:"required,min=1,max=2147483647"`
	OperatorID uuid.UUID `json:"-"`
}

// MoveStockResponse describes both sides of a completed move
type MoveStockResponse struct {
	Source        *RecordResponse  `json:"source,omitempty"`
	SourceDeleted bool             `json:"source_deleted"`
	Destination   RecordResponse   `json:"destination"`
	Movement      MovementResponse `json:"movement"`
}

// MovementResponse represents a movement log entry
type MovementResponse struct {
	ID             uuid.UUID  `json:"id"`
	ProductID      uuid.UUID  `json:"product_id"`
	FromLocationID *uuid.UUID `json:"from_location_id,omitempty"`
	ToLocationID   *uuid.UUID `json:"to_location_id,omitempty"`
	Quantity       int        `json:"quantity"`
	Type           string     `json:"type"`
	CreatedBy      *uuid.UUID `json:"created_by,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

// MovementListFilter represents filter options for the movement log
type MovementListFilter struct {
	Type       string     `form:"type" binding:"omitempty,oneof=in out move"`
	ProductID  *uuid.UUID `form:"-"`
	LocationID *uuid.UUID `form:"-"`
	From       *time.Time `form:"from" time_format:"2006-01-02"`
	To         *time.Time `form:"to" time_format:"2006-01-02"`
	Page       int        `form:"page" binding:"omitempty,min=1"`
	PageSize   int        `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// LocationResponse represents a location in API responses
type LocationResponse struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	Description     string    `json:"description"`
	Volume          int       `json:"volume"`
	RemainingVolume int       `json:"remaining_volume"`
	UsedVolume      int       `json:"used_volume"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
	Version         int       `json:"version"`
}

// RecalculateResponse reports the result of a ledger recompute
type RecalculateResponse struct {
	Location       LocationResponse `json:"location"`
	PreviousRemain int              `json:"previous_remaining_volume"`
	Overcommitted  bool             `json:"overcommitted"`
}

// LocationListFilter represents filter options for the location list
type LocationListFilter struct {
	Search   string `form:"search"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// CreateLocationRequest creates a location
type CreateLocationRequest struct {
	Name        string    `json:"name" binding:"required,max=100"`
	Description string    `json:"description"`
	Volume      int       `json:"volume" binding:"min=0,max=2147483647"`
	OperatorID  uuid.UUID `json:"-"`
}

// UpdateLocationRequest updates a location; Volume resizes the capacity
type UpdateLocationRequest struct {
	Name        *string `json:"name" binding:"omitempty,max=100"`
	Description *string `json:"description"`
	Volume      *int    `json:"volume" binding:"omitempty,min=0,max=2147483647"`
}

// ToRecordResponse converts a record, enriching it with product and location
// details when they are known
func ToRecordResponse(r *inventory.InventoryRecord, p *catalog.Product, l *inventory.Location) RecordResponse {
	resp := RecordResponse{
		ID:         r.ID,
		ProductID:  r.ProductID,
		LocationID: r.LocationID,
		SupplierID: r.SupplierID,
		Quantity:   r.Quantity,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
		Version:    r.Version,
	}
	if p != nil {
		resp.ProductCode = p.Code
		resp.ProductName = p.Name
		resp.Volume = p.Footprint(r.Quantity)
	}
	if l != nil {
		resp.LocationName = l.Name
	}
	return resp
}

// ToMovementResponse converts a movement
func ToMovementResponse(m *inventory.Movement) MovementResponse {
	return MovementResponse{
		ID:             m.ID,
		ProductID:      m.ProductID,
		FromLocationID: m.FromLocationID,
		ToLocationID:   m.ToLocationID,
		Quantity:       m.Quantity,
		Type:           string(m.Type),
		CreatedBy:      m.CreatedBy,
		CreatedAt:      m.CreatedAt,
	}
}

// ToLocationResponse converts a location
func ToLocationResponse(l *inventory.Location) LocationResponse {
	return LocationResponse{
		ID:              l.ID,
		Name:            l.Name,
		Description:     l.Description,
		Volume:          l.Volume,
		RemainingVolume: l.RemainingVolume,
		UsedVolume:      l.UsedVolume(),
		CreatedAt:       l.CreatedAt,
		UpdatedAt:       l.UpdatedAt,
		Version:         l.Version,
	}
}
