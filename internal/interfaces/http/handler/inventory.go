package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	inventoryapp "github.com/retail-inventory/backend/internal/application/inventory"
)

// InventoryService is the stock use case surface the inventory endpoints need
type InventoryService interface {
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*inventoryapp.RecordResponse, error)
	List(ctx context.Context, tenantID uuid.UUID, filter inventoryapp.RecordListFilter) ([]inventoryapp.RecordResponse, int64, error)
	Create(ctx context.Context, tenantID uuid.UUID, req inventoryapp.CreateRecordRequest) (*inventoryapp.RecordResponse, error)
	StockIn(ctx context.Context, tenantID, recordID uuid.UUID, req inventoryapp.StockInRequest) (*inventoryapp.RecordResponse, error)
	StockOut(ctx context.Context, tenantID, recordID uuid.UUID, req inventoryapp.StockOutRequest) (*inventoryapp.RecordResponse, error)
	MoveStock(ctx context.Context, tenantID, recordID uuid.UUID, req inventoryapp.MoveStockRequest) (*inventoryapp.MoveStockResponse, error)
	Update(ctx context.Context, tenantID, recordID uuid.UUID, req inventoryapp.UpdateRecordRequest) (*inventoryapp.RecordResponse, error)
	Delete(ctx context.Context, tenantID, recordID uuid.UUID) error
	GetMovement(ctx context.Context, tenantID, id uuid.UUID) (*inventoryapp.MovementResponse, error)
	ListMovements(ctx context.Context, tenantID uuid.UUID, filter inventoryapp.MovementListFilter) ([]inventoryapp.MovementResponse, int64, error)
}

// InventoryHandler handles inventory record and stock movement endpoints
type InventoryHandler struct {
	BaseHandler
	inventoryService InventoryService
}

// NewInventoryHandler creates a new InventoryHandler
func NewInventoryHandler(inventoryService InventoryService) *InventoryHandler {
	return &InventoryHandler{inventoryService: inventoryService}
}

// List godoc
// @Summary      List inventory records
// @Description  List the tenant's inventory records with product and location names
// @Tags         inventory
// @Produce      json
// @Param        search query string false "Search by product code or name"
// @Param        category_id query string false "Category ID" format(uuid)
// @Param        location_id query string false "Location ID" format(uuid)
// @Param        product_id query string false "Product ID" format(uuid)
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(10)
// @Param        order_by query string false "Order by field" default(updated_at)
// @Param        order_dir query string false "Order direction" Enums(asc, desc) default(desc)
// @Success      200 {object} dto.Response{data=[]inventoryapp.RecordResponse,meta=dto.Meta}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /inventory [get]
func (h *InventoryHandler) List(c *gin.Context) {
	tenantID, ok := h.getTenantID(c)
	if !ok {
		return
	}

	var filter inventoryapp.RecordListFilter
	if !h.bindQuery(c, &filter) ||
		!h.queryUUID(c, "category_id", &filter.CategoryID) ||
		!h.queryUUID(c, "location_id", &filter.LocationID) ||
		!h.queryUUID(c, "product_id", &filter.ProductID) {
		return
	}

	records, total, err := h.inventoryService.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, records, total, filter.Page, filter.PageSize)
}

// GetByID godoc
// @Summary      Get inventory record
// @Tags         inventory
// @Produce      json
// @Param        id path string true "Inventory record ID" format(uuid)
// @Success      200 {object} dto.Response{data=inventoryapp.RecordResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /inventory/{id} [get]
func (h *InventoryHandler) GetByID(c *gin.Context) {
	tenantID, ok := h.getTenantID(c)
	if !ok {
		return
	}
	id, ok := h.parseID(c, "inventory")
	if !ok {
		return
	}

	record, err := h.inventoryService.GetByID(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, record)
}

// Create godoc
// @Summary      Create inventory record
// @Description  Stock a product at a location. Merges into the existing record for the same product and location.
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        request body inventoryapp.CreateRecordRequest true "Inventory record"
// @Success      201 {object} dto.Response{data=inventoryapp.RecordResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /inventory/create [post]
func (h *InventoryHandler) Create(c *gin.Context) {
	tenantID, ok := h.getTenantID(c)
	if !ok {
		return
	}

	var req inventoryapp.CreateRecordRequest
	if !h.bindJSON(c, &req) {
		return
	}
	req.OperatorID = getUserID(c)

	record, err := h.inventoryService.Create(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, record)
}

// Update godoc
// @Summary      Correct inventory record
// @Description  Directly set quantity and/or location. The capacity ledger of every touched location is adjusted.
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        id path string true "Inventory record ID" format(uuid)
// @Param        request body inventoryapp.UpdateRecordRequest true "Correction"
// @Success      200 {object} dto.Response{data=inventoryapp.RecordResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /inventory/{id} [put]
func (h *InventoryHandler) Update(c *gin.Context) {
	tenantID, ok := h.getTenantID(c)
	if !ok {
		return
	}
	id, ok := h.parseID(c, "inventory")
	if !ok {
		return
	}

	var req inventoryapp.UpdateRecordRequest
	if !h.bindJSON(c, &req) {
		return
	}
	req.OperatorID = getUserID(c)

	record, err := h.inventoryService.Update(c.Request.Context(), tenantID, id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, record)
}

// StockIn godoc
// @Summary      Stock in
// @Description  Receive units into a record, or into the product's record at another location
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        id path string true "Inventory record ID" format(uuid)
// @Param        request body inventoryapp.StockInRequest true "Stock in"
// @Success      200 {object} dto.Response{data=inventoryapp.RecordResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /inventory/stock-in/{id} [put]
func (h *InventoryHandler) StockIn(c *gin.Context) {
	tenantID, ok := h.getTenantID(c)
	if !ok {
		return
	}
	id, ok := h.parseID(c, "inventory")
	if !ok {
		return
	}

	var req inventoryapp.StockInRequest
	if !h.bindJSON(c, &req) {
		return
	}
	req.OperatorID = getUserID(c)

	record, err := h.inventoryService.StockIn(c.Request.Context(), tenantID, id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, record)
}

// StockOut godoc
// @Summary      Stock out
// @Description  Ship units out of a record and release their volume
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        id path string true "Inventory record ID" format(uuid)
// @Param        request body inventoryapp.StockOutRequest true "Stock out"
// @Success      200 {object} dto.Response{data=inventoryapp.RecordResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /inventory/stock-out/{id} [put]
func (h *InventoryHandler) StockOut(c *gin.Context) {
	tenantID, ok := h.getTenantID(c)
	if !ok {
		return
	}
	id, ok := h.parseID(c, "inventory")
	if !ok {
		return
	}

	var req inventoryapp.StockOutRequest
	if !h.bindJSON(c, &req) {
		return
	}
	req.OperatorID = getUserID(c)

	record, err := h.inventoryService.StockOut(c.Request.Context(), tenantID, id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, record)
}

// MoveStock godoc
// @Summary      Move stock
// @Description  Transfer units to another location. A source record left empty is removed.
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        id path string true "Source inventory record ID" format(uuid)
// @Param        request body inventoryapp.MoveStockRequest true "Move"
// @Success      200 {object} dto.Response{data=inventoryapp.MoveStockResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /inventory/move-stock/{id} [put]
func (h *InventoryHandler) MoveStock(c *gin.Context) {
	tenantID, ok := h.getTenantID(c)
	if !ok {
		return
	}
	id, ok := h.parseID(c, "inventory")
	if !ok {
		return
	}

	var req inventoryapp.MoveStockRequest
	if !h.bindJSON(c, &req) {
		return
	}
	req.OperatorID = getUserID(c)

	result, err := h.inventoryService.MoveStock(c.Request.Context(), tenantID, id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}

// Delete godoc
// @Summary      Delete inventory record
// @Description  Remove a record and release its volume from the location
// @Tags         inventory
// @Param        id path string true "Inventory record ID" format(uuid)
// @Success      204
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /inventory/{id} [delete]
func (h *InventoryHandler) Delete(c *gin.Context) {
	tenantID, ok := h.getTenantID(c)
	if !ok {
		return
	}
	id, ok := h.parseID(c, "inventory")
	if !ok {
		return
	}

	if err := h.inventoryService.Delete(c.Request.Context(), tenantID, id); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// ListMovements godoc
// @Summary      List stock movements
// @Description  Browse the movement log, newest first
// @Tags         stock-movements
// @Produce      json
// @Param        type query string false "Movement type" Enums(in, out, move)
// @Param        product_id query string false "Product ID" format(uuid)
// @Param        location_id query string false "Location ID, matches either side of a move" format(uuid)
// @Param        from query string false "From date (inclusive)" format(date)
// @Param        to query string false "To date (inclusive)" format(date)
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(10)
// @Success      200 {object} dto.Response{data=[]inventoryapp.MovementResponse,meta=dto.Meta}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /stock-movements [get]
func (h *InventoryHandler) ListMovements(c *gin.Context) {
	tenantID, ok := h.getTenantID(c)
	if !ok {
		return
	}

	var filter inventoryapp.MovementListFilter
	if !h.bindQuery(c, &filter) ||
		!h.queryUUID(c, "product_id", &filter.ProductID) ||
		!h.queryUUID(c, "location_id", &filter.LocationID) {
		return
	}

	movements, total, err := h.inventoryService.ListMovements(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, movements, total, filter.Page, filter.PageSize)
}

// GetMovement godoc
// @Summary      Get stock movement
// @Tags         stock-movements
// @Produce      json
// @Param        id path string true "Movement ID" format(uuid)
// @Success      200 {object} dto.Response{data=inventoryapp.MovementResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /stock-movements/{id} [get]
func (h *InventoryHandler) GetMovement(c *gin.Context) {
	tenantID, ok := h.getTenantID(c)
	if !ok {
		return
	}
	id, ok := h.parseID(c, "movement")
	if !ok {
		return
	}

	movement, err := h.inventoryService.GetMovement(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, movement)
}
