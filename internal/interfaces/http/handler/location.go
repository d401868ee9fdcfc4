package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	inventoryapp "github.com/retail-inventory/backend/internal/application/inventory"
)

// LocationService is the location use case surface
type LocationService interface {
	Create(ctx context.Context, tenantID uuid.UUID, req inventoryapp.CreateLocationRequest) (*inventoryapp.LocationResponse, error)
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*inventoryapp.LocationResponse, error)
	List(ctx context.Context, tenantID uuid.UUID, filter inventoryapp.LocationListFilter) ([]inventoryapp.LocationResponse, int64, error)
	Update(ctx context.Context, tenantID, id uuid.UUID, req inventoryapp.UpdateLocationRequest) (*inventoryapp.LocationResponse, error)
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
	Recalculate(ctx context.Context, tenantID, id uuid.UUID) (*inventoryapp.RecalculateResponse, error)
}

// LocationHandler handles storage location endpoints
type LocationHandler struct {
	BaseHandler
	locationService LocationService
}

// NewLocationHandler creates a new LocationHandler
func NewLocationHandler(locationService LocationService) *LocationHandler {
	return &LocationHandler{locationService: locationService}
}

// List godoc
// @Summary      List locations
// @Tags         locations
// @Produce      json
// @Param        search query string false "Search by name"
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(10)
// @Param        order_by query string false "Order by field" default(name)
// @Param        order_dir query string false "Order direction" Enums(asc, desc)
// @Success      200 {object} dto.Response{data=[]inventoryapp.LocationResponse,meta=dto.Meta}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /locations [get]
func (h *LocationHandler) List(c *gin.Context) {
	tenantID, ok := h.getTenantID(c)
	if !ok {
		return
	}

	var filter inventoryapp.LocationListFilter
	if !h.bindQuery(c, &filter) {
		return
	}

	locations, total, err := h.locationService.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, locations, total, filter.Page, filter.PageSize)
}

// GetByID godoc
// @Summary      Get location
// @Tags         locations
// @Produce      json
// @Param        id path string true "Location ID" format(uuid)
// @Success      200 {object} dto.Response{data=inventoryapp.LocationResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /locations/{id} [get]
func (h *LocationHandler) GetByID(c *gin.Context) {
	tenantID, ok := h.getTenantID(c)
	if !ok {
		return
	}
	id, ok := h.parseID(c, "location")
	if !ok {
		return
	}

	location, err := h.locationService.GetByID(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, location)
}

// Create godoc
// @Summary      Create location
// @Description  Create a location; its remaining volume starts at its capacity
// @Tags         locations
// @Accept       json
// @Produce      json
// @Param        request body inventoryapp.CreateLocationRequest true "Location"
// @Success      201 {object} dto.Response{data=inventoryapp.LocationResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /locations [post]
func (h *LocationHandler) Create(c *gin.Context) {
	tenantID, ok := h.getTenantID(c)
	if !ok {
		return
	}

	var req inventoryapp.CreateLocationRequest
	if !h.bindJSON(c, &req) {
		return
	}
	req.OperatorID = getUserID(c)

	location, err := h.locationService.Create(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, location)
}

// Update godoc
// @Summary      Update location
// @Description  Rename or resize a location. Shrinking below the used volume is rejected.
// @Tags         locations
// @Accept       json
// @Produce      json
// @Param        id path string true "Location ID" format(uuid)
// @Param        request body inventoryapp.UpdateLocationRequest true "Location changes"
// @Success      200 {object} dto.Response{data=inventoryapp.LocationResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /locations/{id} [put]
func (h *LocationHandler) Update(c *gin.Context) {
	tenantID, ok := h.getTenantID(c)
	if !ok {
		return
	}
	id, ok := h.parseID(c, "location")
	if !ok {
		return
	}

	var req inventoryapp.UpdateLocationRequest
	if !h.bindJSON(c, &req) {
		return
	}

	location, err := h.locationService.Update(c.Request.Context(), tenantID, id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, location)
}

// Delete godoc
// @Summary      Delete location
// @Tags         locations
// @Param        id path string true "Location ID" format(uuid)
// @Success      204
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /locations/{id} [delete]
func (h *LocationHandler) Delete(c *gin.Context) {
	tenantID, ok := h.getTenantID(c)
	if !ok {
		return
	}
	id, ok := h.parseID(c, "location")
	if !ok {
		return
	}

	if err := h.locationService.Delete(c.Request.Context(), tenantID, id); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// Recalculate godoc
// @Summary      Recalculate location volume
// @Description  Recompute remaining volume from the records stored at the location
// @Tags         locations
// @Produce      json
// @Param        id path string true "Location ID" format(uuid)
// @Success      200 {object} dto.Response{data=inventoryapp.RecalculateResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /locations/{id}/recalculate [post]
func (h *LocationHandler) Recalculate(c *gin.Context) {
	tenantID, ok := h.getTenantID(c)
	if !ok {
		return
	}
	id, ok := h.parseID(c, "location")
	if !ok {
		return
	}

	result, err := h.locationService.Recalculate(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}
