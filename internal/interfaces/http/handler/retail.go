package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	retailapp "github.com/retail-inventory/backend/internal/application/retail"
)

// RetailService is the admin tenant lifecycle surface
type RetailService interface {
	Create(ctx context.Context, req retailapp.CreateRetailRequest) (*retailapp.RetailResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*retailapp.RetailResponse, error)
	List(ctx context.Context, filter retailapp.RetailListFilter) ([]retailapp.RetailResponse, int64, error)
	Update(ctx context.Context, id uuid.UUID, req retailapp.UpdateRetailRequest) (*retailapp.RetailResponse, error)
	Extend(ctx context.Context, id uuid.UUID, req retailapp.ExtendSubscriptionRequest) (*retailapp.RetailResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
	RefreshStatuses(ctx context.Context) (*retailapp.RefreshStatusResponse, error)
}

// RetailHandler handles the admin-only retail endpoints
type RetailHandler struct {
	BaseHandler
	retailService RetailService
}

// NewRetailHandler creates a new RetailHandler
func NewRetailHandler(retailService RetailService) *RetailHandler {
	return &RetailHandler{retailService: retailService}
}

// List godoc
// @Summary      List retails
// @Tags         retails
// @Produce      json
// @Param        search query string false "Search by code or name"
// @Param        status query string false "Status" Enums(active, inactive)
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(10)
// @Success      200 {object} dto.Response{data=[]retailapp.RetailResponse,meta=dto.Meta}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /retails [get]
func (h *RetailHandler) List(c *gin.Context) {
	var filter retailapp.RetailListFilter
	if !h.bindQuery(c, &filter) {
		return
	}

	retails, total, err := h.retailService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, retails, total, filter.Page, filter.PageSize)
}

// GetByID godoc
// @Summary      Get retail
// @Tags         retails
// @Produce      json
// @Param        id path string true "Retail ID" format(uuid)
// @Success      200 {object} dto.Response{data=retailapp.RetailResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /retails/{id} [get]
func (h *RetailHandler) GetByID(c *gin.Context) {
	id, ok := h.parseID(c, "retail")
	if !ok {
		return
	}

	r, err := h.retailService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, r)
}

// Create godoc
// @Summary      Create retail
// @Description  Create a tenant, its owner account and its subscription in one transaction
// @Tags         retails
// @Accept       json
// @Produce      json
// @Param        request body retailapp.CreateRetailRequest true "Retail"
// @Success      201 {object} dto.Response{data=retailapp.RetailResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /retails [post]
func (h *RetailHandler) Create(c *gin.Context) {
	var req retailapp.CreateRetailRequest
	if !h.bindJSON(c, &req) {
		return
	}

	r, err := h.retailService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, r)
}

// Update godoc
// @Summary      Update retail
// @Tags         retails
// @Accept       json
// @Produce      json
// @Param        id path string true "Retail ID" format(uuid)
// @Param        request body retailapp.UpdateRetailRequest true "Retail changes"
// @Success      200 {object} dto.Response{data=retailapp.RetailResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /retails/{id} [put]
func (h *RetailHandler) Update(c *gin.Context) {
	id, ok := h.parseID(c, "retail")
	if !ok {
		return
	}

	var req retailapp.UpdateRetailRequest
	if !h.bindJSON(c, &req) {
		return
	}

	r, err := h.retailService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, r)
}

// Extend godoc
// @Summary      Extend subscription
// @Description  Move the subscription end date and recompute the retail status
// @Tags         retails
// @Accept       json
// @Produce      json
// @Param        id path string true "Retail ID" format(uuid)
// @Param        request body retailapp.ExtendSubscriptionRequest true "New end date"
// @Success      200 {object} dto.Response{data=retailapp.RetailResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /retails/extend/{id} [put]
func (h *RetailHandler) Extend(c *gin.Context) {
	id, ok := h.parseID(c, "retail")
	if !ok {
		return
	}

	var req retailapp.ExtendSubscriptionRequest
	if !h.bindJSON(c, &req) {
		return
	}

	r, err := h.retailService.Extend(c.Request.Context(), id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, r)
}

// Delete godoc
// @Summary      Delete retail
// @Description  Purge a tenant and all of its data
// @Tags         retails
// @Param        id path string true "Retail ID" format(uuid)
// @Success      204
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /retails/{id} [delete]
func (h *RetailHandler) Delete(c *gin.Context) {
	id, ok := h.parseID(c, "retail")
	if !ok {
		return
	}

	if err := h.retailService.Delete(c.Request.Context(), id); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// RefreshStatuses godoc
// @Summary      Refresh retail statuses
// @Description  Recompute every retail's status from its subscription and today's date
// @Tags         retails
// @Produce      json
// @Success      200 {object} dto.Response{data=retailapp.RefreshStatusResponse}
// @Security     BearerAuth
// @Router       /retails/refresh-status [post]
func (h *RetailHandler) RefreshStatuses(c *gin.Context) {
	result, err := h.retailService.RefreshStatuses(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}
