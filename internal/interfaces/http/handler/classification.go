package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	catalogapp "github.com/retail-inventory/backend/internal/application/catalog"
	"github.com/retail-inventory/backend/internal/domain/catalog"
)

// ClassificationService is the brand/category/type use case surface
type ClassificationService interface {
	Create(ctx context.Context, tenantID uuid.UUID, kind catalog.ClassificationKind, req catalogapp.ClassificationRequest) (*catalogapp.ClassificationResponse, error)
	GetByID(ctx context.Context, tenantID uuid.UUID, kind catalog.ClassificationKind, id uuid.UUID) (*catalogapp.ClassificationResponse, error)
	List(ctx context.Context, tenantID uuid.UUID, kind catalog.ClassificationKind, filter catalogapp.ClassificationListFilter) ([]catalogapp.ClassificationResponse, int64, error)
	Update(ctx context.Context, tenantID uuid.UUID, kind catalog.ClassificationKind, id uuid.UUID, req catalogapp.ClassificationRequest) (*catalogapp.ClassificationResponse, error)
	Delete(ctx context.Context, tenantID uuid.UUID, kind catalog.ClassificationKind, id uuid.UUID) error
}

// ClassificationHandler serves one kind of product grouping. The router
// mounts one instance each for brands, categories and types.
type ClassificationHandler struct {
	BaseHandler
	service ClassificationService
	kind    catalog.ClassificationKind
}

// NewClassificationHandler creates a handler bound to kind
func NewClassificationHandler(service ClassificationService, kind catalog.ClassificationKind) *ClassificationHandler {
	return &ClassificationHandler{service: service, kind: kind}
}

// List godoc
// @Summary      List brands, categories or types
// @Tags         classifications
// @Produce      json
// @Param        kind path string true "Collection" Enums(brands, categories, types)
// @Param        search query string false "Search by name"
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(10)
// @Success      200 {object} dto.Response{data=[]catalogapp.ClassificationResponse,meta=dto.Meta}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /{kind} [get]
func (h *ClassificationHandler) List(c *gin.Context) {
	tenantID, ok := h.getTenantID(c)
	if !ok {
		return
	}

	var filter catalogapp.ClassificationListFilter
	if !h.bindQuery(c, &filter) {
		return
	}

	items, total, err := h.service.List(c.Request.Context(), tenantID, h.kind, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, items, total, filter.Page, filter.PageSize)
}

// GetByID godoc
// @Summary      Get a brand, category or type
// @Tags         classifications
// @Produce      json
// @Param        kind path string true "Collection" Enums(brands, categories, types)
// @Param        id path string true "ID" format(uuid)
// @Success      200 {object} dto.Response{data=catalogapp.ClassificationResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /{kind}/{id} [get]
func (h *ClassificationHandler) GetByID(c *gin.Context) {
	tenantID, ok := h.getTenantID(c)
	if !ok {
		return
	}
	id, ok := h.parseID(c, h.kind.Label())
	if !ok {
		return
	}

	item, err := h.service.GetByID(c.Request.Context(), tenantID, h.kind, id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, item)
}

// Create godoc
// @Summary      Create a brand, category or type
// @Tags         classifications
// @Accept       json
// @Produce      json
// @Param        kind path string true "Collection" Enums(brands, categories, types)
// @Param        request body catalogapp.ClassificationRequest true "Classification"
// @Success      201 {object} dto.Response{data=catalogapp.ClassificationResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /{kind} [post]
func (h *ClassificationHandler) Create(c *gin.Context) {
	tenantID, ok := h.getTenantID(c)
	if !ok {
		return
	}

	var req catalogapp.ClassificationRequest
	if !h.bindJSON(c, &req) {
		return
	}
	req.OperatorID = getUserID(c)

	item, err := h.service.Create(c.Request.Context(), tenantID, h.kind, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, item)
}

// Update godoc
// @Summary      Update a brand, category or type
// @Tags         classifications
// @Accept       json
// @Produce      json
// @Param        kind path string true "Collection" Enums(brands, categories, types)
// @Param        id path string true "ID" format(uuid)
// @Param        request body catalogapp.ClassificationRequest true "Classification"
// @Success      200 {object} dto.Response{data=catalogapp.ClassificationResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /{kind}/{id} [put]
func (h *ClassificationHandler) Update(c *gin.Context) {
	tenantID, ok := h.getTenantID(c)
	if !ok {
		return
	}
	id, ok := h.parseID(c, h.kind.Label())
	if !ok {
		return
	}

	var req catalogapp.ClassificationRequest
	if !h.bindJSON(c, &req) {
		return
	}

	item, err := h.service.Update(c.Request.Context(), tenantID, h.kind, id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, item)
}

// Delete godoc
// @Summary      Delete a brand, category or type
// @Tags         classifications
// @Param        kind path string true "Collection" Enums(brands, categories, types)
// @Param        id path string true "ID" format(uuid)
// @Success      204
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /{kind}/{id} [delete]
func (h *ClassificationHandler) Delete(c *gin.Context) {
	tenantID, ok := h.getTenantID(c)
	if !ok {
		return
	}
	id, ok := h.parseID(c, h.kind.Label())
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), tenantID, h.kind, id); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}
