package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/retail-inventory/backend/internal/domain/report"
)

// DashboardService serves the per-tenant overview
type DashboardService interface {
	GetStats(ctx context.Context, tenantID uuid.UUID) (*report.DashboardStats, error)
}

// DashboardHandler handles the dashboard endpoint
type DashboardHandler struct {
	BaseHandler
	dashboardService DashboardService
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(dashboardService DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// GetStats godoc
// @Summary      Dashboard statistics
// @Description  Record counts, low and out of stock counts and monthly in/out totals
// @Tags         dashboard
// @Produce      json
// @Success      200 {object} dto.Response{data=report.DashboardStats}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /dashboard [get]
func (h *DashboardHandler) GetStats(c *gin.Context) {
	tenantID, ok := h.getTenantID(c)
	if !ok {
		return
	}

	stats, err := h.dashboardService.GetStats(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, stats)
}
