package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/ardentsoft/stroypos/internal/application/service"
	"github.com/ardentsoft/stroypos/internal/presentation/http/dto/response"
)

// DashboardHandler serves the backend's aggregate stats for the kassa header.
type DashboardHandler struct {
	dashboard *service.DashboardService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboard *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard}
}

// Stats handles reading today's and total sales plus the pending count.
func (h *DashboardHandler) Stats(c *gin.Context) {
	stats, err := h.dashboard.GetStats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Dashboard stats retrieved successfully", stats)
}
