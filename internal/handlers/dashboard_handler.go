package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dmejia/opsledger-api/internal/services"
)

type DashboardHandler struct {
	dashboardService *services.DashboardService
}

func NewDashboardHandler(dashboardService *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// @Summary Dashboard Stats
// @Description Get aggregated business statistics (cached)
// @Tags Dashboard
// @Produce json
// @Success 200 {object} models.DashboardStats
// @Router /dashboard [get]
func (h *DashboardHandler) Stats(c *gin.Context) {
	stats, err := h.dashboardService.GetStats(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"dashboard": stats})
}

// @Summary Refresh Dashboard
// @Description Drop the cached dashboard snapshot so the next read recomputes
// @Tags Dashboard
// @Produce json
// @Success 200 {object} map[string]string
// @Router /dashboard/refresh [post]
func (h *DashboardHandler) Refresh(c *gin.Context) {
	if err := h.dashboardService.InvalidateCache(c.Request.Context()); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Dashboard cache invalidated"})
}
