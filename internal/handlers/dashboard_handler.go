package handlers

import (
	"net/http"

	"project_manager/internal/middleware"
	"project_manager/internal/services"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	dashboardService services.DashboardService
}

func NewDashboardHandler(dashboardService services.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

func (h *DashboardHandler) TeamLead(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	dashboard, err := h.dashboardService.TeamLead(id)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Dashboard retrieved successfully", dashboard)
}

func (h *DashboardHandler) Manager(c *gin.Context) {
	dashboard, err := h.dashboardService.Manager()
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Dashboard retrieved successfully", dashboard)
}

// Developer serves the caller's own dashboard; the user id comes from the
// authenticated token, not a path parameter.
func (h *DashboardHandler) Developer(c *gin.Context) {
	userID := c.GetUint(middleware.ContextUserID)
	dashboard, err := h.dashboardService.Developer(userID)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Dashboard retrieved successfully", dashboard)
}
