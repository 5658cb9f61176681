package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/winprintid/pos-api/internal/application/service"
	"github.com/winprintid/pos-api/internal/presentation/http/dto/response"
)

// DashboardHandler handles dashboard HTTP requests
type DashboardHandler struct {
	dashboardService *service.DashboardService
	location         *time.Location
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService *service.DashboardService, location *time.Location) *DashboardHandler {
	if location == nil {
		location = time.Local
	}
	return &DashboardHandler{
		dashboardService: dashboardService,
		location:         location,
	}
}

// Summary handles getting the dashboard summary
func (h *DashboardHandler) Summary(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	summary, err := h.dashboardService.Summary(c.Request.Context(), *userID, time.Now().In(h.location))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Dashboard summary retrieved successfully", summary)
}
