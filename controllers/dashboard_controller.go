package controllers

import (
	"github.com/gin-gonic/gin"

	"tech-shop/services"
)

type DashboardController struct {
	dashboard *services.DashboardService
}

func NewDashboardController(dashboard *services.DashboardService) *DashboardController {
	return &DashboardController{dashboard: dashboard}
}

// GetDashboard godoc
// @Summary Admin dashboard
// @Description Revenue, user and order aggregates plus the 12-month revenue chart
// @Tags Admin - Dashboard
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.Response
// @Router /api/admin/dashboard [get]
func (ctrl *DashboardController) GetDashboard(c *gin.Context) {
	dashboard := ctrl.dashboard.GetDashboard(c.Request.Context())
	respondOK(c, "Dashboard retrieved successfully", dashboard)
}
