package controllers

import (
	"net/http"
	"strings"
	"time"

	"cyberdesk-backend/services"

	"github.com/gin-gonic/gin"
)

type DashboardController struct {
	customers *services.CustomerService
	dashboard *services.DashboardService
}

func NewDashboardController(customers *services.CustomerService, dashboard *services.DashboardService) *DashboardController {
	return &DashboardController{customers: customers, dashboard: dashboard}
}

// Show lists customers, filtered by ?q= on name or phone.
func (d *DashboardController) Show(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))

	customers, err := d.customers.List(c.Request.Context(), query)
	if err != nil {
		respondServiceError(c, err, "Customers")
		return
	}

	overview, err := d.dashboard.Overview(c.Request.Context(), time.Now())
	if err != nil {
		respondServiceError(c, err, "Dashboard")
		return
	}

	render(c, http.StatusOK, "dashboard.html", gin.H{
		"title":     "Dashboard",
		"query":     query,
		"customers": customers,
		"overview":  overview,
	})
}
