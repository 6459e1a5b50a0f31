package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/fleetstack/fleetpoint/internal/service"
	"github.com/fleetstack/fleetpoint/internal/service/serviceutils"
)

// DashboardHandler exposes the landing-page summary endpoint.
type DashboardHandler struct {
	dashboard *service.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler instance.
func NewDashboardHandler(dashboard *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard}
}

// Summary returns today's counters and the most recent records.
func (h *DashboardHandler) Summary(c echo.Context) error {
	summary, err := h.dashboard.Summary(c.Request().Context())
	if err != nil {
		return respondError(c, "Failed to build dashboard summary", err)
	}
	return serviceutils.ResponseSuccess(c, http.StatusOK, "Dashboard summary", summary)
}
