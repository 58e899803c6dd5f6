package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/elevate-digital/bizdesk/internal/core/ports"
)

// DashboardHandler serves the aggregated landing figures.
type DashboardHandler struct {
	service ports.DashboardService
}

func NewDashboardHandler(service ports.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: service}
}

// Summary handles GET /v1/dashboard.
func (h *DashboardHandler) Summary(c echo.Context) error {
	summary, err := h.service.Summary(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, summary)
}
