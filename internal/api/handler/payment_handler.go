package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/elevate-digital/bizdesk/internal/core/domain"
	"github.com/elevate-digital/bizdesk/internal/core/ports"
)

// PaymentHandler exposes read access to derived payment records. There is no
// create or update route: payments exist only as a side effect of invoices
// reaching Paid.
type PaymentHandler struct {
	service ports.PaymentService
}

func NewPaymentHandler(service ports.PaymentService) *PaymentHandler {
	return &PaymentHandler{service: service}
}

// Get handles GET /v1/payments/:id.
func (h *PaymentHandler) Get(c echo.Context) error {
	payment, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, payment)
}

// List handles GET /v1/payments.
func (h *PaymentHandler) List(c echo.Context) error {
	payments, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	if payments == nil {
		payments = []*domain.Payment{}
	}
	return c.JSON(http.StatusOK, payments)
}

// Delete handles DELETE /v1/payments/:id.
func (h *PaymentHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusOK)
}
