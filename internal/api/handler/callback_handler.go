package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/elevate-digital/bizdesk/internal/api/metrics"
	"github.com/elevate-digital/bizdesk/internal/core/domain"
	"github.com/elevate-digital/bizdesk/internal/core/ports"
)

// CallbackHandler serves the capability links embedded in outgoing mail.
// The routes are public: the token in the query string is the sole
// authorisation, and it is never logged. Responses are small HTML pages
// because the links open in the recipient's browser.
type CallbackHandler struct {
	quotations ports.QuotationService
	invoices   ports.InvoiceService
}

func NewCallbackHandler(quotations ports.QuotationService, invoices ports.InvoiceService) *CallbackHandler {
	return &CallbackHandler{quotations: quotations, invoices: invoices}
}

// Quotation handles GET /callback/quotations?id=&status=&token=.
func (h *CallbackHandler) Quotation(c echo.Context) error {
	id := c.QueryParam("id")
	status := domain.QuotationStatus(c.QueryParam("status"))
	token := c.QueryParam("token")

	if id == "" || token == "" || !domain.ValidQuotationStatus(status) {
		metrics.CallbacksRejectedTotal.WithLabelValues("bad_request").Inc()
		return callbackPage(c, http.StatusBadRequest, "This link is incomplete. Please use the link from your email unchanged.")
	}

	err := h.quotations.UpdateStatusByToken(c.Request().Context(), id, status, token)
	if err != nil {
		return callbackFailure(c, err)
	}

	verb := "accepted"
	if status == domain.QuoteDeclined {
		verb = "declined"
	}
	return callbackPage(c, http.StatusOK, "Thank you, the quotation has been "+verb+".")
}

// Invoice handles GET /callback/invoices?id=&token= and confirms payment.
func (h *CallbackHandler) Invoice(c echo.Context) error {
	id := c.QueryParam("id")
	token := c.QueryParam("token")

	if id == "" || token == "" {
		metrics.CallbacksRejectedTotal.WithLabelValues("bad_request").Inc()
		return callbackPage(c, http.StatusBadRequest, "This link is incomplete. Please use the link from your email unchanged.")
	}

	result, err := h.invoices.MarkPaidByToken(c.Request().Context(), id, token)
	if err != nil {
		return callbackFailure(c, err)
	}

	metrics.InvoicesPaidTotal.Inc()
	if result.PaymentCreated {
		metrics.PaymentsCreatedTotal.Inc()
	}
	return callbackPage(c, http.StatusOK, "Thank you, the invoice has been marked as paid.")
}

func callbackFailure(c echo.Context, err error) error {
	switch {
	case errors.Is(err, domain.ErrTokenMismatch):
		metrics.CallbacksRejectedTotal.WithLabelValues("token_mismatch").Inc()
		return callbackPage(c, http.StatusUnauthorized, "This link is not valid.")
	case errors.Is(err, domain.ErrTokenAlreadyUsed):
		metrics.CallbacksRejectedTotal.WithLabelValues("already_used").Inc()
		return callbackPage(c, http.StatusConflict, "This link has already been used.")
	case errors.Is(err, domain.ErrQuotationNotFound), errors.Is(err, domain.ErrInvoiceNotFound):
		metrics.CallbacksRejectedTotal.WithLabelValues("not_found").Inc()
		return callbackPage(c, http.StatusNotFound, "This document no longer exists.")
	case errors.Is(err, domain.ErrInvalidStatus):
		metrics.CallbacksRejectedTotal.WithLabelValues("bad_request").Inc()
		return callbackPage(c, http.StatusBadRequest, "This link requests an unsupported change.")
	}
	return err
}

func callbackPage(c echo.Context, code int, message string) error {
	return c.HTML(code, "<!DOCTYPE html><html><body><p>"+message+"</p></body></html>")
}
