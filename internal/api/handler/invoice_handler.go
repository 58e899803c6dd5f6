package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/elevate-digital/bizdesk/internal/api/metrics"
	"github.com/elevate-digital/bizdesk/internal/core/domain"
	"github.com/elevate-digital/bizdesk/internal/core/ports"
)

// InvoiceHandler handles HTTP requests for invoices.
type InvoiceHandler struct {
	service ports.InvoiceService
}

func NewInvoiceHandler(service ports.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{service: service}
}

type createInvoiceRequest struct {
	ClientName    string            `json:"client_name"    validate:"required"`
	CompanyName   string            `json:"company_name"`
	Email         string            `json:"email"          validate:"required,email"`
	Phone         string            `json:"phone"`
	Address       string            `json:"address"`
	InvoiceNumber string            `json:"invoice_number" validate:"required"`
	QuoteNumber   string            `json:"quote_number"`
	Items         []lineItemRequest `json:"items"          validate:"required,min=1,dive"`
}

type updateInvoiceStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=Unpaid Paid"`
}

type statusChangeResponse struct {
	Status         string `json:"status"`
	PaymentID      string `json:"payment_id,omitempty"`
	PaymentCreated bool   `json:"payment_created"`
	// PaymentError reports a failed derived-payment write; the status change
	// itself has committed.
	PaymentError string `json:"payment_error,omitempty"`
}

func newStatusChangeResponse(result *ports.StatusChangeResult) statusChangeResponse {
	resp := statusChangeResponse{
		Status:         string(result.Status),
		PaymentID:      result.PaymentID,
		PaymentCreated: result.PaymentCreated,
	}
	if result.PaymentErr != nil {
		resp.PaymentError = result.PaymentErr.Error()
	}
	return resp
}

// Create handles POST /v1/invoices.
//
// @Summary      Create an invoice
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createInvoiceRequest  true  "Invoice details"
// @Success      201   {object}  domain.Invoice
// @Failure      400   {object}  map[string]string
// @Router       /v1/invoices [post]
func (h *InvoiceHandler) Create(c echo.Context) error {
	var req createInvoiceRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	invoice, err := h.service.Create(c.Request().Context(), ports.CreateInvoiceInput{
		ClientName:    req.ClientName,
		CompanyName:   req.CompanyName,
		Email:         req.Email,
		Phone:         req.Phone,
		Address:       req.Address,
		InvoiceNumber: req.InvoiceNumber,
		QuoteNumber:   req.QuoteNumber,
		Items:         lineItemInputs(req.Items),
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, invoice)
}

// Get handles GET /v1/invoices/:id.
func (h *InvoiceHandler) Get(c echo.Context) error {
	invoice, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, invoice)
}

// List handles GET /v1/invoices.
func (h *InvoiceHandler) List(c echo.Context) error {
	invoices, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	if invoices == nil {
		invoices = []*domain.Invoice{}
	}
	return c.JSON(http.StatusOK, invoices)
}

// UpdateStatus handles PUT /v1/invoices/:id/status. An Unpaid→Paid
// transition synthesises the payment record; the response reports both
// outcomes separately.
func (h *InvoiceHandler) UpdateStatus(c echo.Context) error {
	var req updateInvoiceStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.service.UpdateStatus(c.Request().Context(), c.Param("id"), domain.InvoiceStatus(req.Status))
	if err != nil {
		return err
	}

	if result.Status == domain.InvoicePaid {
		metrics.InvoicesPaidTotal.Inc()
	}
	if result.PaymentCreated {
		metrics.PaymentsCreatedTotal.Inc()
	}
	return c.JSON(http.StatusOK, newStatusChangeResponse(result))
}

// Delete handles DELETE /v1/invoices/:id.
func (h *InvoiceHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusOK)
}

// RenderPDF handles POST /v1/invoices/:id/pdf and streams the document back.
func (h *InvoiceHandler) RenderPDF(c echo.Context) error {
	start := time.Now()
	pdf, filename, err := h.service.Render(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	metrics.RenderDuration.WithLabelValues("invoice").Observe(time.Since(start).Seconds())

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Blob(http.StatusOK, "application/pdf", pdf)
}

// Send handles POST /v1/invoices/:id/send: renders the document and emails
// it with the confirm-payment link.
func (h *InvoiceHandler) Send(c echo.Context) error {
	if err := h.service.Send(c.Request().Context(), c.Param("id")); err != nil {
		metrics.EmailsSentTotal.WithLabelValues("error").Inc()
		return err
	}
	metrics.EmailsSentTotal.WithLabelValues("ok").Inc()
	return c.NoContent(http.StatusOK)
}
