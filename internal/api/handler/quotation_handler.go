package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/elevate-digital/bizdesk/internal/api/metrics"
	"github.com/elevate-digital/bizdesk/internal/core/domain"
	"github.com/elevate-digital/bizdesk/internal/core/ports"
)

// QuotationHandler handles HTTP requests for quotations.
type QuotationHandler struct {
	service ports.QuotationService
}

func NewQuotationHandler(service ports.QuotationService) *QuotationHandler {
	return &QuotationHandler{service: service}
}

type lineItemRequest struct {
	Description string  `json:"description" validate:"required"`
	Quantity    int     `json:"quantity"    validate:"required,gt=0"`
	UnitPrice   float64 `json:"unit_price"  validate:"gte=0"`
}

type createQuotationRequest struct {
	ClientName  string            `json:"client_name" validate:"required"`
	CompanyName string            `json:"company_name"`
	Email       string            `json:"email"       validate:"required,email"`
	Phone       string            `json:"phone"`
	Address     string            `json:"address"`
	Notes       string            `json:"notes"`
	Items       []lineItemRequest `json:"items"       validate:"required,min=1,dive"`
}

type updateQuotationStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=Pending Accepted Declined"`
}

func lineItemInputs(items []lineItemRequest) []ports.LineItemInput {
	inputs := make([]ports.LineItemInput, 0, len(items))
	for _, it := range items {
		inputs = append(inputs, ports.LineItemInput{
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
		})
	}
	return inputs
}

// Create handles POST /v1/quotations. The quote number is drawn from the
// transactional sequence; line amounts are recomputed server-side.
//
// @Summary      Create a quotation
// @Tags         quotations
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createQuotationRequest  true  "Quotation details"
// @Success      201   {object}  domain.Quotation
// @Failure      400   {object}  map[string]string
// @Router       /v1/quotations [post]
func (h *QuotationHandler) Create(c echo.Context) error {
	var req createQuotationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	quotation, err := h.service.Create(c.Request().Context(), ports.CreateQuotationInput{
		ClientName:  req.ClientName,
		CompanyName: req.CompanyName,
		Email:       req.Email,
		Phone:       req.Phone,
		Address:     req.Address,
		Notes:       req.Notes,
		Items:       lineItemInputs(req.Items),
	})
	if err != nil {
		return err
	}

	metrics.QuotationsCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, quotation)
}

// Get handles GET /v1/quotations/:id.
func (h *QuotationHandler) Get(c echo.Context) error {
	quotation, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, quotation)
}

// List handles GET /v1/quotations.
func (h *QuotationHandler) List(c echo.Context) error {
	quotations, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	if quotations == nil {
		quotations = []*domain.Quotation{}
	}
	return c.JSON(http.StatusOK, quotations)
}

// UpdateStatus handles PUT /v1/quotations/:id (session-authorised status
// change, as opposed to the token callback).
func (h *QuotationHandler) UpdateStatus(c echo.Context) error {
	var req updateQuotationStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.service.UpdateStatus(c.Request().Context(), c.Param("id"), domain.QuotationStatus(req.Status)); err != nil {
		return err
	}
	return c.NoContent(http.StatusOK)
}

// Delete handles DELETE /v1/quotations/:id.
func (h *QuotationHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusOK)
}

// RenderPDF handles POST /v1/quotations/:id/pdf and streams the document
// back.
func (h *QuotationHandler) RenderPDF(c echo.Context) error {
	start := time.Now()
	pdf, filename, err := h.service.Render(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	metrics.RenderDuration.WithLabelValues("quotation").Observe(time.Since(start).Seconds())

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Blob(http.StatusOK, "application/pdf", pdf)
}

// Send handles POST /v1/quotations/:id/send: renders the document and emails
// it with the accept/decline links.
func (h *QuotationHandler) Send(c echo.Context) error {
	if err := h.service.Send(c.Request().Context(), c.Param("id")); err != nil {
		metrics.EmailsSentTotal.WithLabelValues("error").Inc()
		return err
	}
	metrics.EmailsSentTotal.WithLabelValues("ok").Inc()
	return c.NoContent(http.StatusOK)
}
