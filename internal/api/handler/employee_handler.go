package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/elevate-digital/bizdesk/internal/core/domain"
	"github.com/elevate-digital/bizdesk/internal/core/ports"
)

// EmployeeHandler handles HTTP requests for employee management. All routes
// sit behind the Manager role.
type EmployeeHandler struct {
	service ports.EmployeeService
}

func NewEmployeeHandler(service ports.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{service: service}
}

type createEmployeeRequest struct {
	IDNumber    string `json:"id_number"    validate:"required,len=13,numeric"`
	Name        string `json:"name"         validate:"required"`
	Surname     string `json:"surname"      validate:"required"`
	Email       string `json:"email"        validate:"required,email"`
	PhoneNumber string `json:"phone_number"`
	Role        string `json:"role"         validate:"required,oneof=Employee Manager"`
}

type updateEmployeeRequest struct {
	Name        string `json:"name"`
	Surname     string `json:"surname"`
	Email       string `json:"email" validate:"omitempty,email"`
	PhoneNumber string `json:"phone_number"`
	Role        string `json:"role"  validate:"omitempty,oneof=Employee Manager"`
}

type createEmployeeResponse struct {
	Employee *domain.Employee `json:"employee"`
	// TempPassword is returned exactly once, at creation, for the manager to
	// hand over out of band.
	TempPassword string `json:"temp_password"`
}

// Create handles POST /v1/employees. It provisions the sign-in account and
// returns the temporary credential alongside the profile.
//
// @Summary      Create an employee
// @Tags         employees
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createEmployeeRequest  true  "Employee details"
// @Success      201   {object}  createEmployeeResponse
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /v1/employees [post]
func (h *EmployeeHandler) Create(c echo.Context) error {
	var req createEmployeeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.service.Create(c.Request().Context(), ports.CreateEmployeeInput{
		IDNumber:    req.IDNumber,
		Name:        req.Name,
		Surname:     req.Surname,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
		Role:        req.Role,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, createEmployeeResponse{
		Employee:     result.Employee,
		TempPassword: result.TempPassword,
	})
}

// Get handles GET /v1/employees/:id.
func (h *EmployeeHandler) Get(c echo.Context) error {
	employee, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, employee)
}

// List handles GET /v1/employees.
func (h *EmployeeHandler) List(c echo.Context) error {
	employees, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	if employees == nil {
		employees = []*domain.Employee{}
	}
	return c.JSON(http.StatusOK, employees)
}

// Update handles PUT /v1/employees/:id. Empty fields are left unchanged.
func (h *EmployeeHandler) Update(c echo.Context) error {
	var req updateEmployeeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	err := h.service.Update(c.Request().Context(), ports.EmployeeUpdate{
		UID:         c.Param("id"),
		Name:        req.Name,
		Surname:     req.Surname,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
		Role:        req.Role,
	})
	if err != nil {
		return err
	}

	return c.NoContent(http.StatusOK)
}

// Delete handles DELETE /v1/employees/:id. Removes the profile and the
// sign-in account. Deleting your own account is refused so an organisation
// cannot lock out its last manager.
func (h *EmployeeHandler) Delete(c echo.Context) error {
	_, uid, err := ctxClaims(c)
	if err != nil {
		return err
	}
	target := c.Param("id")
	if target == uid {
		return echo.NewHTTPError(http.StatusConflict, "cannot delete your own account")
	}

	if err := h.service.Delete(c.Request().Context(), target); err != nil {
		return err
	}
	return c.NoContent(http.StatusOK)
}
