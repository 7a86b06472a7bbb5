package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/payrollhq/payroll-system/internal/core/domain"
	"github.com/payrollhq/payroll-system/internal/core/ports"
)

// SalaryHandler handles HTTP requests for payroll disbursements.
type SalaryHandler struct {
	service ports.SalaryService
}

func NewSalaryHandler(service ports.SalaryService) *SalaryHandler {
	return &SalaryHandler{service: service}
}

type salaryRequest struct {
	EmployeeID string    `json:"employee_id" validate:"required"`
	Basic      float64   `json:"basic"       validate:"required,gt=0"`
	Allowances float64   `json:"allowances"  validate:"omitempty,gte=0"`
	Deductions float64   `json:"deductions"  validate:"omitempty,gte=0"`
	PayDate    time.Time `json:"pay_date"    validate:"omitempty"`
}

type salaryResponse struct {
	ID         string    `json:"id"`
	EmployeeID string    `json:"employee_id"`
	Basic      float64   `json:"basic"`
	Allowances float64   `json:"allowances"`
	Deductions float64   `json:"deductions"`
	NetPay     float64   `json:"net_pay"`
	PayDate    time.Time `json:"pay_date"`
	CreatedAt  time.Time `json:"created_at"`
}

func toSalaryResponse(s *domain.Salary) salaryResponse {
	return salaryResponse{
		ID:         s.ID,
		EmployeeID: s.EmployeeID,
		Basic:      s.Basic,
		Allowances: s.Allowances,
		Deductions: s.Deductions,
		NetPay:     s.NetPay,
		PayDate:    s.PayDate,
		CreatedAt:  s.CreatedAt,
	}
}

// Create handles POST /api/salaries.
//
// @Summary      Record a salary disbursement
// @Tags         salaries
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      salaryRequest  true  "Salary details"
// @Success      201   {object}  salaryResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/salaries [post]
func (h *SalaryHandler) Create(c echo.Context) error {
	var req salaryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	created, err := h.service.Create(c.Request().Context(), ports.SalaryInput{
		EmployeeID: req.EmployeeID,
		Basic:      req.Basic,
		Allowances: req.Allowances,
		Deductions: req.Deductions,
		PayDate:    req.PayDate,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toSalaryResponse(created))
}

// ListByEmployee handles GET /api/salaries/employee/:id.
//
// @Summary      List salary history for an employee
// @Tags         salaries
// @Produce      json
// @Security     BearerAuth
// @Param        id   path     string  true  "Employee id"
// @Success      200  {array}  salaryResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/salaries/employee/{id} [get]
func (h *SalaryHandler) ListByEmployee(c echo.Context) error {
	salaries, err := h.service.ListByEmployee(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}

	out := make([]salaryResponse, 0, len(salaries))
	for i := range salaries {
		out = append(out, toSalaryResponse(&salaries[i]))
	}
	return c.JSON(http.StatusOK, out)
}
