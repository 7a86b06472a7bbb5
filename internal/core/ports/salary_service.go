package ports

import (
	"context"
	"time"

	"github.com/payrollhq/payroll-system/internal/core/domain"
)

// SalaryInput is the DTO passed from the transport layer to SalaryService.
type SalaryInput struct {
	EmployeeID string
	Basic      float64
	Allowances float64
	Deductions float64
	PayDate    time.Time
}

// SalaryService records payroll disbursements for employees.
type SalaryService interface {
	Create(ctx context.Context, in SalaryInput) (*domain.Salary, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]domain.Salary, error)
}
