package ports

import (
	"context"

	"github.com/payrollhq/payroll-system/internal/core/domain"
)

// SalaryRepository persists payroll disbursements.
type SalaryRepository interface {
	Create(ctx context.Context, s *domain.Salary) (*domain.Salary, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]domain.Salary, error)
}
