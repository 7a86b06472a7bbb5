package ports

import (
	"context"

	"github.com/payrollhq/payroll-system/internal/core/domain"
)

// EmployeeInput is the DTO passed from the transport layer to EmployeeService.
type EmployeeInput struct {
	Name         string
	Email        string
	DepartmentID string
	Phone        string
	CNIC         string
}

// EmployeeService exposes employee record management.
type EmployeeService interface {
	Create(ctx context.Context, in EmployeeInput) (*domain.Employee, error)
	Get(ctx context.Context, id string) (*domain.Employee, error)
	List(ctx context.Context) ([]domain.Employee, error)
	Update(ctx context.Context, id string, in EmployeeInput) (*domain.Employee, error)
	Delete(ctx context.Context, id string) error
}
