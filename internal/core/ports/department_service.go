package ports

import (
	"context"

	"github.com/payrollhq/payroll-system/internal/core/domain"
)

// DepartmentInput is the DTO passed from the transport layer to DepartmentService.
type DepartmentInput struct {
	Name        string
	Description string
}

// DepartmentService exposes department management.
type DepartmentService interface {
	Create(ctx context.Context, in DepartmentInput) (*domain.Department, error)
	Get(ctx context.Context, id string) (*domain.Department, error)
	List(ctx context.Context) ([]domain.Department, error)
	Update(ctx context.Context, id string, in DepartmentInput) (*domain.Department, error)
	Delete(ctx context.Context, id string) error
}
