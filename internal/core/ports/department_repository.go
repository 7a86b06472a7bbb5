package ports

import (
	"context"

	"github.com/payrollhq/payroll-system/internal/core/domain"
)

// DepartmentRepository persists department records.
type DepartmentRepository interface {
	Create(ctx context.Context, d *domain.Department) (*domain.Department, error)
	FindByID(ctx context.Context, id string) (*domain.Department, error)
	List(ctx context.Context) ([]domain.Department, error)
	Update(ctx context.Context, d *domain.Department) (*domain.Department, error)
	Delete(ctx context.Context, id string) error
}
