package ports

import (
	"context"

	"github.com/payrollhq/payroll-system/internal/core/domain"
)

// AttendanceRepository persists attendance punch records.
type AttendanceRepository interface {
	Insert(ctx context.Context, a *domain.Attendance) error
	List(ctx context.Context, employeeID string) ([]domain.Attendance, error)
}
