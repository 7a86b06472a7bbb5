package ports

import (
	"context"
	"time"

	"github.com/payrollhq/payroll-system/internal/core/domain"
)

// PunchInput is the DTO carried from the transport layer through the queue
// dispatcher to the attendance processor.
type PunchInput struct {
	EmployeeID string
	Type       string
	Timestamp  time.Time
	Source     string
}

// AttendanceService processes incoming punches and answers attendance queries.
type AttendanceService interface {
	Process(ctx context.Context, punch PunchInput) error
	List(ctx context.Context, employeeID string) ([]domain.Attendance, error)
}
