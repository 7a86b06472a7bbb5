package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/payrollhq/payroll-system/internal/api/metrics"
	"github.com/payrollhq/payroll-system/internal/core/domain"
	"github.com/payrollhq/payroll-system/internal/core/ports"
)

// DedupChecker abstracts the idempotency store (Redis) for attendance punches.
type DedupChecker interface {
	IsDuplicate(ctx context.Context, employeeID, punchType string, ts time.Time) (bool, error)
	Mark(ctx context.Context, employeeID, punchType string, ts time.Time) error
}

type attendanceService struct {
	employees ports.EmployeeRepository
	repo      ports.AttendanceRepository
	dedup     DedupChecker
	log       zerolog.Logger
}

// NewAttendanceService returns an AttendanceService implementation.
func NewAttendanceService(
	employees ports.EmployeeRepository,
	repo ports.AttendanceRepository,
	dedup DedupChecker,
	log zerolog.Logger,
) ports.AttendanceService {
	return &attendanceService{
		employees: employees,
		repo:      repo,
		dedup:     dedup,
		log:       log,
	}
}

// Process validates, deduplicates, and persists a single attendance punch.
func (s *attendanceService) Process(ctx context.Context, in ports.PunchInput) error {
	start := time.Now()

	punchType := domain.PunchType(in.Type)
	if punchType != domain.PunchIn && punchType != domain.PunchOut {
		metrics.PunchErrorsTotal.WithLabelValues("invalid_punch").Inc()
		return fmt.Errorf("process punch: %w (%s)", domain.ErrInvalidPunch, in.Type)
	}

	// 1. Idempotency check — silently skip duplicates.
	isDup, err := s.dedup.IsDuplicate(ctx, in.EmployeeID, in.Type, in.Timestamp)
	if err != nil {
		s.log.Warn().Err(err).Str("employee_id", in.EmployeeID).Msg("dedup check failed, processing anyway")
	} else if isDup {
		s.log.Debug().Str("employee_id", in.EmployeeID).Str("type", in.Type).Msg("duplicate punch skipped")
		metrics.PunchDedupTotal.WithLabelValues("hit").Inc()
		return nil
	}
	metrics.PunchDedupTotal.WithLabelValues("miss").Inc()

	// 2. Punches must reference a known employee.
	if _, err := s.employees.FindByID(ctx, in.EmployeeID); err != nil {
		metrics.PunchErrorsTotal.WithLabelValues("employee_not_found").Inc()
		return fmt.Errorf("process punch: %w", err)
	}

	// 3. Mark as processed before writing (prevents duplicate processing on retry).
	if markErr := s.dedup.Mark(ctx, in.EmployeeID, in.Type, in.Timestamp); markErr != nil {
		s.log.Warn().Err(markErr).Str("employee_id", in.EmployeeID).Msg("failed to set dedup key")
	}

	record := &domain.Attendance{
		EmployeeID: in.EmployeeID,
		Type:       punchType,
		Timestamp:  in.Timestamp.UTC(),
		Source:     in.Source,
		RecordedAt: time.Now().UTC(),
	}
	if err := s.repo.Insert(ctx, record); err != nil {
		metrics.PunchErrorsTotal.WithLabelValues("insert_failed").Inc()
		return fmt.Errorf("process punch: insert: %w", err)
	}

	metrics.PunchesProcessedTotal.WithLabelValues(in.Type, in.Source).Inc()
	metrics.PunchProcessingDuration.WithLabelValues(in.Type).Observe(time.Since(start).Seconds())

	s.log.Info().
		Str("employee_id", in.EmployeeID).
		Str("type", in.Type).
		Str("source", in.Source).
		Msg("punch processed")

	return nil
}

func (s *attendanceService) List(ctx context.Context, employeeID string) ([]domain.Attendance, error) {
	return s.repo.List(ctx, employeeID)
}
