package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/payrollhq/payroll-system/internal/core/domain"
	"github.com/payrollhq/payroll-system/internal/core/ports"
)

type SalaryService struct {
	repo      ports.SalaryRepository
	employees ports.EmployeeRepository
	log       zerolog.Logger
}

func NewSalaryService(repo ports.SalaryRepository, employees ports.EmployeeRepository, log zerolog.Logger) *SalaryService {
	return &SalaryService{repo: repo, employees: employees, log: log}
}

// Create records a disbursement for an existing employee. NetPay is always
// recomputed server-side.
func (s *SalaryService) Create(ctx context.Context, in ports.SalaryInput) (*domain.Salary, error) {
	if _, err := s.employees.FindByID(ctx, in.EmployeeID); err != nil {
		return nil, err
	}

	payDate := in.PayDate
	if payDate.IsZero() {
		payDate = time.Now().UTC()
	}

	sal := &domain.Salary{
		EmployeeID: in.EmployeeID,
		Basic:      in.Basic,
		Allowances: in.Allowances,
		Deductions: in.Deductions,
		NetPay:     in.Basic + in.Allowances - in.Deductions,
		PayDate:    payDate,
		CreatedAt:  time.Now().UTC(),
	}

	created, err := s.repo.Create(ctx, sal)
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Str("employee_id", created.EmployeeID).
		Float64("net_pay", created.NetPay).
		Msg("salary recorded")

	return created, nil
}

func (s *SalaryService) ListByEmployee(ctx context.Context, employeeID string) ([]domain.Salary, error) {
	if _, err := s.employees.FindByID(ctx, employeeID); err != nil {
		return nil, err
	}
	return s.repo.ListByEmployee(ctx, employeeID)
}
