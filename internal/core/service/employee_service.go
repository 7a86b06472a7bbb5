package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/payrollhq/payroll-system/internal/core/domain"
	"github.com/payrollhq/payroll-system/internal/core/ports"
)

// EmployeeService manages HR records. Department references are validated on
// write so records never point at a missing department.
type EmployeeService struct {
	repo        ports.EmployeeRepository
	departments ports.DepartmentRepository
	log         zerolog.Logger
}

func NewEmployeeService(repo ports.EmployeeRepository, departments ports.DepartmentRepository, log zerolog.Logger) *EmployeeService {
	return &EmployeeService{repo: repo, departments: departments, log: log}
}

func (s *EmployeeService) Create(ctx context.Context, in ports.EmployeeInput) (*domain.Employee, error) {
	if err := s.checkDepartment(ctx, in.DepartmentID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	e := &domain.Employee{
		Name:         in.Name,
		Email:        normalizeEmail(in.Email),
		DepartmentID: in.DepartmentID,
		Phone:        in.Phone,
		CNIC:         in.CNIC,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, e)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("employee_id", created.ID).Msg("employee created")
	return created, nil
}

func (s *EmployeeService) Get(ctx context.Context, id string) (*domain.Employee, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *EmployeeService) List(ctx context.Context) ([]domain.Employee, error) {
	return s.repo.List(ctx)
}

func (s *EmployeeService) Update(ctx context.Context, id string, in ports.EmployeeInput) (*domain.Employee, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.checkDepartment(ctx, in.DepartmentID); err != nil {
		return nil, err
	}

	existing.Name = in.Name
	existing.Email = normalizeEmail(in.Email)
	existing.DepartmentID = in.DepartmentID
	existing.Phone = in.Phone
	existing.CNIC = in.CNIC
	existing.UpdatedAt = time.Now().UTC()

	return s.repo.Update(ctx, existing)
}

func (s *EmployeeService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Str("employee_id", id).Msg("employee deleted")
	return nil
}

func (s *EmployeeService) checkDepartment(ctx context.Context, departmentID string) error {
	if departmentID == "" {
		return nil
	}
	if _, err := s.departments.FindByID(ctx, departmentID); err != nil {
		if errors.Is(err, domain.ErrDepartmentNotFound) {
			return domain.ErrDepartmentNotFound
		}
		return err
	}
	return nil
}
