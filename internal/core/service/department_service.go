package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/payrollhq/payroll-system/internal/core/domain"
	"github.com/payrollhq/payroll-system/internal/core/ports"
)

type DepartmentService struct {
	repo ports.DepartmentRepository
	log  zerolog.Logger
}

func NewDepartmentService(repo ports.DepartmentRepository, log zerolog.Logger) *DepartmentService {
	return &DepartmentService{repo: repo, log: log}
}

func (s *DepartmentService) Create(ctx context.Context, in ports.DepartmentInput) (*domain.Department, error) {
	now := time.Now().UTC()
	d := &domain.Department{
		Name:        in.Name,
		Description: in.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.repo.Create(ctx, d)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("department_id", created.ID).Str("name", created.Name).Msg("department created")
	return created, nil
}

func (s *DepartmentService) Get(ctx context.Context, id string) (*domain.Department, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *DepartmentService) List(ctx context.Context) ([]domain.Department, error) {
	return s.repo.List(ctx)
}

func (s *DepartmentService) Update(ctx context.Context, id string, in ports.DepartmentInput) (*domain.Department, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	existing.Name = in.Name
	existing.Description = in.Description
	existing.UpdatedAt = time.Now().UTC()

	return s.repo.Update(ctx, existing)
}

func (s *DepartmentService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
