package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/payrollhq/payroll-system/internal/core/domain"
	"github.com/payrollhq/payroll-system/internal/core/ports"
)

type stubDepartmentRepo struct {
	known map[string]bool
}

func (r *stubDepartmentRepo) Create(_ context.Context, d *domain.Department) (*domain.Department, error) {
	return d, nil
}

func (r *stubDepartmentRepo) FindByID(_ context.Context, id string) (*domain.Department, error) {
	if r.known[id] {
		return &domain.Department{ID: id}, nil
	}
	return nil, domain.ErrDepartmentNotFound
}

func (r *stubDepartmentRepo) List(_ context.Context) ([]domain.Department, error) { return nil, nil }

func (r *stubDepartmentRepo) Update(_ context.Context, d *domain.Department) (*domain.Department, error) {
	return d, nil
}

func (r *stubDepartmentRepo) Delete(_ context.Context, _ string) error { return nil }

type memEmployeeRepo struct {
	stubEmployeeRepo
	created []domain.Employee
}

func (r *memEmployeeRepo) Create(_ context.Context, e *domain.Employee) (*domain.Employee, error) {
	created := *e
	created.ID = "emp_1"
	r.created = append(r.created, created)
	return &created, nil
}

func TestEmployeeService_Create(t *testing.T) {
	repo := &memEmployeeRepo{}
	svc := NewEmployeeService(repo, &stubDepartmentRepo{known: map[string]bool{"dept_1": true}}, zerolog.Nop())

	created, err := svc.Create(context.Background(), ports.EmployeeInput{
		Name:         "Bob",
		Email:        " Bob@Example.com ",
		DepartmentID: "dept_1",
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if created.Email != "bob@example.com" {
		t.Fatalf("email not normalized: %s", created.Email)
	}
	if created.CreatedAt.IsZero() || created.UpdatedAt.IsZero() {
		t.Fatalf("timestamps not set")
	}
}

func TestEmployeeService_Create_UnknownDepartment(t *testing.T) {
	repo := &memEmployeeRepo{}
	svc := NewEmployeeService(repo, &stubDepartmentRepo{known: map[string]bool{}}, zerolog.Nop())

	_, err := svc.Create(context.Background(), ports.EmployeeInput{
		Name:         "Bob",
		Email:        "bob@example.com",
		DepartmentID: "no-such-dept",
	})
	if !errors.Is(err, domain.ErrDepartmentNotFound) {
		t.Fatalf("expected ErrDepartmentNotFound, got %v", err)
	}
	if len(repo.created) != 0 {
		t.Fatalf("employee created despite missing department")
	}
}

func TestSalaryService_Create_RecomputesNetPay(t *testing.T) {
	salaries := &stubSalaryRepo{}
	svc := NewSalaryService(salaries, &stubEmployeeRepo{known: map[string]bool{"emp_1": true}}, zerolog.Nop())

	created, err := svc.Create(context.Background(), ports.SalaryInput{
		EmployeeID: "emp_1",
		Basic:      1000,
		Allowances: 200,
		Deductions: 50,
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if created.NetPay != 1150 {
		t.Fatalf("expected net pay 1150, got %v", created.NetPay)
	}
	if created.PayDate.IsZero() {
		t.Fatalf("pay date not defaulted")
	}
}

func TestSalaryService_Create_UnknownEmployee(t *testing.T) {
	svc := NewSalaryService(&stubSalaryRepo{}, &stubEmployeeRepo{known: map[string]bool{}}, zerolog.Nop())

	if _, err := svc.Create(context.Background(), ports.SalaryInput{EmployeeID: "ghost", Basic: 1000}); !errors.Is(err, domain.ErrEmployeeNotFound) {
		t.Fatalf("expected ErrEmployeeNotFound, got %v", err)
	}
}

type stubSalaryRepo struct {
	created []domain.Salary
}

func (r *stubSalaryRepo) Create(_ context.Context, s *domain.Salary) (*domain.Salary, error) {
	created := *s
	created.ID = "sal_1"
	r.created = append(r.created, created)
	return &created, nil
}

func (r *stubSalaryRepo) ListByEmployee(_ context.Context, _ string) ([]domain.Salary, error) {
	return r.created, nil
}
