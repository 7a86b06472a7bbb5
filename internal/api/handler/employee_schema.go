package handler

import (
	"time"

	"github.com/payrollhq/payroll-system/internal/core/domain"
	"github.com/payrollhq/payroll-system/internal/core/ports"
)

type employeeRequest struct {
	Name         string `json:"name"          validate:"required"`
	Email        string `json:"email"         validate:"required,email"`
	DepartmentID string `json:"department_id" validate:"omitempty"`
	Phone        string `json:"phone"         validate:"omitempty"`
	CNIC         string `json:"cnic"          validate:"omitempty"`
}

func (r employeeRequest) toInput() ports.EmployeeInput {
	return ports.EmployeeInput{
		Name:         r.Name,
		Email:        r.Email,
		DepartmentID: r.DepartmentID,
		Phone:        r.Phone,
		CNIC:         r.CNIC,
	}
}

type employeeResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	DepartmentID string    `json:"department_id,omitempty"`
	Phone        string    `json:"phone,omitempty"`
	CNIC         string    `json:"cnic,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func toEmployeeResponse(e *domain.Employee) employeeResponse {
	return employeeResponse{
		ID:           e.ID,
		Name:         e.Name,
		Email:        e.Email,
		DepartmentID: e.DepartmentID,
		Phone:        e.Phone,
		CNIC:         e.CNIC,
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
	}
}
