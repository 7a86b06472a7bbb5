package handler

import "time"

type punchRequest struct {
	EmployeeID string    `json:"employee_id" validate:"required"`
	Type       string    `json:"type"        validate:"required,oneof=check_in check_out"`
	Timestamp  time.Time `json:"timestamp"   validate:"required"`
	Source     string    `json:"source"      validate:"required"`
}

type attendanceResponse struct {
	ID         string    `json:"id"`
	EmployeeID string    `json:"employee_id"`
	Type       string    `json:"type"`
	Timestamp  time.Time `json:"timestamp"`
	Source     string    `json:"source,omitempty"`
	RecordedAt time.Time `json:"recorded_at"`
}

type acceptedResponse struct {
	Message string `json:"message"`
	Count   int    `json:"count,omitempty"`
}
