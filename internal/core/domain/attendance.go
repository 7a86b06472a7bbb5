package domain

import (
	"errors"
	"time"
)

// PunchType is the direction of an attendance punch.
type PunchType string

const (
	PunchIn  PunchType = "check_in"
	PunchOut PunchType = "check_out"
)

var ErrInvalidPunch = errors.New("invalid attendance punch")

// Punch is a raw clock event received from a client, keyed by employee.
type Punch struct {
	EmployeeID string
	Type       PunchType
	Timestamp  time.Time
	Source     string
}

// Attendance is a persisted punch record.
type Attendance struct {
	ID         string    `json:"id" bson:"_id,omitempty"`
	EmployeeID string    `json:"employee_id" bson:"employee_id"`
	Type       PunchType `json:"type" bson:"type"`
	Timestamp  time.Time `json:"timestamp" bson:"timestamp"`
	Source     string    `json:"source,omitempty" bson:"source,omitempty"`
	RecordedAt time.Time `json:"recorded_at" bson:"recorded_at"`
}
