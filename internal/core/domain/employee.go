package domain

import (
	"errors"
	"time"
)

var ErrEmployeeNotFound = errors.New("employee not found")
var ErrDuplicateEmployee = errors.New("employee already exists")

// Employee is an HR record. It is distinct from User: a User carries
// credentials and a role, an Employee carries personnel data.
type Employee struct {
	ID           string    `json:"id" bson:"_id,omitempty"`
	Name         string    `json:"name" bson:"name"`
	Email        string    `json:"email" bson:"email"`
	DepartmentID string    `json:"department_id,omitempty" bson:"department_id,omitempty"`
	Phone        string    `json:"phone,omitempty" bson:"phone,omitempty"`
	CNIC         string    `json:"cnic,omitempty" bson:"cnic,omitempty"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" bson:"updated_at"`
}
