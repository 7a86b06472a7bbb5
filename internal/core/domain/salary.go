package domain

import (
	"errors"
	"time"
)

var ErrSalaryNotFound = errors.New("salary record not found")

// Salary is a single payroll disbursement for an employee.
// NetPay is derived: basic + allowances - deductions.
type Salary struct {
	ID         string    `json:"id" bson:"_id,omitempty"`
	EmployeeID string    `json:"employee_id" bson:"employee_id"`
	Basic      float64   `json:"basic" bson:"basic"`
	Allowances float64   `json:"allowances" bson:"allowances"`
	Deductions float64   `json:"deductions" bson:"deductions"`
	NetPay     float64   `json:"net_pay" bson:"net_pay"`
	PayDate    time.Time `json:"pay_date" bson:"pay_date"`
	CreatedAt  time.Time `json:"created_at" bson:"created_at"`
}
