// Package employees manages the employee directory backing the
// attendance reports: who works where, and on what schedule.
package employees

import (
	"time"

	"github.com/meridian-erp/meridian-erp/internal/access"
)

// Employee is one directory entry.
type Employee struct {
	ID            string            `json:"id"`
	UserID        string            `json:"user_id"`
	Name          string            `json:"name"`
	Email         string            `json:"email"`
	Department    access.Department `json:"department"`
	ExpectedStart string            `json:"expected_start_time"`
	ExpectedEnd   string            `json:"expected_end_time"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
}

// CreateInput carries the fields needed to register an employee.
type CreateInput struct {
	UserID        string            `json:"user_id" validate:"required"`
	Department    access.Department `json:"department" validate:"required"`
	ExpectedStart string            `json:"expected_start_time" validate:"required,datetime=15:04"`
	ExpectedEnd   string            `json:"expected_end_time" validate:"required,datetime=15:04"`
}
