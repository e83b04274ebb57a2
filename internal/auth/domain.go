package auth

import (
	"time"

	"github.com/meridian-erp/meridian-erp/internal/access"
)

// User represents an authenticated user account.
type User struct {
	ID           string
	Email        string
	Name         string
	PasswordHash string
	Role         access.Role
	Department   access.Department
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
