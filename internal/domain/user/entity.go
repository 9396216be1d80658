package user

import "time"

// Role enum
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleFinance Role = "finance"
	RoleStaff   Role = "staff"
)

type User struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	Role         Role
	EmployeeID   *string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
