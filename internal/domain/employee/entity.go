package employee

import "time"

type Employee struct {
	ID           string
	Code         string // EMP-NNNN, assigned by the store
	Name         string
	Email        string
	DepartmentID *string
	PositionID   *string
	HireDate     time.Time
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// Joined fields
	DepartmentName *string
	PositionName   *string
}
