package employee

import (
	"github.com/remitdesk/backoffice-go/internal/pkg/validator"
)

type CreateEmployeeRequest struct {
	Name         string  `json:"name"`
	Email        string  `json:"email"`
	DepartmentID *string `json:"department_id,omitempty"`
	PositionID   *string `json:"position_id,omitempty"`
	HireDate     string  `json:"hire_date"`
}

func (r *CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "is required"})
	}
	if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{Field: "email", Message: "must be a valid email"})
	}
	if _, ok := validator.IsValidDate(r.HireDate); !ok {
		errs = append(errs, validator.ValidationError{Field: "hire_date", Message: "must be a valid date (YYYY-MM-DD)"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateEmployeeRequest struct {
	ID           string
	Name         *string `json:"name,omitempty"`
	Email        *string `json:"email,omitempty"`
	DepartmentID *string `json:"department_id,omitempty"`
	PositionID   *string `json:"position_id,omitempty"`
	IsActive     *bool   `json:"is_active,omitempty"`
}

type EmployeeResponse struct {
	ID             string  `json:"id"`
	Code           string  `json:"code"`
	Name           string  `json:"name"`
	Email          string  `json:"email"`
	DepartmentID   *string `json:"department_id,omitempty"`
	DepartmentName *string `json:"department_name,omitempty"`
	PositionID     *string `json:"position_id,omitempty"`
	PositionName   *string `json:"position_name,omitempty"`
	HireDate       string  `json:"hire_date"`
	IsActive       bool    `json:"is_active"`
}
