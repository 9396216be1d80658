package leave

import (
	"github.com/remitdesk/backoffice-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CreateLeaveRequestRequest struct {
	EmployeeID string          `json:"employee_id"`
	StartDate  string          `json:"start_date"`
	EndDate    string          `json:"end_date"`
	TotalDays  decimal.Decimal `json:"total_days"`
	Reason     string          `json:"reason"`
}

func (r *CreateLeaveRequestRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "is required"})
	}
	start, okStart := validator.IsValidDate(r.StartDate)
	if !okStart {
		errs = append(errs, validator.ValidationError{Field: "start_date", Message: "must be a valid date (YYYY-MM-DD)"})
	}
	end, okEnd := validator.IsValidDate(r.EndDate)
	if !okEnd {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "must be a valid date (YYYY-MM-DD)"})
	}
	if okStart && okEnd && end.Before(start) {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "must not be before start_date"})
	}
	if !r.TotalDays.IsPositive() {
		errs = append(errs, validator.ValidationError{Field: "total_days", Message: "must be positive"})
	}
	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{Field: "reason", Message: "is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type LeaveRequestResponse struct {
	ID           string          `json:"id"`
	EmployeeID   string          `json:"employee_id"`
	EmployeeName string          `json:"employee_name,omitempty"`
	StartDate    string          `json:"start_date"`
	EndDate      string          `json:"end_date"`
	TotalDays    decimal.Decimal `json:"total_days"`
	Reason       string          `json:"reason"`
	Status       string          `json:"status"`
}
