package attendance

import (
	"github.com/remitdesk/backoffice-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type ClockRequest struct {
	EmployeeID string `json:"employee_id"`
	Timestamp  string `json:"timestamp,omitempty"` // RFC3339, defaults to now
}

type UpsertScheduleRequest struct {
	EmployeeID string `json:"employee_id"`
	StartTime  string `json:"start_time"` // "15:04"
	EndTime    string `json:"end_time"`
}

func (r *UpsertScheduleRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "is required"})
	}
	if !isValidClock(r.StartTime) {
		errs = append(errs, validator.ValidationError{Field: "start_time", Message: "must be HH:MM"})
	}
	if !isValidClock(r.EndTime) {
		errs = append(errs, validator.ValidationError{Field: "end_time", Message: "must be HH:MM"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func isValidClock(s string) bool {
	if len(s) != 5 || s[2] != ':' {
		return false
	}
	return validator.IsNumeric(s[:2]) && validator.IsNumeric(s[3:])
}

type RecordResponse struct {
	ID                string          `json:"id"`
	EmployeeID        string          `json:"employee_id"`
	Date              string          `json:"date"`
	ClockIn           *string         `json:"clock_in,omitempty"`
	ClockOut          *string         `json:"clock_out,omitempty"`
	WorkHours         decimal.Decimal `json:"work_hours"`
	OvertimeHours     decimal.Decimal `json:"overtime_hours"`
	LateMinutes       int             `json:"late_minutes"`
	EarlyLeaveMinutes int             `json:"early_leave_minutes"`
	Status            string          `json:"status"`
}
