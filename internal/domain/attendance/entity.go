package attendance

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status enum
type Status string

const (
	StatusNormal     Status = "normal"
	StatusLate       Status = "late"
	StatusEarlyLeave Status = "early_leave"
	StatusAbsent     Status = "absent"
	StatusLeave      Status = "leave"
)

// AttendanceRecord is unique per (employee, date). Lateness and overtime are
// derived against the employee's work schedule at clock time and stored, so
// payroll never re-derives them.
type AttendanceRecord struct {
	ID                string
	EmployeeID        string
	Date              time.Time
	ClockIn           *time.Time
	ClockOut          *time.Time
	WorkHours         decimal.Decimal
	OvertimeHours     decimal.Decimal
	LateMinutes       int
	EarlyLeaveMinutes int
	Status            Status
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// WorkSchedule holds the daily start/end times attendance is measured against.
type WorkSchedule struct {
	ID         string
	EmployeeID string
	StartTime  string // "15:04"
	EndTime    string // "15:04"
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
