package leave

import (
	"time"

	"github.com/shopspring/decimal"
)

// RequestStatus enum
type RequestStatus string

const (
	RequestStatusPending   RequestStatus = "pending"
	RequestStatusApproved  RequestStatus = "approved"
	RequestStatusRejected  RequestStatus = "rejected"
	RequestStatusCancelled RequestStatus = "cancelled"
)

// LeaveRequest carries its own status, kept in step with the approval record
// that references it.
type LeaveRequest struct {
	ID         string
	EmployeeID string
	StartDate  time.Time
	EndDate    time.Time
	TotalDays  decimal.Decimal
	Reason     string
	Status     RequestStatus
	CreatedAt  time.Time
	UpdatedAt  time.Time

	// Joined fields
	EmployeeName *string
}
