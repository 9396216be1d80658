package leave

import (
	"context"
	"time"
)

type LeaveRequestRepository interface {
	Create(ctx context.Context, req LeaveRequest) (LeaveRequest, error)
	GetByID(ctx context.Context, id string) (LeaveRequest, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]LeaveRequest, error)
	// ListApprovedOverlapping returns approved requests whose [start, end]
	// intersects [from, to].
	ListApprovedOverlapping(ctx context.Context, employeeID string, from, to time.Time) ([]LeaveRequest, error)
	CheckOverlapping(ctx context.Context, employeeID string, start, end time.Time) (bool, error)
	UpdateStatus(ctx context.Context, id string, status RequestStatus) error
}
