package approval

import (
	"context"

	"github.com/remitdesk/backoffice-go/internal/domain/approval"
	"github.com/remitdesk/backoffice-go/internal/domain/expense"
	"github.com/remitdesk/backoffice-go/internal/domain/leave"
)

// One updater per entity kind. Each flips the referenced row's own status to
// the approval outcome inside the caller's transaction.

type expenseVoucherUpdater struct {
	repo expense.VoucherRepository
}

func NewExpenseVoucherUpdater(repo expense.VoucherRepository) approval.EntityStatusUpdater {
	return &expenseVoucherUpdater{repo: repo}
}

func (u *expenseVoucherUpdater) ApplyOutcome(ctx context.Context, entityID string, outcome approval.Outcome) error {
	status := expense.VoucherStatusApproved
	if outcome == approval.OutcomeRejected {
		status = expense.VoucherStatusRejected
	}
	return u.repo.UpdateStatus(ctx, entityID, status)
}

type leaveRequestUpdater struct {
	repo leave.LeaveRequestRepository
}

func NewLeaveRequestUpdater(repo leave.LeaveRequestRepository) approval.EntityStatusUpdater {
	return &leaveRequestUpdater{repo: repo}
}

func (u *leaveRequestUpdater) ApplyOutcome(ctx context.Context, entityID string, outcome approval.Outcome) error {
	status := leave.RequestStatusApproved
	if outcome == approval.OutcomeRejected {
		status = leave.RequestStatusRejected
	}
	return u.repo.UpdateStatus(ctx, entityID, status)
}

// recordOnlyUpdater serves kinds whose subject lives outside this system,
// such as purchase orders and payment requests raised with vendors. The
// approval record itself is the tracked state; the outcome needs no further
// write.
type recordOnlyUpdater struct{}

func NewRecordOnlyUpdater() approval.EntityStatusUpdater {
	return recordOnlyUpdater{}
}

func (recordOnlyUpdater) ApplyOutcome(ctx context.Context, entityID string, outcome approval.Outcome) error {
	return nil
}
