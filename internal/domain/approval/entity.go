package approval

import "time"

// EntityKind tags the table an approval record points at. Each kind gets its
// own status updater; there is no generic foreign key.
type EntityKind string

const (
	EntityExpenseVoucher EntityKind = "expense_voucher"
	EntityLeaveRequest   EntityKind = "leave_request"
	EntityPurchaseOrder  EntityKind = "purchase_order"
	EntityPaymentRequest EntityKind = "payment_request"
)

func (k EntityKind) Valid() bool {
	switch k {
	case EntityExpenseVoucher, EntityLeaveRequest, EntityPurchaseOrder, EntityPaymentRequest:
		return true
	}
	return false
}

// Status enum
type Status string

const (
	StatusPending   Status = "pending"
	StatusInReview  Status = "in_review"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
	StatusCancelled Status = "cancelled"
)

// Decidable reports whether the status still accepts an approve/reject/cancel.
// approved, rejected and cancelled are terminal.
func (s Status) Decidable() bool {
	return s == StatusPending || s == StatusInReview
}

// Outcome is the two-state result mirrored onto the referenced entity.
type Outcome string

const (
	OutcomeApproved Outcome = "approved"
	OutcomeRejected Outcome = "rejected"
)

type ApprovalRecord struct {
	ID              string
	EntityType      EntityKind
	EntityID        string
	Title           string
	RequestedBy     string
	Status          Status
	ApprovedBy      *string
	ApprovedAt      *time.Time
	RejectionReason *string
	CreatedAt       time.Time
	UpdatedAt       time.Time

	Steps []ApprovalStepRecord
}

// ApprovalStepRecord exists for multi-step display only; decisions act on the
// parent record.
type ApprovalStepRecord struct {
	ID               string
	ApprovalRecordID string
	StepNo           int
	ApproverID       string
	Status           Status
	ActedAt          *time.Time
	Note             *string
}
