package approval

import "context"

type ApprovalRepository interface {
	Create(ctx context.Context, record ApprovalRecord) (ApprovalRecord, error)
	GetByID(ctx context.Context, id string) (ApprovalRecord, error)
	List(ctx context.Context, filter Filter) ([]ApprovalRecord, int64, error)
	Update(ctx context.Context, record ApprovalRecord) error
	AddStep(ctx context.Context, step ApprovalStepRecord) (ApprovalStepRecord, error)
}

// EntityStatusUpdater flips the referenced entity's own status to the
// approval outcome. One implementation per EntityKind.
type EntityStatusUpdater interface {
	ApplyOutcome(ctx context.Context, entityID string, outcome Outcome) error
}
