package approval

import (
	"context"
	"time"

	"github.com/remitdesk/backoffice-go/internal/domain/approval"
	"github.com/remitdesk/backoffice-go/internal/pkg/database"
	"github.com/remitdesk/backoffice-go/internal/pkg/validator"
)

type Service struct {
	tx           database.TxManager
	approvalRepo approval.ApprovalRepository
	updaters     map[approval.EntityKind]approval.EntityStatusUpdater
}

func NewService(tx database.TxManager, approvalRepo approval.ApprovalRepository, updaters map[approval.EntityKind]approval.EntityStatusUpdater) *Service {
	return &Service{
		tx:           tx,
		approvalRepo: approvalRepo,
		updaters:     updaters,
	}
}

func (s *Service) Create(ctx context.Context, req approval.CreateApprovalRequest, requestedBy string) (approval.ApprovalResponse, error) {
	if err := req.Validate(); err != nil {
		return approval.ApprovalResponse{}, err
	}

	kind := approval.EntityKind(req.EntityType)
	if _, ok := s.updaters[kind]; !ok {
		return approval.ApprovalResponse{}, approval.ErrNoUpdaterForEntity
	}

	record, err := s.approvalRepo.Create(ctx, approval.ApprovalRecord{
		EntityType:  kind,
		EntityID:    req.EntityID,
		Title:       req.Title,
		RequestedBy: requestedBy,
		Status:      approval.StatusPending,
	})
	if err != nil {
		return approval.ApprovalResponse{}, err
	}

	return toResponse(record), nil
}

func (s *Service) Get(ctx context.Context, id string) (approval.ApprovalResponse, error) {
	record, err := s.approvalRepo.GetByID(ctx, id)
	if err != nil {
		return approval.ApprovalResponse{}, err
	}
	return toResponse(record), nil
}

func (s *Service) List(ctx context.Context, filter approval.Filter) (approval.ListApprovalsResponse, error) {
	records, total, err := s.approvalRepo.List(ctx, filter)
	if err != nil {
		return approval.ListApprovalsResponse{}, err
	}

	responses := make([]approval.ApprovalResponse, 0, len(records))
	for _, rec := range records {
		responses = append(responses, toResponse(rec))
	}

	page := filter.Page
	if page <= 0 {
		page = 1
	}
	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}

	return approval.ListApprovalsResponse{
		Data:       responses,
		TotalCount: total,
		Page:       page,
		Limit:      limit,
	}, nil
}

// Approve decides a pending or in-review record. The record update and the
// referenced entity's status flip commit in one transaction.
func (s *Service) Approve(ctx context.Context, id, approverID string) (approval.ApprovalResponse, error) {
	return s.decide(ctx, id, approverID, approval.OutcomeApproved, nil)
}

// Reject mirrors Approve but requires a non-blank reason; a whitespace-only
// reason is refused without any state change.
func (s *Service) Reject(ctx context.Context, req approval.RejectRequest, approverID string) (approval.ApprovalResponse, error) {
	if validator.IsEmpty(req.Reason) {
		return approval.ApprovalResponse{}, approval.ErrReasonRequired
	}
	return s.decide(ctx, req.ID, approverID, approval.OutcomeRejected, &req.Reason)
}

func (s *Service) decide(ctx context.Context, id, approverID string, outcome approval.Outcome, reason *string) (approval.ApprovalResponse, error) {
	var decided approval.ApprovalRecord

	err := s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		record, err := s.approvalRepo.GetByID(txCtx, id)
		if err != nil {
			return err
		}
		if !record.Status.Decidable() {
			return approval.ErrAlreadyDecided
		}

		updater, ok := s.updaters[record.EntityType]
		if !ok {
			return approval.ErrNoUpdaterForEntity
		}

		now := time.Now()
		record.Status = approval.Status(outcome)
		record.ApprovedBy = &approverID
		record.ApprovedAt = &now
		record.RejectionReason = reason

		if err := s.approvalRepo.Update(txCtx, record); err != nil {
			return err
		}
		if err := updater.ApplyOutcome(txCtx, record.EntityID, outcome); err != nil {
			return err
		}

		decided = record
		return nil
	})
	if err != nil {
		return approval.ApprovalResponse{}, err
	}

	return toResponse(decided), nil
}

// Cancel withdraws a pending or in-review record. Only the requester may
// cancel; the referenced entity is left untouched.
func (s *Service) Cancel(ctx context.Context, id, actorID string) (approval.ApprovalResponse, error) {
	var cancelled approval.ApprovalRecord

	err := s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		record, err := s.approvalRepo.GetByID(txCtx, id)
		if err != nil {
			return err
		}
		if !record.Status.Decidable() {
			return approval.ErrAlreadyDecided
		}
		if record.RequestedBy != actorID {
			return approval.ErrNotRequester
		}

		record.Status = approval.StatusCancelled
		if err := s.approvalRepo.Update(txCtx, record); err != nil {
			return err
		}

		cancelled = record
		return nil
	})
	if err != nil {
		return approval.ApprovalResponse{}, err
	}

	return toResponse(cancelled), nil
}

func toResponse(rec approval.ApprovalRecord) approval.ApprovalResponse {
	steps := make([]approval.StepResponse, 0, len(rec.Steps))
	for _, step := range rec.Steps {
		sr := approval.StepResponse{
			StepNo:     step.StepNo,
			ApproverID: step.ApproverID,
			Status:     string(step.Status),
			Note:       step.Note,
		}
		if step.ActedAt != nil {
			s := step.ActedAt.Format(time.RFC3339)
			sr.ActedAt = &s
		}
		steps = append(steps, sr)
	}

	resp := approval.ApprovalResponse{
		ID:              rec.ID,
		EntityType:      string(rec.EntityType),
		EntityID:        rec.EntityID,
		Title:           rec.Title,
		RequestedBy:     rec.RequestedBy,
		Status:          string(rec.Status),
		ApprovedBy:      rec.ApprovedBy,
		RejectionReason: rec.RejectionReason,
		Steps:           steps,
	}
	if rec.ApprovedAt != nil {
		s := rec.ApprovedAt.Format(time.RFC3339)
		resp.ApprovedAt = &s
	}
	return resp
}
