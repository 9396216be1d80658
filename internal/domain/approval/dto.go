package approval

import (
	"github.com/remitdesk/backoffice-go/internal/pkg/validator"
)

type CreateApprovalRequest struct {
	EntityType string `json:"entity_type"`
	EntityID   string `json:"entity_id"`
	Title      string `json:"title"`
}

func (r *CreateApprovalRequest) Validate() error {
	var errs validator.ValidationErrors

	if !EntityKind(r.EntityType).Valid() {
		errs = append(errs, validator.ValidationError{Field: "entity_type", Message: "must be a known entity kind"})
	}
	if validator.IsEmpty(r.EntityID) {
		errs = append(errs, validator.ValidationError{Field: "entity_id", Message: "is required"})
	}
	if validator.IsEmpty(r.Title) {
		errs = append(errs, validator.ValidationError{Field: "title", Message: "is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type RejectRequest struct {
	ID     string
	Reason string `json:"reason"`
}

type Filter struct {
	Status     *string
	EntityType *string
	Page       int
	Limit      int
}

type StepResponse struct {
	StepNo     int     `json:"step_no"`
	ApproverID string  `json:"approver_id"`
	Status     string  `json:"status"`
	ActedAt    *string `json:"acted_at,omitempty"`
	Note       *string `json:"note,omitempty"`
}

type ApprovalResponse struct {
	ID              string         `json:"id"`
	EntityType      string         `json:"entity_type"`
	EntityID        string         `json:"entity_id"`
	Title           string         `json:"title"`
	RequestedBy     string         `json:"requested_by"`
	Status          string         `json:"status"`
	ApprovedBy      *string        `json:"approved_by,omitempty"`
	ApprovedAt      *string        `json:"approved_at,omitempty"`
	RejectionReason *string        `json:"rejection_reason,omitempty"`
	Steps           []StepResponse `json:"steps,omitempty"`
}

type ListApprovalsResponse struct {
	Data       []ApprovalResponse `json:"data"`
	TotalCount int64              `json:"total_count"`
	Page       int                `json:"page"`
	Limit      int                `json:"limit"`
}
