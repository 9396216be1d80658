package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/remitdesk/backoffice-go/internal/domain/approval"
	"github.com/remitdesk/backoffice-go/internal/pkg/database"
)

type approvalRepository struct {
	db *database.DB
}

func NewApprovalRepository(db *database.DB) approval.ApprovalRepository {
	return &approvalRepository{db: db}
}

func (r *approvalRepository) Create(ctx context.Context, record approval.ApprovalRecord) (approval.ApprovalRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO approval_records (id, entity_type, entity_id, title, requested_by, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at
	`

	record.ID = uuid.NewString()
	err := q.QueryRow(ctx, query,
		record.ID, string(record.EntityType), record.EntityID, record.Title, record.RequestedBy, string(record.Status),
	).Scan(&record.CreatedAt, &record.UpdatedAt)
	if err != nil {
		return approval.ApprovalRecord{}, fmt.Errorf("failed to create approval record: %w", err)
	}

	return record, nil
}

const approvalColumns = `
	id, entity_type, entity_id, title, requested_by, status,
	approved_by, approved_at, rejection_reason, created_at, updated_at
`

func scanApprovalRecord(row pgx.Row) (approval.ApprovalRecord, error) {
	var rec approval.ApprovalRecord
	var entityType, status string
	err := row.Scan(
		&rec.ID, &entityType, &rec.EntityID, &rec.Title, &rec.RequestedBy, &status,
		&rec.ApprovedBy, &rec.ApprovedAt, &rec.RejectionReason, &rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		return approval.ApprovalRecord{}, err
	}
	rec.EntityType = approval.EntityKind(entityType)
	rec.Status = approval.Status(status)
	return rec, nil
}

func (r *approvalRepository) GetByID(ctx context.Context, id string) (approval.ApprovalRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + approvalColumns + `
		FROM approval_records
		WHERE id = $1
	`

	rec, err := scanApprovalRecord(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return approval.ApprovalRecord{}, approval.ErrRecordNotFound
		}
		return approval.ApprovalRecord{}, fmt.Errorf("failed to get approval record: %w", err)
	}

	steps, err := r.getSteps(ctx, id)
	if err != nil {
		return approval.ApprovalRecord{}, err
	}
	rec.Steps = steps

	return rec, nil
}

func (r *approvalRepository) getSteps(ctx context.Context, recordID string) ([]approval.ApprovalStepRecord, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT id, approval_record_id, step_no, approver_id, status, acted_at, note
		FROM approval_steps
		WHERE approval_record_id = $1
		ORDER BY step_no
	`, recordID)
	if err != nil {
		return nil, fmt.Errorf("failed to get approval steps: %w", err)
	}
	defer rows.Close()

	var steps []approval.ApprovalStepRecord
	for rows.Next() {
		var s approval.ApprovalStepRecord
		var status string
		if err := rows.Scan(&s.ID, &s.ApprovalRecordID, &s.StepNo, &s.ApproverID, &status, &s.ActedAt, &s.Note); err != nil {
			return nil, fmt.Errorf("failed to scan approval step: %w", err)
		}
		s.Status = approval.Status(status)
		steps = append(steps, s)
	}

	return steps, rows.Err()
}

func (r *approvalRepository) List(ctx context.Context, filter approval.Filter) ([]approval.ApprovalRecord, int64, error) {
	q := GetQuerier(ctx, r.db)

	where := ` WHERE 1=1`
	args := []interface{}{}
	argPos := 1

	if filter.Status != nil {
		where += fmt.Sprintf(" AND status = $%d", argPos)
		args = append(args, *filter.Status)
		argPos++
	}
	if filter.EntityType != nil {
		where += fmt.Sprintf(" AND entity_type = $%d", argPos)
		args = append(args, *filter.EntityType)
		argPos++
	}

	var totalCount int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM approval_records`+where, args...).Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("failed to count approval records: %w", err)
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	page := filter.Page
	if page <= 0 {
		page = 1
	}

	query := `
		SELECT ` + approvalColumns + `
		FROM approval_records
	` + where + fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", argPos, argPos+1)
	args = append(args, limit, (page-1)*limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list approval records: %w", err)
	}
	defer rows.Close()

	var records []approval.ApprovalRecord
	for rows.Next() {
		rec, err := scanApprovalRecord(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan approval record: %w", err)
		}
		records = append(records, rec)
	}

	return records, totalCount, rows.Err()
}

func (r *approvalRepository) Update(ctx context.Context, record approval.ApprovalRecord) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE approval_records
		SET status = $2, approved_by = $3, approved_at = $4, rejection_reason = $5, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query,
		record.ID, string(record.Status), record.ApprovedBy, record.ApprovedAt, record.RejectionReason,
	)
	if err != nil {
		return fmt.Errorf("failed to update approval record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return approval.ErrRecordNotFound
	}

	return nil
}

func (r *approvalRepository) AddStep(ctx context.Context, step approval.ApprovalStepRecord) (approval.ApprovalStepRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO approval_steps (id, approval_record_id, step_no, approver_id, status, acted_at, note)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	step.ID = uuid.NewString()
	_, err := q.Exec(ctx, query,
		step.ID, step.ApprovalRecordID, step.StepNo, step.ApproverID, string(step.Status), step.ActedAt, step.Note,
	)
	if err != nil {
		return approval.ApprovalStepRecord{}, fmt.Errorf("failed to add approval step: %w", err)
	}

	return step, nil
}
