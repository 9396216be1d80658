package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/remitdesk/backoffice-go/internal/domain/ledger"
	"github.com/remitdesk/backoffice-go/internal/pkg/database"
)

type journalRepository struct {
	db *database.DB
}

func NewJournalRepository(db *database.DB) ledger.JournalRepository {
	return &journalRepository{db: db}
}

func (r *journalRepository) CreateEntry(ctx context.Context, entry ledger.JournalEntry) (ledger.JournalEntry, error) {
	q := GetQuerier(ctx, r.db)

	entryQuery := `
		INSERT INTO journal_entries (
			id, entry_number, entry_date, description, status,
			total_debit, total_credit, created_by
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at
	`

	entry.ID = uuid.NewString()
	err := q.QueryRow(ctx, entryQuery,
		entry.ID, entry.EntryNumber, entry.EntryDate, entry.Description, string(entry.Status),
		entry.TotalDebit, entry.TotalCredit, entry.CreatedBy,
	).Scan(&entry.CreatedAt, &entry.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ledger.JournalEntry{}, ledger.ErrEntryNumberExists
		}
		return ledger.JournalEntry{}, fmt.Errorf("failed to create journal entry: %w", err)
	}

	lineQuery := `
		INSERT INTO journal_entry_lines (id, journal_entry_id, account_id, line_no, debit, credit, memo)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	for i := range entry.Lines {
		entry.Lines[i].ID = uuid.NewString()
		entry.Lines[i].JournalEntryID = entry.ID
		line := entry.Lines[i]
		if _, err := q.Exec(ctx, lineQuery,
			line.ID, line.JournalEntryID, line.AccountID, line.LineNo, line.Debit, line.Credit, line.Memo,
		); err != nil {
			return ledger.JournalEntry{}, fmt.Errorf("failed to create journal line %d: %w", line.LineNo, err)
		}
	}

	return entry, nil
}

func (r *journalRepository) GetEntryByID(ctx context.Context, id string) (ledger.JournalEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, entry_number, entry_date, description, status,
			   total_debit, total_credit, created_by,
			   posted_at, posted_by, voided_at, voided_by, void_reason,
			   created_at, updated_at
		FROM journal_entries
		WHERE id = $1
	`

	var e ledger.JournalEntry
	var status string
	err := q.QueryRow(ctx, query, id).Scan(
		&e.ID, &e.EntryNumber, &e.EntryDate, &e.Description, &status,
		&e.TotalDebit, &e.TotalCredit, &e.CreatedBy,
		&e.PostedAt, &e.PostedBy, &e.VoidedAt, &e.VoidedBy, &e.VoidReason,
		&e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ledger.JournalEntry{}, ledger.ErrEntryNotFound
		}
		return ledger.JournalEntry{}, fmt.Errorf("failed to get journal entry: %w", err)
	}
	e.Status = ledger.EntryStatus(status)

	lines, err := r.getLines(ctx, id)
	if err != nil {
		return ledger.JournalEntry{}, err
	}
	e.Lines = lines

	return e, nil
}

func (r *journalRepository) getLines(ctx context.Context, entryID string) ([]ledger.JournalEntryLine, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT l.id, l.journal_entry_id, l.account_id, l.line_no, l.debit, l.credit, l.memo,
			   a.code, a.name
		FROM journal_entry_lines l
		JOIN accounts a ON a.id = l.account_id
		WHERE l.journal_entry_id = $1
		ORDER BY l.line_no
	`

	rows, err := q.Query(ctx, query, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to get journal lines: %w", err)
	}
	defer rows.Close()

	var lines []ledger.JournalEntryLine
	for rows.Next() {
		var l ledger.JournalEntryLine
		if err := rows.Scan(&l.ID, &l.JournalEntryID, &l.AccountID, &l.LineNo, &l.Debit, &l.Credit, &l.Memo, &l.AccountCode, &l.AccountName); err != nil {
			return nil, fmt.Errorf("failed to scan journal line: %w", err)
		}
		lines = append(lines, l)
	}

	return lines, rows.Err()
}

func (r *journalRepository) ListEntries(ctx context.Context, filter ledger.EntryFilter) ([]ledger.JournalEntry, int64, error) {
	q := GetQuerier(ctx, r.db)

	where := ` WHERE 1=1`
	args := []interface{}{}
	argPos := 1

	if filter.DateFrom != nil {
		where += fmt.Sprintf(" AND entry_date >= $%d", argPos)
		args = append(args, *filter.DateFrom)
		argPos++
	}
	if filter.DateTo != nil {
		where += fmt.Sprintf(" AND entry_date <= $%d", argPos)
		args = append(args, *filter.DateTo)
		argPos++
	}
	if filter.Status != nil {
		where += fmt.Sprintf(" AND status = $%d", argPos)
		args = append(args, *filter.Status)
		argPos++
	}

	var totalCount int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM journal_entries`+where, args...).Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("failed to count journal entries: %w", err)
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
		SELECT id, entry_number, entry_date, description, status,
			   total_debit, total_credit, created_by,
			   posted_at, posted_by, voided_at, voided_by, void_reason,
			   created_at, updated_at
		FROM journal_entries
	` + where + fmt.Sprintf(" ORDER BY entry_number DESC LIMIT $%d OFFSET $%d", argPos, argPos+1)
	args = append(args, limit, (page-1)*limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list journal entries: %w", err)
	}
	defer rows.Close()

	var entries []ledger.JournalEntry
	for rows.Next() {
		var e ledger.JournalEntry
		var status string
		if err := rows.Scan(
			&e.ID, &e.EntryNumber, &e.EntryDate, &e.Description, &status,
			&e.TotalDebit, &e.TotalCredit, &e.CreatedBy,
			&e.PostedAt, &e.PostedBy, &e.VoidedAt, &e.VoidedBy, &e.VoidReason,
			&e.CreatedAt, &e.UpdatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan journal entry: %w", err)
		}
		e.Status = ledger.EntryStatus(status)
		entries = append(entries, e)
	}

	return entries, totalCount, rows.Err()
}

func (r *journalRepository) MaxSequenceForDate(ctx context.Context, date time.Time) (int, error) {
	q := GetQuerier(ctx, r.db)

	prefix := date.Format("20060102") + "-%"
	query := `
		SELECT COALESCE(MAX(SUBSTRING(entry_number FROM 10)::int), 0)
		FROM journal_entries
		WHERE entry_number LIKE $1
	`

	var max int
	if err := q.QueryRow(ctx, query, prefix).Scan(&max); err != nil {
		return 0, fmt.Errorf("failed to get max entry sequence: %w", err)
	}

	return max, nil
}

func (r *journalRepository) MarkPosted(ctx context.Context, id string, postedBy string, postedAt time.Time) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE journal_entries
		SET status = 'posted', posted_by = $2, posted_at = $3, updated_at = NOW()
		WHERE id = $1 AND status = 'draft'
	`

	tag, err := q.Exec(ctx, query, id, postedBy, postedAt)
	if err != nil {
		return fmt.Errorf("failed to post journal entry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return r.classifyZeroRows(ctx, id, ledger.ErrEntryNotDraft)
	}

	return nil
}

// classifyZeroRows resolves a guarded UPDATE that touched nothing: the entry
// either does not exist or sits in a state the guard excludes.
func (r *journalRepository) classifyZeroRows(ctx context.Context, id string, stateErr error) error {
	q := GetQuerier(ctx, r.db)

	var exists bool
	if err := q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM journal_entries WHERE id = $1)`, id).Scan(&exists); err != nil {
		return fmt.Errorf("failed to check journal entry: %w", err)
	}
	if !exists {
		return ledger.ErrEntryNotFound
	}
	return stateErr
}

func (r *journalRepository) MarkVoid(ctx context.Context, id string, voidedBy string, voidedAt time.Time, reason string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE journal_entries
		SET status = 'void', voided_by = $2, voided_at = $3, void_reason = $4, updated_at = NOW()
		WHERE id = $1 AND status <> 'void'
	`

	tag, err := q.Exec(ctx, query, id, voidedBy, voidedAt, reason)
	if err != nil {
		return fmt.Errorf("failed to void journal entry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return r.classifyZeroRows(ctx, id, ledger.ErrEntryAlreadyVoid)
	}

	return nil
}
