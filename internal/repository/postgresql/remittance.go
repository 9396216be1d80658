package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/remitdesk/backoffice-go/internal/domain/remittance"
	"github.com/remitdesk/backoffice-go/internal/pkg/database"
)

type remittanceRepository struct {
	db *database.DB
}

func NewRemittanceRepository(db *database.DB) remittance.RemittanceRepository {
	return &remittanceRepository{db: db}
}

func (r *remittanceRepository) CreateReceipt(ctx context.Context, receipt remittance.RemittanceReceipt) (remittance.RemittanceReceipt, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO remittance_receipts (
			id, receipt_number, customer_name, receipt_date, amount, fee, currency,
			journal_entry_id, created_by
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at
	`

	receipt.ID = uuid.NewString()
	err := q.QueryRow(ctx, query,
		receipt.ID, receipt.ReceiptNumber, receipt.CustomerName, receipt.ReceiptDate,
		receipt.Amount, receipt.Fee, receipt.Currency, receipt.JournalEntryID, receipt.CreatedBy,
	).Scan(&receipt.CreatedAt)
	if err != nil {
		return remittance.RemittanceReceipt{}, fmt.Errorf("failed to create remittance receipt: %w", err)
	}

	return receipt, nil
}

const receiptColumns = `
	id, receipt_number, customer_name, receipt_date, amount, fee, currency,
	journal_entry_id, created_by, created_at
`

func scanReceipt(row pgx.Row) (remittance.RemittanceReceipt, error) {
	var rec remittance.RemittanceReceipt
	err := row.Scan(
		&rec.ID, &rec.ReceiptNumber, &rec.CustomerName, &rec.ReceiptDate,
		&rec.Amount, &rec.Fee, &rec.Currency, &rec.JournalEntryID, &rec.CreatedBy, &rec.CreatedAt,
	)
	return rec, err
}

func (r *remittanceRepository) GetReceiptByID(ctx context.Context, id string) (remittance.RemittanceReceipt, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + receiptColumns + ` FROM remittance_receipts WHERE id = $1`

	rec, err := scanReceipt(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return remittance.RemittanceReceipt{}, remittance.ErrReceiptNotFound
		}
		return remittance.RemittanceReceipt{}, fmt.Errorf("failed to get remittance receipt: %w", err)
	}

	return rec, nil
}

func (r *remittanceRepository) ListReceiptsByDate(ctx context.Context, date time.Time) ([]remittance.RemittanceReceipt, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + receiptColumns + `
		FROM remittance_receipts
		WHERE receipt_date = $1
		ORDER BY receipt_number
	`

	rows, err := q.Query(ctx, query, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list remittance receipts: %w", err)
	}
	defer rows.Close()

	var receipts []remittance.RemittanceReceipt
	for rows.Next() {
		rec, err := scanReceipt(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan remittance receipt: %w", err)
		}
		receipts = append(receipts, rec)
	}

	return receipts, rows.Err()
}

func (r *remittanceRepository) SummarizeReceiptsByDate(ctx context.Context, date time.Time) (remittance.ReceiptSummary, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COUNT(*), COALESCE(SUM(amount), 0), COALESCE(SUM(fee), 0)
		FROM remittance_receipts
		WHERE receipt_date = $1
	`

	var s remittance.ReceiptSummary
	if err := q.QueryRow(ctx, query, date).Scan(&s.Count, &s.TotalAmount, &s.TotalFees); err != nil {
		return remittance.ReceiptSummary{}, fmt.Errorf("failed to summarize receipts: %w", err)
	}

	return s, nil
}

func (r *remittanceRepository) MaxReceiptSequence(ctx context.Context, date time.Time) (int, error) {
	q := GetQuerier(ctx, r.db)

	prefix := "RCV-" + date.Format("20060102") + "-%"
	query := `
		SELECT COALESCE(MAX(SUBSTRING(receipt_number FROM 14)::int), 0)
		FROM remittance_receipts
		WHERE receipt_number LIKE $1
	`

	var max int
	if err := q.QueryRow(ctx, query, prefix).Scan(&max); err != nil {
		return 0, fmt.Errorf("failed to get max receipt sequence: %w", err)
	}

	return max, nil
}

func (r *remittanceRepository) CreateClosing(ctx context.Context, closing remittance.DailyClosing) (remittance.DailyClosing, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO daily_closings (
			id, closing_date, receipt_count, total_amount, total_fees,
			journal_entry_id, status, closed_by, closed_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at
	`

	closing.ID = uuid.NewString()
	err := q.QueryRow(ctx, query,
		closing.ID, closing.ClosingDate, closing.ReceiptCount, closing.TotalAmount, closing.TotalFees,
		closing.JournalEntryID, string(closing.Status), closing.ClosedBy, closing.ClosedAt,
	).Scan(&closing.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return remittance.DailyClosing{}, remittance.ErrDayAlreadyClosed
		}
		return remittance.DailyClosing{}, fmt.Errorf("failed to create daily closing: %w", err)
	}

	return closing, nil
}

const closingColumns = `
	id, closing_date, receipt_count, total_amount, total_fees,
	journal_entry_id, status, closed_by, closed_at, created_at
`

func scanClosing(row pgx.Row) (remittance.DailyClosing, error) {
	var c remittance.DailyClosing
	var status string
	err := row.Scan(
		&c.ID, &c.ClosingDate, &c.ReceiptCount, &c.TotalAmount, &c.TotalFees,
		&c.JournalEntryID, &status, &c.ClosedBy, &c.ClosedAt, &c.CreatedAt,
	)
	if err != nil {
		return remittance.DailyClosing{}, err
	}
	c.Status = remittance.ClosingStatus(status)
	return c, nil
}

func (r *remittanceRepository) GetClosingByDate(ctx context.Context, date time.Time) (remittance.DailyClosing, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + closingColumns + ` FROM daily_closings WHERE closing_date = $1`

	c, err := scanClosing(q.QueryRow(ctx, query, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return remittance.DailyClosing{}, remittance.ErrClosingNotFound
		}
		return remittance.DailyClosing{}, fmt.Errorf("failed to get daily closing: %w", err)
	}

	return c, nil
}

func (r *remittanceRepository) ListClosings(ctx context.Context, from, to time.Time) ([]remittance.DailyClosing, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + closingColumns + `
		FROM daily_closings
		WHERE closing_date BETWEEN $1 AND $2
		ORDER BY closing_date DESC
	`

	rows, err := q.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list daily closings: %w", err)
	}
	defer rows.Close()

	var closings []remittance.DailyClosing
	for rows.Next() {
		c, err := scanClosing(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan daily closing: %w", err)
		}
		closings = append(closings, c)
	}

	return closings, rows.Err()
}
