package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/remitdesk/backoffice-go/internal/domain/expense"
	"github.com/remitdesk/backoffice-go/internal/pkg/database"
)

type voucherRepository struct {
	db *database.DB
}

func NewVoucherRepository(db *database.DB) expense.VoucherRepository {
	return &voucherRepository{db: db}
}

func (r *voucherRepository) Create(ctx context.Context, v expense.ExpenseVoucher) (expense.ExpenseVoucher, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO expense_vouchers (id, voucher_number, employee_id, amount, description, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at
	`

	v.ID = uuid.NewString()
	v.Status = expense.VoucherStatusPending
	err := q.QueryRow(ctx, query,
		v.ID, v.VoucherNumber, v.EmployeeID, v.Amount, v.Description, string(v.Status),
	).Scan(&v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		return expense.ExpenseVoucher{}, fmt.Errorf("failed to create expense voucher: %w", err)
	}

	return v, nil
}

func (r *voucherRepository) GetByID(ctx context.Context, id string) (expense.ExpenseVoucher, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, voucher_number, employee_id, amount, description, status, created_at, updated_at
		FROM expense_vouchers
		WHERE id = $1
	`

	var v expense.ExpenseVoucher
	var status string
	err := q.QueryRow(ctx, query, id).Scan(
		&v.ID, &v.VoucherNumber, &v.EmployeeID, &v.Amount, &v.Description, &status, &v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return expense.ExpenseVoucher{}, expense.ErrVoucherNotFound
		}
		return expense.ExpenseVoucher{}, fmt.Errorf("failed to get expense voucher: %w", err)
	}
	v.Status = expense.VoucherStatus(status)

	return v, nil
}

func (r *voucherRepository) ListByEmployee(ctx context.Context, employeeID string) ([]expense.ExpenseVoucher, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT id, voucher_number, employee_id, amount, description, status, created_at, updated_at
		FROM expense_vouchers
		WHERE employee_id = $1
		ORDER BY created_at DESC
	`, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list expense vouchers: %w", err)
	}
	defer rows.Close()

	var vouchers []expense.ExpenseVoucher
	for rows.Next() {
		var v expense.ExpenseVoucher
		var status string
		if err := rows.Scan(&v.ID, &v.VoucherNumber, &v.EmployeeID, &v.Amount, &v.Description, &status, &v.CreatedAt, &v.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan expense voucher: %w", err)
		}
		v.Status = expense.VoucherStatus(status)
		vouchers = append(vouchers, v)
	}

	return vouchers, rows.Err()
}

func (r *voucherRepository) UpdateStatus(ctx context.Context, id string, status expense.VoucherStatus) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `UPDATE expense_vouchers SET status = $2, updated_at = NOW() WHERE id = $1`, id, string(status))
	if err != nil {
		return fmt.Errorf("failed to update expense voucher status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return expense.ErrVoucherNotFound
	}

	return nil
}
