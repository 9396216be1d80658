package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/remitdesk/backoffice-go/internal/domain/ledger"
	"github.com/remitdesk/backoffice-go/internal/pkg/database"
)

type accountRepository struct {
	db *database.DB
}

func NewAccountRepository(db *database.DB) ledger.AccountRepository {
	return &accountRepository{db: db}
}

func (r *accountRepository) Create(ctx context.Context, account ledger.Account) (ledger.Account, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO accounts (id, code, name, type, parent_id, level, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, code, name, type, parent_id, level, is_active, created_at, updated_at
	`

	id := uuid.NewString()
	var a ledger.Account
	err := q.QueryRow(ctx, query,
		id, account.Code, account.Name, string(account.Type), account.ParentID, account.Level, true,
	).Scan(&a.ID, &a.Code, &a.Name, &a.Type, &a.ParentID, &a.Level, &a.IsActive, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ledger.Account{}, ledger.ErrAccountCodeExists
		}
		return ledger.Account{}, fmt.Errorf("failed to create account: %w", err)
	}

	return a, nil
}

func (r *accountRepository) GetByID(ctx context.Context, id string) (ledger.Account, error) {
	return r.getBy(ctx, "id", id)
}

func (r *accountRepository) GetByCode(ctx context.Context, code string) (ledger.Account, error) {
	return r.getBy(ctx, "code", code)
}

func (r *accountRepository) getBy(ctx context.Context, column, value string) (ledger.Account, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT id, code, name, type, parent_id, level, is_active, created_at, updated_at
		FROM accounts
		WHERE %s = $1
	`, column)

	var a ledger.Account
	err := q.QueryRow(ctx, query, value).Scan(
		&a.ID, &a.Code, &a.Name, &a.Type, &a.ParentID, &a.Level, &a.IsActive, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ledger.Account{}, ledger.ErrAccountNotFound
		}
		return ledger.Account{}, fmt.Errorf("failed to get account: %w", err)
	}

	return a, nil
}

func (r *accountRepository) List(ctx context.Context, activeOnly bool) ([]ledger.Account, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, code, name, type, parent_id, level, is_active, created_at, updated_at
		FROM accounts
	`
	if activeOnly {
		query += ` WHERE is_active = true`
	}
	query += ` ORDER BY code`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	defer rows.Close()

	var accounts []ledger.Account
	for rows.Next() {
		var a ledger.Account
		if err := rows.Scan(&a.ID, &a.Code, &a.Name, &a.Type, &a.ParentID, &a.Level, &a.IsActive, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		accounts = append(accounts, a)
	}

	return accounts, rows.Err()
}

func (r *accountRepository) Update(ctx context.Context, account ledger.Account) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE accounts
		SET name = $2, is_active = $3, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query, account.ID, account.Name, account.IsActive)
	if err != nil {
		return fmt.Errorf("failed to update account: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ledger.ErrAccountNotFound
	}

	return nil
}

func (r *accountRepository) Deactivate(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `UPDATE accounts SET is_active = false, updated_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to deactivate account: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ledger.ErrAccountNotFound
	}

	return nil
}

func (r *accountRepository) HasJournalLines(ctx context.Context, id string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	var exists bool
	err := q.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM journal_entry_lines WHERE account_id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check account usage: %w", err)
	}

	return exists, nil
}
