package expense

import "context"

type VoucherRepository interface {
	Create(ctx context.Context, v ExpenseVoucher) (ExpenseVoucher, error)
	GetByID(ctx context.Context, id string) (ExpenseVoucher, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]ExpenseVoucher, error)
	UpdateStatus(ctx context.Context, id string, status VoucherStatus) error
}
