package expense

import (
	"time"

	"github.com/shopspring/decimal"
)

// VoucherStatus enum
type VoucherStatus string

const (
	VoucherStatusPending  VoucherStatus = "pending"
	VoucherStatusApproved VoucherStatus = "approved"
	VoucherStatusRejected VoucherStatus = "rejected"
)

// ExpenseVoucher carries its own status, kept in step with the approval
// record that references it.
type ExpenseVoucher struct {
	ID            string
	VoucherNumber string
	EmployeeID    string
	Amount        decimal.Decimal
	Description   string
	Status        VoucherStatus
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
