package remittance

import (
	"time"

	"github.com/shopspring/decimal"
)

// RemittanceReceipt records customer funds taken into the trust account.
// Recording a receipt posts its journal entry in the same transaction.
type RemittanceReceipt struct {
	ID             string
	ReceiptNumber  string
	CustomerName   string
	ReceiptDate    time.Time
	Amount         decimal.Decimal
	Fee            decimal.Decimal
	Currency       string
	JournalEntryID string
	CreatedBy      string
	CreatedAt      time.Time
}

// ClosingStatus enum
type ClosingStatus string

const (
	ClosingStatusOpen   ClosingStatus = "open"
	ClosingStatusClosed ClosingStatus = "closed"
)

// DailyClosing summarises one business day's receipts. A day closes once.
// JournalEntryID is nil when the day had no fees and no sweep entry was
// posted.
type DailyClosing struct {
	ID             string
	ClosingDate    time.Time
	ReceiptCount   int
	TotalAmount    decimal.Decimal
	TotalFees      decimal.Decimal
	JournalEntryID *string
	Status         ClosingStatus
	ClosedBy       *string
	ClosedAt       *time.Time
	CreatedAt      time.Time
}
