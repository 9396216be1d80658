package remittance

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type ReceiptSummary struct {
	Count       int
	TotalAmount decimal.Decimal
	TotalFees   decimal.Decimal
}

type RemittanceRepository interface {
	CreateReceipt(ctx context.Context, receipt RemittanceReceipt) (RemittanceReceipt, error)
	GetReceiptByID(ctx context.Context, id string) (RemittanceReceipt, error)
	ListReceiptsByDate(ctx context.Context, date time.Time) ([]RemittanceReceipt, error)
	SummarizeReceiptsByDate(ctx context.Context, date time.Time) (ReceiptSummary, error)
	// MaxReceiptSequence returns the greatest per-date receipt sequence for
	// the yyyyMMdd prefix of date, 0 when none exist.
	MaxReceiptSequence(ctx context.Context, date time.Time) (int, error)

	CreateClosing(ctx context.Context, closing DailyClosing) (DailyClosing, error)
	GetClosingByDate(ctx context.Context, date time.Time) (DailyClosing, error)
	ListClosings(ctx context.Context, from, to time.Time) ([]DailyClosing, error)
}
