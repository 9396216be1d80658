package remittance

import (
	"context"
	"testing"
	"time"

	"github.com/remitdesk/backoffice-go/internal/domain/ledger"
	"github.com/remitdesk/backoffice-go/internal/domain/remittance"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// passthroughTx runs the function directly, standing in for a live
// transaction.
type passthroughTx struct{}

func (passthroughTx) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeRemittanceRepo struct {
	closings map[string]remittance.DailyClosing
	summary  remittance.ReceiptSummary
}

func dateKey(t time.Time) string {
	return t.Format("2006-01-02")
}

func (f *fakeRemittanceRepo) CreateReceipt(ctx context.Context, receipt remittance.RemittanceReceipt) (remittance.RemittanceReceipt, error) {
	return receipt, nil
}

func (f *fakeRemittanceRepo) GetReceiptByID(ctx context.Context, id string) (remittance.RemittanceReceipt, error) {
	return remittance.RemittanceReceipt{}, remittance.ErrReceiptNotFound
}

func (f *fakeRemittanceRepo) ListReceiptsByDate(ctx context.Context, date time.Time) ([]remittance.RemittanceReceipt, error) {
	return nil, nil
}

func (f *fakeRemittanceRepo) SummarizeReceiptsByDate(ctx context.Context, date time.Time) (remittance.ReceiptSummary, error) {
	return f.summary, nil
}

func (f *fakeRemittanceRepo) MaxReceiptSequence(ctx context.Context, date time.Time) (int, error) {
	return 0, nil
}

func (f *fakeRemittanceRepo) CreateClosing(ctx context.Context, closing remittance.DailyClosing) (remittance.DailyClosing, error) {
	if f.closings == nil {
		f.closings = make(map[string]remittance.DailyClosing)
	}
	f.closings[dateKey(closing.ClosingDate)] = closing
	return closing, nil
}

func (f *fakeRemittanceRepo) GetClosingByDate(ctx context.Context, date time.Time) (remittance.DailyClosing, error) {
	c, ok := f.closings[dateKey(date)]
	if !ok {
		return remittance.DailyClosing{}, remittance.ErrClosingNotFound
	}
	return c, nil
}

func (f *fakeRemittanceRepo) ListClosings(ctx context.Context, from, to time.Time) ([]remittance.DailyClosing, error) {
	return nil, nil
}

type fakeAccountRepo struct{}

func (f *fakeAccountRepo) Create(ctx context.Context, acc ledger.Account) (ledger.Account, error) {
	return acc, nil
}

func (f *fakeAccountRepo) GetByID(ctx context.Context, id string) (ledger.Account, error) {
	return ledger.Account{}, ledger.ErrAccountNotFound
}

func (f *fakeAccountRepo) GetByCode(ctx context.Context, code string) (ledger.Account, error) {
	return ledger.Account{ID: "acc-" + code, Code: code, IsActive: true}, nil
}

func (f *fakeAccountRepo) List(ctx context.Context, activeOnly bool) ([]ledger.Account, error) {
	return nil, nil
}

func (f *fakeAccountRepo) Update(ctx context.Context, acc ledger.Account) error {
	return nil
}

func (f *fakeAccountRepo) Deactivate(ctx context.Context, id string) error {
	return nil
}

func (f *fakeAccountRepo) HasJournalLines(ctx context.Context, id string) (bool, error) {
	return false, nil
}

func TestRecordReceipt_ClosedDateRefused(t *testing.T) {
	repo := &fakeRemittanceRepo{
		closings: map[string]remittance.DailyClosing{
			"2026-08-31": {ClosingDate: time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC), Status: remittance.ClosingStatusClosed},
		},
	}
	svc := NewService(nil, repo, &fakeAccountRepo{}, nil, DefaultPostingAccounts())

	_, err := svc.RecordReceipt(context.Background(), remittance.RecordReceiptRequest{
		CustomerName: "Nguyen Van A",
		ReceiptDate:  "2026-08-31",
		Amount:       d("10000"),
		Fee:          d("150"),
		Currency:     "TWD",
	}, "user-1")
	assert.ErrorIs(t, err, remittance.ErrReceiptAfterClose)
}

func TestCloseDay_AlreadyClosed(t *testing.T) {
	repo := &fakeRemittanceRepo{
		closings: map[string]remittance.DailyClosing{
			"2026-08-31": {ClosingDate: time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC), Status: remittance.ClosingStatusClosed},
		},
	}
	svc := NewService(nil, repo, &fakeAccountRepo{}, nil, DefaultPostingAccounts())

	_, err := svc.CloseDay(context.Background(), remittance.CloseDayRequest{ClosingDate: "2026-08-31"}, "user-1")
	assert.ErrorIs(t, err, remittance.ErrDayAlreadyClosed)
}

func TestCloseDay_NothingToClose(t *testing.T) {
	repo := &fakeRemittanceRepo{}
	svc := NewService(nil, repo, &fakeAccountRepo{}, nil, DefaultPostingAccounts())

	_, err := svc.CloseDay(context.Background(), remittance.CloseDayRequest{ClosingDate: "2026-08-31"}, "user-1")
	assert.ErrorIs(t, err, remittance.ErrNothingToClose)
}

func TestCloseDay_ZeroFeesLeavesNoEntry(t *testing.T) {
	repo := &fakeRemittanceRepo{
		summary: remittance.ReceiptSummary{
			Count:       2,
			TotalAmount: d("20000"),
			TotalFees:   decimal.Zero,
		},
	}
	svc := NewService(passthroughTx{}, repo, &fakeAccountRepo{}, nil, DefaultPostingAccounts())

	resp, err := svc.CloseDay(context.Background(), remittance.CloseDayRequest{ClosingDate: "2026-08-31"}, "user-1")
	require.NoError(t, err)

	// A fee-free day closes without a sweep entry, so no entry id is stored.
	assert.Nil(t, resp.JournalEntryID)
	assert.Equal(t, string(remittance.ClosingStatusClosed), resp.Status)
	assert.Equal(t, 2, resp.ReceiptCount)

	stored := repo.closings["2026-08-31"]
	assert.Nil(t, stored.JournalEntryID)
}

func TestReceiptNumber(t *testing.T) {
	date := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, "RCV-20260831-001", receiptNumber(date, 1))
	assert.Equal(t, "RCV-20260831-012", receiptNumber(date, 12))
	assert.Equal(t, "RCV-20260831-1000", receiptNumber(date, 1000))
}
