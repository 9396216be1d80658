package remittance

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/remitdesk/backoffice-go/internal/domain/ledger"
	"github.com/remitdesk/backoffice-go/internal/domain/remittance"
	"github.com/remitdesk/backoffice-go/internal/pkg/database"
	"github.com/remitdesk/backoffice-go/internal/pkg/validator"
	ledgersvc "github.com/remitdesk/backoffice-go/internal/service/ledger"
)

// PostingAccounts names the chart-of-accounts codes the receipt and closing
// postings touch.
type PostingAccounts struct {
	TrustBank        string
	CustomerDeposits string
	FeeRevenue       string
	RetainedEarnings string
}

func DefaultPostingAccounts() PostingAccounts {
	return PostingAccounts{
		TrustBank:        "1110",
		CustomerDeposits: "2100",
		FeeRevenue:       "4100",
		RetainedEarnings: "3200",
	}
}

const postRetries = 3

type Service struct {
	tx             database.TxManager
	remittanceRepo remittance.RemittanceRepository
	accountRepo    ledger.AccountRepository
	ledgerService  *ledgersvc.Service
	accounts       PostingAccounts
}

func NewService(
	tx database.TxManager,
	remittanceRepo remittance.RemittanceRepository,
	accountRepo ledger.AccountRepository,
	ledgerService *ledgersvc.Service,
	accounts PostingAccounts,
) *Service {
	return &Service{
		tx:             tx,
		remittanceRepo: remittanceRepo,
		accountRepo:    accountRepo,
		ledgerService:  ledgerService,
		accounts:       accounts,
	}
}

// RecordReceipt stores a customer receipt and posts its journal entry in one
// transaction: debit trust bank (amount + fee), credit customer deposits
// (amount), credit fee revenue (fee). The transaction retries on an entry
// number collision.
func (s *Service) RecordReceipt(ctx context.Context, req remittance.RecordReceiptRequest, actorID string) (remittance.ReceiptResponse, error) {
	if err := req.Validate(); err != nil {
		return remittance.ReceiptResponse{}, err
	}
	receiptDate, _ := validator.IsValidDate(req.ReceiptDate)

	closing, err := s.remittanceRepo.GetClosingByDate(ctx, receiptDate)
	if err == nil && closing.Status == remittance.ClosingStatusClosed {
		return remittance.ReceiptResponse{}, remittance.ErrReceiptAfterClose
	}
	if err != nil && !errors.Is(err, remittance.ErrClosingNotFound) {
		return remittance.ReceiptResponse{}, err
	}

	trust, err := s.accountRepo.GetByCode(ctx, s.accounts.TrustBank)
	if err != nil {
		return remittance.ReceiptResponse{}, fmt.Errorf("failed to resolve trust bank account: %w", err)
	}
	deposits, err := s.accountRepo.GetByCode(ctx, s.accounts.CustomerDeposits)
	if err != nil {
		return remittance.ReceiptResponse{}, fmt.Errorf("failed to resolve customer deposits account: %w", err)
	}
	feeRevenue, err := s.accountRepo.GetByCode(ctx, s.accounts.FeeRevenue)
	if err != nil {
		return remittance.ReceiptResponse{}, fmt.Errorf("failed to resolve fee revenue account: %w", err)
	}

	var receipt remittance.RemittanceReceipt

	run := func(txCtx context.Context) error {
		lines := []ledger.EntryLineInput{
			{AccountID: trust.ID, Debit: req.Amount.Add(req.Fee)},
			{AccountID: deposits.ID, Credit: req.Amount},
		}
		if req.Fee.IsPositive() {
			lines = append(lines, ledger.EntryLineInput{AccountID: feeRevenue.ID, Credit: req.Fee})
		}

		entry, err := s.ledgerService.WritePostedEntry(txCtx,
			fmt.Sprintf("Remittance receipt from %s", req.CustomerName),
			receiptDate, actorID, lines)
		if err != nil {
			return err
		}

		seq, err := s.remittanceRepo.MaxReceiptSequence(txCtx, receiptDate)
		if err != nil {
			return err
		}

		receipt, err = s.remittanceRepo.CreateReceipt(txCtx, remittance.RemittanceReceipt{
			ReceiptNumber:  receiptNumber(receiptDate, seq+1),
			CustomerName:   req.CustomerName,
			ReceiptDate:    receiptDate,
			Amount:         req.Amount,
			Fee:            req.Fee,
			Currency:       req.Currency,
			JournalEntryID: entry.ID,
			CreatedBy:      actorID,
		})
		return err
	}

	for attempt := 0; attempt < postRetries; attempt++ {
		err = s.tx.WithinTransaction(ctx, run)
		if errors.Is(err, ledger.ErrEntryNumberExists) {
			continue
		}
		break
	}
	if err != nil {
		return remittance.ReceiptResponse{}, err
	}

	return toReceiptResponse(receipt), nil
}

func (s *Service) ListReceipts(ctx context.Context, dateStr string) ([]remittance.ReceiptResponse, error) {
	date, ok := validator.IsValidDate(dateStr)
	if !ok {
		return nil, validator.ValidationErrors{{Field: "date", Message: "must be a valid date (YYYY-MM-DD)"}}
	}

	receipts, err := s.remittanceRepo.ListReceiptsByDate(ctx, date)
	if err != nil {
		return nil, err
	}

	responses := make([]remittance.ReceiptResponse, 0, len(receipts))
	for _, rec := range receipts {
		responses = append(responses, toReceiptResponse(rec))
	}
	return responses, nil
}

// CloseDay aggregates a date's receipts into a daily closing and posts the
// fee-revenue sweep. A date closes once; a day with no receipts refuses to
// close.
func (s *Service) CloseDay(ctx context.Context, req remittance.CloseDayRequest, actorID string) (remittance.ClosingResponse, error) {
	if err := req.Validate(); err != nil {
		return remittance.ClosingResponse{}, err
	}
	closingDate, _ := validator.IsValidDate(req.ClosingDate)

	if _, err := s.remittanceRepo.GetClosingByDate(ctx, closingDate); err == nil {
		return remittance.ClosingResponse{}, remittance.ErrDayAlreadyClosed
	} else if !errors.Is(err, remittance.ErrClosingNotFound) {
		return remittance.ClosingResponse{}, err
	}

	summary, err := s.remittanceRepo.SummarizeReceiptsByDate(ctx, closingDate)
	if err != nil {
		return remittance.ClosingResponse{}, err
	}
	if summary.Count == 0 {
		return remittance.ClosingResponse{}, remittance.ErrNothingToClose
	}

	feeRevenue, err := s.accountRepo.GetByCode(ctx, s.accounts.FeeRevenue)
	if err != nil {
		return remittance.ClosingResponse{}, fmt.Errorf("failed to resolve fee revenue account: %w", err)
	}
	retained, err := s.accountRepo.GetByCode(ctx, s.accounts.RetainedEarnings)
	if err != nil {
		return remittance.ClosingResponse{}, fmt.Errorf("failed to resolve retained earnings account: %w", err)
	}

	var closing remittance.DailyClosing

	run := func(txCtx context.Context) error {
		// No fees means no sweep entry, so the closing carries no entry id.
		var entryID *string
		if summary.TotalFees.IsPositive() {
			entry, err := s.ledgerService.WritePostedEntry(txCtx,
				fmt.Sprintf("Daily closing %s", req.ClosingDate),
				closingDate, actorID,
				[]ledger.EntryLineInput{
					{AccountID: feeRevenue.ID, Debit: summary.TotalFees},
					{AccountID: retained.ID, Credit: summary.TotalFees},
				})
			if err != nil {
				return err
			}
			entryID = &entry.ID
		}

		now := time.Now()
		var err error
		closing, err = s.remittanceRepo.CreateClosing(txCtx, remittance.DailyClosing{
			ClosingDate:    closingDate,
			ReceiptCount:   summary.Count,
			TotalAmount:    summary.TotalAmount,
			TotalFees:      summary.TotalFees,
			JournalEntryID: entryID,
			Status:         remittance.ClosingStatusClosed,
			ClosedBy:       &actorID,
			ClosedAt:       &now,
		})
		return err
	}

	for attempt := 0; attempt < postRetries; attempt++ {
		err = s.tx.WithinTransaction(ctx, run)
		if errors.Is(err, ledger.ErrEntryNumberExists) {
			continue
		}
		break
	}
	if err != nil {
		return remittance.ClosingResponse{}, err
	}

	return toClosingResponse(closing), nil
}

func (s *Service) ListClosings(ctx context.Context, fromStr, toStr string) ([]remittance.ClosingResponse, error) {
	from, okFrom := validator.IsValidDate(fromStr)
	to, okTo := validator.IsValidDate(toStr)
	if !okFrom || !okTo || to.Before(from) {
		return nil, validator.ValidationErrors{
			{Field: "date_range", Message: "from and to must be valid dates with from <= to"},
		}
	}

	closings, err := s.remittanceRepo.ListClosings(ctx, from, to)
	if err != nil {
		return nil, err
	}

	responses := make([]remittance.ClosingResponse, 0, len(closings))
	for _, c := range closings {
		responses = append(responses, toClosingResponse(c))
	}
	return responses, nil
}

// receiptNumber formats RCV-yyyyMMdd-NNN for a per-date sequence.
func receiptNumber(date time.Time, seq int) string {
	return fmt.Sprintf("RCV-%s-%03d", date.Format("20060102"), seq)
}

func toReceiptResponse(r remittance.RemittanceReceipt) remittance.ReceiptResponse {
	return remittance.ReceiptResponse{
		ID:             r.ID,
		ReceiptNumber:  r.ReceiptNumber,
		CustomerName:   r.CustomerName,
		ReceiptDate:    r.ReceiptDate.Format("2006-01-02"),
		Amount:         r.Amount,
		Fee:            r.Fee,
		Currency:       r.Currency,
		JournalEntryID: r.JournalEntryID,
	}
}

func toClosingResponse(c remittance.DailyClosing) remittance.ClosingResponse {
	return remittance.ClosingResponse{
		ID:             c.ID,
		ClosingDate:    c.ClosingDate.Format("2006-01-02"),
		ReceiptCount:   c.ReceiptCount,
		TotalAmount:    c.TotalAmount,
		TotalFees:      c.TotalFees,
		JournalEntryID: c.JournalEntryID,
		Status:         string(c.Status),
	}
}
