package ledger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/remitdesk/backoffice-go/internal/domain/ledger"
	"github.com/remitdesk/backoffice-go/internal/pkg/database"
	"github.com/remitdesk/backoffice-go/internal/pkg/validator"
)

// entryNumberRetries bounds the recompute-and-retry loop on an entry number
// collision. Each attempt runs in its own transaction.
const entryNumberRetries = 3

type Service struct {
	tx          database.TxManager
	accountRepo ledger.AccountRepository
	journalRepo ledger.JournalRepository
}

func NewService(tx database.TxManager, accountRepo ledger.AccountRepository, journalRepo ledger.JournalRepository) *Service {
	return &Service{
		tx:          tx,
		accountRepo: accountRepo,
		journalRepo: journalRepo,
	}
}

// ========== ACCOUNTS ==========

func (s *Service) CreateAccount(ctx context.Context, req ledger.CreateAccountRequest) (ledger.AccountResponse, error) {
	if err := req.Validate(); err != nil {
		return ledger.AccountResponse{}, err
	}

	account := ledger.Account{
		Code:     req.Code,
		Name:     req.Name,
		Type:     ledger.AccountType(req.Type),
		ParentID: req.ParentID,
		Level:    1,
	}

	if req.ParentID != nil {
		parent, err := s.accountRepo.GetByID(ctx, *req.ParentID)
		if err != nil {
			return ledger.AccountResponse{}, fmt.Errorf("failed to resolve parent account: %w", err)
		}
		account.Level = parent.Level + 1
	}

	created, err := s.accountRepo.Create(ctx, account)
	if err != nil {
		return ledger.AccountResponse{}, err
	}

	return toAccountResponse(created), nil
}

func (s *Service) GetAccount(ctx context.Context, id string) (ledger.AccountResponse, error) {
	account, err := s.accountRepo.GetByID(ctx, id)
	if err != nil {
		return ledger.AccountResponse{}, err
	}
	return toAccountResponse(account), nil
}

func (s *Service) ListAccounts(ctx context.Context, activeOnly bool) ([]ledger.AccountResponse, error) {
	accounts, err := s.accountRepo.List(ctx, activeOnly)
	if err != nil {
		return nil, err
	}

	responses := make([]ledger.AccountResponse, 0, len(accounts))
	for _, a := range accounts {
		responses = append(responses, toAccountResponse(a))
	}
	return responses, nil
}

func (s *Service) UpdateAccount(ctx context.Context, req ledger.UpdateAccountRequest) (ledger.AccountResponse, error) {
	account, err := s.accountRepo.GetByID(ctx, req.ID)
	if err != nil {
		return ledger.AccountResponse{}, err
	}

	if req.Name != nil {
		if validator.IsEmpty(*req.Name) {
			return ledger.AccountResponse{}, validator.ValidationErrors{
				{Field: "name", Message: "must not be blank"},
			}
		}
		account.Name = *req.Name
	}
	if req.IsActive != nil {
		account.IsActive = *req.IsActive
	}

	if err := s.accountRepo.Update(ctx, account); err != nil {
		return ledger.AccountResponse{}, err
	}

	return toAccountResponse(account), nil
}

// DeactivateAccount soft-disables an account. Accounts referenced by journal
// lines are never hard-deleted; deactivation is the only removal.
func (s *Service) DeactivateAccount(ctx context.Context, id string) error {
	return s.accountRepo.Deactivate(ctx, id)
}

func toAccountResponse(a ledger.Account) ledger.AccountResponse {
	return ledger.AccountResponse{
		ID:       a.ID,
		Code:     a.Code,
		Name:     a.Name,
		Type:     string(a.Type),
		ParentID: a.ParentID,
		Level:    a.Level,
		IsActive: a.IsActive,
	}
}

// ========== JOURNAL ENTRIES ==========

// CreateEntry validates and persists a manual entry in draft status. The
// entry number is assigned inside the transaction; a collision with a
// concurrent writer recomputes the sequence and retries.
func (s *Service) CreateEntry(ctx context.Context, req ledger.PostEntryRequest, createdBy string) (ledger.EntryResponse, error) {
	if err := req.Validate(); err != nil {
		return ledger.EntryResponse{}, err
	}
	entryDate, _ := validator.IsValidDate(req.EntryDate)

	entry, err := ledger.BuildEntry(req.Description, entryDate, createdBy, ledger.EntryStatusDraft, req.Lines)
	if err != nil {
		return ledger.EntryResponse{}, err
	}

	created, err := s.persistNumbered(ctx, entry)
	if err != nil {
		return ledger.EntryResponse{}, err
	}

	return toEntryResponse(created), nil
}

// WritePostedEntry persists an automated entry directly in posted status,
// within the caller's context. When the context carries a transaction the
// entry joins it, so a receipt or batch and its entry commit atomically.
// Single attempt; the caller retries its whole transaction on
// ErrEntryNumberExists.
func (s *Service) WritePostedEntry(ctx context.Context, description string, date time.Time, createdBy string, lines []ledger.EntryLineInput) (ledger.JournalEntry, error) {
	entry, err := ledger.BuildEntry(description, date, createdBy, ledger.EntryStatusPosted, lines)
	if err != nil {
		return ledger.JournalEntry{}, err
	}
	now := time.Now()
	entry.PostedAt = &now
	entry.PostedBy = &createdBy

	max, err := s.journalRepo.MaxSequenceForDate(ctx, date)
	if err != nil {
		return ledger.JournalEntry{}, err
	}
	entry.EntryNumber = ledger.EntryNumber(date, max+1)

	return s.journalRepo.CreateEntry(ctx, entry)
}

func (s *Service) persistNumbered(ctx context.Context, entry ledger.JournalEntry) (ledger.JournalEntry, error) {
	var created ledger.JournalEntry

	for attempt := 0; attempt < entryNumberRetries; attempt++ {
		err := s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
			max, err := s.journalRepo.MaxSequenceForDate(txCtx, entry.EntryDate)
			if err != nil {
				return err
			}
			entry.EntryNumber = ledger.EntryNumber(entry.EntryDate, max+1)

			created, err = s.journalRepo.CreateEntry(txCtx, entry)
			return err
		})
		if errors.Is(err, ledger.ErrEntryNumberExists) {
			continue
		}
		if err != nil {
			return ledger.JournalEntry{}, err
		}
		return created, nil
	}

	return ledger.JournalEntry{}, ledger.ErrEntryNumberExists
}

func (s *Service) GetEntry(ctx context.Context, id string) (ledger.EntryResponse, error) {
	entry, err := s.journalRepo.GetEntryByID(ctx, id)
	if err != nil {
		return ledger.EntryResponse{}, err
	}
	return toEntryResponse(entry), nil
}

func (s *Service) ListEntries(ctx context.Context, filter ledger.EntryFilter) (ledger.ListEntriesResponse, error) {
	entries, total, err := s.journalRepo.ListEntries(ctx, filter)
	if err != nil {
		return ledger.ListEntriesResponse{}, err
	}

	responses := make([]ledger.EntryResponse, 0, len(entries))
	for _, e := range entries {
		responses = append(responses, toEntryResponse(e))
	}

	page := filter.Page
	if page <= 0 {
		page = 1
	}
	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}

	return ledger.ListEntriesResponse{
		Data:       responses,
		TotalCount: total,
		Page:       page,
		Limit:      limit,
	}, nil
}

// PostEntry moves a draft entry to posted. An unknown id is not-found, not a
// state conflict.
func (s *Service) PostEntry(ctx context.Context, id, postedBy string) (ledger.EntryResponse, error) {
	entry, err := s.journalRepo.GetEntryByID(ctx, id)
	if err != nil {
		return ledger.EntryResponse{}, err
	}
	if entry.Status != ledger.EntryStatusDraft {
		return ledger.EntryResponse{}, ledger.ErrEntryNotDraft
	}

	if err := s.journalRepo.MarkPosted(ctx, id, postedBy, time.Now()); err != nil {
		return ledger.EntryResponse{}, err
	}
	return s.GetEntry(ctx, id)
}

// VoidEntry moves any non-void entry to void. Void is terminal.
func (s *Service) VoidEntry(ctx context.Context, req ledger.VoidEntryRequest, voidedBy string) (ledger.EntryResponse, error) {
	if err := req.Validate(); err != nil {
		return ledger.EntryResponse{}, err
	}

	entry, err := s.journalRepo.GetEntryByID(ctx, req.ID)
	if err != nil {
		return ledger.EntryResponse{}, err
	}
	if entry.Status == ledger.EntryStatusVoid {
		return ledger.EntryResponse{}, ledger.ErrEntryAlreadyVoid
	}

	if err := s.journalRepo.MarkVoid(ctx, req.ID, voidedBy, time.Now(), req.Reason); err != nil {
		return ledger.EntryResponse{}, err
	}
	return s.GetEntry(ctx, req.ID)
}

func toEntryResponse(e ledger.JournalEntry) ledger.EntryResponse {
	lines := make([]ledger.EntryLineResponse, 0, len(e.Lines))
	for _, l := range e.Lines {
		line := ledger.EntryLineResponse{
			ID:        l.ID,
			AccountID: l.AccountID,
			LineNo:    l.LineNo,
			Debit:     l.Debit,
			Credit:    l.Credit,
			Memo:      l.Memo,
		}
		if l.AccountCode != nil {
			line.AccountCode = *l.AccountCode
		}
		if l.AccountName != nil {
			line.AccountName = *l.AccountName
		}
		lines = append(lines, line)
	}

	return ledger.EntryResponse{
		ID:          e.ID,
		EntryNumber: e.EntryNumber,
		EntryDate:   e.EntryDate.Format("2006-01-02"),
		Description: e.Description,
		Status:      string(e.Status),
		TotalDebit:  e.TotalDebit,
		TotalCredit: e.TotalCredit,
		CreatedBy:   e.CreatedBy,
		PostedAt:    formatTimePtr(e.PostedAt),
		PostedBy:    e.PostedBy,
		VoidedAt:    formatTimePtr(e.VoidedAt),
		VoidedBy:    e.VoidedBy,
		VoidReason:  e.VoidReason,
		Lines:       lines,
	}
}

func formatTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}
