package ledger

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// AccountType enum
type AccountType string

const (
	AccountTypeAsset     AccountType = "asset"
	AccountTypeLiability AccountType = "liability"
	AccountTypeEquity    AccountType = "equity"
	AccountTypeRevenue   AccountType = "revenue"
	AccountTypeExpense   AccountType = "expense"
)

func (t AccountType) Valid() bool {
	switch t {
	case AccountTypeAsset, AccountTypeLiability, AccountTypeEquity, AccountTypeRevenue, AccountTypeExpense:
		return true
	}
	return false
}

// Account is a node in the chart of accounts. Non-root accounts reference a
// parent whose level is exactly one less than their own.
type Account struct {
	ID        string
	Code      string
	Name      string
	Type      AccountType
	ParentID  *string
	Level     int
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// EntryStatus enum
type EntryStatus string

const (
	EntryStatusDraft  EntryStatus = "draft"
	EntryStatusPosted EntryStatus = "posted"
	EntryStatusVoid   EntryStatus = "void"
)

// JournalEntry is a balanced set of debit/credit postings. TotalDebit equals
// TotalCredit for every entry accepted by BuildEntry; the store never sees an
// unbalanced one.
type JournalEntry struct {
	ID          string
	EntryNumber string
	EntryDate   time.Time
	Description string
	Status      EntryStatus
	TotalDebit  decimal.Decimal
	TotalCredit decimal.Decimal
	CreatedBy   string
	PostedAt    *time.Time
	PostedBy    *string
	VoidedAt    *time.Time
	VoidedBy    *string
	VoidReason  *string
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Lines []JournalEntryLine
}

type JournalEntryLine struct {
	ID             string
	JournalEntryID string
	AccountID      string
	LineNo         int
	Debit          decimal.Decimal
	Credit         decimal.Decimal
	Memo           *string

	// Joined fields
	AccountCode *string
	AccountName *string
}

// balanceEpsilon absorbs rounding drift from upstream float conversions.
var balanceEpsilon = decimal.RequireFromString("0.01")

// BuildEntry validates lines and assembles an unpersisted journal entry.
// Rules: at least two lines, each line carries exactly one positive side, and
// debits equal credits within 0.01.
func BuildEntry(description string, date time.Time, createdBy string, status EntryStatus, lines []EntryLineInput) (JournalEntry, error) {
	if len(lines) < 2 {
		return JournalEntry{}, ErrTooFewLines
	}

	totalDebit := decimal.Zero
	totalCredit := decimal.Zero
	entryLines := make([]JournalEntryLine, 0, len(lines))

	for i, line := range lines {
		if line.AccountID == "" {
			return JournalEntry{}, fmt.Errorf("line %d: %w", i+1, ErrLineMissingAccount)
		}
		debitSet := line.Debit.IsPositive()
		creditSet := line.Credit.IsPositive()
		if line.Debit.IsNegative() || line.Credit.IsNegative() || debitSet == creditSet {
			return JournalEntry{}, fmt.Errorf("line %d: %w", i+1, ErrInvalidLineAmounts)
		}

		totalDebit = totalDebit.Add(line.Debit)
		totalCredit = totalCredit.Add(line.Credit)
		entryLines = append(entryLines, JournalEntryLine{
			AccountID: line.AccountID,
			LineNo:    i + 1,
			Debit:     line.Debit,
			Credit:    line.Credit,
			Memo:      line.Memo,
		})
	}

	if totalDebit.Sub(totalCredit).Abs().GreaterThan(balanceEpsilon) {
		return JournalEntry{}, ErrUnbalancedEntry
	}

	return JournalEntry{
		EntryDate:   date,
		Description: description,
		Status:      status,
		TotalDebit:  totalDebit,
		TotalCredit: totalCredit,
		CreatedBy:   createdBy,
		Lines:       entryLines,
	}, nil
}

// EntryNumber formats the date-prefixed number for a per-date sequence,
// e.g. 20260831-0001.
func EntryNumber(date time.Time, seq int) string {
	return fmt.Sprintf("%s-%04d", date.Format("20060102"), seq)
}
