package ledger

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func amount(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestBuildEntry_Balanced(t *testing.T) {
	date := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)

	entry, err := BuildEntry("Office rent", date, "user-1", EntryStatusDraft, []EntryLineInput{
		{AccountID: "acc-expense", Debit: amount("1200")},
		{AccountID: "acc-bank", Credit: amount("1200")},
	})
	require.NoError(t, err)

	assert.Equal(t, EntryStatusDraft, entry.Status)
	assert.True(t, entry.TotalDebit.Equal(amount("1200")))
	assert.True(t, entry.TotalCredit.Equal(amount("1200")))
	require.Len(t, entry.Lines, 2)
	assert.Equal(t, 1, entry.Lines[0].LineNo)
	assert.Equal(t, 2, entry.Lines[1].LineNo)
}

func TestBuildEntry_TooFewLines(t *testing.T) {
	_, err := BuildEntry("one-sided", time.Now(), "user-1", EntryStatusDraft, []EntryLineInput{
		{AccountID: "acc-1", Debit: amount("100")},
	})
	assert.ErrorIs(t, err, ErrTooFewLines)
}

func TestBuildEntry_LineMissingAccount(t *testing.T) {
	_, err := BuildEntry("no account", time.Now(), "user-1", EntryStatusDraft, []EntryLineInput{
		{AccountID: "", Debit: amount("100")},
		{AccountID: "acc-2", Credit: amount("100")},
	})
	assert.ErrorIs(t, err, ErrLineMissingAccount)
}

func TestBuildEntry_LineWithBothSides(t *testing.T) {
	_, err := BuildEntry("both sides", time.Now(), "user-1", EntryStatusDraft, []EntryLineInput{
		{AccountID: "acc-1", Debit: amount("100"), Credit: amount("100")},
		{AccountID: "acc-2", Credit: amount("100")},
	})
	assert.ErrorIs(t, err, ErrInvalidLineAmounts)
}

func TestBuildEntry_LineWithNoSide(t *testing.T) {
	_, err := BuildEntry("empty line", time.Now(), "user-1", EntryStatusDraft, []EntryLineInput{
		{AccountID: "acc-1"},
		{AccountID: "acc-2", Credit: amount("100")},
	})
	assert.ErrorIs(t, err, ErrInvalidLineAmounts)
}

func TestBuildEntry_Unbalanced(t *testing.T) {
	_, err := BuildEntry("off by ten", time.Now(), "user-1", EntryStatusDraft, []EntryLineInput{
		{AccountID: "acc-1", Debit: amount("110")},
		{AccountID: "acc-2", Credit: amount("100")},
	})
	assert.True(t, errors.Is(err, ErrUnbalancedEntry))
}

func TestBuildEntry_WithinRoundingTolerance(t *testing.T) {
	// Drift of exactly 0.01 is accepted.
	entry, err := BuildEntry("rounding drift", time.Now(), "user-1", EntryStatusPosted, []EntryLineInput{
		{AccountID: "acc-1", Debit: amount("100.01")},
		{AccountID: "acc-2", Credit: amount("100.00")},
	})
	require.NoError(t, err)
	assert.Equal(t, EntryStatusPosted, entry.Status)
}

func TestBuildEntry_BeyondRoundingTolerance(t *testing.T) {
	_, err := BuildEntry("too much drift", time.Now(), "user-1", EntryStatusDraft, []EntryLineInput{
		{AccountID: "acc-1", Debit: amount("100.02")},
		{AccountID: "acc-2", Credit: amount("100.00")},
	})
	assert.ErrorIs(t, err, ErrUnbalancedEntry)
}

func TestEntryNumber(t *testing.T) {
	date := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, "20260831-0001", EntryNumber(date, 1))
	assert.Equal(t, "20260831-0042", EntryNumber(date, 42))
	assert.Equal(t, "20260831-10000", EntryNumber(date, 10000))
}
