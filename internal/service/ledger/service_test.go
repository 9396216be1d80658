package ledger

import (
	"context"
	"testing"
	"time"

	"github.com/remitdesk/backoffice-go/internal/domain/ledger"
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

type fakeJournalRepo struct {
	entries map[string]ledger.JournalEntry
	maxSeq  int

	// failCreates makes the next N CreateEntry calls collide, bumping the
	// sequence the way a concurrent writer would.
	failCreates int
	createCalls int
}

func (f *fakeJournalRepo) CreateEntry(ctx context.Context, entry ledger.JournalEntry) (ledger.JournalEntry, error) {
	f.createCalls++
	if f.failCreates > 0 {
		f.failCreates--
		f.maxSeq++
		return ledger.JournalEntry{}, ledger.ErrEntryNumberExists
	}
	if f.entries == nil {
		f.entries = make(map[string]ledger.JournalEntry)
	}
	entry.ID = "entry-" + entry.EntryNumber
	f.entries[entry.ID] = entry
	f.maxSeq++
	return entry, nil
}

func (f *fakeJournalRepo) GetEntryByID(ctx context.Context, id string) (ledger.JournalEntry, error) {
	e, ok := f.entries[id]
	if !ok {
		return ledger.JournalEntry{}, ledger.ErrEntryNotFound
	}
	return e, nil
}

func (f *fakeJournalRepo) ListEntries(ctx context.Context, filter ledger.EntryFilter) ([]ledger.JournalEntry, int64, error) {
	return nil, 0, nil
}

func (f *fakeJournalRepo) MaxSequenceForDate(ctx context.Context, date time.Time) (int, error) {
	return f.maxSeq, nil
}

func (f *fakeJournalRepo) MarkPosted(ctx context.Context, id string, postedBy string, postedAt time.Time) error {
	e, ok := f.entries[id]
	if !ok {
		return ledger.ErrEntryNotFound
	}
	if e.Status != ledger.EntryStatusDraft {
		return ledger.ErrEntryNotDraft
	}
	e.Status = ledger.EntryStatusPosted
	e.PostedBy = &postedBy
	e.PostedAt = &postedAt
	f.entries[id] = e
	return nil
}

func (f *fakeJournalRepo) MarkVoid(ctx context.Context, id string, voidedBy string, voidedAt time.Time, reason string) error {
	e, ok := f.entries[id]
	if !ok {
		return ledger.ErrEntryNotFound
	}
	if e.Status == ledger.EntryStatusVoid {
		return ledger.ErrEntryAlreadyVoid
	}
	e.Status = ledger.EntryStatusVoid
	e.VoidedBy = &voidedBy
	e.VoidedAt = &voidedAt
	e.VoidReason = &reason
	f.entries[id] = e
	return nil
}

func balancedRequest() ledger.PostEntryRequest {
	return ledger.PostEntryRequest{
		Description: "Office rent",
		EntryDate:   "2026-08-31",
		Lines: []ledger.EntryLineInput{
			{AccountID: "acc-6200", Debit: d("1200")},
			{AccountID: "acc-1100", Credit: d("1200")},
		},
	}
}

func newLedgerFixture(journalRepo *fakeJournalRepo) *Service {
	return NewService(passthroughTx{}, nil, journalRepo)
}

func TestCreateEntry_FirstSequenceOfDay(t *testing.T) {
	svc := newLedgerFixture(&fakeJournalRepo{})

	resp, err := svc.CreateEntry(context.Background(), balancedRequest(), "user-1")
	require.NoError(t, err)

	assert.Equal(t, "20260831-0001", resp.EntryNumber)
	assert.Equal(t, string(ledger.EntryStatusDraft), resp.Status)
}

func TestCreateEntry_SequenceFollowsMax(t *testing.T) {
	svc := newLedgerFixture(&fakeJournalRepo{maxSeq: 7})

	resp, err := svc.CreateEntry(context.Background(), balancedRequest(), "user-1")
	require.NoError(t, err)

	assert.Equal(t, "20260831-0008", resp.EntryNumber)
}

func TestCreateEntry_RetriesOnNumberCollision(t *testing.T) {
	repo := &fakeJournalRepo{maxSeq: 7, failCreates: 1}
	svc := newLedgerFixture(repo)

	resp, err := svc.CreateEntry(context.Background(), balancedRequest(), "user-1")
	require.NoError(t, err)

	// The collision bumped the stored max, so the retry recomputed the
	// sequence instead of reusing the taken number.
	assert.Equal(t, 2, repo.createCalls)
	assert.Equal(t, "20260831-0009", resp.EntryNumber)
}

func TestCreateEntry_GivesUpAfterRepeatedCollisions(t *testing.T) {
	repo := &fakeJournalRepo{failCreates: 3}
	svc := newLedgerFixture(repo)

	_, err := svc.CreateEntry(context.Background(), balancedRequest(), "user-1")
	assert.ErrorIs(t, err, ledger.ErrEntryNumberExists)
	assert.Equal(t, 3, repo.createCalls)
}

func TestPostEntry_MovesDraftToPosted(t *testing.T) {
	repo := &fakeJournalRepo{}
	svc := newLedgerFixture(repo)

	created, err := svc.CreateEntry(context.Background(), balancedRequest(), "user-1")
	require.NoError(t, err)

	resp, err := svc.PostEntry(context.Background(), created.ID, "poster-1")
	require.NoError(t, err)

	assert.Equal(t, string(ledger.EntryStatusPosted), resp.Status)
	require.NotNil(t, resp.PostedBy)
	assert.Equal(t, "poster-1", *resp.PostedBy)
}

func TestPostEntry_UnknownEntry(t *testing.T) {
	svc := newLedgerFixture(&fakeJournalRepo{})

	_, err := svc.PostEntry(context.Background(), "entry-missing", "poster-1")
	assert.ErrorIs(t, err, ledger.ErrEntryNotFound)
}

func TestPostEntry_AlreadyPosted(t *testing.T) {
	repo := &fakeJournalRepo{}
	svc := newLedgerFixture(repo)

	created, err := svc.CreateEntry(context.Background(), balancedRequest(), "user-1")
	require.NoError(t, err)
	_, err = svc.PostEntry(context.Background(), created.ID, "poster-1")
	require.NoError(t, err)

	_, err = svc.PostEntry(context.Background(), created.ID, "poster-2")
	assert.ErrorIs(t, err, ledger.ErrEntryNotDraft)
}

func TestVoidEntry_UnknownEntry(t *testing.T) {
	svc := newLedgerFixture(&fakeJournalRepo{})

	_, err := svc.VoidEntry(context.Background(), ledger.VoidEntryRequest{ID: "entry-missing", Reason: "typo"}, "user-1")
	assert.ErrorIs(t, err, ledger.ErrEntryNotFound)
}

func TestVoidEntry_VoidIsTerminal(t *testing.T) {
	repo := &fakeJournalRepo{}
	svc := newLedgerFixture(repo)

	created, err := svc.CreateEntry(context.Background(), balancedRequest(), "user-1")
	require.NoError(t, err)
	_, err = svc.VoidEntry(context.Background(), ledger.VoidEntryRequest{ID: created.ID, Reason: "duplicate"}, "user-1")
	require.NoError(t, err)

	_, err = svc.VoidEntry(context.Background(), ledger.VoidEntryRequest{ID: created.ID, Reason: "again"}, "user-1")
	assert.ErrorIs(t, err, ledger.ErrEntryAlreadyVoid)
}
