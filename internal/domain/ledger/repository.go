package ledger

import (
	"context"
	"time"
)

type AccountRepository interface {
	Create(ctx context.Context, account Account) (Account, error)
	GetByID(ctx context.Context, id string) (Account, error)
	GetByCode(ctx context.Context, code string) (Account, error)
	List(ctx context.Context, activeOnly bool) ([]Account, error)
	Update(ctx context.Context, account Account) error
	Deactivate(ctx context.Context, id string) error
	HasJournalLines(ctx context.Context, id string) (bool, error)
}

type JournalRepository interface {
	// CreateEntry persists the entry and all its lines in the caller's
	// transaction. Returns ErrEntryNumberExists on a number collision so the
	// caller can recompute the sequence and retry.
	CreateEntry(ctx context.Context, entry JournalEntry) (JournalEntry, error)
	GetEntryByID(ctx context.Context, id string) (JournalEntry, error)
	ListEntries(ctx context.Context, filter EntryFilter) ([]JournalEntry, int64, error)
	// MaxSequenceForDate returns the greatest existing per-date sequence for
	// the yyyyMMdd prefix of date, 0 when none exist.
	MaxSequenceForDate(ctx context.Context, date time.Time) (int, error)
	MarkPosted(ctx context.Context, id string, postedBy string, postedAt time.Time) error
	MarkVoid(ctx context.Context, id string, voidedBy string, voidedAt time.Time, reason string) error
}
