package ledger

import "errors"

var (
	ErrAccountNotFound      = errors.New("account not found")
	ErrAccountCodeExists    = errors.New("account code already exists")
	ErrInvalidAccountType   = errors.New("invalid account type")
	ErrInvalidParentLevel   = errors.New("parent account level must be one above the account")
	ErrAccountInUse         = errors.New("account is referenced by journal lines")
	ErrEntryNotFound        = errors.New("journal entry not found")
	ErrEntryNumberExists    = errors.New("journal entry number already exists")
	ErrTooFewLines          = errors.New("journal entry requires at least two lines")
	ErrLineMissingAccount   = errors.New("journal line is missing an account")
	ErrInvalidLineAmounts   = errors.New("journal line must carry exactly one positive side")
	ErrUnbalancedEntry      = errors.New("balance mismatch between debits and credits")
	ErrEntryNotDraft        = errors.New("journal entry is not in draft status")
	ErrEntryAlreadyVoid     = errors.New("journal entry is already void")
	ErrVoidReasonRequired   = errors.New("void reason is required")
	ErrPostedEntryImmutable = errors.New("posted journal entry cannot be modified")
)
