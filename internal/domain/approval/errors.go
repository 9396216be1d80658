package approval

import "errors"

var (
	ErrRecordNotFound     = errors.New("approval record not found")
	ErrAlreadyDecided     = errors.New("approval record already decided")
	ErrReasonRequired     = errors.New("rejection reason is required")
	ErrInvalidEntityKind  = errors.New("invalid approval entity kind")
	ErrNotRequester       = errors.New("only the requester may cancel")
	ErrNoUpdaterForEntity = errors.New("no status updater registered for entity kind")
)
