package leave

import "errors"

var (
	ErrRequestNotFound  = errors.New("leave request not found")
	ErrOverlappingLeave = errors.New("overlapping leave request exists")
	ErrAlreadyProcessed = errors.New("leave request already processed")
	ErrInvalidDateRange = errors.New("end date must not be before start date")
)
