package attendance

import "errors"

var (
	ErrRecordNotFound     = errors.New("attendance record not found")
	ErrAlreadyClockedIn   = errors.New("already clocked in for this date")
	ErrNotClockedIn       = errors.New("no clock-in recorded for this date")
	ErrAlreadyClockedOut  = errors.New("already clocked out for this date")
	ErrScheduleNotFound   = errors.New("work schedule not found")
	ErrClockOutBeforeIn   = errors.New("clock-out must be after clock-in")
	ErrEmployeeNotActive  = errors.New("employee is not active")
	ErrInvalidScheduleDay = errors.New("invalid schedule time")
)
