package master

import "errors"

var (
	ErrDepartmentNotFound = errors.New("department not found")
	ErrPositionNotFound   = errors.New("position not found")
	ErrDepartmentInUse    = errors.New("department still has employees")
	ErrPositionInUse      = errors.New("position still has employees")
)
