package payroll

import "errors"

var (
	ErrNoSalaryStructure       = errors.New("no salary structure configured for employee")
	ErrSalaryStructureNotFound = errors.New("salary structure not found")
	ErrInsuranceConfigNotFound = errors.New("insurance config not found")
	ErrCalculationNotFound     = errors.New("payroll calculation not found")
	ErrCalculationNotDraft     = errors.New("payroll calculation is not in draft status")
	ErrCalculationNotConfirmed = errors.New("payroll calculation is not confirmed")
	ErrRuleNotFound            = errors.New("late deduction rule not found")
	ErrInvalidRuleType         = errors.New("invalid late deduction rule type")
	ErrInvalidPeriod           = errors.New("invalid payroll period")
	ErrEmptyTransferBatch      = errors.New("transfer batch requires at least one confirmed calculation")
	ErrBatchNotFound           = errors.New("salary transfer batch not found")
)
