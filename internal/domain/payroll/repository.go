package payroll

import (
	"context"
	"time"
)

type SalaryRepository interface {
	CreateStructure(ctx context.Context, s SalaryStructure) (SalaryStructure, error)
	// GetEffectiveStructure returns the structure with the latest effective
	// date not after asOf, items included.
	GetEffectiveStructure(ctx context.Context, employeeID string, asOf time.Time) (SalaryStructure, error)
	ListStructures(ctx context.Context, employeeID string) ([]SalaryStructure, error)
	GetInsuranceConfig(ctx context.Context, employeeID string) (InsuranceConfig, error)
	UpsertInsuranceConfig(ctx context.Context, cfg InsuranceConfig) (InsuranceConfig, error)
}

type LateDeductionRuleRepository interface {
	CreateRule(ctx context.Context, rule LateDeductionRule) (LateDeductionRule, error)
	GetRuleByID(ctx context.Context, id string) (LateDeductionRule, error)
	// GetEffectiveRule returns the rule with the most recent effective date
	// not after asOf, tiers included, ordered by MinMinutes. An assignment
	// made through AssignRuleToEmployee takes precedence over the
	// company-wide default.
	GetEffectiveRule(ctx context.Context, employeeID string, asOf time.Time) (LateDeductionRule, error)
	ListRules(ctx context.Context) ([]LateDeductionRule, error)
	// AssignRuleToEmployee binds the employee to ruleID, replacing any
	// previous binding.
	AssignRuleToEmployee(ctx context.Context, employeeID, ruleID string) error
}

type CalculationRepository interface {
	// Upsert writes the calculation keyed on (period, employee_id),
	// overwriting any previous row for that pair.
	Upsert(ctx context.Context, calc PayrollCalculation) (PayrollCalculation, error)
	GetByID(ctx context.Context, id string) (PayrollCalculation, error)
	GetByEmployeePeriod(ctx context.Context, employeeID, period string) (PayrollCalculation, error)
	ListByPeriod(ctx context.Context, period string) ([]PayrollCalculation, error)
	UpdateStatus(ctx context.Context, ids []string, from, to CalculationStatus) (int64, error)
	AttachToBatch(ctx context.Context, ids []string, batchID string) error
	CreateBatch(ctx context.Context, batch SalaryTransferBatch) (SalaryTransferBatch, error)
	GetBatchByID(ctx context.Context, id string) (SalaryTransferBatch, error)
}
