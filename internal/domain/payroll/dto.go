package payroll

import (
	"github.com/remitdesk/backoffice-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// ========== SALARY STRUCTURE DTOs ==========

type SalaryItemInput struct {
	Type      string          `json:"type"` // "addition" or "deduction"
	Name      string          `json:"name"`
	Amount    decimal.Decimal `json:"amount"`
	IsTaxable bool            `json:"is_taxable"`
}

type CreateSalaryStructureRequest struct {
	EmployeeID    string            `json:"employee_id"`
	EffectiveDate string            `json:"effective_date"`
	BaseSalary    decimal.Decimal   `json:"base_salary"`
	HourlyRate    *decimal.Decimal  `json:"hourly_rate,omitempty"`
	Items         []SalaryItemInput `json:"items,omitempty"`
}

func (r *CreateSalaryStructureRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "is required"})
	}
	if _, ok := validator.IsValidDate(r.EffectiveDate); !ok {
		errs = append(errs, validator.ValidationError{Field: "effective_date", Message: "must be a valid date (YYYY-MM-DD)"})
	}
	if r.BaseSalary.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "base_salary", Message: "must be non-negative"})
	}
	if !validator.IsNonNegative(r.HourlyRate) {
		errs = append(errs, validator.ValidationError{Field: "hourly_rate", Message: "must be non-negative"})
	}
	for _, item := range r.Items {
		if item.Type != string(SalaryItemAddition) && item.Type != string(SalaryItemDeduction) {
			errs = append(errs, validator.ValidationError{Field: "items", Message: "type must be 'addition' or 'deduction'"})
			break
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpsertInsuranceConfigRequest struct {
	EmployeeID     string          `json:"employee_id"`
	LaborBase      decimal.Decimal `json:"labor_base"`
	LaborRate      decimal.Decimal `json:"labor_rate"`
	HealthBase     decimal.Decimal `json:"health_base"`
	HealthRate     decimal.Decimal `json:"health_rate"`
	EmploymentBase decimal.Decimal `json:"employment_base"`
	EmploymentRate decimal.Decimal `json:"employment_rate"`
	PensionBase    decimal.Decimal `json:"pension_base"`
	PensionRate    decimal.Decimal `json:"pension_rate"`
}

func (r *UpsertInsuranceConfigRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "is required"})
	}
	for field, d := range map[string]decimal.Decimal{
		"labor_base": r.LaborBase, "labor_rate": r.LaborRate,
		"health_base": r.HealthBase, "health_rate": r.HealthRate,
		"employment_base": r.EmploymentBase, "employment_rate": r.EmploymentRate,
		"pension_base": r.PensionBase, "pension_rate": r.PensionRate,
	} {
		if d.IsNegative() {
			errs = append(errs, validator.ValidationError{Field: field, Message: "must be non-negative"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ========== LATE DEDUCTION RULE DTOs ==========

type RuleItemInput struct {
	MinMinutes int             `json:"min_minutes"`
	MaxMinutes *int            `json:"max_minutes,omitempty"`
	Amount     decimal.Decimal `json:"amount"`
}

type CreateLateDeductionRuleRequest struct {
	Name            string           `json:"name"`
	Type            string           `json:"type"` // fixed, proportional, tiered
	EffectiveDate   string           `json:"effective_date"`
	PerMinuteAmount decimal.Decimal  `json:"per_minute_amount"`
	Ratio           decimal.Decimal  `json:"ratio"`
	MaxAmount       *decimal.Decimal `json:"max_amount,omitempty"`
	Items           []RuleItemInput  `json:"items,omitempty"`
}

func (r *CreateLateDeductionRuleRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "is required"})
	}
	if !LateDeductionRuleType(r.Type).Valid() {
		errs = append(errs, validator.ValidationError{Field: "type", Message: "must be 'fixed', 'proportional' or 'tiered'"})
	}
	if _, ok := validator.IsValidDate(r.EffectiveDate); !ok {
		errs = append(errs, validator.ValidationError{Field: "effective_date", Message: "must be a valid date (YYYY-MM-DD)"})
	}
	if r.Type == string(LateRuleTiered) && len(r.Items) == 0 {
		errs = append(errs, validator.ValidationError{Field: "items", Message: "tiered rules require at least one tier"})
	}
	if !validator.IsNonNegative(r.MaxAmount) {
		errs = append(errs, validator.ValidationError{Field: "max_amount", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type AssignLateRuleRequest struct {
	EmployeeID string `json:"employee_id"`
	RuleID     string `json:"rule_id"`
}

func (r *AssignLateRuleRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "is required"})
	}
	if validator.IsEmpty(r.RuleID) {
		errs = append(errs, validator.ValidationError{Field: "rule_id", Message: "is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ========== CALCULATION DTOs ==========

type CalculateRequest struct {
	EmployeeID string `json:"employee_id"`
	Period     string `json:"period"` // "2006-01"
}

func (r *CalculateRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "is required"})
	}
	if _, ok := validator.IsValidPeriod(r.Period); !ok {
		errs = append(errs, validator.ValidationError{Field: "period", Message: "must be a valid period (YYYY-MM)"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ConfirmRequest struct {
	CalculationIDs []string `json:"calculation_ids"`
}

func (r *ConfirmRequest) Validate() error {
	if len(r.CalculationIDs) == 0 {
		return validator.ValidationErrors{{Field: "calculation_ids", Message: "at least one calculation is required"}}
	}
	return nil
}

type CreateTransferBatchRequest struct {
	Period         string   `json:"period"`
	CalculationIDs []string `json:"calculation_ids"`
}

func (r *CreateTransferBatchRequest) Validate() error {
	var errs validator.ValidationErrors

	if _, ok := validator.IsValidPeriod(r.Period); !ok {
		errs = append(errs, validator.ValidationError{Field: "period", Message: "must be a valid period (YYYY-MM)"})
	}
	if len(r.CalculationIDs) == 0 {
		errs = append(errs, validator.ValidationError{Field: "calculation_ids", Message: "at least one calculation is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type CalculationResponse struct {
	ID                  string          `json:"id"`
	EmployeeID          string          `json:"employee_id"`
	EmployeeName        string          `json:"employee_name,omitempty"`
	EmployeeCode        string          `json:"employee_code,omitempty"`
	Period              string          `json:"period"`
	BaseSalary          decimal.Decimal `json:"base_salary"`
	WorkDays            int             `json:"work_days"`
	LeaveDays           decimal.Decimal `json:"leave_days"`
	OvertimeHours       decimal.Decimal `json:"overtime_hours"`
	TotalLateMinutes    int             `json:"total_late_minutes"`
	TotalAdditions      decimal.Decimal `json:"total_additions"`
	TotalDeductions     decimal.Decimal `json:"total_deductions"`
	LateDeduction       decimal.Decimal `json:"late_deduction"`
	LaborInsurance      decimal.Decimal `json:"labor_insurance"`
	HealthInsurance     decimal.Decimal `json:"health_insurance"`
	EmploymentInsurance decimal.Decimal `json:"employment_insurance"`
	Pension             decimal.Decimal `json:"pension"`
	NetSalary           decimal.Decimal `json:"net_salary"`
	Status              string          `json:"status"`
}

type TransferBatchResponse struct {
	ID             string          `json:"id"`
	Period         string          `json:"period"`
	TotalNet       decimal.Decimal `json:"total_net"`
	EmployeeCount  int             `json:"employee_count"`
	JournalEntryID string          `json:"journal_entry_id"`
	Status         string          `json:"status"`
}
