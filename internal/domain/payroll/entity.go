package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// SalaryItemType enum
type SalaryItemType string

const (
	SalaryItemAddition  SalaryItemType = "addition"
	SalaryItemDeduction SalaryItemType = "deduction"
)

// SalaryStructure is the versioned definition of an employee's base pay.
// The structure in effect for a period is the one with the latest
// EffectiveDate not after the period end.
type SalaryStructure struct {
	ID            string
	EmployeeID    string
	EffectiveDate time.Time
	BaseSalary    decimal.Decimal
	HourlyRate    *decimal.Decimal
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Items []SalaryItem
}

type SalaryItem struct {
	ID                string
	SalaryStructureID string
	Type              SalaryItemType
	Name              string
	Amount            decimal.Decimal
	IsTaxable         bool
}

// InsuranceConfig holds statutory contribution bases and rates per employee.
// Absent config means all contributions are zero.
type InsuranceConfig struct {
	ID             string
	EmployeeID     string
	LaborBase      decimal.Decimal
	LaborRate      decimal.Decimal
	HealthBase     decimal.Decimal
	HealthRate     decimal.Decimal
	EmploymentBase decimal.Decimal
	EmploymentRate decimal.Decimal
	PensionBase    decimal.Decimal
	PensionRate    decimal.Decimal
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// CalculationStatus enum
type CalculationStatus string

const (
	CalculationStatusDraft       CalculationStatus = "draft"
	CalculationStatusConfirmed   CalculationStatus = "confirmed"
	CalculationStatusTransferred CalculationStatus = "transferred"
)

// PayrollCalculation is the computed result for one (period, employee) pair.
// Recomputation upserts on that key and resets the status to draft.
type PayrollCalculation struct {
	ID                  string
	EmployeeID          string
	Period              string // "2006-01"
	BaseSalary          decimal.Decimal
	WorkDays            int
	LeaveDays           decimal.Decimal
	OvertimeHours       decimal.Decimal
	TotalLateMinutes    int
	TotalAdditions      decimal.Decimal
	TotalDeductions     decimal.Decimal
	LateDeduction       decimal.Decimal
	LaborInsurance      decimal.Decimal
	HealthInsurance     decimal.Decimal
	EmploymentInsurance decimal.Decimal
	Pension             decimal.Decimal
	NetSalary           decimal.Decimal
	Status              CalculationStatus
	CalculatedBy        string
	TransferBatchID     *string
	CreatedAt           time.Time
	UpdatedAt           time.Time

	// Joined fields
	EmployeeName *string
	EmployeeCode *string
}

// TransferBatchStatus enum
type TransferBatchStatus string

const (
	TransferBatchStatusCreated TransferBatchStatus = "created"
	TransferBatchStatusSent    TransferBatchStatus = "sent"
)

// SalaryTransferBatch groups confirmed calculations for one period into a
// single bank transfer and ledger posting.
type SalaryTransferBatch struct {
	ID             string
	Period         string
	TotalNet       decimal.Decimal
	EmployeeCount  int
	JournalEntryID string
	Status         TransferBatchStatus
	CreatedBy      string
	CreatedAt      time.Time
}
