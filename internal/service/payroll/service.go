package payroll

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/remitdesk/backoffice-go/internal/domain/attendance"
	"github.com/remitdesk/backoffice-go/internal/domain/employee"
	"github.com/remitdesk/backoffice-go/internal/domain/leave"
	"github.com/remitdesk/backoffice-go/internal/domain/ledger"
	"github.com/remitdesk/backoffice-go/internal/domain/payroll"
	"github.com/remitdesk/backoffice-go/internal/pkg/database"
	"github.com/remitdesk/backoffice-go/internal/pkg/validator"
	ledgersvc "github.com/remitdesk/backoffice-go/internal/service/ledger"
	"github.com/shopspring/decimal"
)

// PostingAccounts names the chart-of-accounts codes the salary transfer
// posting debits and credits.
type PostingAccounts struct {
	SalaryExpense string
	Bank          string
}

func DefaultPostingAccounts() PostingAccounts {
	return PostingAccounts{
		SalaryExpense: "6100",
		Bank:          "1100",
	}
}

const batchPostRetries = 3

type Service struct {
	tx             database.TxManager
	salaryRepo     payroll.SalaryRepository
	ruleRepo       payroll.LateDeductionRuleRepository
	calcRepo       payroll.CalculationRepository
	attendanceRepo attendance.AttendanceRepository
	leaveRepo      leave.LeaveRequestRepository
	employeeRepo   employee.EmployeeRepository
	accountRepo    ledger.AccountRepository
	ledgerService  *ledgersvc.Service
	accounts       PostingAccounts
}

func NewService(
	tx database.TxManager,
	salaryRepo payroll.SalaryRepository,
	ruleRepo payroll.LateDeductionRuleRepository,
	calcRepo payroll.CalculationRepository,
	attendanceRepo attendance.AttendanceRepository,
	leaveRepo leave.LeaveRequestRepository,
	employeeRepo employee.EmployeeRepository,
	accountRepo ledger.AccountRepository,
	ledgerService *ledgersvc.Service,
	accounts PostingAccounts,
) *Service {
	return &Service{
		tx:             tx,
		salaryRepo:     salaryRepo,
		ruleRepo:       ruleRepo,
		calcRepo:       calcRepo,
		attendanceRepo: attendanceRepo,
		leaveRepo:      leaveRepo,
		employeeRepo:   employeeRepo,
		accountRepo:    accountRepo,
		ledgerService:  ledgerService,
		accounts:       accounts,
	}
}

// ========== SALARY STRUCTURES ==========

func (s *Service) CreateSalaryStructure(ctx context.Context, req payroll.CreateSalaryStructureRequest) (payroll.SalaryStructure, error) {
	if err := req.Validate(); err != nil {
		return payroll.SalaryStructure{}, err
	}
	effectiveDate, _ := validator.IsValidDate(req.EffectiveDate)

	if _, err := s.employeeRepo.GetByID(ctx, req.EmployeeID); err != nil {
		return payroll.SalaryStructure{}, err
	}

	structure := payroll.SalaryStructure{
		EmployeeID:    req.EmployeeID,
		EffectiveDate: effectiveDate,
		BaseSalary:    req.BaseSalary,
		HourlyRate:    req.HourlyRate,
	}
	for _, item := range req.Items {
		structure.Items = append(structure.Items, payroll.SalaryItem{
			Type:      payroll.SalaryItemType(item.Type),
			Name:      item.Name,
			Amount:    item.Amount,
			IsTaxable: item.IsTaxable,
		})
	}

	return s.salaryRepo.CreateStructure(ctx, structure)
}

func (s *Service) ListSalaryStructures(ctx context.Context, employeeID string) ([]payroll.SalaryStructure, error) {
	return s.salaryRepo.ListStructures(ctx, employeeID)
}

func (s *Service) UpsertInsuranceConfig(ctx context.Context, req payroll.UpsertInsuranceConfigRequest) (payroll.InsuranceConfig, error) {
	if err := req.Validate(); err != nil {
		return payroll.InsuranceConfig{}, err
	}

	if _, err := s.employeeRepo.GetByID(ctx, req.EmployeeID); err != nil {
		return payroll.InsuranceConfig{}, err
	}

	return s.salaryRepo.UpsertInsuranceConfig(ctx, payroll.InsuranceConfig{
		EmployeeID:     req.EmployeeID,
		LaborBase:      req.LaborBase,
		LaborRate:      req.LaborRate,
		HealthBase:     req.HealthBase,
		HealthRate:     req.HealthRate,
		EmploymentBase: req.EmploymentBase,
		EmploymentRate: req.EmploymentRate,
		PensionBase:    req.PensionBase,
		PensionRate:    req.PensionRate,
	})
}

// ========== LATE DEDUCTION RULES ==========

func (s *Service) CreateLateDeductionRule(ctx context.Context, req payroll.CreateLateDeductionRuleRequest) (payroll.LateDeductionRule, error) {
	if err := req.Validate(); err != nil {
		return payroll.LateDeductionRule{}, err
	}
	effectiveDate, _ := validator.IsValidDate(req.EffectiveDate)

	rule := payroll.LateDeductionRule{
		Name:            req.Name,
		Type:            payroll.LateDeductionRuleType(req.Type),
		EffectiveDate:   effectiveDate,
		PerMinuteAmount: req.PerMinuteAmount,
		Ratio:           req.Ratio,
		MaxAmount:       req.MaxAmount,
	}
	for _, item := range req.Items {
		rule.Items = append(rule.Items, payroll.LateDeductionRuleItem{
			MinMinutes: item.MinMinutes,
			MaxMinutes: item.MaxMinutes,
			Amount:     item.Amount,
		})
	}

	return s.ruleRepo.CreateRule(ctx, rule)
}

func (s *Service) ListLateDeductionRules(ctx context.Context) ([]payroll.LateDeductionRule, error) {
	return s.ruleRepo.ListRules(ctx)
}

// AssignLateRule binds an employee to a specific rule. The assignment
// overrides the company-wide default when the calculator resolves the
// effective rule; reassigning replaces the previous binding.
func (s *Service) AssignLateRule(ctx context.Context, req payroll.AssignLateRuleRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	if _, err := s.employeeRepo.GetByID(ctx, req.EmployeeID); err != nil {
		return err
	}
	if _, err := s.ruleRepo.GetRuleByID(ctx, req.RuleID); err != nil {
		return err
	}

	return s.ruleRepo.AssignRuleToEmployee(ctx, req.EmployeeID, req.RuleID)
}

// ========== CALCULATION ==========

// Calculate computes and upserts the payroll for one (employee, period) pair.
// Recalculation overwrites the previous result and resets it to draft.
func (s *Service) Calculate(ctx context.Context, req payroll.CalculateRequest, actorID string) (payroll.CalculationResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.CalculationResponse{}, err
	}
	periodStart, _ := validator.IsValidPeriod(req.Period)
	periodEnd := periodStart.AddDate(0, 1, -1)

	emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return payroll.CalculationResponse{}, err
	}

	structure, err := s.salaryRepo.GetEffectiveStructure(ctx, emp.ID, periodEnd)
	if err != nil {
		return payroll.CalculationResponse{}, err
	}

	var insurance payroll.InsuranceConfig
	hasInsurance := true
	insurance, err = s.salaryRepo.GetInsuranceConfig(ctx, emp.ID)
	if err != nil {
		if !errors.Is(err, payroll.ErrInsuranceConfigNotFound) {
			return payroll.CalculationResponse{}, err
		}
		hasInsurance = false
	}

	records, err := s.attendanceRepo.ListByEmployeeRange(ctx, emp.ID, periodStart, periodEnd)
	if err != nil {
		return payroll.CalculationResponse{}, err
	}

	workDays := 0
	overtimeHours := decimal.Zero
	lateMinutes := 0
	for _, rec := range records {
		if rec.Status != attendance.StatusAbsent && rec.Status != attendance.StatusLeave {
			workDays++
		}
		overtimeHours = overtimeHours.Add(rec.OvertimeHours)
		lateMinutes += rec.LateMinutes
	}

	leaves, err := s.leaveRepo.ListApprovedOverlapping(ctx, emp.ID, periodStart, periodEnd)
	if err != nil {
		return payroll.CalculationResponse{}, err
	}
	leaveDays := decimal.Zero
	for _, l := range leaves {
		leaveDays = leaveDays.Add(l.TotalDays)
	}

	additions := decimal.Zero
	deductions := decimal.Zero
	for _, item := range structure.Items {
		switch item.Type {
		case payroll.SalaryItemAddition:
			additions = additions.Add(item.Amount)
		case payroll.SalaryItemDeduction:
			deductions = deductions.Add(item.Amount)
		}
	}
	if structure.HourlyRate != nil {
		additions = additions.Add(overtimeHours.Mul(*structure.HourlyRate))
	}

	var labor, health, employment, pension decimal.Decimal
	if hasInsurance {
		labor = insurance.LaborBase.Mul(insurance.LaborRate).Round(2)
		health = insurance.HealthBase.Mul(insurance.HealthRate).Round(2)
		employment = insurance.EmploymentBase.Mul(insurance.EmploymentRate).Round(2)
		pension = insurance.PensionBase.Mul(insurance.PensionRate).Round(2)
	}
	deductions = deductions.Add(labor).Add(health).Add(employment).Add(pension)

	var rulePtr *payroll.LateDeductionRule
	rule, err := s.ruleRepo.GetEffectiveRule(ctx, emp.ID, periodEnd)
	if err != nil {
		if !errors.Is(err, payroll.ErrRuleNotFound) {
			return payroll.CalculationResponse{}, err
		}
	} else {
		rulePtr = &rule
	}
	lateDeduction := payroll.ResolveLateDeduction(rulePtr, structure.BaseSalary, lateMinutes)
	deductions = deductions.Add(lateDeduction)

	// Negative nets are stored as-is; clamping would hide a misconfigured
	// structure from the reviewer.
	net := structure.BaseSalary.Add(additions).Sub(deductions)

	calc := payroll.PayrollCalculation{
		EmployeeID:          emp.ID,
		Period:              req.Period,
		BaseSalary:          structure.BaseSalary,
		WorkDays:            workDays,
		LeaveDays:           leaveDays,
		OvertimeHours:       overtimeHours,
		TotalLateMinutes:    lateMinutes,
		TotalAdditions:      additions,
		TotalDeductions:     deductions,
		LateDeduction:       lateDeduction,
		LaborInsurance:      labor,
		HealthInsurance:     health,
		EmploymentInsurance: employment,
		Pension:             pension,
		NetSalary:           net,
		CalculatedBy:        actorID,
	}

	saved, err := s.calcRepo.Upsert(ctx, calc)
	if err != nil {
		return payroll.CalculationResponse{}, err
	}
	saved.EmployeeName = &emp.Name
	saved.EmployeeCode = &emp.Code

	return toCalculationResponse(saved), nil
}

func (s *Service) GetCalculation(ctx context.Context, id string) (payroll.CalculationResponse, error) {
	calc, err := s.calcRepo.GetByID(ctx, id)
	if err != nil {
		return payroll.CalculationResponse{}, err
	}
	return toCalculationResponse(calc), nil
}

func (s *Service) ListCalculations(ctx context.Context, period string) ([]payroll.CalculationResponse, error) {
	if _, ok := validator.IsValidPeriod(period); !ok {
		return nil, payroll.ErrInvalidPeriod
	}

	calcs, err := s.calcRepo.ListByPeriod(ctx, period)
	if err != nil {
		return nil, err
	}

	responses := make([]payroll.CalculationResponse, 0, len(calcs))
	for _, c := range calcs {
		responses = append(responses, toCalculationResponse(c))
	}
	return responses, nil
}

// Confirm moves draft calculations to confirmed. Fails without partial effect
// when any of the ids is not a draft.
func (s *Service) Confirm(ctx context.Context, req payroll.ConfirmRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	return s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		affected, err := s.calcRepo.UpdateStatus(txCtx, req.CalculationIDs, payroll.CalculationStatusDraft, payroll.CalculationStatusConfirmed)
		if err != nil {
			return err
		}
		if affected != int64(len(req.CalculationIDs)) {
			return payroll.ErrCalculationNotDraft
		}
		return nil
	})
}

// CreateTransferBatch groups confirmed calculations of one period, posts the
// salary journal entry and marks them transferred, atomically. The whole
// transaction retries on an entry number collision.
func (s *Service) CreateTransferBatch(ctx context.Context, req payroll.CreateTransferBatchRequest, actorID string) (payroll.TransferBatchResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.TransferBatchResponse{}, err
	}

	salaryAccount, err := s.accountRepo.GetByCode(ctx, s.accounts.SalaryExpense)
	if err != nil {
		return payroll.TransferBatchResponse{}, fmt.Errorf("failed to resolve salary expense account: %w", err)
	}
	bankAccount, err := s.accountRepo.GetByCode(ctx, s.accounts.Bank)
	if err != nil {
		return payroll.TransferBatchResponse{}, fmt.Errorf("failed to resolve bank account: %w", err)
	}

	var batch payroll.SalaryTransferBatch

	run := func(txCtx context.Context) error {
		totalNet := decimal.Zero
		for _, id := range req.CalculationIDs {
			calc, err := s.calcRepo.GetByID(txCtx, id)
			if err != nil {
				return err
			}
			if calc.Status != payroll.CalculationStatusConfirmed {
				return payroll.ErrCalculationNotConfirmed
			}
			if calc.Period != req.Period {
				return fmt.Errorf("calculation %s belongs to period %s: %w", id, calc.Period, payroll.ErrInvalidPeriod)
			}
			totalNet = totalNet.Add(calc.NetSalary)
		}
		if len(req.CalculationIDs) == 0 {
			return payroll.ErrEmptyTransferBatch
		}

		entry, err := s.ledgerService.WritePostedEntry(txCtx,
			fmt.Sprintf("Salary transfer %s", req.Period),
			time.Now(),
			actorID,
			[]ledger.EntryLineInput{
				{AccountID: salaryAccount.ID, Debit: totalNet},
				{AccountID: bankAccount.ID, Credit: totalNet},
			},
		)
		if err != nil {
			return err
		}

		batch, err = s.calcRepo.CreateBatch(txCtx, payroll.SalaryTransferBatch{
			Period:         req.Period,
			TotalNet:       totalNet,
			EmployeeCount:  len(req.CalculationIDs),
			JournalEntryID: entry.ID,
			Status:         payroll.TransferBatchStatusCreated,
			CreatedBy:      actorID,
		})
		if err != nil {
			return err
		}

		return s.calcRepo.AttachToBatch(txCtx, req.CalculationIDs, batch.ID)
	}

	for attempt := 0; attempt < batchPostRetries; attempt++ {
		err = s.tx.WithinTransaction(ctx, run)
		if errors.Is(err, ledger.ErrEntryNumberExists) {
			continue
		}
		break
	}
	if err != nil {
		return payroll.TransferBatchResponse{}, err
	}

	return payroll.TransferBatchResponse{
		ID:             batch.ID,
		Period:         batch.Period,
		TotalNet:       batch.TotalNet,
		EmployeeCount:  batch.EmployeeCount,
		JournalEntryID: batch.JournalEntryID,
		Status:         string(batch.Status),
	}, nil
}

func toCalculationResponse(c payroll.PayrollCalculation) payroll.CalculationResponse {
	resp := payroll.CalculationResponse{
		ID:                  c.ID,
		EmployeeID:          c.EmployeeID,
		Period:              c.Period,
		BaseSalary:          c.BaseSalary,
		WorkDays:            c.WorkDays,
		LeaveDays:           c.LeaveDays,
		OvertimeHours:       c.OvertimeHours,
		TotalLateMinutes:    c.TotalLateMinutes,
		TotalAdditions:      c.TotalAdditions,
		TotalDeductions:     c.TotalDeductions,
		LateDeduction:       c.LateDeduction,
		LaborInsurance:      c.LaborInsurance,
		HealthInsurance:     c.HealthInsurance,
		EmploymentInsurance: c.EmploymentInsurance,
		Pension:             c.Pension,
		NetSalary:           c.NetSalary,
		Status:              string(c.Status),
	}
	if c.EmployeeName != nil {
		resp.EmployeeName = *c.EmployeeName
	}
	if c.EmployeeCode != nil {
		resp.EmployeeCode = *c.EmployeeCode
	}
	return resp
}
