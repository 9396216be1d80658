package payroll

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/remitdesk/backoffice-go/internal/domain/attendance"
	"github.com/remitdesk/backoffice-go/internal/domain/employee"
	"github.com/remitdesk/backoffice-go/internal/domain/leave"
	"github.com/remitdesk/backoffice-go/internal/domain/payroll"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

type fakeSalaryRepo struct {
	structure *payroll.SalaryStructure
	insurance *payroll.InsuranceConfig
}

func (f *fakeSalaryRepo) CreateStructure(ctx context.Context, s payroll.SalaryStructure) (payroll.SalaryStructure, error) {
	return s, nil
}

func (f *fakeSalaryRepo) GetEffectiveStructure(ctx context.Context, employeeID string, asOf time.Time) (payroll.SalaryStructure, error) {
	if f.structure == nil {
		return payroll.SalaryStructure{}, payroll.ErrNoSalaryStructure
	}
	return *f.structure, nil
}

func (f *fakeSalaryRepo) ListStructures(ctx context.Context, employeeID string) ([]payroll.SalaryStructure, error) {
	return nil, nil
}

func (f *fakeSalaryRepo) GetInsuranceConfig(ctx context.Context, employeeID string) (payroll.InsuranceConfig, error) {
	if f.insurance == nil {
		return payroll.InsuranceConfig{}, payroll.ErrInsuranceConfigNotFound
	}
	return *f.insurance, nil
}

func (f *fakeSalaryRepo) UpsertInsuranceConfig(ctx context.Context, cfg payroll.InsuranceConfig) (payroll.InsuranceConfig, error) {
	f.insurance = &cfg
	return cfg, nil
}

type fakeRuleRepo struct {
	rule     *payroll.LateDeductionRule
	byID     map[string]payroll.LateDeductionRule
	assigned map[string]string
}

func (f *fakeRuleRepo) CreateRule(ctx context.Context, rule payroll.LateDeductionRule) (payroll.LateDeductionRule, error) {
	return rule, nil
}

func (f *fakeRuleRepo) GetRuleByID(ctx context.Context, id string) (payroll.LateDeductionRule, error) {
	rule, ok := f.byID[id]
	if !ok {
		return payroll.LateDeductionRule{}, payroll.ErrRuleNotFound
	}
	return rule, nil
}

func (f *fakeRuleRepo) GetEffectiveRule(ctx context.Context, employeeID string, asOf time.Time) (payroll.LateDeductionRule, error) {
	if ruleID, ok := f.assigned[employeeID]; ok {
		return f.byID[ruleID], nil
	}
	if f.rule == nil {
		return payroll.LateDeductionRule{}, payroll.ErrRuleNotFound
	}
	return *f.rule, nil
}

func (f *fakeRuleRepo) ListRules(ctx context.Context) ([]payroll.LateDeductionRule, error) {
	return nil, nil
}

func (f *fakeRuleRepo) AssignRuleToEmployee(ctx context.Context, employeeID, ruleID string) error {
	if f.assigned == nil {
		f.assigned = make(map[string]string)
	}
	f.assigned[employeeID] = ruleID
	return nil
}

type fakeCalculationRepo struct {
	store map[string]payroll.PayrollCalculation
}

func calcKey(period, employeeID string) string {
	return period + "|" + employeeID
}

func (f *fakeCalculationRepo) Upsert(ctx context.Context, calc payroll.PayrollCalculation) (payroll.PayrollCalculation, error) {
	if f.store == nil {
		f.store = make(map[string]payroll.PayrollCalculation)
	}
	key := calcKey(calc.Period, calc.EmployeeID)
	calc.ID = "calc-" + key
	calc.Status = payroll.CalculationStatusDraft
	calc.TransferBatchID = nil
	f.store[key] = calc
	return calc, nil
}

func (f *fakeCalculationRepo) GetByID(ctx context.Context, id string) (payroll.PayrollCalculation, error) {
	for _, c := range f.store {
		if c.ID == id {
			return c, nil
		}
	}
	return payroll.PayrollCalculation{}, payroll.ErrCalculationNotFound
}

func (f *fakeCalculationRepo) GetByEmployeePeriod(ctx context.Context, employeeID, period string) (payroll.PayrollCalculation, error) {
	c, ok := f.store[calcKey(period, employeeID)]
	if !ok {
		return payroll.PayrollCalculation{}, payroll.ErrCalculationNotFound
	}
	return c, nil
}

func (f *fakeCalculationRepo) ListByPeriod(ctx context.Context, period string) ([]payroll.PayrollCalculation, error) {
	var out []payroll.PayrollCalculation
	for _, c := range f.store {
		if c.Period == period {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeCalculationRepo) UpdateStatus(ctx context.Context, ids []string, from, to payroll.CalculationStatus) (int64, error) {
	return 0, errors.New("not implemented")
}

func (f *fakeCalculationRepo) AttachToBatch(ctx context.Context, ids []string, batchID string) error {
	return errors.New("not implemented")
}

func (f *fakeCalculationRepo) CreateBatch(ctx context.Context, batch payroll.SalaryTransferBatch) (payroll.SalaryTransferBatch, error) {
	return payroll.SalaryTransferBatch{}, errors.New("not implemented")
}

func (f *fakeCalculationRepo) GetBatchByID(ctx context.Context, id string) (payroll.SalaryTransferBatch, error) {
	return payroll.SalaryTransferBatch{}, payroll.ErrBatchNotFound
}

type fakeAttendanceRepo struct {
	records []attendance.AttendanceRecord
}

func (f *fakeAttendanceRepo) Create(ctx context.Context, record attendance.AttendanceRecord) (attendance.AttendanceRecord, error) {
	return record, nil
}

func (f *fakeAttendanceRepo) Update(ctx context.Context, record attendance.AttendanceRecord) error {
	return nil
}

func (f *fakeAttendanceRepo) GetByEmployeeDate(ctx context.Context, employeeID string, date time.Time) (attendance.AttendanceRecord, error) {
	return attendance.AttendanceRecord{}, attendance.ErrRecordNotFound
}

func (f *fakeAttendanceRepo) ListByEmployeeRange(ctx context.Context, employeeID string, from, to time.Time) ([]attendance.AttendanceRecord, error) {
	return f.records, nil
}

type fakeLeaveRepo struct {
	approved []leave.LeaveRequest
}

func (f *fakeLeaveRepo) Create(ctx context.Context, req leave.LeaveRequest) (leave.LeaveRequest, error) {
	return req, nil
}

func (f *fakeLeaveRepo) GetByID(ctx context.Context, id string) (leave.LeaveRequest, error) {
	return leave.LeaveRequest{}, leave.ErrRequestNotFound
}

func (f *fakeLeaveRepo) ListByEmployee(ctx context.Context, employeeID string) ([]leave.LeaveRequest, error) {
	return nil, nil
}

func (f *fakeLeaveRepo) ListApprovedOverlapping(ctx context.Context, employeeID string, from, to time.Time) ([]leave.LeaveRequest, error) {
	return f.approved, nil
}

func (f *fakeLeaveRepo) CheckOverlapping(ctx context.Context, employeeID string, start, end time.Time) (bool, error) {
	return false, nil
}

func (f *fakeLeaveRepo) UpdateStatus(ctx context.Context, id string, status leave.RequestStatus) error {
	return nil
}

type fakeEmployeeRepo struct {
	emp employee.Employee
}

func (f *fakeEmployeeRepo) Create(ctx context.Context, emp employee.Employee) (employee.Employee, error) {
	return emp, nil
}

func (f *fakeEmployeeRepo) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	if id != f.emp.ID {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return f.emp, nil
}

func (f *fakeEmployeeRepo) GetByCode(ctx context.Context, code string) (employee.Employee, error) {
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (f *fakeEmployeeRepo) List(ctx context.Context, activeOnly bool) ([]employee.Employee, error) {
	return []employee.Employee{f.emp}, nil
}

func (f *fakeEmployeeRepo) Update(ctx context.Context, emp employee.Employee) error {
	return nil
}

func (f *fakeEmployeeRepo) Deactivate(ctx context.Context, id string) error {
	return nil
}

func (f *fakeEmployeeRepo) MaxCodeSequence(ctx context.Context) (int, error) {
	return 0, nil
}

func newCalculateFixture() (*Service, *fakeSalaryRepo, *fakeCalculationRepo, *fakeAttendanceRepo, *fakeRuleRepo) {
	hourly := d("200")
	salaryRepo := &fakeSalaryRepo{
		structure: &payroll.SalaryStructure{
			ID:         "structure-1",
			EmployeeID: "emp-1",
			BaseSalary: d("30000"),
			HourlyRate: &hourly,
			Items: []payroll.SalaryItem{
				{Type: payroll.SalaryItemAddition, Name: "Meal allowance", Amount: d("2000")},
				{Type: payroll.SalaryItemDeduction, Name: "Welfare fund", Amount: d("1000")},
			},
		},
		insurance: &payroll.InsuranceConfig{
			EmployeeID: "emp-1",
			LaborBase:  d("30000"),
			LaborRate:  d("0.05"),
		},
	}
	ruleRepo := &fakeRuleRepo{
		rule: &payroll.LateDeductionRule{
			ID:              "rule-1",
			Type:            payroll.LateRuleFixed,
			PerMinuteAmount: d("10"),
		},
	}
	calcRepo := &fakeCalculationRepo{}
	attendanceRepo := &fakeAttendanceRepo{
		records: []attendance.AttendanceRecord{
			{EmployeeID: "emp-1", LateMinutes: 60, Status: attendance.StatusLate},
			{EmployeeID: "emp-1", LateMinutes: 40, Status: attendance.StatusLate},
			{EmployeeID: "emp-1", Status: attendance.StatusAbsent},
		},
	}
	employeeRepo := &fakeEmployeeRepo{
		emp: employee.Employee{ID: "emp-1", Code: "EMP-0001", Name: "Chen Wei", IsActive: true},
	}

	svc := NewService(
		nil,
		salaryRepo,
		ruleRepo,
		calcRepo,
		attendanceRepo,
		&fakeLeaveRepo{},
		employeeRepo,
		nil,
		nil,
		DefaultPostingAccounts(),
	)
	return svc, salaryRepo, calcRepo, attendanceRepo, ruleRepo
}

func TestCalculate_NetSalary(t *testing.T) {
	svc, _, _, _, _ := newCalculateFixture()

	resp, err := svc.Calculate(context.Background(), payroll.CalculateRequest{
		EmployeeID: "emp-1",
		Period:     "2026-08",
	}, "user-1")
	require.NoError(t, err)

	// Absent day is excluded from work days.
	assert.Equal(t, 2, resp.WorkDays)
	assert.Equal(t, 100, resp.TotalLateMinutes)

	// 100 late minutes at 10 per minute.
	assert.True(t, d("1000").Equal(resp.LateDeduction), "late deduction: %s", resp.LateDeduction)
	assert.True(t, d("1500").Equal(resp.LaborInsurance), "labor insurance: %s", resp.LaborInsurance)

	// 30000 + 2000 - (1000 + 1500 + 1000)
	assert.True(t, d("2000").Equal(resp.TotalAdditions), "additions: %s", resp.TotalAdditions)
	assert.True(t, d("3500").Equal(resp.TotalDeductions), "deductions: %s", resp.TotalDeductions)
	assert.True(t, d("28500").Equal(resp.NetSalary), "net salary: %s", resp.NetSalary)

	assert.Equal(t, string(payroll.CalculationStatusDraft), resp.Status)
	assert.Equal(t, "Chen Wei", resp.EmployeeName)
}

func TestCalculate_OvertimePay(t *testing.T) {
	svc, _, _, attendanceRepo, ruleRepo := newCalculateFixture()
	ruleRepo.rule = nil
	attendanceRepo.records = []attendance.AttendanceRecord{
		{EmployeeID: "emp-1", OvertimeHours: d("2.5"), Status: attendance.StatusNormal},
	}

	resp, err := svc.Calculate(context.Background(), payroll.CalculateRequest{
		EmployeeID: "emp-1",
		Period:     "2026-08",
	}, "user-1")
	require.NoError(t, err)

	// 2000 allowance + 2.5h * 200
	assert.True(t, d("2500").Equal(resp.TotalAdditions), "additions: %s", resp.TotalAdditions)
	assert.True(t, resp.LateDeduction.IsZero())
}

func TestCalculate_RecalculationResetsToDraft(t *testing.T) {
	svc, _, calcRepo, _, _ := newCalculateFixture()
	ctx := context.Background()
	req := payroll.CalculateRequest{EmployeeID: "emp-1", Period: "2026-08"}

	first, err := svc.Calculate(ctx, req, "user-1")
	require.NoError(t, err)

	// Simulate a confirm between the two runs.
	key := calcKey("2026-08", "emp-1")
	confirmed := calcRepo.store[key]
	confirmed.Status = payroll.CalculationStatusConfirmed
	calcRepo.store[key] = confirmed

	second, err := svc.Calculate(ctx, req, "user-1")
	require.NoError(t, err)

	assert.Equal(t, string(payroll.CalculationStatusDraft), second.Status)
	assert.True(t, first.NetSalary.Equal(second.NetSalary))
	assert.Len(t, calcRepo.store, 1, "recalculation must overwrite, not duplicate")
}

func TestCalculate_WithoutInsuranceConfig(t *testing.T) {
	svc, salaryRepo, _, attendanceRepo, ruleRepo := newCalculateFixture()
	salaryRepo.insurance = nil
	ruleRepo.rule = nil
	attendanceRepo.records = nil

	resp, err := svc.Calculate(context.Background(), payroll.CalculateRequest{
		EmployeeID: "emp-1",
		Period:     "2026-08",
	}, "user-1")
	require.NoError(t, err)

	assert.True(t, resp.LaborInsurance.IsZero())
	assert.True(t, resp.HealthInsurance.IsZero())
	// 30000 + 2000 - 1000 structure deduction only
	assert.True(t, d("31000").Equal(resp.NetSalary), "net salary: %s", resp.NetSalary)
}

func TestCalculate_NoEffectiveStructure(t *testing.T) {
	svc, salaryRepo, _, _, _ := newCalculateFixture()
	salaryRepo.structure = nil

	_, err := svc.Calculate(context.Background(), payroll.CalculateRequest{
		EmployeeID: "emp-1",
		Period:     "2026-08",
	}, "user-1")
	assert.ErrorIs(t, err, payroll.ErrNoSalaryStructure)
}

func TestAssignLateRule_OverridesDefault(t *testing.T) {
	svc, _, _, _, ruleRepo := newCalculateFixture()
	ruleRepo.byID = map[string]payroll.LateDeductionRule{
		"rule-strict": {ID: "rule-strict", Type: payroll.LateRuleFixed, PerMinuteAmount: d("25")},
	}

	err := svc.AssignLateRule(context.Background(), payroll.AssignLateRuleRequest{
		EmployeeID: "emp-1",
		RuleID:     "rule-strict",
	})
	require.NoError(t, err)
	assert.Equal(t, "rule-strict", ruleRepo.assigned["emp-1"])

	// 100 late minutes now cost 25 per minute instead of the default 10.
	resp, err := svc.Calculate(context.Background(), payroll.CalculateRequest{
		EmployeeID: "emp-1",
		Period:     "2026-08",
	}, "user-1")
	require.NoError(t, err)
	assert.True(t, d("2500").Equal(resp.LateDeduction), "late deduction: %s", resp.LateDeduction)
}

func TestAssignLateRule_UnknownRule(t *testing.T) {
	svc, _, _, _, ruleRepo := newCalculateFixture()

	err := svc.AssignLateRule(context.Background(), payroll.AssignLateRuleRequest{
		EmployeeID: "emp-1",
		RuleID:     "rule-missing",
	})
	assert.ErrorIs(t, err, payroll.ErrRuleNotFound)
	assert.Empty(t, ruleRepo.assigned)
}

func TestAssignLateRule_UnknownEmployee(t *testing.T) {
	svc, _, _, _, ruleRepo := newCalculateFixture()
	ruleRepo.byID = map[string]payroll.LateDeductionRule{
		"rule-strict": {ID: "rule-strict", Type: payroll.LateRuleFixed, PerMinuteAmount: d("25")},
	}

	err := svc.AssignLateRule(context.Background(), payroll.AssignLateRuleRequest{
		EmployeeID: "emp-missing",
		RuleID:     "rule-strict",
	})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
	assert.Empty(t, ruleRepo.assigned)
}

func TestCalculate_UnknownEmployee(t *testing.T) {
	svc, _, _, _, _ := newCalculateFixture()

	_, err := svc.Calculate(context.Background(), payroll.CalculateRequest{
		EmployeeID: "emp-missing",
		Period:     "2026-08",
	}, "user-1")
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}
