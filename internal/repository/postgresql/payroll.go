package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/remitdesk/backoffice-go/internal/domain/payroll"
	"github.com/remitdesk/backoffice-go/internal/pkg/database"
)

// ========== SALARY STRUCTURES ==========

type salaryRepository struct {
	db *database.DB
}

func NewSalaryRepository(db *database.DB) payroll.SalaryRepository {
	return &salaryRepository{db: db}
}

func (r *salaryRepository) CreateStructure(ctx context.Context, s payroll.SalaryStructure) (payroll.SalaryStructure, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO salary_structures (id, employee_id, effective_date, base_salary, hourly_rate)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at
	`

	s.ID = uuid.NewString()
	err := q.QueryRow(ctx, query, s.ID, s.EmployeeID, s.EffectiveDate, s.BaseSalary, s.HourlyRate).
		Scan(&s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return payroll.SalaryStructure{}, fmt.Errorf("failed to create salary structure: %w", err)
	}

	itemQuery := `
		INSERT INTO salary_items (id, salary_structure_id, type, name, amount, is_taxable)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	for i := range s.Items {
		s.Items[i].ID = uuid.NewString()
		s.Items[i].SalaryStructureID = s.ID
		item := s.Items[i]
		if _, err := q.Exec(ctx, itemQuery, item.ID, item.SalaryStructureID, string(item.Type), item.Name, item.Amount, item.IsTaxable); err != nil {
			return payroll.SalaryStructure{}, fmt.Errorf("failed to create salary item: %w", err)
		}
	}

	return s, nil
}

func (r *salaryRepository) GetEffectiveStructure(ctx context.Context, employeeID string, asOf time.Time) (payroll.SalaryStructure, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, effective_date, base_salary, hourly_rate, created_at, updated_at
		FROM salary_structures
		WHERE employee_id = $1 AND effective_date <= $2
		ORDER BY effective_date DESC
		LIMIT 1
	`

	var s payroll.SalaryStructure
	err := q.QueryRow(ctx, query, employeeID, asOf).Scan(
		&s.ID, &s.EmployeeID, &s.EffectiveDate, &s.BaseSalary, &s.HourlyRate, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.SalaryStructure{}, payroll.ErrNoSalaryStructure
		}
		return payroll.SalaryStructure{}, fmt.Errorf("failed to get effective salary structure: %w", err)
	}

	items, err := r.getItems(ctx, s.ID)
	if err != nil {
		return payroll.SalaryStructure{}, err
	}
	s.Items = items

	return s, nil
}

func (r *salaryRepository) getItems(ctx context.Context, structureID string) ([]payroll.SalaryItem, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT id, salary_structure_id, type, name, amount, is_taxable
		FROM salary_items
		WHERE salary_structure_id = $1
		ORDER BY name
	`, structureID)
	if err != nil {
		return nil, fmt.Errorf("failed to get salary items: %w", err)
	}
	defer rows.Close()

	var items []payroll.SalaryItem
	for rows.Next() {
		var item payroll.SalaryItem
		var itemType string
		if err := rows.Scan(&item.ID, &item.SalaryStructureID, &itemType, &item.Name, &item.Amount, &item.IsTaxable); err != nil {
			return nil, fmt.Errorf("failed to scan salary item: %w", err)
		}
		item.Type = payroll.SalaryItemType(itemType)
		items = append(items, item)
	}

	return items, rows.Err()
}

func (r *salaryRepository) ListStructures(ctx context.Context, employeeID string) ([]payroll.SalaryStructure, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT id, employee_id, effective_date, base_salary, hourly_rate, created_at, updated_at
		FROM salary_structures
		WHERE employee_id = $1
		ORDER BY effective_date DESC
	`, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list salary structures: %w", err)
	}
	defer rows.Close()

	var structures []payroll.SalaryStructure
	for rows.Next() {
		var s payroll.SalaryStructure
		if err := rows.Scan(&s.ID, &s.EmployeeID, &s.EffectiveDate, &s.BaseSalary, &s.HourlyRate, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan salary structure: %w", err)
		}
		structures = append(structures, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range structures {
		items, err := r.getItems(ctx, structures[i].ID)
		if err != nil {
			return nil, err
		}
		structures[i].Items = items
	}

	return structures, nil
}

func (r *salaryRepository) GetInsuranceConfig(ctx context.Context, employeeID string) (payroll.InsuranceConfig, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, labor_base, labor_rate, health_base, health_rate,
			   employment_base, employment_rate, pension_base, pension_rate,
			   created_at, updated_at
		FROM insurance_configs
		WHERE employee_id = $1
	`

	var c payroll.InsuranceConfig
	err := q.QueryRow(ctx, query, employeeID).Scan(
		&c.ID, &c.EmployeeID, &c.LaborBase, &c.LaborRate, &c.HealthBase, &c.HealthRate,
		&c.EmploymentBase, &c.EmploymentRate, &c.PensionBase, &c.PensionRate,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.InsuranceConfig{}, payroll.ErrInsuranceConfigNotFound
		}
		return payroll.InsuranceConfig{}, fmt.Errorf("failed to get insurance config: %w", err)
	}

	return c, nil
}

func (r *salaryRepository) UpsertInsuranceConfig(ctx context.Context, cfg payroll.InsuranceConfig) (payroll.InsuranceConfig, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO insurance_configs (
			id, employee_id, labor_base, labor_rate, health_base, health_rate,
			employment_base, employment_rate, pension_base, pension_rate
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (employee_id) DO UPDATE SET
			labor_base = EXCLUDED.labor_base,
			labor_rate = EXCLUDED.labor_rate,
			health_base = EXCLUDED.health_base,
			health_rate = EXCLUDED.health_rate,
			employment_base = EXCLUDED.employment_base,
			employment_rate = EXCLUDED.employment_rate,
			pension_base = EXCLUDED.pension_base,
			pension_rate = EXCLUDED.pension_rate,
			updated_at = NOW()
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		uuid.NewString(), cfg.EmployeeID, cfg.LaborBase, cfg.LaborRate, cfg.HealthBase, cfg.HealthRate,
		cfg.EmploymentBase, cfg.EmploymentRate, cfg.PensionBase, cfg.PensionRate,
	).Scan(&cfg.ID, &cfg.CreatedAt, &cfg.UpdatedAt)
	if err != nil {
		return payroll.InsuranceConfig{}, fmt.Errorf("failed to upsert insurance config: %w", err)
	}

	return cfg, nil
}

// ========== LATE DEDUCTION RULES ==========

type lateDeductionRuleRepository struct {
	db *database.DB
}

func NewLateDeductionRuleRepository(db *database.DB) payroll.LateDeductionRuleRepository {
	return &lateDeductionRuleRepository{db: db}
}

func (r *lateDeductionRuleRepository) CreateRule(ctx context.Context, rule payroll.LateDeductionRule) (payroll.LateDeductionRule, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO late_deduction_rules (id, name, type, effective_date, per_minute_amount, ratio, max_amount)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at
	`

	rule.ID = uuid.NewString()
	err := q.QueryRow(ctx, query,
		rule.ID, rule.Name, string(rule.Type), rule.EffectiveDate, rule.PerMinuteAmount, rule.Ratio, rule.MaxAmount,
	).Scan(&rule.CreatedAt, &rule.UpdatedAt)
	if err != nil {
		return payroll.LateDeductionRule{}, fmt.Errorf("failed to create late deduction rule: %w", err)
	}

	itemQuery := `
		INSERT INTO late_deduction_rule_items (id, rule_id, min_minutes, max_minutes, amount)
		VALUES ($1, $2, $3, $4, $5)
	`
	for i := range rule.Items {
		rule.Items[i].ID = uuid.NewString()
		rule.Items[i].RuleID = rule.ID
		item := rule.Items[i]
		if _, err := q.Exec(ctx, itemQuery, item.ID, item.RuleID, item.MinMinutes, item.MaxMinutes, item.Amount); err != nil {
			return payroll.LateDeductionRule{}, fmt.Errorf("failed to create rule tier: %w", err)
		}
	}

	return rule, nil
}

func (r *lateDeductionRuleRepository) GetRuleByID(ctx context.Context, id string) (payroll.LateDeductionRule, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, type, effective_date, per_minute_amount, ratio, max_amount, created_at, updated_at
		FROM late_deduction_rules
		WHERE id = $1
	`

	var rule payroll.LateDeductionRule
	var ruleType string
	err := q.QueryRow(ctx, query, id).Scan(
		&rule.ID, &rule.Name, &ruleType, &rule.EffectiveDate,
		&rule.PerMinuteAmount, &rule.Ratio, &rule.MaxAmount, &rule.CreatedAt, &rule.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.LateDeductionRule{}, payroll.ErrRuleNotFound
		}
		return payroll.LateDeductionRule{}, fmt.Errorf("failed to get late deduction rule: %w", err)
	}
	rule.Type = payroll.LateDeductionRuleType(ruleType)

	items, err := r.getItems(ctx, rule.ID)
	if err != nil {
		return payroll.LateDeductionRule{}, err
	}
	rule.Items = items

	return rule, nil
}

func (r *lateDeductionRuleRepository) GetEffectiveRule(ctx context.Context, employeeID string, asOf time.Time) (payroll.LateDeductionRule, error) {
	q := GetQuerier(ctx, r.db)

	// Rules are company-wide; an employee-specific assignment overrides the
	// default when present.
	query := `
		SELECT r.id, r.name, r.type, r.effective_date, r.per_minute_amount, r.ratio, r.max_amount,
			   r.created_at, r.updated_at
		FROM late_deduction_rules r
		LEFT JOIN employee_late_rules er ON er.rule_id = r.id AND er.employee_id = $1
		WHERE r.effective_date <= $2
		ORDER BY (er.employee_id IS NOT NULL) DESC, r.effective_date DESC
		LIMIT 1
	`

	var rule payroll.LateDeductionRule
	var ruleType string
	err := q.QueryRow(ctx, query, employeeID, asOf).Scan(
		&rule.ID, &rule.Name, &ruleType, &rule.EffectiveDate,
		&rule.PerMinuteAmount, &rule.Ratio, &rule.MaxAmount, &rule.CreatedAt, &rule.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.LateDeductionRule{}, payroll.ErrRuleNotFound
		}
		return payroll.LateDeductionRule{}, fmt.Errorf("failed to get effective late deduction rule: %w", err)
	}
	rule.Type = payroll.LateDeductionRuleType(ruleType)

	items, err := r.getItems(ctx, rule.ID)
	if err != nil {
		return payroll.LateDeductionRule{}, err
	}
	rule.Items = items

	return rule, nil
}

func (r *lateDeductionRuleRepository) AssignRuleToEmployee(ctx context.Context, employeeID, ruleID string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO employee_late_rules (id, employee_id, rule_id)
		VALUES ($1, $2, $3)
		ON CONFLICT (employee_id) DO UPDATE SET rule_id = EXCLUDED.rule_id
	`

	if _, err := q.Exec(ctx, query, uuid.NewString(), employeeID, ruleID); err != nil {
		if isForeignKeyViolation(err) {
			return payroll.ErrRuleNotFound
		}
		return fmt.Errorf("failed to assign late deduction rule: %w", err)
	}

	return nil
}

func (r *lateDeductionRuleRepository) getItems(ctx context.Context, ruleID string) ([]payroll.LateDeductionRuleItem, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT id, rule_id, min_minutes, max_minutes, amount
		FROM late_deduction_rule_items
		WHERE rule_id = $1
		ORDER BY min_minutes
	`, ruleID)
	if err != nil {
		return nil, fmt.Errorf("failed to get rule tiers: %w", err)
	}
	defer rows.Close()

	var items []payroll.LateDeductionRuleItem
	for rows.Next() {
		var item payroll.LateDeductionRuleItem
		if err := rows.Scan(&item.ID, &item.RuleID, &item.MinMinutes, &item.MaxMinutes, &item.Amount); err != nil {
			return nil, fmt.Errorf("failed to scan rule tier: %w", err)
		}
		items = append(items, item)
	}

	return items, rows.Err()
}

func (r *lateDeductionRuleRepository) ListRules(ctx context.Context) ([]payroll.LateDeductionRule, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT id, name, type, effective_date, per_minute_amount, ratio, max_amount, created_at, updated_at
		FROM late_deduction_rules
		ORDER BY effective_date DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list late deduction rules: %w", err)
	}
	defer rows.Close()

	var rules []payroll.LateDeductionRule
	for rows.Next() {
		var rule payroll.LateDeductionRule
		var ruleType string
		if err := rows.Scan(&rule.ID, &rule.Name, &ruleType, &rule.EffectiveDate, &rule.PerMinuteAmount, &rule.Ratio, &rule.MaxAmount, &rule.CreatedAt, &rule.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan late deduction rule: %w", err)
		}
		rule.Type = payroll.LateDeductionRuleType(ruleType)
		rules = append(rules, rule)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range rules {
		items, err := r.getItems(ctx, rules[i].ID)
		if err != nil {
			return nil, err
		}
		rules[i].Items = items
	}

	return rules, nil
}

// ========== CALCULATIONS ==========

type calculationRepository struct {
	db *database.DB
}

func NewCalculationRepository(db *database.DB) payroll.CalculationRepository {
	return &calculationRepository{db: db}
}

func (r *calculationRepository) Upsert(ctx context.Context, calc payroll.PayrollCalculation) (payroll.PayrollCalculation, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO payroll_calculations (
			id, employee_id, period, base_salary, work_days, leave_days, overtime_hours,
			total_late_minutes, total_additions, total_deductions, late_deduction,
			labor_insurance, health_insurance, employment_insurance, pension,
			net_salary, status, calculated_by
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
		ON CONFLICT (period, employee_id) DO UPDATE SET
			base_salary = EXCLUDED.base_salary,
			work_days = EXCLUDED.work_days,
			leave_days = EXCLUDED.leave_days,
			overtime_hours = EXCLUDED.overtime_hours,
			total_late_minutes = EXCLUDED.total_late_minutes,
			total_additions = EXCLUDED.total_additions,
			total_deductions = EXCLUDED.total_deductions,
			late_deduction = EXCLUDED.late_deduction,
			labor_insurance = EXCLUDED.labor_insurance,
			health_insurance = EXCLUDED.health_insurance,
			employment_insurance = EXCLUDED.employment_insurance,
			pension = EXCLUDED.pension,
			net_salary = EXCLUDED.net_salary,
			status = 'draft',
			calculated_by = EXCLUDED.calculated_by,
			transfer_batch_id = NULL,
			updated_at = NOW()
		RETURNING id, status, created_at, updated_at
	`

	var status string
	err := q.QueryRow(ctx, query,
		uuid.NewString(), calc.EmployeeID, calc.Period, calc.BaseSalary, calc.WorkDays, calc.LeaveDays,
		calc.OvertimeHours, calc.TotalLateMinutes, calc.TotalAdditions, calc.TotalDeductions,
		calc.LateDeduction, calc.LaborInsurance, calc.HealthInsurance, calc.EmploymentInsurance,
		calc.Pension, calc.NetSalary, string(payroll.CalculationStatusDraft), calc.CalculatedBy,
	).Scan(&calc.ID, &status, &calc.CreatedAt, &calc.UpdatedAt)
	if err != nil {
		return payroll.PayrollCalculation{}, fmt.Errorf("failed to upsert payroll calculation: %w", err)
	}
	calc.Status = payroll.CalculationStatus(status)

	return calc, nil
}

const calculationColumns = `
	c.id, c.employee_id, c.period, c.base_salary, c.work_days, c.leave_days, c.overtime_hours,
	c.total_late_minutes, c.total_additions, c.total_deductions, c.late_deduction,
	c.labor_insurance, c.health_insurance, c.employment_insurance, c.pension,
	c.net_salary, c.status, c.calculated_by, c.transfer_batch_id, c.created_at, c.updated_at,
	e.name, e.code
`

func (r *calculationRepository) scanCalculation(row pgx.Row) (payroll.PayrollCalculation, error) {
	var c payroll.PayrollCalculation
	var status string
	err := row.Scan(
		&c.ID, &c.EmployeeID, &c.Period, &c.BaseSalary, &c.WorkDays, &c.LeaveDays, &c.OvertimeHours,
		&c.TotalLateMinutes, &c.TotalAdditions, &c.TotalDeductions, &c.LateDeduction,
		&c.LaborInsurance, &c.HealthInsurance, &c.EmploymentInsurance, &c.Pension,
		&c.NetSalary, &status, &c.CalculatedBy, &c.TransferBatchID, &c.CreatedAt, &c.UpdatedAt,
		&c.EmployeeName, &c.EmployeeCode,
	)
	if err != nil {
		return payroll.PayrollCalculation{}, err
	}
	c.Status = payroll.CalculationStatus(status)
	return c, nil
}

func (r *calculationRepository) GetByID(ctx context.Context, id string) (payroll.PayrollCalculation, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + calculationColumns + `
		FROM payroll_calculations c
		JOIN employees e ON e.id = c.employee_id
		WHERE c.id = $1
	`

	c, err := r.scanCalculation(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.PayrollCalculation{}, payroll.ErrCalculationNotFound
		}
		return payroll.PayrollCalculation{}, fmt.Errorf("failed to get payroll calculation: %w", err)
	}

	return c, nil
}

func (r *calculationRepository) GetByEmployeePeriod(ctx context.Context, employeeID, period string) (payroll.PayrollCalculation, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + calculationColumns + `
		FROM payroll_calculations c
		JOIN employees e ON e.id = c.employee_id
		WHERE c.employee_id = $1 AND c.period = $2
	`

	c, err := r.scanCalculation(q.QueryRow(ctx, query, employeeID, period))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.PayrollCalculation{}, payroll.ErrCalculationNotFound
		}
		return payroll.PayrollCalculation{}, fmt.Errorf("failed to get payroll calculation: %w", err)
	}

	return c, nil
}

func (r *calculationRepository) ListByPeriod(ctx context.Context, period string) ([]payroll.PayrollCalculation, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + calculationColumns + `
		FROM payroll_calculations c
		JOIN employees e ON e.id = c.employee_id
		WHERE c.period = $1
		ORDER BY e.code
	`

	rows, err := q.Query(ctx, query, period)
	if err != nil {
		return nil, fmt.Errorf("failed to list payroll calculations: %w", err)
	}
	defer rows.Close()

	var calcs []payroll.PayrollCalculation
	for rows.Next() {
		c, err := r.scanCalculation(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payroll calculation: %w", err)
		}
		calcs = append(calcs, c)
	}

	return calcs, rows.Err()
}

func (r *calculationRepository) UpdateStatus(ctx context.Context, ids []string, from, to payroll.CalculationStatus) (int64, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE payroll_calculations
		SET status = $1, updated_at = NOW()
		WHERE id = ANY($2) AND status = $3
	`

	tag, err := q.Exec(ctx, query, string(to), ids, string(from))
	if err != nil {
		return 0, fmt.Errorf("failed to update calculation status: %w", err)
	}

	return tag.RowsAffected(), nil
}

func (r *calculationRepository) AttachToBatch(ctx context.Context, ids []string, batchID string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE payroll_calculations
		SET transfer_batch_id = $1, status = 'transferred', updated_at = NOW()
		WHERE id = ANY($2) AND status = 'confirmed'
	`

	tag, err := q.Exec(ctx, query, batchID, ids)
	if err != nil {
		return fmt.Errorf("failed to attach calculations to batch: %w", err)
	}
	if tag.RowsAffected() != int64(len(ids)) {
		return payroll.ErrCalculationNotConfirmed
	}

	return nil
}

func (r *calculationRepository) CreateBatch(ctx context.Context, batch payroll.SalaryTransferBatch) (payroll.SalaryTransferBatch, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO salary_transfer_batches (id, period, total_net, employee_count, journal_entry_id, status, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at
	`

	batch.ID = uuid.NewString()
	err := q.QueryRow(ctx, query,
		batch.ID, batch.Period, batch.TotalNet, batch.EmployeeCount, batch.JournalEntryID, string(batch.Status), batch.CreatedBy,
	).Scan(&batch.CreatedAt)
	if err != nil {
		return payroll.SalaryTransferBatch{}, fmt.Errorf("failed to create salary transfer batch: %w", err)
	}

	return batch, nil
}

func (r *calculationRepository) GetBatchByID(ctx context.Context, id string) (payroll.SalaryTransferBatch, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, period, total_net, employee_count, journal_entry_id, status, created_by, created_at
		FROM salary_transfer_batches
		WHERE id = $1
	`

	var b payroll.SalaryTransferBatch
	var status string
	err := q.QueryRow(ctx, query, id).Scan(
		&b.ID, &b.Period, &b.TotalNet, &b.EmployeeCount, &b.JournalEntryID, &status, &b.CreatedBy, &b.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.SalaryTransferBatch{}, payroll.ErrBatchNotFound
		}
		return payroll.SalaryTransferBatch{}, fmt.Errorf("failed to get salary transfer batch: %w", err)
	}
	b.Status = payroll.TransferBatchStatus(status)

	return b, nil
}
