package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/remitdesk/backoffice-go/internal/domain/employee"
	"github.com/remitdesk/backoffice-go/internal/pkg/database"
)

type employeeRepository struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepository{db: db}
}

func (r *employeeRepository) Create(ctx context.Context, emp employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO employees (id, code, name, email, department_id, position_id, hire_date, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, true)
		RETURNING is_active, created_at, updated_at
	`

	emp.ID = uuid.NewString()
	err := q.QueryRow(ctx, query,
		emp.ID, emp.Code, emp.Name, emp.Email, emp.DepartmentID, emp.PositionID, emp.HireDate,
	).Scan(&emp.IsActive, &emp.CreatedAt, &emp.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return employee.Employee{}, classifyEmployeeConflict(err)
		}
		return employee.Employee{}, fmt.Errorf("failed to create employee: %w", err)
	}

	return emp, nil
}

func classifyEmployeeConflict(err error) error {
	if constraintName(err) == "employees_email_key" {
		return employee.ErrEmailExists
	}
	return employee.ErrEmployeeCodeExists
}

const employeeColumns = `
	emp.id, emp.code, emp.name, emp.email, emp.department_id, emp.position_id,
	emp.hire_date, emp.is_active, emp.created_at, emp.updated_at,
	d.name, p.name
`

const employeeJoins = `
	FROM employees emp
	LEFT JOIN departments d ON d.id = emp.department_id
	LEFT JOIN positions p ON p.id = emp.position_id
`

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var e employee.Employee
	err := row.Scan(
		&e.ID, &e.Code, &e.Name, &e.Email, &e.DepartmentID, &e.PositionID,
		&e.HireDate, &e.IsActive, &e.CreatedAt, &e.UpdatedAt,
		&e.DepartmentName, &e.PositionName,
	)
	return e, err
}

func (r *employeeRepository) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	return r.getBy(ctx, "emp.id", id)
}

func (r *employeeRepository) GetByCode(ctx context.Context, code string) (employee.Employee, error) {
	return r.getBy(ctx, "emp.code", code)
}

func (r *employeeRepository) getBy(ctx context.Context, column, value string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + employeeColumns + employeeJoins + fmt.Sprintf(` WHERE %s = $1`, column)

	e, err := scanEmployee(q.QueryRow(ctx, query, value))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee: %w", err)
	}

	return e, nil
}

func (r *employeeRepository) List(ctx context.Context, activeOnly bool) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + employeeColumns + employeeJoins
	if activeOnly {
		query += ` WHERE emp.is_active = true`
	}
	query += ` ORDER BY emp.code`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, e)
	}

	return employees, rows.Err()
}

func (r *employeeRepository) Update(ctx context.Context, emp employee.Employee) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE employees
		SET name = $2, email = $3, department_id = $4, position_id = $5, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query, emp.ID, emp.Name, emp.Email, emp.DepartmentID, emp.PositionID)
	if err != nil {
		if isUniqueViolation(err) {
			return employee.ErrEmailExists
		}
		return fmt.Errorf("failed to update employee: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}

	return nil
}

func (r *employeeRepository) Deactivate(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `UPDATE employees SET is_active = false, updated_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to deactivate employee: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}

	return nil
}

func (r *employeeRepository) MaxCodeSequence(ctx context.Context) (int, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COALESCE(MAX(SUBSTRING(code FROM 5)::int), 0)
		FROM employees
		WHERE code LIKE 'EMP-%'
	`

	var max int
	if err := q.QueryRow(ctx, query).Scan(&max); err != nil {
		return 0, fmt.Errorf("failed to get max employee code sequence: %w", err)
	}

	return max, nil
}
