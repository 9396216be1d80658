package postgresql

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/remitdesk/backoffice-go/internal/domain/master"
	"github.com/remitdesk/backoffice-go/internal/pkg/database"
)

type departmentRepository struct {
	db *database.DB
}

func NewDepartmentRepository(db *database.DB) master.DepartmentRepository {
	return &departmentRepository{db: db}
}

func (r *departmentRepository) Create(ctx context.Context, d master.Department) (master.Department, error) {
	q := GetQuerier(ctx, r.db)

	d.ID = uuid.NewString()
	err := q.QueryRow(ctx, `
		INSERT INTO departments (id, name) VALUES ($1, $2)
		RETURNING created_at, updated_at
	`, d.ID, d.Name).Scan(&d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return master.Department{}, fmt.Errorf("failed to create department: %w", err)
	}

	return d, nil
}

func (r *departmentRepository) List(ctx context.Context) ([]master.Department, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT id, name, created_at, updated_at FROM departments ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list departments: %w", err)
	}
	defer rows.Close()

	var departments []master.Department
	for rows.Next() {
		var d master.Department
		if err := rows.Scan(&d.ID, &d.Name, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan department: %w", err)
		}
		departments = append(departments, d)
	}

	return departments, rows.Err()
}

func (r *departmentRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM departments WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return master.ErrDepartmentInUse
		}
		return fmt.Errorf("failed to delete department: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return master.ErrDepartmentNotFound
	}

	return nil
}

type positionRepository struct {
	db *database.DB
}

func NewPositionRepository(db *database.DB) master.PositionRepository {
	return &positionRepository{db: db}
}

func (r *positionRepository) Create(ctx context.Context, p master.Position) (master.Position, error) {
	q := GetQuerier(ctx, r.db)

	p.ID = uuid.NewString()
	err := q.QueryRow(ctx, `
		INSERT INTO positions (id, name) VALUES ($1, $2)
		RETURNING created_at, updated_at
	`, p.ID, p.Name).Scan(&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return master.Position{}, fmt.Errorf("failed to create position: %w", err)
	}

	return p, nil
}

func (r *positionRepository) List(ctx context.Context) ([]master.Position, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT id, name, created_at, updated_at FROM positions ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list positions: %w", err)
	}
	defer rows.Close()

	var positions []master.Position
	for rows.Next() {
		var p master.Position
		if err := rows.Scan(&p.ID, &p.Name, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan position: %w", err)
		}
		positions = append(positions, p)
	}

	return positions, rows.Err()
}

func (r *positionRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM positions WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return master.ErrPositionInUse
		}
		return fmt.Errorf("failed to delete position: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return master.ErrPositionNotFound
	}

	return nil
}
