package master

import "context"

type DepartmentRepository interface {
	Create(ctx context.Context, d Department) (Department, error)
	List(ctx context.Context) ([]Department, error)
	// Delete hard-deletes; fails with ErrDepartmentInUse when employees
	// still reference the department.
	Delete(ctx context.Context, id string) error
}

type PositionRepository interface {
	Create(ctx context.Context, p Position) (Position, error)
	List(ctx context.Context) ([]Position, error)
	Delete(ctx context.Context, id string) error
}
