package employee

import "context"

type EmployeeRepository interface {
	// Create assigns the next EMP-NNNN code. Returns ErrEmployeeCodeExists on
	// a code collision so the caller can retry with a fresh sequence.
	Create(ctx context.Context, emp Employee) (Employee, error)
	GetByID(ctx context.Context, id string) (Employee, error)
	GetByCode(ctx context.Context, code string) (Employee, error)
	List(ctx context.Context, activeOnly bool) ([]Employee, error)
	Update(ctx context.Context, emp Employee) error
	Deactivate(ctx context.Context, id string) error
	// MaxCodeSequence returns the greatest numeric suffix of existing
	// EMP-NNNN codes, 0 when none exist.
	MaxCodeSequence(ctx context.Context) (int, error)
}
