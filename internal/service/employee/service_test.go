package employee

import (
	"context"
	"strconv"
	"strings"
	"testing"

	"github.com/remitdesk/backoffice-go/internal/domain/employee"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEmployeeRepo struct {
	codes       map[string]bool
	failOnce    bool
	createCalls int
}

func (f *fakeEmployeeRepo) Create(ctx context.Context, emp employee.Employee) (employee.Employee, error) {
	f.createCalls++
	if f.failOnce {
		// Simulate a concurrent writer that claimed the code first.
		f.failOnce = false
		f.codes[emp.Code] = true
		return employee.Employee{}, employee.ErrEmployeeCodeExists
	}
	if f.codes[emp.Code] {
		return employee.Employee{}, employee.ErrEmployeeCodeExists
	}
	f.codes[emp.Code] = true
	emp.ID = "emp-1"
	emp.IsActive = true
	return emp, nil
}

func (f *fakeEmployeeRepo) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (f *fakeEmployeeRepo) GetByCode(ctx context.Context, code string) (employee.Employee, error) {
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (f *fakeEmployeeRepo) List(ctx context.Context, activeOnly bool) ([]employee.Employee, error) {
	return nil, nil
}

func (f *fakeEmployeeRepo) Update(ctx context.Context, emp employee.Employee) error {
	return nil
}

func (f *fakeEmployeeRepo) Deactivate(ctx context.Context, id string) error {
	return nil
}

func (f *fakeEmployeeRepo) MaxCodeSequence(ctx context.Context) (int, error) {
	max := 0
	for code := range f.codes {
		n, err := strconv.Atoi(strings.TrimPrefix(code, "EMP-"))
		if err == nil && n > max {
			max = n
		}
	}
	return max, nil
}

func TestCreate_AssignsFirstCode(t *testing.T) {
	repo := &fakeEmployeeRepo{codes: map[string]bool{}}
	svc := NewService(repo)

	resp, err := svc.Create(context.Background(), employee.CreateEmployeeRequest{
		Name:     "Chen Wei",
		Email:    "chen.wei@example.com",
		HireDate: "2026-08-01",
	})
	require.NoError(t, err)

	assert.Equal(t, "EMP-0001", resp.Code)
}

func TestCreate_NextCodeFollowsSequence(t *testing.T) {
	repo := &fakeEmployeeRepo{codes: map[string]bool{"EMP-0007": true}}
	svc := NewService(repo)

	resp, err := svc.Create(context.Background(), employee.CreateEmployeeRequest{
		Name:     "Lin Mei",
		Email:    "lin.mei@example.com",
		HireDate: "2026-08-01",
	})
	require.NoError(t, err)

	assert.Equal(t, "EMP-0008", resp.Code)
}

func TestCreate_RetriesOnCodeCollision(t *testing.T) {
	repo := &fakeEmployeeRepo{codes: map[string]bool{}, failOnce: true}
	svc := NewService(repo)

	resp, err := svc.Create(context.Background(), employee.CreateEmployeeRequest{
		Name:     "Chen Wei",
		Email:    "chen.wei@example.com",
		HireDate: "2026-08-01",
	})
	require.NoError(t, err)

	// First attempt lost the race on EMP-0001, the retry picked EMP-0002.
	assert.Equal(t, 2, repo.createCalls)
	assert.Equal(t, "EMP-0002", resp.Code)
}
