package leave

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/remitdesk/backoffice-go/internal/domain/employee"
	"github.com/remitdesk/backoffice-go/internal/domain/leave"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

type fakeLeaveRepo struct {
	overlapping bool
}

func (f *fakeLeaveRepo) Create(ctx context.Context, req leave.LeaveRequest) (leave.LeaveRequest, error) {
	return leave.LeaveRequest{}, errors.New("not implemented")
}

func (f *fakeLeaveRepo) GetByID(ctx context.Context, id string) (leave.LeaveRequest, error) {
	return leave.LeaveRequest{}, leave.ErrRequestNotFound
}

func (f *fakeLeaveRepo) ListByEmployee(ctx context.Context, employeeID string) ([]leave.LeaveRequest, error) {
	return nil, nil
}

func (f *fakeLeaveRepo) ListApprovedOverlapping(ctx context.Context, employeeID string, from, to time.Time) ([]leave.LeaveRequest, error) {
	return nil, nil
}

func (f *fakeLeaveRepo) CheckOverlapping(ctx context.Context, employeeID string, start, end time.Time) (bool, error) {
	return f.overlapping, nil
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
	return nil, nil
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

func TestCreateRequest_OverlapRefused(t *testing.T) {
	svc := NewService(nil, &fakeLeaveRepo{overlapping: true}, nil, &fakeEmployeeRepo{
		emp: employee.Employee{ID: "emp-1", Name: "Chen Wei", IsActive: true},
	})

	_, err := svc.CreateRequest(context.Background(), leave.CreateLeaveRequestRequest{
		EmployeeID: "emp-1",
		StartDate:  "2026-09-01",
		EndDate:    "2026-09-03",
		TotalDays:  decimal.NewFromInt(3),
		Reason:     "family trip",
	}, "user-1")
	assert.ErrorIs(t, err, leave.ErrOverlappingLeave)
}

func TestCreateRequest_InactiveEmployee(t *testing.T) {
	svc := NewService(nil, &fakeLeaveRepo{}, nil, &fakeEmployeeRepo{
		emp: employee.Employee{ID: "emp-1", Name: "Chen Wei", IsActive: false},
	})

	_, err := svc.CreateRequest(context.Background(), leave.CreateLeaveRequestRequest{
		EmployeeID: "emp-1",
		StartDate:  "2026-09-01",
		EndDate:    "2026-09-03",
		TotalDays:  decimal.NewFromInt(3),
		Reason:     "family trip",
	}, "user-1")
	assert.ErrorIs(t, err, employee.ErrEmployeeInactive)
}

func TestCreateRequest_EndBeforeStart(t *testing.T) {
	svc := NewService(nil, &fakeLeaveRepo{}, nil, &fakeEmployeeRepo{
		emp: employee.Employee{ID: "emp-1", IsActive: true},
	})

	_, err := svc.CreateRequest(context.Background(), leave.CreateLeaveRequestRequest{
		EmployeeID: "emp-1",
		StartDate:  "2026-09-03",
		EndDate:    "2026-09-01",
		TotalDays:  decimal.NewFromInt(3),
		Reason:     "family trip",
	}, "user-1")
	assert.Error(t, err)
}
