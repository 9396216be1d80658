package attendance

import (
	"context"
	"testing"
	"time"

	"github.com/remitdesk/backoffice-go/internal/domain/attendance"
	"github.com/remitdesk/backoffice-go/internal/domain/employee"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAttendanceRepo struct {
	records map[string]attendance.AttendanceRecord
}

func recordKey(employeeID string, date time.Time) string {
	return employeeID + "|" + date.Format("2006-01-02")
}

func (f *fakeAttendanceRepo) Create(ctx context.Context, record attendance.AttendanceRecord) (attendance.AttendanceRecord, error) {
	if f.records == nil {
		f.records = make(map[string]attendance.AttendanceRecord)
	}
	key := recordKey(record.EmployeeID, record.Date)
	if _, exists := f.records[key]; exists {
		return attendance.AttendanceRecord{}, attendance.ErrAlreadyClockedIn
	}
	record.ID = "rec-" + key
	f.records[key] = record
	return record, nil
}

func (f *fakeAttendanceRepo) Update(ctx context.Context, record attendance.AttendanceRecord) error {
	f.records[recordKey(record.EmployeeID, record.Date)] = record
	return nil
}

func (f *fakeAttendanceRepo) GetByEmployeeDate(ctx context.Context, employeeID string, date time.Time) (attendance.AttendanceRecord, error) {
	rec, ok := f.records[recordKey(employeeID, date)]
	if !ok {
		return attendance.AttendanceRecord{}, attendance.ErrRecordNotFound
	}
	return rec, nil
}

func (f *fakeAttendanceRepo) ListByEmployeeRange(ctx context.Context, employeeID string, from, to time.Time) ([]attendance.AttendanceRecord, error) {
	var out []attendance.AttendanceRecord
	for _, rec := range f.records {
		if rec.EmployeeID == employeeID && !rec.Date.Before(from) && !rec.Date.After(to) {
			out = append(out, rec)
		}
	}
	return out, nil
}

type fakeScheduleRepo struct {
	schedule attendance.WorkSchedule
}

func (f *fakeScheduleRepo) GetByEmployee(ctx context.Context, employeeID string) (attendance.WorkSchedule, error) {
	if f.schedule.EmployeeID != employeeID {
		return attendance.WorkSchedule{}, attendance.ErrScheduleNotFound
	}
	return f.schedule, nil
}

func (f *fakeScheduleRepo) Upsert(ctx context.Context, schedule attendance.WorkSchedule) (attendance.WorkSchedule, error) {
	f.schedule = schedule
	return schedule, nil
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

func newFixture(active bool) (*Service, *fakeAttendanceRepo) {
	attendanceRepo := &fakeAttendanceRepo{}
	scheduleRepo := &fakeScheduleRepo{
		schedule: attendance.WorkSchedule{ID: "sched-1", EmployeeID: "emp-1", StartTime: "09:00", EndTime: "18:00"},
	}
	employeeRepo := &fakeEmployeeRepo{
		emp: employee.Employee{ID: "emp-1", Name: "Chen Wei", IsActive: active},
	}
	return NewService(attendanceRepo, scheduleRepo, employeeRepo), attendanceRepo
}

func TestClockIn_OnTime(t *testing.T) {
	svc, _ := newFixture(true)

	resp, err := svc.ClockIn(context.Background(), attendance.ClockRequest{
		EmployeeID: "emp-1",
		Timestamp:  "2026-08-31T08:55:00Z",
	})
	require.NoError(t, err)

	assert.Equal(t, 0, resp.LateMinutes)
	assert.Equal(t, string(attendance.StatusNormal), resp.Status)
	assert.Equal(t, "2026-08-31", resp.Date)
}

func TestClockIn_Late(t *testing.T) {
	svc, _ := newFixture(true)

	resp, err := svc.ClockIn(context.Background(), attendance.ClockRequest{
		EmployeeID: "emp-1",
		Timestamp:  "2026-08-31T09:25:00Z",
	})
	require.NoError(t, err)

	assert.Equal(t, 25, resp.LateMinutes)
	assert.Equal(t, string(attendance.StatusLate), resp.Status)
}

func TestClockIn_Twice(t *testing.T) {
	svc, _ := newFixture(true)
	ctx := context.Background()

	_, err := svc.ClockIn(ctx, attendance.ClockRequest{EmployeeID: "emp-1", Timestamp: "2026-08-31T09:00:00Z"})
	require.NoError(t, err)

	_, err = svc.ClockIn(ctx, attendance.ClockRequest{EmployeeID: "emp-1", Timestamp: "2026-08-31T09:30:00Z"})
	assert.ErrorIs(t, err, attendance.ErrAlreadyClockedIn)
}

func TestClockIn_InactiveEmployee(t *testing.T) {
	svc, _ := newFixture(false)

	_, err := svc.ClockIn(context.Background(), attendance.ClockRequest{
		EmployeeID: "emp-1",
		Timestamp:  "2026-08-31T09:00:00Z",
	})
	assert.ErrorIs(t, err, attendance.ErrEmployeeNotActive)
}

func TestClockOut_WithoutClockIn(t *testing.T) {
	svc, _ := newFixture(true)

	_, err := svc.ClockOut(context.Background(), attendance.ClockRequest{
		EmployeeID: "emp-1",
		Timestamp:  "2026-08-31T18:00:00Z",
	})
	assert.ErrorIs(t, err, attendance.ErrNotClockedIn)
}

func TestClockOut_Overtime(t *testing.T) {
	svc, _ := newFixture(true)
	ctx := context.Background()

	_, err := svc.ClockIn(ctx, attendance.ClockRequest{EmployeeID: "emp-1", Timestamp: "2026-08-31T09:00:00Z"})
	require.NoError(t, err)

	resp, err := svc.ClockOut(ctx, attendance.ClockRequest{EmployeeID: "emp-1", Timestamp: "2026-08-31T20:30:00Z"})
	require.NoError(t, err)

	assert.Equal(t, "2.5", resp.OvertimeHours.String())
	assert.Equal(t, "11.5", resp.WorkHours.String())
	assert.Equal(t, 0, resp.EarlyLeaveMinutes)
	assert.Equal(t, string(attendance.StatusNormal), resp.Status)
}

func TestClockOut_EarlyLeave(t *testing.T) {
	svc, _ := newFixture(true)
	ctx := context.Background()

	_, err := svc.ClockIn(ctx, attendance.ClockRequest{EmployeeID: "emp-1", Timestamp: "2026-08-31T09:00:00Z"})
	require.NoError(t, err)

	resp, err := svc.ClockOut(ctx, attendance.ClockRequest{EmployeeID: "emp-1", Timestamp: "2026-08-31T17:30:00Z"})
	require.NoError(t, err)

	assert.Equal(t, 30, resp.EarlyLeaveMinutes)
	assert.True(t, resp.OvertimeHours.IsZero())
	assert.Equal(t, string(attendance.StatusEarlyLeave), resp.Status)
}

func TestClockOut_LateWinsOverEarlyLeave(t *testing.T) {
	svc, _ := newFixture(true)
	ctx := context.Background()

	_, err := svc.ClockIn(ctx, attendance.ClockRequest{EmployeeID: "emp-1", Timestamp: "2026-08-31T09:40:00Z"})
	require.NoError(t, err)

	resp, err := svc.ClockOut(ctx, attendance.ClockRequest{EmployeeID: "emp-1", Timestamp: "2026-08-31T17:00:00Z"})
	require.NoError(t, err)

	assert.Equal(t, 40, resp.LateMinutes)
	assert.Equal(t, 60, resp.EarlyLeaveMinutes)
	assert.Equal(t, string(attendance.StatusLate), resp.Status)
}

func TestClockOut_BeforeClockIn(t *testing.T) {
	svc, _ := newFixture(true)
	ctx := context.Background()

	_, err := svc.ClockIn(ctx, attendance.ClockRequest{EmployeeID: "emp-1", Timestamp: "2026-08-31T09:00:00Z"})
	require.NoError(t, err)

	_, err = svc.ClockOut(ctx, attendance.ClockRequest{EmployeeID: "emp-1", Timestamp: "2026-08-31T08:00:00Z"})
	assert.ErrorIs(t, err, attendance.ErrClockOutBeforeIn)
}

func TestClockOut_Twice(t *testing.T) {
	svc, _ := newFixture(true)
	ctx := context.Background()

	_, err := svc.ClockIn(ctx, attendance.ClockRequest{EmployeeID: "emp-1", Timestamp: "2026-08-31T09:00:00Z"})
	require.NoError(t, err)
	_, err = svc.ClockOut(ctx, attendance.ClockRequest{EmployeeID: "emp-1", Timestamp: "2026-08-31T18:00:00Z"})
	require.NoError(t, err)

	_, err = svc.ClockOut(ctx, attendance.ClockRequest{EmployeeID: "emp-1", Timestamp: "2026-08-31T19:00:00Z"})
	assert.ErrorIs(t, err, attendance.ErrAlreadyClockedOut)
}
