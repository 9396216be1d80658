package attendance

import (
	"context"
	"errors"
	"time"

	"github.com/remitdesk/backoffice-go/internal/domain/attendance"
	"github.com/remitdesk/backoffice-go/internal/domain/employee"
	"github.com/remitdesk/backoffice-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type Service struct {
	attendanceRepo attendance.AttendanceRepository
	scheduleRepo   attendance.WorkScheduleRepository
	employeeRepo   employee.EmployeeRepository
}

func NewService(
	attendanceRepo attendance.AttendanceRepository,
	scheduleRepo attendance.WorkScheduleRepository,
	employeeRepo employee.EmployeeRepository,
) *Service {
	return &Service{
		attendanceRepo: attendanceRepo,
		scheduleRepo:   scheduleRepo,
		employeeRepo:   employeeRepo,
	}
}

// ClockIn records the day's first punch. Lateness against the schedule is
// derived here and stored, so payroll never re-derives it.
func (s *Service) ClockIn(ctx context.Context, req attendance.ClockRequest) (attendance.RecordResponse, error) {
	emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return attendance.RecordResponse{}, err
	}
	if !emp.IsActive {
		return attendance.RecordResponse{}, attendance.ErrEmployeeNotActive
	}

	at, err := resolveTimestamp(req.Timestamp)
	if err != nil {
		return attendance.RecordResponse{}, err
	}
	date := dateOnly(at)

	schedule, err := s.scheduleRepo.GetByEmployee(ctx, emp.ID)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	if _, err := s.attendanceRepo.GetByEmployeeDate(ctx, emp.ID, date); err == nil {
		return attendance.RecordResponse{}, attendance.ErrAlreadyClockedIn
	} else if !errors.Is(err, attendance.ErrRecordNotFound) {
		return attendance.RecordResponse{}, err
	}

	start := clockOnDate(date, schedule.StartTime)
	lateMinutes := 0
	if at.After(start) {
		lateMinutes = int(at.Sub(start).Minutes())
	}

	status := attendance.StatusNormal
	if lateMinutes > 0 {
		status = attendance.StatusLate
	}

	record := attendance.AttendanceRecord{
		EmployeeID:  emp.ID,
		Date:        date,
		ClockIn:     &at,
		LateMinutes: lateMinutes,
		Status:      status,
	}

	created, err := s.attendanceRepo.Create(ctx, record)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	return toRecordResponse(created), nil
}

// ClockOut completes the day's record, deriving work hours, overtime and
// early-leave minutes. Late wins over early_leave when both apply.
func (s *Service) ClockOut(ctx context.Context, req attendance.ClockRequest) (attendance.RecordResponse, error) {
	at, err := resolveTimestamp(req.Timestamp)
	if err != nil {
		return attendance.RecordResponse{}, err
	}
	date := dateOnly(at)

	record, err := s.attendanceRepo.GetByEmployeeDate(ctx, req.EmployeeID, date)
	if err != nil {
		if errors.Is(err, attendance.ErrRecordNotFound) {
			return attendance.RecordResponse{}, attendance.ErrNotClockedIn
		}
		return attendance.RecordResponse{}, err
	}
	if record.ClockIn == nil {
		return attendance.RecordResponse{}, attendance.ErrNotClockedIn
	}
	if record.ClockOut != nil {
		return attendance.RecordResponse{}, attendance.ErrAlreadyClockedOut
	}
	if at.Before(*record.ClockIn) {
		return attendance.RecordResponse{}, attendance.ErrClockOutBeforeIn
	}

	schedule, err := s.scheduleRepo.GetByEmployee(ctx, req.EmployeeID)
	if err != nil {
		return attendance.RecordResponse{}, err
	}
	end := clockOnDate(date, schedule.EndTime)

	earlyLeaveMinutes := 0
	overtime := decimal.Zero
	if at.Before(end) {
		earlyLeaveMinutes = int(end.Sub(at).Minutes())
	} else {
		overtime = decimal.NewFromFloat(at.Sub(end).Hours()).Round(2)
	}

	record.ClockOut = &at
	record.WorkHours = decimal.NewFromFloat(at.Sub(*record.ClockIn).Hours()).Round(2)
	record.OvertimeHours = overtime
	record.EarlyLeaveMinutes = earlyLeaveMinutes

	if record.LateMinutes > 0 {
		record.Status = attendance.StatusLate
	} else if earlyLeaveMinutes > 0 {
		record.Status = attendance.StatusEarlyLeave
	} else {
		record.Status = attendance.StatusNormal
	}

	if err := s.attendanceRepo.Update(ctx, record); err != nil {
		return attendance.RecordResponse{}, err
	}

	return toRecordResponse(record), nil
}

func (s *Service) ListRecords(ctx context.Context, employeeID, fromStr, toStr string) ([]attendance.RecordResponse, error) {
	from, okFrom := validator.IsValidDate(fromStr)
	to, okTo := validator.IsValidDate(toStr)
	if !okFrom || !okTo || to.Before(from) {
		return nil, validator.ValidationErrors{
			{Field: "date_range", Message: "from and to must be valid dates with from <= to"},
		}
	}

	records, err := s.attendanceRepo.ListByEmployeeRange(ctx, employeeID, from, to)
	if err != nil {
		return nil, err
	}

	responses := make([]attendance.RecordResponse, 0, len(records))
	for _, rec := range records {
		responses = append(responses, toRecordResponse(rec))
	}
	return responses, nil
}

func (s *Service) UpsertSchedule(ctx context.Context, req attendance.UpsertScheduleRequest) (attendance.WorkSchedule, error) {
	if err := req.Validate(); err != nil {
		return attendance.WorkSchedule{}, err
	}

	if _, err := s.employeeRepo.GetByID(ctx, req.EmployeeID); err != nil {
		return attendance.WorkSchedule{}, err
	}

	return s.scheduleRepo.Upsert(ctx, attendance.WorkSchedule{
		EmployeeID: req.EmployeeID,
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
	})
}

func (s *Service) GetSchedule(ctx context.Context, employeeID string) (attendance.WorkSchedule, error) {
	return s.scheduleRepo.GetByEmployee(ctx, employeeID)
}

func resolveTimestamp(raw string) (time.Time, error) {
	if raw == "" {
		return time.Now(), nil
	}
	at, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, validator.ValidationErrors{
			{Field: "timestamp", Message: "must be RFC3339"},
		}
	}
	return at, nil
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// clockOnDate combines a date with an "HH:MM" schedule time.
func clockOnDate(date time.Time, clock string) time.Time {
	parsed, err := time.Parse("15:04", clock)
	if err != nil {
		return date
	}
	return time.Date(date.Year(), date.Month(), date.Day(), parsed.Hour(), parsed.Minute(), 0, 0, date.Location())
}

func toRecordResponse(rec attendance.AttendanceRecord) attendance.RecordResponse {
	resp := attendance.RecordResponse{
		ID:                rec.ID,
		EmployeeID:        rec.EmployeeID,
		Date:              rec.Date.Format("2006-01-02"),
		WorkHours:         rec.WorkHours,
		OvertimeHours:     rec.OvertimeHours,
		LateMinutes:       rec.LateMinutes,
		EarlyLeaveMinutes: rec.EarlyLeaveMinutes,
		Status:            string(rec.Status),
	}
	if rec.ClockIn != nil {
		s := rec.ClockIn.Format(time.RFC3339)
		resp.ClockIn = &s
	}
	if rec.ClockOut != nil {
		s := rec.ClockOut.Format(time.RFC3339)
		resp.ClockOut = &s
	}
	return resp
}
