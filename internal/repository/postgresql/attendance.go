package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/remitdesk/backoffice-go/internal/domain/attendance"
	"github.com/remitdesk/backoffice-go/internal/pkg/database"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

func (r *attendanceRepository) Create(ctx context.Context, record attendance.AttendanceRecord) (attendance.AttendanceRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendance_records (
			id, employee_id, date, clock_in, clock_out, work_hours, overtime_hours,
			late_minutes, early_leave_minutes, status
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at, updated_at
	`

	record.ID = uuid.NewString()
	err := q.QueryRow(ctx, query,
		record.ID, record.EmployeeID, record.Date, record.ClockIn, record.ClockOut,
		record.WorkHours, record.OvertimeHours, record.LateMinutes, record.EarlyLeaveMinutes,
		string(record.Status),
	).Scan(&record.CreatedAt, &record.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return attendance.AttendanceRecord{}, attendance.ErrAlreadyClockedIn
		}
		return attendance.AttendanceRecord{}, fmt.Errorf("failed to create attendance record: %w", err)
	}

	return record, nil
}

func (r *attendanceRepository) Update(ctx context.Context, record attendance.AttendanceRecord) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendance_records
		SET clock_in = $2, clock_out = $3, work_hours = $4, overtime_hours = $5,
			late_minutes = $6, early_leave_minutes = $7, status = $8, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query,
		record.ID, record.ClockIn, record.ClockOut, record.WorkHours, record.OvertimeHours,
		record.LateMinutes, record.EarlyLeaveMinutes, string(record.Status),
	)
	if err != nil {
		return fmt.Errorf("failed to update attendance record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrRecordNotFound
	}

	return nil
}

const attendanceColumns = `
	id, employee_id, date, clock_in, clock_out, work_hours, overtime_hours,
	late_minutes, early_leave_minutes, status, created_at, updated_at
`

func scanAttendanceRecord(row pgx.Row) (attendance.AttendanceRecord, error) {
	var rec attendance.AttendanceRecord
	var status string
	err := row.Scan(
		&rec.ID, &rec.EmployeeID, &rec.Date, &rec.ClockIn, &rec.ClockOut,
		&rec.WorkHours, &rec.OvertimeHours, &rec.LateMinutes, &rec.EarlyLeaveMinutes,
		&status, &rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		return attendance.AttendanceRecord{}, err
	}
	rec.Status = attendance.Status(status)
	return rec, nil
}

func (r *attendanceRepository) GetByEmployeeDate(ctx context.Context, employeeID string, date time.Time) (attendance.AttendanceRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendance_records
		WHERE employee_id = $1 AND date = $2
	`

	rec, err := scanAttendanceRecord(q.QueryRow(ctx, query, employeeID, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.AttendanceRecord{}, attendance.ErrRecordNotFound
		}
		return attendance.AttendanceRecord{}, fmt.Errorf("failed to get attendance record: %w", err)
	}

	return rec, nil
}

func (r *attendanceRepository) ListByEmployeeRange(ctx context.Context, employeeID string, from, to time.Time) ([]attendance.AttendanceRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendance_records
		WHERE employee_id = $1 AND date BETWEEN $2 AND $3
		ORDER BY date
	`

	rows, err := q.Query(ctx, query, employeeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance records: %w", err)
	}
	defer rows.Close()

	var records []attendance.AttendanceRecord
	for rows.Next() {
		rec, err := scanAttendanceRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance record: %w", err)
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}

type workScheduleRepository struct {
	db *database.DB
}

func NewWorkScheduleRepository(db *database.DB) attendance.WorkScheduleRepository {
	return &workScheduleRepository{db: db}
}

func (r *workScheduleRepository) GetByEmployee(ctx context.Context, employeeID string) (attendance.WorkSchedule, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, start_time, end_time, created_at, updated_at
		FROM work_schedules
		WHERE employee_id = $1
	`

	var s attendance.WorkSchedule
	err := q.QueryRow(ctx, query, employeeID).Scan(
		&s.ID, &s.EmployeeID, &s.StartTime, &s.EndTime, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.WorkSchedule{}, attendance.ErrScheduleNotFound
		}
		return attendance.WorkSchedule{}, fmt.Errorf("failed to get work schedule: %w", err)
	}

	return s, nil
}

func (r *workScheduleRepository) Upsert(ctx context.Context, schedule attendance.WorkSchedule) (attendance.WorkSchedule, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO work_schedules (id, employee_id, start_time, end_time)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (employee_id) DO UPDATE SET
			start_time = EXCLUDED.start_time,
			end_time = EXCLUDED.end_time,
			updated_at = NOW()
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query, uuid.NewString(), schedule.EmployeeID, schedule.StartTime, schedule.EndTime).
		Scan(&schedule.ID, &schedule.CreatedAt, &schedule.UpdatedAt)
	if err != nil {
		return attendance.WorkSchedule{}, fmt.Errorf("failed to upsert work schedule: %w", err)
	}

	return schedule, nil
}
