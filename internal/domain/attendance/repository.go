package attendance

import (
	"context"
	"time"
)

type AttendanceRepository interface {
	Create(ctx context.Context, record AttendanceRecord) (AttendanceRecord, error)
	Update(ctx context.Context, record AttendanceRecord) error
	GetByEmployeeDate(ctx context.Context, employeeID string, date time.Time) (AttendanceRecord, error)
	ListByEmployeeRange(ctx context.Context, employeeID string, from, to time.Time) ([]AttendanceRecord, error)
}

type WorkScheduleRepository interface {
	GetByEmployee(ctx context.Context, employeeID string) (WorkSchedule, error)
	Upsert(ctx context.Context, schedule WorkSchedule) (WorkSchedule, error)
}
