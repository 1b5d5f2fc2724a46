package leave

import (
	"context"
	"time"
)

type LeaveRepository interface {
	// Apply inserts the leave unless one exists for the same day or the employee
	// already checked in or out that day. The bool is false when nothing was written.
	Apply(ctx context.Context, leave Leave) (Leave, bool, error)

	// GetByEmployeeAndDate returns ErrLeaveNotFound when the employee has no leave on date
	GetByEmployeeAndDate(ctx context.Context, employeeID int64, date time.Time) (Leave, error)

	ListByEmployee(ctx context.Context, employeeID int64, limit int) ([]Leave, error)

	// ListAll returns every leave joined with its employee, newest first
	ListAll(ctx context.Context) ([]Leave, error)
	ListByDate(ctx context.Context, date time.Time) ([]Leave, error)

	// ListBetween returns leaves with start <= date <= end, optionally for one employee
	ListBetween(ctx context.Context, start, end time.Time, employeeID *int64) ([]Leave, error)

	CountBetween(ctx context.Context, employeeID int64, start, end time.Time) (int, error)
}
