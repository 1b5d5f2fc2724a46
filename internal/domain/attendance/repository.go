package attendance

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/attendance-tracker/internal/domain/leave"
)

type AttendanceRepository interface {
	// GetByEmployeeAndDate returns ErrAttendanceNotFound when no row exists
	GetByEmployeeAndDate(ctx context.Context, employeeID int64, date time.Time) (Attendance, error)

	// CheckIn writes the check-in unless the day already has one or the employee is on leave.
	// The bool is false when nothing was written.
	CheckIn(ctx context.Context, checkIn CheckIn) (Attendance, bool, error)

	// CheckOut completes a checked-in day unless it is already checked out or the employee is on leave.
	// The bool is false when nothing was written.
	CheckOut(ctx context.Context, checkOut CheckOut) (Attendance, bool, error)

	// ListByEmployee returns the most recent rows, newest first
	ListByEmployee(ctx context.Context, employeeID int64, limit int) ([]Attendance, error)

	// ListBetween returns rows with start <= date <= end, optionally for one employee
	ListBetween(ctx context.Context, start, end time.Time, employeeID *int64) ([]Attendance, error)

	// ListByDate returns the rows of one day joined with their employees
	ListByDate(ctx context.Context, date time.Time) ([]Attendance, error)

	// CountIncompleteBetween counts rows missing a check-in or a check-out
	CountIncompleteBetween(ctx context.Context, employeeID int64, start, end time.Time) (int, error)

	// GetEmployeeStats aggregates checked-in rows dated on or after since
	GetEmployeeStats(ctx context.Context, employeeID int64, since time.Time) (EmployeeStats, error)
}

// LoadDayState reads the attendance and leave recorded for one employee on date.
func LoadDayState(ctx context.Context, attendanceRepository AttendanceRepository, leaveRepository leave.LeaveRepository, employeeID int64, date time.Time) (DayState, error) {
	var state DayState

	a, err := attendanceRepository.GetByEmployeeAndDate(ctx, employeeID, date)
	switch {
	case err == nil:
		state.Attendance = &a
	case !errors.Is(err, ErrAttendanceNotFound):
		return DayState{}, fmt.Errorf("failed to get attendance: %w", err)
	}

	l, err := leaveRepository.GetByEmployeeAndDate(ctx, employeeID, date)
	switch {
	case err == nil:
		state.Leave = &l
	case !errors.Is(err, leave.ErrLeaveNotFound):
		return DayState{}, fmt.Errorf("failed to get leave: %w", err)
	}

	return state, nil
}
