package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/attendance-tracker/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-tracker/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

const attendanceColumns = `a.id, a.employee_id, a.date, a.check_in_time, a.check_out_time, a.work_from::text,
	a.today_plan, a.yesterday_task, a.current_status, a.accomplishments, a.blockers,
	a.tomorrow_priorities, a.overall_rating, a.created_at, a.updated_at`

type attendanceRepositoryImpl struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepositoryImpl{db: db}
}

func scanAttendance(row pgx.Row, a *attendance.Attendance, extra ...any) error {
	var workFrom *string
	dest := []any{
		&a.ID,
		&a.EmployeeID,
		&a.Date,
		&a.CheckInTime,
		&a.CheckOutTime,
		&workFrom,
		&a.TodayPlan,
		&a.YesterdayTask,
		&a.CurrentStatus,
		&a.Accomplishments,
		&a.Blockers,
		&a.TomorrowPriorities,
		&a.OverallRating,
		&a.CreatedAt,
		&a.UpdatedAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return err
	}
	if workFrom != nil {
		w := attendance.WorkLocation(*workFrom)
		a.WorkFrom = &w
	}
	return nil
}

func collectAttendance(rows pgx.Rows, joined bool) ([]attendance.Attendance, error) {
	defer rows.Close()

	var records []attendance.Attendance
	for rows.Next() {
		var a attendance.Attendance
		var err error
		if joined {
			err = scanAttendance(rows, &a, &a.EmployeeUsername, &a.EmployeeDisplayName)
		} else {
			err = scanAttendance(rows, &a)
		}
		if err != nil {
			return nil, err
		}
		records = append(records, a)
	}
	return records, rows.Err()
}

// GetByEmployeeAndDate implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) GetByEmployeeAndDate(ctx context.Context, employeeID int64, date time.Time) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + attendanceColumns + ` FROM attendance a WHERE a.employee_id = $1 AND a.date = $2`

	var a attendance.Attendance
	if err := scanAttendance(q.QueryRow(ctx, query, employeeID, date), &a); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, err
	}
	return a, nil
}

// CheckIn implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) CheckIn(ctx context.Context, checkIn attendance.CheckIn) (attendance.Attendance, bool, error) {
	q := GetQuerier(ctx, r.db)

	// A row may already exist without a check-in; it is filled in place.
	// Leave on the same day or an existing check-in leaves the table untouched.
	query := `
		INSERT INTO attendance AS a (employee_id, date, check_in_time, work_from, current_status, today_plan, yesterday_task)
		SELECT $1::bigint, $2::date, $3::timestamptz, $4::work_from_enum, $5::varchar, $6::text, $7::text
		WHERE NOT EXISTS (SELECT 1 FROM leaves l WHERE l.employee_id = $1 AND l.date = $2)
		ON CONFLICT (employee_id, date) DO UPDATE SET
			check_in_time  = EXCLUDED.check_in_time,
			work_from      = EXCLUDED.work_from,
			current_status = EXCLUDED.current_status,
			today_plan     = EXCLUDED.today_plan,
			yesterday_task = EXCLUDED.yesterday_task,
			updated_at     = NOW()
		WHERE a.check_in_time IS NULL
		RETURNING ` + attendanceColumns

	var a attendance.Attendance
	err := scanAttendance(q.QueryRow(ctx, query,
		checkIn.EmployeeID,
		checkIn.Date,
		checkIn.At,
		string(checkIn.WorkFrom),
		checkIn.CurrentStatus,
		checkIn.TodayPlan,
		nullIfBlank(checkIn.YesterdayTask),
	), &a)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, false, nil
		}
		return attendance.Attendance{}, false, fmt.Errorf("failed to insert check-in: %w", err)
	}
	return a, true, nil
}

// CheckOut implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) CheckOut(ctx context.Context, checkOut attendance.CheckOut) (attendance.Attendance, bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendance a SET
			check_out_time      = $3,
			accomplishments     = $4,
			blockers            = $5,
			tomorrow_priorities = $6,
			overall_rating      = $7,
			updated_at          = NOW()
		WHERE a.employee_id = $1 AND a.date = $2
			AND a.check_in_time IS NOT NULL
			AND a.check_out_time IS NULL
			AND NOT EXISTS (SELECT 1 FROM leaves l WHERE l.employee_id = $1 AND l.date = $2)
		RETURNING ` + attendanceColumns

	var a attendance.Attendance
	err := scanAttendance(q.QueryRow(ctx, query,
		checkOut.EmployeeID,
		checkOut.Date,
		checkOut.At,
		checkOut.Accomplishments,
		checkOut.Blockers,
		checkOut.TomorrowPriorities,
		checkOut.OverallRating,
	), &a)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, false, nil
		}
		return attendance.Attendance{}, false, fmt.Errorf("failed to update check-out: %w", err)
	}
	return a, true, nil
}

// ListByEmployee implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) ListByEmployee(ctx context.Context, employeeID int64, limit int) ([]attendance.Attendance, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("invalid limit %d", limit)
	}
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendance a
		WHERE a.employee_id = $1
		ORDER BY a.date DESC
		LIMIT $2
	`

	rows, err := q.Query(ctx, query, employeeID, limit)
	if err != nil {
		return nil, err
	}
	return collectAttendance(rows, false)
}

// ListBetween implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) ListBetween(ctx context.Context, start, end time.Time, employeeID *int64) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendance a
		WHERE a.date BETWEEN $1 AND $2
			AND ($3::bigint IS NULL OR a.employee_id = $3)
		ORDER BY a.employee_id, a.date
	`

	rows, err := q.Query(ctx, query, start, end, employeeID)
	if err != nil {
		return nil, err
	}
	return collectAttendance(rows, false)
}

// ListByDate implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) ListByDate(ctx context.Context, date time.Time) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + attendanceColumns + `, e.username, e.display_name
		FROM attendance a
		INNER JOIN employees e ON e.id = a.employee_id
		WHERE a.date = $1
		ORDER BY a.check_in_time DESC NULLS LAST
	`

	rows, err := q.Query(ctx, query, date)
	if err != nil {
		return nil, err
	}
	return collectAttendance(rows, true)
}

// CountIncompleteBetween implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) CountIncompleteBetween(ctx context.Context, employeeID int64, start, end time.Time) (int, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COUNT(*)
		FROM attendance
		WHERE employee_id = $1
			AND date BETWEEN $2 AND $3
			AND (check_in_time IS NULL OR check_out_time IS NULL)
	`

	var count int
	if err := q.QueryRow(ctx, query, employeeID, start, end).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// GetEmployeeStats implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) GetEmployeeStats(ctx context.Context, employeeID int64, since time.Time) (attendance.EmployeeStats, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			COUNT(*),
			COUNT(check_out_time),
			AVG(overall_rating)::float8,
			AVG(EXTRACT(EPOCH FROM (check_out_time - check_in_time)) / 3600)::float8
		FROM attendance
		WHERE employee_id = $1 AND check_in_time IS NOT NULL AND date >= $2
	`

	var stats attendance.EmployeeStats
	err := q.QueryRow(ctx, query, employeeID, since).Scan(
		&stats.TotalDays,
		&stats.CompletedDays,
		&stats.AvgRating,
		&stats.AvgHours,
	)
	if err != nil {
		return attendance.EmployeeStats{}, err
	}
	return stats, nil
}
