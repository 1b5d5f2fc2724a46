package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/attendance-tracker/internal/domain/analytics"
	"github.com/cmlabs-hris/attendance-tracker/internal/pkg/database"
)

type analyticsRepositoryImpl struct {
	db *database.DB
}

func NewAnalyticsRepository(db *database.DB) analytics.AnalyticsRepository {
	return &analyticsRepositoryImpl{db: db}
}

// DailyStats returns check-in and check-out totals per day in a single query
func (r *analyticsRepositoryImpl) DailyStats(ctx context.Context, since time.Time) ([]analytics.DailyStat, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			date,
			COUNT(check_in_time)  AS total_checkins,
			COUNT(check_out_time) AS total_checkouts,
			AVG(overall_rating)::float8 AS avg_rating
		FROM attendance
		WHERE date >= $1
		GROUP BY date
		ORDER BY date DESC
	`

	rows, err := q.Query(ctx, query, since)
	if err != nil {
		return nil, fmt.Errorf("failed to get daily stats: %w", err)
	}
	defer rows.Close()

	var stats []analytics.DailyStat
	for rows.Next() {
		var st analytics.DailyStat
		if err := rows.Scan(&st.Date, &st.TotalCheckIns, &st.TotalCheckOuts, &st.AvgRating); err != nil {
			return nil, err
		}
		stats = append(stats, st)
	}
	return stats, rows.Err()
}

// TodayCounts returns the KPI counters for date in single query
func (r *analyticsRepositoryImpl) TodayCounts(ctx context.Context, date time.Time) (analytics.TodayCounts, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			(SELECT COUNT(*) FROM employees WHERE is_active),
			(SELECT COUNT(*) FROM attendance WHERE date = $1 AND check_in_time IS NOT NULL),
			(SELECT COUNT(*) FROM attendance WHERE date = $1 AND check_out_time IS NOT NULL),
			(SELECT COUNT(*) FROM leaves WHERE date = $1),
			(SELECT AVG(overall_rating)::float8 FROM attendance WHERE date = $1)
	`

	var counts analytics.TodayCounts
	err := q.QueryRow(ctx, query, date).Scan(
		&counts.ActiveEmployees,
		&counts.CheckedIn,
		&counts.CheckedOut,
		&counts.OnLeave,
		&counts.AvgRating,
	)
	if err != nil {
		return analytics.TodayCounts{}, fmt.Errorf("failed to get today counts: %w", err)
	}
	return counts, nil
}

// DayStatuses implements analytics.AnalyticsRepository.
func (r *analyticsRepositoryImpl) DayStatuses(ctx context.Context, date time.Time) ([]analytics.EmployeeDayStatus, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			e.id,
			e.username,
			e.display_name,
			a.check_in_time,
			a.check_out_time,
			(l.id IS NOT NULL) AS on_leave
		FROM employees e
		LEFT JOIN attendance a ON a.employee_id = e.id AND a.date = $1
		LEFT JOIN leaves l ON l.employee_id = e.id AND l.date = $1
		WHERE e.is_active
		ORDER BY e.username
	`

	rows, err := q.Query(ctx, query, date)
	if err != nil {
		return nil, fmt.Errorf("failed to get day statuses: %w", err)
	}
	defer rows.Close()

	var statuses []analytics.EmployeeDayStatus
	for rows.Next() {
		var s analytics.EmployeeDayStatus
		if err := rows.Scan(&s.EmployeeID, &s.Username, &s.DisplayName, &s.CheckInTime, &s.CheckOutTime, &s.OnLeave); err != nil {
			return nil, err
		}
		statuses = append(statuses, s)
	}
	return statuses, rows.Err()
}
