package analytics

import (
	"context"
	"time"
)

type AnalyticsRepository interface {
	// DailyStats groups check-ins per day from since onward, newest first
	DailyStats(ctx context.Context, since time.Time) ([]DailyStat, error)

	TodayCounts(ctx context.Context, date time.Time) (TodayCounts, error)

	// DayStatuses returns one row per active employee for date, ordered by username
	DayStatuses(ctx context.Context, date time.Time) ([]EmployeeDayStatus, error)
}
