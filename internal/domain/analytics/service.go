package analytics

import (
	"context"

	"github.com/cmlabs-hris/attendance-tracker/internal/domain/attendance"
)

type AnalyticsService interface {
	// Stats returns per-day totals for the last 30 days
	Stats(ctx context.Context) ([]DailyStatResponse, error)
	KPIs(ctx context.Context) (KPIResponse, error)
	TodayRecords(ctx context.Context) ([]attendance.AttendanceResponse, error)
	CheckInStatus(ctx context.Context) ([]CheckInStatusResponse, error)

	// EmployeeLeaveSummary returns the leave balance of every active employee
	EmployeeLeaveSummary(ctx context.Context) ([]EmployeeLeaveSummaryResponse, error)
}
