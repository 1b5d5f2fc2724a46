package analytics

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/cmlabs-hris/attendance-tracker/internal/domain/analytics"
	"github.com/cmlabs-hris/attendance-tracker/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-tracker/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-tracker/internal/domain/leave"
	"github.com/cmlabs-hris/attendance-tracker/internal/pkg/utils"
)

const statsWindowDays = 30

type AnalyticsServiceImpl struct {
	analyticsRepository  analytics.AnalyticsRepository
	attendanceRepository attendance.AttendanceRepository
	employeeRepository   employee.EmployeeRepository
	leaveService         leave.LeaveService
	loc                  *time.Location
	clock                utils.Clock
}

func NewAnalyticsService(
	analyticsRepository analytics.AnalyticsRepository,
	attendanceRepository attendance.AttendanceRepository,
	employeeRepository employee.EmployeeRepository,
	leaveService leave.LeaveService,
	loc *time.Location,
	clock utils.Clock,
) analytics.AnalyticsService {
	if clock == nil {
		clock = time.Now
	}
	return &AnalyticsServiceImpl{
		analyticsRepository:  analyticsRepository,
		attendanceRepository: attendanceRepository,
		employeeRepository:   employeeRepository,
		leaveService:         leaveService,
		loc:                  loc,
		clock:                clock,
	}
}

func (s *AnalyticsServiceImpl) today() time.Time {
	return utils.CalendarDate(s.clock(), s.loc)
}

// Stats implements analytics.AnalyticsService.
func (s *AnalyticsServiceImpl) Stats(ctx context.Context) ([]analytics.DailyStatResponse, error) {
	since := s.today().AddDate(0, 0, -statsWindowDays)
	stats, err := s.analyticsRepository.DailyStats(ctx, since)
	if err != nil {
		return nil, fmt.Errorf("failed to get daily stats: %w", err)
	}

	responses := make([]analytics.DailyStatResponse, 0, len(stats))
	for _, st := range stats {
		responses = append(responses, analytics.DailyStatResponse{
			Date:           utils.FormatDate(st.Date),
			TotalCheckIns:  st.TotalCheckIns,
			TotalCheckOuts: st.TotalCheckOuts,
			AvgRating:      roundPtr(st.AvgRating),
		})
	}
	return responses, nil
}

// KPIs implements analytics.AnalyticsService.
func (s *AnalyticsServiceImpl) KPIs(ctx context.Context) (analytics.KPIResponse, error) {
	today := s.today()
	counts, err := s.analyticsRepository.TodayCounts(ctx, today)
	if err != nil {
		return analytics.KPIResponse{}, fmt.Errorf("failed to get today counts: %w", err)
	}

	notCheckedIn := max(0, counts.ActiveEmployees-counts.CheckedIn-counts.OnLeave)

	var rate float64
	if counts.ActiveEmployees > 0 {
		rate = round(float64(counts.CheckedIn) / float64(counts.ActiveEmployees) * 100)
	}

	return analytics.KPIResponse{
		Date:            utils.FormatDate(today),
		ActiveEmployees: counts.ActiveEmployees,
		CheckedIn:       counts.CheckedIn,
		CheckedOut:      counts.CheckedOut,
		OnLeave:         counts.OnLeave,
		NotCheckedIn:    notCheckedIn,
		AttendanceRate:  rate,
		AvgRating:       roundPtr(counts.AvgRating),
	}, nil
}

// TodayRecords implements analytics.AnalyticsService.
func (s *AnalyticsServiceImpl) TodayRecords(ctx context.Context) ([]attendance.AttendanceResponse, error) {
	rows, err := s.attendanceRepository.ListByDate(ctx, s.today())
	if err != nil {
		return nil, fmt.Errorf("failed to list today's attendance: %w", err)
	}
	return attendance.NewAttendanceResponses(rows, s.loc), nil
}

// CheckInStatus implements analytics.AnalyticsService.
func (s *AnalyticsServiceImpl) CheckInStatus(ctx context.Context) ([]analytics.CheckInStatusResponse, error) {
	statuses, err := s.analyticsRepository.DayStatuses(ctx, s.today())
	if err != nil {
		return nil, fmt.Errorf("failed to get check-in status: %w", err)
	}

	responses := make([]analytics.CheckInStatusResponse, 0, len(statuses))
	for _, st := range statuses {
		responses = append(responses, analytics.CheckInStatusResponse{
			EmployeeID:   st.EmployeeID,
			Username:     st.Username,
			DisplayName:  st.DisplayName,
			Status:       st.State(),
			CheckInTime:  inLocation(st.CheckInTime, s.loc),
			CheckOutTime: inLocation(st.CheckOutTime, s.loc),
		})
	}
	return responses, nil
}

// EmployeeLeaveSummary implements analytics.AnalyticsService.
func (s *AnalyticsServiceImpl) EmployeeLeaveSummary(ctx context.Context) ([]analytics.EmployeeLeaveSummaryResponse, error) {
	employees, err := s.employeeRepository.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}

	responses := make([]analytics.EmployeeLeaveSummaryResponse, 0, len(employees))
	for _, emp := range employees {
		summary := analytics.EmployeeLeaveSummaryResponse{
			EmployeeID:  emp.ID,
			Username:    emp.Username,
			DisplayName: emp.DisplayName,
		}

		balance, err := s.leaveService.Balance(ctx, emp.ID)
		if err != nil {
			slog.Error("Failed to calculate leave balance", "employee_id", emp.ID, "error", err)
		} else {
			info := leave.NewLeaveBalanceResponse(balance)
			summary.LeaveInfo = &info
		}

		responses = append(responses, summary)
	}
	return responses, nil
}

func round(v float64) float64 {
	return math.Round(v*100) / 100
}

func roundPtr(v *float64) *float64 {
	if v == nil {
		return nil
	}
	r := round(*v)
	return &r
}

func inLocation(t *time.Time, loc *time.Location) *time.Time {
	if t == nil || loc == nil {
		return t
	}
	local := t.In(loc)
	return &local
}
