package analytics

import (
	"time"

	"github.com/cmlabs-hris/attendance-tracker/internal/domain/leave"
)

type DailyStatResponse struct {
	Date           string   `json:"date"`
	TotalCheckIns  int      `json:"total_checkins"`
	TotalCheckOuts int      `json:"total_checkouts"`
	AvgRating      *float64 `json:"avg_rating"`
}

type KPIResponse struct {
	Date            string   `json:"date"`
	ActiveEmployees int      `json:"active_employees"`
	CheckedIn       int      `json:"checked_in"`
	CheckedOut      int      `json:"checked_out"`
	OnLeave         int      `json:"on_leave"`
	NotCheckedIn    int      `json:"not_checked_in"`
	AttendanceRate  float64  `json:"attendance_rate"`
	AvgRating       *float64 `json:"avg_rating"`
}

type CheckInStatusResponse struct {
	EmployeeID   int64        `json:"employee_id"`
	Username     string       `json:"username"`
	DisplayName  *string      `json:"display_name"`
	Status       CheckInState `json:"status"`
	CheckInTime  *time.Time   `json:"check_in_time"`
	CheckOutTime *time.Time   `json:"check_out_time"`
}

type EmployeeLeaveSummaryResponse struct {
	EmployeeID  int64                       `json:"employee_id"`
	Username    string                      `json:"username"`
	DisplayName *string                     `json:"display_name"`
	LeaveInfo   *leave.LeaveBalanceResponse `json:"leaveInfo"`
}
