package analytics

import "time"

type DailyStat struct {
	Date           time.Time
	TotalCheckIns  int
	TotalCheckOuts int
	AvgRating      *float64
}

// TodayCounts are the raw counts behind the KPI cards.
type TodayCounts struct {
	ActiveEmployees int
	CheckedIn       int
	CheckedOut      int
	OnLeave         int
	AvgRating       *float64
}

type CheckInState string

const (
	StateNotCheckedIn CheckInState = "not_checked_in"
	StateCheckedIn    CheckInState = "checked_in"
	StateCompleted    CheckInState = "completed"
	StateOnLeave      CheckInState = "on_leave"
)

type EmployeeDayStatus struct {
	EmployeeID   int64
	Username     string
	DisplayName  *string
	CheckInTime  *time.Time
	CheckOutTime *time.Time
	OnLeave      bool
}

// State derives the employee's check-in state. Leave wins over any attendance row.
func (s EmployeeDayStatus) State() CheckInState {
	switch {
	case s.OnLeave:
		return StateOnLeave
	case s.CheckInTime != nil && s.CheckOutTime != nil:
		return StateCompleted
	case s.CheckInTime != nil:
		return StateCheckedIn
	default:
		return StateNotCheckedIn
	}
}
