package leave

import (
	"time"

	"github.com/cmlabs-hris/attendance-tracker/internal/domain/leave"
)

// YearCalculator holds the leave-year arithmetic. It does no I/O.
type YearCalculator struct {
}

func NewYearCalculator() *YearCalculator {
	return &YearCalculator{}
}

// Window returns the leave year containing today. A year starts on the reset day
// and ends the day before the next reset, so today == reset day opens a new year.
func (c *YearCalculator) Window(today time.Time, reset leave.ResetDate) leave.LeaveYear {
	today = time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)

	year := today.Year()
	if today.Before(reset.In(year)) {
		year--
	}
	start := reset.In(year)
	next := reset.In(year + 1)

	return leave.LeaveYear{
		Start: start,
		End:   next.AddDate(0, 0, -1),
	}
}

// Balance combines the allowance with what was used inside the window.
// Days with a missing check-in or check-out count against the allowance.
func (c *YearCalculator) Balance(allowance, takenLeaves, noCheckInOutDays int, year leave.LeaveYear) leave.LeaveBalance {
	totalUsed := takenLeaves + noCheckInOutDays
	return leave.LeaveBalance{
		Allowance:        allowance,
		TakenLeaves:      takenLeaves,
		NoCheckInOutDays: noCheckInOutDays,
		TotalUsed:        totalUsed,
		Remaining:        max(0, allowance-totalUsed),
		Year:             year,
	}
}
