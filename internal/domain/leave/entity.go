package leave

import (
	"fmt"
	"strconv"
	"time"
)

type Leave struct {
	ID          int64
	EmployeeID  int64
	Date        time.Time
	Description string
	CreatedAt   time.Time

	// Filled by listing queries that join employees
	EmployeeUsername    *string
	EmployeeDisplayName *string
}

// ResetDate is the MM-DD anniversary on which the leave year rolls over.
type ResetDate struct {
	Month time.Month
	Day   int
}

// ParseResetDate parses an MM-DD value. Callers are expected to have validated it on write.
func ParseResetDate(s string) (ResetDate, error) {
	if len(s) != 5 || s[2] != '-' {
		return ResetDate{}, fmt.Errorf("invalid reset date %q", s)
	}
	month, err := strconv.Atoi(s[:2])
	if err != nil || month < 1 || month > 12 {
		return ResetDate{}, fmt.Errorf("invalid reset month in %q", s)
	}
	day, err := strconv.Atoi(s[3:])
	if err != nil || day < 1 || day > 31 {
		return ResetDate{}, fmt.Errorf("invalid reset day in %q", s)
	}
	return ResetDate{Month: time.Month(month), Day: day}, nil
}

// In returns the reset day of the given year. Feb 29 falls on Mar 1 in non-leap years.
func (r ResetDate) In(year int) time.Time {
	return time.Date(year, r.Month, r.Day, 0, 0, 0, 0, time.UTC)
}

func (r ResetDate) String() string {
	return fmt.Sprintf("%02d-%02d", int(r.Month), r.Day)
}

// LeaveYear is an inclusive window of calendar dates.
type LeaveYear struct {
	Start time.Time
	End   time.Time
}

func (y LeaveYear) Contains(date time.Time) bool {
	return !date.Before(y.Start) && !date.After(y.End)
}

type LeaveBalance struct {
	Allowance        int
	TakenLeaves      int
	NoCheckInOutDays int
	TotalUsed        int
	Remaining        int
	Year             LeaveYear
}
