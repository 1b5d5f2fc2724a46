package attendance

import (
	"time"

	"github.com/cmlabs-hris/attendance-tracker/internal/domain/attendance"
)

// Ratings at or above these thresholds upgrade a completed day.
const (
	ExcellentRating = 5
	GoodRating      = 4
)

// WeeklyHoliday is the fixed non-working weekday.
const WeeklyHoliday = time.Saturday

// DayFacts is what is known about one employee on one calendar date.
type DayFacts struct {
	Date         time.Time
	Today        time.Time
	ProjectStart *time.Time
	IsHoliday    bool
	OnLeave      bool
	Attendance   *attendance.Attendance
}

// ClassifyDay maps a day to its contribution level. Rules are checked in order:
// outside the tracked range, non-working day, leave, then attendance completeness.
func ClassifyDay(f DayFacts) attendance.Level {
	if f.Date.After(f.Today) || (f.ProjectStart != nil && f.Date.Before(*f.ProjectStart)) {
		return attendance.LevelInactive
	}
	if f.Date.Weekday() == WeeklyHoliday || f.IsHoliday {
		return attendance.LevelNonWorking
	}
	if f.OnLeave {
		return attendance.LevelOnLeave
	}
	if f.Attendance == nil || (!f.Attendance.HasCheckIn() && !f.Attendance.HasCheckOut()) {
		return attendance.LevelAbsent
	}
	if !f.Attendance.HasCheckIn() || !f.Attendance.HasCheckOut() {
		return attendance.LevelPartial
	}

	switch rating := f.Attendance.OverallRating; {
	case rating != nil && *rating >= ExcellentRating:
		return attendance.LevelExcellent
	case rating != nil && *rating >= GoodRating:
		return attendance.LevelGood
	default:
		return attendance.LevelComplete
	}
}
