package attendance

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/attendance-tracker/internal/domain/leave"
)

type WorkLocation string

const (
	WorkFromOffice WorkLocation = "office"
	WorkFromRemote WorkLocation = "remote"
)

func (w WorkLocation) IsValid() bool {
	return w == WorkFromOffice || w == WorkFromRemote
}

// Moods offered by the check-in wizard, stored lowercased in current_status.
var Moods = []string{"Excellent", "Good", "Okay", "Tired", "Stressed", "Sick", "Motivated", "Anxious", "Overwhelmed", "Focused"}

func IsValidMood(mood string) bool {
	for _, m := range Moods {
		if strings.EqualFold(m, mood) {
			return true
		}
	}
	return false
}

// BlockersNone is stored when the check-out blockers field is left blank.
const BlockersNone = "None"

type Attendance struct {
	ID                 int64
	EmployeeID         int64
	Date               time.Time
	CheckInTime        *time.Time
	CheckOutTime       *time.Time
	WorkFrom           *WorkLocation
	TodayPlan          *string
	YesterdayTask      *string
	CurrentStatus      *string
	Accomplishments    *string
	Blockers           *string
	TomorrowPriorities *string
	OverallRating      *int
	CreatedAt          time.Time
	UpdatedAt          time.Time

	// Filled by listing queries that join employees
	EmployeeUsername    *string
	EmployeeDisplayName *string
}

func (a Attendance) HasCheckIn() bool  { return a.CheckInTime != nil }
func (a Attendance) HasCheckOut() bool { return a.CheckOutTime != nil }

// IsIncomplete reports a day missing its check-in or check-out. These days consume leave allowance.
func (a Attendance) IsIncomplete() bool {
	return a.CheckInTime == nil || a.CheckOutTime == nil
}

type CheckIn struct {
	EmployeeID    int64
	Date          time.Time
	At            time.Time
	WorkFrom      WorkLocation
	CurrentStatus string
	TodayPlan     string
	YesterdayTask string
}

type CheckOut struct {
	EmployeeID         int64
	Date               time.Time
	At                 time.Time
	Accomplishments    string
	Blockers           string
	TomorrowPriorities string
	OverallRating      int
}

// DayState is everything recorded for one employee on one calendar date.
type DayState struct {
	Attendance *Attendance
	Leave      *leave.Leave
}

func (s DayState) CanCheckIn() error {
	if s.Leave != nil {
		return ErrOnLeave
	}
	if s.Attendance != nil && s.Attendance.HasCheckIn() {
		return ErrAlreadyCheckedIn
	}
	return nil
}

func (s DayState) CanCheckOut() error {
	if s.Leave != nil {
		return ErrOnLeave
	}
	if s.Attendance == nil || !s.Attendance.HasCheckIn() {
		return ErrNotCheckedIn
	}
	if s.Attendance.HasCheckOut() {
		return ErrAlreadyCheckedOut
	}
	return nil
}

func (s DayState) CanApplyLeave() error {
	if s.Leave != nil {
		return leave.ErrAlreadyAppliedToday
	}
	if s.Attendance != nil && (s.Attendance.HasCheckIn() || s.Attendance.HasCheckOut()) {
		return leave.ErrLeaveAfterCheckIn
	}
	return nil
}

type EmployeeStats struct {
	TotalDays     int
	CompletedDays int
	AvgRating     *float64
	AvgHours      *float64
}

// Level is the ordinal contribution level of one day, used for heatmap coloring.
type Level int

const (
	LevelInactive Level = iota
	LevelNonWorking
	LevelOnLeave
	LevelAbsent
	LevelPartial
	LevelComplete
	LevelGood
	LevelExcellent
)

var levelNames = [...]string{
	LevelInactive:   "inactive",
	LevelNonWorking: "non-working",
	LevelOnLeave:    "on-leave",
	LevelAbsent:     "absent",
	LevelPartial:    "partial",
	LevelComplete:   "complete",
	LevelGood:       "good",
	LevelExcellent:  "excellent",
}

// Levels lists every level in ordinal order.
var Levels = []Level{LevelInactive, LevelNonWorking, LevelOnLeave, LevelAbsent, LevelPartial, LevelComplete, LevelGood, LevelExcellent}

func (l Level) String() string {
	if l < 0 || int(l) >= len(levelNames) {
		return "unknown"
	}
	return levelNames[l]
}

func (l Level) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}
