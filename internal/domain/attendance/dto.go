package attendance

import (
	"strconv"
	"strings"
	"time"

	"github.com/cmlabs-hris/attendance-tracker/internal/pkg/utils"
	"github.com/cmlabs-hris/attendance-tracker/internal/pkg/validator"
)

type CheckInRequest struct {
	WorkFrom      string `json:"work_from"`
	CurrentStatus string `json:"current_status"`
	TodayPlan     string `json:"today_plan"`
	YesterdayTask string `json:"yesterday_task"`
}

func (r *CheckInRequest) Validate() error {
	var errs validator.ValidationErrors

	if !WorkLocation(r.WorkFrom).IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "work_from",
			Message: "work_from must be one of: office, remote",
		})
	}

	if !IsValidMood(r.CurrentStatus) {
		errs = append(errs, validator.ValidationError{
			Field:   "current_status",
			Message: "current_status must be one of: " + strings.Join(Moods, ", "),
		})
	}

	if validator.IsEmpty(r.TodayPlan) {
		errs = append(errs, validator.ValidationError{
			Field:   "today_plan",
			Message: "today_plan is required",
		})
	}

	if validator.IsEmpty(r.YesterdayTask) {
		errs = append(errs, validator.ValidationError{
			Field:   "yesterday_task",
			Message: "yesterday_task is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type CheckOutRequest struct {
	Accomplishments    string `json:"accomplishments"`
	Blockers           string `json:"blockers"`
	TomorrowPriorities string `json:"tomorrow_priorities"`
	OverallRating      int    `json:"overall_rating"`
}

func (r *CheckOutRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Accomplishments) {
		errs = append(errs, validator.ValidationError{
			Field:   "accomplishments",
			Message: "accomplishments is required",
		})
	}

	if validator.IsEmpty(r.TomorrowPriorities) {
		errs = append(errs, validator.ValidationError{
			Field:   "tomorrow_priorities",
			Message: "tomorrow_priorities is required",
		})
	}

	if !validator.IsValidRating(r.OverallRating) {
		errs = append(errs, validator.ValidationError{
			Field:   "overall_rating",
			Message: "Please provide a valid rating between 1 and 5.",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// BlockersOrNone returns the blockers text, or "None" when left blank.
func (r CheckOutRequest) BlockersOrNone() string {
	if validator.IsEmpty(r.Blockers) {
		return BlockersNone
	}
	return strings.TrimSpace(r.Blockers)
}

type AttendanceResponse struct {
	ID                  int64      `json:"id"`
	EmployeeID          int64      `json:"employee_id"`
	Date                string     `json:"date"`
	CheckInTime         *time.Time `json:"check_in_time"`
	CheckOutTime        *time.Time `json:"check_out_time"`
	WorkFrom            *string    `json:"work_from"`
	TodayPlan           *string    `json:"today_plan"`
	YesterdayTask       *string    `json:"yesterday_task"`
	CurrentStatus       *string    `json:"current_status"`
	Accomplishments     *string    `json:"accomplishments"`
	Blockers            *string    `json:"blockers"`
	TomorrowPriorities  *string    `json:"tomorrow_priorities"`
	OverallRating       *int       `json:"overall_rating"`
	EmployeeUsername    *string    `json:"username,omitempty"`
	EmployeeDisplayName *string    `json:"display_name,omitempty"`
}

// NewAttendanceResponse renders timestamps in loc.
func NewAttendanceResponse(a Attendance, loc *time.Location) AttendanceResponse {
	resp := AttendanceResponse{
		ID:                  a.ID,
		EmployeeID:          a.EmployeeID,
		Date:                utils.FormatDate(a.Date),
		CheckInTime:         inLocation(a.CheckInTime, loc),
		CheckOutTime:        inLocation(a.CheckOutTime, loc),
		TodayPlan:           a.TodayPlan,
		YesterdayTask:       a.YesterdayTask,
		CurrentStatus:       a.CurrentStatus,
		Accomplishments:     a.Accomplishments,
		Blockers:            a.Blockers,
		TomorrowPriorities:  a.TomorrowPriorities,
		OverallRating:       a.OverallRating,
		EmployeeUsername:    a.EmployeeUsername,
		EmployeeDisplayName: a.EmployeeDisplayName,
	}
	if a.WorkFrom != nil {
		w := string(*a.WorkFrom)
		resp.WorkFrom = &w
	}
	return resp
}

func NewAttendanceResponses(rows []Attendance, loc *time.Location) []AttendanceResponse {
	out := make([]AttendanceResponse, 0, len(rows))
	for _, a := range rows {
		out = append(out, NewAttendanceResponse(a, loc))
	}
	return out
}

func inLocation(t *time.Time, loc *time.Location) *time.Time {
	if t == nil || loc == nil {
		return t
	}
	local := t.In(loc)
	return &local
}

type EmployeeStatsResponse struct {
	TotalDays     int      `json:"total_days"`
	CompletedDays int      `json:"completed_days"`
	AvgRating     *float64 `json:"avg_rating"`
	AvgHours      *float64 `json:"avg_hours"`
}

func NewEmployeeStatsResponse(s EmployeeStats) EmployeeStatsResponse {
	return EmployeeStatsResponse{
		TotalDays:     s.TotalDays,
		CompletedDays: s.CompletedDays,
		AvgRating:     s.AvgRating,
		AvgHours:      s.AvgHours,
	}
}

// MatrixFilter holds the raw query parameters of the matrix endpoint.
type MatrixFilter struct {
	Year       string
	EmployeeID string

	year       int
	employeeID *int64
}

func (f *MatrixFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Year != "" {
		year, err := strconv.Atoi(f.Year)
		if err != nil || !validator.IsValidYear(year) {
			errs = append(errs, validator.ValidationError{
				Field:   "year",
				Message: "year must be a number between 1970 and 9999",
			})
		} else {
			f.year = year
		}
	}

	if f.EmployeeID != "" {
		id, err := strconv.ParseInt(f.EmployeeID, 10, 64)
		if err != nil || id <= 0 {
			errs = append(errs, validator.ValidationError{
				Field:   "employeeId",
				Message: "employeeId must be a positive integer",
			})
		} else {
			f.employeeID = &id
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ParsedYear returns the validated year, or fallback when none was given.
func (f MatrixFilter) ParsedYear(fallback int) int {
	if f.year == 0 {
		return fallback
	}
	return f.year
}

func (f MatrixFilter) ParsedEmployeeID() *int64 {
	return f.employeeID
}

type MatrixHoliday struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

type MatrixEmployee struct {
	ID          int64   `json:"id"`
	Username    string  `json:"username"`
	DisplayName *string `json:"display_name"`
}

type MatrixDay struct {
	Level            Level   `json:"level"`
	HasCheckin       bool    `json:"hasCheckin"`
	HasCheckout      bool    `json:"hasCheckout"`
	Rating           *int    `json:"rating,omitempty"`
	LeaveDescription *string `json:"leaveDescription,omitempty"`
}

type MatrixRow struct {
	Employee MatrixEmployee       `json:"employee"`
	Days     map[string]MatrixDay `json:"days"`
	Summary  map[Level]int        `json:"summary"`
}

type MatrixResponse struct {
	Year             int                      `json:"year"`
	ProjectStartDate string                   `json:"projectStartDate"`
	Holidays         map[string]MatrixHoliday `json:"holidays"`
	Employees        []MatrixRow              `json:"employees"`
}
