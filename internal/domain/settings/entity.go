package settings

import "time"

// Setting keys stored in project_settings
const (
	KeyProjectStartDate     = "project_start_date"
	KeyAnnualLeaveDays      = "annual_leave_days"
	KeyAnnualLeaveResetDate = "annual_leave_reset_date"
)

// Fallbacks used when a key is missing
const (
	DefaultAnnualLeaveDays      = 14
	DefaultAnnualLeaveResetDate = "07-16"
)

type Setting struct {
	ID          int64
	Key         string
	Value       string
	Description *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ProjectSettings is the typed view of the key/value table with defaults applied.
type ProjectSettings struct {
	ProjectStartDate     *time.Time
	AnnualLeaveDays      int
	AnnualLeaveResetDate string
}
