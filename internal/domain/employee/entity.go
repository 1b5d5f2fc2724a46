package employee

import "time"

type Employee struct {
	ID          int64
	PlatformID  string
	Username    string
	DisplayName *string
	Email       *string
	Department  *string
	Position    *string
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Aggregates filled by List
	TotalAttendance int
	LastCheckIn     *time.Time
}

// Name returns the display name, falling back to the username.
func (e Employee) Name() string {
	if e.DisplayName != nil && *e.DisplayName != "" {
		return *e.DisplayName
	}
	return e.Username
}

// PlatformProfile is what a chat platform tells us about the user issuing a command.
type PlatformProfile struct {
	PlatformID  string
	Username    string
	DisplayName string
}
