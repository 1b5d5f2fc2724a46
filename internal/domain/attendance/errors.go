package attendance

import "errors"

var (
	ErrAttendanceNotFound = errors.New("attendance not found")
	ErrAlreadyCheckedIn   = errors.New("already checked in today")
	ErrAlreadyCheckedOut  = errors.New("already checked out today")
	ErrNotCheckedIn       = errors.New("not checked in today")
	ErrOnLeave            = errors.New("employee is on leave today")
)
