package leave

import "errors"

var (
	ErrLeaveNotFound       = errors.New("leave not found")
	ErrAlreadyAppliedToday = errors.New("already applied for leave today")
	ErrLeaveAfterCheckIn   = errors.New("cannot apply for leave after check-in")
	ErrInvalidLimit        = errors.New("invalid limit provided")
)
