package command

import (
	"errors"

	"github.com/cmlabs-hris/attendance-tracker/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-tracker/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-tracker/internal/domain/leave"
	"github.com/cmlabs-hris/attendance-tracker/internal/pkg/validator"
	"github.com/cmlabs-hris/attendance-tracker/internal/pkg/wizard"
)

var (
	ErrSelectionsIncomplete = errors.New("work location and status must both be selected")
	ErrInvalidSelection     = errors.New("invalid selection")
)

// UserMessage turns a command failure into the ephemeral text shown to the user.
// Unexpected errors get a generic retry message; callers log them.
func UserMessage(action Action, err error) string {
	var validationErrs validator.ValidationErrors
	switch {
	case errors.As(err, &validationErrs) && len(validationErrs) > 0:
		return "❌ " + validationErrs[0].Message

	case errors.Is(err, attendance.ErrOnLeave):
		if action == ActionCheckOut {
			return "❌ You are on leave today. You cannot check out."
		}
		return "❌ You are on leave today. You cannot check in."
	case errors.Is(err, attendance.ErrAlreadyCheckedIn):
		return "❌ You have already checked in today. You can only check in once per day."
	case errors.Is(err, attendance.ErrNotCheckedIn):
		return "❌ You haven't checked in today. Please check in first."
	case errors.Is(err, attendance.ErrAlreadyCheckedOut):
		return "❌ You have already checked out today."

	case errors.Is(err, leave.ErrAlreadyAppliedToday):
		return "❌ You have already applied for leave today."
	case errors.Is(err, leave.ErrLeaveAfterCheckIn):
		return "❌ You cannot apply for leave after check-in or check-out today."

	case errors.Is(err, employee.ErrEmployeeNotFound):
		if action == ActionCheckOut {
			return "❌ Please check in first before checking out."
		}
		return "❌ No attendance record found. Please check in first."

	case errors.Is(err, ErrSelectionsIncomplete):
		return "❌ Please select both work location and status before proceeding."
	case errors.Is(err, wizard.ErrSessionNotFound), errors.Is(err, wizard.ErrSessionMismatch):
		return "❌ Missing status or work location. Please start over with /checkin."
	case errors.Is(err, ErrInvalidSelection):
		return "❌ Error processing selection. Please try again."
	}

	if action == ActionStatus {
		return "❌ Error fetching status. Please try again."
	}
	return "❌ Error processing " + string(action) + ". Please try again."
}

// IsUnexpected reports whether err has no user-facing meaning and should be logged.
func IsUnexpected(err error) bool {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		return false
	}
	known := []error{
		attendance.ErrOnLeave, attendance.ErrAlreadyCheckedIn, attendance.ErrNotCheckedIn, attendance.ErrAlreadyCheckedOut,
		leave.ErrAlreadyAppliedToday, leave.ErrLeaveAfterCheckIn, employee.ErrEmployeeNotFound,
		ErrSelectionsIncomplete, ErrInvalidSelection, wizard.ErrSessionNotFound, wizard.ErrSessionMismatch,
	}
	for _, k := range known {
		if errors.Is(err, k) {
			return false
		}
	}
	return true
}
