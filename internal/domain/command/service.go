package command

import (
	"context"

	"github.com/cmlabs-hris/attendance-tracker/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-tracker/internal/pkg/wizard"
)

// CommandService implements the chat commands independent of the platform.
type CommandService interface {
	// BeginCheckIn checks eligibility and opens a fresh wizard session
	BeginCheckIn(ctx context.Context, user User) (wizard.Session, error)
	SelectWorkFrom(ctx context.Context, user User, sessionID string, value string) (wizard.Session, error)
	SelectMood(ctx context.Context, user User, sessionID string, value string) (wizard.Session, error)

	// ProceedCheckIn verifies both selections were made before the details modal is shown
	ProceedCheckIn(ctx context.Context, user User, sessionID string) (wizard.Session, error)
	CompleteCheckIn(ctx context.Context, user User, sessionID string, details CheckInDetails) (Reply, error)

	// CheckIn records a check-in submitted as a single form
	CheckIn(ctx context.Context, user User, req attendance.CheckInRequest) (Reply, error)

	// BeginCheckOut checks eligibility before the check-out modal is shown
	BeginCheckOut(ctx context.Context, user User) error
	CompleteCheckOut(ctx context.Context, user User, form CheckOutForm) (Reply, error)

	BeginLeave(ctx context.Context, user User) error
	CompleteLeave(ctx context.Context, user User, description string) (Reply, error)

	Status(ctx context.Context, user User) (Reply, error)
}
