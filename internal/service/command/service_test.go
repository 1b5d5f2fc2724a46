package command

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/attendance-tracker/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-tracker/internal/domain/command"
	"github.com/cmlabs-hris/attendance-tracker/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-tracker/internal/domain/leave"
	"github.com/cmlabs-hris/attendance-tracker/internal/pkg/wizard"
	"github.com/cmlabs-hris/attendance-tracker/internal/repository/memory"
	attendanceService "github.com/cmlabs-hris/attendance-tracker/internal/service/attendance"
	employeeService "github.com/cmlabs-hris/attendance-tracker/internal/service/employee"
	leaveService "github.com/cmlabs-hris/attendance-tracker/internal/service/leave"
	settingsService "github.com/cmlabs-hris/attendance-tracker/internal/service/settings"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var alice = command.User{Platform: command.PlatformDiscord, ID: "42", Username: "alice", DisplayName: "Alice"}

type harness struct {
	svc     command.CommandService
	store   *memory.Store
	wizards *wizard.Store
	now     time.Time
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{
		store:   memory.NewStore(),
		wizards: wizard.NewStore(time.Minute),
		now:     time.Date(2024, 7, 15, 9, 30, 0, 0, time.UTC),
	}
	clock := func() time.Time { return h.now }

	settings := settingsService.NewSettingsService(h.store.Settings(), h.store.Transactor())
	attendances := attendanceService.NewAttendanceService(
		h.store.Attendance(), h.store.Leaves(), h.store.Holidays(), h.store.Employees(), settings, time.UTC, clock,
	)
	leaves := leaveService.NewLeaveService(h.store.Leaves(), h.store.Attendance(), settings, time.UTC, clock)
	employees := employeeService.NewEmployeeService(h.store.Employees(), attendances, leaves)

	h.svc = NewCommandService(employees, attendances, leaves, h.wizards, time.UTC, clock)
	return h
}

func (h *harness) checkIn(t *testing.T) {
	t.Helper()
	ctx := context.Background()

	session, err := h.svc.BeginCheckIn(ctx, alice)
	require.NoError(t, err)
	_, err = h.svc.SelectWorkFrom(ctx, alice, session.ID, "remote")
	require.NoError(t, err)
	_, err = h.svc.SelectMood(ctx, alice, session.ID, "Motivated")
	require.NoError(t, err)
	_, err = h.svc.CompleteCheckIn(ctx, alice, session.ID, command.CheckInDetails{TodayPlan: "plan", YesterdayTask: "task"})
	require.NoError(t, err)
}

func TestCommandService_CheckInWizard(t *testing.T) {
	ctx := context.Background()

	// Setup
	h := newHarness(t)
	session, err := h.svc.BeginCheckIn(ctx, alice)
	require.NoError(t, err)

	// Act
	_, err = h.svc.SelectWorkFrom(ctx, alice, session.ID, "office")
	require.NoError(t, err)
	_, err = h.svc.ProceedCheckIn(ctx, alice, session.ID)
	assert.ErrorIs(t, err, command.ErrSelectionsIncomplete)

	_, err = h.svc.SelectMood(ctx, alice, session.ID, "Excellent")
	require.NoError(t, err)
	reply, err := h.svc.CompleteCheckIn(ctx, alice, session.ID, command.CheckInDetails{
		TodayPlan:     "finish the report",
		YesterdayTask: "drafted the report",
	})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "✅ Check-in Successful!", reply.Title)
	assert.Equal(t, command.ColorCheckIn, reply.Color)
	assert.Equal(t, 0, h.wizards.Len(), "session is cleared after check-in")

	emp, err := h.store.Employees().GetByPlatformID(ctx, "42")
	require.NoError(t, err)
	assert.Equal(t, "Alice", emp.Name())

	record, err := h.store.Attendance().GetByEmployeeAndDate(ctx, emp.ID, time.Date(2024, 7, 15, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, "excellent", *record.CurrentStatus)
	assert.Equal(t, attendance.WorkFromOffice, *record.WorkFrom)
}

func TestCommandService_CheckInWizard_StaleSession(t *testing.T) {
	ctx := context.Background()

	h := newHarness(t)
	first, err := h.svc.BeginCheckIn(ctx, alice)
	require.NoError(t, err)
	_, err = h.svc.BeginCheckIn(ctx, alice)
	require.NoError(t, err)

	_, err = h.svc.SelectWorkFrom(ctx, alice, first.ID, "office")

	assert.ErrorIs(t, err, wizard.ErrSessionMismatch)
}

func TestCommandService_CheckInWizard_InvalidSelection(t *testing.T) {
	ctx := context.Background()

	h := newHarness(t)
	session, err := h.svc.BeginCheckIn(ctx, alice)
	require.NoError(t, err)

	_, err = h.svc.SelectWorkFrom(ctx, alice, session.ID, "moon")
	assert.ErrorIs(t, err, command.ErrInvalidSelection)
	_, err = h.svc.SelectMood(ctx, alice, session.ID, "grumpy")
	assert.ErrorIs(t, err, command.ErrInvalidSelection)
}

func TestCommandService_BeginCheckIn_Twice(t *testing.T) {
	h := newHarness(t)
	h.checkIn(t)

	_, err := h.svc.BeginCheckIn(context.Background(), alice)

	require.ErrorIs(t, err, attendance.ErrAlreadyCheckedIn)
	assert.Equal(t, "❌ You have already checked in today. You can only check in once per day.",
		command.UserMessage(command.ActionCheckIn, err))
}

func TestCommandService_CheckOut(t *testing.T) {
	ctx := context.Background()

	// Setup
	h := newHarness(t)
	err := h.svc.BeginCheckOut(ctx, alice)
	require.ErrorIs(t, err, employee.ErrEmployeeNotFound)
	assert.Equal(t, "❌ Please check in first before checking out.", command.UserMessage(command.ActionCheckOut, err))

	h.checkIn(t)
	h.now = h.now.Add(8 * time.Hour)
	require.NoError(t, h.svc.BeginCheckOut(ctx, alice))

	// Act
	_, err = h.svc.CompleteCheckOut(ctx, alice, command.CheckOutForm{
		Accomplishments:    "shipped",
		TomorrowPriorities: "rest",
		Rating:             "ten",
	})
	assert.Equal(t, "❌ Please provide a valid rating between 1 and 5.", command.UserMessage(command.ActionCheckOut, err))

	reply, err := h.svc.CompleteCheckOut(ctx, alice, command.CheckOutForm{
		Accomplishments:    "shipped",
		TomorrowPriorities: "rest",
		Rating:             "5",
	})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "👋 Check-out Successful!", reply.Title)
	assert.Contains(t, reply.Fields[1].Value, "None")
	assert.Contains(t, reply.Fields[3].Value, "5/5")
	assert.Equal(t, "17:30", reply.Fields[4].Value)

	err = h.svc.BeginCheckOut(ctx, alice)
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedOut)
}

func TestCommandService_Leave(t *testing.T) {
	ctx := context.Background()

	// Setup
	h := newHarness(t)
	require.NoError(t, h.svc.BeginLeave(ctx, alice))

	// Act
	reply, err := h.svc.CompleteLeave(ctx, alice, "doctor appointment")
	require.NoError(t, err)

	// Assert
	assert.Equal(t, "🏖️ Leave Applied Successfully!", reply.Title)
	assert.Equal(t, "2024-07-15", reply.Fields[0].Value)

	_, err = h.svc.BeginCheckIn(ctx, alice)
	require.ErrorIs(t, err, attendance.ErrOnLeave)
	assert.Equal(t, "❌ You are on leave today. You cannot check in.", command.UserMessage(command.ActionCheckIn, err))

	err = h.svc.BeginLeave(ctx, alice)
	assert.ErrorIs(t, err, leave.ErrAlreadyAppliedToday)
}

func TestCommandService_BeginLeave_DoesNotCreateEmployee(t *testing.T) {
	ctx := context.Background()

	// Setup
	h := newHarness(t)

	// Act
	err := h.svc.BeginLeave(ctx, alice)

	// Assert
	require.NoError(t, err)
	_, err = h.store.Employees().GetByPlatformID(ctx, alice.ID)
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)

	_, err = h.svc.CompleteLeave(ctx, alice, "family event")
	require.NoError(t, err)
	emp, err := h.store.Employees().GetByPlatformID(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", emp.Username)
}

func TestCommandService_Leave_AfterCheckIn(t *testing.T) {
	ctx := context.Background()

	h := newHarness(t)
	h.checkIn(t)

	err := h.svc.BeginLeave(ctx, alice)
	require.ErrorIs(t, err, leave.ErrLeaveAfterCheckIn)

	_, err = h.svc.CompleteLeave(ctx, alice, "sick")
	require.ErrorIs(t, err, leave.ErrLeaveAfterCheckIn)
	assert.False(t, command.IsUnexpected(err))
}

func TestCommandService_Status(t *testing.T) {
	ctx := context.Background()

	// Setup
	h := newHarness(t)
	_, err := h.svc.Status(ctx, alice)
	require.ErrorIs(t, err, employee.ErrEmployeeNotFound)

	h.checkIn(t)

	// Act
	reply, err := h.svc.Status(ctx, alice)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "📊 Your Attendance Status", reply.Title)
	assert.Equal(t, "Status for Alice", reply.Description)
	require.Len(t, reply.Fields, 3)
	assert.Contains(t, reply.Fields[0].Value, "09:30")
	assert.Contains(t, reply.Fields[0].Value, "Not checked out yet")
	// an open check-in counts as an incomplete day until check-out
	assert.Contains(t, reply.Fields[2].Value, "Remaining: 13/14 days")
}
