package command

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/cmlabs-hris/attendance-tracker/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-tracker/internal/domain/command"
	"github.com/cmlabs-hris/attendance-tracker/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-tracker/internal/domain/leave"
	"github.com/cmlabs-hris/attendance-tracker/internal/pkg/utils"
	"github.com/cmlabs-hris/attendance-tracker/internal/pkg/wizard"
)

var ratingEmoji = [...]string{"😞", "😐", "😊", "😄", "🤩"}

type CommandServiceImpl struct {
	employeeService   employee.EmployeeService
	attendanceService attendance.AttendanceService
	leaveService      leave.LeaveService
	wizards           *wizard.Store
	loc               *time.Location
	clock             utils.Clock
}

func NewCommandService(
	employeeService employee.EmployeeService,
	attendanceService attendance.AttendanceService,
	leaveService leave.LeaveService,
	wizards *wizard.Store,
	loc *time.Location,
	clock utils.Clock,
) command.CommandService {
	if clock == nil {
		clock = time.Now
	}
	return &CommandServiceImpl{
		employeeService:   employeeService,
		attendanceService: attendanceService,
		leaveService:      leaveService,
		wizards:           wizards,
		loc:               loc,
		clock:             clock,
	}
}

// todayState returns the user's day, or an empty day for users never seen before.
func (s *CommandServiceImpl) todayState(ctx context.Context, user command.User) (attendance.DayState, error) {
	emp, err := s.employeeService.FindByPlatformID(ctx, user.ID)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return attendance.DayState{}, nil
		}
		return attendance.DayState{}, err
	}
	return s.attendanceService.Today(ctx, emp.ID)
}

// BeginCheckIn implements command.CommandService.
func (s *CommandServiceImpl) BeginCheckIn(ctx context.Context, user command.User) (wizard.Session, error) {
	state, err := s.todayState(ctx, user)
	if err != nil {
		return wizard.Session{}, err
	}
	if err := state.CanCheckIn(); err != nil {
		return wizard.Session{}, err
	}
	return s.wizards.Start(user.WizardKey()), nil
}

// SelectWorkFrom implements command.CommandService.
func (s *CommandServiceImpl) SelectWorkFrom(ctx context.Context, user command.User, sessionID string, value string) (wizard.Session, error) {
	if !attendance.WorkLocation(value).IsValid() {
		return wizard.Session{}, command.ErrInvalidSelection
	}
	return s.wizards.Update(user.WizardKey(), sessionID, func(session *wizard.Session) {
		session.WorkFrom = value
	})
}

// SelectMood implements command.CommandService.
func (s *CommandServiceImpl) SelectMood(ctx context.Context, user command.User, sessionID string, value string) (wizard.Session, error) {
	if !attendance.IsValidMood(value) {
		return wizard.Session{}, command.ErrInvalidSelection
	}
	return s.wizards.Update(user.WizardKey(), sessionID, func(session *wizard.Session) {
		session.Mood = strings.ToLower(value)
	})
}

// ProceedCheckIn implements command.CommandService.
func (s *CommandServiceImpl) ProceedCheckIn(ctx context.Context, user command.User, sessionID string) (wizard.Session, error) {
	session, err := s.wizards.Get(user.WizardKey(), sessionID)
	if err != nil {
		return wizard.Session{}, err
	}
	if !session.Complete() {
		return wizard.Session{}, command.ErrSelectionsIncomplete
	}
	return session, nil
}

// CompleteCheckIn implements command.CommandService.
func (s *CommandServiceImpl) CompleteCheckIn(ctx context.Context, user command.User, sessionID string, details command.CheckInDetails) (command.Reply, error) {
	session, err := s.ProceedCheckIn(ctx, user, sessionID)
	if err != nil {
		return command.Reply{}, err
	}

	reply, err := s.CheckIn(ctx, user, attendance.CheckInRequest{
		WorkFrom:      session.WorkFrom,
		CurrentStatus: session.Mood,
		TodayPlan:     details.TodayPlan,
		YesterdayTask: details.YesterdayTask,
	})
	if err != nil {
		return command.Reply{}, err
	}

	s.wizards.Delete(user.WizardKey())
	return reply, nil
}

// CheckIn implements command.CommandService.
func (s *CommandServiceImpl) CheckIn(ctx context.Context, user command.User, req attendance.CheckInRequest) (command.Reply, error) {
	if err := req.Validate(); err != nil {
		return command.Reply{}, err
	}

	emp, err := s.employeeService.EnsureFromPlatform(ctx, user.Profile())
	if err != nil {
		return command.Reply{}, err
	}

	record, err := s.attendanceService.CheckIn(ctx, emp.ID, req)
	if err != nil {
		return command.Reply{}, err
	}

	return command.Reply{
		Title:       "✅ Check-in Successful!",
		Description: "Your attendance has been recorded.",
		Color:       command.ColorCheckIn,
		Fields: []command.Field{
			{Name: "🎯 Today's Plan", Value: deref(record.TodayPlan, req.TodayPlan)},
			{Name: "📋 Yesterday's Task", Value: deref(record.YesterdayTask, req.YesterdayTask)},
			{Name: "💭 Feeling Today", Value: capitalize(req.CurrentStatus), Inline: true},
			{Name: "🏢 Work From", Value: capitalize(req.WorkFrom), Inline: true},
			{Name: "🕘 Checked in at", Value: s.clockTime(record.CheckInTime), Inline: true},
		},
		Footer: "Have a productive day!",
	}, nil
}

// BeginCheckOut implements command.CommandService.
func (s *CommandServiceImpl) BeginCheckOut(ctx context.Context, user command.User) error {
	emp, err := s.employeeService.FindByPlatformID(ctx, user.ID)
	if err != nil {
		return err
	}
	state, err := s.attendanceService.Today(ctx, emp.ID)
	if err != nil {
		return err
	}
	return state.CanCheckOut()
}

// CompleteCheckOut implements command.CommandService.
func (s *CommandServiceImpl) CompleteCheckOut(ctx context.Context, user command.User, form command.CheckOutForm) (command.Reply, error) {
	req, err := form.ToRequest()
	if err != nil {
		return command.Reply{}, err
	}
	if err := req.Validate(); err != nil {
		return command.Reply{}, err
	}

	emp, err := s.employeeService.FindByPlatformID(ctx, user.ID)
	if err != nil {
		return command.Reply{}, err
	}

	record, err := s.attendanceService.CheckOut(ctx, emp.ID, req)
	if err != nil {
		return command.Reply{}, err
	}

	return command.Reply{
		Title:       "👋 Check-out Successful!",
		Description: "Your work day has been recorded. Great job today!",
		Color:       command.ColorCheckOut,
		Fields: []command.Field{
			{Name: "✅ Accomplishments", Value: req.Accomplishments},
			{Name: "🚧 Blockers", Value: req.Blockers},
			{Name: "📅 Tomorrow's Priorities", Value: req.TomorrowPriorities},
			{Name: "⭐ Day Rating", Value: fmt.Sprintf("%d/5 %s", req.OverallRating, ratingEmoji[req.OverallRating-1]), Inline: true},
			{Name: "🕔 Checked out at", Value: s.clockTime(record.CheckOutTime), Inline: true},
		},
		Footer: "Have a great evening!",
	}, nil
}

// BeginLeave implements command.CommandService.
// Nothing is written until the leave is submitted.
func (s *CommandServiceImpl) BeginLeave(ctx context.Context, user command.User) error {
	state, err := s.todayState(ctx, user)
	if err != nil {
		return err
	}
	return state.CanApplyLeave()
}

// CompleteLeave implements command.CommandService.
func (s *CommandServiceImpl) CompleteLeave(ctx context.Context, user command.User, description string) (command.Reply, error) {
	emp, err := s.employeeService.EnsureFromPlatform(ctx, user.Profile())
	if err != nil {
		return command.Reply{}, err
	}

	applied, err := s.leaveService.Apply(ctx, emp.ID, leave.ApplyLeaveRequest{Description: description})
	if err != nil {
		return command.Reply{}, err
	}

	return command.Reply{
		Title:       "🏖️ Leave Applied Successfully!",
		Description: "Your leave application has been recorded.",
		Color:       command.ColorInfo,
		Fields: []command.Field{
			{Name: "📅 Date", Value: utils.FormatDate(applied.Date), Inline: true},
			{Name: "📝 Description", Value: applied.Description},
		},
		Footer: "Take care and rest well!",
	}, nil
}

// Status implements command.CommandService.
func (s *CommandServiceImpl) Status(ctx context.Context, user command.User) (command.Reply, error) {
	emp, err := s.employeeService.FindByPlatformID(ctx, user.ID)
	if err != nil {
		return command.Reply{}, err
	}

	state, err := s.attendanceService.Today(ctx, emp.ID)
	if err != nil {
		return command.Reply{}, err
	}

	stats, err := s.attendanceService.Stats(ctx, emp.ID)
	if err != nil {
		return command.Reply{}, err
	}

	reply := command.Reply{
		Title:       "📊 Your Attendance Status",
		Description: "Status for " + user.Name(),
		Color:       command.ColorInfo,
		Fields: []command.Field{
			{Name: "📅 Today's Status", Value: s.todayText(state)},
			{Name: "📈 30-Day Stats", Value: statsText(stats), Inline: true},
		},
	}

	balance, err := s.leaveService.Balance(ctx, emp.ID)
	if err != nil {
		slog.Error("Failed to calculate leave balance", "employee_id", emp.ID, "error", err)
	} else {
		reply.Fields = append(reply.Fields, command.Field{
			Name: "🏖️ Leave Balance",
			Value: fmt.Sprintf("Remaining: %d/%d days\nLeave year: %s to %s",
				balance.Remaining, balance.Allowance, utils.FormatDate(balance.Year.Start), utils.FormatDate(balance.Year.End)),
			Inline: true,
		})
	}

	return reply, nil
}

func (s *CommandServiceImpl) todayText(state attendance.DayState) string {
	switch {
	case state.Leave != nil:
		return "🏖️ On leave: " + state.Leave.Description
	case state.Attendance == nil || !state.Attendance.HasCheckIn():
		return "❌ Not checked in yet"
	case state.Attendance.HasCheckOut():
		return fmt.Sprintf("✅ Checked in: %s\n👋 Checked out: %s",
			s.clockTime(state.Attendance.CheckInTime), s.clockTime(state.Attendance.CheckOutTime))
	default:
		return fmt.Sprintf("✅ Checked in: %s\n⏳ Not checked out yet", s.clockTime(state.Attendance.CheckInTime))
	}
}

func statsText(stats attendance.EmployeeStatsResponse) string {
	rating := "N/A"
	if stats.AvgRating != nil {
		rating = fmt.Sprintf("%.1f", *stats.AvgRating)
	}
	return fmt.Sprintf("Days worked: %d\nCompleted days: %d\nAverage rating: %s/5", stats.TotalDays, stats.CompletedDays, rating)
}

func (s *CommandServiceImpl) clockTime(t *time.Time) string {
	if t == nil {
		return "-"
	}
	if s.loc != nil {
		return t.In(s.loc).Format("15:04")
	}
	return t.Format("15:04")
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func deref(p *string, fallback string) string {
	if p == nil {
		return fallback
	}
	return *p
}
