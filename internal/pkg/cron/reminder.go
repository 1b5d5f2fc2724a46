package cron

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/attendance-tracker/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-tracker/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-tracker/internal/domain/holiday"
	"github.com/cmlabs-hris/attendance-tracker/internal/pkg/utils"
)

const (
	CheckInReminderText  = "🌞 Good morning! Please don't forget to `/checkin` today."
	CheckOutReminderText = "🌇 The work day is over! Please remember to `/checkout` before leaving."
)

// Recipient is a chat user that can receive a direct message.
type Recipient struct {
	ID   string
	Name string
}

// Notifier delivers direct messages on one chat platform.
type Notifier interface {
	Platform() string
	// Recipients lists the human members that should be reminded. Bots and deactivated accounts are excluded.
	Recipients(ctx context.Context) ([]Recipient, error)
	SendDirect(ctx context.Context, recipientID, text string) error
}

type reminderKind int

const (
	checkInReminder reminderKind = iota
	checkOutReminder
)

type ReminderJobs struct {
	employeeService   employee.EmployeeService
	attendanceService attendance.AttendanceService
	holidayService    holiday.HolidayService
	notifiers         []Notifier
	loc               *time.Location
	clock             utils.Clock
}

func NewReminderJobs(
	employeeService employee.EmployeeService,
	attendanceService attendance.AttendanceService,
	holidayService holiday.HolidayService,
	notifiers []Notifier,
	loc *time.Location,
	clock utils.Clock,
) *ReminderJobs {
	if clock == nil {
		clock = time.Now
	}
	return &ReminderJobs{
		employeeService:   employeeService,
		attendanceService: attendanceService,
		holidayService:    holidayService,
		notifiers:         notifiers,
		loc:               loc,
		clock:             clock,
	}
}

func (j *ReminderJobs) RegisterJobs(scheduler *Scheduler, checkInSpec, checkOutSpec string) error {
	if err := scheduler.AddJob("checkin_reminder", checkInSpec, j.SendCheckInReminders); err != nil {
		return err
	}
	return scheduler.AddJob("checkout_reminder", checkOutSpec, j.SendCheckOutReminders)
}

func (j *ReminderJobs) SendCheckInReminders(ctx context.Context) error {
	return j.send(ctx, checkInReminder)
}

func (j *ReminderJobs) SendCheckOutReminders(ctx context.Context) error {
	return j.send(ctx, checkOutReminder)
}

func (j *ReminderJobs) send(ctx context.Context, kind reminderKind) error {
	today := utils.CalendarDate(j.clock(), j.loc)

	isHoliday, err := j.holidayService.IsHoliday(ctx, today)
	if err != nil {
		return err
	}
	if isHoliday {
		slog.Info("Cron: Skipping reminders on holiday", "date", utils.FormatDate(today))
		return nil
	}

	text := CheckInReminderText
	if kind == checkOutReminder {
		text = CheckOutReminderText
	}

	var errs []error
	for _, notifier := range j.notifiers {
		recipients, err := notifier.Recipients(ctx)
		if err != nil {
			errs = append(errs, fmt.Errorf("failed to list %s recipients: %w", notifier.Platform(), err))
			continue
		}

		sent := 0
		for _, r := range recipients {
			if ctx.Err() != nil {
				return ctx.Err()
			}

			skip, err := j.alreadyDone(ctx, r, kind)
			if err != nil {
				slog.Error("Cron: Failed to load recipient state", "platform", notifier.Platform(), "recipient", r.ID, "error", err)
			}
			if skip {
				continue
			}

			if err := notifier.SendDirect(ctx, r.ID, text); err != nil {
				slog.Warn("Cron: Could not send reminder", "platform", notifier.Platform(), "recipient", r.Name, "error", err)
				continue
			}
			sent++
		}
		slog.Info("Cron: Reminders sent", "platform", notifier.Platform(), "sent", sent, "recipients", len(recipients))
	}

	return errors.Join(errs...)
}

// alreadyDone reports whether the reminder no longer applies to r today.
// Users who never used the bot have no record and are always reminded.
func (j *ReminderJobs) alreadyDone(ctx context.Context, r Recipient, kind reminderKind) (bool, error) {
	emp, err := j.employeeService.FindByPlatformID(ctx, r.ID)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return false, nil
		}
		return false, err
	}

	state, err := j.attendanceService.Today(ctx, emp.ID)
	if err != nil {
		return false, err
	}

	if state.Leave != nil {
		return true, nil
	}
	if state.Attendance == nil {
		return false, nil
	}
	if kind == checkInReminder {
		return state.Attendance.HasCheckIn(), nil
	}
	return state.Attendance.HasCheckOut(), nil
}
