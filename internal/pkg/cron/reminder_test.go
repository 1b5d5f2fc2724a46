package cron

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/cmlabs-hris/attendance-tracker/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-tracker/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-tracker/internal/domain/holiday"
	"github.com/cmlabs-hris/attendance-tracker/internal/domain/leave"
	"github.com/cmlabs-hris/attendance-tracker/internal/repository/memory"
	attendanceService "github.com/cmlabs-hris/attendance-tracker/internal/service/attendance"
	employeeService "github.com/cmlabs-hris/attendance-tracker/internal/service/employee"
	holidayService "github.com/cmlabs-hris/attendance-tracker/internal/service/holiday"
	leaveService "github.com/cmlabs-hris/attendance-tracker/internal/service/leave"
	settingsService "github.com/cmlabs-hris/attendance-tracker/internal/service/settings"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeNotifier struct {
	recipients []Recipient
	failFor    string
	sent       map[string]string
}

func (f *fakeNotifier) Platform() string { return "fake" }

func (f *fakeNotifier) Recipients(ctx context.Context) ([]Recipient, error) {
	return f.recipients, nil
}

func (f *fakeNotifier) SendDirect(ctx context.Context, recipientID, text string) error {
	if recipientID == f.failFor {
		return errors.New("dm closed")
	}
	f.sent[recipientID] = text
	return nil
}

func (f *fakeNotifier) sentTo() []string {
	ids := make([]string, 0, len(f.sent))
	for id := range f.sent {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

var reminderDay = time.Date(2024, 7, 15, 0, 0, 0, 0, time.UTC)

func newTestReminderJobs(t *testing.T) (*ReminderJobs, *memory.Store, *fakeNotifier) {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()
	clock := func() time.Time { return reminderDay.Add(10 * time.Hour) }

	settings := settingsService.NewSettingsService(store.Settings(), store.Transactor())
	attendances := attendanceService.NewAttendanceService(store.Attendance(), store.Leaves(), store.Holidays(), store.Employees(), settings, time.UTC, clock)
	leaves := leaveService.NewLeaveService(store.Leaves(), store.Attendance(), settings, time.UTC, clock)
	employees := employeeService.NewEmployeeService(store.Employees(), attendances, leaves)
	holidays := holidayService.NewHolidayService(store.Holidays())

	// in: checked in, out: checked in and out, away: on leave, new: never used the bot
	ids := map[string]int64{}
	for _, name := range []string{"in", "out", "away"} {
		e, err := store.Employees().FindOrCreate(ctx, employee.PlatformProfile{PlatformID: name, Username: name})
		require.NoError(t, err)
		ids[name] = e.ID
	}
	for _, name := range []string{"in", "out"} {
		_, _, err := store.Attendance().CheckIn(ctx, attendance.CheckIn{EmployeeID: ids[name], Date: reminderDay, At: reminderDay.Add(9 * time.Hour), WorkFrom: attendance.WorkFromOffice})
		require.NoError(t, err)
	}
	_, _, err := store.Attendance().CheckOut(ctx, attendance.CheckOut{EmployeeID: ids["out"], Date: reminderDay, At: reminderDay.Add(17 * time.Hour), OverallRating: 3})
	require.NoError(t, err)
	_, _, err = store.Leaves().Apply(ctx, leave.Leave{EmployeeID: ids["away"], Date: reminderDay, Description: "off"})
	require.NoError(t, err)

	notifier := &fakeNotifier{
		recipients: []Recipient{{ID: "in"}, {ID: "out"}, {ID: "away"}, {ID: "new"}},
		sent:       map[string]string{},
	}
	jobs := NewReminderJobs(employees, attendances, holidays, []Notifier{notifier}, time.UTC, clock)
	return jobs, store, notifier
}

func TestReminderJobs_CheckIn(t *testing.T) {
	jobs, _, notifier := newTestReminderJobs(t)

	require.NoError(t, jobs.SendCheckInReminders(context.Background()))

	assert.Equal(t, []string{"new"}, notifier.sentTo())
	assert.Equal(t, CheckInReminderText, notifier.sent["new"])
}

func TestReminderJobs_CheckOut(t *testing.T) {
	jobs, _, notifier := newTestReminderJobs(t)

	require.NoError(t, jobs.SendCheckOutReminders(context.Background()))

	assert.Equal(t, []string{"in", "new"}, notifier.sentTo())
	assert.Equal(t, CheckOutReminderText, notifier.sent["in"])
}

func TestReminderJobs_ContinuesAfterFailedSend(t *testing.T) {
	jobs, _, notifier := newTestReminderJobs(t)
	notifier.failFor = "in"

	require.NoError(t, jobs.SendCheckOutReminders(context.Background()))

	assert.Equal(t, []string{"new"}, notifier.sentTo())
}

func TestReminderJobs_SkipsHolidays(t *testing.T) {
	jobs, store, notifier := newTestReminderJobs(t)
	_, err := store.Holidays().Create(context.Background(), holiday.Holiday{Date: reminderDay, Name: "Festival"})
	require.NoError(t, err)

	require.NoError(t, jobs.SendCheckInReminders(context.Background()))

	assert.Empty(t, notifier.sent)
}
