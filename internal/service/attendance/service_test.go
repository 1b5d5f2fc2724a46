package attendance

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/attendance-tracker/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-tracker/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-tracker/internal/domain/holiday"
	"github.com/cmlabs-hris/attendance-tracker/internal/domain/leave"
	"github.com/cmlabs-hris/attendance-tracker/internal/pkg/validator"
	"github.com/cmlabs-hris/attendance-tracker/internal/repository/memory"
	settingsService "github.com/cmlabs-hris/attendance-tracker/internal/service/settings"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testClock struct {
	now time.Time
}

func (c *testClock) Now() time.Time { return c.now }

func newTestAttendanceService(t *testing.T, now time.Time) (attendance.AttendanceService, *memory.Store, *testClock) {
	t.Helper()
	store := memory.NewStore()
	clock := &testClock{now: now}
	settings := settingsService.NewSettingsService(store.Settings(), store.Transactor())
	svc := NewAttendanceService(
		store.Attendance(),
		store.Leaves(),
		store.Holidays(),
		store.Employees(),
		settings,
		time.UTC,
		clock.Now,
	)
	return svc, store, clock
}

func seedEmployee(t *testing.T, store *memory.Store, platformID string) employee.Employee {
	t.Helper()
	e, err := store.Employees().FindOrCreate(context.Background(), employee.PlatformProfile{
		PlatformID: platformID,
		Username:   "user" + platformID,
	})
	require.NoError(t, err)
	return e
}

func validCheckIn() attendance.CheckInRequest {
	return attendance.CheckInRequest{
		WorkFrom:      "office",
		CurrentStatus: "Focused",
		TodayPlan:     "review pull requests",
		YesterdayTask: "wrote the matrix endpoint",
	}
}

func validCheckOut() attendance.CheckOutRequest {
	return attendance.CheckOutRequest{
		Accomplishments:    "merged two pull requests",
		TomorrowPriorities: "release",
		OverallRating:      4,
	}
}

func TestAttendanceService_CheckIn_Success(t *testing.T) {
	ctx := context.Background()

	// Setup
	now := time.Date(2024, 7, 15, 9, 5, 0, 0, time.UTC)
	svc, store, _ := newTestAttendanceService(t, now)
	e := seedEmployee(t, store, "100")

	// Act
	record, err := svc.CheckIn(ctx, e.ID, validCheckIn())

	// Assert
	require.NoError(t, err)
	require.NotNil(t, record.CheckInTime)
	assert.True(t, record.CheckInTime.Equal(now))
	require.NotNil(t, record.CurrentStatus)
	assert.Equal(t, "focused", *record.CurrentStatus, "moods are stored lowercased")
	assert.Equal(t, time.Date(2024, 7, 15, 0, 0, 0, 0, time.UTC), record.Date)
}

func TestAttendanceService_CheckIn_Twice(t *testing.T) {
	ctx := context.Background()

	// Setup
	first := time.Date(2024, 7, 15, 9, 0, 0, 0, time.UTC)
	svc, store, clock := newTestAttendanceService(t, first)
	e := seedEmployee(t, store, "101")
	_, err := svc.CheckIn(ctx, e.ID, validCheckIn())
	require.NoError(t, err)

	// Act
	clock.now = first.Add(2 * time.Hour)
	_, err = svc.CheckIn(ctx, e.ID, validCheckIn())

	// Assert
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedIn)
	state, err := svc.Today(ctx, e.ID)
	require.NoError(t, err)
	require.NotNil(t, state.Attendance)
	assert.True(t, state.Attendance.CheckInTime.Equal(first), "first check-in time is kept")
}

func TestAttendanceService_CheckIn_NextDayAllowed(t *testing.T) {
	ctx := context.Background()

	first := time.Date(2024, 7, 15, 9, 0, 0, 0, time.UTC)
	svc, store, clock := newTestAttendanceService(t, first)
	e := seedEmployee(t, store, "102")
	_, err := svc.CheckIn(ctx, e.ID, validCheckIn())
	require.NoError(t, err)

	clock.now = first.AddDate(0, 0, 1)
	_, err = svc.CheckIn(ctx, e.ID, validCheckIn())

	assert.NoError(t, err)
}

func TestAttendanceService_CheckIn_OnLeave(t *testing.T) {
	ctx := context.Background()

	// Setup
	now := time.Date(2024, 7, 15, 9, 0, 0, 0, time.UTC)
	svc, store, _ := newTestAttendanceService(t, now)
	e := seedEmployee(t, store, "103")
	_, ok, err := store.Leaves().Apply(ctx, leave.Leave{EmployeeID: e.ID, Date: time.Date(2024, 7, 15, 0, 0, 0, 0, time.UTC), Description: "sick"})
	require.NoError(t, err)
	require.True(t, ok)

	// Act
	_, err = svc.CheckIn(ctx, e.ID, validCheckIn())

	// Assert
	assert.ErrorIs(t, err, attendance.ErrOnLeave)
}

func TestAttendanceService_CheckIn_InvalidRequest(t *testing.T) {
	svc, store, _ := newTestAttendanceService(t, time.Date(2024, 7, 15, 9, 0, 0, 0, time.UTC))
	e := seedEmployee(t, store, "104")

	req := validCheckIn()
	req.WorkFrom = "beach"
	req.CurrentStatus = "sleepy"
	_, err := svc.CheckIn(context.Background(), e.ID, req)

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs.ToMap(), "work_from")
	assert.Contains(t, verrs.ToMap(), "current_status")
}

func TestAttendanceService_CheckOut(t *testing.T) {
	ctx := context.Background()

	// Setup
	now := time.Date(2024, 7, 15, 9, 0, 0, 0, time.UTC)
	svc, store, clock := newTestAttendanceService(t, now)
	e := seedEmployee(t, store, "105")

	// Act & Assert
	_, err := svc.CheckOut(ctx, e.ID, validCheckOut())
	assert.ErrorIs(t, err, attendance.ErrNotCheckedIn)

	_, err = svc.CheckIn(ctx, e.ID, validCheckIn())
	require.NoError(t, err)

	clock.now = now.Add(8 * time.Hour)
	record, err := svc.CheckOut(ctx, e.ID, validCheckOut())
	require.NoError(t, err)
	require.NotNil(t, record.Blockers)
	assert.Equal(t, attendance.BlockersNone, *record.Blockers)
	require.NotNil(t, record.OverallRating)
	assert.Equal(t, 4, *record.OverallRating)

	_, err = svc.CheckOut(ctx, e.ID, validCheckOut())
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedOut)

	stats, err := svc.Stats(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.TotalDays)
	assert.Equal(t, 1, stats.CompletedDays)
}

func TestAttendanceService_CheckOut_InvalidRating(t *testing.T) {
	svc, store, _ := newTestAttendanceService(t, time.Date(2024, 7, 15, 9, 0, 0, 0, time.UTC))
	e := seedEmployee(t, store, "106")

	req := validCheckOut()
	req.OverallRating = 6
	_, err := svc.CheckOut(context.Background(), e.ID, req)

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, "Please provide a valid rating between 1 and 5.", verrs.ToMap()["overall_rating"])
}

func TestAttendanceService_Matrix(t *testing.T) {
	ctx := context.Background()

	// Setup
	day := func(m time.Month, d int) time.Time { return time.Date(2024, m, d, 0, 0, 0, 0, time.UTC) }
	svc, store, _ := newTestAttendanceService(t, time.Date(2024, 7, 20, 12, 0, 0, 0, time.UTC))
	e := seedEmployee(t, store, "200")

	_, _, err := store.Attendance().CheckIn(ctx, attendance.CheckIn{EmployeeID: e.ID, Date: day(7, 15), At: day(7, 15).Add(9 * time.Hour), WorkFrom: attendance.WorkFromOffice})
	require.NoError(t, err)
	_, _, err = store.Attendance().CheckOut(ctx, attendance.CheckOut{EmployeeID: e.ID, Date: day(7, 15), At: day(7, 15).Add(17 * time.Hour), OverallRating: 5})
	require.NoError(t, err)
	_, _, err = store.Attendance().CheckIn(ctx, attendance.CheckIn{EmployeeID: e.ID, Date: day(7, 19), At: day(7, 19).Add(9 * time.Hour), WorkFrom: attendance.WorkFromRemote})
	require.NoError(t, err)
	_, _, err = store.Leaves().Apply(ctx, leave.Leave{EmployeeID: e.ID, Date: day(7, 16), Description: "dentist"})
	require.NoError(t, err)
	_, err = store.Holidays().Create(ctx, holiday.Holiday{Date: day(7, 17), Name: "Founders Day"})
	require.NoError(t, err)

	// Act
	matrix, err := svc.Matrix(ctx, attendance.MatrixFilter{Year: "2024"})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 2024, matrix.Year)
	assert.Equal(t, "2024-01-01", matrix.ProjectStartDate)
	assert.Contains(t, matrix.Holidays, "2024-07-17")
	require.Len(t, matrix.Employees, 1)

	row := matrix.Employees[0]
	assert.Len(t, row.Days, 366)
	assert.Equal(t, attendance.LevelExcellent, row.Days["2024-07-15"].Level)
	assert.Equal(t, attendance.LevelOnLeave, row.Days["2024-07-16"].Level)
	require.NotNil(t, row.Days["2024-07-16"].LeaveDescription)
	assert.Equal(t, "dentist", *row.Days["2024-07-16"].LeaveDescription)
	assert.Equal(t, attendance.LevelNonWorking, row.Days["2024-07-17"].Level)
	assert.Equal(t, attendance.LevelAbsent, row.Days["2024-07-18"].Level)
	assert.Equal(t, attendance.LevelPartial, row.Days["2024-07-19"].Level)
	assert.Equal(t, attendance.LevelNonWorking, row.Days["2024-07-13"].Level)
	assert.Equal(t, attendance.LevelInactive, row.Days["2024-07-21"].Level)

	total := 0
	for _, n := range row.Summary {
		total += n
	}
	assert.Equal(t, 366, total)
	assert.Len(t, row.Summary, len(attendance.Levels))
}

func TestAttendanceService_Matrix_InvalidFilter(t *testing.T) {
	svc, _, _ := newTestAttendanceService(t, time.Date(2024, 7, 20, 12, 0, 0, 0, time.UTC))

	_, err := svc.Matrix(context.Background(), attendance.MatrixFilter{Year: "20x4", EmployeeID: "-3"})

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Len(t, verrs, 2)
}

func TestAttendanceService_Matrix_UnknownEmployee(t *testing.T) {
	svc, _, _ := newTestAttendanceService(t, time.Date(2024, 7, 20, 12, 0, 0, 0, time.UTC))

	_, err := svc.Matrix(context.Background(), attendance.MatrixFilter{EmployeeID: "999"})

	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}
