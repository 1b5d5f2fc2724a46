package leave

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/attendance-tracker/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-tracker/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-tracker/internal/domain/leave"
	"github.com/cmlabs-hris/attendance-tracker/internal/domain/settings"
	"github.com/cmlabs-hris/attendance-tracker/internal/pkg/validator"
	"github.com/cmlabs-hris/attendance-tracker/internal/repository/memory"
	settingsService "github.com/cmlabs-hris/attendance-tracker/internal/service/settings"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLeaveService(t *testing.T, now time.Time) (leave.LeaveService, *memory.Store, employee.Employee) {
	t.Helper()
	store := memory.NewStore()
	svc := NewLeaveService(
		store.Leaves(),
		store.Attendance(),
		settingsService.NewSettingsService(store.Settings(), store.Transactor()),
		time.UTC,
		func() time.Time { return now },
	)
	e, err := store.Employees().FindOrCreate(context.Background(), employee.PlatformProfile{PlatformID: "U1", Username: "alice"})
	require.NoError(t, err)
	return svc, store, e
}

func TestLeaveService_Apply_Success(t *testing.T) {
	ctx := context.Background()

	// Setup
	svc, _, e := newTestLeaveService(t, time.Date(2024, 7, 15, 8, 0, 0, 0, time.UTC))

	// Act
	created, err := svc.Apply(ctx, e.ID, leave.ApplyLeaveRequest{Description: "  family event "})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "family event", created.Description)
	assert.Equal(t, date(2024, time.July, 15), created.Date)
}

func TestLeaveService_Apply_Twice(t *testing.T) {
	ctx := context.Background()
	svc, _, e := newTestLeaveService(t, time.Date(2024, 7, 15, 8, 0, 0, 0, time.UTC))

	_, err := svc.Apply(ctx, e.ID, leave.ApplyLeaveRequest{Description: "sick"})
	require.NoError(t, err)

	_, err = svc.Apply(ctx, e.ID, leave.ApplyLeaveRequest{Description: "still sick"})

	assert.ErrorIs(t, err, leave.ErrAlreadyAppliedToday)
}

func TestLeaveService_Apply_AfterCheckIn(t *testing.T) {
	ctx := context.Background()

	// Setup
	now := time.Date(2024, 7, 15, 10, 0, 0, 0, time.UTC)
	svc, store, e := newTestLeaveService(t, now)
	_, ok, err := store.Attendance().CheckIn(ctx, attendance.CheckIn{
		EmployeeID: e.ID,
		Date:       date(2024, time.July, 15),
		At:         now.Add(-time.Hour),
		WorkFrom:   attendance.WorkFromOffice,
	})
	require.NoError(t, err)
	require.True(t, ok)

	// Act
	_, err = svc.Apply(ctx, e.ID, leave.ApplyLeaveRequest{Description: "feeling unwell"})

	// Assert
	require.ErrorIs(t, err, leave.ErrLeaveAfterCheckIn)
	assert.Contains(t, err.Error(), "cannot apply for leave after check-in")

	leaves, err := store.Leaves().ListByEmployee(ctx, e.ID, 10)
	require.NoError(t, err)
	assert.Empty(t, leaves)
}

func TestLeaveService_Apply_EmptyDescription(t *testing.T) {
	svc, _, e := newTestLeaveService(t, time.Date(2024, 7, 15, 8, 0, 0, 0, time.UTC))

	_, err := svc.Apply(context.Background(), e.ID, leave.ApplyLeaveRequest{Description: "   "})

	var verrs validator.ValidationErrors
	assert.ErrorAs(t, err, &verrs)
}

func TestLeaveService_Balance(t *testing.T) {
	ctx := context.Background()

	// Setup
	svc, store, e := newTestLeaveService(t, time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC))
	for _, d := range []time.Time{date(2024, time.August, 1), date(2024, time.December, 24), date(2024, time.July, 15)} {
		_, ok, err := store.Leaves().Apply(ctx, leave.Leave{EmployeeID: e.ID, Date: d, Description: "off"})
		require.NoError(t, err)
		require.True(t, ok)
	}
	_, ok, err := store.Attendance().CheckIn(ctx, attendance.CheckIn{
		EmployeeID: e.ID,
		Date:       date(2024, time.October, 10),
		At:         date(2024, time.October, 10).Add(9 * time.Hour),
		WorkFrom:   attendance.WorkFromRemote,
	})
	require.NoError(t, err)
	require.True(t, ok)

	// Act
	balance, err := svc.Balance(ctx, e.ID)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 14, balance.Allowance)
	assert.Equal(t, 2, balance.TakenLeaves, "leave before the reset date belongs to the previous year")
	assert.Equal(t, 1, balance.NoCheckInOutDays)
	assert.Equal(t, 3, balance.TotalUsed)
	assert.Equal(t, 11, balance.Remaining)
	assert.Equal(t, date(2024, time.July, 16), balance.Year.Start)
	assert.Equal(t, date(2025, time.July, 15), balance.Year.End)
}

func TestLeaveService_Balance_UsesConfiguredSettings(t *testing.T) {
	ctx := context.Background()

	// Setup
	svc, store, e := newTestLeaveService(t, time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC))
	require.NoError(t, store.Settings().Upsert(ctx, settings.KeyAnnualLeaveDays, "1"))
	require.NoError(t, store.Settings().Upsert(ctx, settings.KeyAnnualLeaveResetDate, "01-01"))
	for _, d := range []time.Time{date(2025, time.January, 6), date(2025, time.January, 7)} {
		_, _, err := store.Leaves().Apply(ctx, leave.Leave{EmployeeID: e.ID, Date: d, Description: "off"})
		require.NoError(t, err)
	}

	// Act
	balance, err := svc.Balance(ctx, e.ID)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 2, balance.TotalUsed)
	assert.Equal(t, 0, balance.Remaining, "remaining never goes negative")
	assert.Equal(t, date(2025, time.January, 1), balance.Year.Start)
}

func TestLeaveService_ListByEmployee(t *testing.T) {
	ctx := context.Background()

	svc, store, e := newTestLeaveService(t, time.Date(2024, 8, 1, 12, 0, 0, 0, time.UTC))
	_, _, err := store.Leaves().Apply(ctx, leave.Leave{EmployeeID: e.ID, Date: date(2024, time.July, 20), Description: "trip"})
	require.NoError(t, err)

	response, err := svc.ListByEmployee(ctx, e.ID)

	require.NoError(t, err)
	require.Len(t, response.Leaves, 1)
	require.NotNil(t, response.LeaveInfo)
	assert.Equal(t, 1, response.LeaveInfo.TakenLeaves)
	assert.Equal(t, "2024-07-16", response.LeaveInfo.YearStartDate)
}

func TestLeaveService_ListByDate(t *testing.T) {
	ctx := context.Background()

	svc, store, e := newTestLeaveService(t, time.Date(2024, 8, 1, 12, 0, 0, 0, time.UTC))
	_, _, err := store.Leaves().Apply(ctx, leave.Leave{EmployeeID: e.ID, Date: date(2024, time.July, 20), Description: "trip"})
	require.NoError(t, err)

	leaves, err := svc.ListByDate(ctx, "2024-07-20")
	require.NoError(t, err)
	require.Len(t, leaves, 1)
	require.NotNil(t, leaves[0].EmployeeUsername)
	assert.Equal(t, "alice", *leaves[0].EmployeeUsername)

	_, err = svc.ListByDate(ctx, "20-07-2024")
	var verrs validator.ValidationErrors
	assert.ErrorAs(t, err, &verrs)
}
