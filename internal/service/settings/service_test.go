package settings

import (
	"context"
	"errors"
	"testing"

	"github.com/cmlabs-hris/attendance-tracker/internal/domain/settings"
	"github.com/cmlabs-hris/attendance-tracker/internal/pkg/database"
	"github.com/cmlabs-hris/attendance-tracker/internal/pkg/validator"
	"github.com/cmlabs-hris/attendance-tracker/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

// recordingTransactor runs fn directly and fails the unit of work when err is set.
type recordingTransactor struct {
	calls int
	err   error
}

func (r *recordingTransactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	r.calls++
	if err := fn(ctx); err != nil {
		return err
	}
	return r.err
}

var _ database.Transactor = (*recordingTransactor)(nil)

func TestSettingsService_Update_RunsInOneTransaction(t *testing.T) {
	ctx := context.Background()

	// Setup
	store := memory.NewStore()
	tx := &recordingTransactor{}
	svc := NewSettingsService(store.Settings(), tx)

	// Act
	_, err := svc.Update(ctx, settings.UpdateSettingsRequest{
		AnnualLeaveDays:      ptr(18),
		AnnualLeaveResetDate: ptr("01-01"),
	})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 1, tx.calls)
}

func TestSettingsService_Update_CommitFailure(t *testing.T) {
	ctx := context.Background()

	// Setup
	commitErr := errors.New("commit failed")
	svc := NewSettingsService(memory.NewStore().Settings(), &recordingTransactor{err: commitErr})

	// Act
	_, err := svc.Update(ctx, settings.UpdateSettingsRequest{AnnualLeaveDays: ptr(18)})

	// Assert
	assert.ErrorIs(t, err, commitErr)
}

func TestSettingsService_Get_Defaults(t *testing.T) {
	store := memory.NewStore()
	svc := NewSettingsService(store.Settings(), store.Transactor())

	got, err := svc.Get(context.Background())

	require.NoError(t, err)
	assert.Nil(t, got.ProjectStartDate)
	assert.Equal(t, settings.DefaultAnnualLeaveDays, got.AnnualLeaveDays)
	assert.Equal(t, settings.DefaultAnnualLeaveResetDate, got.AnnualLeaveResetDate)
}

func TestSettingsService_GetProjectSettings_IgnoresUnreadableValues(t *testing.T) {
	ctx := context.Background()

	// Setup
	store := memory.NewStore()
	require.NoError(t, store.Settings().Upsert(ctx, settings.KeyAnnualLeaveDays, "many"))
	require.NoError(t, store.Settings().Upsert(ctx, settings.KeyAnnualLeaveResetDate, "13-45"))
	require.NoError(t, store.Settings().Upsert(ctx, settings.KeyProjectStartDate, "yesterday"))
	svc := NewSettingsService(store.Settings(), store.Transactor())

	// Act
	got, err := svc.GetProjectSettings(ctx)

	// Assert
	require.NoError(t, err)
	assert.Nil(t, got.ProjectStartDate)
	assert.Equal(t, settings.DefaultAnnualLeaveDays, got.AnnualLeaveDays)
	assert.Equal(t, settings.DefaultAnnualLeaveResetDate, got.AnnualLeaveResetDate)
}

func TestSettingsService_Update(t *testing.T) {
	ctx := context.Background()

	// Setup
	store := memory.NewStore()
	svc := NewSettingsService(store.Settings(), store.Transactor())

	// Act
	got, err := svc.Update(ctx, settings.UpdateSettingsRequest{
		ProjectStartDate:     ptr("2024-05-01"),
		AnnualLeaveDays:      ptr(20),
		AnnualLeaveResetDate: ptr("02-29"),
	})

	// Assert
	require.NoError(t, err)
	require.NotNil(t, got.ProjectStartDate)
	assert.Equal(t, "2024-05-01", *got.ProjectStartDate)
	assert.Equal(t, 20, got.AnnualLeaveDays)
	assert.Equal(t, "02-29", got.AnnualLeaveResetDate)
}

func TestSettingsService_Update_Invalid(t *testing.T) {
	ctx := context.Background()

	// Setup
	store := memory.NewStore()
	svc := NewSettingsService(store.Settings(), store.Transactor())

	// Act
	_, err := svc.Update(ctx, settings.UpdateSettingsRequest{
		AnnualLeaveDays:      ptr(10),
		AnnualLeaveResetDate: ptr("02-30"),
	})

	// Assert
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs.ToMap(), "annual_leave_reset_date")

	got, err := svc.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, settings.DefaultAnnualLeaveDays, got.AnnualLeaveDays, "nothing is written when any field is invalid")
}

func TestSettingsService_UpdateAnnualLeave(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	svc := NewSettingsService(store.Settings(), store.Transactor())

	got, err := svc.UpdateAnnualLeave(ctx, settings.UpdateAnnualLeaveRequest{ResetDate: ptr("01-01")})
	require.NoError(t, err)
	assert.Equal(t, "01-01", got.AnnualLeaveResetDate)
	assert.Equal(t, settings.DefaultAnnualLeaveDays, got.AnnualLeaveDays)

	_, err = svc.UpdateAnnualLeave(ctx, settings.UpdateAnnualLeaveRequest{DefaultAnnualLeaveAllowance: ptr(-1)})
	var verrs validator.ValidationErrors
	assert.ErrorAs(t, err, &verrs)
}

func TestSettingsService_UpdateStartDate(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	svc := NewSettingsService(store.Settings(), store.Transactor())

	require.NoError(t, svc.UpdateStartDate(ctx, settings.UpdateStartDateRequest{StartDate: "2024-01-15"}))

	cfg, err := svc.GetProjectSettings(ctx)
	require.NoError(t, err)
	require.NotNil(t, cfg.ProjectStartDate)
	assert.Equal(t, 15, cfg.ProjectStartDate.Day())

	err = svc.UpdateStartDate(ctx, settings.UpdateStartDateRequest{})
	var verrs validator.ValidationErrors
	assert.ErrorAs(t, err, &verrs)
}
