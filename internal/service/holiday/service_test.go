package holiday

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/attendance-tracker/internal/domain/holiday"
	"github.com/cmlabs-hris/attendance-tracker/internal/pkg/validator"
	"github.com/cmlabs-hris/attendance-tracker/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHolidayService_CreateListDelete(t *testing.T) {
	ctx := context.Background()

	// Setup
	svc := NewHolidayService(memory.NewStore().Holidays())
	description := "  office closed "

	// Act
	created, err := svc.Create(ctx, holiday.CreateHolidayRequest{Date: "2024-12-25", Name: " Christmas ", Description: &description})
	require.NoError(t, err)
	_, err = svc.Create(ctx, holiday.CreateHolidayRequest{Date: "2024-01-01", Name: "New Year"})
	require.NoError(t, err)

	// Assert
	assert.Equal(t, "Christmas", created.Name)
	require.NotNil(t, created.Description)
	assert.Equal(t, "office closed", *created.Description)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "2024-12-25", list[0].Date, "newest first")

	isHoliday, err := svc.IsHoliday(ctx, time.Date(2024, 12, 25, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.True(t, isHoliday)

	require.NoError(t, svc.Delete(ctx, created.ID))
	assert.ErrorIs(t, svc.Delete(ctx, created.ID), holiday.ErrHolidayNotFound)
}

func TestHolidayService_Create_Duplicate(t *testing.T) {
	ctx := context.Background()
	svc := NewHolidayService(memory.NewStore().Holidays())

	_, err := svc.Create(ctx, holiday.CreateHolidayRequest{Date: "2024-12-25", Name: "Christmas"})
	require.NoError(t, err)

	_, err = svc.Create(ctx, holiday.CreateHolidayRequest{Date: "2024-12-25", Name: "Again"})

	assert.ErrorIs(t, err, holiday.ErrHolidayExists)
}

func TestHolidayService_Create_Invalid(t *testing.T) {
	svc := NewHolidayService(memory.NewStore().Holidays())

	_, err := svc.Create(context.Background(), holiday.CreateHolidayRequest{Date: "25/12/2024"})

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Len(t, verrs, 2)
}

func TestHolidayService_Delete_InvalidID(t *testing.T) {
	svc := NewHolidayService(memory.NewStore().Holidays())

	assert.ErrorIs(t, svc.Delete(context.Background(), 0), holiday.ErrHolidayNotFound)
}
