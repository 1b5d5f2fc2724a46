package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalendarDate_UsesLocationDay(t *testing.T) {
	kathmandu, err := time.LoadLocation("Asia/Kathmandu")
	require.NoError(t, err)

	// 20:00 UTC on the 15th is already the 16th in Kathmandu (UTC+05:45)
	instant := time.Date(2024, 7, 15, 20, 0, 0, 0, time.UTC)

	assert.Equal(t, time.Date(2024, 7, 16, 0, 0, 0, 0, time.UTC), CalendarDate(instant, kathmandu))
	assert.Equal(t, time.Date(2024, 7, 15, 0, 0, 0, 0, time.UTC), CalendarDate(instant, time.UTC))
}

func TestParseAndFormatDate(t *testing.T) {
	d, err := ParseDate("2024-02-29")
	require.NoError(t, err)
	assert.Equal(t, "2024-02-29", FormatDate(d))
	assert.Equal(t, time.UTC, d.Location())

	_, err = ParseDate("2024-02-30")
	assert.Error(t, err)
}

func TestFormatPtrHelpers(t *testing.T) {
	assert.Nil(t, FormatDatePtr(nil))
	assert.Nil(t, FormatTimestampPtr(nil, time.UTC))

	d := time.Date(2024, 7, 16, 9, 55, 0, 0, time.UTC)
	assert.Equal(t, "2024-07-16", *FormatDatePtr(&d))
	assert.Equal(t, "2024-07-16T09:55:00Z", *FormatTimestampPtr(&d, time.UTC))
}
