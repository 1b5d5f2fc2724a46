package utils

import "time"

const DateLayout = "2006-01-02"

// Clock returns the current instant. Services take one so tests can pin "today".
type Clock func() time.Time

// CalendarDate returns the calendar day of t in loc as midnight UTC, the form DATE columns scan into.
func CalendarDate(t time.Time, loc *time.Location) time.Time {
	if loc != nil {
		t = t.In(loc)
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// FormatDate formats a calendar date as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// FormatDatePtr formats an optional calendar date.
func FormatDatePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := FormatDate(*t)
	return &s
}

// FormatTimestampPtr formats an optional instant as RFC3339 in loc.
func FormatTimestampPtr(t *time.Time, loc *time.Location) *string {
	if t == nil {
		return nil
	}
	if loc != nil {
		s := t.In(loc).Format(time.RFC3339)
		return &s
	}
	s := t.Format(time.RFC3339)
	return &s
}

// ParseDate parses YYYY-MM-DD into midnight UTC.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, time.UTC)
}
