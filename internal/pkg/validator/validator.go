package validator

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

type ValidationError struct {
	Field   string
	Message string
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	var msgs []string
	for _, err := range v {
		msgs = append(msgs, err.Field+": "+err.Message)
	}
	return strings.Join(msgs, "; ")
}

func (v ValidationErrors) ToMap() map[string]string {
	result := make(map[string]string)
	for _, err := range v {
		result[err.Field] = err.Message
	}
	return result
}

// IsEmpty checks if a string is empty after trimming whitespace.
func IsEmpty(s string) bool {
	return strings.TrimSpace(s) == ""
}

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

func IsValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}

// IsValidDate parses a YYYY-MM-DD calendar date.
func IsValidDate(dateStr string) (time.Time, bool) {
	date, err := time.Parse("2006-01-02", dateStr)
	return date, err == nil
}

// Annual reset date, MM-DD
var resetDateRegex = regexp.MustCompile(`^(0[1-9]|1[0-2])-(0[1-9]|[12][0-9]|3[01])$`)

// IsValidResetDate reports whether s is an MM-DD value naming a real calendar day.
// 02-29 is accepted and rolls to 03-01 in non-leap years.
func IsValidResetDate(s string) bool {
	if !resetDateRegex.MatchString(s) {
		return false
	}
	month, _ := strconv.Atoi(s[:2])
	day, _ := strconv.Atoi(s[3:])
	// 2000 is a leap year, so Feb 29 survives the round trip
	t := time.Date(2000, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	return t.Day() == day
}

// IsValidYear accepts four-digit years in the range the dashboard can render.
func IsValidYear(year int) bool {
	return year >= 1970 && year <= 9999
}

// ParseRating parses a 1-5 day rating.
func ParseRating(s string) (int, bool) {
	rating, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, false
	}
	return rating, IsValidRating(rating)
}

func IsValidRating(rating int) bool {
	return rating >= 1 && rating <= 5
}
