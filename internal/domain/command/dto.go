package command

import (
	"github.com/cmlabs-hris/attendance-tracker/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-tracker/internal/pkg/validator"
)

// CheckInDetails are the free-text answers of the check-in modal.
type CheckInDetails struct {
	TodayPlan     string
	YesterdayTask string
}

// CheckOutForm holds the raw check-out modal values. Rating arrives as text.
type CheckOutForm struct {
	Accomplishments    string
	Blockers           string
	TomorrowPriorities string
	Rating             string
}

// ToRequest parses the rating and normalizes blank blockers.
func (f CheckOutForm) ToRequest() (attendance.CheckOutRequest, error) {
	rating, ok := validator.ParseRating(f.Rating)
	if !ok {
		return attendance.CheckOutRequest{}, validator.ValidationErrors{{
			Field:   "overall_rating",
			Message: "Please provide a valid rating between 1 and 5.",
		}}
	}
	req := attendance.CheckOutRequest{
		Accomplishments:    f.Accomplishments,
		Blockers:           f.Blockers,
		TomorrowPriorities: f.TomorrowPriorities,
		OverallRating:      rating,
	}
	req.Blockers = req.BlockersOrNone()
	return req, nil
}
