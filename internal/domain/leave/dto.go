package leave

import (
	"time"

	"github.com/cmlabs-hris/attendance-tracker/internal/pkg/utils"
	"github.com/cmlabs-hris/attendance-tracker/internal/pkg/validator"
)

type ApplyLeaveRequest struct {
	Description string `json:"description"`
}

func (r *ApplyLeaveRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Description) {
		errs = append(errs, validator.ValidationError{
			Field:   "description",
			Message: "description is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type LeaveResponse struct {
	ID                  int64     `json:"id"`
	EmployeeID          int64     `json:"employee_id"`
	Date                string    `json:"date"`
	Description         string    `json:"description"`
	CreatedAt           time.Time `json:"created_at"`
	EmployeeUsername    *string   `json:"username,omitempty"`
	EmployeeDisplayName *string   `json:"display_name,omitempty"`
}

func NewLeaveResponse(l Leave) LeaveResponse {
	return LeaveResponse{
		ID:                  l.ID,
		EmployeeID:          l.EmployeeID,
		Date:                utils.FormatDate(l.Date),
		Description:         l.Description,
		CreatedAt:           l.CreatedAt,
		EmployeeUsername:    l.EmployeeUsername,
		EmployeeDisplayName: l.EmployeeDisplayName,
	}
}

func NewLeaveResponses(leaves []Leave) []LeaveResponse {
	out := make([]LeaveResponse, 0, len(leaves))
	for _, l := range leaves {
		out = append(out, NewLeaveResponse(l))
	}
	return out
}

type LeaveBalanceResponse struct {
	Allowance        int    `json:"allowance"`
	TakenLeaves      int    `json:"takenLeaves"`
	NoCheckInOutDays int    `json:"noCheckInOutDays"`
	TotalUsed        int    `json:"totalUsed"`
	Remaining        int    `json:"remaining"`
	YearStartDate    string `json:"yearStartDate"`
	YearEndDate      string `json:"yearEndDate"`
}

func NewLeaveBalanceResponse(b LeaveBalance) LeaveBalanceResponse {
	return LeaveBalanceResponse{
		Allowance:        b.Allowance,
		TakenLeaves:      b.TakenLeaves,
		NoCheckInOutDays: b.NoCheckInOutDays,
		TotalUsed:        b.TotalUsed,
		Remaining:        b.Remaining,
		YearStartDate:    utils.FormatDate(b.Year.Start),
		YearEndDate:      utils.FormatDate(b.Year.End),
	}
}

type EmployeeLeavesResponse struct {
	Leaves    []LeaveResponse       `json:"leaves"`
	LeaveInfo *LeaveBalanceResponse `json:"leaveInfo"`
}
