package settings

import (
	"github.com/cmlabs-hris/attendance-tracker/internal/pkg/validator"
)

type SettingsResponse struct {
	ProjectStartDate     *string `json:"project_start_date"`
	AnnualLeaveDays      int     `json:"annual_leave_days"`
	AnnualLeaveResetDate string  `json:"annual_leave_reset_date"`
}

type UpdateSettingsRequest struct {
	ProjectStartDate     *string `json:"project_start_date,omitempty"`
	AnnualLeaveDays      *int    `json:"annual_leave_days,omitempty"`
	AnnualLeaveResetDate *string `json:"annual_leave_reset_date,omitempty"`
}

func (r *UpdateSettingsRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.ProjectStartDate == nil && r.AnnualLeaveDays == nil && r.AnnualLeaveResetDate == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "settings",
			Message: "at least one setting must be provided",
		})
	}

	if r.ProjectStartDate != nil {
		if _, valid := validator.IsValidDate(*r.ProjectStartDate); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "project_start_date",
				Message: "project_start_date must be in YYYY-MM-DD format",
			})
		}
	}

	if r.AnnualLeaveDays != nil && *r.AnnualLeaveDays < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "annual_leave_days",
			Message: "annual_leave_days must be a non-negative number",
		})
	}

	if r.AnnualLeaveResetDate != nil && !validator.IsValidResetDate(*r.AnnualLeaveResetDate) {
		errs = append(errs, validator.ValidationError{
			Field:   "annual_leave_reset_date",
			Message: "annual_leave_reset_date must be a valid date in MM-DD format",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateStartDateRequest struct {
	StartDate string `json:"startDate"`
}

func (r *UpdateStartDateRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.StartDate) {
		errs = append(errs, validator.ValidationError{
			Field:   "startDate",
			Message: "Start date is required",
		})
	} else if _, valid := validator.IsValidDate(r.StartDate); !valid {
		errs = append(errs, validator.ValidationError{
			Field:   "startDate",
			Message: "startDate must be in YYYY-MM-DD format",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateAnnualLeaveRequest struct {
	ResetDate                   *string `json:"resetDate,omitempty"`
	DefaultAnnualLeaveAllowance *int    `json:"defaultAnnualLeaveAllowance,omitempty"`
}

func (r *UpdateAnnualLeaveRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.ResetDate != nil && !validator.IsValidResetDate(*r.ResetDate) {
		errs = append(errs, validator.ValidationError{
			Field:   "resetDate",
			Message: "Invalid reset date format. Use MM-DD format.",
		})
	}

	if r.DefaultAnnualLeaveAllowance != nil && *r.DefaultAnnualLeaveAllowance < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "defaultAnnualLeaveAllowance",
			Message: "Default annual leave allowance must be a positive number.",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ToUpdate converts the narrow annual-leave request into the general partial update.
func (r UpdateAnnualLeaveRequest) ToUpdate() UpdateSettingsRequest {
	return UpdateSettingsRequest{
		AnnualLeaveDays:      r.DefaultAnnualLeaveAllowance,
		AnnualLeaveResetDate: r.ResetDate,
	}
}
