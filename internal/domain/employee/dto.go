package employee

import (
	"time"

	"github.com/cmlabs-hris/attendance-tracker/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-tracker/internal/domain/leave"
	"github.com/cmlabs-hris/attendance-tracker/internal/pkg/validator"
)

type EmployeeResponse struct {
	ID              int64      `json:"id"`
	PlatformID      string     `json:"platform_id"`
	Username        string     `json:"username"`
	DisplayName     *string    `json:"display_name"`
	Email           *string    `json:"email"`
	Department      *string    `json:"department"`
	Position        *string    `json:"position"`
	IsActive        bool       `json:"is_active"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
	TotalAttendance int        `json:"total_attendance"`
	LastCheckIn     *time.Time `json:"last_checkin"`
}

func NewEmployeeResponse(e Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:              e.ID,
		PlatformID:      e.PlatformID,
		Username:        e.Username,
		DisplayName:     e.DisplayName,
		Email:           e.Email,
		Department:      e.Department,
		Position:        e.Position,
		IsActive:        e.IsActive,
		CreatedAt:       e.CreatedAt,
		UpdatedAt:       e.UpdatedAt,
		TotalAttendance: e.TotalAttendance,
		LastCheckIn:     e.LastCheckIn,
	}
}

type EmployeeDetailResponse struct {
	Employee          EmployeeResponse                 `json:"employee"`
	AttendanceHistory []attendance.AttendanceResponse  `json:"attendanceHistory"`
	Stats             attendance.EmployeeStatsResponse `json:"stats"`
	LeaveInfo         *leave.LeaveBalanceResponse      `json:"leaveInfo"`
}

type UpdateEmployeeRequest struct {
	DisplayName *string `json:"display_name,omitempty"`
	Email       *string `json:"email,omitempty"`
	Department  *string `json:"department,omitempty"`
	Position    *string `json:"position,omitempty"`
	IsActive    *bool   `json:"is_active,omitempty"`
}

func (r *UpdateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.DisplayName == nil && r.Email == nil && r.Department == nil && r.Position == nil && r.IsActive == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "employee",
			Message: "at least one field must be provided",
		})
	}

	if r.DisplayName != nil && validator.IsEmpty(*r.DisplayName) {
		errs = append(errs, validator.ValidationError{
			Field:   "display_name",
			Message: "display_name must not be empty",
		})
	}

	if r.Email != nil && !validator.IsEmpty(*r.Email) && !validator.IsValidEmail(*r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "invalid email format",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
