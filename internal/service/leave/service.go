package leave

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/cmlabs-hris/attendance-tracker/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-tracker/internal/domain/leave"
	"github.com/cmlabs-hris/attendance-tracker/internal/domain/settings"
	"github.com/cmlabs-hris/attendance-tracker/internal/pkg/utils"
	"github.com/cmlabs-hris/attendance-tracker/internal/pkg/validator"
)

const recentLeavesLimit = 30

type LeaveServiceImpl struct {
	leaveRepository      leave.LeaveRepository
	attendanceRepository attendance.AttendanceRepository
	settingsService      settings.SettingsService
	calculator           *YearCalculator
	loc                  *time.Location
	clock                utils.Clock
}

func NewLeaveService(leaveRepository leave.LeaveRepository, attendanceRepository attendance.AttendanceRepository, settingsService settings.SettingsService, loc *time.Location, clock utils.Clock) leave.LeaveService {
	if clock == nil {
		clock = time.Now
	}
	return &LeaveServiceImpl{
		leaveRepository:      leaveRepository,
		attendanceRepository: attendanceRepository,
		settingsService:      settingsService,
		calculator:           NewYearCalculator(),
		loc:                  loc,
		clock:                clock,
	}
}

func (s *LeaveServiceImpl) today() time.Time {
	return utils.CalendarDate(s.clock(), s.loc)
}

// Apply implements leave.LeaveService.
func (s *LeaveServiceImpl) Apply(ctx context.Context, employeeID int64, req leave.ApplyLeaveRequest) (leave.Leave, error) {
	if err := req.Validate(); err != nil {
		return leave.Leave{}, err
	}

	today := s.today()
	state, err := attendance.LoadDayState(ctx, s.attendanceRepository, s.leaveRepository, employeeID, today)
	if err != nil {
		return leave.Leave{}, err
	}
	if err := state.CanApplyLeave(); err != nil {
		return leave.Leave{}, err
	}

	created, ok, err := s.leaveRepository.Apply(ctx, leave.Leave{
		EmployeeID:  employeeID,
		Date:        today,
		Description: strings.TrimSpace(req.Description),
	})
	if err != nil {
		return leave.Leave{}, fmt.Errorf("failed to apply leave: %w", err)
	}
	if !ok {
		// a concurrent command won; report whichever record now blocks us
		state, err := attendance.LoadDayState(ctx, s.attendanceRepository, s.leaveRepository, employeeID, today)
		if err != nil {
			return leave.Leave{}, err
		}
		if err := state.CanApplyLeave(); err != nil {
			return leave.Leave{}, err
		}
		return leave.Leave{}, leave.ErrAlreadyAppliedToday
	}

	return created, nil
}

// Balance implements leave.LeaveService.
func (s *LeaveServiceImpl) Balance(ctx context.Context, employeeID int64) (leave.LeaveBalance, error) {
	cfg, err := s.settingsService.GetProjectSettings(ctx)
	if err != nil {
		return leave.LeaveBalance{}, err
	}

	reset, err := leave.ParseResetDate(cfg.AnnualLeaveResetDate)
	if err != nil {
		slog.Warn("Stored reset date is invalid, using default", "value", cfg.AnnualLeaveResetDate, "error", err)
		reset, _ = leave.ParseResetDate(settings.DefaultAnnualLeaveResetDate)
	}

	year := s.calculator.Window(s.today(), reset)

	taken, err := s.leaveRepository.CountBetween(ctx, employeeID, year.Start, year.End)
	if err != nil {
		return leave.LeaveBalance{}, fmt.Errorf("failed to count leaves: %w", err)
	}

	incomplete, err := s.attendanceRepository.CountIncompleteBetween(ctx, employeeID, year.Start, year.End)
	if err != nil {
		return leave.LeaveBalance{}, fmt.Errorf("failed to count incomplete attendance: %w", err)
	}

	return s.calculator.Balance(cfg.AnnualLeaveDays, taken, incomplete, year), nil
}

// ListAll implements leave.LeaveService.
func (s *LeaveServiceImpl) ListAll(ctx context.Context) ([]leave.LeaveResponse, error) {
	leaves, err := s.leaveRepository.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list leaves: %w", err)
	}
	return leave.NewLeaveResponses(leaves), nil
}

// ListByDate implements leave.LeaveService.
func (s *LeaveServiceImpl) ListByDate(ctx context.Context, date string) ([]leave.LeaveResponse, error) {
	day, valid := validator.IsValidDate(date)
	if !valid {
		return nil, validator.ValidationErrors{{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		}}
	}

	leaves, err := s.leaveRepository.ListByDate(ctx, day)
	if err != nil {
		return nil, fmt.Errorf("failed to list leaves by date: %w", err)
	}
	return leave.NewLeaveResponses(leaves), nil
}

// ListByEmployee implements leave.LeaveService.
func (s *LeaveServiceImpl) ListByEmployee(ctx context.Context, employeeID int64) (leave.EmployeeLeavesResponse, error) {
	leaves, err := s.leaveRepository.ListByEmployee(ctx, employeeID, recentLeavesLimit)
	if err != nil {
		return leave.EmployeeLeavesResponse{}, fmt.Errorf("failed to list employee leaves: %w", err)
	}

	response := leave.EmployeeLeavesResponse{
		Leaves: leave.NewLeaveResponses(leaves),
	}

	balance, err := s.Balance(ctx, employeeID)
	if err != nil {
		slog.Error("Failed to calculate leave balance", "employee_id", employeeID, "error", err)
		return response, nil
	}
	info := leave.NewLeaveBalanceResponse(balance)
	response.LeaveInfo = &info

	return response, nil
}
