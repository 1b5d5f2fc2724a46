package employee

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/attendance-tracker/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-tracker/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-tracker/internal/domain/leave"
)

const historyLimit = 30

type EmployeeServiceImpl struct {
	employeeRepo      employee.EmployeeRepository
	attendanceService attendance.AttendanceService
	leaveService      leave.LeaveService
}

func NewEmployeeService(
	employeeRepo employee.EmployeeRepository,
	attendanceService attendance.AttendanceService,
	leaveService leave.LeaveService,
) employee.EmployeeService {
	return &EmployeeServiceImpl{
		employeeRepo:      employeeRepo,
		attendanceService: attendanceService,
		leaveService:      leaveService,
	}
}

// List implements employee.EmployeeService.
func (s *EmployeeServiceImpl) List(ctx context.Context) ([]employee.EmployeeResponse, error) {
	employees, err := s.employeeRepo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}

	responses := make([]employee.EmployeeResponse, 0, len(employees))
	for _, e := range employees {
		responses = append(responses, employee.NewEmployeeResponse(e))
	}
	return responses, nil
}

// GetDetail implements employee.EmployeeService.
func (s *EmployeeServiceImpl) GetDetail(ctx context.Context, id int64) (employee.EmployeeDetailResponse, error) {
	if id <= 0 {
		return employee.EmployeeDetailResponse{}, employee.ErrInvalidID
	}

	emp, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return employee.EmployeeDetailResponse{}, err
		}
		return employee.EmployeeDetailResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}

	history, err := s.attendanceService.History(ctx, id, historyLimit)
	if err != nil {
		return employee.EmployeeDetailResponse{}, err
	}

	stats, err := s.attendanceService.Stats(ctx, id)
	if err != nil {
		return employee.EmployeeDetailResponse{}, err
	}

	detail := employee.EmployeeDetailResponse{
		Employee:          employee.NewEmployeeResponse(emp),
		AttendanceHistory: history,
		Stats:             stats,
	}

	balance, err := s.leaveService.Balance(ctx, id)
	if err != nil {
		slog.Error("Failed to calculate leave balance", "employee_id", id, "error", err)
	} else {
		info := leave.NewLeaveBalanceResponse(balance)
		detail.LeaveInfo = &info
	}

	return detail, nil
}

// Update implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Update(ctx context.Context, id int64, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	if id <= 0 {
		return employee.EmployeeResponse{}, employee.ErrInvalidID
	}
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	updated, err := s.employeeRepo.Update(ctx, id, req)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return employee.EmployeeResponse{}, err
		}
		return employee.EmployeeResponse{}, fmt.Errorf("failed to update employee: %w", err)
	}
	return employee.NewEmployeeResponse(updated), nil
}

// EnsureFromPlatform implements employee.EmployeeService.
func (s *EmployeeServiceImpl) EnsureFromPlatform(ctx context.Context, profile employee.PlatformProfile) (employee.Employee, error) {
	emp, err := s.employeeRepo.FindOrCreate(ctx, profile)
	if err != nil {
		return employee.Employee{}, fmt.Errorf("failed to register employee: %w", err)
	}
	return emp, nil
}

// FindByPlatformID implements employee.EmployeeService.
func (s *EmployeeServiceImpl) FindByPlatformID(ctx context.Context, platformID string) (employee.Employee, error) {
	emp, err := s.employeeRepo.GetByPlatformID(ctx, platformID)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return employee.Employee{}, err
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee by platform id: %w", err)
	}
	return emp, nil
}

// ListActive implements employee.EmployeeService.
func (s *EmployeeServiceImpl) ListActive(ctx context.Context) ([]employee.Employee, error) {
	employees, err := s.employeeRepo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	return employees, nil
}
