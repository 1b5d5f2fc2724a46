package attendance

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cmlabs-hris/attendance-tracker/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-tracker/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-tracker/internal/domain/holiday"
	"github.com/cmlabs-hris/attendance-tracker/internal/domain/leave"
	"github.com/cmlabs-hris/attendance-tracker/internal/domain/settings"
	"github.com/cmlabs-hris/attendance-tracker/internal/pkg/utils"
)

// StatsWindowDays is the look-back of the per-employee stats.
const StatsWindowDays = 30

type AttendanceServiceImpl struct {
	attendanceRepository attendance.AttendanceRepository
	leaveRepository      leave.LeaveRepository
	holidayRepository    holiday.HolidayRepository
	employeeRepository   employee.EmployeeRepository
	settingsService      settings.SettingsService
	loc                  *time.Location
	clock                utils.Clock
}

func NewAttendanceService(
	attendanceRepository attendance.AttendanceRepository,
	leaveRepository leave.LeaveRepository,
	holidayRepository holiday.HolidayRepository,
	employeeRepository employee.EmployeeRepository,
	settingsService settings.SettingsService,
	loc *time.Location,
	clock utils.Clock,
) attendance.AttendanceService {
	if clock == nil {
		clock = time.Now
	}
	return &AttendanceServiceImpl{
		attendanceRepository: attendanceRepository,
		leaveRepository:      leaveRepository,
		holidayRepository:    holidayRepository,
		employeeRepository:   employeeRepository,
		settingsService:      settingsService,
		loc:                  loc,
		clock:                clock,
	}
}

func (s *AttendanceServiceImpl) today() time.Time {
	return utils.CalendarDate(s.clock(), s.loc)
}

// CheckIn implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) CheckIn(ctx context.Context, employeeID int64, req attendance.CheckInRequest) (attendance.Attendance, error) {
	if err := req.Validate(); err != nil {
		return attendance.Attendance{}, err
	}

	today := s.today()
	state, err := attendance.LoadDayState(ctx, s.attendanceRepository, s.leaveRepository, employeeID, today)
	if err != nil {
		return attendance.Attendance{}, err
	}
	if err := state.CanCheckIn(); err != nil {
		return attendance.Attendance{}, err
	}

	record, ok, err := s.attendanceRepository.CheckIn(ctx, attendance.CheckIn{
		EmployeeID:    employeeID,
		Date:          today,
		At:            s.clock(),
		WorkFrom:      attendance.WorkLocation(req.WorkFrom),
		CurrentStatus: strings.ToLower(req.CurrentStatus),
		TodayPlan:     strings.TrimSpace(req.TodayPlan),
		YesterdayTask: strings.TrimSpace(req.YesterdayTask),
	})
	if err != nil {
		return attendance.Attendance{}, fmt.Errorf("failed to check in: %w", err)
	}
	if !ok {
		return attendance.Attendance{}, s.rejection(ctx, employeeID, today, attendance.DayState.CanCheckIn, attendance.ErrAlreadyCheckedIn)
	}

	return record, nil
}

// CheckOut implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) CheckOut(ctx context.Context, employeeID int64, req attendance.CheckOutRequest) (attendance.Attendance, error) {
	if err := req.Validate(); err != nil {
		return attendance.Attendance{}, err
	}

	today := s.today()
	state, err := attendance.LoadDayState(ctx, s.attendanceRepository, s.leaveRepository, employeeID, today)
	if err != nil {
		return attendance.Attendance{}, err
	}
	if err := state.CanCheckOut(); err != nil {
		return attendance.Attendance{}, err
	}

	record, ok, err := s.attendanceRepository.CheckOut(ctx, attendance.CheckOut{
		EmployeeID:         employeeID,
		Date:               today,
		At:                 s.clock(),
		Accomplishments:    strings.TrimSpace(req.Accomplishments),
		Blockers:           req.BlockersOrNone(),
		TomorrowPriorities: strings.TrimSpace(req.TomorrowPriorities),
		OverallRating:      req.OverallRating,
	})
	if err != nil {
		return attendance.Attendance{}, fmt.Errorf("failed to check out: %w", err)
	}
	if !ok {
		return attendance.Attendance{}, s.rejection(ctx, employeeID, today, attendance.DayState.CanCheckOut, attendance.ErrAlreadyCheckedOut)
	}

	return record, nil
}

// rejection explains a conditional write that affected no rows, which means
// another command changed the day between our check and our write.
func (s *AttendanceServiceImpl) rejection(ctx context.Context, employeeID int64, day time.Time, check func(attendance.DayState) error, fallback error) error {
	state, err := attendance.LoadDayState(ctx, s.attendanceRepository, s.leaveRepository, employeeID, day)
	if err != nil {
		return err
	}
	if err := check(state); err != nil {
		return err
	}
	return fallback
}

// Today implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Today(ctx context.Context, employeeID int64) (attendance.DayState, error) {
	return attendance.LoadDayState(ctx, s.attendanceRepository, s.leaveRepository, employeeID, s.today())
}

// History implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) History(ctx context.Context, employeeID int64, limit int) ([]attendance.AttendanceResponse, error) {
	rows, err := s.attendanceRepository.ListByEmployee(ctx, employeeID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get attendance history: %w", err)
	}
	return attendance.NewAttendanceResponses(rows, s.loc), nil
}

// Stats implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Stats(ctx context.Context, employeeID int64) (attendance.EmployeeStatsResponse, error) {
	since := s.today().AddDate(0, 0, -StatsWindowDays)
	stats, err := s.attendanceRepository.GetEmployeeStats(ctx, employeeID, since)
	if err != nil {
		return attendance.EmployeeStatsResponse{}, fmt.Errorf("failed to get employee stats: %w", err)
	}
	return attendance.NewEmployeeStatsResponse(stats), nil
}

// Matrix implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Matrix(ctx context.Context, filter attendance.MatrixFilter) (attendance.MatrixResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.MatrixResponse{}, err
	}

	today := s.today()
	year := filter.ParsedYear(today.Year())
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)
	employeeID := filter.ParsedEmployeeID()

	cfg, err := s.settingsService.GetProjectSettings(ctx)
	if err != nil {
		return attendance.MatrixResponse{}, err
	}
	projectStart := start
	if cfg.ProjectStartDate != nil {
		projectStart = *cfg.ProjectStartDate
	}

	employees, err := s.matrixEmployees(ctx, employeeID)
	if err != nil {
		return attendance.MatrixResponse{}, err
	}

	rows, err := s.attendanceRepository.ListBetween(ctx, start, end, employeeID)
	if err != nil {
		return attendance.MatrixResponse{}, fmt.Errorf("failed to list attendance: %w", err)
	}
	leaves, err := s.leaveRepository.ListBetween(ctx, start, end, employeeID)
	if err != nil {
		return attendance.MatrixResponse{}, fmt.Errorf("failed to list leaves: %w", err)
	}
	holidays, err := s.holidayRepository.ListBetween(ctx, start, end)
	if err != nil {
		return attendance.MatrixResponse{}, fmt.Errorf("failed to list holidays: %w", err)
	}

	type dayKey struct {
		employeeID int64
		date       string
	}
	attendanceByDay := make(map[dayKey]*attendance.Attendance, len(rows))
	for i := range rows {
		attendanceByDay[dayKey{rows[i].EmployeeID, utils.FormatDate(rows[i].Date)}] = &rows[i]
	}
	leaveByDay := make(map[dayKey]*leave.Leave, len(leaves))
	for i := range leaves {
		leaveByDay[dayKey{leaves[i].EmployeeID, utils.FormatDate(leaves[i].Date)}] = &leaves[i]
	}

	response := attendance.MatrixResponse{
		Year:             year,
		ProjectStartDate: utils.FormatDate(projectStart),
		Holidays:         make(map[string]attendance.MatrixHoliday, len(holidays)),
		Employees:        make([]attendance.MatrixRow, 0, len(employees)),
	}
	for _, h := range holidays {
		response.Holidays[utils.FormatDate(h.Date)] = attendance.MatrixHoliday{Name: h.Name, Description: h.Description}
	}

	for _, emp := range employees {
		row := attendance.MatrixRow{
			Employee: attendance.MatrixEmployee{ID: emp.ID, Username: emp.Username, DisplayName: emp.DisplayName},
			Days:     make(map[string]attendance.MatrixDay),
			Summary:  make(map[attendance.Level]int, len(attendance.Levels)),
		}
		for _, level := range attendance.Levels {
			row.Summary[level] = 0
		}

		for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
			key := dayKey{emp.ID, utils.FormatDate(day)}
			_, isHoliday := response.Holidays[key.date]
			record := attendanceByDay[key]
			onLeave := leaveByDay[key]

			level := ClassifyDay(DayFacts{
				Date:         day,
				Today:        today,
				ProjectStart: &projectStart,
				IsHoliday:    isHoliday,
				OnLeave:      onLeave != nil,
				Attendance:   record,
			})

			cell := attendance.MatrixDay{Level: level}
			if record != nil {
				cell.HasCheckin = record.HasCheckIn()
				cell.HasCheckout = record.HasCheckOut()
				cell.Rating = record.OverallRating
			}
			if onLeave != nil {
				cell.LeaveDescription = &onLeave.Description
			}
			row.Days[key.date] = cell
			row.Summary[level]++
		}

		response.Employees = append(response.Employees, row)
	}

	return response, nil
}

func (s *AttendanceServiceImpl) matrixEmployees(ctx context.Context, employeeID *int64) ([]employee.Employee, error) {
	if employeeID == nil {
		employees, err := s.employeeRepository.ListActive(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list employees: %w", err)
		}
		return employees, nil
	}

	emp, err := s.employeeRepository.GetByID(ctx, *employeeID)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get employee: %w", err)
	}
	return []employee.Employee{emp}, nil
}
