// Package memory holds map-backed repositories with the same write rules as
// the PostgreSQL ones. Service and handler tests run against it.
package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/cmlabs-hris/attendance-tracker/internal/domain/analytics"
	"github.com/cmlabs-hris/attendance-tracker/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-tracker/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-tracker/internal/domain/holiday"
	"github.com/cmlabs-hris/attendance-tracker/internal/domain/leave"
	"github.com/cmlabs-hris/attendance-tracker/internal/domain/settings"
	"github.com/cmlabs-hris/attendance-tracker/internal/domain/user"
	"github.com/cmlabs-hris/attendance-tracker/internal/pkg/database"
)

type Store struct {
	mu         sync.Mutex
	nextID     int64
	employees  []employee.Employee
	attendance []attendance.Attendance
	leaves     []leave.Leave
	holidays   []holiday.Holiday
	settings   map[string]settings.Setting
	users      []user.AdminUser
}

// NewStore returns an empty store seeded with the default project settings.
func NewStore() *Store {
	s := &Store{settings: map[string]settings.Setting{}}
	now := time.Now()
	for key, value := range map[string]string{
		settings.KeyAnnualLeaveDays:      "14",
		settings.KeyAnnualLeaveResetDate: settings.DefaultAnnualLeaveResetDate,
	} {
		s.settings[key] = settings.Setting{ID: s.id(), Key: key, Value: value, CreatedAt: now, UpdatedAt: now}
	}
	return s
}

func (s *Store) id() int64 {
	s.nextID++
	return s.nextID
}

func (s *Store) Employees() employee.EmployeeRepository      { return &employeeRepository{s} }
func (s *Store) Attendance() attendance.AttendanceRepository { return &attendanceRepository{s} }
func (s *Store) Leaves() leave.LeaveRepository               { return &leaveRepository{s} }
func (s *Store) Holidays() holiday.HolidayRepository         { return &holidayRepository{s} }
func (s *Store) Settings() settings.SettingsRepository       { return &settingsRepository{s} }
func (s *Store) Users() user.UserRepository                  { return &userRepository{s} }
func (s *Store) Analytics() analytics.AnalyticsRepository    { return &analyticsRepository{s} }
func (s *Store) Transactor() database.Transactor             { return transactor{} }

type transactor struct{}

func (transactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func strPtr(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func within(date, start, end time.Time) bool {
	return !date.Before(start) && !date.After(end)
}

func matches(filter *int64, id int64) bool {
	return filter == nil || *filter == id
}

// employee

type employeeRepository struct{ s *Store }

func (r *employeeRepository) FindOrCreate(ctx context.Context, profile employee.PlatformProfile) (employee.Employee, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, e := range r.s.employees {
		if e.PlatformID == profile.PlatformID {
			return e, nil
		}
	}
	now := time.Now()
	e := employee.Employee{
		ID:          r.s.id(),
		PlatformID:  profile.PlatformID,
		Username:    profile.Username,
		DisplayName: strPtr(profile.DisplayName),
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	r.s.employees = append(r.s.employees, e)
	return e, nil
}

func (r *employeeRepository) GetByPlatformID(ctx context.Context, platformID string) (employee.Employee, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, e := range r.s.employees {
		if e.PlatformID == platformID {
			return e, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (r *employeeRepository) GetByID(ctx context.Context, id int64) (employee.Employee, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, e := range r.s.employees {
		if e.ID == id {
			return e, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (r *employeeRepository) ListActive(ctx context.Context) ([]employee.Employee, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var active []employee.Employee
	for _, e := range r.s.employees {
		if !e.IsActive {
			continue
		}
		for _, a := range r.s.attendance {
			if a.EmployeeID != e.ID || a.CheckInTime == nil {
				continue
			}
			e.TotalAttendance++
			if e.LastCheckIn == nil || a.CheckInTime.After(*e.LastCheckIn) {
				at := *a.CheckInTime
				e.LastCheckIn = &at
			}
		}
		active = append(active, e)
	}
	sort.Slice(active, func(i, j int) bool { return active[i].Username < active[j].Username })
	return active, nil
}

func (r *employeeRepository) Update(ctx context.Context, id int64, req employee.UpdateEmployeeRequest) (employee.Employee, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for i := range r.s.employees {
		e := &r.s.employees[i]
		if e.ID != id {
			continue
		}
		if req.DisplayName != nil {
			name := strings.TrimSpace(*req.DisplayName)
			e.DisplayName = &name
		}
		if req.Email != nil {
			e.Email = strPtr(*req.Email)
		}
		if req.Department != nil {
			e.Department = strPtr(*req.Department)
		}
		if req.Position != nil {
			e.Position = strPtr(*req.Position)
		}
		if req.IsActive != nil {
			e.IsActive = *req.IsActive
		}
		e.UpdatedAt = time.Now()
		return *e, nil
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (s *Store) employeeNames(id int64) (*string, *string) {
	for _, e := range s.employees {
		if e.ID == id {
			username := e.Username
			return &username, e.DisplayName
		}
	}
	return nil, nil
}

// attendance

type attendanceRepository struct{ s *Store }

func (s *Store) findAttendance(employeeID int64, date time.Time) int {
	for i, a := range s.attendance {
		if a.EmployeeID == employeeID && a.Date.Equal(date) {
			return i
		}
	}
	return -1
}

func (s *Store) findLeave(employeeID int64, date time.Time) int {
	for i, l := range s.leaves {
		if l.EmployeeID == employeeID && l.Date.Equal(date) {
			return i
		}
	}
	return -1
}

func (r *attendanceRepository) GetByEmployeeAndDate(ctx context.Context, employeeID int64, date time.Time) (attendance.Attendance, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if i := r.s.findAttendance(employeeID, date); i >= 0 {
		return r.s.attendance[i], nil
	}
	return attendance.Attendance{}, attendance.ErrAttendanceNotFound
}

func (r *attendanceRepository) CheckIn(ctx context.Context, c attendance.CheckIn) (attendance.Attendance, bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.s.findLeave(c.EmployeeID, c.Date) >= 0 {
		return attendance.Attendance{}, false, nil
	}

	i := r.s.findAttendance(c.EmployeeID, c.Date)
	if i < 0 {
		r.s.attendance = append(r.s.attendance, attendance.Attendance{
			ID:         r.s.id(),
			EmployeeID: c.EmployeeID,
			Date:       c.Date,
			CreatedAt:  c.At,
		})
		i = len(r.s.attendance) - 1
	}

	a := &r.s.attendance[i]
	if a.CheckInTime != nil {
		return attendance.Attendance{}, false, nil
	}
	at := c.At
	workFrom := c.WorkFrom
	a.CheckInTime = &at
	a.WorkFrom = &workFrom
	a.CurrentStatus = strPtr(c.CurrentStatus)
	a.TodayPlan = strPtr(c.TodayPlan)
	a.YesterdayTask = strPtr(c.YesterdayTask)
	a.UpdatedAt = c.At
	return *a, true, nil
}

func (r *attendanceRepository) CheckOut(ctx context.Context, c attendance.CheckOut) (attendance.Attendance, bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.s.findLeave(c.EmployeeID, c.Date) >= 0 {
		return attendance.Attendance{}, false, nil
	}
	i := r.s.findAttendance(c.EmployeeID, c.Date)
	if i < 0 {
		return attendance.Attendance{}, false, nil
	}

	a := &r.s.attendance[i]
	if a.CheckInTime == nil || a.CheckOutTime != nil {
		return attendance.Attendance{}, false, nil
	}
	at := c.At
	rating := c.OverallRating
	a.CheckOutTime = &at
	a.Accomplishments = strPtr(c.Accomplishments)
	a.Blockers = strPtr(c.Blockers)
	a.TomorrowPriorities = strPtr(c.TomorrowPriorities)
	a.OverallRating = &rating
	a.UpdatedAt = c.At
	return *a, true, nil
}

func (r *attendanceRepository) ListByEmployee(ctx context.Context, employeeID int64, limit int) ([]attendance.Attendance, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("invalid limit %d", limit)
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var records []attendance.Attendance
	for _, a := range r.s.attendance {
		if a.EmployeeID == employeeID {
			records = append(records, a)
		}
	}
	sort.Slice(records, func(i, j int) bool { return records[i].Date.After(records[j].Date) })
	if len(records) > limit {
		records = records[:limit]
	}
	return records, nil
}

func (r *attendanceRepository) ListBetween(ctx context.Context, start, end time.Time, employeeID *int64) ([]attendance.Attendance, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var records []attendance.Attendance
	for _, a := range r.s.attendance {
		if within(a.Date, start, end) && matches(employeeID, a.EmployeeID) {
			records = append(records, a)
		}
	}
	sort.Slice(records, func(i, j int) bool {
		if records[i].EmployeeID != records[j].EmployeeID {
			return records[i].EmployeeID < records[j].EmployeeID
		}
		return records[i].Date.Before(records[j].Date)
	})
	return records, nil
}

func (r *attendanceRepository) ListByDate(ctx context.Context, date time.Time) ([]attendance.Attendance, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var records []attendance.Attendance
	for _, a := range r.s.attendance {
		if a.Date.Equal(date) {
			a.EmployeeUsername, a.EmployeeDisplayName = r.s.employeeNames(a.EmployeeID)
			records = append(records, a)
		}
	}
	return records, nil
}

func (r *attendanceRepository) CountIncompleteBetween(ctx context.Context, employeeID int64, start, end time.Time) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	count := 0
	for _, a := range r.s.attendance {
		if a.EmployeeID == employeeID && within(a.Date, start, end) && a.IsIncomplete() {
			count++
		}
	}
	return count, nil
}

func (r *attendanceRepository) GetEmployeeStats(ctx context.Context, employeeID int64, since time.Time) (attendance.EmployeeStats, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var stats attendance.EmployeeStats
	var ratingSum, hoursSum float64
	var rated, timed int
	for _, a := range r.s.attendance {
		if a.EmployeeID != employeeID || a.CheckInTime == nil || a.Date.Before(since) {
			continue
		}
		stats.TotalDays++
		if a.CheckOutTime != nil {
			stats.CompletedDays++
			hoursSum += a.CheckOutTime.Sub(*a.CheckInTime).Hours()
			timed++
		}
		if a.OverallRating != nil {
			ratingSum += float64(*a.OverallRating)
			rated++
		}
	}
	if rated > 0 {
		avg := ratingSum / float64(rated)
		stats.AvgRating = &avg
	}
	if timed > 0 {
		avg := hoursSum / float64(timed)
		stats.AvgHours = &avg
	}
	return stats, nil
}

// leave

type leaveRepository struct{ s *Store }

func (r *leaveRepository) Apply(ctx context.Context, l leave.Leave) (leave.Leave, bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.s.findLeave(l.EmployeeID, l.Date) >= 0 {
		return leave.Leave{}, false, nil
	}
	if i := r.s.findAttendance(l.EmployeeID, l.Date); i >= 0 {
		a := r.s.attendance[i]
		if a.CheckInTime != nil || a.CheckOutTime != nil {
			return leave.Leave{}, false, nil
		}
	}
	l.ID = r.s.id()
	l.CreatedAt = time.Now()
	r.s.leaves = append(r.s.leaves, l)
	return l, true, nil
}

func (r *leaveRepository) GetByEmployeeAndDate(ctx context.Context, employeeID int64, date time.Time) (leave.Leave, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if i := r.s.findLeave(employeeID, date); i >= 0 {
		return r.s.leaves[i], nil
	}
	return leave.Leave{}, leave.ErrLeaveNotFound
}

func (r *leaveRepository) ListByEmployee(ctx context.Context, employeeID int64, limit int) ([]leave.Leave, error) {
	if limit <= 0 {
		return nil, leave.ErrInvalidLimit
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var leaves []leave.Leave
	for _, l := range r.s.leaves {
		if l.EmployeeID == employeeID {
			leaves = append(leaves, l)
		}
	}
	sortLeavesDesc(leaves)
	if len(leaves) > limit {
		leaves = leaves[:limit]
	}
	return leaves, nil
}

func (r *leaveRepository) ListAll(ctx context.Context) ([]leave.Leave, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	leaves := make([]leave.Leave, 0, len(r.s.leaves))
	for _, l := range r.s.leaves {
		l.EmployeeUsername, l.EmployeeDisplayName = r.s.employeeNames(l.EmployeeID)
		leaves = append(leaves, l)
	}
	sortLeavesDesc(leaves)
	return leaves, nil
}

func (r *leaveRepository) ListByDate(ctx context.Context, date time.Time) ([]leave.Leave, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var leaves []leave.Leave
	for _, l := range r.s.leaves {
		if l.Date.Equal(date) {
			l.EmployeeUsername, l.EmployeeDisplayName = r.s.employeeNames(l.EmployeeID)
			leaves = append(leaves, l)
		}
	}
	return leaves, nil
}

func (r *leaveRepository) ListBetween(ctx context.Context, start, end time.Time, employeeID *int64) ([]leave.Leave, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var leaves []leave.Leave
	for _, l := range r.s.leaves {
		if within(l.Date, start, end) && matches(employeeID, l.EmployeeID) {
			leaves = append(leaves, l)
		}
	}
	return leaves, nil
}

func (r *leaveRepository) CountBetween(ctx context.Context, employeeID int64, start, end time.Time) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	count := 0
	for _, l := range r.s.leaves {
		if l.EmployeeID == employeeID && within(l.Date, start, end) {
			count++
		}
	}
	return count, nil
}

func sortLeavesDesc(leaves []leave.Leave) {
	sort.Slice(leaves, func(i, j int) bool { return leaves[i].Date.After(leaves[j].Date) })
}

// holiday

type holidayRepository struct{ s *Store }

func (r *holidayRepository) Create(ctx context.Context, h holiday.Holiday) (holiday.Holiday, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, existing := range r.s.holidays {
		if existing.Date.Equal(h.Date) {
			return holiday.Holiday{}, holiday.ErrHolidayExists
		}
	}
	now := time.Now()
	h.ID = r.s.id()
	h.CreatedAt = now
	h.UpdatedAt = now
	r.s.holidays = append(r.s.holidays, h)
	return h, nil
}

func (r *holidayRepository) List(ctx context.Context) ([]holiday.Holiday, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	holidays := append([]holiday.Holiday(nil), r.s.holidays...)
	sort.Slice(holidays, func(i, j int) bool { return holidays[i].Date.After(holidays[j].Date) })
	return holidays, nil
}

func (r *holidayRepository) ListBetween(ctx context.Context, start, end time.Time) ([]holiday.Holiday, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var holidays []holiday.Holiday
	for _, h := range r.s.holidays {
		if within(h.Date, start, end) {
			holidays = append(holidays, h)
		}
	}
	sort.Slice(holidays, func(i, j int) bool { return holidays[i].Date.Before(holidays[j].Date) })
	return holidays, nil
}

func (r *holidayRepository) ExistsOn(ctx context.Context, date time.Time) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, h := range r.s.holidays {
		if h.Date.Equal(date) {
			return true, nil
		}
	}
	return false, nil
}

func (r *holidayRepository) Delete(ctx context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for i, h := range r.s.holidays {
		if h.ID == id {
			r.s.holidays = append(r.s.holidays[:i], r.s.holidays[i+1:]...)
			return nil
		}
	}
	return holiday.ErrHolidayNotFound
}

// settings

type settingsRepository struct{ s *Store }

func (r *settingsRepository) GetAll(ctx context.Context) ([]settings.Setting, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	all := make([]settings.Setting, 0, len(r.s.settings))
	for _, setting := range r.s.settings {
		all = append(all, setting)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Key < all[j].Key })
	return all, nil
}

func (r *settingsRepository) Get(ctx context.Context, key string) (settings.Setting, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	setting, ok := r.s.settings[key]
	if !ok {
		return settings.Setting{}, settings.ErrSettingNotFound
	}
	return setting, nil
}

func (r *settingsRepository) Upsert(ctx context.Context, key string, value string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	now := time.Now()
	setting, ok := r.s.settings[key]
	if !ok {
		setting = settings.Setting{ID: r.s.id(), Key: key, CreatedAt: now}
	}
	setting.Value = value
	setting.UpdatedAt = now
	r.s.settings[key] = setting
	return nil
}

// user

type userRepository struct{ s *Store }

func (r *userRepository) GetByUsername(ctx context.Context, username string) (user.AdminUser, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, u := range r.s.users {
		if u.Username == username {
			return u, nil
		}
	}
	return user.AdminUser{}, user.ErrUserNotFound
}

func (r *userRepository) Create(ctx context.Context, username string, passwordHash string) (user.AdminUser, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, u := range r.s.users {
		if u.Username == username {
			return user.AdminUser{}, user.ErrUserAlreadyExists
		}
	}
	u := user.AdminUser{ID: r.s.id(), Username: username, PasswordHash: passwordHash, CreatedAt: time.Now()}
	r.s.users = append(r.s.users, u)
	return u, nil
}

// analytics

type analyticsRepository struct{ s *Store }

func (r *analyticsRepository) DailyStats(ctx context.Context, since time.Time) ([]analytics.DailyStat, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	byDate := map[time.Time]*analytics.DailyStat{}
	ratings := map[time.Time][]int{}
	for _, a := range r.s.attendance {
		if a.Date.Before(since) {
			continue
		}
		st, ok := byDate[a.Date]
		if !ok {
			st = &analytics.DailyStat{Date: a.Date}
			byDate[a.Date] = st
		}
		if a.CheckInTime != nil {
			st.TotalCheckIns++
		}
		if a.CheckOutTime != nil {
			st.TotalCheckOuts++
		}
		if a.OverallRating != nil {
			ratings[a.Date] = append(ratings[a.Date], *a.OverallRating)
		}
	}

	stats := make([]analytics.DailyStat, 0, len(byDate))
	for date, st := range byDate {
		st.AvgRating = average(ratings[date])
		stats = append(stats, *st)
	}
	sort.Slice(stats, func(i, j int) bool { return stats[i].Date.After(stats[j].Date) })
	return stats, nil
}

func (r *analyticsRepository) TodayCounts(ctx context.Context, date time.Time) (analytics.TodayCounts, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var counts analytics.TodayCounts
	for _, e := range r.s.employees {
		if e.IsActive {
			counts.ActiveEmployees++
		}
	}
	var ratings []int
	for _, a := range r.s.attendance {
		if !a.Date.Equal(date) {
			continue
		}
		if a.CheckInTime != nil {
			counts.CheckedIn++
		}
		if a.CheckOutTime != nil {
			counts.CheckedOut++
		}
		if a.OverallRating != nil {
			ratings = append(ratings, *a.OverallRating)
		}
	}
	for _, l := range r.s.leaves {
		if l.Date.Equal(date) {
			counts.OnLeave++
		}
	}
	counts.AvgRating = average(ratings)
	return counts, nil
}

func (r *analyticsRepository) DayStatuses(ctx context.Context, date time.Time) ([]analytics.EmployeeDayStatus, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var statuses []analytics.EmployeeDayStatus
	for _, e := range r.s.employees {
		if !e.IsActive {
			continue
		}
		status := analytics.EmployeeDayStatus{
			EmployeeID:  e.ID,
			Username:    e.Username,
			DisplayName: e.DisplayName,
			OnLeave:     r.s.findLeave(e.ID, date) >= 0,
		}
		if i := r.s.findAttendance(e.ID, date); i >= 0 {
			status.CheckInTime = r.s.attendance[i].CheckInTime
			status.CheckOutTime = r.s.attendance[i].CheckOutTime
		}
		statuses = append(statuses, status)
	}
	sort.Slice(statuses, func(i, j int) bool { return statuses[i].Username < statuses[j].Username })
	return statuses, nil
}

func average(values []int) *float64 {
	if len(values) == 0 {
		return nil
	}
	sum := 0
	for _, v := range values {
		sum += v
	}
	avg := float64(sum) / float64(len(values))
	return &avg
}
