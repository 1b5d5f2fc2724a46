package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cmlabs-hris/attendance-tracker/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-tracker/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

const employeeColumns = `id, platform_id, username, display_name, email, department, position, is_active, created_at, updated_at`

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

func scanEmployee(row pgx.Row, e *employee.Employee, extra ...any) error {
	dest := []any{
		&e.ID,
		&e.PlatformID,
		&e.Username,
		&e.DisplayName,
		&e.Email,
		&e.Department,
		&e.Position,
		&e.IsActive,
		&e.CreatedAt,
		&e.UpdatedAt,
	}
	return row.Scan(append(dest, extra...)...)
}

// FindOrCreate implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) FindOrCreate(ctx context.Context, profile employee.PlatformProfile) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	// the no-op update makes RETURNING yield the existing row on conflict
	query := `
		INSERT INTO employees (platform_id, username, display_name)
		VALUES ($1, $2, $3)
		ON CONFLICT (platform_id) DO UPDATE SET platform_id = EXCLUDED.platform_id
		RETURNING ` + employeeColumns

	var e employee.Employee
	if err := scanEmployee(q.QueryRow(ctx, query, profile.PlatformID, profile.Username, nullIfBlank(profile.DisplayName)), &e); err != nil {
		return employee.Employee{}, fmt.Errorf("failed to upsert employee %s: %w", profile.PlatformID, err)
	}
	return e, nil
}

// GetByPlatformID implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) GetByPlatformID(ctx context.Context, platformID string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE platform_id = $1`

	var e employee.Employee
	if err := scanEmployee(q.QueryRow(ctx, query, platformID), &e); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, err
	}
	return e, nil
}

// GetByID implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) GetByID(ctx context.Context, id int64) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE id = $1`

	var e employee.Employee
	if err := scanEmployee(q.QueryRow(ctx, query, id), &e); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, err
	}
	return e, nil
}

// ListActive implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) ListActive(ctx context.Context) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT e.id, e.platform_id, e.username, e.display_name, e.email, e.department, e.position,
			e.is_active, e.created_at, e.updated_at,
			COUNT(a.id) AS total_attendance,
			MAX(a.check_in_time) AS last_checkin
		FROM employees e
		LEFT JOIN attendance a ON a.employee_id = e.id
		WHERE e.is_active = TRUE
		GROUP BY e.id
		ORDER BY e.username
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		var e employee.Employee
		if err := scanEmployee(rows, &e, &e.TotalAttendance, &e.LastCheckIn); err != nil {
			return nil, err
		}
		employees = append(employees, e)
	}
	return employees, rows.Err()
}

// Update implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Update(ctx context.Context, id int64, req employee.UpdateEmployeeRequest) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	updates := []string{}
	args := []interface{}{}
	argIdx := 1

	if req.DisplayName != nil {
		updates = append(updates, fmt.Sprintf("display_name = $%d", argIdx))
		args = append(args, strings.TrimSpace(*req.DisplayName))
		argIdx++
	}
	if req.Email != nil {
		updates = append(updates, fmt.Sprintf("email = $%d", argIdx))
		args = append(args, nullIfBlank(*req.Email))
		argIdx++
	}
	if req.Department != nil {
		updates = append(updates, fmt.Sprintf("department = $%d", argIdx))
		args = append(args, nullIfBlank(*req.Department))
		argIdx++
	}
	if req.Position != nil {
		updates = append(updates, fmt.Sprintf("position = $%d", argIdx))
		args = append(args, nullIfBlank(*req.Position))
		argIdx++
	}
	if req.IsActive != nil {
		updates = append(updates, fmt.Sprintf("is_active = $%d", argIdx))
		args = append(args, *req.IsActive)
		argIdx++
	}

	if len(updates) == 0 {
		return r.GetByID(ctx, id)
	}

	updates = append(updates, "updated_at = NOW()")
	args = append(args, id)

	query := fmt.Sprintf(`UPDATE employees SET %s WHERE id = $%d RETURNING %s`,
		strings.Join(updates, ", "), argIdx, employeeColumns)

	var e employee.Employee
	if err := scanEmployee(q.QueryRow(ctx, query, args...), &e); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, err
	}
	return e, nil
}

func nullIfBlank(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
