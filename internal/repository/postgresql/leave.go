package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/attendance-tracker/internal/domain/leave"
	"github.com/cmlabs-hris/attendance-tracker/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

const leaveColumns = `l.id, l.employee_id, l.date, l.description, l.created_at`

type leaveRepositoryImpl struct {
	db *database.DB
}

func NewLeaveRepository(db *database.DB) leave.LeaveRepository {
	return &leaveRepositoryImpl{db: db}
}

func scanLeave(row pgx.Row, l *leave.Leave, extra ...any) error {
	dest := []any{&l.ID, &l.EmployeeID, &l.Date, &l.Description, &l.CreatedAt}
	return row.Scan(append(dest, extra...)...)
}

func collectLeaves(rows pgx.Rows, joined bool) ([]leave.Leave, error) {
	defer rows.Close()

	var leaves []leave.Leave
	for rows.Next() {
		var l leave.Leave
		var err error
		if joined {
			err = scanLeave(rows, &l, &l.EmployeeUsername, &l.EmployeeDisplayName)
		} else {
			err = scanLeave(rows, &l)
		}
		if err != nil {
			return nil, err
		}
		leaves = append(leaves, l)
	}
	return leaves, rows.Err()
}

// Apply implements leave.LeaveRepository.
func (r *leaveRepositoryImpl) Apply(ctx context.Context, l leave.Leave) (leave.Leave, bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leaves AS l (employee_id, date, description)
		SELECT $1::bigint, $2::date, $3::text
		WHERE NOT EXISTS (
			SELECT 1 FROM attendance a
			WHERE a.employee_id = $1 AND a.date = $2
				AND (a.check_in_time IS NOT NULL OR a.check_out_time IS NOT NULL)
		)
		ON CONFLICT (employee_id, date) DO NOTHING
		RETURNING ` + leaveColumns

	var created leave.Leave
	if err := scanLeave(q.QueryRow(ctx, query, l.EmployeeID, l.Date, l.Description), &created); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.Leave{}, false, nil
		}
		return leave.Leave{}, false, fmt.Errorf("failed to insert leave: %w", err)
	}
	return created, true, nil
}

// GetByEmployeeAndDate implements leave.LeaveRepository.
func (r *leaveRepositoryImpl) GetByEmployeeAndDate(ctx context.Context, employeeID int64, date time.Time) (leave.Leave, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + leaveColumns + ` FROM leaves l WHERE l.employee_id = $1 AND l.date = $2`

	var l leave.Leave
	if err := scanLeave(q.QueryRow(ctx, query, employeeID, date), &l); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.Leave{}, leave.ErrLeaveNotFound
		}
		return leave.Leave{}, err
	}
	return l, nil
}

// ListByEmployee implements leave.LeaveRepository.
func (r *leaveRepositoryImpl) ListByEmployee(ctx context.Context, employeeID int64, limit int) ([]leave.Leave, error) {
	if limit <= 0 {
		return nil, leave.ErrInvalidLimit
	}
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + leaveColumns + `
		FROM leaves l
		WHERE l.employee_id = $1
		ORDER BY l.date DESC
		LIMIT $2
	`

	rows, err := q.Query(ctx, query, employeeID, limit)
	if err != nil {
		return nil, err
	}
	return collectLeaves(rows, false)
}

// ListAll implements leave.LeaveRepository.
func (r *leaveRepositoryImpl) ListAll(ctx context.Context) ([]leave.Leave, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + leaveColumns + `, e.username, e.display_name
		FROM leaves l
		INNER JOIN employees e ON e.id = l.employee_id
		ORDER BY l.date DESC, l.created_at DESC
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	return collectLeaves(rows, true)
}

// ListByDate implements leave.LeaveRepository.
func (r *leaveRepositoryImpl) ListByDate(ctx context.Context, date time.Time) ([]leave.Leave, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + leaveColumns + `, e.username, e.display_name
		FROM leaves l
		INNER JOIN employees e ON e.id = l.employee_id
		WHERE l.date = $1
		ORDER BY e.username
	`

	rows, err := q.Query(ctx, query, date)
	if err != nil {
		return nil, err
	}
	return collectLeaves(rows, true)
}

// ListBetween implements leave.LeaveRepository.
func (r *leaveRepositoryImpl) ListBetween(ctx context.Context, start, end time.Time, employeeID *int64) ([]leave.Leave, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + leaveColumns + `
		FROM leaves l
		WHERE l.date BETWEEN $1 AND $2
			AND ($3::bigint IS NULL OR l.employee_id = $3)
		ORDER BY l.employee_id, l.date
	`

	rows, err := q.Query(ctx, query, start, end, employeeID)
	if err != nil {
		return nil, err
	}
	return collectLeaves(rows, false)
}

// CountBetween implements leave.LeaveRepository.
func (r *leaveRepositoryImpl) CountBetween(ctx context.Context, employeeID int64, start, end time.Time) (int, error) {
	q := GetQuerier(ctx, r.db)

	var count int
	err := q.QueryRow(ctx,
		`SELECT COUNT(*) FROM leaves WHERE employee_id = $1 AND date BETWEEN $2 AND $3`,
		employeeID, start, end,
	).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}
