package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/attendance-tracker/internal/domain/holiday"
	"github.com/cmlabs-hris/attendance-tracker/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

const holidayColumns = `id, date, name, description, created_at, updated_at`

type holidayRepositoryImpl struct {
	db *database.DB
}

func NewHolidayRepository(db *database.DB) holiday.HolidayRepository {
	return &holidayRepositoryImpl{db: db}
}

func scanHoliday(row pgx.Row, h *holiday.Holiday) error {
	return row.Scan(&h.ID, &h.Date, &h.Name, &h.Description, &h.CreatedAt, &h.UpdatedAt)
}

func (r *holidayRepositoryImpl) list(ctx context.Context, query string, args ...any) ([]holiday.Holiday, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var holidays []holiday.Holiday
	for rows.Next() {
		var h holiday.Holiday
		if err := scanHoliday(rows, &h); err != nil {
			return nil, err
		}
		holidays = append(holidays, h)
	}
	return holidays, rows.Err()
}

// Create implements holiday.HolidayRepository.
func (r *holidayRepositoryImpl) Create(ctx context.Context, h holiday.Holiday) (holiday.Holiday, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO holidays (date, name, description)
		VALUES ($1, $2, $3)
		RETURNING ` + holidayColumns

	var created holiday.Holiday
	if err := scanHoliday(q.QueryRow(ctx, query, h.Date, h.Name, h.Description), &created); err != nil {
		if database.IsUniqueViolation(err) {
			return holiday.Holiday{}, holiday.ErrHolidayExists
		}
		return holiday.Holiday{}, fmt.Errorf("failed to insert holiday: %w", err)
	}
	return created, nil
}

// List implements holiday.HolidayRepository.
func (r *holidayRepositoryImpl) List(ctx context.Context) ([]holiday.Holiday, error) {
	return r.list(ctx, `SELECT `+holidayColumns+` FROM holidays ORDER BY date DESC`)
}

// ListBetween implements holiday.HolidayRepository.
func (r *holidayRepositoryImpl) ListBetween(ctx context.Context, start, end time.Time) ([]holiday.Holiday, error) {
	return r.list(ctx, `SELECT `+holidayColumns+` FROM holidays WHERE date BETWEEN $1 AND $2 ORDER BY date`, start, end)
}

// ExistsOn implements holiday.HolidayRepository.
func (r *holidayRepositoryImpl) ExistsOn(ctx context.Context, date time.Time) (bool, error) {
	q := GetQuerier(ctx, r.db)

	var exists bool
	if err := q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM holidays WHERE date = $1)`, date).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// Delete implements holiday.HolidayRepository.
func (r *holidayRepositoryImpl) Delete(ctx context.Context, id int64) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM holidays WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete holiday: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return holiday.ErrHolidayNotFound
	}
	return nil
}
