package holiday

import (
	"context"
	"time"
)

type HolidayRepository interface {
	// Create inserts a holiday, ErrHolidayExists when the date is taken
	Create(ctx context.Context, holiday Holiday) (Holiday, error)

	// List returns all holidays, newest date first
	List(ctx context.Context) ([]Holiday, error)

	// ListBetween returns holidays with start <= date <= end
	ListBetween(ctx context.Context, start, end time.Time) ([]Holiday, error)

	// ExistsOn reports whether date is a listed holiday
	ExistsOn(ctx context.Context, date time.Time) (bool, error)

	// Delete removes a holiday by id, ErrHolidayNotFound when nothing was deleted
	Delete(ctx context.Context, id int64) error
}
