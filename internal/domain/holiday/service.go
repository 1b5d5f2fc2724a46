package holiday

import (
	"context"
	"time"
)

type HolidayService interface {
	List(ctx context.Context) ([]HolidayResponse, error)
	Create(ctx context.Context, req CreateHolidayRequest) (HolidayResponse, error)
	Delete(ctx context.Context, id int64) error

	// IsHoliday reports whether the given calendar date is a listed holiday
	IsHoliday(ctx context.Context, date time.Time) (bool, error)
}
