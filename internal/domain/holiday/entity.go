package holiday

import "time"

type Holiday struct {
	ID          int64
	Date        time.Time
	Name        string
	Description *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
