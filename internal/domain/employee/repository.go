package employee

import "context"

type EmployeeRepository interface {
	// FindOrCreate returns the employee registered under the platform id, creating it on first use
	FindOrCreate(ctx context.Context, profile PlatformProfile) (Employee, error)

	// GetByPlatformID returns ErrEmployeeNotFound when the platform user never interacted
	GetByPlatformID(ctx context.Context, platformID string) (Employee, error)
	GetByID(ctx context.Context, id int64) (Employee, error)

	// ListActive returns active employees with attendance aggregates, ordered by username
	ListActive(ctx context.Context) ([]Employee, error)

	Update(ctx context.Context, id int64, req UpdateEmployeeRequest) (Employee, error)
}
