package employee

import "context"

type EmployeeService interface {
	List(ctx context.Context) ([]EmployeeResponse, error)

	// GetDetail returns the employee with recent attendance, 30-day stats and leave balance
	GetDetail(ctx context.Context, id int64) (EmployeeDetailResponse, error)

	Update(ctx context.Context, id int64, req UpdateEmployeeRequest) (EmployeeResponse, error)

	// EnsureFromPlatform registers a chat user on first interaction
	EnsureFromPlatform(ctx context.Context, profile PlatformProfile) (Employee, error)

	// FindByPlatformID returns ErrEmployeeNotFound for unknown chat users
	FindByPlatformID(ctx context.Context, platformID string) (Employee, error)

	// ListActive returns the raw active employees
	ListActive(ctx context.Context) ([]Employee, error)
}
