package leave

import "context"

type LeaveService interface {
	// Apply records a leave for today
	Apply(ctx context.Context, employeeID int64, req ApplyLeaveRequest) (Leave, error)

	// Balance computes the employee's leave balance for the leave year containing today
	Balance(ctx context.Context, employeeID int64) (LeaveBalance, error)

	ListAll(ctx context.Context) ([]LeaveResponse, error)
	ListByDate(ctx context.Context, date string) ([]LeaveResponse, error)

	// ListByEmployee returns recent leaves and the balance; a failed balance is logged and returned as nil
	ListByEmployee(ctx context.Context, employeeID int64) (EmployeeLeavesResponse, error)
}
