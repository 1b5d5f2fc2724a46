package attendance

import "context"

type AttendanceService interface {
	CheckIn(ctx context.Context, employeeID int64, req CheckInRequest) (Attendance, error)
	CheckOut(ctx context.Context, employeeID int64, req CheckOutRequest) (Attendance, error)

	// Today returns the attendance and leave recorded for the employee today
	Today(ctx context.Context, employeeID int64) (DayState, error)

	// History returns the most recent attendance rows, newest first
	History(ctx context.Context, employeeID int64, limit int) ([]AttendanceResponse, error)

	// Stats aggregates the last 30 days
	Stats(ctx context.Context, employeeID int64) (EmployeeStatsResponse, error)

	// Matrix classifies every day of a year for the contribution heatmap
	Matrix(ctx context.Context, filter MatrixFilter) (MatrixResponse, error)
}
