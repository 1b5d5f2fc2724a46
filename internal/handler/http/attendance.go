package http

import (
	"net/http"

	"github.com/cmlabs-hris/attendance-tracker/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-tracker/internal/handler/http/response"
)

type AttendanceHandler interface {
	Matrix(w http.ResponseWriter, r *http.Request)
}

type AttendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &AttendanceHandlerImpl{attendanceService: attendanceService}
}

// Matrix implements AttendanceHandler.
func (h *AttendanceHandlerImpl) Matrix(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := attendance.MatrixFilter{
		Year:       query.Get("year"),
		EmployeeID: query.Get("employeeId"),
	}

	if err := filter.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	matrix, err := h.attendanceService.Matrix(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, matrix)
}
