package http

import (
	"net/http"

	"github.com/cmlabs-hris/attendance-tracker/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-tracker/internal/domain/leave"
	"github.com/cmlabs-hris/attendance-tracker/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type LeaveHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	ListByDate(w http.ResponseWriter, r *http.Request)
	Balance(w http.ResponseWriter, r *http.Request)
	ListByEmployee(w http.ResponseWriter, r *http.Request)
}

type LeaveHandlerImpl struct {
	leaveService leave.LeaveService
}

func NewLeaveHandler(leaveService leave.LeaveService) LeaveHandler {
	return &LeaveHandlerImpl{leaveService: leaveService}
}

// List implements LeaveHandler.
func (h *LeaveHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	leaves, err := h.leaveService.ListAll(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, leaves)
}

// ListByDate implements LeaveHandler.
func (h *LeaveHandlerImpl) ListByDate(w http.ResponseWriter, r *http.Request) {
	leaves, err := h.leaveService.ListByDate(r.Context(), chi.URLParam(r, "date"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, leaves)
}

// Balance implements LeaveHandler.
func (h *LeaveHandlerImpl) Balance(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := idParam(r, "employeeId")
	if !ok {
		response.HandleError(w, employee.ErrInvalidID)
		return
	}

	balance, err := h.leaveService.Balance(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, leave.NewLeaveBalanceResponse(balance))
}

// ListByEmployee implements LeaveHandler.
func (h *LeaveHandlerImpl) ListByEmployee(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := idParam(r, "employeeId")
	if !ok {
		response.HandleError(w, employee.ErrInvalidID)
		return
	}

	leaves, err := h.leaveService.ListByEmployee(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, leaves)
}
