package http

import (
	"net/http"

	"github.com/cmlabs-hris/attendance-tracker/internal/domain/analytics"
	"github.com/cmlabs-hris/attendance-tracker/internal/handler/http/response"
)

type AnalyticsHandler interface {
	Stats(w http.ResponseWriter, r *http.Request)
	KPIs(w http.ResponseWriter, r *http.Request)
	TodayRecords(w http.ResponseWriter, r *http.Request)
	CheckInStatus(w http.ResponseWriter, r *http.Request)
	EmployeeLeaveSummary(w http.ResponseWriter, r *http.Request)
}

type AnalyticsHandlerImpl struct {
	analyticsService analytics.AnalyticsService
}

func NewAnalyticsHandler(analyticsService analytics.AnalyticsService) AnalyticsHandler {
	return &AnalyticsHandlerImpl{analyticsService: analyticsService}
}

// Stats implements AnalyticsHandler.
func (h *AnalyticsHandlerImpl) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.analyticsService.Stats(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, stats)
}

// KPIs implements AnalyticsHandler.
func (h *AnalyticsHandlerImpl) KPIs(w http.ResponseWriter, r *http.Request) {
	kpis, err := h.analyticsService.KPIs(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, kpis)
}

// TodayRecords implements AnalyticsHandler.
func (h *AnalyticsHandlerImpl) TodayRecords(w http.ResponseWriter, r *http.Request) {
	records, err := h.analyticsService.TodayRecords(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, records)
}

// CheckInStatus implements AnalyticsHandler.
func (h *AnalyticsHandlerImpl) CheckInStatus(w http.ResponseWriter, r *http.Request) {
	statuses, err := h.analyticsService.CheckInStatus(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, statuses)
}

// EmployeeLeaveSummary implements AnalyticsHandler.
func (h *AnalyticsHandlerImpl) EmployeeLeaveSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.analyticsService.EmployeeLeaveSummary(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, summary)
}
