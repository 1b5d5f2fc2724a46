package http

import (
	"net/http"
	"time"

	"github.com/cmlabs-hris/attendance-tracker/internal/handler/http/response"
)

type healthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

func newHealthHandler(now func() time.Time) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response.Raw(w, http.StatusOK, healthResponse{
			Status:    "OK",
			Timestamp: now().UTC().Format(time.RFC3339Nano),
		})
	}
}
