package transport

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/ardiputra/expense-portal/internal"
	"github.com/ardiputra/expense-portal/pkg/logger"
)

// BaseHandler provides common functionality for HTTP handlers.
type BaseHandler struct {
	Logger *slog.Logger
}

func NewBaseHandler(lg *slog.Logger) *BaseHandler {
	if lg == nil {
		lg = logger.L()
	}
	return &BaseHandler{Logger: lg}
}

// WriteJSON writes a JSON response.
func (h *BaseHandler) WriteJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.Logger.Error("failed to encode JSON response", "error", err)
	}
}

// WriteFailure writes a failure envelope with the given HTTP status.
func (h *BaseHandler) WriteFailure(w http.ResponseWriter, status int, message string) {
	h.Logger.Warn("request failed", "status", status, "message", message)
	h.WriteJSON(w, status, Fail(message))
}

// HandleServiceError converts a service error into the failure envelope.
// Not-found errors keep their 404 status; everything else is HTTP 200 with
// success=false, so callers always get the envelope rather than a raw fault.
func (h *BaseHandler) HandleServiceError(w http.ResponseWriter, err error) {
	if appErr, ok := internal.IsAppError(err); ok {
		status := appErr.StatusCode
		if status == 0 {
			status = http.StatusOK
		}
		h.WriteJSON(w, status, Fail(appErr.Message))
		return
	}
	h.WriteJSON(w, http.StatusOK, Fail(err.Error()))
}
