package rest

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/ardiputra/expense-portal/internal/health"
)

// HealthResponse reports the service state. The service itself is always up;
// what varies is whether reads come from the store or the sample set, so the
// payload carries the connectivity flag rather than an up/down verdict.
type HealthResponse struct {
	Status            string    `json:"status"`
	DatabaseConnected bool      `json:"database_connected"`
	Mode              string    `json:"mode"`
	ProbedAt          time.Time `json:"probed_at"`
}

type HealthHandler struct {
	state *health.State
}

func NewHealthHandler(state *health.State) *HealthHandler {
	return &HealthHandler{state: state}
}

func (h *HealthHandler) healthHandler(w http.ResponseWriter, r *http.Request) {
	h.writeState(w)
}

// reprobeHandler re-checks store connectivity on demand. This is the only way
// the cached flag changes after startup, so a recovered database takes effect
// when an operator (or the frontend) hits this endpoint.
func (h *HealthHandler) reprobeHandler(w http.ResponseWriter, r *http.Request) {
	h.state.Reprobe(r.Context())
	h.writeState(w)
}

func (h *HealthHandler) writeState(w http.ResponseWriter) {
	connected := h.state.Connected()
	mode := "live"
	if !connected {
		mode = "fallback"
	}

	resp := HealthResponse{
		Status:            "OK",
		DatabaseConnected: connected,
		Mode:              mode,
		ProbedAt:          h.state.ProbedAt(),
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}
