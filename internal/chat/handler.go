package chat

import (
	"encoding/json"
	"net/http"

	"github.com/ardiputra/expense-portal/internal"
	"github.com/ardiputra/expense-portal/internal/transport"
	"github.com/ardiputra/expense-portal/pkg/logger"
)

type Handler struct {
	*transport.BaseHandler
	Service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		BaseHandler: transport.NewBaseHandler(logger.L()),
		Service:     service,
	}
}

// Chat handles POST /api/chat. The response is the assistant's own shape
// rather than the standard envelope, matching what conversational clients
// expect.
func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Logger.Warn("invalid chat request body", "error", err)
		h.writeChatResponse(w, http.StatusBadRequest, ChatResponse{
			Success: false,
			Error:   "invalid request body",
		})
		return
	}

	answer, err := h.Service.Converse(r.Context(), &req)
	if err != nil {
		status := http.StatusOK
		message := err.Error()
		if appErr, ok := internal.IsAppError(err); ok {
			message = appErr.Message
			if appErr.StatusCode != 0 {
				status = appErr.StatusCode
			}
		}
		h.writeChatResponse(w, status, ChatResponse{Success: false, Error: message})
		return
	}

	h.writeChatResponse(w, http.StatusOK, ChatResponse{Success: true, Message: answer})
}

func (h *Handler) writeChatResponse(w http.ResponseWriter, status int, resp ChatResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		h.Logger.Error("failed to encode chat response", "error", err)
	}
}
