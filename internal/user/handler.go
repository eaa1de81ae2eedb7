package user

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi"

	"github.com/ardiputra/expense-portal/internal/transport"
	"github.com/ardiputra/expense-portal/pkg/logger"
)

type ServiceAPI interface {
	ListUsers() ([]*User, bool, error)
	GetUserByID(id int64) (*User, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(service ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: transport.NewBaseHandler(logger.L()),
		Service:     service,
	}
}

func (h *Handler) GetUsers(w http.ResponseWriter, r *http.Request) {
	users, fallback, err := h.Service.ListUsers()
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, transport.OkFallback(users, fallback))
}

func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		h.Logger.Warn("invalid user id", "id", raw)
		h.WriteFailure(w, http.StatusBadRequest, "invalid user ID")
		return
	}

	u, err := h.Service.GetUserByID(id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, transport.Ok(u))
}
