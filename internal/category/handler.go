package category

import (
	"net/http"

	"github.com/ardiputra/expense-portal/internal/transport"
	"github.com/ardiputra/expense-portal/pkg/logger"
)

type ServiceAPI interface {
	ListCategories() ([]*Category, bool, error)
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

func (h *Handler) GetCategories(w http.ResponseWriter, r *http.Request) {
	categories, fallback, err := h.Service.ListCategories()
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, transport.OkFallback(categories, fallback))
}
