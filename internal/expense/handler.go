package expense

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"

	"github.com/ardiputra/expense-portal/internal/transport"
	"github.com/ardiputra/expense-portal/pkg/logger"
)

type ServiceAPI interface {
	ListExpenses() ([]*Expense, bool, error)
	ListExpensesByStatus(statusName string) ([]*Expense, bool, error)
	GetExpenseByID(id int64) (*Expense, error)
	CreateExpense(req *CreateExpenseRequest) (int64, error)
	UpdateExpense(req *UpdateExpenseRequest) (int64, error)
	SubmitExpense(id int64) (int64, error)
	ApproveExpense(id, reviewerID int64) (int64, error)
	RejectExpense(id, reviewerID int64) (int64, error)
	DeleteExpense(id int64) (int64, error)
	ListStatuses() ([]*Status, bool, error)
	Summary() ([]*Summary, bool, error)
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

func (h *Handler) GetExpenses(w http.ResponseWriter, r *http.Request) {
	expenses, fallback, err := h.Service.ListExpenses()
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, transport.OkFallback(expenses, fallback))
}

func (h *Handler) GetExpensesByStatus(w http.ResponseWriter, r *http.Request) {
	status := chi.URLParam(r, "status")
	expenses, fallback, err := h.Service.ListExpensesByStatus(status)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, transport.OkFallback(expenses, fallback))
}

func (h *Handler) GetExpense(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	exp, err := h.Service.GetExpenseByID(id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, transport.Ok(exp))
}

func (h *Handler) CreateExpense(w http.ResponseWriter, r *http.Request) {
	var req CreateExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Logger.Warn("CreateExpense: invalid request body", "error", err)
		h.WriteFailure(w, http.StatusBadRequest, "invalid request body")
		return
	}

	id, err := h.Service.CreateExpense(&req)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, transport.Ok(id))
}

func (h *Handler) UpdateExpense(w http.ResponseWriter, r *http.Request) {
	var req UpdateExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Logger.Warn("UpdateExpense: invalid request body", "error", err)
		h.WriteFailure(w, http.StatusBadRequest, "invalid request body")
		return
	}

	rows, err := h.Service.UpdateExpense(&req)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	if rows == 0 {
		h.WriteFailure(w, http.StatusNotFound, "Expense not found or not updated")
		return
	}
	h.WriteJSON(w, http.StatusOK, transport.Ok(rows))
}

func (h *Handler) SubmitExpense(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	rows, err := h.Service.SubmitExpense(id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, transport.Ok(rows))
}

func (h *Handler) ApproveExpense(w http.ResponseWriter, r *http.Request) {
	h.reviewExpense(w, r, h.Service.ApproveExpense)
}

func (h *Handler) RejectExpense(w http.ResponseWriter, r *http.Request) {
	h.reviewExpense(w, r, h.Service.RejectExpense)
}

func (h *Handler) reviewExpense(w http.ResponseWriter, r *http.Request, op func(id, reviewerID int64) (int64, error)) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	reviewerID, err := strconv.ParseInt(r.URL.Query().Get("reviewerId"), 10, 64)
	if err != nil {
		h.WriteFailure(w, http.StatusBadRequest, "reviewerId query parameter is required")
		return
	}

	rows, err := op(id, reviewerID)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, transport.Ok(rows))
}

func (h *Handler) DeleteExpense(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	rows, err := h.Service.DeleteExpense(id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, transport.Ok(rows))
}

func (h *Handler) GetStatuses(w http.ResponseWriter, r *http.Request) {
	statuses, fallback, err := h.Service.ListStatuses()
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, transport.OkFallback(statuses, fallback))
}

func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	summary, fallback, err := h.Service.Summary()
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, transport.OkFallback(summary, fallback))
}

func (h *Handler) pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		h.Logger.Warn("invalid expense id", "id", raw)
		h.WriteFailure(w, http.StatusBadRequest, "invalid expense ID")
		return 0, false
	}
	return id, true
}
