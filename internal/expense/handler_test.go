package expense_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/ardiputra/expense-portal/internal"
	"github.com/ardiputra/expense-portal/internal/expense"
)

type stubService struct {
	expenses  []*expense.Expense
	fallback  bool
	rows      int64
	createdID int64
	err       error

	lastReviewerID int64
}

func (s *stubService) ListExpenses() ([]*expense.Expense, bool, error) {
	return s.expenses, s.fallback, s.err
}

func (s *stubService) ListExpensesByStatus(string) ([]*expense.Expense, bool, error) {
	return s.expenses, s.fallback, s.err
}

func (s *stubService) GetExpenseByID(id int64) (*expense.Expense, error) {
	if s.err != nil {
		return nil, s.err
	}
	for _, e := range s.expenses {
		if e.ExpenseID == id {
			return e, nil
		}
	}
	return nil, internal.ErrExpenseNotFound
}

func (s *stubService) CreateExpense(*expense.CreateExpenseRequest) (int64, error) {
	return s.createdID, s.err
}

func (s *stubService) UpdateExpense(*expense.UpdateExpenseRequest) (int64, error) {
	return s.rows, s.err
}

func (s *stubService) SubmitExpense(int64) (int64, error) { return s.rows, s.err }

func (s *stubService) ApproveExpense(_, reviewerID int64) (int64, error) {
	s.lastReviewerID = reviewerID
	return s.rows, s.err
}

func (s *stubService) RejectExpense(_, reviewerID int64) (int64, error) {
	s.lastReviewerID = reviewerID
	return s.rows, s.err
}

func (s *stubService) DeleteExpense(int64) (int64, error) { return s.rows, s.err }

func (s *stubService) ListStatuses() ([]*expense.Status, bool, error) {
	return expense.Statuses(), s.fallback, s.err
}

func (s *stubService) Summary() ([]*expense.Summary, bool, error) {
	return []*expense.Summary{{CategoryName: "Travel", ExpenseCount: 2}}, s.fallback, s.err
}

var _ = Describe("Handler", func() {
	var (
		service *stubService
		router  *chi.Mux
	)

	BeforeEach(func() {
		service = &stubService{createdID: 7, rows: 1}
		handler := expense.NewHandler(service)

		router = chi.NewRouter()
		router.Route("/api/expenses", func(r chi.Router) {
			r.Get("/", handler.GetExpenses)
			r.Post("/", handler.CreateExpense)
			r.Put("/", handler.UpdateExpense)
			r.Get("/summary", handler.GetSummary)
			r.Get("/status/{status}", handler.GetExpensesByStatus)
			r.Get("/{id}", handler.GetExpense)
			r.Delete("/{id}", handler.DeleteExpense)
			r.Post("/{id}/submit", handler.SubmitExpense)
			r.Post("/{id}/approve", handler.ApproveExpense)
			r.Post("/{id}/reject", handler.RejectExpense)
		})
	})

	do := func(method, target, body string) (*httptest.ResponseRecorder, map[string]any) {
		req := httptest.NewRequest(method, target, strings.NewReader(body))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		var payload map[string]any
		Expect(json.Unmarshal(rec.Body.Bytes(), &payload)).To(Succeed())
		return rec, payload
	}

	Describe("GET /api/expenses", func() {
		It("wraps the list in a success envelope", func() {
			service.expenses = []*expense.Expense{{ExpenseID: 1, StatusName: "Draft"}}

			rec, payload := do(http.MethodGet, "/api/expenses", "")
			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(payload["success"]).To(BeTrue())
			Expect(payload["data"]).To(HaveLen(1))
			Expect(payload).NotTo(HaveKey("error"))
			Expect(payload).NotTo(HaveKey("fallback"))
		})

		It("marks sample-sourced reads with the fallback flag", func() {
			service.fallback = true

			rec, payload := do(http.MethodGet, "/api/expenses", "")
			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(payload["fallback"]).To(BeTrue())
		})

		It("turns service failures into a 200 failure envelope", func() {
			service.err = internal.NewInternalError("failed to list expenses", nil)

			rec, payload := do(http.MethodGet, "/api/expenses", "")
			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(payload["success"]).To(BeFalse())
			Expect(payload["error"]).To(Equal("failed to list expenses"))
			Expect(payload).NotTo(HaveKey("data"))
		})
	})

	Describe("GET /api/expenses/{id}", func() {
		It("returns 404 with a failure envelope for a missing expense", func() {
			rec, payload := do(http.MethodGet, "/api/expenses/99", "")
			Expect(rec.Code).To(Equal(http.StatusNotFound))
			Expect(payload["success"]).To(BeFalse())
			Expect(payload["error"]).To(Equal("Expense not found"))
		})

		It("rejects a non-numeric id", func() {
			rec, payload := do(http.MethodGet, "/api/expenses/abc", "")
			Expect(rec.Code).To(Equal(http.StatusBadRequest))
			Expect(payload["success"]).To(BeFalse())
		})
	})

	Describe("POST /api/expenses", func() {
		It("returns the new id", func() {
			rec, payload := do(http.MethodPost, "/api/expenses",
				`{"user_id":1,"category_id":1,"amount":25.40,"expense_date":"2025-06-01"}`)
			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(payload["success"]).To(BeTrue())
			Expect(payload["data"]).To(BeNumerically("==", 7))
		})

		It("rejects a malformed body", func() {
			rec, payload := do(http.MethodPost, "/api/expenses", `{not json`)
			Expect(rec.Code).To(Equal(http.StatusBadRequest))
			Expect(payload["success"]).To(BeFalse())
		})

		It("reports store-unavailable as a 200 failure envelope", func() {
			service.err = internal.ErrStoreUnavailable

			rec, payload := do(http.MethodPost, "/api/expenses",
				`{"user_id":1,"category_id":1,"amount":25.40,"expense_date":"2025-06-01"}`)
			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(payload["success"]).To(BeFalse())
			Expect(payload["error"]).To(ContainSubstring("unavailable"))
		})
	})

	Describe("PUT /api/expenses", func() {
		It("maps zero affected rows to 404", func() {
			service.rows = 0

			rec, payload := do(http.MethodPut, "/api/expenses",
				`{"expense_id":3,"category_id":1,"amount":9.99,"expense_date":"2025-06-01"}`)
			Expect(rec.Code).To(Equal(http.StatusNotFound))
			Expect(payload["error"]).To(Equal("Expense not found or not updated"))
		})
	})

	Describe("POST /api/expenses/{id}/approve", func() {
		It("requires the reviewerId query parameter", func() {
			rec, payload := do(http.MethodPost, "/api/expenses/1/approve", "")
			Expect(rec.Code).To(Equal(http.StatusBadRequest))
			Expect(payload["error"]).To(ContainSubstring("reviewerId"))
		})

		It("passes the reviewer through", func() {
			rec, payload := do(http.MethodPost, "/api/expenses/1/approve?reviewerId=2", "")
			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(payload["success"]).To(BeTrue())
			Expect(service.lastReviewerID).To(Equal(int64(2)))
		})
	})

	Describe("GET /api/expenses/summary", func() {
		It("is not shadowed by the id route", func() {
			rec, payload := do(http.MethodGet, "/api/expenses/summary", "")
			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(payload["success"]).To(BeTrue())
			Expect(payload["data"]).To(HaveLen(1))
		})
	})

	Describe("GET /api/expenses/status/{status}", func() {
		It("routes the status name to the service", func() {
			service.expenses = []*expense.Expense{{ExpenseID: 1, StatusName: "Submitted"}}

			rec, payload := do(http.MethodGet, "/api/expenses/status/submitted", "")
			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(payload["data"]).To(HaveLen(1))
		})
	})
})
