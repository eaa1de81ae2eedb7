package chat

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Handler", func() {
	var expenseAPI *stubExpenseAPI

	BeforeEach(func() {
		expenseAPI = &stubExpenseAPI{createdID: 42, submitRows: 1, approveRows: 1}
	})

	post := func(handler *Handler, body string) (*httptest.ResponseRecorder, ChatResponse) {
		req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(body))
		rec := httptest.NewRecorder()
		handler.Chat(rec, req)

		var resp ChatResponse
		Expect(json.Unmarshal(rec.Body.Bytes(), &resp)).To(Succeed())
		return rec, resp
	}

	It("answers with the unavailable response when no client is configured", func() {
		service := NewService(nil, "", expenseAPI, &stubCategoryAPI{}, slog.Default())
		handler := NewHandler(service)

		rec, resp := post(handler, `{"message":"hi"}`)
		Expect(rec.Code).To(Equal(http.StatusOK))
		Expect(rec.Header().Get("Content-Type")).To(Equal("application/json"))
		Expect(resp.Success).To(BeFalse())
		Expect(resp.Error).To(Equal("chat assistant is not configured"))
		Expect(resp.Message).To(BeEmpty())
	})

	It("returns the assistant's answer on success", func() {
		client := &scriptedClient{responses: []*completionResponse{textResponse("You have 4 expenses.")}}
		service := NewService(client, "gpt-4o-mini", expenseAPI, &stubCategoryAPI{}, slog.Default())
		handler := NewHandler(service)

		rec, resp := post(handler, `{"message":"how many expenses?"}`)
		Expect(rec.Code).To(Equal(http.StatusOK))
		Expect(resp.Success).To(BeTrue())
		Expect(resp.Message).To(Equal("You have 4 expenses."))
	})

	It("rejects a malformed body", func() {
		service := NewService(nil, "", expenseAPI, &stubCategoryAPI{}, slog.Default())
		handler := NewHandler(service)

		rec, resp := post(handler, `{not json`)
		Expect(rec.Code).To(Equal(http.StatusBadRequest))
		Expect(resp.Success).To(BeFalse())
		Expect(resp.Error).To(Equal("invalid request body"))
	})
})
