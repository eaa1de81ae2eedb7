package rest

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"

	"github.com/ardiputra/expense-portal/internal/category"
	"github.com/ardiputra/expense-portal/internal/chat"
	"github.com/ardiputra/expense-portal/internal/expense"
	"github.com/ardiputra/expense-portal/internal/health"
	"github.com/ardiputra/expense-portal/internal/transport/middleware"
	"github.com/ardiputra/expense-portal/internal/transport/swagger"
	"github.com/ardiputra/expense-portal/internal/user"
)

// RegisterAllRoutes mounts the API under /api. Literal routes like /summary
// and /status/{status} are registered before /{id} so chi does not swallow
// them as ids.
func RegisterAllRoutes(router *chi.Mux, state *health.State, expenseHandler *expense.Handler, categoryHandler *category.Handler, userHandler *user.Handler, chatHandler *chat.Handler, allowedOrigins string, logger *slog.Logger) {
	healthHandler := NewHealthHandler(state)

	router.Use(middleware.CORS(allowedOrigins))
	router.Use(middleware.RequestID)
	router.Use(middleware.Logging(logger))
	router.Use(middleware.Recovery(logger))

	// OpenAPI spec and Swagger UI live outside the API prefix.
	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	router.Handle("/swagger/*", swagger.Handler())

	router.Route("/api", func(r chi.Router) {
		r.Get("/health", healthHandler.healthHandler)
		r.Post("/health/reprobe", healthHandler.reprobeHandler)

		r.Route("/expenses", func(er chi.Router) {
			er.Get("/", expenseHandler.GetExpenses)
			er.Post("/", expenseHandler.CreateExpense)
			er.Put("/", expenseHandler.UpdateExpense)
			er.Get("/summary", expenseHandler.GetSummary)
			er.Get("/status/{status}", expenseHandler.GetExpensesByStatus)
			er.Get("/{id}", expenseHandler.GetExpense)
			er.Delete("/{id}", expenseHandler.DeleteExpense)
			er.Post("/{id}/submit", expenseHandler.SubmitExpense)
			er.Post("/{id}/approve", expenseHandler.ApproveExpense)
			er.Post("/{id}/reject", expenseHandler.RejectExpense)
		})

		r.Get("/statuses", expenseHandler.GetStatuses)
		r.Get("/categories", categoryHandler.GetCategories)

		r.Route("/users", func(ur chi.Router) {
			ur.Get("/", userHandler.GetUsers)
			ur.Get("/{id}", userHandler.GetUser)
		})

		r.Post("/chat", chatHandler.Chat)
	})
}
