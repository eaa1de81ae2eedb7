package chat

import (
	"encoding/json"
	"fmt"

	"github.com/ardiputra/expense-portal/internal/category"
	"github.com/ardiputra/expense-portal/internal/expense"
)

// ExpenseAPI is the slice of the expense facade the assistant may drive.
// Delete and update are deliberately absent; the assistant can create and move
// expenses through the lifecycle but not destroy or rewrite them.
type ExpenseAPI interface {
	ListExpenses() ([]*expense.Expense, bool, error)
	ListExpensesByStatus(statusName string) ([]*expense.Expense, bool, error)
	CreateExpense(req *expense.CreateExpenseRequest) (int64, error)
	SubmitExpense(id int64) (int64, error)
	ApproveExpense(id, reviewerID int64) (int64, error)
	RejectExpense(id, reviewerID int64) (int64, error)
}

type CategoryAPI interface {
	ListCategories() ([]*category.Category, bool, error)
}

func toolDefinitions() []toolDefinition {
	fn := func(name, description, params string) toolDefinition {
		return toolDefinition{
			Type: "function",
			Function: toolFunction{
				Name:        name,
				Description: description,
				Parameters:  json.RawMessage(params),
			},
		}
	}

	return []toolDefinition{
		fn("get_expenses",
			"List all expenses with their status, amounts and review details.",
			`{"type":"object","properties":{}}`),
		fn("get_expenses_by_status",
			"List expenses filtered by lifecycle status name (Draft, Submitted, Approved or Rejected).",
			`{"type":"object","properties":{"status":{"type":"string","description":"Status name, case-insensitive"}},"required":["status"]}`),
		fn("create_expense",
			"Create a new draft expense for a user. Amount is in major currency units, e.g. 25.40.",
			`{"type":"object","properties":{
				"user_id":{"type":"integer"},
				"category_id":{"type":"integer"},
				"amount":{"type":"number"},
				"currency":{"type":"string","description":"Three-letter code, defaults to GBP"},
				"expense_date":{"type":"string","description":"Date in YYYY-MM-DD form"},
				"description":{"type":"string"}
			},"required":["user_id","category_id","amount","expense_date"]}`),
		fn("submit_expense",
			"Submit a draft expense for review.",
			`{"type":"object","properties":{"expense_id":{"type":"integer"}},"required":["expense_id"]}`),
		fn("approve_expense",
			"Approve a submitted expense on behalf of a reviewer.",
			`{"type":"object","properties":{"expense_id":{"type":"integer"},"reviewer_id":{"type":"integer"}},"required":["expense_id","reviewer_id"]}`),
		fn("reject_expense",
			"Reject a submitted expense on behalf of a reviewer.",
			`{"type":"object","properties":{"expense_id":{"type":"integer"},"reviewer_id":{"type":"integer"}},"required":["expense_id","reviewer_id"]}`),
		fn("get_categories",
			"List the expense categories available for new expenses.",
			`{"type":"object","properties":{}}`),
	}
}

// dispatchTool executes one tool call and returns the payload handed back to
// the model. Service errors become part of the payload rather than aborting
// the conversation, so the model can explain the failure to the user.
func (s *Service) dispatchTool(name, arguments string) string {
	result, err := s.callTool(name, arguments)
	if err != nil {
		return toolJSON(map[string]any{"success": false, "error": err.Error()})
	}
	return result
}

func (s *Service) callTool(name, arguments string) (string, error) {
	switch name {
	case "get_expenses":
		expenses, fallback, err := s.expenses.ListExpenses()
		if err != nil {
			return "", err
		}
		return toolJSON(map[string]any{"expenses": expenses, "fallback": fallback}), nil

	case "get_expenses_by_status":
		var args struct {
			Status string `json:"status"`
		}
		if err := json.Unmarshal([]byte(arguments), &args); err != nil {
			return "", fmt.Errorf("invalid arguments: %w", err)
		}
		expenses, fallback, err := s.expenses.ListExpensesByStatus(args.Status)
		if err != nil {
			return "", err
		}
		return toolJSON(map[string]any{"expenses": expenses, "fallback": fallback}), nil

	case "create_expense":
		var req expense.CreateExpenseRequest
		if err := json.Unmarshal([]byte(arguments), &req); err != nil {
			return "", fmt.Errorf("invalid arguments: %w", err)
		}
		id, err := s.expenses.CreateExpense(&req)
		if err != nil {
			return "", err
		}
		return toolJSON(map[string]any{"success": true, "expense_id": id}), nil

	case "submit_expense":
		id, err := expenseIDArg(arguments)
		if err != nil {
			return "", err
		}
		rows, err := s.expenses.SubmitExpense(id)
		if err != nil {
			return "", err
		}
		return transitionResult(rows, "expense is not in Draft status or does not exist"), nil

	case "approve_expense":
		id, reviewerID, err := reviewArgs(arguments)
		if err != nil {
			return "", err
		}
		rows, err := s.expenses.ApproveExpense(id, reviewerID)
		if err != nil {
			return "", err
		}
		return transitionResult(rows, "expense is not in Submitted status or does not exist"), nil

	case "reject_expense":
		id, reviewerID, err := reviewArgs(arguments)
		if err != nil {
			return "", err
		}
		rows, err := s.expenses.RejectExpense(id, reviewerID)
		if err != nil {
			return "", err
		}
		return transitionResult(rows, "expense is not in Submitted status or does not exist"), nil

	case "get_categories":
		categories, fallback, err := s.categories.ListCategories()
		if err != nil {
			return "", err
		}
		return toolJSON(map[string]any{"categories": categories, "fallback": fallback}), nil

	default:
		return "", fmt.Errorf("unknown tool %q", name)
	}
}

func expenseIDArg(arguments string) (int64, error) {
	var args struct {
		ExpenseID int64 `json:"expense_id"`
	}
	if err := json.Unmarshal([]byte(arguments), &args); err != nil {
		return 0, fmt.Errorf("invalid arguments: %w", err)
	}
	return args.ExpenseID, nil
}

func reviewArgs(arguments string) (int64, int64, error) {
	var args struct {
		ExpenseID  int64 `json:"expense_id"`
		ReviewerID int64 `json:"reviewer_id"`
	}
	if err := json.Unmarshal([]byte(arguments), &args); err != nil {
		return 0, 0, fmt.Errorf("invalid arguments: %w", err)
	}
	return args.ExpenseID, args.ReviewerID, nil
}

func transitionResult(rows int64, notEligible string) string {
	if rows == 0 {
		return toolJSON(map[string]any{"success": false, "error": notEligible})
	}
	return toolJSON(map[string]any{"success": true})
}

func toolJSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return `{"success":false,"error":"failed to encode tool result"}`
	}
	return string(b)
}
