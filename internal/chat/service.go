package chat

import (
	"context"
	"log/slog"
	"strings"

	"github.com/ardiputra/expense-portal/internal"
)

const systemPrompt = `You are the assistant for an expense management portal.
You help users view, create and review expenses through the tools provided.

Rules:
- Expenses move Draft -> Submitted -> Approved or Rejected, and never move backwards.
- Only drafts can be submitted; only submitted expenses can be approved or rejected.
- Amounts are in major currency units (for example 25.40) and default to GBP.
- Approving or rejecting requires the reviewer's user id; ask for it if the user has not given one.
- When a tool reports fallback data, tell the user the figures come from sample data because the database is unreachable.
- Keep answers short and factual. Format money with two decimal places.`

// maxToolRounds bounds the model/tool loop so a misbehaving model cannot spin
// the service indefinitely.
const maxToolRounds = 5

type Service struct {
	client     CompletionClient
	model      string
	expenses   ExpenseAPI
	categories CategoryAPI
	logger     *slog.Logger
}

// NewService wires the assistant. A nil client marks the assistant as
// unconfigured; Converse then fails with the chat-unavailable error instead
// of attempting a call.
func NewService(client CompletionClient, model string, expenses ExpenseAPI, categories CategoryAPI, logger *slog.Logger) *Service {
	return &Service{
		client:     client,
		model:      model,
		expenses:   expenses,
		categories: categories,
		logger:     logger,
	}
}

func (s *Service) Configured() bool {
	return s.client != nil
}

// Converse runs one user turn: prior history plus the new message go to the
// model, tool calls are executed against the live services, and the model's
// final text comes back. History is client-held; the service keeps no state.
func (s *Service) Converse(ctx context.Context, req *ChatRequest) (string, error) {
	if !s.Configured() {
		return "", internal.ErrChatUnavailable
	}
	if strings.TrimSpace(req.Message) == "" {
		return "", internal.NewValidationError("message is required", internal.ErrCodeValidationFailed)
	}

	messages := make([]completionMessage, 0, len(req.History)+2)
	messages = append(messages, completionMessage{Role: RoleSystem, Content: systemPrompt})
	for _, m := range req.History {
		if m.Role != RoleUser && m.Role != RoleAssistant {
			continue
		}
		messages = append(messages, completionMessage{Role: m.Role, Content: m.Content})
	}
	messages = append(messages, completionMessage{Role: RoleUser, Content: req.Message})

	tools := toolDefinitions()

	for round := 0; round <= maxToolRounds; round++ {
		resp, err := s.client.CreateCompletion(ctx, completionRequest{
			Model:    s.model,
			Messages: messages,
			Tools:    tools,
		})
		if err != nil {
			s.logger.Error("completion call failed", "error", err)
			return "", internal.NewUnavailableError("assistant is unavailable", internal.ErrCodeChatUnavailable).WithCause(err)
		}
		if len(resp.Choices) == 0 {
			return "", internal.NewInternalError("assistant returned no choices", nil)
		}

		msg := resp.Choices[0].Message
		if len(msg.ToolCalls) == 0 {
			return msg.Content, nil
		}

		messages = append(messages, msg)
		for _, call := range msg.ToolCalls {
			s.logger.Info("assistant tool call", "tool", call.Function.Name)
			result := s.dispatchTool(call.Function.Name, call.Function.Arguments)
			messages = append(messages, completionMessage{
				Role:       RoleTool,
				ToolCallID: call.ID,
				Content:    result,
			})
		}
	}

	s.logger.Warn("assistant exceeded tool round limit")
	return "", internal.NewInternalError("assistant did not produce a final answer", nil)
}
