// Package chat exposes the expense assistant: a thin conversation layer over
// an OpenAI-compatible completions endpoint, with tools bound to the expense
// and category services so the model acts through the same operations the
// REST surface uses.
package chat

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ChatRequest struct {
	Message string    `json:"message"`
	History []Message `json:"history,omitempty"`
}

type ChatResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleTool      = "tool"
)
