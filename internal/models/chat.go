package models

// ChatRole is the author of a conversation turn as Gemini names it.
type ChatRole string

const (
	ChatRoleUser  ChatRole = "user"
	ChatRoleModel ChatRole = "model"
)

// Valid reports whether the role is one Gemini accepts in a history.
func (r ChatRole) Valid() bool {
	return r == ChatRoleUser || r == ChatRoleModel
}

// ChatMessage represents a single turn in a conversation.
type ChatMessage struct {
	Role  ChatRole `json:"role"`
	Parts []string `json:"parts"`
}

// ChatRequest is the payload sent to the chat endpoint. History is replayed
// in the order given before Message is sent.
type ChatRequest struct {
	History []ChatMessage `json:"history"`
	Message string        `json:"message"`
	APIKey  string        `json:"api_key,omitempty"`
}

// ChatResponse is the reply from the AI chat.
type ChatResponse struct {
	Response string `json:"response"`
}
