package model

import (
	"time"
)

// Role represents the role of a message sender.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message represents a single entry in the conversation log. Messages are
// immutable once appended; the log is only ever truncated by an explicit
// session reset.
type Message struct {
	ID        string    `json:"id"`
	SessionID string    `json:"session_id"`
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// SendMessageRequest is the request to send a user message into a session.
type SendMessageRequest struct {
	Content string `json:"content"`
}

// SendMessageResponse is the reply for one conversation turn.
type SendMessageResponse struct {
	Reply      string  `json:"reply"`
	Phase      string  `json:"phase"`
	Intent     string  `json:"intent"`
	Confidence float64 `json:"confidence"`
	TurnCount  int     `json:"turn_count"`
}
