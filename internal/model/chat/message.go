package chat

import "time"

// Roles accepted in a transcript.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

// Message is one stored turn entry of a session transcript.
type Message struct {
	ID        string    `json:"id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// IsConversational reports whether role may appear in caller-supplied history.
// System messages are only ever injected by the server.
func IsConversational(role string) bool {
	return role == RoleUser || role == RoleAssistant
}
