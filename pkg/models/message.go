package models

import "time"

// Role tags who authored a chat message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one entry of a chat history. It is never mutated after append.
type Message struct {
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	Emergency bool      `json:"emergency,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// NewUserMessage creates a user-authored message stamped with the current time.
func NewUserMessage(content string) Message {
	return Message{Role: RoleUser, Content: content, CreatedAt: time.Now()}
}

// NewAssistantMessage creates an assistant-authored message stamped with the current time.
func NewAssistantMessage(content string, emergency bool) Message {
	return Message{Role: RoleAssistant, Content: content, Emergency: emergency, CreatedAt: time.Now()}
}
