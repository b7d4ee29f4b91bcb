package domain

import "time"

// Role identifies the author of a conversation turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ChatMessage is a single conversation turn as held by the chat widget.
// Messages are immutable once appended; ResponseTime is derived for display.
type ChatMessage struct {
	ID           string    `json:"id"`
	Content      string    `json:"content"`
	Role         Role      `json:"role"`
	Timestamp    time.Time `json:"timestamp"`
	ResponseTime string    `json:"responseTime,omitempty"`
}
