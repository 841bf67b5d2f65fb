package model

import (
	"time"

	"github.com/google/uuid"
)

// Role identifies the author of a transcript message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one turn in the visible conversation. Messages are immutable
// once appended; the transcript is append-only and insertion order is
// display order.
type Message struct {
	ID              string    `json:"id"`
	Role            Role      `json:"role"`
	Content         string    `json:"content"`
	Timestamp       time.Time `json:"timestamp"`
	Suggestions     []string  `json:"suggestions,omitempty"`
	AutomationReady bool      `json:"automation_ready,omitempty"`
}

// NewMessage builds a transcript message with a fresh identifier and UTC
// timestamp.
func NewMessage(role Role, content string) Message {
	return Message{
		ID:        uuid.NewString(),
		Role:      role,
		Content:   content,
		Timestamp: time.Now().UTC(),
	}
}

// ActivityEntry records one successfully dispatched action. Entries are
// immutable; the log keeps the most recent entries first and silently evicts
// the oldest once the cap is exceeded.
type ActivityEntry struct {
	ID        string     `json:"id"`
	Type      IntentType `json:"type"`
	Label     string     `json:"label"`
	Context   string     `json:"context,omitempty"`
	Timestamp time.Time  `json:"timestamp"`
}

// NewActivityEntry builds a log entry for a dispatched action, looking up the
// display label from the fixed table.
func NewActivityEntry(t IntentType, context string) ActivityEntry {
	return ActivityEntry{
		ID:        uuid.NewString(),
		Type:      t,
		Label:     ActivityLabels[t],
		Context:   context,
		Timestamp: time.Now().UTC(),
	}
}
