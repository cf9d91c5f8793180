package models

import (
	"time"
)

// Message represents a single message in a conversation transcript.
// The same shape travels over /api/chat and is stored in the JSONB
// Messages field of the conversations table.
type Message struct {
	Role      string    `json:"role"`    // "user", "assistant", "system"
	Content   string    `json:"content"` // The text content of the message
	Timestamp time.Time `json:"timestamp,omitempty"`
}
