package chat

import (
	"encoding/json"
	"time"
)

// Role identifies who authored a message in the conversation log.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one entry of the conversation log. Chart holds the chart payload
// exactly as the backend sent it.
type Message struct {
	ID        string          `json:"id"`
	Role      Role            `json:"type"`
	Content   string          `json:"content"`
	Chart     json.RawMessage `json:"chart_data,omitempty"`
	Failed    bool            `json:"failed,omitempty"`
	CreatedAt time.Time       `json:"timestamp"`
}
