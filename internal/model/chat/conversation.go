package chat

import "time"

// Conversation is the backend-side record correlating question/answer turns.
type Conversation struct {
	ID        string    `json:"id"`
	Owner     string    `json:"owner"`
	CreatedAt time.Time `json:"createdAt"`
}

// Turn persists one exchange of a conversation on the backend.
type Turn struct {
	Question  string    `json:"question"`
	Answer    string    `json:"answer"`
	CreatedAt time.Time `json:"createdAt"`
}
