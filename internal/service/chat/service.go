package chat

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/zhouzirui/wealth-desk/client/internal/model/chat"
)

var (
	ErrOwnerRequired        = errors.New("conversation owner is required")
	ErrConversationNotFound = errors.New("Conversation not found")
)

// historyWindow bounds the turns remembered per conversation.
const historyWindow = 5

// Service tracks backend conversations for the development API.
type Service struct {
	mu            sync.RWMutex
	seq           int
	order         []string
	conversations map[string]chat.Conversation
	turns         map[string][]chat.Turn
}

// NewService bootstraps an empty in-memory conversation registry.
func NewService() *Service {
	return &Service{
		conversations: make(map[string]chat.Conversation),
		turns:         make(map[string][]chat.Turn),
	}
}

// Resolve returns the conversation identified by id, creating a new one
// when id is empty or unknown.
func (s *Service) Resolve(_ context.Context, id, owner string) (chat.Conversation, error) {
	if owner == "" {
		return chat.Conversation{}, ErrOwnerRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if conv, ok := s.conversations[id]; ok && id != "" {
		return conv, nil
	}

	s.seq++
	conv := chat.Conversation{
		ID:        fmt.Sprintf("conv_%d", s.seq),
		Owner:     owner,
		CreatedAt: time.Now().UTC(),
	}
	s.conversations[conv.ID] = conv
	s.order = append(s.order, conv.ID)
	s.turns[conv.ID] = make([]chat.Turn, 0, historyWindow)
	return conv, nil
}

// SaveTurn appends an exchange, keeping only the most recent turns.
func (s *Service) SaveTurn(_ context.Context, conversationID string, turn chat.Turn) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.conversations[conversationID]; !ok {
		return ErrConversationNotFound
	}
	if turn.CreatedAt.IsZero() {
		turn.CreatedAt = time.Now().UTC()
	}

	turns := append(s.turns[conversationID], turn)
	if len(turns) > historyWindow {
		turns = turns[len(turns)-historyWindow:]
	}
	s.turns[conversationID] = turns
	return nil
}

// LoadTranscript returns the remembered turns of a conversation.
func (s *Service) LoadTranscript(_ context.Context, conversationID string) ([]chat.Turn, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	turns, ok := s.turns[conversationID]
	if !ok {
		return nil, ErrConversationNotFound
	}

	copied := make([]chat.Turn, len(turns))
	copy(copied, turns)
	return copied, nil
}

// List returns all conversation ids in creation order.
func (s *Service) List(_ context.Context) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string{}, s.order...)
}

// Delete forgets a conversation.
func (s *Service) Delete(_ context.Context, conversationID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.conversations[conversationID]; !ok {
		return ErrConversationNotFound
	}
	delete(s.conversations, conversationID)
	delete(s.turns, conversationID)
	s.order = slices.DeleteFunc(s.order, func(id string) bool { return id == conversationID })
	return nil
}
