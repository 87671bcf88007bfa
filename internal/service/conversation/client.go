package conversation

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/zhouzirui/wealth-desk/client/internal/model/chat"
	"github.com/zhouzirui/wealth-desk/client/internal/transport"
)

const (
	AskPath           = "/api/v1/query/ask"
	ConversationsPath = "/api/v1/query/conversations"

	failurePrefix   = "Sorry, I encountered an error: "
	failureFallback = "Please try again later."
)

var (
	ErrEmptyQuestion       = errors.New("question is empty")
	ErrQuestionInFlight    = errors.New("a question is already being answered")
	ErrConversationIDEmpty = errors.New("conversation id is required")
)

// Doer is the transport surface the Client needs.
type Doer interface {
	Do(ctx context.Context, method, path string, body, out any) error
}

type askRequest struct {
	Question       string  `json:"question"`
	ConversationID *string `json:"conversation_id"`
	IncludeCharts  bool    `json:"include_charts"`
}

type askResponse struct {
	Answer         string          `json:"answer"`
	ChartData      json.RawMessage `json:"chart_data"`
	ConversationID string          `json:"conversation_id"`
	Sources        []string        `json:"sources"`
}

type conversationsResponse struct {
	Conversations []string `json:"conversations"`
}

// Client drives one question at a time through the query backend and keeps
// the ordered message log of the exchange.
type Client struct {
	api Doer
	now func() time.Time

	// slot is held for the whole lifetime of an Ask.
	slot sync.Mutex

	mu             sync.RWMutex
	pending        bool
	conversationID string
	messages       []chat.Message
}

// NewClient creates a Client with an empty log and no conversation.
func NewClient(api Doer) *Client {
	return &Client{
		api:      api,
		now:      func() time.Time { return time.Now().UTC() },
		messages: make([]chat.Message, 0, 16),
	}
}

// Ask submits question and returns the assistant reply appended to the log.
//
// Blank questions and submissions made while another question is pending are
// rejected with ErrEmptyQuestion or ErrQuestionInFlight before any request is
// sent or the log is touched. Backend and network failures are not returned:
// they are recorded as an assistant reply carrying the failure notice.
// Cancelling ctx does not abort a question once it has been accepted.
func (c *Client) Ask(ctx context.Context, question string) (chat.Message, error) {
	if strings.TrimSpace(question) == "" {
		return chat.Message{}, ErrEmptyQuestion
	}
	if !c.slot.TryLock() {
		return chat.Message{}, ErrQuestionInFlight
	}
	defer c.slot.Unlock()

	c.mu.Lock()
	c.append(chat.Message{Role: chat.RoleUser, Content: question})
	c.pending = true
	req := askRequest{Question: question, IncludeCharts: true}
	if c.conversationID != "" {
		id := c.conversationID
		req.ConversationID = &id
	}
	c.mu.Unlock()

	var resp askResponse
	err := c.api.Do(context.WithoutCancel(ctx), http.MethodPost, AskPath, req, &resp)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.pending = false

	if err != nil {
		log.Printf("[conversation] question failed: %v", err)
		return c.append(chat.Message{
			Role:    chat.RoleAssistant,
			Content: failureNotice(err),
			Failed:  true,
		}), nil
	}

	if resp.ConversationID != "" && c.conversationID == "" {
		c.conversationID = resp.ConversationID
		log.Printf("[conversation] joined conversation=%s", resp.ConversationID)
	}

	msg := chat.Message{Role: chat.RoleAssistant, Content: resp.Answer}
	if !chat.IsEmptyChart(resp.ChartData) {
		msg.Chart = resp.ChartData
	}
	return c.append(msg), nil
}

// Messages returns a copy of the log in insertion order.
func (c *Client) Messages() []chat.Message {
	c.mu.RLock()
	defer c.mu.RUnlock()
	copied := make([]chat.Message, len(c.messages))
	for i, msg := range c.messages {
		msg.Chart = bytes.Clone(msg.Chart)
		copied[i] = msg
	}
	return copied
}

// Pending reports whether a question is awaiting its reply.
func (c *Client) Pending() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.pending
}

// ConversationID returns the backend correlator, or "" before the first reply.
func (c *Client) ConversationID() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.conversationID
}

// NewConversation forgets the current correlator so the next question starts
// a fresh backend conversation. The message log is kept.
func (c *Client) NewConversation() error {
	if !c.slot.TryLock() {
		return ErrQuestionInFlight
	}
	defer c.slot.Unlock()

	c.mu.Lock()
	c.conversationID = ""
	c.mu.Unlock()
	return nil
}

// ListConversations returns the conversation ids known to the backend.
func (c *Client) ListConversations(ctx context.Context) ([]string, error) {
	var resp conversationsResponse
	if err := c.api.Do(ctx, http.MethodGet, ConversationsPath, nil, &resp); err != nil {
		return nil, fmt.Errorf("failed to list conversations: %w", err)
	}
	return resp.Conversations, nil
}

// DeleteConversation removes a conversation on the backend. Deleting the
// active conversation also clears the local correlator. It is rejected with
// ErrQuestionInFlight while a question is pending.
func (c *Client) DeleteConversation(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrConversationIDEmpty
	}
	if !c.slot.TryLock() {
		return ErrQuestionInFlight
	}
	defer c.slot.Unlock()

	if err := c.api.Do(ctx, http.MethodDelete, ConversationsPath+"/"+url.PathEscape(id), nil, nil); err != nil {
		return fmt.Errorf("failed to delete conversation %s: %w", id, err)
	}

	c.mu.Lock()
	if c.conversationID == id {
		c.conversationID = ""
	}
	c.mu.Unlock()
	return nil
}

// append stamps msg and adds it to the log. Callers hold c.mu.
func (c *Client) append(msg chat.Message) chat.Message {
	msg.ID = newMessageID()
	msg.CreatedAt = c.now()
	c.messages = append(c.messages, msg)
	return msg
}

func newMessageID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

func failureNotice(err error) string {
	if detail := transport.DetailOf(err); detail != "" {
		return failurePrefix + detail
	}
	return failurePrefix + failureFallback
}
