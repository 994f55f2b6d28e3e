// ABOUTME: Data types and Store interface for local conversation history
// ABOUTME: Defines Conversation, Message and the operations the chat controller depends on

package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

// ErrNotFound is returned when a requested conversation does not exist
var ErrNotFound = errors.New("not found")

// Sender constants for Message.Sender
const (
	SenderUser = "user"
	SenderBot  = "bot"
)

// titleLimit is the number of leading characters of the first message
// used to derive a conversation title.
const titleLimit = 30

// Message is a single conversation turn. Immutable once appended.
type Message struct {
	ID        string    `json:"id,omitempty"`
	Text      string    `json:"text"`
	Sender    string    `json:"sender"`
	Timestamp time.Time `json:"timestamp"`
}

// Conversation is a titled, ordered sequence of messages identified by a
// session id. The title is derived once from the first message and never
// changes afterwards.
type Conversation struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Messages    []Message `json:"messages"`
	CreatedAt   time.Time `json:"created_at"`
	LastUpdated time.Time `json:"last_updated"`
}

// Store persists the conversation list and the active-conversation pointer.
//
// Reads fail soft: a missing or corrupt persisted value yields an empty
// history, never an error. Writes that fail are logged and swallowed -
// history is convenience state and must never take a user action down
// with it.
type Store interface {
	// ListConversations returns all conversations, newest-first by
	// creation. Existing conversations are not re-sorted when they
	// receive new messages; position reflects creation order.
	ListConversations(ctx context.Context) []Conversation

	// GetConversation returns the conversation with the given id, or
	// ErrNotFound.
	GetConversation(ctx context.Context, id string) (*Conversation, error)

	// ActiveConversationID returns the persisted pointer, or a
	// process-lifetime fallback id if none has been persisted yet.
	ActiveConversationID(ctx context.Context) string

	// SetActiveConversationID overwrites the persisted pointer.
	SetActiveConversationID(ctx context.Context, id string)

	// AppendMessage appends a message to the active conversation,
	// creating it (at the front of the list) if it does not exist yet.
	AppendMessage(ctx context.Context, text, sender string)

	// DeleteConversation removes the conversation with the given id.
	// Unknown ids are a no-op. Deleting the active conversation
	// provisions a fresh empty session and activates it.
	DeleteConversation(ctx context.Context, id string)

	// CreateConversation generates a fresh session id and activates it.
	// The conversation is not listed until its first message is
	// appended.
	CreateConversation(ctx context.Context) string

	// OnChange registers a listener invoked after every mutation, so
	// summary UI can refresh.
	OnChange(fn func())

	// Close releases any resources held by the store
	Close() error
}

// NewTitle derives a conversation title from its first message: the
// first 30 characters, with "..." appended iff the message is longer.
func NewTitle(text string) string {
	runes := []rune(text)
	if len(runes) <= titleLimit {
		return text
	}
	return string(runes[:titleLimit]) + "..."
}

var (
	sessionMu   sync.Mutex
	lastSession int64
)

// NewSessionID generates a conversation/session identifier of the form
// session_<unix-ms>. Successive calls within the same millisecond are
// bumped forward so ids stay unique within the process.
func NewSessionID() string {
	sessionMu.Lock()
	defer sessionMu.Unlock()

	now := time.Now().UnixMilli()
	if now <= lastSession {
		now = lastSession + 1
	}
	lastSession = now
	return fmt.Sprintf("session_%d", now)
}
