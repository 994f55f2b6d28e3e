// ABOUTME: SQLite implementation of the Store interface using modernc.org/sqlite
// ABOUTME: Conversation list and active pointer live under fixed keys in a kv table, serialized as JSON text

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Fixed storage keys. The whole conversation list round-trips through
// serialize/deserialize under historyKey on every save; currentKey holds
// the active conversation id as a bare string.
const (
	historyKey = "nexus_health_chat_history"
	currentKey = "nexus_health_current_chat"
)

// SQLiteStore implements the Store interface using SQLite
type SQLiteStore struct {
	db       *sql.DB
	logger   *slog.Logger
	fallback string // process-lifetime session id, used until a pointer is persisted

	mu        sync.Mutex
	listeners []func()
}

// NewSQLiteStore creates a new SQLite store at the given path.
// The schema is automatically created if it doesn't exist.
// Parent directories are created if needed.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	logger := slog.Default().With("component", "store")

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Enable WAL mode for better concurrent performance
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	s := &SQLiteStore{
		db:       db,
		logger:   logger,
		fallback: NewSessionID(),
	}

	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	logger.Debug("SQLite store initialized", "path", path)
	return s, nil
}

// createSchema creates the database tables if they don't exist
func (s *SQLiteStore) createSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS kv (
			key        TEXT PRIMARY KEY,
			value      TEXT NOT NULL,
			updated_at TEXT NOT NULL
		);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// OnChange registers a listener invoked after every mutation.
func (s *SQLiteStore) OnChange(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

func (s *SQLiteStore) notify() {
	s.mu.Lock()
	listeners := make([]func(), len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.Unlock()

	for _, fn := range listeners {
		fn()
	}
}

// get reads a kv value. Returns sql.ErrNoRows if the key is absent.
func (s *SQLiteStore) get(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	return value, err
}

// set writes a kv value, replacing any previous one.
func (s *SQLiteStore) set(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO kv (key, value, updated_at)
		VALUES (?, ?, ?)
	`, key, value, time.Now().UTC().Format(time.RFC3339))
	return err
}

// loadHistory deserializes the persisted conversation list. A missing or
// unparseable value degrades to an empty list.
func (s *SQLiteStore) loadHistory(ctx context.Context) []Conversation {
	raw, err := s.get(ctx, historyKey)
	if err == sql.ErrNoRows {
		return nil
	}
	if err != nil {
		s.logger.Warn("reading chat history, treating as empty", "error", err)
		return nil
	}

	var history []Conversation
	if err := json.Unmarshal([]byte(raw), &history); err != nil {
		s.logger.Warn("corrupt chat history, treating as empty", "error", err)
		return nil
	}
	return history
}

// saveHistory serializes and persists the whole conversation list.
func (s *SQLiteStore) saveHistory(ctx context.Context, history []Conversation) {
	data, err := json.Marshal(history)
	if err != nil {
		s.logger.Warn("serializing chat history", "error", err)
		return
	}
	if err := s.set(ctx, historyKey, string(data)); err != nil {
		s.logger.Warn("saving chat history", "error", err)
	}
}

// ListConversations returns all conversations, newest-first by creation.
func (s *SQLiteStore) ListConversations(ctx context.Context) []Conversation {
	return s.loadHistory(ctx)
}

// GetConversation returns the conversation with the given id.
func (s *SQLiteStore) GetConversation(ctx context.Context, id string) (*Conversation, error) {
	for _, conv := range s.loadHistory(ctx) {
		if conv.ID == id {
			return &conv, nil
		}
	}
	return nil, ErrNotFound
}

// ActiveConversationID returns the persisted pointer, or the
// process-lifetime fallback id if none has been persisted yet.
func (s *SQLiteStore) ActiveConversationID(ctx context.Context) string {
	id, err := s.get(ctx, currentKey)
	if err == sql.ErrNoRows || id == "" {
		return s.fallback
	}
	if err != nil {
		s.logger.Warn("reading active conversation pointer", "error", err)
		return s.fallback
	}
	return id
}

// SetActiveConversationID overwrites the persisted pointer.
func (s *SQLiteStore) SetActiveConversationID(ctx context.Context, id string) {
	if err := s.set(ctx, currentKey, id); err != nil {
		s.logger.Warn("saving active conversation pointer", "error", err)
	}
}

// AppendMessage appends a message to the active conversation, creating it
// at the front of the list if it does not exist yet. The title is derived
// from the first message at creation time and never changes.
func (s *SQLiteStore) AppendMessage(ctx context.Context, text, sender string) {
	history := s.loadHistory(ctx)
	id := s.ActiveConversationID(ctx)
	now := time.Now().UTC()

	idx := -1
	for i := range history {
		if history[i].ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		history = append([]Conversation{{
			ID:        id,
			Title:     NewTitle(text),
			CreatedAt: now,
		}}, history...)
		idx = 0
	}

	history[idx].Messages = append(history[idx].Messages, Message{
		ID:        uuid.New().String(),
		Text:      text,
		Sender:    sender,
		Timestamp: now,
	})
	history[idx].LastUpdated = now

	s.saveHistory(ctx, history)
	s.logger.Debug("saved message", "conversation", id, "sender", sender)
	s.notify()
}

// DeleteConversation removes the conversation with the given id. Unknown
// ids are a no-op. When the active conversation is deleted, a fresh empty
// session is provisioned and activated.
func (s *SQLiteStore) DeleteConversation(ctx context.Context, id string) {
	history := s.loadHistory(ctx)

	filtered := history[:0]
	for _, conv := range history {
		if conv.ID != id {
			filtered = append(filtered, conv)
		}
	}
	s.saveHistory(ctx, filtered)

	if id == s.ActiveConversationID(ctx) {
		s.CreateConversation(ctx)
	}

	s.logger.Debug("deleted conversation", "id", id)
	s.notify()
}

// CreateConversation generates a fresh session id and activates it. The
// conversation itself is materialized lazily on first append; an empty
// conversation is never persisted.
func (s *SQLiteStore) CreateConversation(ctx context.Context) string {
	id := NewSessionID()
	s.SetActiveConversationID(ctx, id)
	s.notify()
	return id
}

// Ensure SQLiteStore implements Store interface
var _ Store = (*SQLiteStore)(nil)
