// ABOUTME: Tests for the SQLite conversation store
// ABOUTME: Covers round-trip persistence, title derivation, ordering, deletion and fail-soft reads

package store

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestStore creates a temporary SQLite store for testing.
func setupTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := NewSQLiteStore(dbPath)
	require.NoError(t, err)

	t.Cleanup(func() {
		store.Close()
	})

	return store
}

func TestStore_AppendMessage_CreatesConversation(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	store.AppendMessage(ctx, "I have a fever", SenderUser)

	convs := store.ListConversations(ctx)
	require.Len(t, convs, 1)
	assert.Equal(t, store.ActiveConversationID(ctx), convs[0].ID)
	assert.Equal(t, "I have a fever", convs[0].Title)
	require.Len(t, convs[0].Messages, 1)
	assert.Equal(t, "I have a fever", convs[0].Messages[0].Text)
	assert.Equal(t, SenderUser, convs[0].Messages[0].Sender)
	assert.NotEmpty(t, convs[0].Messages[0].ID)
	assert.False(t, convs[0].Messages[0].Timestamp.IsZero())
}

func TestStore_RoundTrip_AcrossReopen(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")
	ctx := context.Background()

	store, err := NewSQLiteStore(dbPath)
	require.NoError(t, err)

	store.SetActiveConversationID(ctx, "session_100")
	for i := 0; i < 5; i++ {
		sender := SenderUser
		if i%2 == 1 {
			sender = SenderBot
		}
		store.AppendMessage(ctx, fmt.Sprintf("message %d", i), sender)
	}
	before := store.ListConversations(ctx)
	require.NoError(t, store.Close())

	// Reopen and verify identical content
	store, err = NewSQLiteStore(dbPath)
	require.NoError(t, err)
	defer store.Close()

	after := store.ListConversations(ctx)
	require.Len(t, after, 1)
	require.Len(t, after[0].Messages, 5)
	assert.Equal(t, before, after)
	assert.Equal(t, "session_100", store.ActiveConversationID(ctx))

	for i, msg := range after[0].Messages {
		assert.Equal(t, fmt.Sprintf("message %d", i), msg.Text)
	}
}

func TestNewTitle(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"short", "I have a fever", "I have a fever"},
		{"exactly thirty", strings.Repeat("a", 30), strings.Repeat("a", 30)},
		{"thirty one", strings.Repeat("a", 31), strings.Repeat("a", 30) + "..."},
		{"long", "I have had a splitting headache since yesterday evening", "I have had a splitting headach..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NewTitle(tt.text))
		})
	}
}

func TestStore_Title_InvariantUnderAppends(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	store.AppendMessage(ctx, "first message", SenderUser)
	store.AppendMessage(ctx, "a much later and much longer message that would derive differently", SenderBot)

	convs := store.ListConversations(ctx)
	require.Len(t, convs, 1)
	assert.Equal(t, "first message", convs[0].Title)
}

func TestStore_Ordering_NewConversationsFirst(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	store.SetActiveConversationID(ctx, "session_1")
	store.AppendMessage(ctx, "oldest", SenderUser)
	store.SetActiveConversationID(ctx, "session_2")
	store.AppendMessage(ctx, "newest", SenderUser)

	convs := store.ListConversations(ctx)
	require.Len(t, convs, 2)
	assert.Equal(t, "session_2", convs[0].ID)
	assert.Equal(t, "session_1", convs[1].ID)

	// Appending to the older conversation must not move it to the top.
	store.SetActiveConversationID(ctx, "session_1")
	store.AppendMessage(ctx, "update to old", SenderUser)

	convs = store.ListConversations(ctx)
	require.Len(t, convs, 2)
	assert.Equal(t, "session_2", convs[0].ID)
	assert.Equal(t, "session_1", convs[1].ID)
	assert.Len(t, convs[1].Messages, 2)
}

func TestStore_DeleteConversation_NonActive(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	store.SetActiveConversationID(ctx, "session_1")
	store.AppendMessage(ctx, "keep me", SenderUser)
	store.SetActiveConversationID(ctx, "session_2")
	store.AppendMessage(ctx, "active", SenderUser)

	store.DeleteConversation(ctx, "session_1")

	convs := store.ListConversations(ctx)
	require.Len(t, convs, 1)
	assert.Equal(t, "session_2", convs[0].ID)
	assert.Equal(t, "session_2", store.ActiveConversationID(ctx))
	require.Len(t, convs[0].Messages, 1)
	assert.Equal(t, "active", convs[0].Messages[0].Text)
}

func TestStore_DeleteConversation_Active(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	store.SetActiveConversationID(ctx, "session_1")
	store.AppendMessage(ctx, "doomed", SenderUser)

	store.DeleteConversation(ctx, "session_1")

	// A fresh, empty, not-yet-persisted session is active.
	active := store.ActiveConversationID(ctx)
	assert.NotEqual(t, "session_1", active)
	assert.NotEmpty(t, active)
	assert.Empty(t, store.ListConversations(ctx))
}

func TestStore_DeleteConversation_UnknownID(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	store.SetActiveConversationID(ctx, "session_1")
	store.AppendMessage(ctx, "hello", SenderUser)

	store.DeleteConversation(ctx, "session_nope")

	convs := store.ListConversations(ctx)
	require.Len(t, convs, 1)
	assert.Equal(t, "session_1", store.ActiveConversationID(ctx))
}

func TestStore_CreateConversation(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	id := store.CreateConversation(ctx)
	assert.True(t, strings.HasPrefix(id, "session_"))
	assert.Equal(t, id, store.ActiveConversationID(ctx))

	// Empty conversations are never persisted.
	assert.Empty(t, store.ListConversations(ctx))

	store.AppendMessage(ctx, "now it exists", SenderUser)
	require.Len(t, store.ListConversations(ctx), 1)
}

func TestStore_ActiveConversationID_Fallback(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	// No pointer persisted yet: a generated fallback is returned,
	// stable for the life of the process.
	first := store.ActiveConversationID(ctx)
	assert.True(t, strings.HasPrefix(first, "session_"))
	assert.Equal(t, first, store.ActiveConversationID(ctx))

	store.SetActiveConversationID(ctx, "session_42")
	assert.Equal(t, "session_42", store.ActiveConversationID(ctx))
}

func TestStore_CorruptHistory_TreatedAsEmpty(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	store.AppendMessage(ctx, "hello", SenderUser)
	require.NoError(t, store.set(ctx, historyKey, "{not json"))

	assert.Empty(t, store.ListConversations(ctx))

	// The store stays usable: the next append rebuilds the history.
	store.AppendMessage(ctx, "fresh start", SenderUser)
	require.Len(t, store.ListConversations(ctx), 1)
}

func TestStore_OnChange_Notified(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	var calls int
	store.OnChange(func() { calls++ })

	store.AppendMessage(ctx, "one", SenderUser)
	store.DeleteConversation(ctx, "session_nope")
	store.CreateConversation(ctx)

	assert.GreaterOrEqual(t, calls, 3)
}

func TestNewSessionID_Unique(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		id := NewSessionID()
		assert.False(t, seen[id], "duplicate session id %s", id)
		seen[id] = true
	}
}
