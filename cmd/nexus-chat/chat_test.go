// ABOUTME: Tests for the interactive loop state: sidebar refresh and delete confirmation

package main

import (
	"bytes"
	"context"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nexushealth/nexus-chat/internal/store"
)

type stubPrompter struct {
	answer bool
}

func (p stubPrompter) Confirm(string) bool { return p.answer }
func (p stubPrompter) Input(string) string { return "" }

func newTestStore(t *testing.T) store.Store {
	t.Helper()
	st, err := store.NewSQLiteStore(filepath.Join(t.TempDir(), "chat.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return st
}

func TestSidebarRefreshAfterMutation(t *testing.T) {
	st := newTestStore(t)
	c := newCLI(st, nil, nil, nil, stubPrompter{}, slog.Default())
	ctx := context.Background()

	var buf bytes.Buffer
	c.refreshIfDirty(ctx, &buf)
	assert.Empty(t, buf.String(), "refresh before any mutation")

	st.AppendMessage(ctx, "hello there", store.SenderUser)
	c.refreshIfDirty(ctx, &buf)
	assert.Contains(t, buf.String(), "hello there")

	// The flag is consumed by the refresh.
	buf.Reset()
	c.refreshIfDirty(ctx, &buf)
	assert.Empty(t, buf.String())
}

func TestSidebarRefreshAfterDelete(t *testing.T) {
	st := newTestStore(t)
	c := newCLI(st, nil, nil, nil, stubPrompter{answer: true}, slog.Default())
	ctx := context.Background()

	st.AppendMessage(ctx, "soon gone", store.SenderUser)
	var buf bytes.Buffer
	c.refreshIfDirty(ctx, &buf)

	buf.Reset()
	c.delete(ctx, "1")
	c.refreshIfDirty(ctx, &buf)
	assert.NotEmpty(t, buf.String(), "delete did not trigger a refresh")
	assert.NotContains(t, buf.String(), "soon gone")
}

func TestDelete_RequiresConfirmation(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	st.AppendMessage(ctx, "precious history", store.SenderUser)

	declined := newCLI(st, nil, nil, nil, stubPrompter{answer: false}, slog.Default())
	declined.delete(ctx, "1")
	require.Len(t, st.ListConversations(ctx), 1, "deleted without confirmation")

	confirmed := newCLI(st, nil, nil, nil, stubPrompter{answer: true}, slog.Default())
	confirmed.delete(ctx, "1")
	assert.Empty(t, st.ListConversations(ctx))
}
