// ABOUTME: Tests for the incremental reveal renderer
// ABOUTME: Covers fragment ordering, tag atomicity, escaping paths and markup passthrough

package render

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nexushealth/nexus-chat/internal/store"
)

func newTestRenderer(sink Sink) *Renderer {
	r := NewRenderer(sink, nil)
	r.SetDelay(func() time.Duration { return 0 })
	return r
}

func TestRender_BotIncremental(t *testing.T) {
	sink := NewBufferSink()
	r := newTestRenderer(sink)

	r.Render(store.Message{Text: "**hi** there\nfriend", Sender: store.SenderBot}, false)

	entries := sink.Entries()
	require.Len(t, entries, 1)
	entry := entries[0]
	assert.Equal(t, store.SenderBot, entry.Sender)

	// The final content is the fully formatted string, nothing omitted
	// or duplicated.
	assert.Equal(t, "<strong>hi</strong> there<br>friend", entry.Content())

	// Tags arrive whole; no fragment ever contains a partial tag.
	for _, frag := range entry.Fragments {
		if strings.HasPrefix(frag, "<") {
			assert.True(t, strings.HasSuffix(frag, ">"), "split tag fragment %q", frag)
		} else {
			assert.NotContains(t, frag, "<", "tag leaked into word fragment %q", frag)
		}
	}

	// Word runs are revealed word by word, tags as single appends.
	assert.Contains(t, entry.Fragments, "<strong>")
	assert.Contains(t, entry.Fragments, "hi")
	assert.Contains(t, entry.Fragments, "</strong>")
	assert.Contains(t, entry.Fragments, "<br>")
	assert.Contains(t, entry.Fragments, "friend")
}

func TestRender_WordsKeepTrailingSpaces(t *testing.T) {
	sink := NewBufferSink()
	r := newTestRenderer(sink)

	r.Render(store.Message{Text: "one two three", Sender: store.SenderBot}, false)

	entry := sink.Last()
	assert.Equal(t, []string{"one ", "two ", "three"}, entry.Fragments)
	assert.Equal(t, "one two three", entry.Content())
}

func TestRender_UserImmediateAndEscaped(t *testing.T) {
	sink := NewBufferSink()
	r := newTestRenderer(sink)

	r.Render(store.Message{Text: "is 37.5 > 37 & risky?", Sender: store.SenderUser}, false)

	entry := sink.Last()
	require.Len(t, entry.Fragments, 1)
	assert.Equal(t, "is 37.5 &gt; 37 &amp; risky?", entry.Content())
}

func TestRender_BotImmediateEscaped(t *testing.T) {
	sink := NewBufferSink()
	r := newTestRenderer(sink)

	r.Render(store.Message{Text: "a < b", Sender: store.SenderBot}, true)

	entry := sink.Last()
	require.Len(t, entry.Fragments, 1)
	assert.Equal(t, "a &lt; b", entry.Content())
}

func TestRender_MarkupPassthrough(t *testing.T) {
	sink := NewBufferSink()
	r := newTestRenderer(sink)

	markup := "<hr><h6>💊 Paracetamol</h6><small>₹20</small><hr>"
	r.Render(store.Message{Text: markup, Sender: store.SenderBot}, false)

	entry := sink.Last()
	require.Len(t, entry.Fragments, 1)
	assert.Equal(t, markup, entry.Fragments[0])
}

func TestRender_CompletesOnce(t *testing.T) {
	sink := NewBufferSink()
	r := newTestRenderer(sink)

	done := 0
	r.Render(store.Message{Text: "**bold** words here", Sender: store.SenderBot}, false)
	done++

	require.Equal(t, 1, done)
	// Everything was appended before Render returned.
	assert.Equal(t, "<strong>bold</strong> words here", sink.Last().Content())
}

func TestRender_IndependentRevealsInterleave(t *testing.T) {
	sink := NewBufferSink()
	r := newTestRenderer(sink)

	first := make(chan struct{})
	go func() {
		r.Render(store.Message{Text: "alpha beta gamma", Sender: store.SenderBot}, false)
		close(first)
	}()
	r.Render(store.Message{Text: "one two", Sender: store.SenderBot}, false)

	select {
	case <-first:
	case <-time.After(2 * time.Second):
		t.Fatal("first reveal never completed")
	}

	entries := sink.Entries()
	require.Len(t, entries, 2)

	// Interleaving never mixes fragments across entries: each message
	// still reads back whole.
	got := []string{entries[0].Content(), entries[1].Content()}
	assert.ElementsMatch(t, []string{"alpha beta gamma", "one two"}, got)
}
