// ABOUTME: BufferSink records transcript entries in memory for tests and transcript export

package render

import (
	"strings"
	"sync"
)

// Entry is one recorded transcript message.
type Entry struct {
	Sender    string
	Fragments []string
}

// Content returns the entry's fragments joined into the full markup.
func (e Entry) Content() string {
	return strings.Join(e.Fragments, "")
}

// BufferSink is a Sink that accumulates entries in memory. Each entry
// collects its own fragments, so overlapping renders stay separate.
type BufferSink struct {
	mu       sync.Mutex
	entries  []*Entry
	statuses []string
}

// NewBufferSink creates an empty BufferSink.
func NewBufferSink() *BufferSink {
	return &BufferSink{}
}

func (b *BufferSink) BeginMessage(sender string) MessageWriter {
	b.mu.Lock()
	defer b.mu.Unlock()
	e := &Entry{Sender: sender}
	b.entries = append(b.entries, e)
	return bufferEntry{sink: b, entry: e}
}

type bufferEntry struct {
	sink  *BufferSink
	entry *Entry
}

func (w bufferEntry) Append(fragment string) {
	w.sink.mu.Lock()
	defer w.sink.mu.Unlock()
	w.entry.Fragments = append(w.entry.Fragments, fragment)
}

func (w bufferEntry) Close() {}

func (b *BufferSink) ShowStatus(text string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.statuses = append(b.statuses, text)
}

func (b *BufferSink) ClearStatus() {}

// Entries returns a snapshot of the recorded messages.
func (b *BufferSink) Entries() []Entry {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]Entry, 0, len(b.entries))
	for _, e := range b.entries {
		frags := make([]string, len(e.Fragments))
		copy(frags, e.Fragments)
		out = append(out, Entry{Sender: e.Sender, Fragments: frags})
	}
	return out
}

// Last returns the most recent entry, or a zero Entry if none exist.
func (b *BufferSink) Last() Entry {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.entries) == 0 {
		return Entry{}
	}
	e := b.entries[len(b.entries)-1]
	frags := make([]string, len(e.Fragments))
	copy(frags, e.Fragments)
	return Entry{Sender: e.Sender, Fragments: frags}
}

// Statuses returns the in-progress indicator texts shown so far.
func (b *BufferSink) Statuses() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]string, len(b.statuses))
	copy(out, b.statuses)
	return out
}

var _ Sink = (*BufferSink)(nil)
