// ABOUTME: Renderer appends messages to a transcript sink with an incremental reveal for bot text
// ABOUTME: Tag fragments land whole; word runs are revealed word-by-word with a randomized delay

package render

import (
	"log/slog"
	"math/rand"
	"strings"
	"time"

	"github.com/nexushealth/nexus-chat/internal/store"
)

// Reveal delay bounds between consecutive words: [30ms, 70ms).
const (
	revealDelayBase   = 30 * time.Millisecond
	revealDelayJitter = 40 * time.Millisecond
)

// Sink receives rendered message entries. After every append the sink is
// expected to bring the end of the log into view (terminal sinks flush).
type Sink interface {
	// BeginMessage opens a new entry for the given sender and returns
	// a writer scoped to that entry, so overlapping renders each keep
	// appending to their own message.
	BeginMessage(sender string) MessageWriter
	// ShowStatus displays a transient in-progress indicator.
	ShowStatus(text string)
	// ClearStatus removes the indicator.
	ClearStatus()
}

// MessageWriter appends fragments to one transcript entry.
type MessageWriter interface {
	// Append adds one fragment to the entry.
	Append(fragment string)
	// Close marks the entry complete.
	Close()
}

// Renderer writes messages into a Sink. Bot-originated plain text is
// revealed progressively to mimic live generation; user text and
// pre-rendered markup are inserted at once.
//
// Renders are independent: two concurrent renders interleave their
// fragments without coordination, each preserving only its own internal
// order.
type Renderer struct {
	sink   Sink
	delay  func() time.Duration
	logger *slog.Logger
}

// NewRenderer creates a Renderer with the default randomized word delay.
func NewRenderer(sink Sink, logger *slog.Logger) *Renderer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Renderer{
		sink: sink,
		delay: func() time.Duration {
			return revealDelayBase + time.Duration(rand.Int63n(int64(revealDelayJitter)))
		},
		logger: logger.With("component", "render"),
	}
}

// SetDelay overrides the inter-word delay. A zero duration disables the
// pause entirely, which keeps tests fast and lets the reveal be turned
// off by configuration.
func (r *Renderer) SetDelay(fn func() time.Duration) {
	r.delay = fn
}

// Render appends msg to the log and returns once the entry is complete.
//
// Markup (text starting with "<") is inserted verbatim - it is produced
// by this client from structured backend responses and is trusted.
// Plain bot text with immediate=false goes through inline formatting and
// the word-by-word reveal. Everything else is escaped and inserted whole.
func (r *Renderer) Render(msg store.Message, immediate bool) {
	w := r.sink.BeginMessage(msg.Sender)
	defer w.Close()

	if IsMarkup(msg.Text) {
		w.Append(msg.Text)
		return
	}

	if !immediate && msg.Sender == store.SenderBot {
		r.reveal(w, FormatInline(msg.Text))
		return
	}

	w.Append(Escape(msg.Text))
}

// reveal walks the fragment sequence left to right. Tags are appended
// whole with no delay; word runs pause between consecutive words. Each
// word keeps its trailing space except the last in its run.
func (r *Renderer) reveal(w MessageWriter, formatted string) {
	for _, part := range Fragments(formatted) {
		if strings.HasPrefix(part, "<") {
			w.Append(part)
			continue
		}

		words := strings.Split(part, " ")
		for i, word := range words {
			if i > 0 {
				if d := r.delay(); d > 0 {
					time.Sleep(d)
				}
			}
			if i < len(words)-1 {
				w.Append(word + " ")
			} else {
				w.Append(word)
			}
		}
	}
}
