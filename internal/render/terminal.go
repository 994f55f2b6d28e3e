// ABOUTME: TerminalSink translates the markup vocabulary to ANSI and writes it to a terminal
// ABOUTME: Unknown tags are dropped; escaped text is unescaped for display

package render

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/fatih/color"

	"github.com/nexushealth/nexus-chat/internal/store"
)

// tagANSI maps markup tags to their terminal rendering. Tags without an
// entry are silently dropped.
var tagANSI = map[string]string{
	"<strong>":  "\033[1m",
	"</strong>": "\033[22m",
	"<em>":      "\033[3m",
	"</em>":     "\033[23m",
	"<br>":      "\n",
	"<br/>":     "\n",
	"<h6>":      "\n\033[1m",
	"</h6>":     "\033[22m",
	"<small>":   "\033[2m",
	"</small>":  "\033[22m",
	"<li>":      "\n  • ",
	"<hr>":      "\n\033[2m" + "────────────────────────────────────────" + "\033[0m\n",
}

// TerminalSink renders transcript entries to a terminal writer. Writes
// are flushed fragment by fragment so incremental reveals appear live.
// A mutex keeps interleaved renders (overlapping reveals, reminder
// timers) from corrupting each other mid-escape-sequence.
type TerminalSink struct {
	mu         sync.Mutex
	out        io.Writer
	statusOpen bool
}

// NewTerminalSink creates a sink writing to out.
func NewTerminalSink(out io.Writer) *TerminalSink {
	return &TerminalSink{out: out}
}

// BeginMessage prints the sender prefix for a new entry. The terminal
// is a single stream, so overlapping entries share the writer and their
// fragments appear in arrival order.
func (t *TerminalSink) BeginMessage(sender string) MessageWriter {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.clearStatusLocked()

	if sender == store.SenderUser {
		fmt.Fprint(t.out, color.CyanString("you ▸ "))
	} else {
		fmt.Fprint(t.out, color.GreenString("nexus ▸ "))
	}
	return terminalEntry{sink: t}
}

type terminalEntry struct {
	sink *TerminalSink
}

// Append writes one fragment, translating tags to ANSI.
func (e terminalEntry) Append(fragment string) {
	e.sink.mu.Lock()
	defer e.sink.mu.Unlock()

	for _, part := range Fragments(fragment) {
		if strings.HasPrefix(part, "<") {
			fmt.Fprint(e.sink.out, tagANSI[part])
			continue
		}
		fmt.Fprint(e.sink.out, Unescape(part))
	}
}

// Close ends the entry with a reset and a blank line.
func (e terminalEntry) Close() {
	e.sink.mu.Lock()
	defer e.sink.mu.Unlock()
	fmt.Fprint(e.sink.out, "\033[0m\n\n")
}

// ShowStatus displays a transient in-progress line.
func (t *TerminalSink) ShowStatus(text string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.clearStatusLocked()
	fmt.Fprint(t.out, color.New(color.Faint).Sprintf("… %s", text))
	t.statusOpen = true
}

// ClearStatus removes the in-progress line.
func (t *TerminalSink) ClearStatus() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.clearStatusLocked()
}

func (t *TerminalSink) clearStatusLocked() {
	if !t.statusOpen {
		return
	}
	// Return to column 0, blank the line, return again.
	fmt.Fprint(t.out, "\r\033[2K")
	t.statusOpen = false
}

var _ Sink = (*TerminalSink)(nil)
