// ABOUTME: Prompter asks the user yes/no and free-text questions mid-flow
// ABOUTME: The stdio implementation reads answers line by line from the terminal

package chat

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Prompter collects interactive answers during a flow, such as the
// emergency confirmation or an appointment time.
type Prompter interface {
	// Confirm asks a yes/no question. The zero answer is no.
	Confirm(question string) bool
	// Input asks for a line of text. An empty answer cancels the flow.
	Input(question string) string
}

// StdioPrompter reads answers from in and writes questions to out.
// Callers that also read in elsewhere must share the same *bufio.Reader
// so no buffered input is lost between readers.
type StdioPrompter struct {
	in  *bufio.Reader
	out io.Writer
}

// NewStdioPrompter creates a Prompter over the given streams.
func NewStdioPrompter(in *bufio.Reader, out io.Writer) *StdioPrompter {
	return &StdioPrompter{in: in, out: out}
}

func (p *StdioPrompter) Confirm(question string) bool {
	fmt.Fprintf(p.out, "%s [y/N] ", question)
	line, err := p.in.ReadString('\n')
	if err != nil {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}

func (p *StdioPrompter) Input(question string) string {
	fmt.Fprintf(p.out, "%s ", question)
	line, err := p.in.ReadString('\n')
	if err != nil {
		return ""
	}
	return strings.TrimSpace(line)
}
