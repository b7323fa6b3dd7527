package transport

import (
	"fmt"
	"io"
	"strings"
)

// ConsoleTransport renders each update as a large framed banner, clearing
// the terminal first. It is the display used when the full-screen TUI is
// not running (e.g. output piped to a file).
type ConsoleTransport struct {
	w     io.Writer
	clear bool
}

// NewConsoleTransport creates a ConsoleTransport writing to w. When clear
// is true an ANSI clear-screen sequence precedes every banner.
func NewConsoleTransport(w io.Writer, clear bool) *ConsoleTransport {
	return &ConsoleTransport{w: w, clear: clear}
}

// Send prints the update banner.
func (ct *ConsoleTransport) Send(u Update) error {
	var sb strings.Builder

	if ct.clear {
		sb.WriteString("\033[2J\033[H")
	}
	rule := strings.Repeat("=", 60)
	sb.WriteString("\n\n")
	sb.WriteString("          " + rule + "\n\n")
	sb.WriteString("               " + u.String() + "\n\n")
	sb.WriteString("          " + rule + "\n\n")

	_, err := fmt.Fprint(ct.w, sb.String())
	return err
}

// Close is a no-op.
func (ct *ConsoleTransport) Close() error {
	return nil
}

var _ Transport = (*ConsoleTransport)(nil)
