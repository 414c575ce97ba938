// Package clipboard provides the clipboards a session can copy into.
package clipboard

import (
	"bytes"
	"errors"
	"io"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/termenv"
)

// ErrNoOutput is returned when a terminal clipboard has nowhere to write.
var ErrNoOutput = errors.New("clipboard: no terminal output")

// Terminal copies through the OSC 52 escape sequence, which the user's
// terminal forwards to the system clipboard. It works over SSH too.
type Terminal struct {
	out *termenv.Output
}

// NewTerminal writes clipboard sequences to w, usually os.Stdout.
func NewTerminal(w io.Writer) *Terminal {
	if w == nil {
		return &Terminal{}
	}
	return &Terminal{out: termenv.NewOutput(w)}
}

func (t *Terminal) Write(text string) error {
	if t.out == nil {
		return ErrNoOutput
	}

	t.out.Copy(text)

	return nil
}

// Sequence returns the OSC 52 escape sequence that copies text.
func Sequence(text string) string {
	var buf bytes.Buffer
	termenv.NewOutput(&buf).Copy(text)

	return buf.String()
}

// Pending is the clipboard for a running Bubble Tea program. The program owns
// the terminal, so copies are queued and written by the program itself when
// Flush's command runs.
type Pending struct {
	mu     sync.Mutex
	queued []string
}

func (p *Pending) Write(text string) error {
	seq := Sequence(text)

	p.mu.Lock()
	defer p.mu.Unlock()

	p.queued = append(p.queued, seq)

	return nil
}

// Flush returns a command printing every queued sequence through the
// program's renderer, or nil when nothing is queued.
func (p *Pending) Flush() tea.Cmd {
	p.mu.Lock()
	queued := p.queued
	p.queued = nil
	p.mu.Unlock()

	if len(queued) == 0 {
		return nil
	}

	cmds := make([]tea.Cmd, 0, len(queued))
	for _, seq := range queued {
		cmds = append(cmds, tea.Println(seq))
	}

	return tea.Sequence(cmds...)
}

// Memory keeps the last copied text. Servers use it since the real copy
// happens in the client.
type Memory struct {
	mu   sync.Mutex
	text string
	n    int
}

func (m *Memory) Write(text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.text = text
	m.n++

	return nil
}

// Last returns the most recent text and how many writes were made.
func (m *Memory) Last() (string, int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.text, m.n
}
