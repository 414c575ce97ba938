package workflow

import (
	"time"

	"github.com/alkime/blogsmith/internal/session"
	tea "github.com/charmbracelet/bubbletea"
)

const copyTickInterval = 100 * time.Millisecond

// SessionEventMsg carries a session transition into the program.
type SessionEventMsg struct {
	Event session.Event
}

// WaitForEvent delivers the next event from ch as a SessionEventMsg. It
// yields nil once ch is closed.
func WaitForEvent(ch <-chan session.Event) tea.Cmd {
	if ch == nil {
		return nil
	}

	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return SessionEventMsg{Event: ev}
	}
}

// downloadDoneMsg reports the outcome of a download.
type downloadDoneMsg struct {
	download session.Download
	path     string
	err      error
}

// copyTickMsg redraws the clipboard countdown.
type copyTickMsg struct{}

func copyTickCmd() tea.Cmd {
	return tea.Tick(copyTickInterval, func(time.Time) tea.Msg {
		return copyTickMsg{}
	})
}
