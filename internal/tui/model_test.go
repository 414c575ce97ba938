package tui_test

import (
	"bytes"
	"encoding/base64"
	"testing"
	"time"

	"github.com/alkime/blogsmith/internal/clipboard"
	"github.com/alkime/blogsmith/internal/session"
	"github.com/alkime/blogsmith/internal/session/sessiontest"
	"github.com/alkime/blogsmith/internal/tone"
	"github.com/alkime/blogsmith/internal/tui"
	"github.com/alkime/blogsmith/internal/tui/workflow"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/exp/teatest"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

//nolint:gochecknoinits // recommend for CI by bubbletea folks
func init() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

// outputChecker provides helpers for testing teatest output.
type outputChecker struct {
	intervl, timeout time.Duration
}

func defaultChecker() outputChecker {
	return outputChecker{
		intervl: 50 * time.Millisecond,
		timeout: 3 * time.Second,
	}
}

func (o outputChecker) check(t *testing.T, tm *teatest.TestModel, checkFunc func(buf []byte) bool) {
	t.Helper()
	teatest.WaitFor(t, tm.Output(), checkFunc,
		teatest.WithCheckInterval(o.intervl),
		teatest.WithDuration(o.timeout))
}

// checkString waits until every substr has been written. Output is consumed
// as it is read, so strings from the same frame must be checked together.
func (o outputChecker) checkString(t *testing.T, tm *teatest.TestModel, substrs ...string) {
	t.Helper()
	o.check(t, tm, func(buf []byte) bool {
		for _, s := range substrs {
			if !bytes.Contains(buf, []byte(s)) {
				return false
			}
		}
		return true
	})
}

type harness struct {
	sess      *session.Session
	clock     *sessiontest.Clock
	clipboard *sessiontest.Clipboard
	tm        *teatest.TestModel
}

func start(t *testing.T, topic string, tn tone.Tone) *harness {
	t.Helper()

	events := make(chan session.Event, 64)
	h := &harness{
		clock:     sessiontest.NewClock(time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)),
		clipboard: &sessiontest.Clipboard{},
	}
	h.sess = session.New(session.Config{
		ID:        "tui",
		Clock:     h.clock,
		Clipboard: h.clipboard,
		FileSaver: &sessiontest.Saver{},
		Events:    events,
	})
	t.Cleanup(h.sess.Close)

	h.tm = teatest.NewTestModel(t, tui.New(tui.Config{
		Session: h.sess,
		Events:  events,
		Topic:   topic,
		Tone:    tn,
	}), teatest.WithInitialTermSize(120, 50))

	return h
}

func (h *harness) typeText(text string) {
	h.tm.Type(text)
}

func (h *harness) press(k tea.KeyType) {
	h.tm.Send(tea.KeyMsg{Type: k})
}

func (h *harness) quit(t *testing.T) tea.Model {
	t.Helper()

	h.tm.Send(tea.KeyMsg{Type: tea.KeyCtrlC})
	return h.tm.FinalModel(t, teatest.WithFinalTimeout(3*time.Second))
}

func TestTUI_FullFlow(t *testing.T) {
	checker := defaultChecker()
	h := start(t, "", tone.Casual)

	t.Run("form is shown first", func(t *testing.T) {
		checker.checkString(t, h.tm, "Create a Blog Post")
	})

	t.Run("blank topic is rejected", func(t *testing.T) {
		h.press(tea.KeyEnter)
		checker.checkString(t, h.tm, "Please enter a blog topic")
		assert.Equal(t, session.StatusIdle, h.sess.Status())
	})

	t.Run("generate switches to the progress view", func(t *testing.T) {
		h.typeText("The Future of Artificial Intelligence")
		h.press(tea.KeyTab)
		h.press(tea.KeyEnter)

		checker.checkString(t, h.tm, "Generating your blog post", "professional tone")
	})

	t.Run("completion shows the post", func(t *testing.T) {
		h.clock.Advance(session.DefaultLatency)

		checker.checkString(t, h.tm, "Your Blog Post", "Professional Tone")
	})

	t.Run("copy shows the notice until the window ends", func(t *testing.T) {
		h.typeText("c")
		checker.checkString(t, h.tm, "Content copied to clipboard!")
		require.Eventually(t, func() bool { return len(h.clipboard.Writes()) == 1 }, time.Second, 10*time.Millisecond)

		h.clock.Advance(session.DefaultClipboardWindow)
		require.Eventually(t, func() bool { return !h.sess.Snapshot().Copied }, time.Second, 10*time.Millisecond)
	})

	t.Run("new blog returns to an empty form", func(t *testing.T) {
		h.typeText("n")
		checker.checkString(t, h.tm, "Create a Blog Post")

		snap := h.sess.Snapshot()
		assert.Equal(t, session.StatusIdle, snap.Status)
		assert.Equal(t, tone.Casual, snap.Tone)
	})

	final := h.quit(t)
	assert.Equal(t, workflow.PhaseCompose, tui.CurrentPhase(final))
}

func TestTUI_CancelDuringGeneration(t *testing.T) {
	checker := defaultChecker()
	h := start(t, "Go Generics", tone.Friendly)

	checker.checkString(t, h.tm, "Create a Blog Post")
	h.press(tea.KeyEnter)
	checker.checkString(t, h.tm, "Generating your blog post")

	h.press(tea.KeyEsc)
	checker.checkString(t, h.tm, "Create a Blog Post")

	h.clock.Advance(session.DefaultLatency)

	final := h.quit(t)
	assert.Equal(t, workflow.PhaseCompose, tui.CurrentPhase(final))
	assert.Equal(t, session.StatusIdle, h.sess.Status())
}

func TestTUI_CopyWritesThroughProgramOutput(t *testing.T) {
	// screen terminals get the sequence in chunks
	t.Setenv("TERM", "xterm-256color")

	checker := defaultChecker()
	clock := sessiontest.NewClock(time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC))
	cb := &clipboard.Pending{}
	events := make(chan session.Event, 64)

	sess := session.New(session.Config{
		ID:        "tui",
		Clock:     clock,
		Clipboard: cb,
		FileSaver: &sessiontest.Saver{},
		Events:    events,
	})
	t.Cleanup(sess.Close)

	tm := teatest.NewTestModel(t, tui.New(tui.Config{
		Session:   sess,
		Events:    events,
		Topic:     "Terminal Tricks",
		Tone:      tone.Casual,
		Clipboard: cb,
	}), teatest.WithInitialTermSize(120, 50))

	checker.checkString(t, tm, "Create a Blog Post")
	tm.Send(tea.KeyMsg{Type: tea.KeyEnter})
	checker.checkString(t, tm, "Generating your blog post")

	clock.Advance(session.DefaultLatency)
	checker.checkString(t, tm, "Your Blog Post")

	post := sess.Snapshot().Artifact.Content
	tm.Type("c")
	checker.checkString(t, tm, "\x1b]52;", base64.StdEncoding.EncodeToString([]byte(post)))

	assert.Nil(t, cb.Flush(), "the program already flushed the copy")

	tm.Send(tea.KeyMsg{Type: tea.KeyCtrlC})
	tm.WaitFinished(t, teatest.WithFinalTimeout(3*time.Second))
}
