package session_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/alkime/blogsmith/internal/content"
	"github.com/alkime/blogsmith/internal/session"
	"github.com/alkime/blogsmith/internal/session/sessiontest"
	"github.com/alkime/blogsmith/internal/tone"
	"github.com/alkime/blogsmith/pkg/channels"
	"github.com/alkime/blogsmith/pkg/uictl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var epoch = time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)

type harness struct {
	sess      *session.Session
	clock     *sessiontest.Clock
	clipboard *sessiontest.Clipboard
	saver     *sessiontest.Saver
	events    chan session.Event
}

func newHarness(t *testing.T, mutate ...func(*session.Config)) *harness {
	t.Helper()

	h := &harness{
		clock:     sessiontest.NewClock(epoch),
		clipboard: &sessiontest.Clipboard{},
		saver:     &sessiontest.Saver{},
		events:    make(chan session.Event, 64),
	}

	cfg := session.Config{
		ID:        "test-session",
		Clock:     h.clock,
		Clipboard: h.clipboard,
		FileSaver: h.saver,
		Events:    h.events,
	}
	for _, m := range mutate {
		m(&cfg)
	}

	h.sess = session.New(cfg)
	t.Cleanup(h.sess.Close)

	return h
}

func (h *harness) eventKinds() []session.EventKind {
	var kinds []session.EventKind
	for _, ev := range channels.ReceiveAll(h.events, 5*time.Millisecond, 0) {
		kinds = append(kinds, ev.Kind)
	}
	return kinds
}

func (h *harness) generate(t *testing.T, topic string, tn tone.Tone) {
	t.Helper()
	require.NoError(t, h.sess.RequestGeneration(topic, tn))
	h.clock.Advance(session.DefaultLatency)
	require.Equal(t, session.StatusReady, h.sess.Status())
}

func TestNew_Defaults(t *testing.T) {
	h := newHarness(t)
	snap := h.sess.Snapshot()

	assert.Equal(t, "test-session", snap.ID)
	assert.Equal(t, session.StatusIdle, snap.Status)
	assert.Equal(t, tone.Casual, snap.Tone)
	assert.Empty(t, snap.Topic)
	assert.Nil(t, snap.Artifact)
	assert.False(t, snap.Copied)
	assert.Equal(t, session.DefaultLatency, h.sess.Latency())

	assert.NotEmpty(t, session.New(session.Config{}).ID())
}

func TestRequestGeneration(t *testing.T) {
	t.Run("enters generating synchronously and completes after latency", func(t *testing.T) {
		h := newHarness(t)

		require.NoError(t, h.sess.RequestGeneration("Go Generics", tone.Informative))
		assert.Equal(t, session.StatusGenerating, h.sess.Status())

		h.clock.Advance(session.DefaultLatency - time.Millisecond)
		assert.Equal(t, session.StatusGenerating, h.sess.Status())

		h.clock.Advance(time.Millisecond)
		snap := h.sess.Snapshot()
		require.Equal(t, session.StatusReady, snap.Status)
		require.NotNil(t, snap.Artifact)

		want, err := content.Compose("Go Generics", tone.Informative)
		require.NoError(t, err)
		assert.Equal(t, want.Content, snap.Artifact.Content)
		assert.Equal(t, want.WordCount, snap.Artifact.WordCount)
		assert.Equal(t, "Go Generics", snap.Artifact.Topic)
		assert.Equal(t, tone.Informative, snap.Artifact.Tone)
		assert.Equal(t, epoch.Add(session.DefaultLatency), snap.Artifact.GeneratedAt)

		assert.Equal(t, []session.EventKind{
			session.EventGenerationStarted,
			session.EventGenerationCompleted,
		}, h.eventKinds())
	})

	t.Run("blank topic is rejected without a transition", func(t *testing.T) {
		h := newHarness(t)

		for _, topic := range []string{"", "   ", "\t\n"} {
			err := h.sess.RequestGeneration(topic, tone.Casual)
			var ve *session.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, "topic", ve.Field)
		}

		assert.Equal(t, session.StatusIdle, h.sess.Status())
		assert.Zero(t, h.clock.Pending())
		assert.Empty(t, h.eventKinds())
	})

	t.Run("topic length is capped in characters", func(t *testing.T) {
		h := newHarness(t)

		err := h.sess.RequestGeneration(strings.Repeat("a", session.MaxTopicLength+1), tone.Casual)
		var ve *session.ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Equal(t, "topic", ve.Field)
		assert.Equal(t, session.StatusIdle, h.sess.Status())

		require.NoError(t, h.sess.RequestGeneration(strings.Repeat("ü", session.MaxTopicLength), tone.Casual))
		assert.Equal(t, session.StatusGenerating, h.sess.Status())
	})

	t.Run("unknown tone is rejected", func(t *testing.T) {
		h := newHarness(t)

		err := h.sess.RequestGeneration("Go", tone.Tone(42))
		var ve *session.ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Equal(t, "tone", ve.Field)
		assert.Equal(t, session.StatusIdle, h.sess.Status())
	})

	t.Run("second request while generating is ignored", func(t *testing.T) {
		h := newHarness(t)

		require.NoError(t, h.sess.RequestGeneration("first", tone.Friendly))
		require.Equal(t, 1, h.clock.Pending())

		require.NoError(t, h.sess.RequestGeneration("second", tone.Professional))
		assert.Equal(t, 1, h.clock.Pending())

		h.clock.Advance(session.DefaultLatency)
		snap := h.sess.Snapshot()
		require.NotNil(t, snap.Artifact)
		assert.Equal(t, "first", snap.Artifact.Topic)
		assert.Equal(t, tone.Friendly, snap.Artifact.Tone)
	})

	t.Run("regenerating from ready replaces the artifact", func(t *testing.T) {
		h := newHarness(t)
		h.generate(t, "first", tone.Casual)

		require.NoError(t, h.sess.RequestGeneration("second", tone.Persuasive))
		snap := h.sess.Snapshot()
		assert.Equal(t, session.StatusGenerating, snap.Status)
		require.NotNil(t, snap.Artifact)
		assert.Equal(t, "first", snap.Artifact.Topic)

		h.clock.Advance(session.DefaultLatency)
		snap = h.sess.Snapshot()
		assert.Equal(t, session.StatusReady, snap.Status)
		assert.Equal(t, "second", snap.Artifact.Topic)
		assert.Equal(t, tone.Persuasive, snap.Artifact.Tone)
	})

	t.Run("custom latency", func(t *testing.T) {
		h := newHarness(t, func(c *session.Config) { c.Latency = 50 * time.Millisecond })

		require.NoError(t, h.sess.RequestGeneration("quick", tone.Casual))
		h.clock.Advance(50 * time.Millisecond)
		assert.Equal(t, session.StatusReady, h.sess.Status())
	})

	t.Run("topic is substituted verbatim", func(t *testing.T) {
		h := newHarness(t)
		h.generate(t, "  padded  topic ", tone.Professional)

		snap := h.sess.Snapshot()
		assert.Contains(t, snap.Artifact.Content, "  padded  topic ")
	})
}

type failingComposer struct{ err error }

func (f failingComposer) Compose(context.Context, string, tone.Tone) (content.Composed, error) {
	return content.Composed{}, f.err
}

func TestGenerationFailure(t *testing.T) {
	t.Run("composer error restores idle", func(t *testing.T) {
		h := newHarness(t, func(c *session.Config) {
			c.Composer = failingComposer{err: errors.New("backend down")}
		})

		require.NoError(t, h.sess.RequestGeneration("Go", tone.Casual))
		h.clock.Advance(session.DefaultLatency)

		assert.Equal(t, session.StatusIdle, h.sess.Status())

		evs := channels.ReceiveAll(h.events, 5*time.Millisecond, 0)
		require.Len(t, evs, 2)
		assert.Equal(t, session.EventGenerationFailed, evs[1].Kind)
		assert.Equal(t, "backend down", evs[1].Err)
	})

	t.Run("composer rejecting validated input panics", func(t *testing.T) {
		h := newHarness(t, func(c *session.Config) {
			c.Composer = failingComposer{err: content.ErrEmptyTopic}
		})

		require.NoError(t, h.sess.RequestGeneration("Go", tone.Casual))
		assert.Panics(t, func() { h.clock.Advance(session.DefaultLatency) })
	})
}

func TestReset(t *testing.T) {
	t.Run("from ready clears everything", func(t *testing.T) {
		h := newHarness(t)
		h.generate(t, "Go", tone.Professional)
		require.NoError(t, h.sess.CopyToClipboard())

		h.sess.Reset()

		snap := h.sess.Snapshot()
		assert.Equal(t, session.StatusIdle, snap.Status)
		assert.Empty(t, snap.Topic)
		assert.Equal(t, tone.Casual, snap.Tone)
		assert.Nil(t, snap.Artifact)
		assert.False(t, snap.Copied)
		assert.Zero(t, h.clock.Pending())
	})

	t.Run("mid-generation discards the completion", func(t *testing.T) {
		h := newHarness(t)

		require.NoError(t, h.sess.RequestGeneration("Go", tone.Informative))
		h.clock.Advance(time.Second)
		h.sess.Reset()

		h.clock.Advance(2 * session.DefaultLatency)

		snap := h.sess.Snapshot()
		assert.Equal(t, session.StatusIdle, snap.Status)
		assert.Nil(t, snap.Artifact)
	})

	t.Run("reset then new request only lands the new one", func(t *testing.T) {
		h := newHarness(t)

		require.NoError(t, h.sess.RequestGeneration("old", tone.Informative))
		h.clock.Advance(time.Second)
		h.sess.Reset()
		require.NoError(t, h.sess.RequestGeneration("new", tone.Friendly))

		h.clock.Advance(time.Second)
		assert.Equal(t, session.StatusGenerating, h.sess.Status())

		h.clock.Advance(time.Second)
		snap := h.sess.Snapshot()
		require.Equal(t, session.StatusReady, snap.Status)
		assert.Equal(t, "new", snap.Artifact.Topic)
	})

	t.Run("reset from idle is harmless", func(t *testing.T) {
		h := newHarness(t)
		h.sess.Reset()
		assert.Equal(t, session.StatusIdle, h.sess.Status())
	})
}

func TestCopyToClipboard(t *testing.T) {
	t.Run("not ready", func(t *testing.T) {
		h := newHarness(t)
		require.ErrorIs(t, h.sess.CopyToClipboard(), session.ErrNotReady)

		require.NoError(t, h.sess.RequestGeneration("Go", tone.Casual))
		require.ErrorIs(t, h.sess.CopyToClipboard(), session.ErrNotReady)
		assert.Empty(t, h.clipboard.Writes())
	})

	t.Run("flag rises and falls after the window", func(t *testing.T) {
		h := newHarness(t)
		h.generate(t, "Go", tone.Casual)

		require.NoError(t, h.sess.CopyToClipboard())
		assert.True(t, h.sess.Snapshot().Copied)
		assert.Equal(t, []string{h.sess.Snapshot().Artifact.Content}, h.clipboard.Writes())

		h.clock.Advance(session.DefaultClipboardWindow - time.Millisecond)
		assert.True(t, h.sess.Snapshot().Copied)

		h.clock.Advance(time.Millisecond)
		assert.False(t, h.sess.Snapshot().Copied)
	})

	t.Run("copying again restarts the window", func(t *testing.T) {
		h := newHarness(t)
		h.generate(t, "Go", tone.Casual)

		require.NoError(t, h.sess.CopyToClipboard())
		h.clock.Advance(1500 * time.Millisecond)
		require.NoError(t, h.sess.CopyToClipboard())

		h.clock.Advance(1000 * time.Millisecond)
		assert.True(t, h.sess.Snapshot().Copied)

		h.clock.Advance(1000 * time.Millisecond)
		assert.False(t, h.sess.Snapshot().Copied)
		assert.Len(t, h.clipboard.Writes(), 2)
	})

	t.Run("clipboard failure leaves state alone", func(t *testing.T) {
		h := newHarness(t)
		h.clipboard.Fail = true
		h.generate(t, "Go", tone.Casual)

		require.NoError(t, h.sess.CopyToClipboard())
		assert.False(t, h.sess.Snapshot().Copied)
		assert.Equal(t, session.StatusReady, h.sess.Status())
	})

	t.Run("countdown dial tracks the window", func(t *testing.T) {
		h := newHarness(t)
		h.generate(t, "Go", tone.Casual)

		dial := h.sess.ClipboardCountdown()
		lamp := h.sess.CopiedLamp()
		assert.Zero(t, dial.Read())
		assert.False(t, lamp.Lit())

		require.NoError(t, h.sess.CopyToClipboard())
		assert.True(t, lamp.Lit())
		assert.InDelta(t, 1.0, uictl.Fraction(dial), 0.001)

		h.clock.Advance(500 * time.Millisecond)
		num, capValue := dial.Cap()
		assert.Equal(t, int64(1500), num)
		assert.Equal(t, int64(2000), capValue)
	})
}

func TestDownloadAsFile(t *testing.T) {
	t.Run("not ready", func(t *testing.T) {
		h := newHarness(t)
		_, err := h.sess.DownloadAsFile()
		require.ErrorIs(t, err, session.ErrNotReady)
	})

	t.Run("payload and saver", func(t *testing.T) {
		h := newHarness(t)
		h.generate(t, "The Future of Artificial Intelligence", tone.Professional)

		d, err := h.sess.DownloadAsFile()
		require.NoError(t, err)

		assert.Equal(t, "the-future-of-artificial-intelligence-blog.txt", d.Filename)
		assert.Equal(t, "text/plain", d.MimeType)
		assert.Equal(t, h.sess.Snapshot().Artifact.Content, string(d.Data))

		saved := h.saver.Saved()
		require.Len(t, saved, 1)
		assert.Equal(t, d.Filename, saved[0].Filename)
		assert.Equal(t, string(d.Data), saved[0].Data)
		assert.Equal(t, session.StatusReady, h.sess.Status())
	})

	t.Run("saver failure still returns the payload", func(t *testing.T) {
		h := newHarness(t)
		h.saver.Fail = true
		h.generate(t, "Go", tone.Casual)

		d, err := h.sess.DownloadAsFile()
		require.NoError(t, err)
		assert.Equal(t, "go-blog.txt", d.Filename)
	})
}

func TestDownloadFilename(t *testing.T) {
	tests := []struct {
		topic string
		want  string
	}{
		{"The Future of Artificial Intelligence", "the-future-of-artificial-intelligence-blog.txt"},
		{"Go", "go-blog.txt"},
		{"a  \t b", "a-b-blog.txt"},
		{" leading", "-leading-blog.txt"},
		{"MiXeD/Case!", "mixed/case!-blog.txt"},
	}

	for _, tt := range tests {
		t.Run(tt.topic, func(t *testing.T) {
			assert.Equal(t, tt.want, session.DownloadFilename(tt.topic))
		})
	}
}

func TestClose(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.sess.RequestGeneration("Go", tone.Casual))

	h.sess.Close()
	assert.Zero(t, h.clock.Pending())

	require.ErrorIs(t, h.sess.RequestGeneration("Go", tone.Casual), session.ErrClosed)
	require.ErrorIs(t, h.sess.CopyToClipboard(), session.ErrClosed)
}

func TestEvents_Delivery(t *testing.T) {
	t.Run("completion waits for room", func(t *testing.T) {
		events := make(chan session.Event, 1)
		h := newHarness(t, func(c *session.Config) { c.Events = events })

		require.NoError(t, h.sess.RequestGeneration("Backpressure", tone.Casual))
		require.Len(t, events, 1)

		go func() {
			time.Sleep(20 * time.Millisecond)
			<-events
		}()

		h.clock.Advance(session.DefaultLatency)

		ev := <-events
		assert.Equal(t, session.EventGenerationCompleted, ev.Kind)
		assert.Equal(t, session.StatusReady, ev.Snapshot.Status)
	})

	t.Run("other events drop when full", func(t *testing.T) {
		events := make(chan session.Event, 1)
		h := newHarness(t, func(c *session.Config) {
			c.Events = events
			c.EventTimeout = 10 * time.Millisecond
		})
		h.generate(t, "Backpressure", tone.Casual)

		require.NoError(t, h.sess.CopyToClipboard())
		h.sess.Reset()

		assert.Len(t, events, 1)
	})

	t.Run("negative timeout never blocks", func(t *testing.T) {
		events := make(chan session.Event, 1)
		h := newHarness(t, func(c *session.Config) {
			c.Events = events
			c.EventTimeout = -1
		})

		require.NoError(t, h.sess.RequestGeneration("Backpressure", tone.Casual))
		start := time.Now()
		h.clock.Advance(session.DefaultLatency)

		assert.Less(t, time.Since(start), session.DefaultEventTimeout)
		assert.Equal(t, session.StatusReady, h.sess.Status())
		assert.Equal(t, session.EventGenerationStarted, (<-events).Kind)
	})
}

func TestStatus_String(t *testing.T) {
	assert.Equal(t, "idle", session.StatusIdle.String())
	assert.Equal(t, "generating", session.StatusGenerating.String())
	assert.Equal(t, "ready", session.StatusReady.String())
}
