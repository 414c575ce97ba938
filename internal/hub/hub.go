// Package hub fans session events out to archive, metrics, logging and UI
// consumers.
package hub

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/alkime/blogsmith/internal/session"
	"github.com/alkime/blogsmith/pkg/channels"
)

const (
	defaultSinkBuffer  = 64
	defaultInputBuffer = 256
)

// Sink consumes one event.
type Sink func(session.Event)

type sink struct {
	name string
	ch   chan session.Event
	fn   Sink
}

// Hub delivers every published event to each attached sink on its own
// goroutine. Attach sinks before Start.
type Hub struct {
	broadcaster *channels.Broadcaster[session.Event]
	sinks       []sink
	wg          sync.WaitGroup
	logger      *slog.Logger
}

func New(logger *slog.Logger) *Hub {
	if logger == nil {
		logger = slog.Default()
	}
	return &Hub{
		broadcaster: channels.NewBufferedBroadcaster[session.Event](defaultInputBuffer),
		logger:      logger,
	}
}

// Attach registers fn under name with its own buffered queue.
func (h *Hub) Attach(name string, fn Sink) error {
	ch := make(chan session.Event, defaultSinkBuffer)
	if err := h.broadcaster.Subscribe(ch); err != nil {
		return fmt.Errorf("failed to attach sink %s: %w", name, err)
	}

	h.sinks = append(h.sinks, sink{name: name, ch: ch, fn: fn})

	return nil
}

// AttachWithTimeout is Attach for sinks that should not lose events: delivery
// blocks for up to timeout when the sink's queue is full.
func (h *Hub) AttachWithTimeout(name string, fn Sink, timeout time.Duration) error {
	ch := make(chan session.Event, defaultSinkBuffer)
	if err := h.broadcaster.SubscribeWithTimeout(ch, timeout); err != nil {
		return fmt.Errorf("failed to attach sink %s: %w", name, err)
	}

	h.sinks = append(h.sinks, sink{name: name, ch: ch, fn: fn})

	return nil
}

// Subscribe registers a caller-owned channel. The hub never closes it.
func (h *Hub) Subscribe(ch chan<- session.Event) error {
	return h.broadcaster.Subscribe(ch)
}

// Start begins delivery and returns the channel sessions publish into. It
// is closed when ctx is done.
func (h *Hub) Start(ctx context.Context) (chan<- session.Event, error) {
	input, err := h.broadcaster.Run(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to start event hub: %w", err)
	}

	for _, s := range h.sinks {
		h.wg.Go(func() {
			for ev := range s.ch {
				s.fn(ev)
			}
		})
	}

	return input, nil
}

// Wait blocks until the hub has shut down and every sink has drained.
func (h *Hub) Wait() {
	h.broadcaster.Wait()

	for _, s := range h.sinks {
		close(s.ch)
	}
	h.wg.Wait()

	for i, st := range h.broadcaster.Stats() {
		if st.Dropped > 0 {
			h.logger.Warn("Event subscriber dropped events", "subscriber", i, "dropped", st.Dropped)
		}
	}
}

// LogSink logs each event at debug level.
func LogSink(logger *slog.Logger) Sink {
	return func(ev session.Event) {
		logger.Debug("Session event",
			"session_id", ev.SessionID,
			"kind", ev.Kind,
			"status", ev.Snapshot.Status.String(),
			"error", ev.Err,
		)
	}
}
