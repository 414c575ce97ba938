package channels

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"
)

// subscriber holds a channel and its send timeout configuration.
type subscriber[T any] struct {
	ch       chan<- T
	timeout  time.Duration // zero means non-blocking
	inactive atomic.Bool
	dropped  atomic.Int32
}

func (s *subscriber[T]) send(msg T) {
	if s.inactive.Load() {
		s.dropped.Add(1)
		return
	}

	var err error
	if s.timeout > 0 {
		err = SendWithTimeout(s.ch, msg, s.timeout)
	} else {
		err = SendNonBlock(s.ch, msg)
	}

	if err != nil {
		// closed channels go inactive; full or slow ones just drop
		s.dropped.Add(1)
		if errors.Is(err, ErrChannelClosed) {
			s.inactive.Store(true)
		}
	}
}

// Broadcaster copies every message sent to its input channel to each subscriber.
//
// Delivery per subscriber is either non-blocking (dropped when the subscriber is
// full) or bounded by a send timeout. On context cancellation the input channel
// is closed and whatever is still buffered is delivered before shutdown completes.
type Broadcaster[T any] struct {
	subscribers []*subscriber[T]
	inputSize   int
	input       chan T
	started     atomic.Bool
	wg          sync.WaitGroup
}

// NewBroadcaster creates an empty Broadcaster whose input buffer holds 16
// messages per subscriber.
func NewBroadcaster[T any]() *Broadcaster[T] {
	return &Broadcaster[T]{}
}

// NewBufferedBroadcaster creates an empty Broadcaster whose input buffer holds
// size messages regardless of how many subscribers join. A size of zero or
// less falls back to the NewBroadcaster sizing.
func NewBufferedBroadcaster[T any](size int) *Broadcaster[T] {
	return &Broadcaster[T]{inputSize: size}
}

// Subscribe adds a non-blocking subscriber.
// Must be called before Run. Not safe for concurrent use with Run.
func (b *Broadcaster[T]) Subscribe(ch chan<- T) error {
	if ch == nil {
		return ErrNilChannel
	}

	b.subscribers = append(b.subscribers, &subscriber[T]{ch: ch})

	return nil
}

// SubscribeWithTimeout adds a subscriber that may block each send for up to timeout.
// Must be called before Run. Not safe for concurrent use with Run.
func (b *Broadcaster[T]) SubscribeWithTimeout(ch chan<- T, timeout time.Duration) error {
	if ch == nil {
		return ErrNilChannel
	}

	if timeout <= 0 {
		return ErrBadTimeout
	}

	b.subscribers = append(b.subscribers, &subscriber[T]{ch: ch, timeout: timeout})

	return nil
}

// Run starts delivery and returns the input channel. The channel is owned by
// the Broadcaster and closed when ctx is cancelled.
func (b *Broadcaster[T]) Run(ctx context.Context) (chan<- T, error) {
	if len(b.subscribers) == 0 {
		return nil, errors.New("no subscribers available")
	}

	if !b.started.CompareAndSwap(false, true) {
		return nil, errors.New("broadcaster already started")
	}

	size := b.inputSize
	if size <= 0 {
		size = len(b.subscribers) * 16
	}
	b.input = make(chan T, size)

	b.wg.Go(func() {
		for msg := range b.input {
			for _, sub := range b.subscribers {
				sub.send(msg)
			}
		}
	})

	go func() {
		<-ctx.Done()
		close(b.input)
	}()

	return b.input, nil
}

// Wait blocks until the input channel has been closed and drained.
func (b *Broadcaster[T]) Wait() {
	b.wg.Wait()
}

// SubscriberStats reports delivery health for one subscriber.
type SubscriberStats struct {
	Dropped  int
	Inactive bool
}

// Stats returns per-subscriber stats in subscription order.
func (b *Broadcaster[T]) Stats() []SubscriberStats {
	stats := make([]SubscriberStats, 0, len(b.subscribers))
	for _, sub := range b.subscribers {
		stats = append(stats, SubscriberStats{
			Dropped:  int(sub.dropped.Load()),
			Inactive: sub.inactive.Load(),
		})
	}

	return stats
}
