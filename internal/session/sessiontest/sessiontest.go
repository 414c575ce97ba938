// Package sessiontest provides a manually advanced clock and recording
// collaborators for driving sessions in tests.
package sessiontest

import (
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/alkime/blogsmith/internal/session"
)

// Clock is a session.Clock that only moves when Advance is called.
type Clock struct {
	mu     sync.Mutex
	now    time.Time
	seq    int
	timers []*timer
}

type timer struct {
	clock   *Clock
	at      time.Time
	seq     int
	fn      func()
	stopped bool
	fired   bool
}

func (t *timer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()

	if t.stopped || t.fired {
		return false
	}
	t.stopped = true

	return true
}

// NewClock returns a clock reading start.
func NewClock(start time.Time) *Clock {
	return &Clock{now: start}
}

func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.now
}

func (c *Clock) AfterFunc(d time.Duration, f func()) session.Timer {
	c.mu.Lock()
	defer c.mu.Unlock()

	if d < 0 {
		d = 0
	}

	c.seq++
	t := &timer{clock: c, at: c.now.Add(d), seq: c.seq, fn: f}
	c.timers = append(c.timers, t)

	return t
}

// Advance moves the clock forward by d, firing due timers in order on the
// calling goroutine.
func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	target := c.now.Add(d)

	for {
		next := c.nextDueLocked(target)
		if next == nil {
			break
		}

		next.fired = true
		if next.at.After(c.now) {
			c.now = next.at
		}

		c.mu.Unlock()
		next.fn()
		c.mu.Lock()
	}

	c.now = target
	c.prune()
	c.mu.Unlock()
}

func (c *Clock) nextDueLocked(target time.Time) *timer {
	due := make([]*timer, 0, len(c.timers))
	for _, t := range c.timers {
		if !t.fired && !t.stopped && !t.at.After(target) {
			due = append(due, t)
		}
	}

	if len(due) == 0 {
		return nil
	}

	sort.Slice(due, func(i, j int) bool {
		if due[i].at.Equal(due[j].at) {
			return due[i].seq < due[j].seq
		}
		return due[i].at.Before(due[j].at)
	})

	return due[0]
}

func (c *Clock) prune() {
	live := c.timers[:0]
	for _, t := range c.timers {
		if !t.fired && !t.stopped {
			live = append(live, t)
		}
	}
	c.timers = live
}

// Pending counts timers that are neither stopped nor fired.
func (c *Clock) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := 0
	for _, t := range c.timers {
		if !t.fired && !t.stopped {
			n++
		}
	}

	return n
}

// ErrUnavailable is what failing collaborators return.
var ErrUnavailable = errors.New("unavailable")

// Clipboard records writes. With Fail set every write fails.
type Clipboard struct {
	mu     sync.Mutex
	Fail   bool
	writes []string
}

func (c *Clipboard) Write(text string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.Fail {
		return ErrUnavailable
	}
	c.writes = append(c.writes, text)

	return nil
}

func (c *Clipboard) Writes() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	return append([]string(nil), c.writes...)
}

// SavedFile is one recorded FileSaver call.
type SavedFile struct {
	Filename string
	MimeType string
	Data     string
}

// Saver records saves. With Fail set every save fails.
type Saver struct {
	mu    sync.Mutex
	Fail  bool
	saved []SavedFile
}

func (s *Saver) Save(filename, mimeType string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Fail {
		return ErrUnavailable
	}
	s.saved = append(s.saved, SavedFile{Filename: filename, MimeType: mimeType, Data: string(data)})

	return nil
}

func (s *Saver) Saved() []SavedFile {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]SavedFile(nil), s.saved...)
}
