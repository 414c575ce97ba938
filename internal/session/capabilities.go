package session

import (
	"context"
	"time"

	"github.com/alkime/blogsmith/internal/content"
	"github.com/alkime/blogsmith/internal/tone"
)

// Composer produces post content once the latency window has elapsed.
type Composer interface {
	Compose(ctx context.Context, topic string, t tone.Tone) (content.Composed, error)
}

// Clipboard writes text to a clipboard.
type Clipboard interface {
	Write(text string) error
}

// FileSaver hands a download to the host (a browser, a directory, ...).
type FileSaver interface {
	Save(filename, mimeType string, data []byte) error
}

// Timer is a pending continuation scheduled by a Clock.
type Timer interface {
	Stop() bool
}

// Clock schedules the session's timed continuations.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
}

// SystemClock is the wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

func (SystemClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}
