package session

import "time"

// EventKind names a session transition.
type EventKind string

const (
	EventGenerationStarted   EventKind = "generation-started"
	EventGenerationCompleted EventKind = "generation-completed"
	EventGenerationFailed    EventKind = "generation-failed"
	EventGenerationDiscarded EventKind = "generation-discarded"
	EventCopied              EventKind = "copied"
	EventCopyExpired         EventKind = "copy-expired"
	EventDownloaded          EventKind = "downloaded"
	EventReset               EventKind = "reset"
)

// Outcome reports whether k ends a generation. Outcome events feed the
// archive and metrics, so publishers wait briefly for room rather than drop
// them.
func (k EventKind) Outcome() bool {
	return k == EventGenerationCompleted || k == EventGenerationFailed
}

// Event is published after every state change. Snapshot is the state right
// after the change.
type Event struct {
	SessionID string    `json:"sessionId"`
	Kind      EventKind `json:"kind"`
	Snapshot  Snapshot  `json:"snapshot"`
	At        time.Time `json:"at"`
	Err       string    `json:"error,omitempty"`
}
