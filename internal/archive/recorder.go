package archive

import (
	"log/slog"

	"github.com/alkime/blogsmith/internal/session"
)

// Recorder archives every completed generation it is handed. It is meant
// to be attached to the event hub as a sink.
type Recorder struct {
	store  *Store
	logger *slog.Logger
}

func NewRecorder(store *Store, logger *slog.Logger) *Recorder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Recorder{store: store, logger: logger}
}

// Record stores the artifact of a completed-generation event. Other events
// are ignored. It reports whether an entry was written.
func (r *Recorder) Record(ev session.Event) (Entry, bool) {
	if ev.Kind != session.EventGenerationCompleted || ev.Snapshot.Artifact == nil {
		return Entry{}, false
	}

	a := ev.Snapshot.Artifact
	e, err := r.store.Put(Entry{
		SessionID:   ev.SessionID,
		Topic:       a.Topic,
		Tone:        a.Tone,
		Content:     a.Content,
		WordCount:   a.WordCount,
		GeneratedAt: a.GeneratedAt,
	})
	if err != nil {
		r.logger.Error("Failed to archive generation", "session_id", ev.SessionID, "error", err)
		return Entry{}, false
	}

	r.logger.Debug("Archived generation", "entry_id", e.ID, "topic", e.Topic)

	return e, true
}

