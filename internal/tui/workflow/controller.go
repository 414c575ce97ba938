package workflow

import (
	"time"

	"github.com/alkime/blogsmith/internal/session"
	"github.com/alkime/blogsmith/internal/tone"
	"github.com/alkime/blogsmith/pkg/uictl"
)

// Phase names, shared with the root model that routes between them.
const (
	PhaseCompose    = "Compose"
	PhaseGenerating = "Generating"
	PhaseResult     = "Result"
)

// Controller is the slice of a session the phases drive.
type Controller interface {
	ID() string
	Latency() time.Duration
	RequestGeneration(topic string, t tone.Tone) error
	CopyToClipboard() error
	DownloadAsFile() (session.Download, error)
	Reset()
	Snapshot() session.Snapshot
	CopiedLamp() uictl.Lamp
	ClipboardCountdown() uictl.CappedDial[int64]
}

// PhaseFor names the phase that presents status.
func PhaseFor(status session.Status) string {
	switch status {
	case session.StatusGenerating:
		return PhaseGenerating
	case session.StatusReady:
		return PhaseResult
	default:
		return PhaseCompose
	}
}
