// Package session holds the generation state machine behind every composer
// surface. A Session moves Idle -> Generating -> Ready, with a simulated
// generation latency, a transient "copied" flag and a reset back to Idle.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/alkime/blogsmith/internal/content"
	"github.com/alkime/blogsmith/internal/tone"
	"github.com/alkime/blogsmith/pkg/channels"
	"github.com/alkime/blogsmith/pkg/uictl"
	"github.com/google/uuid"
)

const (
	// DefaultLatency is how long a generation takes to complete.
	DefaultLatency = 2000 * time.Millisecond
	// DefaultClipboardWindow is how long the copied flag stays up.
	DefaultClipboardWindow = 2000 * time.Millisecond
	// MaxTopicLength is the longest topic, in characters, a session accepts.
	MaxTopicLength = 200
	// DefaultEventTimeout bounds how long a completion or failure event may
	// wait for room on the events channel.
	DefaultEventTimeout = time.Second
)

// Status is the lifecycle position of a session.
type Status int

const (
	StatusIdle Status = iota
	StatusGenerating
	StatusReady
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusGenerating:
		return "generating"
	case StatusReady:
		return "ready"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Artifact is a completed post.
type Artifact struct {
	Topic       string    `json:"topic"`
	Tone        tone.Tone `json:"tone"`
	Content     string    `json:"content"`
	WordCount   int       `json:"wordCount"`
	GeneratedAt time.Time `json:"generatedAt"`
}

// Snapshot is a point-in-time copy of a session's observable state.
type Snapshot struct {
	ID       string    `json:"id"`
	Status   Status    `json:"status"`
	Topic    string    `json:"topic"`
	Tone     tone.Tone `json:"tone"`
	Artifact *Artifact `json:"artifact,omitempty"`
	Copied   bool      `json:"copied"`
}

// Config wires a session to its collaborators. Zero values pick defaults.
type Config struct {
	// ID defaults to a random UUID.
	ID string
	// Latency of a generation. Zero selects DefaultLatency; a negative value
	// completes as soon as the clock allows.
	Latency time.Duration
	// ClipboardWindow is how long Copied stays true. Zero selects
	// DefaultClipboardWindow.
	ClipboardWindow time.Duration

	Composer  Composer
	Clipboard Clipboard
	FileSaver FileSaver
	Clock     Clock

	// Events receives a notification after each transition. Completion and
	// failure events wait up to EventTimeout for room; the rest are dropped
	// when the channel is full.
	Events chan<- Event
	// EventTimeout of zero selects DefaultEventTimeout. A negative value
	// makes every event non-blocking.
	EventTimeout time.Duration
	Logger       *slog.Logger
}

// Session is one user's composer state. It is safe for concurrent use.
type Session struct {
	id        string
	latency   time.Duration
	window    time.Duration
	composer  Composer
	clipboard Clipboard
	saver     FileSaver
	clock     Clock
	events    chan<- Event
	eventWait time.Duration
	logger    *slog.Logger

	mu       sync.Mutex
	status   Status
	topic    string
	tone     tone.Tone
	artifact *Artifact
	closed   bool

	// genToken identifies the one completion allowed to land.
	genToken  uint64
	genTimer  Timer
	genCancel context.CancelFunc

	copied    bool
	copiedAt  time.Time
	clipToken uint64
	clipTimer Timer
}

// New returns an Idle session with the default tone selected.
func New(cfg Config) *Session {
	s := &Session{
		id:        cfg.ID,
		latency:   cfg.Latency,
		window:    cfg.ClipboardWindow,
		composer:  cfg.Composer,
		clipboard: cfg.Clipboard,
		saver:     cfg.FileSaver,
		clock:     cfg.Clock,
		events:    cfg.Events,
		eventWait: cfg.EventTimeout,
		logger:    cfg.Logger,
		status:    StatusIdle,
		tone:      tone.Default(),
	}

	if s.id == "" {
		s.id = uuid.NewString()
	}
	if s.latency == 0 {
		s.latency = DefaultLatency
	}
	if s.eventWait == 0 {
		s.eventWait = DefaultEventTimeout
	}
	if s.window <= 0 {
		s.window = DefaultClipboardWindow
	}
	if s.composer == nil {
		s.composer = content.NewTemplateComposer()
	}
	if s.clock == nil {
		s.clock = SystemClock{}
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	s.logger = s.logger.With("session_id", s.id)

	return s
}

func (s *Session) ID() string { return s.id }

// Latency reports the configured generation latency.
func (s *Session) Latency() time.Duration { return s.latency }

// ValidateTopic rejects blank topics and topics longer than MaxTopicLength
// with a *ValidationError.
func ValidateTopic(topic string) error {
	if strings.TrimSpace(topic) == "" {
		return &ValidationError{Field: "topic", Reason: "please enter a blog topic"}
	}
	if utf8.RuneCountInString(topic) > MaxTopicLength {
		return &ValidationError{Field: "topic", Reason: fmt.Sprintf("topic is longer than %d characters", MaxTopicLength)}
	}

	return nil
}

// RequestGeneration starts generating a post about topic in tone t. Invalid
// topics and unknown tones are rejected with a *ValidationError. A request
// made while a generation is running is ignored.
func (s *Session) RequestGeneration(topic string, t tone.Tone) error {
	if err := ValidateTopic(topic); err != nil {
		return err
	}
	if !t.Valid() {
		return &ValidationError{Field: "tone", Reason: fmt.Sprintf("unknown tone %d", int(t))}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}

	if s.status == StatusGenerating {
		s.logger.Debug("Generation already running, request ignored", "topic", topic)
		return nil
	}

	s.clearCopiedLocked()
	s.status = StatusGenerating
	s.topic = topic
	s.tone = t

	s.genToken++
	token := s.genToken

	ctx, cancel := context.WithCancel(context.Background())
	s.genCancel = cancel
	s.genTimer = s.clock.AfterFunc(s.latency, func() {
		s.complete(ctx, token, topic, t)
	})

	s.logger.Info("Generation started", "topic", topic, "tone", t.String(), "latency", s.latency)
	s.publishLocked(EventGenerationStarted, nil)

	return nil
}

func (s *Session) complete(ctx context.Context, token uint64, topic string, t tone.Tone) {
	composed, err := s.composer.Compose(ctx, topic, t)

	s.mu.Lock()
	defer s.mu.Unlock()

	if token != s.genToken || s.status != StatusGenerating {
		s.logger.Debug("Stale generation discarded", "topic", topic)
		s.publishLocked(EventGenerationDiscarded, nil)

		return
	}

	s.genTimer = nil
	if s.genCancel != nil {
		s.genCancel()
		s.genCancel = nil
	}

	if err != nil {
		// Topic and tone were validated when the request was accepted.
		if errors.Is(err, content.ErrEmptyTopic) || errors.Is(err, content.ErrUnknownTone) {
			panic(fmt.Sprintf("session %s: composer rejected validated input: %v", s.id, err))
		}

		s.status = StatusIdle
		if s.artifact != nil {
			s.status = StatusReady
		}

		s.logger.Warn("Generation failed", "topic", topic, "error", err)
		s.publishLocked(EventGenerationFailed, err)

		return
	}

	s.artifact = &Artifact{
		Topic:       topic,
		Tone:        t,
		Content:     composed.Content,
		WordCount:   composed.WordCount,
		GeneratedAt: s.clock.Now(),
	}
	s.status = StatusReady

	s.logger.Info("Generation completed", "topic", topic, "tone", t.String(), "words", composed.WordCount)
	s.publishLocked(EventGenerationCompleted, nil)
}

// CopyToClipboard writes the artifact to the clipboard and raises the copied
// flag for the clipboard window. Copying again restarts the window. A failed
// clipboard write is logged and leaves the state alone.
func (s *Session) CopyToClipboard() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}
	if s.status != StatusReady || s.artifact == nil {
		return ErrNotReady
	}

	if s.clipboard != nil {
		if err := s.clipboard.Write(s.artifact.Content); err != nil {
			s.logger.Warn("Clipboard write failed", "error", err)
			return nil
		}
	}

	s.clearCopiedLocked()
	s.copied = true
	s.copiedAt = s.clock.Now()

	token := s.clipToken
	s.clipTimer = s.clock.AfterFunc(s.window, func() {
		s.expireCopied(token)
	})

	s.publishLocked(EventCopied, nil)

	return nil
}

func (s *Session) expireCopied(token uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if token != s.clipToken || !s.copied {
		return
	}

	s.copied = false
	s.clipTimer = nil
	s.publishLocked(EventCopyExpired, nil)
}

// clearCopiedLocked drops the copied flag and invalidates its pending expiry.
func (s *Session) clearCopiedLocked() {
	if s.clipTimer != nil {
		s.clipTimer.Stop()
		s.clipTimer = nil
	}

	s.clipToken++
	s.copied = false
}

// DownloadAsFile returns the artifact as a plain-text download and hands it to
// the configured FileSaver. Save failures are logged, not returned.
func (s *Session) DownloadAsFile() (Download, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return Download{}, ErrClosed
	}
	if s.status != StatusReady || s.artifact == nil {
		return Download{}, ErrNotReady
	}

	d := Download{
		Filename: DownloadFilename(s.artifact.Topic),
		MimeType: MimeTypeText,
		Data:     []byte(s.artifact.Content),
	}

	if s.saver != nil {
		if err := s.saver.Save(d.Filename, d.MimeType, d.Data); err != nil {
			s.logger.Warn("Saving download failed", "filename", d.Filename, "error", err)
		}
	}

	s.publishLocked(EventDownloaded, nil)

	return d, nil
}

// Reset returns the session to Idle with an empty topic and the default
// tone. A generation in flight is abandoned.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}

	s.abandonGenerationLocked()
	s.clearCopiedLocked()

	s.status = StatusIdle
	s.topic = ""
	s.tone = tone.Default()
	s.artifact = nil

	s.logger.Info("Session reset")
	s.publishLocked(EventReset, nil)
}

func (s *Session) abandonGenerationLocked() {
	if s.genTimer != nil {
		s.genTimer.Stop()
		s.genTimer = nil
	}
	if s.genCancel != nil {
		s.genCancel()
		s.genCancel = nil
	}

	s.genToken++
}

// Close stops pending timers. Further operations return ErrClosed.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}

	s.abandonGenerationLocked()
	s.clearCopiedLocked()
	s.closed = true
}

// Snapshot returns the current observable state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.snapshotLocked()
}

func (s *Session) snapshotLocked() Snapshot {
	snap := Snapshot{
		ID:     s.id,
		Status: s.status,
		Topic:  s.topic,
		Tone:   s.tone,
		Copied: s.copied,
	}

	if s.artifact != nil {
		a := *s.artifact
		snap.Artifact = &a
	}

	return snap
}

func (s *Session) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.status
}

// CopiedLamp is lit while the copied flag is up.
func (s *Session) CopiedLamp() uictl.Lamp {
	return uictl.LampFunc(func() bool {
		s.mu.Lock()
		defer s.mu.Unlock()

		return s.copied
	})
}

// ClipboardCountdown reads the milliseconds left on the copied flag, capped
// by the clipboard window.
func (s *Session) ClipboardCountdown() uictl.CappedDial[int64] {
	return uictl.CappedDialFunc[int64](func() (int64, int64) {
		s.mu.Lock()
		defer s.mu.Unlock()

		windowMS := s.window.Milliseconds()
		if !s.copied {
			return 0, windowMS
		}

		left := s.window - s.clock.Now().Sub(s.copiedAt)
		if left < 0 {
			left = 0
		}

		return left.Milliseconds(), windowMS
	})
}

func (s *Session) publishLocked(kind EventKind, cause error) {
	if s.events == nil {
		return
	}

	ev := Event{
		SessionID: s.id,
		Kind:      kind,
		Snapshot:  s.snapshotLocked(),
		At:        s.clock.Now(),
	}
	if cause != nil {
		ev.Err = cause.Error()
	}

	var err error
	if kind.Outcome() && s.eventWait > 0 {
		err = channels.SendWithTimeout(s.events, ev, s.eventWait)
	} else {
		err = channels.SendNonBlock(s.events, ev)
	}

	if err != nil {
		level := slog.LevelDebug
		if kind.Outcome() {
			level = slog.LevelWarn
		}
		s.logger.Log(context.Background(), level, "Session event dropped", "kind", kind, "error", err)
	}
}
