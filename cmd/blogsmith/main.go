package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	"github.com/alkime/blogsmith/internal/archive"
	"github.com/alkime/blogsmith/internal/clipboard"
	"github.com/alkime/blogsmith/internal/hub"
	"github.com/alkime/blogsmith/internal/logger"
	"github.com/alkime/blogsmith/internal/mcpserver"
	"github.com/alkime/blogsmith/internal/metrics"
	"github.com/alkime/blogsmith/internal/session"
	"github.com/alkime/blogsmith/internal/tone"
	"github.com/alkime/blogsmith/internal/tui"
	"github.com/alkime/blogsmith/internal/workdir"
	tea "github.com/charmbracelet/bubbletea"
)

var version = "dev"

// CLI defines the blogsmith command structure.
type CLI struct {
	LogLevel string `flag:"" env:"LOG_LEVEL" default:"warn" help:"Log level (debug, info, warn, error)"`

	// Default TUI command (runs when no subcommand given)
	TUI TUICmd `cmd:"" default:"withargs" help:"Launch the interactive composer"`

	Compose ComposeCmd `cmd:"" help:"Compose a post and print it"`
	Tones   TonesCmd   `cmd:"" help:"List available tones"`
	History HistoryCmd `cmd:"" help:"Show recently generated posts"`
	MCP     MCPCmd     `cmd:"" name:"mcp" help:"Serve composer tools over MCP stdio"`
}

// ArchiveFlags selects the archive location shared by several commands.
type ArchiveFlags struct {
	ArchiveDir string `flag:"" env:"BLOGSMITH_ARCHIVE_DIR" help:"Archive directory (default: ~/Documents/Alkime/Blogsmith/archive)"`
}

func (a ArchiveFlags) open() (*archive.Store, error) {
	dir := a.ArchiveDir
	if dir == "" {
		var err error
		if dir, err = workdir.ArchiveDir(); err != nil {
			return nil, err
		}
	}

	if err := workdir.Prep(dir); err != nil {
		return nil, err
	}

	return archive.Open(dir)
}

// TUICmd is the default command that runs the TUI.
type TUICmd struct {
	ArchiveFlags `embed:""`

	Topic           string        `flag:"" optional:"" help:"Pre-fill the topic"`
	Tone            tone.Tone     `flag:"" default:"casual" help:"Pre-select a tone"`
	Latency         time.Duration `flag:"" default:"2s" help:"Simulated generation latency"`
	ClipboardWindow time.Duration `flag:"" default:"2s" help:"How long the copied notice stays up"`
	OutputDir       string        `flag:"" env:"BLOGSMITH_OUTPUT_DIR" help:"Where downloads are saved (default: ~/Documents/Alkime/Blogsmith/posts)"`
	NoArchive       bool          `flag:"" help:"Do not record generated posts"`
}

// Run executes the TUI command.
//
//nolint:funlen // CLI command with multiple setup steps
func (c *TUICmd) Run(log *slog.Logger) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	saver, err := workdir.NewSaver(c.OutputDir)
	if err != nil {
		return fmt.Errorf("failed to resolve output directory: %w", err)
	}

	h := hub.New(log)

	if !c.NoArchive {
		store, err := c.open()
		if err != nil {
			return fmt.Errorf("failed to open archive: %w", err)
		}
		defer func() {
			if err := store.Close(); err != nil {
				log.Error("Failed to close archive", "error", err)
			}
		}()

		recorder := archive.NewRecorder(store, log)
		if err := h.AttachWithTimeout("archive", func(ev session.Event) { recorder.Record(ev) }, time.Second); err != nil {
			return err
		}
	}

	if err := h.Attach("metrics", metrics.Observe); err != nil {
		return err
	}
	if err := h.Attach("log", hub.LogSink(log)); err != nil {
		return err
	}

	uiEvents := make(chan session.Event, 16)
	if err := h.Subscribe(uiEvents); err != nil {
		return err
	}

	input, err := h.Start(ctx)
	if err != nil {
		return err
	}

	// the program owns stdout, so copies go through it
	cb := &clipboard.Pending{}
	sess := session.New(session.Config{
		Latency:         c.Latency,
		ClipboardWindow: c.ClipboardWindow,
		Clipboard:       cb,
		FileSaver:       saver,
		Events:          input,
		Logger:          log,
	})

	p := tea.NewProgram(tui.New(tui.Config{
		Session:   sess,
		Events:    uiEvents,
		Topic:     c.Topic,
		Tone:      c.Tone,
		Cancel:    cancel,
		SavedPath: saver.Path,
		Clipboard: cb,
	}))

	_, runErr := p.Run()

	sess.Close()
	cancel()
	h.Wait()

	if runErr != nil {
		return fmt.Errorf("failed to run TUI: %w", runErr)
	}

	fmt.Printf("\nPosts are saved to %s. bye!\n", saver.Dir)

	return nil
}

// ComposeCmd composes one post without the TUI.
type ComposeCmd struct {
	ArchiveFlags `embed:""`

	Topic     string        `arg:"" help:"Blog topic"`
	Tone      tone.Tone     `flag:"" default:"casual" help:"Tone id (see 'blogsmith tones')"`
	Latency   time.Duration `flag:"" default:"-1ns" help:"Simulated generation latency (negative completes at once, 0 uses the 2s default)"`
	Copy      bool          `flag:"" help:"Copy the post to the terminal clipboard"`
	Save      bool          `flag:"" help:"Save the post as a text file"`
	OutputDir string        `flag:"" env:"BLOGSMITH_OUTPUT_DIR" help:"Where --save writes (default: ~/Documents/Alkime/Blogsmith/posts)"`
	NoArchive bool          `flag:"" help:"Do not record the post"`
}

// Run executes the compose command.
func (c *ComposeCmd) Run(log *slog.Logger) error {
	saver, err := workdir.NewSaver(c.OutputDir)
	if err != nil {
		return fmt.Errorf("failed to resolve output directory: %w", err)
	}

	events := make(chan session.Event, 8)
	sess := session.New(session.Config{
		Latency:   c.Latency,
		Clipboard: clipboard.NewTerminal(os.Stdout),
		FileSaver: saver,
		Events:    events,
		Logger:    log,
	})
	defer sess.Close()

	if err := sess.RequestGeneration(c.Topic, c.Tone); err != nil {
		return err
	}

	ev, err := waitFor(events, sess.Latency()+5*time.Second,
		session.EventGenerationCompleted, session.EventGenerationFailed)
	if err != nil {
		return err
	}
	if ev.Kind == session.EventGenerationFailed {
		return fmt.Errorf("generation failed: %s", ev.Err)
	}

	snap := sess.Snapshot()
	fmt.Println(snap.Artifact.Content)

	if !c.NoArchive {
		c.record(log, ev)
	}

	if c.Copy {
		if err := sess.CopyToClipboard(); err != nil {
			return err
		}
	}

	if c.Save {
		dl, err := sess.DownloadAsFile()
		if err != nil {
			return err
		}

		// the session only logs save failures; report them here
		path, err := saver.Path(dl.Filename)
		if err != nil {
			return err
		}
		if _, err := os.Stat(path); err != nil {
			return fmt.Errorf("failed to save %s: %w", dl.Filename, err)
		}
		fmt.Fprintf(os.Stderr, "saved %s\n", path)
	}

	return nil
}

func (c *ComposeCmd) record(log *slog.Logger, ev session.Event) {
	store, err := c.open()
	if err != nil {
		log.Warn("Archive unavailable, post not recorded", "error", err)
		return
	}
	defer store.Close()

	archive.NewRecorder(store, log).Record(ev)
}

var errTimeout = errors.New("timed out waiting for generation")

func waitFor(events <-chan session.Event, timeout time.Duration, kinds ...session.EventKind) (session.Event, error) {
	deadline := time.After(timeout)

	for {
		select {
		case ev := <-events:
			for _, k := range kinds {
				if ev.Kind == k {
					return ev, nil
				}
			}
		case <-deadline:
			return session.Event{}, errTimeout
		}
	}
}

// TonesCmd lists the tone catalog.
type TonesCmd struct{}

// Run executes the tones command.
//
//nolint:unparam // error return required by Kong interface
func (t *TonesCmd) Run() error {
	for _, tn := range tone.All() {
		marker := " "
		if tn == tone.Default() {
			marker = "*"
		}
		fmt.Printf("%s %-13s %s\n", marker, tn.String(), tn.Description())
	}

	return nil
}

// HistoryCmd prints recently archived posts.
type HistoryCmd struct {
	ArchiveFlags `embed:""`

	Limit int      `flag:"" default:"10" help:"Maximum entries to show"`
	Tone  []string `flag:"" help:"Only show these tones"`
}

// Run executes the history command.
func (h *HistoryCmd) Run() error {
	tones := make([]tone.Tone, 0, len(h.Tone))
	for _, id := range h.Tone {
		t, err := tone.Parse(id)
		if err != nil {
			return err
		}
		tones = append(tones, t)
	}

	store, err := h.open()
	if err != nil {
		return fmt.Errorf("failed to open archive: %w", err)
	}
	defer store.Close()

	entries, err := store.List(h.Limit, tones...)
	if err != nil {
		return err
	}

	if len(entries) == 0 {
		fmt.Println("No posts yet.")
		return nil
	}

	for _, e := range entries {
		fmt.Printf("%s  %-12s %4d words  %s\n",
			e.GeneratedAt.Local().Format(time.DateTime),
			e.Tone.Label(),
			e.WordCount,
			strings.TrimSpace(e.Topic),
		)
	}

	return nil
}

// MCPCmd serves the composer as MCP tools over stdio.
type MCPCmd struct {
	ArchiveFlags `embed:""`

	NoArchive bool `flag:"" help:"Do not record composed posts"`
}

// Run executes the mcp command.
func (m *MCPCmd) Run(log *slog.Logger) error {
	var store *archive.Store
	if !m.NoArchive {
		var err error
		if store, err = m.open(); err != nil {
			return fmt.Errorf("failed to open archive: %w", err)
		}
		defer store.Close()
	}

	return mcpserver.New(version, store, log).Serve()
}

func main() {
	cli := &CLI{} //nolint:exhaustruct // Kong fills in command fields
	ctx := kong.Parse(cli,
		kong.Name("blogsmith"),
		kong.Description("Compose tone-based blog posts."),
		kong.UsageOnError(),
	)

	// stdout belongs to the TUI and MCP stdio
	log := logger.SetupCLILogger(os.Stderr, cli.LogLevel)

	err := ctx.Run(log)
	ctx.FatalIfErrorf(err)
	os.Exit(0)
}
