// Package tui is the interactive composer: a form, a progress view and a
// result view, switched as the session changes state.
package tui

import (
	"context"
	"strings"

	"github.com/alkime/blogsmith/internal/clipboard"
	"github.com/alkime/blogsmith/internal/session"
	"github.com/alkime/blogsmith/internal/tone"
	"github.com/alkime/blogsmith/internal/tui/components/phases"
	"github.com/alkime/blogsmith/internal/tui/style"
	"github.com/alkime/blogsmith/internal/tui/workflow"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Config wires the TUI to a session.
type Config struct {
	Session workflow.Controller
	// Events must carry the session's events.
	Events <-chan session.Event
	// Topic and Tone pre-fill the form.
	Topic string
	Tone  tone.Tone
	// Cancel is called when the user quits.
	Cancel context.CancelFunc
	// SavedPath reports where downloads land. Optional.
	SavedPath workflow.SaveLocator
	// Clipboard is flushed through the program after every update. Give the
	// session the same value.
	Clipboard *clipboard.Pending
}

type model struct {
	config       Config
	keys         workflow.GlobalKeyMap
	phases       phases.Model
	windowWidth  int
	windowHeight int
}

// New creates the root model.
func New(cfg Config) tea.Model {
	return &model{
		config: cfg,
		keys:   workflow.DefaultGlobalKeyMap(),
		phases: phases.New([]phases.Phase{
			phases.NewPhase(workflow.PhaseCompose, workflow.NewCompose(cfg.Session, cfg.Topic, cfg.Tone)),
			phases.NewPhase(workflow.PhaseGenerating, workflow.NewGenerating(cfg.Session)),
			phases.NewPhase(workflow.PhaseResult, workflow.NewResult(cfg.Session, cfg.SavedPath)),
		}),
		windowWidth:  80,
		windowHeight: 24,
	}
}

func (m *model) Init() tea.Cmd {
	return tea.Batch(
		m.phases.Init(),
		workflow.WaitForEvent(m.config.Events),
	)
}

func (m *model) Update(teaMsg tea.Msg) (tea.Model, tea.Cmd) {
	cmd := m.update(teaMsg)

	if m.config.Clipboard != nil {
		if flush := m.config.Clipboard.Flush(); flush != nil {
			cmd = tea.Batch(flush, cmd)
		}
	}

	return m, cmd
}

func (m *model) update(teaMsg tea.Msg) tea.Cmd {
	switch msg := teaMsg.(type) {
	case tea.WindowSizeMsg:
		m.windowWidth = msg.Width
		m.windowHeight = msg.Height

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			if m.config.Cancel != nil {
				m.config.Cancel()
			}
			return tea.Quit
		}

	case workflow.SessionEventMsg:
		return m.handleSessionEvent(msg)
	}

	return m.updatePhases(teaMsg)
}

// handleSessionEvent moves to the phase matching the session status, then
// lets that phase see the event.
func (m *model) handleSessionEvent(msg workflow.SessionEventMsg) tea.Cmd {
	cmds := []tea.Cmd{workflow.WaitForEvent(m.config.Events)}

	if msg.Event.SessionID != m.config.Session.ID() {
		return tea.Batch(cmds...)
	}

	target := workflow.PhaseFor(msg.Event.Snapshot.Status)
	if target != m.phases.CurrentPhaseName() {
		cmds = append(cmds,
			m.updatePhases(phases.GotoPhaseMsg{Name: target}),
			m.updatePhases(tea.WindowSizeMsg{Width: m.windowWidth, Height: m.windowHeight}),
		)
	}
	cmds = append(cmds, m.updatePhases(msg))

	return tea.Batch(cmds...)
}

func (m *model) updatePhases(teaMsg tea.Msg) tea.Cmd {
	updated, cmd := m.phases.Update(teaMsg)
	m.phases = updated.(phases.Model) //nolint:forcetypeassert // phases.Model always returns phases.Model

	return cmd
}

func (m *model) View() string {
	var sb strings.Builder

	sb.WriteString(style.Brand.Render("Blogsmith"))
	sb.WriteString(style.Subtitle.Render(" · " + m.phases.CurrentPhaseName()))
	sb.WriteString("\n\n")
	sb.WriteString(m.phases.View())

	return sb.String()
}

// CurrentPhase reports the visible phase, for tests and callers holding
// the final model.
func CurrentPhase(mdl tea.Model) string {
	if m, ok := mdl.(*model); ok {
		return m.phases.CurrentPhaseName()
	}
	return ""
}
