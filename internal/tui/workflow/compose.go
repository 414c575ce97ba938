package workflow

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alkime/blogsmith/internal/session"
	"github.com/alkime/blogsmith/internal/tone"
	"github.com/alkime/blogsmith/internal/tui/style"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	topicPlaceholder = "Enter your blog topic..."
	emptyTopicNotice = "Please enter a blog topic"
)

// composePhase is the topic and tone form.
type composePhase struct {
	ctrl  Controller
	keys  composeKeyMap
	input textinput.Model
	tone  tone.Tone
	err   string
}

// NewCompose creates the form, pre-filled with topic and t.
func NewCompose(ctrl Controller, topic string, t tone.Tone) tea.Model {
	ti := textinput.New()
	ti.Placeholder = topicPlaceholder
	ti.CharLimit = session.MaxTopicLength
	ti.Width = 50
	ti.Prompt = "> "
	ti.SetValue(topic)

	if !t.Valid() {
		t = tone.Default()
	}

	return &composePhase{
		ctrl:  ctrl,
		keys:  defaultComposeKeyMap(),
		input: ti,
		tone:  t,
	}
}

func (p *composePhase) Init() tea.Cmd {
	return tea.Batch(p.input.Focus(), textinput.Blink)
}

func (p *composePhase) Update(teaMsg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := teaMsg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, p.keys.Generate):
			p.generate()
			return p, nil
		case key.Matches(msg, p.keys.NextTone):
			p.tone = p.tone.Next()
			return p, nil
		case key.Matches(msg, p.keys.PrevTone):
			p.tone = p.tone.Prev()
			return p, nil
		}
		p.err = ""

	case SessionEventMsg:
		switch msg.Event.Kind {
		case session.EventReset:
			p.input.SetValue("")
			p.tone = msg.Event.Snapshot.Tone
			p.err = ""
		case session.EventGenerationFailed:
			p.err = "Generation failed: " + msg.Event.Err
		}
		return p, nil
	}

	var cmd tea.Cmd
	p.input, cmd = p.input.Update(teaMsg)

	return p, cmd
}

func (p *composePhase) generate() {
	err := p.ctrl.RequestGeneration(p.input.Value(), p.tone)
	if err == nil {
		p.err = ""
		return
	}

	var ve *session.ValidationError
	switch {
	case errors.As(err, &ve) && ve.Field == "topic":
		p.err = emptyTopicNotice
	default:
		p.err = err.Error()
	}
}

func (p *composePhase) topicBlank() bool {
	return strings.TrimSpace(p.input.Value()) == ""
}

func (p *composePhase) View() string {
	var sb strings.Builder

	sb.WriteString(style.Title.Render("Create a Blog Post"))
	sb.WriteString("\n")
	sb.WriteString(style.Subtitle.Render("Pick a topic and a tone, then generate a draft."))
	sb.WriteString("\n\n")

	sb.WriteString(style.Label.Render("Topic"))
	sb.WriteString("\n")
	sb.WriteString(p.input.View())
	sb.WriteString("\n\n")

	sb.WriteString(style.Label.Render("Tone"))
	sb.WriteString("\n")
	for _, t := range tone.All() {
		line := fmt.Sprintf("%-13s %s", t.Label(), style.Muted.Render(t.Description()))
		if t == p.tone {
			sb.WriteString(style.Selected.Render("› " + line))
		} else {
			sb.WriteString("  " + line)
		}
		sb.WriteString("\n")
	}
	sb.WriteString("\n")

	if p.err != "" {
		sb.WriteString(style.Error.Render(p.err))
		sb.WriteString("\n\n")
	}

	if p.topicBlank() {
		sb.WriteString(style.Muted.Render("Type a topic to enable generation"))
		sb.WriteString("\n")
	}
	sb.WriteString(renderKeyHelp(p.keys.Generate, " "))
	sb.WriteString(renderKeyHelp(p.keys.NextTone, " "))
	sb.WriteString(renderKeyHelp(p.keys.PrevTone, "\n"))
	sb.WriteString(renderGlobalKeyHelp())

	return sb.String()
}
