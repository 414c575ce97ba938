package workflow

import (
	"fmt"
	"strings"

	"github.com/alkime/blogsmith/internal/tui/components/labeledspinner"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// generatingPhase shows progress while the session composes.
type generatingPhase struct {
	ctrl    Controller
	keys    generatingKeyMap
	spinner labeledspinner.Model
}

func NewGenerating(ctrl Controller) tea.Model {
	return &generatingPhase{
		ctrl:    ctrl,
		keys:    defaultGeneratingKeyMap(),
		spinner: labeledspinner.New(spinner.Dot, "Generating your blog post", "", ""),
	}
}

func (p *generatingPhase) Init() tea.Cmd {
	snap := p.ctrl.Snapshot()
	p.spinner.Subtitle = fmt.Sprintf("Writing about %q in a %s tone...",
		snap.Topic, strings.ToLower(snap.Tone.Label()))

	return p.spinner.Init()
}

func (p *generatingPhase) Update(teaMsg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := teaMsg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, p.keys.Cancel) {
			p.ctrl.Reset()
		}
		return p, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		p.spinner, cmd = p.spinner.Update(msg)
		return p, cmd
	}

	return p, nil
}

func (p *generatingPhase) View() string {
	help := renderKeyHelp(p.keys.Cancel, "\n") + renderGlobalKeyHelp()
	return p.spinner.ViewWithHelp(help)
}
