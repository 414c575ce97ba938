// Package phases is a container that shows one of several named models at a
// time and switches between them by name.
package phases

import (
	tea "github.com/charmbracelet/bubbletea"
)

// GotoPhaseMsg switches to the phase with the given name. Unknown names and
// the current phase are ignored.
type GotoPhaseMsg struct {
	Name string
}

type Phase struct {
	Name string
	mdl  tea.Model
}

func (p Phase) Init() tea.Cmd {
	return p.mdl.Init()
}

func (p Phase) Update(msg tea.Msg) (Phase, tea.Cmd) {
	var cmd tea.Cmd
	p.mdl, cmd = p.mdl.Update(msg)
	return p, cmd
}

func (p Phase) View() string {
	return p.mdl.View()
}

func NewPhase(name string, mdl tea.Model) Phase {
	return Phase{
		Name: name,
		mdl:  mdl,
	}
}

type Model struct {
	phases []Phase
	curr   int
}

func New(phases []Phase) Model {
	return Model{
		phases: phases,
		curr:   0,
	}
}

func (m Model) currentPhase() Phase {
	return m.phases[m.curr]
}

func (m Model) indexOf(name string) int {
	for i, p := range m.phases {
		if p.Name == name {
			return i
		}
	}
	return -1
}

func (m Model) Init() tea.Cmd {
	return m.currentPhase().Init()
}

func (m Model) Update(teaMsg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := teaMsg.(type) {
	case GotoPhaseMsg:
		idx := m.indexOf(msg.Name)
		if idx < 0 || idx == m.curr {
			return m, nil
		}
		m.curr = idx
		return m, m.currentPhase().Init()
	}

	ph, cmd := m.currentPhase().Update(teaMsg)
	m.phases[m.curr] = ph

	return m, cmd
}

func (m Model) View() string {
	return m.currentPhase().View()
}

// CurrentPhaseName returns the name of the current phase.
func (m Model) CurrentPhaseName() string {
	return m.currentPhase().Name
}
