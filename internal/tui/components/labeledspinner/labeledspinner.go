// Package labeledspinner renders a spinner next to a title, with a subtitle
// and help line underneath.
package labeledspinner

import (
	"github.com/alkime/blogsmith/internal/tui/style"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Model is a spinner with a title, subtitle and help text.
type Model struct {
	Spinner  spinner.Model
	Title    string
	Subtitle string
	Help     string
}

// New creates a labeled spinner using the given spinner frames.
func New(s spinner.Spinner, title, subtitle, help string) Model {
	sp := spinner.New()
	sp.Spinner = s
	sp.Style = style.Progress

	return Model{
		Spinner:  sp,
		Title:    title,
		Subtitle: subtitle,
		Help:     help,
	}
}

// Init starts the spinner.
func (ls Model) Init() tea.Cmd {
	return ls.Spinner.Tick
}

// Update advances the spinner on its own tick messages.
func (ls Model) Update(teaMsg tea.Msg) (Model, tea.Cmd) {
	tickMsg, ok := teaMsg.(spinner.TickMsg)
	if !ok {
		return ls, nil
	}

	var cmd tea.Cmd
	ls.Spinner, cmd = ls.Spinner.Update(tickMsg)

	return ls, cmd
}

func (ls Model) View() string {
	return ls.ViewWithHelp(ls.Help)
}

// ViewWithHelp renders with help text computed by the caller.
func (ls Model) ViewWithHelp(help string) string {
	header := lipgloss.JoinHorizontal(lipgloss.Top,
		ls.Spinner.View(), " ", style.Title.Render(ls.Title))

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		"",
		style.Subtitle.Render(ls.Subtitle),
		"",
		help,
	)
}
