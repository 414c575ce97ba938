// Package style defines lipgloss styles for the TUI.
package style

import "github.com/charmbracelet/lipgloss"

// Names omit a "Style" suffix since they are read as style.Title and so on.
var (
	// Title is used for phase titles and headers.
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("205"))

	// Brand is the app name in the header bar.
	Brand = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("63"))

	Subtitle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	Success = lipgloss.NewStyle().
		Foreground(lipgloss.Color("42"))

	Error = lipgloss.NewStyle().
		Foreground(lipgloss.Color("196"))

	// Viewport frames the generated post.
	Viewport = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(0, 1)

	// Help is used for keyboard shortcut hints.
	Help = lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))

	// Key highlights keyboard keys inside help text.
	Key = lipgloss.NewStyle().
		Foreground(lipgloss.Color("205")).
		Bold(true)

	Progress = lipgloss.NewStyle().
			Foreground(lipgloss.Color("63"))

	// Label is used for form labels ("Topic", "Tone").
	Label = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("255"))

	Muted = lipgloss.NewStyle().
		Foreground(lipgloss.Color("245"))

	// Selected marks the highlighted tone.
	Selected = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	// Badge renders the tone tag on a finished post.
	Badge = lipgloss.NewStyle().
		Foreground(lipgloss.Color("255")).
		Background(lipgloss.Color("62")).
		Padding(0, 1)
)
