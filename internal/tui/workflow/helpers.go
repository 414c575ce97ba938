package workflow

import (
	"strings"

	"github.com/alkime/blogsmith/internal/tui/style"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

func renderKeyHelp(keyBinding key.Binding, suffix ...string) string {
	s := style.Help.Render("[") + style.Key.Render(keyBinding.Help().Key) +
		style.Help.Render("] ") +
		style.Help.Render(keyBinding.Help().Desc)

	return s + strings.Join(suffix, "")
}

func renderGlobalKeyHelp() string {
	return renderKeyHelp(DefaultGlobalKeyMap().Quit, "\n")
}

// wrapText wraps text to width so long lines wrap instead of being cut off
// by the viewport.
func wrapText(text string, width int) string {
	if width <= 0 {
		return text
	}

	return lipgloss.NewStyle().Width(width).Render(text)
}
