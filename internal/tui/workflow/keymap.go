package workflow

import "github.com/charmbracelet/bubbles/key"

// GlobalKeyMap holds bindings active in every phase.
type GlobalKeyMap struct {
	Quit key.Binding
}

func DefaultGlobalKeyMap() GlobalKeyMap {
	return GlobalKeyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}
}

type composeKeyMap struct {
	Generate key.Binding
	NextTone key.Binding
	PrevTone key.Binding
}

func defaultComposeKeyMap() composeKeyMap {
	return composeKeyMap{
		Generate: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "generate"),
		),
		NextTone: key.NewBinding(
			key.WithKeys("tab", "down"),
			key.WithHelp("tab", "next tone"),
		),
		PrevTone: key.NewBinding(
			key.WithKeys("shift+tab", "up"),
			key.WithHelp("shift+tab", "previous tone"),
		),
	}
}

type generatingKeyMap struct {
	Cancel key.Binding
}

func defaultGeneratingKeyMap() generatingKeyMap {
	return generatingKeyMap{
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
	}
}

type resultKeyMap struct {
	Copy       key.Binding
	Download   key.Binding
	Regenerate key.Binding
	New        key.Binding
	Quit       key.Binding
}

func defaultResultKeyMap() resultKeyMap {
	return resultKeyMap{
		Copy: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "copy"),
		),
		Download: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "download"),
		),
		Regenerate: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "regenerate"),
		),
		New: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new blog"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
	}
}
