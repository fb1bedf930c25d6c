package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/watersort/internal/core"
)

// KeyMap defines the in-game key bindings. It also feeds the help bar.
type KeyMap struct {
	Left    key.Binding
	Right   key.Binding
	Select  key.Binding
	Pick    key.Binding
	Next    key.Binding
	Drop    key.Binding
	Restart key.Binding
	Pause   key.Binding
	Help    key.Binding
	Quit    key.Binding
}

// DefaultKeyMap returns the default bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Left: key.NewBinding(
			key.WithKeys("left", "a", "h"),
			key.WithHelp("←/a", "prev bottle"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "d", "l"),
			key.WithHelp("→/d", "next bottle"),
		),
		Select: key.NewBinding(
			key.WithKeys(" ", "up", "w", "k"),
			key.WithHelp("space", "pick/pour"),
		),
		Pick: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9", "0"),
			key.WithHelp("1-9,0", "bottle"),
		),
		Next: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "next level"),
		),
		Drop: key.NewBinding(
			key.WithKeys("esc", "down", "s", "j"),
			key.WithHelp("esc", "drop"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "restart"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "pause"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Right, k.Select, k.Restart, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Select, k.Pick},
		{k.Next, k.Drop, k.Restart, k.Pause},
		{k.Help, k.Quit},
	}
}

// Apply translates a key message into the input frame.
// Returns true if the key was a quit request.
func (k KeyMap) Apply(msg tea.KeyMsg, frame *core.InputFrame) bool {
	switch {
	case key.Matches(msg, k.Quit):
		return true
	case key.Matches(msg, k.Left):
		frame.Set(core.ActionLeft)
	case key.Matches(msg, k.Right):
		frame.Set(core.ActionRight)
	case key.Matches(msg, k.Select):
		frame.Set(core.ActionSelect)
	case key.Matches(msg, k.Pick):
		frame.Pick = pickNumber(msg.String())
	case key.Matches(msg, k.Next):
		frame.Set(core.ActionConfirm)
	case key.Matches(msg, k.Drop):
		frame.Set(core.ActionBack)
	case key.Matches(msg, k.Restart):
		frame.Set(core.ActionRestart)
	case key.Matches(msg, k.Pause):
		frame.Set(core.ActionPause)
	}
	return false
}

// pickNumber maps a digit key to a 1-based bottle number; "0" is bottle 10.
func pickNumber(s string) int {
	if len(s) != 1 || s[0] < '0' || s[0] > '9' {
		return 0
	}
	if s[0] == '0' {
		return 10
	}
	return int(s[0] - '0')
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action.
func MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k":
		return MenuActionUp
	case "s", "down", "j":
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	}
	return MenuActionNone
}
