package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/retro-arcade/internal/core"
)

// GameKeyMap defines the key bindings used while a game is on screen.
type GameKeyMap struct {
	Up         key.Binding
	Down       key.Binding
	Left       key.Binding
	Right      key.Binding
	Fire       key.Binding
	Confirm    key.Binding
	Pause      key.Binding
	Restart    key.Binding
	Back       key.Binding
	Mute       key.Binding
	Screenshot key.Binding
	Quit       key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k GameKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Fire, k.Pause, k.Restart, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k GameKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right, k.Fire},
		{k.Pause, k.Confirm, k.Restart, k.Mute},
		{k.Screenshot, k.Back, k.Quit},
	}
}

// DefaultGameKeyMap returns default key bindings.
func DefaultGameKeyMap() GameKeyMap {
	return GameKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "w"),
			key.WithHelp("up/w", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "s"),
			key.WithHelp("down/s", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "a"),
			key.WithHelp("left/a", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "d"),
			key.WithHelp("right/d", "right"),
		),
		Fire: key.NewBinding(
			key.WithKeys(" ", "space"),
			key.WithHelp("space", "fire"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "resume"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p", "?"),
			key.WithHelp("p/?", "pause"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "restart"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc", "menu"),
		),
		Mute: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "mute"),
		),
		Screenshot: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "screenshot"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// KeyMapper translates Bubble Tea key messages to game actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct {
	keys GameKeyMap
}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{keys: DefaultGameKeyMap()}
}

// Keys returns the bindings, for help views.
func (km *KeyMapper) Keys() GameKeyMap {
	return km.keys
}

// MapKey translates a key message to an action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	k := km.keys
	switch {
	case key.Matches(msg, k.Quit):
		return core.ActionQuit, true
	case key.Matches(msg, k.Up):
		return core.ActionUp, false
	case key.Matches(msg, k.Down):
		return core.ActionDown, false
	case key.Matches(msg, k.Left):
		return core.ActionLeft, false
	case key.Matches(msg, k.Right):
		return core.ActionRight, false
	case key.Matches(msg, k.Fire):
		return core.ActionFire, false
	case key.Matches(msg, k.Confirm):
		return core.ActionConfirm, false
	case key.Matches(msg, k.Back):
		return core.ActionBack, false
	case key.Matches(msg, k.Pause):
		return core.ActionPause, false
	case key.Matches(msg, k.Restart):
		return core.ActionRestart, false
	}
	return core.ActionNone, false
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
	MenuActionScoreboard
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k": // vim-style k for up
		return MenuActionUp
	case "s", "down", "j": // vim-style j for down
		return MenuActionDown
	case "enter", " ", "space":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	case "tab":
		return MenuActionScoreboard
	}
	return MenuActionNone
}
