package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"

	"github.com/vovakirdan/retro-arcade/internal/core"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestMapKey(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		name   string
		msg    tea.KeyMsg
		action core.Action
		quit   bool
	}{
		{"arrow up", tea.KeyMsg{Type: tea.KeyUp}, core.ActionUp, false},
		{"w", runeKey('w'), core.ActionUp, false},
		{"arrow down", tea.KeyMsg{Type: tea.KeyDown}, core.ActionDown, false},
		{"s", runeKey('s'), core.ActionDown, false},
		{"arrow left", tea.KeyMsg{Type: tea.KeyLeft}, core.ActionLeft, false},
		{"a", runeKey('a'), core.ActionLeft, false},
		{"arrow right", tea.KeyMsg{Type: tea.KeyRight}, core.ActionRight, false},
		{"d", runeKey('d'), core.ActionRight, false},
		{"space", tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, core.ActionFire, false},
		{"enter", tea.KeyMsg{Type: tea.KeyEnter}, core.ActionConfirm, false},
		{"escape", tea.KeyMsg{Type: tea.KeyEsc}, core.ActionBack, false},
		{"p", runeKey('p'), core.ActionPause, false},
		{"question mark", runeKey('?'), core.ActionPause, false},
		{"r", runeKey('r'), core.ActionRestart, false},
		{"q", runeKey('q'), core.ActionQuit, true},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit, true},
		{"unbound", runeKey('z'), core.ActionNone, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			action, quit := km.MapKey(tt.msg)
			assert.Equal(t, tt.action, action)
			assert.Equal(t, tt.quit, quit)
		})
	}
}

func TestMapKeyToMenuAction(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		name string
		msg  tea.KeyMsg
		want MenuAction
	}{
		{"up", tea.KeyMsg{Type: tea.KeyUp}, MenuActionUp},
		{"k", runeKey('k'), MenuActionUp},
		{"down", tea.KeyMsg{Type: tea.KeyDown}, MenuActionDown},
		{"j", runeKey('j'), MenuActionDown},
		{"enter", tea.KeyMsg{Type: tea.KeyEnter}, MenuActionSelect},
		{"tab", tea.KeyMsg{Type: tea.KeyTab}, MenuActionScoreboard},
		{"escape", tea.KeyMsg{Type: tea.KeyEsc}, MenuActionBack},
		{"q", runeKey('q'), MenuActionQuit},
		{"unbound", runeKey('x'), MenuActionNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, km.MapKeyToMenuAction(tt.msg))
		})
	}
}

func TestGameKeyMapHelp(t *testing.T) {
	keys := DefaultGameKeyMap()
	assert.NotEmpty(t, keys.ShortHelp())
	for _, col := range keys.FullHelp() {
		for _, b := range col {
			assert.NotEmpty(t, b.Help().Key)
			assert.NotEmpty(t, b.Help().Desc)
		}
	}
}
