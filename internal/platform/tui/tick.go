// Package tui provides the Bubble Tea integration for the arcade platform.
// It handles the terminal UI loop, input mapping, and game orchestration.
package tui

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// DefaultFPS is how often the screen is redrawn when no rate is given.
const DefaultFPS = 60

// TickMsg asks the game model to catch the simulation up to Time and
// redraw. Gen ties the tick to the model that scheduled it, so ticks left
// over from a game that was closed are dropped.
type TickMsg struct {
	Time time.Time
	Gen  int64
}

var generations atomic.Int64

// nextGeneration returns a fresh tick generation.
func nextGeneration() int64 {
	return generations.Add(1)
}

// tickCmd returns a Bubble Tea command that sends one tick after a frame.
func tickCmd(fps int, gen int64) tea.Cmd {
	if fps <= 0 {
		fps = DefaultFPS
	}
	interval := time.Second / time.Duration(fps)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{Time: t, Gen: gen}
	})
}
