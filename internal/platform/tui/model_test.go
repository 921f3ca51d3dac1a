package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/retro-arcade/internal/core"
	"github.com/vovakirdan/retro-arcade/internal/engine"
	"github.com/vovakirdan/retro-arcade/internal/registry"
	"github.com/vovakirdan/retro-arcade/internal/storage"
)

// stubGame ends with 42 points the first tick a human holds up.
type stubGame struct {
	state core.GameState
}

func (g *stubGame) ID() string          { return "stub" }
func (g *stubGame) Title() string       { return "Stub" }
func (g *stubGame) Description() string { return "A stand-in game." }
func (g *stubGame) Controls() []string  { return []string{"Up: Win"} }

func (g *stubGame) Reset(core.RuntimeConfig) { g.state = core.GameState{Lives: 1, Level: 1} }

func (g *stubGame) Step(in core.InputFrame) core.StepResult {
	if in.Has(core.ActionUp) {
		g.state.Score = 42
		g.state.GameOver = true
	}
	return core.StepResult{State: g.state}
}

func (g *stubGame) Autopilot(*core.InputFrame) {}
func (g *stubGame) Render(dst *core.Screen)    { dst.DrawText(0, 2, "stub world") }
func (g *stubGame) State() core.GameState      { return g.state }

func init() {
	registry.Register("stub", func() registry.Game { return &stubGame{} })
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	require.True(t, ok)
	return nm, cmd
}

func sizedModel(t *testing.T, opts Options) Model {
	t.Helper()
	m := NewModel(&stubGame{}, opts)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 60, Height: 20})
	return m
}

func TestModelStartsInAttractOnFirstSize(t *testing.T) {
	m := NewModel(&stubGame{}, Options{})
	assert.False(t, m.Session().Started())

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 60, Height: 20})
	assert.True(t, m.Session().Started())
	assert.True(t, m.Session().Attract())
	assert.Contains(t, m.View(), "stub world")
}

func TestModelQuit(t *testing.T) {
	m := sizedModel(t, Options{})
	m, cmd := update(t, m, runeKey('q'))
	assert.True(t, m.IsQuitting())
	assert.NotNil(t, cmd)
	assert.Empty(t, m.View())
}

func TestModelBackToMenu(t *testing.T) {
	m := sizedModel(t, Options{})
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.True(t, m.BackToMenu())
	assert.False(t, m.IsQuitting())
	assert.Nil(t, cmd)
}

func TestModelPauseOverlay(t *testing.T) {
	m := sizedModel(t, Options{})
	m, _ = update(t, m, runeKey('p'))
	require.True(t, m.Session().Paused())

	view := m.View()
	assert.Contains(t, view, "STUB  PAUSED")
	assert.Contains(t, view, "A stand-in game.")
	assert.Contains(t, view, "Up: Win")

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, m.Session().Paused())
}

func TestModelTicks(t *testing.T) {
	m := sizedModel(t, Options{FPS: 30})

	_, cmd := update(t, m, TickMsg{Time: time.Now(), Gen: m.gen})
	assert.NotNil(t, cmd, "a current tick schedules the next frame")

	_, cmd = update(t, m, TickMsg{Time: time.Now(), Gen: m.gen + 1000})
	assert.Nil(t, cmd, "a stale tick is dropped")
}

func TestModelSavesScoreOnGameOver(t *testing.T) {
	store, err := storage.Open()
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	m := sizedModel(t, Options{Store: store, Player: "ada", Session: engine.Options{Seed: 1}})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyUp})
	require.False(t, m.Session().Attract(), "a gameplay key takes over from the demo")

	m.Session().Tick()
	require.True(t, m.Session().State().GameOver)

	scores, err := store.TopScores("stub", 10)
	require.NoError(t, err)
	require.Len(t, scores, 1)
	assert.Equal(t, "ada", scores[0].Player)
	assert.Equal(t, 42, scores[0].Score)
	assert.Equal(t, 1, scores[0].Level)

	assert.Contains(t, m.View(), "GAME OVER")
}

func TestModelMouseAimsAndFires(t *testing.T) {
	m := sizedModel(t, Options{})
	m, _ = update(t, m, tea.MouseMsg{X: 10, Y: 5, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	assert.False(t, m.Session().Attract(), "a click counts as a gameplay press")
}

func TestModelMuteWithoutPlayer(t *testing.T) {
	m := sizedModel(t, Options{})
	m, cmd := update(t, m, runeKey('m'))
	assert.Nil(t, cmd)
	assert.Empty(t, m.status)
}

func arcadeUpdate(t *testing.T, m ArcadeModel, msg tea.Msg) ArcadeModel {
	t.Helper()
	next, _ := m.Update(msg)
	am, ok := next.(ArcadeModel)
	require.True(t, ok)
	return am
}

func TestArcadeFlow(t *testing.T) {
	store, err := storage.Open()
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	built := ""
	build := func(id string) Options {
		built = id
		return Options{Session: engine.Options{Seed: 7}}
	}

	m := NewArcadeModel(store, build, "grace", 60, 20)
	assert.Contains(t, m.View(), "Stub")

	m = arcadeUpdate(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.True(t, m.InGame())
	assert.Equal(t, "stub", built)
	assert.True(t, m.game.Session().Started(), "the game gets the known size at once")

	m = arcadeUpdate(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.InGame())
	assert.Contains(t, m.View(), "Select a game")

	m = arcadeUpdate(t, m, tea.KeyMsg{Type: tea.KeyTab})
	require.NotNil(t, m.scores)
	assert.Contains(t, m.View(), "HIGH SCORES")

	m = arcadeUpdate(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Nil(t, m.scores)

	next, cmd := m.Update(runeKey('q'))
	assert.NotNil(t, cmd)
	assert.Empty(t, next.View())
}
