package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/retro-arcade/internal/registry"
	"github.com/vovakirdan/retro-arcade/internal/storage"
)

// GameOptions builds the options for a game picked from the menu.
type GameOptions func(gameID string) Options

// ArcadeModel manages the full arcade flow: menu -> game -> menu, with the
// scoreboard one key away. Local menu play and SSH sessions both use it.
type ArcadeModel struct {
	store    *storage.Store
	build    GameOptions
	player   string
	menu     MenuModel
	game     *Model
	scores   *ScoreboardModel
	width    int
	height   int
	quitting bool
}

// NewArcadeModel creates the arcade flow. Scores are recorded under player.
func NewArcadeModel(store *storage.Store, build GameOptions, player string, width, height int) ArcadeModel {
	return ArcadeModel{
		store:  store,
		build:  build,
		player: player,
		menu:   NewMenuModel(store, width, height),
		width:  width,
		height: height,
	}
}

// Init initializes the arcade.
func (m ArcadeModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update routes messages to the active screen. Child models ask to leave
// by quitting; the arcade catches that and switches screens instead.
func (m ArcadeModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = wsm.Width
		m.height = wsm.Height
	}

	switch {
	case m.game != nil:
		return m.updateGame(msg)
	case m.scores != nil:
		return m.updateScores(msg)
	}
	return m.updateMenu(msg)
}

// updateMenu handles updates when in menu mode.
func (m ArcadeModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.menu.Update(msg)
	if menu, ok := next.(MenuModel); ok {
		m.menu = menu
	}

	switch {
	case m.menu.IsQuitting():
		m.quitting = true
		return m, tea.Quit

	case m.menu.WantsScoreboard():
		sb := NewScoreboardModel(m.store, m.width, m.height)
		m.scores = &sb
		return m, sb.Init()

	case m.menu.Selected() != nil:
		id := m.menu.Selected().GameID
		game, err := registry.Create(id)
		if err != nil {
			// The menu only lists registered games.
			m.menu = NewMenuModel(m.store, m.width, m.height)
			return m, nil
		}
		opts := m.options(id)
		gm := NewModel(game, opts)
		if m.width > 0 && m.height > 0 {
			next, _ := gm.Update(tea.WindowSizeMsg{Width: m.width, Height: m.height})
			gm = next.(Model)
		}
		m.game = &gm
		return m, gm.Init()
	}

	return m, cmd
}

func (m ArcadeModel) options(id string) Options {
	var opts Options
	if m.build != nil {
		opts = m.build(id)
	}
	opts.Store = m.store
	if m.player != "" {
		opts.Player = m.player
	}
	return opts
}

// updateGame handles updates when in game mode.
func (m ArcadeModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.game.Update(msg)
	if gm, ok := next.(Model); ok {
		m.game = &gm
	}

	if m.game.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.game.BackToMenu() {
		m.game = nil
		m.menu = NewMenuModel(m.store, m.width, m.height)
		return m, m.menu.Init()
	}

	return m, cmd
}

// updateScores handles updates when the scoreboard is open.
func (m ArcadeModel) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.scores.Update(msg)
	if sb, ok := next.(ScoreboardModel); ok {
		m.scores = &sb
	}

	if m.scores.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.scores.IsGoingBack() {
		m.scores = nil
		m.menu = NewMenuModel(m.store, m.width, m.height)
		return m, m.menu.Init()
	}

	return m, cmd
}

// View renders the current view.
func (m ArcadeModel) View() string {
	switch {
	case m.quitting:
		return ""
	case m.game != nil:
		return m.game.View()
	case m.scores != nil:
		return m.scores.View()
	}
	return m.menu.View()
}

// InGame reports whether a game is on screen.
func (m ArcadeModel) InGame() bool {
	return m.game != nil
}

// RunArcade runs the menu, games and scoreboard in one program.
func RunArcade(store *storage.Store, build GameOptions, player string) error {
	p := tea.NewProgram(
		NewArcadeModel(store, build, player, 0, 0),
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
	)

	_, err := p.Run()
	return err
}
