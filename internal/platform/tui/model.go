package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/retro-arcade/internal/core"
	"github.com/vovakirdan/retro-arcade/internal/engine"
	"github.com/vovakirdan/retro-arcade/internal/registry"
	"github.com/vovakirdan/retro-arcade/internal/storage"
)

// Options configures a game model.
type Options struct {
	FPS     int            // Redraw rate; the simulation keeps its own tick rate
	Session engine.Options // Scheduler, latch and audio settings
	Store   *storage.Store // Session scoreboard; nil skips saving
	Player  string         // Name recorded with scores
	Logger  *log.Logger
}

// muter is implemented by sound sinks that can be silenced at runtime.
type muter interface {
	SetMuted(muted bool)
	Muted() bool
}

// retrier is implemented by sound sinks whose device may come back.
type retrier interface {
	Retry()
}

// Model is the Bubble Tea model for running one arcade game.
type Model struct {
	session    *engine.Session
	opts       Options
	keys       *KeyMapper
	help       help.Model
	logger     *log.Logger
	gen        int64
	width      int
	height     int
	quitting   bool
	backToMenu bool
	quitOnBack bool // Standalone play exits the program on Esc
	status     string
}

// NewModel creates a new Bubble Tea model for the given game. The game is
// reset on the first window size message.
func NewModel(game registry.Game, opts Options) Model {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	opts.Session.Logger = logger

	session := engine.NewSession(game, opts.Session)
	if opts.Store != nil {
		store, player := opts.Store, opts.Player
		session.OnGameOver(func(st core.GameState) {
			_, err := store.SaveScore(storage.ScoreEntry{
				GameID: game.ID(),
				Player: player,
				Score:  st.Score,
				Level:  st.Level,
				Won:    st.Won,
			})
			if err != nil {
				logger.Warn("could not save score", "game", game.ID(), "error", err)
			}
		})
	}

	h := help.New()
	h.ShowAll = true

	return Model{
		session: session,
		opts:    opts,
		keys:    NewKeyMapper(),
		help:    h,
		logger:  logger,
		gen:     nextGeneration(),
	}
}

// Session returns the running session.
func (m Model) Session() *engine.Session {
	return m.session
}

// Init starts the frame loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.opts.FPS, m.gen)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		m.handleMouse(msg)
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.session.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		if msg.Gen != m.gen || m.quitting || m.backToMenu {
			return m, nil
		}
		m.session.Frame(msg.Time)
		return m, tickCmd(m.opts.FPS, m.gen)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keys := m.keys.Keys()
	switch {
	case key.Matches(msg, keys.Screenshot):
		m.saveScreenshot()
		return m, nil
	case key.Matches(msg, keys.Mute):
		m.toggleMute()
		return m, nil
	}

	action, isQuit := m.keys.MapKey(msg)
	if isQuit {
		m.quitting = true
		return m, tea.Quit
	}
	if action == core.ActionBack {
		m.backToMenu = true
		if m.quitOnBack {
			return m, tea.Quit
		}
		return m, nil
	}

	if r, ok := m.opts.Session.Audio.(retrier); ok && action.Gameplay() {
		r.Retry()
	}
	m.session.Press(action)
	return m, nil
}

// handleMouse aims at the pointer and fires on a left click.
func (m Model) handleMouse(msg tea.MouseMsg) {
	m.session.Aim(msg.X, msg.Y)
	if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
		m.session.Press(core.ActionFire)
	}
}

func (m *Model) toggleMute() {
	mu, ok := m.opts.Session.Audio.(muter)
	if !ok {
		return
	}
	mu.SetMuted(!mu.Muted())
	m.status = "sound on"
	if mu.Muted() {
		m.status = "muted"
	}
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	screen := m.session.Render()

	dir := filepath.Join(os.Getenv("HOME"), ".arcade", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("could not create screenshot directory", "error", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.txt", m.session.Info().ID, timestamp)
	path := filepath.Join(dir, filename)

	if err := os.WriteFile(path, []byte(screen.String()), 0o600); err != nil {
		m.logger.Warn("could not save screenshot", "path", path, "error", err)
		return
	}
	m.status = "saved " + filename
	m.logger.Info("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting || m.backToMenu {
		return ""
	}
	if m.session.Paused() && m.session.Fault() == nil {
		return m.pauseView()
	}

	screen := m.session.Render()
	if m.status != "" && screen.Height() > 1 {
		screen.DrawTextColor(1, screen.Height()-1, m.status, core.ColorGray)
	}
	return RenderScreen(screen)
}

var (
	pauseBoxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("57")).Padding(1, 3)
	pauseTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	pauseTextStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
	pauseHintStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// pauseView draws the game's label, blurb and controls over a blank screen.
func (m Model) pauseView() string {
	info := m.session.Info()

	var b strings.Builder
	b.WriteString(pauseTitleStyle.Render(strings.ToUpper(info.Title) + "  PAUSED"))
	b.WriteString("\n\n")
	b.WriteString(pauseTextStyle.Render(info.Description))
	b.WriteString("\n\n")
	for _, c := range info.Controls {
		b.WriteString(pauseTextStyle.Render("  " + c))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(pauseHintStyle.Render("P / ? / Enter resume   Esc menu   Q quit"))
	b.WriteString("\n\n")
	b.WriteString(m.help.View(m.keys.Keys()))

	box := pauseBoxStyle.Render(b.String())
	if m.width == 0 || m.height == 0 {
		return box
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run starts a Bubble Tea program for a single game. Esc and Q both leave.
func Run(game registry.Game, opts Options) error {
	model := NewModel(game, opts)
	model.quitOnBack = true

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
	)

	_, err := p.Run()
	return err
}
