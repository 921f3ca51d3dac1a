package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/retro-arcade/internal/registry"
	"github.com/vovakirdan/retro-arcade/internal/storage"
)

// boardRows is how many entries one scoreboard page loads.
const boardRows = 50

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Scroll key.Binding
	Next   key.Binding
	Prev   key.Binding
	Clear  key.Binding
	Back   key.Binding
	Quit   key.Binding
}

func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Scroll, k.Next, k.Prev, k.Clear, k.Back, k.Quit}
}

func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Scroll: key.NewBinding(key.WithKeys("up", "down", "k", "j"), key.WithHelp("↑/↓", "scroll")),
		Next:   key.NewBinding(key.WithKeys("right", "l", "tab"), key.WithHelp("→/tab", "next")),
		Prev:   key.NewBinding(key.WithKeys("left", "h", "shift+tab"), key.WithHelp("←", "prev")),
		Clear:  key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "clear game")),
		Back:   key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc", "back")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// A scoreboard page is either the recent plays of every game or the best
// scores of one game.
type boardPage struct {
	gameID string // empty for recent plays
	title  string
}

func (p boardPage) recent() bool { return p.gameID == "" }

var (
	boardTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("226"))
	boardTabStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Padding(0, 1)
	boardActiveTab  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("16")).Background(lipgloss.Color("226")).Padding(0, 1)
	boardFrameStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("27")).Padding(0, 1)
	boardDimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

// ScoreboardModel shows the scores finished since the arcade started.
type ScoreboardModel struct {
	store     *storage.Store
	pages     []boardPage
	page      int
	entries   []storage.ScoreEntry
	stats     map[string]storage.GameStats
	table     table.Model
	help      help.Model
	keys      ScoreboardKeyMap
	width     int
	height    int
	err       error
	quitting  bool
	goingBack bool
}

// NewScoreboardModel creates a scoreboard opened on the recent plays page.
func NewScoreboardModel(store *storage.Store, width, height int) ScoreboardModel {
	pages := []boardPage{{title: "Recent plays"}}
	for _, g := range registry.List() {
		pages = append(pages, boardPage{gameID: g.ID, title: g.Title})
	}

	m := ScoreboardModel{
		store:  store,
		pages:  pages,
		keys:   DefaultScoreboardKeyMap(),
		help:   help.New(),
		width:  width,
		height: height,
	}
	m.reload()
	return m
}

// columns lays out the table for the current page. The player column takes
// whatever width the fixed columns leave.
func (m *ScoreboardModel) columns() []table.Column {
	var cols []table.Column
	if m.pages[m.page].recent() {
		cols = []table.Column{{Title: "Game", Width: 16}}
	} else {
		cols = []table.Column{{Title: "#", Width: 4}}
	}
	cols = append(cols,
		table.Column{Title: "Player", Width: 10},
		table.Column{Title: "Score", Width: 9},
		table.Column{Title: "Lvl", Width: 4},
		table.Column{Title: "", Width: 4},
		table.Column{Title: "Time", Width: 8},
	)

	used := 0
	for _, c := range cols {
		used += c.Width + 2
	}
	if spare := m.width - 8 - used; spare > 0 {
		cols[1].Width += min(spare, 14)
	}
	return cols
}

// reload fetches the current page from the store and rebuilds the table.
func (m *ScoreboardModel) reload() {
	m.entries, m.err = nil, nil
	if m.store != nil {
		p := m.pages[m.page]
		if p.recent() {
			m.entries, m.err = m.store.RecentScores(boardRows)
		} else {
			m.entries, m.err = m.store.TopScores(p.gameID, boardRows)
		}
		if stats, err := m.store.Stats(); err == nil {
			m.stats = make(map[string]storage.GameStats, len(stats))
			for _, st := range stats {
				m.stats[st.GameID] = st
			}
		}
	}

	titles := make(map[string]string, len(m.pages))
	for _, p := range m.pages {
		titles[p.gameID] = p.title
	}

	rows := make([]table.Row, len(m.entries))
	for i, e := range m.entries {
		first := "#" + strconv.Itoa(i+1)
		if m.pages[m.page].recent() {
			first = titles[e.GameID]
		}
		result := ""
		if e.Won {
			result = "WIN"
		}
		rows[i] = table.Row{first, e.Player, strconv.Itoa(e.Score), strconv.Itoa(e.Level), result, e.CreatedAt.Format("15:04:05")}
	}

	styles := table.DefaultStyles()
	styles.Header = styles.Header.Bold(true).Foreground(lipgloss.Color("51")).BorderStyle(lipgloss.NormalBorder()).BorderBottom(true)
	styles.Selected = styles.Selected.Foreground(lipgloss.Color("16")).Background(lipgloss.Color("226"))
	m.table = table.New(
		table.WithColumns(m.columns()),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(max(m.height-9, 3)),
		table.WithStyles(styles),
	)
}

func (m *ScoreboardModel) turn(delta int) {
	m.page = (m.page + delta + len(m.pages)) % len(m.pages)
	m.reload()
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Next):
			m.turn(1)
			return m, nil
		case key.Matches(msg, m.keys.Prev):
			m.turn(-1)
			return m, nil
		case key.Matches(msg, m.keys.Clear):
			if p := m.pages[m.page]; !p.recent() && m.store != nil {
				m.err = m.store.ClearScores(p.gameID)
				if m.err == nil {
					m.reload()
				}
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.reload()
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder
	b.WriteString(boardTitleStyle.Render(centerText("HIGH SCORES - "+m.pages[m.page].title, m.width)))
	b.WriteString("\n\n")
	b.WriteString(centerText(m.tabs(), m.width))
	b.WriteString("\n")
	b.WriteString(boardDimStyle.Render(centerText(m.summary(), m.width)))
	b.WriteString("\n")

	body := m.table.View()
	switch {
	case m.err != nil:
		body = "Scoreboard unavailable: " + m.err.Error()
	case len(m.entries) == 0:
		body = boardDimStyle.Italic(true).Padding(1, 2).Render("Nothing here yet.\nScores last until the arcade closes.")
	}
	b.WriteString(centerText(boardFrameStyle.Render(body), m.width))
	b.WriteString("\n")
	b.WriteString(boardDimStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// tabs lists the pages by id, falling back to the current title alone when
// the strip does not fit.
func (m ScoreboardModel) tabs() string {
	parts := make([]string, len(m.pages))
	for i, p := range m.pages {
		label := p.gameID
		if p.recent() {
			label = "recent"
		}
		if i == m.page {
			parts[i] = boardActiveTab.Render(label)
		} else {
			parts[i] = boardTabStyle.Render(label)
		}
	}
	strip := lipgloss.JoinHorizontal(lipgloss.Top, parts...)
	if lipgloss.Width(strip) > m.width {
		return boardActiveTab.Render("< " + m.pages[m.page].title + " >")
	}
	return strip
}

// summary totals the current page: every game for recent plays, one game
// otherwise.
func (m ScoreboardModel) summary() string {
	p := m.pages[m.page]
	if p.recent() {
		plays, wins := 0, 0
		for _, st := range m.stats {
			plays += st.Plays
			wins += st.Wins
		}
		return fmt.Sprintf("%d games finished this session, %d won", plays, wins)
	}
	st, ok := m.stats[p.gameID]
	if !ok {
		return "No games finished this session"
	}
	return fmt.Sprintf("%d played   best %d   average %.0f   %d won", st.Plays, st.Best, st.Average, st.Wins)
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}
