package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/retro-arcade/internal/registry"
	"github.com/vovakirdan/retro-arcade/internal/storage"
)

// MenuItem represents a selectable game in the menu.
type MenuItem struct {
	GameID      string
	Title       string
	Description string
}

// MenuModel is the Bubble Tea model for the game picker menu.
type MenuModel struct {
	items          []MenuItem
	cursor         int
	width          int
	height         int
	store          *storage.Store
	keyMapper      *KeyMapper
	quitting       bool
	selected       *MenuItem // Set when user selects a game
	openScoreboard bool      // True if user pressed Tab for scoreboard
}

// NewMenuModel creates a new menu model.
func NewMenuModel(store *storage.Store, width, height int) MenuModel {
	games := registry.List()
	items := make([]MenuItem, 0, len(games))
	for _, g := range games {
		items = append(items, MenuItem{
			GameID:      g.ID,
			Title:       g.Title,
			Description: g.Description,
		})
	}

	return MenuModel{
		items:     items,
		width:     width,
		height:    height,
		store:     store,
		keyMapper: NewKeyMapper(),
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case MenuActionSelect:
		if len(m.items) > 0 {
			selected := m.items[m.cursor]
			m.selected = &selected
			return m, tea.Quit // Exit menu to start game
		}

	case MenuActionScoreboard:
		m.openScoreboard = true
		return m, tea.Quit // Exit menu to show scoreboard
	}

	return m, nil
}

var (
	menuTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	menuCursorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57"))
	menuDimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(menuTitleStyle.Render("  R E T R O   A R C A D E  "), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Select a game", m.width))
	b.WriteString("\n\n")

	for i, item := range m.items {
		line := fmt.Sprintf("%-18s", item.Title)
		if best := m.highScore(item.GameID); best > 0 {
			line += fmt.Sprintf(" %7d", best)
		} else {
			line += strings.Repeat(" ", 8)
		}
		if i == m.cursor {
			line = menuCursorStyle.Render("> " + line + " ")
		} else {
			line = "  " + line + " "
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	if len(m.items) > 0 {
		b.WriteString("\n")
		b.WriteString(centerText(menuDimStyle.Render(m.items[m.cursor].Description), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	controls := "Up/Down: Navigate  |  Enter: Select  |  Tab: Scores  |  Q: Quit"
	b.WriteString(centerText(menuDimStyle.Render(controls), m.width))
	b.WriteString("\n")

	return b.String()
}

// highScore returns the best score of this session, 0 without a store.
func (m MenuModel) highScore(gameID string) int {
	if m.store == nil {
		return 0
	}
	best, err := m.store.HighScore(gameID)
	if err != nil {
		return 0
	}
	return best
}

// Selected returns the selected menu item, or nil if none selected.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard returns true if user requested scoreboard.
func (m MenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}

// Size returns the last known terminal size.
func (m MenuModel) Size() (width, height int) {
	return m.width, m.height
}

// centerText centers text within given width. Styling escapes do not count
// toward the text width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	padding := (width - w) / 2
	return strings.Repeat(" ", padding) + text
}
