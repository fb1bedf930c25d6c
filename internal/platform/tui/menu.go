package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/watersort/internal/registry"
	"github.com/vovakirdan/watersort/internal/storage"
)

// MenuKind is what a menu entry opens.
type MenuKind int

const (
	MenuKindGame MenuKind = iota
	MenuKindScores
	MenuKindQuit
)

// MenuItem represents a selectable menu entry.
type MenuItem struct {
	Kind   MenuKind
	GameID string
	Title  string
	Detail string
}

// MenuModel is the Bubble Tea model for the start menu.
type MenuModel struct {
	items    []MenuItem
	cursor   int
	width    int
	height   int
	quitting bool
	selected *MenuItem
}

var (
	menuTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("51"))
	menuCursorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	menuDetailStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// NewMenuModel creates a menu listing the registered games. Games that track
// progress show the player's stored level.
func NewMenuModel(store *storage.Store, player string, width, height int) MenuModel {
	games := registry.List()
	items := make([]MenuItem, 0, len(games)+2)

	for _, g := range games {
		item := MenuItem{Kind: MenuKindGame, GameID: g.ID, Title: g.Title}
		if store != nil {
			if game, err := registry.Create(g.ID); err == nil && tracksProgress(game) {
				level, err := store.GetProgress(player, g.ID)
				if err == nil && level > 1 {
					item.Detail = fmt.Sprintf("level %d", level)
				}
			}
		}
		items = append(items, item)
	}
	items = append(items,
		MenuItem{Kind: MenuKindScores, Title: "Scores"},
		MenuItem{Kind: MenuKindQuit, Title: "Quit"},
	)

	return MenuModel{
		items:  items,
		width:  width,
		height: height,
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
	switch MapKeyToMenuAction(msg) {
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
		selected := m.items[m.cursor]
		if selected.Kind == MenuKindQuit {
			m.quitting = true
			return m, tea.Quit
		}
		m.selected = &selected
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(menuTitleStyle.Render("W A T E R   S O R T"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Pour until every bottle holds one color", m.width))
	b.WriteString("\n\n")

	for i, item := range m.items {
		line := "  " + item.Title
		if i == m.cursor {
			line = menuCursorStyle.Render("> " + item.Title)
		}
		if item.Detail != "" {
			line += " " + menuDetailStyle.Render("("+item.Detail+")")
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(menuDetailStyle.Render("Up/Down: Navigate  |  Enter: Select  |  Q: Quit"), m.width))
	b.WriteString("\n")

	return b.String()
}

// Selected returns the selected menu item, or nil if none selected.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}
