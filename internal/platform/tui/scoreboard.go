package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/watersort/internal/storage"
)

// Scoreboard layout constants
const (
	tableMinWidth = 50  // Minimum table width
	maxSolves     = 100 // Max solves to load per tab
)

// ScoreboardTab selects which solves the scoreboard lists.
type ScoreboardTab int

const (
	TabBest ScoreboardTab = iota
	TabRecent
)

func (t ScoreboardTab) String() string {
	if t == TabRecent {
		return "Recent"
	}
	return "Best"
}

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	NextTab key.Binding
	Back    key.Binding
	Quit    key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextTab, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextTab},
		{k.Back, k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextTab: key.NewBinding(
			key.WithKeys("tab", "left", "right", "h", "l"),
			key.WithHelp("tab", "best/recent"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ScoreboardModel is the Bubble Tea model for the solve history screen.
type ScoreboardModel struct {
	store      *storage.Store
	gameID     string
	player     string
	tab        ScoreboardTab
	solves     []storage.Solve
	stats      *storage.Stats
	table      table.Model
	help       help.Model
	keys       ScoreboardKeyMap
	width      int
	height     int
	standalone bool // quit the program on back
	quitting   bool
	goingBack  bool
}

// NewScoreboardModel creates a scoreboard for one game. Best solves cover all
// players; recent solves and the summary line are the given player's.
func NewScoreboardModel(store *storage.Store, gameID, player string, width, height int) ScoreboardModel {
	h := help.New()
	h.Width = width

	m := ScoreboardModel{
		store:  store,
		gameID: gameID,
		player: player,
		keys:   DefaultScoreboardKeyMap(),
		help:   h,
		width:  width,
		height: height,
	}
	m.table = m.createTable()
	m.load()
	return m
}

// createTable creates a new table with the columns of the current tab.
func (m *ScoreboardModel) createTable() table.Model {
	first := table.Column{Title: "Rank", Width: 6}
	if m.tab == TabRecent {
		first = table.Column{Title: "Result", Width: 8}
	}
	columns := []table.Column{
		first,
		{Title: "Level", Width: 6},
		{Title: "Profile", Width: 8},
		{Title: "Pours", Width: 6},
		{Title: "Time", Width: 8},
		{Title: "Player", Width: 10},
		{Title: "Date", Width: 14},
	}

	// Give spare width to the player column
	used := 0
	for _, c := range columns {
		used += c.Width + 2
	}
	if spare := max(m.width-4, tableMinWidth) - used; spare > 0 {
		columns[5].Width += min(spare, 10)
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-10, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// load reads the solves of the current tab.
func (m *ScoreboardModel) load() {
	m.solves = nil
	m.stats = nil
	if m.store != nil {
		var (
			solves []storage.Solve
			err    error
		)
		if m.tab == TabRecent {
			solves, err = m.store.RecentSolves(m.player, maxSolves)
		} else {
			solves, err = m.store.BestSolves(m.gameID, maxSolves)
		}
		if err == nil {
			m.solves = solves
		}
		if stats, err := m.store.GetStats(m.player); err == nil {
			m.stats = stats
		}
	}
	m.updateTableRows()
}

// updateTableRows updates the table with the loaded solves.
func (m *ScoreboardModel) updateTableRows() {
	rows := make([]table.Row, len(m.solves))
	for i, s := range m.solves {
		first := fmt.Sprintf("#%d", i+1)
		if m.tab == TabRecent {
			first = s.Outcome
		}
		rows[i] = table.Row{
			first,
			fmt.Sprintf("%d", s.Level),
			s.Profile,
			fmt.Sprintf("%d", s.Pours),
			s.Duration.Round(time.Second).String(),
			s.Player,
			s.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			if m.standalone {
				return m, tea.Quit
			}
			return m, nil

		case key.Matches(msg, m.keys.NextTab):
			m.tab = (m.tab + 1) % 2
			m.table = m.createTable()
			m.load()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || (m.goingBack && m.standalone) {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))
	b.WriteString(centerText(titleStyle.Render("SOLVES - "+m.gameID), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(m.renderTabs(), m.width))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(centerText(tableStyle.Render(m.renderTableContent()), m.width))
	b.WriteString("\n")

	if m.stats != nil && m.stats.Attempts > 0 {
		summary := fmt.Sprintf("%s: %d won, %d stuck, %d pours, best level %d",
			m.stats.Player, m.stats.Won, m.stats.Stuck, m.stats.TotalPours, m.stats.BestLevel)
		b.WriteString(centerText(summary, m.width))
		b.WriteString("\n")
	}

	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderTabs renders the tab selector.
func (m ScoreboardModel) renderTabs() string {
	tabStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Padding(0, 1)
	activeTabStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Padding(0, 1)

	tabs := make([]string, 0, 2)
	for _, t := range []ScoreboardTab{TabBest, TabRecent} {
		if t == m.tab {
			tabs = append(tabs, activeTabStyle.Render(t.String()))
		} else {
			tabs = append(tabs, tabStyle.Render(t.String()))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

// renderTableContent renders the table or empty message.
func (m ScoreboardModel) renderTableContent() string {
	if len(m.solves) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		return emptyStyle.Render("No solves recorded yet.\nFinish a level to get on the board!")
	}

	return m.table.View()
}

// Tab returns the active tab.
func (m ScoreboardModel) Tab() ScoreboardTab {
	return m.tab
}

// Rows returns the number of solves listed.
func (m ScoreboardModel) Rows() int {
	return len(m.solves)
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard runs the scoreboard as its own program.
func RunScoreboard(store *storage.Store, gameID, player string, width, height int) error {
	model := NewScoreboardModel(store, gameID, player, width, height)
	model.standalone = true

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
