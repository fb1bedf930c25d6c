package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/watersort/internal/core"
	"github.com/vovakirdan/watersort/internal/registry"
)

type sessionMode int

const (
	modeMenu sessionMode = iota
	modeGame
	modeScores
)

// SessionModel manages the full session flow: menu -> game or scores -> menu.
// It is the top-level model for SSH sessions and the local menu.
type SessionModel struct {
	opts       Options
	config     core.RuntimeConfig
	mode       sessionMode
	menu       MenuModel
	game       *Model
	scores     ScoreboardModel
	lastGameID string
	quitting   bool
}

// NewSessionModel creates a new session model.
func NewSessionModel(cfg core.RuntimeConfig, opts Options) SessionModel {
	opts = opts.withDefaults()
	opts.InMenu = true

	m := SessionModel{
		opts:   opts,
		config: cfg,
		menu:   NewMenuModel(opts.Store, opts.Player, cfg.ScreenW, cfg.ScreenH),
	}
	if games := registry.List(); len(games) > 0 {
		m.lastGameID = games[0].ID
	}
	return m
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle window resize globally
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.mode {
	case modeGame:
		return m.updateGame(msg)
	case modeScores:
		return m.updateScores(msg)
	}
	return m.updateMenu(msg)
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Stale ticks from a finished game are dropped
	if _, ok := msg.(TickMsg); ok {
		return m, nil
	}

	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	if m.menu.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	selected := m.menu.Selected()
	if selected == nil {
		return m, cmd
	}

	switch selected.Kind {
	case MenuKindScores:
		m.scores = NewScoreboardModel(m.opts.Store, m.lastGameID, m.opts.Player, m.config.ScreenW, m.config.ScreenH)
		m.mode = modeScores
		return m, m.scores.Init()

	case MenuKindGame:
		game, err := registry.Create(selected.GameID)
		if err != nil {
			m.opts.Logger.Error("Could not create game", "game", selected.GameID, "err", err)
			m.resetMenu()
			return m, nil
		}
		if m.opts.Setup != nil {
			m.opts.Setup(game)
		}

		cfg := m.config
		cfg.Level = 0
		gameModel := NewModel(game, cfg, m.opts)
		m.game = &gameModel
		m.lastGameID = selected.GameID
		m.mode = modeGame
		return m, m.game.Init()
	}

	return m, cmd
}

// updateGame handles updates when in game mode.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.game.Update(msg)
	if gameModel, ok := newModel.(Model); ok {
		m.game = &gameModel
	}

	if m.game.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.game.BackToMenu() {
		m.game = nil
		m.resetMenu()
		return m, nil
	}

	return m, cmd
}

// updateScores handles updates when the scoreboard is shown.
func (m SessionModel) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.scores.Update(msg)
	if scores, ok := newModel.(ScoreboardModel); ok {
		m.scores = scores
	}

	if m.scores.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.scores.IsGoingBack() {
		m.resetMenu()
		return m, nil
	}
	return m, cmd
}

// resetMenu returns to a fresh menu with up to date progress.
func (m *SessionModel) resetMenu() {
	m.mode = modeMenu
	m.menu = NewMenuModel(m.opts.Store, m.opts.Player, m.config.ScreenW, m.config.ScreenH)
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.mode {
	case modeGame:
		return m.game.View()
	case modeScores:
		return m.scores.View()
	}
	return m.menu.View()
}

// RunSession starts the menu-driven session in the local terminal.
func RunSession(cfg core.RuntimeConfig, opts Options) error {
	p := tea.NewProgram(
		NewSessionModel(cfg, opts),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	_, err := p.Run()
	return err
}
