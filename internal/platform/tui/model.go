package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/watersort/internal/core"
	"github.com/vovakirdan/watersort/internal/registry"
	"github.com/vovakirdan/watersort/internal/storage"
)

// Rows reserved below the board for the short and the full help bar.
const (
	helpHeight     = 1
	fullHelpHeight = 4
)

// progressTracker is implemented by games whose level index is persisted.
type progressTracker interface {
	TracksProgress() bool
}

// hitTester is implemented by games that map a screen cell to a bottle.
type hitTester interface {
	HitTest(x, y int) int
}

// Options configures persistence and logging for a game model.
type Options struct {
	Store  *storage.Store
	Player string
	Logger *log.Logger

	// InMenu makes esc on a finished or paused level return to the menu
	// instead of reaching the game.
	InMenu bool

	// Setup configures games created from the session menu.
	Setup func(registry.Game)
}

func (o Options) withDefaults() Options {
	if o.Player == "" {
		o.Player = storage.LocalPlayer
	}
	if o.Logger == nil {
		o.Logger = log.New(io.Discard)
	}
	return o
}

// Model is the Bubble Tea model for running a game.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	opts       Options
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	gameState  core.GameState
	keys       KeyMap
	help       help.Model

	runID      string
	levelStart time.Time
	now        func() time.Time

	quitting   bool
	backToMenu bool
}

// NewModel creates a Bubble Tea model for the given game. When the game
// tracks progress and cfg.Level is unset, the stored level is resumed.
func NewModel(game registry.Game, cfg core.RuntimeConfig, opts Options) Model {
	opts = opts.withDefaults()

	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	if cfg.Level <= 0 {
		cfg.Level = 1
		if tracksProgress(game) && opts.Store != nil {
			level, err := opts.Store.GetProgress(opts.Player, game.ID())
			if err != nil {
				opts.Logger.Warn("Could not load progress", "player", opts.Player, "err", err)
			} else if level > 0 {
				cfg.Level = level
			}
		}
	}

	h := help.New()
	h.Width = cfg.ScreenW

	m := Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, boardHeight(cfg.ScreenH)),
		opts:       opts,
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		keys:       DefaultKeyMap(),
		help:       h,
		now:        time.Now,
	}
	m.startRun()
	return m
}

func tracksProgress(game registry.Game) bool {
	t, ok := game.(progressTracker)
	return ok && t.TracksProgress()
}

func boardHeight(h int) int {
	return max(h-helpHeight, 0)
}

// resizeBoard fits the board above the help bar.
func (m *Model) resizeBoard() {
	rows := helpHeight
	if m.help.ShowAll {
		rows = fullHelpHeight
	}
	h := max(m.config.ScreenH-rows, 0)
	m.screen.Resize(m.config.ScreenW, h)
	m.game.Resize(m.config.ScreenW, h)
}

// startRun marks the start of a new attempt at the current level.
func (m *Model) startRun() {
	m.runID = uuid.NewString()
	m.levelStart = m.now()
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	game := m.config
	game.ScreenH = boardHeight(game.ScreenH)
	m.game.Reset(game)
	// gameState is set on the first tick (value receiver)

	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+s":
		m.saveScreenshot()
		return m, nil
	case "?":
		m.help.ShowAll = !m.help.ShowAll
		m.resizeBoard()
		return m, nil
	}

	if m.opts.InMenu && MapKeyToMenuAction(msg) == MenuActionBack &&
		(m.gameState.Finished() || m.gameState.Paused) {
		m.backToMenu = true
		return m, nil
	}

	if m.keys.Apply(msg, &m.inputFrame) {
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

// handleMouse turns a left click on a bottle into a pick.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}
	ht, ok := m.game.(hitTester)
	if !ok {
		return m, nil
	}
	if i := ht.HitTest(msg.X, msg.Y); i >= 0 {
		m.inputFrame.Pick = i + 1
	}
	return m, nil
}

// handleResize processes window resize events. The level is kept.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.help.Width = msg.Width
	m.resizeBoard()
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	if result.Has(core.EventLevelFinished) {
		m.recordFinish()
	}
	if result.Has(core.EventLevelChanged) {
		m.saveProgress(m.gameState.Level)
		m.startRun()
	}

	// Clear input for next frame
	m.inputFrame.Clear()

	// Continue ticking
	return m, tickCmd(m.config.TickRate)
}

// recordFinish stores the finished attempt and, on a campaign win, unlocks
// the next level.
func (m *Model) recordFinish() {
	if m.gameState.Outcome == core.OutcomeWon {
		m.saveProgress(m.gameState.Level + 1)
	}
	if m.opts.Store == nil {
		return
	}

	solve := storage.Solve{
		RunID:    m.runID,
		Player:   m.opts.Player,
		GameID:   m.game.ID(),
		Level:    m.gameState.Level,
		Profile:  m.gameState.Profile,
		Pours:    m.gameState.Pours,
		Duration: m.now().Sub(m.levelStart),
		Outcome:  m.gameState.Outcome.String(),
	}
	if _, err := m.opts.Store.SaveSolve(solve); err != nil {
		m.opts.Logger.Warn("Could not save solve", "run", m.runID, "err", err)
	}
}

func (m *Model) saveProgress(level int) {
	if m.opts.Store == nil || !tracksProgress(m.game) {
		return
	}
	if err := m.opts.Store.SetProgress(m.opts.Player, m.game.ID(), level); err != nil {
		m.opts.Logger.Warn("Could not save progress", "player", m.opts.Player, "level", level, "err", err)
	}
}

// saveScreenshot saves the current board to a text file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".watersort", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.opts.Logger.Warn("Could not create screenshot directory", "err", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.opts.Logger.Warn("Could not save screenshot", "err", err)
	}
}

var helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen) + "\n" + helpStyle.Render(m.help.View(m.keys))
}

// IsQuitting returns true if the user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if the user requested to go back to the menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run starts the Bubble Tea program for a single game.
func Run(game registry.Game, cfg core.RuntimeConfig, opts Options) error {
	model := NewModel(game, cfg, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	_, err := p.Run()
	return err
}
