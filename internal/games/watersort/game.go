// Package watersort implements the playable water sort puzzle on top of the
// pure logic in the core subpackage: cursor and selection handling, level
// progression, pour staging and rendering.
package watersort

import (
	"io"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/watersort/internal/config"
	"github.com/vovakirdan/watersort/internal/core"
	wcore "github.com/vovakirdan/watersort/internal/games/watersort/core"
	"github.com/vovakirdan/watersort/internal/registry"
)

// Mode represents the game mode.
type Mode string

const (
	ModeCampaign Mode = "campaign"
	ModePractice Mode = "practice"
)

const (
	GameID         = "watersort"
	PracticeGameID = "watersort_practice"
)

// Recorder observes level and pour events. The metrics package implements it.
type Recorder interface {
	LevelGenerated(lvl *wcore.Level)
	Poured(res wcore.PourResult, err error)
	LevelFinished(lvl *wcore.Level, outcome core.Outcome, pours int)
}

// Game implements the water sort puzzle.
type Game struct {
	mode     Mode
	cfg      config.WaterSortConfig
	gen      *wcore.Generator
	profiles *config.DifficultyManager
	logger   *log.Logger
	recorder Recorder

	rng  *rand.Rand
	tick uint64

	fixed      *wcore.Level // level loaded from a file, replayed on restart
	level      *wcore.Level
	levelIndex int

	cursor   int
	selected int // -1 when nothing is held
	pours    int
	outcome  core.Outcome

	lastPour   wcore.PourResult
	stageTicks int // ticks left in the current pour stage
	stageLen   int

	screenW  int
	screenH  int
	paused   bool
	tooSmall bool
}

// New creates a campaign game with the default configuration.
func New() *Game {
	return newGame(ModeCampaign)
}

// NewPractice creates a game whose level index never advances or persists.
func NewPractice() *Game {
	return newGame(ModePractice)
}

func newGame(mode Mode) *Game {
	g := &Game{
		mode:     mode,
		logger:   log.New(io.Discard),
		selected: -1,
	}
	g.Configure(config.DefaultWaterSortConfig())
	return g
}

func init() {
	registry.Register(GameID, func() registry.Game {
		return New()
	})
	registry.Register(PracticeGameID, func() registry.Game {
		return NewPractice()
	})
}

// Configure replaces the generation and difficulty configuration.
// It takes effect on the next generated level.
func (g *Game) Configure(cfg config.WaterSortConfig) {
	g.cfg = cfg
	g.gen = wcore.NewGenerator(cfg.GenParams())
	g.profiles = config.NewDifficultyManager(cfg)
}

// SetPreset overrides the configured difficulty preset.
func (g *Game) SetPreset(p config.DifficultyPreset) {
	g.profiles.SetPreset(p)
}

// SetLogger sets the logger used for level and pour events.
func (g *Game) SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard)
	}
	g.logger = l
}

// SetRecorder attaches an event recorder. nil detaches it.
func (g *Game) SetRecorder(r Recorder) {
	g.recorder = r
}

// SetFixedLevel makes the game play the given layout instead of generating
// levels. Restart replays it; there is no next level.
func (g *Game) SetFixedLevel(lvl *wcore.Level) {
	g.fixed = lvl
}

// ID returns the game identifier.
func (g *Game) ID() string {
	if g.mode == ModePractice {
		return PracticeGameID
	}
	return GameID
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.mode == ModePractice {
		return "Water Sort (Practice)"
	}
	return "Water Sort"
}

// TracksProgress reports whether the platform should persist the level index.
func (g *Game) TracksProgress() bool {
	return g.mode == ModeCampaign && g.fixed == nil
}

// Reset seeds the game and builds the level named by cfg.Level.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.tick = 0
	g.paused = false

	g.levelIndex = cfg.Level
	if g.levelIndex < 1 {
		g.levelIndex = 1
	}

	g.Resize(cfg.ScreenW, cfg.ScreenH)
	g.loadLevel()
}

// Resize adapts the layout to a new screen size.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	g.checkScreenSize()
}

// loadLevel builds the level for the current index and clears per-level state.
func (g *Game) loadLevel() {
	g.cursor = 0
	g.selected = -1
	g.pours = 0
	g.outcome = core.OutcomeNone
	g.stageTicks = 0
	g.lastPour = wcore.PourResult{}

	if g.fixed != nil {
		g.level = g.fixed.Clone()
		g.levelIndex = g.fixed.Index
		g.checkScreenSize()
		return
	}

	profile := g.profiles.ProfileFor(g.levelIndex)
	g.level = g.gen.Generate(profile, g.levelIndex, g.rng)
	g.logger.Info("Level generated",
		"level", g.levelIndex,
		"profile", profile.Name,
		"requested", g.level.Stats.Requested,
		"accepted", g.level.Stats.Accepted,
		"draws", g.level.Stats.Draws,
		"broken", g.level.Stats.Broken)
	if g.recorder != nil {
		g.recorder.LevelGenerated(g.level)
	}
	g.checkScreenSize()
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++
	var events []core.Event

	if g.tooSmall {
		return g.result(events)
	}

	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return g.result(events)
	}

	// Restart is always available, also in the middle of a pour stage.
	if in.Has(core.ActionRestart) {
		g.logger.Debug("Level restarted", "level", g.levelIndex, "pours", g.pours)
		g.loadLevel()
		return g.result(append(events, core.EventLevelChanged))
	}

	if g.stageTicks > 0 {
		g.stageTicks--
		if g.stageTicks == 0 {
			events = g.evaluate(events)
		}
		return g.result(events)
	}

	switch g.outcome {
	case core.OutcomeWon:
		if in.Has(core.ActionConfirm) && g.fixed == nil {
			events = g.nextLevel(events)
		}
		return g.result(events)
	case core.OutcomeStuck:
		return g.result(events)
	}

	n := g.level.Len()
	switch {
	case in.Has(core.ActionLeft):
		g.cursor = core.Wrap(g.cursor-1, n)
	case in.Has(core.ActionRight):
		g.cursor = core.Wrap(g.cursor+1, n)
	}
	if in.Has(core.ActionBack) {
		g.selected = -1
	}

	target := -1
	if in.Pick > 0 && in.Pick <= n {
		g.cursor = in.Pick - 1
		target = g.cursor
	} else if in.Has(core.ActionSelect) || in.Has(core.ActionConfirm) {
		target = g.cursor
	}
	if target >= 0 {
		events = g.click(target, events)
	}

	return g.result(events)
}

// click applies a selection on bottle i: pick up a source, drop the current
// selection, or pour into i.
func (g *Game) click(i int, events []core.Event) []core.Event {
	if g.selected < 0 {
		b := g.level.Bottle(i)
		if b.IsEmpty() || b.IsCompleted() {
			return events
		}
		g.selected = i
		return events
	}

	if g.selected == i {
		g.selected = -1
		return events
	}

	src := g.selected
	g.selected = -1

	res, err := g.level.Pour(src, i)
	if g.recorder != nil {
		g.recorder.Poured(res, err)
	}
	if err != nil {
		g.logger.Debug("Pour rejected", "from", src, "to", i, "err", err)
		return append(events, core.EventPourRejected)
	}

	g.pours++
	g.lastPour = res
	events = append(events, core.EventPoured)
	if res.Completed {
		events = append(events, core.EventBottleCompleted)
	}

	g.stageLen = g.cfg.Display.PourTicks
	g.stageTicks = g.stageLen
	if g.stageTicks == 0 {
		events = g.evaluate(events)
	}
	return events
}

// evaluate checks the level once a pour has finished staging.
func (g *Game) evaluate(events []core.Event) []core.Event {
	switch g.level.Evaluate() {
	case wcore.StatusWon:
		g.outcome = core.OutcomeWon
	case wcore.StatusStuck:
		g.outcome = core.OutcomeStuck
	default:
		return events
	}

	g.logger.Info("Level finished",
		"level", g.levelIndex,
		"profile", g.level.Profile.Name,
		"outcome", g.outcome,
		"pours", g.pours)
	if g.recorder != nil {
		g.recorder.LevelFinished(g.level, g.outcome, g.pours)
	}
	return append(events, core.EventLevelFinished)
}

// nextLevel advances the index (campaign only) and builds the next level.
func (g *Game) nextLevel(events []core.Event) []core.Event {
	if g.mode == ModeCampaign {
		g.levelIndex++
	}
	g.loadLevel()
	return append(events, core.EventLevelChanged)
}

func (g *Game) result(events []core.Event) core.StepResult {
	return core.StepResult{State: g.State(), Events: events}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	s := core.GameState{
		Level:   g.levelIndex,
		Pours:   g.pours,
		Outcome: g.outcome,
		Busy:    g.stageTicks > 0,
		Paused:  g.paused || g.tooSmall,
	}
	if g.level != nil {
		s.Profile = g.level.Profile.Name
	}
	return s
}

// Level returns the level being played.
func (g *Game) Level() *wcore.Level {
	return g.level
}
