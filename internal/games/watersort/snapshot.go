package watersort

import "github.com/vovakirdan/watersort/internal/core"

// GameStateType represents the current game state.
type GameStateType string

const (
	StatePlaying     GameStateType = "playing"
	StatePouring     GameStateType = "pouring"
	StateWon         GameStateType = "won"
	StateStuck       GameStateType = "stuck"
	StatePaused      GameStateType = "paused"
	StatePausedSmall GameStateType = "paused_small_window"
)

// Snapshot captures the complete game state for determinism testing and replay.
type Snapshot struct {
	Tick     uint64
	Mode     string
	Level    int
	Profile  string
	Bottles  []string // bottom-to-top, e.g. "[RB..]"
	Cursor   int
	Selected int
	Pours    int
	State    GameStateType
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	state := StatePlaying
	switch {
	case g.tooSmall:
		state = StatePausedSmall
	case g.paused:
		state = StatePaused
	case g.stageTicks > 0:
		state = StatePouring
	case g.outcome == core.OutcomeWon:
		state = StateWon
	case g.outcome == core.OutcomeStuck:
		state = StateStuck
	}

	bottles := make([]string, 0, g.level.Len())
	for _, b := range g.level.Bottles {
		bottles = append(bottles, b.String())
	}

	return Snapshot{
		Tick:     g.tick,
		Mode:     string(g.mode),
		Level:    g.levelIndex,
		Profile:  g.level.Profile.Name,
		Bottles:  bottles,
		Cursor:   g.cursor,
		Selected: g.selected,
		Pours:    g.pours,
		State:    state,
	}
}
