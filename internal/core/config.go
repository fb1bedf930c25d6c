package core

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
	Level    int   // Level index to start from (1-based, 0 means first level)
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
		Level:    1,
	}
}

// Outcome is how a played level ended.
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeWon
	OutcomeStuck
)

func (o Outcome) String() string {
	switch o {
	case OutcomeWon:
		return "won"
	case OutcomeStuck:
		return "stuck"
	default:
		return "none"
	}
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Level   int     // Current level index
	Profile string  // Difficulty profile name of the current level
	Pours   int     // Successful pours on the current level
	Outcome Outcome // Set once the level is won or stuck
	Busy    bool    // A pour is still being staged; input is ignored
	Paused  bool    // Whether the game is paused
}

// Finished reports whether the current level has ended.
func (s GameState) Finished() bool {
	return s.Outcome != OutcomeNone
}

// Event is something that happened during a tick that the platform may react to.
type Event int

const (
	EventNone Event = iota
	EventPoured
	EventPourRejected
	EventBottleCompleted
	EventLevelFinished
	EventLevelChanged
)

// StepResult is returned by Game.Step() after each simulation tick.
// Contains the updated game state and any events that occurred.
type StepResult struct {
	State  GameState
	Events []Event
}

// Has reports whether the tick produced the given event.
func (r StepResult) Has(e Event) bool {
	for _, got := range r.Events {
		if got == e {
			return true
		}
	}
	return false
}
