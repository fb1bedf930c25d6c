// Package registry keeps the playable puzzle modes. Modes register a factory in
// init(), so the CLI and the SSH server can list and start them by ID.
package registry

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/watersort/internal/core"
)

// ErrUnknownGame is returned by Create for an unregistered ID.
var ErrUnknownGame = errors.New("registry: unknown game")

// Game is the interface a puzzle mode implements for the platform.
// Implementations hold pure logic; the platform owns input mapping, timing
// and rendering.
type Game interface {
	// ID returns a unique identifier used on the command line and in storage.
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Reset builds the level named by cfg.Level, seeded from cfg.Seed.
	Reset(cfg core.RuntimeConfig)

	// Step advances the simulation by one fixed tick.
	Step(in core.InputFrame) core.StepResult

	// Resize adapts the layout to a new screen size without resetting state.
	Resize(w, h int)

	// Render draws the current state into a pre-cleared screen buffer.
	Render(dst *core.Screen)

	// State returns the current level, pour count and outcome.
	State() core.GameState
}

// GameInfo contains metadata about a registered game.
type GameInfo struct {
	ID    string
	Title string
}

// Factory is a function that creates a new instance of a game.
type Factory func() Game

var (
	mu        sync.RWMutex
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
)

// Register adds a game factory. It panics on a duplicate ID.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}
	factories[id] = f
	titles[id] = f().Title()
}

// List returns all registered games sorted by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]GameInfo, 0, len(factories))
	for id := range factories {
		result = append(result, GameInfo{ID: id, Title: titles[id]})
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result
}

// Create instantiates a game by ID.
func Create(id string) (Game, error) {
	mu.RLock()
	f, ok := factories[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownGame, id)
	}
	return f(), nil
}

// Exists checks if a game with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
