package core

import (
	"errors"
	"fmt"
)

// ErrBottleIndex is returned when a bottle index is out of range.
var ErrBottleIndex = errors.New("bottle index out of range")

// Profile is a difficulty profile consumed by the generator.
type Profile struct {
	Name         string
	TotalBottles int
	EmptyBottles int
	ShuffleSteps int
}

// FilledBottles returns how many bottles start full.
func (p Profile) FilledBottles() int {
	return p.TotalBottles - p.EmptyBottles
}

// Validate checks the profile invariants.
func (p Profile) Validate() error {
	if p.TotalBottles < 2 {
		return fmt.Errorf("profile %q: total bottles must be at least 2, got %d", p.Name, p.TotalBottles)
	}
	if p.EmptyBottles < 0 || p.EmptyBottles >= p.TotalBottles {
		return fmt.Errorf("profile %q: empty bottles must be in [0, %d), got %d", p.Name, p.TotalBottles, p.EmptyBottles)
	}
	if p.ShuffleSteps < 0 {
		return fmt.Errorf("profile %q: shuffle steps must not be negative, got %d", p.Name, p.ShuffleSteps)
	}
	return nil
}

// Normalize clamps the profile into a valid range.
func (p Profile) Normalize() Profile {
	if p.TotalBottles < 2 {
		p.TotalBottles = 2
	}
	if p.EmptyBottles < 0 {
		p.EmptyBottles = 0
	}
	if p.EmptyBottles >= p.TotalBottles {
		p.EmptyBottles = p.TotalBottles - 1
	}
	if p.ShuffleSteps < 0 {
		p.ShuffleSteps = 0
	}
	return p
}

// Move is a single unconstrained unit move recorded by the generator.
type Move struct {
	From   int
	To     int
	Liquid Liquid
}

// GenStats describes how a level's shuffle went.
type GenStats struct {
	Requested int // Shuffle steps asked for
	Accepted  int // Shuffle steps performed
	Draws     int // Random draws consumed
	Broken    int // Perfect bottles broken up afterwards
}

// Level is an ordered collection of bottles plus generation metadata.
type Level struct {
	Index    int
	Profile  Profile
	Capacity int
	Bottles  []*Bottle
	Moves    []Move // Generation log, in application order
	Stats    GenStats
}

// NewLevel builds a level from an explicit bottom-to-top layout.
func NewLevel(capacity int, layout [][]Liquid) (*Level, error) {
	if len(layout) == 0 {
		return nil, errors.New("level has no bottles")
	}
	bottles := make([]*Bottle, len(layout))
	for i, units := range layout {
		b, err := NewBottle(capacity, units...)
		if err != nil {
			return nil, fmt.Errorf("bottle %d: %w", i, err)
		}
		bottles[i] = b
	}
	return &Level{Capacity: capacity, Bottles: bottles}, nil
}

// Len returns the number of bottles.
func (l *Level) Len() int {
	return len(l.Bottles)
}

// Bottle returns the bottle at index i, or nil if out of range.
func (l *Level) Bottle(i int) *Bottle {
	if i < 0 || i >= len(l.Bottles) {
		return nil
	}
	return l.Bottles[i]
}

// Pour pours bottle src into bottle dst.
func (l *Level) Pour(src, dst int) (PourResult, error) {
	source, target := l.Bottle(src), l.Bottle(dst)
	if source == nil || target == nil {
		return PourResult{Source: src, Target: dst}, fmt.Errorf("%w: %w (%d -> %d)", ErrInvalidPour, ErrBottleIndex, src, dst)
	}

	res, err := Pour(source, target)
	res.Source = src
	res.Target = dst
	return res, err
}

// Evaluate classifies the level.
func (l *Level) Evaluate() Status {
	return Evaluate(l.Bottles)
}

// TotalUnits returns the number of units across all bottles.
func (l *Level) TotalUnits() int {
	total := 0
	for _, b := range l.Bottles {
		total += b.Len()
	}
	return total
}

// CompletedCount returns how many bottles are completed.
func (l *Level) CompletedCount() int {
	n := 0
	for _, b := range l.Bottles {
		if b.IsCompleted() {
			n++
		}
	}
	return n
}

// Snapshot returns the bottle contents, bottom-to-top, as independent slices.
func (l *Level) Snapshot() [][]Liquid {
	out := make([][]Liquid, len(l.Bottles))
	for i, b := range l.Bottles {
		out[i] = b.Units()
	}
	return out
}

// Clone creates a deep copy of the level.
func (l *Level) Clone() *Level {
	bottles := make([]*Bottle, len(l.Bottles))
	for i, b := range l.Bottles {
		bottles[i] = b.Clone()
	}
	moves := make([]Move, len(l.Moves))
	copy(moves, l.Moves)

	return &Level{
		Index:    l.Index,
		Profile:  l.Profile,
		Capacity: l.Capacity,
		Bottles:  bottles,
		Moves:    moves,
		Stats:    l.Stats,
	}
}

// Unwind replays the generation log backwards on a copy of the level.
// On a freshly generated level the result is the sorted seed layout.
func (l *Level) Unwind() (*Level, error) {
	out := l.Clone()
	for i := len(out.Moves) - 1; i >= 0; i-- {
		m := out.Moves[i]
		from, to := out.Bottle(m.To), out.Bottle(m.From)
		if from == nil || to == nil {
			return nil, fmt.Errorf("move %d: %w", i, ErrBottleIndex)
		}
		u, err := from.Pop()
		if err != nil {
			return nil, fmt.Errorf("move %d: %w", i, err)
		}
		if u != m.Liquid {
			return nil, fmt.Errorf("move %d: expected %v on bottle %d, found %v", i, m.Liquid, m.To, u)
		}
		if err := to.Push(u); err != nil {
			return nil, fmt.Errorf("move %d: %w", i, err)
		}
	}
	out.Moves = nil
	return out, nil
}
