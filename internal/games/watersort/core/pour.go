package core

import (
	"errors"
	"fmt"
)

// ErrInvalidPour is returned when a pour violates a legality rule.
// It is expected during normal play; callers treat it as a no-op.
var ErrInvalidPour = errors.New("invalid pour")

// PourResult describes a completed pour.
type PourResult struct {
	Source    int    // Source bottle index (-1 when poured outside a Level)
	Target    int    // Target bottle index (-1 when poured outside a Level)
	Amount    int    // Units moved
	Color     Liquid // Color of the moved units
	Completed bool   // Whether the pour completed the target bottle
}

// CanPour reports whether target would accept source's top run.
// It does not check bottle identity; callers pass distinct bottles.
func CanPour(source, target *Bottle) bool {
	if source.IsEmpty() || target.IsFull() {
		return false
	}
	if target.IsEmpty() {
		return true
	}
	return source.Top() == target.Top()
}

// checkPour validates a pour and returns the amount that would move.
func checkPour(source, target *Bottle) (int, error) {
	switch {
	case source == target:
		return 0, fmt.Errorf("%w: source and target are the same bottle", ErrInvalidPour)
	case source.IsEmpty():
		return 0, fmt.Errorf("%w: source is empty", ErrInvalidPour)
	case target.IsFull():
		return 0, fmt.Errorf("%w: target is full", ErrInvalidPour)
	case !target.IsEmpty() && source.Top() != target.Top():
		return 0, fmt.Errorf("%w: %v does not match %v", ErrInvalidPour, source.Top(), target.Top())
	}

	amount := min(source.TopRunLength(), target.FreeSpace())
	if amount <= 0 {
		return 0, fmt.Errorf("%w: nothing to transfer", ErrInvalidPour)
	}
	return amount, nil
}

// Pour moves source's top run into target, as much as fits.
// Either all computed units move or, on error, neither bottle changes.
func Pour(source, target *Bottle) (PourResult, error) {
	amount, err := checkPour(source, target)
	if err != nil {
		return PourResult{Source: -1, Target: -1}, err
	}

	color := source.Top()
	cut := len(source.units) - amount
	target.units = append(target.units, source.units[cut:]...)
	source.units = source.units[:cut]

	return PourResult{
		Source:    -1,
		Target:    -1,
		Amount:    amount,
		Color:     color,
		Completed: target.IsCompleted(),
	}, nil
}
