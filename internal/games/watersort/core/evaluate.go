package core

// Status classifies a level.
type Status uint8

const (
	StatusPlayable Status = iota
	StatusWon
	StatusStuck
)

// String returns the string representation of a status.
func (s Status) String() string {
	switch s {
	case StatusPlayable:
		return "playable"
	case StatusWon:
		return "won"
	case StatusStuck:
		return "stuck"
	default:
		return "unknown"
	}
}

// IsWon returns true if every bottle is empty or completed.
func IsWon(bottles []*Bottle) bool {
	for _, b := range bottles {
		if b.IsEmpty() {
			continue
		}
		if !b.IsCompleted() {
			return false
		}
	}
	return true
}

// HasMove returns true if any non-empty, non-completed bottle can pour somewhere.
func HasMove(bottles []*Bottle) bool {
	_, _, ok := FindMove(bottles)
	return ok
}

// FindMove returns the first candidate pour in scan order, or ok=false.
func FindMove(bottles []*Bottle) (src, dst int, ok bool) {
	for i, s := range bottles {
		if s.IsEmpty() || s.IsCompleted() {
			continue
		}
		for j, d := range bottles {
			if i != j && CanPour(s, d) {
				return i, j, true
			}
		}
	}
	return -1, -1, false
}

// Evaluate classifies the bottles. Won takes precedence over Stuck.
func Evaluate(bottles []*Bottle) Status {
	if IsWon(bottles) {
		return StatusWon
	}
	if !HasMove(bottles) {
		return StatusStuck
	}
	return StatusPlayable
}
