package core

import (
	"errors"
	"fmt"
)

// DefaultCapacity is the number of units a bottle holds unless configured otherwise.
const DefaultCapacity = 4

var (
	// ErrBottleFull is returned by Push when the bottle has no free space.
	ErrBottleFull = errors.New("bottle is full")
	// ErrBottleEmpty is returned by Pop when the bottle holds no liquid.
	ErrBottleEmpty = errors.New("bottle is empty")
	// ErrInvalidLiquid is returned when the sentinel or an unknown color is stored.
	ErrInvalidLiquid = errors.New("invalid liquid")
	// ErrInvalidCapacity is returned when a bottle is built with capacity <= 0.
	ErrInvalidCapacity = errors.New("capacity must be positive")
)

// Bottle is a bounded LIFO stack of liquid units.
// Units are stored bottom-to-top; index len-1 is the top.
type Bottle struct {
	capacity int
	units    []Liquid
}

// NewBottle creates a bottle with the given capacity, pre-filled bottom-to-top.
func NewBottle(capacity int, units ...Liquid) (*Bottle, error) {
	if capacity <= 0 {
		return nil, ErrInvalidCapacity
	}
	if len(units) > capacity {
		return nil, fmt.Errorf("%w: %d units exceed capacity %d", ErrBottleFull, len(units), capacity)
	}

	b := &Bottle{
		capacity: capacity,
		units:    make([]Liquid, 0, capacity),
	}
	for _, u := range units {
		if !u.Valid() {
			return nil, fmt.Errorf("%w: %v", ErrInvalidLiquid, u)
		}
		b.units = append(b.units, u)
	}
	return b, nil
}

// Capacity returns the maximum number of units.
func (b *Bottle) Capacity() int {
	return b.capacity
}

// Len returns the number of stored units.
func (b *Bottle) Len() int {
	return len(b.units)
}

// IsEmpty returns true if the bottle holds no liquid.
func (b *Bottle) IsEmpty() bool {
	return len(b.units) == 0
}

// IsFull returns true if the bottle has no free space.
func (b *Bottle) IsFull() bool {
	return len(b.units) >= b.capacity
}

// FreeSpace returns how many more units fit.
func (b *Bottle) FreeSpace() int {
	return b.capacity - len(b.units)
}

// Top returns the top unit, or LiquidNone if empty.
func (b *Bottle) Top() Liquid {
	if len(b.units) == 0 {
		return LiquidNone
	}
	return b.units[len(b.units)-1]
}

// TopRunLength counts consecutive equal units from the top.
func (b *Bottle) TopRunLength() int {
	if len(b.units) == 0 {
		return 0
	}

	top := b.units[len(b.units)-1]
	count := 0
	for i := len(b.units) - 1; i >= 0; i-- {
		if b.units[i] != top {
			break
		}
		count++
	}
	return count
}

// IsUniform returns true if the bottle is non-empty and holds a single color.
func (b *Bottle) IsUniform() bool {
	return len(b.units) > 0 && b.TopRunLength() == len(b.units)
}

// IsCompleted returns true if the bottle is full of a single color.
func (b *Bottle) IsCompleted() bool {
	return b.IsFull() && b.IsUniform()
}

// Units returns a copy of the stored units, bottom-to-top.
func (b *Bottle) Units() []Liquid {
	out := make([]Liquid, len(b.units))
	copy(out, b.units)
	return out
}

// At returns the unit at slot i counted from the bottom, or LiquidNone if the slot is empty.
func (b *Bottle) At(i int) Liquid {
	if i < 0 || i >= len(b.units) {
		return LiquidNone
	}
	return b.units[i]
}

// Push adds a unit on top.
func (b *Bottle) Push(u Liquid) error {
	if !u.Valid() {
		return fmt.Errorf("%w: %v", ErrInvalidLiquid, u)
	}
	if b.IsFull() {
		return ErrBottleFull
	}
	b.units = append(b.units, u)
	return nil
}

// Pop removes and returns the top unit.
func (b *Bottle) Pop() (Liquid, error) {
	if len(b.units) == 0 {
		return LiquidNone, ErrBottleEmpty
	}
	top := b.units[len(b.units)-1]
	b.units = b.units[:len(b.units)-1]
	return top, nil
}

// Clone creates a deep copy of the bottle.
func (b *Bottle) Clone() *Bottle {
	units := make([]Liquid, len(b.units), b.capacity)
	copy(units, b.units)
	return &Bottle{capacity: b.capacity, units: units}
}

// String returns a compact bottom-to-top representation, e.g. "[RRB.]".
func (b *Bottle) String() string {
	buf := make([]rune, 0, b.capacity+2)
	buf = append(buf, '[')
	for i := 0; i < b.capacity; i++ {
		buf = append(buf, b.At(i).Char())
	}
	buf = append(buf, ']')
	return string(buf)
}
