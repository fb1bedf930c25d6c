package core_test

import (
	"errors"
	"testing"

	"github.com/vovakirdan/watersort/internal/games/watersort/core"
)

// bottle builds a capacity-4 bottle or fails the test.
func bottle(t *testing.T, units ...core.Liquid) *core.Bottle {
	t.Helper()
	b, err := core.NewBottle(4, units...)
	if err != nil {
		t.Fatalf("NewBottle(%v) failed: %v", units, err)
	}
	return b
}

const (
	R = core.LiquidRed
	B = core.LiquidBlue
	G = core.LiquidGreen
	Y = core.LiquidYellow
)

func TestNewBottleRejectsBadInput(t *testing.T) {
	if _, err := core.NewBottle(0); !errors.Is(err, core.ErrInvalidCapacity) {
		t.Errorf("capacity 0: expected ErrInvalidCapacity, got %v", err)
	}
	if _, err := core.NewBottle(2, R, R, R); !errors.Is(err, core.ErrBottleFull) {
		t.Errorf("overfilled: expected ErrBottleFull, got %v", err)
	}
	if _, err := core.NewBottle(4, R, core.LiquidNone); !errors.Is(err, core.ErrInvalidLiquid) {
		t.Errorf("sentinel unit: expected ErrInvalidLiquid, got %v", err)
	}
}

func TestBottleAccessors(t *testing.T) {
	tests := []struct {
		name      string
		units     []core.Liquid
		empty     bool
		full      bool
		top       core.Liquid
		free      int
		run       int
		uniform   bool
		completed bool
	}{
		{"empty", nil, true, false, core.LiquidNone, 4, 0, false, false},
		{"single", []core.Liquid{R}, false, false, R, 3, 1, true, false},
		{"mixed run", []core.Liquid{R, B, B, B}, false, true, B, 0, 3, false, false},
		{"broken run", []core.Liquid{B, R, B}, false, false, B, 1, 1, false, false},
		{"completed", []core.Liquid{G, G, G, G}, false, true, G, 0, 4, true, true},
		{"uniform partial", []core.Liquid{Y, Y, Y}, false, false, Y, 1, 3, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := bottle(t, tt.units...)
			if b.IsEmpty() != tt.empty {
				t.Errorf("IsEmpty() = %v, want %v", b.IsEmpty(), tt.empty)
			}
			if b.IsFull() != tt.full {
				t.Errorf("IsFull() = %v, want %v", b.IsFull(), tt.full)
			}
			if b.Top() != tt.top {
				t.Errorf("Top() = %v, want %v", b.Top(), tt.top)
			}
			if b.FreeSpace() != tt.free {
				t.Errorf("FreeSpace() = %d, want %d", b.FreeSpace(), tt.free)
			}
			if b.TopRunLength() != tt.run {
				t.Errorf("TopRunLength() = %d, want %d", b.TopRunLength(), tt.run)
			}
			if b.IsUniform() != tt.uniform {
				t.Errorf("IsUniform() = %v, want %v", b.IsUniform(), tt.uniform)
			}
			if b.IsCompleted() != tt.completed {
				t.Errorf("IsCompleted() = %v, want %v", b.IsCompleted(), tt.completed)
			}
		})
	}
}

func TestBottlePushPop(t *testing.T) {
	b := bottle(t)

	if _, err := b.Pop(); !errors.Is(err, core.ErrBottleEmpty) {
		t.Fatalf("Pop on empty: expected ErrBottleEmpty, got %v", err)
	}

	for i := 0; i < 4; i++ {
		if err := b.Push(R); err != nil {
			t.Fatalf("Push %d failed: %v", i, err)
		}
	}
	if err := b.Push(R); !errors.Is(err, core.ErrBottleFull) {
		t.Fatalf("Push on full: expected ErrBottleFull, got %v", err)
	}
	if b.Len() != 4 {
		t.Errorf("failed push changed length to %d", b.Len())
	}

	if err := b.Push(core.LiquidNone); err == nil {
		t.Error("pushing the sentinel should fail")
	}

	u, err := b.Pop()
	if err != nil || u != R {
		t.Errorf("Pop() = %v, %v; want red, nil", u, err)
	}
	if b.Len() != 3 {
		t.Errorf("expected 3 units after pop, got %d", b.Len())
	}
}

func TestBottleUnitsIsCopy(t *testing.T) {
	b := bottle(t, R, B)
	units := b.Units()
	units[0] = G

	if b.At(0) != R {
		t.Error("mutating Units() result changed the bottle")
	}
	if b.String() != "[RB..]" {
		t.Errorf("String() = %q, want %q", b.String(), "[RB..]")
	}
}

func TestBottleClone(t *testing.T) {
	b := bottle(t, R, R)
	c := b.Clone()
	if err := c.Push(B); err != nil {
		t.Fatalf("Push on clone failed: %v", err)
	}
	if b.Len() != 2 {
		t.Errorf("original changed after mutating clone: len %d", b.Len())
	}
}

func TestParseLiquid(t *testing.T) {
	for _, l := range core.AllLiquids() {
		got, ok := core.ParseLiquid(l.String())
		if !ok || got != l {
			t.Errorf("ParseLiquid(%q) = %v, %v", l.String(), got, ok)
		}
		got, ok = core.ParseLiquid(string(l.Char()))
		if !ok || got != l {
			t.Errorf("ParseLiquid(%q) = %v, %v", string(l.Char()), got, ok)
		}
	}
	if _, ok := core.ParseLiquid("none"); ok {
		t.Error("the sentinel must not parse")
	}
}
