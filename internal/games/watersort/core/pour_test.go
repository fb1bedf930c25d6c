package core_test

import (
	"errors"
	"testing"

	"github.com/vovakirdan/watersort/internal/games/watersort/core"
)

func TestPourWholeBottleIntoEmpty(t *testing.T) {
	a := bottle(t, R, R, R, R)
	b := bottle(t)

	res, err := core.Pour(a, b)
	if err != nil {
		t.Fatalf("Pour failed: %v", err)
	}
	if res.Amount != 4 || res.Color != R {
		t.Errorf("result = %+v, want 4 red", res)
	}
	if !a.IsEmpty() {
		t.Errorf("source should be empty, got %v", a)
	}
	if !b.IsCompleted() {
		t.Errorf("target should be completed, got %v", b)
	}
	if !res.Completed {
		t.Error("result should report the completed target")
	}
	if got := core.Evaluate([]*core.Bottle{a, b}); got != core.StatusWon {
		t.Errorf("Evaluate = %v, want won", got)
	}
}

func TestPourLimitedByRunAndSpace(t *testing.T) {
	a := bottle(t, R, B, B, B)
	b := bottle(t, B)

	res, err := core.Pour(a, b)
	if err != nil {
		t.Fatalf("Pour failed: %v", err)
	}
	if res.Amount != 3 {
		t.Errorf("expected 3 units moved, got %d", res.Amount)
	}
	if a.String() != "[R...]" {
		t.Errorf("source = %s, want [R...]", a)
	}
	if b.String() != "[BBBB]" {
		t.Errorf("target = %s, want [BBBB]", b)
	}
}

func TestPourLimitedBySpace(t *testing.T) {
	a := bottle(t, B, B, B)
	b := bottle(t, R, B, B)

	res, err := core.Pour(a, b)
	if err != nil {
		t.Fatalf("Pour failed: %v", err)
	}
	if res.Amount != 1 {
		t.Errorf("expected 1 unit moved, got %d", res.Amount)
	}
	if a.Len() != 2 || b.Len() != 4 {
		t.Errorf("unexpected lengths: source %d, target %d", a.Len(), b.Len())
	}
	if res.Completed {
		t.Error("mixed target must not be reported completed")
	}
}

func TestPourInvalid(t *testing.T) {
	full := bottle(t, B, B, B, B)
	tests := []struct {
		name   string
		source *core.Bottle
		target *core.Bottle
	}{
		{"color mismatch", bottle(t, R), bottle(t, B)},
		{"empty source", bottle(t), bottle(t, B)},
		{"full target", bottle(t, B), bottle(t, R, B, B, B)},
		{"same bottle", full, full},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := tt.source.String() + tt.target.String()

			res, err := core.Pour(tt.source, tt.target)
			if !errors.Is(err, core.ErrInvalidPour) {
				t.Fatalf("expected ErrInvalidPour, got %v", err)
			}
			if res.Amount != 0 {
				t.Errorf("failed pour reported amount %d", res.Amount)
			}
			if after := tt.source.String() + tt.target.String(); after != before {
				t.Errorf("failed pour mutated bottles: %s -> %s", before, after)
			}
		})
	}
}

func TestLevelPourIndices(t *testing.T) {
	lvl, err := core.NewLevel(4, [][]core.Liquid{{R, B}, {B}, {}})
	if err != nil {
		t.Fatalf("NewLevel failed: %v", err)
	}

	res, err := lvl.Pour(0, 1)
	if err != nil {
		t.Fatalf("Pour(0, 1) failed: %v", err)
	}
	if res.Source != 0 || res.Target != 1 || res.Amount != 1 {
		t.Errorf("unexpected result %+v", res)
	}

	if _, err := lvl.Pour(0, 0); !errors.Is(err, core.ErrInvalidPour) {
		t.Errorf("Pour(0, 0): expected ErrInvalidPour, got %v", err)
	}
	if _, err := lvl.Pour(0, 7); !errors.Is(err, core.ErrBottleIndex) {
		t.Errorf("Pour(0, 7): expected ErrBottleIndex, got %v", err)
	}
	if _, err := lvl.Pour(-1, 2); !errors.Is(err, core.ErrInvalidPour) {
		t.Errorf("Pour(-1, 2): expected ErrInvalidPour, got %v", err)
	}
}

func TestPourConservesUnitsForAllPairs(t *testing.T) {
	palette := []core.Liquid{R, B}
	// Every bottle with up to 4 units drawn from two colors.
	var all [][]core.Liquid
	var build func(prefix []core.Liquid)
	build = func(prefix []core.Liquid) {
		all = append(all, append([]core.Liquid(nil), prefix...))
		if len(prefix) == 4 {
			return
		}
		for _, c := range palette {
			build(append(prefix, c))
		}
	}
	build(nil)

	for _, su := range all {
		for _, tu := range all {
			src := bottle(t, su...)
			dst := bottle(t, tu...)
			want := core.CanPour(src, dst)
			total := src.Len() + dst.Len()

			_, err := core.Pour(src, dst)
			if (err == nil) != want {
				t.Fatalf("Pour(%v, %v) err=%v, CanPour=%v", su, tu, err, want)
			}
			if got := src.Len() + dst.Len(); got != total {
				t.Fatalf("Pour(%v, %v) changed unit count from %d to %d", su, tu, total, got)
			}
			if src.Len() > src.Capacity() || dst.Len() > dst.Capacity() {
				t.Fatalf("Pour(%v, %v) overfilled: src=%s dst=%s", su, tu, src, dst)
			}
			if err != nil && (src.Len() != len(su) || dst.Len() != len(tu)) {
				t.Fatalf("rejected Pour(%v, %v) changed the bottles: src=%s dst=%s", su, tu, src, dst)
			}
		}
	}
}
