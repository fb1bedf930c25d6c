package core_test

import (
	"testing"

	"github.com/vovakirdan/watersort/internal/games/watersort/core"
)

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name   string
		layout [][]core.Liquid
		want   core.Status
	}{
		{
			name:   "all completed or empty",
			layout: [][]core.Liquid{{R, R, R, R}, {}, {B, B, B, B}},
			want:   core.StatusWon,
		},
		{
			name:   "all empty",
			layout: [][]core.Liquid{{}, {}},
			want:   core.StatusWon,
		},
		{
			name:   "won with no moves left",
			layout: [][]core.Liquid{{R, R, R, R}, {B, B, B, B}},
			want:   core.StatusWon,
		},
		{
			name:   "move into empty bottle",
			layout: [][]core.Liquid{{R, B, R, B}, {B, R, B, R}, {}},
			want:   core.StatusPlayable,
		},
		{
			name:   "uniform but not full is not won",
			layout: [][]core.Liquid{{R, R}, {R, R}},
			want:   core.StatusPlayable,
		},
		{
			name:   "everything full and mixed",
			layout: [][]core.Liquid{{R, B, R, B}, {B, R, B, R}},
			want:   core.StatusStuck,
		},
		{
			name:   "tops differ and no space matches",
			layout: [][]core.Liquid{{R, B, R, B}, {B, R, B, R}, {G, Y, G}},
			want:   core.StatusStuck,
		},
		{
			name:   "matching top with space",
			layout: [][]core.Liquid{{R, B, R, B}, {B, R, B, R}, {G, Y, R}},
			want:   core.StatusPlayable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lvl, err := core.NewLevel(4, tt.layout)
			if err != nil {
				t.Fatalf("NewLevel failed: %v", err)
			}
			if got := lvl.Evaluate(); got != tt.want {
				t.Errorf("Evaluate() = %v, want %v", got, tt.want)
			}
			if again := lvl.Evaluate(); again != tt.want {
				t.Errorf("second Evaluate() = %v, want %v", again, tt.want)
			}
		})
	}
}

func TestFindMoveSkipsCompletedSources(t *testing.T) {
	lvl, err := core.NewLevel(4, [][]core.Liquid{{R, R, R, R}, {}, {B, G}})
	if err != nil {
		t.Fatalf("NewLevel failed: %v", err)
	}

	src, dst, ok := core.FindMove(lvl.Bottles)
	if !ok {
		t.Fatal("expected a move")
	}
	if src != 2 || dst != 1 {
		t.Errorf("FindMove = (%d, %d), want (2, 1)", src, dst)
	}
}
