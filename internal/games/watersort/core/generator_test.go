package core_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/watersort/internal/games/watersort/core"
)

var testProfiles = []core.Profile{
	{Name: "Easy", TotalBottles: 5, EmptyBottles: 2, ShuffleSteps: 10},
	{Name: "Medium", TotalBottles: 7, EmptyBottles: 2, ShuffleSteps: 25},
	{Name: "Hard", TotalBottles: 9, EmptyBottles: 2, ShuffleSteps: 50},
	{Name: "Insane", TotalBottles: 12, EmptyBottles: 1, ShuffleSteps: 80},
}

// scriptedRand replays a fixed sequence of values.
type scriptedRand struct {
	values []int
	pos    int
}

func (r *scriptedRand) Intn(n int) int {
	v := r.values[r.pos%len(r.values)] % n
	r.pos++
	return v
}

func TestSeedLayout(t *testing.T) {
	gen := core.NewGenerator(core.GenParams{Palette: []core.Liquid{R, B}})
	seed := gen.Seed(core.Profile{TotalBottles: 5, EmptyBottles: 2})

	require.Len(t, seed, 5)
	want := []string{"[RRRR]", "[BBBB]", "[RRRR]", "[....]", "[....]"}
	for i, b := range seed {
		assert.Equal(t, want[i], b.String(), "bottle %d", i)
	}
}

func TestShuffleStepsScaleWithLevel(t *testing.T) {
	gen := core.NewGenerator(core.DefaultGenParams())
	p := core.Profile{TotalBottles: 5, EmptyBottles: 2, ShuffleSteps: 10}

	assert.Equal(t, 10, gen.ShuffleSteps(p, 0))
	assert.Equal(t, 16, gen.ShuffleSteps(p, 3))
	assert.Equal(t, 10, gen.ShuffleSteps(p, -4))
}

func TestGenerateDeterministic(t *testing.T) {
	for _, p := range testProfiles {
		a := core.Generate(p, 7, rand.New(rand.NewSource(42)))
		b := core.Generate(p, 7, rand.New(rand.NewSource(42)))
		assert.Equal(t, a.Snapshot(), b.Snapshot(), "profile %s", p.Name)
		assert.Equal(t, a.Moves, b.Moves, "profile %s", p.Name)
	}
}

func TestGenerateConservesUnits(t *testing.T) {
	for _, p := range testProfiles {
		for seed := int64(1); seed <= 50; seed++ {
			lvl := core.Generate(p, int(seed), rand.New(rand.NewSource(seed)))

			require.Len(t, lvl.Bottles, p.TotalBottles)
			assert.Equal(t, p.FilledBottles()*lvl.Capacity, lvl.TotalUnits(), "profile %s seed %d", p.Name, seed)
			for i, b := range lvl.Bottles {
				assert.LessOrEqual(t, b.Len(), b.Capacity(), "profile %s seed %d bottle %d", p.Name, seed, i)
			}
		}
	}
}

func TestGenerateUnwindsToSeed(t *testing.T) {
	for _, p := range testProfiles {
		for seed := int64(1); seed <= 50; seed++ {
			gen := core.NewGenerator(core.DefaultGenParams())
			lvl := gen.Generate(p, int(seed), rand.New(rand.NewSource(seed)))

			sorted, err := lvl.Unwind()
			require.NoError(t, err, "profile %s seed %d", p.Name, seed)

			want := gen.Seed(p)
			for i, b := range sorted.Bottles {
				assert.Equal(t, want[i].String(), b.String(), "profile %s seed %d bottle %d", p.Name, seed, i)
			}
		}
	}
}

func TestGenerateLeavesNoPerfectBottle(t *testing.T) {
	for _, p := range testProfiles {
		for seed := int64(1); seed <= 200; seed++ {
			lvl := core.Generate(p, int(seed), rand.New(rand.NewSource(seed)))
			broken := lvl.Moves[lvl.Stats.Accepted:]
			for i, b := range lvl.Bottles {
				if !b.IsCompleted() {
					continue
				}
				// Only a unit broken off a later bottle may complete one already scanned.
				refilled := false
				for _, m := range broken {
					if m.To == i && m.From > i {
						refilled = true
					}
				}
				assert.True(t, refilled, "profile %s seed %d bottle %d: %s", p.Name, seed, i, b)
			}
		}
	}
}

func TestGenerateRespectsShuffleRules(t *testing.T) {
	p := testProfiles[1]
	lvl := core.Generate(p, 3, rand.New(rand.NewSource(9)))

	shuffled := lvl.Moves[:lvl.Stats.Accepted]
	for i, m := range shuffled {
		assert.NotEqual(t, m.From, m.To, "move %d", i)
		if i > 0 {
			assert.NotEqual(t, shuffled[i-1].From, m.To, "move %d undoes the previous one", i)
		}
	}
	assert.Equal(t, lvl.Stats.Accepted+lvl.Stats.Broken, len(lvl.Moves))
	assert.LessOrEqual(t, lvl.Stats.Draws, lvl.Stats.Requested*10)
}

func TestGenerateStopsWhenDrawsRunOut(t *testing.T) {
	// Every draw picks the same bottle twice, so nothing is ever accepted.
	rng := &scriptedRand{values: []int{0}}
	p := core.Profile{Name: "Stuck", TotalBottles: 3, EmptyBottles: 1, ShuffleSteps: 5}

	lvl := core.Generate(p, 0, rng)

	assert.Equal(t, 0, lvl.Stats.Accepted)
	assert.Equal(t, 50, lvl.Stats.Draws)
	// Both seed bottles were still perfect and got broken up.
	assert.Equal(t, 2, lvl.Stats.Broken)
	for i, b := range lvl.Bottles {
		assert.False(t, b.IsCompleted(), "bottle %d: %s", i, b)
	}
}

func TestBreakPerfectBottlesUsesFirstBottleWithRoom(t *testing.T) {
	// Zero shuffle steps leave the seed untouched for the break pass.
	gen := core.NewGenerator(core.GenParams{Palette: []core.Liquid{R}})
	lvl := gen.Generate(core.Profile{TotalBottles: 3, EmptyBottles: 1}, 0, rand.New(rand.NewSource(1)))

	// Bottle 0 skips the full bottle 1 and gives its unit to bottle 2. Bottle 1
	// then gives its unit to bottle 0, which completes it again.
	assert.Equal(t, []string{"[RRRR]", "[RRR.]", "[R...]"}, layout(lvl))
	assert.Equal(t, []core.Move{
		{From: 0, To: 2, Liquid: R},
		{From: 1, To: 0, Liquid: R},
	}, lvl.Moves)
	assert.Equal(t, 2, lvl.Stats.Broken)
}

func TestBreakPerfectBottlesScansCurrentLayout(t *testing.T) {
	// One shuffle move, bottle 1 to bottle 2.
	gen := core.NewGenerator(core.GenParams{Palette: []core.Liquid{R}})
	p := core.Profile{TotalBottles: 3, EmptyBottles: 1, ShuffleSteps: 1}
	lvl := gen.Generate(p, 0, &scriptedRand{values: []int{1, 2}})

	require.Equal(t, 1, lvl.Stats.Accepted)
	// Bottle 0 refills bottle 1, which is broken again when its turn comes.
	assert.Equal(t, []core.Move{
		{From: 1, To: 2, Liquid: R},
		{From: 0, To: 1, Liquid: R},
		{From: 1, To: 0, Liquid: R},
	}, lvl.Moves)
	assert.Equal(t, []string{"[RRRR]", "[RRR.]", "[R...]"}, layout(lvl))
}

func layout(lvl *core.Level) []string {
	out := make([]string, lvl.Len())
	for i := range out {
		out[i] = lvl.Bottle(i).String()
	}
	return out
}

func TestGenerateNormalizesProfile(t *testing.T) {
	lvl := core.Generate(core.Profile{TotalBottles: 1, EmptyBottles: 3, ShuffleSteps: -1}, 0, rand.New(rand.NewSource(1)))

	require.Len(t, lvl.Bottles, 2)
	assert.NoError(t, lvl.Profile.Validate())
}

func TestProfileValidate(t *testing.T) {
	assert.NoError(t, testProfiles[0].Validate())
	assert.Error(t, core.Profile{TotalBottles: 1}.Validate())
	assert.Error(t, core.Profile{TotalBottles: 4, EmptyBottles: 4}.Validate())
	assert.Error(t, core.Profile{TotalBottles: 4, EmptyBottles: -1}.Validate())
	assert.Error(t, core.Profile{TotalBottles: 4, ShuffleSteps: -2}.Validate())
}
