package core

import (
	"math/rand"
	"time"
)

// Rand is the random source used by the generator.
// *math/rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
}

// GenParams configures level generation.
type GenParams struct {
	Capacity        int      // Units per bottle
	Palette         []Liquid // Colors assigned cyclically to seed bottles
	ShufflePerLevel int      // Extra shuffle steps per level index
	AttemptFactor   int      // Draw budget is steps * AttemptFactor
}

// DefaultGenParams returns sensible defaults for level generation.
func DefaultGenParams() GenParams {
	return GenParams{
		Capacity:        DefaultCapacity,
		Palette:         AllLiquids(),
		ShufflePerLevel: 2,
		AttemptFactor:   10,
	}
}

// normalize fills zero values with defaults and drops invalid palette entries.
func (p GenParams) normalize() GenParams {
	def := DefaultGenParams()
	if p.Capacity <= 0 {
		p.Capacity = def.Capacity
	}
	if p.ShufflePerLevel < 0 {
		p.ShufflePerLevel = 0
	}
	if p.AttemptFactor <= 0 {
		p.AttemptFactor = def.AttemptFactor
	}

	palette := make([]Liquid, 0, len(p.Palette))
	for _, l := range p.Palette {
		if l.Valid() {
			palette = append(palette, l)
		}
	}
	if len(palette) == 0 {
		palette = def.Palette
	}
	p.Palette = palette
	return p
}

// Generator builds solvable levels by shuffling a sorted seed backwards.
type Generator struct {
	params GenParams
}

// NewGenerator creates a generator. Zero-valued params fall back to defaults.
func NewGenerator(p GenParams) *Generator {
	return &Generator{params: p.normalize()}
}

// Params returns the effective generation parameters.
func (g *Generator) Params() GenParams {
	return g.params
}

// ShuffleSteps returns the shuffle budget for a profile at a level index.
func (g *Generator) ShuffleSteps(p Profile, levelIndex int) int {
	if levelIndex < 0 {
		levelIndex = 0
	}
	return p.Normalize().ShuffleSteps + g.params.ShufflePerLevel*levelIndex
}

// Seed returns the sorted starting layout: filled bottles with one color each
// (cycling through the palette) followed by the empty bottles.
func (g *Generator) Seed(p Profile) []*Bottle {
	p = p.Normalize()
	capacity := g.params.Capacity
	palette := g.params.Palette

	bottles := make([]*Bottle, 0, p.TotalBottles)
	for i := 0; i < p.FilledBottles(); i++ {
		color := palette[i%len(palette)]
		b := &Bottle{capacity: capacity, units: make([]Liquid, capacity)}
		for k := range b.units {
			b.units[k] = color
		}
		bottles = append(bottles, b)
	}
	for i := 0; i < p.EmptyBottles; i++ {
		bottles = append(bottles, &Bottle{capacity: capacity, units: make([]Liquid, 0, capacity)})
	}
	return bottles
}

// Generate builds a level for the profile at the given level index.
// A nil rng uses a time-seeded source. Generation never fails; an unlucky
// random sequence yields a level with fewer shuffle steps than requested.
func (g *Generator) Generate(p Profile, levelIndex int, rng Rand) *Level {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	p = p.Normalize()

	lvl := &Level{
		Index:    levelIndex,
		Profile:  p,
		Capacity: g.params.Capacity,
		Bottles:  g.Seed(p),
	}

	steps := g.ShuffleSteps(p, levelIndex)
	lvl.Stats.Requested = steps
	g.shuffle(lvl, steps, rng)
	g.breakPerfectBottles(lvl)

	return lvl
}

// shuffle performs random single-unit moves that ignore color matching.
func (g *Generator) shuffle(lvl *Level, steps int, rng Rand) {
	n := len(lvl.Bottles)
	maxDraws := steps * g.params.AttemptFactor
	lastSource := -1

	for lvl.Stats.Accepted < steps && lvl.Stats.Draws < maxDraws {
		lvl.Stats.Draws++
		src := rng.Intn(n)
		dst := rng.Intn(n)

		if src == dst {
			continue
		}
		if lvl.Bottles[src].IsEmpty() || lvl.Bottles[dst].IsFull() {
			continue
		}
		// Don't hand the unit straight back to where the last one came from
		if dst == lastSource {
			continue
		}

		lvl.move(src, dst)
		lastSource = src
		lvl.Stats.Accepted++
	}
}

// breakPerfectBottles makes a single pass over the bottles and moves the top
// unit off every bottle the shuffle left full and uniform, into the first other
// bottle with room. A later move may still complete a bottle already scanned.
func (g *Generator) breakPerfectBottles(lvl *Level) {
	for i, b := range lvl.Bottles {
		if !b.IsFull() || !b.IsUniform() {
			continue
		}
		for j, t := range lvl.Bottles {
			if j == i || t.IsFull() {
				continue
			}
			lvl.move(i, j)
			lvl.Stats.Broken++
			break
		}
	}
}

// move transfers one unit and records it. Callers check that src is
// non-empty and dst has room.
func (l *Level) move(src, dst int) {
	u := l.Bottles[src].units[len(l.Bottles[src].units)-1]
	l.Bottles[src].units = l.Bottles[src].units[:len(l.Bottles[src].units)-1]
	l.Bottles[dst].units = append(l.Bottles[dst].units, u)
	l.Moves = append(l.Moves, Move{From: src, To: dst, Liquid: u})
}

// Generate builds a level with default parameters.
func Generate(p Profile, levelIndex int, rng Rand) *Level {
	return NewGenerator(DefaultGenParams()).Generate(p, levelIndex, rng)
}
