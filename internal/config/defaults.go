package config

import (
	_ "embed"

	"github.com/vovakirdan/watersort/internal/games/watersort/core"
)

//go:embed defaults/watersort.yaml
var defaultWaterSortYAML []byte

// DefaultWaterSortConfig returns the built-in configuration. It matches the
// embedded defaults/watersort.yaml and is used when that file cannot be parsed.
func DefaultWaterSortConfig() WaterSortConfig {
	palette := make([]string, 0, int(core.LiquidCount))
	for _, l := range core.AllLiquids() {
		palette = append(palette, l.String())
	}

	return WaterSortConfig{
		Generator: GeneratorConfig{
			Capacity:        core.DefaultCapacity,
			Palette:         palette,
			ShufflePerLevel: 2,
			AttemptFactor:   10,
		},
		Profiles: []ProfileConfig{
			{Name: "Easy", MaxLevel: 5, TotalBottles: 5, EmptyBottles: 2, ShuffleSteps: 10},
			{Name: "Medium", MaxLevel: 15, TotalBottles: 7, EmptyBottles: 2, ShuffleSteps: 25},
			{Name: "Hard", MaxLevel: 30, TotalBottles: 9, EmptyBottles: 2, ShuffleSteps: 50},
			{Name: "Insane", TotalBottles: 12, EmptyBottles: 1, ShuffleSteps: 80},
		},
		Difficulty: DifficultyConfig{
			Preset: DifficultyNormal,
		},
		Display: DisplayConfig{
			PourTicks: 12,
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultWaterSortYAML
}
