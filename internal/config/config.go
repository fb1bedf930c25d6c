// Package config provides YAML-based configuration loading and difficulty
// profile lookup for the watersort game.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/vovakirdan/watersort/internal/games/watersort/core"
)

// ErrInvalidConfig is wrapped by every Validate failure.
var ErrInvalidConfig = errors.New("invalid config")

// WaterSortConfig contains all configuration for the watersort game.
type WaterSortConfig struct {
	Generator  GeneratorConfig  `yaml:"generator"`
	Profiles   []ProfileConfig  `yaml:"profiles"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
	Display    DisplayConfig    `yaml:"display"`
}

// GeneratorConfig defines level generation parameters.
type GeneratorConfig struct {
	Capacity        int      `yaml:"capacity"`
	Palette         []string `yaml:"palette"`
	ShufflePerLevel int      `yaml:"shuffle_per_level"`
	AttemptFactor   int      `yaml:"attempt_factor"`
}

// ProfileConfig is one row of the difficulty threshold table.
// MaxLevel 0 marks the open-ended last row.
type ProfileConfig struct {
	Name         string `yaml:"name"`
	MaxLevel     int    `yaml:"max_level"`
	TotalBottles int    `yaml:"total_bottles"`
	EmptyBottles int    `yaml:"empty_bottles"`
	ShuffleSteps int    `yaml:"shuffle_steps"`
}

// Profile converts the row to a generator profile.
func (p ProfileConfig) Profile() core.Profile {
	return core.Profile{
		Name:         p.Name,
		TotalBottles: p.TotalBottles,
		EmptyBottles: p.EmptyBottles,
		ShuffleSteps: p.ShuffleSteps,
	}
}

// DifficultyConfig selects how profiles are picked for a level index.
type DifficultyConfig struct {
	Preset       DifficultyPreset `yaml:"preset"`
	FixedProfile string           `yaml:"fixed_profile"` // used by the fixed preset
}

// DisplayConfig controls presentation timing.
type DisplayConfig struct {
	PourTicks int `yaml:"pour_ticks"` // ticks a pour is staged before the next input
}

// GenParams converts the generator section to core generation parameters.
// Unknown palette names are skipped; Validate reports them.
func (c WaterSortConfig) GenParams() core.GenParams {
	palette := make([]core.Liquid, 0, len(c.Generator.Palette))
	for _, name := range c.Generator.Palette {
		if l, ok := core.ParseLiquid(name); ok {
			palette = append(palette, l)
		}
	}
	return core.GenParams{
		Capacity:        c.Generator.Capacity,
		Palette:         palette,
		ShufflePerLevel: c.Generator.ShufflePerLevel,
		AttemptFactor:   c.Generator.AttemptFactor,
	}
}

// Validate checks the generator section and every profile row.
func (c WaterSortConfig) Validate() error {
	if c.Generator.Capacity <= 0 {
		return fmt.Errorf("%w: capacity must be positive, got %d", ErrInvalidConfig, c.Generator.Capacity)
	}
	if c.Generator.ShufflePerLevel < 0 {
		return fmt.Errorf("%w: shuffle_per_level must not be negative", ErrInvalidConfig)
	}
	if c.Generator.AttemptFactor <= 0 {
		return fmt.Errorf("%w: attempt_factor must be positive", ErrInvalidConfig)
	}
	if len(c.Generator.Palette) == 0 {
		return fmt.Errorf("%w: palette is empty", ErrInvalidConfig)
	}
	for _, name := range c.Generator.Palette {
		if _, ok := core.ParseLiquid(name); !ok {
			return fmt.Errorf("%w: unknown liquid %q", ErrInvalidConfig, name)
		}
	}

	if len(c.Profiles) == 0 {
		return fmt.Errorf("%w: no profiles", ErrInvalidConfig)
	}
	prev := 0
	for i, p := range c.Profiles {
		if err := p.Profile().Validate(); err != nil {
			return fmt.Errorf("%w: profile %q: %v", ErrInvalidConfig, p.Name, err)
		}
		last := i == len(c.Profiles)-1
		if p.MaxLevel == 0 && !last {
			return fmt.Errorf("%w: profile %q: only the last profile may omit max_level", ErrInvalidConfig, p.Name)
		}
		if p.MaxLevel != 0 && p.MaxLevel <= prev {
			return fmt.Errorf("%w: profile %q: max_level must increase", ErrInvalidConfig, p.Name)
		}
		prev = p.MaxLevel
	}

	if _, err := ParsePreset(string(c.Difficulty.Preset)); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if c.Difficulty.Preset == DifficultyFixed && c.Difficulty.FixedProfile != "" {
		if _, ok := c.profileByName(c.Difficulty.FixedProfile); !ok {
			return fmt.Errorf("%w: fixed_profile %q not found", ErrInvalidConfig, c.Difficulty.FixedProfile)
		}
	}
	if c.Display.PourTicks < 0 {
		return fmt.Errorf("%w: pour_ticks must not be negative", ErrInvalidConfig)
	}
	return nil
}

func (c WaterSortConfig) profileByName(name string) (int, bool) {
	for i, p := range c.Profiles {
		if strings.EqualFold(p.Name, name) {
			return i, true
		}
	}
	return 0, false
}
