package config

import (
	"fmt"

	"github.com/vovakirdan/watersort/internal/games/watersort/core"
)

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset validates a preset name. The empty string means normal.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(s); p {
	case "":
		return DifficultyNormal, nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", fmt.Errorf("unknown difficulty %q (want easy, normal, hard or fixed)", s)
	}
}

// presetShift returns how many rows the preset moves the threshold lookup.
func presetShift(p DifficultyPreset) int {
	switch p {
	case DifficultyEasy:
		return -1
	case DifficultyHard:
		return 1
	default:
		return 0
	}
}

// DifficultyManager picks the generation profile for a level index.
type DifficultyManager struct {
	profiles []ProfileConfig
	preset   DifficultyPreset
	fixed    int
}

// NewDifficultyManager creates a manager over the config's profile table.
// The config is expected to be valid; an empty table falls back to defaults.
func NewDifficultyManager(cfg WaterSortConfig) *DifficultyManager {
	profiles := cfg.Profiles
	if len(profiles) == 0 {
		profiles = DefaultWaterSortConfig().Profiles
	}
	preset, err := ParsePreset(string(cfg.Difficulty.Preset))
	if err != nil {
		preset = DifficultyNormal
	}

	d := &DifficultyManager{profiles: profiles, preset: preset}
	if i, ok := (WaterSortConfig{Profiles: profiles}).profileByName(cfg.Difficulty.FixedProfile); ok {
		d.fixed = i
	}
	return d
}

// SetPreset overrides the configured preset.
func (d *DifficultyManager) SetPreset(p DifficultyPreset) {
	d.preset = p
}

// Preset returns the active preset.
func (d *DifficultyManager) Preset() DifficultyPreset {
	return d.preset
}

// Row returns the index into the profile table used for a level index.
func (d *DifficultyManager) Row(levelIndex int) int {
	if d.preset == DifficultyFixed {
		return d.fixed
	}

	row := len(d.profiles) - 1
	for i, p := range d.profiles {
		if p.MaxLevel != 0 && levelIndex <= p.MaxLevel {
			row = i
			break
		}
	}

	row += presetShift(d.preset)
	if row < 0 {
		row = 0
	}
	if row >= len(d.profiles) {
		row = len(d.profiles) - 1
	}
	return row
}

// ProfileFor returns the generation profile for a level index.
func (d *DifficultyManager) ProfileFor(levelIndex int) core.Profile {
	return d.profiles[d.Row(levelIndex)].Profile()
}
