// Package levels reads and writes water sort levels as YAML files.
// This package depends on core but core does not depend on levels.
package levels

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/watersort/internal/games/watersort/core"
)

// ErrInvalidLevel is wrapped by every parse failure after YAML decoding.
var ErrInvalidLevel = errors.New("invalid level")

// YAMLLevel represents the YAML structure for a level file.
// Bottles are written bottom-to-top as liquid letters, e.g. "RRB".
type YAMLLevel struct {
	Index    int         `yaml:"index"`
	Seed     int64       `yaml:"seed,omitempty"`
	Capacity int         `yaml:"capacity"`
	Profile  YAMLProfile `yaml:"profile"`
	Bottles  []string    `yaml:"bottles"`
	Moves    []YAMLMove  `yaml:"moves,omitempty"`
}

// YAMLProfile is the difficulty profile a level was generated from.
type YAMLProfile struct {
	Name         string `yaml:"name"`
	TotalBottles int    `yaml:"total_bottles"`
	EmptyBottles int    `yaml:"empty_bottles"`
	ShuffleSteps int    `yaml:"shuffle_steps"`
}

// YAMLMove is one logged generation move.
type YAMLMove struct {
	From int    `yaml:"from"`
	To   int    `yaml:"to"`
	C    string `yaml:"c"`
}

// Marshal encodes a level. seed is recorded for reference and may be 0.
func Marshal(lvl *core.Level, seed int64) ([]byte, error) {
	yl := YAMLLevel{
		Index:    lvl.Index,
		Seed:     seed,
		Capacity: lvl.Capacity,
		Profile: YAMLProfile{
			Name:         lvl.Profile.Name,
			TotalBottles: lvl.Profile.TotalBottles,
			EmptyBottles: lvl.Profile.EmptyBottles,
			ShuffleSteps: lvl.Profile.ShuffleSteps,
		},
		Bottles: make([]string, 0, lvl.Len()),
	}
	for _, b := range lvl.Bottles {
		var sb strings.Builder
		for _, u := range b.Units() {
			sb.WriteRune(u.Char())
		}
		yl.Bottles = append(yl.Bottles, sb.String())
	}
	for _, m := range lvl.Moves {
		yl.Moves = append(yl.Moves, YAMLMove{From: m.From, To: m.To, C: string(m.Liquid.Char())})
	}

	data, err := yaml.Marshal(yl)
	if err != nil {
		return nil, fmt.Errorf("yaml marshal: %w", err)
	}
	return data, nil
}

// Parse decodes a level file and checks it against the bottle rules.
// When moves are present they must replay back to a sorted layout.
func Parse(data []byte) (*core.Level, error) {
	var yl YAMLLevel
	if err := yaml.Unmarshal(data, &yl); err != nil {
		return nil, fmt.Errorf("yaml unmarshal: %w", err)
	}

	capacity := yl.Capacity
	if capacity <= 0 {
		capacity = core.DefaultCapacity
	}
	if len(yl.Bottles) < 2 {
		return nil, fmt.Errorf("%w: need at least 2 bottles, got %d", ErrInvalidLevel, len(yl.Bottles))
	}

	layout := make([][]core.Liquid, 0, len(yl.Bottles))
	for i, s := range yl.Bottles {
		units, err := parseUnits(s)
		if err != nil {
			return nil, fmt.Errorf("%w: bottle %d: %v", ErrInvalidLevel, i+1, err)
		}
		layout = append(layout, units)
	}

	lvl, err := core.NewLevel(capacity, layout)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidLevel, err)
	}
	lvl.Index = yl.Index
	lvl.Profile = core.Profile{
		Name:         yl.Profile.Name,
		TotalBottles: yl.Profile.TotalBottles,
		EmptyBottles: yl.Profile.EmptyBottles,
		ShuffleSteps: yl.Profile.ShuffleSteps,
	}
	if lvl.Profile.Name == "" {
		lvl.Profile.Name = "Custom"
	}

	for i, m := range yl.Moves {
		l, ok := core.ParseLiquid(m.C)
		if !ok {
			return nil, fmt.Errorf("%w: move %d: unknown liquid %q", ErrInvalidLevel, i+1, m.C)
		}
		lvl.Moves = append(lvl.Moves, core.Move{From: m.From, To: m.To, Liquid: l})
	}
	if len(lvl.Moves) > 0 {
		sorted, err := lvl.Unwind()
		if err != nil {
			return nil, fmt.Errorf("%w: moves do not replay: %v", ErrInvalidLevel, err)
		}
		if !core.IsWon(sorted.Bottles) {
			return nil, fmt.Errorf("%w: moves do not replay to a sorted layout", ErrInvalidLevel)
		}
	}

	return lvl, nil
}

// parseUnits reads a bottom-to-top letter string. '.' and spaces are padding.
func parseUnits(s string) ([]core.Liquid, error) {
	var units []core.Liquid
	for _, r := range s {
		if r == '.' || r == ' ' {
			continue
		}
		l, ok := core.ParseLiquid(string(r))
		if !ok {
			return nil, fmt.Errorf("unknown liquid %q", r)
		}
		units = append(units, l)
	}
	return units, nil
}

// LoadFile loads a single level file.
func LoadFile(path string) (*core.Level, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}
	lvl, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing file %s: %w", path, err)
	}
	return lvl, nil
}

// SaveFile writes a level file, creating parent directories.
func SaveFile(path string, lvl *core.Level, seed int64) error {
	data, err := Marshal(lvl, seed)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating directory %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing file %s: %w", path, err)
	}
	return nil
}

// Entry is a level file found by LoadDir.
type Entry struct {
	Path  string
	Level *core.Level
}

// LoadDir recursively loads every .yaml/.yml level under root, sorted by path.
// Files that fail to parse are skipped.
func LoadDir(root string) ([]Entry, error) {
	var entries []Entry

	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		switch strings.ToLower(filepath.Ext(path)) {
		case ".yaml", ".yml":
		default:
			return nil
		}

		lvl, err := LoadFile(path)
		if err != nil {
			return nil
		}
		entries = append(entries, Entry{Path: path, Level: lvl})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking directory %s: %w", root, err)
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Path < entries[j].Path
	})
	return entries, nil
}
