package levels

import (
	"errors"
	"math/rand"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/watersort/internal/games/watersort/core"
)

func generated(t *testing.T) *core.Level {
	t.Helper()
	p := core.Profile{Name: "Medium", TotalBottles: 7, EmptyBottles: 2, ShuffleSteps: 25}
	return core.Generate(p, 4, rand.New(rand.NewSource(99)))
}

func TestMarshalParseKeepsLevel(t *testing.T) {
	lvl := generated(t)

	data, err := Marshal(lvl, 99)
	require.NoError(t, err)

	got, err := Parse(data)
	require.NoError(t, err)

	assert.Equal(t, lvl.Index, got.Index)
	assert.Equal(t, lvl.Profile, got.Profile)
	assert.Equal(t, lvl.Snapshot(), got.Snapshot())
	assert.Equal(t, lvl.Moves, got.Moves)
}

func TestParseHandWritten(t *testing.T) {
	data := []byte(`
capacity: 4
bottles:
  - RB
  - "BR.."
  - ""
`)
	lvl, err := Parse(data)
	require.NoError(t, err)

	assert.Equal(t, "Custom", lvl.Profile.Name)
	require.Equal(t, 3, lvl.Len())
	assert.Equal(t, "[RB..]", lvl.Bottles[0].String())
	assert.Equal(t, "[BR..]", lvl.Bottles[1].String())
	assert.True(t, lvl.Bottles[2].IsEmpty())
}

func TestParseRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"one bottle", "bottles: [RR]"},
		{"overfull", "capacity: 2\nbottles: [RRR, '']"},
		{"unknown letter", "bottles: [RX, '']"},
		{"bad move liquid", "bottles: [R, RRR]\nmoves: [{from: 1, to: 0, c: X}]"},
		{"moves do not replay", "bottles: [R, RRR]\nmoves: [{from: 1, to: 0, c: B}]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			assert.True(t, errors.Is(err, ErrInvalidLevel), "got %v", err)
		})
	}

	_, err := Parse([]byte("bottles: [unterminated"))
	assert.Error(t, err)
}

func TestSaveLoadDir(t *testing.T) {
	root := t.TempDir()
	lvl := generated(t)

	require.NoError(t, SaveFile(filepath.Join(root, "b", "two.yaml"), lvl, 1))
	require.NoError(t, SaveFile(filepath.Join(root, "a.yml"), lvl, 2))

	entries, err := LoadDir(root)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, filepath.Join(root, "a.yml"), entries[0].Path)
	assert.Equal(t, lvl.Snapshot(), entries[1].Level.Snapshot())

	_, err = LoadFile(filepath.Join(root, "missing.yaml"))
	assert.Error(t, err)
}
