package main

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/watersort/internal/config"
	"github.com/vovakirdan/watersort/internal/core"
	"github.com/vovakirdan/watersort/internal/games/watersort"
	"github.com/vovakirdan/watersort/internal/metrics"
	"github.com/vovakirdan/watersort/internal/registry"
)

func TestGameSetupAppliesPresetAndConfig(t *testing.T) {
	cfg := config.DefaultWaterSortConfig()
	cfg.Display.PourTicks = 3

	setup, err := gameSetup(func() config.WaterSortConfig { return cfg }, "hard", log.New(io.Discard), metrics.New())
	require.NoError(t, err)

	game, err := registry.Create(watersort.GameID)
	require.NoError(t, err)
	setup(game)

	game.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, Seed: 1, Level: 1})
	// hard shifts level 1 from Easy to Medium
	assert.Equal(t, "Medium", game.State().Profile)
}

func TestGameSetupRejectsUnknownPreset(t *testing.T) {
	_, err := gameSetup(config.DefaultWaterSortConfig, "brutal", log.New(io.Discard), nil)
	assert.Error(t, err)
}

func TestConfigSource(t *testing.T) {
	assert.Equal(t, "embedded defaults", configSource(""))
	assert.Equal(t, "a.yaml", configSource("a.yaml"))
}
