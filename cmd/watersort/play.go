package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/watersort/internal/config"
	"github.com/vovakirdan/watersort/internal/core"
	"github.com/vovakirdan/watersort/internal/games/watersort"
	"github.com/vovakirdan/watersort/internal/games/watersort/levels"
	"github.com/vovakirdan/watersort/internal/platform/tui"
	"github.com/vovakirdan/watersort/internal/registry"
	"github.com/vovakirdan/watersort/internal/storage"
)

var (
	flagDifficulty string
	flagLevelFile  string
	flagStart      int
	flagPlayer     string
)

var playCmd = &cobra.Command{
	Use:   "play [mode]",
	Short: "Play water sort",
	Long: `Start playing. Without a mode a menu lets you pick the campaign,
practice mode or the solve history.

Modes:
  watersort            - Campaign, levels get harder and progress is saved
  watersort_practice   - Replays the chosen level index, nothing is saved

Controls:
  Left/Right, A/D   - Move the cursor
  Space             - Pick up / pour onto the bottle under the cursor
  1-9, 0            - Pick up / pour onto bottle N (0 is bottle 10)
  Mouse click       - Pick up / pour onto the clicked bottle
  Esc               - Put the held bottle down
  Enter             - Next level (after a win)
  R                 - Restart the level
  P                 - Pause
  Q/Ctrl+C          - Quit

Difficulty options:
  easy    - Smaller boards, the profile table shifted one row down
  normal  - Profiles as configured
  hard    - The profile table shifted one row up
  fixed   - Always the profile named by difficulty.fixed_profile

Examples:
  watersort play
  watersort play watersort --difficulty hard
  watersort play watersort_practice --start 30
  watersort play --level ./levels/tricky.yaml
  watersort play watersort --config ./my-watersort.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	playCmd.Flags().StringVar(&flagLevelFile, "level", "", "Play a level file written by 'watersort generate'")
	playCmd.Flags().IntVar(&flagStart, "start", 0, "Start at this level index (0 = saved progress)")
	playCmd.Flags().StringVar(&flagPlayer, "player", storage.LocalPlayer, "Player name for progress and solves")
}

func runPlay(_ *cobra.Command, args []string) {
	logger := newLogger("watersort")
	gameCfg, _ := loadConfig(logger, flagConfig)

	setup, err := gameSetup(func() config.WaterSortConfig { return gameCfg }, flagDifficulty, logger, nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Get terminal size
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
		Level:    flagStart,
	}

	// Open progress storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open progress database: %v\n", err)
		// Continue without storage - game still works
		store = nil
	} else {
		defer store.Close()
	}

	opts := tui.Options{
		Store:  store,
		Player: flagPlayer,
		Logger: logger,
		Setup:  setup,
	}

	if len(args) == 0 && flagLevelFile == "" {
		if err := tui.RunSession(cfg, opts); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	gameID := watersort.GameID
	if len(args) == 1 {
		gameID = args[0]
	}
	if !registry.Exists(gameID) {
		exitUnknownGame(gameID)
	}

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}
	setup(game)

	if flagLevelFile != "" {
		lvl, err := levels.LoadFile(flagLevelFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		ws, ok := game.(*watersort.Game)
		if !ok {
			fmt.Fprintf(os.Stderr, "Error: %s cannot play level files\n", gameID)
			os.Exit(1)
		}
		ws.SetFixedLevel(lvl)
	}

	if err := tui.Run(game, cfg, opts); err != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		os.Exit(1)
	}
}
