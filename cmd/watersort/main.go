// watersort is a liquid sorting puzzle for the terminal.
//
// Usage:
//
//	watersort list                 - List game modes and level files
//	watersort play [mode]          - Play (menu when no mode is given)
//	watersort generate             - Print or save a generated level as YAML
//	watersort scores [mode]        - Show solve history
//	watersort progress             - Show or reset level progress
//	watersort serve                - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 30)
//	--seed <value>       - Set RNG seed for reproducible levels
//	--db <path>          - Set database path (default: ~/.watersort/watersort.db)
//	--config <path>      - Game config YAML
//	--log-level <level>  - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/watersort/internal/config"
	"github.com/vovakirdan/watersort/internal/games/watersort"
	"github.com/vovakirdan/watersort/internal/registry"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagConfig   string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "watersort",
	Short: "Water Sort - pour colored liquids until every bottle holds one color",
	Long: `Water Sort is a liquid sorting puzzle for the terminal.

Pick up the top layer of a bottle and pour it onto a matching color or into
an empty bottle. A level is won when every bottle is empty or full of a
single color. Levels are generated so that they can always be solved.

Available commands:
  list      - Show game modes and level files
  play      - Play the campaign, practice mode or a level file
  generate  - Generate a level as YAML
  scores    - View solve history
  progress  - Show or reset campaign progress
  serve     - Start SSH server for remote play

Examples:
  watersort play
  watersort play watersort_practice --start 20
  watersort generate --start 12 --seed 7 --out level12.yaml
  watersort play --level level12.yaml
  watersort serve --port 2222 --metrics :9090`,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 30, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.watersort/watersort.db", "Path to progress database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "warn", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(progressCmd)
	rootCmd.AddCommand(serveCmd)
}

// newLogger builds the command logger from --log-level.
func newLogger(prefix string) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		logger.Warn("Unknown log level, using warn", "level", flagLogLevel)
		level = log.WarnLevel
	}
	logger.SetLevel(level)
	return logger
}

// loadConfig loads the game config or exits.
func loadConfig(logger *log.Logger, path string) (config.WaterSortConfig, string) {
	cfg, used, err := config.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	logger.Debug("Config loaded", "source", configSource(used), "profiles", len(cfg.Profiles))
	return cfg, used
}

func configSource(path string) string {
	if path == "" {
		return "embedded defaults"
	}
	return path
}

// gameSetup returns a hook that applies config, preset, logger and recorder
// to water sort games. cfgFn is called for every game so reloaded config
// reaches new games.
func gameSetup(cfgFn func() config.WaterSortConfig, preset string, logger *log.Logger, rec watersort.Recorder) (func(registry.Game), error) {
	var p config.DifficultyPreset
	if preset != "" {
		parsed, err := config.ParsePreset(preset)
		if err != nil {
			return nil, err
		}
		p = parsed
	}

	return func(g registry.Game) {
		ws, ok := g.(*watersort.Game)
		if !ok {
			return
		}
		ws.Configure(cfgFn())
		if p != "" {
			ws.SetPreset(p)
		}
		ws.SetLogger(logger)
		if rec != nil {
			ws.SetRecorder(rec)
		}
	}, nil
}

// exitUnknownGame reports an unregistered mode and exits.
func exitUnknownGame(gameID string) {
	fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
	fmt.Fprintln(os.Stderr, "Run 'watersort list' to see available modes.")
	os.Exit(1)
}
