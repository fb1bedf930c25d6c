package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/watersort/internal/games/watersort"
	"github.com/vovakirdan/watersort/internal/platform/tui"
	"github.com/vovakirdan/watersort/internal/registry"
	"github.com/vovakirdan/watersort/internal/storage"
)

var (
	flagScoresPlayer      string
	flagScoresRecent      bool
	flagScoresLimit       int
	flagScoresInteractive bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [mode]",
	Short: "Show solve history",
	Long: `Display the best solve (fewest pours) for each won level, or the most
recent attempts with --recent.

Examples:
  watersort scores
  watersort scores --recent --player alice
  watersort scores -i`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().StringVar(&flagScoresPlayer, "player", "", "Only this player's attempts (recent list and totals)")
	scoresCmd.Flags().BoolVar(&flagScoresRecent, "recent", false, "Show recent attempts instead of best solves")
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of rows")
	scoresCmd.Flags().BoolVarP(&flagScoresInteractive, "interactive", "i", false, "Browse solves in a table")
}

func runScores(_ *cobra.Command, args []string) {
	gameID := watersort.GameID
	if len(args) == 1 {
		gameID = args[0]
	}
	if !registry.Exists(gameID) {
		exitUnknownGame(gameID)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening progress database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagScoresInteractive {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		player := flagScoresPlayer
		if player == "" {
			player = storage.LocalPlayer
		}
		if err := tui.RunScoreboard(store, gameID, player, width, height); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	var solves []storage.Solve
	if flagScoresRecent {
		fmt.Printf("Recent attempts - %s\n", gameID)
		solves, err = store.RecentSolves(flagScoresPlayer, flagScoresLimit)
	} else {
		fmt.Printf("Best solves - %s\n", gameID)
		solves, err = store.BestSolves(gameID, flagScoresLimit)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving solves: %v\n", err)
		os.Exit(1)
	}
	fmt.Println()

	if len(solves) == 0 {
		fmt.Println("No solves recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'watersort play %s' and finish a level!\n", gameID)
		return
	}

	fmt.Printf("  %-5s  %-7s  %-8s  %-5s  %-8s  %-12s  %s\n", "Level", "Result", "Profile", "Pours", "Time", "Player", "Date")
	fmt.Printf("  %-5s  %-7s  %-8s  %-5s  %-8s  %-12s  %s\n", "-----", "------", "-------", "-----", "----", "------", "----")
	for _, s := range solves {
		fmt.Printf("  %-5d  %-7s  %-8s  %-5d  %-8s  %-12s  %s\n",
			s.Level, s.Outcome, s.Profile, s.Pours,
			s.Duration.Round(time.Second), s.Player,
			s.CreatedAt.Format("2006-01-02 15:04"))
	}

	if flagScoresPlayer != "" {
		stats, err := store.GetStats(flagScoresPlayer)
		if err == nil && stats.Attempts > 0 {
			fmt.Println()
			fmt.Printf("%s: %d attempts, %d won, %d stuck, %d pours, best level %d\n",
				stats.Player, stats.Attempts, stats.Won, stats.Stuck, stats.TotalPours, stats.BestLevel)
		}
	}
}
