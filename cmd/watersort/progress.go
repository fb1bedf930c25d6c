package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/watersort/internal/games/watersort"
	"github.com/vovakirdan/watersort/internal/storage"
)

var (
	flagProgressPlayer string
	flagProgressReset  bool
	flagProgressSet    int
	flagProgressAll    bool
)

var progressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Show or reset campaign progress",
	Long: `Show the campaign level a player will continue from. --reset starts the
player over at level 1 and clears their solve history; --set jumps to a level.

Examples:
  watersort progress
  watersort progress --all
  watersort progress --player alice --set 10
  watersort progress --reset`,
	Args: cobra.NoArgs,
	Run:  runProgress,
}

func init() {
	progressCmd.Flags().StringVar(&flagProgressPlayer, "player", storage.LocalPlayer, "Player name")
	progressCmd.Flags().BoolVar(&flagProgressReset, "reset", false, "Reset the player's progress and solves")
	progressCmd.Flags().IntVar(&flagProgressSet, "set", 0, "Set the player's current level")
	progressCmd.Flags().BoolVar(&flagProgressAll, "all", false, "List every player's progress")
}

func runProgress(_ *cobra.Command, _ []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening progress database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	player := flagProgressPlayer

	switch {
	case flagProgressReset:
		if err := store.ResetProgress(player, watersort.GameID); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if err := store.ClearSolves(player); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Progress for %s reset to level 1.\n", player)
		return

	case flagProgressSet > 0:
		if err := store.SetProgress(player, watersort.GameID, flagProgressSet); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("%s continues at level %d.\n", player, flagProgressSet)
		return

	case flagProgressAll:
		all, err := store.AllProgress()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if len(all) == 0 {
			fmt.Println("No progress recorded yet.")
			return
		}
		fmt.Printf("  %-16s  %-20s  %-5s  %s\n", "Player", "Mode", "Level", "Updated")
		fmt.Printf("  %-16s  %-20s  %-5s  %s\n", "------", "----", "-----", "-------")
		for _, p := range all {
			fmt.Printf("  %-16s  %-20s  %-5d  %s\n", p.Player, p.GameID, p.Level, p.UpdatedAt.Format("2006-01-02 15:04"))
		}
		return
	}

	level, err := store.GetProgress(player, watersort.GameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	level = max(level, 1)
	fmt.Printf("%s is at level %d.\n", player, level)

	if stats, err := store.GetStats(player); err == nil && stats.Attempts > 0 {
		fmt.Printf("%d attempts, %d won, %d stuck, last played %s\n",
			stats.Attempts, stats.Won, stats.Stuck, stats.LastPlayed.Format("2006-01-02 15:04"))
	}
}
