package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/watersort/internal/games/watersort/levels"
	"github.com/vovakirdan/watersort/internal/registry"
)

var flagLevelsDir string

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List game modes and level files",
	Long: `Shows the registered game modes. With --levels, also lists the level
files found under a directory.`,
	Run: runList,
}

func init() {
	listCmd.Flags().StringVar(&flagLevelsDir, "levels", "", "Directory with level YAML files")
}

func runList(_ *cobra.Command, _ []string) {
	games := registry.List()

	if len(games) == 0 {
		fmt.Println("No games available.")
		return
	}

	fmt.Println("Available modes:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, g := range games {
		maxIDLen = max(maxIDLen, len(g.ID))
	}

	fmt.Printf("  %-*s  %s\n", maxIDLen, "ID", "Title")
	fmt.Printf("  %-*s  %s\n", maxIDLen, "--", "-----")
	for _, g := range games {
		fmt.Printf("  %-*s  %s\n", maxIDLen, g.ID, g.Title)
	}

	if flagLevelsDir != "" {
		entries, err := levels.LoadDir(flagLevelsDir)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		fmt.Println()
		fmt.Printf("Level files in %s:\n", flagLevelsDir)
		fmt.Println()
		if len(entries) == 0 {
			fmt.Println("  (none)")
		}
		for _, e := range entries {
			fmt.Printf("  %-40s  level %-4d %-8s %d bottles\n",
				e.Path, e.Level.Index, e.Level.Profile.Name, e.Level.Len())
		}
	}

	fmt.Println()
	fmt.Println("Run 'watersort play <id>' to play a mode.")
}
