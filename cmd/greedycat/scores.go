package main

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/greedycat/internal/game"
	"github.com/vovakirdan/greedycat/internal/storage"
)

var (
	flagLimit int
	flagClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [mode]",
	Short: "Show high scores",
	Long: `Display the top scores for a mode, or the best score of every mode
when no mode is given.

Examples:
  greedycat scores
  greedycat scores classic
  greedycat scores timeAttack --limit 20
  greedycat scores zen --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show lifetime stats and achievements",
	Run:   runStats,
}

func init() {
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of scores to show")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete the history and high score of the mode")
}

func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fail("opening scores database: %v", err)
	}
	return store
}

func runScores(_ *cobra.Command, args []string) {
	cfg := loadConfig()
	store := openStore()
	defer store.Close()

	if len(args) == 0 {
		if flagClear {
			fail("--clear needs a mode")
		}
		printModeSummary(store, cfg.ModeNames())
		return
	}

	modeName := args[0]
	checkMode(cfg, modeName)
	mode := game.Mode(modeName)

	if flagClear {
		if err := store.ClearScores(mode); err != nil {
			fail("%v", err)
		}
		fmt.Printf("Cleared scores for %s.\n", mode)
		return
	}

	scores, err := store.TopScores(mode, flagLimit)
	if err != nil {
		store.Close()
		fail("retrieving scores: %v", err)
	}

	fmt.Printf("High Scores - %s\n", mode)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'greedycat play %s' to set the first high score!\n", mode)
		return
	}

	// Print header
	fmt.Printf("  %-4s  %-8s  %-6s  %-18s  %s\n", "Rank", "Score", "Length", "Outcome", "Date")
	fmt.Printf("  %-4s  %-8s  %-6s  %-18s  %s\n", "----", "-----", "------", "-------", "----")

	for i, entry := range scores {
		dateStr := entry.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-8d  %-6d  %-18s  %s\n", i+1, entry.Score, entry.Length, entry.Outcome, dateStr)
	}

	fmt.Println()
	if high, err := store.LoadHighScore(mode); err == nil {
		fmt.Printf("Best: %d\n", high)
	}
}

func printModeSummary(store *storage.Store, modes []string) {
	all, err := store.AllModeStats()
	if err != nil {
		store.Close()
		fail("%v", err)
	}

	fmt.Printf("  %-12s  %-6s  %-6s  %-8s  %s\n", "Mode", "Best", "Games", "Average", "Last played")
	fmt.Printf("  %-12s  %-6s  %-6s  %-8s  %s\n", "----", "----", "-----", "-------", "-----------")
	for _, name := range modes {
		high, _ := store.LoadHighScore(game.Mode(name))
		ms, ok := all[game.Mode(name)]
		if !ok {
			fmt.Printf("  %-12s  %-6d  %-6d  %-8s  %s\n", name, high, 0, "-", "never")
			continue
		}
		fmt.Printf("  %-12s  %-6d  %-6d  %-8.0f  %s\n", name, high, ms.GamesCount, ms.AvgScore,
			ms.LastPlayed.Format("2006-01-02 15:04"))
	}
}

func runStats(_ *cobra.Command, _ []string) {
	store := openStore()
	defer store.Close()

	stats, err := store.LoadStats()
	if err != nil {
		store.Close()
		fail("%v", err)
	}

	fmt.Println("Lifetime stats")
	fmt.Println()
	fmt.Printf("  Games played        %d\n", stats.GamesPlayed)
	fmt.Printf("  Fish eaten          %d\n", stats.TotalFoodEaten)
	fmt.Printf("  Power-ups collected %d\n", stats.TotalPowerUps)
	fmt.Printf("  Dashes              %d\n", stats.TotalDashes)
	fmt.Printf("  Best combo          %d\n", stats.MaxCombo)
	fmt.Printf("  Longest cat         %d\n", stats.MaxLength)
	fmt.Printf("  Total high score    %d\n", stats.TotalHighScore)
	fmt.Printf("  Time attack best    %d\n", stats.TimeAttackHighScore)

	fmt.Println()
	fmt.Printf("Achievements (%d/%d)\n", len(stats.Unlocked), len(game.Achievements))
	fmt.Println()
	for _, a := range game.Achievements {
		mark := "[ ]"
		if slices.Contains(stats.Unlocked, a) {
			mark = "[x]"
		}
		fmt.Printf("  %s %-14s %s\n", mark, a.Title(), a.Description())
	}

	if stats.GamesPlayed == 0 {
		fmt.Println()
		fmt.Println("Play 'greedycat play' to start collecting.")
	}
}
