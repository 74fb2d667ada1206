package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/PabloKostenko/airplane/internal/core"
	"github.com/PabloKostenko/airplane/internal/platform/tui"
	"github.com/PabloKostenko/airplane/internal/registry"
	"github.com/PabloKostenko/airplane/internal/storage"
)

var (
	flagScoresLimit  int
	flagScoresTUI    bool
	flagScoresClear  bool
	flagScoresRecent bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [game]",
	Short: "Show the score history",
	Long: `Display the best flights and the stored records.

Examples:
  airplane scores
  airplane scores --limit 25
  airplane scores --recent
  airplane scores --tui
  airplane scores --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of scores to show")
	scoresCmd.Flags().BoolVar(&flagScoresTUI, "tui", false, "Open the interactive scoreboard")
	scoresCmd.Flags().BoolVar(&flagScoresRecent, "recent", false, "List the latest flights instead of the best")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete the history and records")
}

func runScores(_ *cobra.Command, args []string) error {
	gameID := "airplane"
	if len(args) == 1 {
		gameID = args[0]
	}

	// Check if game exists
	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown game %q, run 'airplane list' to see available games", gameID)
	}

	if flagScoresTUI {
		logger, closeLog, err := newLogger()
		if err != nil {
			return err
		}
		defer closeLog()
		svc, release := openServices(logger)
		defer release()
		return tui.Run(svc, runtimeConfig(), tui.ScreenScores, gameID)
	}

	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}
	defer store.Close()

	if flagScoresClear {
		if err := store.ClearScores(gameID); err != nil {
			return fmt.Errorf("clearing scores: %w", err)
		}
		fmt.Println("Score history cleared.")
		return nil
	}

	game, err := registry.Create(gameID)
	if err != nil {
		return fmt.Errorf("creating game: %w", err)
	}

	title := "High Scores"
	fetch := store.TopScores
	if flagScoresRecent {
		title = "Recent Flights"
		fetch = store.RecentScores
	}

	scores, err := fetch(gameID, flagScoresLimit)
	if err != nil {
		return fmt.Errorf("retrieving scores: %w", err)
	}

	// Display scores
	fmt.Printf("%s - %s\n", title, game.Title())
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println("Run 'airplane play' to set the first high score!")
		return nil
	}

	// Print header
	fmt.Printf("  %-4s  %-10s  %-6s  %s\n", "Rank", "Score", "Time", "Date")
	fmt.Printf("  %-4s  %-10s  %-6s  %s\n", "----", "-----", "----", "----")

	for i, entry := range scores {
		dateStr := entry.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-10d  %-6s  %s\n", i+1, entry.Score, core.FormatDuration(entry.PlaySecs), dateStr)
	}

	// Show records
	fmt.Println()
	if rec, err := store.Records(gameID); err == nil {
		fmt.Printf("Best: %d\n", rec.HighScore)
		fmt.Printf("Longest flight: %s\n", core.FormatDuration(rec.LongestPlaySecs))
	}
	return nil
}
