package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/match3/internal/registry"
	"github.com/vovakirdan/match3/internal/storage"
)

var (
	flagScoresLimit   int
	flagScoresAll     bool
	flagScoresClear   bool
	flagScoresSummary bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [mode]",
	Short: "Show high scores and run statistics",
	Long: `Display the best runs for a mode (default match3), followed by
totals over every recorded run.

Examples:
  match3 scores
  match3 scores match3_endless --limit 20
  match3 scores --all
  match3 scores --summary
  match3 scores --clear`,
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: registry.IDs(),
	RunE:      runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of runs to show")
	scoresCmd.Flags().BoolVar(&flagScoresAll, "all", false, "Show every recorded run instead of the top ones")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete all recorded runs for the mode")
	scoresCmd.Flags().BoolVar(&flagScoresSummary, "summary", false, "Show totals for every mode that has been played")
}

func runScores(cmd *cobra.Command, args []string) error {
	gameID := "match3"
	if len(args) == 1 {
		gameID = args[0]
	}
	game, err := registry.Create(gameID)
	if err != nil {
		return fmt.Errorf("%w, run 'match3 list' to see available modes", err)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}
	defer store.Close()

	out := cmd.OutOrStdout()
	switch {
	case flagScoresSummary:
		return printSummary(out, store)
	case flagScoresClear:
		if err := store.ClearScores(gameID); err != nil {
			return err
		}
		fmt.Fprintf(out, "Cleared all runs for %s.\n", game.Title())
		return nil
	}

	var scores []storage.ScoreEntry
	if flagScoresAll {
		scores, err = store.AllScores(gameID)
	} else {
		scores, err = store.TopScores(gameID, flagScoresLimit)
	}
	if err != nil {
		return err
	}
	return printScores(out, store, gameID, game.Title(), scores)
}

func printScores(w io.Writer, store *storage.Store, gameID, title string, scores []storage.ScoreEntry) error {
	fmt.Fprintf(w, "High Scores - %s\n\n", title)

	if len(scores) == 0 {
		fmt.Fprintln(w, "No runs recorded yet.")
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Play 'match3 play %s' to set the first high score!\n", gameID)
		return nil
	}

	fmt.Fprintf(w, "  %-4s  %-8s  %-5s  %-5s  %-6s  %s\n", "Rank", "Score", "Level", "Moves", "Time", "Date")
	fmt.Fprintf(w, "  %-4s  %-8s  %-5s  %-5s  %-6s  %s\n", "----", "-----", "-----", "-----", "----", "----")
	for i, e := range scores {
		secs := int(e.Duration.Seconds())
		fmt.Fprintf(w, "  %-4d  %-8d  %-5d  %-5d  %2d:%02d   %s\n",
			i+1, e.Score, e.Level, e.Moves, secs/60, secs%60, e.CreatedAt.Format("2006-01-02 15:04"))
	}

	stats, err := store.GetGameStats(gameID)
	if err != nil {
		return err
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Runs: %d  Best: %d  Best level: %d  Average: %.0f  Total moves: %d\n",
		stats.GamesCount, stats.HighScore, stats.BestLevel, stats.AvgScore, stats.TotalMoves)
	if !stats.LastPlayed.IsZero() {
		fmt.Fprintf(w, "Last played: %s\n", stats.LastPlayed.Format("2006-01-02 15:04"))
	}
	return nil
}

// printSummary lists one line per registered mode, played or not.
func printSummary(w io.Writer, store *storage.Store) error {
	all, err := store.GetAllGamesStats()
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "  %-16s  %-5s  %-8s  %-5s  %s\n", "Mode", "Runs", "Best", "Level", "Last played")
	for _, g := range registry.List() {
		stats, ok := all[g.ID]
		if !ok {
			fmt.Fprintf(w, "  %-16s  %-5d  %-8s  %-5s  %s\n", g.ID, 0, "-", "-", "never")
			continue
		}
		fmt.Fprintf(w, "  %-16s  %-5d  %-8d  %-5d  %s\n", g.ID, stats.GamesCount, stats.HighScore,
			stats.BestLevel, stats.LastPlayed.Format("2006-01-02 15:04"))
	}
	return nil
}
