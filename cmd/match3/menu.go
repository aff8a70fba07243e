package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/match3/internal/games/match3"
	"github.com/vovakirdan/match3/internal/platform/tui"
	"github.com/vovakirdan/match3/internal/registry"
	"github.com/vovakirdan/match3/internal/storage"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick mode, level and difficulty from a menu",
	Long: `Start in interactive menu mode.

Choose Campaign, Endless or a specific campaign level, cycle the difficulty
with Left/Right, and press Tab for the high scores. After a game ends you
return to the menu.

Controls:
  Up/Down/j/k   - Navigate menu
  Left/Right    - Change difficulty
  Enter/Space   - Select
  Tab           - High scores
  Q             - Quit

Examples:
  match3 menu
  match3 menu --fps 30
  match3 menu --db ./scores.db`,
	RunE: runMenu,
}

func init() {
	menuCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
}

func runMenu(_ *cobra.Command, _ []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	match3.SetConfigPath(flagConfig)
	defer openGameLog()()
	cfg := terminalConfig()

	for {
		result, err := tui.RunMenu(cfg)
		if err != nil {
			return err
		}
		cfg = result.Config

		if result.Quit {
			return nil
		}

		if result.WantsScoreboard {
			goBack, sbErr := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
			if sbErr != nil {
				return sbErr
			}
			if goBack {
				continue
			}
			return nil
		}

		game, err := registry.Create(result.GameID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
			continue
		}
		match3.SetDifficultyPreset(result.Difficulty)
		match3.SetStartLevel(result.StartLevel)

		// A fixed --seed replays the same board every round
		if flagSeed == 0 {
			cfg.Seed = time.Now().UnixNano()
		}

		if err := tui.Run(game, store, cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		}
	}
}
