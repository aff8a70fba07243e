package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/match3/internal/config"
	"github.com/vovakirdan/match3/internal/games/match3"
	"github.com/vovakirdan/match3/internal/platform/tui"
	"github.com/vovakirdan/match3/internal/registry"
	"github.com/vovakirdan/match3/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
	flagLevel      int
)

var playCmd = &cobra.Command{
	Use:   "play [mode]",
	Short: "Play a game mode",
	Long: `Start playing. The mode is match3 (campaign, the default) or
match3_endless.

Controls:
  Arrows/WASD  - Move cursor
  Enter/Space  - Select, then swap with a neighbour
  X            - Fire the powerup under the cursor
  H            - Show a hint
  P/Esc        - Pause
  R            - Restart (after game over)
  Ctrl+S       - Save a text screenshot
  Ctrl+Y       - Copy the board to the clipboard
  Q/Ctrl+C     - Quit

Difficulty options:
  easy   - Fewer tile varieties, longer levels
  normal - Config defaults
  hard   - More varieties, shorter levels
  fixed  - No progression between levels

Examples:
  match3 play
  match3 play match3_endless
  match3 play --level 4 --difficulty hard
  match3 play --config ./my-match3.yaml`,
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: registry.IDs(),
	RunE:      runPlay,
}

func init() {
	addGameFlags(playCmd)
	playCmd.Flags().IntVar(&flagLevel, "level", 0, fmt.Sprintf("Campaign level to start at (1-%d)", match3.LevelCount()))
}

// addGameFlags registers the flags shared by commands that configure the game.
func addGameFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	cmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
}

// applyGameFlags hands --config and --difficulty to the game package.
func applyGameFlags() error {
	preset := config.ParsePreset(flagDifficulty)
	if flagDifficulty != "" && preset == "" {
		return fmt.Errorf("unknown difficulty %q (want easy, normal, hard or fixed)", flagDifficulty)
	}
	match3.SetConfigPath(flagConfig)
	match3.SetDifficultyPreset(preset)
	return nil
}

func runPlay(_ *cobra.Command, args []string) error {
	gameID := "match3"
	if len(args) == 1 {
		gameID = args[0]
	}
	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown mode %q, run 'match3 list' to see available modes", gameID)
	}
	if flagLevel < 0 || flagLevel > match3.LevelCount() {
		return fmt.Errorf("level %d out of range 1-%d", flagLevel, match3.LevelCount())
	}
	if err := applyGameFlags(); err != nil {
		return err
	}
	match3.SetStartLevel(flagLevel)
	defer openGameLog()()

	game, err := registry.Create(gameID)
	if err != nil {
		return err
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	if err := tui.Run(game, store, terminalConfig()); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}
