// match3 is a terminal match-3 puzzle game.
//
// Usage:
//
//	match3 list              - List game modes
//	match3 play [mode]       - Play campaign (default) or endless
//	match3 menu              - Pick mode, level and difficulty interactively
//	match3 serve             - Start SSH server for remote play
//	match3 scores [mode]     - Show high scores and run statistics
//	match3 hint              - Print a dealt board and its first legal move
//	match3 sim               - Autoplay a board headlessly and log every move
//	match3 config            - Print the default game config
//
// Global flags:
//
//	--fps <rate>    - Set tick rate (default: 60)
//	--seed <value>  - Set RNG seed for reproducible gameplay
//	--db <path>     - Set database path (default: ~/.arcade/scores.db)
//	--log <path>    - Set game log path (default: ~/.arcade/match3.log)
//
// Flags left unset fall back to MATCH3_* environment variables, which may
// also come from a .env file in the working directory.
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/match3/internal/core"
	"github.com/vovakirdan/match3/internal/games/match3"
)

var (
	// Global flags
	flagFPS    int
	flagSeed   int64
	flagDBPath string
	flagLog    string
)

// envFlags maps flag names to the environment variables that can set them.
var envFlags = []struct {
	flag string
	env  string
}{
	{"fps", "MATCH3_FPS"},
	{"seed", "MATCH3_SEED"},
	{"db", "MATCH3_DB"},
	{"log", "MATCH3_LOG"},
	{"config", "MATCH3_CONFIG"},
	{"difficulty", "MATCH3_DIFFICULTY"},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "match3",
	Short: "Match-3 - swap tiles, chain cascades, beat the clock",
	Long: `Match-3 is a terminal puzzle game. Swap neighbouring tiles to line up
three or more of a kind; four or five in a row leave a powerup behind.

Available commands:
  list     - Show game modes
  play     - Play a mode directly
  menu     - Interactive mode, level and difficulty picker
  serve    - Start SSH server for remote play
  scores   - View high scores
  hint     - Print a seeded board and its hint
  sim      - Autoplay a seeded board
  config   - Print the default config

Examples:
  match3 play
  match3 play match3_endless --difficulty hard
  match3 menu
  match3 serve --ssh :2222
  match3 sim --seed 42 --moves 100`,
	SilenceUsage:      true,
	PersistentPreRunE: applyEnv,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.arcade/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagLog, "log", "~/.arcade/match3.log", "Path to the game log used while the TUI runs")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(hintCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(configCmd)
}

// applyEnv loads .env and fills flags the user did not set from MATCH3_*
// variables.
func applyEnv(cmd *cobra.Command, _ []string) error {
	_ = godotenv.Load()

	for _, ef := range envFlags {
		f := cmd.Flags().Lookup(ef.flag)
		if f == nil || f.Changed {
			continue
		}
		v, ok := os.LookupEnv(ef.env)
		if !ok || v == "" {
			continue
		}
		if err := cmd.Flags().Set(ef.flag, v); err != nil {
			return fmt.Errorf("%s: %w", ef.env, err)
		}
	}
	return nil
}

// terminalConfig builds a runtime config sized to the current terminal.
func terminalConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	return cfg
}

// openGameLog points the game package at the --log file, so board redeals and
// config warnings are kept without drawing over the TUI. The returned func
// closes the file. A log that cannot be opened is discarded.
func openGameLog() func() {
	path := flagLog
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, path[1:])
		}
	}

	var w io.Writer = io.Discard
	closeFn := func() {}
	if path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err == nil {
			if f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644); err == nil {
				w = f
				closeFn = func() { _ = f.Close() }
			}
		}
	}

	match3.SetLogger(log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "match3",
	}))
	return func() {
		match3.SetLogger(nil)
		closeFn()
	}
}
