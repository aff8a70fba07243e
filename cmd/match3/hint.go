package main

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/match3/internal/games/match3"
	m3 "github.com/vovakirdan/match3/internal/games/match3/core"
)

var flagHintAll bool

var hintCmd = &cobra.Command{
	Use:   "hint",
	Short: "Print a dealt board and its first legal move",
	Long: `Deal a board the way a level starts and print it with row and column
numbers, followed by the move the in-game hint would show.

Examples:
  match3 hint --seed 42
  match3 hint --seed 42 --all
  match3 hint --difficulty hard --config ./my-match3.yaml`,
	RunE: runHint,
}

func init() {
	addGameFlags(hintCmd)
	hintCmd.Flags().BoolVar(&flagHintAll, "all", false, "List every legal move instead of the first")
}

func runHint(cmd *cobra.Command, _ []string) error {
	if err := applyGameFlags(); err != nil {
		return err
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	ctrl, err := m3.NewController(match3.BaseSettings(match3.LoadConfig()), rand.New(rand.NewSource(seed)))
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Seed %d\n\n", seed)
	fmt.Fprint(out, labelledBoard(ctrl.Grid()))
	fmt.Fprintln(out)

	if flagHintAll {
		moves := m3.Moves(ctrl.Grid())
		fmt.Fprintf(out, "%d legal moves:\n", len(moves))
		for _, h := range moves {
			fmt.Fprintf(out, "  %s\n", describeHint(h))
		}
		return nil
	}

	h := ctrl.FindHint()
	if h == nil {
		fmt.Fprintln(out, "No legal move.")
		return nil
	}
	fmt.Fprintf(out, "Hint: %s\n", describeHint(*h))
	return nil
}

// labelledBoard renders g with column numbers on top and row numbers on the left.
func labelledBoard(g *m3.Grid) string {
	var b strings.Builder
	b.WriteString("    ")
	for c := 0; c < g.Width(); c++ {
		fmt.Fprintf(&b, "%-2d", c%100)
	}
	b.WriteString("\n")
	for r, line := range strings.Split(g.String(), "\n") {
		fmt.Fprintf(&b, "%2d  %s\n", r, line)
	}
	return b.String()
}

func describeHint(h m3.Hint) string {
	if h.Powerup {
		return fmt.Sprintf("fire powerup at %v", h.Tiles[0])
	}
	return fmt.Sprintf("swap %v with %v", h.A, h.B)
}
