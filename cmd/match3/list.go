package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/match3/internal/games/match3"
	"github.com/vovakirdan/match3/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List game modes and campaign levels",
	Long:  `Shows the registered game modes and the named levels of the campaign.`,
	Run:   runList,
}

func runList(_ *cobra.Command, _ []string) {
	games := registry.List()

	maxIDLen := 2 // "ID" header
	for _, g := range games {
		if len(g.ID) > maxIDLen {
			maxIDLen = len(g.ID)
		}
	}

	fmt.Println("Game modes:")
	fmt.Println()
	fmt.Printf("  %-*s  %s\n", maxIDLen, "ID", "Title")
	fmt.Printf("  %-*s  %s\n", maxIDLen, "--", "-----")
	for _, g := range games {
		fmt.Printf("  %-*s  %s\n", maxIDLen, g.ID, g.Title)
	}

	fmt.Println()
	fmt.Println("Campaign levels:")
	fmt.Println()
	for i, name := range match3.LevelNames() {
		fmt.Printf("  %2d  %s\n", i+1, name)
	}

	fmt.Println()
	fmt.Println("Run 'match3 play <id>' to play, or 'match3 play --level N' to start later in the campaign.")
}
