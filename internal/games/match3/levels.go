// Package match3 implements the Match-3 puzzle game with campaign and endless modes.
package match3

import "fmt"

// Level defines a named campaign stage.
// Goals and timers come from configuration and the difficulty curve.
type Level struct {
	ID   int
	Name string
}

// Levels defines the campaign. Clearing the last one wins the game.
var Levels = []Level{
	{ID: 1, Name: "First Swap"},
	{ID: 2, Name: "Chain Reaction"},
	{ID: 3, Name: "Four in a Row"},
	{ID: 4, Name: "Cross Fire"},
	{ID: 5, Name: "Cascade"},
	{ID: 6, Name: "Blast Radius"},
	{ID: 7, Name: "Crowded Board"},
	{ID: 8, Name: "Against the Clock"},
	{ID: 9, Name: "Combo Master"},
	{ID: 10, Name: "Grand Finale"},
}

// LevelCount returns the number of campaign levels.
func LevelCount() int {
	return len(Levels)
}

// GetLevel returns the level at the given index (0-based).
// Returns nil if index is out of range.
func GetLevel(index int) *Level {
	if index < 0 || index >= len(Levels) {
		return nil
	}
	return &Levels[index]
}

// LevelName returns the display name for a 1-indexed level.
// Endless play continues past the campaign with numbered levels.
func LevelName(level int) string {
	if l := GetLevel(level - 1); l != nil {
		return l.Name
	}
	return fmt.Sprintf("Level %d", level)
}

// LevelNames returns the names of all levels.
func LevelNames() []string {
	names := make([]string, len(Levels))
	for i, lvl := range Levels {
		names[i] = lvl.Name
	}
	return names
}
