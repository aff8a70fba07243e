// Package core provides the simulation logic for the Match-3 puzzle game.
// This package is UI-agnostic and deterministic: all randomness enters
// through a Source, so a seeded source reproduces a game exactly.
package core

import "fmt"

// Kind classifies a tile as a plain tile or one of the powerups.
type Kind uint8

const (
	KindNormal    Kind = iota
	KindRowClear       // Minor powerup, created by a run of exactly 4
	KindAreaClear      // Major powerup, created by a run of 5 or more
)

// String returns the string representation of a kind.
func (k Kind) String() string {
	switch k {
	case KindNormal:
		return "normal"
	case KindRowClear:
		return "row-clear"
	case KindAreaClear:
		return "area-clear"
	default:
		return "unknown"
	}
}

// IsPowerup returns true for every kind except KindNormal.
func (k Kind) IsPowerup() bool {
	return k == KindRowClear || k == KindAreaClear
}

// Sprite sheet offsets. Promoted tiles are drawn from a shifted variety
// band; matching never looks at these.
const (
	MinorVarietyOffset = 5
	MajorVarietyOffset = 1
)

// Tile is the content of one grid cell. Its position is owned by the Grid.
type Tile struct {
	Variety int  // Colour class in [0, varieties)
	Kind    Kind // Normal or powerup
	Active  bool // Queued for forced removal (detonation)
}

// NewTile returns a normal tile of the given variety.
func NewTile(variety int) Tile {
	return Tile{Variety: variety, Kind: KindNormal}
}

// IsPowerup returns true if the tile is a row or area clear.
func (t Tile) IsPowerup() bool {
	return t.Kind.IsPowerup()
}

// Matches reports whether two tiles are identical for run detection.
// Powerups only match tiles of the same kind and variety.
func (t Tile) Matches(other Tile) bool {
	return t.Kind == other.Kind && t.Variety == other.Variety
}

// Promote returns a copy of the tile turned into the given powerup kind.
func (t Tile) Promote(k Kind) Tile {
	t.Kind = k
	return t
}

// Sprite returns the sprite sheet index of the tile.
func (t Tile) Sprite() int {
	switch t.Kind {
	case KindRowClear:
		return t.Variety + MinorVarietyOffset
	case KindAreaClear:
		return t.Variety + MajorVarietyOffset
	default:
		return t.Variety
	}
}

// Pos is a grid coordinate. Row grows downward, Col grows to the right.
type Pos struct {
	Row int
	Col int
}

// P is a convenience constructor for Pos.
func P(row, col int) Pos {
	return Pos{Row: row, Col: col}
}

// String returns a string representation of the position.
func (p Pos) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}

// Add returns a new Pos offset by (dr, dc).
func (p Pos) Add(dr, dc int) Pos {
	return Pos{Row: p.Row + dr, Col: p.Col + dc}
}

// Adjacent returns true if the positions share an edge.
func (p Pos) Adjacent(other Pos) bool {
	dr := p.Row - other.Row
	dc := p.Col - other.Col
	if dr < 0 {
		dr = -dr
	}
	if dc < 0 {
		dc = -dc
	}
	return dr+dc == 1
}

// Less orders positions row-major.
func (p Pos) Less(other Pos) bool {
	if p.Row != other.Row {
		return p.Row < other.Row
	}
	return p.Col < other.Col
}

// Source supplies random varieties. *math/rand.Rand satisfies it.
type Source interface {
	Intn(n int) int
}
