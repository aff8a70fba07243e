package core

import (
	"fmt"
	"strings"
)

// Grid is a rectangular board of tiles. It is the only owner of tile
// positions. Cells are stored row-major; a cell is vacant only while the
// cascade resolver is between removal and collapse.
type Grid struct {
	height    int
	width     int
	varieties int
	cells     []Tile
	filled    []bool
	src       Source
}

// FallingTile records one tile landing at To during a collapse.
// Spawned tiles start above the grid (negative From.Row).
type FallingTile struct {
	Tile    Tile
	From    Pos
	To      Pos
	Spawned bool
}

// Distance returns how many rows the tile falls.
func (f FallingTile) Distance() int {
	return f.To.Row - f.From.Row
}

// NewGrid creates a height x width grid filled with random normal tiles.
// The result may contain matches.
func NewGrid(height, width, varieties int, src Source) (*Grid, error) {
	if height < 1 || width < 1 || varieties < 1 {
		return nil, fmt.Errorf("%w: %dx%d with %d varieties", ErrInvalidDimensions, height, width, varieties)
	}
	if src == nil {
		return nil, fmt.Errorf("%w: nil source", ErrInvalidDimensions)
	}

	g := newEmpty(height, width, varieties, src)
	for i := range g.cells {
		g.cells[i] = NewTile(src.Intn(varieties))
		g.filled[i] = true
	}
	return g, nil
}

// FromVarieties builds a grid from literal rows of varieties.
// All rows must have the same length and every value must lie in [0, varieties).
func FromVarieties(rows [][]int, varieties int, src Source) (*Grid, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("%w: empty layout", ErrInvalidDimensions)
	}
	if varieties < 1 || src == nil {
		return nil, fmt.Errorf("%w: %d varieties", ErrInvalidDimensions, varieties)
	}

	height, width := len(rows), len(rows[0])
	g := newEmpty(height, width, varieties, src)
	for r, row := range rows {
		if len(row) != width {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrInvalidDimensions, r, len(row), width)
		}
		for c, v := range row {
			if v < 0 || v >= varieties {
				return nil, fmt.Errorf("%w: variety %d at %s outside [0,%d)", ErrInvalidDimensions, v, P(r, c), varieties)
			}
			i := g.index(P(r, c))
			g.cells[i] = NewTile(v)
			g.filled[i] = true
		}
	}
	return g, nil
}

func newEmpty(height, width, varieties int, src Source) *Grid {
	return &Grid{
		height:    height,
		width:     width,
		varieties: varieties,
		cells:     make([]Tile, height*width),
		filled:    make([]bool, height*width),
		src:       src,
	}
}

// Height returns the number of rows.
func (g *Grid) Height() int { return g.height }

// Width returns the number of columns.
func (g *Grid) Width() int { return g.width }

// Varieties returns the number of tile varieties.
func (g *Grid) Varieties() int { return g.varieties }

// InBounds reports whether p lies on the grid.
func (g *Grid) InBounds(p Pos) bool {
	return p.Row >= 0 && p.Row < g.height && p.Col >= 0 && p.Col < g.width
}

func (g *Grid) index(p Pos) int {
	return p.Row*g.width + p.Col
}

func (g *Grid) check(p Pos) error {
	if !g.InBounds(p) {
		return &OutOfBoundsError{Pos: p, Height: g.height, Width: g.width}
	}
	return nil
}

// Get returns the tile at p.
func (g *Grid) Get(p Pos) (Tile, error) {
	if err := g.check(p); err != nil {
		return Tile{}, err
	}
	i := g.index(p)
	if !g.filled[i] {
		return Tile{}, fmt.Errorf("%w: %s", ErrVacantCell, p)
	}
	return g.cells[i], nil
}

// Set places a tile at p, filling the cell if it was vacant.
func (g *Grid) Set(p Pos, t Tile) error {
	if err := g.check(p); err != nil {
		return err
	}
	g.put(p, t)
	return nil
}

// Swap exchanges the contents of two cells. Adjacency is not checked.
func (g *Grid) Swap(a, b Pos) error {
	if err := g.check(a); err != nil {
		return err
	}
	if err := g.check(b); err != nil {
		return err
	}
	g.swap(a, b)
	return nil
}

// Remove vacates the cell at p.
func (g *Grid) Remove(p Pos) error {
	if err := g.check(p); err != nil {
		return err
	}
	g.filled[g.index(p)] = false
	return nil
}

// Vacant reports whether the cell at p is empty. Out of range cells count as vacant.
func (g *Grid) Vacant(p Pos) bool {
	return !g.InBounds(p) || !g.filled[g.index(p)]
}

// Full reports whether every cell holds a tile.
func (g *Grid) Full() bool {
	for _, f := range g.filled {
		if !f {
			return false
		}
	}
	return true
}

func (g *Grid) at(p Pos) Tile {
	return g.cells[g.index(p)]
}

func (g *Grid) put(p Pos, t Tile) {
	i := g.index(p)
	g.cells[i] = t
	g.filled[i] = true
}

func (g *Grid) swap(a, b Pos) {
	i, j := g.index(a), g.index(b)
	g.cells[i], g.cells[j] = g.cells[j], g.cells[i]
	g.filled[i], g.filled[j] = g.filled[j], g.filled[i]
}

// sameAt reports whether p holds a tile matching t.
func (g *Grid) sameAt(p Pos, t Tile) bool {
	if g.Vacant(p) {
		return false
	}
	return g.at(p).Matches(t)
}

func (g *Grid) random() Tile {
	if g.src == nil {
		panic("match3: refill of a grid copy, which has no source")
	}
	return NewTile(g.src.Intn(g.varieties))
}

// CollapseColumn drops the surviving tiles of col toward the bottom and
// refills the vacated top cells with fresh tiles. A spawned tile landing at
// row r starts at row r-k, where k is the number of tiles spawned.
// Moves are reported bottom-up, followed by spawns bottom-up.
func (g *Grid) CollapseColumn(col int) []FallingTile {
	if col < 0 || col >= g.width {
		return nil
	}

	var falls []FallingTile
	write := g.height - 1
	for read := g.height - 1; read >= 0; read-- {
		from := P(read, col)
		if !g.filled[g.index(from)] {
			continue
		}
		if read != write {
			to := P(write, col)
			t := g.at(from)
			g.put(to, t)
			g.filled[g.index(from)] = false
			falls = append(falls, FallingTile{Tile: t, From: from, To: to})
		}
		write--
	}

	spawned := write + 1
	for row := write; row >= 0; row-- {
		to := P(row, col)
		t := g.random()
		g.put(to, t)
		falls = append(falls, FallingTile{Tile: t, From: P(row-spawned, col), To: to, Spawned: true})
	}
	return falls
}

// Clone returns a deep copy of the cells. The copy has no Source: it can be
// inspected and rearranged, but refilling it with CollapseColumn panics, so a
// copy never draws from the original's random sequence.
func (g *Grid) Clone() *Grid {
	c := newEmpty(g.height, g.width, g.varieties, nil)
	copy(c.cells, g.cells)
	copy(c.filled, g.filled)
	return c
}

// Equal reports whether both grids have the same shape and contents.
func (g *Grid) Equal(other *Grid) bool {
	if other == nil || g.height != other.height || g.width != other.width {
		return false
	}
	for i := range g.cells {
		if g.filled[i] != other.filled[i] {
			return false
		}
		if g.filled[i] && g.cells[i] != other.cells[i] {
			return false
		}
	}
	return true
}

// Rows returns a copy of the board as rows of tiles. Vacant cells are zero tiles.
func (g *Grid) Rows() [][]Tile {
	rows := make([][]Tile, g.height)
	for r := range rows {
		rows[r] = make([]Tile, g.width)
		for c := range rows[r] {
			if g.filled[g.index(P(r, c))] {
				rows[r][c] = g.at(P(r, c))
			}
		}
	}
	return rows
}

// Glyph returns the two character ASCII form of a tile: a variety letter
// followed by a kind marker.
func Glyph(t Tile) string {
	letter := rune('A' + t.Variety%26)
	switch t.Kind {
	case KindRowClear:
		return string(letter) + "="
	case KindAreaClear:
		return string(letter) + "*"
	default:
		return string(letter) + " "
	}
}

// String renders the grid as ASCII, one row per line.
func (g *Grid) String() string {
	var b strings.Builder
	for r := 0; r < g.height; r++ {
		for c := 0; c < g.width; c++ {
			p := P(r, c)
			if g.filled[g.index(p)] {
				b.WriteString(Glyph(g.at(p)))
			} else {
				b.WriteString(". ")
			}
		}
		if r < g.height-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}
