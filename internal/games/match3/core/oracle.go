package core

// Hint names a swap that yields a match, or a powerup that can be fired.
type Hint struct {
	A       Pos
	B       Pos
	Tiles   []Pos // Tiles that would match, or the powerup cells
	Powerup bool
}

// FindHint returns the first legal move in row-major order, trying the right
// neighbour before the one below. It returns nil on a deadlocked board.
// The grid is left unchanged.
func FindHint(g *Grid) *Hint {
	var found *Hint
	eachPair(g, func(a, b Pos) bool {
		if h, ok := tryPair(g, a, b); ok {
			found = &h
			return false
		}
		return true
	})
	return found
}

// HasAnyMove reports whether the board offers at least one move.
func HasAnyMove(g *Grid) bool {
	return FindHint(g) != nil
}

// Moves enumerates every legal move in the same order FindHint uses.
func Moves(g *Grid) []Hint {
	var out []Hint
	eachPair(g, func(a, b Pos) bool {
		if h, ok := tryPair(g, a, b); ok {
			out = append(out, h)
		}
		return true
	})
	return out
}

func eachPair(g *Grid, fn func(a, b Pos) bool) {
	for r := 0; r < g.height; r++ {
		for c := 0; c < g.width; c++ {
			a := P(r, c)
			if right := a.Add(0, 1); g.InBounds(right) && !fn(a, right) {
				return
			}
			if below := a.Add(1, 0); g.InBounds(below) && !fn(a, below) {
				return
			}
		}
	}
}

func tryPair(g *Grid, a, b Pos) (Hint, bool) {
	if g.Vacant(a) || g.Vacant(b) {
		return Hint{}, false
	}
	ta, tb := g.at(a), g.at(b)
	if ta.IsPowerup() || tb.IsPowerup() {
		var tiles []Pos
		if ta.IsPowerup() {
			tiles = append(tiles, a)
		}
		if tb.IsPowerup() {
			tiles = append(tiles, b)
		}
		return Hint{A: a, B: b, Tiles: tiles, Powerup: true}, true
	}
	g.swap(a, b)
	matches := FindMatches(g, []Pos{a, b})
	g.swap(a, b)
	if len(matches) == 0 {
		return Hint{}, false
	}
	return Hint{A: a, B: b, Tiles: positionsOf(matches)}, true
}
