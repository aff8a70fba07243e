package core

import (
	"fmt"
	"sort"
)

const (
	// PointsPerTile is awarded for every tile removed from the board.
	PointsPerTile = 50

	// AreaRadius is the reach of an area clear: a (2r+1) square around it.
	AreaRadius = 2

	// MaxCascadeSteps bounds a single resolution. Only reachable with a
	// degenerate variety count where every refill matches again.
	MaxCascadeSteps = 256
)

// Promotion records a tile turned into a powerup instead of being removed.
type Promotion struct {
	Pos  Pos
	Tile Tile
}

// Detonation records a powerup firing.
type Detonation struct {
	Pos  Pos
	Kind Kind
}

// RemovedTile records a tile taken off the board.
type RemovedTile struct {
	Pos  Pos
	Tile Tile
}

// Step is one pass of the cascade: match, promote, detonate, remove, collapse.
type Step struct {
	Matches     []Match
	Promotions  []Promotion
	Detonations []Detonation
	Removed     []RemovedTile
	Falling     []FallingTile
	Score       int
}

// Report is the full record of one resolution.
type Report struct {
	Score int
	Steps []Step
}

// Empty reports whether nothing happened.
func (r Report) Empty() bool {
	return len(r.Steps) == 0
}

// Batches returns the falling tiles of each step in order, one batch per step.
func (r Report) Batches() [][]FallingTile {
	batches := make([][]FallingTile, 0, len(r.Steps))
	for _, s := range r.Steps {
		batches = append(batches, s.Falling)
	}
	return batches
}

// Removed returns the total number of removed tiles.
func (r Report) Removed() int {
	n := 0
	for _, s := range r.Steps {
		n += len(s.Removed)
	}
	return n
}

// Promotions returns every promotion across all steps.
func (r Report) Promotions() []Promotion {
	var out []Promotion
	for _, s := range r.Steps {
		out = append(out, s.Promotions...)
	}
	return out
}

// Resolve runs the cascade until the board is stable. initial are the
// matches that triggered it (may be empty when a tile is flagged Active)
// and origin the swapped pair used to pick promoted tiles.
// Resolve panics if the grid is not full afterwards.
func Resolve(g *Grid, initial []Match, origin []Pos) Report {
	var rep Report
	matches := initial
	for len(rep.Steps) < MaxCascadeSteps {
		step, ok := resolveStep(g, matches, origin)
		if !ok {
			break
		}
		rep.Steps = append(rep.Steps, step)
		rep.Score += step.Score

		seeds := make([]Pos, 0, len(step.Falling)+len(step.Promotions))
		for _, f := range step.Falling {
			seeds = append(seeds, f.To)
		}
		for _, pr := range step.Promotions {
			seeds = append(seeds, pr.Pos)
		}
		matches = FindMatches(g, seeds)
		origin = nil
		if len(matches) == 0 {
			break
		}
	}

	if !g.Full() {
		panic(fmt.Sprintf("match3: grid not full after resolution\n%s", g))
	}
	return rep
}

func resolveStep(g *Grid, matches []Match, origin []Pos) (Step, bool) {
	step := Step{Matches: matches}
	promoted := make(map[Pos]bool)
	doomed := make(map[Pos]bool)
	var order []Pos

	mark := func(p Pos) {
		if promoted[p] || doomed[p] || g.Vacant(p) {
			return
		}
		doomed[p] = true
		order = append(order, p)
	}

	for _, m := range matches {
		kind, ok := promotionFor(m.Len())
		if !ok {
			continue
		}
		p, ok := designate(g, m, origin, promoted)
		if !ok {
			continue
		}
		t := g.at(p).Promote(kind)
		g.put(p, t)
		promoted[p] = true
		step.Promotions = append(step.Promotions, Promotion{Pos: p, Tile: t})
	}

	for _, m := range matches {
		for _, p := range m.Positions {
			mark(p)
		}
	}
	for r := 0; r < g.height; r++ {
		for c := 0; c < g.width; c++ {
			p := P(r, c)
			if !g.Vacant(p) && g.at(p).Active {
				mark(p)
			}
		}
	}

	// order grows while blasts chain into other powerups
	for i := 0; i < len(order); i++ {
		p := order[i]
		t := g.at(p)
		if !t.IsPowerup() {
			continue
		}
		step.Detonations = append(step.Detonations, Detonation{Pos: p, Kind: t.Kind})
		for _, q := range blast(g, p, t.Kind) {
			mark(q)
		}
	}

	if len(order) == 0 {
		return step, false
	}

	sort.Slice(order, func(i, j int) bool { return order[i].Less(order[j]) })
	cols := make(map[int]bool)
	for _, p := range order {
		step.Removed = append(step.Removed, RemovedTile{Pos: p, Tile: g.at(p)})
		g.filled[g.index(p)] = false
		cols[p.Col] = true
	}
	step.Score = len(order) * PointsPerTile

	for c := 0; c < g.width; c++ {
		if cols[c] {
			step.Falling = append(step.Falling, g.CollapseColumn(c)...)
		}
	}
	return step, true
}

func promotionFor(n int) (Kind, bool) {
	switch {
	case n == 4:
		return KindRowClear, true
	case n >= 5:
		return KindAreaClear, true
	default:
		return KindNormal, false
	}
}

// designate picks the tile of m that becomes the powerup: the swapped tile
// if it is part of the run, otherwise the first tile of the run.
func designate(g *Grid, m Match, origin []Pos, promoted map[Pos]bool) (Pos, bool) {
	eligible := func(p Pos) bool {
		return m.Contains(p) && !promoted[p] && !g.at(p).IsPowerup()
	}
	for _, o := range origin {
		if eligible(o) {
			return o, true
		}
	}
	for _, p := range m.Positions {
		if eligible(p) {
			return p, true
		}
	}
	return Pos{}, false
}

func blast(g *Grid, p Pos, k Kind) []Pos {
	var out []Pos
	switch k {
	case KindRowClear:
		for c := 0; c < g.width; c++ {
			out = append(out, P(p.Row, c))
		}
	case KindAreaClear:
		for r := p.Row - AreaRadius; r <= p.Row+AreaRadius; r++ {
			for c := p.Col - AreaRadius; c <= p.Col+AreaRadius; c++ {
				if q := P(r, c); g.InBounds(q) {
					out = append(out, q)
				}
			}
		}
	}
	return out
}
