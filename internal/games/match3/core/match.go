package core

import (
	"fmt"
	"sort"
)

// Axis is the direction of a run.
type Axis uint8

const (
	AxisRow Axis = iota // Horizontal run
	AxisCol             // Vertical run
)

func (a Axis) String() string {
	if a == AxisRow {
		return "row"
	}
	return "col"
}

func (a Axis) step() (int, int) {
	if a == AxisRow {
		return 0, 1
	}
	return 1, 0
}

// MinRun is the shortest run that counts as a match.
const MinRun = 3

// Match is a maximal straight run of identical tiles.
// Positions are sorted from the run's start to its end.
type Match struct {
	Axis      Axis
	Positions []Pos
}

// Len returns the run length.
func (m Match) Len() int {
	return len(m.Positions)
}

// Contains reports whether p is part of the run.
func (m Match) Contains(p Pos) bool {
	for _, q := range m.Positions {
		if q == p {
			return true
		}
	}
	return false
}

// Key identifies the run by axis, start and length.
func (m Match) Key() string {
	if len(m.Positions) == 0 {
		return ""
	}
	start := m.Positions[0]
	return fmt.Sprintf("%s:%d,%d:%d", m.Axis, start.Row, start.Col, len(m.Positions))
}

// FindMatches returns every maximal run of at least MinRun tiles that passes
// through one of the seeds. Each run appears once and the output order does
// not depend on seed order.
func FindMatches(g *Grid, seeds []Pos) []Match {
	seen := make(map[string]bool)
	var out []Match
	for _, s := range seeds {
		if g.Vacant(s) {
			continue
		}
		for _, axis := range []Axis{AxisRow, AxisCol} {
			m, ok := runThrough(g, s, axis)
			if !ok {
				continue
			}
			key := m.Key()
			if seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, m)
		}
	}
	sortMatches(out)
	return out
}

// FindAllMatches seeds every cell of the grid.
func FindAllMatches(g *Grid) []Match {
	seeds := make([]Pos, 0, g.height*g.width)
	for r := 0; r < g.height; r++ {
		for c := 0; c < g.width; c++ {
			seeds = append(seeds, P(r, c))
		}
	}
	return FindMatches(g, seeds)
}

func runThrough(g *Grid, p Pos, axis Axis) (Match, bool) {
	t := g.at(p)
	dr, dc := axis.step()

	start := p
	for g.sameAt(start.Add(-dr, -dc), t) {
		start = start.Add(-dr, -dc)
	}
	end := p
	for g.sameAt(end.Add(dr, dc), t) {
		end = end.Add(dr, dc)
	}

	n := (end.Row - start.Row) + (end.Col - start.Col) + 1
	if n < MinRun {
		return Match{}, false
	}
	positions := make([]Pos, 0, n)
	for q := start; ; q = q.Add(dr, dc) {
		positions = append(positions, q)
		if q == end {
			break
		}
	}
	return Match{Axis: axis, Positions: positions}, true
}

func sortMatches(ms []Match) {
	sort.Slice(ms, func(i, j int) bool {
		a, b := ms[i], ms[j]
		if a.Axis != b.Axis {
			return a.Axis < b.Axis
		}
		if a.Positions[0] != b.Positions[0] {
			return a.Positions[0].Less(b.Positions[0])
		}
		return len(a.Positions) < len(b.Positions)
	})
}

// positionsOf returns the sorted union of all match positions.
func positionsOf(ms []Match) []Pos {
	seen := make(map[Pos]bool)
	var out []Pos
	for _, m := range ms {
		for _, p := range m.Positions {
			if !seen[p] {
				seen[p] = true
				out = append(out, p)
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })
	return out
}
