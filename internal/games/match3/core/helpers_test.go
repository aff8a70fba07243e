package core_test

import (
	"testing"

	"github.com/vovakirdan/match3/internal/games/match3/core"
)

// script is a Source that replays fixed values, cycling when exhausted.
type script struct {
	vals []int
	i    int
}

func newScript(vals ...int) *script {
	return &script{vals: vals}
}

func (s *script) Intn(n int) int {
	v := s.vals[s.i%len(s.vals)]
	s.i++
	return v % n
}

func mustGrid(t *testing.T, rows [][]int, varieties int, src core.Source) *core.Grid {
	t.Helper()
	g, err := core.FromVarieties(rows, varieties, src)
	if err != nil {
		t.Fatalf("FromVarieties: %v", err)
	}
	return g
}

func varietiesOf(g *core.Grid) [][]int {
	rows := g.Rows()
	out := make([][]int, len(rows))
	for r, row := range rows {
		out[r] = make([]int, len(row))
		for c, tile := range row {
			out[r][c] = tile.Variety
		}
	}
	return out
}

func equalInts(a, b [][]int) bool {
	if len(a) != len(b) {
		return false
	}
	for r := range a {
		if len(a[r]) != len(b[r]) {
			return false
		}
		for c := range a[r] {
			if a[r][c] != b[r][c] {
				return false
			}
		}
	}
	return true
}
