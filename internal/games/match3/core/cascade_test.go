package core_test

import (
	"math/rand"
	"testing"

	"github.com/vovakirdan/match3/internal/games/match3/core"
)

// latin5 is a 5x5 board without runs.
var latin5 = [][]int{
	{0, 1, 2, 3, 4},
	{1, 2, 3, 4, 0},
	{2, 3, 4, 0, 1},
	{3, 4, 0, 1, 2},
	{4, 0, 1, 2, 3},
}

func TestResolveSimpleColumnMatch(t *testing.T) {
	g := mustGrid(t, [][]int{
		{1, 1, 2},
		{2, 1, 2},
		{1, 3, 2},
	}, 6, newScript(4, 5, 4))

	rep := core.Resolve(g, core.FindAllMatches(g), nil)

	if rep.Score != 3*core.PointsPerTile {
		t.Errorf("Score = %d, want %d", rep.Score, 3*core.PointsPerTile)
	}
	if len(rep.Steps) != 1 {
		t.Fatalf("Steps = %d, want 1", len(rep.Steps))
	}
	want := [][]int{
		{1, 1, 4},
		{2, 1, 5},
		{1, 3, 4},
	}
	if got := varietiesOf(g); !equalInts(got, want) {
		t.Errorf("board = %v, want %v", got, want)
	}
	if !g.Full() {
		t.Error("grid should be full after Resolve")
	}
}

func TestResolvePromotesRunOfFour(t *testing.T) {
	g := mustGrid(t, [][]int{
		{0, 0, 1, 0, 2},
		{3, 4, 0, 5, 3},
		{4, 5, 3, 4, 5},
		{5, 3, 4, 5, 4},
	}, 6, newScript(1, 2, 3))

	a, b := core.P(0, 2), core.P(1, 2)
	_ = g.Swap(a, b)
	rep := core.Resolve(g, core.FindMatches(g, []core.Pos{a, b}), []core.Pos{a, b})

	promos := rep.Promotions()
	if len(promos) != 1 {
		t.Fatalf("promotions = %d, want 1", len(promos))
	}
	if promos[0].Pos != a {
		t.Errorf("promoted %v, want swapped tile %v", promos[0].Pos, a)
	}
	if promos[0].Tile.Kind != core.KindRowClear {
		t.Errorf("promoted kind = %v, want row-clear", promos[0].Tile.Kind)
	}
	if rep.Score != 3*core.PointsPerTile {
		t.Errorf("Score = %d, want %d (promoted tile scores nothing)", rep.Score, 3*core.PointsPerTile)
	}

	tile, err := g.Get(a)
	if err != nil {
		t.Fatal(err)
	}
	if tile.Kind != core.KindRowClear || tile.Variety != 0 {
		t.Errorf("tile at %v = %+v, want row-clear of variety 0", a, tile)
	}
}

func TestResolvePromotesRunOfFive(t *testing.T) {
	g := mustGrid(t, [][]int{
		{0, 0, 1, 0, 0},
		{3, 4, 0, 5, 3},
		{4, 5, 3, 4, 5},
	}, 6, newScript(1, 2, 3, 4))

	a, b := core.P(0, 2), core.P(1, 2)
	_ = g.Swap(a, b)
	rep := core.Resolve(g, core.FindMatches(g, []core.Pos{a, b}), []core.Pos{a, b})

	promos := rep.Promotions()
	if len(promos) != 1 || promos[0].Tile.Kind != core.KindAreaClear {
		t.Fatalf("promotions = %+v, want one area-clear", promos)
	}
	if got := len(rep.Steps[0].Removed); got != 4 {
		t.Errorf("removed = %d, want 4", got)
	}
}

func TestResolvePromotionFallsBackToFirstTile(t *testing.T) {
	g := mustGrid(t, [][]int{
		{2, 2, 2, 2},
		{0, 1, 0, 1},
	}, 3, newScript(1, 0, 1, 0))

	rep := core.Resolve(g, core.FindAllMatches(g), nil)
	promos := rep.Promotions()
	if len(promos) != 1 || promos[0].Pos != core.P(0, 0) {
		t.Errorf("promotions = %+v, want first tile (0,0)", promos)
	}
}

func TestResolveActiveRowClear(t *testing.T) {
	g := mustGrid(t, latin5, 5, rand.New(rand.NewSource(3)))
	_ = g.Set(core.P(2, 2), core.Tile{Variety: 4, Kind: core.KindRowClear, Active: true})

	rep := core.Resolve(g, nil, nil)

	if len(rep.Steps) == 0 {
		t.Fatal("active tile should trigger a step")
	}
	first := rep.Steps[0]
	if len(first.Detonations) != 1 {
		t.Errorf("detonations = %d, want 1", len(first.Detonations))
	}
	if len(first.Removed) != 5 {
		t.Errorf("removed = %d, want full row of 5", len(first.Removed))
	}
	for _, r := range first.Removed {
		if r.Pos.Row != 2 {
			t.Errorf("removed %v outside row 2", r.Pos)
		}
	}
	if first.Score != 5*core.PointsPerTile {
		t.Errorf("step score = %d, want %d", first.Score, 5*core.PointsPerTile)
	}
}

func TestResolveChainedDetonation(t *testing.T) {
	g := mustGrid(t, latin5, 5, rand.New(rand.NewSource(3)))
	_ = g.Set(core.P(0, 0), core.Tile{Variety: 0, Kind: core.KindRowClear, Active: true})
	_ = g.Set(core.P(0, 4), core.Tile{Variety: 4, Kind: core.KindAreaClear})

	rep := core.Resolve(g, nil, nil)
	first := rep.Steps[0]

	if len(first.Detonations) != 2 {
		t.Fatalf("detonations = %d, want 2 (row clear chaining into area clear)", len(first.Detonations))
	}
	// Row 0 plus rows 1-2 of columns 2-4.
	if len(first.Removed) != 11 {
		t.Errorf("removed = %d, want 11", len(first.Removed))
	}
}

func TestResolveAreaClearClipsAtEdge(t *testing.T) {
	g := mustGrid(t, latin5, 5, rand.New(rand.NewSource(3)))
	_ = g.Set(core.P(4, 4), core.Tile{Variety: 3, Kind: core.KindAreaClear, Active: true})

	rep := core.Resolve(g, nil, nil)
	if got := len(rep.Steps[0].Removed); got != 9 {
		t.Errorf("removed = %d, want 3x3 corner", got)
	}
}

func TestResolveNothingToDo(t *testing.T) {
	g := mustGrid(t, latin5, 5, newScript(0))
	before := g.Clone()
	rep := core.Resolve(g, nil, nil)
	if !rep.Empty() || rep.Score != 0 {
		t.Errorf("Resolve on a stable board = %+v, want empty", rep)
	}
	if !g.Equal(before) {
		t.Error("stable board should be unchanged")
	}
}

// Resolution always leaves a full grid without standing matches.
func TestResolveLeavesStableBoard(t *testing.T) {
	for seed := int64(1); seed <= 30; seed++ {
		g, _ := core.NewGrid(8, 8, 4, rand.New(rand.NewSource(seed)))
		rep := core.Resolve(g, core.FindAllMatches(g), nil)
		if !g.Full() {
			t.Errorf("seed %d: grid not full", seed)
		}
		if len(rep.Steps) < core.MaxCascadeSteps {
			if ms := core.FindAllMatches(g); len(ms) != 0 {
				t.Errorf("seed %d: %d matches remain after resolution", seed, len(ms))
			}
		}
		removed := 0
		for _, s := range rep.Steps {
			removed += len(s.Removed)
		}
		if rep.Score != removed*core.PointsPerTile {
			t.Errorf("seed %d: score %d, want %d", seed, rep.Score, removed*core.PointsPerTile)
		}
		if len(rep.Batches()) != len(rep.Steps) {
			t.Errorf("seed %d: %d batches for %d steps", seed, len(rep.Batches()), len(rep.Steps))
		}
	}
}
