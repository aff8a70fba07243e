package core_test

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/vovakirdan/match3/internal/games/match3/core"
)

func newSeeded(t *testing.T, seed int64) *core.Controller {
	t.Helper()
	c, err := core.NewController(core.DefaultSettings(), rand.New(rand.NewSource(seed)))
	if err != nil {
		t.Fatalf("NewController: %v", err)
	}
	return c
}

func TestNewControllerDealsStablePlayableBoard(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		c := newSeeded(t, seed)
		g := c.Grid()
		if ms := core.FindAllMatches(g); len(ms) != 0 {
			t.Errorf("seed %d: dealt board has %d standing matches", seed, len(ms))
		}
		if !c.HasAnyMove() {
			t.Errorf("seed %d: dealt board has no move", seed)
		}
		if c.Score() != 0 || c.Moves() != 0 {
			t.Errorf("seed %d: fresh controller score=%d moves=%d", seed, c.Score(), c.Moves())
		}
	}
}

func TestNewControllerRejectsBadSettings(t *testing.T) {
	tests := []struct {
		name string
		s    core.Settings
	}{
		{"zero height", core.Settings{Height: 0, Width: 8, Varieties: 6}},
		{"one variety", core.Settings{Height: 8, Width: 8, Varieties: 1}},
		{"negative cap", core.Settings{Height: 8, Width: 8, Varieties: 6, MaxRegenerations: -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := core.NewController(tt.s, rand.New(rand.NewSource(1)))
			if !errors.Is(err, core.ErrInvalidDimensions) {
				t.Errorf("error = %v, want ErrInvalidDimensions", err)
			}
		})
	}
}

// Swapping the middle row's right pair lines up column 2.
func TestControllerSwapScenario(t *testing.T) {
	fixture := mustGrid(t, [][]int{
		{1, 1, 2},
		{2, 2, 1},
		{1, 3, 2},
	}, 6, newScript(0))

	c, err := core.NewController(core.DefaultSettings(), newScript(4, 5, 4), core.WithGrid(fixture))
	if err != nil {
		t.Fatalf("NewController: %v", err)
	}

	out, err := c.Swap(core.P(1, 1), core.P(1, 2))
	if err != nil {
		t.Fatalf("Swap: %v", err)
	}
	if !out.Accepted() {
		t.Fatalf("Swap rejected: %v", out.Reason)
	}
	if out.Report.Score != 150 {
		t.Errorf("score = %d, want 150", out.Report.Score)
	}
	if c.Score() != 150 || c.Moves() != 1 {
		t.Errorf("controller score=%d moves=%d, want 150 and 1", c.Score(), c.Moves())
	}

	batches := out.Report.Batches()
	if len(batches) != 1 || len(batches[0]) != 3 {
		t.Fatalf("batches = %+v, want one batch of 3", batches)
	}
	wantFrom := map[int]int{2: -1, 1: -2, 0: -3}
	for _, f := range batches[0] {
		if !f.Spawned || f.To.Col != 2 {
			t.Errorf("fall %+v should be a spawn into column 2", f)
		}
		if f.From.Row != wantFrom[f.To.Row] {
			t.Errorf("spawn into row %d starts at %d, want %d", f.To.Row, f.From.Row, wantFrom[f.To.Row])
		}
	}

	want := [][]int{
		{1, 1, 4},
		{2, 1, 5},
		{1, 3, 4},
	}
	if got := varietiesOf(c.Grid()); !equalInts(got, want) {
		t.Errorf("board = %v, want %v", got, want)
	}
	if out.Regenerated {
		t.Error("board still has a move, should not regenerate")
	}
}

func TestControllerSwapRejections(t *testing.T) {
	fixture := mustGrid(t, [][]int{
		{1, 1, 2},
		{2, 2, 1},
		{1, 3, 2},
	}, 6, newScript(0))
	c, err := core.NewController(core.DefaultSettings(), newScript(0), core.WithGrid(fixture))
	if err != nil {
		t.Fatal(err)
	}
	before := c.Grid()

	tests := []struct {
		name   string
		a, b   core.Pos
		reason core.Reason
	}{
		{"not adjacent", core.P(0, 0), core.P(2, 2), core.ReasonNotAdjacent},
		{"same cell", core.P(0, 0), core.P(0, 0), core.ReasonNotAdjacent},
		{"no match", core.P(0, 0), core.P(1, 0), core.ReasonNoMatch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := c.Swap(tt.a, tt.b)
			if err != nil {
				t.Fatalf("Swap: %v", err)
			}
			if out.Status != core.StatusRejected || out.Reason != tt.reason {
				t.Errorf("outcome = %+v, want rejected with %v", out, tt.reason)
			}
			if !c.Grid().Equal(before) {
				t.Error("rejected swap changed the board")
			}
		})
	}

	if c.Moves() != 0 || c.Score() != 0 {
		t.Errorf("rejections counted: moves=%d score=%d", c.Moves(), c.Score())
	}

	_, err = c.Swap(core.P(2, 2), core.P(2, 3))
	var oob *core.OutOfBoundsError
	if !errors.As(err, &oob) {
		t.Errorf("out of range swap error = %v, want *OutOfBoundsError", err)
	}
}

func TestControllerActivate(t *testing.T) {
	c := newSeeded(t, 5)

	out, err := c.Activate(core.P(0, 0))
	if err != nil {
		t.Fatal(err)
	}
	if out.Status != core.StatusRejected || out.Reason != core.ReasonNotPowerup {
		t.Errorf("activating a normal tile = %+v, want ReasonNotPowerup", out)
	}

	// Build a row clear by hand and fire it.
	fixture := c.Grid()
	_ = fixture.Set(core.P(3, 3), core.NewTile(0).Promote(core.KindRowClear))
	c, err = core.NewController(core.DefaultSettings(), rand.New(rand.NewSource(5)), core.WithGrid(fixture))
	if err != nil {
		t.Fatal(err)
	}
	out, err = c.Activate(core.P(3, 3))
	if err != nil {
		t.Fatal(err)
	}
	if !out.Accepted() {
		t.Fatalf("Activate rejected: %v", out.Reason)
	}
	first := out.Report.Steps[0]
	if len(first.Detonations) != 1 || first.Detonations[0].Pos != core.P(3, 3) {
		t.Errorf("detonations = %+v, want one at (3,3)", first.Detonations)
	}
	if len(first.Removed) != 8 {
		t.Errorf("removed = %d, want the full row of 8", len(first.Removed))
	}
	if !c.Grid().Full() {
		t.Error("grid should be full after activation")
	}
}

// Two controllers with the same seed and the same inputs stay identical.
func TestControllerDeterminism(t *testing.T) {
	a := newSeeded(t, 42)
	b := newSeeded(t, 42)

	for i := 0; i < 30; i++ {
		h := a.FindHint()
		if h == nil {
			t.Fatalf("move %d: no hint on a playable board", i)
		}
		var outA, outB core.Outcome
		var errA, errB error
		if h.Powerup {
			p := h.Tiles[0]
			outA, errA = a.Activate(p)
			outB, errB = b.Activate(p)
		} else {
			outA, errA = a.Swap(h.A, h.B)
			outB, errB = b.Swap(h.A, h.B)
		}
		if errA != nil || errB != nil {
			t.Fatalf("move %d: errors %v / %v", i, errA, errB)
		}
		if !outA.Accepted() {
			t.Fatalf("move %d: hinted move rejected: %v", i, outA.Reason)
		}
		if outA.Report.Score != outB.Report.Score {
			t.Fatalf("move %d: scores diverged %d vs %d", i, outA.Report.Score, outB.Report.Score)
		}
		if !a.Grid().Equal(b.Grid()) {
			t.Fatalf("move %d: boards diverged:\n%s\n\n%s", i, a.Grid(), b.Grid())
		}
		if !a.HasAnyMove() {
			t.Fatalf("move %d: controller left a deadlocked board", i)
		}
	}
	if a.Score() != b.Score() || a.Score() == 0 {
		t.Errorf("final scores %d / %d", a.Score(), b.Score())
	}
}

func TestEnsurePlayableFallbackPattern(t *testing.T) {
	deadlock := mustGrid(t, [][]int{
		{0, 1, 2},
		{1, 2, 0},
		{2, 0, 1},
	}, 3, newScript(0))

	s := core.Settings{MaxRegenerations: 0}
	c, err := core.NewController(s, rand.New(rand.NewSource(1)), core.WithGrid(deadlock))
	if err != nil {
		t.Fatalf("NewController: %v", err)
	}
	if !c.HasAnyMove() {
		t.Error("fallback pattern should leave a move")
	}
	if c.Regenerations() != 1 {
		t.Errorf("Regenerations = %d, want 1", c.Regenerations())
	}
	if ms := core.FindAllMatches(c.Grid()); len(ms) != 0 {
		t.Errorf("fallback pattern has %d standing matches", len(ms))
	}
}

func TestEnsurePlayableRedeals(t *testing.T) {
	deadlock := mustGrid(t, [][]int{
		{0, 1, 2, 3},
		{1, 2, 3, 0},
		{2, 3, 0, 1},
		{3, 0, 1, 2},
	}, 4, newScript(0))

	c, err := core.NewController(core.DefaultSettings(), rand.New(rand.NewSource(9)), core.WithGrid(deadlock))
	if err != nil {
		t.Fatalf("NewController: %v", err)
	}
	if !c.HasAnyMove() {
		t.Error("redealt board should have a move")
	}
	if c.Grid().Height() != 4 || c.Grid().Width() != 4 {
		t.Errorf("redeal changed size to %dx%d", c.Grid().Height(), c.Grid().Width())
	}
}

func TestEnsurePlayableTooSmall(t *testing.T) {
	s := core.Settings{Height: 1, Width: 2, Varieties: 2, MaxRegenerations: 3}
	_, err := core.NewController(s, rand.New(rand.NewSource(1)))
	if !errors.Is(err, core.ErrUnplayable) {
		t.Errorf("error = %v, want ErrUnplayable", err)
	}
}

func TestRedealKeepsScoreAndAppliesSettings(t *testing.T) {
	c := newSeeded(t, 21)
	h := c.FindHint()
	if h == nil {
		t.Fatal("dealt board has no move")
	}
	if out, err := c.Swap(h.A, h.B); err != nil || !out.Accepted() {
		t.Fatalf("hinted swap: %v %v", out.Reason, err)
	}
	score, moves := c.Score(), c.Moves()

	s := core.DefaultSettings()
	s.Height, s.Width, s.Varieties = 6, 7, 4
	if err := c.Redeal(s); err != nil {
		t.Fatalf("Redeal: %v", err)
	}

	g := c.Grid()
	if g.Height() != 6 || g.Width() != 7 || g.Varieties() != 4 {
		t.Errorf("board = %dx%d with %d varieties, want 6x7 with 4", g.Height(), g.Width(), g.Varieties())
	}
	if c.Settings() != s {
		t.Errorf("Settings = %+v, want %+v", c.Settings(), s)
	}
	if c.Score() != score || c.Moves() != moves {
		t.Errorf("score/moves = %d/%d, want %d/%d kept", c.Score(), c.Moves(), score, moves)
	}
	if !c.HasAnyMove() {
		t.Error("redealt board has no move")
	}
	if ms := core.FindAllMatches(g); len(ms) != 0 {
		t.Errorf("redealt board has %d standing matches", len(ms))
	}
}

func TestRedealRejectsBadSettings(t *testing.T) {
	c := newSeeded(t, 4)
	before := c.Grid()

	s := core.DefaultSettings()
	s.Varieties = 1
	if err := c.Redeal(s); !errors.Is(err, core.ErrInvalidDimensions) {
		t.Fatalf("Redeal err = %v, want ErrInvalidDimensions", err)
	}
	if !c.Grid().Equal(before) {
		t.Error("rejected redeal changed the board")
	}
	if c.Settings() != core.DefaultSettings() {
		t.Errorf("rejected redeal changed settings to %+v", c.Settings())
	}
}
