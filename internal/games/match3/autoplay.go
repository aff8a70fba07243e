package match3

import (
	"fmt"
	"io"
	"math/rand"

	"github.com/charmbracelet/log"

	m3 "github.com/vovakirdan/match3/internal/games/match3/core"
)

// AutoplayResult summarizes a headless run.
type AutoplayResult struct {
	Moves         int
	Score         int
	Steps         int // Cascade passes over all moves
	Removed       int
	Fallen        int // Tiles moved down, spawns included
	LongestFall   int // Rows covered by the longest single fall
	Promotions    int
	Detonations   int
	Regenerations int
	Board         string // Final board
}

// Autoplay deals a board from seed and plays up to moves hinted moves on it,
// firing powerups when the hint points at one. Every move is logged at debug
// level and every redeal at info level; a nil logger discards both.
func Autoplay(s m3.Settings, seed int64, moves int, l *log.Logger) (AutoplayResult, error) {
	if l == nil {
		l = log.New(io.Discard)
	}

	ctrl, err := m3.NewController(s, rand.New(rand.NewSource(seed)), m3.WithLogger(l))
	if err != nil {
		return AutoplayResult{}, fmt.Errorf("autoplay: %w", err)
	}

	var res AutoplayResult
	for res.Moves < moves {
		h := ctrl.FindHint()
		if h == nil {
			break
		}

		var out m3.Outcome
		kind := "swap"
		if h.Powerup {
			kind = "detonate"
			out, err = ctrl.Activate(h.Tiles[0])
		} else {
			out, err = ctrl.Swap(h.A, h.B)
		}
		if err != nil {
			return res, fmt.Errorf("autoplay: move %d: %w", res.Moves+1, err)
		}
		if !out.Accepted() {
			return res, fmt.Errorf("autoplay: move %d: hinted %s %v-%v rejected: %s",
				res.Moves+1, kind, h.A, h.B, out.Reason)
		}

		res.Moves++
		res.Steps += len(out.Report.Steps)
		res.Removed += out.Report.Removed()
		res.Promotions += len(out.Report.Promotions())
		for _, st := range out.Report.Steps {
			res.Detonations += len(st.Detonations)
		}
		for _, batch := range out.Report.Batches() {
			res.Fallen += len(batch)
			for _, f := range batch {
				res.LongestFall = max(res.LongestFall, f.Distance())
			}
		}

		l.Debug("move", "n", res.Moves, "kind", kind, "a", h.A, "b", h.B,
			"points", out.Report.Score, "steps", len(out.Report.Steps))
		if out.Regenerated {
			l.Info("board redealt", "after_move", res.Moves)
		}
	}

	res.Score = ctrl.Score()
	res.Regenerations = ctrl.Regenerations()
	res.Board = ctrl.Grid().String()
	return res, nil
}
