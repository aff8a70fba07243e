package match3

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	m3 "github.com/vovakirdan/match3/internal/games/match3/core"
)

func TestAutoplay(t *testing.T) {
	res, err := Autoplay(m3.DefaultSettings(), 7, 40, nil)
	if err != nil {
		t.Fatalf("Autoplay: %v", err)
	}

	if res.Moves != 40 {
		t.Errorf("Moves = %d, want 40", res.Moves)
	}
	if res.Score != res.Removed*m3.PointsPerTile {
		t.Errorf("Score = %d, want %d (Removed × %d)", res.Score, res.Removed*m3.PointsPerTile, m3.PointsPerTile)
	}
	if res.Steps < res.Moves {
		t.Errorf("Steps = %d, want at least one per move", res.Steps)
	}
	if res.Fallen < res.Removed {
		t.Errorf("Fallen = %d, want at least Removed = %d", res.Fallen, res.Removed)
	}
	if res.LongestFall < 1 {
		t.Errorf("LongestFall = %d, want at least 1", res.LongestFall)
	}
	if got := len(strings.Split(res.Board, "\n")); got != 8 {
		t.Errorf("board has %d rows, want 8", got)
	}
}

func TestAutoplayDeterministic(t *testing.T) {
	for _, seed := range []int64{1, 2, 3} {
		a, errA := Autoplay(m3.DefaultSettings(), seed, 25, nil)
		b, errB := Autoplay(m3.DefaultSettings(), seed, 25, nil)
		if errA != nil || errB != nil {
			t.Fatalf("seed %d: errors %v, %v", seed, errA, errB)
		}
		if a != b {
			t.Errorf("seed %d: runs differ:\n%+v\n%+v", seed, a, b)
		}
	}
}

func TestAutoplayLogsMoves(t *testing.T) {
	var buf bytes.Buffer
	l := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})

	if _, err := Autoplay(m3.DefaultSettings(), 11, 3, l); err != nil {
		t.Fatalf("Autoplay: %v", err)
	}
	if n := strings.Count(buf.String(), "move"); n < 3 {
		t.Errorf("logged %d moves, want 3:\n%s", n, buf.String())
	}
}

func TestAutoplayInvalidSettings(t *testing.T) {
	s := m3.DefaultSettings()
	s.Varieties = 1
	_, err := Autoplay(s, 1, 5, nil)
	if !errors.Is(err, m3.ErrInvalidDimensions) {
		t.Errorf("err = %v, want ErrInvalidDimensions", err)
	}
}
