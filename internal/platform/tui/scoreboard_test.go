package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/match3/internal/storage"
)

func secondsDuration(n int) time.Duration {
	return time.Duration(n) * time.Second
}

func TestScoreboardShowsRuns(t *testing.T) {
	store := openTestStore(t)
	for _, r := range []storage.Run{
		{GameID: "match3", Score: 1500, Level: 2, Moves: 20, Duration: 95 * time.Second},
		{GameID: "match3", Score: 3000, Level: 3, Moves: 41, Duration: 3 * time.Minute},
		{GameID: "match3_endless", Score: 800, Level: 1, Moves: 9},
	} {
		if _, err := store.SaveRun(r); err != nil {
			t.Fatalf("SaveRun: %v", err)
		}
	}

	m := NewScoreboardModel(store, 100, 30)
	if len(m.scores) != 2 {
		t.Fatalf("loaded %d campaign runs, want 2", len(m.scores))
	}
	if m.scores[0].Score != 3000 {
		t.Errorf("top score = %d, want 3000", m.scores[0].Score)
	}
	view := m.View()
	for _, want := range []string{"HIGH SCORES", "Runs: 2", "Best: 3000", "Best level: 3"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(ScoreboardModel)
	if len(m.scores) != 1 || m.scores[0].Score != 800 {
		t.Errorf("endless scores = %+v, want one run of 800", m.scores)
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	m = next.(ScoreboardModel)
	if len(m.scores) != 2 {
		t.Errorf("back on campaign: %d runs, want 2", len(m.scores))
	}
}

func TestScoreboardWithoutStore(t *testing.T) {
	m := NewScoreboardModel(nil, 80, 24)
	if !strings.Contains(m.View(), "not being recorded") {
		t.Error("missing no-store message")
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = next.(ScoreboardModel)
	if !m.IsGoingBack() || m.IsQuitting() {
		t.Error("esc should go back to the menu")
	}
}
