package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/match3/internal/config"
	"github.com/vovakirdan/match3/internal/core"
)

func newTestMenu(t *testing.T) MenuModel {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	return NewMenuModel(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60})
}

func press(t *testing.T, m MenuModel, msgs ...tea.KeyMsg) MenuModel {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		got, ok := next.(MenuModel)
		if !ok {
			t.Fatalf("Update returned %T, want MenuModel", next)
		}
		m = got
	}
	return m
}

var (
	keyUp    = tea.KeyMsg{Type: tea.KeyUp}
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keyLeft  = tea.KeyMsg{Type: tea.KeyLeft}
	keyRight = tea.KeyMsg{Type: tea.KeyRight}
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
	keyTab   = tea.KeyMsg{Type: tea.KeyTab}
)

func TestMenuCampaign(t *testing.T) {
	m := press(t, newTestMenu(t), keyUp, keyEnter)

	r := m.Result()
	if !m.Done() || r.Quit {
		t.Fatalf("menu not done: %+v", r)
	}
	if r.GameID != "match3" || r.StartLevel != 0 || r.Difficulty != config.DifficultyNormal {
		t.Errorf("result = %+v, want campaign from level 1 on normal", r)
	}
}

func TestMenuEndlessWithDifficulty(t *testing.T) {
	m := newTestMenu(t)
	// Difficulty is the fourth entry
	m = press(t, m, keyDown, keyDown, keyDown, keyRight, keyUp, keyUp, keyEnter)

	r := m.Result()
	if r.GameID != "match3_endless" || r.Difficulty != config.DifficultyHard {
		t.Errorf("result = %+v, want endless on hard", r)
	}
}

func TestMenuDifficultyWraps(t *testing.T) {
	m := press(t, newTestMenu(t), keyDown, keyDown, keyDown, keyLeft, keyLeft)
	if got := difficulties[m.difficulty]; got != config.DifficultyFixed {
		t.Errorf("difficulty = %s, want fixed after wrapping left", got)
	}
	if !strings.Contains(m.View(), "Difficulty: < fixed >") {
		t.Error("view does not show the difficulty")
	}
}

func TestMenuSelectLevel(t *testing.T) {
	m := press(t, newTestMenu(t), keyDown, keyDown, keyEnter)
	if !m.inLevelSelect {
		t.Fatal("level select not opened")
	}
	if view := m.View(); !strings.Contains(view, "First Swap") || !strings.Contains(view, "Goal: 1250") {
		t.Errorf("level list missing names or goals:\n%s", view)
	}

	// Esc goes back to the modes, not out of the menu
	m = press(t, m, keyEsc)
	if m.inLevelSelect || m.Done() {
		t.Fatal("esc should leave level select only")
	}

	m = press(t, m, keyEnter, keyDown, keyDown, keyEnter)
	r := m.Result()
	if r.GameID != "match3" || r.StartLevel != 3 {
		t.Errorf("result = %+v, want campaign from level 3", r)
	}
}

func TestMenuScoreboardAndQuit(t *testing.T) {
	m := press(t, newTestMenu(t), keyTab)
	if r := m.Result(); !r.WantsScoreboard {
		t.Errorf("tab result = %+v, want scoreboard", r)
	}

	m = press(t, newTestMenu(t), runeKey('q'))
	if r := m.Result(); !m.Done() || !r.Quit {
		t.Errorf("q result = %+v, want quit", r)
	}
}

func TestMenuResize(t *testing.T) {
	m := newTestMenu(t)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m = next.(MenuModel)
	m = press(t, m, keyEnter)
	if cfg := m.Result().Config; cfg.ScreenW != 120 || cfg.ScreenH != 40 {
		t.Errorf("config = %dx%d, want 120x40", cfg.ScreenW, cfg.ScreenH)
	}
}
