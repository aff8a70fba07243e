package tui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/match3/internal/core"
	"github.com/vovakirdan/match3/internal/storage"
)

// fakeGame records what the model asks of it.
type fakeGame struct {
	resets int
	state  core.GameState
	frames []core.InputFrame
}

func (g *fakeGame) ID() string    { return "fake" }
func (g *fakeGame) Title() string { return "Fake" }
func (g *fakeGame) Reset(core.RuntimeConfig) {
	g.resets++
	g.state = core.GameState{}
}
func (g *fakeGame) Step(in core.InputFrame) core.StepResult {
	g.frames = append(g.frames, in)
	return core.StepResult{State: g.state}
}
func (g *fakeGame) Render(dst *core.Screen) { dst.DrawText(0, 0, "fake board") }
func (g *fakeGame) State() core.GameState   { return g.state }

// resizingGame keeps its state across window size changes.
type resizingGame struct {
	fakeGame
	w, h int
}

func (g *resizingGame) Resize(w, h int) { g.w, g.h = w, h }
func (g *resizingGame) BoardText() string {
	return "A B\nB A"
}

func testConfig() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 40, ScreenH: 10, TickRate: 60, Seed: 1}
}

func openTestStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	got, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", next)
	}
	return got
}

func TestModelForwardsActions(t *testing.T) {
	g := &fakeGame{}
	m := NewModel(g, nil, testConfig())
	m.Init()

	m = update(t, m, runeKey('x'))
	m = update(t, m, TickMsg{})
	m = update(t, m, TickMsg{})
	m = update(t, m, runeKey('h'))
	m = update(t, m, TickMsg{})

	if len(g.frames) != 3 {
		t.Fatalf("Step called %d times, want 3", len(g.frames))
	}
	// fakeGame keeps every frame it was handed
	if !g.frames[0].Has(core.ActionDetonate) {
		t.Error("first frame missing ActionDetonate")
	}
	if g.frames[0].Has(core.ActionHint) {
		t.Error("later input leaked into a frame the game already holds")
	}
	if !g.frames[1].Empty() {
		t.Error("input frame not cleared after a tick")
	}
	if !g.frames[2].Has(core.ActionHint) || g.frames[2].Has(core.ActionDetonate) {
		t.Errorf("third frame = %v, want only Hint", g.frames[2].Actions)
	}
}

func TestModelEscPauses(t *testing.T) {
	g := &fakeGame{}
	m := NewModel(g, nil, testConfig())
	m.Init()

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	update(t, m, TickMsg{})

	if !g.frames[0].Has(core.ActionPause) {
		t.Error("esc did not pause")
	}
}

func TestModelSavesRunOnce(t *testing.T) {
	store := openTestStore(t)
	g := &fakeGame{}
	m := NewModel(g, store, testConfig())
	m.Init()

	g.state = core.GameState{Score: 900, Level: 3, Moves: 12, GameOver: true}
	m = update(t, m, TickMsg{})
	update(t, m, TickMsg{})

	scores, err := store.TopScores("fake", 10)
	if err != nil {
		t.Fatalf("TopScores: %v", err)
	}
	if len(scores) != 1 {
		t.Fatalf("saved %d runs, want 1", len(scores))
	}
	if s := scores[0]; s.Score != 900 || s.Level != 3 || s.Moves != 12 {
		t.Errorf("saved run = %+v, want score 900 level 3 moves 12", s)
	}
}

func TestModelAnnouncesHighScore(t *testing.T) {
	store := openTestStore(t)
	if _, err := store.SaveRun(storage.Run{GameID: "fake", Score: 500}); err != nil {
		t.Fatalf("SaveRun: %v", err)
	}

	for _, tc := range []struct {
		score int
		want  string
	}{
		{400, ""},
		{600, "New high score!"},
	} {
		g := &fakeGame{}
		m := NewModel(g, store, testConfig())
		m.Init()

		g.state = core.GameState{Score: tc.score, GameOver: true}
		m = update(t, m, TickMsg{})
		if m.status != tc.want {
			t.Errorf("score %d: status = %q, want %q", tc.score, m.status, tc.want)
		}
	}
}

func TestModelSavesRunOnQuit(t *testing.T) {
	store := openTestStore(t)
	g := &fakeGame{}
	m := NewModel(g, store, testConfig())
	m.Init()

	g.state = core.GameState{Score: 250, Level: 1, Moves: 2}
	m = update(t, m, TickMsg{})
	m = update(t, m, runeKey('q'))

	if !m.IsQuitting() {
		t.Error("q did not quit")
	}
	if best, err := store.HighScore("fake"); err != nil || best != 250 {
		t.Errorf("HighScore = %d, %v; want 250", best, err)
	}
}

func TestModelRestartAfterGameOver(t *testing.T) {
	g := &fakeGame{}
	m := NewModel(g, nil, testConfig())
	m.Init()

	// Restart is ignored while playing
	m = update(t, m, runeKey('r'))
	m = update(t, m, TickMsg{})
	if g.resets != 1 {
		t.Fatalf("resets = %d while playing, want 1", g.resets)
	}

	g.state.GameOver = true
	m = update(t, m, TickMsg{})
	m = update(t, m, runeKey('r'))
	update(t, m, TickMsg{})
	if g.resets != 2 {
		t.Errorf("resets = %d after restart, want 2", g.resets)
	}
}

func TestModelResize(t *testing.T) {
	plain := &fakeGame{}
	m := NewModel(plain, nil, testConfig())
	m.Init()
	update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	if plain.resets != 2 {
		t.Errorf("plain game resets = %d, want 2", plain.resets)
	}

	rg := &resizingGame{}
	m = NewModel(rg, nil, testConfig())
	m.Init()
	m = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	if rg.resets != 1 {
		t.Errorf("resizing game resets = %d, want 1", rg.resets)
	}
	if rg.w != 100 || rg.h != 30 {
		t.Errorf("Resize got %dx%d, want 100x30", rg.w, rg.h)
	}
	if m.screen.Width() != 100 || m.screen.Height() != 30 {
		t.Errorf("screen = %dx%d, want 100x30", m.screen.Width(), m.screen.Height())
	}
}

func TestModelBackToMenu(t *testing.T) {
	g := &fakeGame{}
	m := NewModel(g, nil, testConfig())
	m.menuOnBack = true
	m.Init()

	m = update(t, m, runeKey('b'))
	if m.BackToMenu() {
		t.Fatal("back left a running game")
	}

	g.state.GameOver = true
	m = update(t, m, TickMsg{})
	m = update(t, m, runeKey('b'))
	if !m.BackToMenu() {
		t.Error("back after game over did not return to the menu")
	}
	if m.View() != "" {
		t.Error("View should be empty once the game is left")
	}
}

func TestModelScreenshot(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	m := NewModel(&fakeGame{}, nil, testConfig())
	m.Init()
	m = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})

	files, err := filepath.Glob(filepath.Join(home, ".arcade", "screenshots", "fake_*.txt"))
	if err != nil || len(files) != 1 {
		t.Fatalf("screenshots = %v, %v; want one file", files, err)
	}
	data, err := os.ReadFile(files[0])
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "fake board") {
		t.Errorf("screenshot = %q", data)
	}
	if !strings.HasPrefix(m.status, "Saved ") {
		t.Errorf("status = %q", m.status)
	}
}

func TestModelClipboardOverSSH(t *testing.T) {
	m := NewModel(&resizingGame{}, nil, testConfig())
	m.remote = true
	m.Init()

	m = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlY})
	if m.status != "Clipboard unavailable over SSH" {
		t.Errorf("status = %q", m.status)
	}
	if !strings.Contains(m.View(), "Clipboard unavailable") {
		t.Error("status not drawn")
	}
}
