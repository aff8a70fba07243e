package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/match3/internal/core"
	"github.com/vovakirdan/match3/internal/registry"
	"github.com/vovakirdan/match3/internal/storage"
)

const statusSeconds = 2

// resizer is implemented by games that can adopt a new screen size
// without starting over.
type resizer interface {
	Resize(w, h int)
}

// boardTexter is implemented by games that can dump their board as text.
type boardTexter interface {
	BoardText() string
}

// Model is the Bubble Tea model for running a game.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	logger     *log.Logger
	config     core.RuntimeConfig
	keyMapper  *KeyMapper
	inputFrame core.InputFrame
	gameState  core.GameState
	started    time.Time

	status      string
	statusTicks int

	menuOnBack bool // Back after game over leaves the game instead of pausing
	remote     bool // Running over SSH; the local clipboard is not the player's
	backToMenu bool
	quitting   bool
	scoreSaved bool // Whether the run has been recorded
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig) Model {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      store,
		config:     cfg,
		keyMapper:  NewKeyMapper(),
		inputFrame: core.NewInputFrame(),
		started:    time.Now(),
	}
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+s":
		m.saveScreenshot()
		return m, nil
	case "ctrl+y":
		m.copyBoard()
		return m, nil
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	switch {
	case isQuit:
		m.saveRun()
		m.quitting = true
		return m, tea.Quit
	case action == core.ActionBack:
		if m.menuOnBack && (m.gameState.GameOver || m.gameState.Paused) {
			m.saveRun()
			m.backToMenu = true
			return m, nil
		}
		m.inputFrame.Set(core.ActionPause)
	case action == core.ActionRestart:
		if m.gameState.GameOver {
			m.inputFrame.Set(core.ActionRestart)
		}
	case action != core.ActionNone:
		m.inputFrame.Set(action)
	}

	return m, nil
}

// handleResize processes window resize events.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)

	if r, ok := m.game.(resizer); ok {
		r.Resize(msg.Width, msg.Height)
		return m, nil
	}
	if !m.gameState.GameOver {
		m.game.Reset(m.config)
	}
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.backToMenu || m.quitting {
		return m, nil
	}

	if m.inputFrame.Has(core.ActionRestart) && m.gameState.GameOver {
		m.config.Seed = time.Now().UnixNano()
		m.game.Reset(m.config)
		m.gameState = m.game.State()
		m.scoreSaved = false
		m.started = time.Now()
		m.inputFrame.Clear()
		return m, tickCmd(m.config.TickRate)
	}

	// The game may keep the frame; the model reuses its own for the next tick
	result := m.game.Step(m.inputFrame.Clone())
	m.gameState = result.State

	if m.gameState.GameOver {
		m.saveRun()
	}
	if m.statusTicks > 0 {
		m.statusTicks--
	}

	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate)
}

// saveRun records the current run once. Runs without points are skipped.
func (m *Model) saveRun() {
	if m.scoreSaved {
		return
	}
	m.scoreSaved = true
	if m.store == nil || m.gameState.Score <= 0 {
		return
	}

	run := storage.Run{
		GameID:   m.game.ID(),
		Score:    m.gameState.Score,
		Level:    m.gameState.Level,
		Moves:    m.gameState.Moves,
		Duration: time.Since(m.started),
	}
	best, bestErr := m.store.HighScore(run.GameID)
	if _, err := m.store.SaveRun(run); err != nil {
		if m.logger != nil {
			m.logger.Warn("could not save run", "game", run.GameID, "error", err)
		}
		return
	}
	if bestErr == nil && run.Score > best {
		m.setStatus("New high score!")
	}
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	dir := filepath.Join(os.Getenv("HOME"), ".arcade", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.setStatus("Screenshot failed")
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.setStatus("Screenshot failed")
		return
	}
	m.setStatus("Saved " + filepath.Base(path))
}

// copyBoard puts the board (or the whole screen for games without one) on
// the system clipboard.
func (m *Model) copyBoard() {
	if m.remote {
		m.setStatus("Clipboard unavailable over SSH")
		return
	}

	var text string
	if bt, ok := m.game.(boardTexter); ok {
		text = bt.BoardText()
	} else {
		m.game.Render(m.screen)
		text = m.screen.String()
	}

	if clipboard.Unsupported {
		m.setStatus("Clipboard unavailable")
		return
	}
	if err := clipboard.WriteAll(text); err != nil {
		m.setStatus("Clipboard unavailable")
		return
	}
	m.setStatus("Board copied")
}

func (m *Model) setStatus(text string) {
	m.status = text
	m.statusTicks = m.config.Seconds(statusSeconds)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting || m.backToMenu {
		return ""
	}

	m.game.Render(m.screen)
	if m.statusTicks > 0 && m.screen.Height() > 1 {
		m.screen.DrawTextColored(0, m.screen.Height()-2, m.status, core.ColorBrightCyan)
	}
	return RenderScreen(m.screen)
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to the menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run starts the Bubble Tea program with the given model.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig) error {
	model := NewModel(game, store, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
