package match3

import (
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/match3/internal/config"
	"github.com/vovakirdan/match3/internal/core"
	m3 "github.com/vovakirdan/match3/internal/games/match3/core"
	"github.com/vovakirdan/match3/internal/registry"
)

// Mode represents the game mode.
type Mode string

const (
	ModeCampaign Mode = "campaign"
	ModeEndless  Mode = "endless"
)

const (
	levelClearDelay = 2.0 // seconds the level-clear banner stays up
	bannerSeconds   = 1.5
	messageSeconds  = 1.0
)

// Game implements the Match-3 puzzle game.
type Game struct {
	mode     Mode
	rng      *rand.Rand
	tick     uint64
	tickRate int

	cfg        config.Match3Config
	difficulty *config.DifficultyManager
	ctrl       *m3.Controller

	score int
	moves int
	level int // 1-indexed
	goal  int

	// Level timer in ticks; unused in endless mode
	ticksLeft  int
	levelTicks int

	// Input state
	cursor    m3.Pos
	selected  m3.Pos
	hasSelect bool
	idleTicks int
	hint      *m3.Hint

	// Cascade replay
	anim cascadeAnimation

	// Transient text
	banner      string
	bannerTicks int
	message     string
	msgTicks    int

	// Screen dimensions
	screenW int
	screenH int

	// Game state flags
	gameOver        bool
	levelCleared    bool
	won             bool
	paused          bool
	tooSmall        bool
	levelClearTicks int

	// Per-instance choices; they override the package-level settings
	startAt int
	preset  config.DifficultyPreset
}

// Package-level variables for config
var (
	selectedStartLevel int
	configPath         string
	difficultyPreset   config.DifficultyPreset
	logger             *log.Logger
)

// SetStartLevel sets the starting level (1-10). 0 means start from beginning.
func SetStartLevel(level int) {
	selectedStartLevel = level
}

// SetConfigPath sets a custom config file path.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset applied on Reset.
func SetDifficultyPreset(preset config.DifficultyPreset) {
	difficultyPreset = preset
}

// SetLogger routes board regeneration events to l.
func SetLogger(l *log.Logger) {
	logger = l
}

// Configure sets the starting level and difficulty for this game only.
// Used where several games run side by side, as in SSH sessions.
func (g *Game) Configure(startLevel int, preset config.DifficultyPreset) {
	g.startAt = startLevel
	g.preset = preset
}

// New creates a new campaign mode game.
func New() *Game {
	return &Game{
		mode: ModeCampaign,
	}
}

// NewEndless creates a new endless mode game.
func NewEndless() *Game {
	return &Game{
		mode: ModeEndless,
	}
}

func init() {
	registry.Register("match3", func() registry.Game {
		return New()
	})
	registry.Register("match3_endless", func() registry.Game {
		return NewEndless()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	if g.mode == ModeEndless {
		return "match3_endless"
	}
	return "match3"
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.mode == ModeEndless {
		return "Match-3 (Endless)"
	}
	return "Match-3"
}

// Reset initializes/restarts the game.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	preset := difficultyPreset
	if g.preset != "" {
		preset = g.preset
	}
	gameCfg := loadConfig(preset)

	g.cfg = gameCfg
	g.difficulty = config.NewDifficultyManager(gameCfg.Difficulty)
	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.tickRate = cfg.TickRate
	if g.tickRate <= 0 {
		g.tickRate = core.DefaultConfig().TickRate
	}
	g.ctrl = nil
	g.tick = 0
	g.score = 0
	g.moves = 0
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	g.gameOver = false
	g.levelCleared = false
	g.won = false
	g.paused = false
	g.levelClearTicks = 0
	g.banner, g.bannerTicks = "", 0
	g.message, g.msgTicks = "", 0

	// Apply selected start level (campaign only); it is used once
	start := 0
	if selectedStartLevel != 0 {
		start, selectedStartLevel = selectedStartLevel, 0
	}
	if g.startAt > 0 {
		start, g.startAt = g.startAt, 0
	}
	if g.mode == ModeCampaign && start > 0 && start <= LevelCount() {
		g.level = start
	} else {
		g.level = 1
	}

	g.startLevel()
	g.checkScreenSize()
}

// LoadConfig returns the config from the path set with SetConfigPath (or the
// usual search order) with the SetDifficultyPreset preset applied.
// An unreadable config falls back to the defaults.
func LoadConfig() config.Match3Config {
	return loadConfig(difficultyPreset)
}

func loadConfig(preset config.DifficultyPreset) config.Match3Config {
	cfg, err := config.LoadMatch3(configPath)
	if err != nil {
		if logger != nil {
			logger.Warn("could not load config, using defaults", "path", configPath, "err", err)
		}
		cfg = config.DefaultMatch3Config()
	}
	config.ApplyMatch3Preset(&cfg, preset)
	return cfg
}

// seconds converts seconds to ticks at the current rate.
func (g *Game) seconds(s float64) int {
	return core.RuntimeConfig{TickRate: g.tickRate}.Seconds(s)
}

// BaseSettings returns the board a config asks for, before difficulty scaling.
func BaseSettings(cfg config.Match3Config) m3.Settings {
	return m3.Settings{
		Height:           cfg.Board.Height,
		Width:            cfg.Board.Width,
		Varieties:        cfg.Board.Varieties,
		MaxRegenerations: cfg.Generation.MaxRegenerations,
	}
}

// settings derives the board settings for the current level.
func (g *Game) settings() m3.Settings {
	s := BaseSettings(g.cfg)
	s.Varieties = g.difficulty.Varieties(s.Varieties, g.level, g.score)
	return s
}

// startLevel deals a fresh board and resets the level timer and goal.
func (g *Game) startLevel() {
	if err := g.deal(); err != nil {
		if logger != nil {
			logger.Error("cannot deal a board", "level", g.level, "err", err)
		}
		g.gameOver = true
		return
	}
	ctrl := g.ctrl

	g.goal = g.cfg.GoalForLevel(g.level)
	secs := g.difficulty.LevelSeconds(g.cfg.Timing.LevelSeconds, g.level, g.score)
	g.levelTicks = g.seconds(float64(secs))
	g.ticksLeft = g.levelTicks

	g.cursor = m3.P(ctrl.Settings().Height/2, ctrl.Settings().Width/2)
	g.hasSelect = false
	g.clearHint()
	g.anim = cascadeAnimation{}
}

// deal gives the current level its board: a new controller for the first
// level of a game, a redeal of the running one after that.
func (g *Game) deal() error {
	s := g.settings()
	if g.ctrl != nil {
		err := g.ctrl.Redeal(s)
		if err == nil {
			return nil
		}
		if logger != nil {
			logger.Warn("invalid board settings, using defaults", "level", g.level, "err", err)
		}
		return g.ctrl.Redeal(m3.DefaultSettings())
	}

	ctrl, err := m3.NewController(s, g.rng, m3.WithLogger(logger))
	if err != nil {
		if logger != nil {
			logger.Warn("invalid board settings, using defaults", "level", g.level, "err", err)
		}
		ctrl, err = m3.NewController(m3.DefaultSettings(), g.rng, m3.WithLogger(logger))
	}
	if err != nil {
		return err
	}
	g.ctrl = ctrl
	return nil
}

// checkScreenSize checks if the screen is large enough.
func (g *Game) checkScreenSize() {
	minW, minH := g.minScreenSize()
	g.tooSmall = g.screenW < minW || g.screenH < minH
}

func (g *Game) minScreenSize() (int, int) {
	s := m3.DefaultSettings()
	if g.ctrl != nil {
		s = g.ctrl.Settings()
	}
	// Board box plus HUD above and controls below
	return s.Width*cellWidth + 2, s.Height + 2 + hudHeight + 2
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++

	if g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) && !g.gameOver && !g.won {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	// Restart is handled by the platform
	if g.gameOver || g.won {
		return core.StepResult{State: g.State()}
	}

	if g.levelCleared {
		g.levelClearTicks++
		if g.levelClearTicks >= g.seconds(levelClearDelay) {
			g.advanceLevel()
		}
		return core.StepResult{State: g.State()}
	}

	g.updateTimers()
	if g.gameOver {
		return core.StepResult{State: g.State()}
	}

	// Input waits until the cascade has been shown
	if g.updateAnimation() {
		return core.StepResult{State: g.State()}
	}

	g.handleInput(in)

	return core.StepResult{State: g.State()}
}

// updateTimers counts down the level clock and transient texts.
func (g *Game) updateTimers() {
	if g.bannerTicks > 0 {
		g.bannerTicks--
	}
	if g.msgTicks > 0 {
		g.msgTicks--
	}

	if g.mode == ModeCampaign {
		g.ticksLeft--
		if g.ticksLeft <= 0 {
			g.ticksLeft = 0
			g.gameOver = true
		}
	}
}

// handleInput moves the cursor and applies swaps, detonations and hints.
func (g *Game) handleInput(in core.InputFrame) {
	s := g.ctrl.Settings()

	if in.Empty() {
		g.idleTicks++
		if g.hint == nil && g.idleTicks >= g.seconds(float64(g.cfg.Timing.HintSeconds)) {
			g.hint = g.ctrl.FindHint()
		}
		return
	}
	g.idleTicks = 0

	switch {
	case in.Has(core.ActionUp):
		g.cursor.Row = core.Clamp(g.cursor.Row-1, 0, s.Height-1)
	case in.Has(core.ActionDown):
		g.cursor.Row = core.Clamp(g.cursor.Row+1, 0, s.Height-1)
	case in.Has(core.ActionLeft):
		g.cursor.Col = core.Clamp(g.cursor.Col-1, 0, s.Width-1)
	case in.Has(core.ActionRight):
		g.cursor.Col = core.Clamp(g.cursor.Col+1, 0, s.Width-1)
	}

	switch {
	case in.Has(core.ActionConfirm):
		g.confirm()
	case in.Has(core.ActionDetonate):
		g.detonate()
	case in.Has(core.ActionHint):
		g.hint = g.ctrl.FindHint()
	}
}

// confirm selects the tile under the cursor or swaps it with the selection.
func (g *Game) confirm() {
	switch {
	case !g.hasSelect:
		g.selected = g.cursor
		g.hasSelect = true
	case g.selected == g.cursor:
		g.hasSelect = false
	case g.selected.Adjacent(g.cursor):
		g.hasSelect = false
		g.swap(g.selected, g.cursor)
	default:
		g.selected = g.cursor
	}
}

func (g *Game) swap(a, b m3.Pos) {
	// The replay starts from the board as it looks right after the swap
	before := g.ctrl.Grid()
	if err := before.Swap(a, b); err != nil {
		g.flash(err.Error())
		return
	}
	out, err := g.ctrl.Swap(a, b)
	if err != nil {
		g.flash(err.Error())
		return
	}
	if !out.Accepted() {
		g.flash(out.Reason.String())
		return
	}
	g.applyOutcome(before, out)
}

func (g *Game) detonate() {
	before := g.ctrl.Grid()
	out, err := g.ctrl.Activate(g.cursor)
	if err != nil {
		g.flash(err.Error())
		return
	}
	if !out.Accepted() {
		g.flash(out.Reason.String())
		return
	}
	g.hasSelect = false
	g.applyOutcome(before, out)
}

// applyOutcome books an accepted move and starts its replay.
func (g *Game) applyOutcome(before *m3.Grid, out m3.Outcome) {
	g.score += out.Report.Score
	g.moves++
	g.clearHint()
	g.anim.start(before, out.Report, out.Regenerated)
	if !g.anim.active() {
		g.afterCascade(out.Regenerated)
	}
}

// afterCascade runs once the replay of a move has finished.
func (g *Game) afterCascade(regenerated bool) {
	if regenerated {
		g.showBanner("No moves! New board")
	}
	if g.score < g.goal {
		return
	}

	if g.mode == ModeEndless {
		g.level++
		g.startLevel()
		g.showBanner(LevelName(g.level))
		return
	}
	g.levelCleared = true
	g.levelClearTicks = 0
}

// advanceLevel moves to the next campaign level.
func (g *Game) advanceLevel() {
	g.levelCleared = false
	g.levelClearTicks = 0

	if g.level >= LevelCount() {
		g.won = true
		return
	}

	g.level++
	g.startLevel()
	g.showBanner(LevelName(g.level))
}

func (g *Game) clearHint() {
	g.hint = nil
	g.idleTicks = 0
}

func (g *Game) showBanner(text string) {
	g.banner = text
	g.bannerTicks = g.seconds(bannerSeconds)
}

func (g *Game) flash(text string) {
	g.message = text
	g.msgTicks = g.seconds(messageSeconds)
}

// timeWarning reports whether the level clock is in its final seconds.
func (g *Game) timeWarning() bool {
	return g.mode == ModeCampaign && g.ticksLeft <= g.seconds(float64(g.cfg.Timing.WarningSeconds))
}

// Board returns a copy of the current board, or nil before the first Reset.
func (g *Game) Board() *m3.Grid {
	if g.ctrl == nil {
		return nil
	}
	return g.ctrl.Grid()
}

// BoardText returns the board as ASCII rows, or "" before the first Reset.
func (g *Game) BoardText() string {
	if g.ctrl == nil {
		return ""
	}
	return g.ctrl.Grid().String()
}

// Resize adopts new screen dimensions without dealing a new board.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	g.checkScreenSize()
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score,
		Level:    g.level,
		Moves:    g.moves,
		GameOver: g.gameOver || g.won,
		Paused:   g.paused || g.tooSmall || g.levelCleared,
	}
}
