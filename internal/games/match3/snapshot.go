package match3

// GameStateType represents the current game state.
type GameStateType string

const (
	StatePlaying      GameStateType = "playing"
	StateAnimating    GameStateType = "animating"
	StateLevelCleared GameStateType = "level_cleared"
	StateGameOver     GameStateType = "game_over"
	StateWin          GameStateType = "win"
	StatePausedSmall  GameStateType = "paused_small_window"
)

// Snapshot captures the complete game state for determinism testing and replay.
// All fields are comparable so snapshots can be checked with ==.
type Snapshot struct {
	Tick      uint64
	Mode      string // "campaign" or "endless"
	Level     int    // Current level (1-indexed)
	Goal      int    // Score needed to clear the level
	Score     int
	Moves     int
	TicksLeft int    // Level timer, 0 in endless mode
	Board     string // ASCII board, one row per line
	Cursor    string
	Selected  string // Empty when nothing is selected
	Hint      string // "a-b" pair, empty when no hint is shown
	State     GameStateType
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	state := StatePlaying
	switch {
	case g.tooSmall:
		state = StatePausedSmall
	case g.won:
		state = StateWin
	case g.gameOver:
		state = StateGameOver
	case g.levelCleared:
		state = StateLevelCleared
	case g.anim.active():
		state = StateAnimating
	}

	snap := Snapshot{
		Tick:   g.tick,
		Mode:   string(g.mode),
		Level:  g.level,
		Goal:   g.goal,
		Score:  g.score,
		Moves:  g.moves,
		Cursor: g.cursor.String(),
		State:  state,
	}
	if g.mode == ModeCampaign {
		snap.TicksLeft = g.ticksLeft
	}
	if g.ctrl != nil {
		snap.Board = g.ctrl.Grid().String()
	}
	if g.hasSelect {
		snap.Selected = g.selected.String()
	}
	if g.hint != nil {
		snap.Hint = g.hint.A.String() + "-" + g.hint.B.String()
	}
	return snap
}
