package core

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
)

// Settings configures a board.
type Settings struct {
	Height           int
	Width            int
	Varieties        int
	MaxRegenerations int // Fresh deals tried before falling back to a fixed pattern
}

// DefaultSettings returns an 8x8 board with 6 varieties.
func DefaultSettings() Settings {
	return Settings{
		Height:           8,
		Width:            8,
		Varieties:        6,
		MaxRegenerations: 64,
	}
}

// Validate checks that the settings describe a usable board.
func (s Settings) Validate() error {
	if s.Height < 1 || s.Width < 1 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, s.Height, s.Width)
	}
	if s.Varieties < 2 {
		return fmt.Errorf("%w: need at least 2 varieties, got %d", ErrInvalidDimensions, s.Varieties)
	}
	if s.MaxRegenerations < 0 {
		return fmt.Errorf("%w: negative regeneration cap %d", ErrInvalidDimensions, s.MaxRegenerations)
	}
	return nil
}

// Status is the result class of a player move.
type Status uint8

const (
	StatusAccepted Status = iota + 1
	StatusRejected
)

// Reason explains a rejected move.
type Reason uint8

const (
	ReasonNone Reason = iota
	ReasonNotAdjacent
	ReasonNoMatch
	ReasonNotPowerup
)

func (r Reason) String() string {
	switch r {
	case ReasonNotAdjacent:
		return "tiles are not adjacent"
	case ReasonNoMatch:
		return "swap makes no match"
	case ReasonNotPowerup:
		return "tile is not a powerup"
	default:
		return ""
	}
}

// Outcome describes what a move did.
type Outcome struct {
	Status      Status
	Reason      Reason
	Report      Report
	Regenerated bool // Board was redealt after the move left no legal moves
}

// Accepted reports whether the move changed the board.
func (o Outcome) Accepted() bool {
	return o.Status == StatusAccepted
}

// Controller owns a board and applies player moves to it.
type Controller struct {
	settings      Settings
	src           Source
	grid          *Grid
	logger        *log.Logger
	score         int
	moves         int
	regenerations int
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger used for regeneration events.
func WithLogger(l *log.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithGrid starts the controller from a copy of g instead of a random deal.
// Refills of the copy draw from the controller's source, never from g's.
func WithGrid(g *Grid) Option {
	return func(c *Controller) {
		if g != nil {
			c.grid = g.Clone()
		}
	}
}

// NewController deals a board that has no standing matches and at least one
// legal move. A grid passed with WithGrid is only checked for playability.
func NewController(s Settings, src Source, opts ...Option) (*Controller, error) {
	if src == nil {
		return nil, fmt.Errorf("%w: nil source", ErrInvalidDimensions)
	}
	c := &Controller{
		settings: s,
		src:      src,
		logger:   log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.grid != nil {
		c.grid.src = src
		c.settings.Height = c.grid.height
		c.settings.Width = c.grid.width
		c.settings.Varieties = c.grid.varieties
	}
	if err := c.settings.Validate(); err != nil {
		return nil, err
	}
	if c.grid == nil {
		if err := c.deal(); err != nil {
			return nil, err
		}
	}
	if _, err := c.EnsurePlayable(); err != nil {
		return nil, err
	}
	return c, nil
}

// Swap exchanges two adjacent tiles and resolves the resulting cascade.
// A swap that creates no match is undone and rejected.
func (c *Controller) Swap(a, b Pos) (Outcome, error) {
	if err := c.grid.check(a); err != nil {
		return Outcome{}, err
	}
	if err := c.grid.check(b); err != nil {
		return Outcome{}, err
	}
	if !a.Adjacent(b) {
		return Outcome{Status: StatusRejected, Reason: ReasonNotAdjacent}, nil
	}

	c.grid.swap(a, b)
	matches := FindMatches(c.grid, []Pos{a, b})
	if len(matches) == 0 {
		c.grid.swap(a, b)
		return Outcome{Status: StatusRejected, Reason: ReasonNoMatch}, nil
	}

	rep := Resolve(c.grid, matches, []Pos{a, b})
	return c.finish(rep)
}

// Activate fires the powerup at p.
func (c *Controller) Activate(p Pos) (Outcome, error) {
	if err := c.grid.check(p); err != nil {
		return Outcome{}, err
	}
	t := c.grid.at(p)
	if !t.IsPowerup() {
		return Outcome{Status: StatusRejected, Reason: ReasonNotPowerup}, nil
	}
	t.Active = true
	c.grid.put(p, t)

	rep := Resolve(c.grid, nil, nil)
	return c.finish(rep)
}

func (c *Controller) finish(rep Report) (Outcome, error) {
	c.score += rep.Score
	c.moves++
	out := Outcome{Status: StatusAccepted, Report: rep}

	attempts, err := c.EnsurePlayable()
	out.Regenerated = attempts > 0
	return out, err
}

// EnsurePlayable redeals the board until it has a legal move. It returns the
// number of redeals (0 when the board was already playable). After
// MaxRegenerations failed deals a fixed pattern with a known move is laid
// down; ErrUnplayable means the board is too small for any move.
func (c *Controller) EnsurePlayable() (int, error) {
	if HasAnyMove(c.grid) {
		return 0, nil
	}

	for attempt := 1; attempt <= c.settings.MaxRegenerations; attempt++ {
		if err := c.deal(); err != nil {
			return attempt, err
		}
		if HasAnyMove(c.grid) {
			c.regenerations++
			c.logger.Debug("board regenerated", "attempts", attempt)
			return attempt, nil
		}
	}

	attempts := c.settings.MaxRegenerations + 1
	c.logger.Warn("regeneration cap reached, laying fallback pattern",
		"cap", c.settings.MaxRegenerations,
		"height", c.settings.Height,
		"width", c.settings.Width)
	c.layPattern()
	if !HasAnyMove(c.grid) {
		return attempts, fmt.Errorf("%w: %dx%d", ErrUnplayable, c.settings.Height, c.settings.Width)
	}
	c.regenerations++
	return attempts, nil
}

// deal replaces the board with a fresh random one without standing matches.
func (c *Controller) deal() error {
	g, err := NewGrid(c.settings.Height, c.settings.Width, c.settings.Varieties, c.src)
	if err != nil {
		return err
	}
	settle(g)
	c.grid = g
	return nil
}

// settle rerolls matched cells until no run remains.
func settle(g *Grid) {
	for i := 0; i < MaxCascadeSteps; i++ {
		matches := FindAllMatches(g)
		if len(matches) == 0 {
			return
		}
		for _, p := range positionsOf(matches) {
			g.put(p, g.random())
		}
	}
}

// layPattern fills the board with 2x2 blocks of two alternating varieties.
// The layout has no runs, and on a board of at least 3x3 swapping (1,2)
// with (2,2) completes row 1.
func (c *Controller) layPattern() {
	g := newEmpty(c.settings.Height, c.settings.Width, c.settings.Varieties, c.src)
	for r := 0; r < g.height; r++ {
		for col := 0; col < g.width; col++ {
			g.put(P(r, col), NewTile((r/2+col/2)%2))
		}
	}
	c.grid = g
}

// Grid returns a copy of the board, detached from the controller's source.
func (c *Controller) Grid() *Grid {
	return c.grid.Clone()
}

// Tile returns the tile at p.
func (c *Controller) Tile(p Pos) (Tile, error) {
	return c.grid.Get(p)
}

// HasAnyMove reports whether the board offers a move.
func (c *Controller) HasAnyMove() bool {
	return HasAnyMove(c.grid)
}

// FindHint returns a legal move, or nil.
func (c *Controller) FindHint() *Hint {
	return FindHint(c.grid)
}

// Settings returns the effective board settings.
func (c *Controller) Settings() Settings { return c.settings }

// Score returns the points earned by all accepted moves.
func (c *Controller) Score() int { return c.score }

// Moves returns the number of accepted moves.
func (c *Controller) Moves() int { return c.moves }

// Regenerations returns how many times the board was redealt for lack of moves.
func (c *Controller) Regenerations() int { return c.regenerations }

// Redeal discards the board and deals a new playable one under s, as when a
// new level starts. Score and move count are kept. Invalid settings leave
// the controller untouched.
func (c *Controller) Redeal(s Settings) error {
	if err := s.Validate(); err != nil {
		return err
	}
	c.settings = s
	if err := c.deal(); err != nil {
		return err
	}
	_, err := c.EnsurePlayable()
	return err
}
