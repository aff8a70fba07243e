package match3

import (
	m3 "github.com/vovakirdan/match3/internal/games/match3/core"
)

// Animation constants
const (
	clearAnimationDuration = 6 // ~100ms at 60fps
	fallAnimationDuration  = 8 // ~133ms at 60fps
)

// AnimationPhase represents the current phase of a cascade replay.
type AnimationPhase int

const (
	PhaseNone AnimationPhase = iota
	PhaseClear
	PhaseFall
)

// cascadeAnimation replays the steps of a resolution on a copy of the board
// taken before the move, so every intermediate board can be drawn.
type cascadeAnimation struct {
	display     *m3.Grid
	steps       []m3.Step
	index       int
	phase       AnimationPhase
	ticks       int
	regenerated bool
}

// start begins a replay from before, the board as it was right after the swap.
func (a *cascadeAnimation) start(before *m3.Grid, rep m3.Report, regenerated bool) {
	*a = cascadeAnimation{regenerated: regenerated}
	if rep.Empty() {
		return
	}
	a.display = before
	a.steps = rep.Steps
	a.phase = PhaseClear
}

func (a *cascadeAnimation) active() bool {
	return a.phase != PhaseNone
}

// advance moves the replay forward one tick.
// Returns true if animation is still in progress.
func (a *cascadeAnimation) advance() bool {
	if !a.active() {
		return false
	}

	a.ticks++
	switch a.phase {
	case PhaseClear:
		if a.ticks >= clearAnimationDuration {
			if err := applyClear(a.display, a.steps[a.index]); err != nil {
				a.stop(err)
				return false
			}
			a.phase = PhaseFall
			a.ticks = 0
		}
	case PhaseFall:
		if a.ticks >= fallAnimationDuration {
			if err := applyFall(a.display, a.steps[a.index]); err != nil {
				a.stop(err)
				return false
			}
			a.index++
			a.ticks = 0
			if a.index >= len(a.steps) {
				a.phase = PhaseNone
				a.display = nil
				return false
			}
			a.phase = PhaseClear
		}
	}
	return true
}

// stop ends a replay that no longer fits its board; the real board is drawn
// from then on.
func (a *cascadeAnimation) stop(err error) {
	if logger != nil {
		logger.Warn("cascade replay stopped", "step", a.index, "err", err)
	}
	a.phase = PhaseNone
	a.display = nil
}

// progress returns how far the current phase is, from 0.0 to 1.0.
func (a *cascadeAnimation) progress() float64 {
	var duration int
	switch a.phase {
	case PhaseClear:
		duration = clearAnimationDuration
	case PhaseFall:
		duration = fallAnimationDuration
	default:
		return 1
	}
	p := float64(a.ticks) / float64(duration)
	if p > 1 {
		p = 1
	}
	return p
}

// clearing reports whether p is flashing before removal.
func (a *cascadeAnimation) clearing(p m3.Pos) bool {
	if a.phase != PhaseClear {
		return false
	}
	for _, r := range a.steps[a.index].Removed {
		if r.Pos == p {
			return true
		}
	}
	return false
}

// falling returns the tiles in flight during the fall phase.
func (a *cascadeAnimation) falling() []m3.FallingTile {
	if a.phase != PhaseFall {
		return nil
	}
	return a.steps[a.index].Falling
}

// applyClear takes removed tiles off the board, stamps promotions and lifts
// the tiles about to fall so they can be drawn in flight.
func applyClear(g *m3.Grid, s m3.Step) error {
	for _, r := range s.Removed {
		if err := g.Remove(r.Pos); err != nil {
			return err
		}
	}
	for _, p := range s.Promotions {
		if err := g.Set(p.Pos, p.Tile); err != nil {
			return err
		}
	}
	for _, f := range s.Falling {
		if f.Spawned {
			continue
		}
		if err := g.Remove(f.From); err != nil {
			return err
		}
	}
	return nil
}

// applyFall lands every falling tile at its destination.
func applyFall(g *m3.Grid, s m3.Step) error {
	for _, f := range s.Falling {
		if err := g.Set(f.To, f.Tile); err != nil {
			return err
		}
	}
	return nil
}

// easeInQuad accelerates like a falling object.
func easeInQuad(t float64) float64 {
	return t * t
}

// fallRow returns the row a falling tile is drawn at for the given progress.
func fallRow(f m3.FallingTile, progress float64) float64 {
	t := easeInQuad(progress)
	return float64(f.From.Row) + float64(f.Distance())*t
}

// updateAnimation advances the replay and finishes the move once it is over.
// Returns true while the replay consumes ticks.
func (g *Game) updateAnimation() bool {
	if !g.anim.active() {
		return false
	}
	if g.anim.advance() {
		return true
	}
	g.afterCascade(g.anim.regenerated)
	return true
}
