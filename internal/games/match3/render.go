package match3

import (
	"fmt"
	"math"
	"strings"

	"github.com/vovakirdan/match3/internal/core"
	m3 "github.com/vovakirdan/match3/internal/games/match3/core"
)

const (
	cellWidth = 4 // decoration, letter, kind marker, decoration
	hudHeight = 3
	timeBarW  = 20
)

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}
	if g.ctrl == nil {
		dst.DrawTextCentered(g.screenH/2, "Board unavailable")
		return
	}

	s := g.ctrl.Settings()
	boardW := s.Width*cellWidth + 2
	boardH := s.Height + 2
	boardX := (g.screenW - boardW) / 2
	boardY := hudHeight

	g.renderHUD(dst, boardX, boardW)
	dst.DrawBox(core.NewRect(boardX, boardY, boardW, boardH))
	g.renderBoard(dst, boardX+1, boardY+1)

	footerY := boardY + boardH
	if g.msgTicks > 0 {
		dst.DrawTextColored(boardX, footerY, g.message, core.ColorYellow)
	}
	controls := g.Controls()
	dst.DrawTextColored((g.screenW-len(controls))/2, g.screenH-1, controls, core.ColorGray)

	g.renderOverlays(dst, boardX, boardY, boardW, boardH)
}

// renderTooSmall shows a "window too small" message.
func (g *Game) renderTooSmall(dst *core.Screen) {
	y := g.screenH / 2
	dst.DrawTextCentered(y, "Window too small")
	minW, minH := g.minScreenSize()
	dst.DrawTextCentered(y+1, fmt.Sprintf("Need %dx%d", minW, minH))
}

// renderHUD draws the score, goal, level and timer.
func (g *Game) renderHUD(dst *core.Screen, boardX, boardW int) {
	title := "MATCH-3"
	if g.mode == ModeEndless {
		title = "MATCH-3 ENDLESS"
	}
	dst.DrawTextColored(boardX+(boardW-len(title))/2, 0, title, core.ColorBrightMagenta)

	dst.DrawText(boardX, 1, fmt.Sprintf("Score: %d/%d", g.score, g.goal))

	levelStr := fmt.Sprintf("Lv %d %s", g.level, LevelName(g.level))
	x := boardX + boardW - len(levelStr)
	if x < boardX {
		x = boardX
	}
	dst.DrawText(x, 1, levelStr)

	if g.mode == ModeEndless {
		dst.DrawText(boardX, 2, fmt.Sprintf("Moves: %d", g.moves))
		return
	}

	color := core.ColorBrightGreen
	if g.timeWarning() {
		color = core.ColorBrightRed
	}
	dst.DrawTextColored(boardX, 2, timeBar(g.ticksLeft, g.levelTicks, g.tickRate), color)
}

// timeBar renders the remaining level time as a gauge.
func timeBar(left, total, rate int) string {
	filled := 0
	if total > 0 {
		filled = int(math.Ceil(float64(left) / float64(total) * timeBarW))
	}
	filled = core.Clamp(filled, 0, timeBarW)
	secs := int(math.Ceil(float64(left) / float64(rate)))
	return fmt.Sprintf("%s%s %2ds", strings.Repeat("█", filled), strings.Repeat("░", timeBarW-filled), secs)
}

// renderBoard draws tiles, the cursor, the selection and the hint.
func (g *Game) renderBoard(dst *core.Screen, originX, originY int) {
	grid := g.anim.display
	if grid == nil {
		grid = g.ctrl.Grid()
	}

	for r := 0; r < grid.Height(); r++ {
		for c := 0; c < grid.Width(); c++ {
			p := m3.P(r, c)
			x := originX + c*cellWidth
			y := originY + r

			g.drawDecoration(dst, x, y, p)

			if g.anim.clearing(p) {
				dst.DrawTextColored(x+1, y, "░░", core.ColorBrightWhite)
				continue
			}
			t, err := grid.Get(p)
			if err != nil {
				continue
			}
			drawTile(dst, x+1, y, t)
		}
	}

	progress := g.anim.progress()
	for _, f := range g.anim.falling() {
		row := int(math.Round(fallRow(f, progress)))
		if row < 0 {
			continue
		}
		drawTile(dst, originX+f.To.Col*cellWidth+1, originY+row, f.Tile)
	}
}

// drawDecoration marks the cursor, the selected tile and hinted tiles.
func (g *Game) drawDecoration(dst *core.Screen, x, y int, p m3.Pos) {
	if g.anim.active() {
		return
	}
	var left, right rune
	var color core.Color
	switch {
	case g.hasSelect && p == g.selected:
		left, right, color = '<', '>', core.ColorBrightYellow
	case p == g.cursor:
		left, right, color = '[', ']', core.ColorBrightWhite
	case g.hinted(p):
		left, right, color = '(', ')', core.ColorCyan
	default:
		return
	}
	dst.SetColored(x, y, left, color)
	dst.SetColored(x+cellWidth-1, y, right, color)
}

// hinted reports whether p is part of the shown hint. A powerup hint points
// at the powerup itself, since it is fired rather than swapped.
func (g *Game) hinted(p m3.Pos) bool {
	if g.hint == nil {
		return false
	}
	if g.hint.Powerup {
		for _, t := range g.hint.Tiles {
			if t == p {
				return true
			}
		}
		return false
	}
	return p == g.hint.A || p == g.hint.B
}

func drawTile(dst *core.Screen, x, y int, t m3.Tile) {
	dst.DrawTextColored(x, y, m3.Glyph(t), core.VarietyColor(t.Variety))
}

// renderOverlays draws game state overlays.
func (g *Game) renderOverlays(dst *core.Screen, boardX, boardY, boardW, boardH int) {
	centerX := boardX + boardW/2
	centerY := boardY + boardH/2

	switch {
	case g.paused:
		g.drawOverlay(dst, centerX, centerY, "PAUSED", "Press P to resume")
	case g.levelCleared:
		goalStr := fmt.Sprintf("Goal %d reached!", g.goal)
		if g.level >= LevelCount() {
			g.drawOverlay(dst, centerX, centerY, goalStr, "Final level complete!")
		} else {
			g.drawOverlay(dst, centerX, centerY, goalStr, "Next: "+LevelName(g.level+1))
		}
	case g.won:
		g.drawOverlay(dst, centerX, centerY, "CAMPAIGN COMPLETE!", fmt.Sprintf("Score: %d", g.score), "Press R to restart")
	case g.gameOver:
		g.drawOverlay(dst, centerX, centerY, "TIME UP", fmt.Sprintf("Score: %d", g.score), "Press R to restart")
	case g.bannerTicks > 0:
		g.drawOverlay(dst, centerX, centerY, g.banner)
	}
}

// drawOverlay draws a centered text overlay.
func (g *Game) drawOverlay(dst *core.Screen, centerX, centerY int, lines ...string) {
	maxLen := 0
	for _, line := range lines {
		if n := len([]rune(line)); n > maxLen {
			maxLen = n
		}
	}

	boxW := maxLen + 4
	boxH := len(lines) + 2
	box := core.NewRect(centerX-boxW/2, centerY-boxH/2, boxW, boxH)

	dst.FillRect(box, ' ')
	dst.DrawBox(box)

	for i, line := range lines {
		x := centerX - len([]rune(line))/2
		dst.DrawTextColored(x, box.Y+1+i, line, core.ColorBrightYellow)
	}
}

// Controls returns the control hints for the game.
func (g *Game) Controls() string {
	return "Arrows Move  Enter Swap  X Blast  H Hint  P Pause  Q Quit"
}
