package term

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/Garsondee/Ink-Wars/internal/sim"
)

type rgb struct{ r, g, b int32 }

var (
	rgbSideA   = rgb{70, 130, 255}
	rgbSideB   = rgb{235, 70, 70}
	rgbTileA   = rgb{120, 165, 255}
	rgbTileB   = rgb{255, 125, 125}
	rgbNeutral = rgb{226, 224, 218}
	rgbWall    = rgb{52, 52, 64}
)

func (c rgb) color() tcell.Color { return tcell.NewRGBColor(c.r, c.g, c.b) }

func blend(a, b rgb, t float64) rgb {
	t = max(0, min(1, t))
	return rgb{
		a.r + int32(float64(b.r-a.r)*t),
		a.g + int32(float64(b.g-a.g)*t),
		a.b + int32(float64(b.b-a.b)*t),
	}
}

func sideRGB(side sim.Side) rgb {
	if side == sim.SideA {
		return rgbSideA
	}
	return rgbSideB
}

// tileRGB is the background of a tile: its paint tint, or fixed colours for
// walls and headquarters.
func tileRGB(t *sim.Tile) rgb {
	switch t.Kind {
	case sim.TileWall:
		return rgbWall
	case sim.TileHQA:
		return rgbTileA
	case sim.TileHQB:
		return rgbTileB
	}
	if t.Paint >= 0.5 {
		return blend(rgbNeutral, rgbTileA, (t.Paint-0.5)*2)
	}
	return blend(rgbNeutral, rgbTileB, (0.5-t.Paint)*2)
}

// mark is what stands on a cell, drawn in its two columns.
type mark struct {
	glyph [cellCols]rune
	fg    rgb
}

// marks collects the glyphs on the board for one frame. Later layers win:
// structures, then projectiles, then actors.
func marks(w *sim.World) map[sim.Cell]mark {
	b := w.Board()
	out := make(map[sim.Cell]mark)
	for _, side := range []sim.Side{sim.SideA, sim.SideB} {
		w.Structures().Each(side, func(_ sim.Handle, s *sim.Structure) {
			g := w.Specs().Spec(s.Type).Glyph
			if g == 0 {
				g = '?'
			}
			hp := ' '
			if spec := w.Specs().Spec(s.Type); spec.MaxHP > 0 && s.HP < spec.MaxHP/2 {
				hp = '!'
			}
			out[s.Cell] = mark{glyph: [cellCols]rune{g, hp}, fg: sideRGB(side)}
		})
	}
	for _, p := range w.Projectiles() {
		if c, ok := b.ScreenToCell(p.Pos); ok {
			out[c] = mark{glyph: [cellCols]rune{'*', ' '}, fg: sideRGB(p.Owner)}
		}
	}
	for _, a := range w.Agents() {
		if c, ok := b.ScreenToCell(a.Pos); ok {
			out[c] = mark{glyph: [cellCols]rune{'x', 'x'}, fg: sideRGB(a.Side)}
		}
	}
	if p := w.Player(); p != nil {
		if c, ok := b.ScreenToCell(p.Pos); ok {
			out[c] = mark{glyph: [cellCols]rune{'@', '@'}, fg: sideRGB(p.Side)}
		}
	}
	return out
}

// statusLines is the HUD above the board.
func statusLines(w *sim.World, paused bool, status string) []string {
	a, b := w.Board().Ownership()
	clock := fmt.Sprintf("%.1fs", w.Remaining())
	if paused {
		clock += " PAUSED"
	}

	var menu strings.Builder
	for i, t := range sim.BuildableTypes {
		name := fmt.Sprintf("%d:%s %d", i+1, t, w.Specs().Spec(t).Cost)
		if t == w.Selected() {
			name = "[" + name + "]"
		} else {
			name = " " + name + " "
		}
		menu.WriteString(name)
	}

	hint := "click=build  Enter=battle  1-6=select  p=pause  q=quit"
	switch w.Phase() {
	case sim.PhaseSimulating:
		hint = "click=deploy/command  s=skip  p=pause  q=quit"
	case sim.PhaseSummary:
		hint = summaryHint(w)
	}
	if status != "" {
		hint = status
	}
	return []string{
		fmt.Sprintf("INK WARS  stage %d  turn %d  %s  %s", w.Stage(), w.Turn(), w.Phase(), clock),
		fmt.Sprintf("funds a=%d (+%d) b=%d   ownership a=%.1f%% b=%.1f%%",
			w.Funds(sim.SideA), w.Income(sim.SideA), w.Funds(sim.SideB), a*100, b*100),
		menu.String(),
		hint,
	}
}

func summaryHint(w *sim.World) string {
	switch w.Outcome() {
	case sim.OutcomeWin:
		return fmt.Sprintf("STAGE CLEAR  Enter=stage %d", w.Stage()+1)
	case sim.OutcomeLoss:
		return "DEFEAT  Enter=retry"
	}
	return "TURN OVER  Enter=next turn"
}

func drawString(s tcell.Screen, x, y int, str string, style tcell.Style) {
	for _, r := range str {
		s.SetContent(x, y, r, nil, style)
		x++
	}
}

func (a *App) draw() {
	s := a.screen
	s.Clear()
	text := tcell.StyleDefault.Foreground(tcell.ColorWhite)
	for i, line := range statusLines(a.world, a.paused, a.status) {
		style := text
		if i == 0 && a.fx.hitStop > 0 {
			style = style.Reverse(true)
		}
		drawString(s, 0, i, line, style)
	}

	b := a.world.Board()
	ms := marks(a.world)
	shift := a.fx.offset()
	hover, hovering := a.hover.Get()
	for y := 0; y < b.Rows; y++ {
		for x := 0; x < b.Cols; x++ {
			c := sim.Cell{X: x, Y: y}
			bg := tileRGB(b.At(c))
			if f, ok := a.fx.flashAt(c); ok {
				tint := sideRGB(f.side)
				if f.neutral {
					tint = rgb{255, 255, 255}
				}
				bg = blend(bg, tint, 0.6)
			}
			style := tcell.StyleDefault.Background(bg.color()).Foreground(tcell.ColorBlack)
			glyph := [cellCols]rune{' ', ' '}
			if m, ok := ms[c]; ok {
				glyph = m.glyph
				style = style.Foreground(m.fg.color()).Bold(true)
			}
			if hovering && c == hover {
				style = style.Reverse(true)
			}
			sx := boardLeft + x*cellCols + shift
			for i, r := range glyph {
				s.SetContent(sx+i, boardTop+y, r, nil, style)
			}
		}
	}

	// Event column right of the board.
	ex := boardLeft + b.Cols*cellCols + 2
	dim := tcell.StyleDefault.Foreground(tcell.ColorGray)
	drawString(s, ex, boardTop-1, "EVENTS", text.Bold(true))
	for i, line := range a.events {
		drawString(s, ex, boardTop+i, line, dim)
	}
	s.Show()
}
