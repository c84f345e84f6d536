package game

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/Garsondee/Ink-Wars/internal/sim"
)

// Inspector panel geometry in screen pixels.
const (
	inspW     = 260
	inspPad   = 8
	inspLineH = 15
)

// Inspector holds the hover panel's view toggle.
type Inspector struct {
	rawView bool // false = curated, true = raw dump
}

// hoverHelp is the one-line hint for a click on c in the current phase.
func hoverHelp(w *sim.World, c sim.Cell) string {
	if s, _, ok := w.StructureAt(sim.SideA, c); ok && w.Specs().Spec(s.Type).Fire == sim.FireSpawn {
		return "click to deploy the player"
	}
	switch w.Phase() {
	case sim.PhasePlanning:
		typ := w.Selected()
		if err := w.CanPlace(sim.SideA, typ, c); err != nil {
			return fmt.Sprintf("cannot place %s: %v", typ, err)
		}
		return fmt.Sprintf("place %s for %d", typ, w.Specs().Spec(typ).Cost)
	case sim.PhaseSimulating:
		if w.Player() == nil {
			return "deploy from a spawner to move"
		}
		return "click to move the player"
	}
	return ""
}

// bar renders v in [0,1] as a fixed-width ASCII gauge.
func bar(v float64) string {
	n := int(v*12 + 0.5)
	n = max(0, min(12, n))
	return "[" + strings.Repeat("#", n) + strings.Repeat(".", 12-n) + "]"
}

// inspectLines describes the cell c: its tile, the structures on it and
// what a click would do.
func inspectLines(w *sim.World, c sim.Cell, raw bool) []string {
	b := w.Board()
	t := b.At(c)
	if t == nil {
		return nil
	}
	lines := []string{
		fmt.Sprintf("cell %v  %s", c, t.Kind),
		fmt.Sprintf("paint %s %.2f", bar(t.Paint), t.Paint),
	}
	for _, side := range []sim.Side{sim.SideA, sim.SideB} {
		s, h, ok := w.StructureAt(side, c)
		if !ok {
			continue
		}
		spec := w.Specs().Spec(s.Type)
		lines = append(lines, fmt.Sprintf("side %s %s", side, s.Type))
		lines = append(lines, fmt.Sprintf("hp    %s %.0f/%.0f", bar(s.HP/spec.MaxHP), s.HP, spec.MaxHP))
		if spec.Range > 0 {
			lines = append(lines, fmt.Sprintf("range %d  shots %d  dmg %.0f", spec.Range, spec.Shots, spec.Damage))
		}
		if spec.Income > 0 {
			lines = append(lines, fmt.Sprintf("income +%d per turn", spec.Income))
		}
		if raw {
			lines = append(lines,
				fmt.Sprintf("handle %v", h),
				fmt.Sprintf("next %.2f  every %.2f", s.NextFire, s.Interval),
				fmt.Sprintf("fire %v aoe %d spread %.1f", spec.Fire, spec.AoE, spec.Spread),
				fmt.Sprintf("walls %v turret %v indirect %v", spec.BlockedByWalls, spec.TurretOnly, spec.Indirect),
			)
		}
	}
	if help := hoverHelp(w, c); help != "" {
		lines = append(lines, "", help)
	}
	return lines
}

// drawHover highlights the hovered cell and rings the reach of a structure
// standing on it.
func (g *Game) drawHover(dst *ebiten.Image) {
	c, ok := g.hover.Get()
	if !ok {
		return
	}
	w := g.world
	b := w.Board()
	tl, size := b.CellRect(c)
	col := colHoverOK
	if w.Phase() == sim.PhasePlanning && w.CanPlace(sim.SideA, w.Selected(), c) != nil {
		if s, _, own := w.StructureAt(sim.SideA, c); !own || w.Specs().Spec(s.Type).Fire != sim.FireSpawn {
			col = colHoverBad
		}
	}
	vector.FillRect(dst, float32(tl.X), float32(tl.Y), float32(size), float32(size), col, false)
	vector.StrokeRect(dst, float32(tl.X), float32(tl.Y), float32(size), float32(size), 2, color.White, false)

	reach := 0
	for _, side := range []sim.Side{sim.SideA, sim.SideB} {
		if s, _, ok := w.StructureAt(side, c); ok {
			reach = max(reach, w.Specs().Spec(s.Type).Range)
		}
	}
	if reach == 0 && w.Phase() == sim.PhasePlanning {
		reach = w.Specs().Spec(w.Selected()).Range
	}
	if reach > 0 {
		ctr := b.CellCenter(c)
		vector.StrokeCircle(dst, float32(ctr.X), float32(ctr.Y), float32(float64(reach)*b.TileSize), 1.5, colRangeRing, true)
	}
}

// drawInspector renders the hover panel in the bottom-left corner of the
// board.
func (g *Game) drawInspector(screen *ebiten.Image) {
	c, ok := g.hover.Get()
	if !ok {
		return
	}
	lines := inspectLines(g.world, c, g.inspector.rawView)
	if len(lines) == 0 {
		return
	}
	view := "curated"
	if g.inspector.rawView {
		view = "raw"
	}
	lines = append([]string{fmt.Sprintf("[ INSPECT ] %s  I=toggle", view)}, lines...)

	h := float32(len(lines)*inspLineH + 2*inspPad)
	px := float32(g.offX + 8)
	py := float32(g.offY+g.boardH-8) - h
	vector.FillRect(screen, px, py, inspW, h, color.RGBA{R: 14, G: 14, B: 22, A: 220}, false)
	vector.StrokeRect(screen, px, py, inspW, h, 1, color.RGBA{R: 80, G: 80, B: 120, A: 255}, false)
	for i, line := range lines {
		g.drawText(screen, line, float64(px)+inspPad, float64(py)+inspPad+float64(i*inspLineH), color.White)
	}
}
