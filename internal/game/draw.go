package game

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/Garsondee/Ink-Wars/internal/sim"
)

// Palette.
var (
	colSideA     = color.RGBA{R: 70, G: 130, B: 255, A: 255}
	colSideB     = color.RGBA{R: 235, G: 70, B: 70, A: 255}
	colTileA     = color.RGBA{R: 120, G: 165, B: 255, A: 255}
	colTileB     = color.RGBA{R: 255, G: 125, B: 125, A: 255}
	colNeutral   = color.RGBA{R: 226, G: 224, B: 218, A: 255}
	colWall      = color.RGBA{R: 52, G: 52, B: 64, A: 255}
	colGrid      = color.RGBA{R: 0, G: 0, B: 0, A: 28}
	colHPBack    = color.RGBA{R: 20, G: 20, B: 20, A: 200}
	colHPFill    = color.RGBA{R: 90, G: 220, B: 110, A: 255}
	colHoverOK   = color.RGBA{R: 255, G: 255, B: 255, A: 90}
	colHoverBad  = color.RGBA{R: 0, G: 0, B: 0, A: 70}
	colRangeRing = color.RGBA{R: 255, G: 255, B: 255, A: 140}
)

// sideColor returns the saturated colour of side.
func sideColor(side sim.Side) color.RGBA {
	if side == sim.SideA {
		return colSideA
	}
	return colSideB
}

// paintColor blends the tile tint for paint p: neutral at 0.5, side A's
// tint toward 1 and side B's toward 0.
func paintColor(p float64) color.RGBA {
	if p >= 0.5 {
		return mix(colNeutral, colTileA, (p-0.5)*2)
	}
	return mix(colNeutral, colTileB, (0.5-p)*2)
}

func mix(a, b color.RGBA, t float64) color.RGBA {
	t = math.Max(0, math.Min(1, t))
	return color.RGBA{
		R: uint8(float64(a.R) + (float64(b.R)-float64(a.R))*t),
		G: uint8(float64(a.G) + (float64(b.G)-float64(a.G))*t),
		B: uint8(float64(a.B) + (float64(b.B)-float64(a.B))*t),
		A: uint8(float64(a.A) + (float64(b.A)-float64(a.A))*t),
	}
}

func withAlpha(c color.RGBA, a uint8) color.RGBA {
	c.A = a
	return c
}

func (g *Game) drawBoard(dst *ebiten.Image) {
	b := g.world.Board()
	for y := 0; y < b.Rows; y++ {
		for x := 0; x < b.Cols; x++ {
			c := sim.Cell{X: x, Y: y}
			tl, size := b.CellRect(c)
			fx, fy, fs := float32(tl.X), float32(tl.Y), float32(size)
			t := b.At(c)
			switch t.Kind {
			case sim.TileWall:
				vector.FillRect(dst, fx, fy, fs, fs, colWall, false)
				vector.StrokeLine(dst, fx, fy+fs-1, fx+fs, fy+fs-1, 2, color.RGBA{R: 30, G: 30, B: 38, A: 255}, false)
				continue
			case sim.TileHQA:
				vector.FillRect(dst, fx, fy, fs, fs, colTileA, false)
			case sim.TileHQB:
				vector.FillRect(dst, fx, fy, fs, fs, colTileB, false)
			default:
				vector.FillRect(dst, fx, fy, fs, fs, paintColor(t.Paint), false)
			}
			vector.StrokeRect(dst, fx, fy, fs, fs, 1, colGrid, false)
		}
	}
}

func (g *Game) drawStructures(dst *ebiten.Image) {
	b := g.world.Board()
	specs := g.world.Specs()
	for _, side := range []sim.Side{sim.SideA, sim.SideB} {
		g.world.Structures().Each(side, func(_ sim.Handle, s *sim.Structure) {
			spec := specs.Spec(s.Type)
			tl, size := b.CellRect(s.Cell)
			cx, cy := float32(tl.X+size/2), float32(tl.Y+size/2)
			r := float32(size) * 0.38
			col := sideColor(side)
			if s.Type == sim.StructureHQ {
				inset := float32(size) * 0.1
				vector.FillRect(dst, float32(tl.X)+inset, float32(tl.Y)+inset, float32(size)-2*inset, float32(size)-2*inset, col, false)
				vector.StrokeRect(dst, float32(tl.X)+inset, float32(tl.Y)+inset, float32(size)-2*inset, float32(size)-2*inset, 2, color.White, false)
			} else {
				vector.FillCircle(dst, cx, cy, r, col, true)
				vector.StrokeCircle(dst, cx, cy, r, 1.5, mix(col, color.RGBA{A: 255}, 0.5), true)
			}
			g.drawGlyph(dst, spec.Glyph, float64(cx), float64(cy))

			if spec.MaxHP > 0 && s.HP < spec.MaxHP {
				frac := float32(math.Max(0, s.HP/spec.MaxHP))
				bw := float32(size) * 0.8
				bx, by := cx-bw/2, float32(tl.Y+size)-5
				vector.FillRect(dst, bx, by, bw, 3, colHPBack, false)
				vector.FillRect(dst, bx, by, bw*frac, 3, colHPFill, false)
			}
		})
	}
}

// drawGlyph centres a structure glyph at (x, y).
func (g *Game) drawGlyph(dst *ebiten.Image, r rune, x, y float64) {
	if r == 0 {
		return
	}
	s := string(r)
	w, h := text.Measure(s, g.face, 0)
	op := &text.DrawOptions{}
	op.GeoM.Translate(x-w/2, y-h/2)
	op.ColorScale.ScaleWithColor(color.White)
	text.Draw(dst, s, g.face, op)
}

func (g *Game) drawProjectiles(dst *ebiten.Image) {
	for _, p := range g.world.Projectiles() {
		col := sideColor(p.Owner)
		if p.Arc {
			// Shadow on the ground under the shell.
			ground := p.Start.Lerp(p.End, p.U)
			vector.FillCircle(dst, float32(ground.X), float32(ground.Y), float32(p.Radius)*0.8, color.RGBA{A: 70}, true)
		}
		vector.StrokeLine(dst, float32(p.Prev.X), float32(p.Prev.Y), float32(p.Pos.X), float32(p.Pos.Y),
			float32(math.Max(1, p.Radius*0.6)), withAlpha(col, 150), true)
		vector.FillCircle(dst, float32(p.Pos.X), float32(p.Pos.Y), float32(p.Radius), col, true)
		vector.FillCircle(dst, float32(p.Pos.X), float32(p.Pos.Y), float32(p.Radius)*0.45, color.White, true)
	}
}

func (g *Game) drawActors(dst *ebiten.Image) {
	if p := g.world.Player(); p != nil {
		g.drawActor(dst, p)
		if tgt, ok := p.Target.Get(); ok {
			x, y := float32(tgt.X), float32(tgt.Y)
			vector.StrokeLine(dst, x-5, y-5, x+5, y+5, 2, colSideA, true)
			vector.StrokeLine(dst, x-5, y+5, x+5, y-5, 2, colSideA, true)
		}
	}
	for _, a := range g.world.Agents() {
		g.drawActor(dst, a)
	}
}

func (g *Game) drawActor(dst *ebiten.Image, a *sim.Actor) {
	x, y, r := float32(a.Pos.X), float32(a.Pos.Y), float32(a.Radius)
	col := sideColor(a.Side)
	vector.FillCircle(dst, x, y, r, col, true)
	vector.StrokeCircle(dst, x, y, r, 2, color.White, true)
	// Remaining life as a shrinking inner dot.
	vector.FillCircle(dst, x, y, r*0.6*float32(a.Remaining()), color.White, true)
}

func (g *Game) drawParticles(dst *ebiten.Image) {
	for i := range g.fx.particles {
		p := &g.fx.particles[i]
		u := p.age / p.life
		r := float32(lerp(p.size0, p.size1, u))
		col := withAlpha(p.col, uint8(255*(1-u)))
		vector.FillCircle(dst, float32(p.x), float32(p.y), r, col, true)
	}
}

// drawFlash whitens the board briefly while a hit-stop freeze runs.
func (g *Game) drawFlash(dst *ebiten.Image) {
	if g.fx.flash <= 0 {
		return
	}
	a := uint8(math.Min(1, g.fx.flash/0.06) * 60)
	vector.FillRect(dst, 0, 0, float32(g.boardW), float32(g.boardH), color.RGBA{R: 255, G: 255, B: 255, A: a}, false)
}
