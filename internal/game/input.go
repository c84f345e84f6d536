package game

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/Garsondee/Ink-Wars/internal/sim"
)

// selectKeys maps the number row to sim.BuildableTypes in menu order.
var selectKeys = []ebiten.Key{
	ebiten.Key1, ebiten.Key2, ebiten.Key3,
	ebiten.Key4, ebiten.Key5, ebiten.Key6,
}

// simSpeeds are the steps of the , and . keys.
var simSpeeds = []float64{0, 0.5, 1, 2, 4}

// pointerFrame builds the input frame for a cursor at (x, y) in board-local
// pixels. A cursor off the board has no pointer cell.
func pointerFrame(b *sim.Board, x, y float64, click, confirm, skip bool) sim.Frame {
	f := sim.Frame{Click: click, Confirm: confirm, Skip: skip}
	if c, ok := b.ScreenToCell(sim.Vec2{X: x, Y: y}); ok {
		f.Pointer = sim.Some(c)
	}
	return f
}

// readFrame samples the mouse and the phase keys for this update.
func (g *Game) readFrame() sim.Frame {
	mx, my := ebiten.CursorPosition()
	f := pointerFrame(g.world.Board(),
		float64(mx-g.offX), float64(my-g.offY),
		inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft),
		inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeySpace),
		inpututil.IsKeyJustPressed(ebiten.KeyS),
	)
	g.hover = f.Pointer
	return f
}

// handleKeys processes selection, speed and panel toggles.
func (g *Game) handleKeys() {
	for i, k := range selectKeys {
		if i < len(sim.BuildableTypes) && inpututil.IsKeyJustPressed(k) {
			g.world.Select(sim.BuildableTypes[i])
		}
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyF) {
		g.showLog = !g.showLog
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		g.showHUD = !g.showHUD
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyI) {
		g.inspector.rawView = !g.inspector.rawView
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		g.copyReport()
	}

	// Sim speed controls: P=pause/resume, ,=slower, .=faster.
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		if g.simSpeed > 0 {
			g.simSpeed = 0
		} else {
			g.simSpeed = 1
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyComma) {
		g.simSpeed = stepSpeed(g.simSpeed, -1)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyPeriod) {
		g.simSpeed = stepSpeed(g.simSpeed, +1)
	}
}

// stepSpeed moves cur one entry along simSpeeds in direction dir.
func stepSpeed(cur float64, dir int) float64 {
	idx := 0
	for i, s := range simSpeeds {
		if s <= cur {
			idx = i
		}
	}
	idx += dir
	if idx < 0 {
		idx = 0
	}
	if idx >= len(simSpeeds) {
		idx = len(simSpeeds) - 1
	}
	return simSpeeds[idx]
}
