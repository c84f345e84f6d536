package game

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/Garsondee/Ink-Wars/internal/sim"
)

const hudLineH = 15

// drawText draws s with its top-left corner at (x, y).
func (g *Game) drawText(dst *ebiten.Image, s string, x, y float64, col color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(col)
	text.Draw(dst, s, g.face, op)
}

// hudLines returns the status lines above the board.
func hudLines(w *sim.World, speed float64, status string) []string {
	a, b := w.Board().Ownership()
	phase := strings.ToUpper(w.Phase().String())
	clock := fmt.Sprintf("%.1fs", w.Remaining())
	if w.HitStopLeft() > 0 {
		clock += " (hit)"
	}
	speedStr := fmt.Sprintf("%gx", speed)
	if speed == 0 {
		speedStr = "PAUSED"
	}

	var build strings.Builder
	for i, t := range sim.BuildableTypes {
		mark := " "
		if t == w.Selected() {
			mark = ">"
		}
		fmt.Fprintf(&build, "%s[%d]%s %d  ", mark, i+1, t, w.Specs().Spec(t).Cost)
	}

	hint := "Enter=battle  click=build/deploy"
	switch w.Phase() {
	case sim.PhaseSimulating:
		hint = "S=skip  click=deploy/command"
	case sim.PhaseSummary:
		hint = "Enter=continue"
	}
	line3 := fmt.Sprintf("%s  P=pause ,/.=speed  C=copy report  F=events", hint)
	if status != "" {
		line3 = status
	}

	return []string{
		fmt.Sprintf("STAGE %d  TURN %d  %s  %s  sim %s", w.Stage(), w.Turn(), phase, clock, speedStr),
		fmt.Sprintf("funds  a=%d (+%d)  b=%d     ownership  a=%.1f%%  b=%.1f%%",
			w.Funds(sim.SideA), w.Income(sim.SideA), w.Funds(sim.SideB), a*100, b*100),
		build.String(),
		line3,
	}
}

func (g *Game) drawHUD(screen *ebiten.Image) {
	x, y := float32(g.offX), float32(borderWidth/2)
	vector.FillRect(screen, x, y, float32(g.boardW), hudHeight-4, color.RGBA{R: 24, G: 24, B: 34, A: 230}, false)
	vector.StrokeRect(screen, x, y, float32(g.boardW), hudHeight-4, 1, color.RGBA{R: 70, G: 70, B: 100, A: 200}, false)

	// Ownership bar along the top edge.
	a, b := g.world.Board().Ownership()
	bw := float32(g.boardW)
	vector.FillRect(screen, x, y, bw*float32(a), 3, colSideA, false)
	vector.FillRect(screen, x+bw*(1-float32(b)), y, bw*float32(b), 3, colSideB, false)

	for i, line := range hudLines(g.world, g.simSpeed, g.status) {
		g.drawText(screen, line, float64(x)+8, float64(y)+2+float64(i*hudLineH), color.White)
	}
}

// summaryLines describes the finished battle.
func summaryLines(w *sim.World) []string {
	title := "TURN OVER"
	switch w.Outcome() {
	case sim.OutcomeWin:
		title = "STAGE CLEAR"
	case sim.OutcomeLoss:
		title = "DEFEAT"
	}
	a, b := w.Board().Ownership()
	st := w.Stats()
	sa, sb := st.Side(sim.SideA), st.Side(sim.SideB)
	next := "Enter: next turn"
	switch w.Outcome() {
	case sim.OutcomeWin:
		next = fmt.Sprintf("Enter: stage %d", w.Stage()+1)
	case sim.OutcomeLoss:
		next = "Enter: retry the stage"
	}
	return []string{
		title,
		"",
		fmt.Sprintf("ownership  a=%.1f%%  b=%.1f%%", a*100, b*100),
		fmt.Sprintf("income next turn  a=+%d  b=+%d", w.Income(sim.SideA), w.Income(sim.SideB)),
		fmt.Sprintf("captures  a=%d  b=%d", sa.Captures, sb.Captures),
		fmt.Sprintf("shots     a=%d  b=%d", sa.Shots, sb.Shots),
		"",
		next,
	}
}

func (g *Game) drawSummary(screen *ebiten.Image) {
	lines := summaryLines(g.world)
	const pw, padY = 320, 14
	ph := float32(len(lines)*hudLineH + 2*padY)
	px := float32(g.offX + g.boardW/2 - pw/2)
	py := float32(g.offY+g.boardH/2) - ph/2

	vector.FillRect(screen, px, py, pw, ph, color.RGBA{R: 12, G: 12, B: 20, A: 230}, false)
	border := color.RGBA{R: 200, G: 200, B: 220, A: 255}
	switch g.world.Outcome() {
	case sim.OutcomeWin:
		border = colSideA
	case sim.OutcomeLoss:
		border = colSideB
	}
	vector.StrokeRect(screen, px, py, pw, ph, 2, border, false)
	for i, line := range lines {
		g.drawText(screen, line, float64(px)+16, float64(py)+padY+float64(i*hudLineH), color.White)
	}
}
