// Package game is the Ebiten window frontend of Ink Wars. It feeds mouse and
// keyboard state to the simulation as sim.Input, turns the simulation's
// effect requests into particles, shake and synthesized sound, and draws the
// board, HUD, hover help and event panel.
package game

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/Garsondee/Ink-Wars/internal/config"
	"github.com/Garsondee/Ink-Wars/internal/sim"
)

// borderWidth is the pixel gap between the window edge and the board.
const borderWidth = 24

// hudHeight is the strip above the board holding the HUD.
const hudHeight = 64

// tps is the simulation rate; one World.Tick per Ebiten update at 1x.
const tps = 60

// reportEveryTicks is how often the reporter samples the world.
const reportEveryTicks = 60

type options struct {
	stage  int
	seed   int64
	mute   bool
	volume float64
}

// Option configures New.
type Option func(*options)

// WithStage starts on stage n.
func WithStage(n int) Option { return func(o *options) { o.stage = n } }

// WithSeed fixes the simulation seed.
func WithSeed(seed int64) Option { return func(o *options) { o.seed = seed } }

// WithMute disables sound.
func WithMute(mute bool) Option { return func(o *options) { o.mute = mute } }

// WithVolume sets the effect volume in [0,1].
func WithVolume(v float64) Option { return func(o *options) { o.volume = v } }

// Game implements ebiten.Game on top of a sim.World.
type Game struct {
	width      int
	height     int
	boardW     int // board width in pixels
	boardH     int // board height in pixels
	offX, offY int // pixel offset from window top-left to the board

	world    *sim.World
	seed     int64
	fx       *FX
	events   *EventLog
	reporter *sim.Reporter
	face     text.Face

	// Offscreen buffer for the board; blitted with the shake offset.
	worldBuf *ebiten.Image

	hover     sim.Maybe[sim.Cell]
	showLog   bool
	showHUD   bool
	inspector Inspector

	// Simulation speed control.
	simSpeed  float64 // multiplier: 0=paused, 0.5, 1, 2, 4
	tickAccum float64 // fractional tick accumulator for sub-1x speeds

	status     string  // transient HUD message
	statusLeft float64 // seconds
}

// New builds the window game from rules.
func New(rules *config.Rules, opts ...Option) (*Game, error) {
	o := options{stage: 1, seed: 1, volume: 0.6}
	for _, fn := range opts {
		fn(&o)
	}

	var sounds SoundPlayer
	if !o.mute {
		sounds = NewSounds(o.volume)
	}
	fx := NewFX(o.seed+7777, sounds)
	events := NewEventLog()
	simLog := sim.NewSimLog(false)
	simLog.OnAdd(events.AddSimEntry)

	w, err := sim.NewWorld(rules,
		sim.WithSeed(o.seed),
		sim.WithEffects(fx),
		sim.WithSimLog(simLog),
		sim.WithStartStage(o.stage),
	)
	if err != nil {
		return nil, fmt.Errorf("new game: %w", err)
	}

	b := w.Board()
	boardW, boardH := int(b.Width()), int(b.Height())
	g := &Game{
		boardW:   boardW,
		boardH:   boardH,
		offX:     borderWidth,
		offY:     borderWidth + hudHeight,
		world:    w,
		seed:     o.seed,
		fx:       fx,
		events:   events,
		reporter: sim.NewReporter(0),
		face:     text.NewGoXFace(basicfont.Face7x13),
		worldBuf: ebiten.NewImage(boardW, boardH),
		showLog:  true,
		showHUD:  true,
		simSpeed: 1,
	}
	g.width = borderWidth + boardW + borderWidth + logPanelWidth
	g.height = borderWidth + hudHeight + boardH + borderWidth
	return g, nil
}

// World exposes the simulation, for tools and tests.
func (g *Game) World() *sim.World { return g.world }

// Size returns the window size the game lays itself out for.
func (g *Game) Size() (int, int) { return g.width, g.height }

func (g *Game) Update() error {
	g.handleKeys()
	in := g.readFrame()

	const dt = 1.0 / tps
	g.tickAccum += g.simSpeed
	for g.tickAccum >= 1.0 {
		g.tickAccum -= 1.0
		g.world.Tick(dt, in)
		// One click per frame, however many ticks it drives.
		in = sim.Frame{Pointer: in.Pointer}
		if g.world.TickCount()%reportEveryTicks == 0 {
			g.reporter.Collect(g.world)
		}
	}

	g.fx.Update(dt)
	if g.statusLeft > 0 {
		g.statusLeft -= dt
		if g.statusLeft <= 0 {
			g.status = ""
		}
	}
	return nil
}

// setStatus shows msg in the HUD for a few seconds.
func (g *Game) setStatus(msg string) {
	g.status = msg
	g.statusLeft = 3
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 16, G: 16, B: 22, A: 255})

	g.worldBuf.Clear()
	g.drawBoard(g.worldBuf)
	g.drawStructures(g.worldBuf)
	g.drawProjectiles(g.worldBuf)
	g.drawActors(g.worldBuf)
	g.drawParticles(g.worldBuf)
	g.drawHover(g.worldBuf)
	g.drawFlash(g.worldBuf)

	sx, sy := g.fx.Offset()
	var blit ebiten.DrawImageOptions
	blit.GeoM.Translate(float64(g.offX)+sx, float64(g.offY)+sy)
	screen.DrawImage(g.worldBuf, &blit)

	ox, oy := float32(g.offX), float32(g.offY)
	bw, bh := float32(g.boardW), float32(g.boardH)
	vector.StrokeRect(screen, ox-1, oy-1, bw+2, bh+2, 2.0, color.RGBA{R: 80, G: 80, B: 110, A: 255}, false)

	if g.showHUD {
		g.drawHUD(screen)
	}
	if g.world.Phase() == sim.PhaseSummary {
		g.drawSummary(screen)
	}
	if g.showLog {
		g.events.Draw(screen, g.offX+g.boardW+borderWidth, g.height)
	}
	g.drawInspector(screen)
}

func (g *Game) Layout(_, _ int) (int, int) {
	return g.width, g.height
}
