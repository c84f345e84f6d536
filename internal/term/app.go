// Package term is the terminal frontend of Ink Wars, built on tcell. Each
// board cell is drawn two columns wide with its paint as a 24-bit background
// colour; the mouse and keyboard drive the same sim.Input the window
// frontend uses.
package term

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/Garsondee/Ink-Wars/internal/config"
	"github.com/Garsondee/Ink-Wars/internal/sim"
)

// Screen layout in terminal cells.
const (
	cellCols  = 2 // terminal columns per board cell
	boardLeft = 1
	boardTop  = 4
)

// eventLines is how many recent log entries the side column keeps.
const eventLines = 16

// frameTime is the tick period; one World.Tick per frame.
const frameTime = 16 * time.Millisecond

type options struct {
	stage  int
	seed   int64
	sounds Sounder
}

// Option configures New.
type Option func(*options)

// WithStage starts on stage n.
func WithStage(n int) Option { return func(o *options) { o.stage = n } }

// WithSeed fixes the simulation seed.
func WithSeed(seed int64) Option { return func(o *options) { o.seed = seed } }

// WithSounds routes sound effects to s. Without it the app is silent.
func WithSounds(s Sounder) Option { return func(o *options) { o.sounds = s } }

// App runs a sim.World on a tcell screen.
type App struct {
	screen tcell.Screen
	world  *sim.World
	fx     *termFX

	hover     sim.Maybe[sim.Cell]
	mouseDown bool

	// Input gathered since the last tick.
	click   bool
	confirm bool
	skip    bool

	events []string // newest last

	paused     bool
	status     string
	statusLeft float64
}

// New builds an app drawing to screen. The caller owns screen's Init and
// Fini.
func New(screen tcell.Screen, rules *config.Rules, opts ...Option) (*App, error) {
	o := options{stage: 1, seed: 1}
	for _, fn := range opts {
		fn(&o)
	}
	if o.sounds == nil {
		o.sounds = silent{}
	}

	fx := newTermFX(o.sounds)
	simLog := sim.NewSimLog(false)
	a := &App{screen: screen, fx: fx}
	simLog.OnAdd(a.onLog)

	w, err := sim.NewWorld(rules,
		sim.WithSeed(o.seed),
		sim.WithEffects(fx),
		sim.WithSimLog(simLog),
		sim.WithStartStage(o.stage),
	)
	if err != nil {
		return nil, fmt.Errorf("new terminal app: %w", err)
	}
	a.world = w
	fx.board = w.Board()
	return a, nil
}

// World exposes the simulation, for tools and tests.
func (a *App) World() *sim.World { return a.world }

// Run polls events and ticks the world until the user quits or ctx ends.
func (a *App) Run(ctx context.Context) error {
	ticker := time.NewTicker(frameTime)
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	done := make(chan struct{})
	defer close(done)
	go pumpEvents(a.screen, events, done)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-events:
			if !a.handleEvent(ev) {
				return nil
			}
		case <-ticker.C:
			a.step(frameTime.Seconds())
			a.draw()
		}
	}
}

// pumpEvents forwards screen events to out until the screen is finalized or
// done closes.
func pumpEvents(screen tcell.Screen, out chan<- tcell.Event, done <-chan struct{}) {
	for {
		ev := screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case out <- ev:
		case <-done:
			return
		}
	}
}

// step advances the world by one tick with the input gathered since the last
// one. A paused app keeps its effects moving but does not tick.
func (a *App) step(dt float64) {
	if !a.paused {
		a.world.Tick(dt, sim.Frame{
			Pointer: a.hover,
			Click:   a.click,
			Confirm: a.confirm,
			Skip:    a.skip,
		})
		a.click, a.confirm, a.skip = false, false, false
	}
	a.fx.update(dt)
	if a.statusLeft > 0 {
		a.statusLeft -= dt
		if a.statusLeft <= 0 {
			a.status = ""
		}
	}
}

// onLog feeds the event column and surfaces rejected placements and phase
// changes in the status line.
func (a *App) onLog(e sim.SimLogEntry) {
	a.events = append(a.events, fmt.Sprintf("%04d %s %s", e.Tick, e.Key, e.Value))
	if len(a.events) > eventLines {
		a.events = a.events[len(a.events)-eventLines:]
	}
	switch e.Category {
	case "place":
		if e.Key == "rejected" {
			a.setStatus(e.Value)
		}
	case "phase", "stage":
		a.setStatus(e.Key + " " + e.Value)
	}
}

func (a *App) setStatus(msg string) {
	a.status = msg
	a.statusLeft = 3
}
