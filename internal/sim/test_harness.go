package sim

import (
	"fmt"
	"strings"

	"github.com/Garsondee/Ink-Wars/internal/config"
)

// TestSim is a headless harness around World used by tests. It records every
// effect request, scripts input one frame at a time and advances by a fixed
// delta.
type TestSim struct {
	World  *World
	Rules  *config.Rules
	FX     *EffectRecorder
	SimLog *SimLog
	DT     float64

	seed  int64
	stage int
	next  []Frame
	tick  int
}

// simOptionKind controls the pass in which an option is applied.
type simOptionKind int

const (
	simOptRules simOptionKind = iota // rules edits, applied before the world exists
	simOptInfra                      // seed, stage, verbose, dt
	simOptBoard                      // tiles, structures, funds; applied after the stage is built
	simOptActor                      // actors, applied last
)

// SimOption is a builder function applied to a TestSim during construction.
type SimOption struct {
	kind simOptionKind
	fn   func(*TestSim)
}

// WithTestSeed sets the RNG seed for deterministic runs.
func WithTestSeed(seed int64) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) { ts.seed = seed }}
}

// WithStage builds stage n instead of stage 1.
func WithStage(n int) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) { ts.stage = n }}
}

// WithVerbose enables per-shot logging.
func WithVerbose(v bool) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) { ts.SimLog = NewSimLog(v) }}
}

// WithDT overrides the fixed tick delta.
func WithDT(dt float64) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) { ts.DT = dt }}
}

// WithRules edits the rules before the world is built.
func WithRules(edit func(*config.Rules)) SimOption {
	return SimOption{simOptRules, func(ts *TestSim) { edit(ts.Rules) }}
}

// WithOpenField replaces the stage with a wall-free w×h board: side A's
// headquarters at the left edge, side B's at the right edge and no
// pre-built structures.
func WithOpenField(w, h int) SimOption {
	return SimOption{simOptRules, func(ts *TestSim) {
		ts.Rules.Board.Width = w
		ts.Rules.Board.Height = h
		ts.Rules.Stage.Layout = openLayout(w, h)
		ts.Rules.Stage.Initial = nil
	}}
}

func openLayout(w, h int) []string {
	rows := make([]string, h)
	for y := range rows {
		row := []byte(strings.Repeat(".", w))
		if y == h/2 {
			row[0] = 'P'
			row[w-1] = 'E'
		}
		rows[y] = string(row)
	}
	return rows
}

// WithWall turns c into a wall.
func WithWall(c Cell) SimOption {
	return SimOption{simOptBoard, func(ts *TestSim) {
		ts.World.board.SetTile(c, Tile{Kind: TileWall, Paint: neutralPaint})
	}}
}

// WithPaint sets the paint of c.
func WithPaint(c Cell, p float64) SimOption {
	return SimOption{simOptBoard, func(ts *TestSim) {
		if t := ts.World.board.At(c); t != nil {
			t.Paint = clamp(p, 0, 1)
		}
	}}
}

// WithUniformPaint sets every floor tile to p.
func WithUniformPaint(p float64) SimOption {
	return SimOption{simOptBoard, func(ts *TestSim) {
		b := ts.World.board
		for i := range b.Tiles {
			if b.Tiles[i].Kind == TileFloor {
				b.Tiles[i].Paint = clamp(p, 0, 1)
			}
		}
	}}
}

// WithStructure puts a full-health structure of typ for side at c without
// any placement checks.
func WithStructure(side Side, typ StructureType, c Cell) SimOption {
	return SimOption{simOptBoard, func(ts *TestSim) {
		ts.World.addStructure(side, typ, c)
	}}
}

// WithFunds sets side's funds.
func WithFunds(side Side, n int) SimOption {
	return SimOption{simOptBoard, func(ts *TestSim) { ts.World.funds[side] = n }}
}

// WithPlayerAt deploys the player at the centre of c.
func WithPlayerAt(c Cell) SimOption {
	return SimOption{simOptActor, func(ts *TestSim) {
		w := ts.World
		w.player = w.newActor(SideA, w.board.CellCenter(c), w.playerProfile)
	}}
}

// WithAgentAt puts a side B agent at the centre of c.
func WithAgentAt(c Cell) SimOption {
	return SimOption{simOptActor, func(ts *TestSim) {
		w := ts.World
		w.spawnAgent(w.board.CellCenter(c))
	}}
}

// NewTestSim constructs a TestSim from the given options in ordered passes:
//  1. Rules edits
//  2. Infrastructure (seed, stage, verbose, dt)
//  3. Build the World
//  4. Board edits, structures and funds
//  5. Actors
//
// It panics when the resulting rules cannot build a world.
func NewTestSim(opts ...SimOption) *TestSim {
	rules, err := config.Default()
	if err != nil {
		panic(fmt.Sprintf("test sim: %v", err))
	}
	ts := &TestSim{
		Rules:  rules,
		FX:     &EffectRecorder{},
		SimLog: NewSimLog(false),
		DT:     1.0 / 60.0,
		seed:   1,
		stage:  1,
	}
	for _, kind := range []simOptionKind{simOptRules, simOptInfra} {
		for _, o := range opts {
			if o.kind == kind {
				o.fn(ts)
			}
		}
	}
	if err := ts.Rules.Validate(); err != nil {
		panic(fmt.Sprintf("test sim: %v", err))
	}
	ts.World, err = NewWorld(ts.Rules,
		WithSeed(ts.seed),
		WithEffects(ts.FX),
		WithSimLog(ts.SimLog),
		WithStartStage(ts.stage),
	)
	if err != nil {
		panic(fmt.Sprintf("test sim: %v", err))
	}
	for _, kind := range []simOptionKind{simOptBoard, simOptActor} {
		for _, o := range opts {
			if o.kind == kind {
				o.fn(ts)
			}
		}
	}
	return ts
}

// Press queues frames to be fed on the following ticks, one per tick.
func (ts *TestSim) Press(frames ...Frame) {
	ts.next = append(ts.next, frames...)
}

// Click queues a click on c for the next tick.
func (ts *TestSim) Click(c Cell) {
	ts.Press(ClickAt(c))
}

// Step runs one tick with the next queued frame, or no input.
func (ts *TestSim) Step() {
	var in Input = NoInput{}
	if len(ts.next) > 0 {
		in = ts.next[0]
		ts.next = ts.next[1:]
	}
	ts.tick++
	ts.World.Tick(ts.DT, in)
}

// RunTicks advances the simulation n ticks.
func (ts *TestSim) RunTicks(n int) {
	for i := 0; i < n; i++ {
		ts.Step()
	}
}

// RunUntil advances the simulation up to maxTicks, stopping early if predicate
// returns true. Returns the tick at which the predicate was satisfied, or -1.
func (ts *TestSim) RunUntil(predicate func(*TestSim) bool, maxTicks int) int {
	for i := 0; i < maxTicks; i++ {
		ts.Step()
		if predicate(ts) {
			return ts.tick
		}
	}
	return -1
}

// BeginBattle starts the battle directly.
func (ts *TestSim) BeginBattle() {
	ts.World.BeginBattle()
}

// Structure returns side's live structure at c, or nil.
func (ts *TestSim) Structure(side Side, c Cell) *Structure {
	s, _, ok := ts.World.StructureAt(side, c)
	if !ok {
		return nil
	}
	return s
}

// CurrentTick returns the number of ticks run by the harness.
func (ts *TestSim) CurrentTick() int {
	return ts.tick
}

// Snapshot captures a report of the world.
func (ts *TestSim) Snapshot() SimReport {
	return Snapshot(ts.World)
}

// Violations checks the state invariants of the world and describes every
// breach: paint outside [0,1], walls with non-neutral paint and occupancy
// entries that do not resolve to a live structure on that cell.
func (ts *TestSim) Violations() []string {
	w := ts.World
	b := w.board
	var out []string
	for y := 0; y < b.Rows; y++ {
		for x := 0; x < b.Cols; x++ {
			c := Cell{X: x, Y: y}
			t := b.At(c)
			if t.Paint < 0 || t.Paint > 1 {
				out = append(out, fmt.Sprintf("paint %v at %v", t.Paint, c))
			}
			if t.Kind == TileWall && t.Paint != neutralPaint {
				out = append(out, fmt.Sprintf("wall %v painted %v", c, t.Paint))
			}
			for side := SideA; side < sideCount; side++ {
				h := b.Occupant(side, c)
				if !h.Valid() {
					continue
				}
				s, ok := w.store.Get(h)
				switch {
				case !ok:
					out = append(out, fmt.Sprintf("side %s index at %v holds dead %v", side, c, h))
				case s.Cell != c:
					out = append(out, fmt.Sprintf("side %s index at %v points at %v", side, c, s.Cell))
				case s.Owner != side:
					out = append(out, fmt.Sprintf("side %s index at %v owned by %s", side, c, s.Owner))
				}
			}
		}
	}
	return out
}
