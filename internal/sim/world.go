package sim

import (
	"fmt"
	"math/rand"

	"github.com/Garsondee/Ink-Wars/internal/config"
)

// World is the whole battle state and the tick driver that owns it. It is not
// safe for concurrent use; frontends call it from a single goroutine.
type World struct {
	rules *config.Rules
	specs *SpecTable
	board *Board
	store *StructureStore

	projectiles []*Projectile
	player      *Actor
	agents      []*Actor

	phase     Phase
	outcome   Outcome
	stage     int
	turn      int
	funds     [sideCount]int
	hq        [sideCount]Handle
	elapsed   float64 // battle seconds since BeginBattle, hit-stop excluded
	remaining float64 // battle seconds left
	hitStop   float64 // real seconds of frozen time left
	selected  StructureType
	tick      int
	actorSeq  int

	playerProfile ActorProfile
	enemyProfile  ActorProfile

	rng   *rand.Rand
	fx    Effects
	log   *SimLog
	stats Stats
}

// WorldOption configures NewWorld.
type WorldOption func(*World)

// WithOrigin places the grid's top-left corner at origin in world units.
func WithOrigin(origin Vec2) WorldOption {
	return func(w *World) { w.board.Origin = origin }
}

// WithTileSize overrides the rules' tile size.
func WithTileSize(size float64) WorldOption {
	return func(w *World) {
		if size > 0 {
			w.board.TileSize = size
		}
	}
}

// WithEffects routes presentation requests to fx.
func WithEffects(fx Effects) WorldOption {
	return func(w *World) {
		if fx != nil {
			w.fx = fx
		}
	}
}

// WithSeed makes every random choice reproducible.
func WithSeed(seed int64) WorldOption {
	return func(w *World) {
		w.rng = rand.New(rand.NewSource(seed)) // #nosec G404 -- gameplay randomness
	}
}

// WithSimLog records engine events into log.
func WithSimLog(log *SimLog) WorldOption {
	return func(w *World) {
		if log != nil {
			w.log = log
		}
	}
}

// WithStartStage builds stage n instead of stage 1.
func WithStartStage(n int) WorldOption {
	return func(w *World) {
		if n > 0 {
			w.stage = n
		}
	}
}

// NewWorld builds a world from rules and constructs its first stage.
func NewWorld(rules *config.Rules, opts ...WorldOption) (*World, error) {
	if rules == nil {
		return nil, fmt.Errorf("new world: nil rules")
	}
	specs, err := NewSpecTable(rules)
	if err != nil {
		return nil, fmt.Errorf("new world: %w", err)
	}
	w := &World{
		rules:         rules,
		specs:         specs,
		board:         NewBoard(rules.Board.Width, rules.Board.Height, Vec2{}, rules.Board.TileSize),
		store:         NewStructureStore(),
		stage:         1,
		selected:      StructureBasic,
		playerProfile: profileFromRules(rules.Player),
		enemyProfile:  profileFromRules(rules.Enemy),
		rng:           rand.New(rand.NewSource(1)), // #nosec G404 -- gameplay randomness
		fx:            NopEffects{},
		log:           NewSimLog(false),
	}
	for _, o := range opts {
		o(w)
	}
	if err := w.BuildStage(w.stage); err != nil {
		return nil, fmt.Errorf("new world: %w", err)
	}
	return w, nil
}

// Board returns the grid. Frontends must treat it as read-only.
func (w *World) Board() *Board { return w.board }

// Structures returns the structure store. Frontends must treat it as read-only.
func (w *World) Structures() *StructureStore { return w.store }

// Specs returns the capability table.
func (w *World) Specs() *SpecTable { return w.specs }

// Rules returns the rules the world was built from.
func (w *World) Rules() *config.Rules { return w.rules }

// Projectiles returns the projectiles in flight.
func (w *World) Projectiles() []*Projectile { return w.projectiles }

// Player returns the player unit, or nil when none is deployed.
func (w *World) Player() *Actor {
	if w.player == nil || !w.player.Alive {
		return nil
	}
	return w.player
}

// Agents returns side B's roaming agents.
func (w *World) Agents() []*Actor { return w.agents }

func (w *World) Phase() Phase { return w.phase }
func (w *World) Outcome() Outcome { return w.outcome }
func (w *World) Stage() int { return w.stage }
func (w *World) Turn() int { return w.turn }
func (w *World) Funds(side Side) int { return w.funds[side] }
func (w *World) Elapsed() float64 { return w.elapsed }
func (w *World) Remaining() float64 { return w.remaining }
func (w *World) HitStopLeft() float64 { return w.hitStop }
func (w *World) Selected() StructureType { return w.selected }
func (w *World) TickCount() int { return w.tick }
func (w *World) Log() *SimLog { return w.log }
func (w *World) Stats() *Stats { return &w.stats }

// HQ returns side's headquarters handle.
func (w *World) HQ(side Side) Handle { return w.hq[side] }

// Select chooses the type SideA places on click during Planning.
func (w *World) Select(t StructureType) {
	if t < structureTypeCount && w.specs.Spec(t).Buildable() {
		w.selected = t
	}
}

// StructureAt returns side's structure at c.
func (w *World) StructureAt(side Side, c Cell) (*Structure, Handle, bool) {
	h := w.board.Occupant(side, c)
	s, ok := w.store.Get(h)
	return s, h, ok
}

// SetFunds overwrites side's funds.
func (w *World) SetFunds(side Side, amount int) {
	w.funds[side] = amount
}

func (w *World) hitStopAtLeast(d float64) {
	if d > w.hitStop {
		w.hitStop = d
	}
	w.fx.HitStop(d)
}

func (w *World) record(label string, side Side, category, key, value string, num float64) {
	w.log.Add(w.tick, label, side.String(), category, key, value, num)
}

func (w *World) recordGlobal(category, key, value string, num float64) {
	w.log.Add(w.tick, "--", "--", category, key, value, num)
}

func structureLabel(s *Structure) string {
	return fmt.Sprintf("%s:%s@%d,%d", s.Owner, s.Type, s.Cell.X, s.Cell.Y)
}

func (w *World) recordVerbose(label string, side Side, category, key, value string, num float64) {
	w.log.AddVerbose(w.tick, label, side.String(), category, key, value, num)
}
