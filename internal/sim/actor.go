package sim

import (
	"fmt"
	"math"

	"github.com/Garsondee/Ink-Wars/internal/config"
)

// arriveEpsilon is the distance at which a move target counts as reached.
const arriveEpsilon = 1e-3

// ExplosionProfile is the contact blast of an actor.
type ExplosionProfile struct {
	Radius        int
	Damage        float64
	Paint         float64
	ShakePower    float64
	ShakeDuration float64
	HitStop       float64
}

// ActorProfile is the static shape of a roaming unit.
type ActorProfile struct {
	HP         float64
	Speed      float64
	Radius     float64
	Life       float64
	TrailPaint float64 // paint per second spread along the trail
	Explosion  ExplosionProfile
}

func profileFromRules(r config.ActorRules) ActorProfile {
	return ActorProfile{
		HP:         r.HP,
		Speed:      r.Speed,
		Radius:     r.Radius,
		Life:       r.Life,
		TrailPaint: r.TrailPaint,
		Explosion: ExplosionProfile{
			Radius:        r.Explosion.Radius,
			Damage:        r.Explosion.Damage,
			Paint:         r.Explosion.Paint,
			ShakePower:    r.Explosion.ShakePower,
			ShakeDuration: r.Explosion.ShakeDuration,
			HitStop:       r.Explosion.HitStop,
		},
	}
}

// Actor is a roaming unit: the SideA player or a SideB agent.
type Actor struct {
	ID     int
	Side   Side
	Pos    Vec2
	Prev   Vec2
	Radius float64
	Speed  float64
	HP     float64
	Alive  bool
	Target Maybe[Vec2]
	Age    float64
	Life   float64

	profile ActorProfile
}

// Label is the actor's log name.
func (a *Actor) Label() string {
	if a.Side == SideA {
		return fmt.Sprintf("P%d", a.ID)
	}
	return fmt.Sprintf("E%d", a.ID)
}

// Remaining is the fraction of lifetime left, in [0,1].
func (a *Actor) Remaining() float64 {
	if a.Life <= 0 {
		return 0
	}
	return clamp(1-a.Age/a.Life, 0, 1)
}

func (w *World) newActor(side Side, pos Vec2, profile ActorProfile) *Actor {
	w.actorSeq++
	return &Actor{
		ID:      w.actorSeq,
		Side:    side,
		Pos:     pos,
		Prev:    pos,
		Radius:  profile.Radius,
		Speed:   profile.Speed,
		HP:      profile.HP,
		Alive:   true,
		Life:    profile.Life,
		profile: profile,
	}
}

// moveWithCollision moves a by delta one axis at a time. Each axis is clamped
// to the board inset by the actor's radius and only committed when it does
// not land in a wall.
func (w *World) moveWithCollision(a *Actor, delta Vec2) {
	b := w.board
	minX, maxX := b.Origin.X+a.Radius, b.Origin.X+b.Width()-a.Radius
	minY, maxY := b.Origin.Y+a.Radius, b.Origin.Y+b.Height()-a.Radius

	nx := clamp(a.Pos.X+delta.X, minX, maxX)
	if !b.IsWallAt(Vec2{X: nx, Y: a.Pos.Y}) {
		a.Pos.X = nx
	}
	ny := clamp(a.Pos.Y+delta.Y, minY, maxY)
	if !b.IsWallAt(Vec2{X: a.Pos.X, Y: ny}) {
		a.Pos.Y = ny
	}
}

// SpawnPlayerFrom deploys the SideA player on the SideA spawner at c,
// replacing any player already on the field. It reports whether c held such
// a spawner.
func (w *World) SpawnPlayerFrom(c Cell) bool {
	s, _, ok := w.StructureAt(SideA, c)
	if !ok || w.specs.Spec(s.Type).Fire != FireSpawn {
		return false
	}
	pos := w.board.CellCenter(c)
	w.player = w.newActor(SideA, pos, w.playerProfile)
	w.stats.Side(SideA).Deployed++
	w.fx.Burst(Burst{Kind: BurstDeploy, Side: SideA, Pos: pos})
	w.record(w.player.Label(), SideA, "actor", "deploy", c.String(), 0)
	return true
}

// CommandPlayer sends the player toward c. A wall click is shortened to the
// furthest walkable cell on the line from the player toward it.
func (w *World) CommandPlayer(c Cell) bool {
	p := w.Player()
	if p == nil || !w.board.InBounds(c) {
		return false
	}
	dest := c
	if w.board.KindAt(c) == TileWall {
		from, ok := w.board.ScreenToCell(p.Pos)
		if !ok {
			return false
		}
		dest = RaycastUntilWall(w.board, from, c)
	}
	p.Target = Some(w.board.CellCenter(dest))
	w.recordVerbose(p.Label(), SideA, "actor", "command", dest.String(), 0)
	return true
}

// updatePlayer steps the player toward its target, paints its trail and
// checks contact and lifetime.
func (w *World) updatePlayer(dt float64) {
	p := w.Player()
	if p == nil {
		return
	}
	p.Prev = p.Pos
	if tgt, ok := p.Target.Get(); ok {
		d := tgt.Sub(p.Pos)
		dist := d.Len()
		step := p.Speed * dt
		if dist <= step || dist <= arriveEpsilon {
			w.moveWithCollision(p, d)
			if p.Pos.Sub(tgt).LenSq() <= arriveEpsilon*arriveEpsilon {
				p.Pos = tgt
			}
			p.Target = Maybe[Vec2]{}
		} else {
			w.moveWithCollision(p, d.Scale(step/dist))
		}
	}
	w.paintTrail(p, dt)
	if w.checkContact(p) {
		w.player = nil
		return
	}
	p.Age += dt
	if p.Age >= p.Life {
		w.expire(p)
		w.player = nil
	}
}

// paintTrail spreads the actor's per-second trail paint over the cells
// crossed since Prev.
func (w *World) paintTrail(a *Actor, dt float64) {
	if a.profile.TrailPaint <= 0 || a.Pos == a.Prev {
		return
	}
	from, ok1 := w.board.ScreenToCell(a.Prev)
	to, ok2 := w.board.ScreenToCell(a.Pos)
	if !ok1 || !ok2 {
		return
	}
	cells := LineCells(from, to)
	per := a.Side.PaintSign() * a.profile.TrailPaint * dt / float64(len(cells))
	for _, c := range cells {
		if w.board.KindAt(c) == TileWall {
			continue
		}
		w.board.ApplyPaint(c, per)
	}
}

// checkContact explodes a if it stands on an opponent structure.
func (w *World) checkContact(a *Actor) bool {
	c, ok := w.board.ScreenToCell(a.Pos)
	if !ok || !w.board.Occupied(a.Side.Opponent(), c) {
		return false
	}
	w.explode(a, c)
	return true
}

func (w *World) explode(a *Actor, c Cell) {
	ex := a.profile.Explosion
	w.applyAreaOfEffect(c, ex.Radius, a.Side.PaintSign()*ex.Paint, ex.Damage, a.Side)
	pos := w.board.CellCenter(c)
	if a.Side == SideA {
		w.fx.Burst(Burst{Kind: BurstExplosionA, Side: a.Side, Pos: pos})
		w.fx.Burst(Burst{Kind: BurstFlash, Side: a.Side, Pos: pos})
	} else {
		w.fx.Burst(Burst{Kind: BurstExplosionB, Side: a.Side, Pos: pos})
	}
	w.fx.Shake(ex.ShakePower, ex.ShakeDuration)
	w.hitStopAtLeast(ex.HitStop)
	a.Alive = false
	w.stats.Side(a.Side).Explosions++
	w.record(a.Label(), a.Side, "actor", "explode", c.String(), ex.Damage)
}

func (w *World) expire(a *Actor) {
	a.Alive = false
	w.fx.Burst(Burst{Kind: BurstExpire, Side: a.Side, Pos: a.Pos})
	w.record(a.Label(), a.Side, "actor", "expire", "", a.Age)
}

// spawnAgent puts a SideB agent at pos.
func (w *World) spawnAgent(pos Vec2) *Actor {
	a := w.newActor(SideB, pos, w.enemyProfile)
	w.agents = append(w.agents, a)
	w.stats.Side(SideB).Deployed++
	w.fx.Burst(Burst{Kind: BurstSpawn, Side: SideB, Pos: pos})
	w.recordVerbose(a.Label(), SideB, "actor", "spawn", "", 0)
	return a
}

// nearestOpponentStructure returns the centre of the closest live structure
// of a's opponent.
func (w *World) nearestOpponentStructure(a *Actor) (Vec2, bool) {
	best := math.Inf(1)
	var at Vec2
	found := false
	w.store.Each(a.Side.Opponent(), func(_ Handle, s *Structure) {
		c := w.board.CellCenter(s.Cell)
		if d := c.Sub(a.Pos).LenSq(); d < best {
			best, at, found = d, c, true
		}
	})
	return at, found
}

// updateAgents ages, steers and detonates every agent.
func (w *World) updateAgents(dt float64) {
	live := w.agents[:0]
	for _, a := range w.agents {
		if !a.Alive {
			continue
		}
		a.Prev = a.Pos
		a.Age += dt
		if a.Age >= a.Life {
			w.expire(a)
			continue
		}
		if goal, ok := w.nearestOpponentStructure(a); ok {
			a.Target = Some(goal)
			d := goal.Sub(a.Pos)
			if d.LenSq() > 1e-4 {
				step := math.Min(a.Speed*dt, d.Len())
				w.moveWithCollision(a, d.WithLen(step))
			}
		} else {
			a.Target = Maybe[Vec2]{}
		}
		w.paintTrail(a, dt)
		if w.checkContact(a) {
			continue
		}
		live = append(live, a)
	}
	for i := len(live); i < len(w.agents); i++ {
		w.agents[i] = nil
	}
	w.agents = live
}
