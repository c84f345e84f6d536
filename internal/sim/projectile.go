package sim

import "math"

// Arc geometry: the apex rises above the midpoint by arcLift plus
// arcLiftPerUnit of the shot's length.
const (
	arcLift        = 60.0
	arcLiftPerUnit = 0.25

	// Spread at or below this is treated as a perfectly accurate weapon.
	spreadThreshold = 0.05
)

// Projectile is one shot in flight. Linear shots move by Vel; arcing shots
// follow the quadratic Bezier Start, Apex, End by progress U.
type Projectile struct {
	Kind  ProjectileKind
	Owner Side
	Pos   Vec2
	Prev  Vec2 // position at the start of the last advance, for tracers
	Vel   Vec2

	Arc       bool
	Start     Vec2
	End       Vec2
	Apex      Vec2
	U         float64
	PathLen   float64
	PathSpeed float64

	Target         Cell
	BlockedByWalls bool
	Indirect       bool
	AoE            int
	Damage         float64
	Paint          float64
	Radius         float64
	Age            float64
	Life           float64
}

// ArcPoint evaluates the arc at progress u, clamped to [0,1].
func (p *Projectile) ArcPoint(u float64) Vec2 {
	u = clamp(u, 0, 1)
	a := (1 - u) * (1 - u)
	b := 2 * (1 - u) * u
	c := u * u
	return Vec2{
		X: a*p.Start.X + b*p.Apex.X + c*p.End.X,
		Y: a*p.Start.Y + b*p.Apex.Y + c*p.End.Y,
	}
}

// shot describes one projectile to launch.
type shot struct {
	kind           ProjectileKind
	owner          Side
	from           Vec2
	target         Cell
	speed          float64
	radius         float64
	arc            bool
	blockedByWalls bool
	indirect       bool
	aoe            int
	damage         float64
	paint          float64
}

// newProjectile builds the flight state for sh on b.
func newProjectile(b *Board, sh shot, life float64) *Projectile {
	to := b.CellCenter(sh.target)
	p := &Projectile{
		Kind:           sh.kind,
		Owner:          sh.owner,
		Pos:            sh.from,
		Prev:           sh.from,
		Target:         sh.target,
		BlockedByWalls: sh.blockedByWalls,
		Indirect:       sh.indirect,
		AoE:            sh.aoe,
		Damage:         sh.damage,
		Paint:          sh.paint,
		Radius:         sh.radius,
		Life:           life,
	}
	d := to.Sub(sh.from)
	if sh.arc {
		dist := d.Len()
		mid := sh.from.Lerp(to, 0.5)
		p.Arc = true
		p.Start = sh.from
		p.End = to
		p.Apex = Vec2{X: mid.X, Y: mid.Y - (arcLift + arcLiftPerUnit*dist)}
		p.PathLen = dist
		p.PathSpeed = sh.speed
		return p
	}
	p.Vel = d.WithLen(sh.speed)
	return p
}

// spawnProjectile launches sh into the world.
func (w *World) spawnProjectile(sh shot) *Projectile {
	p := newProjectile(w.board, sh, w.rules.Battle.ProjectileLife)
	w.projectiles = append(w.projectiles, p)
	w.stats.Side(sh.owner).Projectiles++
	return p
}

// fireOnce performs one activation of the structure behind h.
func (w *World) fireOnce(h Handle) {
	s, ok := w.store.Get(h)
	if !ok {
		return
	}
	spec := w.specs.Spec(s.Type)
	if spec.Shots <= 0 {
		return
	}
	muzzle := w.board.CellCenter(s.Cell)
	switch spec.Fire {
	case FireScatter:
		w.fireScatter(s, spec, muzzle)
	case FireTargeted:
		if !w.fireTargeted(s, spec, muzzle) {
			w.record(structureLabel(s), s.Owner, "fire", "no_target", "", 0)
			return
		}
	default:
		return
	}
	w.stats.Side(s.Owner).Shots++
	w.fx.Burst(Burst{Kind: BurstMuzzle, Side: s.Owner, Pos: muzzle})
	if spec.Sound != SoundNone {
		w.fx.Play(spec.Sound)
	}
}

func (w *World) fireScatter(s *Structure, spec *StructureSpec, muzzle Vec2) {
	sc := spec.Scatter
	for i := 0; i < sc.Count; i++ {
		target := w.scatterCell(s.Cell, spec.Range)
		w.spawnProjectile(shot{
			kind:   spec.Projectile,
			owner:  s.Owner,
			from:   muzzle,
			target: target,
			speed:  spec.ProjectileSpeed,
			radius: spec.ProjectileRadius * sc.RadiusScale,
			damage: spec.Damage * sc.DamageScale,
			paint:  spec.Paint * sc.PaintScale,
		})
	}
	w.recordVerbose(structureLabel(s), s.Owner, "fire", "scatter", "", float64(sc.Count))
}

// scatterCell picks a random on-board cell within reach tiles of origin.
func (w *World) scatterCell(origin Cell, reach int) Cell {
	limit := float64(reach) + rangeSlack
	for try := 0; try < 8; try++ {
		c := Cell{
			X: clampInt(origin.X+w.rng.Intn(2*reach+1)-reach, 0, w.board.Cols-1),
			Y: clampInt(origin.Y+w.rng.Intn(2*reach+1)-reach, 0, w.board.Rows-1),
		}
		if TileDist(origin, c) <= limit {
			return c
		}
	}
	return origin
}

func (w *World) fireTargeted(s *Structure, spec *StructureSpec, muzzle Vec2) bool {
	target, ok := SelectTarget(w.board, s.Owner, s.Cell, w.rng, spec.Range, spec.TurretOnly)
	if !ok {
		return false
	}
	if spec.Spread > spreadThreshold {
		j := int(spec.Spread)
		if j > 0 {
			target.X = clampInt(target.X+w.rng.Intn(2*j+1)-j, 0, w.board.Cols-1)
			target.Y = clampInt(target.Y+w.rng.Intn(2*j+1)-j, 0, w.board.Rows-1)
		}
	}
	w.spawnProjectile(shot{
		kind:           spec.Projectile,
		owner:          s.Owner,
		from:           muzzle,
		target:         target,
		speed:          spec.ProjectileSpeed,
		radius:         spec.ProjectileRadius,
		arc:            spec.Arc,
		blockedByWalls: spec.BlockedByWalls,
		indirect:       spec.Indirect,
		aoe:            spec.AoE,
		damage:         spec.Damage,
		paint:          spec.Paint,
	})
	w.recordVerbose(structureLabel(s), s.Owner, "fire", "shot", target.String(), spec.Damage)
	return true
}

// advanceProjectiles moves every projectile by dt and resolves arrivals.
func (w *World) advanceProjectiles(dt float64) {
	live := w.projectiles[:0]
	for _, p := range w.projectiles {
		if w.advance(p, dt) {
			live = append(live, p)
		}
	}
	for i := len(live); i < len(w.projectiles); i++ {
		w.projectiles[i] = nil
	}
	w.projectiles = live
}

// advance moves p by dt. It returns false once p is gone.
func (w *World) advance(p *Projectile, dt float64) bool {
	p.Prev = p.Pos
	p.Age += dt
	if p.Age > p.Life {
		return false
	}
	if p.Arc {
		return w.advanceArc(p, dt)
	}
	return w.advanceLinear(p, dt)
}

func (w *World) advanceArc(p *Projectile, dt float64) bool {
	p.U += (p.PathSpeed / math.Max(1, p.PathLen)) * dt
	p.Pos = p.ArcPoint(p.U)
	if p.U < 1 {
		return true
	}
	c, ok := w.board.ScreenToCell(p.End)
	if !ok {
		c = p.Target
	}
	w.impact(p, c)
	return false
}

func (w *World) advanceLinear(p *Projectile, dt float64) bool {
	b := w.board
	move := p.Vel.Scale(dt)
	steps := int(math.Ceil(move.Len() / (b.TileSize * 0.5)))
	if steps < 1 {
		steps = 1
	}
	sub := move.Scale(1 / float64(steps))
	for i := 0; i < steps; i++ {
		prev := p.Pos
		next := prev.Add(sub)
		c, onGrid := b.ScreenToCell(next)
		if p.BlockedByWalls && !p.Indirect && onGrid && b.KindAt(c) == TileWall {
			hit, ok := b.ScreenToCell(prev)
			if !ok || b.KindAt(hit) == TileWall {
				hit = c
			}
			w.impact(p, hit)
			return false
		}
		p.Pos = next
		if onGrid && c == p.Target {
			w.impact(p, c)
			return false
		}
	}
	return b.Contains(p.Pos)
}
