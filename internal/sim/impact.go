package sim

import "math"

const (
	// aoeEpsilon keeps the falloff weight positive at the rim.
	aoeEpsilon = 0.001

	// Falloff floors: paint keeps at least half its strength at the rim,
	// damage at least sixty percent.
	aoePaintFloor  = 0.5
	aoeDamageFloor = 0.6

	// captureNudge is the paint pushed toward the capturing side.
	captureNudge = 0.20
)

// impact resolves p arriving at c.
func (w *World) impact(p *Projectile, c Cell) {
	sign := p.Owner.PaintSign()
	pos := w.board.CellCenter(c)
	w.stats.Side(p.Owner).Impacts++
	if p.AoE > 0 {
		w.applyAreaOfEffect(c, p.AoE, sign*p.Paint, p.Damage, p.Owner)
		w.fx.Burst(Burst{Kind: BurstImpactArea, Side: p.Owner, Pos: pos})
		w.fx.Shake(7, 0.12)
		w.hitStopAtLeast(0.02)
		return
	}
	w.board.ApplyPaint(c, sign*p.Paint)
	if p.Damage > 0 {
		w.applyDamage(c, p.Damage, p.Owner)
	}
	w.fx.Burst(Burst{Kind: BurstImpact, Side: p.Owner, Pos: pos})
	w.fx.Shake(3, 0.06)
}

// AreaWeight is the linear falloff of an area effect of radius r at squared
// cell distance d2: 1 at the centre, approaching 0 at the rim.
func AreaWeight(d2, r int) float64 {
	return 1 - math.Sqrt(float64(d2))/(float64(r)+aoeEpsilon)
}

// applyAreaOfEffect paints and damages every cell within radius of center.
// paintDelta is already signed toward the attacker.
func (w *World) applyAreaOfEffect(center Cell, radius int, paintDelta, damage float64, attacker Side) {
	r2 := radius * radius
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			d2 := dx*dx + dy*dy
			if d2 > r2 {
				continue
			}
			c := Cell{X: center.X + dx, Y: center.Y + dy}
			if !w.board.InBounds(c) {
				continue
			}
			wt := AreaWeight(d2, radius)
			w.board.ApplyPaint(c, paintDelta*(aoePaintFloor+(1-aoePaintFloor)*wt))
			if damage > 0 {
				w.applyDamage(c, damage*(aoeDamageFloor+(1-aoeDamageFloor)*wt), attacker)
			}
		}
	}
}

// applyDamage hurts the opponent structure at c. It reports whether the hit
// took the structure down. Cells without a live opponent structure are left
// alone.
func (w *World) applyDamage(c Cell, amount float64, attacker Side) bool {
	victim := attacker.Opponent()
	h := w.board.Occupant(victim, c)
	s, ok := w.store.Get(h)
	if !ok {
		return false
	}
	s.HP -= amount
	w.fx.Play(SoundHit)
	if s.HP > 0 {
		return false
	}

	label := structureLabel(s)
	typ := s.Type
	spec := w.specs.Spec(typ)
	w.store.Kill(h)
	w.board.clearOccupant(victim, c)
	w.stats.Side(victim).Lost++

	if spec.Capturable() {
		nh := w.store.Add(Structure{
			Owner: attacker,
			Type:  typ,
			Cell:  c,
			HP:    spec.MaxHP,
		})
		w.board.setOccupant(attacker, c, nh)
		ns, _ := w.store.Get(nh)
		w.scheduleCaptured(ns)
		w.stats.Side(attacker).Captures++
		w.record(label, victim, "capture", "captured", attacker.String(), 0)
	} else {
		w.record(label, victim, "capture", "destroyed", attacker.String(), 0)
	}

	w.board.ApplyPaint(c, attacker.PaintSign()*captureNudge)
	w.fx.Burst(Burst{Kind: BurstCapture, Side: attacker, Pos: w.board.CellCenter(c)})
	w.fx.Shake(8, 0.15)
	w.hitStopAtLeast(0.04)
	return true
}
