package sim

import "math/rand"

// rangeSlack keeps cells at exactly Range tiles inside the disc despite
// floating-point rounding of the distance.
const rangeSlack = 0.001

// SelectTarget picks the cell a structure of attacker at origin aims at.
//
// Candidates are the cells within rng tiles that the attacker considers
// enemy territory, or, when turretOnly is set, the cells holding an opponent
// structure. One candidate is chosen uniformly. When there is none the shot
// falls back to any non-wall cell in range, and when even that is empty the
// second result is false.
func SelectTarget(b *Board, attacker Side, origin Cell, r *rand.Rand, reach int, turretOnly bool) (Cell, bool) {
	x0 := clampInt(origin.X-reach, 0, b.Cols-1)
	x1 := clampInt(origin.X+reach, 0, b.Cols-1)
	y0 := clampInt(origin.Y-reach, 0, b.Rows-1)
	y1 := clampInt(origin.Y+reach, 0, b.Rows-1)
	limit := float64(reach) + rangeSlack

	var candidates, fallback []Cell
	opponent := attacker.Opponent()
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			c := Cell{X: x, Y: y}
			if TileDist(origin, c) > limit {
				continue
			}
			if b.KindAt(c) != TileWall {
				fallback = append(fallback, c)
			}
			if turretOnly {
				if b.Occupied(opponent, c) {
					candidates = append(candidates, c)
				}
				continue
			}
			if b.enemyish(attacker, c) {
				candidates = append(candidates, c)
			}
		}
	}
	if len(candidates) > 0 {
		return candidates[r.Intn(len(candidates))], true
	}
	if len(fallback) > 0 {
		return fallback[r.Intn(len(fallback))], true
	}
	return Cell{}, false
}
