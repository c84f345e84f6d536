package sim

import "fmt"

// Starting paint of the three bands of a fresh stage.
const (
	homePaintA   = 0.80
	homePaintB   = 0.20
	initialPaint = 0.20 // under side B's pre-built structures
)

// BuildStage throws away the current battle and lays out stage n from the
// rules: walls, headquarters, side B's initial structures and both sides'
// starting funds.
func (w *World) BuildStage(n int) error {
	if n < 1 {
		n = 1
	}
	layout := w.rules.Stage.Layout
	b := w.board
	if len(layout) != b.Rows {
		return fmt.Errorf("build stage %d: layout has %d rows, board has %d", n, len(layout), b.Rows)
	}

	b.Reset()
	w.store.Reset()
	clear(w.projectiles)
	w.projectiles = w.projectiles[:0]
	clear(w.agents)
	w.agents = w.agents[:0]
	w.player = nil
	w.hq = [sideCount]Handle{}

	var hqCell [sideCount]Maybe[Cell]
	left, right := b.Cols/2-2, b.Cols/2+1
	for y, row := range layout {
		for x := 0; x < b.Cols; x++ {
			c := Cell{X: x, Y: y}
			ch := byte('.')
			if x < len(row) {
				ch = row[x]
			}
			switch ch {
			case '0':
				b.SetTile(c, Tile{Kind: TileWall, Paint: neutralPaint})
				continue
			case 'P':
				hqCell[SideA] = Some(c)
			case 'E':
				hqCell[SideB] = Some(c)
			}
			paint := neutralPaint
			if x < left {
				paint = homePaintA
			} else if x > right {
				paint = homePaintB
			}
			b.SetTile(c, Tile{Kind: TileFloor, Paint: paint})
		}
	}

	for side := SideA; side < sideCount; side++ {
		c, ok := hqCell[side].Get()
		if !ok {
			return fmt.Errorf("build stage %d: no headquarters for side %s", n, side)
		}
		kind, paint := TileHQA, 1.0
		if side == SideB {
			kind, paint = TileHQB, 0.0
		}
		b.SetTile(c, Tile{Kind: kind, Paint: paint})
		w.hq[side] = w.addStructure(side, StructureHQ, c)
	}

	for _, p := range w.rules.Stage.Initial {
		if p.MinStage > n {
			continue
		}
		typ, ok := ParseStructureType(p.Type)
		if !ok {
			continue
		}
		c := Cell{X: p.X, Y: p.Y}
		if !b.InBounds(c) || b.KindAt(c) != TileFloor || b.Occupied(SideA, c) || b.Occupied(SideB, c) {
			continue
		}
		w.addStructure(SideB, typ, c)
		b.SetTile(c, Tile{Kind: TileFloor, Paint: initialPaint})
	}

	w.stage = n
	w.turn = 1
	w.phase = PhasePlanning
	w.outcome = OutcomeNone
	w.elapsed = 0
	w.remaining = w.rules.Battle.Duration
	w.hitStop = 0
	w.funds[SideA], w.funds[SideB] = w.rules.StartFunds(n)
	w.recordGlobal("stage", "build", fmt.Sprintf("stage %d", n), float64(w.store.Count(SideB, nil)))
	return nil
}
