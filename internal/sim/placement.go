package sim

import (
	"errors"
	"fmt"
)

// Placement rejections, checked in this order.
var (
	ErrNotBuildable      = errors.New("type cannot be built")
	ErrOutOfBounds       = errors.New("out of bounds")
	ErrNotFloor          = errors.New("not a floor tile")
	ErrOwnStructure      = errors.New("own structure already there")
	ErrEnemyStructure    = errors.New("enemy structure already there")
	ErrNotOwnPaint       = errors.New("tile not painted by placing side")
	ErrInsufficientFunds = errors.New("insufficient funds")
)

// CanPlace reports the first reason side may not build typ at c, or nil.
func (w *World) CanPlace(side Side, typ StructureType, c Cell) error {
	if typ >= structureTypeCount || !w.specs.Spec(typ).Buildable() {
		return ErrNotBuildable
	}
	if !w.board.InBounds(c) {
		return ErrOutOfBounds
	}
	if w.board.KindAt(c) != TileFloor {
		return ErrNotFloor
	}
	if w.board.Occupied(side, c) {
		return ErrOwnStructure
	}
	if w.board.Occupied(side.Opponent(), c) {
		return ErrEnemyStructure
	}
	if !w.board.ownsForPlacement(side, c) {
		return ErrNotOwnPaint
	}
	if w.funds[side] < w.specs.Spec(typ).Cost {
		return ErrInsufficientFunds
	}
	return nil
}

// Place buys typ for side at c. A SideB spawner releases its first agent at
// once.
func (w *World) Place(side Side, typ StructureType, c Cell) error {
	if err := w.CanPlace(side, typ, c); err != nil {
		return fmt.Errorf("place %s at %v: %w", typ, c, err)
	}
	spec := w.specs.Spec(typ)
	w.funds[side] -= spec.Cost
	h := w.addStructure(side, typ, c)
	st := w.stats.Side(side)
	st.Placed++
	st.Spent += spec.Cost

	pos := w.board.CellCenter(c)
	w.fx.Burst(Burst{Kind: BurstPlace, Side: side, Pos: pos})
	w.fx.Play(SoundPlace)
	if s, ok := w.store.Get(h); ok {
		w.record(structureLabel(s), side, "place", "built", h.String(), float64(spec.Cost))
	}
	if side == SideB && spec.Fire == FireSpawn {
		w.spawnAgent(pos)
	}
	return nil
}

// addStructure stores a full-health typ for side at c and indexes it. It does
// not check anything.
func (w *World) addStructure(side Side, typ StructureType, c Cell) Handle {
	spec := w.specs.Spec(typ)
	h := w.store.Add(Structure{
		Owner:    side,
		Type:     typ,
		Cell:     c,
		HP:       spec.MaxHP,
		NextFire: neverFires,
	})
	w.board.setOccupant(side, c, h)
	return h
}

// PlaceAI runs one automatic placement pass for side: it repeatedly draws an
// affordable type from the rules' bag and tries random cells in side's half
// of the board until funds or tries run out. A board with no interior
// columns or rows on side's half places nothing.
func (w *World) PlaceAI(side Side) int {
	ai := w.rules.AI
	minCost := -1
	for _, e := range ai.Bag {
		typ, ok := ParseStructureType(e.Type)
		if !ok {
			continue
		}
		if cost := w.specs.Spec(typ).Cost; minCost < 0 || cost < minCost {
			minCost = cost
		}
	}
	if minCost < 0 {
		return 0
	}

	x0, x1 := w.aiColumns(side)
	rows := w.board.Rows - 2
	if x1 < x0 || rows < 1 {
		w.record("AI", side, "place", "pass", "board too small", float64(w.funds[side]))
		return 0
	}
	placed := 0
	for try := 0; try < ai.Tries; try++ {
		if w.funds[side] < minCost {
			break
		}
		bag := w.aiBag(side)
		if len(bag) == 0 {
			break
		}
		pick := bag[w.rng.Intn(len(bag))]
		for k := 0; k < ai.CellAttempts; k++ {
			c := Cell{
				X: x0 + w.rng.Intn(x1-x0+1),
				Y: 1 + w.rng.Intn(rows),
			}
			if w.CanPlace(side, pick, c) != nil {
				continue
			}
			if err := w.Place(side, pick, c); err == nil {
				placed++
			}
			break
		}
	}
	w.record("AI", side, "place", "pass", fmt.Sprintf("%d placed", placed), float64(w.funds[side]))
	return placed
}

// aiColumns returns the inclusive column range side's AI builds in.
func (w *World) aiColumns(side Side) (int, int) {
	half := w.board.Cols / 2
	if side == SideB {
		return half + 1, w.board.Cols - 2
	}
	return 1, half - 2
}

// aiBag lists the types side can afford this draw. Entries with a chance are
// only included when the roll succeeds.
func (w *World) aiBag(side Side) []StructureType {
	var bag []StructureType
	for _, e := range w.rules.AI.Bag {
		typ, ok := ParseStructureType(e.Type)
		if !ok {
			continue
		}
		spec := w.specs.Spec(typ)
		if side == SideA && spec.Fire == FireSpawn {
			continue
		}
		if w.stage < e.MinStage || w.funds[side] < spec.Cost {
			continue
		}
		if e.Chance > 0 && w.rng.Float64() >= e.Chance {
			continue
		}
		bag = append(bag, typ)
	}
	return bag
}
