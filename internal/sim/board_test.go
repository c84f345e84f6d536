package sim

import (
	"math"
	"math/rand"
	"testing"
)

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestBoard_PaintStaysClamped(t *testing.T) {
	b := NewBoard(6, 4, Vec2{}, 32)
	b.SetTile(Cell{X: 2, Y: 2}, Tile{Kind: TileWall, Paint: neutralPaint})
	rng := rand.New(rand.NewSource(9)) // #nosec G404 -- test
	for i := 0; i < 5000; i++ {
		c := Cell{X: rng.Intn(8) - 1, Y: rng.Intn(6) - 1}
		b.ApplyPaint(c, rng.Float64()*3-1.5)
	}
	for i, tl := range b.Tiles {
		if tl.Paint < 0 || tl.Paint > 1 {
			t.Fatalf("tile %d paint %v escaped [0,1]", i, tl.Paint)
		}
	}
	if p := b.PaintAt(Cell{X: 2, Y: 2}); p != neutralPaint {
		t.Errorf("wall paint = %v, want %v", p, neutralPaint)
	}
}

func TestBoard_OffBoardReadsAreDefaults(t *testing.T) {
	b := NewBoard(4, 4, Vec2{}, 32)
	off := Cell{X: -1, Y: 7}
	if b.At(off) != nil {
		t.Error("At off-board should be nil")
	}
	if b.KindAt(off) != TileWall {
		t.Errorf("KindAt off-board = %v, want wall", b.KindAt(off))
	}
	if b.PaintAt(off) != neutralPaint {
		t.Errorf("PaintAt off-board = %v, want neutral", b.PaintAt(off))
	}
	if b.Occupant(SideA, off).Valid() {
		t.Error("Occupant off-board should be the zero handle")
	}
	if !b.IsWallAt(Vec2{X: -5, Y: 10}) {
		t.Error("points left of the grid should read as wall")
	}
}

func TestBoard_ScreenToCellRoundTrip(t *testing.T) {
	b := NewBoard(10, 6, Vec2{X: 40, Y: 20}, 32)
	for y := 0; y < b.Rows; y++ {
		for x := 0; x < b.Cols; x++ {
			c := Cell{X: x, Y: y}
			got, ok := b.ScreenToCell(b.CellCenter(c))
			if !ok || got != c {
				t.Fatalf("ScreenToCell(CellCenter(%v)) = %v,%v", c, got, ok)
			}
		}
	}
	if _, ok := b.ScreenToCell(Vec2{X: 39, Y: 30}); ok {
		t.Error("point left of origin should be off-grid")
	}
	if _, ok := b.ScreenToCell(Vec2{X: 40 + 320, Y: 30}); ok {
		t.Error("point on the right edge should be off-grid")
	}
	tl, size := b.CellRect(Cell{X: 1, Y: 2})
	if tl != (Vec2{X: 72, Y: 84}) || size != 32 {
		t.Errorf("CellRect = %v,%v", tl, size)
	}
}

func TestBoard_OwnershipUsesStrictBands(t *testing.T) {
	b := NewBoard(5, 1, Vec2{}, 32)
	paints := []float64{0.61, 0.60, 0.50, 0.40, 0.39}
	for x, p := range paints {
		b.SetTile(Cell{X: x}, Tile{Kind: TileFloor, Paint: p})
	}
	a, bs := b.Ownership()
	if !approx(a, 0.2) || !approx(bs, 0.2) {
		t.Errorf("Ownership = %v,%v, want 0.2,0.2", a, bs)
	}
}

func TestBoard_TargetingAndPlacementBandsDiffer(t *testing.T) {
	b := NewBoard(1, 1, Vec2{}, 32)
	c := Cell{}
	b.SetTile(c, Tile{Kind: TileFloor, Paint: 0.44})
	if !b.enemyish(SideA, c) {
		t.Error("0.44 should look hostile to side a")
	}
	if !b.ownsForPlacement(SideB, c) {
		t.Error("side b should build on 0.44")
	}
	b.SetTile(c, Tile{Kind: TileFloor, Paint: 0.56})
	if !b.enemyish(SideB, c) || !b.ownsForPlacement(SideA, c) {
		t.Error("0.56 should be hostile to b and buildable for a")
	}
	b.SetTile(c, Tile{Kind: TileFloor, Paint: 0.50})
	if b.enemyish(SideA, c) || b.enemyish(SideB, c) {
		t.Error("neutral paint is nobody's enemy")
	}
}
