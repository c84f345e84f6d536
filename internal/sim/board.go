package sim

// TileKind identifies what a cell is made of.
type TileKind uint8

const (
	TileFloor TileKind = iota // paintable, buildable
	TileWall                  // blocks actors and direct fire, paint pinned at neutral
	TileHQA                   // side A headquarters footprint
	TileHQB                   // side B headquarters footprint
)

func (k TileKind) String() string {
	switch k {
	case TileFloor:
		return "floor"
	case TileWall:
		return "wall"
	case TileHQA:
		return "hq_a"
	case TileHQB:
		return "hq_b"
	default:
		return "unknown"
	}
}

// Paint bands. They are deliberately distinct; do not merge them.
const (
	neutralPaint = 0.5

	// Ownership counting: paint strictly beyond these counts as owned.
	ownedByAAbove = 0.60
	ownedByBBelow = 0.40

	// Targeting: paint strictly beyond these reads as enemy territory.
	enemyOfABelow = 0.45
	enemyOfBAbove = 0.55

	// Placement: a side may only build on paint strictly beyond these.
	placeableByAAbove = 0.55
	placeableByBBelow = 0.45

	// Win: ownership fraction at or above this ends the battle.
	winOwnership = 0.98
)

// Tile is one cell of the battlefield.
type Tile struct {
	Kind  TileKind
	Paint float64 // 0 = side B, 1 = side A
}

// Board is the grid model: tiles, per-side occupancy and the mapping between
// cells and world coordinates.
type Board struct {
	Cols     int
	Rows     int
	Tiles    []Tile  // row-major, len = Cols*Rows
	Origin   Vec2    // world position of the top-left corner of cell (0,0)
	TileSize float64 // world units per cell
	occ      [sideCount][]Handle
}

// NewBoard creates a neutral floor board.
func NewBoard(cols, rows int, origin Vec2, tileSize float64) *Board {
	b := &Board{
		Cols:     cols,
		Rows:     rows,
		Tiles:    make([]Tile, cols*rows),
		Origin:   origin,
		TileSize: tileSize,
	}
	for s := range b.occ {
		b.occ[s] = make([]Handle, cols*rows)
	}
	b.Reset()
	return b
}

// Reset turns every cell into neutral floor and clears occupancy.
func (b *Board) Reset() {
	for i := range b.Tiles {
		b.Tiles[i] = Tile{Kind: TileFloor, Paint: neutralPaint}
	}
	for s := range b.occ {
		clear(b.occ[s])
	}
}

// CellIndex returns the row-major index of c. Callers check InBounds first.
func (b *Board) CellIndex(c Cell) int {
	return c.Y*b.Cols + c.X
}

// InBounds returns true if c is on the board.
func (b *Board) InBounds(c Cell) bool {
	return c.X >= 0 && c.X < b.Cols && c.Y >= 0 && c.Y < b.Rows
}

// At returns a pointer to the tile at c, or nil if out of bounds.
func (b *Board) At(c Cell) *Tile {
	if !b.InBounds(c) {
		return nil
	}
	return &b.Tiles[b.CellIndex(c)]
}

// KindAt returns the tile kind at c. Off-board reads as wall.
func (b *Board) KindAt(c Cell) TileKind {
	if !b.InBounds(c) {
		return TileWall
	}
	return b.Tiles[b.CellIndex(c)].Kind
}

// PaintAt returns the paint at c. Off-board reads as neutral.
func (b *Board) PaintAt(c Cell) float64 {
	if !b.InBounds(c) {
		return neutralPaint
	}
	return b.Tiles[b.CellIndex(c)].Paint
}

// SetTile overwrites the tile at c.
func (b *Board) SetTile(c Cell, t Tile) {
	if !b.InBounds(c) {
		return
	}
	t.Paint = clamp(t.Paint, 0, 1)
	b.Tiles[b.CellIndex(c)] = t
}

// ApplyPaint adds delta to the paint at c, clamped into [0,1].
// Walls keep their neutral paint.
func (b *Board) ApplyPaint(c Cell, delta float64) {
	t := b.At(c)
	if t == nil || t.Kind == TileWall {
		return
	}
	t.Paint = clamp(t.Paint+delta, 0, 1)
}

// Occupant returns the handle of side's structure at c, or the zero handle.
func (b *Board) Occupant(side Side, c Cell) Handle {
	if !b.InBounds(c) {
		return Handle{}
	}
	return b.occ[side][b.CellIndex(c)]
}

// Occupied reports whether side has a structure at c.
func (b *Board) Occupied(side Side, c Cell) bool {
	return b.Occupant(side, c).Valid()
}

func (b *Board) setOccupant(side Side, c Cell, h Handle) {
	if !b.InBounds(c) {
		return
	}
	b.occ[side][b.CellIndex(c)] = h
}

func (b *Board) clearOccupant(side Side, c Cell) {
	b.setOccupant(side, c, Handle{})
}

// Width and Height of the drawable grid rectangle in world units.
func (b *Board) Width() float64 { return float64(b.Cols) * b.TileSize }
func (b *Board) Height() float64 { return float64(b.Rows) * b.TileSize }

// Contains reports whether p lies inside the grid rectangle.
func (b *Board) Contains(p Vec2) bool {
	return p.X >= b.Origin.X && p.X < b.Origin.X+b.Width() &&
		p.Y >= b.Origin.Y && p.Y < b.Origin.Y+b.Height()
}

// ScreenToCell maps a world point to its cell. Points outside the grid
// rectangle return false.
func (b *Board) ScreenToCell(p Vec2) (Cell, bool) {
	if !b.Contains(p) {
		return Cell{}, false
	}
	c := Cell{
		X: int((p.X - b.Origin.X) / b.TileSize),
		Y: int((p.Y - b.Origin.Y) / b.TileSize),
	}
	if !b.InBounds(c) {
		return Cell{}, false
	}
	return c, true
}

// CellCenter returns the world position of the middle of c.
func (b *Board) CellCenter(c Cell) Vec2 {
	return Vec2{
		X: b.Origin.X + (float64(c.X)+0.5)*b.TileSize,
		Y: b.Origin.Y + (float64(c.Y)+0.5)*b.TileSize,
	}
}

// CellRect returns the top-left corner and edge length of c.
func (b *Board) CellRect(c Cell) (topLeft Vec2, size float64) {
	return Vec2{
		X: b.Origin.X + float64(c.X)*b.TileSize,
		Y: b.Origin.Y + float64(c.Y)*b.TileSize,
	}, b.TileSize
}

// IsWallAt reports whether the world point p is inside a wall. Off-board
// counts as wall.
func (b *Board) IsWallAt(p Vec2) bool {
	c, ok := b.ScreenToCell(p)
	if !ok {
		return true
	}
	return b.Tiles[b.CellIndex(c)].Kind == TileWall
}

// Ownership returns the fraction of all tiles owned by each side.
// Contested tiles between the bands count for neither.
func (b *Board) Ownership() (sideA, sideB float64) {
	if len(b.Tiles) == 0 {
		return 0, 0
	}
	na, nb := 0, 0
	for i := range b.Tiles {
		p := b.Tiles[i].Paint
		if p > ownedByAAbove {
			na++
		} else if p < ownedByBBelow {
			nb++
		}
	}
	total := float64(len(b.Tiles))
	return float64(na) / total, float64(nb) / total
}

// OwnershipOf returns side's owned fraction.
func (b *Board) OwnershipOf(side Side) float64 {
	a, bs := b.Ownership()
	if side == SideA {
		return a
	}
	return bs
}

// enemyish reports whether paint at c looks hostile to attacker.
func (b *Board) enemyish(attacker Side, c Cell) bool {
	p := b.PaintAt(c)
	if attacker == SideA {
		return p < enemyOfABelow
	}
	return p > enemyOfBAbove
}

// ownsForPlacement reports whether side has enough paint at c to build.
func (b *Board) ownsForPlacement(side Side, c Cell) bool {
	p := b.PaintAt(c)
	if side == SideA {
		return p > placeableByAAbove
	}
	return p < placeableByBBelow
}
