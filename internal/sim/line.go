package sim

import "math"

// LineCells returns every cell on the Bresenham line from a to b, both ends
// included, in order from a.
func LineCells(a, b Cell) []Cell {
	x0, y0, x1, y1 := a.X, a.Y, b.X, b.Y
	dx := absInt(x1 - x0)
	dy := -absInt(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy

	out := make([]Cell, 0, max(dx, -dy)+1)
	for {
		out = append(out, Cell{x0, y0})
		if x0 == x1 && y0 == y1 {
			return out
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// RaycastUntilWall walks the line from a toward b and returns the last cell
// before the first wall or off-board cell. If a itself is blocked, a is
// returned.
func RaycastUntilWall(b *Board, from, to Cell) Cell {
	last := from
	for _, c := range LineCells(from, to) {
		if !b.InBounds(c) || b.KindAt(c) == TileWall {
			return last
		}
		last = c
	}
	return last
}

// TileDist is the Euclidean distance between two cells, in cells.
func TileDist(a, b Cell) float64 {
	dx := float64(a.X - b.X)
	dy := float64(a.Y - b.Y)
	return math.Sqrt(dx*dx + dy*dy)
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
