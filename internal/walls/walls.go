// Package walls rasterizes floor tile sets and derives the wall
// candidates that enclose them.
package walls

import "github.com/DiceT/ruins-and-realms-sub003/internal/grid"

// BuildFloorSet unions every room-interior tile and corridor tile
// into one canonical coordinate set. Pure set union: the result is
// independent of input order.
func BuildFloorSet(roomBounds []grid.Rect, corridor grid.Set) grid.Set {
	floor := grid.NewSet()
	for _, r := range roomBounds {
		for _, p := range r.Points() {
			floor.Add(p)
		}
	}
	for k := range corridor {
		floor[k] = struct{}{}
	}
	return floor
}

// FindWallPositions derives the wall set for a floor set: every
// non-floor 8-neighbor of a floor tile. A 2-tile relaxed bound keeps
// outer-edge walls of rooms touching the grid border.
func FindWallPositions(floor grid.Set, width, height int) grid.Set {
	walls := grid.NewSet()

	for k := range floor {
		p := k.Unpack()
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				if dx == 0 && dy == 0 {
					continue
				}
				n := p.Add(dx, dy)
				if n.X < -2 || n.X >= width+2 || n.Y < -2 || n.Y >= height+2 {
					continue
				}
				if floor.Has(n) {
					continue
				}
				walls.Add(n)
			}
		}
	}

	return walls
}

// CalculateWalls composes floor-set building and wall derivation.
// The returned sets are disjoint.
func CalculateWalls(roomBounds []grid.Rect, corridor grid.Set, width, height int) (floor, walls grid.Set) {
	floor = BuildFloorSet(roomBounds, corridor)
	walls = FindWallPositions(floor, width, height)
	return floor, walls
}
