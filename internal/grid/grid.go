package grid

import (
	"fmt"
	"sort"
)

// Point is a tile coordinate on the generation grid.
type Point struct {
	X, Y int
}

// String returns the point as "x,y".
func (p Point) String() string {
	return fmt.Sprintf("%d,%d", p.X, p.Y)
}

// Add returns the point offset by dx, dy.
func (p Point) Add(dx, dy int) Point {
	return Point{X: p.X + dx, Y: p.Y + dy}
}

// Step returns the neighboring point in the given direction.
func (p Point) Step(dir Direction) Point {
	dx, dy := dir.Delta()
	return Point{X: p.X + dx, Y: p.Y + dy}
}

// Key is a packed integer coordinate key. Two points are equal iff
// their keys are equal, and key ordering sorts by Y then X, which
// gives map iteration an obvious deterministic replacement (sort the
// keys) instead of depending on insertion order.
type Key int64

// PackKey converts a point to its packed key. X is offset into the
// unsigned range so that key order matches Y-then-X order even for
// negative coordinates.
func PackKey(p Point) Key {
	return Key(int64(p.Y)<<32 | int64(uint32(p.X)^0x80000000))
}

// Unpack converts a key back to its point.
func (k Key) Unpack() Point {
	return Point{X: int(int32(uint32(k) ^ 0x80000000)), Y: int(int64(k) >> 32)}
}

// Direction is a cardinal direction on the grid.
type Direction int

const (
	North Direction = iota
	East
	South
	West
)

// String returns the string representation of a Direction.
func (d Direction) String() string {
	switch d {
	case North:
		return "north"
	case East:
		return "east"
	case South:
		return "south"
	case West:
		return "west"
	default:
		return "unknown"
	}
}

// Opposite returns the opposite direction.
func (d Direction) Opposite() Direction {
	switch d {
	case North:
		return South
	case East:
		return West
	case South:
		return North
	case West:
		return East
	default:
		return d
	}
}

// Left returns the direction after a 90-degree left turn.
func (d Direction) Left() Direction {
	switch d {
	case North:
		return West
	case West:
		return South
	case South:
		return East
	case East:
		return North
	default:
		return d
	}
}

// Right returns the direction after a 90-degree right turn.
func (d Direction) Right() Direction {
	return d.Left().Opposite()
}

// Delta returns the x/y step for the direction.
func (d Direction) Delta() (int, int) {
	switch d {
	case North:
		return 0, -1
	case East:
		return 1, 0
	case South:
		return 0, 1
	case West:
		return -1, 0
	}
	return 0, 0
}

// Horizontal reports whether the direction runs along the X axis.
func (d Direction) Horizontal() bool {
	return d == East || d == West
}

// AllDirections returns all four cardinal directions.
func AllDirections() []Direction {
	return []Direction{North, East, South, West}
}

// Rect is an inclusive tile-aligned rectangle.
type Rect struct {
	MinX, MinY, MaxX, MaxY int
}

// RectAt returns a 1x1 rectangle covering a single point.
func RectAt(p Point) Rect {
	return Rect{MinX: p.X, MinY: p.Y, MaxX: p.X, MaxY: p.Y}
}

// Width returns the rectangle width in tiles.
func (r Rect) Width() int {
	return r.MaxX - r.MinX + 1
}

// Height returns the rectangle height in tiles.
func (r Rect) Height() int {
	return r.MaxY - r.MinY + 1
}

// Area returns the number of tiles the rectangle covers.
func (r Rect) Area() int {
	return r.Width() * r.Height()
}

// Contains reports whether the point lies inside the rectangle.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.MinX && p.X <= r.MaxX && p.Y >= r.MinY && p.Y <= r.MaxY
}

// Intersects reports whether two rectangles share at least one tile.
func (r Rect) Intersects(o Rect) bool {
	return r.MinX <= o.MaxX && o.MinX <= r.MaxX && r.MinY <= o.MaxY && o.MinY <= r.MaxY
}

// Grow returns the rectangle expanded by one tile on the given edge.
func (r Rect) Grow(dir Direction) Rect {
	switch dir {
	case North:
		r.MinY--
	case East:
		r.MaxX++
	case South:
		r.MaxY++
	case West:
		r.MinX--
	}
	return r
}

// Edge returns the points along the rectangle edge facing dir.
func (r Rect) Edge(dir Direction) []Point {
	var pts []Point
	switch dir {
	case North:
		for x := r.MinX; x <= r.MaxX; x++ {
			pts = append(pts, Point{X: x, Y: r.MinY})
		}
	case South:
		for x := r.MinX; x <= r.MaxX; x++ {
			pts = append(pts, Point{X: x, Y: r.MaxY})
		}
	case West:
		for y := r.MinY; y <= r.MaxY; y++ {
			pts = append(pts, Point{X: r.MinX, Y: y})
		}
	case East:
		for y := r.MinY; y <= r.MaxY; y++ {
			pts = append(pts, Point{X: r.MaxX, Y: y})
		}
	}
	return pts
}

// Points returns every point inside the rectangle, row by row.
func (r Rect) Points() []Point {
	pts := make([]Point, 0, r.Area())
	for y := r.MinY; y <= r.MaxY; y++ {
		for x := r.MinX; x <= r.MaxX; x++ {
			pts = append(pts, Point{X: x, Y: y})
		}
	}
	return pts
}

// Set is an unordered set of tile coordinates.
type Set map[Key]struct{}

// NewSet returns an empty coordinate set.
func NewSet() Set {
	return make(Set)
}

// Add inserts a point into the set.
func (s Set) Add(p Point) {
	s[PackKey(p)] = struct{}{}
}

// Has reports whether the set contains the point.
func (s Set) Has(p Point) bool {
	_, ok := s[PackKey(p)]
	return ok
}

// Remove deletes a point from the set.
func (s Set) Remove(p Point) {
	delete(s, PackKey(p))
}

// Len returns the number of points in the set.
func (s Set) Len() int {
	return len(s)
}

// SortedKeys returns the set's keys in Y-then-X order. Iterating a Go
// map is randomized, so every consumer that cares about reproducible
// output walks the set through this.
func (s Set) SortedKeys() []Key {
	keys := make([]Key, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// SortedPoints returns the set's points in Y-then-X order.
func (s Set) SortedPoints() []Point {
	keys := s.SortedKeys()
	pts := make([]Point, len(keys))
	for i, k := range keys {
		pts[i] = k.Unpack()
	}
	return pts
}

// Intersect returns the points present in both sets.
func (s Set) Intersect(o Set) Set {
	out := NewSet()
	for k := range s {
		if _, ok := o[k]; ok {
			out[k] = struct{}{}
		}
	}
	return out
}
