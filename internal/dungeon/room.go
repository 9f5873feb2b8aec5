package dungeon

import "github.com/DiceT/ruins-and-realms-sub003/internal/grid"

// RoomType is the coarse role of a room.
type RoomType int

const (
	RoomNormal RoomType = iota
	RoomStart
)

// String returns the string representation of a RoomType.
func (t RoomType) String() string {
	if t == RoomStart {
		return "start"
	}
	return "normal"
}

// Classification is the fine-grained room class, computed once at
// placement and never recomputed.
type Classification int

const (
	ClassCorridor Classification = iota
	ClassSmall
	ClassMedium
	ClassLarge
	ClassEntrance
	ClassStarter
	ClassExit
)

// String returns the string representation of a Classification.
func (c Classification) String() string {
	switch c {
	case ClassCorridor:
		return "corridor"
	case ClassSmall:
		return "small"
	case ClassMedium:
		return "medium"
	case ClassLarge:
		return "large"
	case ClassEntrance:
		return "entrance"
	case ClassStarter:
		return "starter"
	case ClassExit:
		return "exit"
	default:
		return "unknown"
	}
}

// Classify buckets a room rectangle. The corridor check runs before
// the size buckets: a 1xN room is a corridor no matter its area.
func Classify(bounds grid.Rect) Classification {
	if bounds.Width() == 1 || bounds.Height() == 1 {
		return ClassCorridor
	}
	switch area := bounds.Area(); {
	case area <= 6:
		return ClassSmall
	case area <= 31:
		return ClassMedium
	default:
		return ClassLarge
	}
}

// Exit connection sentinels for Exit.ConnectedRoomID.
const (
	// ExitUnresolved marks an open dead end.
	ExitUnresolved = -1
	// ExitToCorridor marks a connection into the corridor skeleton.
	ExitToCorridor = -2
)

// Exit is a resolved or dangling opening in a room's boundary.
type Exit struct {
	ID     int
	Pos    grid.Point
	Dir    grid.Direction
	RoomID int

	// ConnectedRoomID is the room beyond the exit, ExitToCorridor
	// for corridor connections, or ExitUnresolved for dead ends.
	ConnectedRoomID int
}

// Resolved reports whether the exit leads anywhere.
func (e Exit) Resolved() bool {
	return e.ConnectedRoomID != ExitUnresolved
}

// Room is a finalized dungeon room. Immutable once assembled.
type Room struct {
	ID     int
	Bounds grid.Rect
	Exits  []Exit
	Type   RoomType
	Class  Classification
}

// Center returns the room's central tile.
func (r Room) Center() grid.Point {
	return grid.Point{
		X: (r.Bounds.MinX + r.Bounds.MaxX) / 2,
		Y: (r.Bounds.MinY + r.Bounds.MaxY) / 2,
	}
}

// ObjectType identifies a placed dungeon object.
type ObjectType int

const (
	ObjectEntranceStairs ObjectType = iota
	ObjectExitStairs
	ObjectDoor
	ObjectTrap
)

// String returns the string representation of an ObjectType.
func (t ObjectType) String() string {
	switch t {
	case ObjectEntranceStairs:
		return "entrance_stairs"
	case ObjectExitStairs:
		return "exit_stairs"
	case ObjectDoor:
		return "door"
	case ObjectTrap:
		return "trap"
	default:
		return "unknown"
	}
}

// Object is a deterministic placement on the finished layout.
type Object struct {
	Type ObjectType
	Pos  grid.Point
}
