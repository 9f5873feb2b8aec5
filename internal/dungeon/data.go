// Package dungeon orchestrates the generation phases and assembles
// their output into a finished, immutable layout.
package dungeon

import "github.com/DiceT/ruins-and-realms-sub003/internal/grid"

// DungeonData is the finished layout. Nothing mutates it after
// assembly; consumers treat it as read-only.
type DungeonData struct {
	GridWidth  int
	GridHeight int
	Seed       int64

	Rooms   []Room
	Objects []Object

	// Tiles is indexed [y][x].
	Tiles [][]grid.TileType

	// Heat maps wall positions to their placement score.
	Heat map[grid.Key]int

	// Entrance is the tile holding the entrance stairs.
	Entrance grid.Point

	StartRoomID int
	ExitRoomID  int
}

// RoomByID looks a room up by id.
func (d *DungeonData) RoomByID(id int) (Room, bool) {
	for _, r := range d.Rooms {
		if r.ID == id {
			return r, true
		}
	}
	return Room{}, false
}

// TileAt returns the tile type at a point, TileDead out of bounds.
func (d *DungeonData) TileAt(p grid.Point) grid.TileType {
	if p.X < 0 || p.X >= d.GridWidth || p.Y < 0 || p.Y >= d.GridHeight {
		return grid.TileDead
	}
	return d.Tiles[p.Y][p.X]
}

// Walkable reports whether a tile can be stood on.
func (d *DungeonData) Walkable(p grid.Point) bool {
	t := d.TileAt(p)
	return t == grid.TileLive || t == grid.TileDoor
}

// EntranceNode returns the graph node the entrance stairs sit in: a
// room id when a room absorbed the entrance tile, ExitToCorridor
// otherwise.
func (d *DungeonData) EntranceNode() int {
	for _, r := range d.Rooms {
		if r.Bounds.Contains(d.Entrance) {
			return r.ID
		}
	}
	return ExitToCorridor
}
