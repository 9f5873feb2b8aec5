package grid

// TileType represents what occupies a tile in the final layout.
type TileType int

const (
	TileDead   TileType = iota // Unused/void tile
	TileLive                   // Walkable floor (room or corridor interior)
	TileActive                 // In-flight generation tile (growth heads, debug playback)
	TileWall                   // Wall adjacent to floor
	TileDoor                   // Door placed on a resolved exit
)

// String returns the string representation of a TileType.
func (t TileType) String() string {
	switch t {
	case TileDead:
		return "dead"
	case TileLive:
		return "live"
	case TileActive:
		return "active"
	case TileWall:
		return "wall"
	case TileDoor:
		return "door"
	default:
		return "unknown"
	}
}
