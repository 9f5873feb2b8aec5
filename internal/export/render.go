package export

import (
	"fmt"
	"strings"

	"github.com/DiceT/ruins-and-realms-sub003/internal/dungeon"
	"github.com/DiceT/ruins-and-realms-sub003/internal/grid"
)

// Tile glyphs for the text render.
const (
	glyphDead     = ' '
	glyphFloor    = '.'
	glyphWall     = '#'
	glyphDoor     = '+'
	glyphEntrance = '<'
	glyphExit     = '>'
	glyphTrap     = '^'
)

// Render draws the layout as one character per tile, objects painted
// over the floor.
func Render(data *dungeon.DungeonData) string {
	rows := make([][]rune, data.GridHeight)
	for y := range rows {
		rows[y] = make([]rune, data.GridWidth)
		for x := range rows[y] {
			switch data.Tiles[y][x] {
			case grid.TileLive, grid.TileActive:
				rows[y][x] = glyphFloor
			case grid.TileWall:
				rows[y][x] = glyphWall
			case grid.TileDoor:
				rows[y][x] = glyphDoor
			default:
				rows[y][x] = glyphDead
			}
		}
	}

	for _, obj := range data.Objects {
		p := obj.Pos
		if p.X < 0 || p.X >= data.GridWidth || p.Y < 0 || p.Y >= data.GridHeight {
			continue
		}
		switch obj.Type {
		case dungeon.ObjectEntranceStairs:
			rows[p.Y][p.X] = glyphEntrance
		case dungeon.ObjectExitStairs:
			rows[p.Y][p.X] = glyphExit
		case dungeon.ObjectTrap:
			rows[p.Y][p.X] = glyphTrap
		}
	}

	var out strings.Builder
	out.WriteString(fmt.Sprintf("Dungeon %dx%d (seed %d, %d rooms)\n",
		data.GridWidth, data.GridHeight, data.Seed, len(data.Rooms)))
	out.WriteString(strings.Repeat("=", data.GridWidth) + "\n")
	for _, row := range rows {
		out.WriteString(string(row))
		out.WriteByte('\n')
	}
	return out.String()
}

// Legend describes the render glyphs.
func Legend() string {
	return `
Legend:
  .   Floor (room or corridor)
  #   Wall
  +   Door
  <   Entrance stairs
  >   Exit stairs
  ^   Trap
      Dead space
`
}
