package walls

import (
	"testing"

	"github.com/DiceT/ruins-and-realms-sub003/internal/grid"
)

func TestBuildFloorSetUnions(t *testing.T) {
	corridor := grid.NewSet()
	corridor.Add(grid.Point{X: 5, Y: 5})
	corridor.Add(grid.Point{X: 6, Y: 5})

	rooms := []grid.Rect{
		{MinX: 1, MinY: 1, MaxX: 2, MaxY: 2},
		{MinX: 6, MinY: 5, MaxX: 7, MaxY: 6}, // overlaps a corridor tile
	}

	floor := BuildFloorSet(rooms, corridor)

	if floor.Len() != 4+4+2-1 {
		t.Errorf("floor set has %d tiles, want 9", floor.Len())
	}
	for _, p := range []grid.Point{{X: 1, Y: 1}, {X: 2, Y: 2}, {X: 5, Y: 5}, {X: 7, Y: 6}} {
		if !floor.Has(p) {
			t.Errorf("floor set missing %v", p)
		}
	}
}

func TestFindWallPositionsSurroundsFloor(t *testing.T) {
	floor := grid.NewSet()
	floor.Add(grid.Point{X: 5, Y: 5})

	walls := FindWallPositions(floor, 10, 10)

	// A lone floor tile is ringed by its 8 neighbors.
	if walls.Len() != 8 {
		t.Fatalf("wall set has %d tiles, want 8", walls.Len())
	}
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			if !walls.Has(grid.Point{X: 5 + dx, Y: 5 + dy}) {
				t.Errorf("missing wall at offset (%d,%d)", dx, dy)
			}
		}
	}
}

func TestWallsCaptureOuterEdge(t *testing.T) {
	// Floor flush against the grid origin still gets outer walls via
	// the relaxed bound.
	floor := grid.NewSet()
	floor.Add(grid.Point{X: 0, Y: 0})

	walls := FindWallPositions(floor, 8, 8)

	if !walls.Has(grid.Point{X: -1, Y: 0}) || !walls.Has(grid.Point{X: 0, Y: -1}) {
		t.Error("outer-edge walls beyond the grid boundary missing")
	}
}

func TestFloorAndWallSetsDisjoint(t *testing.T) {
	corridor := grid.NewSet()
	for x := 0; x < 12; x++ {
		corridor.Add(grid.Point{X: x, Y: 6})
	}
	rooms := []grid.Rect{
		{MinX: 2, MinY: 2, MaxX: 5, MaxY: 4},
		{MinX: 7, MinY: 8, MaxX: 10, MaxY: 11},
	}

	floor, walls := CalculateWalls(rooms, corridor, 16, 16)

	if overlap := floor.Intersect(walls); overlap.Len() != 0 {
		t.Errorf("floor and wall sets overlap at %v", overlap.SortedPoints())
	}
}

func TestWallsIndependentOfInputOrder(t *testing.T) {
	corridor := grid.NewSet()
	for x := 3; x < 9; x++ {
		corridor.Add(grid.Point{X: x, Y: 5})
	}
	rooms := []grid.Rect{
		{MinX: 1, MinY: 1, MaxX: 3, MaxY: 3},
		{MinX: 6, MinY: 7, MaxX: 9, MaxY: 9},
		{MinX: 11, MinY: 2, MaxX: 13, MaxY: 4},
	}
	reversed := []grid.Rect{rooms[2], rooms[1], rooms[0]}

	floorA, wallsA := CalculateWalls(rooms, corridor, 16, 16)
	floorB, wallsB := CalculateWalls(reversed, corridor, 16, 16)

	if floorA.Len() != floorB.Len() || wallsA.Len() != wallsB.Len() {
		t.Fatal("set sizes depend on input order")
	}
	for _, p := range floorA.SortedPoints() {
		if !floorB.Has(p) {
			t.Errorf("floor tile %v missing from reversed-order result", p)
		}
	}
	for _, p := range wallsA.SortedPoints() {
		if !wallsB.Has(p) {
			t.Errorf("wall tile %v missing from reversed-order result", p)
		}
	}
}

func TestHeatScoresQualitativeOrdering(t *testing.T) {
	// Two rooms separated by a single wall column, with a corridor
	// row below the first room.
	floor := grid.NewSet()
	owners := make(map[grid.Key]int)

	addOwned := func(r grid.Rect, owner int) {
		for _, p := range r.Points() {
			floor.Add(p)
			owners[grid.PackKey(p)] = owner
		}
	}
	addOwned(grid.Rect{MinX: 2, MinY: 2, MaxX: 4, MaxY: 4}, 0)
	addOwned(grid.Rect{MinX: 6, MinY: 2, MaxX: 8, MaxY: 4}, 1)
	for x := 2; x <= 4; x++ {
		p := grid.Point{X: x, Y: 6}
		floor.Add(p)
		owners[grid.PackKey(p)] = OwnerCorridor
	}

	walls := FindWallPositions(floor, 12, 12)
	scores := HeatScores(walls, floor, owners)

	if len(scores) != walls.Len() {
		t.Fatalf("got %d scores for %d wall candidates", len(scores), walls.Len())
	}

	// The column between the rooms is double-use: best band.
	sharedKey := grid.PackKey(grid.Point{X: 5, Y: 3})
	if scores[sharedKey] != HeatShared {
		t.Errorf("shared wall scored %d, want %d", scores[sharedKey], HeatShared)
	}

	// A diagonal-only contact position is the worst band.
	cornerKey := grid.PackKey(grid.Point{X: 1, Y: 1})
	if scores[cornerKey] != HeatCorner {
		t.Errorf("corner wall scored %d, want %d", scores[cornerKey], HeatCorner)
	}

	// A wall that only touches the corridor is moderately poor.
	spineKey := grid.PackKey(grid.Point{X: 2, Y: 7})
	if scores[spineKey] != HeatSpineAdjacent {
		t.Errorf("spine-adjacent wall scored %d, want %d", scores[spineKey], HeatSpineAdjacent)
	}

	// A plain single-room wall is neutral.
	plainKey := grid.PackKey(grid.Point{X: 3, Y: 1})
	if scores[plainKey] != HeatNeutral {
		t.Errorf("plain wall scored %d, want %d", scores[plainKey], HeatNeutral)
	}

	if !(HeatShared < HeatNeutral && HeatNeutral < HeatSpineAdjacent && HeatSpineAdjacent < HeatCorner) {
		t.Error("heat bands out of qualitative order")
	}
}
