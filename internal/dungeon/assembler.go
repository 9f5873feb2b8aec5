package dungeon

import (
	"sort"

	"github.com/DiceT/ruins-and-realms-sub003/internal/grid"
	"github.com/DiceT/ruins-and-realms-sub003/internal/logger"
	"github.com/DiceT/ruins-and-realms-sub003/internal/rng"
	"github.com/DiceT/ruins-and-realms-sub003/internal/walls"
)

// objectStreamSalt separates object placement randomness from the
// growth stream, so assembling twice from one frozen state yields the
// same objects without the phases and the assembler sharing a stream.
const objectStreamSalt = 0x6f626a73

// Assembler turns a frozen generation state into DungeonData. It
// reads the state and nothing else; assembling the same state twice
// produces identical output.
type Assembler struct {
	state *SpineSeedState
}

// NewAssembler creates an assembler over a frozen state.
func NewAssembler(state *SpineSeedState) *Assembler {
	return &Assembler{state: state}
}

// Assemble produces the finished layout.
func (a *Assembler) Assemble() (*DungeonData, error) {
	if !a.state.Frozen() {
		return nil, ErrNotRun
	}
	cfg := a.state.Settings
	w, h := cfg.GridWidth, cfg.GridHeight

	corridor := a.state.Corridor
	roomList := a.buildRooms()
	if err := checkRooms(roomList, w, h); err != nil {
		return nil, err
	}

	bounds := make([]grid.Rect, len(roomList))
	for i, r := range roomList {
		bounds[i] = r.Bounds
	}
	floor, wallSet := walls.CalculateWalls(bounds, corridor, w, h)

	// Wall seeds sit on corridor floor; they join the wall set only
	// when their tile is not already walkable.
	for _, s := range a.state.wallSeeds() {
		if !floor.Has(s.Origin) {
			wallSet.Add(s.Origin)
		}
	}
	if overlap := floor.Intersect(wallSet); overlap.Len() > 0 {
		return nil, invariantErr("floor and wall sets overlap at %d tiles", overlap.Len())
	}

	resolveExits(roomList, corridor)

	entrance := a.state.Spine.Start
	startID := a.pickStartRoom(roomList, entrance)
	costs := roomCosts(roomList, startNode(roomList, entrance))
	exitID := pickExitRoom(roomList, costs, startID)
	applyRoles(roomList, entrance, startID, exitID)

	heat := walls.HeatScores(wallSet, floor, ownerMap(roomList, corridor))

	objects, doors := a.placeObjects(roomList, corridor, entrance, exitID)

	data := &DungeonData{
		GridWidth:   w,
		GridHeight:  h,
		Seed:        a.state.Seed(),
		Objects:     objects,
		Heat:        heat,
		Entrance:    entrance,
		StartRoomID: startID,
		ExitRoomID:  exitID,
	}
	for _, r := range roomList {
		data.Rooms = append(data.Rooms, *r)
	}
	data.Tiles = rasterTiles(w, h, floor, wallSet, doors)

	logger.Debugf("assembled dungeon: %d rooms, %d floor tiles, %d walls, %d objects",
		len(data.Rooms), floor.Len(), wallSet.Len(), len(objects))
	return data, nil
}

// buildRooms converts live seeds into rooms in birth order and
// classifies them once.
func (a *Assembler) buildRooms() []*Room {
	var list []*Room
	for _, s := range a.state.aliveSeeds() {
		r := &Room{
			ID:     len(list),
			Bounds: s.Bounds,
			Type:   RoomNormal,
			Class:  Classify(s.Bounds),
		}
		list = append(list, r)
	}
	return list
}

// checkRooms validates the structural invariants room growth must
// uphold. A violation here is a bug in the growth phases, not bad
// input, so it is fatal.
func checkRooms(roomList []*Room, width, height int) error {
	full := grid.Rect{MinX: 0, MinY: 0, MaxX: width - 1, MaxY: height - 1}
	for i, r := range roomList {
		if r.Bounds.Width() < 1 || r.Bounds.Height() < 1 {
			return invariantErr("room %d has empty bounds %+v", r.ID, r.Bounds)
		}
		if !full.Contains(grid.Point{X: r.Bounds.MinX, Y: r.Bounds.MinY}) ||
			!full.Contains(grid.Point{X: r.Bounds.MaxX, Y: r.Bounds.MaxY}) {
			return invariantErr("room %d escapes the grid: %+v", r.ID, r.Bounds)
		}
		for _, other := range roomList[i+1:] {
			if r.Bounds.Intersects(other.Bounds) {
				return invariantErr("rooms %d and %d overlap", r.ID, other.ID)
			}
		}
	}
	return nil
}

// resolveExits detects openings between adjacent rooms and between
// rooms and the corridor. Rooms grow until they touch, so adjacency
// is direct edge contact. Rooms left without a single connection get
// one unresolved exit to mark them as a generation defect for the
// analysis layer.
func resolveExits(roomList []*Room, corridor grid.Set) {
	nextID := 0
	for _, r := range roomList {
		for _, dir := range grid.AllDirections() {
			outside := r.Bounds.Grow(dir).Edge(dir)

			// Room-to-room openings, created once per pair from the
			// lower-id side.
			for _, other := range roomList {
				if other.ID <= r.ID {
					continue
				}
				mid, ok := contactMidpoint(outside, func(p grid.Point) bool {
					return other.Bounds.Contains(p)
				})
				if !ok {
					continue
				}
				inner := mid.Step(dir.Opposite())
				r.Exits = append(r.Exits, Exit{
					ID: nextID, Pos: inner, Dir: dir,
					RoomID: r.ID, ConnectedRoomID: other.ID,
				})
				nextID++
				other.Exits = append(other.Exits, Exit{
					ID: nextID, Pos: mid, Dir: dir.Opposite(),
					RoomID: other.ID, ConnectedRoomID: r.ID,
				})
				nextID++
			}

			// Corridor openings.
			mid, ok := contactMidpoint(outside, func(p grid.Point) bool {
				return corridor.Has(p) && !insideAnyRoom(roomList, p)
			})
			if ok {
				r.Exits = append(r.Exits, Exit{
					ID: nextID, Pos: mid.Step(dir.Opposite()), Dir: dir,
					RoomID: r.ID, ConnectedRoomID: ExitToCorridor,
				})
				nextID++
			}
		}
	}

	for _, r := range roomList {
		if len(r.Exits) > 0 {
			continue
		}
		r.Exits = append(r.Exits, Exit{
			ID:     nextID,
			Pos:    grid.Point{X: (r.Bounds.MinX + r.Bounds.MaxX) / 2, Y: r.Bounds.MinY},
			Dir:    grid.North,
			RoomID: r.ID, ConnectedRoomID: ExitUnresolved,
		})
		nextID++
	}
}

// contactMidpoint returns the middle point of the contiguous run of
// strip points matching the predicate.
func contactMidpoint(strip []grid.Point, match func(grid.Point) bool) (grid.Point, bool) {
	var contacts []grid.Point
	for _, p := range strip {
		if match(p) {
			contacts = append(contacts, p)
		}
	}
	if len(contacts) == 0 {
		return grid.Point{}, false
	}
	return contacts[len(contacts)/2], true
}

func insideAnyRoom(roomList []*Room, p grid.Point) bool {
	for _, r := range roomList {
		if r.Bounds.Contains(p) {
			return true
		}
	}
	return false
}

// pickStartRoom selects the room nearest the entrance tile; a room
// that absorbed the entrance wins outright. Ties resolve to the
// lowest id. Returns -1 when no rooms survived.
func (a *Assembler) pickStartRoom(roomList []*Room, entrance grid.Point) int {
	best, bestDist := -1, int(^uint(0)>>1)
	for _, r := range roomList {
		if r.Bounds.Contains(entrance) {
			return r.ID
		}
		c := r.Center()
		d := abs(c.X-entrance.X) + abs(c.Y-entrance.Y)
		if d < bestDist {
			best, bestDist = r.ID, d
		}
	}
	return best
}

// startNode returns the graph node the entrance belongs to.
func startNode(roomList []*Room, entrance grid.Point) int {
	for _, r := range roomList {
		if r.Bounds.Contains(entrance) {
			return r.ID
		}
	}
	return ExitToCorridor
}

// UnreachableCost marks rooms with no path from the entrance.
const UnreachableCost = 1 << 30

// roomCosts runs a breadth-first search over the exit graph from the
// entrance node. The corridor counts as a single node.
func roomCosts(roomList []*Room, start int) map[int]int {
	adj := make(map[int][]int)
	link := func(a, b int) {
		adj[a] = append(adj[a], b)
		adj[b] = append(adj[b], a)
	}
	for _, r := range roomList {
		for _, e := range r.Exits {
			if e.ConnectedRoomID == ExitUnresolved || e.ConnectedRoomID < r.ID && e.ConnectedRoomID >= 0 {
				continue
			}
			link(r.ID, e.ConnectedRoomID)
		}
	}

	dist := map[int]int{start: 0}
	queue := []int{start}
	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]
		next := append([]int(nil), adj[node]...)
		sort.Ints(next)
		for _, n := range next {
			if _, seen := dist[n]; seen {
				continue
			}
			dist[n] = dist[node] + 1
			queue = append(queue, n)
		}
	}

	costs := make(map[int]int, len(roomList))
	for _, r := range roomList {
		if d, ok := dist[r.ID]; ok {
			costs[r.ID] = d
		} else {
			costs[r.ID] = UnreachableCost
		}
	}
	return costs
}

// pickExitRoom selects the most distant reachable room other than the
// start room; ties resolve to the lowest id. Falls back to the start
// room when nothing else is reachable.
func pickExitRoom(roomList []*Room, costs map[int]int, startID int) int {
	best, bestCost := startID, -1
	for _, r := range roomList {
		c := costs[r.ID]
		if r.ID == startID || c >= UnreachableCost {
			continue
		}
		if c > bestCost {
			best, bestCost = r.ID, c
		}
	}
	return best
}

// applyRoles stamps the start/exit role overrides onto the classified
// rooms. Role overrides replace the size class; the corridor class is
// never overridden so degenerate 1xN rooms keep their shape class.
func applyRoles(roomList []*Room, entrance grid.Point, startID, exitID int) {
	for _, r := range roomList {
		switch {
		case r.ID == startID:
			r.Type = RoomStart
			if r.Class != ClassCorridor {
				if r.Bounds.Contains(entrance) {
					r.Class = ClassEntrance
				} else {
					r.Class = ClassStarter
				}
			}
		case r.ID == exitID:
			if r.Class != ClassCorridor {
				r.Class = ClassExit
			}
		}
	}
}

// ownerMap labels every floor tile with its owning room id, corridor
// tiles with OwnerCorridor. Absorbed corridor tiles inside a room
// belong to the room.
func ownerMap(roomList []*Room, corridor grid.Set) map[grid.Key]int {
	owners := make(map[grid.Key]int)
	for k := range corridor {
		owners[k] = walls.OwnerCorridor
	}
	for _, r := range roomList {
		for _, p := range r.Bounds.Points() {
			owners[grid.PackKey(p)] = r.ID
		}
	}
	return owners
}

// placeObjects lays down stairs, doors, and traps. Randomized picks
// come from a salted sub-stream of the recorded seed, never from the
// growth stream.
func (a *Assembler) placeObjects(roomList []*Room, corridor grid.Set, entrance grid.Point, exitID int) ([]Object, grid.Set) {
	objRng := rng.New(a.state.Seed() ^ objectStreamSalt)
	doors := grid.NewSet()

	objects := []Object{{Type: ObjectEntranceStairs, Pos: entrance}}

	if exit, ok := findRoom(roomList, exitID); ok {
		objects = append(objects, Object{Type: ObjectExitStairs, Pos: exit.Center()})
	}

	// One door per room-to-room opening, placed on the higher-id side
	// of the pair so each opening yields exactly one door.
	for _, r := range roomList {
		for _, e := range r.Exits {
			if e.ConnectedRoomID >= 0 && e.ConnectedRoomID < r.ID {
				objects = append(objects, Object{Type: ObjectDoor, Pos: e.Pos})
				doors.Add(e.Pos)
			}
		}
	}

	// A few traps on open corridor tiles, away from the stairs.
	candidates := corridor.SortedPoints()
	filtered := candidates[:0]
	for _, p := range candidates {
		if p != entrance && !insideAnyRoom(roomList, p) {
			filtered = append(filtered, p)
		}
	}
	trapCount := objRng.Intn(3)
	for i := 0; i < trapCount && len(filtered) > 0; i++ {
		idx := objRng.Intn(len(filtered))
		objects = append(objects, Object{Type: ObjectTrap, Pos: filtered[idx]})
		filtered = append(filtered[:idx], filtered[idx+1:]...)
	}

	return objects, doors
}

func findRoom(roomList []*Room, id int) (*Room, bool) {
	for _, r := range roomList {
		if r.ID == id {
			return r, true
		}
	}
	return nil, false
}

// rasterTiles paints the final tile grid.
func rasterTiles(width, height int, floor, wallSet, doors grid.Set) [][]grid.TileType {
	tiles := make([][]grid.TileType, height)
	for y := range tiles {
		tiles[y] = make([]grid.TileType, width)
	}
	paint := func(set grid.Set, t grid.TileType) {
		for k := range set {
			p := k.Unpack()
			if p.X >= 0 && p.X < width && p.Y >= 0 && p.Y < height {
				tiles[p.Y][p.X] = t
			}
		}
	}
	paint(floor, grid.TileLive)
	paint(wallSet, grid.TileWall)
	paint(doors, grid.TileDoor)
	return tiles
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
