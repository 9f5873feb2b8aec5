// Package analysis derives navigation metrics from a finished layout:
// room reachability costs, the walkable tile region, and traversal
// counts over the room and door graph.
package analysis

import (
	"sort"

	"github.com/DiceT/ruins-and-realms-sub003/internal/dungeon"
	"github.com/DiceT/ruins-and-realms-sub003/internal/grid"
)

// Unreachable marks rooms with no path from the entrance.
const Unreachable = dungeon.UnreachableCost

// Result holds the derived metrics. All maps are keyed by room or
// exit id; the corridor pseudo-node never appears in them.
type Result struct {
	// RoomCosts is the exit-graph distance from the entrance to each
	// room, Unreachable when no path exists.
	RoomCosts map[int]int

	// WalkableTiles is the floor region reachable on foot from the
	// entrance stairs.
	WalkableTiles grid.Set

	// RoomTraversals counts, per room, how many entrance-to-room
	// shortest paths pass through it, destinations included.
	RoomTraversals map[int]int

	// DoorTraversals counts the same over exits.
	DoorTraversals map[int]int
}

// edge is one usable exit in the room graph.
type edge struct {
	to     int
	exitID int
}

// Analyze computes the full metric set for a layout.
func Analyze(data *dungeon.DungeonData) *Result {
	adj := buildGraph(data)
	start := data.EntranceNode()

	parent, parentExit, dist := bfs(adj, start)

	res := &Result{
		RoomCosts:      make(map[int]int, len(data.Rooms)),
		WalkableTiles:  walkableTiles(data),
		RoomTraversals: make(map[int]int),
		DoorTraversals: make(map[int]int),
	}

	for _, r := range data.Rooms {
		if d, ok := dist[r.ID]; ok {
			res.RoomCosts[r.ID] = d
		} else {
			res.RoomCosts[r.ID] = Unreachable
		}
	}

	// Walk each reachable room's shortest path back to the entrance,
	// counting every room and door along the way. The corridor
	// pseudo-node carries no count.
	for _, r := range data.Rooms {
		if _, ok := dist[r.ID]; !ok {
			continue
		}
		node := r.ID
		for node != start {
			if node >= 0 {
				res.RoomTraversals[node]++
			}
			res.DoorTraversals[parentExit[node]]++
			node = parent[node]
		}
		if start >= 0 {
			res.RoomTraversals[start]++
		}
	}

	return res
}

// buildGraph collects the bidirectional room adjacency, corridor
// included as a single node. Unresolved exits contribute nothing.
func buildGraph(data *dungeon.DungeonData) map[int][]edge {
	adj := make(map[int][]edge)
	for _, r := range data.Rooms {
		for _, e := range r.Exits {
			if !e.Resolved() {
				continue
			}
			adj[r.ID] = append(adj[r.ID], edge{to: e.ConnectedRoomID, exitID: e.ID})
			adj[e.ConnectedRoomID] = append(adj[e.ConnectedRoomID], edge{to: r.ID, exitID: e.ID})
		}
	}
	// Sorted adjacency makes the BFS parent choice, and with it the
	// traversal counts, independent of map iteration order.
	for node := range adj {
		edges := adj[node]
		sort.Slice(edges, func(i, j int) bool {
			if edges[i].to != edges[j].to {
				return edges[i].to < edges[j].to
			}
			return edges[i].exitID < edges[j].exitID
		})
	}
	return adj
}

// bfs runs a breadth-first search from the start node and returns the
// parent tree, the exit taken into each node, and the distances.
func bfs(adj map[int][]edge, start int) (parent, parentExit, dist map[int]int) {
	parent = make(map[int]int)
	parentExit = make(map[int]int)
	dist = map[int]int{start: 0}

	queue := []int{start}
	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]
		for _, e := range adj[node] {
			if _, seen := dist[e.to]; seen {
				continue
			}
			dist[e.to] = dist[node] + 1
			parent[e.to] = node
			parentExit[e.to] = e.exitID
			queue = append(queue, e.to)
		}
	}
	return parent, parentExit, dist
}

// walkableTiles flood-fills the floor from the entrance stairs with
// four-directional movement.
func walkableTiles(data *dungeon.DungeonData) grid.Set {
	reached := grid.NewSet()
	if !data.Walkable(data.Entrance) {
		return reached
	}

	reached.Add(data.Entrance)
	queue := []grid.Point{data.Entrance}
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		for _, dir := range grid.AllDirections() {
			next := p.Step(dir)
			if reached.Has(next) || !data.Walkable(next) {
				continue
			}
			reached.Add(next)
			queue = append(queue, next)
		}
	}
	return reached
}
