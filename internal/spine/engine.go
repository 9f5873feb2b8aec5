// Package spine grows the branching corridor skeleton every other
// generation phase hangs off.
package spine

import (
	"github.com/DiceT/ruins-and-realms-sub003/internal/config"
	"github.com/DiceT/ruins-and-realms-sub003/internal/grid"
	"github.com/DiceT/ruins-and-realms-sub003/internal/rng"
)

// Tile is one laid tile of the spine skeleton. The sequence order is
// the growth order, preserved for reproducibility and debug playback.
type Tile struct {
	Pos         grid.Point
	Dir         grid.Direction // travel direction when the tile was laid
	IsForkPoint bool
}

// Result is the output of a spine growth run.
type Result struct {
	Tiles     []Tile
	Start     grid.Point
	StartDir  grid.Direction
	ForksUsed int
}

// Raster returns the corridor footprint of the skeleton at the given
// width, clipped to the grid. Each tile dilates into a square of the
// matching radius, which keeps turns and forks gap-free. Every phase
// that treats the corridor as occupied space must use this footprint,
// not the unit-wide skeleton.
func (r *Result) Raster(width, gridWidth, gridHeight int) grid.Set {
	radius := (width - 1) / 2

	set := grid.NewSet()
	for _, t := range r.Tiles {
		for dy := -radius; dy <= radius; dy++ {
			for dx := -radius; dx <= radius; dx++ {
				p := grid.Point{X: t.Pos.X + dx, Y: t.Pos.Y + dy}
				if p.X >= 0 && p.X < gridWidth && p.Y >= 0 && p.Y < gridHeight {
					set.Add(p)
				}
			}
		}
	}
	return set
}

// Config holds the parameters the growth engine consumes.
type Config struct {
	Width, Height int
	MaxForks      int
	ForceStraight bool
	TurnPenalty   int
	BranchPenalty int
	TurnOverride  config.TurnOverride
}

// Engine grows a unit-wide branching path from the grid center under
// a fork budget. All randomness comes from the injected source.
type Engine struct {
	cfg Config
	rng *rng.Source
}

// head is one active growth front.
type head struct {
	pos grid.Point
	dir grid.Direction

	// turnedLeft remembers the side of the head's most recent turn,
	// driving the S (same) and U (alternate) override modes.
	turnedLeft bool
	hasTurned  bool
}

// Weighted-choice action indices.
const (
	actContinue = iota
	actTurn
	actBranch
)

// NewEngine creates a spine growth engine.
func NewEngine(cfg Config, src *rng.Source) *Engine {
	if cfg.Width < 1 {
		cfg.Width = 1
	}
	if cfg.Height < 1 {
		cfg.Height = 1
	}
	return &Engine{cfg: cfg, rng: src}
}

// Grow runs the growth to completion and returns the ordered tile
// sequence. It always yields at least the start tile, whatever the
// configuration.
func (e *Engine) Grow() *Result {
	start := grid.Point{X: e.cfg.Width / 2, Y: e.cfg.Height / 2}
	startDir := grid.AllDirections()[e.rng.Intn(4)]

	res := &Result{
		Tiles:    []Tile{{Pos: start, Dir: startDir}},
		Start:    start,
		StartDir: startDir,
	}

	occupied := grid.NewSet()
	occupied.Add(start)

	// Index into res.Tiles per coordinate, for fork-point marking.
	tileIndex := map[grid.Key]int{grid.PackKey(start): 0}

	heads := []*head{{pos: start, dir: startDir}}

	// Step budget proportional to grid area keeps every run bounded,
	// even when heads wander without self-intersecting.
	budget := e.cfg.Width * e.cfg.Height * 2

	steps := 0
	for len(heads) > 0 && steps < budget {
		alive := make([]*head, 0, len(heads))
		for _, h := range heads {
			if steps >= budget {
				alive = append(alive, h)
				continue
			}
			steps++
			spawned, ok := e.advance(h, res, occupied, tileIndex)
			if ok {
				alive = append(alive, h)
			}
			if spawned != nil {
				alive = append(alive, spawned)
			}
		}
		heads = alive
	}

	return res
}

// advance performs one growth step for a head. It returns a spawned
// branch head, if any, and whether the head survives.
func (e *Engine) advance(h *head, res *Result, occupied grid.Set, tileIndex map[grid.Key]int) (*head, bool) {
	var spawned *head

	switch e.chooseAction(res) {
	case actTurn:
		h.dir = e.turnDirection(h)
	case actBranch:
		spawned = e.branch(h, res, tileIndex)
	}

	next := h.pos.Step(h.dir)

	if !e.inBounds(next) {
		// Redirect along the boundary instead of walking off the
		// grid; a fully blocked head dies.
		redirected, ok := e.redirect(h, occupied)
		if !ok {
			return spawned, false
		}
		h.dir = redirected
		next = h.pos.Step(h.dir)
	}

	if occupied.Has(next) {
		// Self-intersection ends this head.
		return spawned, false
	}

	occupied.Add(next)
	tileIndex[grid.PackKey(next)] = len(res.Tiles)
	res.Tiles = append(res.Tiles, Tile{Pos: next, Dir: h.dir})
	h.pos = next

	return spawned, true
}

// chooseAction picks continue/turn/branch with the configured
// penalty-scaled weights.
func (e *Engine) chooseAction(res *Result) int {
	const base = 100

	turnWeight := base / (1 + e.cfg.TurnPenalty)
	if e.cfg.ForceStraight {
		turnWeight = 0
	}

	branchWeight := 0
	if res.ForksUsed < e.cfg.MaxForks {
		branchWeight = base / (1 + e.cfg.BranchPenalty)
	}

	return e.rng.WeightedChoice([]int{base, turnWeight, branchWeight})
}

// turnDirection resolves which way a head turns, honoring the
// configured override mode.
func (e *Engine) turnDirection(h *head) grid.Direction {
	var left bool
	switch e.cfg.TurnOverride {
	case config.TurnSame:
		if h.hasTurned {
			left = h.turnedLeft
		} else {
			left = e.rng.Chance(0.5)
		}
	case config.TurnAlternate:
		if h.hasTurned {
			left = !h.turnedLeft
		} else {
			left = e.rng.Chance(0.5)
		}
	default: // TurnNone, TurnFree
		left = e.rng.Chance(0.5)
	}

	h.hasTurned = true
	h.turnedLeft = left

	if left {
		return h.dir.Left()
	}
	return h.dir.Right()
}

// branch marks the head's current tile as a fork point and spawns a
// perpendicular head from it.
func (e *Engine) branch(h *head, res *Result, tileIndex map[grid.Key]int) *head {
	if idx, ok := tileIndex[grid.PackKey(h.pos)]; ok {
		res.Tiles[idx].IsForkPoint = true
	}
	res.ForksUsed++

	dir := h.dir.Left()
	if e.rng.Chance(0.5) {
		dir = h.dir.Right()
	}
	return &head{pos: h.pos, dir: dir}
}

// redirect finds a perpendicular in-bounds, unoccupied direction for
// a head that ran into the grid boundary.
func (e *Engine) redirect(h *head, occupied grid.Set) (grid.Direction, bool) {
	first, second := h.dir.Left(), h.dir.Right()
	if e.rng.Chance(0.5) {
		first, second = second, first
	}

	for _, dir := range []grid.Direction{first, second} {
		next := h.pos.Step(dir)
		if e.inBounds(next) && !occupied.Has(next) {
			return dir, true
		}
	}
	return h.dir, false
}

func (e *Engine) inBounds(p grid.Point) bool {
	return p.X >= 0 && p.X < e.cfg.Width && p.Y >= 0 && p.Y < e.cfg.Height
}
