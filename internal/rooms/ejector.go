package rooms

import (
	"github.com/DiceT/ruins-and-realms-sub003/internal/config"
	"github.com/DiceT/ruins-and-realms-sub003/internal/grid"
	"github.com/DiceT/ruins-and-realms-sub003/internal/rng"
	"github.com/DiceT/ruins-and-realms-sub003/internal/spine"
)

// EjectorConfig holds the parameters seed ejection consumes.
type EjectorConfig struct {
	Width, Height int
	SeedCount     int
	Ejection      config.EjectionSettings

	// Symmetry is the percent chance an ejection event is mirrored
	// across the axes whose strict flag is set.
	Symmetry        int
	StrictPrimary   bool
	StrictSecondary bool
	StrictTertiary  bool

	// SpineActsAsWall turns spine-colliding seeds into wall seeds
	// instead of duds.
	SpineActsAsWall bool

	// Manual, when non-empty, replaces automatic ejection entirely.
	Manual []config.ManualSeed
}

// Ejector walks the spine in growth order and decides where room
// seeds land.
type Ejector struct {
	cfg EjectorConfig
	rng *rng.Source
}

// NewEjector creates a seed ejector.
func NewEjector(cfg EjectorConfig, src *rng.Source) *Ejector {
	return &Ejector{cfg: cfg, rng: src}
}

// Eject produces the full seed list for a grown spine. The corridor
// set is the spine's rasterized footprint; a seed landing anywhere on
// it collides, not just on the unit-wide skeleton. Out-of-bounds
// positions are discarded rather than retried, and ejection stops
// silently once the configured seed count is reached.
func (e *Ejector) Eject(res *spine.Result, corridor grid.Set) []*Seed {
	if len(e.cfg.Manual) > 0 {
		return e.ejectManual(corridor)
	}

	var seeds []*Seed

	countdown := e.rng.Between(e.cfg.Ejection.MinInterval, e.cfg.Ejection.MaxInterval)
	for i, tile := range res.Tiles {
		if len(seeds) >= e.cfg.SeedCount {
			break
		}
		if countdown > 0 {
			countdown--
			continue
		}
		countdown = e.rng.Between(e.cfg.Ejection.MinInterval, e.cfg.Ejection.MaxInterval)

		event := e.placeEvent(tile, i, corridor, &seeds)

		// One symmetry roll covers the whole event so both halves of
		// a mirrored pair share their fate.
		if len(event) > 0 && e.rng.Chance(float64(e.cfg.Symmetry)/100) {
			e.mirrorEvent(event, res, corridor, &seeds)
		}
	}

	return seeds
}

// placeEvent ejects the configured number of seeds around one spine
// tile and returns the seeds it placed.
func (e *Ejector) placeEvent(tile spine.Tile, spineIndex int, corridor grid.Set, seeds *[]*Seed) []*Seed {
	var placed []*Seed

	sides := e.resolveSides(tile.Dir)
	for _, sideDir := range sides {
		if len(*seeds) >= e.cfg.SeedCount {
			break
		}

		dist := e.rng.Between(e.cfg.Ejection.MinDistance, e.cfg.Ejection.MaxDistance)
		pos := tile.Pos
		for i := 0; i < dist; i++ {
			pos = pos.Step(sideDir)
		}
		dud := e.rng.Chance(e.cfg.Ejection.DudChance)

		if s := e.place(pos, spineIndex, dud, corridor, seeds); s != nil {
			placed = append(placed, s)
		}
	}

	return placed
}

// resolveSides expands the ejection side setting into one
// perpendicular direction per seed of the event.
func (e *Ejector) resolveSides(travel grid.Direction) []grid.Direction {
	count := e.cfg.Ejection.EjectionCount
	left, right := travel.Left(), travel.Right()

	sides := make([]grid.Direction, 0, count)
	switch e.cfg.Ejection.EjectionSide {
	case config.SideLeft:
		for i := 0; i < count; i++ {
			sides = append(sides, left)
		}
	case config.SideRight:
		for i := 0; i < count; i++ {
			sides = append(sides, right)
		}
	case config.SideBoth:
		// One per side, alternating; odd counts favor the left.
		for i := 0; i < count; i++ {
			if i%2 == 0 {
				sides = append(sides, left)
			} else {
				sides = append(sides, right)
			}
		}
	default: // SideAny: one side chosen uniformly per event
		side := left
		if e.rng.Chance(0.5) {
			side = right
		}
		for i := 0; i < count; i++ {
			sides = append(sides, side)
		}
	}

	return sides
}

// place validates one candidate position and appends the resulting
// seed, if any. The returned seed is nil when the position was
// discarded.
func (e *Ejector) place(pos grid.Point, spineIndex int, dud bool, corridor grid.Set, seeds *[]*Seed) *Seed {
	if pos.X < 0 || pos.X >= e.cfg.Width || pos.Y < 0 || pos.Y >= e.cfg.Height {
		return nil
	}

	// Two seeds on one tile would grow overlapping rooms; later
	// arrivals are discarded like out-of-bounds positions.
	for _, s := range *seeds {
		if s.Origin == pos {
			return nil
		}
	}

	outcome := OutcomeAlive
	switch {
	case corridor.Has(pos) && e.cfg.SpineActsAsWall:
		outcome = OutcomeWall
	case corridor.Has(pos):
		outcome = OutcomeDead
	case dud:
		outcome = OutcomeDead
	}

	s := newSeed(pos, spineIndex, len(*seeds), outcome)
	*seeds = append(*seeds, s)
	return s
}

// mirrorEvent places the mirrored counterparts of an event's seeds
// across every strict-flagged symmetry axis. The primary axis runs
// along the spine's initial growth direction through the start tile,
// the secondary axis is its perpendicular, and the tertiary axis is
// the point reflection through the start tile.
func (e *Ejector) mirrorEvent(event []*Seed, res *spine.Result, corridor grid.Set, seeds *[]*Seed) {
	for _, src := range event {
		if len(*seeds) >= e.cfg.SeedCount {
			return
		}
		dud := src.Outcome == OutcomeDead

		if e.cfg.StrictPrimary {
			e.place(mirrorPrimary(src.Origin, res), src.SpineIndex, dud, corridor, seeds)
		}
		if e.cfg.StrictSecondary {
			e.place(mirrorSecondary(src.Origin, res), src.SpineIndex, dud, corridor, seeds)
		}
		if e.cfg.StrictTertiary {
			e.place(mirrorSecondary(mirrorPrimary(src.Origin, res), res), src.SpineIndex, dud, corridor, seeds)
		}
	}
}

func mirrorPrimary(p grid.Point, res *spine.Result) grid.Point {
	if res.StartDir.Horizontal() {
		return grid.Point{X: p.X, Y: 2*res.Start.Y - p.Y}
	}
	return grid.Point{X: 2*res.Start.X - p.X, Y: p.Y}
}

func mirrorSecondary(p grid.Point, res *spine.Result) grid.Point {
	if res.StartDir.Horizontal() {
		return grid.Point{X: 2*res.Start.X - p.X, Y: p.Y}
	}
	return grid.Point{X: p.X, Y: 2*res.Start.Y - p.Y}
}

// ejectManual places the explicit queue instead of walking the spine.
func (e *Ejector) ejectManual(corridor grid.Set) []*Seed {
	var seeds []*Seed
	for _, m := range e.cfg.Manual {
		e.place(grid.Point{X: m.X, Y: m.Y}, -1, m.Dud, corridor, &seeds)
	}
	return seeds
}
