package rooms

import (
	"github.com/DiceT/ruins-and-realms-sub003/internal/config"
	"github.com/DiceT/ruins-and-realms-sub003/internal/grid"
	"github.com/DiceT/ruins-and-realms-sub003/internal/rng"
)

// GrowthConfig holds the parameters room growth consumes.
type GrowthConfig struct {
	Width, Height int
	Rules         config.RoomGrowthSettings

	// SpineActsAsWall blocks growth at corridor tiles; when false the
	// corridor tile is absorbed into the room instead.
	SpineActsAsWall bool
}

// Growth expands live seeds into rectangles via collision-aware edge
// growth.
type Growth struct {
	cfg GrowthConfig
	rng *rng.Source
}

// NewGrowth creates a room growth engine.
func NewGrowth(cfg GrowthConfig, src *rng.Source) *Growth {
	return &Growth{cfg: cfg, rng: src}
}

// Grow runs growth ticks until every live room is finished. The
// corridor set is the spine's full rasterized footprint, so wide
// corridors block growth across their whole width. Each tick
// processes all live rooms once, in birth order, so growth order does
// not bias outcomes toward early-born rooms.
func (g *Growth) Grow(seeds []*Seed, corridor grid.Set) {
	// Enough ticks for any room to reach both axis maxima plus one
	// wasted attempt per edge.
	budget := g.cfg.Rules.MaxWidth + g.cfg.Rules.MaxHeight + 8

	for tick := 0; tick < budget; tick++ {
		anyActive := false
		for _, s := range seeds {
			if !s.Alive() || s.FullyBlocked() {
				continue
			}
			if g.tickSeed(s, seeds, corridor) {
				anyActive = true
			}
		}
		if !anyActive {
			break
		}
	}
}

// tickSeed attempts one edge growth for a room. It reports whether
// the room is still actively growing; a failed attempt permanently
// blocks the chosen edge.
func (g *Growth) tickSeed(s *Seed, seeds []*Seed, corridor grid.Set) bool {
	dir, ok := g.chooseEdge(s)
	if !ok {
		return false
	}

	grown := s.Bounds.Grow(dir)
	if !g.edgeClear(s, grown.Edge(dir), seeds, corridor) {
		s.blocked[dir] = true
	} else {
		s.Bounds = grown
	}
	return true
}

// chooseEdge picks a random growable edge, weighting axes still below
// their minimum so undersized rooms fill out first.
func (g *Growth) chooseEdge(s *Seed) (grid.Direction, bool) {
	weights := make([]int, 4)
	any := false

	for _, dir := range grid.AllDirections() {
		if s.blocked[dir] {
			continue
		}
		if dir.Horizontal() {
			if s.Bounds.Width() >= g.cfg.Rules.MaxWidth {
				continue
			}
			weights[dir] = 1
			if s.Bounds.Width() < g.cfg.Rules.MinWidth {
				weights[dir] = 4
			}
		} else {
			if s.Bounds.Height() >= g.cfg.Rules.MaxHeight {
				continue
			}
			weights[dir] = 1
			if s.Bounds.Height() < g.cfg.Rules.MinHeight {
				weights[dir] = 4
			}
		}
		any = true
	}

	if !any {
		return grid.North, false
	}
	return grid.Direction(g.rng.WeightedChoice(weights)), true
}

// edgeClear checks the new tile strip an edge growth would claim.
func (g *Growth) edgeClear(s *Seed, edge []grid.Point, seeds []*Seed, corridor grid.Set) bool {
	for _, p := range edge {
		if p.X < 0 || p.X >= g.cfg.Width || p.Y < 0 || p.Y >= g.cfg.Height {
			return false
		}
		if g.cfg.SpineActsAsWall && corridor.Has(p) {
			return false
		}
		for _, other := range seeds {
			if other == s || !other.Alive() {
				continue
			}
			if other.Bounds.Contains(p) {
				return false
			}
		}
	}
	return true
}
