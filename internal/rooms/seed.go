// Package rooms ejects room seeds along the spine and grows the live
// ones into bounded rectangles.
package rooms

import "github.com/DiceT/ruins-and-realms-sub003/internal/grid"

// Outcome is the resolved fate of an ejected seed. The three states
// are mutually exclusive by construction; a seed is never both dead
// and absorbed.
type Outcome int

const (
	// OutcomeAlive seeds grow into rooms.
	OutcomeAlive Outcome = iota
	// OutcomeDead seeds are culled and contribute no floor tiles.
	OutcomeDead
	// OutcomeWall seeds collided with a wall-tagged spine region and
	// are absorbed as a single wall tile.
	OutcomeWall
)

// String returns the string representation of an Outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeAlive:
		return "alive"
	case OutcomeDead:
		return "dead"
	case OutcomeWall:
		return "wall"
	default:
		return "unknown"
	}
}

// Seed is a candidate room origin. Seeds are mutated only during
// generation and frozen once the owning state completes its run.
type Seed struct {
	// Origin is the ejection position; rooms grow outward from it.
	Origin grid.Point

	// SpineIndex is the index of the spine tile the seed was ejected
	// from, or -1 for manual placements. A back-reference, not
	// ownership.
	SpineIndex int

	// Outcome is the seed's resolved fate.
	Outcome Outcome

	// Bounds is the current grown rectangle. Starts 1x1 at Origin.
	Bounds grid.Rect

	// BirthOrder is the placement sequence number, driving the
	// deterministic processing order of every later phase.
	BirthOrder int

	// blocked marks edges that can no longer grow, indexed by
	// grid.Direction.
	blocked [4]bool
}

// newSeed creates a seed at the given origin.
func newSeed(origin grid.Point, spineIndex, birthOrder int, outcome Outcome) *Seed {
	return &Seed{
		Origin:     origin,
		SpineIndex: spineIndex,
		Outcome:    outcome,
		Bounds:     grid.RectAt(origin),
		BirthOrder: birthOrder,
	}
}

// Alive reports whether the seed will grow into a room.
func (s *Seed) Alive() bool {
	return s.Outcome == OutcomeAlive
}

// Blocked reports whether the edge facing dir can no longer grow.
func (s *Seed) Blocked(dir grid.Direction) bool {
	return s.blocked[dir]
}

// FullyBlocked reports whether all four edges are blocked.
func (s *Seed) FullyBlocked() bool {
	return s.blocked[0] && s.blocked[1] && s.blocked[2] && s.blocked[3]
}
