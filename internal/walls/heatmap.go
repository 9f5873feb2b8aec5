package walls

import "github.com/DiceT/ruins-and-realms-sub003/internal/grid"

// Heat score bands. Lower is better: a shared wall serves two rooms,
// an isolated corner position serves none.
const (
	HeatShared        = -4 // wall between two distinct floor owners
	HeatNeutral       = 0
	HeatSpineAdjacent = 2 // wall hugging the corridor skeleton
	HeatCorner        = 4 // no cardinal floor contact at all
)

// OwnerCorridor is the ownership value corridor floor tiles carry in
// the owner map handed to HeatScores.
const OwnerCorridor = -1

// HeatScores assigns each wall candidate a signed placement-quality
// score. owners maps every floor tile to its owning room id, or
// OwnerCorridor for spine/corridor tiles.
func HeatScores(wallSet grid.Set, floor grid.Set, owners map[grid.Key]int) map[grid.Key]int {
	scores := make(map[grid.Key]int, len(wallSet))

	for k := range wallSet {
		p := k.Unpack()

		distinct := make(map[int]bool)
		cardinalFloors := 0
		spineContact := false

		for _, dir := range grid.AllDirections() {
			n := p.Step(dir)
			if !floor.Has(n) {
				continue
			}
			cardinalFloors++
			owner, ok := owners[grid.PackKey(n)]
			if !ok {
				continue
			}
			if owner == OwnerCorridor {
				spineContact = true
			} else {
				distinct[owner] = true
			}
		}

		switch {
		case len(distinct) >= 2:
			scores[k] = HeatShared
		case cardinalFloors == 0:
			scores[k] = HeatCorner
		case spineContact:
			scores[k] = HeatSpineAdjacent
		default:
			scores[k] = HeatNeutral
		}
	}

	return scores
}
