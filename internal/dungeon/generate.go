package dungeon

import "github.com/DiceT/ruins-and-realms-sub003/internal/config"

// Generate runs the full pipeline for one settings value: growth
// phases, then assembly. The same settings always yield the same
// layout.
func Generate(settings *config.Settings) (*DungeonData, error) {
	state := NewState(settings)
	if err := state.RunToCompletion(); err != nil {
		return nil, err
	}
	return NewAssembler(state).Assemble()
}
