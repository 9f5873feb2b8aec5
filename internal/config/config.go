// Package config defines the generation settings schema, its range
// clamping, and the plain-text export/import round trip the editor UI
// uses for copy/paste sharing.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// TurnOverride selects how a growth head resolves the direction of a
// turn.
type TurnOverride string

const (
	// TurnNone picks left or right uniformly per turn.
	TurnNone TurnOverride = "N"
	// TurnSame repeats the head's first turn direction on every turn.
	TurnSame TurnOverride = "S"
	// TurnAlternate alternates left and right turns per head.
	TurnAlternate TurnOverride = "U"
	// TurnFree picks uniformly and re-rolls independently for branch
	// heads as well.
	TurnFree TurnOverride = "F"
)

// EjectionSide selects which side of the spine seeds are ejected on,
// relative to the travel direction of the spine tile.
type EjectionSide string

const (
	SideLeft  EjectionSide = "left"
	SideRight EjectionSide = "right"
	SideBoth  EjectionSide = "both"
	SideAny   EjectionSide = "any"
)

// SpineSettings controls the corridor skeleton growth.
type SpineSettings struct {
	// SpineWidth is the rasterized corridor width. Valid values are
	// 1, 3, 5, 7; the skeleton itself is always unit wide.
	SpineWidth int `yaml:"spine_width"`

	// SpineActsAsWall blocks room growth at spine tiles and turns
	// spine-colliding seeds into wall seeds instead of duds.
	SpineActsAsWall bool `yaml:"spine_acts_as_wall"`

	// MaxForks is the fork budget for the whole spine [0..5].
	MaxForks int `yaml:"max_forks"`
}

// EjectionSettings controls how room seeds are ejected along the spine.
type EjectionSettings struct {
	// EjectionCount is the number of seeds per ejection event (1-3).
	EjectionCount int `yaml:"ejection_count"`

	// EjectionSide resolves the side(s) seeds are placed on.
	EjectionSide EjectionSide `yaml:"ejection_side"`

	// MinInterval/MaxInterval bound the spine-tile gap between
	// ejection events [0..15].
	MinInterval int `yaml:"min_interval"`
	MaxInterval int `yaml:"max_interval"`

	// MinDistance/MaxDistance bound the perpendicular offset from the
	// spine [0..15].
	MinDistance int `yaml:"min_distance"`
	MaxDistance int `yaml:"max_distance"`

	// DudChance is the probability an ejected seed is culled [0..0.5].
	DudChance float64 `yaml:"dud_chance"`
}

// RoomGrowthSettings bounds the rectangle each live seed grows into.
type RoomGrowthSettings struct {
	MinWidth  int `yaml:"min_width"`
	MaxWidth  int `yaml:"max_width"`
	MinHeight int `yaml:"min_height"`
	MaxHeight int `yaml:"max_height"`
}

// ManualSeed is an explicit seed placement that overrides automatic
// ejection when the queue is non-empty.
type ManualSeed struct {
	X   int  `yaml:"x"`
	Y   int  `yaml:"y"`
	Dud bool `yaml:"dud,omitempty"`
}

// Settings is the full parameter set a generation run consumes. One
// Settings value plus one seed fully determines the output.
type Settings struct {
	GridWidth  int `yaml:"grid_width"`
	GridHeight int `yaml:"grid_height"`
	SeedCount  int `yaml:"seed_count"`

	Spine SpineSettings `yaml:"spine"`

	ForceStraight bool         `yaml:"force_straight"`
	TurnPenalty   int          `yaml:"turn_penalty"`
	BranchPenalty int          `yaml:"branch_penalty"`
	TurnOverride  TurnOverride `yaml:"turn_override"`

	Ejection   EjectionSettings   `yaml:"ejection"`
	RoomGrowth RoomGrowthSettings `yaml:"room_growth"`

	// Symmetry is the percent chance an ejection event is mirrored.
	Symmetry                int  `yaml:"symmetry"`
	SymmetryStrictPrimary   bool `yaml:"symmetry_strict_primary"`
	SymmetryStrictSecondary bool `yaml:"symmetry_strict_secondary"`
	SymmetryStrictTertiary  bool `yaml:"symmetry_strict_tertiary"`

	Seed int64 `yaml:"seed"`

	// ManualSeedQueue, when non-empty, replaces automatic ejection
	// with these explicit placements.
	ManualSeedQueue []ManualSeed `yaml:"manual_seed_queue,omitempty"`
}

// DefaultSettings returns a parameter set that generates a mid-sized
// branching layout.
func DefaultSettings() *Settings {
	return &Settings{
		GridWidth:  64,
		GridHeight: 64,
		SeedCount:  16,
		Spine: SpineSettings{
			SpineWidth:      1,
			SpineActsAsWall: true,
			MaxForks:        2,
		},
		ForceStraight: false,
		TurnPenalty:   4,
		BranchPenalty: 1,
		TurnOverride:  TurnNone,
		Ejection: EjectionSettings{
			EjectionCount: 1,
			EjectionSide:  SideAny,
			MinInterval:   1,
			MaxInterval:   4,
			MinDistance:   1,
			MaxDistance:   4,
			DudChance:     0.1,
		},
		RoomGrowth: RoomGrowthSettings{
			MinWidth:  2,
			MaxWidth:  8,
			MinHeight: 2,
			MaxHeight: 8,
		},
		Symmetry: 0,
		Seed:     1,
	}
}

// Load reads settings from a YAML file. A missing file returns
// defaults, matching how the rest of the tooling treats optional
// config.
func Load(path string) (*Settings, error) {
	settings := DefaultSettings()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return settings, nil
		}
		return settings, err
	}

	if err := yaml.Unmarshal(data, settings); err != nil {
		return DefaultSettings(), fmt.Errorf("config: parse %s: %w", path, err)
	}

	return settings, nil
}

// Export serializes the settings to the plain-text form used for
// copy/paste sharing.
func (s *Settings) Export() ([]byte, error) {
	return yaml.Marshal(s)
}

// Import parses settings previously produced by Export. The field set
// matches the schema exactly, so Export followed by Import is a
// lossless round trip.
func Import(data []byte) (*Settings, error) {
	settings := DefaultSettings()
	if err := yaml.Unmarshal(data, settings); err != nil {
		return nil, fmt.Errorf("config: import: %w", err)
	}
	return settings, nil
}

// Clamp forces every field into its documented range. Callers at the
// settings boundary run this before handing the value to the
// generation core.
func (s *Settings) Clamp() {
	s.GridWidth = clampInt(s.GridWidth, 32, 128)
	s.GridHeight = clampInt(s.GridHeight, 32, 128)
	s.SeedCount = clampInt(s.SeedCount, 4, 64)

	s.Spine.SpineWidth = clampSpineWidth(s.Spine.SpineWidth)
	s.Spine.MaxForks = clampInt(s.Spine.MaxForks, 0, 5)

	s.TurnPenalty = clampInt(s.TurnPenalty, 0, 20)
	s.BranchPenalty = clampInt(s.BranchPenalty, 0, 2)
	switch s.TurnOverride {
	case TurnNone, TurnSame, TurnAlternate, TurnFree:
	default:
		s.TurnOverride = TurnNone
	}

	s.Ejection.EjectionCount = clampInt(s.Ejection.EjectionCount, 1, 3)
	switch s.Ejection.EjectionSide {
	case SideLeft, SideRight, SideBoth, SideAny:
	default:
		s.Ejection.EjectionSide = SideAny
	}
	s.Ejection.MinInterval = clampInt(s.Ejection.MinInterval, 0, 15)
	s.Ejection.MaxInterval = clampInt(s.Ejection.MaxInterval, 0, 15)
	if s.Ejection.MaxInterval < s.Ejection.MinInterval {
		s.Ejection.MaxInterval = s.Ejection.MinInterval
	}
	s.Ejection.MinDistance = clampInt(s.Ejection.MinDistance, 0, 15)
	s.Ejection.MaxDistance = clampInt(s.Ejection.MaxDistance, 0, 15)
	if s.Ejection.MaxDistance < s.Ejection.MinDistance {
		s.Ejection.MaxDistance = s.Ejection.MinDistance
	}
	s.Ejection.DudChance = clampFloat(s.Ejection.DudChance, 0, 0.5)

	s.RoomGrowth.MinWidth = clampInt(s.RoomGrowth.MinWidth, 1, 15)
	s.RoomGrowth.MaxWidth = clampInt(s.RoomGrowth.MaxWidth, 1, 15)
	if s.RoomGrowth.MaxWidth < s.RoomGrowth.MinWidth {
		s.RoomGrowth.MaxWidth = s.RoomGrowth.MinWidth
	}
	s.RoomGrowth.MinHeight = clampInt(s.RoomGrowth.MinHeight, 1, 15)
	s.RoomGrowth.MaxHeight = clampInt(s.RoomGrowth.MaxHeight, 1, 15)
	if s.RoomGrowth.MaxHeight < s.RoomGrowth.MinHeight {
		s.RoomGrowth.MaxHeight = s.RoomGrowth.MinHeight
	}

	s.Symmetry = clampInt(s.Symmetry, 0, 100)
}

func clampInt(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

func clampFloat(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// clampSpineWidth snaps the width to the nearest valid value in
// {1, 3, 5, 7}.
func clampSpineWidth(w int) int {
	switch {
	case w <= 1:
		return 1
	case w <= 3:
		return 3
	case w <= 5:
		return 5
	default:
		return 7
	}
}
