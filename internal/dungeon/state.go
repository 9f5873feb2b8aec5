package dungeon

import (
	"errors"
	"fmt"

	"github.com/DiceT/ruins-and-realms-sub003/internal/config"
	"github.com/DiceT/ruins-and-realms-sub003/internal/grid"
	"github.com/DiceT/ruins-and-realms-sub003/internal/logger"
	"github.com/DiceT/ruins-and-realms-sub003/internal/rng"
	"github.com/DiceT/ruins-and-realms-sub003/internal/rooms"
	"github.com/DiceT/ruins-and-realms-sub003/internal/spine"
)

var (
	// ErrAlreadyRun is returned when RunToCompletion is called on a
	// frozen state.
	ErrAlreadyRun = errors.New("dungeon: generation state already run")

	// ErrNotRun is returned when assembly is attempted before the
	// growth phases have completed.
	ErrNotRun = errors.New("dungeon: generation state not yet run")

	// ErrInvariant is returned when the assembled layout violates a
	// structural invariant.
	ErrInvariant = errors.New("dungeon: invariant violation")
)

// SpineSeedState holds everything the growth phases produce. It is
// mutable until RunToCompletion finishes, then frozen; the assembler
// reads it but never writes it.
type SpineSeedState struct {
	Settings *config.Settings
	Spine    *spine.Result
	Seeds    []*rooms.Seed

	// Corridor is the spine's rasterized footprint at the configured
	// width. Ejection, growth, and assembly all collide against this
	// one set so a wide corridor occupies the same tiles everywhere.
	Corridor grid.Set

	rng    *rng.Source
	frozen bool
}

// NewState clamps the settings and prepares a generation state. The
// caller's settings value is copied; later mutations have no effect.
func NewState(settings *config.Settings) *SpineSeedState {
	cfg := *settings
	cfg.Clamp()
	return &SpineSeedState{
		Settings: &cfg,
		rng:      rng.New(cfg.Seed),
	}
}

// Frozen reports whether the growth phases have completed.
func (st *SpineSeedState) Frozen() bool {
	return st.frozen
}

// Seed returns the seed the state's random stream was created with.
func (st *SpineSeedState) Seed() int64 {
	return st.rng.Seed()
}

// RunToCompletion drives all three growth phases in order: spine
// growth, seed ejection, then room growth. Each phase consumes the
// same random stream, so the full run is a pure function of the
// settings. The state is frozen afterwards.
func (st *SpineSeedState) RunToCompletion() error {
	if st.frozen {
		return ErrAlreadyRun
	}
	cfg := st.Settings

	eng := spine.NewEngine(spine.Config{
		Width:         cfg.GridWidth,
		Height:        cfg.GridHeight,
		MaxForks:      cfg.Spine.MaxForks,
		ForceStraight: cfg.ForceStraight,
		TurnPenalty:   cfg.TurnPenalty,
		BranchPenalty: cfg.BranchPenalty,
		TurnOverride:  cfg.TurnOverride,
	}, st.rng)
	st.Spine = eng.Grow()
	st.Corridor = st.Spine.Raster(cfg.Spine.SpineWidth, cfg.GridWidth, cfg.GridHeight)
	logger.Debugf("spine grown: %d tiles, %d forks, %d corridor tiles",
		len(st.Spine.Tiles), st.Spine.ForksUsed, st.Corridor.Len())

	ejector := rooms.NewEjector(rooms.EjectorConfig{
		Width:           cfg.GridWidth,
		Height:          cfg.GridHeight,
		SeedCount:       cfg.SeedCount,
		Ejection:        cfg.Ejection,
		Symmetry:        cfg.Symmetry,
		StrictPrimary:   cfg.SymmetryStrictPrimary,
		StrictSecondary: cfg.SymmetryStrictSecondary,
		StrictTertiary:  cfg.SymmetryStrictTertiary,
		SpineActsAsWall: cfg.Spine.SpineActsAsWall,
		Manual:          cfg.ManualSeedQueue,
	}, st.rng)
	st.Seeds = ejector.Eject(st.Spine, st.Corridor)
	logger.Debugf("seeds ejected: %d placed", len(st.Seeds))

	growth := rooms.NewGrowth(rooms.GrowthConfig{
		Width:           cfg.GridWidth,
		Height:          cfg.GridHeight,
		Rules:           cfg.RoomGrowth,
		SpineActsAsWall: cfg.Spine.SpineActsAsWall,
	}, st.rng)
	growth.Grow(st.Seeds, st.Corridor)
	logger.Debugf("room growth complete: %d live seeds", len(st.aliveSeeds()))

	st.frozen = true
	return nil
}

// aliveSeeds returns the seeds that survived ejection and growth, in
// birth order.
func (st *SpineSeedState) aliveSeeds() []*rooms.Seed {
	var alive []*rooms.Seed
	for _, s := range st.Seeds {
		if s.Alive() {
			alive = append(alive, s)
		}
	}
	return alive
}

// wallSeeds returns the seeds absorbed into walls, in birth order.
func (st *SpineSeedState) wallSeeds() []*rooms.Seed {
	var absorbed []*rooms.Seed
	for _, s := range st.Seeds {
		if s.Outcome == rooms.OutcomeWall {
			absorbed = append(absorbed, s)
		}
	}
	return absorbed
}

func invariantErr(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvariant, fmt.Sprintf(format, args...))
}
