package rooms

import (
	"testing"

	"github.com/DiceT/ruins-and-realms-sub003/internal/config"
	"github.com/DiceT/ruins-and-realms-sub003/internal/grid"
	"github.com/DiceT/ruins-and-realms-sub003/internal/rng"
	"github.com/DiceT/ruins-and-realms-sub003/internal/spine"
)

// straightSpine builds a horizontal spine through the middle of a
// square grid, long enough to host many ejection events.
func straightSpine(size int) *spine.Result {
	res := &spine.Result{
		Start:    grid.Point{X: 1, Y: size / 2},
		StartDir: grid.East,
	}
	for x := 1; x < size-1; x++ {
		res.Tiles = append(res.Tiles, spine.Tile{
			Pos: grid.Point{X: x, Y: size / 2},
			Dir: grid.East,
		})
	}
	return res
}

func testEjectorConfig(size int) EjectorConfig {
	return EjectorConfig{
		Width:     size,
		Height:    size,
		SeedCount: 16,
		Ejection: config.EjectionSettings{
			EjectionCount: 1,
			EjectionSide:  config.SideAny,
			MinInterval:   1,
			MaxInterval:   3,
			MinDistance:   2,
			MaxDistance:   5,
			DudChance:     0,
		},
	}
}

func TestEjectDeterministic(t *testing.T) {
	sp := straightSpine(32)
	corridor := sp.Raster(1, 32, 32)
	cfg := testEjectorConfig(32)

	a := NewEjector(cfg, rng.New(42)).Eject(sp, corridor)
	b := NewEjector(cfg, rng.New(42)).Eject(sp, corridor)

	if len(a) != len(b) {
		t.Fatalf("seed counts differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i].Origin != b[i].Origin || a[i].Outcome != b[i].Outcome {
			t.Fatalf("seed %d differs: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestDudChanceZeroNoDeadSeeds(t *testing.T) {
	sp := straightSpine(32)
	corridor := sp.Raster(1, 32, 32)
	cfg := testEjectorConfig(32)
	cfg.Ejection.DudChance = 0

	for _, seed := range []int64{1, 2, 3, 4, 5} {
		for _, s := range NewEjector(cfg, rng.New(seed)).Eject(sp, corridor) {
			if s.Outcome == OutcomeDead {
				t.Errorf("seed %d: dead seed at %v with dudChance=0", seed, s.Origin)
			}
		}
	}
}

func TestDudChanceOneAllDead(t *testing.T) {
	sp := straightSpine(32)
	corridor := sp.Raster(1, 32, 32)
	cfg := testEjectorConfig(32)
	cfg.Ejection.DudChance = 1

	for _, seed := range []int64{1, 2, 3} {
		seeds := NewEjector(cfg, rng.New(seed)).Eject(sp, corridor)
		if len(seeds) == 0 {
			t.Fatalf("seed %d: no seeds ejected", seed)
		}
		for _, s := range seeds {
			if s.Outcome != OutcomeDead {
				t.Errorf("seed %d: %s seed at %v with dudChance=1", seed, s.Outcome, s.Origin)
			}
		}
	}
}

func TestEjectRespectsSeedCount(t *testing.T) {
	sp := straightSpine(64)
	corridor := sp.Raster(1, 64, 64)
	cfg := testEjectorConfig(64)
	cfg.SeedCount = 4
	cfg.Ejection.MinInterval = 0
	cfg.Ejection.MaxInterval = 0
	cfg.Ejection.EjectionCount = 3

	seeds := NewEjector(cfg, rng.New(11)).Eject(sp, corridor)
	if len(seeds) > 4 {
		t.Errorf("ejected %d seeds, budget 4", len(seeds))
	}
}

func TestEjectStaysInBounds(t *testing.T) {
	sp := straightSpine(32)
	corridor := sp.Raster(1, 32, 32)
	cfg := testEjectorConfig(32)
	cfg.Ejection.MaxDistance = 15

	for _, seed := range []int64{5, 6, 7} {
		for _, s := range NewEjector(cfg, rng.New(seed)).Eject(sp, corridor) {
			if s.Origin.X < 0 || s.Origin.X >= 32 || s.Origin.Y < 0 || s.Origin.Y >= 32 {
				t.Errorf("seed at %v outside 32x32 grid", s.Origin)
			}
		}
	}
}

func TestSpineCollisionOutcomes(t *testing.T) {
	sp := straightSpine(32)
	corridor := sp.Raster(1, 32, 32)

	cfg := testEjectorConfig(32)
	cfg.Ejection.MinDistance = 0
	cfg.Ejection.MaxDistance = 0 // every ejection lands on the spine

	t.Run("spine acts as wall", func(t *testing.T) {
		c := cfg
		c.SpineActsAsWall = true
		for _, s := range NewEjector(c, rng.New(3)).Eject(sp, corridor) {
			if s.Outcome != OutcomeWall {
				t.Errorf("seed at %v: outcome %s, want wall", s.Origin, s.Outcome)
			}
		}
	})

	t.Run("spine not wall", func(t *testing.T) {
		c := cfg
		c.SpineActsAsWall = false
		for _, s := range NewEjector(c, rng.New(3)).Eject(sp, corridor) {
			if s.Outcome != OutcomeDead {
				t.Errorf("seed at %v: outcome %s, want dead", s.Origin, s.Outcome)
			}
		}
	})
}

func TestStrictPrimarySymmetryMirrors(t *testing.T) {
	sp := straightSpine(32)
	corridor := sp.Raster(1, 32, 32)
	cfg := testEjectorConfig(32)
	cfg.Symmetry = 100
	cfg.StrictPrimary = true
	cfg.SeedCount = 64

	seeds := NewEjector(cfg, rng.New(21)).Eject(sp, corridor)
	if len(seeds) == 0 {
		t.Fatal("no seeds ejected")
	}

	// The primary axis is the spine row; every ejection must have a
	// counterpart at the reflected coordinate.
	axisY := sp.Start.Y
	origins := make(map[grid.Point]bool)
	for _, s := range seeds {
		origins[s.Origin] = true
	}

	for _, s := range seeds {
		mirror := grid.Point{X: s.Origin.X, Y: 2*axisY - s.Origin.Y}
		if !origins[mirror] {
			t.Errorf("seed at %v has no mirror at %v", s.Origin, mirror)
		}
	}
}

func TestManualQueueOverridesEjection(t *testing.T) {
	sp := straightSpine(32)
	corridor := sp.Raster(1, 32, 32)
	cfg := testEjectorConfig(32)
	cfg.Manual = []config.ManualSeed{
		{X: 4, Y: 4},
		{X: 20, Y: 9, Dud: true},
		{X: 200, Y: 9}, // out of bounds, discarded
	}

	seeds := NewEjector(cfg, rng.New(8)).Eject(sp, corridor)

	if len(seeds) != 2 {
		t.Fatalf("placed %d seeds, want 2", len(seeds))
	}
	if seeds[0].Origin != (grid.Point{X: 4, Y: 4}) || seeds[0].Outcome != OutcomeAlive {
		t.Errorf("first manual seed = %+v", seeds[0])
	}
	if seeds[1].Outcome != OutcomeDead {
		t.Errorf("dud manual seed has outcome %s", seeds[1].Outcome)
	}
	if seeds[0].SpineIndex != -1 {
		t.Errorf("manual seed SpineIndex = %d, want -1", seeds[0].SpineIndex)
	}
}

func TestBirthOrderSequential(t *testing.T) {
	sp := straightSpine(32)
	corridor := sp.Raster(1, 32, 32)
	seeds := NewEjector(testEjectorConfig(32), rng.New(77)).Eject(sp, corridor)

	for i, s := range seeds {
		if s.BirthOrder != i {
			t.Errorf("seed %d has BirthOrder %d", i, s.BirthOrder)
		}
	}
}

func growthConfig(size int) GrowthConfig {
	return GrowthConfig{
		Width:  size,
		Height: size,
		Rules: config.RoomGrowthSettings{
			MinWidth:  2,
			MaxWidth:  6,
			MinHeight: 2,
			MaxHeight: 6,
		},
		SpineActsAsWall: true,
	}
}

func TestGrowthRespectsAxisMaxima(t *testing.T) {
	seeds := []*Seed{newSeed(grid.Point{X: 16, Y: 16}, 0, 0, OutcomeAlive)}
	cfg := growthConfig(32)

	NewGrowth(cfg, rng.New(1)).Grow(seeds, grid.NewSet())

	b := seeds[0].Bounds
	if b.Width() > cfg.Rules.MaxWidth {
		t.Errorf("width %d exceeds max %d", b.Width(), cfg.Rules.MaxWidth)
	}
	if b.Height() > cfg.Rules.MaxHeight {
		t.Errorf("height %d exceeds max %d", b.Height(), cfg.Rules.MaxHeight)
	}
	// An unobstructed room should reach both maxima.
	if b.Width() != cfg.Rules.MaxWidth || b.Height() != cfg.Rules.MaxHeight {
		t.Errorf("unobstructed room grew to %dx%d, want %dx%d",
			b.Width(), b.Height(), cfg.Rules.MaxWidth, cfg.Rules.MaxHeight)
	}
}

func TestGrowthStaysInBounds(t *testing.T) {
	seeds := []*Seed{newSeed(grid.Point{X: 0, Y: 0}, 0, 0, OutcomeAlive)}
	cfg := growthConfig(4)
	cfg.Rules.MaxWidth = 15
	cfg.Rules.MaxHeight = 15

	NewGrowth(cfg, rng.New(2)).Grow(seeds, grid.NewSet())

	b := seeds[0].Bounds
	if b.MinX < 0 || b.MinY < 0 || b.MaxX >= 4 || b.MaxY >= 4 {
		t.Errorf("bounds %+v escape 4x4 grid", b)
	}
}

func TestGrowthNoOverlap(t *testing.T) {
	seeds := []*Seed{
		newSeed(grid.Point{X: 10, Y: 10}, 0, 0, OutcomeAlive),
		newSeed(grid.Point{X: 13, Y: 10}, 0, 1, OutcomeAlive),
		newSeed(grid.Point{X: 10, Y: 13}, 0, 2, OutcomeAlive),
	}

	NewGrowth(growthConfig(32), rng.New(3)).Grow(seeds, grid.NewSet())

	for i := range seeds {
		for j := i + 1; j < len(seeds); j++ {
			if seeds[i].Bounds.Intersects(seeds[j].Bounds) {
				t.Errorf("rooms %d and %d overlap: %+v vs %+v",
					i, j, seeds[i].Bounds, seeds[j].Bounds)
			}
		}
	}
}

func TestGrowthBlockedBySpineWall(t *testing.T) {
	spineSet := grid.NewSet()
	for y := 0; y < 32; y++ {
		spineSet.Add(grid.Point{X: 12, Y: y})
	}

	seeds := []*Seed{newSeed(grid.Point{X: 10, Y: 10}, 0, 0, OutcomeAlive)}
	cfg := growthConfig(32)

	NewGrowth(cfg, rng.New(4)).Grow(seeds, spineSet)

	if seeds[0].Bounds.MaxX >= 12 {
		t.Errorf("room crossed the spine wall: %+v", seeds[0].Bounds)
	}
}

func TestGrowthAbsorbsSpineWhenNotWall(t *testing.T) {
	spineSet := grid.NewSet()
	for y := 0; y < 32; y++ {
		spineSet.Add(grid.Point{X: 12, Y: y})
	}

	cfg := growthConfig(32)
	cfg.SpineActsAsWall = false
	cfg.Rules.MaxWidth = 10

	// Growth from several seeds; at least one room should cross the
	// spine column since it no longer blocks.
	crossed := false
	for _, seed := range []int64{1, 2, 3, 4, 5} {
		seeds := []*Seed{newSeed(grid.Point{X: 10, Y: 10}, 0, 0, OutcomeAlive)}
		NewGrowth(cfg, rng.New(seed)).Grow(seeds, spineSet)
		if seeds[0].Bounds.MaxX >= 12 {
			crossed = true
			break
		}
	}
	if !crossed {
		t.Error("no room absorbed the spine column across 5 seeds")
	}
}

func TestDeadSeedNeverGrows(t *testing.T) {
	seeds := []*Seed{
		newSeed(grid.Point{X: 10, Y: 10}, 0, 0, OutcomeDead),
		newSeed(grid.Point{X: 20, Y: 20}, 0, 1, OutcomeWall),
	}

	NewGrowth(growthConfig(32), rng.New(5)).Grow(seeds, grid.NewSet())

	for _, s := range seeds {
		if s.Bounds.Area() != 1 {
			t.Errorf("%s seed grew to area %d", s.Outcome, s.Bounds.Area())
		}
	}
}

func TestUngrownSeedStillOneByOne(t *testing.T) {
	// A live seed boxed in on all sides stays a minimal valid 1x1.
	spineSet := grid.NewSet()
	center := grid.Point{X: 5, Y: 5}
	for _, dir := range grid.AllDirections() {
		spineSet.Add(center.Step(dir))
	}

	seeds := []*Seed{newSeed(center, 0, 0, OutcomeAlive)}
	NewGrowth(growthConfig(12), rng.New(6)).Grow(seeds, spineSet)

	if seeds[0].Bounds.Area() != 1 {
		t.Errorf("boxed-in seed grew to area %d", seeds[0].Bounds.Area())
	}
	if !seeds[0].Alive() {
		t.Error("boxed-in seed should stay alive")
	}
}
