package spine

import (
	"testing"

	"github.com/DiceT/ruins-and-realms-sub003/internal/config"
	"github.com/DiceT/ruins-and-realms-sub003/internal/grid"
	"github.com/DiceT/ruins-and-realms-sub003/internal/rng"
)

func testConfig() Config {
	return Config{
		Width:         32,
		Height:        32,
		MaxForks:      2,
		TurnPenalty:   4,
		BranchPenalty: 1,
		TurnOverride:  config.TurnNone,
	}
}

func TestGrowDeterministic(t *testing.T) {
	a := NewEngine(testConfig(), rng.New(42)).Grow()
	b := NewEngine(testConfig(), rng.New(42)).Grow()

	if len(a.Tiles) != len(b.Tiles) {
		t.Fatalf("tile counts differ: %d vs %d", len(a.Tiles), len(b.Tiles))
	}
	for i := range a.Tiles {
		if a.Tiles[i] != b.Tiles[i] {
			t.Fatalf("tile %d differs: %+v vs %+v", i, a.Tiles[i], b.Tiles[i])
		}
	}
	if a.Start != b.Start || a.StartDir != b.StartDir || a.ForksUsed != b.ForksUsed {
		t.Error("run metadata differs between identical seeds")
	}
}

func TestGrowAlwaysProducesATile(t *testing.T) {
	// Pathological configurations must still yield the start tile.
	configs := []Config{
		{Width: 1, Height: 1},
		{Width: 0, Height: 0},
		{Width: 2, Height: 1, ForceStraight: true, TurnPenalty: 20},
		{Width: 32, Height: 32, MaxForks: 5, BranchPenalty: 0},
	}

	for i, cfg := range configs {
		res := NewEngine(cfg, rng.New(int64(i))).Grow()
		if len(res.Tiles) == 0 {
			t.Errorf("config %d produced zero tiles", i)
		}
	}
}

func TestGrowStaysInBounds(t *testing.T) {
	cfg := testConfig()
	res := NewEngine(cfg, rng.New(7)).Grow()

	for _, tile := range res.Tiles {
		if tile.Pos.X < 0 || tile.Pos.X >= cfg.Width || tile.Pos.Y < 0 || tile.Pos.Y >= cfg.Height {
			t.Errorf("tile %v out of %dx%d grid", tile.Pos, cfg.Width, cfg.Height)
		}
	}
}

func TestGrowNoDuplicateTiles(t *testing.T) {
	res := NewEngine(testConfig(), rng.New(123)).Grow()

	seen := grid.NewSet()
	for _, tile := range res.Tiles {
		if seen.Has(tile.Pos) {
			t.Fatalf("tile %v laid twice", tile.Pos)
		}
		seen.Add(tile.Pos)
	}
}

func TestGrowConnected(t *testing.T) {
	// Every tile except the start must be 4-adjacent to an earlier
	// tile: growth only ever extends from an existing head position.
	for _, seed := range []int64{1, 42, 100, 255, 1000} {
		res := NewEngine(testConfig(), rng.New(seed)).Grow()

		laid := grid.NewSet()
		laid.Add(res.Tiles[0].Pos)

		for i, tile := range res.Tiles[1:] {
			adjacent := false
			for _, dir := range grid.AllDirections() {
				if laid.Has(tile.Pos.Step(dir)) {
					adjacent = true
					break
				}
			}
			if !adjacent {
				t.Fatalf("seed %d: tile %d at %v not adjacent to earlier spine", seed, i+1, tile.Pos)
			}
			laid.Add(tile.Pos)
		}
	}
}

func TestMaxForksZeroMeansNoForkPoints(t *testing.T) {
	cfg := testConfig()
	cfg.MaxForks = 0
	cfg.BranchPenalty = 0

	for _, seed := range []int64{1, 2, 3, 4, 5} {
		res := NewEngine(cfg, rng.New(seed)).Grow()
		if res.ForksUsed != 0 {
			t.Errorf("seed %d: ForksUsed = %d, want 0", seed, res.ForksUsed)
		}
		for _, tile := range res.Tiles {
			if tile.IsForkPoint {
				t.Errorf("seed %d: fork point at %v with MaxForks=0", seed, tile.Pos)
			}
		}
	}
}

func TestForkBudgetRespected(t *testing.T) {
	cfg := testConfig()
	cfg.MaxForks = 3
	cfg.BranchPenalty = 0

	for _, seed := range []int64{10, 20, 30} {
		res := NewEngine(cfg, rng.New(seed)).Grow()
		if res.ForksUsed > cfg.MaxForks {
			t.Errorf("seed %d: ForksUsed = %d exceeds budget %d", seed, res.ForksUsed, cfg.MaxForks)
		}

		forkPoints := 0
		for _, tile := range res.Tiles {
			if tile.IsForkPoint {
				forkPoints++
			}
		}
		if forkPoints > res.ForksUsed {
			t.Errorf("seed %d: %d fork points but only %d forks used", seed, forkPoints, res.ForksUsed)
		}
	}
}

func TestForceStraightOnlyTurnsAtBoundary(t *testing.T) {
	cfg := testConfig()
	cfg.ForceStraight = true
	cfg.MaxForks = 0

	res := NewEngine(cfg, rng.New(9)).Grow()

	// With turning disabled and no forks, direction changes may only
	// happen when the previous position sits against the boundary.
	for i := 1; i < len(res.Tiles); i++ {
		prev, cur := res.Tiles[i-1], res.Tiles[i]
		if cur.Dir == prev.Dir {
			continue
		}
		ahead := prev.Pos.Step(prev.Dir)
		if ahead.X >= 0 && ahead.X < cfg.Width && ahead.Y >= 0 && ahead.Y < cfg.Height {
			t.Fatalf("tile %d turned from %s to %s away from the boundary", i, prev.Dir, cur.Dir)
		}
	}
}

func TestGrowTerminatesOnDegenerateGrid(t *testing.T) {
	cfg := Config{Width: 2, Height: 2, MaxForks: 5}
	res := NewEngine(cfg, rng.New(99)).Grow()

	if len(res.Tiles) == 0 {
		t.Fatal("no tiles on degenerate grid")
	}
	if len(res.Tiles) > 4 {
		t.Errorf("%d tiles laid on a 2x2 grid", len(res.Tiles))
	}
}
