package sand

import (
	"testing"

	"mad-sand/internal/core"
)

func TestClonerBindsThenEmits(t *testing.T) {
	u := newTestUniverse(t, 3, 3, func(p *Params) { p.ClonerEmitChance = 1 })
	u.SetCell(1, 1, Cloner, 0, 0)
	u.SetCell(1, 0, Wood, 0, 0)

	u.Tick()
	if got := Species(u.Cell(1, 1).Rb); got != Wood {
		t.Fatalf("cloner should bind to wood on the first tick, bound to %v", got)
	}
	if got := u.Count(Wood); got != 1 {
		t.Fatalf("binding alone must not emit, got %d wood", got)
	}

	u.Tick()
	if got := u.Count(Wood); got != 2 {
		t.Fatalf("bound cloner should emit a copy, got %d wood", got)
	}
}

func TestClonerIgnoresWall(t *testing.T) {
	u := newTestUniverse(t, 3, 1, nil)
	u.SetCell(0, 0, Wall, 0, 0)
	u.SetCell(1, 0, Cloner, 0, 0)
	u.SetCell(2, 0, Wall, 0, 0)

	tickN(u, 5)

	if got := u.Cell(1, 0).Rb; got != 0 {
		t.Fatalf("cloner next to wall only should stay unbound, Rb=%d", got)
	}
}

func TestMiteEatsWood(t *testing.T) {
	u := newTestUniverse(t, 5, 5, func(p *Params) { p.MiteFeedChance = 1 })
	u.SetCell(2, 4, Mite, 0, 0)
	u.SetCell(3, 4, Wood, 0, 0)

	u.Tick()

	if u.Count(Wood) != 0 || u.Count(Mite) != 1 {
		t.Fatalf("mite should eat the wood, got wood=%d mite=%d", u.Count(Wood), u.Count(Mite))
	}
	if got := u.Cell(2, 4).Species; got != Mite {
		t.Fatalf("feeding mite should stay put, got %v at (2,4)", got)
	}
}

func TestMiteFallsAndWalks(t *testing.T) {
	u := newTestUniverse(t, 5, 5, nil)
	u.SetCell(2, 0, Mite, 0, 0)

	tickN(u, 4)
	if got := u.Cell(2, 4).Species; got != Mite {
		t.Fatalf("mite should fall to the floor in 4 ticks, got %v at (2,4)", got)
	}

	moved := false
	for i := 0; i < 20; i++ {
		u.Tick()
		if u.Count(Mite) != 1 {
			t.Fatalf("walking must not duplicate the mite, got %d", u.Count(Mite))
		}
		if u.Cell(2, 4).Species != Mite {
			moved = true
		}
	}
	if !moved {
		t.Fatal("mite on the floor should walk")
	}
}

func TestMiteNeedsFooting(t *testing.T) {
	u := newTestUniverse(t, 3, 3, nil)
	for x := 0; x < 3; x++ {
		u.SetCell(x, 2, Wall, 0, 0)
	}
	u.SetCell(1, 1, Mite, 0, 0)

	tickN(u, 20)

	for x := 0; x < 3; x++ {
		if u.Cell(x, 0).Species == Mite {
			t.Fatalf("mite climbed to (%d,0) without footing", x)
		}
	}
}

func TestRocketExplodesOnImpact(t *testing.T) {
	u := newTestUniverse(t, 9, 9, func(p *Params) { p.RocketBlastRadius = 2 })
	u.SetCell(4, 8, Rocket, 0, 0)
	u.SetCell(4, 1, Wood, 0, 0)

	tickN(u, 6)
	if got := u.Cell(4, 2).Species; got != Rocket {
		t.Fatalf("rocket should fly one cell per tick, got %v at (4,2)", got)
	}

	u.Tick()
	if got := u.Count(Rocket); got != 0 {
		t.Fatalf("rocket should be consumed by the blast, %d left", got)
	}
	if got := u.Count(Wood); got != 12 {
		t.Fatalf("blast of radius 2 should paint 12 wood cells around the rocket, got %d", got)
	}
	if got := u.Cell(4, 2).Species; got != Empty {
		t.Fatalf("rocket cell should be empty after the blast, got %v", got)
	}
}

func TestRocketBlastSparesWall(t *testing.T) {
	u := newTestUniverse(t, 7, 7, func(p *Params) { p.RocketBlastRadius = 1 })
	u.SetCell(3, 4, Rocket, 0, 0)
	u.SetCell(3, 3, Wood, 0, 0)
	u.SetCell(2, 4, Wall, 0, 0)

	u.Tick()

	if got := u.Cell(2, 4).Species; got != Wall {
		t.Fatalf("blast must not overwrite wall, got %v", got)
	}
	if got := u.Count(Wood); got != 3 {
		t.Fatalf("expected 3 wood cells from the blast, got %d", got)
	}
}

func TestRocketFizzlesAtEdge(t *testing.T) {
	u := newTestUniverse(t, 3, 3, nil)
	u.SetCell(1, 0, Rocket, 0, 0)

	u.Tick()

	if got := u.Count(Empty); got != 9 {
		t.Fatalf("rocket leaving the grid should vanish, %d cells occupied", 9-got)
	}
}

func TestRocketWaitsBehindRocket(t *testing.T) {
	u := newTestUniverse(t, 3, 3, nil)
	u.SetCell(1, 2, Rocket, 0, 0)
	u.SetCell(1, 1, Rocket, 0, 4)

	tickN(u, 3)

	if got := u.Count(Rocket); got != 2 {
		t.Fatalf("facing rockets should block each other, got %d rockets", got)
	}
}

func TestRocketZeroRadiusLeavesEmpty(t *testing.T) {
	u := newTestUniverse(t, 9, 9, func(p *Params) { p.RocketBlastRadius = 0 })
	u.SetCell(4, 4, Rocket, 0, 0)
	u.SetCell(4, 3, Wood, 0, 0)

	u.Tick()

	if got := u.Cell(4, 4).Species; got != Empty {
		t.Fatalf("rocket should be deleted by its blast, got %v at (4,4)", got)
	}
	if got := u.Count(Wood); got != 1 {
		t.Fatalf("zero-radius blast should leave only the struck wood, got %d", got)
	}
}

// miteWalks builds a fresh universe per seed, ticks it once and counts how
// often the mite ends up at want.
func miteWalks(t *testing.T, runs int, tweak func(*Params), build func(*Universe), want core.Point) int {
	t.Helper()
	hits := 0
	for seed := int64(1); seed <= int64(runs); seed++ {
		cfg := DefaultConfig()
		cfg.Width, cfg.Height = 4, 2
		cfg.Seed = seed
		if tweak != nil {
			tweak(&cfg.Params)
		}
		u, err := NewWithConfig(cfg)
		if err != nil {
			t.Fatalf("NewWithConfig: %v", err)
		}
		build(u)
		u.Tick()
		if u.Count(Mite) != 1 {
			t.Fatalf("seed %d: walking must keep exactly one mite", seed)
		}
		if u.Cell(want.X, want.Y).Species == Mite {
			hits++
		}
	}
	return hits
}

func TestMitePrefersIceFooting(t *testing.T) {
	build := func(u *Universe) {
		u.SetCell(0, 1, Ice, 0, 0)
		u.SetCell(1, 1, Wall, 0, 0)
		u.SetCell(2, 1, Wall, 0, 0)
		u.SetCell(3, 1, Wall, 0, 0)
		u.SetCell(1, 0, Mite, 0, 0)
	}
	ice := core.Point{X: 0, Y: 0}

	weighted := miteWalks(t, 200, func(p *Params) { p.MiteIceWeight = 4 }, build, ice)
	if weighted < 130 {
		t.Fatalf("ice weight 4 should pick the ice-footed cell most of the time, got %d/200", weighted)
	}
	flat := miteWalks(t, 200, func(p *Params) { p.MiteIceWeight = 1 }, build, ice)
	if flat >= weighted {
		t.Fatalf("unit ice weight should pick ice less often: flat %d, weighted %d", flat, weighted)
	}
}

func TestMitePrefersDust(t *testing.T) {
	build := func(u *Universe) {
		u.SetCell(0, 1, Wall, 0, 0)
		u.SetCell(1, 1, Wall, 0, 0)
		u.SetCell(2, 1, Wall, 0, 0)
		u.SetCell(3, 1, Dust, 0, 0)
		u.SetCell(1, 0, Mite, 0, 0)
	}
	dusty := core.Point{X: 2, Y: 0}

	hits := miteWalks(t, 200, func(p *Params) { p.MiteDustWeight = 3 }, build, dusty)
	if hits < 120 {
		t.Fatalf("dust weight 3 should favour the cell beside dust, got %d/200", hits)
	}
}
