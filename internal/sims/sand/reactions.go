package sand

import "mad-sand/internal/core"

// Fire.Rb flag marking fire that burns out into smoke.
const smokeFlag = 1

// react applies the first contact reaction that matches the cell at (x, y).
// Reactions are tried in a fixed priority: corrosion, ignition,
// extinguishing, thermal changes, growth and spread, then decay. Neighbours
// already written this tick are never reaction targets.
func (u *Universe) react(x, y int, c Cell) bool {
	p := &u.cfg.Params
	s := c.Species

	if s.Corrodible() {
		if acid, ok := u.findFresh(x, y, func(n Species) bool { return n == Acid }); ok {
			u.corrode(acid.X, acid.Y, x, y)
			return true
		}
	}

	if s.Flammable() && u.touches(x, y, Species.Hot) && core.Chance(u.rng, u.igniteChance(s)) {
		u.ignite(x, y, s)
		return true
	}

	switch s {
	case Fire:
		if u.touches(x, y, isSpecies(Water)) {
			u.commit(x, y, Cell{})
			return true
		}
	case Water:
		if fire, ok := u.findFresh(x, y, isSpecies(Fire)); ok {
			u.commit(fire.X, fire.Y, Cell{})
			u.commit(x, y, c)
			return true
		}
		if lava, ok := u.findFresh(x, y, isSpecies(Lava)); ok {
			u.commit(lava.X, lava.Y, u.fresh(Stone))
			u.commit(x, y, Cell{})
			return true
		}
	case Lava:
		if water, ok := u.findFresh(x, y, isSpecies(Water)); ok {
			u.commit(water.X, water.Y, Cell{})
			u.commit(x, y, u.fresh(Stone))
			return true
		}
	case Ice:
		if u.touches(x, y, Species.Hot) && core.Chance(u.rng, p.IceMeltChance) {
			u.commit(x, y, u.fresh(Water))
			return true
		}
		if core.Chance(u.rng, p.IceFreezeChance) {
			if water, ok := u.pickFresh(x, y, isSpecies(Water)); ok {
				u.commit(water.X, water.Y, u.fresh(Ice))
				u.commit(x, y, c)
				return true
			}
		}
	case Acid:
		if target, ok := u.pickFresh(x, y, Species.Corrodible); ok {
			u.corrode(x, y, target.X, target.Y)
			return true
		}
	case Plant:
		if u.touches(x, y, isSpecies(Water)) && core.Chance(u.rng, p.PlantGrowChance) {
			if spot, ok := u.pickFresh(x, y, isSpecies(Empty)); ok {
				u.commit(spot.X, spot.Y, u.fresh(Plant))
				u.commit(x, y, c)
				return true
			}
		}
	case Fungus:
		if core.Chance(u.rng, p.FungusSpreadChance) {
			if spot, ok := u.pickFungusTarget(x, y); ok {
				u.commit(spot.X, spot.Y, u.fresh(Fungus))
				u.commit(x, y, c)
				return true
			}
		}
	case Seed:
		switch u.at(x, y+1).Species {
		case Sand, Plant, Fungus:
			u.commit(x, y, u.fresh(Plant))
			return true
		}
	case Wood:
		if u.touches(x, y, isSpecies(Fungus)) {
			c.Rb++
			if int(c.Rb) >= p.WoodRotTicks {
				u.commit(x, y, Cell{})
			} else {
				u.commit(x, y, c)
			}
			return true
		}
	}
	return false
}

// corrode dissolves the target and spends one unit of the acid's budget.
// Acid with no budget left is consumed along with its last target.
func (u *Universe) corrode(ax, ay, tx, ty int) {
	acid := u.at(ax, ay)
	u.commit(tx, ty, Cell{})
	if acid.Rb <= 1 {
		u.commit(ax, ay, Cell{})
		return
	}
	acid.Rb--
	u.commit(ax, ay, acid)
}

// ignite turns fuel into fire with a fresh lifetime. Oil fire burns out into
// smoke.
func (u *Universe) ignite(x, y int, fuel Species) {
	f := u.fresh(Fire)
	if fuel == Oil {
		f.Rb = smokeFlag
	}
	u.commit(x, y, f)
}

func (u *Universe) igniteChance(s Species) float64 {
	p := &u.cfg.Params
	switch s {
	case Wood:
		return p.WoodIgniteChance
	case Plant:
		return p.PlantIgniteChance
	case Oil:
		return p.OilIgniteChance
	case Gas:
		return p.GasIgniteChance
	case Dust:
		return p.DustIgniteChance
	}
	return 0
}

// burn ages a fire cell. Fire without fuel nearby ages faster.
func (u *Universe) burn(x, y int, c Cell) {
	decay := 1
	if !u.touches(x, y, Species.Flammable) {
		decay += u.cfg.Params.FireStarveDecay
	}
	if int(c.Ra) <= decay {
		if c.Rb == smokeFlag {
			u.commit(x, y, u.fresh(Gas))
		} else {
			u.commit(x, y, Cell{})
		}
		return
	}
	c.Ra -= uint8(decay)
	u.commit(x, y, c)
}

// settleStone crumbles stone into sand when the column above it is heavier
// than the load threshold, unless the stone is braced as part of an arch.
func (u *Universe) settleStone(x, y int, c Cell) {
	if u.braced(x, y) {
		return
	}
	threshold := u.cfg.Params.StoneLoadThreshold
	if u.loadAbove(x, y, threshold) < threshold {
		return
	}
	if !core.Chance(u.rng, u.cfg.Params.StoneCrumbleChance) {
		return
	}
	u.commit(x, y, Cell{Species: Sand, Ra: c.Ra})
}

func (u *Universe) braced(x, y int) bool {
	solid := func(s Species) bool { return s == Stone || s == Wall }
	if solid(u.at(x-1, y).Species) && solid(u.at(x+1, y).Species) {
		return true
	}
	return u.at(x-1, y-1).Species == Stone && u.at(x+1, y-1).Species == Stone
}

// loadAbove counts the contiguous weight-bearing cells stacked above (x, y),
// stopping once limit is reached.
func (u *Universe) loadAbove(x, y, limit int) int {
	n := 0
	for ty := y - 1; ty >= 0 && n < limit; ty-- {
		s := u.at(x, ty).Species
		if s == Empty || s == Gas || s == Fire {
			break
		}
		n++
	}
	return n
}

// pickFungusTarget chooses a neighbour fungus can take over: wood, plant, or
// an empty cell that touches some other surface.
func (u *Universe) pickFungusTarget(x, y int) (core.Point, bool) {
	return u.pickFresh(x, y, func(s Species) bool {
		return s == Wood || s == Plant || s == Empty
	}, func(p core.Point) bool {
		if u.at(p.X, p.Y).Species != Empty {
			return true
		}
		return u.touches(p.X, p.Y, func(s Species) bool {
			return s != Empty && s != Fungus && s != Wall
		})
	})
}

func isSpecies(want Species) func(Species) bool {
	return func(s Species) bool { return s == want }
}

// touches reports whether any in-bounds neighbour satisfies match.
func (u *Universe) touches(x, y int, match func(Species) bool) bool {
	for _, d := range core.Moore {
		nx, ny := x+d.X, y+d.Y
		if !u.cells.InBounds(nx, ny) {
			continue
		}
		if match(u.at(nx, ny).Species) {
			return true
		}
	}
	return false
}

// findFresh returns the first neighbour, clockwise from above, that matches
// and has not been written this tick.
func (u *Universe) findFresh(x, y int, match func(Species) bool) (core.Point, bool) {
	for _, d := range core.Moore {
		nx, ny := x+d.X, y+d.Y
		if !u.cells.InBounds(nx, ny) || u.stamped(nx, ny) {
			continue
		}
		if match(u.at(nx, ny).Species) {
			return core.Point{X: nx, Y: ny}, true
		}
	}
	return core.Point{}, false
}

// pickFresh is findFresh starting at a random neighbour, with optional extra
// filters on the candidate position.
func (u *Universe) pickFresh(x, y int, match func(Species) bool, filters ...func(core.Point) bool) (core.Point, bool) {
	start := u.rng.IntN(len(core.Moore))
next:
	for i := range core.Moore {
		d := core.Moore[(start+i)%len(core.Moore)]
		p := core.Point{X: x + d.X, Y: y + d.Y}
		if !u.cells.InBounds(p.X, p.Y) || u.stamped(p.X, p.Y) {
			continue
		}
		if !match(u.at(p.X, p.Y).Species) {
			continue
		}
		for _, f := range filters {
			if !f(p) {
				continue next
			}
		}
		return p, true
	}
	return core.Point{}, false
}
