package sand

// Tick advances the universe by exactly one step.
//
// Rows are visited bottom to top so a particle that falls into an already
// visited row is not seen again, and the column order flips every tick to
// cancel left/right drift. Every write made during the tick stamps the
// destination cell; stamped cells are skipped for the rest of the tick.
func (u *Universe) Tick() {
	u.generation++
	if u.generation == 0 {
		// Stamps from four billion ticks ago could alias the new value.
		u.stamps.Fill(0)
		u.generation = 1
	}
	dir := u.scanDir()
	for y := u.h - 1; y >= 0; y-- {
		if dir > 0 {
			for x := 0; x < u.w; x++ {
				u.update(x, y)
			}
			continue
		}
		for x := u.w - 1; x >= 0; x-- {
			u.update(x, y)
		}
	}
	u.ticks++
}

// scanDir is +1 on even ticks and -1 on odd ones. Horizontal choices prefer
// this direction first.
func (u *Universe) scanDir() int {
	if u.ticks%2 == 0 {
		return 1
	}
	return -1
}

func (u *Universe) update(x, y int) {
	c := u.at(x, y)
	if c.Species == Empty || c.Species == Wall || u.stamped(x, y) {
		return
	}
	if u.react(x, y, c) {
		return
	}
	nx, ny, moved := u.act(x, y, c)
	if moved {
		u.react(nx, ny, u.at(nx, ny))
	}
}

// act applies the species' movement or bespoke step. It reports the cell's
// new position when it moved.
func (u *Universe) act(x, y int, c Cell) (int, int, bool) {
	switch c.Species {
	case Sand, Dust:
		return u.fall(x, y, c.Species)
	case Water, Acid, Oil:
		return u.flow(x, y, c.Species, 1, u.cfg.Params.LiquidSpread)
	case Lava:
		return u.flow(x, y, c.Species, 1, u.cfg.Params.LavaSpread)
	case Gas:
		return u.flow(x, y, c.Species, -1, u.cfg.Params.GasSpread)
	case Fire:
		u.burn(x, y, c)
	case Stone:
		u.settleStone(x, y, c)
	case Cloner:
		u.stepCloner(x, y, c)
	case Mite:
		return u.stepMite(x, y, c)
	case Rocket:
		return u.stepRocket(x, y, c)
	case Empty, Wall, Ice, Wood, Plant, Fungus, Seed:
	}
	return x, y, false
}

// sinksInto reports whether s can move into (x, y) by falling (vertical > 0)
// or rising (vertical < 0). Empty always yields; fluids yield by density.
func (u *Universe) sinksInto(s Species, x, y, vertical int) bool {
	target := u.at(x, y)
	if target.Species == Empty {
		return true
	}
	if !target.Species.Fluid() || target.Species == s || u.stamped(x, y) {
		return false
	}
	if vertical > 0 {
		return target.Species.Density() < s.Density()
	}
	return target.Species.Density() > s.Density()
}

// fall moves granular material down, through lighter fluids, then diagonally.
func (u *Universe) fall(x, y int, s Species) (int, int, bool) {
	if u.sinksInto(s, x, y+1, 1) {
		u.swap(x, y, x, y+1)
		return x, y + 1, true
	}
	d := u.scanDir()
	for _, dx := range [2]int{d, -d} {
		if u.sinksInto(s, x+dx, y+1, 1) {
			u.swap(x, y, x+dx, y+1)
			return x + dx, y + 1, true
		}
	}
	return x, y, false
}

// flow moves fluids vertically when possible, otherwise spreads them up to
// spread cells sideways, stopping early above a drop.
func (u *Universe) flow(x, y int, s Species, vertical, spread int) (int, int, bool) {
	if u.sinksInto(s, x, y+vertical, vertical) {
		u.swap(x, y, x, y+vertical)
		return x, y + vertical, true
	}
	d := u.scanDir()
	for _, dx := range [2]int{d, -d} {
		reach := 0
		for k := 1; k <= spread; k++ {
			tx := x + dx*k
			if u.at(tx, y).Species != Empty {
				break
			}
			reach = k
			if u.at(tx, y+vertical).Species == Empty {
				break
			}
		}
		if reach > 0 {
			tx := x + dx*reach
			u.swap(x, y, tx, y)
			return tx, y, true
		}
	}
	return x, y, false
}
