package sand

import "mad-sand/internal/core"

// stepCloner binds an unbound cloner (Rb == 0) to the first foreign neighbour
// and makes a bound one emit copies of its species into empty neighbours.
func (u *Universe) stepCloner(x, y int, c Cell) {
	bound := Species(c.Rb)
	if bound == Empty || !bound.Valid() {
		source, ok := u.findFresh(x, y, func(s Species) bool {
			return s != Empty && s != Cloner && s != Wall
		})
		if !ok {
			return
		}
		c.Rb = uint8(u.at(source.X, source.Y).Species)
		u.commit(x, y, c)
		return
	}
	if !core.Chance(u.rng, u.cfg.Params.ClonerEmitChance) {
		return
	}
	if spot, ok := u.pickFresh(x, y, isSpecies(Empty)); ok {
		u.commit(spot.X, spot.Y, u.fresh(bound))
	}
}

// stepMite feeds on an adjacent wood or plant cell, otherwise falls or walks.
// Walk destinations resting on ice or touching dust are weighted up.
func (u *Universe) stepMite(x, y int, c Cell) (int, int, bool) {
	p := &u.cfg.Params
	if food, ok := u.pickFresh(x, y, func(s Species) bool { return s == Wood || s == Plant }); ok {
		if core.Chance(u.rng, p.MiteFeedChance) {
			u.commit(food.X, food.Y, Cell{})
			u.commit(x, y, c)
			return x, y, false
		}
	}
	if u.at(x, y+1).Species == Empty {
		u.swap(x, y, x, y+1)
		return x, y + 1, true
	}

	var (
		options [8]core.Point
		weights [8]float64
		n       int
		total   float64
	)
	for _, d := range core.Moore {
		nx, ny := x+d.X, y+d.Y
		if u.at(nx, ny).Species != Empty {
			continue
		}
		footing := u.at(nx, ny+1).Species
		if nx == x && ny+1 == y {
			footing = Empty
		}
		if footing == Empty {
			continue
		}
		w := 1.0
		if footing == Ice && p.MiteIceWeight > w {
			w = p.MiteIceWeight
		}
		if p.MiteDustWeight > w && u.touches(nx, ny, isSpecies(Dust)) {
			w = p.MiteDustWeight
		}
		options[n] = core.Point{X: nx, Y: ny}
		weights[n] = w
		total += w
		n++
	}
	if n == 0 || total <= 0 {
		return x, y, false
	}
	r := u.rng.Float64() * total
	for i := 0; i < n; i++ {
		r -= weights[i]
		if r < 0 || i == n-1 {
			dst := options[i]
			u.swap(x, y, dst.X, dst.Y)
			return dst.X, dst.Y, true
		}
	}
	return x, y, false
}

// stepRocket flies one cell along its direction (Rb indexes core.Moore).
// Hitting material destroys the rocket and fills a disc around it with copies
// of that material; hitting Wall or the grid edge fizzles it out. Another
// rocket only blocks it.
func (u *Universe) stepRocket(x, y int, c Cell) (int, int, bool) {
	d := core.Moore[int(c.Rb)%len(core.Moore)]
	tx, ty := x+d.X, y+d.Y
	target := u.at(tx, ty)
	switch target.Species {
	case Empty:
		u.swap(x, y, tx, ty)
		return tx, ty, true
	case Wall:
		u.commit(x, y, Cell{})
	case Rocket:
	default:
		u.explode(x, y, target.Species)
	}
	return x, y, false
}

func (u *Universe) explode(cx, cy int, s Species) {
	r := u.cfg.Params.RocketBlastRadius
	r2 := r * r
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			if dx*dx+dy*dy > r2 {
				continue
			}
			x, y := cx+dx, cy+dy
			if !u.cells.InBounds(x, y) || u.at(x, y).Species == Wall {
				continue
			}
			u.commit(x, y, u.fresh(s))
		}
	}
	u.commit(cx, cy, Cell{})
}
