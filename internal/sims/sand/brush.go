package sand

import (
	"math"

	"mad-sand/internal/core"
)

// Paint stamps a filled disc of species centred on (x, y). Every in-bounds
// cell within radius (inclusive) receives a fresh cell with randomized
// auxiliary bytes. Non-empty species never overwrite Wall; painting Empty
// erases anything. A negative radius paints nothing.
func (u *Universe) Paint(x, y, radius int, species Species) {
	if radius < 0 || !species.Valid() {
		return
	}
	r2 := radius * radius
	for dy := -radius; dy <= radius; dy++ {
		py := y + dy
		if py < 0 || py >= u.h {
			continue
		}
		for dx := -radius; dx <= radius; dx++ {
			px := x + dx
			if px < 0 || px >= u.w {
				continue
			}
			if dx*dx+dy*dy > r2 {
				continue
			}
			if species != Empty && u.at(px, py).Species == Wall {
				continue
			}
			u.put(px, py, u.fresh(species))
		}
	}
}

// fresh builds a newly created particle: random jitter in Ra plus whatever
// initial state the species keeps in its auxiliary bytes.
func (u *Universe) fresh(s Species) Cell {
	p := &u.cfg.Params
	c := Cell{Species: s, Ra: uint8(u.rng.IntN(256))}
	switch s {
	case Empty:
		c.Ra = 0
	case Fire:
		c.Ra = clampByte(core.Between(u.rng, p.FireLifeMin, p.FireLifeMax))
	case Acid:
		c.Rb = clampByte(core.Between(u.rng, p.AcidBudgetMin, p.AcidBudgetMax))
	case Seed:
		c.Rb = uint8(u.rng.IntN(256))
	case Wall, Sand, Water, Stone, Ice, Gas, Cloner, Mite, Wood, Plant, Fungus, Lava, Dust, Oil, Rocket:
	}
	return c
}

func clampByte(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

// buildDunes lays sand mounds along a sine curve near the floor and scatters
// seed clusters on top of them.
func (u *Universe) buildDunes() {
	floor := u.h - u.h*40/256
	amp := float64(u.h) * 5 / 256
	step := max(u.w*10/256, 1)
	minR := max(u.w*10/256, 1)
	spreadR := max(u.w*6/256, 1)
	for x := step / 2; x <= u.w-step/2; x += step {
		wave := amp * math.Sin(float64(x)/(float64(u.w)*20/256))
		u.Paint(x, floor+int(wave), minR+u.rng.IntN(spreadR), Sand)
	}

	gap := max(u.w*50/256, 8)
	jitter := max(u.w*10/256, 1)
	for x := u.w * 40 / 256; x < u.w; x += gap + u.rng.IntN(jitter) {
		for dx := -3; dx <= 3; dx++ {
			u.plantSeed(x + dx)
		}
	}
}

// plantSeed drops a seed onto the highest occupied cell of column x.
func (u *Universe) plantSeed(x int) {
	if x < 0 || x >= u.w {
		return
	}
	for y := 0; y < u.h; y++ {
		if u.at(x, y).Species == Empty {
			continue
		}
		if y > 0 {
			u.put(x, y-1, u.fresh(Seed))
		}
		return
	}
}
