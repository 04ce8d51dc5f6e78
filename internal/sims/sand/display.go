package sand

import (
	"image/color"
	"math"
)

const (
	displaySpeciesMask = 0x1f
	displayShadeShift  = 5
)

var sandPalette = buildSandPalette()

// Palette exposes the colour palette indexed by Cells() values.
func (u *Universe) Palette() []color.RGBA {
	return sandPalette
}

func displayValue(c Cell) uint8 {
	return uint8(c.Species)&displaySpeciesMask | (c.Ra>>displayShadeShift)<<displayShadeShift
}

// DecodeDisplay splits a display byte into its species and representative Ra.
func DecodeDisplay(v uint8) (Species, uint8) {
	shade := v >> displayShadeShift
	return Species(v & displaySpeciesMask), shade<<displayShadeShift | 0x10
}

func buildSandPalette() []color.RGBA {
	palette := make([]color.RGBA, 256)
	for i := range palette {
		s, ra := DecodeDisplay(uint8(i))
		if !s.Valid() {
			palette[i] = color.RGBA{A: 255}
			continue
		}
		palette[i] = Color(Cell{Species: s, Ra: ra})
	}
	return palette
}

// Color maps a cell to its display colour. Ra and Rb shift hue, saturation and
// value per species.
func Color(c Cell) color.RGBA {
	a := float64(c.Ra) / 255
	b := float64(c.Rb) / 255
	hue := 0.0
	sat := 0.6
	val := 0.3 + a*0.5

	switch c.Species {
	case Empty:
		hue, sat, val = 0.10, 0, 0.18
	case Wall:
		hue, sat, val = 0.08, 0.1, 0.45
	case Acid:
		hue, sat, val = 0.18, 0.9, 0.8+a*0.2
	case Fire:
		hue, sat, val = a*0.1, 0.7, 0.7+a*0.3
	case Gas:
		val += 0.4
		sat = 0.2 + a*1.5
	case Ice:
		hue, sat, val = 0.6, 0.4, 0.7+a*0.5
	case Lava:
		hue, val = a*0.1, 0.7+a*0.25
	case Mite:
		hue, sat, val = 0.8, 0.9, 0.8
	case Oil:
		hue, sat, val = a*5, 0.2, 0.3
	case Plant:
		hue, sat = 0.4, 0.4
	case Rocket:
		hue, sat, val = 0, 0.4+b, 0.9
	case Sand:
		hue, sat, val = 0.1, 0.24, 0.87
	case Stone:
		hue, sat = 0.58+a*0.5, 0.1
	case Seed:
		hue = b
		sat = 0.7*(a+0.4) + b*0.2
		val = 0.9 * (a + 0.9)
	case Water:
		hue, val = 0.6, 0.7+a*0.25
	case Wood:
		hue, sat, val = a*0.1, 0.3, 0.3+a*0.3
	case Cloner:
		hue, sat, val = 0.15, 0.5, 0.6
	case Fungus:
		hue, sat, val = 0.25, 0.35, 0.55+a*0.2
	case Dust:
		hue, sat, val = 0.9+a*0.1, 0.35, 0.85
	}
	return hsvToRGBA(hue, sat, val)
}

func hsvToRGBA(h, s, v float64) color.RGBA {
	h -= math.Floor(h)
	i := int(math.Floor(h * 6))
	f := h*6 - float64(i)
	p := v * (1 - s)
	q := v * (1 - f*s)
	t := v * (1 - (1-f)*s)

	var r, g, b float64
	switch i % 6 {
	case 0:
		r, g, b = v, t, p
	case 1:
		r, g, b = q, v, p
	case 2:
		r, g, b = p, v, t
	case 3:
		r, g, b = p, q, v
	case 4:
		r, g, b = t, p, v
	default:
		r, g, b = v, p, q
	}
	return color.RGBA{R: unit8(r), G: unit8(g), B: unit8(b), A: 255}
}

func unit8(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}
