package render

import "image/color"

// paletteLUT maps every possible cell byte to its RGBA pixel.
type paletteLUT [256][4]byte

// newPaletteLUT expands palette into a full lookup table. Bytes past the end
// of the palette reuse its last entry; an empty palette yields transparent
// black everywhere.
func newPaletteLUT(palette []color.RGBA) *paletteLUT {
	lut := &paletteLUT{}
	if len(palette) == 0 {
		return lut
	}
	for i := range lut {
		col := palette[min(i, len(palette)-1)]
		lut[i] = [4]byte{col.R, col.G, col.B, col.A}
	}
	return lut
}

// fill writes one RGBA pixel per cell into buf.
func (lut *paletteLUT) fill(buf []byte, cells []uint8) {
	for i, c := range cells {
		copy(buf[i*4:i*4+4], lut[c][:])
	}
}
