package sand

import "testing"

func TestDisplayByteTracksCell(t *testing.T) {
	u := newTestUniverse(t, 4, 4, nil)
	u.SetCell(1, 2, Lava, 200, 9)

	v := u.Cells()[2*4+1]
	s, ra := DecodeDisplay(v)
	if s != Lava {
		t.Fatalf("display byte decodes to %v, want Lava", s)
	}
	if ra>>displayShadeShift != 200>>displayShadeShift {
		t.Fatalf("display shade bucket %d, want %d", ra>>displayShadeShift, 200>>displayShadeShift)
	}

	u.SetCell(1, 2, Empty, 0, 0)
	if got := u.Cells()[2*4+1]; got != 0 {
		t.Fatalf("empty cell should display as 0, got %d", got)
	}
}

func TestPaletteCoversEveryDisplayByte(t *testing.T) {
	u := newTestUniverse(t, 2, 2, nil)
	pal := u.Palette()
	if len(pal) != 256 {
		t.Fatalf("palette has %d entries, want 256", len(pal))
	}
	for i, c := range pal {
		if c.A != 255 {
			t.Fatalf("palette entry %d is not opaque", i)
		}
	}
	if pal[uint8(Sand)] == pal[uint8(Water)] {
		t.Fatal("sand and water should not share a colour")
	}
	if pal[uint8(Empty)] != Color(Cell{}) {
		t.Fatal("palette entry 0 should be the empty colour")
	}
}

func TestColorShadesWithRa(t *testing.T) {
	dark := Color(Cell{Species: Water, Ra: 0})
	light := Color(Cell{Species: Water, Ra: 255})
	if dark == light {
		t.Fatal("water colour should vary with Ra")
	}
}
